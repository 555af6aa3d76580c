package synth

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/fault"
	"seismic-catalog-lab/internal/gr"
	"seismic-catalog-lab/internal/scaling"
)

// timeLayout is the catalog timestamp format.
const timeLayout = "2006-01-02 15:04:05"

// PhysicsStrategy generates large synthetics from fault geometry and a
// truncated Gutenberg-Richter magnitude distribution. Each candidate is
// placed on a fault segment long enough to host its rupture; candidates
// with no hosting segment are skipped, never substituted.
type PhysicsStrategy struct {
	n       int
	sampler *gr.MagnitudeSampler
	index   *fault.GeometryIndex
	model   scaling.Model
	start   time.Time
	end     time.Time
	mu      float64 // shear modulus, Pa
	jitter  float64 // epicenter jitter, degrees per axis
	log     *logrus.Logger
}

// PhysicsOptions parameterizes the physics strategy.
type PhysicsOptions struct {
	TargetCount    int
	BValue         float64
	MagFloor       float64   // default 6.5
	MagCap         float64   // default 7.3
	SpanStart      time.Time // catalog time span start
	SpanEnd        time.Time // catalog time span end
	ShearModulusPa float64   // default domain.DefaultShearModulusPa
	JitterDeg      float64   // default domain.DefaultEpicenterJitterDeg
}

// NewPhysicsStrategy prepares the strategy against a fault geometry index.
// Rupture sizing uses the area law.
func NewPhysicsStrategy(index *fault.GeometryIndex, opts PhysicsOptions, log *logrus.Logger) *PhysicsStrategy {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if opts.MagFloor == 0 {
		opts.MagFloor = 6.5
	}
	if opts.MagCap == 0 {
		opts.MagCap = 7.3
	}
	if opts.ShearModulusPa == 0 {
		opts.ShearModulusPa = domain.DefaultShearModulusPa
	}
	if opts.JitterDeg == 0 {
		opts.JitterDeg = domain.DefaultEpicenterJitterDeg
	}
	return &PhysicsStrategy{
		n:       opts.TargetCount,
		sampler: gr.NewMagnitudeSampler(opts.BValue, opts.MagFloor, opts.MagCap),
		index:   index,
		model:   scaling.NewAreaLaw(),
		start:   opts.SpanStart,
		end:     opts.SpanEnd,
		mu:      opts.ShearModulusPa,
		jitter:  opts.JitterDeg,
		log:     log,
	}
}

// ID returns the strategy identifier.
func (s *PhysicsStrategy) ID() string {
	return string(domain.StrategyTypePhysics)
}

// Generate draws up to n candidates. Per candidate: magnitude from the
// truncated GR tail, area-law rupture, uniform pick among qualifying
// segments, moment and scattered slip, epicenter at a jittered random
// trace vertex, depth U(5,15) km, and an origin time spaced roughly
// span/n apart with a randomized 6-12 month multiple of the index.
func (s *PhysicsStrategy) Generate(ctx context.Context, rng *rand.Rand) ([]*domain.Event, Stats, error) {
	var stats Stats
	raw := make([]*domain.Event, 0, s.n)

	for i := 0; i < s.n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		mag := s.sampler.Sample(rng)
		dims := s.model.Dimensions(mag)

		qualifying := s.index.QualifyingSegments(dims.LengthKm)
		if len(qualifying) == 0 {
			stats.SkippedNoSegment++
			s.log.Warnf("physics: no suitable segment for M%.1f event (needed %.1f km)", mag, dims.LengthKm)
			continue
		}
		seg := qualifying[rng.Intn(len(qualifying))]

		moment := scaling.SeismicMoment(mag)
		slip := scaling.AverageSlip(moment, dims.AreaKm2, s.mu)
		slip = scaling.ScatterSlip(slip, rng)

		// Epicenter: random trace vertex, jittered ~5 km per axis.
		v := seg.Coordinates[rng.Intn(len(seg.Coordinates))]
		lon := v.Longitude + uniform(rng, -s.jitter, s.jitter)
		lat := v.Latitude + uniform(rng, -s.jitter, s.jitter)

		depth := uniform(rng, 5, 15)

		// Intentionally not a strict uniform grid: the offset is a
		// randomized 6-12 month multiple of the index, so early events
		// may cluster.
		monthsOffset := uniform(rng, 6, 12) * float64(i)
		origin := s.start.Add(time.Duration(monthsOffset * 30 * 24 * float64(time.Hour)))

		segID := seg.SegmentID
		strike, dip, rake := seg.Strike, seg.Dip, seg.Rake

		e := &domain.Event{
			ID:              fmt.Sprintf("SYN_PHYS_%03d", i+1),
			Time:            origin.Format(timeLayout),
			Magnitude:       mag,
			Longitude:       lon,
			Latitude:        lat,
			DepthKm:         depth,
			IsSynthetic:     1,
			SampleWeight:    domain.WeightPhysics,
			Method:          domain.MethodPhysics,
			RuptureLengthKm: &dims.LengthKm,
			RuptureWidthKm:  &dims.WidthKm,
			RuptureAreaKm2:  &dims.AreaKm2,
			AvgSlipM:        &slip,
			SegmentID:       &segID,
			Strike:          &strike,
			Dip:             &dip,
			Rake:            &rake,
		}
		raw = append(raw, e)
	}

	stats.Produced = len(raw)
	kept, dropped := FilterValid(raw)
	stats.DroppedInvalid = dropped
	if dropped > 0 {
		s.log.Warnf("physics: removed %d events with unphysical values", dropped)
	}
	if len(kept) == 0 {
		s.log.Warn("physics: no synthetic events were generated")
	}
	return kept, stats, nil
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

var _ Strategy = (*PhysicsStrategy)(nil)
