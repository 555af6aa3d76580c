package synth

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/scaling"
)

// SimpleStrategy jitters high-magnitude template events from an already
// assembled catalog. Templates are sampled with replacement; each output
// gets a fresh magnitude, a nudged location clamped to the study region,
// and a timestamp drawn uniformly across the study period, deliberately
// untied to the template's own time.
type SimpleStrategy struct {
	templates []*domain.Event
	n         int
	magMin    float64
	magMax    float64
	region    domain.BoundingBox
	startYear int
	endYear   int
	model     scaling.Model
	log       *logrus.Logger
}

// SimpleOptions parameterizes the simple strategy.
type SimpleOptions struct {
	SampleCount    int
	TemplateMinMag float64 // default 5.0
	MagMin         float64 // default 6.5
	MagMax         float64 // default 7.3
	Region         domain.BoundingBox
	StartYear      int // default 2003
	EndYear        int // default 2025
}

// DefaultSimpleOptions returns the study defaults for n samples.
func DefaultSimpleOptions(n int) SimpleOptions {
	return SimpleOptions{
		SampleCount:    n,
		TemplateMinMag: 5.0,
		MagMin:         6.5,
		MagMax:         7.3,
		Region:         domain.DefaultStudyRegion(),
		StartYear:      2003,
		EndYear:        2025,
	}
}

// NewSimpleStrategy selects templates (magnitude >= TemplateMinMag) from
// the assembled catalog. Rupture sizing uses the area law.
func NewSimpleStrategy(assembled []*domain.Event, opts SimpleOptions, log *logrus.Logger) *SimpleStrategy {
	if log == nil {
		log = logrus.StandardLogger()
	}
	var templates []*domain.Event
	for _, e := range assembled {
		if e.Magnitude >= opts.TemplateMinMag {
			templates = append(templates, e)
		}
	}
	return &SimpleStrategy{
		templates: templates,
		n:         opts.SampleCount,
		magMin:    opts.MagMin,
		magMax:    opts.MagMax,
		region:    opts.Region,
		startYear: opts.StartYear,
		endYear:   opts.EndYear,
		model:     scaling.NewAreaLaw(),
		log:       log,
	}
}

// ID returns the strategy identifier.
func (s *SimpleStrategy) ID() string {
	return string(domain.StrategyTypeSimple)
}

// TemplateCount returns the number of available templates.
func (s *SimpleStrategy) TemplateCount() int {
	return len(s.templates)
}

// Generate produces n events by sampling templates with replacement.
func (s *SimpleStrategy) Generate(ctx context.Context, rng *rand.Rand) ([]*domain.Event, Stats, error) {
	var stats Stats
	if len(s.templates) == 0 {
		s.log.Warn("simple: no templates available; generator yields an empty result")
		return nil, stats, nil
	}

	raw := make([]*domain.Event, 0, s.n)
	for i := 0; i < s.n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		tpl := s.templates[rng.Intn(len(s.templates))]

		mag := uniform(rng, s.magMin, s.magMax)

		lon := s.region.ClampLon(tpl.Longitude + uniform(rng, -0.3, 0.3))
		lat := s.region.ClampLat(tpl.Latitude + uniform(rng, -0.2, 0.2))
		depth := uniform(rng, 5, 20)

		// Random calendar timestamp across the study period; day capped
		// at 28 to stay valid in every month.
		ts := fmt.Sprintf("%d-%02d-%02d %02d:%02d:%02d",
			s.startYear+rng.Intn(s.endYear-s.startYear+1),
			1+rng.Intn(12),
			1+rng.Intn(28),
			rng.Intn(24),
			rng.Intn(60),
			rng.Intn(60),
		)

		dims := s.model.Dimensions(mag)

		raw = append(raw, &domain.Event{
			ID:              fmt.Sprintf("SYN_SIMPLE_%03d", i+1),
			Time:            ts,
			Magnitude:       mag,
			Longitude:       lon,
			Latitude:        lat,
			DepthKm:         depth,
			IsSynthetic:     1,
			SampleWeight:    domain.WeightSimple,
			Method:          domain.MethodSimple,
			RuptureLengthKm: &dims.LengthKm,
			RuptureWidthKm:  &dims.WidthKm,
			RuptureAreaKm2:  &dims.AreaKm2,
		})
	}

	stats.Produced = len(raw)
	kept, dropped := FilterValid(raw)
	stats.DroppedInvalid = dropped
	if dropped > 0 {
		s.log.Warnf("simple: removed %d events with unphysical values", dropped)
	}
	return kept, stats, nil
}

var _ Strategy = (*SimpleStrategy)(nil)
