package synth

import (
	"context"
	"math/rand"

	"github.com/sirupsen/logrus"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/scaling"
)

// BootstrapStrategy scales moderate real events up into large synthetics.
// Each template event in [templateMinMag, templateMaxMag) yields exactly
// one output: the template's time, location and depth are preserved while
// magnitude, energy and rupture dimensions are rescaled.
type BootstrapStrategy struct {
	templates []*domain.Event
	deltaMin  float64
	deltaMax  float64
	model     scaling.Model
	log       *logrus.Logger
}

// BootstrapOptions parameterizes the bootstrap strategy.
type BootstrapOptions struct {
	TemplateMinMag float64 // default 5.0
	TemplateMaxMag float64 // default 6.0, exclusive
	DeltaMagMin    float64 // default 1.5
	DeltaMagMax    float64 // default 2.3
}

// DefaultBootstrapOptions returns the study defaults.
func DefaultBootstrapOptions() BootstrapOptions {
	return BootstrapOptions{
		TemplateMinMag: 5.0,
		TemplateMaxMag: 6.0,
		DeltaMagMin:    1.5,
		DeltaMagMax:    2.3,
	}
}

// NewBootstrapStrategy selects templates from the real catalog and
// prepares the strategy. Rupture sizing uses the Wells-Coppersmith law.
func NewBootstrapStrategy(realCatalog []*domain.Event, opts BootstrapOptions, log *logrus.Logger) *BootstrapStrategy {
	if log == nil {
		log = logrus.StandardLogger()
	}
	var templates []*domain.Event
	for _, e := range realCatalog {
		if e.Magnitude >= opts.TemplateMinMag && e.Magnitude < opts.TemplateMaxMag {
			templates = append(templates, e)
		}
	}
	return &BootstrapStrategy{
		templates: templates,
		deltaMin:  opts.DeltaMagMin,
		deltaMax:  opts.DeltaMagMax,
		model:     scaling.NewWellsCoppersmith(),
		log:       log,
	}
}

// ID returns the strategy identifier.
func (s *BootstrapStrategy) ID() string {
	return string(domain.StrategyTypeBootstrap)
}

// TemplateCount returns the number of qualifying templates.
func (s *BootstrapStrategy) TemplateCount() int {
	return len(s.templates)
}

// Generate produces one synthetic per template: draw dM ~ U(deltaMin,
// deltaMax), lift the magnitude and log-energy, and recompute rupture
// dimensions at the new magnitude. No template is skipped before the
// shared validity filter.
func (s *BootstrapStrategy) Generate(ctx context.Context, rng *rand.Rand) ([]*domain.Event, Stats, error) {
	var stats Stats
	raw := make([]*domain.Event, 0, len(s.templates))

	for _, tpl := range s.templates {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		deltaM := s.deltaMin + rng.Float64()*(s.deltaMax-s.deltaMin)
		newMag := tpl.Magnitude + deltaM

		e := tpl.Clone()
		e.ID = "SYN_" + tpl.ID
		e.Magnitude = newMag

		// Benioff strain scales as 10^(1.5 dM).
		baseEnergy := 1.5*tpl.Magnitude + 4.8
		if tpl.LogEnergy != nil {
			baseEnergy = *tpl.LogEnergy
		}
		logEnergy := baseEnergy + 1.5*deltaM
		e.LogEnergy = &logEnergy

		dims := s.model.Dimensions(newMag)
		e.RuptureLengthKm = &dims.LengthKm
		e.RuptureWidthKm = &dims.WidthKm
		e.RuptureAreaKm2 = &dims.AreaKm2

		e.IsSynthetic = 1
		e.SampleWeight = domain.WeightBootstrap
		e.Method = domain.MethodBootstrap

		raw = append(raw, e)
	}

	stats.Produced = len(raw)
	kept, dropped := FilterValid(raw)
	stats.DroppedInvalid = dropped
	if dropped > 0 {
		s.log.Warnf("bootstrap: removed %d events with unphysical values", dropped)
	}
	if len(kept) == 0 {
		s.log.Warn("bootstrap: no synthetic events were generated; check template availability")
	}
	return kept, stats, nil
}

var _ Strategy = (*BootstrapStrategy)(nil)
