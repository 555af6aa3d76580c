package synth

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/fault"
)

// Factory errors
var (
	ErrUnknownStrategyType = errors.New("unknown strategy type")
	ErrMissingTargetCount  = errors.New("PHYSICS requires TargetCount")
	ErrMissingBValue       = errors.New("PHYSICS requires BValue")
	ErrMissingSampleCount  = errors.New("SIMPLE requires SampleCount")
	ErrMissingGeometry     = errors.New("PHYSICS requires a fault geometry index")
)

// Inputs carries the shared data every strategy may draw from. The
// factory picks the pieces each strategy type actually needs.
type Inputs struct {
	RealCatalog      []*domain.Event
	AssembledCatalog []*domain.Event
	Geometry         *fault.GeometryIndex
	SpanStart        time.Time
	SpanEnd          time.Time
	Log              *logrus.Logger
}

// FromConfig creates a Strategy from domain.StrategyConfig.
// Validates required parameters per strategy type.
// Returns clear errors for missing/invalid params.
func FromConfig(cfg domain.StrategyConfig, in Inputs) (Strategy, error) {
	switch cfg.StrategyType {
	case domain.StrategyTypeBootstrap:
		return fromBootstrapConfig(cfg, in), nil
	case domain.StrategyTypePhysics:
		return fromPhysicsConfig(cfg, in)
	case domain.StrategyTypeSimple:
		return fromSimpleConfig(cfg, in)
	default:
		return nil, ErrUnknownStrategyType
	}
}

func fromBootstrapConfig(cfg domain.StrategyConfig, in Inputs) *BootstrapStrategy {
	opts := DefaultBootstrapOptions()
	if cfg.TemplateMinMag != nil {
		opts.TemplateMinMag = *cfg.TemplateMinMag
	}
	if cfg.TemplateMaxMag != nil {
		opts.TemplateMaxMag = *cfg.TemplateMaxMag
	}
	if cfg.DeltaMagMin != nil {
		opts.DeltaMagMin = *cfg.DeltaMagMin
	}
	if cfg.DeltaMagMax != nil {
		opts.DeltaMagMax = *cfg.DeltaMagMax
	}
	return NewBootstrapStrategy(in.RealCatalog, opts, in.Log)
}

func fromPhysicsConfig(cfg domain.StrategyConfig, in Inputs) (*PhysicsStrategy, error) {
	if cfg.TargetCount == nil {
		return nil, ErrMissingTargetCount
	}
	if cfg.BValue == nil {
		return nil, ErrMissingBValue
	}
	if in.Geometry == nil {
		return nil, ErrMissingGeometry
	}

	opts := PhysicsOptions{
		TargetCount: *cfg.TargetCount,
		BValue:      *cfg.BValue,
		SpanStart:   in.SpanStart,
		SpanEnd:     in.SpanEnd,
	}
	if cfg.MagFloor != nil {
		opts.MagFloor = *cfg.MagFloor
	}
	if cfg.MagCap != nil {
		opts.MagCap = *cfg.MagCap
	}
	return NewPhysicsStrategy(in.Geometry, opts, in.Log), nil
}

func fromSimpleConfig(cfg domain.StrategyConfig, in Inputs) (*SimpleStrategy, error) {
	if cfg.SampleCount == nil {
		return nil, ErrMissingSampleCount
	}

	opts := DefaultSimpleOptions(*cfg.SampleCount)
	if cfg.SimpleMinMag != nil {
		opts.MagMin = *cfg.SimpleMinMag
	}
	if cfg.SimpleMaxMag != nil {
		opts.MagMax = *cfg.SimpleMaxMag
	}
	return NewSimpleStrategy(in.AssembledCatalog, opts, in.Log), nil
}
