package scaling

import "errors"

// Factory errors
var ErrUnknownModel = errors.New("unknown scaling model")

// Model identifiers accepted by FromID.
const (
	ModelAreaLaw          = "AREA_LAW"
	ModelWellsCoppersmith = "WELLS_COPPERSMITH"
)

// FromID creates a scaling Model by identifier.
func FromID(id string) (Model, error) {
	switch id {
	case ModelAreaLaw:
		return NewAreaLaw(), nil
	case ModelWellsCoppersmith:
		return NewWellsCoppersmith(), nil
	default:
		return nil, ErrUnknownModel
	}
}
