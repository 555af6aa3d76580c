package assembler

import (
	"errors"
	"fmt"

	"seismic-catalog-lab/internal/domain"
)

// Fold table errors
var (
	ErrEmptyFoldTable   = errors.New("fold table is empty")
	ErrInvertedFoldSpan = errors.New("fold range ends before it starts")
	ErrOverlappingFolds = errors.New("fold ranges overlap")
)

// ValidateFolds checks that every range is well formed and that no two
// ranges share a year. A year belonging to two folds would leak events
// across cross-validation splits.
func ValidateFolds(folds []domain.FoldRange) error {
	if len(folds) == 0 {
		return ErrEmptyFoldTable
	}
	for i, f := range folds {
		if f.EndYear < f.StartYear {
			return fmt.Errorf("%w: fold %d spans %d-%d", ErrInvertedFoldSpan, i, f.StartYear, f.EndYear)
		}
		for j := i + 1; j < len(folds); j++ {
			g := folds[j]
			if f.StartYear <= g.EndYear && g.StartYear <= f.EndYear {
				return fmt.Errorf("%w: folds %d and %d", ErrOverlappingFolds, i, j)
			}
		}
	}
	return nil
}

// FoldFor returns the index of the fold containing year, or -1 when the
// year falls outside every window.
func FoldFor(folds []domain.FoldRange, year int) int {
	for i, f := range folds {
		if f.Contains(year) {
			return i
		}
	}
	return -1
}
