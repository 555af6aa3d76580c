package gr

import "errors"

// ThresholdRow is one completeness-threshold entry of a b-value table.
type ThresholdRow struct {
	MMin         float64
	N            int
	B            float64
	Uncertainty  float64
	Undetermined bool
}

// BValueTable estimates the Gutenberg-Richter slope at each completeness
// threshold. Thresholds with too few qualifying magnitudes are marked
// undetermined rather than dropped, so the table always has one row per
// requested threshold.
func BValueTable(magnitudes []float64, thresholds []float64) []ThresholdRow {
	rows := make([]ThresholdRow, 0, len(thresholds))
	for _, mMin := range thresholds {
		row := ThresholdRow{MMin: mMin}

		bv, err := EstimateBValue(magnitudes, mMin)
		if errors.Is(err, ErrUndetermined) {
			row.Undetermined = true
			row.N = countAbove(magnitudes, mMin)
		} else {
			row.N = bv.N
			row.B = bv.B
			row.Uncertainty = bv.Uncertainty
		}
		rows = append(rows, row)
	}
	return rows
}

func countAbove(magnitudes []float64, mMin float64) int {
	n := 0
	for _, m := range magnitudes {
		if m >= mMin {
			n++
		}
	}
	return n
}
