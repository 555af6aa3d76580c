package reporting

import (
	"fmt"
	"strings"
)

// RenderSummaryCSV renders the magnitude distribution as CSV string.
func RenderSummaryCSV(rows []MagnitudeRow) string {
	var sb strings.Builder

	// Header
	sb.WriteString("mag_range,real,bootstrap,physics,simple,total\n")

	// Rows
	for _, m := range rows {
		sb.WriteString(fmt.Sprintf("%s,%d,%d,%d,%d,%d\n",
			m.MagRange,
			m.Real,
			m.Bootstrap,
			m.Physics,
			m.Simple,
			m.Total,
		))
	}

	return sb.String()
}
