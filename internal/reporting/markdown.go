package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Synthetic Catalog Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Run: %s | Dataset Version: %s | Seed: %d\n\n", r.RunID, r.DatasetVersion, r.Seed))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Events | %d |\n", r.DataSummary.TotalEvents))
	sb.WriteString(fmt.Sprintf("| Real Events | %d |\n", r.DataSummary.RealEvents))
	sb.WriteString(fmt.Sprintf("| Bootstrap Events | %d |\n", r.DataSummary.BootstrapEvents))
	sb.WriteString(fmt.Sprintf("| Physics Events | %d |\n", r.DataSummary.PhysicsEvents))
	sb.WriteString(fmt.Sprintf("| Simple Events | %d |\n", r.DataSummary.SimpleEvents))
	sb.WriteString(fmt.Sprintf("| Magnitude Range | %.2f - %.2f |\n", r.DataSummary.MagnitudeMin, r.DataSummary.MagnitudeMax))
	sb.WriteString(fmt.Sprintf("| Year Range | %d - %d |\n", r.DataSummary.YearMin, r.DataSummary.YearMax))
	sb.WriteString("\n")

	// B-Value Estimation
	sb.WriteString("## Gutenberg-Richter b-Value\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Estimate | %.4f |\n", r.BValue.Estimate))
	sb.WriteString(fmt.Sprintf("| Uncertainty | %.4f |\n", r.BValue.Uncertainty))
	sb.WriteString(fmt.Sprintf("| Sample Size | %d |\n", r.BValue.SampleSize))
	if r.BValue.UsedFallback {
		sb.WriteString("| Fallback | regional default |\n")
	}
	sb.WriteString("\n")

	if len(r.BValue.Table) > 0 {
		sb.WriteString("### Completeness Threshold Sensitivity\n\n")
		sb.WriteString("| Mmin | N | b | Uncertainty |\n")
		sb.WriteString("|------|---|---|-------------|\n")
		for _, row := range r.BValue.Table {
			if row.Undetermined {
				sb.WriteString(fmt.Sprintf("| %.1f | %d | undetermined | - |\n", row.MMin, row.N))
				continue
			}
			sb.WriteString(fmt.Sprintf("| %.1f | %d | %.4f | %.4f |\n", row.MMin, row.N, row.B, row.Uncertainty))
		}
		sb.WriteString("\n")
	}

	// Magnitude Distribution
	sb.WriteString("## Magnitude Distribution\n\n")
	if len(r.MagnitudeRows) > 0 {
		sb.WriteString("| Mag Range | Real | Bootstrap | Physics | Simple | Total |\n")
		sb.WriteString("|-----------|------|-----------|---------|--------|-------|\n")
		for _, m := range r.MagnitudeRows {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %d |\n",
				m.MagRange, m.Real, m.Bootstrap, m.Physics, m.Simple, m.Total))
		}
	} else {
		sb.WriteString("No magnitude distribution available.\n")
	}
	sb.WriteString("\n")

	// Fold Occupancy
	sb.WriteString("## Cross-Validation Folds\n\n")
	if len(r.FoldRows) > 0 {
		sb.WriteString("| Fold | Years | Events |\n")
		sb.WriteString("|------|-------|--------|\n")
		for _, f := range r.FoldRows {
			if f.Fold < 0 {
				sb.WriteString(fmt.Sprintf("| - | outside table | %d |\n", f.Events))
				continue
			}
			sb.WriteString(fmt.Sprintf("| %d | %d-%d | %d |\n", f.Fold, f.StartYear, f.EndYear, f.Events))
		}
	} else {
		sb.WriteString("No fold data available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
