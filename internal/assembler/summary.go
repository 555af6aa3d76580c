package assembler

import (
	"fmt"

	"seismic-catalog-lab/internal/domain"
)

// BinLabel returns the magnitude bin label for mag, using half-open
// intervals (edge, next] over the diagnostic bin edges. Magnitudes
// outside every bin get an empty label.
func BinLabel(mag float64) string {
	edges := domain.MagnitudeBins
	for i := 0; i+1 < len(edges); i++ {
		if mag > edges[i] && mag <= edges[i+1] {
			return fmt.Sprintf("(%.1f,%.1f]", edges[i], edges[i+1])
		}
	}
	return ""
}

// BinLabels returns every bin label in ascending magnitude order.
func BinLabels() []string {
	edges := domain.MagnitudeBins
	labels := make([]string, 0, len(edges)-1)
	for i := 0; i+1 < len(edges); i++ {
		labels = append(labels, fmt.Sprintf("(%.1f,%.1f]", edges[i], edges[i+1]))
	}
	return labels
}

// Summary counts assembled events per magnitude bin and generation method.
type Summary struct {
	Total    int
	ByMethod map[string]int
	// ByBin maps bin label -> method -> count. Events outside every bin
	// are tallied in Unbinned.
	ByBin    map[string]map[string]int
	Unbinned int
}

// newSummary pre-populates the bin map so renderers can iterate bins in
// a fixed order without nil checks.
func newSummary() *Summary {
	s := &Summary{
		ByMethod: make(map[string]int),
		ByBin:    make(map[string]map[string]int),
	}
	for _, label := range BinLabels() {
		s.ByBin[label] = make(map[string]int)
	}
	return s
}

func (s *Summary) add(e *domain.Event) {
	s.Total++
	s.ByMethod[e.Method]++
	if e.MagRange == "" {
		s.Unbinned++
		return
	}
	s.ByBin[e.MagRange][e.Method]++
}

// Count returns the tally for one bin label and method.
func (s *Summary) Count(binLabel, method string) int {
	if m, ok := s.ByBin[binLabel]; ok {
		return m[method]
	}
	return 0
}
