package catalogio

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteBValue persists an estimated b-value as a single decimal in a
// text artifact, shared between the analysis and generation stages.
func WriteBValue(w io.Writer, b float64) error {
	_, err := fmt.Fprintf(w, "%.4f\n", b)
	return err
}

// ReadBValue parses the b-value artifact.
func ReadBValue(r io.Reader) (float64, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading b-value artifact: %w", err)
	}
	s := strings.TrimSpace(string(raw))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("b-value artifact holds %q, want a decimal", s)
	}
	return v, nil
}
