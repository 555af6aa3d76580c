// Package main estimates the Gutenberg-Richter b-value from a catalog
// and persists it as the scalar hand-off artifact for later stages.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"seismic-catalog-lab/internal/catalogio"
	"seismic-catalog-lab/internal/domain"
	"seismic-catalog-lab/internal/gr"
)

func main() {
	catalogPath := flag.String("catalog", "", "Real catalog CSV path (required)")
	mMin := flag.Float64("m-min", 3.0, "Completeness threshold")
	output := flag.String("output", "b_value.txt", "Output path for the b-value artifact")
	flag.Parse()

	if *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --catalog is required")
		os.Exit(1)
	}

	f, err := os.Open(*catalogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening catalog: %v\n", err)
		os.Exit(1)
	}
	events, err := catalogio.PrepareCatalog(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading catalog: %v\n", err)
		os.Exit(1)
	}

	mags := make([]float64, 0, len(events))
	for _, e := range events {
		mags = append(mags, e.Magnitude)
	}

	bv, err := gr.EstimateBValue(mags, *mMin)
	switch {
	case errors.Is(err, gr.ErrUndetermined):
		fmt.Printf("b-value undetermined at Mmin %.1f, using fallback %.2f\n", *mMin, domain.DefaultBValue)
		bv = gr.BValue{B: domain.DefaultBValue}
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error estimating b-value: %v\n", err)
		os.Exit(1)
	default:
		fmt.Printf("b = %.4f +/- %.4f (n = %d, Mmin = %.1f)\n", bv.B, bv.Uncertainty, bv.N, *mMin)
	}

	// Threshold sensitivity table.
	fmt.Println("\nMmin     N        b        uncertainty")
	for _, row := range gr.BValueTable(mags, []float64{3.0, 4.0, 5.0, 6.0}) {
		if row.Undetermined {
			fmt.Printf("%-8.1f %-8d undetermined\n", row.MMin, row.N)
			continue
		}
		fmt.Printf("%-8.1f %-8d %-8.4f %.4f\n", row.MMin, row.N, row.B, row.Uncertainty)
	}

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	if err := catalogio.WriteBValue(out, bv.B); err != nil {
		out.Close()
		fmt.Fprintf(os.Stderr, "Error writing b-value: %v\n", err)
		os.Exit(1)
	}
	if err := out.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nb-value written to %s\n", *output)
}
