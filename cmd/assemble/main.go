// Package main merges a real catalog with synthetic event sets into the
// final training catalog with year, fold and magnitude-bin columns.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"seismic-catalog-lab/internal/assembler"
	"seismic-catalog-lab/internal/catalogio"
	"seismic-catalog-lab/internal/domain"
)

func main() {
	catalogPath := flag.String("catalog", "", "Real catalog CSV path (required)")
	output := flag.String("output", "assembled_catalog.csv", "Output CSV path")
	summaryOut := flag.String("summary", "", "Optional summary CSV path")
	flag.Parse()

	log := logrus.New()

	if *catalogPath == "" {
		fmt.Fprintln(os.Stderr, "Error: --catalog is required")
		fmt.Fprintln(os.Stderr, "Usage: assemble --catalog real.csv [synthetic.csv ...]")
		os.Exit(1)
	}

	realCatalog, err := readCatalogFile(*catalogPath, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading catalog: %v\n", err)
		os.Exit(1)
	}

	// Positional arguments are synthetic CSV sets, already in the full
	// catalog column layout.
	synthetic := make([][]*domain.Event, 0, flag.NArg())
	for _, path := range flag.Args() {
		set, err := readCatalogFile(path, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
			os.Exit(1)
		}
		synthetic = append(synthetic, set)
	}

	asm, err := assembler.New(domain.DefaultFoldTable(), log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating assembler: %v\n", err)
		os.Exit(1)
	}

	assembled, summary, err := asm.Assemble(realCatalog, synthetic...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assembly error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output: %v\n", err)
		os.Exit(1)
	}
	if err := catalogio.WriteCatalog(f, assembled); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing output: %v\n", err)
		os.Exit(1)
	}

	if *summaryOut != "" {
		if err := writeSummary(*summaryOut, summary); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing summary: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Assembled %d events (%d unbinned) into %s\n", summary.Total, summary.Unbinned, *output)
	for method, n := range summary.ByMethod {
		fmt.Printf("  %-10s %d\n", method, n)
	}
}

// readCatalogFile loads a catalog CSV. The real catalog is run through
// the preparation step (column aliases, ids, energy proxy, defaults);
// synthetic sets must already carry the full column layout.
func readCatalogFile(path string, prepare bool) ([]*domain.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if prepare {
		return catalogio.PrepareCatalog(f)
	}
	return catalogio.ReadCatalog(f)
}

func writeSummary(path string, summary *assembler.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	methods := []string{domain.MethodReal, domain.MethodBootstrap, domain.MethodPhysics, domain.MethodSimple}
	if _, err := fmt.Fprintln(f, "mag_range,real,bootstrap,physics,simple,total"); err != nil {
		f.Close()
		return err
	}
	for _, label := range assembler.BinLabels() {
		var total int
		counts := make([]int, len(methods))
		for i, m := range methods {
			counts[i] = summary.Count(label, m)
			total += counts[i]
		}
		if _, err := fmt.Fprintf(f, "%s,%d,%d,%d,%d,%d\n",
			label, counts[0], counts[1], counts[2], counts[3], total); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
