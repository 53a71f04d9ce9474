// Command mrsim simulates solid-state NMR spectra of spin systems.
//
// Usage:
//
//	mrsim [flags] input.yaml
//
// The input file holds a method, a list of spin systems, optional tensor
// distributions sampled into further spin systems, and optional simulation
// settings. The spectrum is written as CSV.
//
// Examples:
//
//	mrsim sample.yaml
//	mrsim -density 120 -sidebands 128 -o spectrum.csv sample.yaml
//	mrsim -store sqlite -db runs.db sample.yaml
//	mrsim -list -db runs.db
//	mrsim -show <run-id> -db runs.db
//	mrsim -info
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-vecmath/cpu"

	"github.com/cwbudde/algo-nmr/internal/store"
	"github.com/cwbudde/algo-nmr/nmr/method"
	"github.com/cwbudde/algo-nmr/nmr/orientation"
	"github.com/cwbudde/algo-nmr/nmr/simulation"
	"github.com/cwbudde/algo-nmr/nmr/simulator"
	"github.com/cwbudde/algo-nmr/nmr/spin"
)

func main() {
	out := flag.String("o", "", "output CSV file (default stdout)")
	density := flag.Int("density", 0, "integration density, overrides the input file")
	sidebands := flag.Int("sidebands", 0, "number of sidebands (power of two), overrides the input file")
	volume := flag.String("volume", "", "integration volume: octant, hemisphere or sphere")
	workers := flag.Int("workers", 0, "concurrent spin systems (default one per CPU)")
	storeKind := flag.String("store", "", "store the run: memory or sqlite")
	dbPath := flag.String("db", "mrsim.db", "sqlite database path")
	verbose := flag.Bool("v", false, "log progress to stderr")
	info := flag.Bool("info", false, "print build and CPU information")
	isotopes := flag.Bool("isotopes", false, "list known isotopes")
	list := flag.Bool("list", false, "list stored runs (default store sqlite)")
	show := flag.String("show", "", "write the stored run with this ID as CSV")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mrsim [flags] input.yaml\n\n")
		fmt.Fprintf(os.Stderr, "Simulates the powder spectrum of the spin systems in input.yaml.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mrsim sample.yaml\n")
		fmt.Fprintf(os.Stderr, "  mrsim -density 120 -sidebands 128 -o spectrum.csv sample.yaml\n")
		fmt.Fprintf(os.Stderr, "  mrsim -store sqlite -db runs.db sample.yaml\n")
		fmt.Fprintf(os.Stderr, "  mrsim -list -db runs.db\n")
		fmt.Fprintf(os.Stderr, "  mrsim -info\n")
	}
	flag.Parse()

	if *info {
		printInfo(os.Stdout)
		return
	}
	if *isotopes {
		printIsotopes(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *list || *show != "" {
		kind := *storeKind
		if kind == "" {
			kind = string(store.SQLite)
		}
		if err := browseRuns(ctx, os.Stdout, kind, *dbPath, *show); err != nil {
			fatalf("%v", err)
		}
		return
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if *verbose {
		simulation.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	in, err := loadInput(flag.Arg(0))
	if err != nil {
		fatalf("%v", err)
	}

	opts := in.Config.Options()
	opts = append(opts,
		simulator.WithIntegrationDensity(*density),
		simulator.WithSidebands(*sidebands),
		simulator.WithWorkers(*workers),
	)
	if *volume != "" {
		v, err := orientation.ParseVolume(*volume)
		if err != nil {
			fatalf("%v", err)
		}
		opts = append(opts, simulator.WithIntegrationVolume(v))
	}

	res, err := simulator.New(opts...).Run(ctx, &in.Method, in.SpinSystems)
	if err != nil {
		fatalf("simulation failed: %v", err)
	}

	if err := in.process(res.Spectrum); err != nil {
		fatalf("%v", err)
	}

	if *storeKind != "" {
		id, err := saveRun(ctx, *storeKind, *dbPath, in, res)
		if err != nil {
			fatalf("store run: %v", err)
		}
		fmt.Fprintf(os.Stderr, "run %s stored\n", id)
	}

	if err := writeOutput(*out, &in.Method, res.Spectrum); err != nil {
		fatalf("write output: %v", err)
	}
}

// writeOutput writes the CSV to path, or to stdout when path is empty.
func writeOutput(path string, m *method.Method, spectrum []float64) error {
	if path == "" {
		return writeCSV(os.Stdout, m, spectrum)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeCSV(f, m, spectrum); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func openStore(ctx context.Context, kind, path string) (store.Store, error) {
	backend, err := store.ParseBackend(kind)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, backend, path)
}

func saveRun(ctx context.Context, kind, path string, in Input, res *simulator.Result) (string, error) {
	st, err := openStore(ctx, kind, path)
	if err != nil {
		return "", err
	}
	defer func() { _ = store.Close(st) }()

	run := store.NewRun(in.Method.Name, in.Method.Channel, len(in.SpinSystems), res.Shape, res.Spectrum)
	if err := st.SaveRun(ctx, run); err != nil {
		return "", err
	}
	return run.ID, nil
}

// browseRuns lists the stored runs, or writes the run with the given ID as
// CSV when id is set.
func browseRuns(ctx context.Context, w io.Writer, kind, path, id string) error {
	st, err := openStore(ctx, kind, path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(st) }()

	if id != "" {
		return showRun(ctx, w, st, id)
	}
	return listRuns(ctx, w, st)
}

func listRuns(ctx context.Context, w io.Writer, st store.Store) error {
	runs, err := st.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tCreated\tMethod\tChannel\n")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.CreatedAt.Format(time.RFC3339), r.Method, r.Channel)
	}
	return tw.Flush()
}

func showRun(ctx context.Context, w io.Writer, st store.Store, id string) error {
	run, ok, err := st.GetRun(ctx, id)
	if err != nil {
		return fmt.Errorf("get run %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("run %s not found", id)
	}
	return writeStoredCSV(w, &run)
}

func printInfo(w io.Writer) {
	f := cpu.DetectFeatures()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Architecture\t%s\n", f.Architecture)
	fmt.Fprintf(tw, "SSE2\t%v\n", f.HasSSE2)
	fmt.Fprintf(tw, "AVX\t%v\n", f.HasAVX)
	fmt.Fprintf(tw, "AVX2\t%v\n", f.HasAVX2)
	fmt.Fprintf(tw, "AVX-512\t%v\n", f.HasAVX512)
	fmt.Fprintf(tw, "NEON\t%v\n", f.HasNEON)
	fmt.Fprintf(tw, "Generic only\t%v\n", f.ForceGeneric)
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printIsotopes(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Isotope\tSpin\tGamma [MHz/T]\n")
	fmt.Fprintf(tw, "-------\t----\t-------------\n")
	for _, sym := range spin.IsotopeSymbols() {
		iso, _ := spin.LookupIsotope(sym)
		fmt.Fprintf(tw, "%s\t%s\t%.6f\n", iso.Symbol, strings.TrimSuffix(fmt.Sprintf("%.1f", iso.Spin), ".0"), iso.GyromagneticRatio)
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
