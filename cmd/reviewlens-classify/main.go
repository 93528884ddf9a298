// Command reviewlens-classify labels a CSV of reviews and prints product recommendations
//
//	reviewlens-classify -in reviews.csv -out results.csv -concern Acne
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"reviewlens/internal/core/sentiment"
	"reviewlens/internal/core/table"
	"reviewlens/internal/core/taxonomy"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/services/analyze/domain"
	"reviewlens/internal/services/analyze/service"
)

// exit codes
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2 // bad flags or an input without the required columns
)

// concernAll prints recommendations for every concern present in the input
const concernAll = "all"

// newScorer is swapped in tests
var newScorer = func() sentiment.Scorer { return sentiment.NewVader() }

func main() {
	lo := logger.FromEnv()
	if lo.Service == "" {
		lo.Service = "reviewlens-classify"
	}
	logger.Init(lo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	in       string
	out      string
	concern  string
	workers  int
	taxonomy string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("reviewlens-classify", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.in, "in", "", "input CSV with review and product columns, '-' for stdin")
	fs.StringVar(&o.out, "out", "", "output CSV path; empty writes the table to stdout")
	fs.StringVar(&o.concern, "concern", concernAll, "concern to recommend for, or 'all'")
	fs.IntVar(&o.workers, "workers", 0, "classification workers (0 = NumCPU)")
	fs.StringVar(&o.taxonomy, "taxonomy", "", "taxonomy override file (.json, .yaml)")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.in == "" {
		return o, errors.New("-in is required")
	}
	if o.workers < 0 {
		return o, errors.New("-workers must be >= 0")
	}
	return o, nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	log := logger.Named("classify")

	o, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	var tax *taxonomy.Taxonomy
	if o.taxonomy != "" {
		if tax, err = taxonomy.LoadFile(o.taxonomy); err != nil {
			_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
			return exitFailed
		}
	}

	t, err := readInput(o.in, stdin)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}

	runner := service.New(newScorer(), tax, service.Config{Workers: o.workers})
	a, err := runner.Run(ctx, t)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		if perr.IsCode(err, perr.ErrorCodeSchema) {
			return exitUsage
		}
		return exitFailed
	}

	d := a.Distribution()
	ev := log.Info().Int("rows", a.Len()).Bool("has_rating", a.HasRating())
	for _, l := range sentiment.Labels() {
		ev = ev.Int(strings.ToLower(string(l)), d.Sentiment[l])
	}
	ev.Msg("classified")
	for _, c := range d.Concerns {
		log.Debug().Str("concern", c.Concern).Int("count", c.Count).Msg("concern distribution")
	}

	// the table owns stdout when no -out is given
	recOut := stdout
	if o.out == "" {
		recOut = stderr
	}
	if err := writeOutput(a, o.out, stdout); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}
	printRecommendations(recOut, a, o.concern)
	return exitOK
}

func readInput(path string, stdin io.Reader) (*table.Table, error) {
	if path == "-" {
		return table.Read(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return table.Read(f)
}

func writeOutput(a *domain.Analysis, path string, stdout io.Writer) error {
	if path == "" {
		return a.Table().Write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := a.Table().Write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printRecommendations(w io.Writer, a *domain.Analysis, concern string) {
	concerns := []string{concern}
	if concern == concernAll {
		concerns = a.Concerns()
	}
	for _, c := range concerns {
		_, _ = fmt.Fprintf(w, "%s: %s\n", c, strings.Join(a.Recommend(c), ", "))
	}
}
