// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Gridperf measures the data layer of a virtualized grid.
//
// Usage:
//
//	gridperf [flags]
//
// Gridperf builds a collection of records with every selected build
// mode, installs it either in one batch or record by record, applies a
// view (filter, sort, group) and mutates scores, measuring time,
// allocations and change notifications of every step. Every step is
// repeated -count times and the repetitions are summarized by their
// median and a 95% confidence interval.
//
// The -format flag selects the output:
//
//	text   summary tables (the default)
//	bench  raw measurements in the Go benchmark format
//	csv    summary tables as CSV
//	html   summary tables as an HTML page
//
// The bench output can be saved and fed back with -base, in which case
// every summary is compared against the saved results of the same
// name. It can also be given to benchstat.
//
// The view flags mirror the toggles of a grid front end:
//
//	-filter-even   keep records with an even ID
//	-filter-score  keep records with a score of at least 50
//	-sort-score    sort by score, descending
//	-sort-id       sort by ID, descending
//	-group         group by category (score / 10)
//	-defer         apply the view in a single deferred refresh
//	-live          re-evaluate filter, sort and group on score changes
//
// Example:
//
//	$ gridperf -n 10000 -count 6 -format bench > old.txt
//	$ gridperf -n 10000 -count 6 -filter-score -live -base old.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/Koichi-Kobayashi/DataGridPerfLab/builder"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/gridfmt"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/harness"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/report"
	"github.com/Koichi-Kobayashi/DataGridPerfLab/view"
)

var exit = os.Exit // replaced during testing

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: gridperf [flags]\n")
	fmt.Fprintf(flag.CommandLine.Output(), "flags:\n")
	flag.PrintDefaults()
	exit(2)
}

var (
	flagN       = flag.Int("n", 100000, "`records` per rebuild")
	flagCount   = flag.Int("count", 5, "run every scenario `n` times")
	flagModes   = flag.String("modes", "all", "comma-separated build `modes`, or all")
	flagBatch   = flag.String("batch", "on,off", "batch `settings` to run: on, off or both")
	flagMutate  = flag.Int("mutate", 5000, "`records` changed per score mutation, 0 to skip")
	flagSeed    = flag.Int64("seed", 1, "mutation `seed` of the first repetition")
	flagWorkers = flag.Int("workers", 0, "cap parallel builders at `n` workers (0 means GOMAXPROCS)")
	flagFormat  = flag.String("format", "text", "output `format`: text, bench, csv or html")
	flagSVG     = flag.String("svg", "", "write a bar chart of rebuild times to `file`")
	flagBase    = flag.String("base", "", "compare against bench output in `file`")
	flagVerbose = flag.Bool("v", false, "log progress to stderr")

	flagFilterEven  = flag.Bool("filter-even", false, "keep records with an even ID")
	flagFilterScore = flag.Bool("filter-score", false, "keep records with a score of at least 50")
	flagSortScore   = flag.Bool("sort-score", false, "sort by score, descending")
	flagSortID      = flag.Bool("sort-id", false, "sort by ID, descending")
	flagGroup       = flag.Bool("group", false, "group by score category")
	flagDefer       = flag.Bool("defer", false, "apply the view in one deferred refresh")
	flagLive        = flag.Bool("live", false, "enable live shaping")
)

var formats = map[string]bool{"text": true, "bench": true, "csv": true, "html": true}

// options is everything a run needs, collected from the flags.
type options struct {
	cfg     harness.Config
	format  string
	svg     string
	base    string
	verbose bool
}

func main() {
	log.SetPrefix("gridperf: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
	}
	opts, err := parseFlags()
	if err != nil {
		log.Print(err)
		flag.Usage()
	}
	if opts.verbose {
		opts.cfg.Logf = log.Printf
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, opts, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() (*options, error) {
	modes, err := parseModes(*flagModes)
	if err != nil {
		return nil, err
	}
	batch, err := parseBatch(*flagBatch)
	if err != nil {
		return nil, err
	}
	if !formats[*flagFormat] {
		return nil, fmt.Errorf("unknown format %q", *flagFormat)
	}
	cfg := harness.DefaultConfig()
	cfg.N = *flagN
	cfg.Count = *flagCount
	cfg.Modes = modes
	cfg.Batch = batch
	cfg.Mutate = *flagMutate
	cfg.Seed = *flagSeed
	cfg.Workers = *flagWorkers
	cfg.View = view.Settings{
		FilterEvenID:    *flagFilterEven,
		FilterScore:     *flagFilterScore,
		SortScoreDesc:   *flagSortScore,
		SortIDDesc:      *flagSortID,
		GroupByCategory: *flagGroup,
		Defer:           *flagDefer,
		Live:            *flagLive,
	}
	return &options{
		cfg:     cfg,
		format:  *flagFormat,
		svg:     *flagSVG,
		base:    *flagBase,
		verbose: *flagVerbose,
	}, nil
}

// parseModes parses a comma-separated list of build modes. "all" or
// an empty list selects every mode.
func parseModes(s string) ([]builder.Mode, error) {
	if s == "" || s == "all" {
		return builder.Modes(), nil
	}
	var modes []builder.Mode
	for _, name := range strings.Split(s, ",") {
		m, err := builder.ParseMode(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		modes = append(modes, m)
	}
	return modes, nil
}

// parseBatch parses a comma-separated list of "on" and "off". "both"
// is short for "on,off".
func parseBatch(s string) ([]bool, error) {
	if s == "both" {
		s = "on,off"
	}
	var batch []bool
	for _, v := range strings.Split(s, ",") {
		switch strings.TrimSpace(v) {
		case "on":
			batch = append(batch, true)
		case "off":
			batch = append(batch, false)
		default:
			return nil, fmt.Errorf("bad batch setting %q: want on, off or both", v)
		}
	}
	return batch, nil
}

// run runs the scenarios of opts and writes the output to w.
func run(ctx context.Context, opts *options, w io.Writer) error {
	var base []*gridfmt.Result
	if opts.base != "" {
		var err error
		if base, err = readFile(opts.base); err != nil {
			return err
		}
	}

	var results []*gridfmt.Result
	emit := func(r *gridfmt.Result) error {
		results = append(results, r)
		return nil
	}
	if opts.format == "bench" {
		// Stream, so partial runs leave usable output.
		bw := gridfmt.NewWriter(w)
		emit = func(r *gridfmt.Result) error {
			results = append(results, r)
			return bw.Write(r)
		}
	}
	if err := harness.Run(ctx, opts.cfg, emit); err != nil {
		return err
	}

	tables := report.Build(results, base)
	var err error
	switch opts.format {
	case "text":
		err = report.FormatText(w, tables)
	case "csv":
		err = report.FormatCSV(w, tables)
	case "html":
		if _, err = io.WriteString(w, htmlHeader); err != nil {
			return err
		}
		if err = report.FormatHTML(w, tables); err != nil {
			return err
		}
		_, err = io.WriteString(w, htmlFooter)
	}
	if err != nil {
		return err
	}

	if opts.svg != "" {
		if err := writeChart(opts.svg, tables); err != nil {
			return err
		}
	}
	return nil
}

// readFile reads every result in the bench output file.
func readFile(path string) ([]*gridfmt.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []*gridfmt.Result
	r := gridfmt.NewReader(f, path)
	for r.Scan() {
		out = append(out, r.Result())
	}
	if err := r.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func writeChart(path string, tables []*report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Chart(f, tables, "svg"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Grid Performance</title>
<style>
.gridperf { border-collapse: collapse; }
.gridperf th:nth-child(1) { text-align: left; }
.gridperf tbody td:nth-child(1n+2):not(.note) { text-align: right; padding: 0em 1em; }
.gridperf th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
.gridperf .lower td { font-weight: bold; }
.gridperf .higher td { font-weight: bold; color: #c00; }
.gridperf .geomean td { font-style: italic; }
</style>
</head>
<body>
`

var htmlFooter = `</body>
</html>
`
