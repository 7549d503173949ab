package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wts"
	"github.com/etnz/wts/charts"
	"github.com/etnz/wts/pipeline"
	"github.com/etnz/wts/renderer"
	"github.com/google/subcommands"
)

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	rawDir       string
	processedDir string
	chartsDir    string
	metricsFile  string
	noCharts     bool
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "merge the census extracts and compute the indicators" }
func (*processCmd) Usage() string {
	return `wts process [-raw-dir <dir>] [-processed-dir <dir>] [-charts-dir <dir>] [-no-charts] [-metrics-file <file>]

  Loads the sales and inventories extracts from the raw directory, keeps the
  months present in both, computes the inventories to sales ratio and the
  year-over-year sales growth, and saves the merged dataset in the processed
  directory. Flags override the configuration.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rawDir, "raw-dir", "", "Directory of the census extracts.")
	f.StringVar(&c.processedDir, "processed-dir", "", "Directory of the merged dataset.")
	f.StringVar(&c.chartsDir, "charts-dir", "", "Directory of the charts workbook.")
	f.StringVar(&c.metricsFile, "metrics-file", "", "Write the run metrics in the node exporter textfile format.")
	f.BoolVar(&c.noCharts, "no-charts", false, "Do not draw the verification charts.")
}

func (c *processCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Unexpected arguments: %q\n", f.Args())
		return subcommands.ExitUsageError
	}
	cfg, status := loadConfig()
	if cfg == nil {
		return status
	}
	for _, o := range []struct {
		flag string
		dst  *string
	}{
		{c.rawDir, &cfg.RawDir},
		{c.processedDir, &cfg.ProcessedDir},
		{c.chartsDir, &cfg.ChartsDir},
		{c.metricsFile, &cfg.MetricsFile},
	} {
		if o.flag != "" {
			*o.dst = o.flag
		}
	}

	if err := cfg.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	pcfg := cfg.Pipeline()
	res, err := pipeline.Run(pcfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		var format *wts.FormatError
		var empty *wts.EmptyResultError
		switch {
		case errors.As(err, &format):
			fmt.Fprintln(os.Stderr, "Check the preamble and header row of the extract, see 'wts topic input'.")
		case errors.As(err, &empty):
			fmt.Fprintln(os.Stderr, "Check that both extracts cover a common period.")
		}
		return subcommands.ExitFailure
	}

	run := renderer.NewRun(pcfg, res)
	if !c.noCharts {
		run.Charts = cfg.ChartsPath()
		if err := charts.Render(run.Charts, res.Columns, res.Metrics); err != nil {
			fmt.Fprintf(os.Stderr, "Error drawing charts: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if cfg.MetricsFile != "" {
		run.Metrics = cfg.MetricsFile
		if err := pipeline.WriteTextfile(cfg.MetricsFile, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing run metrics: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.RenderRun(run))
	return subcommands.ExitSuccess
}
