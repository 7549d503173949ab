package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wts"
	"github.com/etnz/wts/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	input string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a summary of a merged dataset" }
func (*summaryCmd) Usage() string {
	return `wts summary [-i <merged.csv>]

  Displays the period covered, the inventories to sales ratio statistics and
  the recent months of a merged dataset.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Merged dataset. Defaults to the configured output.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.input == "" {
		cfg, status := loadConfig()
		if cfg == nil {
			return status
		}
		c.input = cfg.OutputPath()
	}

	cols, metrics, err := decodeDataset(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := wts.Summarize(cols, metrics)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing %s: %v\n", c.input, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(s))
	return subcommands.ExitSuccess
}

// decodeDataset reads a merged dataset file.
func decodeDataset(path string) (wts.Columns, []wts.Metric, error) {
	f, err := os.Open(path)
	if err != nil {
		return wts.Columns{}, nil, fmt.Errorf("failed to open merged dataset: %w", err)
	}
	defer f.Close()
	cols, metrics, err := wts.DecodeMetrics(f)
	if err != nil {
		return wts.Columns{}, nil, fmt.Errorf("failed to decode merged dataset %q: %w", path, err)
	}
	return cols, metrics, nil
}
