package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/wts/charts"
	"github.com/google/subcommands"
)

type chartsCmd struct {
	input  string
	output string
}

func (*chartsCmd) Name() string     { return "charts" }
func (*chartsCmd) Synopsis() string { return "draw the verification charts of a merged dataset" }
func (*chartsCmd) Usage() string {
	return `wts charts [-i <merged.csv>] [-o <charts.xlsx>]

  Draws the sales, ratio, growth and sales versus inventories charts of a
  merged dataset into an XLSX workbook.
`
}

func (c *chartsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "i", "", "Merged dataset. Defaults to the configured output.")
	f.StringVar(&c.output, "o", "", "Charts workbook. Defaults to charts.xlsx in the configured charts directory.")
}

func (c *chartsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, status := loadConfig()
	if cfg == nil {
		return status
	}
	if c.input == "" {
		c.input = cfg.OutputPath()
	}
	if c.output == "" {
		if err := cfg.EnsureDirs(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		c.output = cfg.ChartsPath()
	}

	cols, metrics, err := decodeDataset(c.input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := charts.Render(c.output, cols, metrics); err != nil {
		fmt.Fprintf(os.Stderr, "Error drawing charts: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Charts successfully saved to %s\n", c.output)
	return subcommands.ExitSuccess
}
