package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/wts"
	"github.com/etnz/wts/census"
	"github.com/etnz/wts/date"
)

// writeExtract writes a census extract with one row per consecutive month from 'from'.
// Extra lines are appended verbatim after the data rows.
func writeExtract(t *testing.T, dir, name string, from date.Month, values []int, extra ...string) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < census.PreambleLines; i++ {
		fmt.Fprintf(&b, "%q\n", fmt.Sprintf("%s preamble line %d", name, i+1))
	}
	b.WriteString("Month,Year,42,423,424\n")
	for i, v := range values {
		on := from.AddMonths(i)
		fmt.Fprintf(&b, "%s,%d,\"%d\",,\n", on.Month(), on.Year(), v)
	}
	for _, l := range extra {
		b.WriteString(l + "\n")
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func repeat(v, n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = v
	}
	return values
}

// config returns the pipeline configuration for the two extracts in dir.
func config(dir, sales, inventories string) Config {
	return Config{
		Sales:       census.Source{Path: sales, Name: wts.DefaultSalesName},
		Inventories: census.Source{Path: inventories, Name: wts.DefaultInventoriesName},
		Output:      filepath.Join(dir, "merged_wts_data_nominal.csv"),
	}
}
