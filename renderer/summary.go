package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/wts"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the summary of the merged dataset.
func SummaryMarkdown(s *wts.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Wholesale Trade Summary, %s", s.Period))
	doc.PlainText(fmt.Sprintf("%d monthly records, latest %s.", s.Records, s.Latest.On.Label()))

	doc.H2("Latest Month")
	doc.Table(md.TableSet{
		Header: []string{"Indicator", s.Latest.On.Label()},
		Rows: [][]string{
			{s.Columns.Sales, wts.M(s.Latest.Sales).String()},
			{s.Columns.Inventories, wts.M(s.Latest.Inventories).String()},
			{wts.ColumnRatio, ratio(s.Latest.Ratio.Valid, s.Latest.Ratio.Decimal.StringFixed(2))},
			{wts.ColumnGrowth, wts.P(s.Latest.Growth).SignedString()},
		},
	})

	doc.H2("Inventories to Sales Ratio")
	if s.RatioMonths == 0 {
		doc.PlainText("The ratio is undefined on every month.")
	} else {
		doc.BulletList(
			fmt.Sprintf("Average: %s over %d months", s.AverageRatio.Decimal.StringFixed(2), s.RatioMonths),
			fmt.Sprintf("Lowest: %s in %s", s.MinRatio.Ratio.StringFixed(2), s.MinRatio.On.Label()),
			fmt.Sprintf("Highest: %s in %s", s.MaxRatio.Ratio.StringFixed(2), s.MaxRatio.On.Label()),
		)
	}

	doc.H2("Sales Growth")
	if s.LatestGrowth.On.IsZero() {
		doc.PlainText("Year-over-year growth needs at least 13 months of data.")
	} else {
		doc.PlainText(fmt.Sprintf("Latest year-over-year growth is %s in %s. Sales declined in %d of the last %d months.",
			wts.P(s.LatestGrowth.Growth).SignedString(), s.LatestGrowth.On.Label(), s.NegativeGrowth, len(s.Recent)))
	}

	rows := make([][]string, 0, len(s.Recent))
	for _, m := range s.Recent {
		rows = append(rows, []string{
			m.On.Label(),
			wts.M(m.Sales).String(),
			wts.M(m.Inventories).String(),
			ratio(m.Ratio.Valid, m.Ratio.Decimal.StringFixed(2)),
			wts.P(m.Growth).SignedString(),
		})
	}
	doc.H2("Recent Months")
	doc.Table(md.TableSet{
		Header: []string{"Month", "Sales", "Inventories", "Ratio", "YoY Growth"},
		Rows:   rows,
	})

	return doc.String()
}

func ratio(valid bool, s string) string {
	if !valid {
		return "-"
	}
	return s
}
