// Package charts draws the verification charts of the merged dataset.
//
// The charts are native line charts of an XLSX workbook: a Data sheet holds
// the dataset and a Charts sheet holds the four charts reading from it.
package charts

import (
	"fmt"

	"github.com/etnz/wts"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	// DataSheet holds the merged dataset, one row per month after the header.
	DataSheet = "Data"
	// ChartsSheet holds the charts.
	ChartsSheet = "Charts"
	// AverageHeader is the header of the constant average ratio column.
	AverageHeader = "Average_Inventories_to_Sales_Ratio"

	chartWidth  = 720
	chartHeight = 300
	chartRows   = 16 // rows between two chart anchors
)

// data sheet columns
const (
	colDate = iota + 1
	colSales
	colInventories
	colRatio
	colGrowth
	colAverage
)

// Render writes the charts workbook of chronological metrics to path.
func Render(path string, cols wts.Columns, metrics []wts.Metric) error {
	f, err := Build(cols, metrics)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save charts to %s: %w", path, err)
	}
	return nil
}

// Build returns the charts workbook of chronological metrics.
func Build(cols wts.Columns, metrics []wts.Metric) (*excelize.File, error) {
	summary, err := wts.Summarize(cols, metrics)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeData(f, cols, metrics, summary.AverageRatio); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write data sheet: %w", err)
	}
	if _, err := f.NewSheet(ChartsSheet); err != nil {
		f.Close()
		return nil, err
	}

	for i, chart := range verificationCharts(cols, metrics, summary.AverageRatio.Valid) {
		anchor, err := excelize.CoordinatesToCellName(1, 1+i*chartRows)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.AddChart(ChartsSheet, anchor, chart); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add chart %q: %w", chart.Title[0].Text, err)
		}
	}
	return f, nil
}

// writeData writes the header and one row per metric. Undefined values are left blank.
func writeData(f *excelize.File, cols wts.Columns, metrics []wts.Metric, average decimal.NullDecimal) error {
	header := append(cols.Header(), AverageHeader)
	for i, h := range header {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}
	for i, m := range metrics {
		row := i + 2
		values := map[int]any{
			colDate:        m.On.String(),
			colSales:       m.Sales.InexactFloat64(),
			colInventories: m.Inventories.InexactFloat64(),
		}
		if m.Ratio.Valid {
			values[colRatio] = m.Ratio.Decimal.InexactFloat64()
		}
		if m.Growth.Valid {
			values[colGrowth] = m.Growth.Decimal.InexactFloat64()
		}
		if average.Valid {
			values[colAverage] = average.Decimal.InexactFloat64()
		}
		for col := colDate; col <= colAverage; col++ {
			v, ok := values[col]
			if !ok {
				continue
			}
			if err := setCell(f, col, row, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(DataSheet, cell, value)
}

// column returns the absolute reference to the rows [from, to] of a data sheet column.
func column(col, from, to int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s!$%s$%d:$%s$%d", DataSheet, name, from, name, to)
}

// header returns the absolute reference to the header cell of a data sheet column.
func header(col int) string {
	name, _ := excelize.ColumnNumberToName(col)
	return fmt.Sprintf("%s!$%s$1", DataSheet, name)
}

func line(title, axis string, series ...excelize.ChartSeries) *excelize.Chart {
	return &excelize.Chart{
		Type:      excelize.Line,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: title}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: axis}}},
		Dimension: excelize.ChartDimension{Width: chartWidth, Height: chartHeight},
	}
}

// verificationCharts returns the sales trend, the ratio trend, the sales growth
// and the sales versus inventories charts.
func verificationCharts(cols wts.Columns, metrics []wts.Metric, withAverage bool) []*excelize.Chart {
	last := len(metrics) + 1
	serie := func(col, from, to int) excelize.ChartSeries {
		return excelize.ChartSeries{
			Name:       header(col),
			Categories: column(colDate, from, to),
			Values:     column(col, from, to),
		}
	}

	ratio := []excelize.ChartSeries{serie(colRatio, 2, last)}
	if withAverage {
		ratio = append(ratio, serie(colAverage, 2, last))
	}

	// growth is only drawn from its first defined month
	first := 0
	for i, m := range metrics {
		if m.Growth.Valid {
			first = i + 2
			break
		}
	}
	growth := line(fmt.Sprintf("Year-over-Year Growth in %s", cols.Sales), "Growth (%)")
	if first > 0 {
		growth.Series = []excelize.ChartSeries{serie(colGrowth, first, last)}
	}

	charts := []*excelize.Chart{
		line(fmt.Sprintf("%s over Time", cols.Sales), "Millions of Dollars", serie(colSales, 2, last)),
		line("Inventories to Sales Ratio over Time", "Ratio", ratio...),
		growth,
		line(fmt.Sprintf("%s vs %s", cols.Sales, cols.Inventories), "Millions of Dollars",
			serie(colSales, 2, last), serie(colInventories, 2, last)),
	}
	out := charts[:0]
	for _, c := range charts {
		if len(c.Series) > 0 {
			out = append(out, c)
		}
	}
	return out
}
