package wts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/wts/date"
	"github.com/shopspring/decimal"
)

// Column names of the merged dataset. The dashboard binds to them by name.
const (
	ColumnDate   = "Date"
	ColumnRatio  = "Inventories_to_Sales_Ratio_Nominal"
	ColumnGrowth = "Sales_YoY_Growth"

	DefaultSalesName       = "Sales_Total_Nominal"
	DefaultInventoriesName = "Inventories_Total_Nominal"
)

// Columns names the two value columns of the merged dataset.
type Columns struct {
	Sales       string
	Inventories string
}

// DefaultColumns returns the column names of the nominal, seasonally adjusted dataset.
func DefaultColumns() Columns {
	return Columns{Sales: DefaultSalesName, Inventories: DefaultInventoriesName}
}

// Header returns the header row of the merged dataset.
func (c Columns) Header() []string {
	return []string{ColumnDate, c.Sales, c.Inventories, ColumnRatio, ColumnGrowth}
}

// formatNull writes an undefined value as an empty field.
func formatNull(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// EncodeMetrics writes the merged dataset as CSV.
//
// The header is always written, even if metrics is empty.
func EncodeMetrics(w io.Writer, cols Columns, metrics []Metric) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(cols.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, m := range metrics {
		record := []string{
			m.On.String(),
			m.Sales.String(),
			m.Inventories.String(),
			formatNull(m.Ratio),
			formatNull(m.Growth),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d (%s): %w", i, m.On, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseNull(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// DecodeMetrics reads a merged dataset written by EncodeMetrics.
func DecodeMetrics(r io.Reader) (Columns, []Metric, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 5

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Columns{}, nil, &FormatError{Reason: "missing header row"}
	}
	if err != nil {
		return Columns{}, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if header[0] != ColumnDate || header[3] != ColumnRatio || header[4] != ColumnGrowth {
		return Columns{}, nil, &FormatError{Reason: fmt.Sprintf("unexpected header %q", header)}
	}
	cols := Columns{Sales: header[1], Inventories: header[2]}

	var metrics []Metric
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return cols, nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}
		var m Metric
		if m.On, err = date.Parse(record[0]); err != nil {
			return cols, nil, fmt.Errorf("line %d: %w", line, err)
		}
		if m.Sales, err = decimal.NewFromString(record[1]); err != nil {
			return cols, nil, fmt.Errorf("line %d: invalid %s %q: %w", line, cols.Sales, record[1], err)
		}
		if m.Inventories, err = decimal.NewFromString(record[2]); err != nil {
			return cols, nil, fmt.Errorf("line %d: invalid %s %q: %w", line, cols.Inventories, record[2], err)
		}
		if m.Ratio, err = parseNull(record[3]); err != nil {
			return cols, nil, fmt.Errorf("line %d: invalid %s %q: %w", line, ColumnRatio, record[3], err)
		}
		if m.Growth, err = parseNull(record[4]); err != nil {
			return cols, nil, fmt.Errorf("line %d: invalid %s %q: %w", line, ColumnGrowth, record[4], err)
		}
		metrics = append(metrics, m)
	}
	return cols, metrics, nil
}
