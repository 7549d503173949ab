// Package census parses the monthly wholesale trade extracts of the U.S. Census Bureau.
//
// An extract is a CSV file made of a fixed preamble (report title, notes and
// units), a header row, and one row per month. Only the Month, Year and one
// value column are kept; rows that cannot be read are dropped and counted.
package census

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/wts"
	"github.com/etnz/wts/date"
)

const (
	// PreambleLines is the number of lines before the header row. Blank lines are not counted.
	PreambleLines = 16
	// DefaultColumn is the value column of total merchant wholesalers (NAICS 42).
	DefaultColumn = "42"

	monthHeader = "Month"
	yearHeader  = "Year"
)

// Source describes one extract and the series to read from it.
type Source struct {
	Path   string // Path of the extract, only used by LoadFile.
	Column string // Header of the value column, DefaultColumn if empty.
	Name   string // Name of the resulting series.
}

func (s Source) column() string {
	if s.Column == "" {
		return DefaultColumn
	}
	return s.Column
}

// Stats counts what happened to the data rows of an extract.
type Stats struct {
	Rows       int // data rows read after the header.
	Kept       int // months in the resulting series.
	BadMonth   int // rows dropped because the month label is not a month name.
	BadYear    int // rows dropped because the year is not a 4-digit year.
	BadValue   int // rows dropped because the value is not a number.
	Duplicates int // rows that replaced an earlier row for the same month.
}

// Dropped returns the number of rows that did not make it to the series.
func (s Stats) Dropped() int { return s.BadMonth + s.BadYear + s.BadValue }

func (s Stats) String() string {
	return fmt.Sprintf("%d rows, %d months kept, %d dropped (month: %d, year: %d, value: %d), %d duplicates",
		s.Rows, s.Kept, s.Dropped(), s.BadMonth, s.BadYear, s.BadValue, s.Duplicates)
}

// LoadFile loads the series described by src from the extract at src.Path.
//
// Format errors are reported with the file path.
func LoadFile(src Source) (*wts.Series, Stats, error) {
	f, err := os.Open(src.Path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("failed to open %s extract: %w", src.Name, err)
	}
	defer f.Close()

	series, stats, err := Load(f, src)
	var format *wts.FormatError
	if errors.As(err, &format) && format.File == "" {
		format.File = src.Path
	}
	return series, stats, err
}

// Load reads a census extract from r and returns the cleaned monthly series.
//
// It returns a *wts.FormatError if the preamble or the header row is missing,
// or if the header lacks the Month, Year or value column. Malformed data rows
// are not errors: they are dropped and counted in Stats.
func Load(r io.Reader, src Source) (*wts.Series, Stats, error) {
	var stats Stats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	for i := 0; i < PreambleLines; i++ {
		if _, err := reader.Read(); errors.Is(err, io.EOF) {
			return nil, stats, &wts.FormatError{Reason: fmt.Sprintf("file ends after %d lines, expected a %d-line preamble", i, PreambleLines)}
		} else if err != nil {
			return nil, stats, fmt.Errorf("failed to read preamble line %d: %w", i+1, err)
		}
	}

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, &wts.FormatError{Reason: fmt.Sprintf("missing header row after the %d-line preamble", PreambleLines)}
	}
	if err != nil {
		return nil, stats, fmt.Errorf("failed to read header row: %w", err)
	}
	cols, err := locate(header, monthHeader, yearHeader, src.column())
	if err != nil {
		return nil, stats, err
	}
	monthIdx, yearIdx, valueIdx := cols[0], cols[1], cols[2]

	series := wts.NewSeries(src.Name)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("failed to read data row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		month, ok := parseMonth(field(record, monthIdx))
		if !ok {
			stats.BadMonth++
			continue
		}
		year, ok := parseYear(field(record, yearIdx))
		if !ok {
			stats.BadYear++
			continue
		}
		value, ok := parseValue(field(record, valueIdx))
		if !ok {
			stats.BadValue++
			continue
		}
		if series.Set(date.New(year, month), value) {
			stats.Duplicates++
		}
	}
	stats.Kept = series.Len()
	return series, stats, nil
}

// locate returns the index of each wanted column in the header.
func locate(header []string, names ...string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		idx[i] = -1
		for j, h := range header {
			if strings.TrimSpace(h) == name {
				idx[i] = j
				break
			}
		}
		if idx[i] < 0 {
			missing = append(missing, fmt.Sprintf("%q", name))
		}
	}
	if len(missing) > 0 {
		return nil, &wts.FormatError{Reason: fmt.Sprintf("header row %d lacks column %s (found %q)", PreambleLines+1, strings.Join(missing, ", "), header)}
	}
	return idx, nil
}

// field returns the i-th field of record or "" if the record is too short.
func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
