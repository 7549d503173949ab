package census

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// footnotes are the census flags that may be glued to a month name:
// preliminary ("Marchp") and revised ("Aprilr").
var footnotes = map[string]bool{"p": true, "r": true}

// parseMonth returns the month named by a report label.
//
// Punctuation and spaces are removed first, so "March (p)" and "March*" read as
// "Marchp" and "March". A footnote flag glued after a full month name is then
// ignored, any other suffix rejects the label.
func parseMonth(label string) (time.Month, bool) {
	var b strings.Builder
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	for m := time.January; m <= time.December; m++ {
		name := m.String()
		if len(cleaned) < len(name) || !strings.EqualFold(cleaned[:len(name)], name) {
			continue
		}
		if marker := cleaned[len(name):]; marker == "" || footnotes[marker] {
			return m, true
		}
	}
	return 0, false
}

// parseYear reads a 4-digit year. The ".0" left by spreadsheet exports is tolerated.
func parseYear(label string) (int, bool) {
	label = strings.TrimSuffix(strings.TrimSpace(label), ".0")
	if len(label) != 4 {
		return 0, false
	}
	for _, r := range label {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(label)
	if err != nil || year < 1 {
		return 0, false
	}
	return year, true
}

// parseValue reads a report value, removing the thousands separators.
//
// Census placeholders like "(S)" or "(NA)" are not numbers and are rejected.
func parseValue(field string) (decimal.Decimal, bool) {
	field = strings.TrimSpace(strings.ReplaceAll(field, ",", ""))
	if field == "" {
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(field)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return value, true
}
