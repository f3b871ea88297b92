package merge

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Display formatting for cell values. All three functions are total: a
// missing value renders as "" and anything unparsable falls back to the raw
// string, because one malformed cell must not abort the batch.

// dateLayouts are tried in order; day-first layouts come first to match the
// source locale.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"01-02-06",
	time.RFC3339,
}

// FormatDate renders value using the given Go layout. Values already shaped
// like a date are re-formatted; bare numbers are interpreted as Excel serial
// dates; anything else is returned as-is.
func FormatDate(value, layout string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return t.Format(layout)
		}
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial >= 1 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(layout)
		}
	}
	return value
}

// FormatInt renders value rounded to the nearest integer with "." as the
// thousands separator.
func FormatInt(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return value
	}
	return groupThousands(d.Round(0))
}

// FormatCurrency renders value with zero decimal places and "." as the
// thousands separator.
func FormatCurrency(value string) string {
	return FormatInt(value)
}

// coerceNumber parses a numeric operand for the derived line total; an
// unparsable operand counts as zero rather than poisoning the product.
func coerceNumber(value string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func groupThousands(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
