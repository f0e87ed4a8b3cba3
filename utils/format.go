package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// FormatBRL renders a value the way the storefront prints prices: "R$ 1.234,56".
func FormatBRL(v float64) string {
	cents := int64(math.Round(v * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	intPart := strconv.FormatInt(cents/100, 10)
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	frac := cents % 100
	return sign + "R$ " + b.String() + "," + strconv.FormatInt(frac/10, 10) + strconv.FormatInt(frac%10, 10)
}

// FormatDate renders dd/mm/yyyy in the given location (UTC when nil).
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01/2006")
}

// Truncate cuts s to max runes and appends "..." when it had to cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
