package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Nivaldeir/erp-easy-remote/internal/models"

	"golang.org/x/text/transform"
)

var currencyMarker = regexp.MustCompile(`(?i)r\$\s*`)

// ParseCurrency converts a Brazilian-locale currency string into a
// float. When both '.' and ',' appear, whichever occurs last is the
// decimal separator and the other is stripped as a thousands separator;
// a lone ',' is the decimal separator; canonical decimal strings pass
// through unchanged. Anything unparseable yields 0.
func ParseCurrency(raw string) float64 {
	if raw == "" {
		return 0
	}

	cleaned := currencyMarker.ReplaceAllString(raw, "")
	cleaned = strings.Join(strings.Fields(cleaned), "")
	if cleaned == "" {
		return 0
	}

	hasDot := strings.Contains(cleaned, ".")
	hasComma := strings.Contains(cleaned, ",")

	switch {
	case hasDot && hasComma:
		if strings.LastIndex(cleaned, ",") > strings.LastIndex(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.Replace(cleaned, ",", ".", 1)
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case hasComma:
		last := strings.LastIndex(cleaned, ",")
		cleaned = strings.ReplaceAll(cleaned[:last], ",", "") + "." + cleaned[last+1:]
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		// "1.234.567" with no comma: retry with the dots stripped as
		// thousands separators.
		if strings.Count(cleaned, ".") > 1 {
			if v, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ".", ""), 64); err == nil {
				return v
			}
		}
		return 0
	}
	return value
}

// ParseDate reads a dd/mm/yyyy date into local midnight. Values without
// a '/' fall back to ISO layouts. Empty, placeholder, and unparseable
// input all yield nil, which is "no date", not an error.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if !usable(raw) {
		return nil
	}

	if strings.Contains(raw, "/") {
		parts := strings.Split(raw, "/")
		if len(parts) != 3 {
			return nil
		}
		day, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil || day == 0 || month == 0 || year == 0 {
			return nil
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		return &t
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
			return &t
		}
	}
	return nil
}

// ParseStatus normalizes free-text status values. The second return
// reports whether the text was recognized: unrecognized text still maps
// to PENDING so the row is not lost, but callers surface it as a warning
// instead of silently collapsing it.
func ParseStatus(raw string) (models.AccountStatus, bool) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if folded, _, err := transform.String(accentFolder, upper); err == nil {
		upper = folded
	}

	switch {
	case upper == "":
		return models.AccountPending, true
	case strings.Contains(upper, "PAGO") || upper == "PAID":
		return models.AccountPaid, true
	case strings.Contains(upper, "ATRASAD") || upper == "LATE" || upper == "OVERDUE":
		return models.AccountLate, true
	case strings.Contains(upper, "PENDENTE") || upper == "PENDING" || upper == "ABERTO" || upper == "EM ABERTO":
		return models.AccountPending, true
	default:
		return models.AccountPending, false
	}
}
