package accounts

import (
	"strings"
	"time"
	"unicode"
)

// FormatTimestamp renders a millisecond timestamp for the roster table:
// "Today, 3:04 PM", "Yesterday, 3:04 PM", or a full date. Zero renders
// as "N/A".
func FormatTimestamp(ms int64, now time.Time) string {
	if ms == 0 {
		return "N/A"
	}

	tm := time.UnixMilli(ms).In(now.Location())
	clock := tm.Format("3:04 PM")

	if sameDay(tm, now) {
		return "Today, " + clock
	}
	if sameDay(tm, now.AddDate(0, 0, -1)) {
		return "Yesterday, " + clock
	}
	return tm.Format("Jan 2, 2006, 3:04 PM")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatPhone renders a stored phone for display: non-digits are
// dropped and the country prefix is stripped when the number is longer
// than 10 digits, so keys show the way they were entered.
func FormatPhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if digits == "" {
		return "N/A"
	}
	if strings.HasPrefix(digits, countryPrefix) && len(digits) > 10 {
		return digits[len(countryPrefix):]
	}
	return digits
}
