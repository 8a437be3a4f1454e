package accounts

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// dayMs is one day in milliseconds, the granularity of expiry labels.
const dayMs = 24 * 60 * 60 * 1000

// Filter selects a slice of the roster by expiry state.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterActive  Filter = "active"
	FilterExpired Filter = "expired"
)

// ParseFilter maps operator input to a Filter, defaulting to FilterAll.
func ParseFilter(s string) (Filter, bool) {
	switch Filter(strings.ToLower(s)) {
	case FilterAll:
		return FilterAll, true
	case FilterActive:
		return FilterActive, true
	case FilterExpired:
		return FilterExpired, true
	}
	return FilterAll, false
}

// Status is the derived, human-facing expiry state of one account.
type Status struct {
	Expired bool
	Label   string
}

// ComputeStatus derives the expiry state of an account at the given
// instant. The boundary is inclusive: at the exact expiry timestamp the
// account counts as expired, with a zero-day label. Accounts without an
// expiry are neither active nor expired.
func ComputeStatus(a Account, now time.Time) Status {
	if !a.HasExpiry() {
		return Status{Label: "No expiry"}
	}

	nowMs := now.UnixMilli()
	if nowMs >= a.ExpiresAt {
		n := ceilDays(nowMs - a.ExpiresAt)
		return Status{Expired: true, Label: fmt.Sprintf("Expired %d %s ago", n, dayWord(n))}
	}

	n := ceilDays(a.ExpiresAt - nowMs)
	return Status{Label: fmt.Sprintf("Expires in %d %s", n, dayWord(n))}
}

func ceilDays(ms int64) int64 {
	return (ms + dayMs - 1) / dayMs
}

func dayWord(n int64) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func matchesFilter(a Account, f Filter, nowMs int64) bool {
	switch f {
	case FilterActive:
		return a.HasExpiry() && a.ExpiresAt >= nowMs
	case FilterExpired:
		return a.HasExpiry() && a.ExpiresAt < nowMs
	default:
		return true
	}
}

func matchesQuery(a Account, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(a.PhoneKey), q) ||
		strings.Contains(strings.ToLower(a.DisplayName), q) ||
		strings.Contains(strings.ToLower(a.Referrer), q)
}

// FilterRoster returns the accounts matching both the search query
// (case-insensitive substring over phone, name, and referrer; empty
// matches all) and the expiry filter, evaluated against now.
func FilterRoster(accounts []Account, query string, filter Filter, now time.Time) []Account {
	nowMs := now.UnixMilli()
	result := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if matchesQuery(a, query) && matchesFilter(a, filter, nowMs) {
			result = append(result, a)
		}
	}
	return result
}

// Counts are roster-wide aggregates, always computed over the full
// roster regardless of the current search or filter selection.
type Counts struct {
	Total   int
	Active  int
	Expired int
}

// AggregateCounts tallies the roster with the same predicates the
// filter uses. Accounts without an expiry contribute to Total only.
func AggregateCounts(accounts []Account, now time.Time) Counts {
	nowMs := now.UnixMilli()
	c := Counts{Total: len(accounts)}
	for _, a := range accounts {
		switch {
		case matchesFilter(a, FilterActive, nowMs):
			c.Active++
		case matchesFilter(a, FilterExpired, nowMs):
			c.Expired++
		}
	}
	return c
}

// SortRoster orders accounts for display: most recently created first.
// The sort is stable, so accounts created at the same instant keep
// their fetch order.
func SortRoster(accounts []Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt > accounts[j].CreatedAt
	})
}
