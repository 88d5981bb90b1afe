package core

import "time"

// TypeAll matches both incomes and expenses; CategoryAll matches every
// category. Both mirror the "all" option of the filter controls.
const (
	TypeAll     = "all"
	CategoryAll = "all"
)

// DateRange is an inclusive calendar-day window. Start is floored to
// 00:00:00 and End is ceiled to the last instant of its day before any
// comparison; a zero bound is open on that side.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() {
		start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, r.Start.Location())
		if t.Before(start) {
			return false
		}
	}
	if !r.End.IsZero() {
		end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), r.End.Location())
		if t.After(end) {
			return false
		}
	}
	return true
}

// FilterCriteria selects a subset of the transaction ledger. All five
// predicates are ANDed; the zero value of any one predicate is a no-op for
// that dimension. In particular an empty AccountIDs set means "no account
// restriction", not "match nothing".
type FilterCriteria struct {
	SearchTerm string
	Type       string // TypeAll, "income" or "expense"
	AccountIDs []string
	Category   string // CategoryAll or an exact category name
	DateRange  DateRange
}

// DefaultCriteria returns criteria that match every record.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Type: TypeAll, Category: CategoryAll}
}

// IsDefault reports whether no predicate is active.
func (c FilterCriteria) IsDefault() bool {
	return c.SearchTerm == "" &&
		(c.Type == "" || c.Type == TypeAll) &&
		len(c.AccountIDs) == 0 &&
		(c.Category == "" || c.Category == CategoryAll) &&
		c.DateRange.Start.IsZero() && c.DateRange.End.IsZero()
}

// Clone returns a deep copy so pill removal can mutate one dimension
// without aliasing the caller's account-id slice.
func (c FilterCriteria) Clone() FilterCriteria {
	out := c
	if len(c.AccountIDs) > 0 {
		out.AccountIDs = append([]string(nil), c.AccountIDs...)
	}
	return out
}
