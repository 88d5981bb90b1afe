package query

import (
	"fmt"
	"strings"
	"time"

	"scbank/internal/core"
)

// Pill kinds. Account pills carry the account id in Value; the other kinds
// identify a single criteria dimension on their own.
const (
	PillSearch    = "search"
	PillType      = "type"
	PillCategory  = "category"
	PillDateStart = "dateStart"
	PillDateEnd   = "dateEnd"
	PillAccount   = "account"
)

// Pill is one removable chip for an active (non-default) filter predicate.
// Removing a pill clears exactly that predicate; every other dimension of
// the criteria is left untouched.
type Pill struct {
	Kind  string
	Value string // account id for PillAccount, empty otherwise
	Label string
}

// ActivePills derives the pill row for the given criteria. Account pills
// are emitted one per selected id, labelled with the account's last four
// digits; ids that match no known account are skipped.
func ActivePills(c core.FilterCriteria, accounts []core.Account) []Pill {
	var pills []Pill
	if c.SearchTerm != "" {
		pills = append(pills, Pill{Kind: PillSearch, Label: fmt.Sprintf("Search: %q", c.SearchTerm)})
	}
	if c.Type != "" && c.Type != core.TypeAll {
		pills = append(pills, Pill{Kind: PillType, Label: "Type: " + titleCase(c.Type)})
	}
	if c.Category != "" && c.Category != core.CategoryAll {
		pills = append(pills, Pill{Kind: PillCategory, Label: "Category: " + c.Category})
	}
	if !c.DateRange.Start.IsZero() {
		pills = append(pills, Pill{Kind: PillDateStart, Label: "From: " + formatPillDate(c.DateRange.Start)})
	}
	if !c.DateRange.End.IsZero() {
		pills = append(pills, Pill{Kind: PillDateEnd, Label: "To: " + formatPillDate(c.DateRange.End)})
	}
	for _, id := range c.AccountIDs {
		for _, acc := range accounts {
			if acc.ID == id {
				pills = append(pills, Pill{Kind: PillAccount, Value: id, Label: "Acc: " + lastFour(acc.Number)})
				break
			}
		}
	}
	return pills
}

// Remove returns a copy of the criteria with only this pill's dimension
// cleared.
func (p Pill) Remove(c core.FilterCriteria) core.FilterCriteria {
	out := c.Clone()
	switch p.Kind {
	case PillSearch:
		out.SearchTerm = ""
	case PillType:
		out.Type = core.TypeAll
	case PillCategory:
		out.Category = core.CategoryAll
	case PillDateStart:
		out.DateRange.Start = time.Time{}
	case PillDateEnd:
		out.DateRange.End = time.Time{}
	case PillAccount:
		kept := out.AccountIDs[:0]
		for _, id := range out.AccountIDs {
			if id != p.Value {
				kept = append(kept, id)
			}
		}
		out.AccountIDs = kept
	}
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatPillDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func lastFour(number string) string {
	digits := make([]rune, 0, len(number))
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) <= 4 {
		return string(digits)
	}
	return string(digits[len(digits)-4:])
}
