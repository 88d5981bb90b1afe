// Package query implements the transaction query engine: filtering over the
// fixture ledger, the stricter global search, the CSV export and the
// active-filter pill derivation. Everything here is a pure function of its
// inputs; the engine holds no state.
package query

import (
	"sort"
	"strings"

	"scbank/internal/core"
)

// GlobalSearchMinLength is the minimum query length for the global search
// overlay. Shorter queries return nothing rather than everything; the
// transactions-page filter has no such minimum and treats an empty search
// as "no filter".
const GlobalSearchMinLength = 2

const (
	globalSearchMaxTransactions = 5
	globalSearchMaxFaqs         = 3
)

// Filter applies all five criteria predicates (ANDed) to the ledger and
// returns the matches ordered by descending timestamp. The input slice is
// never mutated and the result ordering is a contract: the transaction list
// and the CSV export both depend on it.
func Filter(records []core.Transaction, c core.FilterCriteria) []core.Transaction {
	out := make([]core.Transaction, 0, len(records))
	for _, tx := range records {
		if Matches(tx, c) {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		// Equal timestamps: fall back to id so repeated calls agree.
		return out[i].ID > out[j].ID
	})
	return out
}

// Matches reports whether a single record satisfies every active predicate.
func Matches(tx core.Transaction, c core.FilterCriteria) bool {
	return matchesSearch(tx, c.SearchTerm) &&
		matchesType(tx, c.Type) &&
		matchesAccounts(tx, c.AccountIDs) &&
		matchesCategory(tx, c.Category) &&
		c.DateRange.Contains(tx.Date)
}

func matchesSearch(tx core.Transaction, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(tx.Description), needle) ||
		strings.Contains(strings.ToLower(tx.Category), needle) ||
		strings.Contains(tx.Amount.DecimalString(), needle)
}

func matchesType(tx core.Transaction, t string) bool {
	return t == "" || t == core.TypeAll || string(tx.Type) == t
}

func matchesAccounts(tx core.Transaction, ids []string) bool {
	if len(ids) == 0 {
		return true
	}
	for _, id := range ids {
		if tx.AccountID == id {
			return true
		}
	}
	return false
}

func matchesCategory(tx core.Transaction, cat string) bool {
	return cat == "" || cat == core.CategoryAll || tx.Category == cat
}

// GlobalSearchResult holds the capped per-section results of the global
// search overlay.
type GlobalSearchResult struct {
	Transactions []core.Transaction
	Faqs         []core.FaqItem
}

// GlobalSearch matches transactions (description, category) and FAQ entries
// (question, answer) case-insensitively. Queries shorter than
// GlobalSearchMinLength yield an empty result.
func GlobalSearch(records []core.Transaction, faqs []core.FaqItem, q string) GlobalSearchResult {
	var res GlobalSearchResult
	q = strings.TrimSpace(q)
	if len([]rune(q)) < GlobalSearchMinLength {
		return res
	}
	needle := strings.ToLower(q)

	for _, tx := range records {
		if len(res.Transactions) >= globalSearchMaxTransactions {
			break
		}
		if strings.Contains(strings.ToLower(tx.Description), needle) ||
			strings.Contains(strings.ToLower(tx.Category), needle) {
			res.Transactions = append(res.Transactions, tx)
		}
	}
	for _, faq := range faqs {
		if len(res.Faqs) >= globalSearchMaxFaqs {
			break
		}
		if strings.Contains(strings.ToLower(faq.Question), needle) ||
			strings.Contains(strings.ToLower(faq.Answer), needle) {
			res.Faqs = append(res.Faqs, faq)
		}
	}
	return res
}
