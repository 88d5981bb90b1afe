// Package catalog holds the read-only fixture data behind the demo bank:
// accounts, the transaction ledger, contacts, categories, FAQ entries and
// exchange rates. The set is fixed at load time and safe for concurrent
// reads; runtime additions (receipts) belong to the session, never here.
package catalog

import (
	"strings"
	"time"

	"scbank/internal/core"
)

type Catalog struct {
	accounts     []core.Account
	transactions []core.Transaction
	contacts     []core.Contact
	icons        map[string]string // category -> icon key
	faqs         []core.FaqItem
	recurring    []core.RecurringPayment
	receipts     []core.Receipt
	rates        map[string]float64 // ISO code -> units per USD
}

// New builds the catalog from the built-in fixture set.
func New() *Catalog {
	return &Catalog{
		accounts:     defaultAccounts(),
		transactions: defaultTransactions(),
		contacts:     defaultContacts(),
		icons:        defaultCategoryIcons(),
		faqs:         defaultFaqs(),
		recurring:    defaultRecurringPayments(),
		receipts:     defaultReceipts(),
		rates:        defaultRates(),
	}
}

// Accounts returns a copy of the account fixtures.
func (c *Catalog) Accounts() []core.Account {
	return append([]core.Account(nil), c.accounts...)
}

// AccountByID returns the account with the given id.
func (c *Catalog) AccountByID(id string) (core.Account, error) {
	for _, a := range c.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return core.Account{}, core.ErrUnknownAccount
}

// AccountByType returns the first account of the given type, matched
// case-insensitively ("checking", "Savings", ...).
func (c *Catalog) AccountByType(accountType string) (core.Account, error) {
	for _, a := range c.accounts {
		if strings.EqualFold(a.Type, accountType) {
			return a, nil
		}
	}
	return core.Account{}, core.ErrUnknownAccount
}

// Transactions returns a copy of the full ledger. Callers may reorder the
// copy freely; the fixture order is not a contract.
func (c *Catalog) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), c.transactions...)
}

// Contacts returns a copy of the contact fixtures.
func (c *Catalog) Contacts() []core.Contact {
	return append([]core.Contact(nil), c.contacts...)
}

// ContactByName matches a contact by full name, case-insensitively.
func (c *Catalog) ContactByName(name string) (core.Contact, error) {
	for _, ct := range c.contacts {
		if strings.EqualFold(ct.Name, strings.TrimSpace(name)) {
			return ct, nil
		}
	}
	return core.Contact{}, core.ErrUnknownContact
}

// Categories returns the known transaction categories in fixture order.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.icons))
	for _, cat := range categoryOrder {
		if _, ok := c.icons[cat]; ok {
			out = append(out, cat)
		}
	}
	return out
}

// IconFor returns the icon key for a category, falling back to the generic
// receipt icon for unknown categories.
func (c *Catalog) IconFor(category string) string {
	if icon, ok := c.icons[category]; ok {
		return icon
	}
	return "fa-receipt"
}

// Faqs returns the support FAQ fixtures.
func (c *Catalog) Faqs() []core.FaqItem {
	return append([]core.FaqItem(nil), c.faqs...)
}

// RecurringPayments returns the recurring payment fixtures.
func (c *Catalog) RecurringPayments() []core.RecurringPayment {
	return append([]core.RecurringPayment(nil), c.recurring...)
}

// SeedReceipts returns the receipts every fresh session starts with.
func (c *Catalog) SeedReceipts() []core.Receipt {
	return append([]core.Receipt(nil), c.receipts...)
}

// Rate returns the exchange rate for an ISO currency code as units per USD.
func (c *Catalog) Rate(code string) (float64, error) {
	if r, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return r, nil
	}
	return 0, core.ErrUnknownCurrency
}

func mustDate(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("catalog: bad fixture date " + value)
	}
	return t
}

func usd(cents int64) core.Money {
	return core.Money{Cents: cents}
}
