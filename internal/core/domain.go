package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	StatusCompleted TransactionStatus = "Completed"
	StatusPending   TransactionStatus = "Pending"
	StatusFailed    TransactionStatus = "Failed"
)

const (
	Weekly   Frequency = "Weekly"
	BiWeekly Frequency = "Bi-Weekly"
	Monthly  Frequency = "Monthly"
	Yearly   Frequency = "Yearly"
)

type (
	TransactionType   string
	TransactionStatus string
	Frequency         string

	// Account is a fixture entity. Balances are USD cents; credit accounts
	// carry negative balances.
	Account struct {
		ID      string
		Type    string // Checking, Savings, Investment, Credit
		Number  string // masked, e.g. "•••• 1234"
		Balance Money
		Change  Money
	}

	// Transaction is an immutable ledger entry scoped to one account.
	Transaction struct {
		ID             string
		Type           TransactionType
		Description    string
		Date           time.Time
		Amount         Money // non-negative; sign is carried by Type
		AccountID      string
		Category       string
		Status         TransactionStatus
		RunningBalance Money // signed, account-scoped
		MerchantLogo   string
	}

	Contact struct {
		ID        string
		Name      string
		AvatarURL string
	}

	ReceiptItem struct {
		Name     string
		Quantity int
		Price    Money
	}

	// Receipt is synthesized at runtime from transfers, payments and
	// donations. It lives in session state only; fixtures never change.
	Receipt struct {
		ID       string
		Vendor   string
		Date     time.Time
		Total    Money
		Category string
		Items    []ReceiptItem
	}

	RecurringPayment struct {
		ID        string
		Recipient string
		Amount    Money
		Frequency Frequency
		NextDate  time.Time
		Category  string
	}

	FaqItem struct {
		Question string
		Answer   string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrUnknownAccount   = errors.New("unknown account")
	ErrUnknownContact   = errors.New("unknown contact")
	ErrUnknownCurrency  = errors.New("unknown currency")
)

func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusFailed:
		return true
	}
	return false
}

func (f Frequency) Valid() bool {
	switch f {
	case Weekly, BiWeekly, Monthly, Yearly:
		return true
	}
	return false
}

func (tx Transaction) Validate() error {
	if strings.TrimSpace(tx.ID) == "" {
		return errors.New("empty transaction id")
	}
	if !tx.Type.Valid() {
		return errors.New("invalid transaction type")
	}
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if tx.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if tx.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(tx.AccountID) == "" {
		return errors.New("empty account id")
	}
	if !tx.Status.Valid() {
		return errors.New("invalid transaction status")
	}
	return nil
}

func (r Receipt) Validate() error {
	if strings.TrimSpace(r.Vendor) == "" {
		return errors.New("empty vendor")
	}
	if r.Date.IsZero() {
		return errors.New("date cannot be zero")
	}
	if err := r.Total.Validate(); err != nil {
		return err
	}
	return nil
}
