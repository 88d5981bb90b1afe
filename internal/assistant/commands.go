// Package assistant implements the voice/chat assistant: a small command
// set executed against the fixture catalog, plus an optional model-backed
// router that maps free-form utterances onto those commands.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"scbank/internal/catalog"
	"scbank/internal/core"
	"scbank/internal/query"
	"scbank/internal/services"
	"scbank/internal/session"
)

// Command names the assistant understands.
const (
	CmdGetAccountBalance     = "GetAccountBalance"
	CmdGetRecentTransactions = "GetRecentTransactions"
	CmdInitiateTransfer      = "InitiateTransfer"
	CmdConvertCurrency       = "ConvertCurrency"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Intent is a routed command with its extracted arguments.
type Intent struct {
	Command string            `json:"command"`
	Args    map[string]string `json:"args"`
}

// Result is what the assistant speaks back.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func errorResult(format string, args ...any) Result {
	return Result{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Dispatcher executes intents against the catalog and services.
type Dispatcher struct {
	catalog   *catalog.Catalog
	transfers *services.TransferService
}

func NewDispatcher(cat *catalog.Catalog, transfers *services.TransferService) *Dispatcher {
	return &Dispatcher{catalog: cat, transfers: transfers}
}

// Execute runs one intent. Unknown commands and bad arguments come back as
// error results, never as Go errors; the assistant always answers.
func (d *Dispatcher) Execute(ctx context.Context, m *session.Machine, sessionID string, intent Intent) Result {
	switch intent.Command {
	case CmdGetAccountBalance:
		return d.accountBalance(intent.Args["accountType"])
	case CmdGetRecentTransactions:
		return d.recentTransactions(intent.Args["count"])
	case CmdInitiateTransfer:
		return d.initiateTransfer(ctx, m, sessionID, intent.Args)
	case CmdConvertCurrency:
		return d.convertCurrency(intent.Args)
	default:
		return errorResult("I don't know how to do that yet.")
	}
}

func (d *Dispatcher) accountBalance(accountType string) Result {
	if accountType == "" {
		accountType = "Checking"
	}
	acc, err := d.catalog.AccountByType(accountType)
	if err != nil {
		return errorResult("I couldn't find a %s account.", accountType)
	}
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Your %s account balance is $%s.", acc.Type, acc.Balance.DecimalString()),
	}
}

func (d *Dispatcher) recentTransactions(countArg string) Result {
	count := 3
	if countArg != "" {
		if _, err := fmt.Sscanf(countArg, "%d", &count); err != nil || count < 1 {
			count = 3
		}
	}
	records := query.Filter(d.catalog.Transactions(), core.DefaultCriteria())
	if len(records) > count {
		records = records[:count]
	}

	lines := make([]string, 0, len(records))
	for _, tx := range records {
		lines = append(lines, fmt.Sprintf("%s: %s $%s",
			tx.Date.Format("Jan 2"), tx.Description, tx.Amount.DecimalString()))
	}
	return Result{
		Status:  StatusSuccess,
		Message: "Here are your latest transactions. " + strings.Join(lines, "; ") + ".",
	}
}

func (d *Dispatcher) initiateTransfer(ctx context.Context, m *session.Machine, sessionID string, args map[string]string) Result {
	contact := args["contact"]
	var cents int64
	if _, err := fmt.Sscanf(args["amountCents"], "%d", &cents); err != nil {
		return errorResult("I didn't catch the amount.")
	}

	account, err := d.catalog.AccountByType("Checking")
	if err != nil {
		return errorResult("No checking account available.")
	}
	receipt, err := d.transfers.Transfer(ctx, m, services.TransferRequest{
		SessionID:   sessionID,
		FromAccount: account.ID,
		ContactName: contact,
		AmountCents: cents,
	})
	if err != nil {
		return errorResult("The transfer failed: %v.", err)
	}

	// A spoken transfer lands on the celebration view, like the on-screen flow.
	var nav session.Navigator = m
	_ = nav.GoTo(session.ViewCongratulations)

	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("Done. I sent $%s to %s.", receipt.Total.DecimalString(), contact),
	}
}

func (d *Dispatcher) convertCurrency(args map[string]string) Result {
	var cents int64
	if _, err := fmt.Sscanf(args["amountCents"], "%d", &cents); err != nil {
		return errorResult("I didn't catch the amount.")
	}
	currency := strings.ToUpper(args["currency"])
	converted, err := d.transfers.Convert(cents, currency)
	if err != nil {
		return errorResult("I can't convert to %s.", currency)
	}
	return Result{
		Status:  StatusSuccess,
		Message: fmt.Sprintf("$%s is about %.2f %s.", core.Money{Cents: cents}.DecimalString(), converted, currency),
	}
}
