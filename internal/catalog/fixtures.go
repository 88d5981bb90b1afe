package catalog

import (
	"time"

	"scbank/internal/core"
)

// categoryOrder preserves the display order of the category controls.
var categoryOrder = []string{
	"Groceries", "Salary", "Shopping", "Subscription", "Dividends",
	"Transport", "Dining", "Utilities", "Rent", "Travel", "Electronics",
	"Transfers", "Other",
}

func defaultAccounts() []core.Account {
	return []core.Account{
		{ID: "acc-1", Type: "Checking", Number: "•••• 1234", Balance: usd(2548055), Change: usd(-12075)},
		{ID: "acc-2", Type: "Savings", Number: "•••• 5678", Balance: usd(15023020), Change: usd(5540)},
		{ID: "acc-3", Type: "Investment", Number: "•••• 9012", Balance: usd(8834590), Change: usd(125080)},
		{ID: "acc-4", Type: "Credit", Number: "•••• 3456", Balance: usd(-458000), Change: usd(-25000)},
	}
}

func defaultTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: "tx-9", Type: core.Expense, Description: "Pending - Uber Trip", Date: mustDate("2024-07-26T11:00:00Z"), Amount: usd(2550), AccountID: "acc-4", Category: "Transport", Status: core.StatusPending, RunningBalance: usd(-460550), MerchantLogo: "https://logo.clearbit.com/uber.com"},
		{ID: "tx-1", Type: core.Expense, Description: "Apple Store", Date: mustDate("2024-07-25T14:00:00Z"), Amount: usd(125000), AccountID: "acc-4", Category: "Electronics", Status: core.StatusCompleted, RunningBalance: usd(-458000), MerchantLogo: "https://logo.clearbit.com/apple.com"},
		{ID: "tx-2", Type: core.Expense, Description: "Costco Wholesale", Date: mustDate("2024-07-22T10:30:00Z"), Amount: usd(25075), AccountID: "acc-4", Category: "Groceries", Status: core.StatusCompleted, RunningBalance: usd(-333000), MerchantLogo: "https://logo.clearbit.com/costco.com"},
		{ID: "tx-3", Type: core.Income, Description: "Direct Deposit - Nordic Builders AB", Date: mustDate("2024-07-21T09:00:00Z"), Amount: usd(550000), AccountID: "acc-1", Category: "Salary", Status: core.StatusCompleted, RunningBalance: usd(2548055)},
		{ID: "tx-4", Type: core.Expense, Description: "Shell Gas Station", Date: mustDate("2024-07-20T17:45:00Z"), Amount: usd(5520), AccountID: "acc-1", Category: "Transport", Status: core.StatusCompleted, RunningBalance: usd(1998055), MerchantLogo: "https://logo.clearbit.com/shell.com"},
		{ID: "tx-5", Type: core.Expense, Description: "Amazon.com", Date: mustDate("2024-07-20T14:00:00Z"), Amount: usd(7599), AccountID: "acc-4", Category: "Shopping", Status: core.StatusCompleted, RunningBalance: usd(-307925), MerchantLogo: "https://logo.clearbit.com/amazon.com"},
		{ID: "tx-6", Type: core.Expense, Description: "Netflix Subscription", Date: mustDate("2024-07-19T18:00:00Z"), Amount: usd(1599), AccountID: "acc-4", Category: "Subscription", Status: core.StatusCompleted, RunningBalance: usd(-300326), MerchantLogo: "https://logo.clearbit.com/netflix.com"},
		{ID: "tx-7", Type: core.Income, Description: "Stock Dividend - AAPL", Date: mustDate("2024-07-18T12:00:00Z"), Amount: usd(12050), AccountID: "acc-3", Category: "Dividends", Status: core.StatusCompleted, RunningBalance: usd(8834590)},
		{ID: "tx-8", Type: core.Expense, Description: "The Cheesecake Factory", Date: mustDate("2024-07-17T19:30:00Z"), Amount: usd(11240), AccountID: "acc-1", Category: "Dining", Status: core.StatusCompleted, RunningBalance: usd(2003575), MerchantLogo: "https://logo.clearbit.com/thecheesecakefactory.com"},
		{ID: "tx-10", Type: core.Expense, Description: "Con Edison", Date: mustDate("2024-07-15T09:00:00Z"), Amount: usd(8560), AccountID: "acc-1", Category: "Utilities", Status: core.StatusCompleted, RunningBalance: usd(2014815)},
		{ID: "tx-11", Type: core.Income, Description: "Venmo Payment from Jane", Date: mustDate("2024-07-14T15:20:00Z"), Amount: usd(5000), AccountID: "acc-1", Category: "Other", Status: core.StatusCompleted, RunningBalance: usd(2023375), MerchantLogo: "https://logo.clearbit.com/venmo.com"},
	}
}

func defaultContacts() []core.Contact {
	return []core.Contact{
		{ID: "con-1", Name: "Jane Doe", AvatarURL: "https://i.pravatar.cc/150?u=a042581f4e29026704d"},
		{ID: "con-2", Name: "John Smith", AvatarURL: "https://i.pravatar.cc/150?u=a042581f4e29026704e"},
		{ID: "con-3", Name: "Emily Jones", AvatarURL: "https://i.pravatar.cc/150?u=a042581f4e29026704f"},
		{ID: "con-4", Name: "Michael Johnson", AvatarURL: "https://i.pravatar.cc/150?u=a042581f4e29026704g"},
		{ID: "con-5", Name: "Sarah Miller", AvatarURL: "https://i.pravatar.cc/150?u=a042581f4e29026704h"},
		{ID: "con-6", Name: "David Wilson", AvatarURL: "https://i.pravatar.cc/150?u=a042581f4e29026704i"},
	}
}

func defaultCategoryIcons() map[string]string {
	return map[string]string{
		"Groceries":    "fa-shopping-cart",
		"Salary":       "fa-briefcase",
		"Shopping":     "fa-tshirt",
		"Subscription": "fa-sync-alt",
		"Dividends":    "fa-chart-pie",
		"Transport":    "fa-car",
		"Dining":       "fa-utensils",
		"Utilities":    "fa-lightbulb",
		"Rent":         "fa-home",
		"Travel":       "fa-plane",
		"Electronics":  "fa-laptop",
		"Transfers":    "fa-exchange-alt",
		"Other":        "fa-receipt",
	}
}

func defaultFaqs() []core.FaqItem {
	return []core.FaqItem{
		{
			Question: "How do I reset my password?",
			Answer:   "You can reset your password by clicking the 'Forgot Password' link on the login screen. You will receive an email with instructions to set a new password.",
		},
		{
			Question: "What should I do if I see a transaction I don't recognize?",
			Answer:   "If you see an unfamiliar transaction, please freeze your card immediately from the 'Cards' section and contact our support team via live chat or phone to report it.",
		},
		{
			Question: "How long do wire transfers take?",
			Answer:   "Domestic wire transfers typically complete within one business day. International wire transfers can take between 1-5 business days depending on the destination country and intermediary banks.",
		},
	}
}

func defaultRecurringPayments() []core.RecurringPayment {
	return []core.RecurringPayment{
		{ID: "rec-1", Recipient: "Netflix", Amount: usd(1599), Frequency: core.Monthly, NextDate: day(2024, time.August, 10), Category: "Subscription"},
		{ID: "rec-2", Recipient: "Con Edison", Amount: usd(12050), Frequency: core.Monthly, NextDate: day(2024, time.August, 15), Category: "Utilities"},
		{ID: "rec-3", Recipient: "Mortgage Payment", Amount: usd(210050), Frequency: core.Monthly, NextDate: day(2024, time.August, 1), Category: "Loan"},
	}
}

func defaultReceipts() []core.Receipt {
	return []core.Receipt{
		{
			ID: "rcpt-1", Vendor: "Apple Store", Date: mustDate("2024-07-22T14:30:00Z"),
			Total: usd(125000), Category: "Electronics",
			Items: []core.ReceiptItem{{Name: `MacBook Pro 14"`, Quantity: 1, Price: usd(125000)}},
		},
		{
			ID: "rcpt-2", Vendor: "Costco Wholesale", Date: mustDate("2024-07-20T10:30:00Z"),
			Total: usd(25075), Category: "Groceries",
			Items: []core.ReceiptItem{{Name: "Groceries", Quantity: 1, Price: usd(25075)}},
		},
	}
}

func defaultRates() map[string]float64 {
	return map[string]float64{
		"USD": 1.0,
		"SEK": 10.45,
		"EUR": 0.93,
		"GBP": 0.79,
		"JPY": 157.73,
	}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
