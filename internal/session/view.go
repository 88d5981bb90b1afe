package session

// View names a dashboard sub-view. Exactly one is active while the session
// is authenticated.
type View string

const (
	ViewDashboard         View = "dashboard"
	ViewTransactions      View = "transactions"
	ViewCards             View = "cards"
	ViewPayments          View = "payments"
	ViewBudgeting         View = "budgeting"
	ViewInvestments       View = "investments"
	ViewCrypto            View = "crypto"
	ViewLoans             View = "loans"
	ViewLoanApplication   View = "loan-application"
	ViewCharity           View = "charity"
	ViewNetwork           View = "network"
	ViewApps              View = "apps"
	ViewAlerts            View = "alerts"
	ViewReceipts          View = "receipts"
	ViewSupport           View = "support"
	ViewSettings          View = "settings"
	ViewRecurringPayments View = "recurring-payments"
	ViewCongratulations   View = "congratulations"
)

var allViews = map[View]struct{}{
	ViewDashboard: {}, ViewTransactions: {}, ViewCards: {}, ViewPayments: {},
	ViewBudgeting: {}, ViewInvestments: {}, ViewCrypto: {}, ViewLoans: {},
	ViewLoanApplication: {}, ViewCharity: {}, ViewNetwork: {}, ViewApps: {},
	ViewAlerts: {}, ViewReceipts: {}, ViewSupport: {}, ViewSettings: {},
	ViewRecurringPayments: {}, ViewCongratulations: {},
}

// Valid reports whether v names a known dashboard view.
func (v View) Valid() bool {
	_, ok := allViews[v]
	return ok
}

// BackTarget returns the view a "back" control leads to. Navigation is
// uniform except for the loan application, which is a sub-flow of the loan
// center and returns there instead of the dashboard.
func (v View) BackTarget() View {
	if v == ViewLoanApplication {
		return ViewLoans
	}
	return ViewDashboard
}

// Navigator is the single injected navigation capability: components hold a
// Navigator instead of re-threading a set-view callback through every layer.
// Machine is the canonical implementation.
type Navigator interface {
	GoTo(v View) error
	Back()
}
