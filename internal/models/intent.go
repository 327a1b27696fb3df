package models

// Intent is the classified purpose of an inbound message. The string values
// are the wire tags exchanged with the AI backend.
type Intent string

const (
	IntentAddExpense    Intent = "add_expense"
	IntentAddIncome     Intent = "add_income"
	IntentCheckBalance  Intent = "check_balance"
	IntentListExpenses  Intent = "list_expenses"
	IntentListIncomes   Intent = "list_incomes"
	IntentMonthlyReport Intent = "monthly_report"
	IntentUnclear       Intent = "unclear"

	// IntentBackendError marks an interpretation that failed inside the
	// backend rather than one the user phrased ambiguously. It never comes
	// off the wire.
	IntentBackendError Intent = "backend_error"
)

var knownIntents = map[Intent]struct{}{
	IntentAddExpense:    {},
	IntentAddIncome:     {},
	IntentCheckBalance:  {},
	IntentListExpenses:  {},
	IntentListIncomes:   {},
	IntentMonthlyReport: {},
	IntentUnclear:       {},
}

// ParseIntent maps a wire tag to an Intent. Anything unrecognized degrades
// to IntentUnclear so a misbehaving backend cannot inject new behavior.
func ParseIntent(tag string) Intent {
	if _, ok := knownIntents[Intent(tag)]; ok {
		return Intent(tag)
	}
	return IntentUnclear
}
