package interpreter

import (
	"context"
	"strings"
	"unicode"

	"finzap/internal/lexicon"
	"finzap/internal/logging"
	"finzap/internal/models"
)

// RuleBackend classifies messages with lexical rules and extracts entities
// without any external dependency. Classification is deterministic: rules
// are evaluated in a fixed priority order and the first match wins, with
// no scoring. Phrase-level rules run before single-keyword rules because
// they are less ambiguous ("minhas despesas" must list expenses, not
// record one).
type RuleBackend struct {
	lex    *lexicon.Lexicon
	logger logging.Logger
}

// NewRuleBackend builds a rule backend over the given lexicon.
func NewRuleBackend(lex *lexicon.Lexicon, logger logging.Logger) *RuleBackend {
	return &RuleBackend{lex: lex, logger: logger}
}

// Name identifies the backend in logs.
func (b *RuleBackend) Name() string { return "rules" }

// Interpret never fails: unmatched text yields IntentUnclear.
func (b *RuleBackend) Interpret(_ context.Context, text string) (models.Interpretation, error) {
	intent := b.Classify(text)
	return models.Interpretation{
		Intent:   intent,
		Entities: b.Extract(text, intent),
	}, nil
}

// Classify maps raw text to an intent. Case-insensitive; evaluation order:
//  1. list-expenses phrases
//  2. list-incomes phrases
//  3. report keywords
//  4. expense keywords
//  5. income keywords
//  6. balance keywords
//  7. otherwise unclear
func (b *RuleBackend) Classify(text string) models.Intent {
	lowered := strings.ToLower(text)
	tokens := tokenize(lowered)

	switch {
	case containsAnyPhrase(lowered, b.lex.ListExpensePhrases):
		return models.IntentListExpenses
	case containsAnyPhrase(lowered, b.lex.ListIncomePhrases):
		return models.IntentListIncomes
	case matchesAnyStem(tokens, b.lex.ReportKeywords):
		return models.IntentMonthlyReport
	case matchesAnyStem(tokens, b.lex.ExpenseKeywords):
		return models.IntentAddExpense
	case matchesAnyStem(tokens, b.lex.IncomeKeywords):
		return models.IntentAddIncome
	case matchesAnyStem(tokens, b.lex.BalanceKeywords):
		return models.IntentCheckBalance
	default:
		return models.IntentUnclear
	}
}

// Extract pulls the amount and category out of the text. The amount is the
// first numeric token; the category is the first preposition-led word that
// looks like a noun. Absent fields are valid outputs, the Service applies
// intent-dependent defaults.
func (b *RuleBackend) Extract(text string, _ models.Intent) models.ExtractedEntities {
	var entities models.ExtractedEntities

	if amount, ok := models.ParseFirstAmount(text); ok {
		entities.Amount = amount
	}

	tokens := tokenize(strings.ToLower(text))
	for i, token := range tokens {
		if !b.lex.IsPreposition(token) || i+1 >= len(tokens) {
			continue
		}
		if next := tokens[i+1]; b.looksLikeNoun(next) {
			entities.Category = next
			break
		}
	}

	return entities
}

// looksLikeNoun approximates the noun check a POS tagger would do: the
// token must be purely alphabetic and not a stopword.
func (b *RuleBackend) looksLikeNoun(token string) bool {
	if token == "" || b.lex.IsStopword(token) {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func tokenize(lowered string) []string {
	fields := strings.Fields(lowered)
	tokens := fields[:0]
	for _, f := range fields {
		if t := strings.Trim(f, `.,!?;:()"'`); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func containsAnyPhrase(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

// matchesAnyStem reports whether any token starts with one of the stems.
// Prefix matching over stems covers the common verb inflections ("gastei",
// "gastar", "gasto" all match "gast").
func matchesAnyStem(tokens, stems []string) bool {
	for _, token := range tokens {
		for _, stem := range stems {
			if strings.HasPrefix(token, stem) {
				return true
			}
		}
	}
	return false
}
