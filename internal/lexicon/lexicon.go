// Package lexicon holds the Portuguese vocabulary driving rule-based
// interpretation: phrase cues, keyword stems per intent, the preposition
// set used for category extraction and the stopword list. Built-in
// defaults can be overridden per deployment through a YAML file, the same
// way category keywords are usually shipped alongside the binary.
package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finzap/internal/logging"
)

// Lexicon is the vocabulary consulted by the rule backend. Keyword lists
// hold lowercase stems matched as token prefixes ("gast" covers "gastei",
// "gastar", "gasto"), which stands in for the lemmatization the rules
// would otherwise need.
type Lexicon struct {
	ListExpensePhrases []string `yaml:"list_expense_phrases"`
	ListIncomePhrases  []string `yaml:"list_income_phrases"`
	ReportKeywords     []string `yaml:"report_keywords"`
	ExpenseKeywords    []string `yaml:"expense_keywords"`
	IncomeKeywords     []string `yaml:"income_keywords"`
	BalanceKeywords    []string `yaml:"balance_keywords"`
	Prepositions       []string `yaml:"prepositions"`
	Stopwords          []string `yaml:"stopwords"`
}

// Default returns the built-in Brazilian Portuguese vocabulary.
func Default() *Lexicon {
	return &Lexicon{
		ListExpensePhrases: []string{
			"listar despesas", "minhas despesas", "meus gastos", "ver gastos",
		},
		ListIncomePhrases: []string{
			"listar receitas", "minhas receitas", "meus ganhos", "ver receitas",
		},
		ReportKeywords: []string{
			"relatório", "relatorio", "resumo", "mensal",
		},
		ExpenseKeywords: []string{
			"gast", "compr", "pag", "despes",
		},
		IncomeKeywords: []string{
			"receb", "ganh", "salário", "salario", "receita", "pix", "depósito", "deposito",
		},
		BalanceKeywords: []string{
			"saldo", "quanto",
		},
		Prepositions: []string{
			"com", "em", "para", "no", "na", "de",
		},
		Stopwords: []string{
			"o", "a", "os", "as", "um", "uma", "uns", "umas",
			"eu", "meu", "minha", "meus", "minhas", "seu", "sua",
			"me", "te", "se", "que", "por", "pra", "pro",
			"com", "em", "para", "no", "na", "de", "do", "da", "dos", "das",
			"e", "ou", "mais", "muito", "hoje", "ontem", "reais", "real",
		},
	}
}

// Load returns the default lexicon, with any non-empty lists from the YAML
// file at path replacing the built-in ones. An empty path means defaults
// only; a missing or unreadable file is reported to the caller.
func Load(path string, logger logging.Logger) (*Lexicon, error) {
	lex := Default()
	if path == "" {
		return lex, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read lexicon file %s: %w", path, err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("could not parse lexicon file %s: %w", path, err)
	}

	lex.merge(&override)
	if logger != nil {
		logger.WithField("file", path).Info("Loaded lexicon overrides")
	}
	return lex, nil
}

func (l *Lexicon) merge(override *Lexicon) {
	if len(override.ListExpensePhrases) > 0 {
		l.ListExpensePhrases = override.ListExpensePhrases
	}
	if len(override.ListIncomePhrases) > 0 {
		l.ListIncomePhrases = override.ListIncomePhrases
	}
	if len(override.ReportKeywords) > 0 {
		l.ReportKeywords = override.ReportKeywords
	}
	if len(override.ExpenseKeywords) > 0 {
		l.ExpenseKeywords = override.ExpenseKeywords
	}
	if len(override.IncomeKeywords) > 0 {
		l.IncomeKeywords = override.IncomeKeywords
	}
	if len(override.BalanceKeywords) > 0 {
		l.BalanceKeywords = override.BalanceKeywords
	}
	if len(override.Prepositions) > 0 {
		l.Prepositions = override.Prepositions
	}
	if len(override.Stopwords) > 0 {
		l.Stopwords = override.Stopwords
	}
}

// IsPreposition reports whether the token belongs to the preposition set
// that introduces a category ("gastei 50 com café").
func (l *Lexicon) IsPreposition(token string) bool {
	return contains(l.Prepositions, token)
}

// IsStopword reports whether the token is too generic to serve as a
// category.
func (l *Lexicon) IsStopword(token string) bool {
	return contains(l.Stopwords, token)
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
