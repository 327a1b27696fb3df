// Package interpreter turns raw user text into a normalized Interpretation:
// a classified intent plus extracted entities. Two backends exist, a local
// rule-based one and a remote Gemini-based one; the Service owns the
// failure policy around whichever backend is configured.
package interpreter

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"finzap/internal/logging"
	"finzap/internal/models"
)

// Backend analyzes one message. Implementations must be safe for
// concurrent use.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Interpret analyzes the text. An error means the backend itself
	// failed (network, credentials, malformed response); text that simply
	// matches nothing is IntentUnclear, not an error.
	Interpret(ctx context.Context, text string) (models.Interpretation, error)
}

// Service is the single entry point the pipeline calls. It never returns
// an error: backend failures are recovered into IntentBackendError, which
// the formatter treats like IntentUnclear while operators get the detail
// in the logs.
type Service struct {
	backend Backend
	logger  logging.Logger
}

// NewService wraps the given backend. No retries are performed; a failed
// call resolves to IntentBackendError immediately.
func NewService(backend Backend, logger logging.Logger) *Service {
	return &Service{backend: backend, logger: logger}
}

// Interpret analyzes the text and returns a normalized interpretation.
func (s *Service) Interpret(ctx context.Context, text string) models.Interpretation {
	in, err := s.backend.Interpret(ctx, text)
	if err != nil {
		s.logger.WithError(err).WithField("backend", s.backend.Name()).
			Error("Interpretation backend failed")
		return models.Interpretation{Intent: models.IntentBackendError}
	}
	return normalize(in)
}

// normalize canonicalizes the entities: categories are lowercased and
// trimmed, non-positive amounts are treated as absent, and the
// intent-dependent default category is substituted when extraction found
// none.
func normalize(in models.Interpretation) models.Interpretation {
	in.Entities.Category = strings.ToLower(strings.TrimSpace(in.Entities.Category))

	if !in.Entities.Amount.IsPositive() {
		in.Entities.Amount = decimal.Zero
	}

	if !in.Entities.HasCategory() {
		switch in.Intent {
		case models.IntentAddExpense:
			in.Entities.Category = models.DefaultExpenseCategory
		case models.IntentAddIncome:
			in.Entities.Category = models.DefaultIncomeCategory
		}
	}

	return in
}
