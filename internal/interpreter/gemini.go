package interpreter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"finzap/internal/logging"
	"finzap/internal/models"
)

// ErrMissingAPIKey is returned before any network call when the backend
// has no credential configured.
var ErrMissingAPIKey = errors.New("gemini API key not configured")

// geminiPrompt instructs the model to answer with the fixed JSON schema
// the decoder expects. Intents outside the allowed set degrade to unclear
// at decode time.
const geminiPrompt = `Analise a mensagem de um usuário para um bot de finanças.
Extraia a intenção (intent) e as entidades (entities) como valor (value) e categoria (category).
Intenções possíveis: 'add_expense', 'add_income', 'check_balance', 'list_expenses', 'list_incomes', 'monthly_report', 'unclear'.
Responda somente com JSON no formato {"intent": string, "entities": {"value": number, "category": string}}, sem nenhum outro texto.
Mensagem do usuário: %q`

// GeminiBackend delegates interpretation to the Gemini API. Every failure
// class (missing credential, transport error, timeout, malformed body)
// surfaces as an error; the Service maps all of them to IntentBackendError.
type GeminiBackend struct {
	apiKey  string
	model   string
	timeout time.Duration
	logger  logging.Logger

	mu         sync.Mutex
	client     *genai.Client
	generative *genai.GenerativeModel
}

// NewGeminiBackend builds a Gemini backend. The client itself is created
// lazily on the first call so that construction never touches the network.
func NewGeminiBackend(apiKey, model string, timeout time.Duration, logger logging.Logger) *GeminiBackend {
	return &GeminiBackend{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		logger:  logger,
	}
}

// Name identifies the backend in logs.
func (b *GeminiBackend) Name() string { return "gemini" }

// Interpret sends the message to Gemini under a bounded timeout and decodes
// the structured answer.
func (b *GeminiBackend) Interpret(ctx context.Context, text string) (models.Interpretation, error) {
	if b.apiKey == "" {
		return models.Interpretation{}, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	model, err := b.ensureClient(ctx)
	if err != nil {
		return models.Interpretation{}, err
	}

	b.logger.WithField("model", b.model).Debug("Sending interpretation request to Gemini")

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(geminiPrompt, text)))
	if err != nil {
		return models.Interpretation{}, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return models.Interpretation{}, errors.New("empty response from Gemini")
	}

	part, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return models.Interpretation{}, errors.New("unexpected response part type from Gemini")
	}

	return decodeInterpretation(string(part))
}

// ensureClient initializes the Gemini client on first use.
func (b *GeminiBackend) ensureClient(ctx context.Context) (*genai.GenerativeModel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.generative != nil {
		return b.generative, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(b.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	b.client = client
	b.generative = client.GenerativeModel(b.model)
	return b.generative, nil
}

// Close releases the underlying client, if one was created.
func (b *GeminiBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.client == nil {
		return nil
	}
	err := b.client.Close()
	b.client = nil
	b.generative = nil
	return err
}

// geminiPayload is the wire schema the prompt asks for. Absent entities or
// sub-fields are tolerated: they decode to their zero values.
type geminiPayload struct {
	Intent   string `json:"intent"`
	Entities struct {
		Value    float64 `json:"value"`
		Category string  `json:"category"`
	} `json:"entities"`
}

// decodeInterpretation parses the model answer. Models sometimes wrap JSON
// in a markdown fence even when told not to, so fences are stripped first.
func decodeInterpretation(raw string) (models.Interpretation, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var payload geminiPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return models.Interpretation{}, fmt.Errorf("malformed interpretation payload: %w", err)
	}

	in := models.Interpretation{Intent: models.ParseIntent(payload.Intent)}
	if payload.Entities.Value > 0 {
		in.Entities.Amount = decimal.NewFromFloat(payload.Entities.Value)
	}
	in.Entities.Category = payload.Entities.Category
	return in, nil
}
