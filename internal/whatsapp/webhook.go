package whatsapp

import (
	"encoding/json"
	"net/http"

	"finzap/internal/bot"
	"finzap/internal/logging"
)

// WebhookHandler receives Graph API webhook events: the GET verification
// handshake and POSTed inbound messages.
type WebhookHandler struct {
	verifyToken string
	pipeline    *bot.Pipeline
	logger      logging.Logger
}

// NewWebhookHandler builds the handler around the pipeline.
func NewWebhookHandler(verifyToken string, pipeline *bot.Pipeline, logger logging.Logger) *WebhookHandler {
	return &WebhookHandler{
		verifyToken: verifyToken,
		pipeline:    pipeline,
		logger:      logger,
	}
}

// Register mounts the webhook routes on the mux. The root route exists so
// uptime pingers keep the instance awake.
func (h *WebhookHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleHome)
	mux.HandleFunc("/webhook", h.handleWebhook)
}

func (h *WebhookHandler) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Servidor do Bot Financeiro está ativo."))
}

func (h *WebhookHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleVerification(w, r)
	case http.MethodPost:
		h.handleEvent(w, r)
	default:
		http.Error(w, "Método não permitido", http.StatusMethodNotAllowed)
	}
}

// handleVerification answers the subscription handshake: echo the
// challenge when the verify token matches, 403 otherwise.
func (h *WebhookHandler) handleVerification(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("hub.mode") == "subscribe" && query.Get("hub.verify_token") == h.verifyToken {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(query.Get("hub.challenge")))
		return
	}
	h.logger.Warn("Webhook verification token mismatch")
	http.Error(w, "Verification token mismatch", http.StatusForbidden)
}

// webhookPayload mirrors the subset of the Graph webhook event the bot
// consumes. Everything else in the event is ignored.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []inboundMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type inboundMessage struct {
	ID   string `json:"id"`
	From string `json:"from"`
	Text struct {
		Body string `json:"body"`
	} `json:"text"`
}

// handleEvent feeds every text message in the event through the pipeline.
// The provider redelivers on non-200 answers, so the handler always
// acknowledges; dedup is handled downstream by the gate.
func (h *WebhookHandler) handleEvent(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WithError(err).Warn("Discarding undecodable webhook event")
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.ID == "" || msg.From == "" {
					continue
				}
				h.pipeline.Handle(r.Context(), bot.Message{
					Sender: msg.From,
					Text:   msg.Text.Body,
					ID:     msg.ID,
				})
			}
		}
	}

	w.WriteHeader(http.StatusOK)
}
