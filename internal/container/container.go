// Package container centralizes the creation and wiring of the bot's
// dependencies, keeping them explicit and testable.
package container

import (
	"fmt"
	"time"

	"finzap/internal/bot"
	"finzap/internal/config"
	"finzap/internal/dedup"
	"finzap/internal/interpreter"
	"finzap/internal/ledger"
	"finzap/internal/lexicon"
	"finzap/internal/logging"
	"finzap/internal/whatsapp"
)

// Container holds the wired application. Fields are private; components
// are reached through getters only.
type Container struct {
	logger   logging.Logger
	config   *config.Config
	ledger   *ledger.Ledger
	gate     *dedup.Gate
	service  *interpreter.Service
	gemini   *interpreter.GeminiBackend
	pipeline *bot.Pipeline
	webhook  *whatsapp.WebhookHandler
}

// New wires all dependencies from the configuration.
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	lex, err := lexicon.Load(cfg.Lexicon.File, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	var backend interpreter.Backend
	var gemini *interpreter.GeminiBackend
	if cfg.AI.Enabled {
		gemini = interpreter.NewGeminiBackend(
			cfg.AI.APIKey,
			cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second,
			logger,
		)
		backend = gemini
		logger.Info("AI interpretation enabled", logging.Field{Key: "model", Value: cfg.AI.Model})
	} else {
		backend = interpreter.NewRuleBackend(lex, logger)
		logger.Info("Rule-based interpretation enabled")
	}

	service := interpreter.NewService(backend, logger)
	led := ledger.New()
	gate := dedup.NewGate(cfg.Dedup.MaxEntries, time.Duration(cfg.Dedup.TTLHours)*time.Hour)

	sink := whatsapp.NewClient(cfg.WhatsApp.BaseURL, cfg.WhatsApp.Token, cfg.WhatsApp.PhoneNumberID, logger)
	pipeline := bot.NewPipeline(gate, service, led, sink, logger)
	webhook := whatsapp.NewWebhookHandler(cfg.WhatsApp.VerifyToken, pipeline, logger)

	logger.Info("Container initialized",
		logging.Field{Key: "ai_enabled", Value: cfg.AI.Enabled},
		logging.Field{Key: "dedup_max_entries", Value: cfg.Dedup.MaxEntries})

	return &Container{
		logger:   logger,
		config:   cfg,
		ledger:   led,
		gate:     gate,
		service:  service,
		gemini:   gemini,
		pipeline: pipeline,
		webhook:  webhook,
	}, nil
}

// Logger returns the application logger.
func (c *Container) Logger() logging.Logger { return c.logger }

// Config returns the loaded configuration.
func (c *Container) Config() *config.Config { return c.config }

// Pipeline returns the message-processing pipeline.
func (c *Container) Pipeline() *bot.Pipeline { return c.pipeline }

// Webhook returns the inbound webhook handler.
func (c *Container) Webhook() *whatsapp.WebhookHandler { return c.webhook }

// Ledger returns the account ledger.
func (c *Container) Ledger() *ledger.Ledger { return c.ledger }

// Close releases container resources.
func (c *Container) Close() error {
	if c.gemini != nil {
		return c.gemini.Close()
	}
	return nil
}
