// Package bot wires the message-processing pipeline: dedup gate →
// interpretation → ledger → reply formatting → outbound sink.
package bot

import (
	"context"
	"time"

	"finzap/internal/dedup"
	"finzap/internal/interpreter"
	"finzap/internal/ledger"
	"finzap/internal/logging"
	"finzap/internal/models"
	"finzap/internal/reply"
)

// recentLimit bounds the "most recent" listings.
const recentLimit = 10

// Message is one inbound chat message.
type Message struct {
	Sender string // sender identity (phone number)
	Text   string // raw message body
	ID     string // provider message identifier, used for dedup
}

// Sink delivers a reply to a recipient. Delivery is fire-and-forget from
// the pipeline's perspective: failures are logged, never retried.
type Sink interface {
	Send(ctx context.Context, recipient, text string) error
}

// Pipeline processes inbound messages end to end. It is safe for
// concurrent use; the gate and the ledger carry their own locking.
type Pipeline struct {
	gate        *dedup.Gate
	interpreter *interpreter.Service
	ledger      *ledger.Ledger
	sink        Sink
	logger      logging.Logger
	now         func() time.Time
}

// NewPipeline assembles the pipeline.
func NewPipeline(gate *dedup.Gate, svc *interpreter.Service, led *ledger.Ledger, sink Sink, logger logging.Logger) *Pipeline {
	return &Pipeline{
		gate:        gate,
		interpreter: svc,
		ledger:      led,
		sink:        sink,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for monthly reports. Intended
// for tests.
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Handle processes one inbound message. A redelivered message identifier
// is dropped silently: no reply, no state mutation.
func (p *Pipeline) Handle(ctx context.Context, msg Message) {
	if !p.gate.FirstSeen(msg.ID) {
		p.logger.WithField("message_id", msg.ID).Debug("Duplicate delivery dropped")
		return
	}

	p.logger.WithField("sender", msg.Sender).Info("Processing message")

	in := p.interpreter.Interpret(ctx, msg.Text)
	text := p.respond(msg.Sender, in)

	if err := p.sink.Send(ctx, msg.Sender, text); err != nil {
		p.logger.WithError(err).WithField("recipient", msg.Sender).Error("Failed to deliver reply")
	}
}

// respond consumes the interpretation exactly once, reading or mutating
// the sender's account and rendering the reply.
func (p *Pipeline) respond(sender string, in models.Interpretation) string {
	switch in.Intent {
	case models.IntentAddExpense:
		if !in.Entities.HasAmount() {
			return reply.MissingAmount(models.KindExpense)
		}
		balance, err := p.ledger.RecordExpense(sender, in.Entities.Amount, in.Entities.Category)
		if err != nil {
			return reply.MissingAmount(models.KindExpense)
		}
		return reply.ExpenseRecorded(in.Entities.Amount, in.Entities.Category, balance)

	case models.IntentAddIncome:
		if !in.Entities.HasAmount() {
			return reply.MissingAmount(models.KindIncome)
		}
		balance, err := p.ledger.RecordIncome(sender, in.Entities.Amount, in.Entities.Category)
		if err != nil {
			return reply.MissingAmount(models.KindIncome)
		}
		return reply.IncomeRecorded(in.Entities.Amount, in.Entities.Category, balance)

	case models.IntentCheckBalance:
		return reply.Balance(p.ledger.Balance(sender))

	case models.IntentListExpenses:
		return reply.RecentExpenses(p.ledger.RecentExpenses(sender, recentLimit))

	case models.IntentListIncomes:
		return reply.RecentIncomes(p.ledger.RecentIncomes(sender, recentLimit))

	case models.IntentMonthlyReport:
		now := p.now()
		return reply.MonthlyReport(p.ledger.MonthlyAggregate(sender, now.Year(), now.Month()))

	default:
		// IntentUnclear and IntentBackendError share the generic help
		// reply; the distinction lives in the logs only.
		return reply.Help()
	}
}
