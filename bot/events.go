package bot

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"discshop/events"
)

// highValueThreshold marks balance swings big enough to warrant an
// audit log entry.
const highValueThreshold = 10000

// ticketMetrics counts lifecycle events for the HTTP status endpoint.
type ticketMetrics struct {
	mu      sync.Mutex
	created int
	closed  int
}

func (m *ticketMetrics) recordCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created++
}

func (m *ticketMetrics) recordClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

func (m *ticketMetrics) counts() (created, closed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.created, m.closed
}

// registerEventHandlers wires the bus subscribers: lifecycle counters
// feeding /status, and audit logging for notable ledger activity.
func (b *Bot) registerEventHandlers() {
	b.eventBus.Subscribe(events.EventTypeTicketCreated, func(ctx context.Context, event events.Event) {
		if _, ok := event.(events.TicketCreatedEvent); ok {
			b.metrics.recordCreated()
		}
	})

	b.eventBus.Subscribe(events.EventTypeTicketClosed, func(ctx context.Context, event events.Event) {
		if _, ok := event.(events.TicketClosedEvent); ok {
			b.metrics.recordClosed()
		}
	})

	b.eventBus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		change, ok := event.(events.BalanceChangeEvent)
		if !ok {
			return
		}
		if change.ChangeAmount >= highValueThreshold || change.ChangeAmount <= -highValueThreshold {
			log.WithFields(log.Fields{
				"userID":     change.UserID,
				"amount":     change.ChangeAmount,
				"newBalance": change.NewBalance,
				"txType":     change.TransactionType,
			}).Info("High value balance change")
		}
	})

	b.eventBus.Subscribe(events.EventTypeDailyClaimed, func(ctx context.Context, event events.Event) {
		claim, ok := event.(events.DailyClaimedEvent)
		if !ok {
			return
		}
		if claim.Streak > 0 && claim.Streak%7 == 0 {
			log.WithFields(log.Fields{
				"userID": claim.UserID,
				"streak": claim.Streak,
			}).Info("Weekly streak milestone reached")
		}
	})
}
