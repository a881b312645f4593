package events

import (
	"context"
	"sync"

	"discshop/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeTicketCreated EventType = "ticket_created"
	EventTypeTicketClosed  EventType = "ticket_closed"
	EventTypeBalanceChange EventType = "balance_change"
	EventTypeDailyClaimed  EventType = "daily_claimed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// TicketCreatedEvent fires when a ticket channel has been created and
// registered in the store.
type TicketCreatedEvent struct {
	GuildID      string
	UserID       string
	ChannelID    string
	TicketNumber int
}

func (e TicketCreatedEvent) Type() EventType {
	return EventTypeTicketCreated
}

// TicketClosedEvent fires after closure is confirmed and the ticket has
// left the active index.
type TicketClosedEvent struct {
	GuildID      string
	UserID       string
	ChannelID    string
	TicketNumber int
	ClosedBy     string
	CloseReason  string
}

func (e TicketClosedEvent) Type() EventType {
	return EventTypeTicketClosed
}

// BalanceChangeEvent fires on every ledger mutation.
type BalanceChangeEvent struct {
	UserID          string
	OldBalance      int64
	NewBalance      int64
	ChangeAmount    int64
	TransactionType models.TransactionType
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// DailyClaimedEvent fires on a successful daily reward claim.
type DailyClaimedEvent struct {
	UserID string
	Reward int64
	Streak int
}

func (e DailyClaimedEvent) Type() EventType {
	return EventTypeDailyClaimed
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously so a slow subscriber cannot block the emitter.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}
