package repository

import (
	"errors"
	"sync"

	"discshop/models"
)

// ErrActiveTicketExists is returned by Reserve when the user already
// holds an active or pending ticket in the guild.
var ErrActiveTicketExists = errors.New("user already has an active ticket")

// TicketStore is the in-memory registry of active tickets and per-guild
// sequence counters. It is the single source of truth for "does this
// user have an open ticket" and "what is the next ticket number".
//
// Creation goes through Reserve/Commit: the (guild, user) slot and the
// ticket number are claimed under one lock before any Discord I/O, so
// two near-simultaneous creation requests from the same user cannot
// both pass the active-ticket check.
type TicketStore struct {
	mu       sync.Mutex
	active   map[string]*models.Ticket // userID -> ticket
	pending  map[string]struct{}       // userID slots reserved mid-creation
	counters map[string]int            // guildID -> next ticket number
}

// NewTicketStore creates an empty ticket store.
func NewTicketStore() *TicketStore {
	return &TicketStore{
		active:   make(map[string]*models.Ticket),
		pending:  make(map[string]struct{}),
		counters: make(map[string]int),
	}
}

// Reservation is a claimed ticket slot awaiting channel creation.
// Exactly one of Commit or Release must be called.
type Reservation struct {
	TicketNumber int

	store  *TicketStore
	userID string
	done   bool
}

// Reserve claims the user's ticket slot and allocates the guild's next
// ticket number in one indivisible step. The number is consumed even if
// the reservation is later released; numbers are never reused.
func (s *TicketStore) Reserve(guildID, userID string) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[userID]; ok {
		return nil, ErrActiveTicketExists
	}
	if _, ok := s.pending[userID]; ok {
		return nil, ErrActiveTicketExists
	}

	number := s.counters[guildID]
	if number == 0 {
		number = 1
	}
	s.counters[guildID] = number + 1
	s.pending[userID] = struct{}{}

	return &Reservation{
		TicketNumber: number,
		store:        s,
		userID:       userID,
	}, nil
}

// Commit registers the created ticket and releases the pending slot.
func (r *Reservation) Commit(ticket *models.Ticket) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.done {
		return
	}
	r.done = true
	delete(r.store.pending, r.userID)
	r.store.active[r.userID] = ticket
}

// Release frees the pending slot without registering a ticket. The
// allocated number is not returned to the counter.
func (r *Reservation) Release() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if r.done {
		return
	}
	r.done = true
	delete(r.store.pending, r.userID)
}

// HasActive reports whether the user holds an active or pending ticket.
func (s *TicketStore) HasActive(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[userID]; ok {
		return true
	}
	_, ok := s.pending[userID]
	return ok
}

// Get returns the user's active ticket, or nil.
func (s *TicketStore) Get(userID string) *models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[userID]
}

// Put registers a ticket directly, bypassing reservation. Used by
// startup rehydration where the channel already exists.
func (s *TicketStore) Put(ticket *models.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[ticket.UserID] = ticket
}

// Remove deletes the user's active ticket and returns it, or nil if the
// user had none.
func (s *TicketStore) Remove(userID string) *models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket := s.active[userID]
	delete(s.active, userID)
	return ticket
}

// RemoveByChannel atomically deindexes the ticket bound to the given
// channel and returns it, or nil when the channel holds no active
// ticket. Closure side effects are gated on the non-nil return, so two
// near-simultaneous close confirmations cannot both run them.
func (s *TicketStore) RemoveByChannel(channelID string) *models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, ticket := range s.active {
		if ticket.ChannelID == channelID {
			delete(s.active, userID)
			return ticket
		}
	}
	return nil
}

// FindByChannel returns the active ticket bound to the given channel.
// Linear scan; the store holds tens of tickets at most.
func (s *TicketStore) FindByChannel(channelID string) *models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ticket := range s.active {
		if ticket.ChannelID == channelID {
			return ticket
		}
	}
	return nil
}

// SeedCounter sets the guild's next ticket number if it is higher than
// the current value. Called during startup rehydration.
func (s *TicketStore) SeedCounter(guildID string, next int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next > s.counters[guildID] {
		s.counters[guildID] = next
	}
}

// NextNumber returns the number the next reservation in the guild would
// receive, without advancing the counter.
func (s *TicketStore) NextNumber(guildID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := s.counters[guildID]
	if number == 0 {
		return 1
	}
	return number
}

// ActiveCount returns the number of active tickets across all guilds.
func (s *TicketStore) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
