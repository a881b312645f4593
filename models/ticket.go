package models

import (
	"time"
)

// Ticket represents an open support/order channel owned by a single user.
// A user can hold at most one active ticket per guild at a time.
type Ticket struct {
	TicketNumber int       `json:"ticket_number"`
	ChannelID    string    `json:"channel_id"`
	GuildID      string    `json:"guild_id"`
	UserID       string    `json:"user_id"`
	UserTag      string    `json:"user_tag"`
	CreatedAt    time.Time `json:"created_at"`
	Reason       string    `json:"reason"`
}
