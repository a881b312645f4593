package bot

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discshop/events"
	"discshop/ratelimit"
	"discshop/repository"
)

// stubTransport answers every REST call with a minimal 200 body so
// handlers can run without a live gateway.
type stubTransport struct{}

func (stubTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"id":"1"}`)),
		Header:     make(http.Header),
	}, nil
}

func newStubSession(t *testing.T) *discordgo.Session {
	t.Helper()
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)
	session.Client = &http.Client{Transport: stubTransport{}}
	return session
}

func newTestBot(t *testing.T) *Bot {
	t.Helper()
	b := &Bot{
		store:     repository.NewTicketStore(),
		limiter:   ratelimit.New(ratelimit.DefaultConfig()),
		scheduler: NewScheduler(),
		eventBus:  events.NewBus(),
	}
	t.Cleanup(func() {
		b.scheduler.Close()
		b.limiter.Close()
	})
	return b
}

func ticketMessage(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		ID:        "m1",
		ChannelID: "chan1",
		GuildID:   "guild1",
		Author:    &discordgo.User{ID: "u1", Username: "alice"},
		Content:   content,
	}}
}

func TestTicketCommandRejectedReasonKeepsCreateWindow(t *testing.T) {
	b := newTestBot(t)
	s := newStubSession(t)

	b.handleTicketCreateCommand(s, ticketMessage("!ticket ab"), []string{"ab"})

	// The typo must not start the 30s window; an immediate valid
	// retry has to pass.
	result := b.limiter.Check("u1", ratelimit.ActionTicketCreate)
	assert.False(t, result.Limited)
}

func TestTicketCommandValidReasonConsumesCreateWindow(t *testing.T) {
	b := newTestBot(t)
	s := newStubSession(t)

	// Provisioning fails against the stub, but the attempt was valid
	// so the window is spent either way.
	b.handleTicketCreateCommand(s, ticketMessage("!ticket butuh bantuan"), []string{"butuh", "bantuan"})

	result := b.limiter.Check("u1", ratelimit.ActionTicketCreate)
	assert.True(t, result.Limited)
	assert.False(t, b.store.HasActive("u1"))
}
