package bot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{1000000000, "1,000,000,000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBalance(tt.input))
	}
}

func TestTicketChannelName(t *testing.T) {
	assert.Equal(t, "tiket-7-alice", ticketChannelName(7, "Alice"))

	// Long usernames are truncated to Discord's 100 char limit.
	long := ticketChannelName(123, strings.Repeat("x", 200))
	assert.Len(t, long, 100)
	assert.True(t, strings.HasPrefix(long, "tiket-123-"))
}

func TestParseTicketChannel(t *testing.T) {
	number, username, ok := parseTicketChannel("tiket-42-bob")
	assert.True(t, ok)
	assert.Equal(t, 42, number)
	assert.Equal(t, "bob", username)

	// Username fragments may themselves contain dashes.
	number, username, ok = parseTicketChannel("tiket-3-mary-jane")
	assert.True(t, ok)
	assert.Equal(t, 3, number)
	assert.Equal(t, "mary-jane", username)

	for _, name := range []string{"general", "tiket-", "tiket-x-bob", "closed-5"} {
		_, _, ok := parseTicketChannel(name)
		assert.False(t, ok, "should not parse %q", name)
	}
}

func TestParseClosedChannel(t *testing.T) {
	number, ok := parseClosedChannel("closed-9")
	assert.True(t, ok)
	assert.Equal(t, 9, number)

	_, ok = parseClosedChannel("tiket-9-bob")
	assert.False(t, ok)
	_, ok = parseClosedChannel("closed-abc")
	assert.False(t, ok)
}

func TestSanitizeChannelName(t *testing.T) {
	assert.Equal(t, "order-vip-1", sanitizeChannelName("Order VIP 1"))
	assert.Equal(t, "a-b-c", sanitizeChannelName("A_B C"))
	assert.Len(t, sanitizeChannelName(strings.Repeat("z", 300)), 100)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "45 detik", formatDuration(45*time.Second))
	assert.Equal(t, "5 menit", formatDuration(5*time.Minute))
	assert.Equal(t, "2 jam 30 menit", formatDuration(150*time.Minute))
}

func TestFormatDiscordTimestamp(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	assert.Equal(t, "<t:1700000000:R>", FormatDiscordTimestamp(ts, "R"))
}
