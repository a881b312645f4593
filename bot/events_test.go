package bot

import (
	"context"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discshop/events"
)

func TestTicketEventsFeedStatusCounters(t *testing.T) {
	b := &Bot{eventBus: events.NewBus()}
	b.registerEventHandlers()

	ctx := context.Background()
	b.eventBus.Emit(ctx, events.TicketCreatedEvent{GuildID: "g1", UserID: "u1", TicketNumber: 1})
	b.eventBus.Emit(ctx, events.TicketCreatedEvent{GuildID: "g1", UserID: "u2", TicketNumber: 2})
	b.eventBus.Emit(ctx, events.TicketClosedEvent{GuildID: "g1", UserID: "u1", TicketNumber: 1, ClosedBy: "admin"})

	require.Eventually(t, func() bool {
		created, closed := b.metrics.counts()
		return created == 2 && closed == 1
	}, time.Second, 5*time.Millisecond)
}

func TestHighValueBalanceChangeIsLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	b := &Bot{eventBus: events.NewBus()}
	b.registerEventHandlers()

	ctx := context.Background()
	b.eventBus.Emit(ctx, events.BalanceChangeEvent{UserID: "u1", ChangeAmount: 500, NewBalance: 1500})
	b.eventBus.Emit(ctx, events.BalanceChangeEvent{UserID: "u1", ChangeAmount: 25000, NewBalance: 26500})

	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Message == "High value balance change" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	audited := 0
	for _, entry := range hook.AllEntries() {
		if entry.Message == "High value balance change" {
			audited++
		}
	}
	assert.Equal(t, 1, audited, "small changes must not produce audit entries")
}

func TestWeeklyStreakMilestoneIsLogged(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	b := &Bot{eventBus: events.NewBus()}
	b.registerEventHandlers()

	ctx := context.Background()
	b.eventBus.Emit(ctx, events.DailyClaimedEvent{UserID: "u1", Reward: 120, Streak: 3})
	b.eventBus.Emit(ctx, events.DailyClaimedEvent{UserID: "u1", Reward: 170, Streak: 7})

	require.Eventually(t, func() bool {
		for _, entry := range hook.AllEntries() {
			if entry.Message == "Weekly streak milestone reached" {
				return entry.Data["streak"] == 7
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}
