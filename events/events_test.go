package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"discshop/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_EmitReachesAllSubscribers(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	var received []Event
	var wg sync.WaitGroup
	wg.Add(2)

	for i := 0; i < 2; i++ {
		bus.Subscribe(EventTypeTicketClosed, func(ctx context.Context, e Event) {
			mu.Lock()
			received = append(received, e)
			mu.Unlock()
			wg.Done()
		})
	}

	bus.Emit(context.Background(), TicketClosedEvent{
		GuildID:      "g1",
		UserID:       "u1",
		TicketNumber: 7,
		CloseReason:  "done",
	})

	waitTimeout(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	closed, ok := received[0].(TicketClosedEvent)
	require.True(t, ok)
	assert.Equal(t, 7, closed.TicketNumber)
}

func TestBus_EmitIgnoresOtherEventTypes(t *testing.T) {
	bus := NewBus()

	called := make(chan struct{}, 1)
	bus.Subscribe(EventTypeTicketCreated, func(ctx context.Context, e Event) {
		called <- struct{}{}
	})

	bus.Emit(context.Background(), BalanceChangeEvent{
		UserID:          "u1",
		ChangeAmount:    100,
		TransactionType: models.TransactionTypeIncome,
	})

	select {
	case <-called:
		t.Fatal("handler for a different event type was invoked")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeDailyClaimed, func(ctx context.Context, e Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypeDailyClaimed, func(ctx context.Context, e Event) {
		wg.Done()
	})

	bus.Emit(context.Background(), DailyClaimedEvent{UserID: "u1", Reward: 100, Streak: 1})

	waitTimeout(t, &wg)
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for handlers")
	}
}
