package repository

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discshop/models"
)

func newTicket(number int, channelID, guildID, userID string) *models.Ticket {
	return &models.Ticket{
		TicketNumber: number,
		ChannelID:    channelID,
		GuildID:      guildID,
		UserID:       userID,
		UserTag:      userID + "#0",
		CreatedAt:    time.Now(),
	}
}

func TestTicketStore_ReserveAndCommit(t *testing.T) {
	store := NewTicketStore()

	res, err := store.Reserve("guild1", "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TicketNumber)
	assert.True(t, store.HasActive("user1"), "pending reservation should count as active")

	ticket := newTicket(res.TicketNumber, "chan1", "guild1", "user1")
	res.Commit(ticket)

	assert.True(t, store.HasActive("user1"))
	assert.Equal(t, ticket, store.Get("user1"))
	assert.Equal(t, 1, store.ActiveCount())
}

func TestTicketStore_ReserveRejectsDuplicate(t *testing.T) {
	store := NewTicketStore()

	res, err := store.Reserve("guild1", "user1")
	require.NoError(t, err)

	// A second reservation while the first is still pending must fail.
	_, err = store.Reserve("guild1", "user1")
	assert.ErrorIs(t, err, ErrActiveTicketExists)

	res.Commit(newTicket(res.TicketNumber, "chan1", "guild1", "user1"))

	// Still rejected once committed.
	_, err = store.Reserve("guild1", "user1")
	assert.ErrorIs(t, err, ErrActiveTicketExists)
}

func TestTicketStore_ReleaseConsumesNumber(t *testing.T) {
	store := NewTicketStore()

	res, err := store.Reserve("guild1", "user1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.TicketNumber)

	res.Release()
	assert.False(t, store.HasActive("user1"))

	// Released numbers are not reused.
	res2, err := store.Reserve("guild1", "user1")
	require.NoError(t, err)
	assert.Equal(t, 2, res2.TicketNumber)
}

func TestTicketStore_CountersArePerGuild(t *testing.T) {
	store := NewTicketStore()

	res1, err := store.Reserve("guild1", "user1")
	require.NoError(t, err)
	res2, err := store.Reserve("guild2", "user2")
	require.NoError(t, err)

	assert.Equal(t, 1, res1.TicketNumber)
	assert.Equal(t, 1, res2.TicketNumber)

	res1.Release()
	res2.Release()
}

func TestTicketStore_RemoveAndFindByChannel(t *testing.T) {
	store := NewTicketStore()

	res, err := store.Reserve("guild1", "user1")
	require.NoError(t, err)
	ticket := newTicket(res.TicketNumber, "chan1", "guild1", "user1")
	res.Commit(ticket)

	found := store.FindByChannel("chan1")
	require.NotNil(t, found)
	assert.Equal(t, "user1", found.UserID)
	assert.Nil(t, store.FindByChannel("unknown"))

	removed := store.Remove("user1")
	assert.Equal(t, ticket, removed)
	assert.False(t, store.HasActive("user1"))
	assert.Nil(t, store.Remove("user1"), "second remove returns nil")

	// User can open a new ticket after removal.
	_, err = store.Reserve("guild1", "user1")
	assert.NoError(t, err)
}

func TestTicketStore_SeedCounter(t *testing.T) {
	store := NewTicketStore()

	store.SeedCounter("guild1", 7)
	assert.Equal(t, 7, store.NextNumber("guild1"))

	// Seeding lower never regresses the counter.
	store.SeedCounter("guild1", 3)
	assert.Equal(t, 7, store.NextNumber("guild1"))

	res, err := store.Reserve("guild1", "user1")
	require.NoError(t, err)
	assert.Equal(t, 7, res.TicketNumber)
	assert.Equal(t, 8, store.NextNumber("guild1"))
	res.Release()
}

func TestTicketStore_PutForRehydration(t *testing.T) {
	store := NewTicketStore()

	ticket := newTicket(4, "chan4", "guild1", "user1")
	store.Put(ticket)
	store.SeedCounter("guild1", 5)

	assert.True(t, store.HasActive("user1"))
	assert.Equal(t, ticket, store.Get("user1"))

	_, err := store.Reserve("guild1", "user1")
	assert.ErrorIs(t, err, ErrActiveTicketExists)
}

func TestTicketStore_ConcurrentReserveSingleWinner(t *testing.T) {
	store := NewTicketStore()

	const attempts = 50
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Reserve("guild1", "user1")
			if err == nil {
				res.Commit(newTicket(res.TicketNumber, "chan1", "guild1", "user1"))
			}
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes int
	for err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrActiveTicketExists)
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent reservation should win")
}

func TestTicketStore_ConcurrentNumbersUnique(t *testing.T) {
	store := NewTicketStore()

	const users = 40
	var wg sync.WaitGroup
	numbers := make(chan int, users)

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := string(rune('a'+n%26)) + string(rune('0'+n/26))
			res, err := store.Reserve("guild1", userID)
			if err != nil {
				return
			}
			numbers <- res.TicketNumber
			res.Commit(newTicket(res.TicketNumber, "chan", "guild1", userID))
		}(i)
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int]bool)
	for n := range numbers {
		assert.False(t, seen[n], "ticket number %d issued twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, users)
}

func TestTicketStore_RemoveByChannel(t *testing.T) {
	store := NewTicketStore()
	store.Put(newTicket(1, "chan1", "guild1", "user1"))

	ticket := store.RemoveByChannel("chan1")
	require.NotNil(t, ticket)
	assert.Equal(t, "user1", ticket.UserID)
	assert.False(t, store.HasActive("user1"))

	assert.Nil(t, store.RemoveByChannel("chan1"))
	assert.Nil(t, store.RemoveByChannel("no-such-channel"))
}

func TestTicketStore_ConcurrentRemoveByChannelSingleWinner(t *testing.T) {
	store := NewTicketStore()
	store.Put(newTicket(1, "chan1", "guild1", "user1"))

	const closers = 50
	var wg sync.WaitGroup
	won := make(chan *models.Ticket, closers)

	for i := 0; i < closers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ticket := store.RemoveByChannel("chan1"); ticket != nil {
				won <- ticket
			}
		}()
	}
	wg.Wait()
	close(won)

	assert.Len(t, won, 1, "exactly one closer may deindex the ticket")
}
