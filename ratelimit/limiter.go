package ratelimit

import (
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Action identifies a throttled action kind. Each kind has its own window.
type Action string

const (
	ActionCommand      Action = "command"
	ActionInteraction  Action = "interaction"
	ActionMessage      Action = "message"
	ActionTicketCreate Action = "ticket_create"
	ActionTicketClose  Action = "ticket_close"
)

// Result is returned by every Check call. Check never fails; callers
// decide whether a limited result is surfaced or silently dropped.
type Result struct {
	Limited bool
	Wait    time.Duration
}

// WaitSeconds reports the remaining wait rounded up to whole seconds.
func (r Result) WaitSeconds() int {
	return int((r.Wait + time.Second - 1) / time.Second)
}

// Config holds the per-action windows and sweep settings.
type Config struct {
	Windows          map[Action]time.Duration
	SweepInterval    time.Duration
	RetentionHorizon time.Duration
}

// DefaultConfig mirrors the production windows: short windows for chat
// traffic, longer fixed windows for ticket creation and closure.
func DefaultConfig() Config {
	return Config{
		Windows: map[Action]time.Duration{
			ActionCommand:      2 * time.Second,
			ActionInteraction:  1 * time.Second,
			ActionMessage:      500 * time.Millisecond,
			ActionTicketCreate: 30 * time.Second,
			ActionTicketClose:  10 * time.Second,
		},
		SweepInterval:    5 * time.Minute,
		RetentionHorizon: 5 * time.Minute,
	}
}

// Limiter is a sliding-window throttle keyed by (subject, action).
// Entries are garbage collected on a periodic sweep rather than eagerly,
// bounding memory without per-entry timers.
type Limiter struct {
	mu      sync.Mutex
	entries map[string]time.Time
	config  Config
	now     func() time.Time
	done    chan struct{}
	once    sync.Once
}

// New creates a limiter and starts its background sweep.
func New(config Config) *Limiter {
	l := &Limiter{
		entries: make(map[string]time.Time),
		config:  config,
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if config.SweepInterval > 0 {
		go l.sweepLoop()
	}
	return l
}

// Check reports whether the (subject, action) pair is inside its window.
// On a pass the current time is recorded as the last-action time.
func (l *Limiter) Check(subject string, action Action) Result {
	window, ok := l.config.Windows[action]
	if !ok {
		window = l.config.Windows[ActionCommand]
	}

	key := subject + "_" + string(action)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if last, exists := l.entries[key]; exists {
		elapsed := now.Sub(last)
		if elapsed < window {
			return Result{Limited: true, Wait: window - elapsed}
		}
	}

	l.entries[key] = now
	return Result{}
}

// Reset clears every entry whose key is prefixed by the given subject.
// Used for administrative override.
func (l *Limiter) Reset(subject string) {
	prefix := subject + "_"

	l.mu.Lock()
	defer l.mu.Unlock()

	for key := range l.entries {
		if strings.HasPrefix(key, prefix) {
			delete(l.entries, key)
		}
	}
}

// Close stops the background sweep.
func (l *Limiter) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.done:
			return
		}
	}
}

// sweep evicts entries idle longer than the retention horizon,
// independent of their window length.
func (l *Limiter) sweep() {
	horizon := l.now().Add(-l.config.RetentionHorizon)

	l.mu.Lock()
	removed := 0
	for key, last := range l.entries {
		if last.Before(horizon) {
			delete(l.entries, key)
			removed++
		}
	}
	remaining := len(l.entries)
	l.mu.Unlock()

	if removed > 0 {
		log.WithFields(log.Fields{
			"removed":   removed,
			"remaining": remaining,
		}).Debug("Rate limiter sweep completed")
	}
}
