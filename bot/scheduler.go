package bot

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs deferred tasks such as post-closure channel deletion
// and temporary-message cleanup. Unlike a bare time.AfterFunc, every
// pending task is cancelled when the scheduler closes, so shutdown
// never races against a timer firing into a closed Discord session.
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a running scheduler.
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// After runs task once the delay elapses, unless the scheduler is
// closed first.
func (s *Scheduler) After(delay time.Duration, task func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		select {
		case <-timer.C:
			task()
		case <-s.ctx.Done():
		}
	}()
}

// Close cancels all pending tasks and waits for in-flight ones.
func (s *Scheduler) Close() {
	s.cancel()
	s.wg.Wait()
}
