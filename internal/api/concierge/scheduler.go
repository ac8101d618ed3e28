package concierge

import (
	"context"
	"log/slog"
	"time"

	"github.com/paulgosnell/liv-concierge/app/observability/metrics"
)

// Scheduler delivers paced messages. Every scheduled task carries the
// session generation it was created under; if the session has been reset (or
// expired) by the time the timer fires, the delivery is dropped instead of
// leaking a stale message into the new conversation.
type Scheduler struct {
	logger *slog.Logger
}

func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// Schedule runs deliver after delay, handing it the generation the task was
// created under. deliver must compare that generation against the live
// session inside the same critical section that appends, and report whether
// the message landed; a check done under a separate lock acquisition would
// leave a window for a reset to slip between check and append. A zero delay
// fires inline through the same path.
func (s *Scheduler) Schedule(delay time.Duration, gen uint64, deliver func(gen uint64) bool) {
	fire := func() {
		if deliver(gen) {
			return
		}
		if m := metrics.Get(); m != nil {
			m.StaleDeliveriesDropped.Add(context.Background(), 1)
		}
		s.logger.Debug("Dropped stale paced delivery",
			slog.Uint64("scheduled_generation", gen),
		)
	}

	if delay <= 0 {
		fire()
		return
	}
	time.AfterFunc(delay, fire)
}
