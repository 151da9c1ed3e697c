package game

import "time"

// Notifier publishes an event to a game's channel. Delivery is
// at-least-once and failures never roll back committed state; callers log
// and continue.
type Notifier interface {
	Publish(gameID uint, event string, payload any) error
}

// Scheduler enqueues a job to run after delay. Jobs are fire-and-forget
// and delivered at least once; every consumer re-validates phase before
// acting, so duplicates are harmless.
type Scheduler interface {
	ScheduleAfter(delay time.Duration, taskType string, payload any) error
}

type nopNotifier struct{}

func (nopNotifier) Publish(uint, string, any) error { return nil }

type nopScheduler struct{}

func (nopScheduler) ScheduleAfter(time.Duration, string, any) error { return nil }
