// Package game implements the acronym game core: the roster and round
// state machines, scoring, bot dispatching, and the orchestrator that
// drives every in-progress game forward.
package game

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deadlineSlack is added to scheduled deadline-check jobs; the tick loop
// remains the authoritative reader of expiry.
const deadlineSlack = 2 * time.Second

type Service struct {
	store     *Store
	db        *gorm.DB
	log       *zap.Logger
	notifier  Notifier
	scheduler Scheduler

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New builds a Service. conn may be nil (no persistence, used in tests);
// nil notifier or scheduler default to no-ops.
func New(conn *gorm.DB, logger *zap.Logger, notifier Notifier, scheduler Scheduler) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if scheduler == nil {
		scheduler = nopScheduler{}
	}
	return &Service{
		store:     NewStore(),
		db:        conn,
		log:       logger,
		notifier:  notifier,
		scheduler: scheduler,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Service) Store() *Store {
	return s.store
}

// publish sends an event to the game channel and records it in the event
// log. Failures are logged and swallowed: state is already committed and
// the game keeps progressing on the next tick.
func (s *Service) publish(game *Game, event string, payload any) {
	if err := s.notifier.Publish(game.ID, event, payload); err != nil {
		s.log.Warn("publish failed",
			zap.Uint("game_id", game.ID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
	s.persistEvent(game, event, payload)
}

func (s *Service) chat(game *Game, message string) {
	s.publish(game, EventChatMessage, ChatPayload{System: true, Message: message})
}

func (s *Service) schedule(delay time.Duration, taskType string, payload any) {
	if delay < 0 {
		delay = 0
	}
	if err := s.scheduler.ScheduleAfter(delay, taskType, payload); err != nil {
		s.log.Warn("schedule failed",
			zap.String("task_type", taskType),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
	}
}

func (s *Service) randFloat() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *Service) randIntn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}
