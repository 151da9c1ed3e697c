package game

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Tick scans all games needing attention and performs at most one due
// transition per game: deadline expiry for the current round, the
// no-current-round decision, or lobby idle handling. The loop holds no
// business rules itself; it only selects and dispatches. A failure in one
// game is logged and never interrupts the others. Returns the number of
// games on which an action was performed.
func (s *Service) Tick(now time.Time) int {
	processed := 0

	active := s.store.ListGameIDs(func(game *Game) bool {
		return game.Status == StatusPlaying || game.Status == StatusVoting
	})
	for _, id := range active {
		acted, err := s.processGame(id, now)
		if err != nil {
			s.log.Error("tick: game processing failed", zap.Uint("game_id", id), zap.Error(err))
			continue
		}
		if acted {
			processed++
		}
	}

	lobbies := s.store.ListGameIDs(func(game *Game) bool {
		return game.Status == StatusLobby
	})
	for _, id := range lobbies {
		acted, err := s.processLobby(id, now)
		if err != nil {
			s.log.Error("tick: lobby processing failed", zap.Uint("game_id", id), zap.Error(err))
			continue
		}
		if acted {
			processed++
		}
	}
	return processed
}

func (s *Service) processGame(id uint, now time.Time) (acted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	_, err = s.store.UpdateGame(id, func(game *Game) error {
		if game.Status != StatusPlaying && game.Status != StatusVoting {
			return nil
		}
		round := currentRound(game)
		switch {
		case round == nil:
			acted = s.handleNoCurrentRound(game, now)
		case round.Status == RoundAnswering:
			acted = s.handleAnswerDeadline(game, round, now)
		case round.Status == RoundVoting:
			acted = s.handleVoteDeadline(game, round, now)
		}
		return nil
	})
	return acted, err
}

func (s *Service) processLobby(id uint, now time.Time) (acted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	_, err = s.store.UpdateGame(id, func(game *Game) error {
		acted = s.handleLobbyIdle(game, now)
		return nil
	})
	return acted, err
}

// CheckDeadlines is the consumer side of scheduled deadline-check jobs.
// It re-validates the current phase exactly like the tick path, so a
// stale or duplicate job is a safe no-op.
func (s *Service) CheckDeadlines(gameID uint, now time.Time) error {
	_, err := s.processGame(gameID, now)
	return err
}

// StartTicking runs the orchestrator on a fixed cadence and returns the
// scheduler for shutdown.
func (s *Service) StartTicking(interval time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.Tick(time.Now().UTC())
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
