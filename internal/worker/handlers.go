package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"acroparty/internal/game"
	"acroparty/internal/tasks"
)

type handlers struct {
	svc *game.Service
	log *zap.Logger
}

func newHandlers(svc *game.Service, log *zap.Logger) *handlers {
	return &handlers{svc: svc, log: log}
}

// deadlineCheck re-runs deadline evaluation for one game. The service
// re-validates the round's phase, so a job outlived by the round is a
// no-op; a vanished game is not worth retrying.
func (h *handlers) deadlineCheck(ctx context.Context, t *asynq.Task) error {
	var payload tasks.DeadlineCheckPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if err := h.svc.CheckDeadlines(payload.GameID, time.Now().UTC()); err != nil {
		if errors.Is(err, game.ErrGameNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (h *handlers) botAnswer(ctx context.Context, t *asynq.Task) error {
	var payload tasks.BotAnswerPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	err := h.svc.PlaceBotAnswer(payload.GameID, payload.PlayerID, payload.RoundNumber, time.Now().UTC())
	if err != nil {
		if errors.Is(err, game.ErrGameNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (h *handlers) botVote(ctx context.Context, t *asynq.Task) error {
	var payload tasks.BotVotePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	err := h.svc.PlaceBotVote(payload.GameID, payload.PlayerID, payload.RoundNumber, time.Now().UTC())
	if err != nil {
		if errors.Is(err, game.ErrGameNotFound) {
			return nil
		}
		return err
	}
	return nil
}
