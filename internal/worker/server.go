// Package worker runs the asynq consumer for delayed game jobs: deadline
// checks and bot actions.
package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"acroparty/internal/game"
	"acroparty/internal/tasks"
)

type Server struct {
	server *asynq.Server
	svc    *game.Service
	log    *zap.Logger
}

func NewServer(redisOpt asynq.RedisClientOpt, svc *game.Service, logger *zap.Logger, concurrency int) *Server {
	log := logger.Named("worker")
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			log.Error("task failed",
				zap.String("task_type", task.Type()),
				zap.Int("retries", retried),
				zap.Error(err),
			)
		}),
	})
	return &Server{server: server, svc: svc, log: log}
}

// Start runs the worker; call from its own goroutine.
func (s *Server) Start() error {
	mux := asynq.NewServeMux()
	handlers := newHandlers(s.svc, s.log)
	mux.HandleFunc(tasks.TypeDeadlineCheck, handlers.deadlineCheck)
	mux.HandleFunc(tasks.TypeBotAnswer, handlers.botAnswer)
	mux.HandleFunc(tasks.TypeBotVote, handlers.botVote)

	s.log.Info("worker starting")
	if err := s.server.Run(mux); err != nil && !errors.Is(err, asynq.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown() {
	s.server.Shutdown()
}
