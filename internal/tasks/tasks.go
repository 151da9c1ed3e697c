// Package tasks defines the delayed job types exchanged between the game
// core and the asynq worker, plus the asynq-backed scheduler.
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeDeadlineCheck = "round:deadline_check"
	TypeBotAnswer     = "bot:answer"
	TypeBotVote       = "bot:vote"
)

type DeadlineCheckPayload struct {
	GameID uint `json:"game_id"`
}

type BotAnswerPayload struct {
	GameID      uint `json:"game_id"`
	PlayerID    uint `json:"player_id"`
	RoundNumber int  `json:"round_number"`
}

type BotVotePayload struct {
	GameID      uint `json:"game_id"`
	PlayerID    uint `json:"player_id"`
	RoundNumber int  `json:"round_number"`
}

// Client schedules delayed jobs on asynq. It satisfies the game package's
// Scheduler port.
type Client struct {
	inner *asynq.Client
}

func NewClient(opt asynq.RedisClientOpt) *Client {
	return &Client{inner: asynq.NewClient(opt)}
}

func (c *Client) ScheduleAfter(delay time.Duration, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.inner.Enqueue(asynq.NewTask(taskType, data), asynq.ProcessIn(delay))
	return err
}

func (c *Client) Close() error {
	return c.inner.Close()
}
