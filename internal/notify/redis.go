// Package notify publishes game events to per-game Redis channels.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

type envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// RedisNotifier satisfies the game package's Notifier port. Consumers
// subscribe to the per-game channel; delivery is at-least-once and
// consumers are expected to be idempotent.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func Channel(gameID uint) string {
	return fmt.Sprintf("acroparty:game:%d", gameID)
}

func (n *RedisNotifier) Publish(gameID uint, event string, payload any) error {
	data, err := json.Marshal(envelope{Event: event, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event, err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := n.client.Publish(ctx, Channel(gameID), data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}
	return nil
}
