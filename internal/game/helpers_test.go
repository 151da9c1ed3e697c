package game

import (
	"strings"
	"sync"
	"testing"
	"time"
)

type recordedEvent struct {
	GameID  uint
	Event   string
	Payload any
}

type eventRecorder struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (r *eventRecorder) Publish(gameID uint, event string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{GameID: gameID, Event: event, Payload: payload})
	return nil
}

func (r *eventRecorder) byType(event string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []recordedEvent
	for _, e := range r.events {
		if e.Event == event {
			matched = append(matched, e)
		}
	}
	return matched
}

type recordedTask struct {
	Delay   time.Duration
	Type    string
	Payload any
}

type taskRecorder struct {
	mu    sync.Mutex
	tasks []recordedTask
}

func (r *taskRecorder) ScheduleAfter(delay time.Duration, taskType string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, recordedTask{Delay: delay, Type: taskType, Payload: payload})
	return nil
}

func (r *taskRecorder) byType(taskType string) []recordedTask {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []recordedTask
	for _, task := range r.tasks {
		if task.Type == taskType {
			matched = append(matched, task)
		}
	}
	return matched
}

func newTestService(t *testing.T) (*Service, *eventRecorder, *taskRecorder) {
	t.Helper()
	events := &eventRecorder{}
	jobs := &taskRecorder{}
	return New(nil, nil, events, jobs), events, jobs
}

var testStart = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

// newLobby creates a game with the given settings and joins extra players
// until the lobby holds count members. Player IDs come back in join order,
// the host first.
func newLobby(t *testing.T, svc *Service, settings Settings, count int) (*Game, []uint) {
	t.Helper()
	game, host, err := svc.CreateGame(settings, "Host", "", testStart)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	ids := []uint{host.ID}
	names := []string{"Bea", "Cal", "Dot", "Eli", "Fay", "Gus", "Hal", "Ivy", "Jem", "Kit", "Lou", "Max", "Ned", "Oak"}
	for i := 1; i < count; i++ {
		_, player, err := svc.Join(game.JoinCode, names[i-1], "", testStart)
		if err != nil {
			t.Fatalf("join %s: %v", names[i-1], err)
		}
		ids = append(ids, player.ID)
	}
	return game, ids
}

// startedGame creates a lobby of count players and starts the game.
func startedGame(t *testing.T, svc *Service, settings Settings, count int) (*Game, []uint) {
	t.Helper()
	game, ids := newLobby(t, svc, settings, count)
	if err := svc.StartGame(game.ID, ids[0], testStart); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return game, ids
}

// answerFor builds a text that expands the acronym one word per letter.
func answerFor(acro string) string {
	words := make([]string, 0, len(acro))
	for _, letter := range acro {
		words = append(words, string(letter)+"ay")
	}
	return strings.Join(words, " ")
}

func currentAcronym(t *testing.T, svc *Service, gameID uint) string {
	t.Helper()
	var acro string
	if _, err := svc.Store().UpdateGame(gameID, func(game *Game) error {
		round := currentRound(game)
		if round == nil {
			t.Fatal("no current round")
		}
		acro = round.Acronym
		return nil
	}); err != nil {
		t.Fatalf("read acronym: %v", err)
	}
	return acro
}

func gameState(t *testing.T, svc *Service, gameID uint) *Game {
	t.Helper()
	game, ok := svc.Store().GetGame(gameID)
	if !ok {
		t.Fatalf("game %d not found", gameID)
	}
	return game
}
