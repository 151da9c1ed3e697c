package game

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

func TestCreateGameClampsSettings(t *testing.T) {
	svc, _, _ := newTestService(t)
	settings := Settings{
		Rounds:        99,
		AnswerSeconds: 1,
		VoteSeconds:   999,
		MinPlayers:    1,
		MaxPlayers:    50,
		AcronymMin:    0,
		AcronymMax:    10,
		Visibility:    "whatever",
	}
	game, _, err := svc.CreateGame(settings, "Host", "", testStart)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got := game.Settings
	if got.Rounds != 20 || got.AnswerSeconds != 15 || got.VoteSeconds != 120 {
		t.Fatalf("timing not clamped: %+v", got)
	}
	if got.MinPlayers != 2 || got.MaxPlayers != 16 {
		t.Fatalf("player bounds not clamped: %+v", got)
	}
	if got.AcronymMin != 1 || got.AcronymMax != 6 {
		t.Fatalf("acronym bounds not clamped: %+v", got)
	}
	if got.Visibility != VisibilityPublic {
		t.Fatalf("expected visibility normalized to public, got %q", got.Visibility)
	}
}

func TestCreateGameRejectsBadNickname(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, _, err := svc.CreateGame(DefaultSettings(), "   ", "", testStart); err == nil {
		t.Fatal("expected empty nickname to be rejected")
	}
	if _, _, err := svc.CreateGame(DefaultSettings(), strings.Repeat("x", 30), "", testStart); err == nil {
		t.Fatal("expected long nickname to be rejected")
	}
}

func TestJoinPasswordProtectedGame(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, _, err := svc.CreateGame(DefaultSettings(), "Host", "hunter2", testStart)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, _, err := svc.Join(game.JoinCode, "Bea", "wrong", testStart); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if _, _, err := svc.Join(game.JoinCode, "Bea", "hunter2", testStart); err != nil {
		t.Fatalf("join with correct password: %v", err)
	}
}

func TestLeaveHandsHostToCoHostFirst(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.SetCoHost(game.ID, ids[0], ids[2], true, testStart); err != nil {
		t.Fatalf("set co-host: %v", err)
	}
	if err := svc.Leave(game.ID, ids[0], testStart); err != nil {
		t.Fatalf("leave: %v", err)
	}
	state := gameState(t, svc, game.ID)
	if state.HostID != ids[2] {
		t.Fatalf("expected co-host %d to inherit, got %d", ids[2], state.HostID)
	}
}

func TestLeaveHandsHostInJoinOrder(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.Leave(game.ID, ids[0], testStart); err != nil {
		t.Fatalf("leave: %v", err)
	}
	state := gameState(t, svc, game.ID)
	if state.HostID != ids[1] {
		t.Fatalf("expected %d to inherit, got %d", ids[1], state.HostID)
	}
}

func TestEmptyLobbyFinishesOnHostLeave(t *testing.T) {
	svc, events, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 1)

	if err := svc.Leave(game.ID, ids[0], testStart); err != nil {
		t.Fatalf("leave: %v", err)
	}
	state := gameState(t, svc, game.ID)
	if state.Status != StatusFinished || state.EndedFor != EndNormal {
		t.Fatalf("expected finished/normal, got %s/%s", state.Status, state.EndedFor)
	}
	if len(events.byType(EventGameFinished)) != 1 {
		t.Fatal("expected a game.finished event")
	}
}

func TestKickRecordsActorAndKeepsMembership(t *testing.T) {
	svc, events, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.Kick(game.ID, ids[0], ids[1], testStart); err != nil {
		t.Fatalf("kick: %v", err)
	}
	state := gameState(t, svc, game.ID)
	target := findPlayer(state, ids[1])
	if target == nil || target.IsActive {
		t.Fatalf("expected inactive membership to survive, got %#v", target)
	}
	if target.KickedBy == nil || *target.KickedBy != ids[0] {
		t.Fatalf("expected kick provenance %d, got %v", ids[0], target.KickedBy)
	}
	kicked := events.byType(EventPlayerKicked)
	if len(kicked) != 1 {
		t.Fatalf("expected one kick event, got %d", len(kicked))
	}
}

func TestBanRecordsReason(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.Ban(game.ID, ids[0], ids[1], "abusive", testStart); err != nil {
		t.Fatalf("ban: %v", err)
	}
	state := gameState(t, svc, game.ID)
	target := findPlayer(state, ids[1])
	if target.BannedBy == nil || *target.BannedBy != ids[0] || target.BanReason != "abusive" {
		t.Fatalf("expected ban provenance, got %#v", target)
	}
}

func TestCannotRemoveHost(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.SetCoHost(game.ID, ids[0], ids[1], true, testStart); err != nil {
		t.Fatalf("set co-host: %v", err)
	}
	if err := svc.Kick(game.ID, ids[1], ids[0], testStart); !errors.Is(err, ErrTargetIsHost) {
		t.Fatalf("expected ErrTargetIsHost, got %v", err)
	}
}

func TestKickRequiresModerator(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.Kick(game.ID, ids[1], ids[2], testStart); !errors.Is(err, ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
}

func TestSetCoHostIsHostOnly(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.SetCoHost(game.ID, ids[0], ids[1], true, testStart); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := svc.SetCoHost(game.ID, ids[1], ids[2], true, testStart); !errors.Is(err, ErrNotHost) {
		t.Fatalf("expected ErrNotHost for co-host actor, got %v", err)
	}
}

func TestCoHostCanKick(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.SetCoHost(game.ID, ids[0], ids[1], true, testStart); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if err := svc.Kick(game.ID, ids[1], ids[2], testStart); err != nil {
		t.Fatalf("co-host kick: %v", err)
	}
}

func TestStartGameRequiresMinPlayers(t *testing.T) {
	svc, _, _ := newTestService(t)
	settings := DefaultSettings()
	settings.MinPlayers = 3
	game, ids := newLobby(t, svc, settings, 2)

	if err := svc.StartGame(game.ID, ids[0], testStart); !errors.Is(err, ErrNotEnough) {
		t.Fatalf("expected ErrNotEnough, got %v", err)
	}
}

func TestStartGameTwiceRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := startedGame(t, svc, DefaultSettings(), 2)

	if err := svc.StartGame(game.ID, ids[0], testStart); !errors.Is(err, ErrGameStarted) {
		t.Fatalf("expected ErrGameStarted, got %v", err)
	}
}

func TestAddBotLobbyOnly(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 2)

	bot, err := svc.AddBot(game.ID, ids[0], testStart)
	if err != nil {
		t.Fatalf("add bot: %v", err)
	}
	if !bot.IsBot || !strings.HasPrefix(bot.Nickname, "Bot ") {
		t.Fatalf("unexpected bot player %#v", bot)
	}

	if err := svc.StartGame(game.ID, ids[0], testStart); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.AddBot(game.ID, ids[0], testStart); !errors.Is(err, ErrGameStarted) {
		t.Fatalf("expected ErrGameStarted mid-game, got %v", err)
	}
}

func TestAddBotRequiresModerator(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 2)

	if _, err := svc.AddBot(game.ID, ids[1], testStart); !errors.Is(err, ErrNotHost) {
		t.Fatalf("expected ErrNotHost, got %v", err)
	}
}

func TestAddBotConcurrentWithJoins(t *testing.T) {
	svc, _, _ := newTestService(t)
	settings := DefaultSettings()
	settings.MaxPlayers = 16
	game, ids := newLobby(t, svc, settings, 1)
	host := ids[0]

	var wg sync.WaitGroup
	for i := 0; i < 7; i++ {
		nickname := fmt.Sprintf("Guest%d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, _, err := svc.Join(game.JoinCode, nickname, "", testStart); err != nil {
				t.Errorf("join %s: %v", nickname, err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.AddBot(game.ID, host, testStart); err != nil {
				t.Errorf("add bot: %v", err)
			}
		}()
	}
	wg.Wait()

	state := gameState(t, svc, game.ID)
	if n := activePlayerCount(state); n != 15 {
		t.Fatalf("expected 15 active players, got %d", n)
	}
	seen := make(map[string]bool)
	for _, player := range state.Players {
		if seen[player.Nickname] {
			t.Fatalf("duplicate nickname %q", player.Nickname)
		}
		seen[player.Nickname] = true
	}
}

func TestBotsDoNotBecomeHost(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 2)
	if _, err := svc.AddBot(game.ID, ids[0], testStart); err != nil {
		t.Fatalf("add bot: %v", err)
	}
	if err := svc.Leave(game.ID, ids[0], testStart); err != nil {
		t.Fatalf("leave: %v", err)
	}
	state := gameState(t, svc, game.ID)
	if state.HostID != ids[1] {
		t.Fatalf("expected human %d to inherit, got %d", ids[1], state.HostID)
	}
}
