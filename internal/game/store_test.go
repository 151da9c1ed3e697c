package game

import (
	"errors"
	"testing"
)

func TestAddPlayerCapacity(t *testing.T) {
	svc, _, _ := newTestService(t)
	settings := DefaultSettings()
	settings.MaxPlayers = 2
	game, _ := newLobby(t, svc, settings, 2)

	_, _, err := svc.Join(game.JoinCode, "Late", "", testStart)
	if !errors.Is(err, ErrLobbyFull) {
		t.Fatalf("expected ErrLobbyFull, got %v", err)
	}
}

func TestAddPlayerDuplicateNickname(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, _ := newLobby(t, svc, DefaultSettings(), 2)

	_, _, err := svc.Join(game.JoinCode, "Bea", "", testStart)
	if !errors.Is(err, ErrNicknameTaken) {
		t.Fatalf("expected ErrNicknameTaken, got %v", err)
	}
}

func TestAddPlayerUnknownCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, _, err := svc.Join("NOSUCH", "Ada", "", testStart)
	if !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected ErrGameNotFound, got %v", err)
	}
}

func TestHostIsFirstHumanJoin(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 2)

	state := gameState(t, svc, game.ID)
	if state.HostID != ids[0] {
		t.Fatalf("expected host %d, got %d", ids[0], state.HostID)
	}
}

func TestRejoinAfterKick(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.Kick(game.ID, ids[0], ids[1], testStart); err != nil {
		t.Fatalf("kick: %v", err)
	}
	_, player, err := svc.Join(game.JoinCode, "Bea", "", testStart)
	if err != nil {
		t.Fatalf("rejoin after kick: %v", err)
	}
	if player.ID != ids[1] {
		t.Fatalf("expected reused membership %d, got %d", ids[1], player.ID)
	}
	if !player.IsActive || player.KickedBy != nil {
		t.Fatalf("expected re-activation to clear kick, got %#v", player)
	}
}

func TestRejoinAfterBanRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := newLobby(t, svc, DefaultSettings(), 3)

	if err := svc.Ban(game.ID, ids[0], ids[1], "spam", testStart); err != nil {
		t.Fatalf("ban: %v", err)
	}
	_, _, err := svc.Join(game.JoinCode, "Bea", "", testStart)
	if !errors.Is(err, ErrBanned) {
		t.Fatalf("expected ErrBanned, got %v", err)
	}
}

func TestNewJoinRejectedAfterStart(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, _ := startedGame(t, svc, DefaultSettings(), 2)

	_, _, err := svc.Join(game.JoinCode, "Late", "", testStart)
	if !errors.Is(err, ErrGameStarted) {
		t.Fatalf("expected ErrGameStarted, got %v", err)
	}
}

func TestRejoinMidGameAllowed(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, ids := startedGame(t, svc, DefaultSettings(), 3)

	if err := svc.Leave(game.ID, ids[2], testStart); err != nil {
		t.Fatalf("leave: %v", err)
	}
	_, player, err := svc.Join(game.JoinCode, "Cal", "", testStart)
	if err != nil {
		t.Fatalf("rejoin mid-game: %v", err)
	}
	if player.ID != ids[2] {
		t.Fatalf("expected reused membership %d, got %d", ids[2], player.ID)
	}
}

func TestJoinFinishedGameRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	game, _ := newLobby(t, svc, DefaultSettings(), 2)

	if _, err := svc.Store().UpdateGame(game.ID, func(g *Game) error {
		svc.endGame(g, EndNormal, testStart)
		return nil
	}); err != nil {
		t.Fatalf("end game: %v", err)
	}
	_, _, err := svc.Join(game.JoinCode, "Late", "", testStart)
	if !errors.Is(err, ErrGameFinished) {
		t.Fatalf("expected ErrGameFinished, got %v", err)
	}
}

func TestStoreRestoreRejectsDuplicates(t *testing.T) {
	store := NewStore()
	game, err := store.CreateGame(DefaultSettings(), testStart)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := &Game{ID: game.ID, JoinCode: "ZZZZ22"}
	if err := store.Restore(dup); !errors.Is(err, ErrGameRunning) {
		t.Fatalf("expected ErrGameRunning for duplicate id, got %v", err)
	}
	dup = &Game{ID: game.ID + 50, JoinCode: game.JoinCode}
	if err := store.Restore(dup); !errors.Is(err, ErrGameRunning) {
		t.Fatalf("expected ErrGameRunning for duplicate code, got %v", err)
	}
}

func TestStoreRestoreBumpsCounters(t *testing.T) {
	store := NewStore()
	restored := &Game{
		ID:       7,
		JoinCode: "AAAA22",
		Status:   StatusLobby,
		Settings: DefaultSettings(),
		Players:  []Player{{ID: 40, Nickname: "Ada", IsActive: true}},
	}
	if err := store.Restore(restored); err != nil {
		t.Fatalf("restore: %v", err)
	}

	game, err := store.CreateGame(DefaultSettings(), testStart)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if game.ID <= 7 {
		t.Fatalf("expected id above restored game, got %d", game.ID)
	}
	_, player, _, err := store.AddPlayer(game.JoinCode, "Bea", false, testStart)
	if err != nil {
		t.Fatalf("add player: %v", err)
	}
	if player.ID <= 40 {
		t.Fatalf("expected player id above restored players, got %d", player.ID)
	}
}
