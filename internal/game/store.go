package game

import (
	"sync"
	"time"
)

// Store holds the authoritative runtime state of every game. All mutation
// goes through its mutex; UpdateGame runs the given closure under the lock
// so read-check-write spans stay atomic.
type Store struct {
	mu           sync.Mutex
	nextGameID   uint
	nextPlayerID uint
	games        map[uint]*Game
}

func NewStore() *Store {
	return &Store{
		nextGameID:   1,
		nextPlayerID: 1,
		games:        make(map[uint]*Game),
	}
}

// CreateGame allocates a game with a unique join code. Settings are assumed
// to be clamped by the caller.
func (s *Store) CreateGame(settings Settings, now time.Time) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, err := s.uniqueJoinCode()
	if err != nil {
		return nil, err
	}
	game := &Game{
		ID:             s.nextGameID,
		JoinCode:       code,
		Status:         StatusLobby,
		Settings:       settings,
		NextAnswerID:   1,
		LastActivityAt: now,
	}
	s.nextGameID++
	s.games[game.ID] = game
	return game, nil
}

func (s *Store) uniqueJoinCode() (string, error) {
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := newJoinCode()
		if err != nil {
			return "", err
		}
		taken := false
		for _, game := range s.games {
			if game.JoinCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodesExhausted
}

func (s *Store) GetGame(id uint) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	return game, ok
}

func (s *Store) FindGameByJoinCode(code string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, game := range s.games {
		if game.JoinCode == code {
			return game, true
		}
	}
	return nil, false
}

// UpdateGame runs update while holding the store lock.
func (s *Store) UpdateGame(id uint, update func(game *Game) error) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	if err := update(game); err != nil {
		return nil, err
	}
	return game, nil
}

// AddPlayer joins nickname to the game identified by join code. The
// capacity check and the roster append happen under one lock acquisition so
// two concurrent joins cannot both pass a stale count. The returned bool is
// true when an existing membership was re-activated.
func (s *Store) AddPlayer(code, nickname string, isBot bool, now time.Time) (*Game, *Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var game *Game
	for _, candidate := range s.games {
		if candidate.JoinCode == code {
			game = candidate
			break
		}
	}
	if game == nil {
		return nil, nil, false, ErrGameNotFound
	}
	player, rejoined, err := s.seatLocked(game, nickname, isBot, now)
	if err != nil {
		return nil, nil, false, err
	}
	return game, player, rejoined, nil
}

// SeatBot adds a bot player. The caller's permission check, the nickname
// selection, and the roster append all run under one lock acquisition so a
// concurrent join cannot race the roster scan.
func (s *Store) SeatBot(gameID uint, check func(game *Game) error, pick func(game *Game) string, now time.Time) (*Game, *Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[gameID]
	if !ok {
		return nil, nil, ErrGameNotFound
	}
	if err := check(game); err != nil {
		return nil, nil, err
	}
	player, _, err := s.seatLocked(game, pick(game), true, now)
	if err != nil {
		return nil, nil, err
	}
	return game, player, nil
}

// seatLocked is the roster append shared by AddPlayer and SeatBot. The
// caller holds the mutex.
func (s *Store) seatLocked(game *Game, nickname string, isBot bool, now time.Time) (*Player, bool, error) {
	if game.Status == StatusFinished {
		return nil, false, ErrGameFinished
	}

	if existing := findPlayerByNickname(game, nickname); existing != nil {
		if existing.BannedBy != nil {
			return nil, false, ErrBanned
		}
		if existing.IsActive {
			return nil, false, ErrNicknameTaken
		}
		if activePlayerCount(game) >= game.Settings.MaxPlayers {
			return nil, false, ErrLobbyFull
		}
		existing.IsActive = true
		existing.KickedBy = nil
		game.LastActivityAt = now
		return existing, true, nil
	}

	if game.Status != StatusLobby {
		return nil, false, ErrGameStarted
	}
	if activePlayerCount(game) >= game.Settings.MaxPlayers {
		return nil, false, ErrLobbyFull
	}

	player := Player{
		ID:       s.nextPlayerID,
		Nickname: nickname,
		IsActive: true,
		IsBot:    isBot,
		JoinedAt: now,
	}
	s.nextPlayerID++
	game.Players = append(game.Players, player)
	if game.HostID == 0 && !isBot {
		game.HostID = player.ID
	}
	game.LastActivityAt = now
	return &game.Players[len(game.Players)-1], false, nil
}

// ListGameIDs returns the ids of games matching filter, read under the lock.
func (s *Store) ListGameIDs(filter func(game *Game) bool) []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]uint, 0, len(s.games))
	for id, game := range s.games {
		if filter == nil || filter(game) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Restore places a game rebuilt from persistence into the store, bumping
// the id counters past anything it carries.
func (s *Store) Restore(game *Game) error {
	if game == nil {
		return ErrGameNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[game.ID]; ok {
		return ErrGameRunning
	}
	for _, existing := range s.games {
		if existing.JoinCode == game.JoinCode {
			return ErrGameRunning
		}
	}
	s.games[game.ID] = game
	if game.ID >= s.nextGameID {
		s.nextGameID = game.ID + 1
	}
	for _, player := range game.Players {
		if player.ID >= s.nextPlayerID {
			s.nextPlayerID = player.ID + 1
		}
	}
	return nil
}
