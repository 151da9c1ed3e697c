package game

import (
	"fmt"
	"time"

	"acroparty/internal/auth"
)

// CreateGame allocates a game with clamped settings and joins the creator
// as host.
func (s *Service) CreateGame(settings Settings, hostNickname, password string, now time.Time) (*Game, *Player, error) {
	nickname, err := validateNickname(hostNickname)
	if err != nil {
		return nil, nil, err
	}
	settings = ClampSettings(settings)
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, nil, err
		}
		settings.PasswordHash = hash
	}

	game, err := s.store.CreateGame(settings, now)
	if err != nil {
		return nil, nil, err
	}
	s.persistGame(game)

	_, host, _, err := s.store.AddPlayer(game.JoinCode, nickname, false, now)
	if err != nil {
		return nil, nil, err
	}
	s.persistPlayer(game, host)
	s.persistGameState(game)
	s.publish(game, EventPlayerJoined, PlayerPayload{
		PlayerID:    host.ID,
		Nickname:    host.Nickname,
		ActiveCount: activePlayerCount(game),
		NewHostID:   game.HostID,
	})
	return game, host, nil
}

// Join adds nickname to the game with the given join code. Rejoin after a
// kick is allowed when capacity permits; rejoin after a ban is not.
func (s *Service) Join(code, rawNickname, password string, now time.Time) (*Game, *Player, error) {
	nickname, err := validateNickname(rawNickname)
	if err != nil {
		return nil, nil, err
	}
	existing, ok := s.store.FindGameByJoinCode(code)
	if !ok {
		return nil, nil, ErrGameNotFound
	}
	if hash := existing.Settings.PasswordHash; hash != "" && !auth.VerifyPassword(password, hash) {
		return nil, nil, ErrWrongPassword
	}

	game, player, rejoined, err := s.store.AddPlayer(code, nickname, false, now)
	if err != nil {
		return nil, nil, err
	}
	if rejoined {
		s.persistPlayerState(game, player)
	} else {
		s.persistPlayer(game, player)
	}
	s.persistGameState(game)
	s.publish(game, EventPlayerJoined, PlayerPayload{
		PlayerID:    player.ID,
		Nickname:    player.Nickname,
		ActiveCount: activePlayerCount(game),
		NewHostID:   game.HostID,
	})
	return game, player, nil
}

// AddBot seats a bot player. Host or co-host only, lobby only.
func (s *Service) AddBot(gameID, actorID uint, now time.Time) (*Player, error) {
	game, bot, err := s.store.SeatBot(gameID, func(game *Game) error {
		return requireModerator(game, actorID)
	}, s.botNickname, now)
	if err != nil {
		return nil, err
	}
	s.persistPlayer(game, bot)
	s.persistGameState(game)
	s.publish(game, EventPlayerJoined, PlayerPayload{
		PlayerID:    bot.ID,
		Nickname:    bot.Nickname,
		ActiveCount: activePlayerCount(game),
	})
	return bot, nil
}

// Leave soft-removes a player. A departing host hands off to a co-host
// first, then any active player; a lobby with nobody left finishes
// immediately, a running game is closed by the orchestrator's next tick.
func (s *Service) Leave(gameID, playerID uint, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		player := findPlayer(game, playerID)
		if player == nil {
			return ErrNotAMember
		}
		if !player.IsActive {
			return ErrNotActive
		}
		player.IsActive = false

		if game.HostID == player.ID {
			if heir := hostCandidate(game); heir != nil {
				game.HostID = heir.ID
			} else if game.Status == StatusLobby {
				s.endGame(game, EndNormal, now)
			}
		}
		game.LastActivityAt = now
		s.persistPlayerState(game, player)
		s.persistGameState(game)
		s.publish(game, EventPlayerLeft, PlayerPayload{
			PlayerID:    player.ID,
			Nickname:    player.Nickname,
			ActiveCount: activePlayerCount(game),
			NewHostID:   game.HostID,
		})
		return nil
	})
	return err
}

// Kick removes a player, recording who did it. The membership row survives
// so the player may rejoin later.
func (s *Service) Kick(gameID, actorID, targetID uint, now time.Time) error {
	return s.removePlayer(gameID, actorID, targetID, "", false, now)
}

// Ban removes a player permanently.
func (s *Service) Ban(gameID, actorID, targetID uint, reason string, now time.Time) error {
	return s.removePlayer(gameID, actorID, targetID, reason, true, now)
}

func (s *Service) removePlayer(gameID, actorID, targetID uint, reason string, ban bool, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if err := requireModerator(game, actorID); err != nil {
			return err
		}
		target := findPlayer(game, targetID)
		if target == nil {
			return ErrNotAMember
		}
		if target.ID == game.HostID {
			return ErrTargetIsHost
		}
		actor := actorID
		if ban {
			target.BannedBy = &actor
			target.BanReason = reason
		} else {
			target.KickedBy = &actor
		}
		target.IsActive = false
		target.IsCoHost = false
		game.LastActivityAt = now
		s.persistPlayerState(game, target)
		s.persistGameState(game)
		kind := "kicked"
		if ban {
			kind = "banned"
		}
		s.publish(game, EventPlayerKicked, PlayerPayload{
			PlayerID:    target.ID,
			Nickname:    target.Nickname,
			ActiveCount: activePlayerCount(game),
			Reason:      kind,
		})
		return nil
	})
	return err
}

// SetCoHost grants or revokes co-host permissions. Host only.
func (s *Service) SetCoHost(gameID, actorID, targetID uint, grant bool, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if game.Status == StatusFinished {
			return ErrGameFinished
		}
		if actorID != game.HostID {
			return ErrNotHost
		}
		target := findPlayer(game, targetID)
		if target == nil {
			return ErrNotAMember
		}
		if !target.IsActive {
			return ErrNotActive
		}
		if target.ID == game.HostID {
			return ErrTargetIsHost
		}
		target.IsCoHost = grant
		game.LastActivityAt = now
		s.persistPlayerState(game, target)
		s.persistGameState(game)
		return nil
	})
	return err
}

// StartGame moves a lobby into play and begins the first round.
func (s *Service) StartGame(gameID, playerID uint, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if game.Status != StatusLobby {
			return ErrGameStarted
		}
		if err := requireModerator(game, playerID); err != nil {
			return err
		}
		if activePlayerCount(game) < game.Settings.MinPlayers {
			return ErrNotEnough
		}
		game.Status = StatusPlaying
		started := now
		game.StartedAt = &started
		game.LobbyWarningAt = nil
		game.LastActivityAt = now
		s.persistGameState(game)
		s.startRound(game, now)
		return nil
	})
	return err
}

// Keepalive refreshes a lobby's idle clock.
func (s *Service) Keepalive(gameID uint, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if game.Status == StatusFinished {
			return ErrGameFinished
		}
		game.LastActivityAt = now
		return nil
	})
	return err
}

func requireModerator(game *Game, playerID uint) error {
	if game.Status == StatusFinished {
		return ErrGameFinished
	}
	player := findPlayer(game, playerID)
	if player == nil {
		return ErrNotAMember
	}
	if !player.IsActive {
		return ErrNotActive
	}
	if player.ID != game.HostID && !player.IsCoHost {
		return ErrNotHost
	}
	return nil
}

// hostCandidate picks the next host: co-hosts first, then active humans,
// then anyone active, in join order. Bots only inherit when no human is
// left.
func hostCandidate(game *Game) *Player {
	var human, fallback *Player
	for i := range game.Players {
		player := &game.Players[i]
		if !player.IsActive || player.ID == game.HostID {
			continue
		}
		if player.IsCoHost {
			return player
		}
		if !player.IsBot && human == nil {
			human = player
		}
		if fallback == nil {
			fallback = player
		}
	}
	if human != nil {
		return human
	}
	return fallback
}

var botNames = []string{"Alpha", "Bravo", "Echo", "Jazz", "Mango", "Nova", "Pixel", "Rune", "Tango", "Zesty"}

func (s *Service) botNickname(game *Game) string {
	base := botNames[s.randIntn(len(botNames))]
	name := "Bot " + base
	for suffix := 2; findPlayerByNickname(game, name) != nil; suffix++ {
		name = fmt.Sprintf("Bot %s %d", base, suffix)
	}
	return name
}
