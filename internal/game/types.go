package game

import "time"

// Status is a game's lifecycle state. Transitions are monotonic except
// playing and voting, which alternate once per round; finished is terminal.
type Status string

const (
	StatusLobby    Status = "lobby"
	StatusPlaying  Status = "playing"
	StatusVoting   Status = "voting"
	StatusFinished Status = "finished"
)

// RoundStatus is a round's lifecycle state.
type RoundStatus string

const (
	RoundAnswering RoundStatus = "answering"
	RoundVoting    RoundStatus = "voting"
	RoundCompleted RoundStatus = "completed"
)

// EndReason records why a game finished.
type EndReason string

const (
	EndNormal       EndReason = "normal"
	EndInactivity   EndReason = "inactivity"
	EndLobbyTimeout EndReason = "lobby_timeout"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

type Settings struct {
	Rounds          int
	AnswerSeconds   int
	VoteSeconds     int
	MinPlayers      int
	MaxPlayers      int
	AcronymMin      int
	AcronymMax      int
	BetweenSeconds  int
	ExcludedLetters string
	MaxEdits        int
	MaxVoteChanges  int
	AllowReadyCheck bool
	Visibility      string
	PasswordHash    string
}

func DefaultSettings() Settings {
	return Settings{
		Rounds:          5,
		AnswerSeconds:   60,
		VoteSeconds:     30,
		MinPlayers:      2,
		MaxPlayers:      8,
		AcronymMin:      3,
		AcronymMax:      5,
		BetweenSeconds:  8,
		AllowReadyCheck: true,
		Visibility:      VisibilityPublic,
	}
}

func (s Settings) AnswerTime() time.Duration {
	return time.Duration(s.AnswerSeconds) * time.Second
}

func (s Settings) VoteTime() time.Duration {
	return time.Duration(s.VoteSeconds) * time.Second
}

func (s Settings) TimeBetweenRounds() time.Duration {
	return time.Duration(s.BetweenSeconds) * time.Second
}

type Game struct {
	ID       uint
	DBID     uint
	JoinCode string
	Status   Status
	Settings Settings

	HostID       uint
	CurrentRound int
	StartedAt    *time.Time
	FinishedAt   *time.Time
	EndedFor     EndReason

	// LastActivityAt is the idle clock for lobby expiry; LobbyWarningAt is
	// set without touching it so the warning does not reset the clock.
	LastActivityAt time.Time
	LobbyWarningAt *time.Time

	NextAnswerID uint
	Players      []Player
	Rounds       []RoundState
}

type Player struct {
	ID        uint
	DBID      uint
	Nickname  string
	Score     int
	IsActive  bool
	IsCoHost  bool
	IsBot     bool
	KickedBy  *uint
	BannedBy  *uint
	BanReason string
	JoinedAt  time.Time
}

type RoundState struct {
	Number         int
	DBID           uint
	Acronym        string
	Status         RoundStatus
	AnswerDeadline *time.Time
	VoteDeadline   *time.Time
	GraceCount     int
	CompletedAt    *time.Time
	Answers        []AnswerEntry
	Votes          []VoteEntry
}

type AnswerEntry struct {
	ID         uint
	DBID       uint
	PlayerID   uint
	Nickname   string
	Text       string
	VotesCount int
	EditCount  int
	Ready      bool
}

type VoteEntry struct {
	DBID        uint
	VoterID     uint
	Nickname    string
	AnswerID    uint
	ChangeCount int
}

func currentRound(game *Game) *RoundState {
	for i := range game.Rounds {
		if game.Rounds[i].Status != RoundCompleted {
			return &game.Rounds[i]
		}
	}
	return nil
}

func lastCompletedRound(game *Game) *RoundState {
	var last *RoundState
	for i := range game.Rounds {
		if game.Rounds[i].Status == RoundCompleted {
			if last == nil || game.Rounds[i].Number > last.Number {
				last = &game.Rounds[i]
			}
		}
	}
	return last
}

func completedRoundCount(game *Game) int {
	count := 0
	for i := range game.Rounds {
		if game.Rounds[i].Status == RoundCompleted {
			count++
		}
	}
	return count
}

func findPlayer(game *Game, playerID uint) *Player {
	for i := range game.Players {
		if game.Players[i].ID == playerID {
			return &game.Players[i]
		}
	}
	return nil
}

func findPlayerByNickname(game *Game, nickname string) *Player {
	for i := range game.Players {
		if game.Players[i].Nickname == nickname {
			return &game.Players[i]
		}
	}
	return nil
}

func activePlayers(game *Game) []*Player {
	var active []*Player
	for i := range game.Players {
		if game.Players[i].IsActive {
			active = append(active, &game.Players[i])
		}
	}
	return active
}

func activePlayerCount(game *Game) int {
	return len(activePlayers(game))
}

func findAnswer(round *RoundState, answerID uint) *AnswerEntry {
	for i := range round.Answers {
		if round.Answers[i].ID == answerID {
			return &round.Answers[i]
		}
	}
	return nil
}

func answerByPlayer(round *RoundState, playerID uint) *AnswerEntry {
	for i := range round.Answers {
		if round.Answers[i].PlayerID == playerID {
			return &round.Answers[i]
		}
	}
	return nil
}

func voteByVoter(round *RoundState, voterID uint) *VoteEntry {
	for i := range round.Votes {
		if round.Votes[i].VoterID == voterID {
			return &round.Votes[i]
		}
	}
	return nil
}
