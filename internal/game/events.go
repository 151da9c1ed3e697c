package game

import "time"

// Event names published to a game's channel. The payload schema is part of
// the contract even though the transport is external.
const (
	EventRoundStarted   = "round.started"
	EventVotingStarted  = "voting.started"
	EventRoundCompleted = "round.completed"
	EventGameFinished   = "game.finished"
	EventPlayerJoined   = "player.joined"
	EventPlayerLeft     = "player.left"
	EventPlayerKicked   = "player.kicked"
	EventChatMessage    = "chat.message"
	EventLobbyExpiring  = "lobby.expiring"
)

type RoundStartedPayload struct {
	RoundID        uint      `json:"round_id"`
	Number         int       `json:"number"`
	Acronym        string    `json:"acronym"`
	AnswerDeadline time.Time `json:"answer_deadline"`
}

// AnonymousAnswer is an answer with authorship stripped for the voting
// broadcast.
type AnonymousAnswer struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type VotingStartedPayload struct {
	RoundID      uint              `json:"round_id"`
	Number       int               `json:"number"`
	Answers      []AnonymousAnswer `json:"answers"`
	VoteDeadline time.Time         `json:"vote_deadline"`
}

type RoundResult struct {
	PlayerID   uint     `json:"player_id"`
	Nickname   string   `json:"nickname"`
	AnswerText string   `json:"answer_text"`
	Votes      int      `json:"votes"`
	Points     int      `json:"points"`
	Voters     []string `json:"voters,omitempty"`
}

type LeaderboardRow struct {
	PlayerID uint   `json:"player_id"`
	Nickname string `json:"nickname"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank,omitempty"`
	Winner   bool   `json:"winner,omitempty"`
}

type RoundCompletedPayload struct {
	RoundID     uint             `json:"round_id"`
	Number      int              `json:"number"`
	Results     []RoundResult    `json:"results"`
	Leaderboard []LeaderboardRow `json:"leaderboard"`
	NextRoundIn int              `json:"next_round_in_seconds"`
}

type GameFinishedPayload struct {
	Reason EndReason        `json:"reason"`
	Winner *LeaderboardRow  `json:"winner,omitempty"`
	Scores []LeaderboardRow `json:"scores"`
}

type PlayerPayload struct {
	PlayerID    uint   `json:"player_id"`
	Nickname    string `json:"nickname"`
	ActiveCount int    `json:"active_count"`
	NewHostID   uint   `json:"new_host_id,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

type ChatPayload struct {
	System  bool   `json:"system"`
	Message string `json:"message"`
}

type LobbyExpiringPayload struct {
	SecondsRemaining int `json:"seconds_remaining"`
}
