package game

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"acroparty/internal/acronym"
	"acroparty/internal/tasks"
)

const (
	// A round with zero answers is extended by half the answer time, at
	// most twice; the third occurrence ends the game.
	maxGraceExtensions = 2

	lobbyIdleAfter    = 300 * time.Second
	lobbyWarningGrace = 60 * time.Second
)

// startRound advances the round counter and opens the answering phase.
// Callers hold the store lock.
func (s *Service) startRound(game *Game, now time.Time) {
	game.CurrentRound++
	settings := game.Settings
	deadline := now.Add(settings.AnswerTime())
	game.Rounds = append(game.Rounds, RoundState{
		Number:         game.CurrentRound,
		Acronym:        s.newAcronym(settings),
		Status:         RoundAnswering,
		AnswerDeadline: &deadline,
	})
	round := &game.Rounds[len(game.Rounds)-1]
	game.LastActivityAt = now
	s.persistRound(game, round)
	s.persistGameState(game)

	s.schedule(settings.AnswerTime()+deadlineSlack, tasks.TypeDeadlineCheck, tasks.DeadlineCheckPayload{GameID: game.ID})
	s.publish(game, EventRoundStarted, RoundStartedPayload{
		RoundID:        roundID(round),
		Number:         round.Number,
		Acronym:        round.Acronym,
		AnswerDeadline: deadline,
	})
	s.dispatchBotAnswers(game, round, now)
}

func (s *Service) newAcronym(settings Settings) string {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return acronym.Generate(s.rng, settings.AcronymMin, settings.AcronymMax, settings.ExcludedLetters)
}

// handleAnswerDeadline resolves an answering round whose deadline has
// passed. A stale signal (wrong phase, deadline not reached) is a no-op,
// which keeps redundant deadline jobs harmless.
func (s *Service) handleAnswerDeadline(game *Game, round *RoundState, now time.Time) bool {
	if round.Status != RoundAnswering || round.AnswerDeadline == nil || now.Before(*round.AnswerDeadline) {
		return false
	}

	switch len(round.Answers) {
	case 0:
		if round.GraceCount < maxGraceExtensions {
			extension := game.Settings.AnswerTime() / 2
			deadline := now.Add(extension)
			round.AnswerDeadline = &deadline
			round.GraceCount++
			if round.GraceCount == 1 {
				s.chat(game, fmt.Sprintf("No answers yet! Extending the round by %d seconds.", int(extension/time.Second)))
			} else {
				s.chat(game, "Still nothing? One last extension before the game ends.")
			}
			s.persistRoundState(game, round)
			s.schedule(extension+deadlineSlack, tasks.TypeDeadlineCheck, tasks.DeadlineCheckPayload{GameID: game.ID})
			return true
		}
		s.completeRound(game, round, now)
		s.endGame(game, EndInactivity, now)
		return true
	case 1:
		// Voting is impossible with one answer: the only voter would be
		// its author.
		results := s.applyRoundScores(game, round)
		s.completeRound(game, round, now)
		game.Status = StatusPlaying
		s.persistGameState(game)
		s.publishRoundCompleted(game, round, results)
		return true
	default:
		s.beginVoting(game, round, now)
		return true
	}
}

func (s *Service) beginVoting(game *Game, round *RoundState, now time.Time) {
	settings := game.Settings
	deadline := now.Add(settings.VoteTime())
	round.Status = RoundVoting
	round.VoteDeadline = &deadline
	game.Status = StatusVoting
	s.persistRoundState(game, round)
	s.persistGameState(game)

	s.schedule(settings.VoteTime()+deadlineSlack, tasks.TypeDeadlineCheck, tasks.DeadlineCheckPayload{GameID: game.ID})
	s.publish(game, EventVotingStarted, VotingStartedPayload{
		RoundID:      roundID(round),
		Number:       round.Number,
		Answers:      ShuffledAnswers(game, round),
		VoteDeadline: deadline,
	})
	s.dispatchBotVotes(game, round, now)
}

// handleVoteDeadline closes a voting round, applies scores, and returns
// the game to playing; the next tick's no-current-round handler starts the
// following round.
func (s *Service) handleVoteDeadline(game *Game, round *RoundState, now time.Time) bool {
	if round.Status != RoundVoting || round.VoteDeadline == nil || now.Before(*round.VoteDeadline) {
		return false
	}
	results := s.applyRoundScores(game, round)
	s.completeRound(game, round, now)
	game.Status = StatusPlaying
	s.persistGameState(game)
	s.publishRoundCompleted(game, round, results)
	return true
}

// handleNoCurrentRound decides what a playing game without an active round
// does next: wait out the results pause, end, or start a new round.
func (s *Service) handleNoCurrentRound(game *Game, now time.Time) bool {
	last := lastCompletedRound(game)
	betweenRounds := last != nil && last.CompletedAt != nil &&
		now.Sub(*last.CompletedAt) < game.Settings.TimeBetweenRounds()

	if completedRoundCount(game) >= game.Settings.Rounds {
		if betweenRounds {
			return false
		}
		s.endGame(game, EndNormal, now)
		return true
	}
	if last != nil && len(last.Answers) == 0 {
		s.chat(game, "Nobody is playing; ending the game.")
		s.endGame(game, EndInactivity, now)
		return true
	}
	if betweenRounds {
		return false
	}
	if activePlayerCount(game) <= 1 {
		s.endGame(game, EndNormal, now)
		return true
	}
	s.startRound(game, now)
	return true
}

// handleLobbyIdle warns an idle lobby once and closes it a minute later
// unless a keepalive arrived after the warning.
func (s *Service) handleLobbyIdle(game *Game, now time.Time) bool {
	if game.Status != StatusLobby {
		return false
	}
	if game.LobbyWarningAt == nil {
		if now.Sub(game.LastActivityAt) < lobbyIdleAfter {
			return false
		}
		warned := now
		game.LobbyWarningAt = &warned
		s.persistGameState(game)
		s.publish(game, EventLobbyExpiring, LobbyExpiringPayload{
			SecondsRemaining: int(lobbyWarningGrace / time.Second),
		})
		s.chat(game, "This lobby will close in 60 seconds unless someone stays around.")
		return true
	}
	if game.LastActivityAt.After(*game.LobbyWarningAt) {
		game.LobbyWarningAt = nil
		s.persistGameState(game)
		return false
	}
	if now.Sub(*game.LobbyWarningAt) >= lobbyWarningGrace {
		s.chat(game, "Lobby closed due to inactivity.")
		s.endGame(game, EndLobbyTimeout, now)
		return true
	}
	return false
}

func (s *Service) completeRound(game *Game, round *RoundState, now time.Time) {
	round.Status = RoundCompleted
	completed := now
	round.CompletedAt = &completed
	game.LastActivityAt = now
	s.persistRoundState(game, round)
}

func (s *Service) publishRoundCompleted(game *Game, round *RoundState, results []RoundResult) {
	s.publish(game, EventRoundCompleted, RoundCompletedPayload{
		RoundID:     roundID(round),
		Number:      round.Number,
		Results:     results,
		Leaderboard: leaderboard(game),
		NextRoundIn: game.Settings.BetweenSeconds,
	})
}

// endGame is idempotent: a game that is already finished stays as it is.
func (s *Service) endGame(game *Game, reason EndReason, now time.Time) {
	if game.Status == StatusFinished {
		return
	}
	game.Status = StatusFinished
	game.EndedFor = reason
	finished := now
	game.FinishedAt = &finished
	game.LobbyWarningAt = nil

	// A game that never left the lobby has no standings to report.
	scores := []LeaderboardRow{}
	var winner *LeaderboardRow
	if game.StartedAt != nil {
		scores = FinalScores(game)
		if len(scores) > 0 && scores[0].Winner {
			winner = &scores[0]
		}
	}
	s.persistGameState(game)
	s.publish(game, EventGameFinished, GameFinishedPayload{
		Reason: reason,
		Winner: winner,
		Scores: scores,
	})
}

// ShuffledAnswers returns the round's answers in a stable anonymized
// order. The shuffle is seeded from the round identity so repeated reads
// match the original voting broadcast.
func ShuffledAnswers(game *Game, round *RoundState) []AnonymousAnswer {
	answers := make([]AnonymousAnswer, len(round.Answers))
	for i, answer := range round.Answers {
		answers[i] = AnonymousAnswer{ID: answer.ID, Text: answer.Text}
	}
	rng := rand.New(rand.NewSource(shuffleSeed(game.ID, round.Number)))
	rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}

func shuffleSeed(gameID uint, roundNumber int) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d", gameID, roundNumber)
	return int64(h.Sum64())
}

func roundID(round *RoundState) uint {
	if round.DBID != 0 {
		return round.DBID
	}
	return uint(round.Number)
}
