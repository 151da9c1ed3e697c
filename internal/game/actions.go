package game

import (
	"errors"
	"time"

	"acroparty/internal/acronym"
)

const maxAnswerLength = 280

// SubmitAnswer records or edits a player's answer for the current
// answering round. Resubmission is an edit, bounded by the game's edit
// limit, and clears any prior ready flag.
func (s *Service) SubmitAnswer(gameID, playerID uint, text string, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		round := currentRound(game)
		if round == nil || round.Status != RoundAnswering {
			return ErrWrongPhase
		}
		if round.AnswerDeadline == nil || now.After(*round.AnswerDeadline) {
			return ErrDeadlinePassed
		}
		player := findPlayer(game, playerID)
		if player == nil {
			return ErrNotAMember
		}
		if !player.IsActive {
			return ErrNotActive
		}
		trimmed := normalizeText(text)
		if len(trimmed) > maxAnswerLength {
			return errors.New("answer is too long")
		}
		if err := acronym.Validate(round.Acronym, trimmed); err != nil {
			return err
		}

		if existing := answerByPlayer(round, playerID); existing != nil {
			if limit := game.Settings.MaxEdits; limit > 0 && existing.EditCount >= limit {
				return ErrEditLimit
			}
			existing.Text = trimmed
			existing.EditCount++
			existing.Ready = false
			s.persistAnswer(game, round, existing)
		} else {
			round.Answers = append(round.Answers, AnswerEntry{
				ID:       game.NextAnswerID,
				PlayerID: player.ID,
				Nickname: player.Nickname,
				Text:     trimmed,
			})
			game.NextAnswerID++
			s.persistAnswer(game, round, &round.Answers[len(round.Answers)-1])
		}
		game.LastActivityAt = now
		return nil
	})
	return err
}

// MarkReady flips a player's ready flag. When every active player's answer
// is ready the answer deadline collapses to now, so the next tick advances
// the phase early.
func (s *Service) MarkReady(gameID, playerID uint, ready bool, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		if !game.Settings.AllowReadyCheck {
			return ErrReadyDisabled
		}
		round := currentRound(game)
		if round == nil || round.Status != RoundAnswering {
			return ErrWrongPhase
		}
		player := findPlayer(game, playerID)
		if player == nil {
			return ErrNotAMember
		}
		if !player.IsActive {
			return ErrNotActive
		}
		answer := answerByPlayer(round, playerID)
		if answer == nil {
			return ErrNoAnswer
		}
		answer.Ready = ready
		s.persistAnswer(game, round, answer)
		game.LastActivityAt = now

		if ready && readyAnswerCount(round) >= activePlayerCount(game) {
			collapsed := now
			round.AnswerDeadline = &collapsed
			s.persistRoundState(game, round)
		}
		return nil
	})
	return err
}

// SubmitVote records or switches a player's vote during the voting phase.
// Re-voting for the same target is a no-op; switching targets is bounded
// by the game's vote-change limit and recomputes both cached counts.
func (s *Service) SubmitVote(gameID, voterID, answerID uint, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		round := currentRound(game)
		if round == nil || round.Status != RoundVoting {
			return ErrWrongPhase
		}
		if round.VoteDeadline == nil || now.After(*round.VoteDeadline) {
			return ErrDeadlinePassed
		}
		voter := findPlayer(game, voterID)
		if voter == nil {
			return ErrNotAMember
		}
		if !voter.IsActive {
			return ErrNotActive
		}
		answer := findAnswer(round, answerID)
		if answer == nil {
			return ErrAnswerNotFound
		}
		if answer.PlayerID == voterID {
			return ErrSelfVote
		}

		if existing := voteByVoter(round, voterID); existing != nil {
			if existing.AnswerID == answerID {
				return nil
			}
			if limit := game.Settings.MaxVoteChanges; limit > 0 && existing.ChangeCount >= limit {
				return ErrVoteChangeLimit
			}
			existing.AnswerID = answerID
			existing.ChangeCount++
			recountVotes(round)
			s.persistVote(game, round, existing)
		} else {
			round.Votes = append(round.Votes, VoteEntry{
				VoterID:  voter.ID,
				Nickname: voter.Nickname,
				AnswerID: answerID,
			})
			recountVotes(round)
			s.persistVote(game, round, &round.Votes[len(round.Votes)-1])
		}
		s.persistVoteCounts(game, round)
		game.LastActivityAt = now
		return nil
	})
	return err
}

// RetractVote deletes a player's vote before the voting deadline.
func (s *Service) RetractVote(gameID, voterID uint, now time.Time) error {
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		round := currentRound(game)
		if round == nil || round.Status != RoundVoting {
			return ErrWrongPhase
		}
		if round.VoteDeadline == nil || now.After(*round.VoteDeadline) {
			return ErrDeadlinePassed
		}
		for i := range round.Votes {
			if round.Votes[i].VoterID == voterID {
				removed := round.Votes[i]
				round.Votes = append(round.Votes[:i], round.Votes[i+1:]...)
				recountVotes(round)
				s.deleteVote(game, &removed)
				s.persistVoteCounts(game, round)
				game.LastActivityAt = now
				return nil
			}
		}
		return ErrNoVote
	})
	return err
}

func readyAnswerCount(round *RoundState) int {
	count := 0
	for _, answer := range round.Answers {
		if answer.Ready {
			count++
		}
	}
	return count
}
