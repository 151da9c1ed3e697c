package game

import "time"

// Snapshot builds a read model of a game for the HTTP layer. During voting
// the answers appear in the same seeded shuffle order as the broadcast,
// with authorship stripped.
func (s *Service) Snapshot(gameID uint) (map[string]any, error) {
	var snap map[string]any
	_, err := s.store.UpdateGame(gameID, func(game *Game) error {
		snap = buildSnapshot(game)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func buildSnapshot(game *Game) map[string]any {
	players := make([]map[string]any, 0, len(game.Players))
	for _, player := range game.Players {
		players = append(players, map[string]any{
			"id":         player.ID,
			"nickname":   player.Nickname,
			"score":      player.Score,
			"is_active":  player.IsActive,
			"is_co_host": player.IsCoHost,
			"is_bot":     player.IsBot,
		})
	}
	snap := map[string]any{
		"id":            game.ID,
		"join_code":     game.JoinCode,
		"status":        game.Status,
		"host_id":       game.HostID,
		"current_round": game.CurrentRound,
		"settings": map[string]any{
			"rounds":            game.Settings.Rounds,
			"answer_seconds":    game.Settings.AnswerSeconds,
			"vote_seconds":      game.Settings.VoteSeconds,
			"min_players":       game.Settings.MinPlayers,
			"max_players":       game.Settings.MaxPlayers,
			"acronym_min":       game.Settings.AcronymMin,
			"acronym_max":       game.Settings.AcronymMax,
			"between_seconds":   game.Settings.BetweenSeconds,
			"excluded_letters":  game.Settings.ExcludedLetters,
			"max_edits":         game.Settings.MaxEdits,
			"max_vote_changes":  game.Settings.MaxVoteChanges,
			"allow_ready_check": game.Settings.AllowReadyCheck,
			"visibility":        game.Settings.Visibility,
			"has_password":      game.Settings.PasswordHash != "",
		},
		"players": players,
	}
	if game.Status == StatusFinished {
		snap["scores"] = FinalScores(game)
		snap["end_reason"] = game.EndedFor
	}
	if round := currentRound(game); round != nil {
		snap["round"] = roundSnapshot(game, round)
	}
	return snap
}

func roundSnapshot(game *Game, round *RoundState) map[string]any {
	snap := map[string]any{
		"number":  round.Number,
		"acronym": round.Acronym,
		"status":  round.Status,
	}
	switch round.Status {
	case RoundAnswering:
		snap["answer_deadline"] = deadlineOrZero(round.AnswerDeadline)
		snap["answers_in"] = len(round.Answers)
		snap["ready_count"] = readyAnswerCount(round)
	case RoundVoting:
		snap["vote_deadline"] = deadlineOrZero(round.VoteDeadline)
		snap["answers"] = ShuffledAnswers(game, round)
	}
	return snap
}

func deadlineOrZero(at *time.Time) time.Time {
	if at == nil {
		return time.Time{}
	}
	return *at
}
