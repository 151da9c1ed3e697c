package game

import (
	"acroparty/internal/db"

	"go.uber.org/zap"
)

// RestoreActiveGames reloads every unfinished game from Postgres into the
// store so the orchestrator can resume it after a restart. Returns the
// number of games restored.
func (s *Service) RestoreActiveGames() (int, error) {
	if s.db == nil {
		return 0, nil
	}
	var records []db.Game
	err := s.db.
		Preload("Players").
		Preload("Rounds").
		Preload("Rounds.Answers").
		Preload("Rounds.Answers.Votes").
		Where("status <> ?", string(StatusFinished)).
		Find(&records).Error
	if err != nil {
		return 0, err
	}

	restored := 0
	for i := range records {
		game := rebuildGame(&records[i])
		if err := s.store.Restore(game); err != nil {
			s.log.Warn("restore skipped", zap.Uint("game_id", game.ID), zap.Error(err))
			continue
		}
		restored++
	}
	return restored, nil
}

// rebuildGame maps a persisted game back into runtime state. Database ids
// double as runtime ids so references (host, voters, vote targets) line up.
func rebuildGame(record *db.Game) *Game {
	game := &Game{
		ID:       record.ID,
		DBID:     record.ID,
		JoinCode: record.JoinCode,
		Status:   Status(record.Status),
		Settings: Settings{
			Rounds:          record.TotalRounds,
			AnswerSeconds:   record.AnswerSeconds,
			VoteSeconds:     record.VoteSeconds,
			MinPlayers:      record.MinPlayers,
			MaxPlayers:      record.MaxPlayers,
			AcronymMin:      record.AcronymMin,
			AcronymMax:      record.AcronymMax,
			BetweenSeconds:  record.BetweenSeconds,
			ExcludedLetters: record.ExcludedLetters,
			MaxEdits:        record.MaxEdits,
			MaxVoteChanges:  record.MaxVoteChanges,
			AllowReadyCheck: record.AllowReadyCheck,
			Visibility:      record.Visibility,
			PasswordHash:    record.PasswordHash,
		},
		HostID:         record.HostPlayerID,
		CurrentRound:   record.CurrentRound,
		StartedAt:      record.StartedAt,
		FinishedAt:     record.FinishedAt,
		LastActivityAt: record.UpdatedAt,
		LobbyWarningAt: record.LobbyWarningAt,
		NextAnswerID:   1,
	}
	for _, row := range record.Players {
		game.Players = append(game.Players, Player{
			ID:        row.ID,
			DBID:      row.ID,
			Nickname:  row.Nickname,
			Score:     row.Score,
			IsActive:  row.IsActive,
			IsCoHost:  row.IsCoHost,
			IsBot:     row.IsBot,
			KickedBy:  row.KickedBy,
			BannedBy:  row.BannedBy,
			BanReason: row.BanReason,
			JoinedAt:  row.JoinedAt,
		})
	}
	for _, roundRow := range record.Rounds {
		round := RoundState{
			Number:         roundRow.Number,
			DBID:           roundRow.ID,
			Acronym:        roundRow.Acronym,
			Status:         RoundStatus(roundRow.Status),
			AnswerDeadline: roundRow.AnswerDeadline,
			VoteDeadline:   roundRow.VoteDeadline,
			GraceCount:     roundRow.GraceCount,
		}
		if round.Status == RoundCompleted {
			completed := roundRow.UpdatedAt
			round.CompletedAt = &completed
		}
		for _, answerRow := range roundRow.Answers {
			round.Answers = append(round.Answers, AnswerEntry{
				ID:        answerRow.ID,
				DBID:      answerRow.ID,
				PlayerID:  answerRow.PlayerID,
				Nickname:  answerRow.Nickname,
				Text:      answerRow.Text,
				EditCount: answerRow.EditCount,
				Ready:     answerRow.IsReady,
			})
			if answerRow.ID >= game.NextAnswerID {
				game.NextAnswerID = answerRow.ID + 1
			}
			for _, voteRow := range answerRow.Votes {
				round.Votes = append(round.Votes, VoteEntry{
					DBID:        voteRow.ID,
					VoterID:     voteRow.VoterID,
					Nickname:    voteRow.Nickname,
					AnswerID:    answerRow.ID,
					ChangeCount: voteRow.ChangeCount,
				})
			}
		}
		recountVotes(&round)
		game.Rounds = append(game.Rounds, round)
	}
	return game
}
