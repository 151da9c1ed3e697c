package game

import (
	"encoding/json"

	"acroparty/internal/db"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// The store is the authoritative runtime state; these write-behind helpers
// mirror it into Postgres. They are nil-db safe so the core runs and tests
// without a database, and a write failure is logged, never propagated: a
// committed in-memory transition must not be rolled back by storage.

func (s *Service) persistGame(game *Game) {
	if s.db == nil || game.DBID != 0 {
		return
	}
	record := db.Game{
		JoinCode:        game.JoinCode,
		Status:          string(game.Status),
		TotalRounds:     game.Settings.Rounds,
		AnswerSeconds:   game.Settings.AnswerSeconds,
		VoteSeconds:     game.Settings.VoteSeconds,
		MinPlayers:      game.Settings.MinPlayers,
		MaxPlayers:      game.Settings.MaxPlayers,
		AcronymMin:      game.Settings.AcronymMin,
		AcronymMax:      game.Settings.AcronymMax,
		BetweenSeconds:  game.Settings.BetweenSeconds,
		ExcludedLetters: game.Settings.ExcludedLetters,
		MaxEdits:        game.Settings.MaxEdits,
		MaxVoteChanges:  game.Settings.MaxVoteChanges,
		AllowReadyCheck: game.Settings.AllowReadyCheck,
		Visibility:      game.Settings.Visibility,
		PasswordHash:    game.Settings.PasswordHash,
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logPersist("game", game.ID, err)
		return
	}
	game.DBID = record.ID
}

func (s *Service) persistGameState(game *Game) {
	if s.db == nil || game.DBID == 0 {
		return
	}
	duration := 0
	if game.StartedAt != nil && game.FinishedAt != nil {
		duration = int(game.FinishedAt.Sub(*game.StartedAt).Seconds())
	}
	updates := map[string]any{
		"status":           string(game.Status),
		"host_player_id":   s.playerDBID(game, game.HostID),
		"current_round":    game.CurrentRound,
		"end_reason":       string(game.EndedFor),
		"started_at":       game.StartedAt,
		"finished_at":      game.FinishedAt,
		"duration_seconds": duration,
		"lobby_warning_at": game.LobbyWarningAt,
	}
	if err := s.db.Model(&db.Game{}).Where("id = ?", game.DBID).Updates(updates).Error; err != nil {
		s.logPersist("game state", game.ID, err)
	}
}

func (s *Service) persistPlayer(game *Game, player *Player) {
	if s.db == nil || game.DBID == 0 || player.DBID != 0 {
		return
	}
	record := db.GamePlayer{
		GameID:   game.DBID,
		Nickname: player.Nickname,
		IsActive: player.IsActive,
		IsBot:    player.IsBot,
		JoinedAt: player.JoinedAt,
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logPersist("player", game.ID, err)
		return
	}
	player.DBID = record.ID
}

func (s *Service) persistPlayerState(game *Game, player *Player) {
	if s.db == nil || player.DBID == 0 {
		return
	}
	updates := map[string]any{
		"score":      player.Score,
		"is_active":  player.IsActive,
		"is_co_host": player.IsCoHost,
		"kicked_by":  s.provenanceDBID(game, player.KickedBy),
		"banned_by":  s.provenanceDBID(game, player.BannedBy),
		"ban_reason": player.BanReason,
	}
	if err := s.db.Model(&db.GamePlayer{}).Where("id = ?", player.DBID).Updates(updates).Error; err != nil {
		s.logPersist("player state", game.ID, err)
	}
}

func (s *Service) persistRound(game *Game, round *RoundState) {
	if s.db == nil || game.DBID == 0 || round.DBID != 0 {
		return
	}
	record := db.Round{
		GameID:         game.DBID,
		Number:         round.Number,
		Acronym:        round.Acronym,
		Status:         string(round.Status),
		AnswerDeadline: round.AnswerDeadline,
		VoteDeadline:   round.VoteDeadline,
		GraceCount:     round.GraceCount,
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logPersist("round", game.ID, err)
		return
	}
	round.DBID = record.ID
}

func (s *Service) persistRoundState(game *Game, round *RoundState) {
	if s.db == nil || round.DBID == 0 {
		return
	}
	updates := map[string]any{
		"status":          string(round.Status),
		"answer_deadline": round.AnswerDeadline,
		"vote_deadline":   round.VoteDeadline,
		"grace_count":     round.GraceCount,
	}
	if err := s.db.Model(&db.Round{}).Where("id = ?", round.DBID).Updates(updates).Error; err != nil {
		s.logPersist("round state", game.ID, err)
	}
}

func (s *Service) persistAnswer(game *Game, round *RoundState, answer *AnswerEntry) {
	if s.db == nil || round.DBID == 0 {
		return
	}
	if answer.DBID == 0 {
		record := db.Answer{
			RoundID:  round.DBID,
			PlayerID: s.playerDBID(game, answer.PlayerID),
			Nickname: answer.Nickname,
			Text:     answer.Text,
		}
		if err := s.db.Create(&record).Error; err != nil {
			s.logPersist("answer", game.ID, err)
			return
		}
		answer.DBID = record.ID
		return
	}
	updates := map[string]any{
		"text":        answer.Text,
		"edit_count":  answer.EditCount,
		"is_ready":    answer.Ready,
		"votes_count": answer.VotesCount,
	}
	if err := s.db.Model(&db.Answer{}).Where("id = ?", answer.DBID).Updates(updates).Error; err != nil {
		s.logPersist("answer", game.ID, err)
	}
}

func (s *Service) persistVote(game *Game, round *RoundState, vote *VoteEntry) {
	if s.db == nil {
		return
	}
	target := findAnswer(round, vote.AnswerID)
	if target == nil || target.DBID == 0 {
		return
	}
	if vote.DBID == 0 {
		record := db.Vote{
			AnswerID: target.DBID,
			VoterID:  s.playerDBID(game, vote.VoterID),
			Nickname: vote.Nickname,
		}
		if err := s.db.Create(&record).Error; err != nil {
			s.logPersist("vote", game.ID, err)
			return
		}
		vote.DBID = record.ID
		return
	}
	updates := map[string]any{
		"answer_id":    target.DBID,
		"change_count": vote.ChangeCount,
	}
	if err := s.db.Model(&db.Vote{}).Where("id = ?", vote.DBID).Updates(updates).Error; err != nil {
		s.logPersist("vote", game.ID, err)
	}
}

func (s *Service) persistVoteCounts(game *Game, round *RoundState) {
	if s.db == nil {
		return
	}
	for i := range round.Answers {
		answer := &round.Answers[i]
		if answer.DBID == 0 {
			continue
		}
		if err := s.db.Model(&db.Answer{}).Where("id = ?", answer.DBID).
			Update("votes_count", answer.VotesCount).Error; err != nil {
			s.logPersist("vote counts", game.ID, err)
		}
	}
}

func (s *Service) deleteVote(game *Game, vote *VoteEntry) {
	if s.db == nil || vote.DBID == 0 {
		return
	}
	if err := s.db.Delete(&db.Vote{}, vote.DBID).Error; err != nil {
		s.logPersist("vote delete", game.ID, err)
	}
}

func (s *Service) persistEvent(game *Game, eventType string, payload any) {
	if s.db == nil || game.DBID == 0 {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.logPersist("event", game.ID, err)
		return
	}
	record := db.Event{
		GameID:  game.DBID,
		Type:    eventType,
		Payload: datatypes.JSON(data),
	}
	if err := s.db.Create(&record).Error; err != nil {
		s.logPersist("event", game.ID, err)
	}
}

func (s *Service) playerDBID(game *Game, playerID uint) uint {
	if player := findPlayer(game, playerID); player != nil {
		return player.DBID
	}
	return 0
}

func (s *Service) provenanceDBID(game *Game, playerID *uint) *uint {
	if playerID == nil {
		return nil
	}
	dbID := s.playerDBID(game, *playerID)
	if dbID == 0 {
		return nil
	}
	return &dbID
}

func (s *Service) logPersist(what string, gameID uint, err error) {
	s.log.Warn("persist failed",
		zap.String("what", what),
		zap.Uint("game_id", gameID),
		zap.Error(err),
	)
}
