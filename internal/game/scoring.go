package game

import "sort"

// recountVotes recomputes every answer's cached vote count from the vote
// entries. It is the only writer of VotesCount; the cache is never trusted
// as a source of truth.
func recountVotes(round *RoundState) {
	counts := make(map[uint]int, len(round.Answers))
	for _, vote := range round.Votes {
		counts[vote.AnswerID]++
	}
	for i := range round.Answers {
		round.Answers[i].VotesCount = counts[round.Answers[i].ID]
	}
}

// RoundScores computes per-answer results for a round: one point per vote.
// Output is ordered by vote count descending, stable in submission order
// for ties.
func RoundScores(round *RoundState) []RoundResult {
	votersByAnswer := make(map[uint][]string, len(round.Answers))
	countsByAnswer := make(map[uint]int, len(round.Answers))
	for _, vote := range round.Votes {
		votersByAnswer[vote.AnswerID] = append(votersByAnswer[vote.AnswerID], vote.Nickname)
		countsByAnswer[vote.AnswerID]++
	}
	results := make([]RoundResult, 0, len(round.Answers))
	for _, answer := range round.Answers {
		votes := countsByAnswer[answer.ID]
		results = append(results, RoundResult{
			PlayerID:   answer.PlayerID,
			Nickname:   answer.Nickname,
			AnswerText: answer.Text,
			Votes:      votes,
			Points:     votes,
			Voters:     votersByAnswer[answer.ID],
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Votes > results[j].Votes
	})
	return results
}

// applyRoundScores recounts the round's votes, folds the points into each
// player's cumulative score, and returns the ordered results.
func (s *Service) applyRoundScores(game *Game, round *RoundState) []RoundResult {
	recountVotes(round)
	results := RoundScores(round)
	for _, result := range results {
		if result.Points == 0 {
			continue
		}
		if player := findPlayer(game, result.PlayerID); player != nil {
			player.Score += result.Points
			s.persistPlayerState(game, player)
		}
	}
	return results
}

func leaderboard(game *Game) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(game.Players))
	for _, player := range game.Players {
		rows = append(rows, LeaderboardRow{
			PlayerID: player.ID,
			Nickname: player.Nickname,
			Score:    player.Score,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	return rows
}

// FinalScores ranks players by cumulative score. The winner flag is set
// only on rank 1 and only when no other player shares the top score; a
// tied top produces no winner.
func FinalScores(game *Game) []LeaderboardRow {
	rows := leaderboard(game)
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if len(rows) > 0 && (len(rows) == 1 || rows[0].Score > rows[1].Score) {
		rows[0].Winner = true
	}
	return rows
}
