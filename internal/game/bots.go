package game

import (
	"errors"
	"strings"
	"time"

	"acroparty/internal/tasks"
)

// Bot action delays mimic human latency: a uniform sample inside each
// phase, clamped to land strictly before the deadline.
const (
	botAnswerDelayMin = 0.20
	botAnswerDelayMax = 0.80
	botVoteDelayMin   = 0.15
	botVoteDelayMax   = 0.70
)

func (s *Service) dispatchBotAnswers(game *Game, round *RoundState, now time.Time) {
	if round.AnswerDeadline == nil {
		return
	}
	for _, bot := range activePlayers(game) {
		if !bot.IsBot {
			continue
		}
		delay := s.botDelay(game.Settings.AnswerTime(), botAnswerDelayMin, botAnswerDelayMax, round.AnswerDeadline.Sub(now))
		s.schedule(delay, tasks.TypeBotAnswer, tasks.BotAnswerPayload{
			GameID:      game.ID,
			PlayerID:    bot.ID,
			RoundNumber: round.Number,
		})
	}
}

func (s *Service) dispatchBotVotes(game *Game, round *RoundState, now time.Time) {
	if round.VoteDeadline == nil {
		return
	}
	for _, bot := range activePlayers(game) {
		if !bot.IsBot {
			continue
		}
		delay := s.botDelay(game.Settings.VoteTime(), botVoteDelayMin, botVoteDelayMax, round.VoteDeadline.Sub(now))
		s.schedule(delay, tasks.TypeBotVote, tasks.BotVotePayload{
			GameID:      game.ID,
			PlayerID:    bot.ID,
			RoundNumber: round.Number,
		})
	}
}

func (s *Service) botDelay(phase time.Duration, minFrac, maxFrac float64, untilDeadline time.Duration) time.Duration {
	frac := minFrac + s.randFloat()*(maxFrac-minFrac)
	delay := time.Duration(frac * float64(phase))
	if delay < time.Second {
		delay = time.Second
	}
	if ceiling := untilDeadline - time.Second; delay > ceiling {
		delay = ceiling
	}
	if delay < 0 {
		delay = 0
	}
	return delay
}

// PlaceBotAnswer executes a scheduled bot-answer job. A job that arrives
// after the round advanced is dropped silently.
func (s *Service) PlaceBotAnswer(gameID, playerID uint, roundNumber int, now time.Time) error {
	game, ok := s.store.GetGame(gameID)
	if !ok {
		return ErrGameNotFound
	}
	var acro string
	if _, err := s.store.UpdateGame(gameID, func(game *Game) error {
		round := currentRound(game)
		if round == nil || round.Number != roundNumber || round.Status != RoundAnswering {
			return ErrWrongPhase
		}
		acro = round.Acronym
		return nil
	}); err != nil {
		return ignoreStale(err)
	}

	text := s.botAnswerText(acro)
	if err := s.SubmitAnswer(game.ID, playerID, text, now); err != nil {
		return ignoreStale(err)
	}
	return nil
}

// PlaceBotVote executes a scheduled bot-vote job, picking a uniformly
// random answer that is not the bot's own.
func (s *Service) PlaceBotVote(gameID, playerID uint, roundNumber int, now time.Time) error {
	var target uint
	if _, err := s.store.UpdateGame(gameID, func(game *Game) error {
		round := currentRound(game)
		if round == nil || round.Number != roundNumber || round.Status != RoundVoting {
			return ErrWrongPhase
		}
		var candidates []uint
		for _, answer := range round.Answers {
			if answer.PlayerID != playerID {
				candidates = append(candidates, answer.ID)
			}
		}
		if len(candidates) == 0 {
			return ErrAnswerNotFound
		}
		target = candidates[s.randIntn(len(candidates))]
		return nil
	}); err != nil {
		return ignoreStale(err)
	}

	if err := s.SubmitVote(gameID, playerID, target, now); err != nil {
		return ignoreStale(err)
	}
	return nil
}

// ignoreStale treats out-of-window job errors as successful no-ops;
// at-least-once delivery makes them routine.
func ignoreStale(err error) error {
	switch {
	case errors.Is(err, ErrWrongPhase),
		errors.Is(err, ErrDeadlinePassed),
		errors.Is(err, ErrAnswerNotFound),
		errors.Is(err, ErrNotActive),
		errors.Is(err, ErrGameFinished):
		return nil
	}
	return err
}

func (s *Service) botAnswerText(acro string) string {
	words := make([]string, 0, len(acro))
	for _, letter := range strings.ToUpper(acro) {
		options, ok := botWordBank[letter]
		if !ok || len(options) == 0 {
			words = append(words, string(letter))
			continue
		}
		words = append(words, options[s.randIntn(len(options))])
	}
	return strings.Join(words, " ")
}

var botWordBank = map[rune][]string{
	'A': {"Angry", "Amazing", "Ancient", "Awkward"},
	'B': {"Bouncy", "Brave", "Bizarre", "Bored"},
	'C': {"Curious", "Clumsy", "Cranky", "Calm"},
	'D': {"Dizzy", "Daring", "Dramatic", "Dusty"},
	'E': {"Eager", "Elegant", "Enormous", "Excited"},
	'F': {"Fancy", "Fuzzy", "Fearless", "Forgetful"},
	'G': {"Gentle", "Giant", "Grumpy", "Glowing"},
	'H': {"Happy", "Hungry", "Heroic", "Hasty"},
	'I': {"Icy", "Invisible", "Itchy", "Impatient"},
	'J': {"Jolly", "Jumpy", "Jealous", "Jagged"},
	'K': {"Kind", "Keen", "Knobby", "Kooky"},
	'L': {"Lazy", "Loud", "Lucky", "Lonely"},
	'M': {"Mighty", "Mysterious", "Messy", "Merry"},
	'N': {"Nervous", "Noisy", "Nimble", "Nice"},
	'O': {"Odd", "Orange", "Outrageous", "Old"},
	'P': {"Proud", "Playful", "Peculiar", "Polite"},
	'Q': {"Quiet", "Quick", "Quirky", "Quaint"},
	'R': {"Rusty", "Rowdy", "Radiant", "Restless"},
	'S': {"Sleepy", "Sneaky", "Silly", "Sturdy"},
	'T': {"Tiny", "Tough", "Ticklish", "Tangled"},
	'U': {"Upbeat", "Unusual", "Uneven", "Urgent"},
	'V': {"Vivid", "Velvet", "Vast", "Vexed"},
	'W': {"Wobbly", "Witty", "Wild", "Weary"},
	'X': {"Xenial", "Xeric"},
	'Y': {"Yawning", "Young", "Yodeling", "Yellow"},
	'Z': {"Zany", "Zealous", "Zigzag", "Zippy"},
}
