package game

import (
	"errors"
	"fmt"
	"strings"
)

const maxNicknameLength = 20

// ClampSettings bounds every per-game setting to its allowed range.
func ClampSettings(s Settings) Settings {
	s.Rounds = clampInt(s.Rounds, 1, 20)
	s.AnswerSeconds = clampInt(s.AnswerSeconds, 15, 300)
	s.VoteSeconds = clampInt(s.VoteSeconds, 10, 120)
	s.MinPlayers = clampInt(s.MinPlayers, 2, 16)
	s.MaxPlayers = clampInt(s.MaxPlayers, s.MinPlayers, 16)
	s.AcronymMin = clampInt(s.AcronymMin, 1, 6)
	s.AcronymMax = clampInt(s.AcronymMax, s.AcronymMin, 6)
	s.BetweenSeconds = clampInt(s.BetweenSeconds, 3, 120)
	s.MaxEdits = clampInt(s.MaxEdits, 0, 20)
	s.MaxVoteChanges = clampInt(s.MaxVoteChanges, 0, 20)
	if s.Visibility != VisibilityPrivate {
		s.Visibility = VisibilityPublic
	}
	s.ExcludedLetters = strings.ToUpper(strings.TrimSpace(s.ExcludedLetters))
	return s
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func validateNickname(name string) (string, error) {
	trimmed := normalizeText(name)
	if trimmed == "" {
		return "", errors.New("nickname is required")
	}
	if len(trimmed) > maxNicknameLength {
		return "", fmt.Errorf("nickname must be %d characters or fewer", maxNicknameLength)
	}
	if !isSafeText(trimmed) {
		return "", errors.New("nickname contains unsupported characters")
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '-', '_', '\'', '"', '.', ',', '!', '?', ':', ';', '&', '(', ')', '/':
			continue
		default:
			return false
		}
	}
	return true
}
