// Package acronym generates the random letter sequences players answer to
// and validates submitted answers against them.
package acronym

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	MinLength = 1
	MaxLength = 6
)

// Generate returns a random acronym of a length uniformly sampled in
// [minLen, maxLen], drawn from A-Z minus the excluded letters. Exclusions
// that would empty the alphabet are ignored.
func Generate(rng *rand.Rand, minLen, maxLen int, excluded string) string {
	if minLen < MinLength {
		minLen = MinLength
	}
	if maxLen > MaxLength {
		maxLen = MaxLength
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	alphabet := alphabetWithout(excluded)
	length := minLen
	if maxLen > minLen {
		length += rng.Intn(maxLen - minLen + 1)
	}
	buf := make([]byte, length)
	for i := range buf {
		buf[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(buf)
}

func alphabetWithout(excluded string) string {
	if excluded == "" {
		return letters
	}
	drop := strings.ToUpper(excluded)
	var sb strings.Builder
	for i := 0; i < len(letters); i++ {
		if !strings.ContainsRune(drop, rune(letters[i])) {
			sb.WriteByte(letters[i])
		}
	}
	if sb.Len() == 0 {
		return letters
	}
	return sb.String()
}

// ValidationError reports why an answer does not match its acronym. For
// letter mismatches Word is the 1-based position of the offending word and
// Expected the acronym letter it should start with.
type ValidationError struct {
	Reason   string
	Word     int
	Expected rune
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks that text has exactly one word per acronym letter and
// that each word starts with the matching letter, case-insensitively.
// Words are whitespace-separated runs.
func Validate(acro, text string) error {
	words := strings.Fields(text)
	if len(words) == 0 {
		return &ValidationError{Reason: "answer is required"}
	}
	wanted := []rune(strings.ToUpper(acro))
	if len(words) != len(wanted) {
		return &ValidationError{
			Reason: fmt.Sprintf("answer must have %d words, got %d", len(wanted), len(words)),
		}
	}
	for i, word := range words {
		first := unicode.ToUpper([]rune(word)[0])
		if first != wanted[i] {
			return &ValidationError{
				Reason:   fmt.Sprintf("word %d must start with %q", i+1, wanted[i]),
				Word:     i + 1,
				Expected: wanted[i],
			}
		}
	}
	return nil
}
