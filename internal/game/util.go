package game

import (
	"crypto/rand"
	"fmt"
)

// joinCodeAttempts bounds unique-code generation; exhausting it means the
// code space is effectively saturated and is treated as a hard error.
const joinCodeAttempts = 50

func newJoinCode() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("join code entropy: %w", err)
	}
	for i := range buf {
		buf[i] = alphabet[int(buf[i])%len(alphabet)]
	}
	return string(buf), nil
}
