package sessions

import (
	"crypto/rand"
	"fmt"
)

// joinCodeAlphabet excludes ambiguous characters (0/O, 1/I/L) so codes stay
// easy to read out and type.
const joinCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// JoinCodeLength is the length of generated session join codes.
const JoinCodeLength = 6

// GenerateJoinCode returns a fresh human-enterable join code.
func GenerateJoinCode() (string, error) {
	b := make([]byte, JoinCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	for i := range b {
		b[i] = joinCodeAlphabet[int(b[i])%len(joinCodeAlphabet)]
	}
	return string(b), nil
}
