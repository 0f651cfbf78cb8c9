package util

import (
	"crypto/rand"
	"fmt"
)

// URL-safe alphabet, same character set invite links are built from.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const InviteCodeLength = 10

// RandomToken generates a random URL-safe token of the given length.
func RandomToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}

// NewInviteCode generates a project invite code. Codes are assumed
// collision-free and are not deduplicated against existing projects.
func NewInviteCode() (string, error) {
	return RandomToken(InviteCodeLength)
}

// NewSessionToken generates an opaque token for anonymous invite sessions.
func NewSessionToken() (string, error) {
	return RandomToken(24)
}
