package utils

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// tokenAlphabet is URL-safe and skips look-alike characters.
const tokenAlphabet = "23456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

const InvitationTokenLength = 24

// NewID returns a random entity identifier.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s parses as an identifier produced by NewID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// NewInvitationToken returns the secret put in invitation email links.
func NewInvitationToken() (string, error) {
	token, err := gonanoid.Generate(tokenAlphabet, InvitationTokenLength)
	if err != nil {
		return "", fmt.Errorf("generate invitation token: %w", err)
	}
	return token, nil
}
