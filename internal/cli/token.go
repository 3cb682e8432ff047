package cli

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Represents the 'tripd hash-token' command.
type HashTokenCmd struct {
	Token string `arg:"" help:"Token clients will send as a bearer token."`
	Cost  int    `help:"bcrypt cost factor." default:"10"`
}

// Executes the hash-token command.
func (c *HashTokenCmd) Run(ctx context.Context) error {
	hash, err := hashToken(c.Token, c.Cost)
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func hashToken(token string, cost int) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", fmt.Errorf("hashing token: %w", err)
	}
	return string(hash), nil
}
