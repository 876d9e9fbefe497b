package utils

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/yukikurage/who-owns-this/internal/constants"
)

// TeamCodeAlphabet holds the characters a team code is drawn from.
const TeamCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTeamCode returns a random uppercase code of constants.TeamCodeLength characters.
func GenerateTeamCode() (string, error) {
	max := big.NewInt(int64(len(TeamCodeAlphabet)))
	var b strings.Builder
	b.Grow(constants.TeamCodeLength)

	for i := 0; i < constants.TeamCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}
		b.WriteByte(TeamCodeAlphabet[n.Int64()])
	}

	return b.String(), nil
}

// NormalizeTeamCode trims and uppercases user input so lookups are case-insensitive.
func NormalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PickTeamCode draws a candidate and, while taken reports a collision, draws
// again up to retries more times. The last candidate is returned even if it
// is still taken; unique tells the caller which case happened.
func PickTeamCode(
	ctx context.Context,
	generate func() (string, error),
	taken func(ctx context.Context, code string) (bool, error),
	retries int,
) (code string, unique bool, err error) {
	for attempt := 0; attempt <= retries; attempt++ {
		code, err = generate()
		if err != nil {
			return "", false, err
		}

		exists, lookupErr := taken(ctx, code)
		if lookupErr != nil {
			return "", false, fmt.Errorf("failed to check team code: %w", lookupErr)
		}
		if !exists {
			return code, true, nil
		}
	}

	return code, false, nil
}
