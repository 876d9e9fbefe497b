package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/who-owns-this/internal/constants"
)

func TestGenerateTeamCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := GenerateTeamCode()
		require.NoError(t, err)
		require.Len(t, code, constants.TeamCodeLength)
		require.Equal(t, strings.ToUpper(code), code)
		for _, r := range code {
			require.True(t, strings.ContainsRune(TeamCodeAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = struct{}{}
	}
	// 36^6 possibilities; 200 draws colliding more than once would indicate a broken source.
	assert.GreaterOrEqual(t, len(seen), 199)
}

func TestNormalizeTeamCode(t *testing.T) {
	assert.Equal(t, "AB12CD", NormalizeTeamCode("  ab12Cd "))
	assert.Equal(t, "", NormalizeTeamCode("   "))
}

// sequence returns a generator yielding codes in order.
func sequence(codes ...string) (func() (string, error), *int) {
	calls := 0
	return func() (string, error) {
		code := codes[calls%len(codes)]
		calls++
		return code, nil
	}, &calls
}

func takenSet(codes ...string) func(context.Context, string) (bool, error) {
	set := make(map[string]bool)
	for _, c := range codes {
		set[c] = true
	}
	return func(_ context.Context, code string) (bool, error) {
		return set[code], nil
	}
}

func TestPickTeamCode(t *testing.T) {
	ctx := context.Background()

	t.Run("first candidate free", func(t *testing.T) {
		gen, calls := sequence("AAAAAA", "BBBBBB")
		code, unique, err := PickTeamCode(ctx, gen, takenSet(), 5)
		require.NoError(t, err)
		assert.Equal(t, "AAAAAA", code)
		assert.True(t, unique)
		assert.Equal(t, 1, *calls)
	})

	t.Run("retries past collisions", func(t *testing.T) {
		gen, calls := sequence("AAAAAA", "BBBBBB", "CCCCCC")
		code, unique, err := PickTeamCode(ctx, gen, takenSet("AAAAAA", "BBBBBB"), 5)
		require.NoError(t, err)
		assert.Equal(t, "CCCCCC", code)
		assert.True(t, unique)
		assert.Equal(t, 3, *calls)
	})

	t.Run("gives up after retries and keeps last candidate", func(t *testing.T) {
		codes := []string{"C0", "C1", "C2", "C3", "C4", "C5", "C6"}
		gen, calls := sequence(codes...)
		code, unique, err := PickTeamCode(ctx, gen, takenSet(codes...), 5)
		require.NoError(t, err)
		assert.False(t, unique)
		assert.Equal(t, "C5", code)
		assert.Equal(t, 6, *calls, "one initial draw plus five retries")
	})

	t.Run("generator error", func(t *testing.T) {
		boom := errors.New("entropy exhausted")
		_, _, err := PickTeamCode(ctx, func() (string, error) { return "", boom }, takenSet(), 5)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("lookup error", func(t *testing.T) {
		gen, _ := sequence("AAAAAA")
		_, _, err := PickTeamCode(ctx, gen, func(context.Context, string) (bool, error) {
			return false, fmt.Errorf("connection refused")
		}, 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check team code")
	})
}
