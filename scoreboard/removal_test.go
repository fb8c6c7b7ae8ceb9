package scoreboard_test

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		text     string
		expected int
		valid    bool
	}{
		{"5", 5, true},
		{"  12 ", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"4.5", 0, false},
		{"99999999999999999999999", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			amount, err := scoreboard.ParseAmount(tc.text)
			if tc.valid {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, amount)
			} else {
				assert.True(t, errors.Is(err, scoreboard.ErrInvalidAmount))
			}
		})
	}
}

func TestRemovePoints(t *testing.T) {
	testCases := []struct {
		name            string
		current         int
		requested       int
		expectedRemoved int
		expectedScore   int
	}{
		{"partial", 10, 4, 4, 6},
		{"exact", 10, 10, 10, 0},
		{"more than current", 7, 20, 7, 0},
		{"from zero", 0, 3, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := openStore(t, fmt.Sprintf(`{"nyancat": 1, "bocchi": %d}`, tc.current))

			r, err := s.RemovePoints(scoreboard.Bocchi, tc.requested)
			require.NoError(t, err)

			assert.Equal(t, scoreboard.Bocchi, r.Team)
			assert.Equal(t, tc.expectedRemoved, r.Removed)
			assert.Equal(t, tc.expectedScore, r.NewScore)
			assert.Equal(t, tc.expectedScore, s.Get(scoreboard.Bocchi))
			assert.Equal(t, 1, s.Get(scoreboard.NyanCat))
		})
	}
}

func TestRemovePointsRejectsNonPositiveAmounts(t *testing.T) {
	s, db := openStore(t, `{"nyancat": 10, "bocchi": 10}`)

	for _, amount := range []int{0, -1} {
		_, err := s.RemovePoints(scoreboard.NyanCat, amount)
		assert.True(t, errors.Is(err, scoreboard.ErrInvalidAmount))
	}

	assert.Equal(t, 10, s.Get(scoreboard.NyanCat))
	assert.Equal(t, 0, db.SaveCount())
}

func TestRemovePointsPersistenceFailure(t *testing.T) {
	s, db := openStore(t, `{"nyancat": 10, "bocchi": 10}`)
	db.FailSaves(fmt.Errorf("disk full"))

	_, err := s.RemovePoints(scoreboard.NyanCat, 3)

	var pe *scoreboard.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 10, s.Get(scoreboard.NyanCat))
}
