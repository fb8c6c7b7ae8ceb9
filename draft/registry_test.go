package draft_test

import (
	"fmt"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/catalog"
	"github.com/shinyhunt/scorebot/draft"
	"github.com/shinyhunt/scorebot/scoreboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync"
	"testing"
	"time"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

type scoreRecorder struct {
	scores map[scoreboard.Team]int
	calls  int
	err    error
}

func newScoreRecorder() *scoreRecorder {
	return &scoreRecorder{scores: make(map[scoreboard.Team]int)}
}

func (sr *scoreRecorder) apply(team scoreboard.Team, amount int) (int, error) {
	sr.calls++
	if sr.err != nil {
		return 0, sr.err
	}

	sr.scores[team] += amount
	return sr.scores[team], nil
}

func TestSelectTeamStartsDraftAwaitingOption(t *testing.T) {
	r := draft.NewRegistry()

	d, err := r.SelectTeam("U1", scoreboard.NyanCat)
	require.NoError(t, err)

	assert.Equal(t, draft.AwaitingOption, d.Stage)
	assert.Equal(t, scoreboard.NyanCat, d.Team)
	assert.Equal(t, "U1", d.User)
	assert.NotEmpty(t, d.ID)

	stored, ok := r.Get("U1")
	require.True(t, ok)
	assert.Equal(t, d, stored)
}

func TestSelectTeamRejectsUnknownTeam(t *testing.T) {
	r := draft.NewRegistry()

	_, err := r.SelectTeam("U1", scoreboard.Team("teamC"))
	assert.True(t, errors.Is(err, scoreboard.ErrUnknownTeam))
	assert.Equal(t, 0, r.Len())
}

func TestStartOrReplace(t *testing.T) {
	r := draft.NewRegistry()

	d, err := r.StartOrReplace("U1", scoreboard.Bocchi, "fossil")
	require.NoError(t, err)

	assert.Equal(t, draft.AwaitingConfirmation, d.Stage)
	assert.Equal(t, scoreboard.Bocchi, d.Team)
	assert.Equal(t, "fossil", d.Option.Key)
	assert.Equal(t, 10, d.BasePoints())
	assert.Equal(t, draft.FlagSet(0), d.Flags)
	assert.Equal(t, 10, d.Total())
}

func TestStartOrReplaceDiscardsPreviousFlags(t *testing.T) {
	r := draft.NewRegistry()

	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)
	_, err = r.ToggleFlag("U1", scoreboard.NyanCat, draft.Secret)
	require.NoError(t, err)
	_, err = r.ToggleFlag("U1", scoreboard.NyanCat, draft.Lure)
	require.NoError(t, err)

	d, err := r.StartOrReplace("U1", scoreboard.Bocchi, "single")
	require.NoError(t, err)

	assert.Equal(t, draft.FlagSet(0), d.Flags)
	assert.Equal(t, scoreboard.Bocchi, d.Team)
	assert.Equal(t, 6, d.Total())
}

func TestStartOrReplaceUnknownOptionKeepsExistingDraft(t *testing.T) {
	r := draft.NewRegistry()

	existing, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	_, err = r.StartOrReplace("U1", scoreboard.NyanCat, "mythical")
	assert.True(t, errors.Is(err, catalog.ErrUnknownOption))

	d, ok := r.Get("U1")
	require.True(t, ok)
	assert.Equal(t, existing, d)
}

func TestSelectTeamReplacesConfirmableDraft(t *testing.T) {
	r := draft.NewRegistry()

	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	_, err = r.SelectTeam("U1", scoreboard.Bocchi)
	require.NoError(t, err)

	_, err = r.ToggleFlag("U1", scoreboard.Bocchi, draft.Secret)
	assert.True(t, errors.Is(err, draft.ErrNoActiveDraft))
}

func TestToggleFlagParity(t *testing.T) {
	for count := 1; count <= 6; count++ {
		t.Run(fmt.Sprintf("%d toggles", count), func(t *testing.T) {
			r := draft.NewRegistry()
			_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "single")
			require.NoError(t, err)

			var d draft.Draft
			for i := 0; i < count; i++ {
				d, err = r.ToggleFlag("U1", scoreboard.NyanCat, draft.Lure)
				require.NoError(t, err)
			}

			assert.Equal(t, count%2 == 1, d.Flags.Has(draft.Lure))
			assert.False(t, d.Flags.Has(draft.Secret))
		})
	}
}

func TestToggleFlagWithoutDraft(t *testing.T) {
	r := draft.NewRegistry()

	_, err := r.ToggleFlag("U1", scoreboard.NyanCat, draft.Secret)
	assert.True(t, errors.Is(err, draft.ErrNoActiveDraft))
	assert.Equal(t, 0, r.Len())

	_, err = r.SelectTeam("U1", scoreboard.NyanCat)
	require.NoError(t, err)

	_, err = r.ToggleFlag("U1", scoreboard.NyanCat, draft.Secret)
	assert.True(t, errors.Is(err, draft.ErrNoActiveDraft))
}

func TestToggleFlagTeamMismatch(t *testing.T) {
	r := draft.NewRegistry()
	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "single")
	require.NoError(t, err)

	_, err = r.ToggleFlag("U1", scoreboard.Bocchi, draft.Secret)
	assert.True(t, errors.Is(err, draft.ErrTeamMismatch))

	d, ok := r.Get("U1")
	require.True(t, ok)
	assert.False(t, d.Flags.Has(draft.Secret))
}

func TestToggleFlagUnknownFlag(t *testing.T) {
	r := draft.NewRegistry()
	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "single")
	require.NoError(t, err)

	_, err = r.ToggleFlag("U1", scoreboard.NyanCat, draft.Flag("shiny"))
	assert.True(t, errors.Is(err, draft.ErrUnknownFlag))
}

func TestCommitTotals(t *testing.T) {
	testCases := []struct {
		option   string
		flags    []draft.Flag
		expected int
	}{
		{"single", nil, 6},
		{"single", []draft.Flag{draft.Secret}, 9},
		{"single", []draft.Flag{draft.Lure}, 7},
		{"single", []draft.Flag{draft.Secret, draft.Lure}, 10},
		{"legendary", []draft.Flag{draft.Secret}, 48},
		{"horde5", []draft.Flag{draft.Lure, draft.Secret}, 5},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%s%v", tc.option, tc.flags), func(t *testing.T) {
			r := draft.NewRegistry()
			sr := newScoreRecorder()

			_, err := r.StartOrReplace("U1", scoreboard.NyanCat, tc.option)
			require.NoError(t, err)
			for _, f := range tc.flags {
				_, err = r.ToggleFlag("U1", scoreboard.NyanCat, f)
				require.NoError(t, err)
			}

			c, err := r.Commit("U1", scoreboard.NyanCat, sr.apply)
			require.NoError(t, err)

			assert.Equal(t, tc.expected, c.Total)
			assert.Equal(t, tc.expected, c.NewScore)
			assert.Equal(t, tc.option, c.Option.Key)
			assert.Equal(t, len(tc.flags), len(c.Flags.List()))
			assert.Equal(t, tc.expected, sr.scores[scoreboard.NyanCat])

			_, ok := r.Get("U1")
			assert.False(t, ok)
		})
	}
}

func TestCommitWithoutDraft(t *testing.T) {
	r := draft.NewRegistry()
	sr := newScoreRecorder()

	_, err := r.Commit("U1", scoreboard.NyanCat, sr.apply)
	assert.True(t, errors.Is(err, draft.ErrNoActiveDraft))
	assert.Equal(t, 0, sr.calls)
}

func TestCommitTwiceAppliesOnce(t *testing.T) {
	r := draft.NewRegistry()
	sr := newScoreRecorder()

	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	_, err = r.Commit("U1", scoreboard.NyanCat, sr.apply)
	require.NoError(t, err)

	_, err = r.Commit("U1", scoreboard.NyanCat, sr.apply)
	assert.True(t, errors.Is(err, draft.ErrNoActiveDraft))
	assert.Equal(t, 1, sr.calls)
	assert.Equal(t, 12, sr.scores[scoreboard.NyanCat])
}

func TestCommitTeamMismatchLeavesEverythingUnchanged(t *testing.T) {
	r := draft.NewRegistry()
	sr := newScoreRecorder()

	before, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	_, err = r.Commit("U1", scoreboard.Bocchi, sr.apply)
	assert.True(t, errors.Is(err, draft.ErrTeamMismatch))
	assert.Equal(t, 0, sr.calls)

	after, ok := r.Get("U1")
	require.True(t, ok)
	assert.Equal(t, before, after)
}

func TestCommitApplierFailureKeepsDraft(t *testing.T) {
	r := draft.NewRegistry()
	sr := newScoreRecorder()
	sr.err = fmt.Errorf("disk full")

	before, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	_, err = r.Commit("U1", scoreboard.NyanCat, sr.apply)
	assert.EqualError(t, err, "disk full")

	after, ok := r.Get("U1")
	require.True(t, ok)
	assert.Equal(t, before, after)

	sr.err = nil
	c, err := r.Commit("U1", scoreboard.NyanCat, sr.apply)
	require.NoError(t, err)
	assert.Equal(t, 12, c.NewScore)
}

func TestDiscard(t *testing.T) {
	r := draft.NewRegistry()

	assert.False(t, r.Discard("U1"))

	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	assert.True(t, r.Discard("U1"))
	_, ok := r.Get("U1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestDraftsAreIsolatedPerUser(t *testing.T) {
	r := draft.NewRegistry()

	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)
	_, err = r.StartOrReplace("U2", scoreboard.Bocchi, "fossil")
	require.NoError(t, err)

	_, err = r.ToggleFlag("U2", scoreboard.Bocchi, draft.Secret)
	require.NoError(t, err)
	r.Discard("U1")

	_, ok := r.Get("U1")
	assert.False(t, ok)

	d, ok := r.Get("U2")
	require.True(t, ok)
	assert.True(t, d.Flags.Has(draft.Secret))
	assert.Equal(t, 1, r.Len())
}

func TestSweepRemovesStaleDrafts(t *testing.T) {
	c := &clock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
	r := draft.NewRegistry(draft.OptionClock(c.Now))

	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	c.Advance(2 * time.Hour)
	_, err = r.SelectTeam("U2", scoreboard.Bocchi)
	require.NoError(t, err)

	c.Advance(2 * time.Hour)
	assert.Equal(t, 1, r.Sweep(3*time.Hour))

	_, ok := r.Get("U1")
	assert.False(t, ok)
	_, ok = r.Get("U2")
	assert.True(t, ok)

	assert.Equal(t, 0, r.Sweep(3*time.Hour))
}

func TestToggleFlagRefreshesDraftAge(t *testing.T) {
	c := &clock{now: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)}
	r := draft.NewRegistry(draft.OptionClock(c.Now))

	_, err := r.StartOrReplace("U1", scoreboard.NyanCat, "egg")
	require.NoError(t, err)

	c.Advance(2 * time.Hour)
	_, err = r.ToggleFlag("U1", scoreboard.NyanCat, draft.Lure)
	require.NoError(t, err)

	c.Advance(2 * time.Hour)
	assert.Equal(t, 0, r.Sweep(3*time.Hour))
}

func TestOptionIDGenerator(t *testing.T) {
	r := draft.NewRegistry(draft.OptionIDGenerator(func() string { return "draft-1" }))

	d, err := r.SelectTeam("U1", scoreboard.NyanCat)
	require.NoError(t, err)
	assert.Equal(t, "draft-1", d.ID)
}

func TestConcurrentUsers(t *testing.T) {
	r := draft.NewRegistry()
	store := scoreboard.Scores{}
	var mu sync.Mutex
	apply := func(team scoreboard.Team, amount int) (int, error) {
		mu.Lock()
		defer mu.Unlock()

		store[team] += amount
		return store[team], nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()

			_, err := r.SelectTeam(user, scoreboard.NyanCat)
			assert.NoError(t, err)
			_, err = r.StartOrReplace(user, scoreboard.NyanCat, "single")
			assert.NoError(t, err)
			_, err = r.ToggleFlag(user, scoreboard.NyanCat, draft.Secret)
			assert.NoError(t, err)
			_, err = r.Commit(user, scoreboard.NyanCat, apply)
			assert.NoError(t, err)
		}(fmt.Sprintf("U%d", i))
	}
	wg.Wait()

	assert.Equal(t, 50*9, store[scoreboard.NyanCat])
	assert.Equal(t, 0, r.Len())
}
