package draft

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/catalog"
	"github.com/shinyhunt/scorebot/scoreboard"
	"sync"
	"time"
)

// Registry holds at most one draft per user. Operations on different users never share a lock
type Registry struct {
	slots sync.Map
	now   func() time.Time
	newID func() string
}

// slot holds the draft of a single user. A retired slot has been removed from the registry and
// must not be used anymore
type slot struct {
	mu      sync.Mutex
	draft   *Draft
	retired bool
}

// Option defines an option for a Registry
type Option func(r *Registry)

// OptionClock sets the function used to get the current time
func OptionClock(now func() time.Time) Option {
	return func(r *Registry) {
		r.now = now
	}
}

// OptionIDGenerator sets the function generating draft ids
func OptionIDGenerator(newID func() string) Option {
	return func(r *Registry) {
		r.newID = newID
	}
}

// NewRegistry creates an empty Registry
func NewRegistry(options ...Option) (r *Registry) {
	r = &Registry{now: time.Now, newID: func() string { return uuid.New().String() }}

	for _, opt := range options {
		opt(r)
	}

	return r
}

// withSlot runs fn with the user's slot locked. When fn leaves the slot without a draft, the slot
// is removed from the registry
func (r *Registry) withSlot(user string, fn func(s *slot) error) (err error) {
	for {
		v, _ := r.slots.LoadOrStore(user, new(slot))
		s := v.(*slot)

		s.mu.Lock()
		if s.retired {
			s.mu.Unlock()
			continue
		}

		err = fn(s)

		if s.draft == nil {
			s.retired = true
			r.slots.CompareAndDelete(user, s)
		}
		s.mu.Unlock()

		return err
	}
}

// Get returns a copy of the user's draft, if any
func (r *Registry) Get(user string) (d Draft, ok bool) {
	v, found := r.slots.Load(user)
	if !found {
		return Draft{}, false
	}

	s := v.(*slot)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.retired || s.draft == nil {
		return Draft{}, false
	}

	return *s.draft, true
}

// SelectTeam starts a new draft for the user awaiting a point option. Any existing draft of the
// user is replaced
func (r *Registry) SelectTeam(user string, team scoreboard.Team) (d Draft, err error) {
	if _, err = scoreboard.ParseTeam(string(team)); err != nil {
		return Draft{}, err
	}

	err = r.withSlot(user, func(s *slot) error {
		s.draft = &Draft{ID: r.newID(), User: user, Team: team, Stage: AwaitingOption, UpdatedAt: r.now()}
		d = *s.draft

		return nil
	})

	return d, err
}

// StartOrReplace creates a draft ready for confirmation with the option and no flags. Any existing
// draft of the user is replaced. An unknown option leaves the existing draft untouched
func (r *Registry) StartOrReplace(user string, team scoreboard.Team, optionKey string) (d Draft, err error) {
	if _, err = scoreboard.ParseTeam(string(team)); err != nil {
		return Draft{}, err
	}

	o, err := catalog.Lookup(optionKey)
	if err != nil {
		return Draft{}, err
	}

	err = r.withSlot(user, func(s *slot) error {
		s.draft = &Draft{ID: r.newID(), User: user, Team: team, Stage: AwaitingConfirmation, Option: o, UpdatedAt: r.now()}
		d = *s.draft

		return nil
	})

	return d, err
}

// ToggleFlag flips the flag on the user's draft. It fails with ErrNoActiveDraft if the user has no
// draft ready for confirmation and with ErrTeamMismatch if the draft is for another team
func (r *Registry) ToggleFlag(user string, expectedTeam scoreboard.Team, f Flag) (d Draft, err error) {
	if _, err = ParseFlag(string(f)); err != nil {
		return Draft{}, err
	}

	err = r.withSlot(user, func(s *slot) error {
		if err := checkConfirmable(s.draft, user, expectedTeam); err != nil {
			return err
		}

		s.draft.Flags = s.draft.Flags.Toggle(f)
		s.draft.UpdatedAt = r.now()
		d = *s.draft

		return nil
	})

	return d, err
}

// Commit applies the user's draft with the applier and removes the draft once applied. A failed
// applier leaves the draft in place so the user can retry. A team mismatch leaves everything
// unchanged
func (r *Registry) Commit(user string, expectedTeam scoreboard.Team, apply Applier) (c Commit, err error) {
	err = r.withSlot(user, func(s *slot) error {
		if err := checkConfirmable(s.draft, user, expectedTeam); err != nil {
			return err
		}

		d := *s.draft
		newScore, err := apply(d.Team, d.Total())
		if err != nil {
			return err
		}

		s.draft = nil
		c = Commit{DraftID: d.ID, Team: d.Team, Option: d.Option, Base: d.BasePoints(), Flags: d.Flags, Total: d.Total(), NewScore: newScore}

		return nil
	})

	return c, err
}

// Discard removes the user's draft. It returns false if there was none
func (r *Registry) Discard(user string) (discarded bool) {
	r.withSlot(user, func(s *slot) error {
		discarded = s.draft != nil
		s.draft = nil

		return nil
	})

	return discarded
}

// Sweep removes drafts not updated for longer than maxAge and returns how many were removed
func (r *Registry) Sweep(maxAge time.Duration) (removed int) {
	cutoff := r.now().Add(-maxAge)

	r.slots.Range(func(key, v interface{}) bool {
		s := v.(*slot)

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.retired {
			return true
		}

		if s.draft != nil && s.draft.UpdatedAt.Before(cutoff) {
			s.draft = nil
			removed++
		}

		if s.draft == nil {
			s.retired = true
			r.slots.CompareAndDelete(key, s)
		}

		return true
	})

	return removed
}

// Len returns the number of users with a draft
func (r *Registry) Len() (count int) {
	r.slots.Range(func(key, v interface{}) bool {
		if _, ok := r.Get(key.(string)); ok {
			count++
		}

		return true
	})

	return count
}

func checkConfirmable(d *Draft, user string, expectedTeam scoreboard.Team) (err error) {
	if d == nil || d.Stage != AwaitingConfirmation {
		return errors.Wrapf(ErrNoActiveDraft, "user [%s]", user)
	}

	if d.Team != expectedTeam {
		return errors.Wrapf(ErrTeamMismatch, "draft is for [%s], not [%s]", d.Team, expectedTeam)
	}

	return nil
}
