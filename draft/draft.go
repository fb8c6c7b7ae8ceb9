// Package draft keeps the in-progress point additions of users. Each user has at most one draft,
// built over several interactions (team, point option, bonus flags) and then either committed
// to the scoreboard or discarded
package draft

import (
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/catalog"
	"github.com/shinyhunt/scorebot/scoreboard"
	"time"
)

// Errors returned by the Registry
var (
	ErrNoActiveDraft = errors.New("no active draft")
	ErrTeamMismatch  = errors.New("draft team mismatch")
)

// Stage is the step a draft is at
type Stage int

// Stages of a draft
const (
	// AwaitingOption is the stage of a draft with a team but no point option yet
	AwaitingOption Stage = iota
	// AwaitingConfirmation is the stage of a draft ready to be committed
	AwaitingConfirmation
)

func (s Stage) String() string {
	switch s {
	case AwaitingOption:
		return "awaiting option"
	case AwaitingConfirmation:
		return "awaiting confirmation"
	}

	return "unknown"
}

// Draft is a user's uncommitted point addition. Drafts are values: the registry hands out copies
type Draft struct {
	ID        string
	User      string
	Team      scoreboard.Team
	Stage     Stage
	Option    catalog.Option
	Flags     FlagSet
	UpdatedAt time.Time
}

// BasePoints returns the points of the selected option
func (d Draft) BasePoints() int {
	return d.Option.BasePoints
}

// Total returns the points the draft is worth when committed
func (d Draft) Total() int {
	return d.Option.BasePoints + d.Flags.Bonus()
}

// Commit describes a draft applied to the scoreboard
type Commit struct {
	DraftID  string
	Team     scoreboard.Team
	Option   catalog.Option
	Base     int
	Flags    FlagSet
	Total    int
	NewScore int
}

// Applier adds amount to a team's score and returns the new score. Store.Increment is one
type Applier func(team scoreboard.Team, amount int) (newScore int, err error)
