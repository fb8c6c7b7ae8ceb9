// Package scoreboard holds the persisted two-team scoreboard: team scores and the reference
// to the rendered summary message. It is the only writer of the backing document
package scoreboard

import (
	"github.com/pkg/errors"
)

// ErrUnknownTeam is returned when parsing a value that isn't one of the known teams
var ErrUnknownTeam = errors.New("unknown team")

// Team identifies one of the two competing teams
type Team string

// Known teams
const (
	NyanCat Team = "nyancat"
	Bocchi  Team = "bocchi"
)

// Teams lists every known team in display order
var Teams = []Team{NyanCat, Bocchi}

var teamLabels = map[Team]string{
	NyanCat: "NyanCat",
	Bocchi:  "Bocchi",
}

// ParseTeam returns the Team for the given identifier
func ParseTeam(s string) (t Team, err error) {
	t = Team(s)
	if _, ok := teamLabels[t]; !ok {
		return "", errors.Wrapf(ErrUnknownTeam, "[%s]", s)
	}

	return t, nil
}

// Label returns the short display name of the team
func (t Team) Label() string {
	if l, ok := teamLabels[t]; ok {
		return l
	}

	return string(t)
}

// String returns the team identifier
func (t Team) String() string {
	return string(t)
}

// Scores maps teams to their score
type Scores map[Team]int

// Total returns the sum of all scores
func (s Scores) Total() (total int) {
	for _, v := range s {
		total += v
	}

	return total
}

// MessageRef identifies the rendered summary message. Slack identifies messages with their channel
// and timestamp
type MessageRef struct {
	ChannelID string
	Timestamp string
}
