package scoreboard

import (
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

// Removal describes the outcome of a point removal
type Removal struct {
	Team Team

	// Removed is the number of points actually taken away (never more than the score was)
	Removed int

	// NewScore is the team's score after the removal
	NewScore int
}

// ParseAmount parses user-entered text as a positive integer amount
func ParseAmount(text string) (amount int, err error) {
	trimmed := strings.TrimSpace(text)

	amount, err = strconv.Atoi(trimmed)
	if err != nil || amount <= 0 {
		return 0, errors.Wrapf(ErrInvalidAmount, "[%s]", trimmed)
	}

	return amount, nil
}

// RemovePoints takes requested points away from a team. The score never goes below zero and the
// removal reports how many points were actually removed
func (s *Store) RemovePoints(team Team, requested int) (r Removal, err error) {
	if requested <= 0 {
		return Removal{}, errors.Wrapf(ErrInvalidAmount, "[%d]", requested)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = ParseTeam(string(team)); err != nil {
		return Removal{}, err
	}

	current := s.doc.scores[team]

	next := s.doc.clone()
	next.scores[team] = floorAtZero(current - requested)

	if err = s.commit(next); err != nil {
		return Removal{}, err
	}

	return Removal{Team: team, Removed: min(requested, current), NewScore: next.scores[team]}, nil
}
