package scoreboard

import (
	"github.com/shinyhunt/scorebot/store"
	"sync"
)

// Store owns the scoreboard state. Every mutation rewrites the full document through the
// DocumentStorer before being applied in memory so that memory and storage never disagree
type Store struct {
	mu     sync.Mutex
	storer store.DocumentStorer
	doc    document
}

// Open loads the scoreboard from the storer. A missing document starts every team at zero.
// A document using legacy team keys is migrated and written back
func Open(storer store.DocumentStorer) (s *Store, err error) {
	s = &Store{storer: storer}

	data, err := storer.Load()
	if err == store.ErrNotFound {
		s.doc = document{scores: make(Scores, len(Teams))}
		for _, t := range Teams {
			s.doc.scores[t] = 0
		}

		return s, nil
	}

	if err != nil {
		return nil, newPersistenceError("load", err)
	}

	doc, migrated, err := decodeDocument(data)
	if err != nil {
		return nil, newPersistenceError("load", err)
	}

	if migrated {
		if err = s.write(doc); err != nil {
			return nil, err
		}
	}

	s.doc = doc

	return s, nil
}

// Get returns the current score of a team
func (s *Store) Get(team Team) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.scores[team]
}

// Scores returns a snapshot of all scores
func (s *Store) Scores() (scores Scores) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.doc.clone().scores
}

// Increment adds amount (which may be negative) to the team's score, flooring the result at
// zero, and persists it. The new score is returned
func (s *Store) Increment(team Team, amount int) (newScore int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = ParseTeam(string(team)); err != nil {
		return 0, err
	}

	next := s.doc.clone()
	next.scores[team] = floorAtZero(next.scores[team] + amount)

	if err = s.commit(next); err != nil {
		return s.doc.scores[team], err
	}

	return next.scores[team], nil
}

// SummaryMessageRef returns the reference of the summary message if one was ever recorded
func (s *Store) SummaryMessageRef() (ref MessageRef, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.ref == nil {
		return MessageRef{}, false
	}

	return *s.doc.ref, true
}

// SetSummaryMessageRef records and persists the reference of the summary message
func (s *Store) SetSummaryMessageRef(ref MessageRef) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.doc.clone()
	next.ref = &ref

	return s.commit(next)
}

// Close closes the underlying storer
func (s *Store) Close() (err error) {
	return s.storer.Close()
}

// commit persists next and only then makes it the current state. Callers must hold the lock
func (s *Store) commit(next document) (err error) {
	if err = s.write(next); err != nil {
		return err
	}

	s.doc = next
	return nil
}

func (s *Store) write(doc document) (err error) {
	data, err := doc.encode()
	if err != nil {
		return newPersistenceError("encode", err)
	}

	if err = s.storer.Save(data); err != nil {
		return newPersistenceError("save", err)
	}

	return nil
}

func floorAtZero(v int) int {
	if v < 0 {
		return 0
	}

	return v
}
