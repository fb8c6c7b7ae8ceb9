package inmemorydb

import (
	"github.com/shinyhunt/scorebot/store"
	"sync"
)

// InMemoryDB implements store.DocumentStorer and keeps the document in memory
type InMemoryDB struct {
	mu        sync.Mutex
	data      []byte
	saveCount int
	saveErr   error
	loadErr   error
	closed    bool
}

// New returns an empty InMemoryDB
func New() (imdb *InMemoryDB) {
	return new(InMemoryDB)
}

// NewWithDocument returns an InMemoryDB holding an existing document
func NewWithDocument(data []byte) (imdb *InMemoryDB) {
	imdb = new(InMemoryDB)
	imdb.data = copyBytes(data)

	return imdb
}

// Load returns a copy of the document or store.ErrNotFound if nothing was ever saved
func (imdb *InMemoryDB) Load() (data []byte, err error) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	if imdb.loadErr != nil {
		return nil, imdb.loadErr
	}

	if imdb.data == nil {
		return nil, store.ErrNotFound
	}

	return copyBytes(imdb.data), nil
}

// Save replaces the document unless a save failure was injected
func (imdb *InMemoryDB) Save(data []byte) (err error) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	if imdb.saveErr != nil {
		return imdb.saveErr
	}

	imdb.data = copyBytes(data)
	imdb.saveCount++

	return nil
}

// Document returns a copy of the current document (nil if never saved)
func (imdb *InMemoryDB) Document() (data []byte) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	return copyBytes(imdb.data)
}

// SaveCount returns the number of successful saves
func (imdb *InMemoryDB) SaveCount() (count int) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	return imdb.saveCount
}

// FailSaves makes every following Save return err. A nil err restores normal saves
func (imdb *InMemoryDB) FailSaves(err error) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	imdb.saveErr = err
}

// FailLoads makes every following Load return err. A nil err restores normal loads
func (imdb *InMemoryDB) FailLoads(err error) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	imdb.loadErr = err
}

// Closed returns true once Close was called
func (imdb *InMemoryDB) Closed() bool {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	return imdb.closed
}

// Close marks the db as closed
func (imdb *InMemoryDB) Close() (err error) {
	imdb.mu.Lock()
	defer imdb.mu.Unlock()

	imdb.closed = true
	return nil
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	c := make([]byte, len(b))
	copy(c, b)

	return c
}
