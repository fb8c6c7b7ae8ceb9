// Package store defines the persistence contract for the scoreboard document along with
// its local implementations (a json file and a leveldb database). Other implementations
// live in subpackages (datastoredb, inmemorydb)
package store

import (
	"github.com/pkg/errors"
	"io"
)

// ErrNotFound is returned by Load when nothing has been saved yet
var ErrNotFound = errors.New("document not found")

// DocumentStorer is implemented by any value able to persist a single serialized document.
// Save always replaces the full document: implementations must never leave a partially
// written document behind
type DocumentStorer interface {
	io.Closer

	// Load returns the last saved document or ErrNotFound if there isn't one
	Load() (data []byte, err error)

	// Save replaces the persisted document
	Save(data []byte) (err error)
}
