/*
Package inmemorydb provides an implementation of github.com/shinyhunt/scorebot/store's
DocumentStorer interface that keeps the document in memory only.

It backs the "memory" storage backend (useful for dry runs) and the tests of packages
depending on a DocumentStorer. Failures can be injected to exercise error paths:

	db := inmemorydb.New()
	db.FailSaves(errors.New("disk full"))
*/
package inmemorydb
