package inmemorydb_test

import (
	"fmt"
	"github.com/shinyhunt/scorebot/store"
	"github.com/shinyhunt/scorebot/store/inmemorydb"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestLoadEmpty(t *testing.T) {
	imdb := inmemorydb.New()

	_, err := imdb.Load()
	assert.Equal(t, store.ErrNotFound, err)
	assert.Nil(t, imdb.Document())
}

func TestSaveAndLoad(t *testing.T) {
	var ds store.DocumentStorer = inmemorydb.New()

	err := ds.Save([]byte("v1"))
	assert.Nil(t, err)

	data, err := ds.Load()
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), data)

	// Mutating the returned copy doesn't affect the stored document
	data[0] = 'x'
	data, _ = ds.Load()
	assert.Equal(t, []byte("v1"), data)
}

func TestNewWithDocument(t *testing.T) {
	imdb := inmemorydb.NewWithDocument([]byte(`{"teamA": 5}`))

	data, err := imdb.Load()
	assert.Nil(t, err)
	assert.Equal(t, `{"teamA": 5}`, string(data))
	assert.Equal(t, 0, imdb.SaveCount())
}

func TestInjectedFailures(t *testing.T) {
	imdb := inmemorydb.NewWithDocument([]byte("v1"))

	imdb.FailSaves(fmt.Errorf("disk full"))
	err := imdb.Save([]byte("v2"))
	if assert.Error(t, err) {
		assert.Equal(t, "disk full", err.Error())
	}
	assert.Equal(t, []byte("v1"), imdb.Document())

	imdb.FailLoads(fmt.Errorf("unreadable"))
	_, err = imdb.Load()
	assert.Error(t, err)

	imdb.FailSaves(nil)
	imdb.FailLoads(nil)
	assert.Nil(t, imdb.Save([]byte("v2")))
	assert.Equal(t, 1, imdb.SaveCount())
}

func TestClose(t *testing.T) {
	imdb := inmemorydb.New()
	assert.False(t, imdb.Closed())

	assert.Nil(t, imdb.Close())
	assert.True(t, imdb.Closed())
}
