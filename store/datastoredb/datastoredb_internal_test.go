package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"fmt"
	"github.com/shinyhunt/scorebot/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"testing"
)

// mock of the datastore
type mockDatastore struct {
	mock.Mock
	stored string
}

// connect mocks a datastore connect call
func (md *mockDatastore) connect() (err error) {
	args := md.Called()

	return args.Error(0)
}

// Close mocks a datastore Close
func (md *mockDatastore) Close() (err error) {
	args := md.Called()
	return args.Error(0)
}

// Get mocks a Get datastore call and fills the destination with the last stored value
func (md *mockDatastore) Get(c context.Context, k *datastore.Key, dest interface{}) (err error) {
	args := md.Called(k.Kind, k.Name)

	if e, ok := dest.(*EntryValue); ok {
		e.Value = md.stored
	}

	return args.Error(0)
}

// Put mocks a Put datastore call
func (md *mockDatastore) Put(c context.Context, k *datastore.Key, v interface{}) (key *datastore.Key, err error) {
	args := md.Called(k.Kind, k.Name, v)

	if args.Error(0) == nil {
		md.stored = v.(*EntryValue).Value
	}

	return k, args.Error(0)
}

func TestNewFailsOnConnectError(t *testing.T) {
	md := new(mockDatastore)
	md.On("connect").Return(fmt.Errorf("no credentials"))

	_, err := newWithDatastorer("scoreboard", md)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "no credentials")
	}

	md.AssertExpectations(t)
}

func TestNewClosesOnConnectivityTestError(t *testing.T) {
	md := new(mockDatastore)
	md.On("connect").Return(nil)
	md.On("Get", "scoreboard", "scoreboard").Return(fmt.Errorf("permission denied"))
	md.On("Close").Return(nil)

	_, err := newWithDatastorer("scoreboard", md)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "permission denied")
	}

	md.AssertExpectations(t)
}

func TestLoadWithoutEntityIsNotFound(t *testing.T) {
	md := new(mockDatastore)
	md.On("connect").Return(nil)
	md.On("Get", "scoreboard", "scoreboard").Return(datastore.ErrNoSuchEntity)

	dsdb, err := newWithDatastorer("scoreboard", md)
	assert.Nil(t, err)

	_, err = dsdb.Load()
	assert.Equal(t, store.ErrNotFound, err)
}

func TestSaveThenLoad(t *testing.T) {
	md := new(mockDatastore)
	md.On("connect").Return(nil)
	md.On("Get", "scoreboard", "scoreboard").Return(datastore.ErrNoSuchEntity).Once()
	md.On("Put", "scoreboard", "scoreboard", &EntryValue{Value: `{"nyancat": 3}`}).Return(nil)
	md.On("Get", "scoreboard", "scoreboard").Return(nil)
	md.On("Close").Return(nil)

	dsdb, err := newWithDatastorer("scoreboard", md)
	assert.Nil(t, err)

	err = dsdb.Save([]byte(`{"nyancat": 3}`))
	assert.Nil(t, err)

	data, err := dsdb.Load()
	assert.Nil(t, err)
	assert.Equal(t, `{"nyancat": 3}`, string(data))

	assert.Nil(t, dsdb.Close())
	md.AssertExpectations(t)
}

func TestSaveError(t *testing.T) {
	md := new(mockDatastore)
	md.On("connect").Return(nil)
	md.On("Get", "scoreboard", "scoreboard").Return(datastore.ErrNoSuchEntity)
	md.On("Put", "scoreboard", "scoreboard", mock.Anything).Return(fmt.Errorf("quota exceeded"))

	dsdb, err := newWithDatastorer("scoreboard", md)
	assert.Nil(t, err)

	err = dsdb.Save([]byte(`{}`))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "quota exceeded")
	}
}
