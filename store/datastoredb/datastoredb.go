package datastoredb

import (
	"cloud.google.com/go/datastore"
	"context"
	"github.com/pkg/errors"
	"github.com/shinyhunt/scorebot/store"
	"google.golang.org/api/option"
	"time"
)

// documentName is the name of the datastore key holding the document
const documentName = "scoreboard"

// operationTimeout bounds every datastore call
const operationTimeout = 10 * time.Second

// DatastoreDB implements the store.DocumentStorer interface. The document is stored as a
// single entity of the given kind
type DatastoreDB struct {
	datastorer
	kind string
}

// EntryValue represents the entity holding the serialized document
type EntryValue struct {
	Value string `datastore:",noindex"`
}

// New returns a new instance of DatastoreDB for the given kind. This function also requires a gcloudProjectID
// as well as at least one option to provide gcloud client credentials
func New(kind string, gcloudProjectID string, gcloudClientOpts ...option.ClientOption) (dsdb *DatastoreDB, err error) {
	return newWithDatastorer(kind, &gcdatastore{gcloudProjectID: gcloudProjectID, gcloudClientOpts: gcloudClientOpts})
}

// newWithDatastorer connects the datastorer and validates connectivity with a lightweight read
func newWithDatastorer(kind string, ds datastorer) (dsdb *DatastoreDB, err error) {
	if err = ds.connect(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to datastore")
	}

	dsdb = &DatastoreDB{datastorer: ds, kind: kind}

	if _, err = dsdb.Load(); err != nil && err != store.ErrNotFound {
		dsdb.Close()
		return nil, err
	}

	return dsdb, nil
}

// Load returns the document or store.ErrNotFound if there is no such entity
func (dsdb *DatastoreDB) Load() (data []byte, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	var e EntryValue
	err = dsdb.Get(ctx, datastore.NameKey(dsdb.kind, documentName, nil), &e)
	if err == datastore.ErrNoSuchEntity {
		return nil, store.ErrNotFound
	}

	if err != nil {
		return nil, errors.Wrapf(err, "failed to get [%s] from datastore", dsdb.kind)
	}

	return []byte(e.Value), nil
}

// Save replaces the document entity
func (dsdb *DatastoreDB) Save(data []byte) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), operationTimeout)
	defer cancel()

	_, err = dsdb.Put(ctx, datastore.NameKey(dsdb.kind, documentName, nil), &EntryValue{Value: string(data)})
	if err != nil {
		return errors.Wrapf(err, "failed to put [%s] to datastore", dsdb.kind)
	}

	return nil
}

// Close closes the underlying datastore client
func (dsdb *DatastoreDB) Close() (err error) {
	return dsdb.datastorer.Close()
}
