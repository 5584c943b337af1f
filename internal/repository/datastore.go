package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/datastore"
)

// DatastoreClient wraps the Cloud Datastore client used for the task
// collection. A single configured client is shared by all collaborators.
type DatastoreClient struct {
	ds *datastore.Client
}

// NewDatastoreClient creates the shared Datastore client. The official
// client picks up DATASTORE_EMULATOR_HOST automatically; it is logged here
// for visibility during development.
func NewDatastoreClient(ctx context.Context, projectID string) (*DatastoreClient, error) {
	if emulatorHost := os.Getenv("DATASTORE_EMULATOR_HOST"); emulatorHost != "" {
		fmt.Printf("Initializing Datastore client against emulator at %s\n", emulatorHost)
	}

	ds, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}

	return &DatastoreClient{ds: ds}, nil
}

func (c *DatastoreClient) Close() error {
	return c.ds.Close()
}

// errNoSuchEntity lets the task repository translate the store's not-found
// error exactly once, at the repository boundary.
func isNoSuchEntity(err error) bool {
	return errors.Is(err, datastore.ErrNoSuchEntity)
}
