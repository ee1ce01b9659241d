// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an ordered in-memory index (a btree or a skip list) with an
// append-only log structure on disk to achieve high throughput. It is designed
// for applications requiring fast read and write operations, such as caching,
// session management, and real-time data processing, aiming to provide a
// simple, efficient, and reliable persistent key/value store for Go applications.
package ignite

import (
	"context"
	stdErrors "errors"

	"github.com/iamNilotpal/ignite/internal/engine"
	"github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/logger"
	"github.com/iamNilotpal/ignite/pkg/options"
)

// ErrKeyNotFound is the facade's exported not-found sentinel, translated
// from the engine's internal errors.ErrKeyNotFound at the API boundary.
var ErrKeyNotFound = stdErrors.New("ignite: key not found")

// Represents an instance of the Ignite key/value data store.
// It encapsulates the core engine responsible for data handling and
// the configuration options for this specific database instance.
//
// Instance is the primary entry point for interacting with the Ignite store,
// providing methods for setting, getting, and deleting key-value pairs.
type Instance struct {
	engine  *engine.Engine   // The underlying database engine handling read/write operations.
	options *options.Options // Configuration options applied to this DB instance.
}

// Creates and initializes a new Ignite DB instance.
func NewInstance(context context.Context, service string, opts ...options.OptionFunc) (*Instance, error) {
	// Initialize a logger for the given service.
	log := logger.New(service)

	// Initialize default options.
	defaultOpts := options.NewDefaultOptions()

	// Apply any provided functional options to override defaults.
	if len(opts) > 0 {
		for _, opt := range opts {
			opt(&defaultOpts)
		}
	}

	// Open the internal engine with the initialized logger.
	eng, err := engine.Open(context, &defaultOpts, log)
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &defaultOpts}, nil
}

// Set stores a key-value pair in the database.
// If the key already exists, its value will be updated.
// The pair is written to the append-only log; it is fsynced before Set
// returns only when SyncWrites is enabled.
func (i *Instance) Set(ctx context.Context, key string, value []byte) error {
	return i.engine.Put([]byte(key), value)
}

// Get retrieves the value associated with the given key.
func (i *Instance) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := i.engine.Get([]byte(key))
	if err != nil {
		if stdErrors.Is(err, errors.ErrKeyNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Delete removes a key-value pair from the database.
func (i *Instance) Delete(ctx context.Context, key string) error {
	return i.engine.Delete([]byte(key))
}

// Close gracefully shuts down the Ignite DB instance, releasing all
// associated resources and closing open file handles in the engine.
func (i *Instance) Close(ctx context.Context) error {
	return i.engine.Close()
}
