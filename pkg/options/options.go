// Package options provides data structures and functions for configuring
// the Ignite database. It defines the parameters that control Ignite's
// storage behavior and durability, such as the data directory, segment
// rotation threshold, sync policy and index backend.
package options

import (
	"strings"

	"github.com/iamNilotpal/ignite/internal/index"
)

// Defines configurable parameters for data file rotation.
type segmentOptions struct {
	// Defines the advisory size a data file can grow to before rotation.
	// Once the active file's write offset would exceed this threshold, a
	// fresh file is opened and becomes active. A single record larger than
	// Size still forces a rotation rather than being rejected.
	//
	//  - Default: 1GB
	//  - Maximum: 4GB
	//  - Minimum: 512MB
	Size uint64 `json:"maxSegmentSize"`
}

// Defines the configuration parameters for Ignite DB.
type Options struct {
	// Specifies the base path where data files will be stored.
	//
	// Default: "/var/lib/ignitedb"
	DataDir string `json:"dataDir"`

	// When true, every Put/Delete fsyncs the active file before returning.
	// When false, durability is only guaranteed at rollover and Close.
	//
	// Default: false
	SyncWrites bool `json:"syncWrites"`

	// Selects the in-memory index backend: Btree (default) or SkipList.
	IndexType index.Type `json:"indexType"`

	// Configures data file rotation behavior.
	SegmentOptions *segmentOptions `json:"segmentOptions"`
}

// OptionFunc is a function type that modifies the Ignite system's configuration.
type OptionFunc func(*Options)

// Applies a predefined set of default configuration values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.SyncWrites = opts.SyncWrites
		o.IndexType = opts.IndexType
		o.SegmentOptions = opts.SegmentOptions
	}
}

// Sets the primary data directory for Ignite.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// Enables fsync-after-every-write durability.
func WithSyncWrites(sync bool) OptionFunc {
	return func(o *Options) {
		o.SyncWrites = sync
	}
}

// Selects the index backend.
func WithIndexType(t index.Type) OptionFunc {
	return func(o *Options) {
		o.IndexType = t
	}
}

// Sets the maximum size of individual data files. Values outside
// [MinSegmentSize, MaxSegmentSize] are ignored, keeping production
// deployments within a sane range; tests that need fine rotation control
// construct an Options literal directly instead of going through this
// functional option.
func WithSegmentSize(size uint64) OptionFunc {
	return func(o *Options) {
		if size >= MinSegmentSize && size <= MaxSegmentSize {
			o.SegmentOptions.Size = size
		}
	}
}

// NewSegmentOptions builds an Options.SegmentOptions value directly, with no
// min/max bound. Production callers go through WithSegmentSize; this exists
// for tests that need a rotation threshold well below MinSegmentSize to
// exercise rollover without writing gigabytes of data.
func NewSegmentOptions(size uint64) *segmentOptions {
	return &segmentOptions{Size: size}
}
