package options

import "github.com/iamNilotpal/ignite/internal/index"

const (
	// Specifies the default base directory where IgniteDB will store its data files.
	// If no other directory is specified during initialization, this path will be used.
	DefaultDataDir = "/var/lib/ignitedb"

	// Represents the minimum allowed size for a data file in bytes (512MB).
	MinSegmentSize uint64 = 512 * 1024 * 1024

	// Represents the maximum allowed size for a data file in bytes (4GB).
	MaxSegmentSize uint64 = 4 * 1024 * 1024 * 1024

	// Specifies the default target size for a new data file in bytes (1GB).
	DefaultSegmentSize uint64 = 1 * 1024 * 1024 * 1024

	// Specifies the default index backend.
	DefaultIndexType = index.Btree

	// Specifies the default sync policy: durability only at rollover/close.
	DefaultSyncWrites = false
)

// Holds the default configuration settings for an IgniteDB instance.
var defaultOptions = Options{
	DataDir:    DefaultDataDir,
	SyncWrites: DefaultSyncWrites,
	IndexType:  DefaultIndexType,
	SegmentOptions: &segmentOptions{
		Size: DefaultSegmentSize,
	},
}

// NewDefaultOptions returns a fresh copy of the defaults, safe for the caller
// to mutate. SegmentOptions is deep-copied: a shallow copy would share the
// package-level defaultOptions' *segmentOptions pointer, so one instance's
// WithSegmentSize would silently overwrite every other instance's default.
func NewDefaultOptions() Options {
	out := defaultOptions
	segmentOpts := *defaultOptions.SegmentOptions
	out.SegmentOptions = &segmentOpts
	return out
}
