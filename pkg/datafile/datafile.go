// Package datafile names and discovers the numbered data files that make up
// an engine's data directory.
//
// Filename format: {file_id:09}.data — a nine-digit, zero-padded decimal
// identifier followed by the fixed ".data" suffix. Discover parses each
// stem back into an integer id and sorts the ids numerically, so recovery
// sees the files in ascending id order regardless of directory order.
//
// Example filenames:
//
//	000000000.data
//	000000001.data
//	000000660.data
package datafile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Suffix is the fixed extension every data file carries.
const Suffix = ".data"

// GenerateName formats the on-disk filename for the given file id.
func GenerateName(fileID uint32) string {
	return fmt.Sprintf("%09d%s", fileID, Suffix)
}

// JoinPath returns the full path of a named data file inside dirPath.
func JoinPath(dirPath, name string) string {
	return filepath.Join(dirPath, name)
}

// ParseID extracts the file id from a data file's base name. It returns
// false if name does not carry the fixed suffix or its stem is not a valid
// decimal uint32, so the caller can surface DataDirectoryCorrupted.
func ParseID(name string) (uint32, bool) {
	if !strings.HasSuffix(name, Suffix) {
		return 0, false
	}
	stem := strings.TrimSuffix(name, Suffix)
	id, err := strconv.ParseUint(stem, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// Discover scans dirPath for data files and returns their ids in ascending
// order. Any entry ending in Suffix whose stem fails to parse as a uint32
// causes Discover to fail outright — a corrupted directory must not be
// silently partially recovered. Entries not ending in Suffix are ignored.
func Discover(dirPath string) ([]uint32, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, err
	}

	var ids []uint32
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, Suffix) {
			continue
		}
		id, ok := ParseID(name)
		if !ok {
			return nil, errCorrupted(name)
		}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// corruptedNameError carries the offending filename for diagnostics. Callers
// translate it into a richer errors.StorageError at the boundary where the
// directory is opened, where path/segment context is available.
type corruptedNameError struct{ name string }

func (e *corruptedNameError) Error() string {
	return fmt.Sprintf("data directory entry %q has an unparsable file id", e.name)
}

func errCorrupted(name string) error {
	return &corruptedNameError{name: name}
}

// Name returns the filename that caused a corrupted-directory error, if err
// originated from Discover.
func Name(err error) (string, bool) {
	if ce, ok := err.(*corruptedNameError); ok {
		return ce.name, true
	}
	return "", false
}
