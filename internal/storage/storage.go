// Package storage persists faces on the local filesystem. Three namespaces
// live under the base path: known/ (one directory per enrolled identity),
// unknown/ (one directory per unidentified face) and recognitions/ (one
// directory per recognition event). Records are plain JPEG and JSON
// files; metadata is always written after the image blobs it references
// so a concurrent lister never sees a half-written record.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when an identity, unknown face or event id does
// not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidName is returned when a caller-supplied identity name cannot
// be used as a path element under the store root.
var ErrInvalidName = errors.New("invalid name")

// timestampID returns a time-derived id with microsecond precision, e.g.
// "unknown_20250102_150405_123456". Lexicographic order matches creation
// order.
func timestampID(prefix string, t time.Time) string {
	return prefix + "_" + timestampKey(t)
}

// timestampKey returns the microsecond-precision filename key for an
// enrollment record.
func timestampKey(t time.Time) string {
	return fmt.Sprintf("%s_%06d", t.Format("20060102_150405"), t.Nanosecond()/1000)
}

// safeName reports whether a caller-supplied name or id can be used as a
// single path element under a store root.
func safeName(s string) bool {
	if s == "" || s == "." || s == ".." {
		return false
	}
	return filepath.Base(s) == s
}
