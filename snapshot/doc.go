// Package snapshot persists a synchronized position table.
//
// A snapshot is a versioned binary blob: a fixed header followed by an
// optionally compressed run of fixed-width records (GID plus D coordinates,
// little-endian). Because the synchronized view is identical on every rank,
// a snapshot written by any rank restores the same table everywhere.
package snapshot
