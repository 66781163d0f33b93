// Package blobstore abstracts the storage of immutable snapshot blobs.
//
// A Store writes and reads whole named blobs. Implementations must be safe
// for concurrent use. Two implementations are provided: MemoryStore for
// tests and LocalStore for the local filesystem. Custom backends implement
// the Store interface.
package blobstore
