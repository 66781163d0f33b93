// Package nodes implements the distributed node registry.
//
// The Manager owns every entity instance of the local rank, partitioned into
// one sparse array per worker thread. Each thread's array holds, for every
// created GID, either a real node (the thread's VP owns it) or a proxy, so
// thread-local iteration over "all entities" is complete without cross-VP
// dereference. Per-thread state is exclusively owned by its thread; creation
// pre-partitions index ranges so no locking is needed inside the parallel
// sections.
package nodes
