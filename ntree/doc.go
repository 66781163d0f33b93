// Package ntree provides a generic D-dimensional spatial index.
//
// A Tree maps positions inside a fixed axis-aligned box to payload values.
// Space is partitioned recursively: each cell buffers entries until it
// exceeds its capacity, then splits into 2^D equally sized sub-cells.
// Insertion is O(log n) amortized; region queries prune whole subtrees whose
// box does not intersect the query.
//
// Trees are populated during a single synchronization pass and treated as
// read-only afterwards; concurrent reads are safe once no writer is active.
package ntree
