// Package layer assigns spatial coordinates to identifier sets and
// reconciles them into a globally consistent view.
//
// Two variants exist: FreeLayer stores user-supplied positions, validated
// against the layer box; GridLayer derives positions by formula from its
// grid shape and stores nothing. Both expose the same contract: per-local-
// index position lookup and population of a spatial index or sorted slice
// via the position synchronization protocol, which yields bit-identical
// results on every rank regardless of process or thread count.
package layer
