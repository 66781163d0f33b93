// Package gids implements the immutable identifier sets returned by entity
// creation.
//
// A Collection is an ordered, immutable set of GIDs. One creation call yields
// a single contiguous range; Join concatenates collections (e.g. when a layer
// consists of several element models) while preserving creation order and
// uniqueness. Collections carry one shared metadata slot, settable once,
// which the topology code uses to attach a layer descriptor.
package gids
