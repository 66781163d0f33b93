// Package model defines the core identifier, position, and topology types
// shared by all kernel subsystems.
//
// A GID names one simulated entity across the whole distributed run. Entities
// are distributed over virtual processes (VPs); every VP is pinned to exactly
// one (rank, thread) pair, so per-VP state is exclusively owned by one worker
// thread and never mutated across threads.
package model
