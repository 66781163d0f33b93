// Package exchange provides the collective transport used by the position
// synchronization protocol.
//
// The contract mirrors an MPI-style variable-length all-gather: every rank
// contributes a buffer of float64 records and every rank receives the
// concatenation of all contributions, in rank order, together with the offset
// at which each rank's contribution begins. The collective is a blocking
// barrier; every rank of a group must participate in every round or the
// remaining ranks block forever. Partial participation is a
// programming-contract violation, not a recoverable runtime condition.
//
// Local serves single-rank runs. Group runs several ranks inside one OS
// process, each driven by its own goroutine, which is also how the
// multi-rank determinism tests execute.
package exchange
