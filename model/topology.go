package model

import "fmt"

// Topology describes the parallel layout of one run: how many ranks
// participate, how many worker threads each rank drives, and which rank the
// local process is.
//
// VPs are numbered 0..NumVPs-1 and assigned round-robin across ranks: VP v
// lives on rank v % processes, thread v / processes. The mapping is fixed for
// the lifetime of the topology; entities never migrate between VPs.
type Topology struct {
	processes int
	threads   int
	rank      Rank
}

// NewTopology validates and builds a topology.
func NewTopology(processes, threadsPerProcess int, rank Rank) (*Topology, error) {
	if processes < 1 {
		return nil, fmt.Errorf("topology: processes must be >= 1, got %d", processes)
	}
	if threadsPerProcess < 1 {
		return nil, fmt.Errorf("topology: threads per process must be >= 1, got %d", threadsPerProcess)
	}
	if rank < 0 || int(rank) >= processes {
		return nil, fmt.Errorf("topology: rank %d outside [0, %d)", rank, processes)
	}
	return &Topology{processes: processes, threads: threadsPerProcess, rank: rank}, nil
}

// NumProcesses returns the number of participating ranks.
func (t *Topology) NumProcesses() int { return t.processes }

// NumThreads returns the number of worker threads per rank.
func (t *Topology) NumThreads() int { return t.threads }

// NumVPs returns the total number of virtual processes.
func (t *Topology) NumVPs() int { return t.processes * t.threads }

// Rank returns the local rank.
func (t *Topology) Rank() Rank { return t.rank }

// VPOf returns the owning VP of a GID: round-robin over all VPs.
func (t *Topology) VPOf(gid GID) VP { return VP(gid % GID(t.NumVPs())) }

// RankOf returns the rank hosting the given VP.
func (t *Topology) RankOf(vp VP) Rank { return Rank(int(vp) % t.processes) }

// ThreadOf returns the thread hosting the given VP on its rank.
func (t *Topology) ThreadOf(vp VP) Thread { return Thread(int(vp) / t.processes) }

// VPForThread returns the VP hosted by the given local thread.
func (t *Topology) VPForThread(th Thread) VP {
	return VP(int(t.rank) + int(th)*t.processes)
}

// IsLocalVP reports whether the VP is hosted by the local rank.
func (t *Topology) IsLocalVP(vp VP) bool { return t.RankOf(vp) == t.rank }

// IsLocalGID reports whether the owning VP of gid is hosted by the local
// rank.
func (t *Topology) IsLocalGID(gid GID) bool { return t.IsLocalVP(t.VPOf(gid)) }

// ValidThread reports whether th is a valid local thread index.
func (t *Topology) ValidThread(th Thread) bool { return th >= 0 && int(th) < t.threads }
