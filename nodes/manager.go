package nodes

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/AlexVanMeegen/nest-simulator/gids"
	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/models"
)

// ErrUnknownNode indicates a lookup of a GID that was never created.
type ErrUnknownNode struct {
	GID model.GID
}

func (e *ErrUnknownNode) Error() string {
	return fmt.Sprintf("unknown node %d", e.GID)
}

// ErrInvalidThread indicates a thread index outside the local topology.
type ErrInvalidThread struct {
	Thread model.Thread
}

func (e *ErrInvalidThread) Error() string {
	return fmt.Sprintf("invalid thread %d", e.Thread)
}

// Manager is the node registry of one rank.
//
// Creation and the lifecycle fan-outs are not safe for concurrent use with
// each other; read accessors (GetNode, iteration) are safe once creation has
// returned, matching the publish-then-read-only resource model of the
// kernel.
type Manager struct {
	topo     *model.Topology
	registry *models.Registry

	local   []*sparseArray // one per thread
	nextGID model.GID

	// epoch counts completed creations; localEpoch is the epoch the dense
	// per-thread node lists were last rebuilt at. The comparison replaces
	// the ambient "network grew" flag of classic kernels.
	epoch      uint64
	localEpoch uint64
	localNodes [][]model.Node // dense real-node lists, one per thread
	localMu    sync.Mutex
}

// NewManager creates an empty registry for the given topology and model
// registry.
func NewManager(topo *model.Topology, registry *models.Registry) *Manager {
	m := &Manager{topo: topo, registry: registry}
	m.reset()
	return m
}

func (m *Manager) reset() {
	m.local = make([]*sparseArray, m.topo.NumThreads())
	for t := range m.local {
		m.local[t] = &sparseArray{}
	}
	m.nextGID = 0
	m.epoch = 0
	m.localEpoch = 0
	m.localNodes = nil
}

// Reset destroys all nodes and returns the registry to its initial state.
func (m *Manager) Reset() { m.reset() }

// Size returns the total number of created entities (across all ranks; GIDs
// are assigned identically everywhere).
func (m *Manager) Size() int { return int(m.nextGID) }

// Topology returns the topology the registry distributes over.
func (m *Manager) Topology() *model.Topology { return m.topo }

// Create instantiates n entities of the named model and returns their
// identifier set.
//
// Regular entities are partitioned round-robin across VPs: the owning VP's
// thread gets the real instance, every other local thread a proxy. Device
// entities get a real clone on every VP. Coordination entities get one real
// instance per rank, pinned to thread 0.
//
// Threads instantiate their shares in parallel; the per-thread GID ranges
// are disjoint by construction, so the parallel section is lock-free.
func (m *Manager) Create(ctx context.Context, modelName string, n int) (*gids.Collection, error) {
	if n <= 0 {
		return nil, fmt.Errorf("number of nodes must be positive, got %d", n)
	}
	mdl, err := m.registry.Get(modelName)
	if err != nil {
		return nil, err
	}

	first := m.nextGID
	coll, err := gids.NewRange(first, n)
	if err != nil {
		return nil, err
	}

	g, _ := errgroup.WithContext(ctx)
	for t := 0; t < m.topo.NumThreads(); t++ {
		thread := model.Thread(t)
		arr := m.local[t]
		g.Go(func() error {
			for gid := first; gid < first+model.GID(n); gid++ {
				arr.add(gid, m.instantiate(mdl, gid, thread))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	m.nextGID += model.GID(n)
	m.epoch++
	return coll, nil
}

// instantiate builds the instance of gid held by the given thread, real or
// proxy according to the model kind.
func (m *Manager) instantiate(mdl models.Model, gid model.GID, thread model.Thread) model.Node {
	threadVP := m.topo.VPForThread(thread)
	switch mdl.Kind() {
	case model.KindDevice:
		// One clone per VP, never a proxy.
		return mdl.NewNode(gid, threadVP)
	case model.KindCoordination:
		// One real instance per rank, always on thread 0.
		if thread == 0 {
			return mdl.NewNode(gid, threadVP)
		}
		return model.NewProxy(gid, threadVP, mdl.Name())
	default:
		vp := m.topo.VPOf(gid)
		if m.topo.IsLocalVP(vp) && m.topo.ThreadOf(vp) == thread {
			return mdl.NewNode(gid, vp)
		}
		return model.NewProxy(gid, threadVP, mdl.Name())
	}
}

// GetNode returns the instance of gid held by the given thread: the real
// node if the thread's VP owns it, else the thread-local proxy.
func (m *Manager) GetNode(gid model.GID, thread model.Thread) (model.Node, error) {
	if !m.topo.ValidThread(thread) {
		return nil, &ErrInvalidThread{Thread: thread}
	}
	n, ok := m.local[thread].get(gid)
	if !ok {
		return nil, &ErrUnknownNode{GID: gid}
	}
	return n, nil
}

// EachLocalReal calls fn for every real (non-proxy) instance of a collection
// member held by this rank, in thread order. Device clones are reported once
// per hosting VP; the synchronization protocol deduplicates.
func (m *Manager) EachLocalReal(c *gids.Collection, fn func(lid int, gid model.GID, n model.Node) bool) {
	for _, arr := range m.local {
		stop := false
		arr.each(func(gid model.GID, n model.Node) bool {
			if n.IsProxy() {
				return true
			}
			lid, ok := c.Index(gid)
			if !ok {
				return true
			}
			if !fn(lid, gid, n) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}

// EnsureValidThreadLocalIDs rebuilds the dense per-thread real-node lists if
// the registry has grown since they were last built. Explicit, caller
// triggered; cheap when nothing changed.
func (m *Manager) EnsureValidThreadLocalIDs() {
	m.localMu.Lock()
	defer m.localMu.Unlock()
	if m.localNodes != nil && m.localEpoch == m.epoch {
		return
	}
	m.localNodes = make([][]model.Node, m.topo.NumThreads())
	for t, arr := range m.local {
		dense := make([]model.Node, 0, arr.len())
		arr.each(func(_ model.GID, n model.Node) bool {
			if !n.IsProxy() {
				dense = append(dense, n)
			}
			return true
		})
		m.localNodes[t] = dense
	}
	m.localEpoch = m.epoch
}

// LocalNodes returns the dense list of real nodes of one thread. Call
// EnsureValidThreadLocalIDs first after creating nodes.
func (m *Manager) LocalNodes(thread model.Thread) ([]model.Node, error) {
	if !m.topo.ValidThread(thread) {
		return nil, &ErrInvalidThread{Thread: thread}
	}
	m.EnsureValidThreadLocalIDs()
	return m.localNodes[thread], nil
}

// Prepare fans Prepare out to every real node on every thread. Threads run
// in parallel; an error on one thread never aborts the others. All per-node
// errors are collected and joined after every thread has finished its pass.
func (m *Manager) Prepare(ctx context.Context) error {
	return m.fanOut(ctx, model.Node.Prepare)
}

// Finalize fans Finalize out to every real node on every thread, with the
// same error-collection contract as Prepare.
func (m *Manager) Finalize(ctx context.Context) error {
	return m.fanOut(ctx, model.Node.Finalize)
}

func (m *Manager) fanOut(ctx context.Context, hook func(model.Node) error) error {
	m.EnsureValidThreadLocalIDs()

	// No errgroup here: its first-error cancellation would let one thread's
	// failure abort siblings mid-pass. Every thread completes its pass and
	// reports all errors afterwards.
	threadErrs := make([]error, m.topo.NumThreads())
	var wg sync.WaitGroup
	for t := 0; t < m.topo.NumThreads(); t++ {
		wg.Add(1)
		go func(t int) {
			defer wg.Done()
			var errs []error
			for _, n := range m.localNodes[t] {
				if err := ctx.Err(); err != nil {
					errs = append(errs, err)
					break
				}
				if err := hook(n); err != nil {
					errs = append(errs, fmt.Errorf("node %d on thread %d: %w", n.GID(), t, err))
				}
			}
			threadErrs[t] = errors.Join(errs...)
		}(t)
	}
	wg.Wait()
	return errors.Join(threadErrs...)
}
