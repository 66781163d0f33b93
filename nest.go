package nest

import (
	"context"
	"time"

	"github.com/AlexVanMeegen/nest-simulator/blobstore"
	"github.com/AlexVanMeegen/nest-simulator/exchange"
	"github.com/AlexVanMeegen/nest-simulator/gids"
	"github.com/AlexVanMeegen/nest-simulator/layer"
	"github.com/AlexVanMeegen/nest-simulator/model"
	"github.com/AlexVanMeegen/nest-simulator/models"
	"github.com/AlexVanMeegen/nest-simulator/nodes"
	"github.com/AlexVanMeegen/nest-simulator/ntree"
	"github.com/AlexVanMeegen/nest-simulator/snapshot"
)

// Kernel is the facade over the node registry, model registry, topology,
// and collective transport of one rank.
type Kernel struct {
	topo     *model.Topology
	registry *models.Registry
	nodes    *nodes.Manager
	comm     exchange.Communicator
	logger   *Logger
	metrics  MetricsCollector
}

// New builds a kernel for one rank. The collective transport (see
// WithExchange) fixes the rank count and local rank; WithThreads fixes the
// worker threads per rank.
func New(optFns ...Option) (*Kernel, error) {
	o := applyOptions(optFns)

	topo, err := model.NewTopology(o.comm.Size(), o.threads, model.Rank(o.comm.Rank()))
	if err != nil {
		return nil, err
	}

	registry := models.NewRegistry()
	return &Kernel{
		topo:     topo,
		registry: registry,
		nodes:    nodes.NewManager(topo, registry),
		comm:     o.comm,
		logger:   o.logger.WithRank(topo.Rank()),
		metrics:  o.metrics,
	}, nil
}

// Topology returns the parallel layout of this kernel.
func (k *Kernel) Topology() *model.Topology { return k.topo }

// Models returns the model registry.
func (k *Kernel) Models() *models.Registry { return k.registry }

// RegisterModel registers a model for later creation calls.
func (k *Kernel) RegisterModel(m models.Model) error {
	return k.registry.Register(m)
}

// Create instantiates n entities of the named model and returns their
// identifier set. See nodes.Manager.Create for the distribution policies.
func (k *Kernel) Create(ctx context.Context, modelName string, n int) (*gids.Collection, error) {
	start := time.Now()
	coll, err := k.nodes.Create(ctx, modelName, n)
	err = translateError(err)
	k.metrics.RecordCreate(n, time.Since(start), err)
	k.logger.LogCreate(ctx, modelName, n, err)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

// CreateLayer creates the entities of a layer spec, attaches the layer
// descriptor to the resulting identifier set, and returns the layer. The
// identifier set is available via Layer.Collection.
func (k *Kernel) CreateLayer(ctx context.Context, spec layer.Spec) (layer.Layer, error) {
	l, err := layer.Build(ctx, spec, k.Create, k.layerDeps())
	if err != nil {
		return nil, translateError(err)
	}
	return l, nil
}

func (k *Kernel) layerDeps() layer.Deps {
	return layer.Deps{Locality: k.nodes, Comm: k.comm}
}

// LayerOf returns the layer attached to a collection, if any.
func (k *Kernel) LayerOf(c *gids.Collection) (layer.Layer, bool) {
	return layer.Of(c)
}

// GetNode returns the instance of gid held by the given thread: the real
// node if the thread's VP owns it, else the thread-local proxy.
func (k *Kernel) GetNode(gid model.GID, thread model.Thread) (model.Node, error) {
	n, err := k.nodes.GetNode(gid, thread)
	if err != nil {
		return nil, translateError(err)
	}
	return n, nil
}

// Nodes returns the node registry.
func (k *Kernel) Nodes() *nodes.Manager { return k.nodes }

// Prepare fans the prepare hook out to every real node on every thread.
// Errors from all threads are collected and joined; no thread aborts its
// siblings.
func (k *Kernel) Prepare(ctx context.Context) error {
	start := time.Now()
	err := k.nodes.Prepare(ctx)
	k.metrics.RecordPrepare(time.Since(start), err)
	k.logger.LogPrepare(ctx, k.nodes.Size(), err)
	return err
}

// Finalize fans the finalize hook out to every real node on every thread,
// with the same error-collection contract as Prepare.
func (k *Kernel) Finalize(ctx context.Context) error {
	start := time.Now()
	err := k.nodes.Finalize(ctx)
	k.metrics.RecordPrepare(time.Since(start), err)
	k.logger.LogPrepare(ctx, k.nodes.Size(), err)
	return err
}

// PositionTree synchronizes the layer's positions across all ranks and
// returns a populated spatial index over the layer box. Collective: every
// rank must call it together.
func (k *Kernel) PositionTree(ctx context.Context, l layer.Layer) (*ntree.Tree[model.GID], error) {
	tree, err := ntree.New[model.GID](l.Dim(), l.LowerLeft(), l.Extent())
	if err != nil {
		return nil, err
	}
	start := time.Now()
	err = translateError(l.InsertPositionsInto(ctx, tree))
	k.metrics.RecordExchange(tree.Len(), time.Since(start), err)
	k.logger.LogExchange(ctx, tree.Len(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// GlobalPositions synchronizes the layer's positions across all ranks and
// returns the global view sorted by GID, identical on every rank.
// Collective: every rank must call it together.
func (k *Kernel) GlobalPositions(ctx context.Context, l layer.Layer) ([]layer.Entry, error) {
	start := time.Now()
	entries, err := l.GlobalPositions(ctx)
	err = translateError(err)
	k.metrics.RecordExchange(len(entries), time.Since(start), err)
	k.logger.LogExchange(ctx, len(entries), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveSnapshot synchronizes the layer's positions and persists the global
// view to the blob store. Collective: every rank must call it together,
// though typically only rank 0's store is durable.
func (k *Kernel) SaveSnapshot(ctx context.Context, store blobstore.Store, name string, l layer.Layer, codec snapshot.Codec) error {
	entries, err := k.GlobalPositions(ctx, l)
	if err != nil {
		return err
	}
	start := time.Now()
	err = snapshot.Save(ctx, store, name, l.Dim(), entries, codec)
	k.metrics.RecordSnapshot(time.Since(start), err)
	k.logger.LogSnapshot(ctx, name, len(entries), err)
	return err
}

// LoadSnapshot reads a persisted position table from the blob store.
func (k *Kernel) LoadSnapshot(ctx context.Context, store blobstore.Store, name string) (int, []layer.Entry, error) {
	start := time.Now()
	dim, entries, err := snapshot.Load(ctx, store, name)
	k.metrics.RecordSnapshot(time.Since(start), err)
	k.logger.LogSnapshot(ctx, name, len(entries), err)
	return dim, entries, err
}

// Reset destroys all nodes and layers and returns the kernel to its initial
// state. Registered models survive.
func (k *Kernel) Reset() {
	k.nodes.Reset()
}
