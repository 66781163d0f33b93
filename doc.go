// Package nest provides the distributed node registry and spatial position
// index of a large-scale network simulator kernel.
//
// The Kernel creates simulated entities, distributes them across virtual
// processes and ranks under stable global identifiers, optionally attaches
// them to points in 2-D or 3-D space via layers, and reconciles those
// positions into a single deduplicated global view usable for spatial range
// and proximity queries.
//
// # Quick Start
//
//	ctx := context.Background()
//	kernel, _ := nest.New(nest.WithThreads(2))
//	kernel.RegisterModel(models.NewStaticModel("unit", model.KindRegular))
//
//	l, _ := kernel.CreateLayer(ctx, layer.Spec{
//	    Elements:  []layer.Element{{Model: "unit"}},
//	    Positions: [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
//	    LowerLeft: []float64{0, 0},
//	    Extent:    []float64{2, 2},
//	})
//
//	tree, _ := kernel.PositionTree(ctx, l)
//	near := tree.InRadius(model.NewPosition(0, 0), 1.5)
//
// # Reproducibility
//
// The position synchronization protocol sorts and deduplicates the globally
// gathered records, so the final identifier-to-position mapping is
// bit-identical on every rank regardless of the number of ranks or threads.
// This property is load-bearing for scientific reproducibility and is
// exercised by the determinism tests.
//
// # Distribution Model
//
// Virtual processes are assigned round-robin across rank/thread pairs.
// Regular entities live on exactly one VP with lightweight proxies
// everywhere else; devices are cloned onto every VP; coordination entities
// exist once per rank on thread 0. The only cross-rank synchronization point
// is the collective position exchange.
package nest
