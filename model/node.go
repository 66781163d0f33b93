package model

// Node is one entity instance as seen by a single thread. A node is either
// real (it owns entity state on this thread's VP) or a proxy placeholder for
// an entity owned elsewhere.
//
// Prepare and Finalize are lifecycle hooks fanned out once per run to every
// real node; proxies implement them as no-ops.
type Node interface {
	// GID returns the global identifier of the entity.
	GID() GID

	// VP returns the virtual process this instance is bound to.
	VP() VP

	// ModelName returns the name of the model the entity was created from.
	ModelName() string

	// IsProxy reports whether this instance is a placeholder for an entity
	// owned by another VP.
	IsProxy() bool

	// Prepare readies the node for a simulation run.
	Prepare() error

	// Finalize releases per-run resources after a simulation run.
	Finalize() error
}

// Proxy is the lightweight stand-in held on every non-owning VP for a regular
// entity. It carries identity only and never owns entity state, so "is this
// entity real here" is a plain tag check instead of a dangling cross-process
// reference.
type Proxy struct {
	gid   GID
	vp    VP
	model string
}

// NewProxy creates a proxy for gid bound to the hosting VP.
func NewProxy(gid GID, vp VP, modelName string) *Proxy {
	return &Proxy{gid: gid, vp: vp, model: modelName}
}

// GID implements Node.
func (p *Proxy) GID() GID { return p.gid }

// VP implements Node.
func (p *Proxy) VP() VP { return p.vp }

// ModelName implements Node.
func (p *Proxy) ModelName() string { return p.model }

// IsProxy implements Node.
func (p *Proxy) IsProxy() bool { return true }

// Prepare implements Node as a no-op.
func (p *Proxy) Prepare() error { return nil }

// Finalize implements Node as a no-op.
func (p *Proxy) Finalize() error { return nil }
