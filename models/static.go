package models

import "github.com/AlexVanMeegen/nest-simulator/model"

// StaticModel is a model without dynamics: its nodes carry identity and
// lifecycle hooks only. It covers the registry's needs for units whose state
// equations live outside this module, and doubles as the model used by the
// kernel tests.
type StaticModel struct {
	name string
	kind model.Kind

	// PrepareFunc, when non-nil, is invoked by every real node's Prepare.
	PrepareFunc func(gid model.GID, vp model.VP) error

	// FinalizeFunc, when non-nil, is invoked by every real node's Finalize.
	FinalizeFunc func(gid model.GID, vp model.VP) error
}

// NewStaticModel creates a model of the given name and kind.
func NewStaticModel(name string, kind model.Kind) *StaticModel {
	return &StaticModel{name: name, kind: kind}
}

// Name implements Model.
func (m *StaticModel) Name() string { return m.name }

// Kind implements Model.
func (m *StaticModel) Kind() model.Kind { return m.kind }

// NewNode implements Model.
func (m *StaticModel) NewNode(gid model.GID, vp model.VP) model.Node {
	return &staticNode{gid: gid, vp: vp, model: m}
}

type staticNode struct {
	gid   model.GID
	vp    model.VP
	model *StaticModel
}

func (n *staticNode) GID() model.GID { return n.gid }

func (n *staticNode) VP() model.VP { return n.vp }

func (n *staticNode) ModelName() string { return n.model.name }

func (n *staticNode) IsProxy() bool { return false }

func (n *staticNode) Prepare() error {
	if n.model.PrepareFunc != nil {
		return n.model.PrepareFunc(n.gid, n.vp)
	}
	return nil
}

func (n *staticNode) Finalize() error {
	if n.model.FinalizeFunc != nil {
		return n.model.FinalizeFunc(n.gid, n.vp)
	}
	return nil
}
