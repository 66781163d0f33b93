package nodes

import (
	"fmt"
	"sort"

	"github.com/AlexVanMeegen/nest-simulator/model"
)

// sparseArray maps GIDs to the node instances of one thread. GIDs are
// appended in strictly increasing order (creation order), so the backing
// slice stays sorted and lookup is a binary search.
type sparseArray struct {
	entries []sparseEntry
}

type sparseEntry struct {
	gid  model.GID
	node model.Node
}

func (a *sparseArray) add(gid model.GID, n model.Node) {
	if len(a.entries) > 0 && gid <= a.entries[len(a.entries)-1].gid {
		panic(fmt.Sprintf("nodes: non-monotonic insert of gid %d after %d",
			gid, a.entries[len(a.entries)-1].gid))
	}
	a.entries = append(a.entries, sparseEntry{gid: gid, node: n})
}

func (a *sparseArray) get(gid model.GID) (model.Node, bool) {
	i := sort.Search(len(a.entries), func(i int) bool { return a.entries[i].gid >= gid })
	if i < len(a.entries) && a.entries[i].gid == gid {
		return a.entries[i].node, true
	}
	return nil, false
}

func (a *sparseArray) len() int { return len(a.entries) }

// each walks entries in ascending GID order.
func (a *sparseArray) each(fn func(gid model.GID, n model.Node) bool) {
	for _, e := range a.entries {
		if !fn(e.gid, e.node) {
			return
		}
	}
}
