package collector

import "github.com/leoluk/replay_counters/replay"

// DrawIndex maps event ids to draw events and remembers the order in which
// events were added.
type DrawIndex struct {
	order  []uint32
	events map[uint32]*replay.DrawEvent
}

func NewDrawIndex() *DrawIndex {
	return &DrawIndex{events: make(map[uint32]*replay.DrawEvent)}
}

// Add stores d under its event id. Re-adding an id replaces the event but
// keeps its original position.
func (idx *DrawIndex) Add(d *replay.DrawEvent) {
	if _, ok := idx.events[d.EventID]; !ok {
		idx.order = append(idx.order, d.EventID)
	}
	idx.events[d.EventID] = d
}

func (idx *DrawIndex) Get(eventID uint32) (*replay.DrawEvent, bool) {
	d, ok := idx.events[eventID]
	return d, ok
}

func (idx *DrawIndex) Len() int {
	return len(idx.order)
}

// EventIDs returns the indexed ids in insertion order.
func (idx *DrawIndex) EventIDs() []uint32 {
	return append([]uint32(nil), idx.order...)
}

// Each calls fn for every event in insertion order.
func (idx *DrawIndex) Each(fn func(d *replay.DrawEvent)) {
	for _, id := range idx.order {
		fn(idx.events[id])
	}
}

// IndexDraws flattens the controller's draw tree in depth-first preorder.
func IndexDraws(ctrl replay.Controller) *DrawIndex {
	return IndexDrawTree(ctrl.GetDrawcalls())
}

// IndexDrawTree flattens roots in depth-first preorder. Parents are added
// before their children and siblings keep their order.
func IndexDrawTree(roots []*replay.DrawEvent) *DrawIndex {
	idx := NewDrawIndex()

	stack := make([]*replay.DrawEvent, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		d := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if d == nil {
			continue
		}

		idx.Add(d)

		for i := len(d.Children) - 1; i >= 0; i-- {
			stack = append(stack, d.Children[i])
		}
	}

	return idx
}
