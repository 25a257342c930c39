package core

import "log"

// Point is a place inside a leaf: before the character at Offset.
type Point struct {
	Object NodeID
	Offset int
}

// Repoint records that references to From must now refer to To, with
// Delta added to their offset.
type Repoint struct {
	From  NodeID
	To    NodeID
	Delta int
}

// Apply moves p when it references the removed node.
func (r Repoint) Apply(p *Point) bool {
	if p == nil || p.Object != r.From {
		return false
	}
	p.Object = r.To
	p.Offset += r.Delta
	return true
}

// Split cuts the tree at (leaf, offset). Level 1 splits the leaf only;
// every further level also splits the next ancestor, moving everything
// right of the cut into a copy of that ancestor. Both lists run from the
// leaf upwards and stop early at cells and the root.
//
// Atomic leaves are not cut: an empty text run is added on the open side
// and becomes the edge of the split.
func (d *Document) Split(leaf NodeID, offset int, level int) (left, right []NodeID) {
	if !d.Valid(leaf) || !isLeaf(d.Kind(leaf)) {
		log.Printf("cannot split node %d", leaf)
		return nil, nil
	}
	flow := d.Parent(leaf)
	if d.Kind(flow) != KindFlow {
		log.Println("object is not contained in a flow")
		return nil, nil
	}
	d.dropSlaves(flow)

	var l, r NodeID
	if obj := d.nodes[leaf].obj.split(offset); obj != nil {
		l, r = leaf, d.alloc(obj)
		d.AppendAfter(flow, r, leaf)
	} else {
		empty := d.NewText("", TextStyle{})
		if offset <= 0 {
			d.AppendAfter(flow, empty, d.Prev(leaf))
			l, r = empty, leaf
		} else {
			d.AppendAfter(flow, empty, leaf)
			l, r = leaf, empty
		}
	}
	left = append(left, l)
	right = append(right, r)

	for i := 1; i < level; i++ {
		parent := d.Parent(left[i-1])
		if !d.splittable(parent) {
			break
		}
		cp := d.alloc(d.nodes[parent].obj.dup())
		d.AppendAfter(d.Parent(parent), cp, parent)
		d.dropSlaves(parent)
		d.moveChildren(right[i-1], cp)
		left = append(left, parent)
		right = append(right, cp)
	}
	return left, right
}

func (d *Document) splittable(id NodeID) bool {
	switch d.Kind(id) {
	case KindFlow:
		return d.Parent(id) != NoNode
	case KindBox:
		// The root and detached fragments keep their identity.
		return d.Parent(id) != NoNode && d.Kind(d.Parent(id)) != KindTable
	}
	return false
}

func (d *Document) mergeable(a, b NodeID) bool {
	if !d.Valid(a) || !d.Valid(b) || a == b || d.Kind(a) != d.Kind(b) {
		return false
	}
	return d.Kind(a) == KindFlow || d.Kind(a) == KindBox
}

// Merge joins right into left. Text runs merge when their styles match;
// flows and boxes always merge. It reports whether right was consumed.
func (d *Document) Merge(left, right NodeID) bool {
	if !d.Valid(left) || !d.Valid(right) || left == right || d.Kind(left) != d.Kind(right) {
		return false
	}

	switch d.Kind(left) {
	case KindText:
		if !d.nodes[left].obj.merge(d.nodes[right].obj) {
			return false
		}
		d.dropSlaves(d.Parent(left))
		d.dropSlaves(d.Parent(right))
		d.Destroy(right)
		return true

	case KindFlow, KindBox:
		if !d.nodes[left].obj.merge(d.nodes[right].obj) {
			return false
		}
		d.dropSlaves(left)
		d.moveChildren(d.Head(right), left)
		d.Destroy(right)
		return true
	}
	return false
}

// canDrop reports whether removing x keeps its container non-empty, or the
// container is about to be merged anyway.
func (d *Document) canDrop(x NodeID, parentMerges bool) bool {
	return d.PrevNotSlave(x) != NoNode || d.NextNotSlave(x) != NoNode || parentMerges
}

// removeEmptyAndMerge repairs the seam between two split lists. At every
// level it drops an empty text on either side or, when merge is set, joins
// the two nodes. Points that referenced removed nodes are moved and the
// moves are returned.
func (d *Document) removeEmptyAndMerge(merge bool, left, right []NodeID, points ...*Point) []Repoint {
	var moves []Repoint
	apply := func(r Repoint) {
		moves = append(moves, r)
		for _, p := range points {
			r.Apply(p)
		}
	}

	n := min(len(left), len(right))
	for i := range n {
		l, r := left[i], right[i]
		if !d.Valid(l) || !d.Valid(r) || l == r {
			continue
		}
		parentsMerge := merge && i+1 < n && d.mergeable(left[i+1], right[i+1])

		if d.isEmptyText(l) && (d.PrevNotSlave(l) != NoNode || merge) && d.canDrop(l, parentsMerge) {
			apply(Repoint{From: l, To: r})
			d.dropSlaves(d.Parent(l))
			d.Destroy(l)
			continue
		}

		if d.isEmptyText(r) && (d.NextNotSlave(r) != NoNode || merge) && d.canDrop(r, parentsMerge) {
			apply(Repoint{From: r, To: l, Delta: d.leafLength(l)})
			d.dropSlaves(d.Parent(r))
			d.Destroy(r)
			continue
		}

		// A failed text merge does not stop the paragraphs from joining.
		if merge {
			delta := d.leafLength(l)
			if d.Merge(l, r) {
				apply(Repoint{From: r, To: l, Delta: delta})
			}
		}
	}

	// Joining the containers can bring equal runs, or an empty run and
	// its new neighbours, together at the leaf seam.
	if merge && n > 0 {
		d.tidySeam(left[0], apply)
		d.tidySeam(right[0], apply)
	}
	return moves
}

// tidySeam joins the text run x with equal runs beside it and drops it
// when it is empty and no longer alone in its flow.
func (d *Document) tidySeam(x NodeID, apply func(Repoint)) {
	for d.Kind(x) == KindText && d.Kind(d.Parent(x)) == KindFlow {
		p, n := d.PrevNotSlave(x), d.NextNotSlave(x)
		if d.Kind(p) == KindText {
			delta := d.leafLength(p)
			if d.Merge(p, x) {
				apply(Repoint{From: x, To: p, Delta: delta})
				x = p
				continue
			}
		}
		if d.Kind(n) == KindText {
			delta := d.leafLength(x)
			if d.Merge(x, n) {
				apply(Repoint{From: n, To: x, Delta: delta})
				continue
			}
		}
		if !d.isEmptyText(x) {
			return
		}

		var move Repoint
		switch {
		case p != NoNode:
			move = Repoint{From: x, To: p, Delta: d.leafLength(p)}
		case n != NoNode:
			move = Repoint{From: x, To: n}
		default:
			return
		}
		apply(move)
		d.dropSlaves(d.Parent(x))
		d.Destroy(x)
		x = move.To
	}
}
