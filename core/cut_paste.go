package core

import "log"

// pointRight moves a point sitting at the end of a leaf to the start of
// the next leaf of the same flow.
func (d *Document) pointRight(p Point) Point {
	if p.Offset < d.leafLength(p.Object) {
		return p
	}
	if n := d.NextNotSlave(p.Object); n != NoNode {
		return Point{Object: n}
	}
	return p
}

// commonAncestor returns the lowest node holding both a and b.
func (d *Document) commonAncestor(a, b NodeID) NodeID {
	seen := make(map[NodeID]bool)
	for x := a; x != NoNode; x = d.Parent(x) {
		seen[x] = true
	}
	for x := b; x != NoNode; x = d.Parent(x) {
		if seen[x] {
			return x
		}
	}
	return NoNode
}

// widenTables grows [from, to] so that every table it touches is covered
// whole or not at all. A table holding both ends is left alone unless the
// ends sit in different cells.
func (d *Document) widenTables(from, to int) (int, int) {
	a, b := d.Locate(from), d.Locate(to)
	if !d.Valid(a.Object) || !d.Valid(b.Object) {
		return from, to
	}
	ctx := d.commonAncestor(a.Object, b.Object)

	topTable := func(leaf NodeID) NodeID {
		top := NoNode
		if leaf == ctx {
			return top
		}
		for x := d.Parent(leaf); x != NoNode && x != ctx; x = d.Parent(x) {
			if d.Kind(x) == KindTable {
				top = x
			}
		}
		return top
	}

	ta, tb := topTable(a.Object), topTable(b.Object)
	if d.Kind(ctx) == KindTable {
		ta, tb = ctx, ctx
	}
	if ta != NoNode {
		from = d.PositionOf(Point{Object: ta})
	}
	if tb != NoNode {
		to = d.PositionOf(Point{Object: tb, Offset: 1})
	}
	return from, to
}

// pruneEmpty drops empty text runs that are not alone in their flow.
func (d *Document) pruneEmpty(id NodeID) {
	switch d.Kind(id) {
	case KindFlow:
		for _, c := range d.Children(id) {
			if d.isEmptyText(c) && len(d.Children(id)) > 1 {
				d.Destroy(c)
			}
		}
	case KindBox:
		for _, f := range d.Children(id) {
			d.pruneEmpty(f)
		}
	}
}

// removeRange cuts the positions [from, to) out of the document and
// returns them as a fragment. The cursor is left at from. Nothing is
// recorded in the history.
func (e *Engine) removeRange(from, to int) *Fragment {
	d := e.doc
	if from > to {
		from, to = to, from
	}
	from, to = d.widenTables(from, to)
	if from == to {
		return nil
	}

	a := d.pointRight(d.Locate(from))
	b := d.Locate(to)
	fa, fb := d.flowOf(a), d.flowOf(b)
	if fa == NoNode || fb == NoNode {
		log.Println("object is not contained in a flow")
		return nil
	}

	var root NodeID
	var left, right []NodeID

	if fa == fb {
		l, r := d.Split(a.Object, a.Offset, 1)
		if b.Object == a.Object {
			b = Point{Object: r[0], Offset: b.Offset - a.Offset}
		}
		bl, br := d.Split(b.Object, b.Offset, 1)

		root = d.alloc(d.nodes[fa].obj.dup())
		for c := r[0]; c != NoNode; {
			next := d.NextNotSlave(c)
			d.Append(root, c)
			if c == bl[0] {
				break
			}
			c = next
		}
		left, right = l[:1], br[:1]
	} else {
		l, r := d.Split(a.Object, a.Offset, 2)
		bl, br := d.Split(b.Object, b.Offset, 2)
		if len(l) < 2 || len(bl) < 2 {
			log.Println("cannot split the selection into paragraphs")
			return nil
		}

		root = d.NewBox()
		for f := r[1]; f != NoNode; {
			next := d.Next(f)
			d.Append(root, f)
			if f == bl[1] {
				break
			}
			f = next
		}
		left, right = l, br
	}

	e.markSet = false
	e.cursor.Point = Point{Object: left[0], Offset: d.leafLength(left[0])}
	d.removeEmptyAndMerge(true, left, right, &e.cursor.Point)
	d.pruneEmpty(root)
	e.updatePosition()

	return newFragment(d, root, to-from)
}

// deleteRange removes [from, to) and records the removal. The returned
// fragment belongs to the recorded action.
func (e *Engine) deleteRange(from, to int, dir UndoDirection) *Fragment {
	frag := e.removeRange(from, to)
	if frag == nil {
		return nil
	}
	e.undo.Add(&Action{
		Description: "Delete",
		Position:    e.cursor.Position,
		replay:      replayDelete,
		payload:     frag,
	}, dir)
	return frag
}

func replayDelete(e *Engine, a *Action, dir UndoDirection) {
	frag := a.payload.(*Fragment)
	e.insertObject(frag.take(), dir.Reverse())
}

// deleteSelection removes the selection, if any.
func (e *Engine) deleteSelection() bool {
	from, to, ok := e.Selection()
	if !ok {
		return false
	}
	e.markSet = false
	return e.deleteRange(from.Position, to.Position, DirUndo) != nil
}

// Delete removes the selection. It reports false when nothing is selected.
func (e *Engine) Delete() bool {
	if !e.SelectionActive() {
		return false
	}
	e.freeze()
	defer e.thaw()
	return e.deleteSelection()
}

// Cut removes the selection and keeps it in the clipboard.
func (e *Engine) Cut() bool {
	from, to, ok := e.Selection()
	if !ok {
		return false
	}
	e.freeze()
	defer e.thaw()

	e.markSet = false
	frag := e.deleteRange(from.Position, to.Position, DirUndo)
	if frag == nil {
		return false
	}
	e.setClipboard(frag.Retain())
	e.exportClipboard()
	return true
}

// Copy puts a copy of the selection in the clipboard.
func (e *Engine) Copy() bool {
	from, to, ok := e.Selection()
	if !ok {
		return false
	}
	frag := e.copyRange(from.Position, to.Position)
	if frag == nil {
		return false
	}
	e.setClipboard(frag)
	e.exportClipboard()
	return true
}

// Paste replaces the selection with the clipboard. Without document
// clipboard contents the system clipboard text is pasted instead.
func (e *Engine) Paste() bool {
	if e.clipboard == nil || !e.doc.Valid(e.clipboard.root) {
		if e.system == nil {
			return false
		}
		text, err := e.system.Read()
		if err != nil {
			log.Printf("cannot read the clipboard: %v", err)
			return false
		}
		return e.PasteText(text) > 0
	}

	e.freeze()
	defer e.thaw()

	obj := e.doc.Dup(e.clipboard.root)
	e.deleteSelection()
	return e.insertObject(obj, DirUndo)
}

// Clipboard returns the document clipboard, or nil.
func (e *Engine) Clipboard() *Fragment {
	return e.clipboard
}

func (e *Engine) setClipboard(f *Fragment) {
	if e.clipboard != nil {
		e.clipboard.Release()
	}
	e.clipboard = f
}

func (e *Engine) exportClipboard() {
	if e.system == nil || e.clipboard == nil {
		return
	}
	if err := e.system.Write(PlainText(e.doc, e.clipboard.root)); err != nil {
		log.Printf("cannot write the clipboard: %v", err)
	}
}

// copyRange copies [from, to) into a detached fragment without touching
// the document.
func (e *Engine) copyRange(from, to int) *Fragment {
	d := e.doc
	if from > to {
		from, to = to, from
	}
	from, to = d.widenTables(from, to)
	if from == to {
		return nil
	}

	a := d.pointRight(d.Locate(from))
	b := d.Locate(to)
	fa, fb := d.flowOf(a), d.flowOf(b)
	if fa == NoNode || fb == NoNode {
		log.Println("object is not contained in a flow")
		return nil
	}

	startA, startB := d.flowStart(fa), d.flowStart(fb)
	var root NodeID
	if fa == fb {
		root = d.copyFlowPart(fa, from-startA, to-startA)
	} else {
		root = d.NewBox()
		d.Append(root, d.copyFlowPart(fa, from-startA, d.RecursiveLength(fa)))
		for f := d.Next(fa); f != NoNode && f != fb; f = d.Next(f) {
			d.Append(root, d.Dup(f))
		}
		d.Append(root, d.copyFlowPart(fb, 0, to-startB))
	}
	return newFragment(d, root, to-from)
}

func (d *Document) flowStart(flow NodeID) int {
	return d.PositionOf(Point{Object: d.HeadNotSlave(flow)})
}

// copyFlowPart copies the positions [s, t) of flow, counted from the
// start of the flow.
func (d *Document) copyFlowPart(flow NodeID, s, t int) NodeID {
	cp := d.alloc(d.nodes[flow].obj.dup())
	pos := 0
	for c := d.HeadNotSlave(flow); c != NoNode; c = d.NextNotSlave(c) {
		l := d.RecursiveLength(c)
		from, to := max(s, pos), min(t, pos+l)
		switch {
		case from >= to:
		case d.Kind(c) == KindText:
			tx := d.text(c)
			d.Append(cp, d.NewText(tx.Slice(from-pos, to-pos), tx.Style))
		case from == pos && to == pos+l:
			d.Append(cp, d.Dup(c))
		}
		pos += l
	}
	if d.Head(cp) == NoNode {
		style := TextStyle{}
		if tx := d.text(d.HeadNotSlave(flow)); tx != nil {
			style = tx.Style
		}
		d.Append(cp, d.NewText("", style))
	}
	return cp
}

// payloadLevel is the number of levels between the leaves of obj and obj.
func (d *Document) payloadLevel(obj NodeID) int {
	switch d.Kind(obj) {
	case KindFlow:
		return 2
	case KindBox:
		return 3
	}
	return 1
}

// spliceObject inserts obj at the cursor and joins it with its
// surroundings. The cursor ends after the inserted content. It returns the
// number of positions added.
func (e *Engine) spliceObject(obj NodeID) int {
	d := e.doc
	if !d.Valid(obj) || d.Parent(obj) != NoNode {
		log.Printf("cannot insert node %d", obj)
		return 0
	}
	if d.Kind(obj) == KindBox && d.Head(obj) == NoNode {
		d.Destroy(obj)
		return 0
	}

	length := d.RecursiveLength(obj)
	level := d.payloadLevel(obj)
	p := e.cursor.Point

	left, right := d.Split(p.Object, p.Offset, min(level, 2))
	if len(left) < min(level, 2) {
		log.Println("object is not contained in a flow")
		d.removeEmptyAndMerge(true, left, right)
		d.Destroy(obj)
		return 0
	}

	var first, last []NodeID
	switch level {
	case 1:
		d.AppendAfter(d.Parent(left[0]), obj, left[0])
		first, last = []NodeID{obj}, []NodeID{obj}
	case 2:
		d.AppendAfter(d.Parent(left[1]), obj, left[1])
		first = []NodeID{d.HeadNotSlave(obj), obj}
		last = []NodeID{d.TailNotSlave(obj), obj}
	case 3:
		flows := d.Children(obj)
		after := left[1]
		for _, f := range flows {
			d.AppendAfter(d.Parent(left[1]), f, after)
			after = f
		}
		d.Destroy(obj)
		head, tail := flows[0], flows[len(flows)-1]
		first = []NodeID{d.HeadNotSlave(head), head}
		last = []NodeID{d.TailNotSlave(tail), tail}
	}

	e.markSet = false
	e.cursor.Point = Point{Object: last[0], Offset: d.leafLength(last[0])}
	d.removeEmptyAndMerge(true, last, right, &e.cursor.Point)
	d.removeEmptyAndMerge(true, left, first, &e.cursor.Point)
	e.updatePosition()
	return length
}

// insertObject splices obj at the cursor and records the insertion.
func (e *Engine) insertObject(obj NodeID, dir UndoDirection) bool {
	length := e.spliceObject(obj)
	if length == 0 {
		return false
	}
	e.undo.Add(&Action{
		Description: "Insert",
		Position:    e.cursor.Position,
		replay:      replayInsert(length),
	}, dir)
	return true
}

func replayInsert(length int) func(*Engine, *Action, UndoDirection) {
	return func(e *Engine, a *Action, dir UndoDirection) {
		e.deleteRange(a.Position-length, a.Position, dir.Reverse())
	}
}

// InsertObject inserts a detached leaf, flow or box at the cursor,
// replacing the selection. The object becomes part of the document.
func (e *Engine) InsertObject(obj NodeID) bool {
	e.freeze()
	defer e.thaw()
	e.deleteSelection()
	return e.insertObject(obj, DirUndo)
}
