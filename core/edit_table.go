package core

import "log"

func (a axis) other() axis {
	if a == axisCol {
		return axisRow
	}
	return axisCol
}

func (a axis) String() string {
	if a == axisCol {
		return "column"
	}
	return "row"
}

// gridSlice is the undo payload of a row or column edit. Detached cells
// keep their coordinates; shortened cells are named by their origin after
// the deletion.
type gridSlice struct {
	doc       *Document
	axis      axis
	index     int
	after     bool
	cells     []NodeID
	shortened [][2]int
}

func (g *gridSlice) Release() {
	for _, c := range g.cells {
		g.doc.Destroy(c)
	}
	g.cells = nil
}

// cursorCell returns the cell and table holding the cursor.
func (e *Engine) cursorCell() (cell, table NodeID) {
	d := e.doc
	for x := d.Parent(e.cursor.Object); x != NoNode; x = d.Parent(x) {
		if d.Kind(x) == KindTableCell {
			return x, d.Parent(x)
		}
	}
	return NoNode, NoNode
}

// CursorTable returns the innermost table holding the cursor, or NoNode.
func (e *Engine) CursorTable() NodeID {
	_, table := e.cursorCell()
	return table
}

func (e *Engine) moveToCell(cell NodeID) {
	leaf := e.doc.HeadLeaf(cell)
	e.markSet = false
	e.cursor.Point = Point{Object: leaf}
	e.cursor.HaveTargetX = false
	e.updatePosition()
}

// NextCell moves the cursor to the start of the following cell of its
// table.
func (e *Engine) NextCell() bool {
	return e.stepCell((*Table).nextCell)
}

// PrevCell moves the cursor to the start of the preceding cell of its
// table.
func (e *Engine) PrevCell() bool {
	return e.stepCell((*Table).prevCell)
}

func (e *Engine) stepCell(step func(t *Table, d *Document, cell NodeID) NodeID) bool {
	cell, table := e.cursorCell()
	if table == NoNode {
		return false
	}
	to := step(e.doc.table(table), e.doc, cell)
	if to == NoNode {
		return false
	}
	e.moveToCell(to)
	e.queueCursorRedraw()
	return true
}

func cellCoord(c *TableCell) [2]int {
	return [2]int{c.row, c.col}
}

// insertLine adds line k along a. Without a slice the new line is filled
// with empty cells and spans crossing k grow; with a slice the detached
// cells and spans of an earlier deletion are restored.
func (d *Document) insertLine(table NodeID, a axis, k int, slice *gridSlice) {
	t := d.table(table)
	cells := t.originCells(d)

	restore := make(map[[2]int]bool)
	if slice != nil {
		for _, s := range slice.shortened {
			restore[s] = true
		}
	}

	for _, id := range cells {
		c := d.cell(id)
		s, sp := c.start(a), c.span(a)
		switch {
		case slice != nil && restore[cellCoord(c)]:
			c.setSpan(a, sp+1)
		case s >= k:
			c.setStart(a, s+1)
		case slice == nil && s+sp > k:
			c.setSpan(a, sp+1)
		}
	}

	t.setTotal(a, t.total(a)+1)
	if slice != nil {
		cells = append(cells, slice.cells...)
		slice.cells = nil
	}
	t.rebuild(d, table, cells)

	if slice != nil {
		return
	}
	for i := 0; i < t.total(a.other()); i++ {
		if t.slot(a, k, i) != NoNode {
			continue
		}
		id := d.newEditableCell()
		c := d.cell(id)
		c.setStart(a, k)
		c.setStart(a.other(), i)
		t.placeCell(d, table, id)
	}
}

// deleteLine removes line k along a. Cells starting on k with a span of
// one are detached, wider spans crossing k shrink.
func (d *Document) deleteLine(table NodeID, a axis, k int) *gridSlice {
	t := d.table(table)
	if t.total(a) < 2 {
		return nil
	}

	slice := &gridSlice{doc: d, axis: a, index: k}
	var keep, shortened []NodeID
	for _, id := range t.originCells(d) {
		c := d.cell(id)
		s, sp := c.start(a), c.span(a)
		switch {
		case s == k && sp == 1:
			d.Remove(id)
			slice.cells = append(slice.cells, id)
			continue
		case s <= k && k < s+sp:
			c.setSpan(a, sp-1)
			shortened = append(shortened, id)
		case s > k:
			c.setStart(a, s-1)
		}
		keep = append(keep, id)
	}

	t.setTotal(a, t.total(a)-1)
	t.rebuild(d, table, keep)
	for _, id := range shortened {
		slice.shortened = append(slice.shortened, cellCoord(d.cell(id)))
	}
	return slice
}

func (e *Engine) insertTableLine(a axis, after bool) bool {
	cell, table := e.cursorCell()
	if table == NoNode {
		return false
	}
	c := e.doc.cell(cell)
	k := c.start(a)
	if after {
		k += c.span(a)
	}

	e.freeze()
	defer e.thaw()
	e.addLine(table, a, k, after, nil, DirUndo)
	return true
}

// addLine inserts line k and records the removal of it.
func (e *Engine) addLine(table NodeID, a axis, k int, after bool, slice *gridSlice, dir UndoDirection) {
	d := e.doc
	d.insertLine(table, a, k, slice)

	t := d.table(table)
	other := 0
	if cell, _ := e.cursorCell(); cell != NoNode && d.Parent(cell) == table {
		other = min(d.cell(cell).start(a.other()), t.total(a.other())-1)
	}
	if slice == nil {
		other = 0
	}
	if target := t.slot(a, k, other); target != NoNode {
		e.moveToCell(target)
	}

	e.undo.Add(&Action{
		Description: "Insert table " + a.String(),
		Position:    e.cursor.Position,
		replay: func(e *Engine, act *Action, dir UndoDirection) {
			if _, table := e.cursorCell(); table != NoNode {
				e.removeLine(table, a, k, after, dir.Reverse())
			}
		},
	}, dir)
}

func (e *Engine) deleteTableLine(a axis) bool {
	cell, table := e.cursorCell()
	if table == NoNode {
		return false
	}
	t := e.doc.table(table)
	if t.total(a) < 2 {
		return false
	}

	e.freeze()
	defer e.thaw()
	return e.removeLine(table, a, e.doc.cell(cell).start(a), false, DirUndo)
}

// removeLine deletes line k and records its restoration.
func (e *Engine) removeLine(table NodeID, a axis, k int, after bool, dir UndoDirection) bool {
	d := e.doc
	other := 0
	if cell, _ := e.cursorCell(); cell != NoNode && d.Parent(cell) == table {
		other = d.cell(cell).start(a.other())
	}

	slice := d.deleteLine(table, a, k)
	if slice == nil {
		log.Printf("cannot delete the last %s", a)
		return false
	}
	slice.after = after

	t := d.table(table)
	target := t.slot(a, min(k, t.total(a)-1), min(other, t.total(a.other())-1))
	if target != NoNode {
		e.moveToCell(target)
	}

	e.undo.Add(&Action{
		Description: "Delete table " + a.String(),
		Position:    e.cursor.Position,
		replay: func(e *Engine, act *Action, dir UndoDirection) {
			g := act.payload.(*gridSlice)
			if _, table := e.cursorCell(); table != NoNode {
				e.addLine(table, g.axis, g.index, g.after, g, dir.Reverse())
			}
		},
		payload: slice,
	}, dir)
	return true
}

// InsertTableRow adds a row above or below the cursor cell.
func (e *Engine) InsertTableRow(after bool) bool {
	return e.insertTableLine(axisRow, after)
}

// InsertTableColumn adds a column left or right of the cursor cell.
func (e *Engine) InsertTableColumn(after bool) bool {
	return e.insertTableLine(axisCol, after)
}

// DeleteTableRow removes the row of the cursor cell. The last row of a
// table is never removed.
func (e *Engine) DeleteTableRow() bool {
	return e.deleteTableLine(axisRow)
}

// DeleteTableColumn removes the column of the cursor cell. The last
// column of a table is never removed.
func (e *Engine) DeleteTableColumn() bool {
	return e.deleteTableLine(axisCol)
}

// InsertTable inserts a rows x cols table of empty cells in a paragraph of
// its own and moves the cursor into its first cell.
func (e *Engine) InsertTable(rows, cols int) bool {
	if rows <= 0 || cols <= 0 {
		return false
	}
	d := e.doc

	e.freeze()
	defer e.thaw()
	e.deleteSelection()

	table := d.NewTable(0, 100, 1, 2, 1)
	b := d.NewTableBuilder(table)
	for range rows {
		b.StartRow()
		for range cols {
			b.AddCell(d.newEditableCell())
		}
		b.EndRow()
	}

	flow := d.flowOf(e.cursor.Point)
	newFlow := func() NodeID {
		if flow == NoNode {
			return d.NewFlow(ParagraphNormal)
		}
		return d.alloc(d.nodes[flow].obj.dup())
	}

	box := d.NewBox()
	p := e.cursor.Point
	if p.Offset > 0 || d.PrevNotSlave(p.Object) != NoNode {
		lead := newFlow()
		d.Append(lead, d.NewText("", e.insertionStyle))
		d.Append(box, lead)
	}
	own := d.NewFlow(ParagraphNormal)
	d.Append(own, table)
	d.Append(box, own)
	trail := newFlow()
	d.Append(trail, d.NewText("", e.insertionStyle))
	d.Append(box, trail)

	if !e.insertObject(box, DirUndo) {
		return false
	}
	e.moveToCell(d.Head(table))
	return true
}

// InsertTable11 inserts a table with a single cell.
func (e *Engine) InsertTable11() bool {
	return e.InsertTable(1, 1)
}

// SetBorderWidth changes the border of the table holding the cursor. A
// relative change adds width to the current border.
func (e *Engine) SetBorderWidth(width int, relative bool) bool {
	_, table := e.cursorCell()
	if table == NoNode {
		return false
	}
	t := e.doc.table(table)
	if relative {
		width += t.Border
	}
	width = max(0, width)
	if width == t.Border {
		return false
	}

	e.freeze()
	defer e.thaw()
	e.setBorder(table, width, DirUndo)
	return true
}

func (e *Engine) setBorder(table NodeID, width int, dir UndoDirection) {
	t := e.doc.table(table)
	old := t.Border
	t.Border = width
	e.undo.Add(&Action{
		Description: "Set table border",
		Position:    e.cursor.Position,
		replay: func(e *Engine, a *Action, dir UndoDirection) {
			if _, table := e.cursorCell(); table != NoNode {
				e.setBorder(table, old, dir.Reverse())
			}
		},
	}, dir)
}
