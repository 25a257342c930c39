package core

// Table is a grid of cells. A spanning cell fills every slot of its span
// rectangle; the slot matching the cell's own row and column is its
// origin, the others are aliases.
type Table struct {
	cells     [][]NodeID // allocRows rows of totalCols slots
	totalRows int
	totalCols int
	allocRows int

	SpecifiedWidth int // Fixed width, 0 when the table is elastic
	Percent        int // Width as a percentage of the available width
	Padding        int
	Spacing        int
	Border         int
	BgColor        string

	columnMin   []int
	columnPref  []int
	columnFixed []int
	columnOpt   []int
	rowHeights  []int
}

func newTable(width, percent, padding, spacing, border int) *Table {
	t := &Table{
		totalRows:      1,
		totalCols:      1,
		allocRows:      5,
		SpecifiedWidth: width,
		Percent:        percent,
		Padding:        padding,
		Spacing:        spacing,
		Border:         border,
	}
	t.cells = make([][]NodeID, t.allocRows)
	for r := range t.cells {
		t.cells[r] = emptySlots(t.totalCols)
	}
	return t
}

// NewTable allocates a detached 1x1 table without cells. Fill it with a
// TableBuilder.
func (d *Document) NewTable(width, percent, padding, spacing, border int) NodeID {
	return d.alloc(newTable(width, percent, padding, spacing, border))
}

func emptySlots(n int) []NodeID {
	s := make([]NodeID, n)
	for i := range s {
		s[i] = NoNode
	}
	return s
}

func (t *Table) Kind() Kind {
	return KindTable
}

func (t *Table) Length() int {
	return 1
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return t.totalRows
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return t.totalCols
}

// Cell returns the cell covering slot (r, c), or NoNode.
func (t *Table) Cell(r, c int) NodeID {
	if r < 0 || c < 0 || r >= t.totalRows || c >= t.totalCols {
		return NoNode
	}
	return t.cells[r][c]
}

// ColumnWidths returns the widths of the columns of the last layout.
func (t *Table) ColumnWidths() []int {
	if len(t.columnOpt) != t.totalCols+1 {
		return nil
	}
	out := make([]int, t.totalCols)
	extra := t.Spacing + t.borderExtra()
	for c := range out {
		out[c] = t.columnOpt[c+1] - t.columnOpt[c] - extra
	}
	return out
}

func (t *Table) dup() Object {
	cp := *t
	cp.cells = make([][]NodeID, t.allocRows)
	for r := range cp.cells {
		cp.cells[r] = emptySlots(t.totalCols)
	}
	cp.columnMin, cp.columnPref, cp.columnFixed, cp.columnOpt, cp.rowHeights = nil, nil, nil, nil, nil
	return &cp
}

func (t *Table) split(offset int) Object {
	return nil
}

func (t *Table) merge(right Object) bool {
	return false
}

// --- Grid allocation ---

func (t *Table) incColumns(num int) {
	for r := range t.cells {
		t.cells[r] = append(t.cells[r], emptySlots(num)...)
	}
	t.totalCols += num
}

func (t *Table) incRows(num int) {
	if t.totalRows+num > t.allocRows {
		grow := num + max(10, t.allocRows>>2)
		for range grow {
			t.cells = append(t.cells, emptySlots(t.totalCols))
		}
		t.allocRows += grow
	}
	t.totalRows += num
}

func (t *Table) allocCell(r, c int) {
	if c >= t.totalCols {
		t.incColumns(c + 1 - t.totalCols)
	}
	if r >= t.totalRows {
		t.incRows(r + 1 - t.totalRows)
	}
}

func (t *Table) setCell(d *Document, table NodeID, r, c int, cell NodeID) {
	if t.cells[r][c] == NoNode {
		t.cells[r][c] = cell
		d.nodes[cell].parent = table
	}
}

// doCspan fills the aliases of cell on row, starting at column col.
func (t *Table) doCspan(d *Document, table NodeID, row, col int, cell NodeID) {
	tc := d.cell(cell)
	for i := col - tc.col; i < tc.cspan && tc.col+i < t.totalCols; i++ {
		t.setCell(d, table, row, tc.col+i, cell)
	}
}

// doRspan copies onto row the cells of the row above whose span reaches it.
func (t *Table) doRspan(d *Document, table NodeID, row int) {
	if row <= 0 {
		return
	}
	for c := 0; c < t.totalCols; c++ {
		cell := t.cells[row-1][c]
		if cell == NoNode {
			continue
		}
		tc := d.cell(cell)
		if tc.row+tc.rspan > row {
			t.setCell(d, table, row, c, cell)
		}
	}
}

// placeCell writes cell into every slot of its span rectangle.
func (t *Table) placeCell(d *Document, table, cell NodeID) {
	tc := d.cell(cell)
	t.allocCell(tc.row+tc.rspan-1, tc.col+tc.cspan-1)
	for r := tc.row; r < tc.row+tc.rspan; r++ {
		if r == tc.row {
			t.setCell(d, table, r, tc.col, cell)
		} else {
			t.doRspan(d, table, r)
		}
		t.doCspan(d, table, r, tc.col, cell)
	}
}

func (t *Table) clearCell(cell NodeID) {
	for r := 0; r < t.totalRows; r++ {
		for c := 0; c < t.totalCols; c++ {
			if t.cells[r][c] == cell {
				t.cells[r][c] = NoNode
			}
		}
	}
}

func (t *Table) isOrigin(d *Document, r, c int) bool {
	id := t.cells[r][c]
	if id == NoNode {
		return false
	}
	tc := d.cell(id)
	return tc.row == r && tc.col == c
}

// originCells lists every cell once, in row-major order of origins.
func (t *Table) originCells(d *Document) []NodeID {
	var out []NodeID
	for r := 0; r < t.totalRows; r++ {
		for c := 0; c < t.totalCols; c++ {
			if t.isOrigin(d, r, c) {
				out = append(out, t.cells[r][c])
			}
		}
	}
	return out
}

// rebuild clears the grid and places cells again from their coordinates.
func (t *Table) rebuild(d *Document, table NodeID, cells []NodeID) {
	if t.totalRows > t.allocRows {
		t.allocRows = t.totalRows + max(10, t.allocRows>>2)
	}
	t.cells = make([][]NodeID, t.allocRows)
	for r := range t.cells {
		t.cells[r] = emptySlots(t.totalCols)
	}
	for _, cell := range cells {
		tc := d.cell(cell)
		for r := tc.row; r < tc.row+tc.rspan && r < t.totalRows; r++ {
			for c := tc.col; c < tc.col+tc.cspan && c < t.totalCols; c++ {
				t.setCell(d, table, r, c, cell)
			}
		}
	}
	d.carets = nil
}

// --- Traversal over origin slots ---

func (t *Table) headCell(d *Document) NodeID {
	for r := 0; r < t.totalRows; r++ {
		for c := 0; c < t.totalCols; c++ {
			if t.isOrigin(d, r, c) {
				return t.cells[r][c]
			}
		}
	}
	return NoNode
}

func (t *Table) tailCell(d *Document) NodeID {
	for r := t.totalRows - 1; r >= 0; r-- {
		for c := t.totalCols - 1; c >= 0; c-- {
			if t.isOrigin(d, r, c) {
				return t.cells[r][c]
			}
		}
	}
	return NoNode
}

func (t *Table) nextCell(d *Document, cell NodeID) NodeID {
	tc := d.cell(cell)
	r, c := tc.row, tc.col+1
	for ; r < t.totalRows; r++ {
		for ; c < t.totalCols; c++ {
			if t.isOrigin(d, r, c) {
				return t.cells[r][c]
			}
		}
		c = 0
	}
	return NoNode
}

func (t *Table) prevCell(d *Document, cell NodeID) NodeID {
	tc := d.cell(cell)
	r, c := tc.row, tc.col-1
	for ; r >= 0; r-- {
		for ; c >= 0; c-- {
			if t.isOrigin(d, r, c) {
				return t.cells[r][c]
			}
		}
		c = t.totalCols - 1
	}
	return NoNode
}

func (d *Document) dupTable(src, dst NodeID) {
	st, dt := d.table(src), d.table(dst)
	for _, cell := range st.originCells(d) {
		cp := d.Dup(cell)
		dt.placeCell(d, dst, cp)
	}
}

// TableBuilder fills a table row by row.
type TableBuilder struct {
	doc   *Document
	table NodeID
	row   int
	col   int
}

// NewTableBuilder starts filling table at its first row.
func (d *Document) NewTableBuilder(table NodeID) *TableBuilder {
	return &TableBuilder{doc: d, table: table}
}

// StartRow moves to the first column of the current row.
func (b *TableBuilder) StartRow() {
	b.col = 0
}

// AddCell places cell at the first free slot of the current row.
func (b *TableBuilder) AddCell(cell NodeID) {
	d := b.doc
	t := d.table(b.table)
	tc := d.cell(cell)
	if t == nil || tc == nil {
		return
	}

	t.allocCell(b.row, b.col)
	for b.col < t.totalCols && t.cells[b.row][b.col] != NoNode {
		b.col++
	}

	tc.row, tc.col = b.row, b.col
	t.placeCell(d, b.table, cell)
	b.col += tc.cspan
}

// EndRow finishes the current row.
func (b *TableBuilder) EndRow() {
	t := b.doc.table(b.table)
	if b.row >= t.totalRows {
		t.incRows(1)
	}
	b.row++
}

// TableCell is one cell of a table: a stack of flows.
type TableCell struct {
	row   int
	col   int
	rspan int
	cspan int

	FixedWidth   int // 0 when the cell is elastic
	PercentWidth int // 0 when no percentage was requested
	Heading      bool
	BgColor      string
}

// NewTableCell allocates a detached cell with the given spans. The cell is
// empty; callers add at least one flow. Cells take their padding from the
// table they are placed in.
func (d *Document) NewTableCell(rspan, cspan int) NodeID {
	return d.alloc(&TableCell{rspan: max(1, rspan), cspan: max(1, cspan)})
}

// newEditableCell builds a cell holding one empty paragraph.
func (d *Document) newEditableCell() NodeID {
	cell := d.NewTableCell(1, 1)
	flow := d.NewFlow(ParagraphNormal)
	d.Append(flow, d.NewText("", TextStyle{}))
	d.Append(cell, flow)
	return cell
}

func (c *TableCell) Kind() Kind {
	return KindTableCell
}

func (c *TableCell) Length() int {
	return 0
}

func (c *TableCell) Row() int     { return c.row }
func (c *TableCell) Col() int     { return c.col }
func (c *TableCell) RowSpan() int { return c.rspan }
func (c *TableCell) ColSpan() int { return c.cspan }

func (c *TableCell) dup() Object {
	cp := *c
	return &cp
}

func (c *TableCell) split(offset int) Object {
	return nil
}

func (c *TableCell) merge(right Object) bool {
	return false
}

func (c *TableCell) calcMinWidth(d *Document, id NodeID) int {
	return max(stackMinWidth(d, id), c.FixedWidth)
}

func (c *TableCell) calcPreferredWidth(d *Document, id NodeID) int {
	return max(stackPreferredWidth(d, id), c.FixedWidth)
}

// fixedWidth is the column requirement of a fixed cell, 0 otherwise.
func (c *TableCell) fixedWidth(d *Document, id NodeID) int {
	return c.FixedWidth
}

// setMaxWidth receives the content width; padding is added around it.
func (c *TableCell) setMaxWidth(d *Document, id NodeID, width int) {
	stackSetMaxWidth(d, id, width)
	d.nodes[id].maxWidth = width + 2*d.cellPadding(id)
}

func (c *TableCell) calcSize(d *Document, id NodeID) {
	stackCalcSize(d, id, d.cellPadding(id))
}

func (c *TableCell) draw(d *Document, id NodeID, dc *drawContext) {
	dc.drawChildren(id)
}

// --- Row and column addressing ---

type axis int

const (
	axisCol axis = iota
	axisRow
)

func (c *TableCell) start(a axis) int {
	if a == axisCol {
		return c.col
	}
	return c.row
}

func (c *TableCell) setStart(a axis, v int) {
	if a == axisCol {
		c.col = v
	} else {
		c.row = v
	}
}

func (c *TableCell) span(a axis) int {
	if a == axisCol {
		return c.cspan
	}
	return c.rspan
}

func (c *TableCell) setSpan(a axis, v int) {
	if a == axisCol {
		c.cspan = v
	} else {
		c.rspan = v
	}
}

func (t *Table) total(a axis) int {
	if a == axisCol {
		return t.totalCols
	}
	return t.totalRows
}

func (t *Table) setTotal(a axis, n int) {
	if a == axisCol {
		t.totalCols = n
	} else {
		t.totalRows = n
	}
}

// slot returns the cell at index i of line k along a.
func (t *Table) slot(a axis, k, i int) NodeID {
	if a == axisCol {
		return t.Cell(i, k)
	}
	return t.Cell(k, i)
}
