package core

// Column boundaries are cumulative: column c spans [arr[c], arr[c+1]).
// Every proportional split below rounds to the nearest integer and works
// on cumulative sums, so the parts always add up to the whole.

type cellWidthFunc func(d *Document, id NodeID) int

func cellMinWidth(d *Document, id NodeID) int {
	return d.Object(id).calcMinWidth(d, id)
}

func cellPreferredWidth(d *Document, id NodeID) int {
	return d.Object(id).calcPreferredWidth(d, id)
}

func cellFixedWidth(d *Document, id NodeID) int {
	return d.cell(id).fixedWidth(d, id)
}

// proportion returns total*num/den rounded to the nearest integer.
func proportion(total, num, den int) int {
	q := total * num / den
	if total*num-q*den > (q+1)*den-total*num {
		q++
	}
	return q
}

func (t *Table) borderExtra() int {
	if t.Border > 0 {
		return 2
	}
	return 0
}

func (t *Table) cellSpace() int {
	return t.Spacing + t.borderExtra()
}

func (t *Table) fixed() bool {
	return t.SpecifiedWidth > 0
}

func (d *Document) cellPadding(cell NodeID) int {
	if t := d.table(d.Parent(cell)); t != nil {
		return t.Padding
	}
	return 0
}

// columnWidthStep collects the requirements of the cells spanning exactly
// span columns. Each requirement is split over its columns in proportion
// to the boundaries in ref, or evenly when ref gives the span no width.
// It reports whether a wider span is still to come.
func (t *Table) columnWidthStep(d *Document, ref, sizes []int, fn cellWidthFunc, span int) bool {
	greater := false
	n := t.totalCols

	for c := 0; c < n-span+1; c++ {
		for r := 0; r < t.totalRows; r++ {
			if !t.isOrigin(d, r, c) {
				continue
			}
			id := t.cells[r][c]
			cell := d.cell(id)

			cspan := min(cell.cspan, n-cell.col)
			if cspan > span {
				greater = true
			}
			if cspan != span {
				continue
			}

			colWidth := fn(d, id) + 2*t.Padding - (span-1)*(2*t.Padding+t.Spacing+t.borderExtra())
			if colWidth <= 0 {
				continue
			}

			spanWidth := ref[c+span] - ref[c]
			added := 0
			for i := range span {
				var cum int
				if spanWidth > 0 {
					cum = proportion(colWidth, ref[c+i+1]-ref[c], spanWidth)
				} else {
					cum = proportion(colWidth, i+1, span)
				}
				w := cum - added
				added = cum
				sizes[c+i] = max(sizes[c+i], w)
			}
		}
	}
	return greater
}

// columnWidthTemplate computes column boundaries from per-cell widths,
// narrow spans first. A nil ref splits spans by the boundaries being
// built. trace, when set, sees the boundaries after every span.
func (t *Table) columnWidthTemplate(d *Document, fn cellWidthFunc, ref []int, trace func(span int, bounds []int)) []int {
	n := t.totalCols
	arr := make([]int, n+1)
	for c := range arr {
		arr[c] = t.Border + t.Spacing
	}

	next := true
	for span := 1; span <= n && next; span++ {
		sizes := make([]int, n)
		r := ref
		if r == nil {
			r = arr
		}
		next = t.columnWidthStep(d, r, sizes, fn, span)

		add := 0
		for c := range n {
			arr[c+1] += add
			if arr[c+1]-arr[c] < sizes[c] {
				add += sizes[c] - (arr[c+1] - arr[c])
				arr[c+1] = arr[c] + sizes[c]
			}
		}
		if trace != nil {
			trace(span, append([]int(nil), arr...))
		}
	}

	space := t.cellSpace()
	for c := range n {
		arr[c+1] += (c + 1) * space
	}
	return arr
}

func (t *Table) calcMinWidth(d *Document, id NodeID) int {
	t.columnMin = t.columnWidthTemplate(d, cellMinWidth, nil, nil)
	w := t.columnMin[t.totalCols] + t.Border
	if t.fixed() {
		w = max(t.SpecifiedWidth, w)
	}
	return w
}

func (t *Table) calcPreferredWidth(d *Document, id NodeID) int {
	t.columnPref = t.columnWidthTemplate(d, cellPreferredWidth, nil, nil)
	t.columnFixed = t.columnWidthTemplate(d, cellFixedWidth, t.columnPref, nil)
	if t.fixed() {
		return max(t.SpecifiedWidth, t.calcMinWidth(d, id))
	}
	return t.columnPref[t.totalCols] + t.Border
}

// setMaxWidth assigns the table its width and spreads it over the columns.
func (t *Table) setMaxWidth(d *Document, id NodeID, maxWidth int) {
	minWidth := t.calcMinWidth(d, id)
	prefWidth := t.calcPreferredWidth(d, id)
	d.nodes[id].maxWidth = maxWidth

	var width int
	switch {
	case t.fixed():
		width = t.SpecifiedWidth
	case t.Percent > 0:
		width = max(min(100, t.Percent)*maxWidth/100, minWidth)
	default:
		width = min(prefWidth, maxWidth)
	}
	width = max(width, minWidth)

	n := t.totalCols
	glue := 2*t.Border + (n+1)*t.Spacing + n*t.borderExtra()

	maxSize := make([]int, n)
	for c := range n {
		maxSize[c] = t.columnMin[c+1] - t.columnMin[c] - t.cellSpace()
	}

	t.divideLeftWidth(d, maxSize, width-glue, width-t.columnMin[n]-t.Border)
	t.setCellsMaxWidth(d, maxSize)
	t.setColumnsOptimalWidth(maxSize)
}

func (t *Table) perc(colPercent []int, c int) int {
	return colPercent[c+1] - colPercent[c]
}

// calcPercentageStep spreads the percentages of cells spanning exactly
// span columns. Columns without a percentage take the missing part first.
func (t *Table) calcPercentageStep(d *Document, colPercent, spanPercent []int, span int) bool {
	higher := false
	n := t.totalCols

	for c := range n {
		for r := 0; r < t.totalRows; r++ {
			if !t.isOrigin(d, r, c) {
				continue
			}
			cell := d.cell(t.cells[r][c])
			if cell.FixedWidth > 0 || cell.PercentWidth <= 0 {
				continue
			}

			cspan := min(cell.cspan, n-cell.col)
			if cspan > span {
				higher = true
			}
			if cspan != span {
				continue
			}

			cl := c + cspan
			have := colPercent[cl] - colPercent[c]
			if have >= cell.PercentWidth {
				continue
			}

			notPercented := 0
			for cp := range span {
				if t.perc(colPercent, c+cp) == 0 {
					notPercented++
				}
			}

			pleft := cell.PercentWidth - have
			np, cum, added := 0, 0, 0
			for cp := range span {
				if notPercented > 0 {
					if t.perc(colPercent, c+cp) == 0 {
						np++
						cum = proportion(pleft, np, notPercented)
					}
				} else {
					cum = proportion(pleft, colPercent[c+cp+1]-colPercent[c], have)
				}
				part := cum - added
				added = cum
				spanPercent[c+cp] = max(spanPercent[c+cp], t.perc(colPercent, c+cp)+part)
			}
		}
	}
	return higher
}

func (t *Table) calcColPercentage(d *Document, colPercent []int) {
	n := t.totalCols
	next := true
	for span := 1; next && span <= n; span++ {
		percent := make([]int, n)
		next = t.calcPercentageStep(d, colPercent, percent, span)

		add := 0
		for c := range n {
			colPercent[c+1] += add
			if t.perc(colPercent, c) < percent[c] {
				add += percent[c] - t.perc(colPercent, c)
				colPercent[c+1] = colPercent[c] + percent[c]
			}
		}
	}
}

func (t *Table) divideLeftWidth(d *Document, maxSize []int, maxWidth, left int) {
	if left <= 0 {
		return
	}
	n := t.totalCols
	colPercent := make([]int, n+1)
	t.calcColPercentage(d, colPercent)

	notPercented := 0
	for c := range n {
		if t.perc(colPercent, c) == 0 {
			notPercented++
		}
	}

	if notPercented < n {
		left -= t.divideIntoPercented(colPercent, maxSize, maxWidth, left)
	}
	if left > 0 {
		if notPercented > 0 {
			t.divideIntoVariableAll(colPercent, maxSize, left)
		} else {
			t.divideIntoPercentedAll(colPercent, maxSize, maxWidth)
		}
	}
}

// divideIntoPercented raises percentage columns toward their request and
// returns how much of left it used.
func (t *Table) divideIntoPercented(colPercent, maxSize []int, maxWidth, left int) int {
	toFill := 0
	for c := range t.totalCols {
		request := maxWidth * t.perc(colPercent, c) / 100
		if maxSize[c] < request {
			toFill += request - maxSize[c]
		}
	}

	left = min(toFill, left)
	added, filled := 0, 0
	if left <= 0 {
		return 0
	}
	for c := range t.totalCols {
		request := maxWidth * t.perc(colPercent, c) / 100
		if maxSize[c] < request {
			filled += request - maxSize[c]
			cum := proportion(left, filled, toFill)
			maxSize[c] += cum - added
			added = cum
		}
	}
	return added
}

// prefWidth is the width column c asks for in boundaries pref.
func (t *Table) prefWidth(pref []int, c int) int {
	return pref[c+1] - pref[c] - t.cellSpace()
}

// lowestFill finds the elastic column closest to its preferred width.
func (t *Table) lowestFill(pref, maxSize, colPercent []int) (col, total int, ok bool) {
	minFill := 0
	for c := range t.totalCols {
		if t.perc(colPercent, c) != 0 {
			continue
		}
		pw := t.prefWidth(pref, c)
		if maxSize[c] < pw {
			if !ok || pw-maxSize[c] < minFill {
				col, minFill, ok = c, pw-maxSize[c], true
			}
			total += pw
		}
	}
	return col, total, ok
}

func (t *Table) divideUptoPreferredWidth(pref, colPercent, maxSize []int, left int) int {
	for left > 0 {
		minCol, totalFill, ok := t.lowestFill(pref, maxSize, colPercent)
		if !ok {
			break
		}
		minPw := t.prefWidth(pref, minCol)
		minFill := min(minPw-maxSize[minCol], minPw*left/totalFill)
		if minFill <= 0 {
			break
		}

		before := left
		if minFill == minPw-maxSize[minCol] {
			maxSize[minCol] += minFill
			left -= minFill
		}
		if left == 0 {
			break
		}

		processed, added := 0, 0
		for c := range t.totalCols {
			if t.perc(colPercent, c) != 0 {
				continue
			}
			pw := t.prefWidth(pref, c)
			if maxSize[c] < pw {
				processed += pw
				cum := proportion(minFill, processed, minPw)
				part := cum - added
				added = cum
				maxSize[c] += part
				left -= part
			}
		}
		if left == before {
			break
		}
	}
	return left
}

// divideLeftByPreferredWidth hands out the rest in proportion to the
// preferred widths, or evenly when no column has one.
func (t *Table) divideLeftByPreferredWidth(colPercent, maxSize []int, left int) {
	pref, elastic := 0, 0
	for c := range t.totalCols {
		if t.perc(colPercent, c) == 0 {
			pref += t.prefWidth(t.columnPref, c)
			elastic++
		}
	}
	if elastic == 0 {
		return
	}

	processed, added, i := 0, 0, 0
	for c := range t.totalCols {
		if t.perc(colPercent, c) != 0 {
			continue
		}
		var cum int
		if pref > 0 {
			processed += t.prefWidth(t.columnPref, c)
			cum = proportion(left, processed, pref)
		} else {
			i++
			cum = proportion(left, i, elastic)
		}
		maxSize[c] += cum - added
		added = cum
	}
}

func (t *Table) divideIntoVariableAll(colPercent, maxSize []int, left int) {
	left = t.divideUptoPreferredWidth(t.columnFixed, colPercent, maxSize, left)
	left = t.divideUptoPreferredWidth(t.columnPref, colPercent, maxSize, left)
	if left > 0 {
		t.divideLeftByPreferredWidth(colPercent, maxSize, left)
	}
}

// divideIntoPercentedAll gives every column its percentage of the whole
// width. Columns already wider than their share keep their width and drop
// out, and the rest is shared again among the others.
func (t *Table) divideIntoPercentedAll(colPercent, maxSize []int, maxWidth int) {
	n := t.totalCols
	active := make([]bool, n)
	for c := range active {
		active[c] = true
	}

	shares := func(width, percent int) []int {
		out := make([]int, n)
		processed, added := 0, 0
		for c := range n {
			if !active[c] {
				continue
			}
			processed += t.perc(colPercent, c)
			cum := proportion(width, processed, percent)
			out[c] = cum - added
			added = cum
		}
		return out
	}

	percent, width := colPercent[n], maxWidth
	for percent > 0 {
		share := shares(width, percent)
		allActive := true
		subPercent, subWidth := 0, width
		for c := range n {
			if !active[c] {
				continue
			}
			if maxSize[c] < share[c] {
				subPercent += t.perc(colPercent, c)
			} else {
				subWidth -= maxSize[c]
				active[c] = false
				allActive = false
			}
		}
		percent, width = subPercent, subWidth
		if allActive {
			break
		}
	}
	if percent <= 0 {
		return
	}

	share := shares(width, percent)
	for c := range n {
		if active[c] {
			maxSize[c] = share[c]
		}
	}
}

func (t *Table) setCellsMaxWidth(d *Document, maxSize []int) {
	n := t.totalCols
	for _, id := range t.originCells(d) {
		cell := d.cell(id)
		end := min(cell.col+cell.cspan, n)
		size := 0
		for c := cell.col; c < end; c++ {
			size += maxSize[c]
		}
		w := size - 2*t.Padding + t.cellSpace()*(end-cell.col-1)
		cell.setMaxWidth(d, id, max(0, w))
	}
}

func (t *Table) setColumnsOptimalWidth(maxSize []int) {
	n := t.totalCols
	t.columnOpt = make([]int, n+1)
	t.columnOpt[0] = t.columnMin[0]
	for c := range n {
		t.columnOpt[c+1] = t.columnOpt[c] + maxSize[c] + t.cellSpace()
	}
}

func (t *Table) calcRowHeights(d *Document) {
	t.rowHeights = make([]int, t.totalRows+1)
	for r := range t.rowHeights {
		t.rowHeights[r] = t.Border + t.Spacing
	}

	for r := 0; r < t.totalRows; r++ {
		t.rowHeights[r+1] = max(t.rowHeights[r+1], t.rowHeights[r])
		for c := 0; c < t.totalCols; c++ {
			if !t.isOrigin(d, r, c) {
				continue
			}
			id := t.cells[r][c]
			cell := d.cell(id)
			rl := min(t.totalRows, cell.row+cell.rspan)
			n := d.nodes[id]
			height := t.rowHeights[cell.row] + n.ascent + n.descent + t.cellSpace()
			t.rowHeights[rl] = max(t.rowHeights[rl], height)
		}
	}
}

func (t *Table) setCellsPosition(d *Document) {
	be := t.borderExtra() / 2
	for _, id := range t.originCells(d) {
		cell := d.cell(id)
		rl := min(t.totalRows, cell.row+cell.rspan)
		n := &d.nodes[id]
		n.x = t.columnOpt[cell.col] + be
		n.y = t.rowHeights[cell.row] + be
		n.ascent = t.rowHeights[rl] - t.rowHeights[cell.row] - t.cellSpace()
		n.descent = 0
	}
}

func (t *Table) calcSize(d *Document, id NodeID) {
	if len(t.columnOpt) != t.totalCols+1 {
		t.setMaxWidth(d, id, d.nodes[id].maxWidth)
	}
	for _, cell := range t.originCells(d) {
		d.Object(cell).calcSize(d, cell)
	}
	t.calcRowHeights(d)
	t.setCellsPosition(d)

	n := &d.nodes[id]
	n.ascent = t.rowHeights[t.totalRows] + t.Border
	n.descent = 0
	n.width = t.columnOpt[t.totalCols] + t.Border
}

func (t *Table) draw(d *Document, id NodeID, dc *drawContext) {
	x, y := dc.origin(id)
	b := d.Bounds(id)
	if t.Border > 0 {
		dc.painter.DrawBorder(Rect{X: x, Y: y, Width: b.Width, Height: b.Height})
	}
	for _, cell := range t.originCells(d) {
		if t.Border > 0 {
			cx, cy := dc.origin(cell)
			cb := d.Bounds(cell)
			dc.painter.DrawBorder(Rect{X: cx - 1, Y: cy - 1, Width: cb.Width + 2, Height: cb.Height + 2})
		}
		d.Object(cell).draw(d, cell, dc)
	}
}
