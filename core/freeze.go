package core

// Driver receives the updates an engine produces. Calls between BeginBatch
// and EndBatch belong to one edit.
type Driver interface {
	BeginBatch()
	EndBatch()
	QueueRelayout(root NodeID)
	QueueRedraw(r Rect)
}

type nopDriver struct{}

func (nopDriver) BeginBatch()          {}
func (nopDriver) EndBatch()            {}
func (nopDriver) QueueRelayout(NodeID) {}
func (nopDriver) QueueRedraw(Rect)     {}

// Freeze suspends layout and redraw until the matching Thaw. Freezes nest.
func (e *Engine) Freeze() {
	e.freeze()
}

// Thaw ends a Freeze. The outermost Thaw lays the document out once and
// flushes a single relayout and redraw to the driver.
func (e *Engine) Thaw() {
	e.thaw()
}

// Frozen reports whether the engine is inside a Freeze.
func (e *Engine) Frozen() bool {
	return e.frozen > 0
}

func (e *Engine) freeze() {
	e.frozen++
	if e.frozen == 1 {
		e.driver.BeginBatch()
	}
}

func (e *Engine) thaw() {
	if e.frozen == 0 {
		return
	}
	e.frozen--
	if e.frozen > 0 {
		return
	}

	e.updatePosition()
	e.doc.Layout(e.width)
	e.driver.QueueRelayout(e.doc.root)
	e.driver.QueueRedraw(e.pageRect())
	e.driver.EndBatch()
}
