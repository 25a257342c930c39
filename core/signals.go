package core

type Signal any

type CopySignal struct {
	length int
}

func (c CopySignal) Value() int {
	return c.length
}

type CutSignal struct {
	length int
}

func (c CutSignal) Value() int {
	return c.length
}

type PasteSignal struct {
	length int
}

func (p PasteSignal) Value() int {
	return p.length
}

type DeleteSignal struct {
	length int
}

func (d DeleteSignal) Value() int {
	return d.length
}

type UndoSignal struct{}

func (u UndoSignal) Value() {}

type RedoSignal struct{}

func (r RedoSignal) Value() {}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	id = m.id
	message = m.value

	return id, message
}

type SaveSignal struct {
	doc *Document
}

func (s SaveSignal) Value() *Document {
	return s.doc
}

type QuitSignal struct{}

type ErrorSignal Error

func (e ErrorSignal) Value() (id ErrorId, err error) {
	id = e.id
	err = e.err

	return id, err
}

type EnterCommandModeSignal struct{}

// RelayoutSignal reports that the document was laid out again.
type RelayoutSignal struct {
	root NodeID
}

func (r RelayoutSignal) Value() NodeID {
	return r.root
}

// RedrawSignal reports the area of the document that needs painting.
type RedrawSignal struct {
	area Rect
}

func (r RedrawSignal) Value() Rect {
	return r.area
}

func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default: // Ignore if the channel is full
	}
}

// signalDriver turns engine updates into signals. Updates queued inside a
// batch are sent once when the batch ends.
type signalDriver struct {
	editor *editor
	depth  int

	relayout bool
	root     NodeID
	redraw   bool
	area     Rect
}

func (s *signalDriver) BeginBatch() {
	s.depth++
}

func (s *signalDriver) EndBatch() {
	if s.depth > 0 {
		s.depth--
	}
	s.flush()
}

func (s *signalDriver) QueueRelayout(root NodeID) {
	s.relayout, s.root = true, root
	s.flush()
}

func (s *signalDriver) QueueRedraw(r Rect) {
	s.redraw, s.area = true, r
	s.flush()
}

func (s *signalDriver) flush() {
	if s.depth > 0 {
		return
	}
	if s.relayout {
		s.editor.DispatchSignal(RelayoutSignal{root: s.root})
		s.relayout = false
	}
	if s.redraw {
		s.editor.DispatchSignal(RedrawSignal{area: s.area})
		s.redraw = false
	}
}
