package core

// Options configures an Engine.
type Options struct {
	HistoryLimit int       // Maximum number of undo steps
	Measurer     Measurer  // Text measurement; cell widths when nil
	Driver       Driver    // Receives relayout and redraw requests
	Clipboard    Clipboard // System clipboard for plain text, may be nil
	PageWidth    int       // Layout width in cells
}

// DefaultOptions returns the options used by New.
func DefaultOptions() Options {
	return Options{
		HistoryLimit: 1000,
		PageWidth:    80,
	}
}

// Engine edits a Document. It owns the cursor, the selection mark, the
// undo history and the document clipboard. An Engine is not safe for
// concurrent use.
type Engine struct {
	doc     *Document
	cursor  Cursor
	mark    Cursor
	markSet bool

	undo           *UndoStack
	clipboard      *Fragment
	system         Clipboard
	insertionStyle TextStyle

	driver Driver
	frozen int
	width  int
}

// NewEngine returns an engine editing doc, or a new empty document when
// doc is nil. The cursor starts at the beginning of the document.
func NewEngine(doc *Document, opts Options) *Engine {
	if doc == nil {
		doc = NewDocument()
	}
	if opts.Measurer != nil {
		doc.SetMeasurer(opts.Measurer)
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = DefaultOptions().HistoryLimit
	}
	if opts.PageWidth <= 0 {
		opts.PageWidth = DefaultOptions().PageWidth
	}
	driver := opts.Driver
	if driver == nil {
		driver = nopDriver{}
	}

	e := &Engine{
		doc:    doc,
		undo:   NewUndoStack(opts.HistoryLimit),
		system: opts.Clipboard,
		driver: driver,
		width:  opts.PageWidth,
	}
	e.doc.Layout(e.width)
	e.jumpTo(0)
	return e
}

// Document returns the edited document.
func (e *Engine) Document() *Document {
	return e.doc
}

// SetDocument replaces the edited document. History and the document
// clipboard refer to the old document and are dropped.
func (e *Engine) SetDocument(doc *Document) {
	if doc == nil {
		doc = NewDocument()
	}
	e.freeze()
	defer e.thaw()

	e.undo.Reset()
	e.setClipboard(nil)
	e.doc = doc
	e.markSet = false
	e.jumpTo(0)
}

// Cursor returns the current cursor.
func (e *Engine) Cursor() Cursor {
	return e.cursor
}

// SetCursorPosition moves the cursor to pos, clamped to the document.
func (e *Engine) SetCursorPosition(pos int) {
	e.jumpTo(pos)
	e.queueCursorRedraw()
}

// Length is the number of cursor positions in the document.
func (e *Engine) Length() int {
	return e.doc.RecursiveLength(e.doc.root)
}

// History returns the undo history.
func (e *Engine) History() *UndoStack {
	return e.undo
}

// SetClipboard sets the system clipboard used for plain text.
func (e *Engine) SetClipboard(c Clipboard) {
	e.system = c
}

// Width returns the layout width.
func (e *Engine) Width() int {
	return e.width
}

// SetWidth changes the layout width and lays the document out again.
func (e *Engine) SetWidth(width int) {
	if width <= 0 || width == e.width {
		return
	}
	e.freeze()
	defer e.thaw()
	e.width = width
}

// InsertionStyle returns the style given to typed text.
func (e *Engine) InsertionStyle() TextStyle {
	return e.insertionStyle
}

// SetInsertionStyle sets the style given to typed text.
func (e *Engine) SetInsertionStyle(style TextStyle) {
	e.insertionStyle = style
}

// InsertionFlag names a boolean attribute of TextStyle.
type InsertionFlag int

const (
	FlagBold InsertionFlag = iota
	FlagItalic
	FlagUnderline
	FlagStrikeout
	FlagFixed
)

// ToggleInsertionFlag flips one attribute of the insertion style and
// returns its new value.
func (e *Engine) ToggleInsertionFlag(flag InsertionFlag) bool {
	s := &e.insertionStyle
	var v *bool
	switch flag {
	case FlagBold:
		v = &s.Bold
	case FlagItalic:
		v = &s.Italic
	case FlagUnderline:
		v = &s.Underline
	case FlagStrikeout:
		v = &s.Strikeout
	case FlagFixed:
		v = &s.Fixed
	default:
		return false
	}
	*v = !*v
	return *v
}

// CursorXY returns the document cell where the cursor is shown.
func (e *Engine) CursorXY() (x, y int) {
	return e.doc.CaretXY(e.cursor.Point)
}

// Draw paints the document and the cursor.
func (e *Engine) Draw(p Painter) {
	from, to, ok := e.Selection()
	e.doc.Draw(p, ok, from.Position, to.Position)
	x, y := e.CursorXY()
	p.DrawCursor(x, y)
}

func (e *Engine) pageRect() Rect {
	w, h := e.doc.Size()
	return Rect{Width: max(w, e.width), Height: max(h, 1)}
}

func (e *Engine) queueCursorRedraw() {
	if e.frozen == 0 {
		e.driver.QueueRedraw(e.pageRect())
	}
}
