package core

// TextStyle is the character formatting of a text run. Two runs merge only
// when their styles are equal.
type TextStyle struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strikeout bool
	Fixed     bool   // Monospaced font
	Size      int    // Relative font size, 0 is the default
	Color     string // Empty for the default colour
	Link      string // Target URL, empty when the run is not a link
	Target    string // Link target frame
}

// IsLink reports whether the run is part of a hyperlink.
func (s TextStyle) IsLink() bool {
	return s.Link != ""
}

// Text is a run of characters sharing one style.
type Text struct {
	runes []rune
	Style TextStyle
}

func newText(s string, style TextStyle) *Text {
	return &Text{runes: []rune(s), Style: style}
}

// NewText allocates a detached text run.
func (d *Document) NewText(s string, style TextStyle) NodeID {
	return d.alloc(newText(s, style))
}

func (t *Text) Kind() Kind {
	return KindText
}

func (t *Text) Length() int {
	return len(t.runes)
}

// Len returns the number of characters in the run.
func (t *Text) Len() int {
	return len(t.runes)
}

func (t *Text) String() string {
	return string(t.runes)
}

// Slice returns the characters in [from, to).
func (t *Text) Slice(from, to int) string {
	from = max(0, min(from, len(t.runes)))
	to = max(from, min(to, len(t.runes)))
	return string(t.runes[from:to])
}

func (t *Text) dup() Object {
	return &Text{runes: append([]rune(nil), t.runes...), Style: t.Style}
}

func (t *Text) split(offset int) Object {
	offset = max(0, min(offset, len(t.runes)))
	right := &Text{runes: append([]rune(nil), t.runes[offset:]...), Style: t.Style}
	t.runes = t.runes[:offset:offset]
	return right
}

func (t *Text) merge(right Object) bool {
	r, ok := right.(*Text)
	if !ok || r.Style != t.Style {
		return false
	}
	t.runes = append(t.runes, r.runes...)
	return true
}

func (t *Text) insert(offset int, s []rune) {
	offset = max(0, min(offset, len(t.runes)))
	out := make([]rune, 0, len(t.runes)+len(s))
	out = append(out, t.runes[:offset]...)
	out = append(out, s...)
	out = append(out, t.runes[offset:]...)
	t.runes = out
}

func (t *Text) calcMinWidth(d *Document, id NodeID) int {
	s := t.String()
	w, start := 0, 0
	for _, b := range append(d.measurer.Breaks(s), len(t.runes)) {
		if b <= start {
			continue
		}
		w = max(w, d.measurer.Width(t.Slice(start, b), t.Style))
		start = b
	}
	return w
}

func (t *Text) calcPreferredWidth(d *Document, id NodeID) int {
	return d.measurer.Width(t.String(), t.Style)
}

func (t *Text) setMaxWidth(d *Document, id NodeID, width int) {
	d.nodes[id].maxWidth = width
}

// Text runs are sized through their slaves by the flow layout.
func (t *Text) calcSize(d *Document, id NodeID) {}

func (t *Text) draw(d *Document, id NodeID, dc *drawContext) {}

// TextSlave is one wrapped line of a text run.
type TextSlave struct {
	master NodeID
	offset int
	length int
}

func (s *TextSlave) Kind() Kind {
	return KindTextSlave
}

func (s *TextSlave) Length() int {
	return 0
}

// Master returns the text run this line belongs to.
func (s *TextSlave) Master() NodeID {
	return s.master
}

// Span returns the rune range of the master shown on this line.
func (s *TextSlave) Span() (offset, length int) {
	return s.offset, s.length
}

func (s *TextSlave) dup() Object {
	cp := *s
	return &cp
}

func (s *TextSlave) split(offset int) Object {
	return nil
}

func (s *TextSlave) merge(right Object) bool {
	return false
}

func (s *TextSlave) calcMinWidth(d *Document, id NodeID) int {
	return 0
}

func (s *TextSlave) calcPreferredWidth(d *Document, id NodeID) int {
	return 0
}

func (s *TextSlave) setMaxWidth(d *Document, id NodeID, width int) {}

func (s *TextSlave) calcSize(d *Document, id NodeID) {}

func (s *TextSlave) draw(d *Document, id NodeID, dc *drawContext) {
	dc.drawSlave(id, s)
}
