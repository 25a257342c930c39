package core

import (
	"strconv"
	"strings"
)

// ParagraphStyle is the block format of a flow.
type ParagraphStyle int

const (
	ParagraphNormal ParagraphStyle = iota
	ParagraphH1
	ParagraphH2
	ParagraphH3
	ParagraphH4
	ParagraphH5
	ParagraphH6
	ParagraphAddress
	ParagraphPre
	ParagraphItemDotted
	ParagraphItemRoman
	ParagraphItemDigit
)

var paragraphStyleNames = map[ParagraphStyle]string{
	ParagraphNormal:     "normal",
	ParagraphH1:         "h1",
	ParagraphH2:         "h2",
	ParagraphH3:         "h3",
	ParagraphH4:         "h4",
	ParagraphH5:         "h5",
	ParagraphH6:         "h6",
	ParagraphAddress:    "address",
	ParagraphPre:        "pre",
	ParagraphItemDotted: "dotted",
	ParagraphItemRoman:  "roman",
	ParagraphItemDigit:  "digit",
}

func (s ParagraphStyle) String() string {
	if name, ok := paragraphStyleNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseParagraphStyle maps a style name such as "h2" or "pre" to its value.
func ParseParagraphStyle(name string) (ParagraphStyle, bool) {
	name = strings.ToLower(name)
	for s, n := range paragraphStyleNames {
		if n == name {
			return s, true
		}
	}
	return ParagraphNormal, false
}

// HeadingLevel returns 1-6 for headings and 0 otherwise.
func (s ParagraphStyle) HeadingLevel() int {
	if s >= ParagraphH1 && s <= ParagraphH6 {
		return int(s-ParagraphH1) + 1
	}
	return 0
}

// IsItem reports whether the style is a list item.
func (s ParagraphStyle) IsItem() bool {
	return s == ParagraphItemDotted || s == ParagraphItemRoman || s == ParagraphItemDigit
}

// Alignment is the horizontal alignment of a paragraph or rule.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return "left"
}

// ParseAlignment maps "left", "center" or "right" to its value.
func ParseAlignment(name string) (Alignment, bool) {
	switch strings.ToLower(name) {
	case "left":
		return AlignLeft, true
	case "center", "centre":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	}
	return AlignLeft, false
}

// Flow is a paragraph: a sequence of leaves laid out in lines.
type Flow struct {
	Style ParagraphStyle
	Align Alignment
	Level int // Indentation level
}

// NewFlow allocates a detached, empty paragraph.
func (d *Document) NewFlow(style ParagraphStyle) NodeID {
	return d.alloc(&Flow{Style: style})
}

func (f *Flow) Kind() Kind {
	return KindFlow
}

func (f *Flow) Length() int {
	return 0
}

func (f *Flow) dup() Object {
	cp := *f
	return &cp
}

func (f *Flow) split(offset int) Object {
	return nil
}

func (f *Flow) merge(right Object) bool {
	_, ok := right.(*Flow)
	return ok
}

// indent is the left margin of the flow in cells.
func (f *Flow) indent() int {
	n := f.Level * 2
	if f.Style.IsItem() {
		n += 2
	}
	return n
}

func (f *Flow) calcMinWidth(d *Document, id NodeID) int {
	w := 0
	for c := d.HeadNotSlave(id); c != NoNode; c = d.NextNotSlave(c) {
		if f.Style == ParagraphPre && d.Kind(c) == KindText {
			w = max(w, d.Object(c).calcPreferredWidth(d, c))
			continue
		}
		w = max(w, d.Object(c).calcMinWidth(d, c))
	}
	return w + f.indent()
}

func (f *Flow) calcPreferredWidth(d *Document, id NodeID) int {
	w, line := 0, 0
	for c := d.HeadNotSlave(id); c != NoNode; c = d.NextNotSlave(c) {
		switch d.Kind(c) {
		case KindRule, KindTable:
			w = max(w, line, d.Object(c).calcPreferredWidth(d, c))
			line = 0
		default:
			line += d.Object(c).calcPreferredWidth(d, c)
		}
	}
	return max(w, line) + f.indent()
}

func (f *Flow) setMaxWidth(d *Document, id NodeID, width int) {
	d.nodes[id].maxWidth = width
}

type flowLine struct {
	items  []NodeID
	x      int
	height int
}

// calcSize breaks the flow into lines. Text runs are shown through slaves
// inserted right after their master; rules and tables take a line each.
func (f *Flow) calcSize(d *Document, id NodeID) {
	d.dropSlaves(id)

	indent := f.indent()
	avail := max(1, d.nodes[id].maxWidth-indent)
	pre := f.Style == ParagraphPre

	y, widest := 0, 0
	line := flowLine{height: 1}

	finish := func() {
		shift := 0
		switch f.Align {
		case AlignCenter:
			shift = max(0, (avail-line.x)/2)
		case AlignRight:
			shift = max(0, avail-line.x)
		}
		for _, it := range line.items {
			n := &d.nodes[it]
			n.x += indent + shift
			n.y = y
		}
		widest = max(widest, line.x+indent+shift)
		y += line.height
		line = flowLine{height: 1}
	}

	block := func(c NodeID, x int, fill bool) {
		if line.x > 0 {
			finish()
		}
		n := &d.nodes[c]
		n.x = x
		line.items = append(line.items, c)
		line.x = x + n.width
		if fill {
			line.x = max(line.x, avail)
		}
		line.height = max(1, n.ascent+n.descent)
		finish()
	}

	for c := d.HeadNotSlave(id); c != NoNode; c = d.NextNotSlave(c) {
		switch d.Kind(c) {
		case KindRule:
			r := d.rule(c)
			r.setMaxWidth(d, c, avail)
			r.calcSize(d, c)
			x := 0
			switch r.Align {
			case AlignCenter:
				x = (avail - d.nodes[c].width) / 2
			case AlignRight:
				x = avail - d.nodes[c].width
			}
			block(c, max(0, x), true)

		case KindTable:
			t := d.table(c)
			t.setMaxWidth(d, c, avail)
			t.calcSize(d, c)
			block(c, 0, false)

		case KindText:
			f.layoutText(d, id, c, avail, pre, &line, finish)
		}
	}

	if len(line.items) > 0 || y == 0 {
		finish()
	}

	n := &d.nodes[id]
	n.width = max(widest, indent)
	n.ascent = y
	n.descent = 0
}

type textPiece struct {
	from, to int
	width    int
	fit      int // width without trailing spaces
}

func (f *Flow) layoutText(d *Document, flow, c NodeID, avail int, pre bool, line *flowLine, finish func()) {
	t := d.text(c)
	after := c

	newSlave := func(offset int) (*TextSlave, NodeID) {
		s := &TextSlave{master: c, offset: offset}
		sid := d.alloc(s)
		d.AppendAfter(flow, sid, after)
		after = sid
		d.nodes[sid].x = line.x
		d.nodes[sid].ascent = 1
		line.items = append(line.items, sid)
		return s, sid
	}

	if t.Len() == 0 {
		newSlave(0)
		return
	}

	var cur *TextSlave
	var curID NodeID
	for _, p := range textPieces(d.measurer, t, avail, pre) {
		if !pre && line.x > 0 && line.x+p.fit > avail {
			finish()
			cur = nil
		}
		if cur == nil {
			cur, curID = newSlave(p.from)
		}
		cur.length = p.to - cur.offset
		d.nodes[curID].width += p.width
		line.x += p.width
	}
}

// textPieces cuts a run at its line-break opportunities. A piece wider than
// the available width is cut further at grapheme boundaries.
func textPieces(m Measurer, t *Text, avail int, pre bool) []textPiece {
	if pre {
		w := m.Width(t.String(), t.Style)
		return []textPiece{{from: 0, to: t.Len(), width: w, fit: w}}
	}

	var out []textPiece
	start := 0
	for _, b := range append(m.Breaks(t.String()), t.Len()) {
		if b <= start {
			continue
		}
		seg := t.Slice(start, b)
		w := m.Width(seg, t.Style)
		fit := m.Width(strings.TrimRight(seg, " \t"), t.Style)
		if fit <= avail {
			out = append(out, textPiece{from: start, to: b, width: w, fit: fit})
		} else {
			out = append(out, splitWide(m, t, start, b, avail)...)
		}
		start = b
	}
	return out
}

func splitWide(m Measurer, t *Text, from, to, avail int) []textPiece {
	var out []textPiece
	cur := textPiece{from: from, to: from}
	for _, g := range m.Graphemes(t.Slice(from, to)) {
		w := m.Width(g, t.Style)
		if cur.width > 0 && cur.width+w > avail {
			cur.fit = cur.width
			out = append(out, cur)
			cur = textPiece{from: cur.to, to: cur.to}
		}
		cur.to += len([]rune(g))
		cur.width += w
	}
	if cur.to > cur.from {
		cur.fit = cur.width
		out = append(out, cur)
	}
	return out
}

func (f *Flow) draw(d *Document, id NodeID, dc *drawContext) {
	if f.Style.IsItem() {
		x, y := dc.origin(id)
		dc.painter.DrawBullet(x+f.indent()-2, y, d.itemMarker(id))
	}
	dc.drawChildren(id)
}

// itemMarker returns the bullet text of a list item paragraph.
func (d *Document) itemMarker(id NodeID) string {
	f := d.flow(id)
	n := 1
	for p := d.Prev(id); p != NoNode; p = d.Prev(p) {
		pf := d.flow(p)
		if pf == nil || pf.Style != f.Style || pf.Level != f.Level {
			break
		}
		n++
	}
	switch f.Style {
	case ParagraphItemDigit:
		return strconv.Itoa(n) + "."
	case ParagraphItemRoman:
		return strings.ToLower(roman(n)) + "."
	}
	return "•"
}

func roman(n int) string {
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	digits := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var sb strings.Builder
	for i, v := range values {
		for n >= v {
			sb.WriteString(digits[i])
			n -= v
		}
	}
	return sb.String()
}
