package adapter_bubbletea

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/richedit/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/richedit/core"
	"github.com/mattn/go-runewidth"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellText
	cellRule
	cellBorder
	cellBullet
	cellWide // Right half of a double-width rune
)

// cellKey is everything that decides how a terminal cell is styled.
type cellKey struct {
	kind     cellKind
	style    editor.TextStyle
	para     editor.ParagraphStyle
	token    chroma.TokenType
	hasToken bool
	selected bool
	cursor   bool
}

type cell struct {
	r    rune
	key  cellKey
	mask uint8 // Border directions, see borderRunes
}

const (
	borderUp uint8 = 1 << iota
	borderDown
	borderLeft
	borderRight
)

var borderRunes = map[uint8]rune{
	borderLeft | borderRight:                            '─',
	borderLeft:                                          '─',
	borderRight:                                         '─',
	borderUp | borderDown:                               '│',
	borderUp:                                            '│',
	borderDown:                                          '│',
	borderDown | borderRight:                            '┌',
	borderDown | borderLeft:                             '┐',
	borderUp | borderRight:                              '└',
	borderUp | borderLeft:                               '┘',
	borderUp | borderDown | borderRight:                 '├',
	borderUp | borderDown | borderLeft:                  '┤',
	borderDown | borderLeft | borderRight:               '┬',
	borderUp | borderLeft | borderRight:                 '┴',
	borderUp | borderDown | borderLeft | borderRight:    '┼',
}

// canvas is an editor.Painter that draws a region of the document into a
// grid of terminal cells.
type canvas struct {
	region      editor.Rect
	rows        [][]cell
	cursorX     int
	cursorY     int
	hasCursor   bool
	highlighter *highlighter.Highlighter
}

func newCanvas(region editor.Rect, hl *highlighter.Highlighter) *canvas {
	c := &canvas{region: region, highlighter: hl}
	c.rows = make([][]cell, max(0, region.Height))
	for y := range c.rows {
		row := make([]cell, max(0, region.Width))
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.rows[y] = row
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	x -= c.region.X
	y -= c.region.Y
	if y < 0 || y >= len(c.rows) || x < 0 || x >= len(c.rows[y]) {
		return nil
	}
	return &c.rows[y][x]
}

func (c *canvas) set(x, y int, r rune, key cellKey) {
	if p := c.at(x, y); p != nil {
		p.r, p.key, p.mask = r, key, 0
	}
}

func (c *canvas) Region() editor.Rect {
	return c.region
}

func (c *canvas) DrawText(x, y int, text string, style editor.TextStyle, para editor.ParagraphStyle, selected bool) {
	var spans []highlighter.Span
	if para == editor.ParagraphPre && c.highlighter != nil {
		spans = c.highlighter.Spans(text)
	}

	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			col++
			continue
		}
		key := cellKey{kind: cellText, style: style, para: para, selected: selected}
		key.token, key.hasToken = highlighter.TypeAt(spans, col)
		c.set(x, y, r, key)
		if w == 2 {
			key.kind = cellWide
			c.set(x+1, y, 0, key)
		}
		x += w
		col++
	}
}

func (c *canvas) DrawRule(x, y, width int, shade, selected bool) {
	r := '━'
	if shade {
		r = '─'
	}
	key := cellKey{kind: cellRule, selected: selected}
	for i := range width {
		c.set(x+i, y, r, key)
	}
}

func (c *canvas) DrawBullet(x, y int, marker string) {
	key := cellKey{kind: cellBullet}
	for _, r := range marker {
		c.set(x, y, r, key)
		x += max(1, runewidth.RuneWidth(r))
	}
}

// DrawBorder outlines r. Borders drawn over each other join into
// junction characters.
func (c *canvas) DrawBorder(r editor.Rect) {
	if r.Width < 2 || r.Height < 2 {
		return
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	mark := func(x, y int, mask uint8) {
		p := c.at(x, y)
		if p == nil {
			return
		}
		if p.key.kind != cellBorder {
			p.mask = 0
		}
		p.key = cellKey{kind: cellBorder}
		p.mask |= mask
		p.r = borderRunes[p.mask]
	}

	for x := r.X; x <= right; x++ {
		var h uint8
		if x > r.X {
			h |= borderLeft
		}
		if x < right {
			h |= borderRight
		}
		mark(x, r.Y, h)
		mark(x, bottom, h)
	}
	for y := r.Y; y <= bottom; y++ {
		var v uint8
		if y > r.Y {
			v |= borderUp
		}
		if y < bottom {
			v |= borderDown
		}
		mark(r.X, y, v)
		mark(right, y, v)
	}
}

func (c *canvas) DrawCursor(x, y int) {
	c.cursorX, c.cursorY, c.hasCursor = x, y, true
}

// lines renders the canvas, merging neighbouring cells of one style.
func (c *canvas) lines(styleOf func(cellKey) lipgloss.Style, showCursor bool) []string {
	if showCursor && c.hasCursor {
		if p := c.at(c.cursorX, c.cursorY); p != nil {
			if p.key.kind == cellWide {
				p = c.at(c.cursorX-1, c.cursorY)
			}
			p.key.cursor = true
		}
	}

	out := make([]string, len(c.rows))
	for y, row := range c.rows {
		var sb strings.Builder
		var run strings.Builder
		var key cellKey
		flush := func() {
			if run.Len() > 0 {
				sb.WriteString(styleOf(key).Render(run.String()))
				run.Reset()
			}
		}
		for _, cl := range row {
			if cl.key.kind == cellWide {
				continue
			}
			if cl.key != key {
				flush()
				key = cl.key
			}
			run.WriteRune(cl.r)
		}
		flush()
		out[y] = sb.String()
	}
	return out
}

// cellStyle maps a cell to its theme style.
func (m *Model) cellStyle(key cellKey) lipgloss.Style {
	if s, ok := m.styleCache[key]; ok {
		return s
	}

	s := lipgloss.NewStyle()
	switch key.kind {
	case cellText, cellWide:
		ts := key.style
		switch {
		case key.para.HeadingLevel() > 0:
			s = m.theme.HeadingStyle
		case key.para == editor.ParagraphPre:
			s = m.theme.CodeBlockStyle
			if key.hasToken && m.highlighter != nil {
				s = m.highlighter.GetStyleForToken(key.token).Inherit(s)
			}
		case key.para == editor.ParagraphAddress:
			s = s.Italic(true)
		}
		if ts.Fixed && key.para != editor.ParagraphPre {
			s = s.Inherit(m.theme.CodeStyle)
		}
		if ts.IsLink() {
			s = m.theme.LinkStyle.Inherit(s)
		}
		if ts.Color != "" {
			s = s.Foreground(lipgloss.Color(ts.Color))
		}
		if ts.Bold {
			s = s.Bold(true)
		}
		if ts.Italic {
			s = s.Italic(true)
		}
		if ts.Underline {
			s = s.Underline(true)
		}
		if ts.Strikeout {
			s = s.Strikethrough(true)
		}
	case cellRule:
		s = m.theme.RuleStyle
	case cellBorder:
		s = m.theme.BorderStyle
	case cellBullet:
		s = m.theme.BulletStyle
	}

	if key.selected {
		s = s.Background(m.theme.SelectionStyle.GetBackground())
	}
	if key.cursor {
		s = m.getCursorStyles()
	}

	m.styleCache[key] = s
	return s
}

func (m *Model) getCursorStyles() lipgloss.Style {
	switch m.editor.GetState().Mode {
	case editor.SelectMode:
		return m.theme.SelectModeStyle
	case editor.CommandMode:
		return m.theme.CommandModeStyle
	default:
		return m.theme.EditModeStyle
	}
}

// renderVisibleSlice paints the rows of the document that fit in the
// viewport and hands them to the viewport.
func (m *Model) renderVisibleSlice() {
	state := m.editor.GetState()
	engine := m.editor.GetEngine()

	region := editor.Rect{
		X:      0,
		Y:      state.TopLine,
		Width:  max(1, m.viewport.Width),
		Height: max(1, m.viewport.Height),
	}

	if m.placeholder != "" && m.IsEmpty() {
		line := m.getCursorStyles().
			Foreground(m.theme.PlaceholderStyle.GetForeground()).
			Render(runewidth.Truncate(m.placeholder, 1, ""))
		line += m.theme.PlaceholderStyle.Render(runewidth.Truncate(string([]rune(m.placeholder)[1:]), region.Width-1, "…"))
		m.viewport.SetContent(line)
		m.viewport.YOffset = 0
		return
	}

	c := newCanvas(region, m.highlighter)
	engine.Draw(c)

	lines := c.lines(m.cellStyle, m.isFocused && m.cursorVisible)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.viewport.YOffset = 0
}
