package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		pos    int
		insert string
		want   string
		n      int
		cursor int
	}{
		{"empty document", "", 0, "hello", "hello", 5, 5},
		{"middle", "ad", 1, "bc", "abcd", 2, 3},
		{"paragraph break", "abcd", 2, "\n", "ab\ncd", 1, 3},
		{"several paragraphs", "ad", 1, "b\nc", "ab\ncd", 3, 4},
		{"end", "ab\ncd", 5, "e", "ab\ncde", 1, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.text)
			e.SetCursorPosition(tt.pos)

			assert.Equal(t, tt.n, e.InsertText(tt.insert))
			assert.Equal(t, tt.want, plain(e))
			assert.Equal(t, tt.cursor, e.Cursor().Position)
			assert.Equal(t, len([]rune(tt.want)), e.Length())
		})
	}
}

func TestInsertTextWithStyle(t *testing.T) {
	e := newTestEngine(t, "ac")
	e.SetCursorPosition(1)
	e.SetInsertionStyle(TextStyle{Bold: true})

	require.Equal(t, 1, e.InsertText("B"))
	flow := e.doc.Head(e.doc.Root())
	runs := e.doc.Children(flow)
	require.Len(t, runs, 3)
	assert.Equal(t, "B", e.doc.text(runs[1]).String())
	assert.True(t, e.doc.text(runs[1]).Style.Bold)
	assert.False(t, e.doc.text(runs[0]).Style.Bold)

	// Typing on extends the bold run.
	e.InsertText("C")
	assert.Len(t, e.doc.Children(flow), 3)
	assert.Equal(t, "aBCc", plain(e))
}

func TestInsertEmptyParagraphKeepsStyle(t *testing.T) {
	e := newTestEngine(t, "title")
	require.True(t, e.SetParagraphStyle(ParagraphH1))
	e.DocumentEnd()

	require.True(t, e.InsertEmptyParagraph())
	style, _, _ := e.ParagraphAt()
	assert.Equal(t, ParagraphH1, style)
	assert.Equal(t, "title\n", plain(e))
	assert.Equal(t, 6, e.Cursor().Position)
}

func TestPasteTextNormalizesLineEndings(t *testing.T) {
	e := newTestEngine(t, "")
	assert.Equal(t, 3, e.PasteText("a\r\nb"))
	assert.Equal(t, "a\nb", plain(e))
}

func TestDeleteN(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pos     int
		n       int
		forward bool
		want    string
		deleted int
	}{
		{"backspace", "abc", 3, 1, false, "ab", 1},
		{"delete", "abc", 0, 2, true, "c", 2},
		{"join paragraphs", "ab\ncd", 2, 1, true, "abcd", 1},
		{"join backward", "ab\ncd", 3, 1, false, "abcd", 1},
		{"across paragraphs", "ab\ncd\nef", 1, 5, true, "aef", 5},
		{"start of document", "abc", 0, 1, false, "abc", 0},
		{"end of document", "abc", 3, 1, true, "abc", 0},
		{"clamped", "abc", 1, 9, false, "bc", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.text)
			e.SetCursorPosition(tt.pos)

			assert.Equal(t, tt.deleted, e.DeleteN(tt.n, tt.forward))
			assert.Equal(t, tt.want, plain(e))
		})
	}
}

func TestDeleteNRemovesSelection(t *testing.T) {
	e := newTestEngine(t, "abcd")
	selectRange(e, 0, 2)

	assert.Equal(t, 2, e.DeleteN(1, false))
	assert.Equal(t, "cd", plain(e))
	assert.False(t, e.SelectionActive())
	assert.Nil(t, e.Clipboard())
}

func TestDeleteNStepsIntoTable(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	require.True(t, e.InsertTable(2, 2))
	require.Equal(t, 1, e.Cursor().Position)

	assert.Equal(t, 0, e.DeleteN(1, false))
	assert.Equal(t, 0, e.Cursor().Position)
	assert.Equal(t, 6, e.Length())
}

func TestCutLine(t *testing.T) {
	e := newTestEngine(t, "abc\ndef")
	e.SetCursorPosition(1)

	require.True(t, e.CutLine())
	assert.Equal(t, "a\ndef", plain(e))
	assert.Equal(t, "bc", PlainText(e.doc, e.Clipboard().Root()))

	// At the end of a line the break goes.
	require.True(t, e.CutLine())
	assert.Equal(t, "adef", plain(e))
}

func TestInsertLink(t *testing.T) {
	e := newTestEngine(t, "hello world")
	selectRange(e, 0, 5)

	require.True(t, e.InsertLink("https://example.com", "_blank"))
	assert.Equal(t, "hello world", plain(e))

	var links []string
	e.doc.walkTexts(e.doc.Root(), func(tx *Text) {
		if tx.Style.IsLink() {
			links = append(links, tx.String())
			assert.Equal(t, "_blank", tx.Style.Target)
		}
	})
	assert.Equal(t, []string{"hello"}, links)
}

func TestInsertLinkWithoutSelection(t *testing.T) {
	e := newTestEngine(t, "")

	require.True(t, e.InsertLink("https://example.com", "top"))
	assert.Equal(t, "https://example.com", e.InsertionStyle().Link)
	e.InsertText("x")

	require.True(t, e.InsertLink("", "top"))
	assert.Equal(t, TextStyle{}, e.InsertionStyle())

	tx := e.doc.text(e.doc.HeadNotSlave(e.doc.Head(e.doc.Root())))
	assert.True(t, tx.Style.IsLink())
}

func TestToggleInsertionFlag(t *testing.T) {
	e := newTestEngine(t, "")

	assert.True(t, e.ToggleInsertionFlag(FlagBold))
	assert.True(t, e.ToggleInsertionFlag(FlagFixed))
	assert.Equal(t, TextStyle{Bold: true, Fixed: true}, e.InsertionStyle())
	assert.False(t, e.ToggleInsertionFlag(FlagBold))
	assert.False(t, e.ToggleInsertionFlag(InsertionFlag(99)))
}

func TestParagraphFormat(t *testing.T) {
	e := newTestEngine(t, "a\nb\nc")
	selectRange(e, 0, 3)

	require.True(t, e.SetParagraphStyle(ParagraphItemDotted))
	require.True(t, e.IndentParagraph(1))
	assert.False(t, e.SetParagraphStyle(ParagraphItemDotted))

	var styles []ParagraphStyle
	var levels []int
	for _, f := range e.doc.Children(e.doc.Root()) {
		styles = append(styles, e.doc.flow(f).Style)
		levels = append(levels, e.doc.flow(f).Level)
	}
	assert.Equal(t, []ParagraphStyle{ParagraphItemDotted, ParagraphItemDotted, ParagraphNormal}, styles)
	assert.Equal(t, []int{1, 1, 0}, levels)

	require.True(t, e.Undo())
	require.True(t, e.Undo())
	for _, f := range e.doc.Children(e.doc.Root()) {
		assert.Equal(t, ParagraphNormal, e.doc.flow(f).Style)
		assert.Equal(t, 0, e.doc.flow(f).Level)
	}
}

func TestParagraphAlignment(t *testing.T) {
	e := newTestEngine(t, "ab")
	require.True(t, e.SetParagraphAlignment(AlignRight))

	_, align, _ := e.ParagraphAt()
	assert.Equal(t, AlignRight, align)

	x, _ := e.CursorXY()
	assert.Equal(t, 78, x)
}
