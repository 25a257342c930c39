package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyPaste(t *testing.T) {
	clip := &memClipboard{}
	e := newTestEngine(t, "hello world")
	e.SetClipboard(clip)

	assert.False(t, e.Copy())

	selectRange(e, 0, 5)
	require.True(t, e.Copy())
	assert.Equal(t, "hello world", plain(e))
	assert.Equal(t, "hello", clip.text)
	assert.Equal(t, 5, e.Clipboard().Length())

	e.DisableSelection()
	e.DocumentEnd()
	require.True(t, e.Paste())
	assert.Equal(t, "hello worldhello", plain(e))
	assert.Equal(t, 16, e.Cursor().Position)

	// The clipboard survives a paste.
	require.True(t, e.Paste())
	assert.Equal(t, "hello worldhellohello", plain(e))
}

func TestCutPaste(t *testing.T) {
	clip := &memClipboard{}
	e := newTestEngine(t, "hello world")
	e.SetClipboard(clip)

	selectRange(e, 0, 6)
	require.True(t, e.Cut())
	assert.Equal(t, "world", plain(e))
	assert.Equal(t, "hello ", clip.text)
	assert.Equal(t, 0, e.Cursor().Position)

	e.DocumentEnd()
	require.True(t, e.Paste())
	assert.Equal(t, "worldhello ", plain(e))
}

func TestPasteReplacesSelection(t *testing.T) {
	e := newTestEngine(t, "abc xyz")
	selectRange(e, 0, 3)
	require.True(t, e.Copy())

	selectRange(e, 4, 7)
	require.True(t, e.Paste())
	assert.Equal(t, "abc abc", plain(e))
}

func TestCutAcrossParagraphs(t *testing.T) {
	clip := &memClipboard{}
	e := newTestEngine(t, "ab\ncd\nef")
	e.SetClipboard(clip)

	selectRange(e, 1, 7)
	require.True(t, e.Cut())
	assert.Equal(t, "af", plain(e))
	assert.Equal(t, "b\ncd\ne", clip.text)
	assert.Equal(t, 6, e.Clipboard().Length())

	require.True(t, e.Paste())
	assert.Equal(t, "ab\ncd\nef", plain(e))
	assert.Len(t, e.doc.Children(e.doc.Root()), 3)
}

func TestCopyAcrossParagraphs(t *testing.T) {
	e := newTestEngine(t, "ab\ncd\nef")
	selectRange(e, 1, 7)
	require.True(t, e.Copy())

	assert.Equal(t, "b\ncd\ne", PlainText(e.doc, e.Clipboard().Root()))
	assert.Equal(t, "ab\ncd\nef", plain(e))

	e.DisableSelection()
	e.DocumentEnd()
	require.True(t, e.Paste())
	assert.Equal(t, "ab\ncd\nefb\ncd\ne", plain(e))
}

func TestPasteFromSystemClipboard(t *testing.T) {
	clip := &memClipboard{text: "x\r\ny"}
	e := newTestEngine(t, "ab")
	e.SetClipboard(clip)
	e.SetCursorPosition(1)

	require.True(t, e.Paste())
	assert.Equal(t, "ax\nyb", plain(e))
}

func TestPasteWithoutClipboard(t *testing.T) {
	e := newTestEngine(t, "ab")
	assert.False(t, e.Paste())

	e.SetClipboard(&memClipboard{err: errors.New("no display")})
	assert.False(t, e.Paste())
	assert.Equal(t, "ab", plain(e))
}

func TestCopyTableCellsWidensToTable(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	require.True(t, e.InsertTable(1, 2))
	e.InsertText("a")
	e.NextCell()
	e.InsertText("b")
	require.Equal(t, 4, e.Cursor().Position)

	// From the first cell into the second selects the whole table.
	selectRange(e, 1, 4)
	require.True(t, e.Copy())
	assert.Equal(t, e.doc.RecursiveLength(e.CursorTable()), e.Clipboard().Length())
	assert.Equal(t, "a\tb", PlainText(e.doc, e.Clipboard().Root()))
}

func TestWidenTables(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	require.True(t, e.InsertTable(1, 2))
	e.InsertText("ab")
	d := e.doc

	tests := []struct {
		name             string
		from, to         int
		wantFrom, wantTo int
	}{
		{"inside one cell", 1, 2, 1, 2},
		{"across cells", 1, 4, 0, 5},
		{"out of the table", 2, 6, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := d.widenTables(tt.from, tt.to)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}

func TestFragmentRefs(t *testing.T) {
	d := NewDocumentFromText("abc")
	flow := d.Head(d.Root())
	d.Remove(flow)

	f := newFragment(d, flow, 3)
	f.Retain()
	cp := f.take()
	assert.NotEqual(t, flow, cp)
	assert.True(t, d.Valid(flow))

	f.Release()
	own := f.take()
	assert.Equal(t, flow, own)
	assert.Equal(t, NoNode, f.Root())

	f.Release()
	assert.True(t, d.Valid(own))
}
