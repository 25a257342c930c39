package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRightLeftClamp(t *testing.T) {
	e := newTestEngine(t, "abc")

	assert.Equal(t, 2, e.Right(2))
	assert.Equal(t, 2, e.Cursor().Position)
	assert.Equal(t, 1, e.Right(5))
	assert.Equal(t, 0, e.Right(1))
	assert.False(t, e.Forward())

	assert.Equal(t, 3, e.Left(10))
	assert.Equal(t, 0, e.Cursor().Position)
	assert.False(t, e.Backward())
}

func TestMoveCursor(t *testing.T) {
	e := newTestEngine(t, "abc")

	assert.Equal(t, 2, e.MoveCursor(MoveRight, 2))
	assert.Equal(t, 0, e.MoveCursor(MoveLeft, 1))
	assert.Equal(t, 0, e.MoveCursor(MoveRight, 0))
	assert.Equal(t, 2, e.Cursor().Position)
}

func TestForwardCrossesParagraphs(t *testing.T) {
	e := newTestEngine(t, "ab\ncd")
	e.SetCursorPosition(2)

	require.True(t, e.Forward())
	c := e.Cursor()
	assert.Equal(t, 3, c.Position)
	assert.Equal(t, "cd", e.doc.text(c.Object).String())
	assert.Equal(t, 0, c.Offset)
}

func TestDocumentStartEnd(t *testing.T) {
	e := newTestEngine(t, "ab\ncd")

	e.DocumentEnd()
	assert.Equal(t, 5, e.Cursor().Position)
	e.DocumentStart()
	assert.Equal(t, 0, e.Cursor().Position)
}

func TestUpDown(t *testing.T) {
	e := newTestEngine(t, "abc\ndef")
	e.SetCursorPosition(1)

	require.True(t, e.Down())
	assert.Equal(t, 5, e.Cursor().Position)
	assert.False(t, e.Down())

	require.True(t, e.Up())
	assert.Equal(t, 1, e.Cursor().Position)
	assert.False(t, e.Up())
}

func TestVerticalKeepsTargetColumn(t *testing.T) {
	e := newTestEngine(t, "abcd\nx\nabcd")
	e.SetCursorPosition(3)

	require.True(t, e.Down())
	assert.Equal(t, 6, e.Cursor().Position)
	require.True(t, e.Down())
	assert.Equal(t, 10, e.Cursor().Position)
}

func TestLineStartEnd(t *testing.T) {
	e := newTestEngine(t, "abc\ndef")
	e.SetCursorPosition(5)

	require.True(t, e.LineEnd())
	assert.Equal(t, 7, e.Cursor().Position)
	assert.False(t, e.LineEnd())

	require.True(t, e.LineStart())
	assert.Equal(t, 4, e.Cursor().Position)
	assert.False(t, e.LineStart())
}

func TestWrappedLines(t *testing.T) {
	opts := DefaultOptions()
	opts.PageWidth = 5
	e := NewEngine(NewDocumentFromText("aaa bbb"), opts)

	_, h := e.doc.Size()
	assert.Equal(t, 2, h)

	e.SetCursorPosition(1)
	require.True(t, e.Down())
	x, y := e.CursorXY()
	assert.Equal(t, 1, y)
	assert.Equal(t, 1, x)
	assert.Equal(t, 5, e.Cursor().Position)

	assert.False(t, e.LineStart())
	require.True(t, e.LineEnd())
	assert.Equal(t, 7, e.Cursor().Position)
	require.True(t, e.LineStart())
	assert.Equal(t, 5, e.Cursor().Position)
}

func TestCursorXY(t *testing.T) {
	e := newTestEngine(t, "abc\ndef")

	e.SetCursorPosition(2)
	x, y := e.CursorXY()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)

	e.SetCursorPosition(7)
	x, y = e.CursorXY()
	assert.Equal(t, 3, x)
	assert.Equal(t, 1, y)
}

func TestCursorInTable(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	require.True(t, e.InsertTable(2, 2))

	require.True(t, e.NextCell())
	assert.Equal(t, 2, e.Cursor().Position)
	require.True(t, e.NextCell())
	require.True(t, e.NextCell())
	assert.Equal(t, 4, e.Cursor().Position)
	assert.False(t, e.NextCell())

	require.True(t, e.PrevCell())
	assert.Equal(t, 3, e.Cursor().Position)

	e.DocumentEnd()
	assert.Equal(t, NoNode, e.CursorTable())
	assert.False(t, e.NextCell())
}
