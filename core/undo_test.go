package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndoRedoText(t *testing.T) {
	e := newTestEngine(t, "ad")
	e.SetCursorPosition(1)
	e.InsertText("bc")

	require.True(t, e.Undo())
	assert.Equal(t, "ad", plain(e))
	assert.Equal(t, 1, e.Cursor().Position)

	require.True(t, e.Redo())
	assert.Equal(t, "abcd", plain(e))
	assert.Equal(t, 3, e.Cursor().Position)

	require.True(t, e.Undo())
	assert.Equal(t, "ad", plain(e))
	assert.False(t, e.Undo())
}

func TestUndoParagraphBreak(t *testing.T) {
	e := newTestEngine(t, "abcd")
	e.SetCursorPosition(2)
	e.InsertEmptyParagraph()
	require.Equal(t, "ab\ncd", plain(e))

	require.True(t, e.Undo())
	assert.Equal(t, "abcd", plain(e))
	assert.Len(t, e.doc.Children(e.doc.Root()), 1)

	require.True(t, e.Redo())
	assert.Equal(t, "ab\ncd", plain(e))
}

func TestUndoDelete(t *testing.T) {
	e := newTestEngine(t, "ab\ncd\nef")
	e.SetCursorPosition(1)
	require.Equal(t, 5, e.DeleteN(5, true))
	require.Equal(t, "aef", plain(e))

	require.True(t, e.Undo())
	assert.Equal(t, "ab\ncd\nef", plain(e))
	assert.Equal(t, 6, e.Cursor().Position)

	require.True(t, e.Redo())
	assert.Equal(t, "aef", plain(e))
}

func TestUndoCutAndPaste(t *testing.T) {
	e := newTestEngine(t, "hello world")
	selectRange(e, 0, 6)
	require.True(t, e.Cut())
	e.DocumentEnd()
	require.True(t, e.Paste())
	require.Equal(t, "worldhello ", plain(e))

	require.True(t, e.Undo())
	assert.Equal(t, "world", plain(e))
	require.True(t, e.Undo())
	assert.Equal(t, "hello world", plain(e))

	// The clipboard still holds the cut text.
	assert.Equal(t, "hello ", PlainText(e.doc, e.Clipboard().Root()))

	require.True(t, e.Redo())
	require.True(t, e.Redo())
	assert.Equal(t, "worldhello ", plain(e))
	assert.False(t, e.Redo())
}

func TestNewEditDiscardsRedo(t *testing.T) {
	e := newTestEngine(t, "")
	e.InsertText("a")
	e.InsertText("b")
	require.True(t, e.Undo())
	require.True(t, e.History().CanRedo())

	e.InsertText("c")
	assert.False(t, e.History().CanRedo())
	assert.False(t, e.Redo())
	assert.Equal(t, "ac", plain(e))
}

func TestUndoLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.HistoryLimit = 2
	e := NewEngine(NewDocumentFromText(""), opts)

	e.InsertText("a")
	e.InsertText("b")
	e.InsertText("c")
	assert.Equal(t, []string{"Insert text", "Insert text"}, e.History().UndoDescriptions())

	require.True(t, e.Undo())
	require.True(t, e.Undo())
	assert.False(t, e.Undo())
	assert.Equal(t, "a", plain(e))

	e.History().SetLimit(0)
	assert.Equal(t, 1, e.History().Limit())
}

func TestHistoryVersion(t *testing.T) {
	e := newTestEngine(t, "")
	h := e.History()
	v := h.Version()

	e.InsertText("a")
	assert.Greater(t, h.Version(), v)

	v = h.Version()
	e.Undo()
	assert.NotEqual(t, v, h.Version())

	v = h.Version()
	e.SetCursorPosition(0)
	assert.Equal(t, v, h.Version())
}

func TestUndoStackReset(t *testing.T) {
	e := newTestEngine(t, "")
	e.InsertText("a")
	e.InsertText("b")
	e.Undo()

	e.History().Reset()
	assert.False(t, e.History().CanUndo())
	assert.False(t, e.History().CanRedo())
	assert.Empty(t, e.History().UndoDescriptions())
}

func TestUndoDirectionReverse(t *testing.T) {
	assert.Equal(t, DirRedo, DirUndo.Reverse())
	assert.Equal(t, DirUndo, DirRedo.Reverse())
}

// assertCanonical checks that no flow holds two neighbouring runs of the
// same style or an empty run beside other leaves.
func assertCanonical(t *testing.T, d *Document) {
	t.Helper()
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if d.Kind(id) == KindFlow {
			var leaves []NodeID
			for _, c := range d.Children(id) {
				if d.Kind(c) != KindTextSlave {
					leaves = append(leaves, c)
				}
			}
			for i, c := range leaves {
				if d.isEmptyText(c) {
					assert.Len(t, leaves, 1, "empty run beside other leaves in flow %d", id)
				}
				if i == 0 {
					continue
				}
				if a, b := d.text(leaves[i-1]), d.text(c); a != nil && b != nil {
					assert.NotEqual(t, a.Style, b.Style, "unjoined runs in flow %d", id)
				}
			}
		}
		for _, c := range d.Children(id) {
			walk(c)
		}
	}
	walk(d.Root())
}

func TestUndoRestoresTreeNextToTable(t *testing.T) {
	tests := []struct {
		name     string
		at       int
		from, to int
	}{
		{"delete from the table into the last paragraph", 20, 23, 31},
		{"join the paragraph after the table", 24, 26, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, "hello world\nsecond para\nthird")
			before := dumpTree(e.doc)

			e.SetCursorPosition(tt.at)
			require.True(t, e.InsertTable(1, 1))
			assertCanonical(t, e.doc)
			withTable := dumpTree(e.doc)

			selectRange(e, tt.from, tt.to)
			require.True(t, e.Delete())
			assertCanonical(t, e.doc)
			deleted := dumpTree(e.doc)

			require.True(t, e.Undo())
			assert.Equal(t, withTable, dumpTree(e.doc))
			assertCanonical(t, e.doc)
			require.True(t, e.Undo())
			assert.Equal(t, before, dumpTree(e.doc))
			assert.Equal(t, "hello world\nsecond para\nthird", plain(e))
			assert.False(t, e.Undo())

			require.True(t, e.Redo())
			assert.Equal(t, withTable, dumpTree(e.doc))
			require.True(t, e.Redo())
			assert.Equal(t, deleted, dumpTree(e.doc))
		})
	}
}

func TestUndoTypedParagraphsInEmptyDocument(t *testing.T) {
	e := newTestEngine(t, "")
	before := dumpTree(e.doc)

	e.InsertText("ab\ncd")
	require.Equal(t, "ab\ncd", plain(e))
	require.Len(t, e.doc.Children(e.doc.Root()), 2)

	require.True(t, e.Undo())
	assert.Equal(t, before, dumpTree(e.doc))
	assert.Len(t, e.doc.Children(e.doc.Root()), 1)
	assert.Equal(t, 0, e.Length())
	assert.False(t, e.Undo())
}

func TestRepeatedUndoRedoOfParagraphDelete(t *testing.T) {
	e := newTestEngine(t, "ab\ncd\nef")
	before := dumpTree(e.doc)

	selectRange(e, 3, 6)
	require.True(t, e.Delete())
	require.Equal(t, "ab\nef", plain(e))
	deleted := dumpTree(e.doc)

	for i := range 3 {
		require.True(t, e.Undo())
		assert.Equal(t, before, dumpTree(e.doc), "undo %d", i)
		assert.Equal(t, "ab\ncd\nef", plain(e))
		require.True(t, e.Redo())
		assert.Equal(t, deleted, dumpTree(e.doc), "redo %d", i)
		assert.Equal(t, "ab\nef", plain(e))
	}
	require.True(t, e.Undo())
	assert.False(t, e.Undo())
}

// randomEdit moves the cursor somewhere in the document and applies one
// editing command there.
func randomEdit(e *Engine, rng *rand.Rand) {
	e.SetCursorPosition(rng.Intn(e.Length() + 1))
	switch rng.Intn(6) {
	case 0:
		e.InsertText([]string{"x", "ab", "q r", "a\nb"}[rng.Intn(4)])
	case 1:
		e.InsertEmptyParagraph()
	case 2:
		e.DeleteN(1+rng.Intn(3), rng.Intn(2) == 0)
	case 3:
		selectRange(e, e.Cursor().Position, rng.Intn(e.Length()+1))
		e.Delete()
	case 4:
		if e.CursorTable() == NoNode {
			e.InsertTable(1+rng.Intn(2), 1+rng.Intn(2))
		}
	case 5:
		if e.Clipboard() == nil || rng.Intn(2) == 0 {
			selectRange(e, e.Cursor().Position, rng.Intn(e.Length()+1))
			e.Cut()
		} else if e.CursorTable() == NoNode {
			e.Paste()
		}
	}
}

func TestRandomEditsUndoToTheSameTree(t *testing.T) {
	type state struct {
		tree, text string
		actions    int
	}
	rng := rand.New(rand.NewSource(1))
	for run := range 50 {
		e := newTestEngine(t, "hello world\nsecond para\nthird")
		states := []state{{tree: dumpTree(e.doc), text: plain(e)}}
		for range 12 {
			pending := len(e.History().UndoDescriptions())
			randomEdit(e, rng)
			n := len(e.History().UndoDescriptions()) - pending
			if n == 0 {
				continue
			}
			assertCanonical(t, e.doc)
			states = append(states, state{dumpTree(e.doc), plain(e), n})
		}

		for i := len(states) - 1; i > 0; i-- {
			for range states[i].actions {
				require.True(t, e.Undo())
			}
			require.Equal(t, states[i-1].text, plain(e), "run %d undo to %d", run, i-1)
			require.Equal(t, states[i-1].tree, dumpTree(e.doc), "run %d undo to %d", run, i-1)
		}
		for i := 1; i < len(states); i++ {
			for range states[i].actions {
				require.True(t, e.Redo())
			}
			require.Equal(t, states[i].text, plain(e), "run %d redo to %d", run, i)
			require.Equal(t, states[i].tree, dumpTree(e.doc), "run %d redo to %d", run, i)
		}
	}
}
