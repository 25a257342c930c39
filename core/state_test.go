package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T, content string) (*editor, *memClipboard) {
	t.Helper()
	clip := &memClipboard{}
	ed := New(clip).(*editor)
	ed.SetContent([]byte(content))
	drain(ed)
	return ed, clip
}

// drain empties the signal channel and returns what was in it.
func drain(ed *editor) []Signal {
	var signals []Signal
	for {
		select {
		case s := <-ed.GetUpdateSignalChan():
			signals = append(signals, s)
		default:
			return signals
		}
	}
}

func messages(signals []Signal) []string {
	var out []string
	for _, s := range signals {
		if m, ok := s.(MessageSignal); ok {
			_, value := m.Value()
			out = append(out, value)
		}
	}
	return out
}

func typeText(t *testing.T, ed *editor, text string) {
	t.Helper()
	for _, r := range text {
		require.NoError(t, ed.HandleKey(KeyEvent{Rune: r}))
	}
}

func ctrl(r rune) KeyEvent {
	return KeyEvent{Rune: r, Modifiers: ModCtrl}
}

func TestEditorStartsInEditMode(t *testing.T) {
	ed, _ := newTestEditor(t, "")
	assert.True(t, ed.IsEditMode())
	assert.Equal(t, "-- EDIT --", ed.GetState().StatusLine)
	assert.False(t, ed.IsModified())
}

func TestTypingMarksModified(t *testing.T) {
	ed, _ := newTestEditor(t, "world")
	typeText(t, ed, "hi ")
	assert.Equal(t, "hi world", PlainText(ed.GetDocument(), ed.GetDocument().Root()))
	assert.True(t, ed.IsModified())

	ed.Save()
	assert.False(t, ed.IsModified())

	var saved *Document
	for _, s := range drain(ed) {
		if ss, ok := s.(SaveSignal); ok {
			saved = ss.Value()
		}
	}
	assert.Same(t, ed.GetDocument(), saved)
}

func TestQuitAndWriteCommands(t *testing.T) {
	ed, _ := newTestEditor(t, "")
	assert.ErrorIs(t, ed.ExecuteCommand("w"), ErrNoChangesToSave)

	typeText(t, ed, "a")
	assert.ErrorIs(t, ed.ExecuteCommand("q"), ErrUnsavedChanges)
	assert.False(t, ed.GetState().Quit)

	require.NoError(t, ed.ExecuteCommand("w"))
	assert.False(t, ed.IsModified())
	assert.Contains(t, messages(drain(ed)), ChangesSavedMessage)

	require.NoError(t, ed.ExecuteCommand("q"))
	assert.True(t, ed.GetState().Quit)

	ed, _ = newTestEditor(t, "")
	typeText(t, ed, "b")
	require.NoError(t, ed.ExecuteCommand("q!"))
	assert.True(t, ed.GetState().Quit)
}

func TestExecuteCommandErrors(t *testing.T) {
	tests := []struct {
		cmd  string
		want error
	}{
		{"frobnicate", ErrInvalidCommand},
		{"row", ErrInvalidCommand},
		{"row sideways", ErrInvalidCommand},
		{"row after", ErrNotInTable},
		{"col before", ErrNotInTable},
		{"delrow", ErrNotInTable},
		{"delcol", ErrNotInTable},
		{"border 2", ErrNotInTable},
		{"border wide", ErrInvalidArgument},
		{"style fancy", ErrInvalidArgument},
		{"align middle", ErrInvalidArgument},
		{"table two 2", ErrInvalidArgument},
		{"table 0 2", ErrInvalidArgument},
		{"table 1000 2", ErrInvalidArgument},
		{"table 2 101", ErrInvalidArgument},
		{"rule x", ErrInvalidArgument},
		{"set history 0", ErrInvalidArgument},
		{"set tabs 4", ErrInvalidCommand},
		{"undo", ErrNothingToUndo},
		{"redo", ErrNothingToRedo},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			ed, _ := newTestEditor(t, "ab")
			assert.ErrorIs(t, ed.ExecuteCommand(tt.cmd), tt.want)
		})
	}
}

func TestTableCommands(t *testing.T) {
	ed, _ := newTestEditor(t, "")
	engine := ed.GetEngine()

	require.NoError(t, ed.ExecuteCommand("table 1 2"))
	assert.Contains(t, messages(drain(ed)), TableMessage)
	table := engine.CursorTable()
	require.NotEqual(t, NoNode, table)
	tb := ed.GetDocument().table(table)

	assert.ErrorIs(t, ed.ExecuteCommand("delrow"), ErrLastLine)

	require.NoError(t, ed.ExecuteCommand("row after"))
	assert.Equal(t, 2, tb.Rows())
	require.NoError(t, ed.ExecuteCommand("col before"))
	assert.Equal(t, 3, tb.Cols())
	require.NoError(t, ed.ExecuteCommand("delcol"))
	assert.Equal(t, 2, tb.Cols())
	require.NoError(t, ed.ExecuteCommand("delrow"))
	assert.Equal(t, 1, tb.Rows())

	require.NoError(t, ed.ExecuteCommand("border +2"))
	assert.Equal(t, 3, tb.Border)
	require.NoError(t, ed.ExecuteCommand("border 0"))
	assert.Equal(t, 0, tb.Border)
}

func TestParagraphCommands(t *testing.T) {
	ed, _ := newTestEditor(t, "ab")
	doc := ed.GetDocument()
	flow := doc.Head(doc.Root())

	require.NoError(t, ed.ExecuteCommand("style h2"))
	assert.Equal(t, ParagraphH2, doc.flow(flow).Style)

	require.NoError(t, ed.ExecuteCommand("align right"))
	assert.Equal(t, AlignRight, doc.flow(flow).Align)

	require.NoError(t, ed.ExecuteCommand("indent"))
	require.NoError(t, ed.ExecuteCommand("indent"))
	require.NoError(t, ed.ExecuteCommand("outdent"))
	assert.Equal(t, 1, doc.flow(flow).Level)

	require.NoError(t, ed.ExecuteCommand("rule 50%"))
	assert.Equal(t, 3, ed.GetEngine().Length())
}

func TestToggleFlagCommands(t *testing.T) {
	ed, _ := newTestEditor(t, "")
	require.NoError(t, ed.ExecuteCommand("bold"))
	require.NoError(t, ed.ExecuteCommand("bold"))
	require.NoError(t, ed.ExecuteCommand("italic"))
	assert.Equal(t, []string{"bold on", "bold off", "italic on"}, messages(drain(ed)))
}

func TestSetHistory(t *testing.T) {
	ed, _ := newTestEditor(t, "")
	require.NoError(t, ed.ExecuteCommand("set history 5"))
	assert.Equal(t, 5, ed.GetEngine().History().Limit())
	assert.Contains(t, messages(drain(ed)), HistoryMessage)
}

func TestUndoRedoErrors(t *testing.T) {
	ed, _ := newTestEditor(t, "")
	assert.ErrorIs(t, ed.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, ed.HandleKey(ctrl('z')), ErrNothingToUndo)
	assert.ErrorIs(t, ed.Redo(), ErrNothingToRedo)

	typeText(t, ed, "a")
	require.NoError(t, ed.HandleKey(ctrl('z')))
	assert.Equal(t, "", PlainText(ed.GetDocument(), ed.GetDocument().Root()))
	require.NoError(t, ed.HandleKey(ctrl('y')))
	assert.Equal(t, "a", PlainText(ed.GetDocument(), ed.GetDocument().Root()))
}

func TestCopyWithoutSelection(t *testing.T) {
	ed, _ := newTestEditor(t, "ab")
	assert.ErrorIs(t, ed.Copy(), ErrNothingSelected)
	assert.ErrorIs(t, ed.Cut(), ErrNothingSelected)
	assert.ErrorIs(t, ed.HandleKey(ctrl('c')), ErrNothingSelected)
}

func TestPasteErrors(t *testing.T) {
	ed, _ := newTestEditor(t, "ab")
	assert.ErrorIs(t, ed.Paste(), ErrClipboardEmpty)

	bare := New(nil)
	assert.ErrorIs(t, bare.Paste(), ErrClipboardMissing)
}

func TestDocumentEdges(t *testing.T) {
	ed, _ := newTestEditor(t, "ab")
	assert.ErrorIs(t, ed.HandleKey(KeyEvent{Key: KeyBackspace}), ErrStartOfDocument)
	ed.GetEngine().DocumentEnd()
	assert.ErrorIs(t, ed.HandleKey(KeyEvent{Key: KeyDelete}), ErrEndOfDocument)

	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyBackspace}))
	assert.Equal(t, "a", PlainText(ed.GetDocument(), ed.GetDocument().Root()))
}

func TestShiftArrowsSelect(t *testing.T) {
	ed, _ := newTestEditor(t, "hello")
	engine := ed.GetEngine()

	shiftRight := KeyEvent{Key: KeyRight, Modifiers: ModShift}
	require.NoError(t, ed.HandleKey(shiftRight))
	require.NoError(t, ed.HandleKey(shiftRight))
	from, to, ok := engine.Selection()
	require.True(t, ok)
	assert.Equal(t, 0, from.Position)
	assert.Equal(t, 2, to.Position)

	require.NoError(t, ed.HandleKey(ctrl('x')))
	assert.Equal(t, "llo", PlainText(ed.GetDocument(), ed.GetDocument().Root()))
	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyEnd}))
	require.NoError(t, ed.HandleKey(ctrl('v')))
	assert.Equal(t, "llohe", PlainText(ed.GetDocument(), ed.GetDocument().Root()))

	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyRight}))
	assert.False(t, engine.SelectionActive())
}

func TestTabKey(t *testing.T) {
	ed, _ := newTestEditor(t, "ab")
	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyTab}))
	assert.Equal(t, "    ab", PlainText(ed.GetDocument(), ed.GetDocument().Root()))

	ed, _ = newTestEditor(t, "")
	engine := ed.GetEngine()
	require.NoError(t, ed.ExecuteCommand("table 1 2"))

	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyTab}))
	cell, _ := engine.cursorCell()
	assert.Equal(t, 1, ed.GetDocument().cell(cell).Col())

	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyTab, Modifiers: ModShift}))
	cell, _ = engine.cursorCell()
	assert.Equal(t, 0, ed.GetDocument().cell(cell).Col())
}

func TestSelectMode(t *testing.T) {
	ed, clip := newTestEditor(t, "hello")
	engine := ed.GetEngine()

	require.NoError(t, ed.HandleKey(ctrl(' ')))
	require.True(t, ed.IsSelectMode())
	assert.Equal(t, "-- SELECT --", ed.GetState().StatusLine)

	typeText(t, ed, "ll")
	from, to, ok := engine.Selection()
	require.True(t, ok)
	assert.Equal(t, 0, from.Position)
	assert.Equal(t, 2, to.Position)

	typeText(t, ed, "y")
	assert.True(t, ed.IsEditMode())
	assert.False(t, engine.SelectionActive())
	assert.Equal(t, "he", clip.text)
}

func TestSelectModeCount(t *testing.T) {
	ed, clip := newTestEditor(t, "hello")

	require.NoError(t, ed.HandleKey(ctrl(' ')))
	typeText(t, ed, "3")
	assert.Equal(t, "3", ed.GetState().CommandLine)
	typeText(t, ed, "l")
	assert.Equal(t, "", ed.GetState().CommandLine)

	typeText(t, ed, "d")
	assert.True(t, ed.IsEditMode())
	assert.Equal(t, "lo", PlainText(ed.GetDocument(), ed.GetDocument().Root()))
	assert.Equal(t, "hel", clip.text)
}

func TestSelectModeEscape(t *testing.T) {
	ed, _ := newTestEditor(t, "hello")
	require.NoError(t, ed.HandleKey(ctrl(' ')))
	typeText(t, ed, "G")
	assert.True(t, ed.GetEngine().SelectionActive())

	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyEscape}))
	assert.True(t, ed.IsEditMode())
	assert.False(t, ed.GetEngine().SelectionActive())

	ed.DisableSelectMode(true)
	require.NoError(t, ed.HandleKey(ctrl(' ')))
	assert.True(t, ed.IsEditMode())
}

func TestCommandModeKeys(t *testing.T) {
	ed, _ := newTestEditor(t, "")

	require.NoError(t, ed.HandleKey(ctrl('o')))
	require.True(t, ed.IsCommandMode())
	assert.Equal(t, ":", ed.GetState().CommandLine)

	typeText(t, ed, "tablx")
	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyBackspace}))
	typeText(t, ed, "e")
	assert.Equal(t, ":table", ed.GetState().CommandLine)

	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyEnter}))
	assert.True(t, ed.IsEditMode())
	assert.NotEqual(t, NoNode, ed.GetEngine().CursorTable())
}

func TestCommandModeReportsErrors(t *testing.T) {
	ed, _ := newTestEditor(t, "")

	require.NoError(t, ed.HandleKey(ctrl('o')))
	typeText(t, ed, "zz")
	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyEnter}))

	var got []ErrorId
	for _, s := range drain(ed) {
		if es, ok := s.(ErrorSignal); ok {
			id, err := es.Value()
			assert.ErrorIs(t, err, ErrInvalidCommand)
			got = append(got, id)
		}
	}
	assert.Equal(t, []ErrorId{ErrInvalidCommandId}, got)

	// Backspace on an empty command line returns to editing.
	require.NoError(t, ed.HandleKey(ctrl('o')))
	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyBackspace}))
	assert.True(t, ed.IsEditMode())

	ed.DisableCommandMode(true)
	assert.False(t, ed.HasCommandMode())
	require.NoError(t, ed.HandleKey(ctrl('o')))
	assert.True(t, ed.IsEditMode())
}

func TestScrollViewport(t *testing.T) {
	ed, _ := newTestEditor(t, "a\nb\nc\nd")
	ed.SetSize(20, 2)

	for i := 0; i < 3; i++ {
		require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyDown}))
	}
	assert.Equal(t, 2, ed.GetState().TopLine)

	require.NoError(t, ed.HandleKey(ctrl('a')))
	require.NoError(t, ed.HandleKey(KeyEvent{Key: KeyPageUp}))
	assert.Equal(t, 1, ed.GetState().TopLine)
}

func TestEditsSendRelayoutSignals(t *testing.T) {
	ed, _ := newTestEditor(t, "")
	typeText(t, ed, "a")

	var relayouts, redraws int
	for _, s := range drain(ed) {
		switch s.(type) {
		case RelayoutSignal:
			relayouts++
		case RedrawSignal:
			redraws++
		}
	}
	assert.Equal(t, 1, relayouts)
	assert.Equal(t, 1, redraws)
}

func TestKeyEventString(t *testing.T) {
	assert.Equal(t, "x", KeyEvent{Rune: 'x'}.String())
	assert.Equal(t, "Ctrl+Shift+z", KeyEvent{Rune: 'z', Modifiers: ModCtrl | ModShift}.String())
	assert.Equal(t, "Alt+PageDown", KeyEvent{Key: KeyPageDown, Modifiers: ModAlt}.String())
	assert.Equal(t, "Unknown", KeyEvent{}.String())
	assert.Equal(t, "SpecialKey(99)", KeyEvent{Key: 99}.String())
}
