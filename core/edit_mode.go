package core

import "strings"

// tabWidth is the number of spaces Tab types outside tables.
const tabWidth = 4

type editMode struct{}

func NewEditMode() EditorMode { return &editMode{} }

func (m *editMode) Name() Mode { return EditMode }

func (m *editMode) Enter(editor Editor, engine *Engine) {
	editor.UpdateStatus("-- EDIT --")
	editor.UpdateCommand("")
}

func (m *editMode) Exit(editor Editor, engine *Engine) {}

// extend moves the cursor with move. With Shift held the selection grows
// from the cursor, otherwise it is dropped.
func extend(engine *Engine, key KeyEvent, move func()) {
	if key.Shift() {
		if !engine.SelectionActive() {
			engine.SetMark()
		}
	} else {
		engine.DisableSelection()
	}
	move()
}

func (m *editMode) HandleKey(editor Editor, engine *Engine, key KeyEvent) *Error {
	switch {
	case key.Ctrl(' '):
		editor.SetSelectMode()
		return nil
	case key.Ctrl('o'):
		editor.SetCommandMode()
		return nil
	case key.Ctrl('c'):
		if err := editor.Copy(); err != nil {
			return &Error{id: ErrCopyFailedId, err: err}
		}
		editor.DispatchMessage(CopyMessage)
		return nil
	case key.Ctrl('x'):
		if err := editor.Cut(); err != nil {
			return &Error{id: ErrCutFailedId, err: err}
		}
		editor.DispatchMessage(CutMessage)
		return nil
	case key.Ctrl('v'):
		if err := editor.Paste(); err != nil {
			return &Error{id: ErrFailedToPasteId, err: err}
		}
		return nil
	case key.Ctrl('z'):
		if err := editor.Undo(); err != nil {
			return &Error{id: ErrUndoFailedId, err: err}
		}
		return nil
	case key.Ctrl('y'):
		if err := editor.Redo(); err != nil {
			return &Error{id: ErrRedoFailedId, err: err}
		}
		return nil
	case key.Ctrl('k'):
		engine.CutLine()
		return nil
	case key.Ctrl('a'):
		engine.SelectAll()
		return nil
	}

	switch key.Key {
	case KeyEscape:
		engine.DisableSelection()
		return nil

	case KeyEnter:
		engine.InsertEmptyParagraph()
		return nil

	case KeyTab:
		if engine.CursorTable() != NoNode {
			if key.Shift() {
				engine.PrevCell()
			} else {
				engine.NextCell()
			}
			return nil
		}
		engine.InsertText(strings.Repeat(" ", tabWidth))
		return nil

	case KeyBackspace:
		if !engine.SelectionActive() && engine.Cursor().Position == 0 {
			return &Error{id: ErrStartOfDocumentId, err: ErrStartOfDocument}
		}
		n := engine.DeleteN(1, false)
		if n > 0 {
			editor.DispatchSignal(DeleteSignal{length: n})
		}
		return nil

	case KeyDelete:
		if !engine.SelectionActive() && engine.Cursor().Position == engine.Length() {
			return &Error{id: ErrEndOfDocumentId, err: ErrEndOfDocument}
		}
		n := engine.DeleteN(1, true)
		if n > 0 {
			editor.DispatchSignal(DeleteSignal{length: n})
		}
		return nil

	case KeyLeft:
		extend(engine, key, func() { engine.Backward() })
		return nil

	case KeyRight:
		extend(engine, key, func() { engine.Forward() })
		return nil

	case KeyUp:
		extend(engine, key, func() { engine.Up() })
		return nil

	case KeyDown:
		extend(engine, key, func() { engine.Down() })
		return nil

	case KeyHome:
		extend(engine, key, func() { engine.LineStart() })
		return nil

	case KeyEnd:
		extend(engine, key, func() { engine.LineEnd() })
		return nil

	case KeyPageUp:
		extend(engine, key, func() {
			for i := 0; i < editor.GetState().ViewportHeight; i++ {
				if !engine.Up() {
					break
				}
			}
		})
		return nil

	case KeyPageDown:
		extend(engine, key, func() {
			for i := 0; i < editor.GetState().ViewportHeight; i++ {
				if !engine.Down() {
					break
				}
			}
		})
		return nil

	case KeySpace:
		engine.InsertText(" ")
		return nil
	}

	if key.Printable() {
		engine.InsertText(string(key.Rune))
	}
	return nil
}
