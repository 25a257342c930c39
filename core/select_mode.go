package core

type selectMode struct {
	currentCount *int // Count typed before a movement
}

func NewSelectMode() EditorMode {
	return &selectMode{}
}

func (m *selectMode) Name() Mode { return SelectMode }

func (m *selectMode) Enter(editor Editor, engine *Engine) {
	editor.UpdateStatus("-- SELECT --")
	editor.UpdateCommand("")
	m.currentCount = nil
	if !engine.SelectionActive() {
		engine.SetMark()
	}
}

func (m *selectMode) Exit(editor Editor, engine *Engine) {
	m.currentCount = nil
	editor.UpdateCommand("")
}

func (m *selectMode) GetCurrentCount() *int {
	return m.currentCount
}

func (m *selectMode) SetCurrentCount(count *int) {
	m.currentCount = count
}

func (m *selectMode) HandleKey(editor Editor, engine *Engine, key KeyEvent) *Error {
	if key.Key == KeyEscape || key.Ctrl(' ') {
		engine.DisableSelection()
		editor.SetEditMode()
		return nil
	}

	count, processedDigit := getMoveCount(m, editor, key)
	if processedDigit {
		return nil
	}

	repeat := func(step func() bool) {
		for i := 0; i < count; i++ {
			if !step() {
				break
			}
		}
	}

	switch key.Key {
	case KeyLeft:
		repeat(engine.Backward)
		return nil
	case KeyRight:
		repeat(engine.Forward)
		return nil
	case KeyUp:
		repeat(engine.Up)
		return nil
	case KeyDown:
		repeat(engine.Down)
		return nil
	case KeyHome:
		engine.LineStart()
		return nil
	case KeyEnd:
		engine.LineEnd()
		return nil
	}

	if key.Modifiers != ModNone {
		return nil
	}

	switch key.Rune {
	case 'h':
		repeat(engine.Backward)
	case 'l':
		repeat(engine.Forward)
	case 'k':
		repeat(engine.Up)
	case 'j':
		repeat(engine.Down)
	case '0':
		engine.LineStart()
	case '$':
		engine.LineEnd()
	case 'g':
		engine.DocumentStart()
	case 'G':
		engine.DocumentEnd()
	case 'a':
		engine.SelectAll()
	case 'P':
		engine.SelectParagraph()

	case 'd', 'x':
		if err := editor.Cut(); err != nil {
			return &Error{id: ErrCutFailedId, err: err}
		}
		editor.DispatchMessage(CutMessage)
		editor.SetEditMode()
	case 'y':
		if err := editor.Copy(); err != nil {
			return &Error{id: ErrCopyFailedId, err: err}
		}
		editor.DispatchMessage(CopyMessage)
		engine.DisableSelection()
		editor.SetEditMode()
	case 'p':
		if err := editor.Paste(); err != nil {
			return &Error{id: ErrFailedToPasteId, err: err}
		}
		editor.SetEditMode()
	case 'c':
		if !engine.SelectionActive() {
			return &Error{id: ErrNothingSelectedId, err: ErrNothingSelected}
		}
		n := engine.DeleteN(1, true)
		editor.DispatchSignal(DeleteSignal{length: n})
		editor.SetEditMode()
	case ':':
		editor.SetCommandMode()
	}

	return nil
}
