package core

type commandMode struct {
	commandBuffer string
}

func NewCommandMode() EditorMode  { return &commandMode{} }
func (m *commandMode) Name() Mode { return CommandMode }

func (m *commandMode) Enter(editor Editor, engine *Engine) {
	editor.DispatchSignal(EnterCommandModeSignal{})
	m.commandBuffer = ""      // Clear buffer on entry
	editor.UpdateStatus("")   // Clear status
	editor.UpdateCommand(":") // Show prompt
}

func (m *commandMode) Exit(editor Editor, engine *Engine) {
	editor.UpdateCommand("") // Clear command line on exit
}

func (m *commandMode) HandleKey(editor Editor, engine *Engine, key KeyEvent) *Error {
	switch key.Key {
	case KeyEscape:
		editor.SetEditMode()
		return nil

	case KeyBackspace:
		if len(m.commandBuffer) > 0 {
			runes := []rune(m.commandBuffer)
			runes = runes[:len(runes)-1]
			m.commandBuffer = string(runes)
			editor.UpdateCommand(":" + m.commandBuffer)
		} else {
			// Backspace on empty command line goes back to editing
			editor.SetEditMode()
		}
		return nil

	case KeyEnter:
		cmd := m.commandBuffer
		editor.SetEditMode()
		if err := editor.ExecuteCommand(cmd); err != nil {
			id := ErrInvalidCommandId
			switch err {
			case ErrNoChangesToSave:
				id = ErrNoChangesToSaveId
			case ErrNotInTable:
				id = ErrNotInTableId
			case ErrNothingToUndo:
				id = ErrUndoFailedId
			case ErrNothingToRedo:
				id = ErrRedoFailedId
			}
			editor.DispatchError(id, err)
		}
		return nil

	default:
		if key.Rune != 0 {
			m.commandBuffer += string(key.Rune)
			editor.UpdateCommand(":" + m.commandBuffer)
			return nil
		}
		return nil
	}
}
