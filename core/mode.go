package core

import (
	"fmt"
)

type Mode string

const (
	EditMode    Mode = "edit"
	SelectMode  Mode = "select"
	CommandMode Mode = "command"
)

// EditorMode represents an editing mode
type EditorMode interface {
	Name() Mode
	// HandleKey processes a key press against the engine. It can return an
	// error or switch the editor to another mode.
	HandleKey(editor Editor, engine *Engine, key KeyEvent) *Error
	Enter(editor Editor, engine *Engine) // Called when entering the mode
	Exit(editor Editor, engine *Engine)  // Called when exiting the mode
}

type countingMode interface {
	GetCurrentCount() *int
	SetCurrentCount(count *int)
}

// getMoveCount processes numeric key presses to build a command count.
// It returns:
// - count: The calculated count (default 1 or accumulated value) if a non-digit key was pressed.
// - processedDigit: true if the key was a digit ('0'-'9') and was consumed, false otherwise.
func getMoveCount(mode countingMode, editor Editor, key KeyEvent) (count int, processedDigit bool) {
	currentCount := mode.GetCurrentCount()

	if key.Modifiers == ModNone && key.Rune >= '1' && key.Rune <= '9' {
		digit := int(key.Rune - '0')
		if currentCount == nil {
			currentCount = new(int)
		}
		*currentCount = (*currentCount * 10) + digit
		mode.SetCurrentCount(currentCount)
		editor.UpdateCommand(fmt.Sprintf("%d", *currentCount))
		return 0, true
	} else if key.Modifiers == ModNone && key.Rune == '0' {
		if currentCount != nil { // Can only append '0' if count already started
			*currentCount = *currentCount * 10
			mode.SetCurrentCount(currentCount)
			editor.UpdateCommand(fmt.Sprintf("%d", *currentCount))
			return 0, true
		}
	}

	count = 1
	if currentCount != nil {
		count = *currentCount
		mode.SetCurrentCount(nil)
		editor.UpdateCommand("")
	}

	return count, false
}
