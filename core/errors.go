package core

import (
	"errors"
	"log"
)

var (
	ErrInvalidMode      = errors.New("invalid mode")
	ErrInvalidCommand   = errors.New("invalid command")
	ErrNoChangesToSave  = errors.New("no changes to save")
	ErrNothingSelected  = errors.New("nothing selected")
	ErrClipboardEmpty   = errors.New("clipboard is empty")
	ErrNotInTable       = errors.New("cursor is not in a table")
	ErrLastLine         = errors.New("cannot delete the last row or column")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrStartOfDocument  = errors.New("start of document")
	ErrEndOfDocument    = errors.New("end of document")
	ErrNothingToUndo    = errors.New("already at oldest change")
	ErrNothingToRedo    = errors.New("already at newest change")
	ErrUnsavedChanges   = errors.New("unsaved changes (use q! to override)")
	ErrClipboardMissing = errors.New("clipboard handler not set")
)

type ErrorId int

const (
	ErrInvalidModeId ErrorId = iota
	ErrInvalidCommandId
	ErrNoChangesToSaveId
	ErrNothingSelectedId
	ErrStartOfDocumentId
	ErrEndOfDocumentId
	ErrNotInTableId
	ErrFailedToSaveId
	ErrFailedToPasteId
	ErrUndoFailedId
	ErrRedoFailedId
	ErrCopyFailedId
	ErrCutFailedId
)

type Error struct {
	id  ErrorId
	err error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		log.Println("Channel is full, unable to send error signal")
	}
}
