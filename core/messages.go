package core

import "log"

var (
	EmptyMessage        = ""
	ChangesSavedMessage = "changes saved"
	CopyMessage         = "selection copied"
	CutMessage          = "selection cut"
	HistoryMessage      = "history limit changed"
	TableMessage        = "table inserted"
)

func (e *editor) DispatchMessage(args ...string) {
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case e.updateSignal <- MessageSignal{id, value}:
	default:
		log.Println("Channel is full, unable to send message signal")
	}
}
