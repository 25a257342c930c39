package core

// Editor represents the main editor interface
type Editor interface {
	// Document access
	GetEngine() *Engine
	GetDocument() *Document
	SetDocument(*Document) // Replace the edited document
	SetContent([]byte)     // Set the document from plain text

	// Mode handling
	GetMode() EditorMode
	SetEditMode()
	SetSelectMode()
	SetCommandMode()
	DisableCommandMode(bool)
	HasCommandMode() bool
	DisableSelectMode(bool)

	// Event handling
	HandleKey(key KeyEvent) error // Process a key press

	// State Management
	GetState() State      // Get the current editor state
	SetState(State)       // Update the editor state (used internally)
	UpdateStatus(string)  // Helper to set status line
	UpdateCommand(string) // Helper to set command line
	SetSize(width, height int)

	// Command execution (Called from Command Mode)
	ExecuteCommand(cmd string) error

	// History management
	SetMaxHistory(max uint32)
	Undo() error
	Redo() error
	Paste() error // Paste the clipboard over the selection
	Copy() error  // Copy the selection
	Cut() error   // Cut the selection
	IsModified() bool

	ScrollViewport()
	GetUpdateSignalChan() <-chan Signal  // For UI updates
	Save()                               // Save the current document
	Quit()                               // Signal to quit the editor
	DispatchError(id ErrorId, err error) // Dispatch errors to consumers
	DispatchMessage(args ...string)      // Dispatch (success) messages to consumers
	DispatchSignal(signal Signal)        // Dispatch signals to consumers

	IsEditMode() bool
	IsSelectMode() bool
	IsCommandMode() bool
}

type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}
