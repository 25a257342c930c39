package core

import (
	"fmt"
	"log"
	"strconv"
	"strings"
)

// State represents the complete current state of the editor
type State struct {
	Mode        Mode   // Current editing mode (Edit, Select, Command)
	StatusLine  string // Content of the status line (bottom line)
	CommandLine string // Current command being typed or message to display
	Quit        bool   // Flag indicating if the editor should exit

	// Viewport information
	TopLine        int // First document row visible in the viewport
	ViewportHeight int // Number of rows that can be displayed
	ViewportWidth  int // Number of columns that can be displayed

	// Error/Message Display
	Message string // Temporary message to display

	AvailableWidth int // Width available for document layout

	WithCommandMode bool // Whether command mode is enabled

	WithSelectMode bool // Whether select mode is enabled
}

// maxTableLines bounds the rows and columns of a table made by the
// table command.
const maxTableLines = 100

// InitialState creates a default state
func InitialState() State {
	return State{
		Mode:           EditMode,
		StatusLine:     "-- EDIT --",
		CommandLine:    "",
		TopLine:        0,
		ViewportHeight: 24,
		ViewportWidth:  80,
		AvailableWidth: 80,
		Message:        "",
		Quit:           false,

		WithCommandMode: true,
		WithSelectMode:  true,
	}
}

// Concrete implementation of Editor
type editor struct {
	engine      *Engine
	currentMode EditorMode
	modes       map[Mode]EditorMode
	state       State

	savedVersion int // History version of the last save

	clipboard    Clipboard // Clipboard interface for copy/paste
	updateSignal chan Signal
}

// New creates a new editor instance
func New(clipboard Clipboard) Editor {
	e := &editor{
		modes:        make(map[Mode]EditorMode),
		state:        InitialState(),
		clipboard:    clipboard,
		updateSignal: make(chan Signal, 100), // Buffered channel for updates
	}

	opts := DefaultOptions()
	opts.Clipboard = clipboard
	opts.Driver = &signalDriver{editor: e}
	opts.PageWidth = e.state.AvailableWidth
	e.engine = NewEngine(nil, opts)

	e.modes[EditMode] = NewEditMode()
	e.modes[SelectMode] = NewSelectMode()
	e.modes[CommandMode] = NewCommandMode()

	e.currentMode = e.modes[e.state.Mode]
	e.currentMode.Enter(e, e.engine)

	return e
}

// SetMaxHistory allows setting the maximum number of history entries.
// Default is 1000.
func (e *editor) SetMaxHistory(max uint32) {
	e.engine.History().SetLimit(int(max))
}

func (e *editor) DisableCommandMode(disable bool) {
	e.state.WithCommandMode = !disable
}

func (e *editor) HasCommandMode() bool {
	return e.state.WithCommandMode
}

func (e *editor) DisableSelectMode(disable bool) {
	e.state.WithSelectMode = !disable
}

func (e *editor) setMode(modeName Mode) error {
	newMode, ok := e.modes[modeName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidMode, modeName)
	}

	if e.currentMode != nil {
		e.currentMode.Exit(e, e.engine)
	}

	e.currentMode = newMode
	e.state.Mode = modeName
	e.currentMode.Enter(e, e.engine)

	return nil
}

func (e *editor) SetEditMode() {
	e.setMode(EditMode)
}

func (e *editor) SetSelectMode() {
	if !e.state.WithSelectMode {
		return
	}

	e.setMode(SelectMode)
}

func (e *editor) SetCommandMode() {
	if !e.state.WithCommandMode {
		return
	}

	e.setMode(CommandMode)
}

func (e *editor) GetEngine() *Engine {
	return e.engine
}

func (e *editor) GetDocument() *Document {
	return e.engine.Document()
}

func (e *editor) SetDocument(doc *Document) {
	e.engine.SetDocument(doc)
	e.savedVersion = e.engine.History().Version()
	e.state.TopLine = 0
	e.UpdateStatus(fmt.Sprintf("-- %s --", strings.ToUpper(string(e.state.Mode))))
	e.ScrollViewport()
}

// SetContent replaces the document with plain text, one paragraph per
// line.
func (e *editor) SetContent(content []byte) {
	e.SetDocument(NewDocumentFromText(string(content)))
}

func (e *editor) SetSize(width, height int) {
	e.state.ViewportWidth = width
	e.state.ViewportHeight = height
	e.state.AvailableWidth = width
	e.engine.SetWidth(width)
	e.ScrollViewport()
}

func (e *editor) GetMode() EditorMode {
	return e.currentMode
}

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal // Return the read-only channel
}

func (e *editor) HandleKey(key KeyEvent) error {
	if e.currentMode == nil {
		return ErrInvalidMode
	}

	err := e.currentMode.HandleKey(e, e.engine, key)

	// Update derived state AFTER handling key
	e.ScrollViewport()

	if err != nil {
		return err.err
	}

	return nil
}

func (e *editor) GetState() State {
	return e.state
}

// SetState allows internal updates (e.g., from modes)
func (e *editor) SetState(state State) {
	e.state = state
}

// UpdateStatus is a helper for modes to update the status line
func (e *editor) UpdateStatus(status string) {
	e.state.StatusLine = status
}

// UpdateCommand is a helper for modes to update the command line
func (e *editor) UpdateCommand(cmd string) {
	e.state.CommandLine = cmd
}

func (e *editor) IsModified() bool {
	return e.engine.History().Version() != e.savedVersion
}

// ExecuteCommand executes a command string (typically entered in command mode)
func (e *editor) ExecuteCommand(cmd string) error {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	parts := strings.Fields(cmd)
	command := parts[0]
	args := parts[1:]
	engine := e.engine

	switch command {
	case "q", "quit":
		if e.IsModified() {
			return ErrUnsavedChanges
		}
		e.Quit()
		return nil

	case "q!", "quit!":
		e.Quit()
		return nil

	case "w", "write":
		if !e.IsModified() {
			return ErrNoChangesToSave
		}

		e.DispatchMessage(ChangesSavedMessage)
		e.Save()
		return nil

	case "wq":
		if e.IsModified() {
			e.Save()
		}
		e.Quit()
		return nil

	case "set":
		if len(args) == 2 && args[0] == "history" {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: %s", ErrInvalidArgument, args[1])
			}
			e.SetMaxHistory(uint32(n))
			e.DispatchMessage(HistoryMessage)
			return nil
		}
		return ErrInvalidCommand

	case "undo":
		return e.Undo()

	case "redo":
		return e.Redo()

	case "table":
		rows, cols := 2, 2
		if len(args) == 2 {
			var err error
			if rows, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidArgument, args[0])
			}
			if cols, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("%w: %s", ErrInvalidArgument, args[1])
			}
		}
		if rows > maxTableLines || cols > maxTableLines || !engine.InsertTable(rows, cols) {
			return fmt.Errorf("%w: table %d %d", ErrInvalidArgument, rows, cols)
		}
		e.DispatchMessage(TableMessage)
		return nil

	case "rule":
		percent := 100
		if len(args) == 1 {
			n, err := strconv.Atoi(strings.TrimSuffix(args[0], "%"))
			if err != nil || n <= 0 {
				return fmt.Errorf("%w: %s", ErrInvalidArgument, args[0])
			}
			percent = n
		}
		engine.InsertRule(0, percent, 1, false, AlignCenter)
		return nil

	case "row", "col":
		if len(args) != 1 || (args[0] != "after" && args[0] != "before") {
			return ErrInvalidCommand
		}
		after := args[0] == "after"
		var ok bool
		if command == "row" {
			ok = engine.InsertTableRow(after)
		} else {
			ok = engine.InsertTableColumn(after)
		}
		if !ok {
			return ErrNotInTable
		}
		return nil

	case "delrow", "delcol":
		if engine.CursorTable() == NoNode {
			return ErrNotInTable
		}
		var ok bool
		if command == "delrow" {
			ok = engine.DeleteTableRow()
		} else {
			ok = engine.DeleteTableColumn()
		}
		if !ok {
			return ErrLastLine
		}
		return nil

	case "border":
		if len(args) != 1 {
			return ErrInvalidCommand
		}
		relative := strings.HasPrefix(args[0], "+") || strings.HasPrefix(args[0], "-")
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, args[0])
		}
		if engine.CursorTable() == NoNode {
			return ErrNotInTable
		}
		engine.SetBorderWidth(n, relative)
		return nil

	case "style":
		if len(args) != 1 {
			return ErrInvalidCommand
		}
		style, ok := ParseParagraphStyle(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, args[0])
		}
		engine.SetParagraphStyle(style)
		return nil

	case "align":
		if len(args) != 1 {
			return ErrInvalidCommand
		}
		align, ok := ParseAlignment(args[0])
		if !ok {
			return fmt.Errorf("%w: %s", ErrInvalidArgument, args[0])
		}
		engine.SetParagraphAlignment(align)
		return nil

	case "indent", "outdent":
		delta := 1
		if command == "outdent" {
			delta = -1
		}
		engine.IndentParagraph(delta)
		return nil

	case "link":
		if len(args) < 1 || len(args) > 2 {
			return ErrInvalidCommand
		}
		target := ""
		if len(args) == 2 {
			target = args[1]
		}
		engine.InsertLink(args[0], target)
		return nil

	case "unlink":
		engine.InsertLink("", "")
		return nil

	case "bold", "italic", "underline", "strike", "fixed":
		flags := map[string]InsertionFlag{
			"bold":      FlagBold,
			"italic":    FlagItalic,
			"underline": FlagUnderline,
			"strike":    FlagStrikeout,
			"fixed":     FlagFixed,
		}
		on := engine.ToggleInsertionFlag(flags[command])
		e.DispatchMessage(command, fmt.Sprintf("%s %s", command, onOff(on)))
		return nil

	default:
		return ErrInvalidCommand
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// ScrollViewport ensures the cursor is within the visible area
func (e *editor) ScrollViewport() {
	_, row := e.engine.CursorXY()

	if row < e.state.TopLine {
		e.state.TopLine = row
	} else if row >= e.state.TopLine+e.state.ViewportHeight {
		// Scroll down so cursor is on the last line of the viewport
		e.state.TopLine = row - e.state.ViewportHeight + 1
	}

	if e.state.TopLine < 0 {
		e.state.TopLine = 0
	}
}

func (e *editor) Undo() error {
	if !e.engine.Undo() {
		return ErrNothingToUndo
	}
	e.DispatchSignal(UndoSignal{})
	return nil
}

func (e *editor) Redo() error {
	if !e.engine.Redo() {
		return ErrNothingToRedo
	}
	e.DispatchSignal(RedoSignal{})
	return nil
}

func (e *editor) Paste() error {
	before := e.engine.Length()
	if !e.engine.Paste() {
		if e.engine.Clipboard() == nil && e.clipboard == nil {
			return ErrClipboardMissing
		}
		return ErrClipboardEmpty
	}
	e.DispatchSignal(PasteSignal{length: e.engine.Length() - before})
	return nil
}

// Copy puts the selection in the clipboard.
func (e *editor) Copy() error {
	from, to, ok := e.engine.Selection()
	if !ok {
		return ErrNothingSelected
	}
	if !e.engine.Copy() {
		return fmt.Errorf("failed to copy selection %d-%d", from.Position, to.Position)
	}
	e.DispatchSignal(CopySignal{length: to.Position - from.Position})
	return nil
}

// Cut removes the selection into the clipboard.
func (e *editor) Cut() error {
	from, to, ok := e.engine.Selection()
	if !ok {
		return ErrNothingSelected
	}
	if !e.engine.Cut() {
		return fmt.Errorf("failed to cut selection %d-%d", from.Position, to.Position)
	}
	e.DispatchSignal(CutSignal{length: to.Position - from.Position})
	return nil
}

func (e *editor) Save() {
	e.savedVersion = e.engine.History().Version()
	signal := SaveSignal{doc: e.engine.Document()}

	select {
	case e.updateSignal <- signal:
	default:
		log.Println("Editor: Failed to send SaveSignal - channel full or not ready")
	}
}

func (e *editor) Quit() {
	e.state.Quit = true
	select {
	case e.updateSignal <- QuitSignal{}:
	default:
		log.Println("Editor: Failed to send QuitSignal - channel full or not ready")
	}
}

func (e *editor) IsEditMode() bool {
	return e.state.Mode == EditMode
}

func (e *editor) IsSelectMode() bool {
	return e.state.Mode == SelectMode
}

func (e *editor) IsCommandMode() bool {
	return e.state.Mode == CommandMode
}
