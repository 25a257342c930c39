package adapter_bubbletea

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/richedit/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/richedit/core"
	"github.com/ionut-t/richedit/markup"
)

type Theme struct {
	EditModeStyle    lipgloss.Style
	SelectModeStyle  lipgloss.Style
	CommandModeStyle lipgloss.Style
	StatusLineStyle  lipgloss.Style
	CommandLineStyle lipgloss.Style
	MessageStyle     lipgloss.Style
	ErrorStyle       lipgloss.Style
	SelectionStyle   lipgloss.Style
	PlaceholderStyle lipgloss.Style

	HeadingStyle   lipgloss.Style
	LinkStyle      lipgloss.Style
	CodeStyle      lipgloss.Style
	CodeBlockStyle lipgloss.Style
	RuleStyle      lipgloss.Style
	BorderStyle    lipgloss.Style
	BulletStyle    lipgloss.Style
}

var DefaultTheme = Theme{
	EditModeStyle:    lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	SelectModeStyle:  lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	CommandModeStyle: lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	CommandLineStyle: lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:  lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	SelectionStyle:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
	PlaceholderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

	HeadingStyle:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	LinkStyle:      lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("75")),
	CodeStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	CodeBlockStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	RuleStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	BorderStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	BulletStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
}

type cursorBlinkMsg struct{}
type cursorBlinkCanceledMsg struct{}
type resumeBlinkCycleMsg struct{}

type CursorMode int

const (
	CursorSteady CursorMode = iota
	CursorBlink
)

const cursorBlinkInterval = 500 * time.Millisecond
const cursorActivityResetDelay = 250 * time.Millisecond

type cursorBlinkContext struct {
	ctx    context.Context
	cancel context.CancelFunc
}

type Model struct {
	editor             editor.Editor
	viewport           viewport.Model
	width              int
	height             int
	showStatusLine     bool
	theme              Theme
	StatusLineFunc     func() string
	err                error
	message            string
	isFocused          bool
	placeholder        string
	cursorMode         CursorMode
	cursorVisible      bool
	cursorBlinkContext *cursorBlinkContext
	clearMsgCancel     context.CancelFunc
	highlighter        *highlighter.Highlighter
	language           string
	highlighterTheme   string
	styleCache         map[cellKey]lipgloss.Style
	preview            *preview
}

type ErrorMsg struct {
	ID    editor.ErrorId
	Error error
}

// SaveMsg carries the document to persist and its Markdown form.
type SaveMsg struct {
	Document *editor.Document
	Markdown string
}

type QuitMsg struct{}

type clearMsg struct{}

type messageMsg struct {
	ID      string
	Message string
}

// redrawMsg asks for a new paint after the engine changed the document or
// the cursor.
type redrawMsg struct{}

type CopyMsg struct {
	Length int
}

type CutMsg struct {
	Length int
}

type PasteMsg struct {
	Length int
}

type DeleteMsg struct {
	Length int
}

type UndoMsg struct{}

type RedoMsg struct{}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

func New(width, height int) Model {
	return NewWithClipboard(width, height, &clipboardImpl{})
}

// NewWithClipboard creates a model using c as the system clipboard.
func NewWithClipboard(width, height int, c editor.Clipboard) Model {
	m := Model{
		editor:         editor.New(c),
		viewport:       viewport.New(width, height-2),
		showStatusLine: true,
		theme:          DefaultTheme,
		cursorMode:     CursorSteady,
		cursorVisible:  true,
		cursorBlinkContext: &cursorBlinkContext{
			ctx: context.Background(),
		},
		styleCache: make(map[cellKey]lipgloss.Style),
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(1, height-2)

	m.editor.SetSize(m.viewport.Width, m.viewport.Height)
	m.renderVisibleSlice()
}

// SetBytes sets the content of the editor from Markdown.
func (m *Model) SetBytes(content []byte) error {
	doc, err := markup.Import(content)
	if err != nil {
		return err
	}
	m.editor.SetDocument(doc)
	m.renderVisibleSlice()
	return nil
}

// SetContent sets the content of the editor from a Markdown string.
func (m *Model) SetContent(content string) error {
	return m.SetBytes([]byte(content))
}

// SetPlainText sets the content of the editor, one paragraph per line.
func (m *Model) SetPlainText(content string) {
	m.editor.SetContent([]byte(content))
	m.renderVisibleSlice()
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
	clear(m.styleCache)
}

// SetLanguage sets the language used to colour preformatted paragraphs.
//
// If the language is empty, syntax highlighting will be disabled.
//
// The theme parameter allows specifying a Chroma theme for the syntax highlighter.
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetLanguage(language string, theme string) {
	if m.language == language && m.highlighterTheme == theme {
		return
	}

	m.language = language
	m.highlighterTheme = theme
	clear(m.styleCache)
	if language == "" {
		m.highlighter = nil
		return
	}

	m.highlighter = highlighter.New(language, theme)
}

// WithSyntaxHighlighter allows setting a custom syntax highlighter.
func (m *Model) WithSyntaxHighlighter(highlighter *highlighter.Highlighter) {
	m.highlighter = highlighter
	clear(m.styleCache)
}

// DispatchMessage allows setting a message to be displayed in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

// HideStatusLine controls whether to show the status line at the bottom of the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

// GetMarkdown returns the current document as Markdown.
func (m *Model) GetMarkdown() string {
	return markup.Export(m.editor.GetDocument())
}

// GetPlainText returns the current document as plain text.
func (m *Model) GetPlainText() string {
	doc := m.editor.GetDocument()
	return editor.PlainText(doc, doc.Root())
}

// HasChanges checks if the editor has unsaved changes
func (m *Model) HasChanges() bool {
	return m.editor.IsModified()
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() editor.Editor {
	return m.editor
}

// DisableCommandMode allows disabling command mode in the editor.
func (m *Model) DisableCommandMode(disable bool) {
	m.editor.DisableCommandMode(disable)
}

// DisableSelectMode allows disabling select mode in the editor. Shift
// movement still selects.
func (m *Model) DisableSelectMode(disable bool) {
	m.editor.DisableSelectMode(disable)
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
}

// Blur sets the editor to unfocused state.
func (m *Model) Blur() {
	m.isFocused = false
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

// IsEditMode returns whether the editor is in edit mode.
func (m *Model) IsEditMode() bool {
	return m.editor.IsEditMode()
}

// IsSelectMode returns whether the editor is in select mode.
func (m *Model) IsSelectMode() bool {
	return m.editor.IsSelectMode()
}

// IsCommandMode returns whether the editor is in command mode.
func (m *Model) IsCommandMode() bool {
	return m.editor.IsCommandMode()
}

// SetEditMode sets the editor to edit mode.
func (m *Model) SetEditMode() {
	m.editor.SetEditMode()
}

// SetSelectMode sets the editor to select mode.
func (m *Model) SetSelectMode() {
	m.editor.SetSelectMode()
}

// SetCommandMode sets the editor to command mode.
func (m *Model) SetCommandMode() {
	m.editor.SetCommandMode()
}

// SetPlaceholder sets the placeholder text for the editor.
func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

// IsEmpty checks if the document has no content.
func (m *Model) IsEmpty() bool {
	return m.editor.GetEngine().Length() == 0
}

// SetCursorMode sets the cursor mode for the editor.
// It can be either CursorSteady or CursorBlink.
func (m *Model) SetCursorMode(mode CursorMode) {
	m.cursorMode = mode
	m.cursorVisible = m.isFocused
}

// SetCursorPosition moves the cursor to a position of the document.
func (m *Model) SetCursorPosition(pos int) error {
	engine := m.editor.GetEngine()
	if pos < 0 || pos > engine.Length() {
		return fmt.Errorf("invalid cursor position: %d", pos)
	}

	engine.SetCursorPosition(pos)
	m.editor.ScrollViewport()
	m.renderVisibleSlice()

	return nil
}

// SetCursorPositionEnd moves the cursor to the end of the document.
func (m *Model) SetCursorPositionEnd() {
	m.editor.GetEngine().DocumentEnd()
	m.editor.ScrollViewport()
	m.renderVisibleSlice()
}

// SetMaxHistory sets the maximum number of undo steps kept in memory.
// The default value is 1000.
func (m *Model) SetMaxHistory(max uint32) {
	m.editor.SetMaxHistory(max)
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		if m.editor.GetState().Quit {
			return m, tea.Quit
		}

		if m.preview != nil {
			if msg.Type == tea.KeyEsc {
				m.preview = nil
			} else {
				m.preview.update(msg)
			}
			break
		}

		if msg.Type == tea.KeyF2 {
			m.openPreview()
			break
		}

		if err := m.editor.HandleKey(convertBubbleKey(msg)); err != nil {
			cmds = append(cmds, func() tea.Msg {
				return ErrorMsg{ID: editor.ErrInvalidCommandId, Error: err}
			})
		}

		m.cursorVisible = true
		if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
			m.cursorBlinkContext.cancel()
		}

		if m.cursorMode == CursorBlink {
			cmds = append(cmds, m.restartBlinkCycleCmd())
		}

		m.editor.ScrollViewport()

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, 3*time.Second))

	case messageMsg:
		cmds = append(cmds, m.DispatchMessage(msg.Message, 3*time.Second))

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case redrawMsg:
		m.editor.ScrollViewport()

	case cursorBlinkMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = m.isFocused
		}

	case resumeBlinkCycleMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = true
			cmds = append(cmds, m.CursorBlink())
		}
	}

	cmds = append(cmds, m.listenForEditorUpdate())

	m.renderVisibleSlice()

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	state := m.editor.GetState()

	content := m.viewport.View()
	if m.preview != nil {
		content = m.preview.view()
	}

	commandLine := m.theme.CommandLineStyle.Render(state.CommandLine)

	if m.message != "" {
		commandLine = m.theme.MessageStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.message)
	}

	if m.err != nil {
		commandLine = m.theme.ErrorStyle.
			Background(m.theme.CommandLineStyle.GetBackground()).
			Render(m.err.Error())
	}

	statusLine := m.getStatusLine()

	paddingWidth := m.width - lipgloss.Width(statusLine)
	if paddingWidth > 0 && m.showStatusLine {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	paddingWidth = m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) getStatusLine() string {
	if !m.showStatusLine {
		return ""
	}

	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	state := m.editor.GetState()

	var statusLine string
	switch state.Mode {
	case editor.EditMode:
		statusLine = m.theme.EditModeStyle.Render(" EDIT ")
	case editor.SelectMode:
		statusLine = m.theme.SelectModeStyle.Render(" SELECT ")
	case editor.CommandMode:
		statusLine = m.theme.CommandModeStyle.Render(" COMMAND ")
	}
	if m.preview != nil {
		statusLine = m.theme.SelectModeStyle.Render(" PREVIEW ")
	}

	engine := m.editor.GetEngine()
	style, _, _ := engine.ParagraphAt()
	info := style.String()
	if engine.CursorTable() != editor.NoNode {
		info += " | table"
	}
	if m.editor.IsModified() {
		info += " [+]"
	}

	x, y := engine.CursorXY()
	cursorInfo := fmt.Sprintf(" %s  %d:%d  %d/%d ", info, y+1, x+1, engine.Cursor().Position, engine.Length())

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(statusLine))
	gap := strings.Repeat(" ", max(0, width))

	statusLine += m.theme.StatusLineStyle.Render(gap + cursorInfo)

	return statusLine
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	return func() tea.Msg {
		editorChan := m.editor.GetUpdateSignalChan()
		signal := <-editorChan

		switch signal := signal.(type) {
		case editor.ErrorSignal:
			id, err := signal.Value()
			return ErrorMsg{ID: id, Error: err}

		case editor.MessageSignal:
			id, message := signal.Value()
			return messageMsg{ID: id, Message: message}

		case editor.CopySignal:
			return CopyMsg{Length: signal.Value()}

		case editor.CutSignal:
			return CutMsg{Length: signal.Value()}

		case editor.PasteSignal:
			return PasteMsg{Length: signal.Value()}

		case editor.DeleteSignal:
			return DeleteMsg{Length: signal.Value()}

		case editor.SaveSignal:
			doc := signal.Value()
			return SaveMsg{Document: doc, Markdown: markup.Export(doc)}

		case editor.EnterCommandModeSignal:
			return clearMsg{}

		case editor.QuitSignal:
			return QuitMsg{}

		case editor.UndoSignal:
			return UndoMsg{}

		case editor.RedoSignal:
			return RedoMsg{}

		case editor.RelayoutSignal, editor.RedrawSignal:
			return redrawMsg{}
		}

		return nil
	}
}

// Convert Bubbletea key to editor.Key
func convertBubbleKey(msg tea.KeyMsg) editor.KeyEvent {
	key := editor.KeyEvent{}

	if len(msg.Runes) > 0 {
		key.Rune = msg.Runes[0]
	}

	if msg.Alt {
		key.Modifiers |= editor.ModAlt
	}

	switch msg.Type {
	case tea.KeyEnter:
		key.Key = editor.KeyEnter
	case tea.KeySpace:
		key.Key = editor.KeySpace
		key.Rune = ' '
	case tea.KeyEsc:
		key.Key = editor.KeyEscape
	case tea.KeyBackspace:
		key.Key = editor.KeyBackspace
	case tea.KeyTab:
		key.Key = editor.KeyTab
	case tea.KeyShiftTab:
		key.Key = editor.KeyTab
		key.Modifiers |= editor.ModShift
	case tea.KeyUp:
		key.Key = editor.KeyUp
	case tea.KeyDown:
		key.Key = editor.KeyDown
	case tea.KeyLeft:
		key.Key = editor.KeyLeft
	case tea.KeyRight:
		key.Key = editor.KeyRight
	case tea.KeyShiftUp:
		key.Key = editor.KeyUp
		key.Modifiers |= editor.ModShift
	case tea.KeyShiftDown:
		key.Key = editor.KeyDown
		key.Modifiers |= editor.ModShift
	case tea.KeyShiftLeft:
		key.Key = editor.KeyLeft
		key.Modifiers |= editor.ModShift
	case tea.KeyShiftRight:
		key.Key = editor.KeyRight
		key.Modifiers |= editor.ModShift
	case tea.KeyHome:
		key.Key = editor.KeyHome
	case tea.KeyEnd:
		key.Key = editor.KeyEnd
	case tea.KeyShiftHome:
		key.Key = editor.KeyHome
		key.Modifiers |= editor.ModShift
	case tea.KeyShiftEnd:
		key.Key = editor.KeyEnd
		key.Modifiers |= editor.ModShift
	case tea.KeyDelete:
		key.Key = editor.KeyDelete
	case tea.KeyPgUp:
		key.Key = editor.KeyPageUp
	case tea.KeyPgDown:
		key.Key = editor.KeyPageDown
	case tea.KeyCtrlAt:
		key.Rune = ' '
		key.Modifiers |= editor.ModCtrl
	default:
		if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			key.Rune = 'a' + rune(msg.Type-tea.KeyCtrlA)
			key.Modifiers |= editor.ModCtrl
		}
	}

	return key
}

// CursorBlink is the main command for the blinking cursor effect (toggling visibility)
func (m *Model) CursorBlink() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
		m.cursorBlinkContext.cancel()
	}

	ctx, cancel := context.WithTimeout(m.cursorBlinkContext.ctx, cursorBlinkInterval)
	m.cursorBlinkContext.cancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return cursorBlinkMsg{}
		}
		return cursorBlinkCanceledMsg{}
	}
}

// restartBlinkCycleCmd is used after user activity to delay the resumption of blinking.
func (m *Model) restartBlinkCycleCmd() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	return tea.Tick(cursorActivityResetDelay, func(t time.Time) tea.Msg {
		return resumeBlinkCycleMsg{}
	})
}
