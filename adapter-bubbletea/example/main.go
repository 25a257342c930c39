package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/richedit/adapter-bubbletea"
	"golang.org/x/term"
)

const messageDuration = 3 * time.Second

type Model struct {
	editor editor.Model
	file   string
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.editor.Init(), m.editor.CursorBlink())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return m, tea.Quit
		}

	case editor.CopyMsg:
		return m, m.editor.DispatchMessage(fmt.Sprintf("%d positions copied", msg.Length), messageDuration)

	case editor.CutMsg:
		return m, m.editor.DispatchMessage(fmt.Sprintf("%d positions cut", msg.Length), messageDuration)

	case editor.SaveMsg:
		filePath := m.file
		if strings.HasPrefix(filePath, "~/") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return m, m.editor.DispatchError(err, messageDuration)
			}
			filePath = filepath.Join(homeDir, filePath[2:])
		}

		if err := os.WriteFile(filePath, []byte(msg.Markdown), 0644); err != nil {
			return m, m.editor.DispatchError(err, messageDuration)
		}

		return m, m.editor.DispatchMessage(fmt.Sprintf("file saved to %s", m.file), messageDuration)

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}

func main() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("richedit example needs a terminal")
	}

	file := "test.md"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	textEditor := editor.New(width-4, height-2)
	textEditor.Focus()
	textEditor.SetCursorMode(editor.CursorBlink)
	textEditor.SetLanguage("go", "catppuccin-mocha")
	textEditor.SetPlaceholder("Start typing. Ctrl+O for commands, F2 to preview.")

	if content, err := os.ReadFile(file); err == nil {
		if err := textEditor.SetBytes(content); err != nil {
			log.Fatalf("Error reading %s: %v", file, err)
		}
	}

	m := Model{
		editor: textEditor,
		file:   file,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}
