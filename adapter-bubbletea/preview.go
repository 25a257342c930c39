package adapter_bubbletea

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/ionut-t/richedit/markup"
)

// preview shows the Markdown export of the document rendered by glamour.
type preview struct {
	viewport viewport.Model
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(1, width)),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// openPreview switches the model to the preview pane. Escape closes it.
func (m *Model) openPreview() {
	out, err := renderMarkdown(markup.Export(m.editor.GetDocument()), m.viewport.Width)
	if err != nil {
		m.err = err
		return
	}
	vp := viewport.New(m.viewport.Width, m.viewport.Height)
	vp.SetContent(out)
	m.preview = &preview{viewport: vp}
}

// ShowPreview reports whether the preview pane is open.
func (m *Model) ShowPreview() bool {
	return m.preview != nil
}

func (p *preview) update(msg tea.Msg) {
	p.viewport, _ = p.viewport.Update(msg)
}

func (p *preview) view() string {
	return p.viewport.View()
}
