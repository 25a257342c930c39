package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter colours preformatted paragraphs. Each paragraph is one code
// line, so tokens are cached per line of source.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	cache      map[string][]chroma.Token // Cache tokens by line content
	styleCache map[chroma.TokenType]lipgloss.Style
	cacheMutex sync.RWMutex
}

// Span is a token's position in the highlighted line, in runes.
type Span struct {
	Type     chroma.TokenType
	StartCol int
	EndCol   int
}

// New creates a highlighter for language using a chroma theme. Unknown
// languages fall back to plain text.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	return &Highlighter{
		lexer:      lexer,
		style:      styles.Get(theme),
		cache:      make(map[string][]chroma.Token),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// InvalidateCache clears the token cache.
func (sh *Highlighter) InvalidateCache() {
	sh.cacheMutex.Lock()
	defer sh.cacheMutex.Unlock()
	sh.cache = make(map[string][]chroma.Token)
	sh.styleCache = make(map[chroma.TokenType]lipgloss.Style)
}

// Tokens returns the tokens of one line.
func (sh *Highlighter) Tokens(line string) []chroma.Token {
	sh.cacheMutex.RLock()
	tokens, ok := sh.cache[line]
	sh.cacheMutex.RUnlock()
	if ok {
		return tokens
	}

	iterator, err := sh.lexer.Tokenise(nil, line)
	if err != nil {
		tokens = []chroma.Token{}
	} else {
		for _, t := range iterator.Tokens() {
			t.Value = strings.TrimRight(t.Value, "\n")
			if t.Value != "" {
				tokens = append(tokens, t)
			}
		}
	}

	sh.cacheMutex.Lock()
	// Lines come and go while typing; start over rather than grow forever.
	if len(sh.cache) > 4096 {
		sh.cache = make(map[string][]chroma.Token)
	}
	sh.cache[line] = tokens
	sh.cacheMutex.Unlock()

	return tokens
}

// Spans converts the tokens of line to rune ranges.
func (sh *Highlighter) Spans(line string) []Span {
	tokens := sh.Tokens(line)
	spans := make([]Span, 0, len(tokens))
	col := 0
	for _, token := range tokens {
		n := len([]rune(token.Value))
		spans = append(spans, Span{Type: token.Type, StartCol: col, EndCol: col + n})
		col += n
	}
	return spans
}

// TypeAt returns the token type covering column col of a span list.
func TypeAt(spans []Span, col int) (chroma.TokenType, bool) {
	for _, s := range spans {
		if col >= s.StartCol && col < s.EndCol {
			return s.Type, true
		}
	}
	return 0, false
}

// GetStyleForToken converts a Chroma token type to a lipgloss style.
func (sh *Highlighter) GetStyleForToken(tokenType chroma.TokenType) lipgloss.Style {
	sh.cacheMutex.RLock()
	style, ok := sh.styleCache[tokenType]
	sh.cacheMutex.RUnlock()
	if ok {
		return style
	}

	entry := sh.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	sh.cacheMutex.Lock()
	sh.styleCache[tokenType] = style
	sh.cacheMutex.Unlock()

	return style
}
