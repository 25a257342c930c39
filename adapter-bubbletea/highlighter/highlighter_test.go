package highlighter

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpansCoverLine(t *testing.T) {
	h := New("go", "monokai")
	line := `x := "héllo"`

	spans := h.Spans(line)
	require.NotEmpty(t, spans)
	assert.Equal(t, 0, spans[0].StartCol)
	assert.Equal(t, len([]rune(line)), spans[len(spans)-1].EndCol)

	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].EndCol, spans[i].StartCol)
	}
}

func TestTypeAt(t *testing.T) {
	h := New("go", "monokai")
	spans := h.Spans(`return "s"`)

	typ, ok := TypeAt(spans, 0)
	require.True(t, ok)
	assert.Equal(t, chroma.Keyword, typ)

	_, ok = TypeAt(spans, 100)
	assert.False(t, ok)
}

func TestTokensCached(t *testing.T) {
	h := New("unknown-language", "monokai")
	first := h.Tokens("plain words")
	second := h.Tokens("plain words")
	assert.Equal(t, first, second)

	h.InvalidateCache()
	assert.Empty(t, h.cache)
}
