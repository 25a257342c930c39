package core

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Measurer answers the size questions layout needs. Widths are in
// terminal cells.
type Measurer interface {
	// Width returns the display width of text.
	Width(text string, style TextStyle) int

	// Breaks returns the rune offsets where a line may be broken. The end
	// of the text is not included.
	Breaks(text string) []int

	// Graphemes splits text into user-perceived characters.
	Graphemes(text string) []string
}

type cellMeasurer struct{}

// NewCellMeasurer returns a Measurer for monospaced terminal output based
// on Unicode grapheme widths and line-breaking rules.
func NewCellMeasurer() Measurer {
	return cellMeasurer{}
}

func (cellMeasurer) Width(text string, style TextStyle) int {
	return uniseg.StringWidth(text)
}

func (cellMeasurer) Breaks(text string) []int {
	var (
		breaks  []int
		segment string
		offset  int
		state   = -1
	)
	for len(text) > 0 {
		segment, text, _, state = uniseg.FirstLineSegmentInString(text, state)
		offset += utf8.RuneCountInString(segment)
		if len(text) > 0 {
			breaks = append(breaks, offset)
		}
	}
	return breaks
}

func (cellMeasurer) Graphemes(text string) []string {
	var (
		out     []string
		cluster string
		state   = -1
	)
	for len(text) > 0 {
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		out = append(out, cluster)
	}
	return out
}
