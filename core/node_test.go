package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursiveLength(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"ab\ncd", 5},
		{"\n\n", 2},
	}
	for _, tt := range tests {
		d := NewDocumentFromText(tt.text)
		assert.Equal(t, tt.want, d.RecursiveLength(d.Root()), "text %q", tt.text)
	}
}

func TestTableLength(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	require.True(t, e.InsertTable(2, 2))

	table := e.CursorTable()
	require.NotEqual(t, NoNode, table)
	// One position before the table, one per cell and one after it.
	assert.Equal(t, 5, e.doc.RecursiveLength(table))
	assert.Equal(t, 6, e.Length())
	assert.Equal(t, 1, e.Cursor().Position)

	var coords [][2]int
	for _, c := range e.doc.Children(table) {
		coords = append(coords, cellCoord(e.doc.cell(c)))
	}
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}, coords)
}

func TestLocateRoundTrip(t *testing.T) {
	tableDoc := func() *Document {
		e := NewEngine(nil, DefaultOptions())
		e.InsertTable(2, 2)
		e.InsertText("ab")
		e.NextCell()
		e.NextCell()
		e.InsertText("c")
		return e.doc
	}

	docs := map[string]*Document{
		"text":   NewDocumentFromText("ab\ncd"),
		"blank":  NewDocumentFromText("\n\n"),
		"single": NewDocument(),
		"table":  tableDoc(),
	}
	for name, d := range docs {
		t.Run(name, func(t *testing.T) {
			n := d.RecursiveLength(d.Root())
			for pos := 0; pos <= n; pos++ {
				p := d.Locate(pos)
				require.True(t, d.Valid(p.Object), "position %d", pos)
				assert.Equal(t, pos, d.PositionOf(p), "position %d", pos)
			}
		})
	}
}

func TestLocateIsLeftBiased(t *testing.T) {
	d := NewBlankDocument()
	flow := d.NewFlow(ParagraphNormal)
	d.Append(d.Root(), flow)
	bold := d.NewText("ab", TextStyle{Bold: true})
	d.Append(flow, bold)
	d.Append(flow, d.NewText("cd", TextStyle{}))

	p := d.Locate(2)
	assert.Equal(t, bold, p.Object)
	assert.Equal(t, 2, p.Offset)
}

func TestLocateClamps(t *testing.T) {
	d := NewDocumentFromText("abc")
	assert.Equal(t, 0, d.PositionOf(d.Locate(-4)))
	assert.Equal(t, 3, d.PositionOf(d.Locate(10)))
}

func TestSplitAndMergeText(t *testing.T) {
	d := NewDocumentFromText("abcd")
	flow := d.Head(d.Root())
	leaf := d.HeadNotSlave(flow)

	left, right := d.Split(leaf, 2, 1)
	require.Len(t, left, 1)
	require.Len(t, right, 1)
	assert.Equal(t, "ab", d.text(left[0]).String())
	assert.Equal(t, "cd", d.text(right[0]).String())
	assert.Equal(t, flow, d.Parent(right[0]))
	assert.Equal(t, 4, d.RecursiveLength(d.Root()))

	require.True(t, d.Merge(left[0], right[0]))
	assert.Equal(t, "abcd", d.text(left[0]).String())
	assert.False(t, d.Valid(right[0]))
}

func TestSplitFlow(t *testing.T) {
	d := NewDocumentFromText("abcd")
	flow := d.Head(d.Root())
	leaf := d.HeadNotSlave(flow)

	left, right := d.Split(leaf, 2, 2)
	require.Len(t, left, 2)
	require.Len(t, right, 2)
	assert.Equal(t, flow, left[1])
	assert.Equal(t, KindFlow, d.Kind(right[1]))
	assert.Equal(t, "ab\ncd", PlainText(d, d.Root()))
	assert.Equal(t, 5, d.RecursiveLength(d.Root()))

	require.True(t, d.Merge(left[1], right[1]))
	assert.Equal(t, "abcd", PlainText(d, d.Root()))
	assert.Len(t, d.Children(flow), 2)
}

func TestSplitStopsAtRoot(t *testing.T) {
	d := NewDocumentFromText("abcd")
	leaf := d.HeadNotSlave(d.Head(d.Root()))

	left, right := d.Split(leaf, 1, 5)
	assert.Len(t, left, 2)
	assert.Len(t, right, 2)
	assert.Equal(t, d.Root(), d.Parent(left[1]))
}

func TestSplitAtomicLeaf(t *testing.T) {
	d := NewBlankDocument()
	flow := d.NewFlow(ParagraphNormal)
	d.Append(d.Root(), flow)
	rule := d.NewRule(0, 100, 1, false, AlignLeft)
	d.Append(flow, rule)

	left, right := d.Split(rule, 1, 1)
	require.Len(t, left, 1)
	assert.Equal(t, rule, left[0])
	assert.True(t, d.isEmptyText(right[0]))
	assert.Equal(t, 1, d.RecursiveLength(flow))
}

func TestRemoveEmptyAndMerge(t *testing.T) {
	d := NewDocumentFromText("abcd")
	flow := d.Head(d.Root())
	leaf := d.HeadNotSlave(flow)

	left, right := d.Split(leaf, 0, 1)
	require.True(t, d.isEmptyText(left[0]))

	p := Point{Object: left[0]}
	moves := d.removeEmptyAndMerge(true, left, right, &p)
	require.Len(t, moves, 1)
	assert.Equal(t, right[0], p.Object)
	assert.Equal(t, 0, p.Offset)
	assert.Len(t, d.Children(flow), 1)
	assert.Equal(t, "abcd", PlainText(d, d.Root()))
}

func TestRemoveEmptyKeepsLoneText(t *testing.T) {
	d := NewDocument()
	flow := d.Head(d.Root())
	leaf := d.HeadNotSlave(flow)

	left, right := d.Split(leaf, 0, 1)
	d.removeEmptyAndMerge(true, left, right)
	assert.Len(t, d.Children(flow), 1)
	assert.Equal(t, 0, d.RecursiveLength(d.Root()))
}

func TestMergeJoinsRunsAtTheSeam(t *testing.T) {
	d := NewDocumentFromText("ab\ncd")
	fa, fb := d.Children(d.Root())[0], d.Children(d.Root())[1]
	ab, cd := d.HeadNotSlave(fa), d.HeadNotSlave(fb)
	empty := d.NewText("", TextStyle{})
	d.AppendAfter(fa, empty, ab)

	p := Point{Object: cd, Offset: 1}
	d.removeEmptyAndMerge(true, []NodeID{empty, fa}, []NodeID{cd, fb}, &p)

	assert.Equal(t, dumpTree(NewDocumentFromText("abcd")), dumpTree(d))
	assert.Equal(t, Point{Object: ab, Offset: 3}, p)
}

func TestMergeDropsEmptyRunAtTheSeam(t *testing.T) {
	d := NewBlankDocument()
	fa, fb := d.NewFlow(ParagraphNormal), d.NewFlow(ParagraphNormal)
	d.Append(d.Root(), fa)
	d.Append(d.Root(), fb)
	a, b := d.NewText("", TextStyle{}), d.NewText("", TextStyle{})
	d.Append(fa, a)
	d.Append(fb, b)
	d.Append(fb, d.NewText("cd", TextStyle{}))

	d.removeEmptyAndMerge(true, []NodeID{a, fa}, []NodeID{b, fb})

	assert.Equal(t, dumpTree(NewDocumentFromText("cd")), dumpTree(d))
	assert.Equal(t, "cd", PlainText(d, d.Root()))
}

func TestDupIsDeep(t *testing.T) {
	d := NewDocumentFromText("abc")
	flow := d.Head(d.Root())

	cp := d.Dup(flow)
	require.NotEqual(t, flow, cp)
	assert.Equal(t, NoNode, d.Parent(cp))
	assert.Equal(t, "abc", PlainText(d, cp))

	d.text(d.HeadNotSlave(cp)).insert(0, []rune("x"))
	assert.Equal(t, "xabc", PlainText(d, cp))
	assert.Equal(t, "abc", PlainText(d, flow))
}

func TestDupTable(t *testing.T) {
	e := NewEngine(nil, DefaultOptions())
	require.True(t, e.InsertTable(2, 3))
	e.InsertText("x")
	table := e.CursorTable()

	cp := e.doc.Dup(table)
	ct := e.doc.table(cp)
	require.NotNil(t, ct)
	assert.Equal(t, 2, ct.Rows())
	assert.Equal(t, 3, ct.Cols())
	assert.Equal(t, PlainText(e.doc, table), PlainText(e.doc, cp))
	assert.NotEqual(t, e.doc.table(table).Cell(0, 0), ct.Cell(0, 0))
}

func TestDestroyFreesSubtree(t *testing.T) {
	d := NewDocumentFromText("ab\ncd")
	flow := d.Head(d.Root())
	leaf := d.HeadNotSlave(flow)

	d.Destroy(flow)
	assert.False(t, d.Valid(flow))
	assert.False(t, d.Valid(leaf))
	assert.Equal(t, "cd", PlainText(d, d.Root()))
}
