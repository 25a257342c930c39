package core

// Kind identifies the variant held by a document node.
type Kind int

const (
	KindText      Kind = iota // A run of text with a single style
	KindTextSlave             // A wrapped line of a text run, produced by layout
	KindRule                  // A horizontal rule
	KindTable                 // A grid of cells
	KindTableCell             // One cell of a table
	KindFlow                  // A paragraph
	KindBox                   // A vertical stack of paragraphs
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTextSlave:
		return "slave"
	case KindRule:
		return "rule"
	case KindTable:
		return "table"
	case KindTableCell:
		return "cell"
	case KindFlow:
		return "flow"
	case KindBox:
		return "box"
	}
	return "unknown"
}

// Object is the behaviour shared by every node variant.
type Object interface {
	Kind() Kind

	// Length is the number of cursor steps the object spans inside its
	// parent. Containers report 0; use Document.RecursiveLength instead.
	Length() int

	dup() Object

	// split cuts a leaf at offset and returns the right part, or nil when
	// the object is atomic.
	split(offset int) Object

	// merge appends right into the receiver when both are compatible.
	merge(right Object) bool

	calcMinWidth(d *Document, id NodeID) int
	calcPreferredWidth(d *Document, id NodeID) int
	setMaxWidth(d *Document, id NodeID, width int)
	calcSize(d *Document, id NodeID)
	draw(d *Document, id NodeID, dc *drawContext)
}

// isContainer reports whether nodes of kind k own children.
func isContainer(k Kind) bool {
	switch k {
	case KindTable, KindTableCell, KindFlow, KindBox:
		return true
	}
	return false
}

// isLeaf reports whether k is an edit target inside a flow.
func isLeaf(k Kind) bool {
	switch k {
	case KindText, KindRule, KindTable:
		return true
	}
	return false
}
