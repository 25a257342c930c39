package core

// Fragment is a detached piece of a document: a leaf, a flow or a box of
// flows. It is shared by the clipboard and the undo history and freed when
// the last holder releases it.
type Fragment struct {
	doc    *Document
	root   NodeID
	length int
	refs   int
}

func newFragment(doc *Document, root NodeID, length int) *Fragment {
	return &Fragment{doc: doc, root: root, length: length, refs: 1}
}

// Root returns the top node of the fragment.
func (f *Fragment) Root() NodeID {
	return f.root
}

// Length is the number of positions the fragment adds when inserted.
func (f *Fragment) Length() int {
	return f.length
}

// Retain adds a holder.
func (f *Fragment) Retain() *Fragment {
	f.refs++
	return f
}

// Release drops a holder. The nodes are destroyed with the last one.
func (f *Fragment) Release() {
	if f.refs <= 0 {
		return
	}
	f.refs--
	if f.refs == 0 && f.root != NoNode {
		f.doc.Destroy(f.root)
		f.root = NoNode
	}
}

// take hands out the nodes for insertion. A fragment with a single holder
// gives up its own nodes, a shared one hands out a copy.
func (f *Fragment) take() NodeID {
	if f.root == NoNode {
		return NoNode
	}
	if f.refs > 1 {
		return f.doc.Dup(f.root)
	}
	root := f.root
	f.root = NoNode
	return root
}
