package core

// InsertRule inserts a horizontal rule at the cursor, replacing the
// selection. A zero width and percent give a full-width rule.
func (e *Engine) InsertRule(width, percent, size int, shade bool, align Alignment) bool {
	e.freeze()
	defer e.thaw()

	e.deleteSelection()
	rule := e.doc.NewRule(width, percent, size, shade, align)
	return e.insertObject(rule, DirUndo)
}
