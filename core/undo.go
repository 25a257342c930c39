package core

// UndoDirection tells a replayed action which list its inverse goes to.
type UndoDirection int

const (
	DirUndo UndoDirection = iota
	DirRedo
)

// Reverse returns the opposite direction.
func (d UndoDirection) Reverse() UndoDirection {
	if d == DirUndo {
		return DirRedo
	}
	return DirUndo
}

// Payload is data owned by an undo action. Release is called once when
// the action is replayed or dropped from the history.
type Payload interface {
	Release()
}

// Action is one step of the edit history. Replaying it performs the
// inverse edit, which records its own inverse in the opposite list.
type Action struct {
	Description string
	Position    int // Cursor position the replay starts from

	replay  func(e *Engine, a *Action, dir UndoDirection)
	payload Payload
}

func (a *Action) release() {
	if a.payload != nil {
		a.payload.Release()
		a.payload = nil
	}
}

// UndoStack holds the undo and redo lists.
type UndoStack struct {
	undo   []*Action
	redo   []*Action
	limit  int
	inRedo bool

	version int
}

// NewUndoStack returns an empty history keeping at most limit undo steps.
func NewUndoStack(limit int) *UndoStack {
	return &UndoStack{limit: max(1, limit)}
}

// SetLimit changes the number of undo steps kept.
func (s *UndoStack) SetLimit(limit int) {
	s.limit = max(1, limit)
	s.trim()
}

// Limit returns the number of undo steps kept.
func (s *UndoStack) Limit() int {
	return s.limit
}

// Add records a. A new undo step discards the redo list unless it is the
// inverse of a redo being replayed.
func (s *UndoStack) Add(a *Action, dir UndoDirection) {
	s.version++
	if dir == DirRedo {
		s.redo = append(s.redo, a)
		return
	}
	s.undo = append(s.undo, a)
	if !s.inRedo {
		s.DiscardRedo()
	}
	s.trim()
}

func (s *UndoStack) trim() {
	for len(s.undo) > s.limit {
		s.undo[0].release()
		s.undo[0] = nil
		s.undo = s.undo[1:]
	}
}

// Version counts the steps recorded so far. It changes with every edit,
// undo or redo.
func (s *UndoStack) Version() int {
	return s.version
}

func (s *UndoStack) CanUndo() bool {
	return len(s.undo) > 0
}

func (s *UndoStack) CanRedo() bool {
	return len(s.redo) > 0
}

// UndoDescriptions lists the pending undo steps, most recent first.
func (s *UndoStack) UndoDescriptions() []string {
	out := make([]string, 0, len(s.undo))
	for i := len(s.undo) - 1; i >= 0; i-- {
		out = append(out, s.undo[i].Description)
	}
	return out
}

// DiscardRedo drops every redo step.
func (s *UndoStack) DiscardRedo() {
	for _, a := range s.redo {
		a.release()
	}
	s.redo = nil
}

// Reset drops the whole history.
func (s *UndoStack) Reset() {
	for _, a := range s.undo {
		a.release()
	}
	s.undo = nil
	s.DiscardRedo()
}

func pop(list *[]*Action) *Action {
	n := len(*list)
	if n == 0 {
		return nil
	}
	a := (*list)[n-1]
	(*list)[n-1] = nil
	*list = (*list)[:n-1]
	return a
}

// Undo reverts the last edit. It reports false when there is nothing to
// undo.
func (e *Engine) Undo() bool {
	a := pop(&e.undo.undo)
	if a == nil {
		return false
	}
	e.replay(a, DirUndo)
	return true
}

// Redo repeats the last undone edit. It reports false when there is
// nothing to redo.
func (e *Engine) Redo() bool {
	a := pop(&e.undo.redo)
	if a == nil {
		return false
	}
	e.undo.inRedo = true
	e.replay(a, DirRedo)
	e.undo.inRedo = false
	return true
}

func (e *Engine) replay(a *Action, dir UndoDirection) {
	e.freeze()
	defer e.thaw()

	e.markSet = false
	e.jumpTo(a.Position)
	a.replay(e, a, dir)
	a.release()
}
