package mouse

// dragTracker tracks the primary button between press and release.
type dragTracker struct {
	active     bool
	moved      bool
	button     Button
	startPos   Position
	currentPos Position
}

func newDragTracker() *dragTracker {
	return &dragTracker{}
}

func (t *dragTracker) start(pos Position, button Button) {
	t.active = true
	t.moved = false
	t.button = button
	t.startPos = pos
	t.currentPos = pos
}

// update records a new pointer position and reports whether it changed.
func (t *dragTracker) update(pos Position) bool {
	if !t.active || pos == t.currentPos {
		return false
	}
	t.currentPos = pos
	t.moved = true
	return true
}

func (t *dragTracker) end() {
	*t = dragTracker{}
}

func (t *dragTracker) isActive() bool {
	return t.active
}

// DragState represents the current state of a drag operation.
type DragState struct {
	// Active indicates the primary button is held.
	Active bool

	// Moved indicates the pointer has moved since the press.
	Moved bool

	// StartPos is where the press happened.
	StartPos Position

	// CurrentPos is the latest pointer position.
	CurrentPos Position
}

// Delta returns the distance travelled since the press.
func (s DragState) Delta() Position {
	return Position{
		X: s.CurrentPos.X - s.StartPos.X,
		Y: s.CurrentPos.Y - s.StartPos.Y,
	}
}

func (t *dragTracker) state() DragState {
	return DragState{
		Active:     t.active,
		Moved:      t.moved,
		StartPos:   t.startPos,
		CurrentPos: t.currentPos,
	}
}
