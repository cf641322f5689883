package mouse

// Drag tracks the physical path of a single press-move-release sequence.
// The zero value is an inactive drag.
type Drag struct {
	active     bool
	moves      int
	startPos   Position
	currentPos Position
}

// Start begins tracking at pos, discarding any previous state.
func (d *Drag) Start(pos Position) {
	d.active = true
	d.moves = 0
	d.startPos = pos
	d.currentPos = pos
}

// Update records a move to pos. It is a no-op when inactive.
func (d *Drag) Update(pos Position) {
	if !d.active {
		return
	}
	d.moves++
	d.currentPos = pos
}

// End stops tracking and returns the final state.
func (d *Drag) End() DragState {
	state := d.State()
	*d = Drag{}
	return state
}

// Active returns true if a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// State returns a snapshot of the drag.
func (d *Drag) State() DragState {
	return DragState{
		Active:     d.active,
		Moves:      d.moves,
		StartPos:   d.startPos,
		CurrentPos: d.currentPos,
	}
}

// DragState represents the current state of a drag operation.
type DragState struct {
	// Active indicates a drag is in progress.
	Active bool

	// Moves counts the move events seen since Start.
	Moves int

	// StartPos is where the drag started.
	StartPos Position

	// CurrentPos is the latest drag position.
	CurrentPos Position
}

// Delta returns the distance dragged from start.
func (s DragState) Delta() Position {
	return s.CurrentPos.Sub(s.StartPos)
}
