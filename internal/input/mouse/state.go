package mouse

// Position is a pointer coordinate in the reporting platform's space.
type Position struct {
	X float64
	Y float64
}

// Sub returns p - other.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// State is the pointer-state record.
//
// Move, Scroll, Press and Release are called by event handlers. Sample is
// called by the sampler only. Fields update independently as their
// signals arrive; a reader must not assume the record is consistent across
// unrelated events.
type State struct {
	pos      Position
	last     Position
	dragging bool

	wheel     float64
	lastWheel float64
}

// NewState creates a pointer record at the origin.
func NewState() *State {
	return &State{}
}

// Move records an absolute pointer position.
func (s *State) Move(x, y float64) {
	s.pos = Position{X: x, Y: y}
}

// Scroll adds d to the wheel accumulator.
func (s *State) Scroll(d float64) {
	s.wheel += d
}

// Press marks the pointer as dragging. Pressing while already dragging
// changes nothing.
func (s *State) Press() {
	s.dragging = true
}

// Release clears the dragging flag.
func (s *State) Release() {
	s.dragging = false
}

// Sample copies the current position and wheel into the last-sampled fields.
func (s *State) Sample() {
	s.last = s.pos
	s.lastWheel = s.wheel
}

// X returns the most recent pointer x coordinate.
func (s *State) X() float64 { return s.pos.X }

// Y returns the most recent pointer y coordinate.
func (s *State) Y() float64 { return s.pos.Y }

// LastX returns the x coordinate as of the latest sample.
func (s *State) LastX() float64 { return s.last.X }

// LastY returns the y coordinate as of the latest sample.
func (s *State) LastY() float64 { return s.last.Y }

// Position returns the most recent pointer position.
func (s *State) Position() Position { return s.pos }

// LastPosition returns the position as of the latest sample.
func (s *State) LastPosition() Position { return s.last }

// Dragging reports whether a press is in progress.
func (s *State) Dragging() bool { return s.dragging }

// Wheel returns the accumulated scroll delta.
func (s *State) Wheel() float64 { return s.wheel }

// LastWheel returns the accumulated scroll delta as of the latest sample.
func (s *State) LastWheel() float64 { return s.lastWheel }

// Delta returns the pointer motion since the latest sample.
func (s *State) Delta() (dx, dy float64) {
	d := s.pos.Sub(s.last)
	return d.X, d.Y
}

// WheelDelta returns the scroll accumulated since the latest sample.
func (s *State) WheelDelta() float64 {
	return s.wheel - s.lastWheel
}
