package mouse

// Button is a bit mask of mouse buttons held during an event.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = 0
	// ButtonPrimary is the primary (usually left) mouse button.
	ButtonPrimary Button = 1 << (iota - 1)
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonSecondary is the secondary (usually right) mouse button.
	ButtonSecondary
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
)

const scrollMask = ButtonScrollUp | ButtonScrollDown | ButtonScrollLeft | ButtonScrollRight

// String returns a string representation of the button mask.
func (b Button) String() string {
	if b == ButtonNone {
		return "none"
	}
	names := []struct {
		bit  Button
		name string
	}{
		{ButtonPrimary, "primary"},
		{ButtonMiddle, "middle"},
		{ButtonSecondary, "secondary"},
		{ButtonScrollUp, "scroll-up"},
		{ButtonScrollDown, "scroll-down"},
		{ButtonScrollLeft, "scroll-left"},
		{ButtonScrollRight, "scroll-right"},
	}
	s := ""
	for _, n := range names {
		if b&n.bit == 0 {
			continue
		}
		if s != "" {
			s += "+"
		}
		s += n.name
	}
	return s
}

// Has returns true if every bit of button is set in b.
func (b Button) Has(button Button) bool {
	return button != ButtonNone && b&button == button
}

// IsScroll returns true if any scroll bit is set.
func (b Button) IsScroll() bool {
	return b&scrollMask != 0
}

// Held returns the mask without its scroll bits, i.e. the buttons
// physically held down.
func (b Button) Held() Button {
	return b &^ scrollMask
}

// Position represents a screen coordinate.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Sub returns the component-wise difference p - other.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// Distance returns the Manhattan distance (|dx| + |dy|) between two positions.
func (p Position) Distance(other Position) int {
	d := p.Sub(other)
	if d.X < 0 {
		d.X = -d.X
	}
	if d.Y < 0 {
		d.Y = -d.Y
	}
	return d.X + d.Y
}
