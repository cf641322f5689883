package mouse

// WheelDelta converts the vertical scroll bits of a mask into a signed
// wheel step. Scrolling up (away from the user) is positive, matching the
// sign convention of DOM wheelDelta. Horizontal scrolling yields 0.
func WheelDelta(b Button) int {
	delta := 0
	if b&ButtonScrollUp != 0 {
		delta++
	}
	if b&ButtonScrollDown != 0 {
		delta--
	}
	return delta
}

// IsVerticalScroll returns true if the mask carries a vertical scroll bit.
func IsVerticalScroll(b Button) bool {
	return b&(ButtonScrollUp|ButtonScrollDown) != 0
}
