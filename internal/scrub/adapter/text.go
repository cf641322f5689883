package adapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/scrubbing/internal/scrub"
)

// Text reads the base value from the element's text and writes every
// change back as decimal text.
type Text struct{}

// Init does nothing.
func (Text) Init(*scrub.Binding) {}

// Start parses the element text.
func (Text) Start(b *scrub.Binding) (int, error) {
	return ParseInt(b.Target().Text())
}

// Change replaces the element text with value.
func (Text) Change(b *scrub.Binding, value, _ int) {
	b.Target().SetText(strconv.Itoa(value))
}

// End does nothing.
func (Text) End(*scrub.Binding) {}

// ParseInt parses s as a base-10 integer, ignoring surrounding space.
// Anything else, including a trailing unit such as "12px", is rejected
// with an error wrapping scrub.ErrInvalidValue.
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", scrub.ErrInvalidValue, s)
	}
	return n, nil
}
