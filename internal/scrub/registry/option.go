package registry

type optionKind int

const (
	kindDefault optionKind = iota
	kindNamed
	kindValue
)

// Option is one configuration choice: the built-in default, one or more
// well-known names, or a concrete value. The zero Option is Default.
type Option[T any] struct {
	kind  optionKind
	names []string
	value T
}

// Default selects the built-in default.
func Default[T any]() Option[T] {
	return Option[T]{}
}

// Named selects built-ins by name. Names that do not resolve are skipped;
// if none resolve the default is used.
func Named[T any](names ...string) Option[T] {
	if len(names) == 0 {
		return Option[T]{}
	}
	return Option[T]{kind: kindNamed, names: names}
}

// Value selects v as is.
func Value[T any](v T) Option[T] {
	return Option[T]{kind: kindValue, value: v}
}

// IsDefault reports whether the option selects the default.
func (o Option[T]) IsDefault() bool { return o.kind == kindDefault }

// Names returns the names of a Named option.
func (o Option[T]) Names() []string { return o.names }

// Get returns the value of a Value option.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.kind == kindValue
}
