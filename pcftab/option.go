package pcftab

// Option holds a value which a font may lack: encoding slots marked 0xFFFF,
// accelerator ink bounds, a missing accelerators table.
type Option[T any] struct {
	value T
	ok    bool
}

func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool { return o.ok }

func (o Option[T]) IsNone() bool { return !o.ok }

// Unwrap returns the value, if any. Without a value it returns T's zero
// value and false.
func (o Option[T]) Unwrap() (T, bool) {
	return o.value, o.ok
}
