package propval

import "reflect"

// TypedSource decorates an inner source with the element type that was
// declared at the point the source was registered. It carries no state of
// its own and introduces no laziness or failure behavior; every operation
// delegates to the inner source. The type tag exists for diagnostics.
type TypedSource[T any] struct {
	elementType reflect.Type
	inner       Source[T]
}

// Typed wraps inner with an optional declared element type. A nil
// elementType means no type was declared.
func Typed[T any](elementType reflect.Type, inner Source[T]) *TypedSource[T] {
	return &TypedSource[T]{
		elementType: elementType,
		inner:       inner,
	}
}

// ElementType returns the declared element type, or nil.
func (t *TypedSource[T]) ElementType() reflect.Type {
	return t.elementType
}

// Inner returns the decorated source.
func (t *TypedSource[T]) Inner() Source[T] {
	return t.inner
}

func (t *TypedSource[T]) Present() bool {
	return t.inner.Present()
}

func (t *TypedSource[T]) CollectInto(dest *[]T) error {
	return t.inner.CollectInto(dest)
}

func (t *TypedSource[T]) MaybeCollectInto(dest *[]T) (bool, error) {
	return t.inner.MaybeCollectInto(dest)
}

func (t *TypedSource[T]) Size() (int, error) {
	return t.inner.Size()
}

// IsProvidedBy forwards to the inner source when it carries the
// provenance capability; sources without it never match.
func (t *TypedSource[T]) IsProvidedBy(candidate any) bool {
	if provided, ok := t.inner.(ProvidedSource[T]); ok {
		return provided.IsProvidedBy(candidate)
	}
	return false
}

func (t *TypedSource[T]) Equal(other Source[T]) bool {
	o, ok := other.(*TypedSource[T])
	return ok && t.elementType == o.elementType && t.inner.Equal(o.inner)
}

func (t *TypedSource[T]) Hash() uint64 {
	name := ""
	if t.elementType != nil {
		name = t.elementType.String()
	}
	return hashValue("source.typed", struct {
		ElementType string
		Inner       uint64
	}{ElementType: name, Inner: t.inner.Hash()})
}
