package propval

import (
	"reflect"

	"github.com/mitchellh/hashstructure/v2"
)

// Source is one contribution to a collection-valued property. A source is
// immutable once constructed; presence and contents of deferred variants
// are re-evaluated on every query.
type Source[T any] interface {
	// Present reports whether the source currently has elements to
	// contribute. For deferred variants this probes the provider afresh;
	// it never fails, even if forcing the provider would.
	Present() bool

	// CollectInto appends the source's elements to dest in the source's
	// own iteration order. It fails with a MissingValueError when the
	// source is absent; provider failures propagate unchanged.
	CollectInto(dest *[]T) error

	// MaybeCollectInto is the tolerant counterpart of CollectInto: an
	// absent source yields false and leaves dest untouched. Provider
	// failures still propagate unchanged.
	MaybeCollectInto(dest *[]T) (bool, error)

	// Size returns the number of elements the source currently
	// contributes. Deferred sequences without a Sized provider fail with
	// a SizeUnsupportedError rather than guessing.
	Size() (int, error)

	// Equal reports structural equality: same variant, equal held value,
	// or the identical provider handle.
	Equal(other Source[T]) bool

	// Hash returns a hash consistent with Equal, for change detection.
	Hash() uint64
}

// ProvidedSource is the extra capability of sources backed by a deferred
// computation: an identity (not value) check against a candidate provider,
// used by owners to reject self-referential composition.
type ProvidedSource[T any] interface {
	Source[T]

	// IsProvidedBy reports whether candidate is the very provider handle
	// this source wraps. Two sources may be Equal in value while only one
	// of them is provided by a given handle.
	IsProvidedBy(candidate any) bool
}

// Empty returns a source that is always present and contributes nothing.
func Empty[T any]() Source[T] {
	return emptySource[T]{}
}

type emptySource[T any] struct{}

func (emptySource[T]) Present() bool {
	return true
}

func (emptySource[T]) CollectInto(dest *[]T) error {
	return nil
}

func (emptySource[T]) MaybeCollectInto(dest *[]T) (bool, error) {
	return true, nil
}

func (emptySource[T]) Size() (int, error) {
	return 0, nil
}

func (emptySource[T]) Equal(other Source[T]) bool {
	_, ok := other.(emptySource[T])
	return ok
}

func (emptySource[T]) Hash() uint64 {
	return hashSeed("source.empty")
}

// Missing returns a source that never has a value. Strict collection from
// it is always a hard failure.
func Missing[T any]() Source[T] {
	return missingSource[T]{}
}

type missingSource[T any] struct{}

func (missingSource[T]) Present() bool {
	return false
}

func (missingSource[T]) CollectInto(dest *[]T) error {
	return &MissingValueError{}
}

func (missingSource[T]) MaybeCollectInto(dest *[]T) (bool, error) {
	return false, nil
}

func (missingSource[T]) Size() (int, error) {
	return 0, nil
}

func (missingSource[T]) Equal(other Source[T]) bool {
	_, ok := other.(missingSource[T])
	return ok
}

func (missingSource[T]) Hash() uint64 {
	return hashSeed("source.missing")
}

// Single returns a source contributing exactly one literal element.
func Single[T any](element T) Source[T] {
	return &singleElement[T]{element: element}
}

type singleElement[T any] struct {
	element T
}

func (s *singleElement[T]) Present() bool {
	return true
}

func (s *singleElement[T]) CollectInto(dest *[]T) error {
	*dest = append(*dest, s.element)
	return nil
}

func (s *singleElement[T]) MaybeCollectInto(dest *[]T) (bool, error) {
	*dest = append(*dest, s.element)
	return true, nil
}

func (s *singleElement[T]) Size() (int, error) {
	return 1, nil
}

func (s *singleElement[T]) Equal(other Source[T]) bool {
	o, ok := other.(*singleElement[T])
	return ok && reflect.DeepEqual(s.element, o.element)
}

func (s *singleElement[T]) Hash() uint64 {
	return hashValue("source.single", s.element)
}

// SingleFrom returns a source contributing the single element of a
// deferred computation. It exposes the ProvidedSource capability.
func SingleFrom[T any](provider Provider[T]) Source[T] {
	return &singleFromProvider[T]{provider: provider}
}

type singleFromProvider[T any] struct {
	provider Provider[T]
}

func (s *singleFromProvider[T]) Present() bool {
	return s.provider.Present()
}

func (s *singleFromProvider[T]) CollectInto(dest *[]T) error {
	value, err := s.provider.Get()
	if err != nil {
		return err
	}
	*dest = append(*dest, value)
	return nil
}

func (s *singleFromProvider[T]) MaybeCollectInto(dest *[]T) (bool, error) {
	value, ok, err := s.provider.TryGet()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	*dest = append(*dest, value)
	return true, nil
}

// Size is 1 regardless of presence; callers gate on Present first.
func (s *singleFromProvider[T]) Size() (int, error) {
	return 1, nil
}

func (s *singleFromProvider[T]) IsProvidedBy(candidate any) bool {
	return sameHandle(s.provider, candidate)
}

func (s *singleFromProvider[T]) Equal(other Source[T]) bool {
	o, ok := other.(*singleFromProvider[T])
	return ok && sameHandle(s.provider, o.provider)
}

func (s *singleFromProvider[T]) Hash() uint64 {
	return hashHandle("source.single-from", s.provider)
}

// Elements returns a source over an already-materialized sequence. The
// slice is held by reference, not copied; it is always present.
func Elements[T any](elements []T) Source[T] {
	return &elementsFromSlice[T]{elements: elements}
}

type elementsFromSlice[T any] struct {
	elements []T
}

func (s *elementsFromSlice[T]) Present() bool {
	return true
}

func (s *elementsFromSlice[T]) CollectInto(dest *[]T) error {
	*dest = append(*dest, s.elements...)
	return nil
}

func (s *elementsFromSlice[T]) MaybeCollectInto(dest *[]T) (bool, error) {
	*dest = append(*dest, s.elements...)
	return true, nil
}

func (s *elementsFromSlice[T]) Size() (int, error) {
	return len(s.elements), nil
}

func (s *elementsFromSlice[T]) Equal(other Source[T]) bool {
	o, ok := other.(*elementsFromSlice[T])
	return ok && reflect.DeepEqual(s.elements, o.elements)
}

func (s *elementsFromSlice[T]) Hash() uint64 {
	return hashValue("source.elements", s.elements)
}

// ElementsFrom returns a source contributing every element of a deferred
// sequence computation. It exposes the ProvidedSource capability. Its Size
// is answerable only when the provider implements Sized.
func ElementsFrom[T any](provider Provider[[]T]) Source[T] {
	return &elementsFromProvider[T]{provider: provider}
}

type elementsFromProvider[T any] struct {
	provider Provider[[]T]
}

func (s *elementsFromProvider[T]) Present() bool {
	return s.provider.Present()
}

func (s *elementsFromProvider[T]) CollectInto(dest *[]T) error {
	elements, err := s.provider.Get()
	if err != nil {
		return err
	}
	*dest = append(*dest, elements...)
	return nil
}

func (s *elementsFromProvider[T]) MaybeCollectInto(dest *[]T) (bool, error) {
	elements, ok, err := s.provider.TryGet()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	*dest = append(*dest, elements...)
	return true, nil
}

func (s *elementsFromProvider[T]) Size() (int, error) {
	if sized, ok := s.provider.(Sized); ok {
		return sized.KnownSize(), nil
	}
	return 0, &SizeUnsupportedError{Provider: s.provider}
}

func (s *elementsFromProvider[T]) IsProvidedBy(candidate any) bool {
	return sameHandle(s.provider, candidate)
}

func (s *elementsFromProvider[T]) Equal(other Source[T]) bool {
	o, ok := other.(*elementsFromProvider[T])
	return ok && sameHandle(s.provider, o.provider)
}

func (s *elementsFromProvider[T]) Hash() uint64 {
	return hashHandle("source.elements-from", s.provider)
}

// sameHandle reports identity between two provider handles. Only
// pointer-shaped providers carry an identity; value-shaped ones never
// match.
func sameHandle(held any, candidate any) bool {
	if held == nil || candidate == nil {
		return false
	}
	hv := reflect.ValueOf(held)
	cv := reflect.ValueOf(candidate)
	if hv.Kind() != reflect.Pointer || cv.Kind() != reflect.Pointer {
		return false
	}
	return hv.Type() == cv.Type() && hv.Pointer() == cv.Pointer()
}

func hashSeed(seed string) uint64 {
	h, err := hashstructure.Hash(seed, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}

func hashValue(seed string, value any) uint64 {
	h, err := hashstructure.Hash(struct {
		Seed  string
		Value any
	}{Seed: seed, Value: value}, hashstructure.FormatV2, nil)
	if err != nil {
		// Unhashable held values (functions, channels) degrade to the
		// variant seed; Equal still distinguishes them.
		return hashSeed(seed)
	}
	return h
}

func hashHandle(seed string, provider any) uint64 {
	v := reflect.ValueOf(provider)
	if v.Kind() == reflect.Pointer {
		return hashValue(seed, v.Pointer())
	}
	return hashSeed(seed)
}
