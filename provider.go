package propval

import "errors"

// Provider represents a deferred single-value computation. A provider may
// have no value at the moment it is queried; presence is re-evaluated on
// every call and never cached by this package.
type Provider[T any] interface {
	// Present reports whether the provider currently has a value.
	Present() bool

	// Get forces the computation and returns its value, failing with a
	// MissingValueError (or the computation's own error) when absent.
	Get() (T, error)

	// TryGet is the tolerant counterpart of Get: absence yields false
	// instead of an error. Failures other than absence still propagate.
	TryGet() (T, bool, error)
}

// Sized is an optional capability of sequence providers that know their
// element count without materializing the sequence.
type Sized interface {
	KnownSize() int
}

// Fixed returns a provider that always holds the given value.
func Fixed[T any](value T) Provider[T] {
	return &fixedProvider[T]{value: value}
}

type fixedProvider[T any] struct {
	value T
}

func (p *fixedProvider[T]) Present() bool {
	return true
}

func (p *fixedProvider[T]) Get() (T, error) {
	return p.value, nil
}

func (p *fixedProvider[T]) TryGet() (T, bool, error) {
	return p.value, true, nil
}

// FixedSeq returns an always-present sequence provider over the given
// elements. It exposes the Sized capability, so sources backed by it can
// answer Size queries.
func FixedSeq[T any](elements []T) Provider[[]T] {
	return &fixedSeqProvider[T]{elements: elements}
}

type fixedSeqProvider[T any] struct {
	elements []T
}

func (p *fixedSeqProvider[T]) Present() bool {
	return true
}

func (p *fixedSeqProvider[T]) Get() ([]T, error) {
	return p.elements, nil
}

func (p *fixedSeqProvider[T]) TryGet() ([]T, bool, error) {
	return p.elements, true, nil
}

func (p *fixedSeqProvider[T]) KnownSize() int {
	return len(p.elements)
}

// Deferred is a settable value cell: a computation whose value may appear
// or disappear between queries. The zero of Deferred has no value.
type Deferred[T any] struct {
	value T
	set   bool
}

// NewDeferred creates a deferred cell with no value.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{}
}

// Set stores a value in the cell.
func (d *Deferred[T]) Set(value T) {
	d.value = value
	d.set = true
}

// Unset removes the cell's value.
func (d *Deferred[T]) Unset() {
	var zero T
	d.value = zero
	d.set = false
}

func (d *Deferred[T]) Present() bool {
	return d.set
}

func (d *Deferred[T]) Get() (T, error) {
	if !d.set {
		var zero T
		return zero, &MissingValueError{}
	}
	return d.value, nil
}

func (d *Deferred[T]) TryGet() (T, bool, error) {
	if !d.set {
		var zero T
		return zero, false, nil
	}
	return d.value, true, nil
}

// Compute returns a provider that re-runs fn on every read. Absence is
// signalled by fn returning a MissingValueError; any other error is a
// computation failure and propagates to strict and tolerant readers alike.
func Compute[T any](fn func() (T, error)) Provider[T] {
	return &computedProvider[T]{fn: fn}
}

type computedProvider[T any] struct {
	fn func() (T, error)
}

func (p *computedProvider[T]) Present() bool {
	_, ok, err := p.TryGet()
	return err == nil && ok
}

func (p *computedProvider[T]) Get() (T, error) {
	return p.fn()
}

func (p *computedProvider[T]) TryGet() (T, bool, error) {
	value, err := p.fn()
	if err != nil {
		var zero T
		var missing *MissingValueError
		if errors.As(err, &missing) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return value, true, nil
}
