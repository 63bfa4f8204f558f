package propval

import "reflect"

// ListProperty is a collection-valued setting assembled from an ordered
// sequence of element sources, one per mutation. Nothing is cached:
// presence and value are recomputed from the sources on every query, so a
// deferred source that gains or loses its value between calls is observed.
//
// A ListProperty is not safe for concurrent use; callers needing that must
// synchronize around it.
type ListProperty[T any] struct {
	sources     []*TypedSource[T]
	elementType reflect.Type
	tags        map[any]any
	hooks       []Hook
	provider    *propertyProvider[T]
}

// PropertyOption is a modifier for properties
type PropertyOption func(propertySettings)

type propertySettings interface {
	Tagged
	addHook(h Hook)
}

// WithPropertyTag returns an option that sets a tag on a property
func WithPropertyTag[T any](tag Tag[T], val T) PropertyOption {
	return func(p propertySettings) {
		tag.Set(p, val)
	}
}

// WithDisplayName returns an option that names a property for diagnostics
func WithDisplayName(name string) PropertyOption {
	return func(p propertySettings) {
		displayNameTag.Set(p, name)
	}
}

// WithHook returns an option that registers an evaluation hook
func WithHook(h Hook) PropertyOption {
	return func(p propertySettings) {
		p.addHook(h)
	}
}

// NewListProperty creates a property with an empty value.
func NewListProperty[T any](opts ...PropertyOption) *ListProperty[T] {
	p := &ListProperty[T]{
		elementType: reflect.TypeOf((*T)(nil)).Elem(),
		tags:        make(map[any]any),
	}
	p.provider = &propertyProvider[T]{property: p}
	p.sources = []*TypedSource[T]{Typed(p.elementType, Empty[T]())}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *ListProperty[T]) GetTag(tag any) (any, bool) {
	val, ok := p.tags[tag]
	return val, ok
}

func (p *ListProperty[T]) SetTag(tag any, val any) {
	p.tags[tag] = val
}

func (p *ListProperty[T]) addHook(h Hook) {
	p.hooks = append(p.hooks, h)
}

// ElementType returns the property's declared element type.
func (p *ListProperty[T]) ElementType() reflect.Type {
	return p.elementType
}

// Set replaces the property's value with a literal sequence.
func (p *ListProperty[T]) Set(elements []T) {
	p.sources = []*TypedSource[T]{p.typed(Elements(elements))}
}

// SetProvider replaces the property's value with a deferred sequence. It
// rejects the property's own provider handle.
func (p *ListProperty[T]) SetProvider(provider Provider[[]T]) error {
	src := p.typed(ElementsFrom(provider))
	if err := p.guard(src); err != nil {
		return err
	}
	p.sources = []*TypedSource[T]{src}
	return nil
}

// Append adds a single literal element to the end of the value.
func (p *ListProperty[T]) Append(element T) {
	p.sources = append(p.sources, p.typed(Single(element)))
}

// AppendProvider adds the eventual value of a deferred computation.
func (p *ListProperty[T]) AppendProvider(provider Provider[T]) error {
	return p.appendGuarded(SingleFrom(provider))
}

// AppendAll adds every element of a literal sequence.
func (p *ListProperty[T]) AppendAll(elements []T) {
	p.sources = append(p.sources, p.typed(Elements(elements)))
}

// AppendAllProvider adds every element of a deferred sequence.
func (p *ListProperty[T]) AppendAllProvider(provider Provider[[]T]) error {
	return p.appendGuarded(ElementsFrom(provider))
}

// Empty resets the property to an empty, present value.
func (p *ListProperty[T]) Empty() {
	p.sources = []*TypedSource[T]{p.typed(Empty[T]())}
}

// Unset clears the property to an absent value: Present becomes false and
// strict reads fail until the property is set again.
func (p *ListProperty[T]) Unset() {
	p.sources = []*TypedSource[T]{p.typed(Missing[T]())}
}

func (p *ListProperty[T]) typed(src Source[T]) *TypedSource[T] {
	return Typed(p.elementType, src)
}

func (p *ListProperty[T]) appendGuarded(src Source[T]) error {
	typed := p.typed(src)
	if err := p.guard(typed); err != nil {
		return err
	}
	p.sources = append(p.sources, typed)
	return nil
}

func (p *ListProperty[T]) guard(src *TypedSource[T]) error {
	if src.IsProvidedBy(p.provider) {
		return &SelfReferenceError{DisplayName: p.displayName()}
	}
	return nil
}

// ProvidedBy reports whether any registered source is backed by the given
// provider handle (directly or through its typed decorator).
func (p *ListProperty[T]) ProvidedBy(candidate any) bool {
	for _, src := range p.sources {
		if src.IsProvidedBy(candidate) {
			return true
		}
	}
	return false
}

// Present reports whether every source currently has a value. Deferred
// sources are probed afresh on each call.
func (p *ListProperty[T]) Present() bool {
	for _, src := range p.sources {
		if !src.Present() {
			return false
		}
	}
	return true
}

// Get materializes the value strictly, in source-registration order. Any
// absent source fails the whole read.
func (p *ListProperty[T]) Get() ([]T, error) {
	out := make([]T, 0, len(p.sources))
	for i, src := range p.sources {
		if err := src.CollectInto(&out); err != nil {
			p.notifyError(err, OpGet, i, src)
			return nil, err
		}
		p.notifyCollect(OpGet, i, src)
	}
	return out, nil
}

// TryGet materializes the value tolerantly: an absent source yields
// (nil, false, nil) rather than an error. Provider failures other than
// absence still propagate.
func (p *ListProperty[T]) TryGet() ([]T, bool, error) {
	out := make([]T, 0, len(p.sources))
	for i, src := range p.sources {
		ok, err := src.MaybeCollectInto(&out)
		if err != nil {
			p.notifyError(err, OpTryGet, i, src)
			return nil, false, err
		}
		if !ok {
			p.notifyMissing(OpTryGet, i, src)
			return nil, false, nil
		}
		p.notifyCollect(OpTryGet, i, src)
	}
	return out, true, nil
}

// GetOrDefault returns the materialized value, or def when any source is
// absent. Provider failures still propagate.
func (p *ListProperty[T]) GetOrDefault(def []T) ([]T, error) {
	out, ok, err := p.TryGet()
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return out, nil
}

// EstimatedSize sums the sources' element counts without materializing
// deferred values. It fails with a SizeUnsupportedError when any source's
// count is unknowable.
func (p *ListProperty[T]) EstimatedSize() (int, error) {
	total := 0
	for _, src := range p.sources {
		n, err := src.Size()
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// ContentHash combines the sources' hashes in registration order, for
// up-to-date comparisons between two configurations of the same setting.
func (p *ListProperty[T]) ContentHash() uint64 {
	hashes := make([]uint64, 0, len(p.sources))
	for _, src := range p.sources {
		hashes = append(hashes, src.Hash())
	}
	return hashValue("property.list", hashes)
}

// EqualsState reports whether two properties hold structurally equal
// source lists.
func (p *ListProperty[T]) EqualsState(other *ListProperty[T]) bool {
	if other == nil || len(p.sources) != len(other.sources) {
		return false
	}
	for i, src := range p.sources {
		if !src.Equal(other.sources[i]) {
			return false
		}
	}
	return true
}

// AsProvider exposes the property's value as a deferred sequence. The
// returned handle is stable for the property's lifetime, so sources can be
// checked against it with IsProvidedBy.
func (p *ListProperty[T]) AsProvider() Provider[[]T] {
	return p.provider
}

func (p *ListProperty[T]) displayName() string {
	return displayNameTag.GetOrDefault(p, "")
}

func (p *ListProperty[T]) notifyCollect(kind OperationKind, index int, src Source[T]) {
	for _, h := range p.hooks {
		h.OnCollect(&Operation{Kind: kind, Property: p, SourceIndex: index, Source: src})
	}
}

func (p *ListProperty[T]) notifyMissing(kind OperationKind, index int, src Source[T]) {
	for _, h := range p.hooks {
		h.OnMissing(&Operation{Kind: kind, Property: p, SourceIndex: index, Source: src})
	}
}

func (p *ListProperty[T]) notifyError(err error, kind OperationKind, index int, src Source[T]) {
	for _, h := range p.hooks {
		h.OnError(err, &Operation{Kind: kind, Property: p, SourceIndex: index, Source: src})
	}
}

// propertyProvider is the property's own provider view. It is deliberately
// not Sized: the property's count may be unknowable.
type propertyProvider[T any] struct {
	property *ListProperty[T]
}

func (pp *propertyProvider[T]) Present() bool {
	return pp.property.Present()
}

func (pp *propertyProvider[T]) Get() ([]T, error) {
	return pp.property.Get()
}

func (pp *propertyProvider[T]) TryGet() ([]T, bool, error) {
	return pp.property.TryGet()
}
