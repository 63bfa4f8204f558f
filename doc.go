// Package propval provides lazy element sources for collection-valued
// configuration properties.
//
// # Overview
//
// Propval organizes code around three core concepts:
//
//  1. Providers: deferred single-value (or sequence) computations that may
//     not yet have a value
//  2. Sources: the six laziness strategies a collection value can be
//     assembled from
//  3. Properties: ordered lists of sources materialized strictly or
//     tolerantly on demand
//
// # Basic Usage
//
// Build a property from heterogeneous contributions:
//
//	args := propval.NewListProperty[string](
//	    propval.WithDisplayName("compilerArgs"),
//	)
//
//	args.Append("-Wall")
//	args.AppendAll([]string{"-std=c17"})
//
//	optLevel := propval.NewDeferred[string]()
//	args.AppendProvider(optLevel)
//
// Materialize it strictly or tolerantly:
//
//	// strict: fails while optLevel has no value
//	_, err := args.Get()
//
//	// tolerant: absence is a first-class answer, not an error
//	if _, ok, _ := args.TryGet(); !ok {
//	    // not all contributions are known yet
//	}
//
//	optLevel.Set("-O2")
//	value, _ := args.Get() // ["-Wall", "-std=c17", "-O2"]
//
// # Sources
//
// The source family is closed; owners can reason exhaustively about it:
//
//	propval.Empty[string]()          // present, contributes nothing
//	propval.Missing[string]()        // never present
//	propval.Single("-Wall")          // one literal element
//	propval.SingleFrom(provider)     // one deferred element
//	propval.Elements(slice)          // a materialized sequence
//	propval.ElementsFrom(seqProvider) // a deferred sequence
//
// Presence of deferred sources is re-evaluated on every query and never
// cached, so a provider that gains or loses its value between calls is
// observed. Each source supports a strict copy (CollectInto, failing on
// absence with MissingValueError) and a tolerant copy (MaybeCollectInto,
// reporting absence as false without touching the target).
//
// # Sizes
//
// Size reports how many elements a source contributes. For a deferred
// sequence the count is only knowable when its provider implements Sized;
// otherwise Size fails with SizeUnsupportedError rather than guessing:
//
//	src := propval.ElementsFrom(propval.FixedSeq([]int{1, 2, 3}))
//	n, _ := src.Size() // 3
//
//	src = propval.ElementsFrom(propval.NewDeferred[[]int]())
//	_, err := src.Size() // SizeUnsupportedError
//
// # Provenance
//
// Sources backed by a provider expose an identity check, distinct from
// value equality, used to reject self-referential composition:
//
//	err := args.AppendAllProvider(args.AsProvider())
//	// err is a SelfReferenceError
//
// Two providers holding equal values are still distinct handles:
//
//	p := propval.NewDeferred[string]()
//	q := propval.NewDeferred[string]()
//	src := propval.SingleFrom[string](p).(propval.ProvidedSource[string])
//	src.IsProvidedBy(p) // true
//	src.IsProvidedBy(q) // false
//
// # Tags
//
// Tags attach type-safe metadata to properties for diagnostics:
//
//	ownerTag := propval.NewTag[string]("property.owner")
//
//	prop := propval.NewListProperty[string](
//	    propval.WithPropertyTag(ownerTag, "compileTask"),
//	    propval.WithDisplayName("includes"),
//	)
//
//	owner, ok := ownerTag.Get(prop)
//
// # Hooks
//
// Hooks observe evaluation for logging and debugging:
//
//	type CountingHook struct {
//	    propval.BaseHook
//	    collected int
//	}
//
//	func (h *CountingHook) OnCollect(op *propval.Operation) {
//	    h.collected++
//	}
//
//	prop := propval.NewListProperty[string](
//	    propval.WithHook(&CountingHook{
//	        BaseHook: propval.NewBaseHook("counting"),
//	    }),
//	)
//
// The extensions package ships a slog-backed trace hook.
//
// # Error Handling
//
// Absence is an expected state on the tolerant path. A strict operation on
// an absent source is always a hard failure (MissingValueError), never
// retried or swallowed. Failures raised by a provider while being forced
// propagate to the caller unchanged; this package adds no wrapping.
//
// # Thread Safety
//
// Sources are immutable after construction and safe to query repeatedly.
// Properties are not synchronized: evaluation is single-threaded and
// cooperative, and forcing a provider runs arbitrary user logic on the
// calling stack. Callers needing concurrent access must synchronize around
// the property.
package propval
