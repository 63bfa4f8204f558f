package propval

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListPropertyDefaultsToEmpty(t *testing.T) {
	prop := NewListProperty[string]()

	assert.True(t, prop.Present())
	assert.Equal(t, reflect.TypeOf(""), prop.ElementType())

	val, err := prop.Get()
	require.NoError(t, err)
	assert.Empty(t, val)

	n, err := prop.EstimatedSize()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestListPropertyPreservesRegistrationOrder(t *testing.T) {
	prop := NewListProperty[string]()
	prop.Append("a")
	prop.AppendAll([]string{"b", "c"})
	require.NoError(t, prop.AppendProvider(Fixed("d")))
	require.NoError(t, prop.AppendAllProvider(FixedSeq([]string{"e", "f"})))

	val, err := prop.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, val)

	n, err := prop.EstimatedSize()
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestListPropertyObservesDeferredChanges(t *testing.T) {
	cell := NewDeferred[string]()
	prop := NewListProperty[string]()
	prop.Append("always")
	require.NoError(t, prop.AppendProvider(cell))

	assert.False(t, prop.Present())

	val, ok, err := prop.TryGet()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, val)

	_, err = prop.Get()
	require.Error(t, err)
	assert.True(t, IsMissingValue(err))

	cell.Set("later")
	assert.True(t, prop.Present())
	val, err = prop.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"always", "later"}, val)

	cell.Unset()
	assert.False(t, prop.Present())
}

func TestListPropertySetReplacesPriorSources(t *testing.T) {
	prop := NewListProperty[int]()
	prop.Append(1)
	prop.Set([]int{7, 8})

	val, err := prop.Get()
	require.NoError(t, err)
	assert.Equal(t, []int{7, 8}, val)

	require.NoError(t, prop.SetProvider(FixedSeq([]int{9})))
	val, err = prop.Get()
	require.NoError(t, err)
	assert.Equal(t, []int{9}, val)
}

func TestListPropertyUnsetAndEmpty(t *testing.T) {
	prop := NewListProperty[int]()
	prop.Append(1)

	prop.Unset()
	assert.False(t, prop.Present())
	_, err := prop.Get()
	assert.True(t, IsMissingValue(err))

	val, err := prop.GetOrDefault([]int{5})
	require.NoError(t, err)
	assert.Equal(t, []int{5}, val)

	prop.Empty()
	assert.True(t, prop.Present())
	val, err = prop.Get()
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestListPropertyRejectsSelfReference(t *testing.T) {
	prop := NewListProperty[string](WithDisplayName("compilerArgs"))
	prop.Append("a")

	err := prop.AppendAllProvider(prop.AsProvider())
	require.Error(t, err)
	var selfRef *SelfReferenceError
	require.True(t, errors.As(err, &selfRef))
	assert.Contains(t, err.Error(), "compilerArgs")

	err = prop.SetProvider(prop.AsProvider())
	require.True(t, errors.As(err, &selfRef))

	// A rejected append leaves the property usable.
	val, err := prop.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, val)

	// Another property's provider is fine.
	other := NewListProperty[string]()
	other.Append("b")
	require.NoError(t, prop.AppendAllProvider(other.AsProvider()))
	val, err = prop.Get()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, val)
}

func TestListPropertyProvidedByScan(t *testing.T) {
	cell := NewDeferred[int]()
	other := NewDeferred[int]()

	prop := NewListProperty[int]()
	prop.Append(1)
	require.NoError(t, prop.AppendProvider(cell))

	assert.True(t, prop.ProvidedBy(cell))
	assert.False(t, prop.ProvidedBy(other))
}

func TestListPropertyEstimatedSizeUnsupported(t *testing.T) {
	prop := NewListProperty[int]()
	require.NoError(t, prop.AppendAllProvider(NewDeferred[[]int]()))

	_, err := prop.EstimatedSize()
	assert.True(t, IsSizeUnsupported(err))
}

func TestListPropertyChangeDetection(t *testing.T) {
	a := NewListProperty[string]()
	a.Append("x")
	a.AppendAll([]string{"y"})

	b := NewListProperty[string]()
	b.Append("x")
	b.AppendAll([]string{"y"})

	assert.True(t, a.EqualsState(b))
	assert.Equal(t, a.ContentHash(), b.ContentHash())

	b.Append("z")
	assert.False(t, a.EqualsState(b))
	assert.NotEqual(t, a.ContentHash(), b.ContentHash())

	// Provider-backed sources compare by handle identity, not value.
	p := NewDeferred[string]()
	q := NewDeferred[string]()
	c := NewListProperty[string]()
	d := NewListProperty[string]()
	require.NoError(t, c.AppendProvider(p))
	require.NoError(t, d.AppendProvider(q))
	assert.False(t, c.EqualsState(d))

	e := NewListProperty[string]()
	require.NoError(t, e.AppendProvider(p))
	assert.True(t, c.EqualsState(e))
}

func TestListPropertyProviderFailurePropagates(t *testing.T) {
	boom := errors.New("config script failed")
	prop := NewListProperty[int]()
	require.NoError(t, prop.AppendProvider(Compute(func() (int, error) {
		return 0, boom
	})))

	_, err := prop.Get()
	assert.ErrorIs(t, err, boom)

	_, _, err = prop.TryGet()
	assert.ErrorIs(t, err, boom)
}

func TestListPropertyTags(t *testing.T) {
	ownerTag := NewTag[string]("property.owner")
	prop := NewListProperty[int](
		WithDisplayName("includes"),
		WithPropertyTag(ownerTag, "compileTask"),
	)

	name, ok := DisplayName().Get(prop)
	require.True(t, ok)
	assert.Equal(t, "includes", name)

	owner, ok := ownerTag.Get(prop)
	require.True(t, ok)
	assert.Equal(t, "compileTask", owner)

	assert.Equal(t, "fallback", NewTag[string]("absent").GetOrDefault(prop, "fallback"))
}

type recordingHook struct {
	BaseHook
	collected []int
	missing   []int
	errs      []error
}

func (h *recordingHook) OnCollect(op *Operation) {
	h.collected = append(h.collected, op.SourceIndex)
}

func (h *recordingHook) OnMissing(op *Operation) {
	h.missing = append(h.missing, op.SourceIndex)
}

func (h *recordingHook) OnError(err error, op *Operation) {
	h.errs = append(h.errs, err)
}

func TestListPropertyHooks(t *testing.T) {
	hook := &recordingHook{BaseHook: NewBaseHook("recording")}
	cell := NewDeferred[string]()

	prop := NewListProperty[string](WithHook(hook))
	prop.Append("a")
	require.NoError(t, prop.AppendProvider(cell))

	_, ok, err := prop.TryGet()
	require.NoError(t, err)
	require.False(t, ok)
	// Index 0 is the initial empty source, index 1 the literal.
	assert.Equal(t, []int{0, 1}, hook.collected)
	assert.Equal(t, []int{2}, hook.missing)

	_, err = prop.Get()
	require.Error(t, err)
	require.Len(t, hook.errs, 1)
	assert.True(t, IsMissingValue(hook.errs[0]))
}
