package propval

// Hook provides observation points into property evaluation
type Hook interface {
	// Name returns the hook's name
	Name() string

	// OnCollect is called after a source contributed its elements
	OnCollect(op *Operation)

	// OnMissing is called when a tolerant read finds a source absent
	OnMissing(op *Operation)

	// OnError handles failures raised while forcing a source
	OnError(err error, op *Operation)
}

// BaseHook provides default implementations for Hook methods
type BaseHook struct {
	name string
}

// NewBaseHook creates a new base hook with the given name
func NewBaseHook(name string) BaseHook {
	return BaseHook{name: name}
}

func (h *BaseHook) Name() string {
	return h.name
}

func (h *BaseHook) OnCollect(op *Operation) {
}

func (h *BaseHook) OnMissing(op *Operation) {
}

func (h *BaseHook) OnError(err error, op *Operation) {
}

// Operation describes which source of which property is being evaluated
type Operation struct {
	Kind        OperationKind
	Property    Tagged
	SourceIndex int
	Source      any
}

// OperationKind represents the type of read driving the evaluation
type OperationKind string

const (
	// OpGet indicates a strict materialization
	OpGet OperationKind = "get"
	// OpTryGet indicates a tolerant materialization
	OpTryGet OperationKind = "try-get"
)
