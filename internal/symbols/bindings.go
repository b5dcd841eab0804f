package symbols

// Binding ties a name imported into the diff document to the external
// module it was imported from.
type Binding struct {
	Local  string // name bound in the diff document
	Module string // dotted path of the external module
	Name   string // name as defined in the external module
}

// Bindings is the set of import bindings recorded for one document, in
// recording order. A later binding of the same local name replaces the
// earlier one, mirroring Python's rebinding semantics.
type Bindings struct {
	order   []string
	byLocal map[string]Binding
}

func NewBindings() *Bindings {
	return &Bindings{byLocal: make(map[string]Binding)}
}

func (b *Bindings) Add(binding Binding) {
	if _, ok := b.byLocal[binding.Local]; !ok {
		b.order = append(b.order, binding.Local)
	}
	b.byLocal[binding.Local] = binding
}

// Lookup returns the binding of a local name.
func (b *Bindings) Lookup(local string) (Binding, bool) {
	binding, ok := b.byLocal[local]
	return binding, ok
}

// All returns the bindings in recording order.
func (b *Bindings) All() []Binding {
	out := make([]Binding, 0, len(b.order))
	for _, local := range b.order {
		out = append(out, b.byLocal[local])
	}
	return out
}

func (b *Bindings) Len() int {
	return len(b.order)
}
