package diag

// Bag holds the diagnostics produced by one compiler pass, in emission order.
type Bag struct {
	items []Diagnostic
}

// NewBag wraps diagnostics in a bag.
func NewBag(items []Diagnostic) *Bag {
	return &Bag{items: items}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// Len returns the number of diagnostics.
func (b *Bag) Len() int {
	if b == nil {
		return 0
	}
	return len(b.items)
}

// Items returns the read-only slice of diagnostics.
// The returned slice aliases the bag; do not modify it.
func (b *Bag) Items() []Diagnostic {
	if b == nil {
		return nil
	}
	return b.items
}

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool {
	return b.Count(KindError) > 0
}

// Count returns how many diagnostics have the given kind.
func (b *Bag) Count(kind Kind) int {
	n := 0
	for i := range b.Items() {
		if b.items[i].Kind == kind {
			n++
		}
	}
	return n
}
