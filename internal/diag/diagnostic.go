package diag

import (
	"fltc/internal/source"
)

// Diagnostic is one structured message from the external compiler. The
// engine treats it as read-only.
type Diagnostic struct {
	Kind      Kind
	Message   string
	Option    string // e.g. -Wimplicit-function-declaration, may be empty
	Locations []source.Location
	Children  []Diagnostic
}

// New builds a diagnostic with the given locations.
func New(kind Kind, msg string, locs ...source.Location) Diagnostic {
	return Diagnostic{
		Kind:      kind,
		Message:   msg,
		Locations: locs,
	}
}

// NewError is a shortcut for KindError diagnostics.
func NewError(msg string, locs ...source.Location) Diagnostic {
	return New(KindError, msg, locs...)
}

// NewWarning is a shortcut for KindWarning diagnostics.
func NewWarning(msg string, locs ...source.Location) Diagnostic {
	return New(KindWarning, msg, locs...)
}

// WithNote appends a child note.
func (d Diagnostic) WithNote(msg string, locs ...source.Location) Diagnostic {
	d.Children = append(d.Children, New(KindNote, msg, locs...))
	return d
}
