package diag

import "fmt"

// Kind is the compiler's classification of a diagnostic.
type Kind uint8

const (
	// KindNote is a supplementary message attached to another diagnostic.
	KindNote Kind = iota
	// KindWarning is a warning diagnostic.
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	}
	return "unknown"
}

// ParseKind maps the compiler's kind string onto Kind. gcc reports fatal
// errors as "fatal error", which is folded into KindError.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "note":
		return KindNote, nil
	case "warning", "pedwarn":
		return KindWarning, nil
	case "error", "fatal error", "sorry, unimplemented", "internal compiler error":
		return KindError, nil
	default:
		return KindError, fmt.Errorf("unknown diagnostic kind %q", s)
	}
}
