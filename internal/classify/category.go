package classify

// Phase selects which categories are active.
type Phase uint8

const (
	// PhaseStructural is the call-wrapping phase.
	PhaseStructural Phase = iota + 1
	// PhaseFolding folds initializers that became constant.
	PhaseFolding
)

func (p Phase) String() string {
	switch p {
	case PhaseStructural:
		return "structural"
	case PhaseFolding:
		return "folding"
	}
	return "unknown"
}

// Category is the closed set of rewrite actions a diagnostic can select.
type Category uint8

const (
	// Unhandled matched no rule.
	Unhandled Category = iota
	// Ignored is recognized as benign: notes, implicit declarations,
	// unknown type names and known target compiler incompatibilities.
	Ignored
	NonConstantInitializer
	InvalidInitializer
	Extension
	UnaryMinus
	UnaryPlus
	Increment
	Decrement
	// CastToFLT removes a (FLT) cast the compiler refuses.
	CastToFLT
	// CastToInteger removes an integer cast applied to an FLT value.
	CastToInteger
	Arithmetic
	Comparison
	// FirstOperand is a binary operator whose left operand is an integer.
	FirstOperand
	// SecondOperand is a binary operator whose right operand is an integer.
	SecondOperand
	// AssignToInteger assigns an FLT value to an integer lvalue.
	AssignToInteger
	// AssignToFLT assigns an integer value to an FLT lvalue.
	AssignToFLT
	IncompatibleArgument
	PrintfFormat
	ScanfFormat
	ConflictingBuiltin
)

var categoryNames = [...]string{
	Unhandled:              "unhandled",
	Ignored:                "ignored",
	NonConstantInitializer: "non-constant-initializer",
	InvalidInitializer:     "invalid-initializer",
	Extension:              "extension",
	UnaryMinus:             "unary-minus",
	UnaryPlus:              "unary-plus",
	Increment:              "increment",
	Decrement:              "decrement",
	CastToFLT:              "cast-to-flt",
	CastToInteger:          "cast-to-integer",
	Arithmetic:             "arithmetic",
	Comparison:             "comparison",
	FirstOperand:           "first-operand",
	SecondOperand:          "second-operand",
	AssignToInteger:        "assign-to-integer",
	AssignToFLT:            "assign-to-flt",
	IncompatibleArgument:   "incompatible-argument",
	PrintfFormat:           "printf-format",
	ScanfFormat:            "scanf-format",
	ConflictingBuiltin:     "conflicting-builtin",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// ActiveIn reports whether diagnostics of this category drive an action
// during the given phase.
func (c Category) ActiveIn(p Phase) bool {
	switch c {
	case NonConstantInitializer:
		return p == PhaseFolding
	case InvalidInitializer:
		return p == PhaseStructural
	default:
		return true
	}
}
