package classify

import "regexp"

// IntegerType matches the integer type spellings gcc prints inside quotes.
const IntegerType = `(?:(?:unsigned|signed|char|short|int|long|size_t|u?int[0-9]+_t)\s*)+`

// FLTType matches the FLT type name.
const FLTType = `FLT`

// alias matches a typedef gcc resolves to an integer type. gcc quotes the
// typedef as spelled in the source, which may use UTF-8 identifiers.
const alias = `‘[_\p{L}\p{N}]+’ \{aka ‘` + IntegerType + `’\}`

var exact = map[string]Category{
	"initializer element is not constant":                       NonConstantInitializer,
	"invalid initializer":                                       InvalidInitializer,
	"two or more data types in declaration specifiers":          Extension,
	"wrong type argument to unary minus":                        UnaryMinus,
	"wrong type argument to unary plus":                         UnaryPlus,
	"wrong type argument to increment":                          Increment,
	"wrong type argument to decrement":                          Decrement,
	"conversion to non-scalar type requested":                   CastToFLT,
	"aggregate value used where an integer was expected":        CastToInteger,
	"expected declaration specifiers or ‘...’ before ‘*’ token": Extension,

	// cc65 and gcc disagree on these; they never need an edit.
	"cast from pointer to integer of different size": Ignored,
	"useless type name in empty declaration":         Ignored,
	"‘fastcall’ attribute ignored":                   Ignored,

	// cc65's stdio declares FILE as an incomplete struct.
	"assignment to ‘FILE *’ {aka ‘struct _FILE *’} from ‘int’ makes pointer from integer without a cast": Ignored,
}

type rule struct {
	re  *regexp.Regexp
	cat Category
	// warningOnly restricts the rule to non-error diagnostics.
	warningOnly bool
}

// Order matters: the two-FLT operator rules come before the mixed ones and
// the assignment rules before everything that mentions binary operators.
var rules = []rule{
	{re: regexp.MustCompile(`incompatible types when assigning to type ‘` + IntegerType + `’ from type ‘FLT’`), cat: AssignToInteger},
	{re: regexp.MustCompile(`incompatible types when assigning to type ` + alias + ` from type ‘FLT’`), cat: AssignToInteger},
	{re: regexp.MustCompile(`incompatible types when assigning to type ‘FLT’ from type ‘` + IntegerType + `’`), cat: AssignToFLT},
	{re: regexp.MustCompile(`incompatible types when assigning to type ‘FLT’ from type ` + alias), cat: AssignToFLT},
	{re: regexp.MustCompile(`invalid operands to binary [-+*/]=? \(have ‘FLT’ and ‘FLT’\)`), cat: Arithmetic},
	{re: regexp.MustCompile(`invalid operands to binary (?:[<>]=?|[=!]=) \(have ‘FLT’ and ‘FLT’\)`), cat: Comparison},
	{re: regexp.MustCompile(`invalid operands to binary [-+*/<>=!]+ \(have ‘` + IntegerType + `’ and ‘FLT’\)`), cat: FirstOperand},
	{re: regexp.MustCompile(`invalid operands to binary [-+*/<>=!]+ \(have ` + alias + ` and ‘FLT’\)`), cat: FirstOperand},
	{re: regexp.MustCompile(`invalid operands to binary [-+*/<>=!]+ \(have ‘struct <anonymous>’ and ‘FLT’\)`), cat: CastToFLT},
	{re: regexp.MustCompile(`invalid operands to binary [-+*/<>=!]+ \(have ‘FLT’ and ‘` + IntegerType + `’\)`), cat: SecondOperand},
	{re: regexp.MustCompile(`invalid operands to binary [-+*/<>=!]+ \(have ‘FLT’ and ` + alias + `\)`), cat: SecondOperand},
	{re: regexp.MustCompile(`invalid operands to binary [-+*/<>=!]+ \(have ‘FLT’ and ‘struct <anonymous>’\)`), cat: CastToFLT},
	{re: regexp.MustCompile(`incompatible type for argument [0-9]+ of ‘flt_[^’]+’`), cat: IncompatibleArgument},
	{re: regexp.MustCompile(`format ‘%l?[EeFfGg]’ expects argument of type ‘(?:float|double)’, but argument [0-9]+ has type ‘FLT’`), cat: PrintfFormat},
	{re: regexp.MustCompile(`format ‘%l?[EeFfGg]’ expects argument of type ‘(?:float|double) \*’, but argument [0-9]+ has type ‘FLT \*’`), cat: ScanfFormat},
	{re: regexp.MustCompile(`expected ‘=’, ‘,’, ‘;’, ‘asm’ or ‘__attribute__’ before ‘[^’]+’`), cat: Extension},
	{re: regexp.MustCompile(`conflicting types for built-in function ‘[^’]+’; expected ‘[^’]+’`), cat: ConflictingBuiltin},
	{re: regexp.MustCompile(`(?:incompatible)? *implicit declaration of (?:built-in)? *function ‘[^’]+’`), cat: Ignored, warningOnly: true},
	{re: regexp.MustCompile(`unknown type name ‘[^’]+’`), cat: Ignored},
}
