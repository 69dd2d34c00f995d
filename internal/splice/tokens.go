// Package splice holds the text primitives every rewrite action is built on:
// token scanners, adjacent-line merges and the one routine allowed to apply
// column-addressed edits to a line.
package splice

import (
	"strings"
	"unicode"
)

// FunctionPrefix marks runtime entry points; NextToken treats identifiers
// carrying it as calls even when whitespace separates the parenthesis.
const FunctionPrefix = "flt_"

func isWord(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// PreviousToken returns the longest run of word characters, or characters in
// extra, at the end of text after trailing whitespace is trimmed.
func PreviousToken(text, extra string) string {
	text = strings.TrimSpace(text)
	i := len(text)
	for i > 0 {
		c := text[i-1]
		if !isWord(c) && strings.IndexByte(extra, c) < 0 {
			break
		}
		i--
	}
	return text[i:]
}

// SplitLast splits text around the last occurrence of token. before is
// everything in front of it and after everything behind it. When token is
// absent, before is empty and after is text.
func SplitLast(token, text string) (before, after string) {
	i := strings.LastIndex(text, token)
	if i < 0 {
		return "", text
	}
	return text[:i], text[i+len(token):]
}

// NextToken scans a word at the start of text, after leading whitespace is
// trimmed. If the word starts with prefix or is directly followed by '(' the
// whole balanced call expression is returned, including nested calls. An
// unclosed call, or a prefixed word with no call, yields "".
func NextToken(text, prefix string) string {
	text = strings.TrimSpace(text)
	i := 0
	for i < len(text) && isWord(text[i]) {
		i++
	}
	tok := text[:i]
	isCall := prefix != "" && strings.HasPrefix(tok, prefix) || i < len(text) && text[i] == '('
	if !isCall {
		return tok
	}
	for i < len(text) && unicode.IsSpace(rune(text[i])) {
		i++
	}
	if i >= len(text) || text[i] != '(' {
		return ""
	}
	depth := 0
	for ; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth == 0 {
			return text[:i+1]
		}
	}
	return ""
}

// IsNumeral reports whether tok is a plain decimal numeral, optionally with
// an exponent. Simple operands that are numerals become literal calls.
func IsNumeral(tok string) bool {
	if tok == "" {
		return false
	}
	digits, exp, hasExp := strings.Cut(tok, "e")
	if !hasExp {
		digits, exp, hasExp = strings.Cut(tok, "E")
	}
	if !allDigits(digits) {
		return false
	}
	if hasExp {
		exp = strings.TrimPrefix(strings.TrimPrefix(exp, "+"), "-")
		return allDigits(exp)
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
