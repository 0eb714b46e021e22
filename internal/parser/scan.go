package parser

import (
	"fmt"
	"strings"
)

// ParseError reports a malformed type expression. Parsing never silently
// truncates: unbalanced delimiters or unexpected tokens fail with the
// offending expression attached.
type ParseError struct {
	Expr    string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	expr := e.Expr
	if len(expr) > 80 {
		expr = expr[:77] + "..."
	}
	return fmt.Sprintf("parse error in %q: %s", expr, e.Message)
}

// StripComments removes // line comments from src. Comment markers inside
// double-quoted string literals are left alone. Newlines are preserved so
// any later position reporting stays line-accurate.
func StripComments(src string) string {
	var b strings.Builder
	b.Grow(len(src))

	inString := false
	escaped := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			b.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(src) && src[i+1] == '/' {
			for i < len(src) && src[i] != '\n' {
				i++
			}
			if i < len(src) {
				b.WriteByte('\n')
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// EnsureBalanced verifies that every {, ( and [ in s has a matching closer
// at the same nesting level. Delimiters inside string literals are ignored.
func EnsureBalanced(s string) error {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '(', '[':
			stack = append(stack, c)
		case '}', ')', ']':
			if len(stack) == 0 {
				return &ParseError{Expr: s, Message: fmt.Sprintf("unexpected %q", c)}
			}
			open := stack[len(stack)-1]
			if (c == '}' && open != '{') || (c == ')' && open != '(') || (c == ']' && open != '[') {
				return &ParseError{Expr: s, Message: fmt.Sprintf("mismatched %q", c)}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if inString {
		return &ParseError{Expr: s, Message: "unterminated string literal"}
	}
	if len(stack) > 0 {
		return &ParseError{Expr: s, Message: fmt.Sprintf("unclosed %q", stack[len(stack)-1])}
	}
	return nil
}

// SplitTop splits s on sep, counting only separators at nesting depth zero.
// Separators inside braces, parens, brackets, or string literals never
// split. The input must already be balanced.
func SplitTop(s string, sep byte) []string {
	var parts []string
	depth := 0
	inString := false
	escaped := false
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// cutTop is like strings.Cut on sep but only at nesting depth zero.
func cutTop(s string, sep byte) (before, after string, found bool) {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '(', '[':
			depth++
		case '}', ')', ']':
			depth--
		case sep:
			if depth == 0 {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

// ParenBody extracts the contents of the first ( ... ) group in s and
// returns the remainder after the matching closer.
func ParenBody(s string) (inside, rest string, err error) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", "", &ParseError{Expr: s, Message: "expected '('"}
	}
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[open+1 : i], s[i+1:], nil
			}
		}
	}
	return "", "", &ParseError{Expr: s, Message: "unclosed '('"}
}

// BraceBody extracts the contents of the outermost { ... } in s, requiring
// nothing but whitespace after the matching closer.
func BraceBody(s string) (string, error) {
	open := strings.IndexByte(s, '{')
	if open < 0 {
		return "", &ParseError{Expr: s, Message: "expected '{'"}
	}
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				if rest := strings.TrimSpace(s[i+1:]); rest != "" {
					return "", &ParseError{Expr: s, Message: fmt.Sprintf("unexpected %q after '}'", rest)}
				}
				return s[open+1 : i], nil
			}
		}
	}
	return "", &ParseError{Expr: s, Message: "unclosed '{'"}
}
