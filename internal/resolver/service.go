package resolver

import (
	"sort"
	"strings"

	"github.com/didlang/didargs/internal/parser"
)

// Method is one entry of the service block: ordered raw parameter and
// result type expressions plus any trailing annotations (query, oneway).
type Method struct {
	Name        string
	Params      []string
	Results     []string
	Annotations []string
}

// Service holds the alias table and method table of one IDL source.
// Both tables are built during Parse and never mutated afterwards.
type Service struct {
	aliases  map[string]string // alias name -> raw type expression text
	methods  map[string]Method
	maxDepth int
}

// Option configures Parse.
type Option func(*Service)

// WithMaxDepth overrides the alias expansion depth limit.
func WithMaxDepth(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxDepth = n
		}
	}
}

// Parse builds a Service from IDL source text: one alias table entry per
// `type NAME = EXPR;` declaration and one method per entry of the
// `service : { ... }` block. A source without a service block parses fine;
// it just has no methods to resolve.
func Parse(src string, opts ...Option) (*Service, error) {
	cleaned := parser.StripComments(src)
	if err := parser.EnsureBalanced(cleaned); err != nil {
		return nil, err
	}

	svc := &Service{
		aliases:  make(map[string]string),
		methods:  make(map[string]Method),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(svc)
	}

	for _, decl := range parser.SplitTop(cleaned, ';') {
		decl = strings.TrimSpace(decl)
		switch {
		case decl == "":
			// Trailing separator or blank run between declarations.
		case hasKeyword(decl, "type"):
			if err := svc.parseAliasDecl(decl); err != nil {
				return nil, err
			}
		case hasKeyword(decl, "service"):
			if err := svc.parseServiceBlock(decl); err != nil {
				return nil, err
			}
		default:
			return nil, &SourceError{Decl: decl, Message: "expected 'type' or 'service' declaration"}
		}
	}

	return svc, nil
}

// parseAliasDecl handles `type NAME = EXPR`.
func (s *Service) parseAliasDecl(decl string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(decl, "type"))
	name, expr, ok := strings.Cut(rest, "=")
	if !ok {
		return &SourceError{Decl: decl, Message: "type declaration missing '='"}
	}
	name = strings.TrimSpace(name)
	expr = strings.TrimSpace(expr)
	if !parser.IsIdentifier(name) {
		return &SourceError{Decl: decl, Message: "invalid alias name"}
	}
	if expr == "" {
		return &SourceError{Decl: decl, Message: "alias has no definition"}
	}
	if _, dup := s.aliases[name]; dup {
		return &SourceError{Decl: decl, Message: "duplicate type declaration"}
	}
	// Parse now so malformed definitions fail at table construction, not
	// in the middle of a later resolution.
	if _, err := parser.ParseType(expr); err != nil {
		return err
	}
	s.aliases[name] = expr
	return nil
}

// parseServiceBlock handles `service [name] : [(init) ->] { methods }`.
func (s *Service) parseServiceBlock(decl string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(decl, "service"))

	// Optional service name before the colon.
	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return &SourceError{Decl: decl, Message: "service declaration missing ':'"}
	}
	if name := strings.TrimSpace(rest[:colon]); name != "" && !parser.IsIdentifier(name) {
		return &SourceError{Decl: decl, Message: "invalid service name"}
	}
	body := strings.TrimSpace(rest[colon+1:])

	// Optional constructor arguments: service : (InitArgs) -> { ... }
	if strings.HasPrefix(body, "(") {
		_, after, err := parser.ParenBody(body)
		if err != nil {
			return err
		}
		after = strings.TrimSpace(after)
		if !strings.HasPrefix(after, "->") {
			return &SourceError{Decl: decl, Message: "expected '->' after service init arguments"}
		}
		body = strings.TrimSpace(after[2:])
	}

	inner, err := parser.BraceBody(body)
	if err != nil {
		return err
	}

	for _, entry := range parser.SplitTop(inner, ';') {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		m, err := parseMethod(entry)
		if err != nil {
			return err
		}
		if _, dup := s.methods[m.Name]; dup {
			return &SourceError{Decl: entry, Message: "duplicate method name"}
		}
		s.methods[m.Name] = m
	}
	return nil
}

// parseMethod handles `name : (params) -> (results) annotations`.
func parseMethod(entry string) (Method, error) {
	name, sig, ok := strings.Cut(entry, ":")
	if !ok {
		return Method{}, &SourceError{Decl: entry, Message: "method missing ':'"}
	}
	name = strings.TrimSpace(name)
	if !parser.IsIdentifier(name) {
		return Method{}, &SourceError{Decl: entry, Message: "invalid method name"}
	}

	sig = strings.TrimSpace(sig)
	params, rest, err := parser.ParenBody(sig)
	if err != nil {
		return Method{}, &SourceError{Decl: entry, Message: "method missing parameter list"}
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "->") {
		return Method{}, &SourceError{Decl: entry, Message: "method missing '->'"}
	}
	results, rest, err := parser.ParenBody(strings.TrimSpace(rest[2:]))
	if err != nil {
		return Method{}, &SourceError{Decl: entry, Message: "method missing result list"}
	}

	m := Method{
		Name:        name,
		Params:      splitTypeList(params),
		Results:     splitTypeList(results),
		Annotations: strings.Fields(rest),
	}
	for _, a := range m.Annotations {
		if !parser.IsIdentifier(a) {
			return Method{}, &SourceError{Decl: entry, Message: "invalid method annotation"}
		}
	}
	return m, nil
}

// hasKeyword reports whether decl starts with kw as a whole word, not as
// the prefix of a longer identifier.
func hasKeyword(decl, kw string) bool {
	if !strings.HasPrefix(decl, kw) {
		return false
	}
	rest := decl[len(kw):]
	return rest != "" && !parser.IsIdentifier(kw+rest[:1])
}

// splitTypeList splits a comma-separated parameter/result list at the top
// level, dropping blanks so `()` yields an empty list.
func splitTypeList(list string) []string {
	var out []string
	for _, part := range parser.SplitTop(list, ',') {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Methods returns all method names in sorted order.
func (s *Service) Methods() []string {
	names := make([]string, 0, len(s.methods))
	for name := range s.methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Method looks up one method by name.
func (s *Service) Method(name string) (Method, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Aliases returns all declared alias names in sorted order.
func (s *Service) Aliases() []string {
	names := make([]string, 0, len(s.aliases))
	for name := range s.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
