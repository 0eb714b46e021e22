package resolver

import (
	"github.com/didlang/didargs/internal/ir"
	"github.com/didlang/didargs/internal/parser"
)

// DefaultMaxDepth bounds alias expansion. The counter increments once per
// alias substitution, so legitimate schemas stay far below it while cyclic
// chains hit it quickly.
const DefaultMaxDepth = 32

// ResolveArgTypes expands every alias in the method's parameter types and
// returns them as normalized textual expressions. The output contains no
// alias references; resolving it again yields the identical text.
func (s *Service) ResolveArgTypes(method string) ([]string, error) {
	m, ok := s.methods[method]
	if !ok {
		return nil, &UnknownMethodError{Method: method}
	}
	return s.resolveTypes(method, m.Params)
}

// ResolveResultTypes is ResolveArgTypes for the method's result types.
func (s *Service) ResolveResultTypes(method string) ([]string, error) {
	m, ok := s.methods[method]
	if !ok {
		return nil, &UnknownMethodError{Method: method}
	}
	return s.resolveTypes(method, m.Results)
}

func (s *Service) resolveTypes(method string, raw []string) ([]string, error) {
	resolved := make([]string, len(raw))
	for i, text := range raw {
		expr, err := parser.ParseType(text)
		if err != nil {
			return nil, err
		}
		expanded, err := s.expand(expr, method, i, 0)
		if err != nil {
			return nil, err
		}
		resolved[i] = expanded.String()
	}
	return resolved, nil
}

// expand substitutes alias references recursively, descending into record
// fields, variant cases, and vec/opt inners. depth counts alias
// substitutions along the current path; each hop through the alias table
// increments it, so any cycle exceeds maxDepth and fails instead of
// looping.
func (s *Service) expand(t ir.TypeExpr, method string, param, depth int) (ir.TypeExpr, error) {
	switch v := t.(type) {
	case ir.AliasRef:
		if depth >= s.maxDepth {
			return nil, &RecursionLimitError{Method: method, Param: param, Limit: s.maxDepth}
		}
		defText, ok := s.aliases[string(v)]
		if !ok {
			return nil, &UnresolvedAliasError{Alias: string(v), Method: method, Param: param}
		}
		def, err := parser.ParseType(defText)
		if err != nil {
			return nil, err
		}
		return s.expand(def, method, param, depth+1)

	case ir.Vector:
		elem, err := s.expand(v.Elem, method, param, depth)
		if err != nil {
			return nil, err
		}
		return ir.Vector{Elem: elem}, nil

	case ir.Optional:
		inner, err := s.expand(v.Inner, method, param, depth)
		if err != nil {
			return nil, err
		}
		return ir.Optional{Inner: inner}, nil

	case ir.Record:
		fields := make([]ir.Field, len(v.Fields))
		for i, f := range v.Fields {
			ft, err := s.expand(f.Type, method, param, depth)
			if err != nil {
				return nil, err
			}
			fields[i] = ir.Field{Name: f.Name, Type: ft}
		}
		return ir.Record{Fields: fields}, nil

	case ir.Variant:
		cases := make([]ir.Case, len(v.Cases))
		for i, c := range v.Cases {
			if c.Type == nil {
				cases[i] = ir.Case{Name: c.Name}
				continue
			}
			ct, err := s.expand(c.Type, method, param, depth)
			if err != nil {
				return nil, err
			}
			cases[i] = ir.Case{Name: c.Name, Type: ct}
		}
		return ir.Variant{Cases: cases}, nil

	default:
		return t, nil
	}
}
