package resolver

import "fmt"

// SourceError reports a malformed top-level declaration in an IDL source.
type SourceError struct {
	Decl    string
	Message string
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	decl := e.Decl
	if len(decl) > 80 {
		decl = decl[:77] + "..."
	}
	return fmt.Sprintf("invalid declaration %q: %s", decl, e.Message)
}

// UnknownMethodError reports a method name absent from the service block.
type UnknownMethodError struct {
	Method string
}

// Error implements the error interface.
func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("method %q not found in service", e.Method)
}

// UnresolvedAliasError reports an alias reference with no matching
// `type NAME = ...` declaration. Param is the zero-based parameter index
// within the method where the reference occurred.
type UnresolvedAliasError struct {
	Alias  string
	Method string
	Param  int
}

// Error implements the error interface.
func (e *UnresolvedAliasError) Error() string {
	return fmt.Sprintf("unresolved alias %q in method %q parameter %d", e.Alias, e.Method, e.Param)
}

// RecursionLimitError reports an alias chain that exceeded the expansion
// depth limit, which almost always means the chain is cyclic.
type RecursionLimitError struct {
	Method string
	Param  int
	Limit  int
}

// Error implements the error interface.
func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("alias expansion exceeded depth %d in method %q parameter %d (cyclic alias chain?)",
		e.Limit, e.Method, e.Param)
}
