// Package harness runs end-to-end pipeline scenarios defined in YAML:
// parse an IDL source, resolve one method, validate a JSON argument
// document, and encode it as a Candid textual tuple. Golden files pin the
// full pipeline output for regression testing.
package harness
