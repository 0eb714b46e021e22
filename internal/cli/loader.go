package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/didlang/didargs/internal/resolver"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeParse         = "E010" // IDL parse failure
	ErrCodeUnknownMethod = "E011" // Method not declared in the service
	ErrCodeResolve       = "E012" // Alias resolution failure
	ErrCodeCache         = "E013" // Resolution cache failure
)

// LoadError represents an error that occurred while loading inputs.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadedService is an IDL source together with its parsed service.
type LoadedService struct {
	Path    string
	Source  string
	Service *resolver.Service
}

// LoadService reads an IDL file and parses its declarations.
func LoadService(path string, opts ...resolver.Option) (*LoadedService, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("IDL file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing IDL file: %v", err)}
	}
	if info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}
	if ext := filepath.Ext(path); ext != ".did" {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("expected a .did file, got %q", ext)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	svc, err := resolver.Parse(string(data), opts...)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: err.Error()}
	}

	return &LoadedService{Path: path, Source: string(data), Service: svc}, nil
}

// LoadJSONArg interprets a JSON argument: "@path" reads the file at path,
// anything else is taken as inline JSON text.
func LoadJSONArg(arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		return arg, nil
	}
	path := strings.TrimPrefix(arg, "@")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading JSON file %s: %v", path, err)}
	}
	return string(data), nil
}
