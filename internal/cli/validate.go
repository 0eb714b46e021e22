package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/didlang/didargs/internal/validator"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                   `json:"valid"`
	Errors []validator.FieldError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file.did> <method> [json|@file]",
		Short: "Validate JSON arguments against a method's resolved types",
		Long: `Validate a JSON argument document against the method's resolved
argument types. Every field error is reported, not just the first.
The JSON may be given inline or as @path to read a file; methods that
take no arguments need no JSON at all.`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonArg := ""
			if len(args) == 3 {
				jsonArg = args[2]
			}
			return runValidate(rootOpts, args[0], args[1], jsonArg, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path, method, jsonArg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	argTypes, jsonText, err := resolveAndLoad(formatter, path, method, jsonArg)
	if err != nil {
		return err
	}

	result := validator.Check(argTypes, jsonText)
	if result.Valid {
		return outputValidateSuccess(formatter)
	}
	return outputValidationErrors(formatter, result.Errors)
}

// resolveAndLoad runs the shared front half of validate and encode:
// parse the IDL, resolve the method's argument types, read the JSON.
func resolveAndLoad(formatter *OutputFormatter, path, method, jsonArg string) ([]string, string, error) {
	loaded, err := LoadService(path)
	if err != nil {
		return nil, "", outputLoadError(formatter, err)
	}

	argTypes, err := loaded.Service.ResolveArgTypes(method)
	if err != nil {
		return nil, "", outputResolveError(formatter, method, err)
	}
	formatter.VerboseLog("Resolved %s: %d argument(s)", method, len(argTypes))

	jsonText, err := LoadJSONArg(jsonArg)
	if err != nil {
		return nil, "", outputLoadError(formatter, err)
	}

	return argTypes, jsonText, nil
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ Arguments valid")
	return nil
}

// outputValidationErrors outputs accumulated field errors, one per line.
func outputValidationErrors(formatter *OutputFormatter, errs []validator.FieldError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Invalid input = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s\n", err.Error())
	}

	// Invalid input = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
