package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// MethodInfo is one method's signature as declared in the service block.
type MethodInfo struct {
	Name        string   `json:"name"`
	Params      []string `json:"params"`
	Results     []string `json:"results"`
	Annotations []string `json:"annotations,omitempty"`
}

// MethodsResult holds the methods listing for JSON output.
type MethodsResult struct {
	Service string       `json:"service"`
	Methods []MethodInfo `json:"methods"`
}

// NewMethodsCommand creates the methods command.
func NewMethodsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "methods <file.did>",
		Short: "List service methods with their declared signatures",
		Long: `List the methods declared in a service block, with parameter and
result types as written (aliases are not expanded; use resolve for that).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMethods(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runMethods(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loaded, err := LoadService(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Parsed %s: %d method(s)", path, len(loaded.Service.Methods()))

	result := MethodsResult{Service: path}
	for _, name := range loaded.Service.Methods() {
		m, _ := loaded.Service.Method(name)
		result.Methods = append(result.Methods, MethodInfo{
			Name:        m.Name,
			Params:      m.Params,
			Results:     m.Results,
			Annotations: m.Annotations,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	for _, m := range result.Methods {
		line := fmt.Sprintf("%s : (%s) -> (%s)", m.Name,
			strings.Join(m.Params, ", "), strings.Join(m.Results, ", "))
		if len(m.Annotations) > 0 {
			line += " " + strings.Join(m.Annotations, " ")
		}
		fmt.Fprintln(formatter.Writer, line)
	}
	return nil
}

// outputLoadError prints a load error and converts it to a command error.
func outputLoadError(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()
	if le, ok := err.(*LoadError); ok {
		code, message = le.Code, le.Message
	}
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, "load failed", err)
}
