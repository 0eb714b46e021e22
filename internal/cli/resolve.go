package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/didlang/didargs/internal/ir"
	"github.com/didlang/didargs/internal/resolver"
	"github.com/didlang/didargs/internal/store"
)

// ResolveResult holds a resolved method signature for JSON output.
type ResolveResult struct {
	Method         string   `json:"method"`
	ArgTypes       []string `json:"arg_types"`
	ResultTypes    []string `json:"result_types"`
	SourceHash     string   `json:"source_hash"`
	ResolutionHash string   `json:"resolution_hash"`
	Cached         bool     `json:"cached"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	var cachePath string

	cmd := &cobra.Command{
		Use:   "resolve <file.did> <method>",
		Short: "Resolve a method's argument and result types",
		Long: `Resolve a method signature by expanding every type alias until only
primitives and structural types remain. With --cache, results are read
from and written to a SQLite cache keyed by source content hash.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args[0], args[1], cachePath, cmd)
		},
	}

	cmd.Flags().StringVar(&cachePath, "cache", "", "path to a SQLite resolution cache")

	return cmd
}

func runResolve(opts *RootOptions, path, method, cachePath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loaded, err := LoadService(path)
	if err != nil {
		return outputLoadError(formatter, err)
	}

	sourceHash := ir.SourceHash(loaded.Source)

	var cache *store.Store
	if cachePath != "" {
		cache, err = store.Open(cachePath)
		if err != nil {
			_ = formatter.Error(ErrCodeCache, err.Error(), nil)
			return WrapExitError(ExitCommandError, "cache open failed", err)
		}
		defer cache.Close()

		cached, found, err := cache.GetResolution(cmd.Context(), sourceHash, method)
		if err != nil {
			_ = formatter.Error(ErrCodeCache, err.Error(), nil)
			return WrapExitError(ExitCommandError, "cache read failed", err)
		}
		if found {
			formatter.VerboseLog("Cache hit for %s (%s)", method, sourceHash[:12])
			return outputResolve(formatter, ResolveResult{
				Method:         method,
				ArgTypes:       cached.ArgTypes,
				ResultTypes:    cached.ResultTypes,
				SourceHash:     sourceHash,
				ResolutionHash: cached.ResolutionHash,
				Cached:         true,
			})
		}
		formatter.VerboseLog("Cache miss for %s", method)
	}

	argTypes, err := loaded.Service.ResolveArgTypes(method)
	if err != nil {
		return outputResolveError(formatter, method, err)
	}
	resultTypes, err := loaded.Service.ResolveResultTypes(method)
	if err != nil {
		return outputResolveError(formatter, method, err)
	}

	result := ResolveResult{
		Method:         method,
		ArgTypes:       argTypes,
		ResultTypes:    resultTypes,
		SourceHash:     sourceHash,
		ResolutionHash: ir.ResolutionHash(method, argTypes),
	}

	if cache != nil {
		err := cache.PutResolution(cmd.Context(), store.Resolution{
			SourceHash:     sourceHash,
			Method:         method,
			ArgTypes:       argTypes,
			ResultTypes:    resultTypes,
			ResolutionHash: result.ResolutionHash,
		})
		if err != nil {
			_ = formatter.Error(ErrCodeCache, err.Error(), nil)
			return WrapExitError(ExitCommandError, "cache write failed", err)
		}
	}

	return outputResolve(formatter, result)
}

func outputResolve(formatter *OutputFormatter, result ResolveResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.ArgTypes) == 0 {
		fmt.Fprintln(formatter.Writer, "args: ()")
	}
	for i, t := range result.ArgTypes {
		fmt.Fprintf(formatter.Writer, "arg[%d]: %s\n", i, t)
	}
	for i, t := range result.ResultTypes {
		fmt.Fprintf(formatter.Writer, "result[%d]: %s\n", i, t)
	}
	return nil
}

// outputResolveError classifies a resolution failure. Unknown methods and
// unresolvable aliases are input errors; both abort the command.
func outputResolveError(formatter *OutputFormatter, method string, err error) error {
	code := ErrCodeResolve
	var unknown *resolver.UnknownMethodError
	if errors.As(err, &unknown) {
		code = ErrCodeUnknownMethod
	}
	_ = formatter.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("resolving %s", method), err)
}
