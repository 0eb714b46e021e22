package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/didlang/didargs/internal/ir"
)

// Resolution is one cached resolution result.
type Resolution struct {
	SourceHash     string
	Method         string
	ArgTypes       []string
	ResultTypes    []string
	ResolutionHash string
}

// PutResolution inserts a resolution result. Inserting the same
// (source hash, method) pair twice is a no-op; resolved types for a
// given source text never change, so the first write wins.
func (s *Store) PutResolution(ctx context.Context, r Resolution) error {
	if r.SourceHash == "" || r.Method == "" {
		return fmt.Errorf("source hash and method are required")
	}

	argTypes, err := json.Marshal(r.ArgTypes)
	if err != nil {
		return fmt.Errorf("marshal arg types: %w", err)
	}
	resultTypes, err := json.Marshal(r.ResultTypes)
	if err != nil {
		return fmt.Errorf("marshal result types: %w", err)
	}

	resolutionHash := r.ResolutionHash
	if resolutionHash == "" {
		resolutionHash = ir.ResolutionHash(r.Method, r.ArgTypes)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO resolutions (id, source_hash, method, arg_types, result_types, resolution_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source_hash, method) DO NOTHING`,
		uuid.NewString(), r.SourceHash, r.Method, string(argTypes), string(resultTypes),
		resolutionHash, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to insert resolution: %w", err)
	}
	return nil
}
