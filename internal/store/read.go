package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// GetResolution looks up a cached resolution for the given source hash and
// method. Returns found=false on a cache miss.
func (s *Store) GetResolution(ctx context.Context, sourceHash, method string) (Resolution, bool, error) {
	var (
		r           Resolution
		argTypes    string
		resultTypes string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT source_hash, method, arg_types, result_types, resolution_hash
		FROM resolutions
		WHERE source_hash = ? AND method = ?`,
		sourceHash, method,
	).Scan(&r.SourceHash, &r.Method, &argTypes, &resultTypes, &r.ResolutionHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Resolution{}, false, nil
	}
	if err != nil {
		return Resolution{}, false, fmt.Errorf("failed to query resolution: %w", err)
	}

	if err := json.Unmarshal([]byte(argTypes), &r.ArgTypes); err != nil {
		return Resolution{}, false, fmt.Errorf("corrupt arg types for %s/%s: %w", sourceHash, method, err)
	}
	if err := json.Unmarshal([]byte(resultTypes), &r.ResultTypes); err != nil {
		return Resolution{}, false, fmt.Errorf("corrupt result types for %s/%s: %w", sourceHash, method, err)
	}
	return r, true, nil
}

// ListMethods returns the method names cached for a source hash, sorted.
func (s *Store) ListMethods(ctx context.Context, sourceHash string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT method FROM resolutions
		WHERE source_hash = ?
		ORDER BY method`,
		sourceHash)
	if err != nil {
		return nil, fmt.Errorf("failed to query methods: %w", err)
	}
	defer rows.Close()

	var methods []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan method: %w", err)
		}
		methods = append(methods, m)
	}
	return methods, rows.Err()
}
