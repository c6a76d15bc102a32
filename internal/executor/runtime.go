package executor

import (
	"context"
)

// Runtime is the host integration surface the Executor resolves fields
// through.
//
// Contract
//   - ResolveSync is called once per field instance, depth-first, in the order
//     fields were requested. Root fields get a nil source.
//   - args holds already-coerced Go values (int, float64, string, bool) keyed by
//     argument name, with defaults applied.
//   - (nil, nil) means "absent". The Executor turns that into null, or into a
//     non-null violation when the field is declared non-null.
//   - A returned error becomes a field error at the field's path; sibling
//     fields still resolve.
//   - Implementations must not mutate source or args. The Executor may call
//     one Runtime from several goroutines for different operations.
type Runtime interface {
	// ResolveSync resolves objectType.field against source.
	ResolveSync(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error)

	// SerializeLeafValue converts a scalar or enum value into a JSON-safe Go
	// value (int, float64, string, bool). Enums serialize to their name.
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}
