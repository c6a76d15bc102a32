// Package localrt is the in-process executor.Runtime: fields with a bound
// resolver call it, every other field is projected from the parent record.
package localrt

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	executor "github.com/hanpama/bookgraph/internal/executor"
	schema "github.com/hanpama/bookgraph/internal/schema"
)

// Projector is implemented by records that expose their scalar attributes by
// field name.
type Projector interface {
	Project(field string) (any, bool)
}

// Runtime implements executor.Runtime over schema.Field.Resolve.
// Invariants and boundaries:
//   - Schema trust: the executor only asks for fields that exist on the
//     schema it was built with. A missing field is reported as an error.
//   - Source shape: sources without a resolver must be nil, a Projector or a
//     map[string]any. Anything else is an error at that field.
//   - No I/O of its own; resolvers decide what the store is asked.
type Runtime struct {
	schema *schema.Schema
	log    *zap.Logger
}

var _ executor.Runtime = (*Runtime)(nil)

type Option func(*Runtime)

func WithLogger(l *zap.Logger) Option { return func(r *Runtime) { r.log = l } }

func NewRuntime(sch *schema.Schema, opts ...Option) *Runtime {
	r := &Runtime{schema: sch, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ResolveSync calls the field's resolver, or projects the field from source
// when none is bound.
func (r *Runtime) ResolveSync(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	fd := r.schema.Field(objectType, field)
	if fd == nil {
		return nil, fmt.Errorf("localrt: no field %s.%s", objectType, field)
	}
	if fd.Resolve != nil {
		return fd.Resolve(ctx, source, args)
	}
	return project(objectType, field, source)
}

func project(objectType, field string, source any) (any, error) {
	switch src := source.(type) {
	case nil:
		return nil, nil
	case Projector:
		v, ok := src.Project(field)
		if !ok {
			return nil, fmt.Errorf("localrt: %T has no attribute %q for %s", source, field, objectType)
		}
		return v, nil
	case map[string]any:
		return src[field], nil
	default:
		return nil, fmt.Errorf("localrt: cannot project %s.%s from %T", objectType, field, source)
	}
}

// SerializeLeafValue converts values to the JSON-safe representation of the
// builtin scalars. Enum values must name a declared member; custom scalars
// pass through unchanged.
func (r *Runtime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	switch scalarOrEnumTypeName {
	case "Int":
		return serializeInt(value)
	case "Float":
		return serializeFloat(value)
	case "String":
		return serializeString(value)
	case "Boolean":
		if b, ok := value.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("Boolean cannot represent %v (%T)", value, value)
	case "ID":
		switch v := value.(type) {
		case string:
			return v, nil
		case int:
			return fmt.Sprint(v), nil
		case int64:
			return fmt.Sprint(v), nil
		}
		return nil, fmt.Errorf("ID cannot represent %v (%T)", value, value)
	}

	t := r.schema.Types[scalarOrEnumTypeName]
	if t != nil && t.Kind == schema.TypeKindEnum {
		name := fmt.Sprint(value)
		for _, ev := range t.EnumValues {
			if ev.Name == name {
				return name, nil
			}
		}
		r.log.Warn("enum value out of range",
			zap.String("enum", t.Name),
			zap.String("value", name))
		return nil, fmt.Errorf("enum %s has no value %q", t.Name, name)
	}
	return value, nil
}

func serializeInt(value any) (any, error) {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("Int cannot represent non-integer value %v", v)
		}
		n = int64(v)
	default:
		return nil, fmt.Errorf("Int cannot represent %v (%T)", value, value)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value %d", n)
	}
	return int(n), nil
}

func serializeFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return nil, fmt.Errorf("Float cannot represent %v (%T)", value, value)
}

func serializeString(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	}
	return nil, fmt.Errorf("String cannot represent %v (%T)", value, value)
}
