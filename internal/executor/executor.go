package executor

import (
	"context"
	"reflect"

	"github.com/dolmen-go/jsonmap"
	"go.uber.org/zap"

	language "github.com/hanpama/bookgraph/internal/language"
	schema "github.com/hanpama/bookgraph/internal/schema"
)

// executionState holds the state of one operation
type executionState struct {
	runtime  Runtime
	schema   *schema.Schema
	context  context.Context
	errors   []GraphQLError
	canceled bool
}

type Executor struct {
	runtime Runtime
	schema  *schema.Schema
	log     *zap.Logger
}

type Option func(*Executor)

// WithLogger sets the logger used for operation-level diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(e *Executor) { e.log = log }
}

func NewExecutor(runtime Runtime, schema *schema.Schema, opts ...Option) *Executor {
	e := &Executor{runtime: runtime, schema: schema, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute resolves a single root field of op with the given arguments and
// sub-selection. The response data holds the root field under its name.
func (e *Executor) Execute(ctx context.Context, op language.Operation, rootField string, args map[string]any, sel SelectionSet) *ExecutionResult {
	return e.ExecuteOperation(ctx, op, SelectionSet{NewSelection(rootField, sel...).WithArgs(args)})
}

// ExecuteOperation resolves every root field in set against the root type of
// op, in request order. An unknown root field fails the whole operation
// before any resolver runs.
func (e *Executor) ExecuteOperation(ctx context.Context, op language.Operation, set SelectionSet) *ExecutionResult {
	rootType := e.schema.RootType(op)
	if rootType == nil {
		return errorResult(newError(CodeUnknownRootField, nil, "schema does not support %s operations", op))
	}

	groupedFields := collectFields(rootType, set)
	for _, collected := range groupedFields {
		name := collected.Fields[0].Name
		if name == "__typename" {
			continue
		}
		if rootType.Field(name) == nil {
			e.log.Debug("unknown root field",
				zap.String("operation", string(op)),
				zap.String("field", name),
			)
			return errorResult(newError(CodeUnknownRootField, Path{collected.ResponseName},
				"Cannot query field %q on type %q", name, rootType.Name))
		}
	}

	state := &executionState{
		runtime: e.runtime,
		schema:  e.schema,
		context: ctx,
	}
	data := executeSelectionSet(state, rootType, groupedFields, nil, Path{})
	if len(state.errors) > 0 {
		e.log.Debug("operation completed with errors",
			zap.String("operation", string(op)),
			zap.Int("errors", len(state.errors)),
		)
	}
	return assemble(data, state.errors)
}

// ExecuteRequest selects the operation from a parsed document, coerces the
// variables and executes it. Request-level failures yield no data.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
) *ExecutionResult {
	operation := getOperation(document, operationName)
	if operation == nil {
		if operationName == "" {
			return errorResult(newError(CodeRequestError, nil, "operation name is required when the document has %d operations", len(document.Operations)))
		}
		return errorResult(newError(CodeRequestError, nil, "operation %q not found", operationName))
	}

	coercedVariableValues, err := coerceVariableValues(e.schema, operation, variableValues)
	if err != nil {
		return errorResult(newError(CodeRequestError, nil, "%s", err.Error()))
	}

	set, err := newLowering(document, coercedVariableValues).lower(operation.SelectionSet)
	if err != nil {
		return errorResult(newError(CodeRequestError, nil, "%s", err.Error()))
	}
	return e.ExecuteOperation(ctx, operation.Operation, set)
}

// executeSelectionSet resolves each collected field of objectValue in request
// order and writes it under its response name.
func executeSelectionSet(state *executionState, objectType *schema.Type, groupedFields []collectedField, objectValue any, path Path) jsonmap.Ordered {
	resultMap := jsonmap.Ordered{
		Data:  make(map[string]any, len(groupedFields)),
		Order: make([]string, 0, len(groupedFields)),
	}
	for _, collected := range groupedFields {
		responseName := collected.ResponseName
		fieldPath := appendPath(path, responseName)
		value := executeField(state, objectType, objectValue, collected.Fields, fieldPath)
		resultMap.Order = append(resultMap.Order, responseName)
		resultMap.Data[responseName] = value
	}
	return resultMap
}

func executeField(state *executionState, objectType *schema.Type, objectValue any, fields []*Selection, path Path) any {
	field := fields[0]
	fieldName := field.Name

	if fieldName == "__typename" {
		return objectType.Name
	}

	fieldDef := objectType.Field(fieldName)
	if fieldDef == nil {
		state.addError(newError(CodeUnknownField, path, "Cannot query field %q on type %q", fieldName, objectType.Name))
		return nil
	}

	argumentValues, err := coerceArgumentValues(fieldDef, field.Arguments)
	if err != nil {
		state.addError(newError(CodeArgumentError, path, "%s", err.Error()))
		return nil
	}

	if err := state.context.Err(); err != nil {
		if !state.canceled {
			state.canceled = true
			state.addError(newError(CodeResolverError, path, "%s", err.Error()))
		}
		return nil
	}

	resolved, err := state.runtime.ResolveSync(state.context, objectType.Name, fieldName, objectValue, argumentValues)
	if err != nil {
		state.addError(newError(CodeResolverError, path, "%s", err.Error()))
		return nil
	}
	return completeValue(state, fieldDef.Type, fields, resolved, path)
}

// completeValue shapes a resolved value by its declared type. A null for a
// non-null type is recorded at path and the slot stays null; the parent is
// not nullified.
func completeValue(state *executionState, fieldType *schema.TypeRef, fields []*Selection, result any, path Path) any {
	if schema.IsNonNull(fieldType) {
		if isNullish(result) {
			state.addError(newError(CodeNonNullViolation, path, "Cannot return null for non-nullable field %s", path))
			return nil
		}
		return completeValue(state, schema.Unwrap(fieldType), fields, result, path)
	}

	if isNullish(result) {
		return nil
	}

	if schema.IsList(fieldType) {
		return completeListValue(state, fieldType, fields, result, path)
	}

	namedType := schema.GetNamedType(fieldType)
	typeObj := state.schema.Types[namedType]
	if typeObj == nil {
		state.addError(newError(CodeResolverError, path, "Unknown type: %s", namedType))
		return nil
	}

	switch typeObj.Kind {
	case schema.TypeKindScalar, schema.TypeKindEnum:
		serialized, err := state.runtime.SerializeLeafValue(state.context, namedType, result)
		if err != nil {
			state.addError(newError(CodeLeafSerialization, path, "%s", err.Error()))
			return nil
		}
		return serialized
	case schema.TypeKindObject:
		return completeObjectValue(state, typeObj, fields, result, path)
	default:
		state.addError(newError(CodeResolverError, path, "Cannot complete value of unexpected type: %s", typeObj.Kind))
		return nil
	}
}

// completeListValue completes each element independently with index-aware
// paths. A zero-element list is a valid value.
func completeListValue(state *executionState, listType *schema.TypeRef, fields []*Selection, result any, path Path) any {
	var items []any
	if direct, ok := result.([]any); ok {
		items = direct
	} else {
		rv := reflect.ValueOf(result)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			state.addError(newError(CodeResolverError, path, "Expected list value, got %T", result))
			return nil
		}
		items = make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items[i] = rv.Index(i).Interface()
		}
	}

	inner := schema.Unwrap(listType)
	completed := make([]any, len(items))
	for i, item := range items {
		completed[i] = completeValue(state, inner, fields, item, appendPath(path, i))
	}
	return completed
}

func completeObjectValue(state *executionState, objectType *schema.Type, fields []*Selection, result any, path Path) any {
	sub := mergeSelectionSets(fields)
	if len(sub) == 0 {
		state.addError(newError(CodeSelectionRequired, path, "Field %q of type %q must have a selection of subfields", fields[0].Name, objectType.Name))
		return nil
	}
	return executeSelectionSet(state, objectType, collectFields(objectType, sub), result, path)
}

func (state *executionState) addError(err GraphQLError) {
	state.errors = append(state.errors, err)
}

// isNullish returns true for nil interfaces and typed nils (map, slice, ptr, interface)
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
