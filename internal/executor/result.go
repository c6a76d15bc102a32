package executor

import (
	"fmt"
	"strconv"
	"strings"
)

// Error codes carried in GraphQLError.Extensions["code"].
const (
	CodeUnknownField      = "UNKNOWN_FIELD"
	CodeUnknownRootField  = "UNKNOWN_ROOT_FIELD"
	CodeNonNullViolation  = "NON_NULL_VIOLATION"
	CodeArgumentError     = "ARGUMENT_ERROR"
	CodeResolverError     = "RESOLVER_ERROR"
	CodeSelectionRequired = "SELECTION_REQUIRED"
	CodeLeafSerialization = "LEAF_SERIALIZATION"
	CodeRequestError      = "REQUEST_ERROR"
)

// Path locates a value in the response: field response names (string) and
// list indices (int) from the root.
type Path []PathElement

type PathElement any

func (p Path) String() string {
	var b strings.Builder
	for i, elem := range p {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(v)
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(v))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func appendPath(path Path, elem PathElement) Path {
	newPath := make(Path, len(path)+1)
	copy(newPath, path)
	newPath[len(path)] = elem
	return newPath
}

// GraphQLError represents an error that occurred during execution
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       Path           `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (at %s)", e.Message, e.Path)
}

// Code returns the error code, or "" when none was set.
func (e GraphQLError) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

func newError(code string, path Path, format string, args ...any) GraphQLError {
	return GraphQLError{
		Message:    fmt.Sprintf(format, args...),
		Path:       path,
		Extensions: map[string]any{"code": code},
	}
}

// ExecutionResult represents the result of executing a GraphQL query.
// Object values inside Data are jsonmap.Ordered so that JSON output keeps the
// requested field order. Errors is nil when execution produced none.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// assemble combines root data with the field errors gathered while resolving.
// A nil data (whole-operation failure) is rendered as null.
func assemble(data any, errs []GraphQLError) *ExecutionResult {
	res := &ExecutionResult{Data: data}
	if len(errs) > 0 {
		res.Errors = errs
	}
	return res
}

func errorResult(err GraphQLError) *ExecutionResult {
	return assemble(nil, []GraphQLError{err})
}
