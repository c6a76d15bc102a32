// Package executor resolves a selection tree against a typed schema through
// a Runtime and assembles an ordered response with located errors.
//
// # Overview
//
// Execution is a depth-first recursive walk. For each object value and each
// requested field, in request order, the executor:
//  1. looks up the field on the object's declared type,
//  2. coerces the field arguments against the argument definitions,
//  3. calls Runtime.ResolveSync with the parent value as source,
//  4. completes the resolved value by its declared type: lists element by
//     element, scalars and enums through Runtime.SerializeLeafValue, objects
//     by recursing into the field's sub-selection.
//
// The recursion is bounded by the selection tree, which is finite, so cyclic
// relations (Author.books.author.books...) need no cycle detection.
//
// # Inputs
//
// Callers hand the executor a pre-parsed SelectionSet, either built directly
// (Execute, ExecuteOperation) or lowered from a parsed query document
// (ExecuteRequest). Lowering inlines fragments with their type conditions,
// applies @skip and @include, and substitutes coerced variables.
//
// # Errors and Partial Success
//
// Every error is a GraphQLError with a response path and a code in
// Extensions["code"]:
//
//   - UNKNOWN_ROOT_FIELD: a root field does not exist on the root type. All
//     root fields are checked before any resolver runs and the result carries
//     no data.
//   - UNKNOWN_FIELD: the slot is null and its sub-tree is not resolved.
//   - ARGUMENT_ERROR: an argument is unknown, missing or mistyped; the
//     resolver is not called.
//   - NON_NULL_VIOLATION: a non-null field (or list element) completed to
//     null. The slot stays null and siblings and parents are unaffected.
//   - RESOLVER_ERROR: the Runtime returned an error, or the context was
//     canceled before the field ran.
//   - SELECTION_REQUIRED: an object field was requested without
//     sub-fields.
//   - LEAF_SERIALIZATION: SerializeLeafValue failed.
//
// Errors are collected in the order they occur; the response always contains
// everything that could be resolved.
//
// # Output
//
// Object values are jsonmap.Ordered, so encoding/json writes keys in the
// order they were requested. Duplicate response names are merged into one
// entry at the first position.
package executor
