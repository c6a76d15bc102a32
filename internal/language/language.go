// Package language re-exports the gqlparser AST types used by the executor,
// the schema builder and the HTTP transport, so the rest of the module does
// not depend on gqlparser directly.
package language

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// Error is a syntax or request-level error carrying source locations.
type Error = gqlerror.Error

// ParseQuery parses an executable document. Only syntax is checked here;
// field and argument problems surface as field errors during execution.
func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseSchema loads SDL together with the GraphQL prelude and validates it.
// name labels the source in error locations.
func ParseSchema(name, sdl string) (*SchemaDocument, error) {
	doc, err := gqlparser.LoadSchema(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		return nil, err
	}
	return doc, nil
}
