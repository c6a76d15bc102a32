package executor

import (
	"fmt"

	language "github.com/hanpama/bookgraph/internal/language"
)

// Selection is one requested field of a pre-parsed selection tree. Arguments
// hold plain Go values; they are coerced against the field's argument
// definitions at execution time.
type Selection struct {
	Name      string
	Alias     string
	Arguments map[string]any
	// TypeCondition is the object type the field was requested on through a
	// fragment; empty means it applies to any type.
	TypeCondition string
	SelectionSet  SelectionSet
}

type SelectionSet []*Selection

// NewSelection returns a selection of field name with the given sub-fields.
func NewSelection(name string, children ...*Selection) *Selection {
	return &Selection{Name: name, SelectionSet: children}
}

// WithArgs sets the field arguments and returns s.
func (s *Selection) WithArgs(args map[string]any) *Selection {
	s.Arguments = args
	return s
}

// As sets the response alias and returns s.
func (s *Selection) As(alias string) *Selection {
	s.Alias = alias
	return s
}

// ResponseName is the key the field's value is written under.
func (s *Selection) ResponseName() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Name
}

// lowering turns a parsed document's selection sets into a SelectionSet:
// @skip/@include are applied, variables substituted and fragments inlined
// with their type condition attached to each field.
//
// expanding holds the fragments on the current expansion path, across nested
// fields. A spread of one of them is a cycle and fails the request.
type lowering struct {
	document       *language.QueryDocument
	variableValues map[string]any
	expanding      map[string]bool
	err            error
}

func newLowering(document *language.QueryDocument, variableValues map[string]any) *lowering {
	return &lowering{document: document, variableValues: variableValues, expanding: map[string]bool{}}
}

// lower converts an operation's selection set, or reports a fragment cycle.
func (l *lowering) lower(set language.SelectionSet) (SelectionSet, error) {
	out := l.selectionSet(set, "", map[string]bool{})
	if l.err != nil {
		return nil, l.err
	}
	return out, nil
}

func (l *lowering) selectionSet(set language.SelectionSet, typeCondition string, visited map[string]bool) SelectionSet {
	var out SelectionSet
	for _, selection := range set {
		switch sel := selection.(type) {
		case *language.Field:
			if !l.shouldInclude(sel.Directives) {
				continue
			}
			out = append(out, &Selection{
				Name:          sel.Name,
				Alias:         sel.Alias,
				Arguments:     l.arguments(sel.Arguments),
				TypeCondition: typeCondition,
				SelectionSet:  l.selectionSet(sel.SelectionSet, "", map[string]bool{}),
			})

		case *language.InlineFragment:
			if !l.shouldInclude(sel.Directives) {
				continue
			}
			cond, ok := mergeTypeCondition(typeCondition, sel.TypeCondition)
			if !ok {
				continue
			}
			out = append(out, l.selectionSet(sel.SelectionSet, cond, visited)...)

		case *language.FragmentSpread:
			if !l.shouldInclude(sel.Directives) {
				continue
			}
			if l.expanding[sel.Name] {
				if l.err == nil {
					l.err = fmt.Errorf("fragment %q spreads itself", sel.Name)
				}
				continue
			}
			if visited[sel.Name] {
				continue
			}
			visited[sel.Name] = true
			def := l.document.Fragments.ForName(sel.Name)
			if def == nil || !l.shouldInclude(def.Directives) {
				continue
			}
			cond, ok := mergeTypeCondition(typeCondition, def.TypeCondition)
			if !ok {
				continue
			}
			l.expanding[sel.Name] = true
			out = append(out, l.selectionSet(def.SelectionSet, cond, visited)...)
			delete(l.expanding, sel.Name)
		}
	}
	return out
}

// mergeTypeCondition narrows an outer condition by an inner one. Object types
// are concrete, so two different names can never both match.
func mergeTypeCondition(outer, inner string) (string, bool) {
	switch {
	case inner == "":
		return outer, true
	case outer == "" || outer == inner:
		return inner, true
	default:
		return "", false
	}
}

func (l *lowering) arguments(args language.ArgumentList) map[string]any {
	if len(args) == 0 {
		return nil
	}
	out := make(map[string]any, len(args))
	for _, arg := range args {
		if arg.Value != nil && arg.Value.Kind == language.Variable {
			if _, ok := l.variableValues[arg.Value.Raw]; !ok {
				// An unset variable leaves the argument unset so its
				// default applies.
				continue
			}
		}
		out[arg.Name] = valueFromASTWithVars(arg.Value, l.variableValues)
	}
	return out
}

// shouldInclude checks @skip and @include
func (l *lowering) shouldInclude(directives language.DirectiveList) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if v, err := l.directiveArgument(skip, "if"); err == nil {
			if b, ok := v.(bool); ok && b {
				return false
			}
		}
	}
	if include := directives.ForName("include"); include != nil {
		if v, err := l.directiveArgument(include, "if"); err == nil {
			if b, ok := v.(bool); ok && !b {
				return false
			}
		}
	}
	return true
}

func (l *lowering) directiveArgument(directive *language.Directive, argName string) (any, error) {
	for _, arg := range directive.Arguments {
		if arg.Name == argName {
			return valueFromASTWithVars(arg.Value, l.variableValues), nil
		}
	}
	return nil, fmt.Errorf("argument %s not found", argName)
}

// getOperation retrieves the operation from the document
func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" && len(document.Operations) == 1 {
		return document.Operations[0]
	}
	for _, op := range document.Operations {
		if op.Name == operationName {
			return op
		}
	}
	return nil
}
