// Package graph declares the author/book schema and binds its resolvers to a
// record store.
package graph

import (
	"context"
	_ "embed"
	"fmt"

	schema "github.com/hanpama/bookgraph/internal/schema"
	store "github.com/hanpama/bookgraph/internal/store"
)

//go:embed schema.graphql
var SDL string

// NewSchema builds the schema from SDL and binds every computed field to st.
// Scalar fields (id, name, authorId) have no resolver and are projected from
// the record.
func NewSchema(st *store.Store) (*schema.Schema, error) {
	sch, err := schema.BuildFromSDL("schema.graphql", SDL)
	if err != nil {
		return nil, err
	}
	r := &resolvers{store: st}
	bindings := []struct {
		typeName, field string
		fn              schema.ResolveFunc
	}{
		{"Query", "book", r.queryBook},
		{"Query", "books", r.queryBooks},
		{"Query", "author", r.queryAuthor},
		{"Query", "authors", r.queryAuthors},
		{"Author", "books", r.authorBooks},
		{"Book", "author", r.bookAuthor},
		{"Mutation", "addBook", r.addBook},
		{"Mutation", "addAuthor", r.addAuthor},
	}
	for _, b := range bindings {
		if err := sch.Bind(b.typeName, b.field, b.fn); err != nil {
			return nil, err
		}
	}
	if err := sch.Validate(); err != nil {
		return nil, fmt.Errorf("graph schema: %w", err)
	}
	return sch, nil
}

type resolvers struct {
	store *store.Store
}

// Absent values are returned as a nil interface, never as a zero record.

func (r *resolvers) queryBook(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, ok := args["id"].(int)
	if !ok {
		return nil, nil
	}
	if b, found := r.store.FindBook(id); found {
		return b, nil
	}
	return nil, nil
}

func (r *resolvers) queryBooks(ctx context.Context, _ any, _ map[string]any) (any, error) {
	return r.store.ScanBooks(nil), nil
}

func (r *resolvers) queryAuthor(ctx context.Context, _ any, args map[string]any) (any, error) {
	id, ok := args["id"].(int)
	if !ok {
		return nil, nil
	}
	if a, found := r.store.FindAuthor(id); found {
		return a, nil
	}
	return nil, nil
}

func (r *resolvers) queryAuthors(ctx context.Context, _ any, _ map[string]any) (any, error) {
	return r.store.ScanAuthors(nil), nil
}

func (r *resolvers) authorBooks(ctx context.Context, source any, _ map[string]any) (any, error) {
	author, err := asAuthor(source)
	if err != nil {
		return nil, err
	}
	return r.store.ScanBooks(func(b store.Book) bool { return b.AuthorID == author.ID }), nil
}

func (r *resolvers) bookAuthor(ctx context.Context, source any, _ map[string]any) (any, error) {
	book, err := asBook(source)
	if err != nil {
		return nil, err
	}
	if a, found := r.store.FindAuthor(book.AuthorID); found {
		return a, nil
	}
	return nil, nil
}

func (r *resolvers) addBook(ctx context.Context, _ any, args map[string]any) (any, error) {
	name, _ := args["name"].(string)
	authorID, _ := args["authorId"].(int)
	b, err := r.store.AppendBook(ctx, name, authorID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *resolvers) addAuthor(ctx context.Context, _ any, args map[string]any) (any, error) {
	name, _ := args["name"].(string)
	a, err := r.store.AppendAuthor(ctx, name)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func asAuthor(source any) (store.Author, error) {
	switch v := source.(type) {
	case store.Author:
		return v, nil
	case *store.Author:
		return *v, nil
	}
	return store.Author{}, fmt.Errorf("graph: expected Author source, got %T", source)
}

func asBook(source any) (store.Book, error) {
	switch v := source.(type) {
	case store.Book:
		return v, nil
	case *store.Book:
		return *v, nil
	}
	return store.Book{}, fmt.Errorf("graph: expected Book source, got %T", source)
}
