package executor

import (
	"github.com/dolmen-go/jsonmap"

	schema "github.com/hanpama/bookgraph/internal/schema"
)

func newSchemaWithQueryType(query *schema.Type, additional ...*schema.Type) *schema.Schema {
	sch := schema.NewSchema("")
	if query != nil {
		sch.SetQueryType(query.Name)
		sch.AddType(query)
	}
	for _, t := range additional {
		sch.AddType(t)
	}
	return sch
}

func newObjectType(name string, fields ...*schema.Field) *schema.Type {
	t := schema.NewType(name, schema.TypeKindObject, "")
	for _, field := range fields {
		t.AddField(field)
	}
	return t
}

func field(name string, typ *schema.TypeRef, args ...*schema.InputValue) *schema.Field {
	f := schema.NewField(name, "", typ)
	for _, a := range args {
		f.AddArgument(a)
	}
	return f
}

func arg(name string, typ *schema.TypeRef) *schema.InputValue {
	return schema.NewInputValue(name, "", typ)
}

func named(name string) *schema.TypeRef { return schema.NamedType(name) }

func nonNull(t *schema.TypeRef) *schema.TypeRef { return schema.NonNullType(t) }

func list(t *schema.TypeRef) *schema.TypeRef { return schema.ListType(t) }

// newShelfSchema is a small two-kind graph with a mutation root:
//
//	type Query    { shelf(id: Int!): Shelf  shelves(limit: Int = 10): [Shelf]  count: Int! }
//	type Mutation { addShelf(label: String!): Shelf }
//	type Shelf    { id: Int!  label: String  items: [Item!]  tags: [String]  color: Color }
//	type Item     { name: String!  shelf: Shelf }
//	enum Color    { RED GREEN }
func newShelfSchema() *schema.Schema {
	query := newObjectType("Query",
		field("shelf", named("Shelf"), arg("id", nonNull(named("Int")))),
		field("shelves", list(named("Shelf")), arg("limit", named("Int")).SetDefault(10)),
		field("count", nonNull(named("Int"))),
	)
	mutation := newObjectType("Mutation",
		field("addShelf", named("Shelf"), arg("label", nonNull(named("String")))),
	)
	shelf := newObjectType("Shelf",
		field("id", nonNull(named("Int"))),
		field("label", named("String")),
		field("items", list(nonNull(named("Item")))),
		field("tags", list(named("String"))),
		field("color", named("Color")),
	)
	item := newObjectType("Item",
		field("name", nonNull(named("String"))),
		field("shelf", named("Shelf")),
	)
	color := schema.NewType("Color", schema.TypeKindEnum, "").
		AddEnumValue(schema.NewEnumValue("RED", "")).
		AddEnumValue(schema.NewEnumValue("GREEN", ""))

	sch := newSchemaWithQueryType(query, mutation, shelf, item, color)
	sch.SetMutationType("Mutation")
	return sch
}

// shelfRuntime projects Shelf and Item fields from map sources.
func shelfRuntime(roots map[string]MockResolver) *MockRuntime {
	rt := NewMockRuntime(roots)
	for _, f := range []string{"id", "label", "items", "tags", "color"} {
		rt.SetResolver("Shelf", f, NewMockProjectResolver(f))
	}
	for _, f := range []string{"name", "shelf"} {
		rt.SetResolver("Item", f, NewMockProjectResolver(f))
	}
	return rt
}

// obj builds an ordered result object from alternating keys and values.
func obj(kv ...any) jsonmap.Ordered {
	o := jsonmap.Ordered{Data: map[string]any{}, Order: []string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		k := kv[i].(string)
		o.Order = append(o.Order, k)
		o.Data[k] = kv[i+1]
	}
	return o
}

// codes summarizes errors as "CODE path" for comparison.
func codes(errs []GraphQLError) []string {
	if errs == nil {
		return nil
	}
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code() + " " + e.Path.String()
	}
	return out
}
