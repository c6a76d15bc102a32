package introspection

import (
	schema "github.com/hanpama/bookgraph/internal/schema"
)

// extendSchema returns a copy of original with the introspection types added
// and __schema/__type appended to the query type. original is not modified.
func extendSchema(original *schema.Schema) *schema.Schema {
	extended := &schema.Schema{
		QueryType:        original.QueryType,
		MutationType:     original.MutationType,
		SubscriptionType: original.SubscriptionType,
		Types:            make(map[string]*schema.Type, len(original.Types)+8),
		Directives:       original.Directives,
		Description:      original.Description,
	}
	for name, typ := range original.Types {
		extended.Types[name] = typ
	}
	for _, t := range introspectionTypes() {
		extended.AddType(t)
	}

	if queryType := original.GetQueryType(); queryType != nil {
		queryCopy := schema.NewType(queryType.Name, queryType.Kind, queryType.Description)
		queryCopy.Fields = append(queryCopy.Fields, queryType.Fields...)
		queryCopy.
			AddField(schema.NewField("__schema", "Access the current type schema of this server.",
				nonNull(named("__Schema")))).
			AddField(schema.NewField("__type", "Request the type information of a single type.",
				named("__Type")).
				AddArgument(schema.NewInputValue("name", "The name of the type to look up.", nonNull(named("String")))))
		extended.AddType(queryCopy)
	}
	return extended
}

func named(name string) *schema.TypeRef         { return schema.NamedType(name) }
func nonNull(t *schema.TypeRef) *schema.TypeRef { return schema.NonNullType(t) }
func listOf(name string) *schema.TypeRef        { return schema.ListType(nonNull(named(name))) }
func nonNullListOf(name string) *schema.TypeRef { return nonNull(listOf(name)) }

func includeDeprecated() *schema.InputValue {
	return schema.NewInputValue("includeDeprecated", "", named("Boolean")).SetDefault(false)
}

func introspectionTypes() []*schema.Type {
	return []*schema.Type{
		schema.NewType("__Schema", schema.TypeKindObject, "A GraphQL Schema defines the capabilities of a GraphQL server.").
			AddField(schema.NewField("description", "", named("String"))).
			AddField(schema.NewField("types", "A list of all types supported by this server.", nonNullListOf("__Type"))).
			AddField(schema.NewField("queryType", "The type that query operations will be rooted at.", nonNull(named("__Type")))).
			AddField(schema.NewField("mutationType", "If this server supports mutation, the type that mutation operations will be rooted at.", named("__Type"))).
			AddField(schema.NewField("subscriptionType", "If this server support subscription, the type that subscription operations will be rooted at.", named("__Type"))).
			AddField(schema.NewField("directives", "A list of all directives supported by this server.", nonNullListOf("__Directive"))),

		schema.NewType("__Type", schema.TypeKindObject, "The fundamental unit of any GraphQL Schema is the type.").
			AddField(schema.NewField("kind", "", nonNull(named("__TypeKind")))).
			AddField(schema.NewField("name", "", named("String"))).
			AddField(schema.NewField("description", "", named("String"))).
			AddField(schema.NewField("specifiedByURL", "", named("String"))).
			AddField(schema.NewField("fields", "", listOf("__Field")).AddArgument(includeDeprecated())).
			AddField(schema.NewField("interfaces", "", listOf("__Type"))).
			AddField(schema.NewField("possibleTypes", "", listOf("__Type"))).
			AddField(schema.NewField("enumValues", "", listOf("__EnumValue")).AddArgument(includeDeprecated())).
			AddField(schema.NewField("inputFields", "", listOf("__InputValue")).AddArgument(includeDeprecated())).
			AddField(schema.NewField("ofType", "", named("__Type"))).
			AddField(schema.NewField("isOneOf", "", named("Boolean"))),

		schema.NewType("__Field", schema.TypeKindObject, "").
			AddField(schema.NewField("name", "", nonNull(named("String")))).
			AddField(schema.NewField("description", "", named("String"))).
			AddField(schema.NewField("args", "", nonNullListOf("__InputValue")).AddArgument(includeDeprecated())).
			AddField(schema.NewField("type", "", nonNull(named("__Type")))).
			AddField(schema.NewField("isDeprecated", "", nonNull(named("Boolean")))).
			AddField(schema.NewField("deprecationReason", "", named("String"))),

		schema.NewType("__InputValue", schema.TypeKindObject, "").
			AddField(schema.NewField("name", "", nonNull(named("String")))).
			AddField(schema.NewField("description", "", named("String"))).
			AddField(schema.NewField("type", "", nonNull(named("__Type")))).
			AddField(schema.NewField("defaultValue", "", named("String"))).
			AddField(schema.NewField("isDeprecated", "", nonNull(named("Boolean")))).
			AddField(schema.NewField("deprecationReason", "", named("String"))),

		schema.NewType("__EnumValue", schema.TypeKindObject, "").
			AddField(schema.NewField("name", "", nonNull(named("String")))).
			AddField(schema.NewField("description", "", named("String"))).
			AddField(schema.NewField("isDeprecated", "", nonNull(named("Boolean")))).
			AddField(schema.NewField("deprecationReason", "", named("String"))),

		schema.NewType("__Directive", schema.TypeKindObject, "").
			AddField(schema.NewField("name", "", nonNull(named("String")))).
			AddField(schema.NewField("description", "", named("String"))).
			AddField(schema.NewField("isRepeatable", "", nonNull(named("Boolean")))).
			AddField(schema.NewField("locations", "", nonNullListOf("__DirectiveLocation"))).
			AddField(schema.NewField("args", "", nonNullListOf("__InputValue")).AddArgument(includeDeprecated())),

		enumType("__TypeKind",
			"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"),

		enumType("__DirectiveLocation",
			"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION", "FRAGMENT_SPREAD",
			"INLINE_FRAGMENT", "VARIABLE_DEFINITION", "SCHEMA", "SCALAR", "OBJECT", "FIELD_DEFINITION",
			"ARGUMENT_DEFINITION", "INTERFACE", "UNION", "ENUM", "ENUM_VALUE", "INPUT_OBJECT",
			"INPUT_FIELD_DEFINITION"),
	}
}

func enumType(name string, values ...string) *schema.Type {
	t := schema.NewType(name, schema.TypeKindEnum, "")
	for _, v := range values {
		t.AddEnumValue(schema.NewEnumValue(v, ""))
	}
	return t
}
