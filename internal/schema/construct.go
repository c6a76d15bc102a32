package schema

import "fmt"

// NewSchema returns an empty schema with the builtin scalars and directives.
func NewSchema(description string) *Schema {
	s := &Schema{
		Types:       make(map[string]*Type),
		Directives:  make(map[string]*Directive),
		Description: description,
	}
	s.AddType(stringType).
		AddType(intType).
		AddType(floatType).
		AddType(booleanType).
		AddType(idType)
	s.AddDirective(includeDirective).
		AddDirective(skipDirective)
	return s
}

func (s *Schema) SetQueryType(name string) *Schema        { s.QueryType = name; return s }
func (s *Schema) SetMutationType(name string) *Schema     { s.MutationType = name; return s }
func (s *Schema) SetSubscriptionType(name string) *Schema { s.SubscriptionType = name; return s }

func (s *Schema) AddType(t *Type) *Schema {
	s.Types[t.Name] = t
	return s
}

func (s *Schema) AddDirective(d *Directive) *Schema {
	s.Directives[d.Name] = d
	return s
}

func NewType(name string, kind TypeKind, description string) *Type {
	return &Type{Name: name, Kind: kind, Description: description}
}

func (t *Type) AddField(f *Field) *Type {
	t.Fields = append(t.Fields, f)
	return t
}

func (t *Type) AddEnumValue(v *EnumValue) *Type {
	t.EnumValues = append(t.EnumValues, v)
	return t
}

func NewField(name, description string, typ *TypeRef) *Field {
	return &Field{Name: name, Description: description, Type: typ}
}

func (f *Field) AddArgument(a *InputValue) *Field {
	f.Arguments = append(f.Arguments, a)
	return f
}

func (f *Field) Deprecate(reason string) *Field {
	f.IsDeprecated = true
	f.DeprecationReason = reason
	return f
}

func NewInputValue(name, description string, typ *TypeRef) *InputValue {
	return &InputValue{Name: name, Description: description, Type: typ}
}

func (v *InputValue) SetDefault(value any) *InputValue {
	v.DefaultValue = value
	return v
}

func (v *InputValue) Deprecate(reason string) *InputValue {
	v.IsDeprecated = true
	v.DeprecationReason = reason
	return v
}

func NewEnumValue(name, description string) *EnumValue {
	return &EnumValue{Name: name, Description: description}
}

func (v *EnumValue) Deprecate(reason string) *EnumValue {
	v.IsDeprecated = true
	v.DeprecationReason = reason
	return v
}

// Bind attaches a resolver to typeName.fieldName.
func (s *Schema) Bind(typeName, fieldName string, fn ResolveFunc) error {
	f := s.Field(typeName, fieldName)
	if f == nil {
		return fmt.Errorf("bind %s.%s: no such field", typeName, fieldName)
	}
	if f.Resolve != nil {
		return fmt.Errorf("bind %s.%s: resolver already bound", typeName, fieldName)
	}
	f.Resolve = fn
	return nil
}

// Validate checks that root types exist and every referenced type is
// declared. Root fields must have a resolver since they have no parent
// record to project from.
func (s *Schema) Validate() error {
	if s.GetQueryType() == nil {
		return fmt.Errorf("query type %q is not defined", s.QueryType)
	}
	if s.MutationType != "" && s.GetMutationType() == nil {
		return fmt.Errorf("mutation type %q is not defined", s.MutationType)
	}
	for _, t := range s.Types {
		for _, f := range t.Fields {
			if s.Types[GetNamedType(f.Type)] == nil {
				return fmt.Errorf("%s.%s: unknown type %s", t.Name, f.Name, GetNamedType(f.Type))
			}
			for _, a := range f.Arguments {
				if s.Types[GetNamedType(a.Type)] == nil {
					return fmt.Errorf("%s.%s(%s): unknown type %s", t.Name, f.Name, a.Name, GetNamedType(a.Type))
				}
			}
		}
	}
	for _, root := range []*Type{s.GetQueryType(), s.GetMutationType()} {
		if root == nil {
			continue
		}
		for _, f := range root.Fields {
			if f.Resolve == nil {
				return fmt.Errorf("root field %s.%s has no resolver", root.Name, f.Name)
			}
		}
	}
	return nil
}
