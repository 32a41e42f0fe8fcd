// Package introspection models the raw result of a GraphQL introspection
// query as returned by a server.
package introspection

type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
	TypeKindList        TypeKind = "LIST"
	TypeKindNonNull     TypeKind = "NON_NULL"
)

// IsNamed reports whether the kind is one of the six structural kinds a
// named type can have.
func (k TypeKind) IsNamed() bool {
	switch k {
	case TypeKindScalar, TypeKindObject, TypeKindInterface, TypeKindUnion, TypeKindEnum, TypeKindInputObject:
		return true
	}
	return false
}

type Schema struct {
	Description      *string     `json:"description,omitempty"`
	QueryType        *TypeName   `json:"queryType"`
	MutationType     *TypeName   `json:"mutationType"`
	SubscriptionType *TypeName   `json:"subscriptionType"`
	Types            []FullType  `json:"types"`
	Directives       []Directive `json:"directives"`
}

// TypeNames returns the root operation type names, empty when absent.
func (s *Schema) TypeNames() (query, mutation, subscription string) {
	if s.QueryType != nil {
		query = s.QueryType.Name
	}
	if s.MutationType != nil {
		mutation = s.MutationType.Name
	}
	if s.SubscriptionType != nil {
		subscription = s.SubscriptionType.Name
	}
	return
}

// Type looks up a type by name.
func (s *Schema) Type(name string) (FullType, bool) {
	for _, t := range s.Types {
		if t.Name == name {
			return t, true
		}
	}
	return FullType{}, false
}

type TypeName struct {
	Name string `json:"name"`
}

type FullType struct {
	Kind        TypeKind `json:"kind"`
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	// json matches keys case-insensitively, so older servers reporting
	// specifiedByUrl land here too.
	SpecifiedByURL *string `json:"specifiedByURL,omitempty"`
	// OBJECT and INTERFACE only
	Fields []Field `json:"fields"`
	// INPUT_OBJECT only
	InputFields []InputValue `json:"inputFields"`
	// OBJECT and INTERFACE only
	Interfaces []TypeRef `json:"interfaces"`
	// ENUM only
	EnumValues []EnumValue `json:"enumValues"`
	// INTERFACE and UNION only
	PossibleTypes []TypeRef `json:"possibleTypes"`
}

func (t FullType) IsScalar() bool      { return t.Kind == TypeKindScalar }
func (t FullType) IsObject() bool      { return t.Kind == TypeKindObject }
func (t FullType) IsInterface() bool   { return t.Kind == TypeKindInterface }
func (t FullType) IsUnion() bool       { return t.Kind == TypeKindUnion }
func (t FullType) IsEnum() bool        { return t.Kind == TypeKindEnum }
func (t FullType) IsInputObject() bool { return t.Kind == TypeKindInputObject }

// TypeRef is a possibly wrapped reference to a named type.
type TypeRef struct {
	Kind   TypeKind `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

func (r TypeRef) IsList() bool    { return r.Kind == TypeKindList }
func (r TypeRef) IsNonNull() bool { return r.Kind == TypeKindNonNull }
func (r TypeRef) IsNamed() bool   { return !r.IsList() && !r.IsNonNull() }

// NamedRef builds a reference to a named type.
func NamedRef(kind TypeKind, name string) TypeRef {
	return TypeRef{Kind: kind, Name: &name}
}

// ListOf wraps ref in a list.
func ListOf(ref TypeRef) TypeRef {
	return TypeRef{Kind: TypeKindList, OfType: &ref}
}

// NonNullOf wraps ref in a non-null modifier.
func NonNullOf(ref TypeRef) TypeRef {
	return TypeRef{Kind: TypeKindNonNull, OfType: &ref}
}

type Field struct {
	Name              string       `json:"name"`
	Description       *string      `json:"description"`
	Args              []InputValue `json:"args"`
	Type              TypeRef      `json:"type"`
	IsDeprecated      bool         `json:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason"`
}

type InputValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	Type              TypeRef `json:"type"`
	DefaultValue      *string `json:"defaultValue"`
	IsDeprecated      bool    `json:"isDeprecated,omitempty"`
	DeprecationReason *string `json:"deprecationReason,omitempty"`
}

type EnumValue struct {
	Name              string  `json:"name"`
	Description       *string `json:"description"`
	IsDeprecated      bool    `json:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason"`
}

type Directive struct {
	Name         string       `json:"name"`
	Description  *string      `json:"description"`
	IsRepeatable bool         `json:"isRepeatable,omitempty"`
	Locations    []string     `json:"locations"`
	Args         []InputValue `json:"args"`
}
