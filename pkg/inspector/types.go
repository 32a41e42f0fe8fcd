package inspector

import (
	"github.com/samwightt/gqlinspect/pkg/directive"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/typeref"
)

// ParsedType is one of ScalarType, ObjectType, InterfaceType, UnionType,
// EnumType or InputObjectType.
type ParsedType interface {
	TypeKind() introspection.TypeKind
	TypeName() string
	// TypeAnnotations returns the split description of the type itself.
	TypeAnnotations() Annotations

	parsedType()
}

// Annotations is a description with its directives pulled out. Directives
// is nil when there was no description to split.
type Annotations struct {
	Description *string    `json:"description,omitempty" yaml:"description,omitempty"`
	Directives  Directives `json:"directives,omitzero" yaml:"directives,omitempty"`
}

// Directives is the list split out of a description. Only a nil list is
// left out of encoded output; an empty one is written as [].
type Directives []directive.Directive

// IsZero reports whether there was no description to split.
func (d Directives) IsZero() bool { return d == nil }

// HasDirective reports whether a directive with the given name was found.
func (a Annotations) HasDirective(name string) bool {
	_, ok := a.Directive(name)
	return ok
}

// Directive returns the first directive with the given name.
func (a Annotations) Directive(name string) (directive.Directive, bool) {
	for _, d := range a.Directives {
		if d.Name == name {
			return d, true
		}
	}
	return directive.Directive{}, false
}

// DescriptionText returns the description or "" when absent.
func (a Annotations) DescriptionText() string {
	if a.Description == nil {
		return ""
	}
	return *a.Description
}

type ScalarType struct {
	Kind           introspection.TypeKind `json:"kind" yaml:"kind"`
	Name           string                 `json:"name" yaml:"name"`
	Annotations    `yaml:",inline"`
	SpecifiedByURL *string `json:"specifiedByURL,omitempty" yaml:"specifiedByURL,omitempty"`
}

type ObjectType struct {
	Kind        introspection.TypeKind `json:"kind" yaml:"kind"`
	Name        string                 `json:"name" yaml:"name"`
	Annotations `yaml:",inline"`
	Fields      []Field  `json:"fields" yaml:"fields"`
	Interfaces  []string `json:"interfaces" yaml:"interfaces"`
}

type InterfaceType struct {
	Kind          introspection.TypeKind `json:"kind" yaml:"kind"`
	Name          string                 `json:"name" yaml:"name"`
	Annotations   `yaml:",inline"`
	Fields        []Field  `json:"fields" yaml:"fields"`
	Interfaces    []string `json:"interfaces" yaml:"interfaces"`
	PossibleTypes []string `json:"possibleTypes" yaml:"possibleTypes"`
}

type UnionType struct {
	Kind          introspection.TypeKind `json:"kind" yaml:"kind"`
	Name          string                 `json:"name" yaml:"name"`
	Annotations   `yaml:",inline"`
	PossibleTypes []string `json:"possibleTypes" yaml:"possibleTypes"`
}

type EnumType struct {
	Kind        introspection.TypeKind `json:"kind" yaml:"kind"`
	Name        string                 `json:"name" yaml:"name"`
	Annotations `yaml:",inline"`
	EnumValues  []EnumValue `json:"enumValues" yaml:"enumValues"`
}

type InputObjectType struct {
	Kind        introspection.TypeKind `json:"kind" yaml:"kind"`
	Name        string                 `json:"name" yaml:"name"`
	Annotations `yaml:",inline"`
	InputFields []InputValue `json:"inputFields" yaml:"inputFields"`
}

type Field struct {
	Name              string `json:"name" yaml:"name"`
	Annotations       `yaml:",inline"`
	Args              []InputValue `json:"args" yaml:"args"`
	Type              typeref.Ref  `json:"type" yaml:"type"`
	IsDeprecated      bool         `json:"isDeprecated" yaml:"isDeprecated"`
	DeprecationReason *string      `json:"deprecationReason,omitempty" yaml:"deprecationReason,omitempty"`
}

type InputValue struct {
	Name              string `json:"name" yaml:"name"`
	Annotations       `yaml:",inline"`
	Type              typeref.Ref `json:"type" yaml:"type"`
	DefaultValue      *string     `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	IsDeprecated      bool        `json:"isDeprecated,omitempty" yaml:"isDeprecated,omitempty"`
	DeprecationReason *string     `json:"deprecationReason,omitempty" yaml:"deprecationReason,omitempty"`
}

type EnumValue struct {
	Name              string `json:"name" yaml:"name"`
	Annotations       `yaml:",inline"`
	IsDeprecated      bool    `json:"isDeprecated" yaml:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason,omitempty" yaml:"deprecationReason,omitempty"`
}

func (*ScalarType) TypeKind() introspection.TypeKind      { return introspection.TypeKindScalar }
func (*ObjectType) TypeKind() introspection.TypeKind      { return introspection.TypeKindObject }
func (*InterfaceType) TypeKind() introspection.TypeKind   { return introspection.TypeKindInterface }
func (*UnionType) TypeKind() introspection.TypeKind       { return introspection.TypeKindUnion }
func (*EnumType) TypeKind() introspection.TypeKind        { return introspection.TypeKindEnum }
func (*InputObjectType) TypeKind() introspection.TypeKind { return introspection.TypeKindInputObject }

func (t *ScalarType) TypeName() string      { return t.Name }
func (t *ObjectType) TypeName() string      { return t.Name }
func (t *InterfaceType) TypeName() string   { return t.Name }
func (t *UnionType) TypeName() string       { return t.Name }
func (t *EnumType) TypeName() string        { return t.Name }
func (t *InputObjectType) TypeName() string { return t.Name }

func (t *ScalarType) TypeAnnotations() Annotations      { return t.Annotations }
func (t *ObjectType) TypeAnnotations() Annotations      { return t.Annotations }
func (t *InterfaceType) TypeAnnotations() Annotations   { return t.Annotations }
func (t *UnionType) TypeAnnotations() Annotations       { return t.Annotations }
func (t *EnumType) TypeAnnotations() Annotations        { return t.Annotations }
func (t *InputObjectType) TypeAnnotations() Annotations { return t.Annotations }

func (*ScalarType) parsedType()      {}
func (*ObjectType) parsedType()      {}
func (*InterfaceType) parsedType()   {}
func (*UnionType) parsedType()       {}
func (*EnumType) parsedType()        {}
func (*InputObjectType) parsedType() {}

// IsOutputType reports whether t can be returned from a field.
func IsOutputType(t ParsedType) bool {
	return t.TypeKind() != introspection.TypeKindInputObject
}

// IsInputType reports whether t can be used as an argument or input field.
func IsInputType(t ParsedType) bool {
	switch t.TypeKind() {
	case introspection.TypeKindScalar, introspection.TypeKindEnum, introspection.TypeKindInputObject:
		return true
	}
	return false
}

// FieldsOf returns the output fields of objects and interfaces.
func FieldsOf(t ParsedType) []Field {
	switch t := t.(type) {
	case *ObjectType:
		return t.Fields
	case *InterfaceType:
		return t.Fields
	}
	return nil
}
