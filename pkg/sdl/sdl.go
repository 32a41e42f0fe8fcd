// Package sdl renders parsed types back into GraphQL schema definition
// language, with extracted annotations turned into real directives.
package sdl

import (
	"bytes"
	"slices"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/directive"
	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/typeref"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
	"github.com/vektah/gqlparser/v2/parser"
)

var builtinScalars = []string{"String", "Int", "Float", "Boolean", "ID"}

var builtinDirectives = []string{"skip", "include", "deprecated", "specifiedBy", "oneOf", "defer", "stream"}

// Options controls what Render includes.
type Options struct {
	// IncludeBuiltins keeps built-in scalars and directives.
	IncludeBuiltins bool
	// KeepAnnotations leaves annotations in descriptions instead of
	// rendering them as directives.
	KeepAnnotations bool
}

// Render formats result as SDL.
func Render(result *inspector.Result, opts Options) string {
	var buf bytes.Buffer
	formatter.NewFormatter(&buf, formatter.WithIndent("  ")).FormatSchemaDocument(Document(result, opts))
	return buf.String()
}

// Document builds a gqlparser schema document for result.
func Document(result *inspector.Result, opts Options) *ast.SchemaDocument {
	b := builder{opts: opts}
	doc := &ast.SchemaDocument{}

	if result.Schema != nil {
		if def := schemaDefinition(result.Schema); def != nil {
			doc.Schema = append(doc.Schema, def)
		}
		for _, d := range result.Schema.Directives {
			if !opts.IncludeBuiltins && slices.Contains(builtinDirectives, d.Name) {
				continue
			}
			doc.Directives = append(doc.Directives, b.directiveDefinition(d))
		}
	}

	for _, t := range result.Types {
		name := t.TypeName()
		if strings.HasPrefix(name, "__") {
			continue
		}
		if !opts.IncludeBuiltins && t.TypeKind() == introspection.TypeKindScalar && slices.Contains(builtinScalars, name) {
			continue
		}
		doc.Definitions = append(doc.Definitions, b.definition(t))
	}
	return doc
}

// schemaDefinition returns nil when the root types use their default names.
func schemaDefinition(schema *introspection.Schema) *ast.SchemaDefinition {
	query, mutation, subscription := schema.TypeNames()
	if (query == "" || query == "Query") && (mutation == "" || mutation == "Mutation") && (subscription == "" || subscription == "Subscription") {
		return nil
	}
	def := &ast.SchemaDefinition{}
	for _, op := range []struct {
		operation ast.Operation
		name      string
	}{
		{ast.Query, query},
		{ast.Mutation, mutation},
		{ast.Subscription, subscription},
	} {
		if op.name != "" {
			def.OperationTypes = append(def.OperationTypes, &ast.OperationTypeDefinition{Operation: op.operation, Type: op.name})
		}
	}
	return def
}

type builder struct {
	opts Options
}

func (b builder) definition(t inspector.ParsedType) *ast.Definition {
	def := &ast.Definition{Name: t.TypeName()}
	def.Description, def.Directives = b.annotations(t.TypeAnnotations())

	switch t := t.(type) {
	case *inspector.ScalarType:
		def.Kind = ast.Scalar
		if t.SpecifiedByURL != nil {
			def.Directives = append(def.Directives, &ast.Directive{
				Name:      "specifiedBy",
				Arguments: ast.ArgumentList{{Name: "url", Value: &ast.Value{Kind: ast.StringValue, Raw: *t.SpecifiedByURL}}},
			})
		}
	case *inspector.ObjectType:
		def.Kind = ast.Object
		def.Interfaces = t.Interfaces
		def.Fields = b.fields(t.Fields)
	case *inspector.InterfaceType:
		def.Kind = ast.Interface
		def.Interfaces = t.Interfaces
		def.Fields = b.fields(t.Fields)
	case *inspector.UnionType:
		def.Kind = ast.Union
		def.Types = t.PossibleTypes
	case *inspector.EnumType:
		def.Kind = ast.Enum
		for _, v := range t.EnumValues {
			value := &ast.EnumValueDefinition{Name: v.Name}
			value.Description, value.Directives = b.annotations(v.Annotations)
			value.Directives = appendDeprecated(value.Directives, v.IsDeprecated, v.DeprecationReason)
			def.EnumValues = append(def.EnumValues, value)
		}
	case *inspector.InputObjectType:
		def.Kind = ast.InputObject
		for _, f := range t.InputFields {
			def.Fields = append(def.Fields, b.inputField(f))
		}
	}
	return def
}

func (b builder) fields(fields []inspector.Field) ast.FieldList {
	var list ast.FieldList
	for _, f := range fields {
		field := &ast.FieldDefinition{Name: f.Name, Type: f.Type.AST()}
		field.Description, field.Directives = b.annotations(f.Annotations)
		field.Directives = appendDeprecated(field.Directives, f.IsDeprecated, f.DeprecationReason)
		for _, arg := range f.Args {
			field.Arguments = append(field.Arguments, b.argument(arg))
		}
		list = append(list, field)
	}
	return list
}

func (b builder) argument(v inspector.InputValue) *ast.ArgumentDefinition {
	arg := &ast.ArgumentDefinition{Name: v.Name, Type: v.Type.AST(), DefaultValue: defaultValue(v.Type, v.DefaultValue)}
	arg.Description, arg.Directives = b.annotations(v.Annotations)
	arg.Directives = appendDeprecated(arg.Directives, v.IsDeprecated, v.DeprecationReason)
	return arg
}

func (b builder) inputField(v inspector.InputValue) *ast.FieldDefinition {
	field := &ast.FieldDefinition{Name: v.Name, Type: v.Type.AST(), DefaultValue: defaultValue(v.Type, v.DefaultValue)}
	field.Description, field.Directives = b.annotations(v.Annotations)
	field.Directives = appendDeprecated(field.Directives, v.IsDeprecated, v.DeprecationReason)
	return field
}

func (b builder) directiveDefinition(d introspection.Directive) *ast.DirectiveDefinition {
	def := &ast.DirectiveDefinition{Name: d.Name, IsRepeatable: d.IsRepeatable}
	if d.Description != nil {
		def.Description = *d.Description
	}
	for _, loc := range d.Locations {
		def.Locations = append(def.Locations, ast.DirectiveLocation(loc))
	}
	for _, arg := range d.Args {
		ref, err := typeref.Flatten(arg.Type)
		if err != nil {
			continue
		}
		argDef := &ast.ArgumentDefinition{Name: arg.Name, Type: ref.AST(), DefaultValue: defaultValue(ref, arg.DefaultValue)}
		if arg.Description != nil {
			argDef.Description = *arg.Description
		}
		def.Arguments = append(def.Arguments, argDef)
	}
	return def
}

// annotations returns the description and directives to render. Annotations
// whose content is not valid GraphQL arguments stay in the description.
func (b builder) annotations(a inspector.Annotations) (string, ast.DirectiveList) {
	description := a.DescriptionText()
	if b.opts.KeepAnnotations {
		for _, d := range a.Directives {
			description += " " + d.String()
		}
		return strings.TrimSpace(description), nil
	}

	var list ast.DirectiveList
	for _, d := range a.Directives {
		if parsed := ParseDirective(d); parsed != nil {
			list = append(list, parsed)
			continue
		}
		description += " " + d.String()
	}
	return strings.TrimSpace(description), list
}

// ParseDirective reads an annotation as a GraphQL directive. It returns nil
// when the content is not a valid argument list.
func ParseDirective(d directive.Directive) *ast.Directive {
	doc, err := parser.ParseSchema(&ast.Source{Name: "annotation", Input: "scalar Annotation " + d.String()})
	if err != nil {
		return nil
	}
	if len(doc.Definitions) != 1 || len(doc.Definitions[0].Directives) != 1 {
		return nil
	}
	return doc.Definitions[0].Directives[0]
}

func appendDeprecated(list ast.DirectiveList, deprecated bool, reason *string) ast.DirectiveList {
	if !deprecated {
		return list
	}
	d := &ast.Directive{Name: "deprecated"}
	if reason != nil {
		d.Arguments = ast.ArgumentList{{Name: "reason", Value: &ast.Value{Kind: ast.StringValue, Raw: *reason}}}
	}
	return append(list, d)
}

// defaultValue parses an introspection default value, which is GraphQL
// literal syntax.
func defaultValue(ref typeref.Ref, raw *string) *ast.Value {
	if raw == nil {
		return nil
	}
	doc, err := parser.ParseSchema(&ast.Source{Name: "default", Input: "input Default { f: " + ref.String() + " = " + *raw + " }"})
	if err != nil || len(doc.Definitions) != 1 || len(doc.Definitions[0].Fields) != 1 {
		return nil
	}
	return doc.Definitions[0].Fields[0].DefaultValue
}
