package inspector

import (
	"errors"
	"fmt"

	"github.com/samwightt/gqlinspect/pkg/directive"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/typeref"
)

// ErrUnknownKind is returned for types whose kind is not one of the six
// named kinds.
var ErrUnknownKind = errors.New("unknown type kind")

// AnalyzeError reports where in the schema reshaping failed. Path is a
// dotted location like "Query.user(id)".
type AnalyzeError struct {
	Path        string
	Description string
	Err         error
}

func (e *AnalyzeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *AnalyzeError) Unwrap() error {
	return e.Err
}

// AnalyzeSchema reshapes every type of schema, in schema order.
func AnalyzeSchema(schema *introspection.Schema) ([]ParsedType, error) {
	types := make([]ParsedType, 0, len(schema.Types))
	for _, t := range schema.Types {
		parsed, err := AnalyzeType(schema, t)
		if err != nil {
			return nil, err
		}
		types = append(types, parsed)
	}
	return types, nil
}

// AnalyzeType reshapes a single raw type. schema is the schema t belongs to;
// when t is only a kind and a name, its definition is looked up there.
func AnalyzeType(schema *introspection.Schema, t introspection.FullType) (ParsedType, error) {
	if schema != nil && isReference(t) {
		if full, ok := schema.Type(t.Name); ok {
			t = full
		}
	}

	ann, err := annotate(t.Name, t.Description)
	if err != nil {
		return nil, err
	}

	switch t.Kind {
	case introspection.TypeKindObject:
		fields, err := analyzeFields(t.Name, t.Fields)
		if err != nil {
			return nil, err
		}
		interfaces, err := refNames(t.Name, t.Interfaces)
		if err != nil {
			return nil, err
		}
		return &ObjectType{
			Kind:        t.Kind,
			Name:        t.Name,
			Annotations: ann,
			Fields:      fields,
			Interfaces:  interfaces,
		}, nil

	case introspection.TypeKindInterface:
		fields, err := analyzeFields(t.Name, t.Fields)
		if err != nil {
			return nil, err
		}
		interfaces, err := refNames(t.Name, t.Interfaces)
		if err != nil {
			return nil, err
		}
		possible, err := refNames(t.Name, t.PossibleTypes)
		if err != nil {
			return nil, err
		}
		return &InterfaceType{
			Kind:          t.Kind,
			Name:          t.Name,
			Annotations:   ann,
			Fields:        fields,
			Interfaces:    interfaces,
			PossibleTypes: possible,
		}, nil

	case introspection.TypeKindUnion:
		possible, err := refNames(t.Name, t.PossibleTypes)
		if err != nil {
			return nil, err
		}
		return &UnionType{
			Kind:          t.Kind,
			Name:          t.Name,
			Annotations:   ann,
			PossibleTypes: possible,
		}, nil

	case introspection.TypeKindEnum:
		values := make([]EnumValue, 0, len(t.EnumValues))
		for _, v := range t.EnumValues {
			valueAnn, err := annotate(t.Name+"."+v.Name, v.Description)
			if err != nil {
				return nil, err
			}
			values = append(values, EnumValue{
				Name:              v.Name,
				Annotations:       valueAnn,
				IsDeprecated:      v.IsDeprecated,
				DeprecationReason: nonEmpty(v.DeprecationReason),
			})
		}
		return &EnumType{
			Kind:        t.Kind,
			Name:        t.Name,
			Annotations: ann,
			EnumValues:  values,
		}, nil

	case introspection.TypeKindInputObject:
		inputFields, err := analyzeInputValues(t.Name, "", t.InputFields)
		if err != nil {
			return nil, err
		}
		return &InputObjectType{
			Kind:        t.Kind,
			Name:        t.Name,
			Annotations: ann,
			InputFields: inputFields,
		}, nil

	case introspection.TypeKindScalar:
		return &ScalarType{
			Kind:           t.Kind,
			Name:           t.Name,
			Annotations:    ann,
			SpecifiedByURL: nonEmpty(t.SpecifiedByURL),
		}, nil
	}

	return nil, &AnalyzeError{Path: t.Name, Err: fmt.Errorf("%w: %q", ErrUnknownKind, t.Kind)}
}

func analyzeFields(typeName string, fields []introspection.Field) ([]Field, error) {
	result := make([]Field, 0, len(fields))
	for _, f := range fields {
		path := typeName + "." + f.Name
		ann, err := annotate(path, f.Description)
		if err != nil {
			return nil, err
		}
		ref, err := flatten(path, f.Type)
		if err != nil {
			return nil, err
		}
		args, err := analyzeInputValues(path, "(", f.Args)
		if err != nil {
			return nil, err
		}
		result = append(result, Field{
			Name:              f.Name,
			Annotations:       ann,
			Args:              args,
			Type:              ref,
			IsDeprecated:      f.IsDeprecated,
			DeprecationReason: nonEmpty(f.DeprecationReason),
		})
	}
	return result, nil
}

// analyzeInputValues reshapes arguments (sep "(") or input fields (sep "").
func analyzeInputValues(owner, sep string, values []introspection.InputValue) ([]InputValue, error) {
	result := make([]InputValue, 0, len(values))
	for _, v := range values {
		path := owner + "." + v.Name
		if sep == "(" {
			path = owner + "(" + v.Name + ")"
		}
		ann, err := annotate(path, v.Description)
		if err != nil {
			return nil, err
		}
		ref, err := flatten(path, v.Type)
		if err != nil {
			return nil, err
		}
		result = append(result, InputValue{
			Name:              v.Name,
			Annotations:       ann,
			Type:              ref,
			DefaultValue:      nonEmpty(v.DefaultValue),
			IsDeprecated:      v.IsDeprecated,
			DeprecationReason: nonEmpty(v.DeprecationReason),
		})
	}
	return result, nil
}

func annotate(path string, description *string) (Annotations, error) {
	if description == nil || *description == "" {
		return Annotations{}, nil
	}
	split, err := directive.Split(*description)
	if err != nil {
		return Annotations{}, &AnalyzeError{Path: path, Description: *description, Err: err}
	}
	return Annotations{Description: &split.Description, Directives: split.Directives}, nil
}

func flatten(path string, ref introspection.TypeRef) (typeref.Ref, error) {
	flat, err := typeref.Flatten(ref)
	if err != nil {
		return typeref.Ref{}, &AnalyzeError{Path: path, Err: err}
	}
	return flat, nil
}

func refNames(path string, refs []introspection.TypeRef) ([]string, error) {
	names, err := typeref.Names(refs)
	if err != nil {
		return nil, &AnalyzeError{Path: path, Err: err}
	}
	return names, nil
}

func isReference(t introspection.FullType) bool {
	return t.Description == nil && t.SpecifiedByURL == nil &&
		t.Fields == nil && t.InputFields == nil && t.Interfaces == nil &&
		t.EnumValues == nil && t.PossibleTypes == nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
