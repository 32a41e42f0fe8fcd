// Package typeref collapses wrapped introspection type references into a
// named type plus the wrapper syntax around it.
package typeref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// ErrMalformedRef is returned for references that cannot be unwrapped.
var ErrMalformedRef = errors.New("malformed type reference")

// Ref is a flattened type reference: Front + Type + Back spells the
// reference in SDL, e.g. "[" + "String" + "!]!".
type Ref struct {
	Type  string `json:"type" yaml:"type"`
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back" yaml:"back"`
}

func (r Ref) String() string {
	return r.Front + r.Type + r.Back
}

// IsNonNull reports whether the outermost wrapper is non-null.
func (r Ref) IsNonNull() bool {
	return strings.HasSuffix(r.Back, "!")
}

// IsList reports whether the reference contains at least one list.
func (r Ref) IsList() bool {
	return r.Front != ""
}

// Flatten unwraps ref down to its named type. Every list adds "[" to Front
// and "]" to Back; every non-null adds "!" to Back. Back is written inside
// out, so the outermost wrapper ends up last.
func Flatten(ref introspection.TypeRef) (Ref, error) {
	switch {
	case ref.IsNonNull():
		if ref.OfType == nil {
			return Ref{}, fmt.Errorf("%w: NON_NULL without ofType", ErrMalformedRef)
		}
		inner, err := Flatten(*ref.OfType)
		if err != nil {
			return Ref{}, err
		}
		return Ref{Type: inner.Type, Front: inner.Front, Back: inner.Back + "!"}, nil
	case ref.IsList():
		if ref.OfType == nil {
			return Ref{}, fmt.Errorf("%w: LIST without ofType", ErrMalformedRef)
		}
		inner, err := Flatten(*ref.OfType)
		if err != nil {
			return Ref{}, err
		}
		return Ref{Type: inner.Type, Front: inner.Front + "[", Back: inner.Back + "]"}, nil
	default:
		if ref.Name == nil || *ref.Name == "" {
			return Ref{}, fmt.Errorf("%w: %s type without a name", ErrMalformedRef, ref.Kind)
		}
		return Ref{Type: *ref.Name}, nil
	}
}

// Names flattens a list of references to their bare type names.
func Names(refs []introspection.TypeRef) ([]string, error) {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		flat, err := Flatten(ref)
		if err != nil {
			return nil, err
		}
		names = append(names, flat.Type)
	}
	return names, nil
}

// AST converts the reference to a gqlparser type.
func (r Ref) AST() *ast.Type {
	t := &ast.Type{NamedType: r.Type}
	// "!" marks the type built so far non-null and "]" wraps it in a list.
	for _, c := range r.Back {
		switch c {
		case '!':
			t.NonNull = true
		case ']':
			t = &ast.Type{Elem: t}
		}
	}
	return t
}

// FromAST flattens a gqlparser type.
func FromAST(t *ast.Type) Ref {
	if t.Elem == nil {
		r := Ref{Type: t.NamedType}
		if t.NonNull {
			r.Back = "!"
		}
		return r
	}
	inner := FromAST(t.Elem)
	r := Ref{Type: inner.Type, Front: inner.Front + "[", Back: inner.Back + "]"}
	if t.NonNull {
		r.Back += "!"
	}
	return r
}

// Parse reads an SDL type reference such as "[String!]!".
func Parse(s string) (Ref, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: "typeref", Input: "input Ref { f: " + s + " }"})
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %q: %v", ErrMalformedRef, s, err)
	}
	if len(doc.Definitions) != 1 || len(doc.Definitions[0].Fields) != 1 || doc.Definitions[0].Fields[0].DefaultValue != nil {
		return Ref{}, fmt.Errorf("%w: %q", ErrMalformedRef, s)
	}
	return FromAST(doc.Definitions[0].Fields[0].Type), nil
}
