package typeref

import (
	"testing"

	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func named(name string) introspection.TypeRef {
	return introspection.NamedRef(introspection.TypeKindScalar, name)
}

var (
	list    = introspection.ListOf
	nonNull = introspection.NonNullOf
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		name string
		ref  introspection.TypeRef
		want Ref
		sdl  string
	}{
		{name: "named", ref: named("String"), want: Ref{Type: "String"}, sdl: "String"},
		{name: "non-null", ref: nonNull(named("ID")), want: Ref{Type: "ID", Back: "!"}, sdl: "ID!"},
		{name: "list", ref: list(named("Int")), want: Ref{Type: "Int", Front: "[", Back: "]"}, sdl: "[Int]"},
		{
			name: "non-null list of non-null",
			ref:  nonNull(list(nonNull(named("String")))),
			want: Ref{Type: "String", Front: "[", Back: "!]!"},
			sdl:  "[String!]!",
		},
		{
			name: "non-null list of nullable",
			ref:  nonNull(list(named("String"))),
			want: Ref{Type: "String", Front: "[", Back: "]!"},
			sdl:  "[String]!",
		},
		{
			name: "nested lists",
			ref:  list(nonNull(list(named("Int")))),
			want: Ref{Type: "Int", Front: "[[", Back: "]!]"},
			sdl:  "[[Int]!]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Flatten(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.sdl, got.String())
			assert.Equal(t, tt.sdl, got.AST().String())

			parsed, err := Parse(tt.sdl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parsed)
		})
	}
}

func TestFlatten_Malformed(t *testing.T) {
	_, err := Flatten(introspection.TypeRef{Kind: introspection.TypeKindList})
	assert.ErrorIs(t, err, ErrMalformedRef)

	_, err = Flatten(nonNull(introspection.TypeRef{Kind: introspection.TypeKindObject}))
	assert.ErrorIs(t, err, ErrMalformedRef)
}

func TestNames(t *testing.T) {
	names, err := Names([]introspection.TypeRef{
		introspection.NamedRef(introspection.TypeKindInterface, "Node"),
		introspection.NamedRef(introspection.TypeKindInterface, "Entity"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Node", "Entity"}, names)

	names, err = Names(nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRefPredicates(t *testing.T) {
	r := Ref{Type: "String", Front: "[", Back: "!]!"}
	assert.True(t, r.IsNonNull())
	assert.True(t, r.IsList())

	r = Ref{Type: "String", Front: "[", Back: "!]"}
	assert.False(t, r.IsNonNull())

	assert.False(t, Ref{Type: "Int"}.IsList())
}

func TestParse_Invalid(t *testing.T) {
	for _, s := range []string{"", "[String", "String]", "String = 1", "A } input B { g: C"} {
		_, err := Parse(s)
		assert.ErrorIs(t, err, ErrMalformedRef, s)
	}
}
