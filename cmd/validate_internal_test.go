package cmd

import (
	"testing"

	"github.com/samwightt/gqlinspect/internal/testfixture"
	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureResult(t *testing.T) *inspector.Result {
	t.Helper()
	result, err := inspector.FromSchema(testfixture.Schema(t))
	require.NoError(t, err)
	return result
}

func TestDetectZshEscapeIssue(t *testing.T) {
	tests := []struct {
		name      string
		locations []Location
		content   string
		source    string
		wantHint  bool
	}{
		{name: "not stdin", locations: []Location{{Line: 1, Column: 9}}, content: `query { \!bad }`, source: "query.graphql"},
		{name: "no backslash bang", locations: []Location{{Line: 1, Column: 9}}, content: `query { bad }`, source: "stdin"},
		{name: "no locations", content: `query { \!bad }`, source: "stdin"},
		{name: "line too low", locations: []Location{{Line: 0, Column: 1}}, content: `query { \!bad }`, source: "stdin"},
		{name: "line too high", locations: []Location{{Line: 10, Column: 1}}, content: `query { \!bad }`, source: "stdin"},
		{name: "at error location", locations: []Location{{Line: 1, Column: 9}}, content: `query { \!bad }`, source: "stdin", wantHint: true},
		{name: "elsewhere on the line", locations: []Location{{Line: 1, Column: 1}}, content: `query { \!bad }`, source: "stdin"},
		{name: "second line", locations: []Location{{Line: 2, Column: 3}}, content: "query {\n  \x5c!bad\n}", source: "stdin", wantHint: true},
		{name: "column zero", locations: []Location{{Line: 1, Column: 0}}, content: `\!query`, source: "stdin"},
		{name: "last column", locations: []Location{{Line: 1, Column: 6}}, content: `hello\`, source: "stdin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidationError{Message: "some error", Locations: tt.locations}
			hint := detectZshEscapeIssue(err, tt.content, tt.source)
			if !tt.wantHint {
				assert.Empty(t, hint)
				return
			}
			assert.Contains(t, hint, "zsh escaped")
			assert.Contains(t, hint, "cat <<'EOF' | gqlinspect validate")
		})
	}
}

func TestErrorSpanLength(t *testing.T) {
	tests := []struct {
		name string
		err  ValidationError
		want int
	}{
		{
			name: "unknown field",
			err:  ValidationError{Message: `Cannot query field "badField" on type "Query".`, Rule: "FieldsOnCorrectType"},
			want: len("badField"),
		},
		{
			name: "unrecognized message",
			err:  ValidationError{Message: "Some other message format", Rule: "FieldsOnCorrectType"},
			want: 1,
		},
		{
			name: "other rule",
			err:  ValidationError{Message: "Some error message", Rule: "SomeOtherRule"},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorSpanLength(tt.err))
		})
	}
}

func TestParseFieldsOnCorrectTypeError(t *testing.T) {
	fieldName, typeName := parseFieldsOnCorrectTypeError(`Cannot query field "badField" on type "Query". Did you mean "node"?`)
	assert.Equal(t, "badField", fieldName)
	assert.Equal(t, "Query", typeName)

	fieldName, typeName = parseFieldsOnCorrectTypeError("Some other message")
	assert.Empty(t, fieldName)
	assert.Empty(t, typeName)
}

func TestErrorSuggestion(t *testing.T) {
	result := fixtureResult(t)

	tests := []struct {
		name    string
		message string
		rule    string
		want    string
	}{
		{name: "close field", message: `Cannot query field "emial" on type "User".`, rule: "FieldsOnCorrectType", want: "did you mean `email`?"},
		{name: "interface field", message: `Cannot query field "ids" on type "Node".`, rule: "FieldsOnCorrectType", want: "did you mean `id`?"},
		{name: "nothing close", message: `Cannot query field "somethingCompletelyDifferent" on type "User".`, rule: "FieldsOnCorrectType"},
		{name: "unknown type", message: `Cannot query field "id" on type "Missing".`, rule: "FieldsOnCorrectType"},
		{name: "other rule", message: `Unknown argument "key" on field "Query.user".`, rule: "KnownArgumentNames"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorSuggestion(ValidationError{Message: tt.message, Rule: tt.rule}, result)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildASTSchema(t *testing.T) {
	schema, err := buildASTSchema(fixtureResult(t))
	require.NoError(t, err)

	require.NotNil(t, schema.Query)
	assert.Equal(t, "Query", schema.Query.Name)
	assert.Nil(t, schema.Mutation)

	user := schema.Types["User"]
	require.NotNil(t, user)
	assert.Equal(t, []string{"Node"}, user.Interfaces)
	require.NotNil(t, user.Fields.ForName("legacyId"))
	assert.NotNil(t, user.Fields.ForName("legacyId").Directives.ForName("deprecated"))

	assert.Equal(t, "[User!]!", schema.Query.Fields.ForName("users").Type.String())
}

func TestValidateQuery(t *testing.T) {
	schema, err := buildASTSchema(fixtureResult(t))
	require.NoError(t, err)

	valid := validateQuery(`{ user(id: "1") { ... on Node { id } } }`, schema)
	assert.True(t, valid.Valid)

	invalid := validateQuery(`{ user(id: "1") { emial } }`, schema)
	assert.False(t, invalid.Valid)
	require.Len(t, invalid.Errors, 1)
	assert.Equal(t, "FieldsOnCorrectType", invalid.Errors[0].Rule)
	assert.Equal(t, []Location{{Line: 1, Column: 19}}, invalid.Errors[0].Locations)
}
