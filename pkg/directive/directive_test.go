package directive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func content(s string) *string {
	return &s
}

func TestSplit_NoDirectives(t *testing.T) {
	for _, s := range []string{
		"",
		"A plain description.",
		"email me at someone@example.com",
		"costs 5 (or more)",
		"trailing at sign @",
	} {
		result, err := Split(s)
		require.NoError(t, err)
		assert.Equal(t, s, result.Description)
		assert.Empty(t, result.Directives)
		assert.NotNil(t, result.Directives)
	}
}

func TestSplit_NestedParentheses(t *testing.T) {
	result, err := Split("@foo(a(b)c) rest")
	require.NoError(t, err)
	assert.Equal(t, " rest", result.Description)
	assert.Equal(t, []Directive{{Name: "foo", Content: content("a(b)c")}}, result.Directives)
}

func TestSplit_SpaceTerminated(t *testing.T) {
	result, err := Split("@deprecated reason text")
	require.NoError(t, err)
	assert.Equal(t, " reason text", result.Description)
	require.Len(t, result.Directives, 1)
	assert.Equal(t, "deprecated", result.Directives[0].Name)
	assert.Nil(t, result.Directives[0].Content)
}

func TestSplit_EndOfString(t *testing.T) {
	result, err := Split("Internal only @internal")
	require.NoError(t, err)
	assert.Equal(t, "Internal only ", result.Description)
	assert.Equal(t, []Directive{{Name: "internal"}}, result.Directives)
}

func TestSplit_WordBoundary(t *testing.T) {
	result, err := Split("foo@bar baz")
	require.NoError(t, err)
	assert.Equal(t, "foo@bar baz", result.Description)
	assert.Empty(t, result.Directives)
}

func TestSplit_EmptyContent(t *testing.T) {
	result, err := Split("@flag() x")
	require.NoError(t, err)
	assert.Equal(t, " x", result.Description)
	assert.Equal(t, []Directive{{Name: "flag", Content: content("")}}, result.Directives)
}

func TestSplit_MultipleDirectivesInOrder(t *testing.T) {
	result, err := Split("The user's email. @auth(requires: ADMIN) @internal")
	require.NoError(t, err)
	assert.Equal(t, "The user's email.  ", result.Description)
	assert.Equal(t, []Directive{
		{Name: "auth", Content: content("requires: ADMIN")},
		{Name: "internal"},
	}, result.Directives)
	assert.Equal(t, []string{"auth", "internal"}, result.Names())
}

func TestSplit_ParenthesisAfterSpaceIsText(t *testing.T) {
	result, err := Split("@example (see docs)")
	require.NoError(t, err)
	assert.Equal(t, " (see docs)", result.Description)
	assert.Equal(t, []Directive{{Name: "example"}}, result.Directives)
}

func TestSplit_MultilineContent(t *testing.T) {
	result, err := Split("Header\n@meta(\n  a: 1\n  b: (2)\n)\nFooter")
	require.NoError(t, err)
	assert.Equal(t, "Header\n\nFooter", result.Description)
	assert.Equal(t, []Directive{{Name: "meta", Content: content("\n  a: 1\n  b: (2)\n")}}, result.Directives)
}

func TestSplit_Unbalanced(t *testing.T) {
	_, err := Split("@foo(a(b")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMismatch))
	assert.Contains(t, err.Error(), "@foo")
}

func TestSplit_UnbalancedOffsetIsAbsolute(t *testing.T) {
	_, err := Split("ok @a(1) then @b(oops")
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 16, mismatch.Offset)
}

func TestSplit_Restore(t *testing.T) {
	for _, s := range []string{
		"",
		"nothing to see",
		"@foo(a(b)c) rest",
		"@deprecated reason text",
		"lead @a mid @b(x) tail @c(y(z)) end @d",
		"@a@b@c",
		"multi\n@line(\n1\n)\nvalue @x",
	} {
		result, err := Split(s)
		require.NoError(t, err)
		assert.Equal(t, s, result.Restore(), "restoring %q", s)
	}
}

func TestSplit_Excisions(t *testing.T) {
	result, err := Split("a @b(c) d @e")
	require.NoError(t, err)
	assert.Equal(t, "a  d ", result.Description)
	assert.Equal(t, []Excision{
		{Offset: 2, Text: "@b(c)"},
		{Offset: 5, Text: "@e"},
	}, result.Excisions)
}

func TestDirective_String(t *testing.T) {
	assert.Equal(t, "@internal", Directive{Name: "internal"}.String())
	assert.Equal(t, "@auth(role: ADMIN)", Directive{Name: "auth", Content: content("role: ADMIN")}.String())
	assert.True(t, Directive{Name: "x", Content: content("")}.HasContent())
	assert.False(t, Directive{Name: "x"}.HasContent())
}

func TestMustSplit_Panics(t *testing.T) {
	assert.Panics(t, func() { MustSplit("@x(") })
	assert.NotPanics(t, func() { MustSplit("@x()") })
}
