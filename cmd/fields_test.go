package cmd_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_SingleType(t *testing.T) {
	stdout, _, err := runWithFixture(t, "fields", "User", "-f", "text")
	require.NoError(t, err)

	assert.Equal(t, `id: ID!
name: String # Display name
email: String @pii @auth # Contact address
status: Status!
createdAt: DateTime # When the account was created
legacyId: Int @deprecated
`, stdout)
}

func TestFields_InputType(t *testing.T) {
	stdout, _, err := runWithFixture(t, "fields", "UserFilter", "-f", "text")
	require.NoError(t, err)

	assert.Equal(t, `status: Status @default # Only users with this status
nameContains: String
tags: [String!] = []
`, stdout)
}

func TestFields_ArgumentsInName(t *testing.T) {
	stdout, _, err := runWithFixture(t, "fields", "Query", "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "user(id: ID!): User @auth @cache # Look up a user.")
	assert.Contains(t, stdout, "users(first: Int, filter: UserFilter): [User!]! @paginated # All users")
	assert.Contains(t, stdout, "search(term: String!): [SearchResult]")
}

func TestFields_AllTypesArePrefixed(t *testing.T) {
	stdout, _, err := runWithFixture(t, "fields", "-f", "text")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Query.node(id: ID!): Node")
	assert.Contains(t, stdout, "User.id: ID!")
	assert.Contains(t, stdout, "Node.id: ID!")
	assert.Contains(t, stdout, "UserFilter.tags: [String!] = []")
}

func TestFields_NotAFieldType(t *testing.T) {
	_, _, err := runWithFixture(t, "fields", "Status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Status' has no fields (it's a enum)")
}

func TestFields_UnknownType(t *testing.T) {
	_, _, err := runWithFixture(t, "fields", "Usr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type 'Usr' does not exist in schema, did you mean 'User'?")
}

func TestFields_Filters(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "deprecated",
			args: []string{"--deprecated"},
			want: "User.legacyId: Int @deprecated\n",
		},
		{
			name: "has directive",
			args: []string{"--has-directive", "auth"},
			want: "Query.user(id: ID!): User @auth @cache # Look up a user.\nUser.email: String @pii @auth # Contact address\n",
		},
		{
			name: "has directive and logic",
			args: []string{"--has-directive", "auth", "--has-directive", "pii"},
			want: "User.email: String @pii @auth # Contact address\n",
		},
		{
			name: "has arg",
			args: []string{"--has-arg", "first"},
			want: "Query.users(first: Int, filter: UserFilter): [User!]! @paginated # All users\n",
		},
		{
			name: "returns through wrappers",
			args: []string{"--returns", "User"},
			want: "Query.user(id: ID!): User @auth @cache # Look up a user.\nQuery.users(first: Int, filter: UserFilter): [User!]! @paginated # All users\n",
		},
		{
			name: "returns full reference",
			args: []string{"--returns", "[User!]!"},
			want: "Query.users(first: Int, filter: UserFilter): [User!]! @paginated # All users\n",
		},
		{
			name: "name glob",
			args: []string{"User", "--name", "*Id"},
			want: "legacyId: Int @deprecated\n",
		},
		{
			name: "name regex",
			args: []string{"User", "--name-regex", "^(name|email)$"},
			want: "name: String # Display name\nemail: String @pii @auth # Contact address\n",
		},
		{
			name: "required",
			args: []string{"User", "--required"},
			want: "id: ID!\nstatus: Status!\n",
		},
		{
			name: "has description",
			args: []string{"UserFilter", "--has-description"},
			want: "status: Status @default # Only users with this status\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"fields", "-f", "text"}, tt.args...)
			stdout, _, err := runWithFixture(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestFields_NoMatches(t *testing.T) {
	stdout, stderr, err := runWithFixture(t, "fields", "User", "--has-arg", "nope", "-f", "text")
	require.NoError(t, err)
	assert.Equal(t, "\n", stdout)
	assert.Contains(t, stderr, "No fields found that match the filters.")
}

func TestFields_InvalidReturns(t *testing.T) {
	_, _, err := runWithFixture(t, "fields", "--returns", "[User")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid type for --returns")
}

func TestFields_RequiredAndNullable(t *testing.T) {
	_, _, err := runWithFixture(t, "fields", "--required", "--nullable")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--required and --nullable cannot be used together")
}

func TestFields_JSONFormat(t *testing.T) {
	stdout, _, err := runWithFixture(t, "fields", "Query", "-f", "json")
	require.NoError(t, err)

	var fields []struct {
		Name      string `json:"name"`
		Type      string `json:"type"`
		Arguments []struct {
			Name string `json:"name"`
			Type string `json:"type"`
		} `json:"arguments"`
		Directives []struct {
			Name    string  `json:"name"`
			Content *string `json:"content"`
		} `json:"directives"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &fields))
	require.Len(t, fields, 4)

	user := fields[0]
	assert.Equal(t, "user", user.Name)
	assert.Equal(t, "User", user.Type)
	require.Len(t, user.Arguments, 1)
	assert.Equal(t, "ID!", user.Arguments[0].Type)
	require.Len(t, user.Directives, 2)
	assert.Equal(t, "auth", user.Directives[0].Name)
	assert.Equal(t, "requires: USER", *user.Directives[0].Content)
	assert.Equal(t, "cache", user.Directives[1].Name)
	assert.Equal(t, "maxAge: 60", *user.Directives[1].Content)

	assert.Equal(t, "[User!]!", fields[1].Type)
}
