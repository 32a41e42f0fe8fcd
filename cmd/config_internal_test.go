package cmd

import (
	"net/http"
	"testing"

	"github.com/samwightt/gqlinspect/pkg/directive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseHeaders(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    http.Header
		wantErr bool
	}{
		{name: "none", want: http.Header{}},
		{
			name:   "canonical keys and trimmed values",
			values: []string{"authorization:  Bearer x ", "x-trace:1"},
			want:   http.Header{"Authorization": {"Bearer x"}, "X-Trace": {"1"}},
		},
		{
			name:   "repeated key",
			values: []string{"Accept-Language: en", "Accept-Language: de"},
			want:   http.Header{"Accept-Language": {"en", "de"}},
		},
		{
			name:   "colon in value",
			values: []string{"X-Url: http://example.com:8080"},
			want:   http.Header{"X-Url": {"http://example.com:8080"}},
		},
		{name: "blank lines skipped", values: []string{"", "  "}, want: http.Header{}},
		{name: "no colon", values: []string{"Bearer x"}, wantErr: true},
		{name: "empty key", values: []string{" : x"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHeaders(tt.values)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJSONToYAML(t *testing.T) {
	out, err := jsonToYAML([]byte(`{"queryType": {"name": "Query"}, "types": [{"kind": "ENUM", "enumValues": []}], "description": null}`))
	require.NoError(t, err)

	yamlText := string(out)
	assert.Contains(t, yamlText, "queryType:\n  name: Query\n")
	assert.Contains(t, yamlText, "kind: ENUM")
	assert.Contains(t, yamlText, "enumValues: []")
	assert.Contains(t, yamlText, "description: null")
	assert.NotContains(t, yamlText, "{")

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, map[string]any{"name": "Query"}, decoded["queryType"])
}

func TestFormatSplitError(t *testing.T) {
	_, err := directive.Split("ok @a(1)\nsee @link(docs")
	require.Error(t, err)

	out := formatSplitError(err, "stdin", "ok @a(1)\nsee @link(docs")
	assert.Contains(t, out, "✗ Description has an unbalanced annotation:")
	assert.Contains(t, out, "stdin:2:10")
	assert.Contains(t, out, "see @link(docs")
	assert.Contains(t, out, "close it with `)`")

	out = formatSplitError(assert.AnError, "stdin", "")
	assert.Equal(t, "✗ "+assert.AnError.Error()+"\n", out)
}
