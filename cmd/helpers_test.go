package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samwightt/gqlinspect/cmd"
	"github.com/samwightt/gqlinspect/internal/testfixture"
	"github.com/stretchr/testify/require"
)

// writeIntrospection saves the shared introspection fixture and returns its path.
func writeIntrospection(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "introspection.json")
	err := os.WriteFile(path, testfixture.Introspection, 0644)
	require.NoError(t, err)
	return path
}

// runWithFixture runs the CLI against the introspection fixture.
func runWithFixture(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	args = append(args, "-i", writeIntrospection(t))
	return cmd.ExecuteWithArgs(args)
}

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}
