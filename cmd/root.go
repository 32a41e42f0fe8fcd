/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"bytes"
	"os"

	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	settings     config
	outputFormat render.Format
	logger       = logrus.New()
)

func formatFlag() string {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return string(render.FormatPretty)
	}
	return string(render.FormatText)
}

// NewRootCmd creates and returns the root command with all subcommands attached.
// This function creates a fresh command tree, ensuring no state leaks between invocations.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gqlinspect",
		Short: "Inspect a live GraphQL schema and the annotations hidden in its descriptions",
		Long: `gqlinspect runs an introspection query against a GraphQL endpoint and reshapes
the result into something easier to work with: wrapped type references are
flattened to "[User!]!" form, and "@name(args)" annotations written inside
descriptions are pulled out as directives.

A schema can come from a live endpoint (-e) or from a saved introspection
result (-i). Both can also be set through GQLINSPECT_* environment variables
or a config file given with --config.

Output can be formatted as pretty tables (default in terminals), plain text
(default when piping), JSON or YAML for integration with other tools.`,
		Example: `  # List all types of a live API
  gqlinspect types -e https://api.example.com/graphql

  # Same, from a saved introspection result
  gqlinspect types -i introspection.json

  # Find every field annotated with @auth
  gqlinspect fields --has-directive auth -e https://api.example.com/graphql

  # List every annotation in the schema
  gqlinspect directives -i introspection.json

  # Try the annotation extractor on a description
  gqlinspect split "Look up a user. @auth(requires: USER)"

  # Pipe JSON output to other tools
  gqlinspect inspect User -f json | jq '.fields[].name'`,
		SilenceUsage: true,
	}

	v := newViper()
	flags := cmd.PersistentFlags()
	flags.StringP("endpoint", "e", "", "GraphQL endpoint to introspect")
	flags.StringP("introspection", "i", "", "Saved introspection result to read instead of an endpoint")
	flags.StringArrayP("header", "H", nil, "Extra request header as 'Key: Value' (can be specified multiple times)")
	flags.Duration("timeout", defaultTimeout, "Request timeout")
	flags.Int("retries", 0, "Retries for failed requests (network errors, 5xx and 429)")
	flags.StringP("format", "f", formatFlag(), "Output format: json, yaml, text, pretty (default: pretty if interactive, text otherwise)")
	flags.BoolP("verbose", "v", false, "Log requests and retries to stderr")
	flags.String("config", "", "Config file (yaml, json, toml, ...)")
	_ = v.BindPFlags(flags)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = loadConfig(v, cmd.Flags())
		if err != nil {
			return err
		}

		logger = newLogger(cmd, settings.verbose)

		outputFormat, err = render.ParseFormat(settings.format)
		return err
	}

	// Add all subcommands
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewTypesCmd())
	cmd.AddCommand(NewFieldsCmd())
	cmd.AddCommand(NewArgsCmd())
	cmd.AddCommand(NewValuesCmd())
	cmd.AddCommand(NewReferencesCmd())
	cmd.AddCommand(NewDirectivesCmd())
	cmd.AddCommand(NewInspectCmd())
	cmd.AddCommand(NewSDLCmd())
	cmd.AddCommand(NewSplitCmd())
	cmd.AddCommand(NewValidateCmd())

	return cmd
}

func newLogger(cmd *cobra.Command, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(cmd.ErrOrStderr())
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the CLI with the given arguments and returns stdout, stderr, and any error.
// This is useful for testing.
func ExecuteWithArgs(args []string) (stdout string, stderr string, err error) {
	return ExecuteWithArgsAndStdin(args, nil)
}

// ExecuteWithArgsAndStdin runs the CLI with the given arguments and stdin, returns stdout, stderr, and any error.
// This is useful for testing commands that read from stdin.
func ExecuteWithArgsAndStdin(args []string, stdin *bytes.Buffer) (stdout string, stderr string, err error) {
	cmd := NewRootCmd()

	stdoutBuf := new(bytes.Buffer)
	stderrBuf := new(bytes.Buffer)

	cmd.SetOut(stdoutBuf)
	cmd.SetErr(stderrBuf)
	cmd.SetArgs(args)
	if stdin != nil {
		cmd.SetIn(stdin)
	}

	err = cmd.Execute()

	return stdoutBuf.String(), stderrBuf.String(), err
}
