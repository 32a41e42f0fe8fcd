package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type fetchOptions struct {
	printQuery bool
	query      introspection.QueryOptions
}

func NewFetchCmd() *cobra.Command {
	opts := &fetchOptions{query: introspection.DefaultQueryOptions}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Prints the raw introspection result",
		Long: `Runs the introspection query and prints the raw __schema object, before
any reshaping. The output is JSON, or YAML with -f yaml.

The optional parts of the introspection query are off by default because
older servers reject fields they do not know. Turn them on with the flags
below when the server supports them.`,
		Example: `  # Save an introspection result for later use with -i
  gqlinspect fetch -e https://api.example.com/graphql > introspection.json

  # Ask for @specifiedBy URLs and repeatable directives
  gqlinspect fetch --specified-by-url --repeatable

  # Print the query without sending it
  gqlinspect fetch --print-query`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.printQuery, "print-query", false, "Print the introspection query instead of sending it")
	cmd.Flags().BoolVar(&opts.query.Descriptions, "descriptions", true, "Ask for descriptions")
	cmd.Flags().BoolVar(&opts.query.SpecifiedByURL, "specified-by-url", false, "Ask for scalar specifiedByURL")
	cmd.Flags().BoolVar(&opts.query.DirectiveIsRepeatable, "repeatable", false, "Ask for directive isRepeatable")
	cmd.Flags().BoolVar(&opts.query.SchemaDescription, "schema-description", false, "Ask for the schema description")
	cmd.Flags().BoolVar(&opts.query.InputValueDeprecation, "input-deprecation", false, "Ask for deprecated arguments and input fields")

	return cmd
}

func runFetch(cmd *cobra.Command, opts *fetchOptions) error {
	if opts.printQuery {
		fmt.Fprintln(cmd.OutOrStdout(), introspection.QueryWithOptions(opts.query))
		return nil
	}

	schema, err := loadRawSchema(cmd, &opts.query)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err == nil && outputFormat == render.FormatYAML {
		out, err = jsonToYAML(out)
	}
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSuffix(string(out), "\n"))
	return nil
}

// jsonToYAML re-encodes JSON as block style YAML, keeping key order and the
// JSON field names.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clearStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		clearStyle(child)
	}
}
