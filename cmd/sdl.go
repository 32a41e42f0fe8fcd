package cmd

import (
	"fmt"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/sdl"
	"github.com/spf13/cobra"
)

func NewSDLCmd() *cobra.Command {
	opts := &sdl.Options{}

	cmd := &cobra.Command{
		Use:   "sdl",
		Short: "Prints the schema as SDL",
		Long: `Prints the introspected schema in GraphQL schema definition language.

Annotations found in descriptions are written as directives when their
content is a valid GraphQL argument list ("@auth(requires: USER)"); anything
else stays in the description. Deprecations are written as @deprecated.

The output format flag does not apply; the output is always SDL.`,
		Example: `  # Save the schema of a live API
  gqlinspect sdl -e https://api.example.com/graphql > schema.graphql

  # Keep annotations inside descriptions
  gqlinspect sdl --keep-annotations`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := loadCliForSchema(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(sdl.Render(result, *opts), "\n"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.KeepAnnotations, "keep-annotations", false, "Leave annotations in descriptions instead of writing directives")
	cmd.Flags().BoolVar(&opts.IncludeBuiltins, "include-builtins", false, "Include built-in scalars and directives")

	return cmd
}
