package cmd

import (
	"fmt"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/samwightt/gqlinspect/pkg/sdl"
	"github.com/spf13/cobra"
)

func formatParsedTypeText(t inspector.ParsedType) string {
	return strings.TrimSpace(sdl.Render(&inspector.Result{Types: []inspector.ParsedType{t}}, sdl.Options{IncludeBuiltins: true}))
}

func formatParsedTypesPretty(types []inspector.ParsedType) string {
	var parts []string
	for _, t := range types {
		parts = append(parts, formatParsedTypeText(t))
	}
	return strings.Join(parts, "\n\n")
}

func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [type]",
		Short: "Prints the parsed form of one or all types",
		Long: `Prints types after reshaping: type references flattened to
{type, front, back} and descriptions split into text and directives.

With json or yaml the parsed records are printed as is; one record when a
type is given, a list otherwise. With text or pretty each type is shown as
SDL with its annotations rendered as directives.`,
		Example: `  # The parsed record of one type
  gqlinspect inspect User -f json

  # Every parsed type as yaml
  gqlinspect inspect -f yaml`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeTypeNames(),
		RunE:              runInspect,
	}

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	result, err := loadCliForSchema(cmd)
	if err != nil {
		return err
	}

	types := result.Types
	if len(args) == 1 {
		t, err := validateTypeExists(result, args[0], "type")
		if err != nil {
			return err
		}
		types = []inspector.ParsedType{t}
	}

	renderer := render.Renderer[inspector.ParsedType]{
		Data:         types,
		TextFormat:   formatParsedTypeText,
		PrettyFormat: formatParsedTypesPretty,
		Single:       len(args) == 1,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
