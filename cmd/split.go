/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/diagnostic"
	"github.com/samwightt/gqlinspect/pkg/directive"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/spf13/cobra"
)

// ErrSplitFailed is returned when a description has an unbalanced
// annotation. The diagnostic has already been printed.
var ErrSplitFailed = errors.New("split failed")

func formatSplitText(r directive.SplitResult) string {
	lines := []string{r.Description}
	for _, d := range r.Directives {
		lines = append(lines, "  "+d.String())
	}
	return strings.Join(lines, "\n")
}

func formatSplitPretty(results []directive.SplitResult) string {
	t := makeTable()

	for _, r := range results {
		for _, d := range r.Directives {
			content := ""
			if d.Content != nil {
				content = *d.Content
			}
			t.Row(d.Name, content)
		}
	}
	t.Headers("directive", "content")

	var description string
	if len(results) == 1 {
		description = results[0].Description
	}
	return fmt.Sprintf("description: %q\n%s", description, t.String())
}

// formatSplitError renders a caret under the unmatched parenthesis.
func formatSplitError(err error, sourceName string, source string) string {
	var mismatch *directive.MismatchError
	if !errors.As(err, &mismatch) {
		return fmt.Sprintf("✗ %v\n", err)
	}

	output := "✗ Description has an unbalanced annotation:\n"
	output += diagnostic.RenderOffset(sourceName, source, mismatch.Offset, 1, err.Error()) + "\n"
	output += "  = help: close it with `" + mismatch.Close + "`, or put a space between the name and `" + mismatch.Open + "` to keep it as text\n"
	return output
}

func NewSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split [text]",
		Short: "Splits a description into text and annotations",
		Long: `Runs the annotation extractor on a single description and shows what
would be pulled out of it. The text can be given as an argument or piped via
stdin. No schema is needed.

An annotation is "@name" or "@name(content)" where "(" directly follows the
name; parentheses inside the content may nest. Whitespace after a removed
annotation is kept.

Exit codes:
  0 - The description was split
  1 - An annotation has an unbalanced "("`,
		Example: `  # Split a description
  gqlinspect split "Look up a user. @auth(requires: USER) @cache(maxAge: 60)"

  # From stdin, as JSON
  echo "All users @paginated" | gqlinspect split -f json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSplitCmd,
	}

	return cmd
}

func runSplitCmd(cmd *cobra.Command, args []string) error {
	var source, sourceName string
	if len(args) == 1 {
		source, sourceName = args[0], "argument"
	} else {
		bytes, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return reportError(cmd, fmt.Errorf("failed to read from stdin: %w", err))
		}
		source, sourceName = strings.TrimSuffix(string(bytes), "\n"), "stdin"
	}

	result, err := directive.Split(source)
	if err != nil {
		logger.WithError(err).Debug("split failed")
		fmt.Fprint(cmd.OutOrStdout(), formatSplitError(err, sourceName, source))
		return ErrSplitFailed
	}

	renderer := render.Renderer[directive.SplitResult]{
		Data:         []directive.SplitResult{result},
		TextFormat:   formatSplitText,
		PrettyFormat: formatSplitPretty,
		Single:       true,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return reportError(cmd, fmt.Errorf("error rendering output: %w", err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
