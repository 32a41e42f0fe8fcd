package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/spf13/cobra"
)

type directivesOptions struct {
	names []string
	sites []string
}

var validSites = []string{
	string(inspector.SiteType),
	string(inspector.SiteField),
	string(inspector.SiteArgument),
	string(inspector.SiteInputField),
	string(inspector.SiteEnumValue),
}

func formatDirectiveUse(d DirectiveInfo) string {
	if d.Content != nil {
		return fmt.Sprintf("@%s(%s)", d.Name, *d.Content)
	}
	return "@" + d.Name
}

func formatDirectiveText(d DirectiveInfo) string {
	return fmt.Sprintf("%s: %s", d.Location, formatDirectiveUse(d))
}

func formatDirectivesPretty(directives []DirectiveInfo) string {
	t := makeTable()

	for _, d := range directives {
		t.Row(d.Location, d.Site, formatDirectiveUse(d))
	}
	t.Headers("location", "site", "directive")

	return t.String()
}

func NewDirectivesCmd() *cobra.Command {
	opts := &directivesOptions{}

	cmd := &cobra.Command{
		Use:   "directives",
		Short: "Lists the annotations written in schema descriptions",
		Long: `Lists every "@name" or "@name(content)" annotation found in a description,
with the location of the described element:

  Type               a type description
  Type.field         a field or input field
  Type.field(arg)    a field argument
  Enum.VALUE         an enum value

Output formats:
  text    "Query.user: @auth(requires: USER)" (default when piping)
  json    [{"location": "Query.user", "site": "field", "name": "auth", "content": "requires: USER"}, ...]
  yaml    the same records as yaml
  pretty  Formatted table with columns (default in terminal)`,
		Example: `  # List every annotation
  gqlinspect directives

  # Find where @auth or @pii is used
  gqlinspect directives --name auth --name pii

  # Only annotations on arguments
  gqlinspect directives --site argument`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDirectives(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.names, "name", nil, "Filter to the given directive name (OR logic when specified multiple times)")
	cmd.Flags().StringArrayVar(&opts.sites, "site", nil, "Filter to a site: type, field, argument, input, value (OR logic when specified multiple times)")

	return cmd
}

func runDirectives(cmd *cobra.Command, opts *directivesOptions) error {
	for _, site := range opts.sites {
		if !slices.Contains(validSites, site) {
			return fmt.Errorf("invalid site '%s' (valid: %s)", site, strings.Join(validSites, ", "))
		}
	}
	names := make([]string, 0, len(opts.names))
	for _, name := range opts.names {
		names = append(names, strings.TrimPrefix(name, "@"))
	}

	result, err := loadCliForSchema(cmd)
	if err != nil {
		return err
	}

	var directives []DirectiveInfo
	for _, site := range inspector.Sites(result.Types) {
		if len(opts.sites) > 0 && !slices.Contains(opts.sites, string(site.Kind)) {
			continue
		}
		for _, d := range site.Directives {
			if len(names) > 0 && !slices.Contains(names, d.Name) {
				continue
			}
			directives = append(directives, DirectiveInfo{
				Location: site.Path,
				Site:     string(site.Kind),
				Name:     d.Name,
				Content:  d.Content,
			})
		}
	}

	if len(directives) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No directives found that match the filters.")
	}

	renderer := render.Renderer[DirectiveInfo]{
		Data:         directives,
		TextFormat:   formatDirectiveText,
		PrettyFormat: formatDirectivesPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
