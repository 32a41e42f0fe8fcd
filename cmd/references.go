/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/spf13/cobra"
)

type referencesOptions struct {
	kind   string
	inType string
}

func formatReferenceText(ref ReferenceInfo) string {
	desc := ""
	if ref.Description != "" {
		desc = " # " + singleLine(ref.Description)
	}
	return fmt.Sprintf("%s: %s%s", ref.Location, ref.Type, desc)
}

func formatReferencesPretty(refs []ReferenceInfo) string {
	t := makeTable()

	for _, ref := range refs {
		t.Row(ref.Location, ref.Kind, ref.Type, singleLine(ref.Description))
	}
	t.Headers("location", "kind", "type", "description")

	return t.String()
}

func NewReferencesCmd() *cobra.Command {
	opts := &referencesOptions{}

	cmd := &cobra.Command{
		Use:   "references <type>",
		Short: "Shows where a type is used in the schema",
		Long: `Shows where a given type is used in the schema: which fields return it,
which arguments take it and which input fields hold it.

This is useful for understanding the impact of changes to a type, finding
all entry points to a type, or exploring the schema structure.

Output formats:
  text    "Query.user: User", "Query.user(id): ID!", etc. (default when piping)
  json    [{"location": "Query.user", "kind": "field", "type": "User"}, ...]
  yaml    the same records as yaml
  pretty  Formatted table with columns (default in terminal)`,
		Example: `  # Find all references to the User type
  gqlinspect references User

  # Find only fields that return User
  gqlinspect references User --kind field

  # Find references to Status only within the UserFilter input
  gqlinspect references Status --in UserFilter

  # JSON output for scripting
  gqlinspect references User -f json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReferences(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "", "Filter by reference kind: 'field', 'argument' or 'input'")
	cmd.Flags().StringVar(&opts.inType, "in", "", "Only show references from the specified type")

	return cmd
}

func runReferences(cmd *cobra.Command, args []string, opts *referencesOptions) error {
	targetType := args[0]

	// Validate --kind filter
	switch opts.kind {
	case "", "field", "argument", "input":
	default:
		return fmt.Errorf("--kind must be 'field', 'argument' or 'input', got '%s'", opts.kind)
	}

	result, err := loadCliForSchema(cmd)
	if err != nil {
		return err
	}

	if _, err := validateTypeExists(result, targetType, "type"); err != nil {
		return err
	}
	if opts.inType != "" {
		if _, err := validateTypeExists(result, opts.inType, "type"); err != nil {
			return err
		}
	}

	wants := func(kind string) bool {
		return opts.kind == "" || opts.kind == kind
	}

	var refs []ReferenceInfo
	for _, t := range result.Types {
		if opts.inType != "" && t.TypeName() != opts.inType {
			continue
		}

		for _, field := range inspector.FieldsOf(t) {
			location := t.TypeName() + "." + field.Name
			if field.Type.Type == targetType && wants("field") {
				refs = append(refs, ReferenceInfo{
					Location:    location,
					Kind:        "field",
					Type:        field.Type.String(),
					Description: describe(field.Annotations),
				})
			}

			for _, arg := range field.Args {
				if arg.Type.Type == targetType && wants("argument") {
					refs = append(refs, ReferenceInfo{
						Location:    location + "(" + arg.Name + ")",
						Kind:        "argument",
						Type:        arg.Type.String(),
						Description: describe(arg.Annotations),
					})
				}
			}
		}

		if input, ok := t.(*inspector.InputObjectType); ok {
			for _, field := range input.InputFields {
				if field.Type.Type == targetType && wants("input") {
					refs = append(refs, ReferenceInfo{
						Location:    input.Name + "." + field.Name,
						Kind:        "input",
						Type:        field.Type.String(),
						Description: describe(field.Annotations),
					})
				}
			}
		}
	}

	if len(refs) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No references found.")
	}

	renderer := render.Renderer[ReferenceInfo]{
		Data:         refs,
		TextFormat:   formatReferenceText,
		PrettyFormat: formatReferencesPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
