/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/spf13/cobra"
)

type valuesOptions struct {
	deprecated     bool
	hasDescription bool
	hasDirective   []string
}

func formatValueName(v ValueInfo) string {
	if v.EnumName != "" {
		return v.EnumName + "." + v.Name
	}
	return v.Name
}

func formatValueAnnotations(v ValueInfo) string {
	var parts []string
	for _, d := range v.Directives {
		parts = append(parts, "@"+d.Name)
	}
	if v.Deprecated {
		parts = append(parts, "@deprecated")
	}
	return strings.Join(parts, " ")
}

func formatValueText(v ValueInfo) string {
	out := formatValueName(v)
	if ann := formatValueAnnotations(v); ann != "" {
		out += " " + ann
	}
	if v.Description != "" {
		out += " # " + singleLine(v.Description)
	}
	return out
}

func formatValuesPretty(values []ValueInfo) string {
	t := makeTable()

	for _, v := range values {
		t.Row(formatValueName(v), formatValueAnnotations(v), singleLine(v.Description))
	}
	t.Headers("value", "directives", "description")

	return t.String()
}

func valueToInfo(v inspector.EnumValue) ValueInfo {
	return ValueInfo{
		Name:        v.Name,
		Description: describe(v.Annotations),
		Directives:  v.Directives,
		Deprecated:  v.IsDeprecated,
	}
}

func NewValuesCmd() *cobra.Command {
	opts := &valuesOptions{}

	cmd := &cobra.Command{
		Use:               "values [enum]",
		Short:             "Lists values of an enum type",
		ValidArgsFunction: completeTypeNames(introspection.TypeKindEnum),
		Args:              cobra.MaximumNArgs(1),
		Long: `Lists values of an enum type in the schema.

If an enum is specified, only values for that enum are shown.
If no enum is specified, all enum values for all enums are shown.`,
		Example: `  # See the values of an enum
  gqlinspect values Status

  # Find every deprecated enum value
  gqlinspect values --deprecated`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.deprecated, "deprecated", false, "Filter to only show deprecated values")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show values that have a description")
	cmd.Flags().StringArrayVar(&opts.hasDirective, "has-directive", nil, "Filter to values annotated with the given directive (AND logic when specified multiple times)")

	return cmd
}

func runValues(cmd *cobra.Command, args []string, opts *valuesOptions) error {
	result, err := loadCliForSchema(cmd)
	if err != nil {
		return err
	}

	var enums []*inspector.EnumType
	if len(args) == 0 {
		for _, t := range result.Types {
			if enum, ok := t.(*inspector.EnumType); ok {
				enums = append(enums, enum)
			}
		}
	} else {
		enumName := args[0]
		t, ok := result.Type(enumName)
		if !ok {
			var enumNames []string
			for _, t := range result.Types {
				if t.TypeKind() == introspection.TypeKindEnum {
					enumNames = append(enumNames, t.TypeName())
				}
			}
			if suggestion := findClosest(enumName, enumNames); suggestion != "" {
				return fmt.Errorf("enum '%s' does not exist in schema, did you mean '%s'?", enumName, suggestion)
			}
			return fmt.Errorf("enum '%s' does not exist in schema", enumName)
		}

		enum, ok := t.(*inspector.EnumType)
		if !ok {
			return fmt.Errorf("'%s' is not an enum (it's a %s)", enumName, kindToString(t.TypeKind()))
		}
		enums = append(enums, enum)
	}

	var values []ValueInfo
	for _, enum := range enums {
		for _, value := range enum.EnumValues {
			if opts.deprecated && !value.IsDeprecated {
				continue
			}
			if opts.hasDescription && value.Description == nil {
				continue
			}
			if !matchesHasDirectiveFilter(value.Annotations, opts.hasDirective) {
				continue
			}
			info := valueToInfo(value)
			if len(args) == 0 {
				info.EnumName = enum.Name
			}
			values = append(values, info)
		}
	}

	if len(values) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No values found that match the filters.")
	}

	renderer := render.Renderer[ValueInfo]{
		Data:         values,
		TextFormat:   formatValueText,
		PrettyFormat: formatValuesPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
