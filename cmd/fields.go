/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/samwightt/gqlinspect/pkg/typeref"
	"github.com/spf13/cobra"
)

type fieldsOptions struct {
	deprecated     bool
	hasArg         []string
	hasDirective   []string
	returns        string
	required       bool
	nullable       bool
	name           string
	nameRegex      string
	hasDescription bool
}

func fieldToInfo(field inspector.Field) FieldInfo {
	var args []ArgumentInfo
	for _, arg := range field.Args {
		args = append(args, ArgumentInfo{
			Name: arg.Name,
			Type: arg.Type.String(),
		})
	}

	return FieldInfo{
		Name:        field.Name,
		Arguments:   args,
		Type:        field.Type.String(),
		Description: describe(field.Annotations),
		Directives:  field.Directives,
		Deprecated:  field.IsDeprecated,
	}
}

func inputFieldToInfo(field inspector.InputValue) FieldInfo {
	var defaultValue string
	if field.DefaultValue != nil {
		defaultValue = *field.DefaultValue
	}

	return FieldInfo{
		Name:         field.Name,
		Type:         field.Type.String(),
		DefaultValue: defaultValue,
		Description:  describe(field.Annotations),
		Directives:   field.Directives,
		Deprecated:   field.IsDeprecated,
	}
}

func formatFieldName(field FieldInfo, format render.Format) string {
	name := field.Name
	if field.TypeName != "" {
		name = field.TypeName + "." + field.Name
	}

	if len(field.Arguments) == 0 {
		return name
	}

	var args []string
	for _, arg := range field.Arguments {
		args = append(args, fmt.Sprintf("%s: %s", arg.Name, arg.Type))
	}

	if format == render.FormatPretty {
		return fmt.Sprintf("%s(\n\t\t%s\n\t)", name, strings.Join(args, ",\n\t\t"))
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

func formatFieldType(field FieldInfo) string {
	typeStr := field.Type
	if field.DefaultValue != "" {
		typeStr += " = " + field.DefaultValue
	}
	for _, d := range field.Directives {
		typeStr += " @" + d.Name
	}
	if field.Deprecated {
		typeStr += " @deprecated"
	}
	return typeStr
}

func formatFieldText(field FieldInfo) string {
	name := formatFieldName(field, render.FormatText)

	desc := ""
	if field.Description != "" {
		desc = " # " + singleLine(field.Description)
	}
	return fmt.Sprintf("%s: %s%s", name, formatFieldType(field), desc)
}

func formatFieldsPretty(fields []FieldInfo) string {
	t := makeTable()

	for _, field := range fields {
		t.Row(formatFieldName(field, render.FormatPretty), formatFieldType(field), singleLine(field.Description))
	}
	t.Headers("field", "type", "description")

	return t.String()
}

func matchesHasArgFilter(field inspector.Field, hasArgFilter []string) bool {
	for _, argName := range hasArgFilter {
		if !slices.ContainsFunc(field.Args, func(arg inspector.InputValue) bool { return arg.Name == argName }) {
			return false
		}
	}
	return true
}

func NewFieldsCmd() *cobra.Command {
	opts := &fieldsOptions{}

	cmd := &cobra.Command{
		Use:               "fields [type]",
		Short:             "Lists fields on a type or across all types",
		ValidArgsFunction: completeTypeNames(introspection.TypeKindObject, introspection.TypeKindInterface, introspection.TypeKindInputObject),
		Args:              cobra.MaximumNArgs(1),
		Long: `Lists fields on a type or across all types with optional filtering.

If a type is specified, shows fields for that type only (input object types
show their input fields). If no type is specified, shows all fields of
objects, interfaces and input objects prefixed with their type (User.id,
Post.title, etc).

Types are shown flattened ("[User!]!"). Annotations pulled out of the
field description are listed after the type.

Output formats:
  text    "name: String! @pii # Description", "id: ID!", etc. (default when piping)
  json    [{"name": "id", "type": "ID!", "directives": [...]}, ...]
  yaml    the same records as yaml
  pretty  Formatted table with columns (default in terminal)

Multiple filters can be combined and are applied with AND logic.`,
		Example: `  # See all fields on a type
  gqlinspect fields User

  # Find deprecated fields
  gqlinspect fields --deprecated

  # Find fields guarded by @auth
  gqlinspect fields --has-directive auth

  # Find fields with pagination arguments that return a specific type
  gqlinspect fields --has-arg first --has-arg after --returns User

  # Find fields ending in "Id"
  gqlinspect fields --name "*Id"

  # Find fields matching a regex pattern
  gqlinspect fields --name-regex "^(get|fetch)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.deprecated, "deprecated", false, "Filter to only show deprecated fields")
	cmd.Flags().StringArrayVar(&opts.hasArg, "has-arg", nil, "Filter to fields that have the given argument (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&opts.hasDirective, "has-directive", nil, "Filter to fields annotated with the given directive (AND logic when specified multiple times)")
	cmd.Flags().StringVar(&opts.returns, "returns", "", "Filter to fields that return the given type (a name, or a full reference like [User!]!)")
	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show required (non-null) fields")
	cmd.Flags().BoolVar(&opts.nullable, "nullable", false, "Filter to only show nullable fields")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter fields by name using a glob pattern (e.g., *Id, get*)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter fields by name using a regex pattern")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show fields that have a description")

	return cmd
}

func runFields(cmd *cobra.Command, args []string, opts *fieldsOptions) error {
	if opts.required && opts.nullable {
		return fmt.Errorf("--required and --nullable cannot be used together")
	}

	returns, err := parseTypeFilter("returns", opts.returns)
	if err != nil {
		return err
	}

	var nameRegex *regexp.Regexp
	if opts.nameRegex != "" {
		nameRegex, err = regexp.Compile(opts.nameRegex)
		if err != nil {
			return fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
		}
	}

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
		if _, ok := t.(*inspector.InputObjectType); !ok && inspector.FieldsOf(t) == nil {
			return fmt.Errorf("'%s' has no fields (it's a %s)", args[0], kindToString(t.TypeKind()))
		}
		types = []inspector.ParsedType{t}
	}

	matches := func(info FieldInfo, ref typeref.Ref, description bool) bool {
		if opts.deprecated && !info.Deprecated {
			return false
		}
		if !matchesTypeFilter(ref, returns) {
			return false
		}
		if (opts.required && !ref.IsNonNull()) || (opts.nullable && ref.IsNonNull()) {
			return false
		}
		if opts.hasDescription && !description {
			return false
		}
		if opts.name != "" {
			if matched, _ := filepath.Match(opts.name, info.Name); !matched {
				return false
			}
		}
		return nameRegex == nil || nameRegex.MatchString(info.Name)
	}

	var fields []FieldInfo
	for _, t := range types {
		for _, field := range inspector.FieldsOf(t) {
			info := fieldToInfo(field)
			if !matches(info, field.Type, field.Description != nil) || !matchesHasArgFilter(field, opts.hasArg) || !matchesHasDirectiveFilter(field.Annotations, opts.hasDirective) {
				continue
			}
			if len(args) == 0 {
				info.TypeName = t.TypeName()
			}
			fields = append(fields, info)
		}

		input, ok := t.(*inspector.InputObjectType)
		if !ok || len(opts.hasArg) > 0 {
			continue
		}
		for _, field := range input.InputFields {
			info := inputFieldToInfo(field)
			if !matches(info, field.Type, field.Description != nil) || !matchesHasDirectiveFilter(field.Annotations, opts.hasDirective) {
				continue
			}
			if len(args) == 0 {
				info.TypeName = t.TypeName()
			}
			fields = append(fields, info)
		}
	}

	if len(fields) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No fields found that match the filters.")
	}

	renderer := render.Renderer[FieldInfo]{
		Data:         fields,
		TextFormat:   formatFieldText,
		PrettyFormat: formatFieldsPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
