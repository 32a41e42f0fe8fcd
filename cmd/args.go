/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/samwightt/gqlinspect/pkg/typeref"
	"github.com/spf13/cobra"
)

type argsOptions struct {
	deprecated     bool
	hasDirective   []string
	typeFilter     *typeref.Ref
	required       bool
	nullable       bool
	name           string
	nameRegex      *regexp.Regexp
	hasDescription bool
}

func matchesArgFilters(arg inspector.InputValue, opts *argsOptions) bool {
	if opts.deprecated && !arg.IsDeprecated {
		return false
	}
	if !matchesTypeFilter(arg.Type, opts.typeFilter) {
		return false
	}
	if opts.required && !arg.Type.IsNonNull() {
		return false
	}
	if opts.nullable && arg.Type.IsNonNull() {
		return false
	}
	if opts.hasDescription && arg.Description == nil {
		return false
	}
	if !matchesHasDirectiveFilter(arg.Annotations, opts.hasDirective) {
		return false
	}
	if opts.name != "" {
		if matched, _ := filepath.Match(opts.name, arg.Name); !matched {
			return false
		}
	}
	return opts.nameRegex == nil || opts.nameRegex.MatchString(arg.Name)
}

func formatArgName(arg ArgInfo) string {
	if arg.TypeName != "" && arg.FieldName != "" {
		return fmt.Sprintf("%s.%s(%s)", arg.TypeName, arg.FieldName, arg.Name)
	}
	return arg.Name
}

func formatArgType(arg ArgInfo) string {
	typeStr := arg.Type
	if arg.DefaultValue != "" {
		typeStr += " = " + arg.DefaultValue
	}
	for _, d := range arg.Directives {
		typeStr += " @" + d.Name
	}
	return typeStr
}

func formatArgText(arg ArgInfo) string {
	desc := ""
	if arg.Description != "" {
		desc = " # " + singleLine(arg.Description)
	}
	return fmt.Sprintf("%s: %s%s", formatArgName(arg), formatArgType(arg), desc)
}

func formatArgsPretty(args []ArgInfo) string {
	t := makeTable()

	for _, arg := range args {
		t.Row(formatArgName(arg), formatArgType(arg), singleLine(arg.Description))
	}
	t.Headers("argument", "type", "description")

	return t.String()
}

func argToInfo(arg inspector.InputValue) ArgInfo {
	var defaultValue string
	if arg.DefaultValue != nil {
		defaultValue = *arg.DefaultValue
	}

	return ArgInfo{
		Name:         arg.Name,
		Type:         arg.Type.String(),
		DefaultValue: defaultValue,
		Description:  describe(arg.Annotations),
		Directives:   arg.Directives,
	}
}

func NewArgsCmd() *cobra.Command {
	opts := &argsOptions{}
	var nameRegex, typeFilter string

	cmd := &cobra.Command{
		Use:   "args [field]",
		Short: "Lists arguments on fields",
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}

			result, err := loadForCompletion(cmd)
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}

			outputNames := []string{}
			for _, t := range result.Types {
				for _, field := range inspector.FieldsOf(t) {
					if len(field.Args) == 0 {
						continue
					}
					fieldName := t.TypeName() + "." + field.Name
					if strings.Contains(strings.ToLower(fieldName), strings.ToLower(toComplete)) {
						outputNames = append(outputNames, fieldName)
					}
				}
			}

			sort.Strings(outputNames)

			return outputNames, cobra.ShellCompDirectiveNoFileComp
		},
		Args: cobra.MaximumNArgs(1),
		Long: `Lists arguments on fields in the schema.

If a field is specified (as Type.field), only arguments for that field are shown.
If no field is specified, all arguments for all fields are shown.

Annotations pulled out of argument descriptions are listed after the type.`,
		Example: `  # See the arguments of a resolver
  gqlinspect args Query.users

  # Find every required ID argument
  gqlinspect args --type ID --required

  # Find arguments annotated with @format
  gqlinspect args --has-directive format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if opts.typeFilter, err = parseTypeFilter("type", typeFilter); err != nil {
				return err
			}
			if nameRegex != "" {
				opts.nameRegex, err = regexp.Compile(nameRegex)
				if err != nil {
					return fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
				}
			}
			return runArgs(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.deprecated, "deprecated", false, "Filter to only show deprecated arguments")
	cmd.Flags().StringArrayVar(&opts.hasDirective, "has-directive", nil, "Filter to arguments annotated with the given directive (AND logic when specified multiple times)")
	cmd.Flags().StringVar(&typeFilter, "type", "", "Filter to arguments of the given type (a name, or a full reference like ID!)")
	cmd.Flags().BoolVar(&opts.required, "required", false, "Filter to only show required (non-null) arguments")
	cmd.Flags().BoolVar(&opts.nullable, "nullable", false, "Filter to only show nullable arguments")
	cmd.Flags().StringVar(&opts.name, "name", "", "Filter arguments by name using a glob pattern (e.g., *Id, first*)")
	cmd.Flags().StringVar(&nameRegex, "name-regex", "", "Filter arguments by name using a regex pattern")
	cmd.Flags().BoolVar(&opts.hasDescription, "has-description", false, "Filter to only show arguments that have a description")

	return cmd
}

func runArgs(cmd *cobra.Command, args []string, opts *argsOptions) error {
	if opts.required && opts.nullable {
		return fmt.Errorf("--required and --nullable cannot be used together")
	}

	result, err := loadCliForSchema(cmd)
	if err != nil {
		return err
	}

	var argInfos []ArgInfo

	if len(args) == 0 {
		// List all arguments from all fields
		for _, t := range result.Types {
			for _, field := range inspector.FieldsOf(t) {
				for _, arg := range field.Args {
					if !matchesArgFilters(arg, opts) {
						continue
					}
					info := argToInfo(arg)
					info.TypeName = t.TypeName()
					info.FieldName = field.Name
					argInfos = append(argInfos, info)
				}
			}
		}
	} else {
		field, err := lookupField(result, args[0])
		if err != nil {
			return err
		}
		for _, arg := range field.Args {
			if matchesArgFilters(arg, opts) {
				argInfos = append(argInfos, argToInfo(arg))
			}
		}
	}

	if len(argInfos) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No arguments found that match the filters.")
	}

	renderer := render.Renderer[ArgInfo]{
		Data:         argInfos,
		TextFormat:   formatArgText,
		PrettyFormat: formatArgsPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return fmt.Errorf("error rendering output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// lookupField resolves a "Type.field" path.
func lookupField(result *inspector.Result, path string) (inspector.Field, error) {
	typeName, fieldName, ok := strings.Cut(path, ".")
	if !ok || strings.Contains(fieldName, ".") {
		return inspector.Field{}, fmt.Errorf("field must be specified as Type.field (e.g., Query.user)")
	}

	t, err := validateTypeExists(result, typeName, "type")
	if err != nil {
		return inspector.Field{}, err
	}

	fields := inspector.FieldsOf(t)
	var names []string
	for _, f := range fields {
		if f.Name == fieldName {
			return f, nil
		}
		names = append(names, f.Name)
	}
	if suggestion := findClosest(fieldName, names); suggestion != "" {
		return inspector.Field{}, fmt.Errorf("field '%s' does not exist on type '%s', did you mean '%s'?", fieldName, typeName, suggestion)
	}
	return inspector.Field{}, fmt.Errorf("field '%s' does not exist on type '%s'", fieldName, typeName)
}
