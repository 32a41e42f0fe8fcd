/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/spf13/cobra"
)

type typesOptions struct {
	implements   string
	hasField     []string
	kind         []string
	hasDirective []string
	nameRegex    string
	usedBy       []string
	usedByAny    []string
	notUsedBy    []string
}

func kindToString(kind introspection.TypeKind) string {
	switch kind {
	case introspection.TypeKindScalar:
		return "scalar"
	case introspection.TypeKindObject:
		return "type"
	case introspection.TypeKindInterface:
		return "interface"
	case introspection.TypeKindUnion:
		return "union"
	case introspection.TypeKindEnum:
		return "enum"
	case introspection.TypeKindInputObject:
		return "input"
	default:
		return strings.ToLower(string(kind))
	}
}

var validKinds = map[string]introspection.TypeKind{
	"scalar":    introspection.TypeKindScalar,
	"type":      introspection.TypeKindObject,
	"object":    introspection.TypeKindObject,
	"interface": introspection.TypeKindInterface,
	"union":     introspection.TypeKindUnion,
	"enum":      introspection.TypeKindEnum,
	"input":     introspection.TypeKindInputObject,
}

func formatTypeText(t TypeInfo) string {
	out := fmt.Sprintf("%s %s", t.Kind, t.Name)
	for _, d := range t.Directives {
		out += " @" + d.Name
	}
	if t.Description != "" {
		out += " # " + singleLine(t.Description)
	}
	return out
}

func formatTypesPretty(types []TypeInfo) string {
	tbl := makeTable()

	for _, t := range types {
		var names []string
		for _, d := range t.Directives {
			names = append(names, d.String())
		}
		tbl.Row(t.Kind, t.Name, strings.Join(names, " "), singleLine(t.Description))
	}
	tbl.Headers("kind", "name", "directives", "description")

	return tbl.String()
}

func typeToInfo(t inspector.ParsedType) TypeInfo {
	ann := t.TypeAnnotations()
	return TypeInfo{
		Name:        t.TypeName(),
		Kind:        kindToString(t.TypeKind()),
		Description: describe(ann),
		Directives:  ann.Directives,
	}
}

func matchesKindFilter(t inspector.ParsedType, kinds []string) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if expectedKind, ok := validKinds[strings.ToLower(k)]; ok && t.TypeKind() == expectedKind {
			return true
		}
	}
	return false
}

func matchesHasDirectiveFilter(ann inspector.Annotations, names []string) bool {
	for _, name := range names {
		if !ann.HasDirective(strings.TrimPrefix(name, "@")) {
			return false
		}
	}
	return true
}

func matchesHasFieldFilter(t inspector.ParsedType, names []string) bool {
	if len(names) == 0 {
		return true
	}
	var fieldNames []string
	if input, ok := t.(*inspector.InputObjectType); ok {
		for _, f := range input.InputFields {
			fieldNames = append(fieldNames, f.Name)
		}
	}
	for _, f := range inspector.FieldsOf(t) {
		fieldNames = append(fieldNames, f.Name)
	}
	for _, name := range names {
		if !slices.Contains(fieldNames, name) {
			return false
		}
	}
	return true
}

func interfacesOf(t inspector.ParsedType) []string {
	switch t := t.(type) {
	case *inspector.ObjectType:
		return t.Interfaces
	case *inspector.InterfaceType:
		return t.Interfaces
	}
	return nil
}

// getTypesUsedBy collects the named types a type's fields, arguments and
// input fields refer to.
func getTypesUsedBy(t inspector.ParsedType) map[string]bool {
	usedTypes := make(map[string]bool)

	for _, field := range inspector.FieldsOf(t) {
		usedTypes[field.Type.Type] = true
		for _, arg := range field.Args {
			usedTypes[arg.Type.Type] = true
		}
	}
	if input, ok := t.(*inspector.InputObjectType); ok {
		for _, field := range input.InputFields {
			usedTypes[field.Type.Type] = true
		}
	}
	if union, ok := t.(*inspector.UnionType); ok {
		for _, name := range union.PossibleTypes {
			usedTypes[name] = true
		}
	}

	return usedTypes
}

func validateImplementsFilter(result *inspector.Result, name string) error {
	if name == "" {
		return nil
	}

	iface, ok := result.Type(name)
	if !ok {
		var interfaces []string
		for _, t := range result.Types {
			if t.TypeKind() == introspection.TypeKindInterface {
				interfaces = append(interfaces, t.TypeName())
			}
		}
		if suggestion := findClosest(name, interfaces); suggestion != "" {
			return fmt.Errorf("interface '%s' does not exist in schema, did you mean '%s'?", name, suggestion)
		}
		return fmt.Errorf("interface '%s' does not exist in schema", name)
	}
	if iface.TypeKind() != introspection.TypeKindInterface {
		return fmt.Errorf("'%s' is not an interface (it's a %s)", name, kindToString(iface.TypeKind()))
	}
	return nil
}

func NewTypesCmd() *cobra.Command {
	opts := &typesOptions{}

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Lists all types in the schema",
		Long: `Lists all types in the schema with optional filtering.

Shows the type's kind (enum, type, input, etc.), its name, the annotations
pulled out of its description and the remaining description text.

Output formats:
  text    "type User @key # A user", "enum Status", etc. (default when piping)
  json    [{"name": "User", "kind": "type", "directives": [...]}, ...]
  yaml    the same records as yaml
  pretty  Formatted table with columns (default in terminal)

Multiple filters can be combined and are applied with AND logic.`,
		Example: `  # Find all types that could be returned by the API
  gqlinspect types --kind type --kind interface

  # Find types annotated with both @key and @shareable
  gqlinspect types --has-directive key --has-directive shareable

  # Find input types used by Query
  gqlinspect types --kind input --used-by Query

  # Find all node types for Relay-style pagination
  gqlinspect types --implements Node

  # Pipe to other tools
  gqlinspect types --kind type -f json | jq '.[].name'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.implements, "implements", "", "Filter to types that implement the given interface")
	cmd.Flags().StringArrayVar(&opts.hasField, "has-field", nil, "Filter to types that have the given field (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&opts.kind, "kind", nil, "Filter to types of the given kind: scalar, type, interface, union, enum, input (if specified multiple times, applied using OR logic)")
	cmd.Flags().StringArrayVar(&opts.hasDirective, "has-directive", nil, "Filter to types annotated with the given directive (AND logic when specified multiple times)")
	cmd.Flags().StringVar(&opts.nameRegex, "name-regex", "", "Filter types by name using a regex pattern")
	cmd.Flags().StringArrayVar(&opts.usedBy, "used-by", nil, "Filter to types used by the given type (AND logic when specified multiple times)")
	cmd.Flags().StringArrayVar(&opts.usedByAny, "used-by-any", nil, "Filter to types used by any of the given types (OR logic)")
	cmd.Flags().StringArrayVar(&opts.notUsedBy, "not-used-by", nil, "Exclude types used by any of the given types")

	return cmd
}

func runTypes(cmd *cobra.Command, opts *typesOptions) error {
	for _, k := range opts.kind {
		if _, ok := validKinds[strings.ToLower(k)]; !ok {
			return fmt.Errorf("invalid kind '%s' (valid: scalar, type, interface, union, enum, input)", k)
		}
	}

	var nameRegex *regexp.Regexp
	if opts.nameRegex != "" {
		var err error
		nameRegex, err = regexp.Compile(opts.nameRegex)
		if err != nil {
			return fmt.Errorf("invalid regex pattern for --name-regex: %w", err)
		}
	}

	result, err := loadCliForSchema(cmd)
	if err != nil {
		return err
	}

	if err := validateImplementsFilter(result, opts.implements); err != nil {
		return err
	}

	usedBySets := func(names []string) ([]map[string]bool, error) {
		var sets []map[string]bool
		for _, name := range names {
			t, err := validateTypeExists(result, name, "type")
			if err != nil {
				return nil, err
			}
			sets = append(sets, getTypesUsedBy(t))
		}
		return sets, nil
	}

	usedBy, err := usedBySets(opts.usedBy)
	if err != nil {
		return err
	}
	usedByAny, err := usedBySets(opts.usedByAny)
	if err != nil {
		return err
	}
	notUsedBy, err := usedBySets(opts.notUsedBy)
	if err != nil {
		return err
	}

	matches := filterSlice(result.Types, func(t inspector.ParsedType) bool {
		name := t.TypeName()
		if opts.implements != "" && !slices.Contains(interfacesOf(t), opts.implements) {
			return false
		}
		if !matchesHasFieldFilter(t, opts.hasField) || !matchesKindFilter(t, opts.kind) {
			return false
		}
		if !matchesHasDirectiveFilter(t.TypeAnnotations(), opts.hasDirective) {
			return false
		}
		if nameRegex != nil && !nameRegex.MatchString(name) {
			return false
		}

		// --used-by (AND): must be used by ALL specified types
		for _, set := range usedBy {
			if !set[name] {
				return false
			}
		}

		// --used-by-any (OR): must be used by ANY of the specified types
		if len(usedByAny) > 0 && !slices.ContainsFunc(usedByAny, func(set map[string]bool) bool { return set[name] }) {
			return false
		}

		// --not-used-by: must NOT be used by ANY of the specified types
		return !slices.ContainsFunc(notUsedBy, func(set map[string]bool) bool { return set[name] })
	})

	types := make([]TypeInfo, 0, len(matches))
	for _, t := range matches {
		types = append(types, typeToInfo(t))
	}

	renderer := render.Renderer[TypeInfo]{
		Data:         types,
		TextFormat:   formatTypeText,
		PrettyFormat: formatTypesPretty,
	}

	output, err := renderer.Render(outputFormat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
