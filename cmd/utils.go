package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/samwightt/gqlinspect/pkg/fetch"
	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/introspection"
	"github.com/samwightt/gqlinspect/pkg/typeref"
	"github.com/spf13/cobra"
)

// errNoSource is returned when neither an endpoint nor an introspection file is configured.
var errNoSource = errors.New("no schema source: pass --endpoint or --introspection (or set GQLINSPECT_ENDPOINT)")

var tableStyle = lipgloss.NewStyle().PaddingRight(1)

func makeTable() *table.Table {
	return table.New().
		Width(120).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			return tableStyle
		})
}

const maxSuggestionDistance = 5

func findClosest(input string, candidates []string) string {
	minDist := -1
	closest := ""
	for _, c := range candidates {
		dist := levenshtein.ComputeDistance(input, c)
		if minDist == -1 || dist < minDist {
			minDist = dist
			closest = c
		}
	}
	if minDist > maxSuggestionDistance {
		return ""
	}
	return closest
}

// validateTypeExists checks if a type exists in the schema and returns a helpful
// error with a "did you mean" suggestion if it doesn't.
// The context parameter is used to customize the error message (e.g., "type", "enum").
func validateTypeExists(result *inspector.Result, typeName, context string) (inspector.ParsedType, error) {
	if t, ok := result.Type(typeName); ok {
		return t, nil
	}
	if suggestion := findClosest(typeName, result.Names()); suggestion != "" {
		return nil, fmt.Errorf("%s '%s' does not exist in schema, did you mean '%s'?", context, typeName, suggestion)
	}
	return nil, fmt.Errorf("%s '%s' does not exist in schema", context, typeName)
}

// filterSlice returns a new slice containing only the elements that satisfy the predicate.
func filterSlice[T any](items []T, predicate func(T) bool) []T {
	var result []T
	for _, item := range items {
		if predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// reportError prints err for commands that silence cobra's own error output.
func reportError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln("Error:", err)
	return err
}

// describe returns the description left after annotations were pulled out,
// without the whitespace they leave behind at the ends.
func describe(a inspector.Annotations) string {
	return strings.TrimSpace(a.DescriptionText())
}

// parseTypeFilter reads a --returns or --type value: a bare name such as
// "User" or a full reference such as "[User!]!".
func parseTypeFilter(flag, value string) (*typeref.Ref, error) {
	if value == "" {
		return nil, nil
	}
	ref, err := typeref.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid type for --%s: %w", flag, err)
	}
	return &ref, nil
}

// matchesTypeFilter compares named types only when the filter has no
// wrappers, and the whole reference otherwise.
func matchesTypeFilter(ref typeref.Ref, filter *typeref.Ref) bool {
	if filter == nil {
		return true
	}
	if filter.Front == "" && filter.Back == "" {
		return ref.Type == filter.Type
	}
	return ref == *filter
}

// singleLine flattens a description for one-line output.
func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", " ")
}

func newFetchClient(queryOptions *introspection.QueryOptions) *fetch.Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = settings.timeout
	return fetch.NewClient(fetch.Options{
		HTTPClient:   httpClient,
		Header:       settings.header,
		QueryOptions: queryOptions,
		Retries:      settings.retries,
		Logger:       logger,
	})
}

// loadRawSchema reads the introspection file when one is configured and
// queries the endpoint otherwise.
func loadRawSchema(cmd *cobra.Command, queryOptions *introspection.QueryOptions) (*introspection.Schema, error) {
	switch {
	case settings.introspection != "":
		logger.WithField("path", settings.introspection).Debug("reading introspection file")
		schema, err := introspection.LoadFile(settings.introspection)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("introspection file does not exist: %s", settings.introspection)
			}
			return nil, err
		}
		return schema, nil
	case settings.endpoint != "":
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return newFetchClient(queryOptions).Fetch(ctx, settings.endpoint)
	default:
		return nil, errNoSource
	}
}

func loadCliForSchema(cmd *cobra.Command) (*inspector.Result, error) {
	schema, err := loadRawSchema(cmd, nil)
	if err != nil {
		return nil, err
	}
	return inspector.FromSchema(schema)
}

// loadForCompletion loads the schema from a completion request. Completion
// skips PersistentPreRunE, so settings are resolved here.
func loadForCompletion(cmd *cobra.Command) (*inspector.Result, error) {
	v := newViper()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	var err error
	if settings, err = loadConfig(v, cmd.Flags()); err != nil {
		return nil, err
	}
	return loadCliForSchema(cmd)
}

// completeTypeNames offers type names of the given kinds (all kinds when none are given).
func completeTypeNames(kinds ...introspection.TypeKind) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) != 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		result, err := loadForCompletion(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		outputNames := []string{}
		for _, t := range result.Types {
			if len(kinds) > 0 && !slices.Contains(kinds, t.TypeKind()) {
				continue
			}
			if strings.Contains(strings.ToLower(t.TypeName()), strings.ToLower(toComplete)) {
				outputNames = append(outputNames, t.TypeName())
			}
		}

		sort.Strings(outputNames)

		return outputNames, cobra.ShellCompDirectiveNoFileComp
	}
}
