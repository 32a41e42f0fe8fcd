/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/samwightt/gqlinspect/pkg/diagnostic"
	"github.com/samwightt/gqlinspect/pkg/inspector"
	"github.com/samwightt/gqlinspect/pkg/render"
	"github.com/samwightt/gqlinspect/pkg/sdl"
	"github.com/spf13/cobra"
	gqlparser "github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/validator"
)

// ErrValidationFailed is returned when a query fails validation.
// This is a sentinel error that indicates the query is invalid,
// not that the command itself failed.
var ErrValidationFailed = errors.New("validation failed")

// buildASTSchema turns the introspected schema into a gqlparser schema.
// Annotations stay in descriptions since the server never declared them.
func buildASTSchema(result *inspector.Result) (*ast.Schema, error) {
	source := &ast.Source{
		Name:  "introspection",
		Input: sdl.Render(result, sdl.Options{KeepAnnotations: true}),
	}
	schema, err := gqlparser.LoadSchema(source)
	if err != nil {
		return nil, fmt.Errorf("introspected schema is not valid SDL: %w", err)
	}
	return schema, nil
}

func convertGQLErrors(errs gqlerror.List) []ValidationError {
	var result []ValidationError
	for _, err := range errs {
		valErr := ValidationError{
			Message: err.Message,
			Rule:    err.Rule,
		}
		for _, loc := range err.Locations {
			valErr.Locations = append(valErr.Locations, Location{
				Line:   loc.Line,
				Column: loc.Column,
			})
		}
		result = append(result, valErr)
	}
	return result
}

func validateQuery(queryContent string, schema *ast.Schema) *ValidationResult {
	doc, parseErr := gqlparser.LoadQuery(schema, queryContent)
	if parseErr != nil {
		// Parse errors are also validation failures
		return &ValidationResult{Valid: false, Errors: convertGQLErrors(parseErr)}
	}

	errs := validator.Validate(schema, doc)
	if len(errs) > 0 {
		return &ValidationResult{Valid: false, Errors: convertGQLErrors(errs)}
	}

	return &ValidationResult{Valid: true}
}

// gqlparser reports a start location but no span. Known rules get their span
// and a suggestion from the message; everything else gets a single caret.

// Example: Cannot query field "badField" on type "Query".
var fieldsOnCorrectTypeRegex = regexp.MustCompile(`Cannot query field "([^"]+)" on type "([^"]+)"`)

// parseFieldsOnCorrectTypeError extracts field name and type name from the error message.
// Returns empty strings if the message doesn't match.
func parseFieldsOnCorrectTypeError(message string) (fieldName, typeName string) {
	matches := fieldsOnCorrectTypeRegex.FindStringSubmatch(message)
	if len(matches) == 3 {
		return matches[1], matches[2]
	}
	return "", ""
}

// errorSpanLength returns the length to underline for a given error.
func errorSpanLength(err ValidationError) int {
	switch err.Rule {
	case "FieldsOnCorrectType":
		fieldName, _ := parseFieldsOnCorrectTypeError(err.Message)
		if fieldName != "" {
			return len(fieldName)
		}
	}
	return 1
}

// detectZshEscapeIssue checks if a parse error might be caused by zsh's history
// expansion escaping `!` as `\!`. Returns a help message if detected.
func detectZshEscapeIssue(err ValidationError, sourceContent string, sourceName string) string {
	if sourceName != "stdin" || !strings.Contains(sourceContent, `\!`) || len(err.Locations) == 0 {
		return ""
	}
	loc := err.Locations[0]
	lines := strings.Split(sourceContent, "\n")
	if loc.Line < 1 || loc.Line > len(lines) {
		return ""
	}
	line := lines[loc.Line-1]
	col := loc.Column - 1
	if col >= 0 && col < len(line)-1 && line[col] == '\\' && line[col+1] == '!' {
		return "it looks like zsh escaped `!` as `\\!`. Try using a heredoc instead:\n" +
			"       cat <<'EOF' | gqlinspect validate\n" +
			"       query { ... }\n" +
			"       EOF"
	}
	return ""
}

// errorSuggestion returns a "did you mean" suggestion for the error, if applicable.
func errorSuggestion(err ValidationError, result *inspector.Result) string {
	switch err.Rule {
	case "FieldsOnCorrectType":
		fieldName, typeName := parseFieldsOnCorrectTypeError(err.Message)
		if fieldName == "" || typeName == "" {
			return ""
		}

		t, ok := result.Type(typeName)
		if !ok {
			return ""
		}

		var names []string
		for _, f := range inspector.FieldsOf(t) {
			names = append(names, f.Name)
		}
		if closest := findClosest(fieldName, names); closest != "" {
			return fmt.Sprintf("did you mean `%s`?", closest)
		}
	}
	return ""
}

func formatValidationResultText(result *ValidationResult, sourceName string, sourceContent string, schema *inspector.Result) string {
	if result.Valid {
		return "✓ Query is valid\n"
	}

	lines := strings.Split(sourceContent, "\n")

	var output string
	if len(result.Errors) == 1 {
		output = "✗ Query has 1 error:\n"
	} else {
		output = fmt.Sprintf("✗ Query has %d errors:\n", len(result.Errors))
	}

	for _, err := range result.Errors {
		if len(err.Locations) == 0 {
			output += fmt.Sprintf("  %s\n", err.Message)
			continue
		}

		loc := err.Locations[0]
		output += diagnostic.RenderLocation(sourceName, loc.Line, loc.Column) + "\n"
		if loc.Line > 0 && loc.Line <= len(lines) {
			output += diagnostic.RenderSnippet(lines[loc.Line-1], loc.Line, loc.Column, errorSpanLength(err), err.Message) + "\n"
		}

		if zshHelp := detectZshEscapeIssue(err, sourceContent, sourceName); zshHelp != "" {
			output += "  = help: " + zshHelp + "\n"
		} else if suggestion := errorSuggestion(err, schema); suggestion != "" {
			output += "  = help: " + suggestion + "\n"
		}
	}

	return output
}

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Type-check a GraphQL query against the introspected schema",
		Long: `Validates a GraphQL query, mutation, or subscription against the schema
of the endpoint (or introspection file).

The query can be provided as a file path argument or piped via stdin.

Exit codes:
  0 - Query is valid
  1 - Query has validation or parse errors

Output formats:
  text    Human-readable error messages with locations
  json    {"valid": bool, "errors": [...]}
  yaml    the same record as yaml`,
		Example: `  # Validate from a file
  gqlinspect validate query.graphql -e https://api.example.com/graphql

  # Validate from stdin
  echo "query { user { id } }" | gqlinspect validate -i introspection.json

  # JSON output for CI integration
  gqlinspect validate query.graphql -f json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runValidateCmd,
	}

	return cmd
}

func runValidateCmd(cmd *cobra.Command, args []string) error {
	result, err := loadCliForSchema(cmd)
	if err != nil {
		return reportError(cmd, err)
	}
	schema, err := buildASTSchema(result)
	if err != nil {
		return reportError(cmd, err)
	}

	var queryContent string
	var querySource string

	if len(args) == 1 {
		querySource = args[0]
		bytes, err := os.ReadFile(querySource)
		if err != nil {
			return reportError(cmd, fmt.Errorf("failed to read query file: %w", err))
		}
		queryContent = string(bytes)
	} else {
		querySource = "stdin"
		bytes, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return reportError(cmd, fmt.Errorf("failed to read from stdin: %w", err))
		}
		queryContent = string(bytes)
	}

	validation := validateQuery(queryContent, schema)

	if outputFormat.IsStructured() {
		renderer := render.Renderer[*ValidationResult]{
			Data:   []*ValidationResult{validation},
			Single: true,
		}
		output, err := renderer.Render(outputFormat)
		if err != nil {
			return reportError(cmd, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
	} else {
		fmt.Fprint(cmd.OutOrStdout(), formatValidationResultText(validation, querySource, queryContent, result))
	}

	// Return error if validation failed (causes exit code 1)
	if !validation.Valid {
		return ErrValidationFailed
	}

	return nil
}
