// Package directive pulls "@name" and "@name(content)" annotations out of
// GraphQL description text.
//
// Schema authors often smuggle metadata into descriptions because
// introspection does not expose applied directives:
//
//	"The user's email. @auth(requires: ADMIN) @internal"
//
// Split turns that into the plain description "The user's email.  " and
// the directives auth (with content "requires: ADMIN") and internal.
package directive

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Directive is an annotation found in a description. Content is nil when
// the annotation had no parenthesized part.
type Directive struct {
	Name    string  `json:"name" yaml:"name"`
	Content *string `json:"content,omitempty" yaml:"content,omitempty"`
}

// HasContent reports whether the directive was written with parentheses.
func (d Directive) HasContent() bool {
	return d.Content != nil
}

// String renders the directive the way it appeared in the description.
func (d Directive) String() string {
	if d.Content == nil {
		return "@" + d.Name
	}
	return "@" + d.Name + "(" + *d.Content + ")"
}

// Excision is a span of the original description that Split removed.
// Offset is the position in the resulting description where Text was cut.
type Excision struct {
	Offset int
	Text   string
}

// SplitResult is a description with its directives removed.
type SplitResult struct {
	Description string      `json:"description" yaml:"description"`
	Directives  []Directive `json:"directives" yaml:"directives"`
	Excisions   []Excision  `json:"-" yaml:"-"`
}

// Restore puts every excised span back and returns the original description.
func (r SplitResult) Restore() string {
	var b strings.Builder
	last := 0
	for _, e := range r.Excisions {
		b.WriteString(r.Description[last:e.Offset])
		b.WriteString(e.Text)
		last = e.Offset
	}
	b.WriteString(r.Description[last:])
	return b.String()
}

// Names returns the directive names in order of appearance.
func (r SplitResult) Names() []string {
	names := make([]string, 0, len(r.Directives))
	for _, d := range r.Directives {
		names = append(names, d.Name)
	}
	return names
}

// markerRegex matches "@name" at a non-word boundary, plus an opening
// parenthesis when one directly follows the name.
var markerRegex = regexp.MustCompile(`\B@(\w+)(\()?`)

// Split removes every directive marker from description and returns the
// remaining text together with the directives in order of appearance.
//
// An unbalanced parenthesis fails the whole description with a
// *MismatchError whose Offset points into description.
func Split(description string) (SplitResult, error) {
	result := SplitResult{Directives: []Directive{}}

	var out strings.Builder
	working := description
	consumed := 0
	for {
		loc := markerRegex.FindStringSubmatchIndex(working)
		if loc == nil {
			break
		}
		start, end := loc[0], loc[1]
		name := working[loc[2]:loc[3]]
		out.WriteString(working[:start])

		if loc[4] != -1 {
			area, err := FindBracketArea(working, "(", ")", loc[4])
			if err != nil {
				var mismatch *MismatchError
				if errors.As(err, &mismatch) {
					mismatch.Offset += consumed
				}
				return SplitResult{}, fmt.Errorf("directive @%s: %w", name, err)
			}
			if area != nil {
				content := working[area.Start+1 : area.End]
				result.Directives = append(result.Directives, Directive{Name: name, Content: &content})
				end = area.End + 1
			} else {
				// Unreachable while the search starts on the captured "(".
				// Keep the parenthesis in the text if that ever changes.
				result.Directives = append(result.Directives, Directive{Name: name})
				end = loc[3]
			}
		} else {
			result.Directives = append(result.Directives, Directive{Name: name})
		}

		result.Excisions = append(result.Excisions, Excision{
			Offset: out.Len(),
			Text:   working[start:end],
		})
		consumed += end
		working = working[end:]
	}
	out.WriteString(working)
	result.Description = out.String()
	return result, nil
}

// MustSplit is like Split but panics on malformed input.
func MustSplit(description string) SplitResult {
	r, err := Split(description)
	if err != nil {
		panic(err)
	}
	return r
}
