package introspection

import (
	"fmt"
	"strings"
)

// MaxTypeRefDepth is how many ofType levels the TypeRef fragment asks for.
const MaxTypeRefDepth = 9

// QueryOptions toggles the optional parts of the introspection query.
// Servers reject fields they do not know, so everything past descriptions
// is off by default.
type QueryOptions struct {
	Descriptions          bool
	SpecifiedByURL        bool
	DirectiveIsRepeatable bool
	SchemaDescription     bool
	InputValueDeprecation bool
}

// DefaultQueryOptions asks for descriptions only.
var DefaultQueryOptions = QueryOptions{Descriptions: true}

// Query returns the standard introspection query text.
func Query() string {
	return QueryWithOptions(DefaultQueryOptions)
}

// QueryWithOptions builds the introspection query for the given options.
func QueryWithOptions(opts QueryOptions) string {
	description := ""
	if opts.Descriptions {
		description = "description"
	}
	schemaDescription := ""
	if opts.Descriptions && opts.SchemaDescription {
		schemaDescription = "description"
	}
	specifiedByURL := ""
	if opts.SpecifiedByURL {
		specifiedByURL = "specifiedByURL"
	}
	isRepeatable := ""
	if opts.DirectiveIsRepeatable {
		isRepeatable = "isRepeatable"
	}
	includeDeprecated := ""
	inputDeprecation := ""
	if opts.InputValueDeprecation {
		includeDeprecated = "(includeDeprecated: true)"
		inputDeprecation = "isDeprecated\n  deprecationReason"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `query IntrospectionQuery {
  __schema {
    %s
    queryType { name }
    mutationType { name }
    subscriptionType { name }
    types {
      ...FullType
    }
    directives {
      name
      %s
      %s
      locations
      args%s {
        ...InputValue
      }
    }
  }
}

fragment FullType on __Type {
  kind
  name
  %s
  %s
  fields(includeDeprecated: true) {
    name
    %s
    args%s {
      ...InputValue
    }
    type {
      ...TypeRef
    }
    isDeprecated
    deprecationReason
  }
  inputFields%s {
    ...InputValue
  }
  interfaces {
    ...TypeRef
  }
  enumValues(includeDeprecated: true) {
    name
    %s
    isDeprecated
    deprecationReason
  }
  possibleTypes {
    ...TypeRef
  }
}

fragment InputValue on __InputValue {
  name
  %s
  type { ...TypeRef }
  defaultValue
  %s
}

`, schemaDescription, description, isRepeatable, includeDeprecated,
		description, specifiedByURL, description, includeDeprecated, includeDeprecated,
		description, description, inputDeprecation)

	b.WriteString(typeRefFragment(MaxTypeRefDepth))
	return b.String()
}

func typeRefFragment(depth int) string {
	var b strings.Builder
	b.WriteString("fragment TypeRef on __Type {\n  kind\n  name\n")
	indent := "  "
	for i := 0; i < depth; i++ {
		b.WriteString(indent + "ofType {\n")
		indent += "  "
		b.WriteString(indent + "kind\n" + indent + "name\n")
	}
	for i := 0; i < depth; i++ {
		indent = indent[:len(indent)-2]
		b.WriteString(indent + "}\n")
	}
	b.WriteString("}\n")
	return b.String()
}
