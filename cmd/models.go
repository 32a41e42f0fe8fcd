package cmd

import "github.com/samwightt/gqlinspect/pkg/directive"

type ArgumentInfo struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type ArgInfo struct {
	TypeName     string                `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	FieldName    string                `json:"fieldName,omitempty" yaml:"fieldName,omitempty"`
	Name         string                `json:"name" yaml:"name"`
	Type         string                `json:"type" yaml:"type"`
	DefaultValue string                `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Description  string                `json:"description,omitempty" yaml:"description,omitempty"`
	Directives   []directive.Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
}

type FieldInfo struct {
	TypeName     string                `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	Name         string                `json:"name" yaml:"name"`
	Arguments    []ArgumentInfo        `json:"arguments,omitempty" yaml:"arguments,omitempty"`
	Type         string                `json:"type" yaml:"type"`
	DefaultValue string                `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Description  string                `json:"description,omitempty" yaml:"description,omitempty"`
	Directives   []directive.Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
	Deprecated   bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

type TypeInfo struct {
	Name        string                `json:"name" yaml:"name"`
	Kind        string                `json:"kind" yaml:"kind"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Directives  []directive.Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
}

type ValueInfo struct {
	EnumName    string                `json:"enumName,omitempty" yaml:"enumName,omitempty"`
	Name        string                `json:"name" yaml:"name"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Directives  []directive.Directive `json:"directives,omitempty" yaml:"directives,omitempty"`
	Deprecated  bool                  `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

type ReferenceInfo struct {
	Location    string `json:"location" yaml:"location"`
	Kind        string `json:"kind" yaml:"kind"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DirectiveInfo is one annotation found in a description.
type DirectiveInfo struct {
	Location string  `json:"location" yaml:"location"`
	Site     string  `json:"site" yaml:"site"`
	Name     string  `json:"name" yaml:"name"`
	Content  *string `json:"content,omitempty" yaml:"content,omitempty"`
}

type Location struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

type ValidationError struct {
	Message   string     `json:"message" yaml:"message"`
	Rule      string     `json:"rule,omitempty" yaml:"rule,omitempty"`
	Locations []Location `json:"locations,omitempty" yaml:"locations,omitempty"`
}

type ValidationResult struct {
	Valid  bool              `json:"valid" yaml:"valid"`
	Errors []ValidationError `json:"errors,omitempty" yaml:"errors,omitempty"`
}
