package inspector

// SiteKind says what kind of schema element a description belongs to.
type SiteKind string

const (
	SiteType       SiteKind = "type"
	SiteField      SiteKind = "field"
	SiteArgument   SiteKind = "argument"
	SiteInputField SiteKind = "input"
	SiteEnumValue  SiteKind = "value"
)

// Site is a described schema element.
type Site struct {
	Path string
	Kind SiteKind
	Annotations
}

// Sites lists every schema element that carries a description, types
// first and then their members, in schema order.
func Sites(types []ParsedType) []Site {
	var sites []Site
	add := func(path string, kind SiteKind, ann Annotations) {
		if ann.Description != nil {
			sites = append(sites, Site{Path: path, Kind: kind, Annotations: ann})
		}
	}

	for _, t := range types {
		add(t.TypeName(), SiteType, t.TypeAnnotations())

		switch t := t.(type) {
		case *ObjectType, *InterfaceType:
			for _, f := range FieldsOf(t) {
				path := t.TypeName() + "." + f.Name
				add(path, SiteField, f.Annotations)
				for _, arg := range f.Args {
					add(path+"("+arg.Name+")", SiteArgument, arg.Annotations)
				}
			}
		case *InputObjectType:
			for _, f := range t.InputFields {
				add(t.Name+"."+f.Name, SiteInputField, f.Annotations)
			}
		case *EnumType:
			for _, v := range t.EnumValues {
				add(t.Name+"."+v.Name, SiteEnumValue, v.Annotations)
			}
		}
	}
	return sites
}
