// # internal/syntax/types.go
package syntax

// Syntax fragments produced by the Rust front-end. One fragment carries one
// exposure-tagged declaration plus the attribute material the compilers need.
// Type and default texts are kept verbatim; resolving them is not this tool's
// job.

type Location struct {
	File   string
	Line   int
	Column int
}

// Attr is one source attribute. Tokens holds the raw argument tokens of the
// attribute's parenthesized list, split on top-level commas but otherwise
// unparsed, e.g. `name = "Placeholder"` or `mapping`.
type Attr struct {
	Path     string
	Tokens   []string
	Location Location
}

type Field struct {
	Name     string
	Type     string
	Attrs    []Attr
	Location Location
}

type StructDecl struct {
	Name     string
	Doc      string
	Fields   []Field
	Location Location
}

type Variant struct {
	Name         string
	Discriminant string // explicit discriminant text, empty if none
	HasPayload   bool
	Location     Location
}

type EnumDecl struct {
	Name     string
	Doc      string
	Variants []Variant
	Location Location
}

type Param struct {
	Name     string
	Type     string
	Location Location
}

type FnDecl struct {
	Name        string
	Doc         string
	HasReceiver bool
	Params      []Param // receiver excluded
	Return      string
	Attrs       []Attr
	Location    Location
}

type ImplBlock struct {
	SelfType string
	Doc      string
	Fns      []FnDecl
	Location Location
}

// FindAttr returns the first attribute with the given path, or nil.
func FindAttr(attrs []Attr, path string) *Attr {
	for i := range attrs {
		if attrs[i].Path == path {
			return &attrs[i]
		}
	}
	return nil
}

// HasAttr reports whether an attribute with the given path is present.
func HasAttr(attrs []Attr, path string) bool {
	return FindAttr(attrs, path) != nil
}
