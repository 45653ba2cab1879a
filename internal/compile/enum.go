// # internal/compile/enum.go
package compile

import (
	"fmt"
	"strconv"

	"pystub/internal/attr"
	"pystub/internal/descriptor"
	"pystub/internal/diag"
	"pystub/internal/syntax"
)

// Enum compiles a tagged enumeration. Variants keep declaration order. A
// variant carrying associated data has no representation in the descriptor
// model and fails the whole declaration rather than being dropped.
func Enum(decl syntax.EnumDecl, opts attr.Options) (descriptor.Enum, error) {
	exposed := opts.Name
	if exposed == "" {
		exposed = decl.Name
	}

	variants := make([]descriptor.VariantPair, 0, len(decl.Variants))
	for i, v := range decl.Variants {
		if v.HasPayload {
			return descriptor.Enum{}, diag.New(diag.KindEnumPayloadVariant, v.Name,
				fmt.Sprintf("variant %q carries associated data", v.Name)).At(v.Location)
		}
		value := v.Discriminant
		if value == "" {
			value = strconv.Itoa(i)
		}
		variants = append(variants, descriptor.VariantPair{Name: v.Name, Value: value})
	}

	return descriptor.Enum{
		ExposedName:    exposed,
		Module:         opts.Module,
		Variants:       variants,
		Doc:            docOf(decl.Doc),
		SourceIdentity: decl.Name,
	}, nil
}
