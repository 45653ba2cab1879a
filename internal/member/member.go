// # internal/member/member.go
package member

import (
	"fmt"
	"strings"

	"pystub/internal/attr"
	"pystub/internal/descriptor"
	"pystub/internal/diag"
	"pystub/internal/syntax"
)

// Extract selects the externally visible fields of a data-bearing
// declaration, in declaration order. Visibility is explicit only: a field is
// included when it carries a `get`/`set` annotation or the class-level
// get_all/set_all flags cover it. Unannotated fields yield nothing.
func Extract(fields []syntax.Field, opts attr.Options) ([]descriptor.Member, error) {
	var members []descriptor.Member

	for _, f := range fields {
		readable := opts.Has(attr.FlagGetAll)
		writable := opts.Has(attr.FlagSetAll)
		exposed := f.Name

		if a := syntax.FindAttr(f.Attrs, "pyo3"); a != nil {
			for _, tok := range a.Tokens {
				tok = strings.TrimSpace(tok)
				switch {
				case tok == "get":
					readable = true
				case tok == "set":
					writable = true
				case strings.HasPrefix(tok, "name"):
					if eq := strings.Index(tok, "="); eq >= 0 {
						if lit := strings.TrimSpace(tok[eq+1:]); len(lit) >= 2 && lit[0] == '"' {
							exposed = strings.Trim(lit, "\"")
						}
					}
				}
				// Other pyo3 field arguments are runtime concerns, not shape.
			}
		}

		if !readable && !writable {
			continue
		}

		if writable && !readable && strings.TrimSpace(f.Type) == "" {
			return nil, diag.New(diag.KindMemberMissingType, f.Name,
				fmt.Sprintf("write-only field %q has no type annotation", f.Name)).At(f.Location)
		}

		members = append(members, descriptor.Member{
			Name:          exposed,
			TypeSignature: f.Type,
			Readable:      readable,
			Writable:      writable,
		})
	}

	return members, nil
}
