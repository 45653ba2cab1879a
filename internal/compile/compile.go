// # internal/compile/compile.go
//
// The four declaration compilers. Each call is independent and stateless:
// one declaration fragment plus one options value in, one descriptor or one
// diagnostic out. A failed compilation produces no partial descriptor.
package compile

import (
	"strings"

	"pystub/internal/signature"
	"pystub/internal/syntax"
)

// sigSpec extracts the parsed signature override from a callable's
// attributes, if one is attached via `#[pyo3(signature = (...))]`.
func sigSpec(attrs []syntax.Attr) (*signature.Spec, error) {
	a := syntax.FindAttr(attrs, "pyo3")
	if a == nil {
		return nil, nil
	}
	for _, tok := range a.Tokens {
		tok = strings.TrimSpace(tok)
		if !strings.HasPrefix(tok, "signature") {
			continue
		}
		eq := strings.Index(tok, "=")
		if eq < 0 {
			continue
		}
		return signature.ParseSpec(tok[eq+1:])
	}
	return nil, nil
}

func docOf(doc string) string {
	return strings.TrimSpace(doc)
}
