// # internal/compile/function.go
package compile

import (
	"pystub/internal/attr"
	"pystub/internal/descriptor"
	"pystub/internal/signature"
	"pystub/internal/syntax"
)

// Function compiles a free function in two phases: the base descriptor comes
// from the declared signature, then the attribute-supplied overrides are
// merged in. Overrides touch identity and placement only, never parameter
// shape.
func Function(decl syntax.FnDecl, opts attr.Options) (descriptor.Function, error) {
	spec, err := sigSpec(decl.Attrs)
	if err != nil {
		return descriptor.Function{}, err
	}
	params, _, err := signature.Analyze(decl, spec)
	if err != nil {
		return descriptor.Function{}, err
	}

	base := descriptor.Function{
		Callable: descriptor.Callable{
			Name:       decl.Name,
			Parameters: params,
			ReturnType: decl.Return,
			Doc:        docOf(decl.Doc),
		},
		SourceIdentity: decl.Name,
	}

	return ApplyOptions(base, opts), nil
}

// ApplyOptions returns a copy of base with only the override fields
// replaced. Total and side-effect-free: the base descriptor is not mutated.
func ApplyOptions(base descriptor.Function, opts attr.Options) descriptor.Function {
	merged := base
	if opts.Name != "" {
		merged.Name = opts.Name
	}
	merged.Module = opts.Module
	if merged.Module != "" {
		merged.SourceIdentity = merged.Module + "." + merged.Name
	} else {
		merged.SourceIdentity = merged.Name
	}
	return merged
}
