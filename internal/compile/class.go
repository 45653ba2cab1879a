// # internal/compile/class.go
package compile

import (
	"pystub/internal/attr"
	"pystub/internal/descriptor"
	"pystub/internal/member"
	"pystub/internal/signature"
	"pystub/internal/syntax"
)

// Class compiles a tagged struct declaration. The exposed name comes from
// the options when renamed, else from the declaration itself. If an
// associated block is supplied and contains an explicit `#[new]` callable,
// it becomes the constructor; otherwise Constructor stays nil — absence
// means "no explicit initializer", never "synthesize one".
func Class(decl syntax.StructDecl, assoc *syntax.ImplBlock, opts attr.Options) (descriptor.Class, error) {
	exposed := opts.Name
	if exposed == "" {
		exposed = decl.Name
	}

	members, err := member.Extract(decl.Fields, opts)
	if err != nil {
		return descriptor.Class{}, err
	}

	cls := descriptor.Class{
		ExposedName:    exposed,
		Module:         opts.Module,
		Members:        members,
		Doc:            docOf(decl.Doc),
		SourceIdentity: decl.Name,
	}

	if assoc != nil {
		for _, fn := range assoc.Fns {
			if !syntax.HasAttr(fn.Attrs, "new") {
				continue
			}
			spec, err := sigSpec(fn.Attrs)
			if err != nil {
				return descriptor.Class{}, err
			}
			params, _, err := signature.Analyze(fn, spec)
			if err != nil {
				return descriptor.Class{}, err
			}
			cls.Constructor = &descriptor.Callable{
				Name:       "__init__",
				Parameters: params,
				ReturnType: "None",
				Doc:        docOf(fn.Doc),
			}
			break
		}
	}

	return cls, nil
}
