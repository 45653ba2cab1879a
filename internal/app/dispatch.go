// # internal/app/dispatch.go
package app

import (
	"errors"

	"pystub/internal/attr"
	"pystub/internal/compile"
	"pystub/internal/diag"
	"pystub/internal/parser"
	"pystub/internal/syntax"
)

// dispatch routes every tagged declaration in a parsed file to the matching
// compiler. This is the attribute-dispatch boundary: a plain function call
// per declaration, one descriptor or one diagnostic each, fail-closed.
func (a *App) dispatch(file *parser.File) {
	// Impl blocks in the same file feed constructor lookup for their type.
	impls := make(map[string]*syntax.ImplBlock, len(file.MethodBlocks))
	for i := range file.MethodBlocks {
		block := &file.MethodBlocks[i].Block
		impls[block.SelfType] = block
	}

	for _, tc := range file.Classes {
		opts, err := attr.Parse(tc.Tokens, tc.Decl.Location)
		if err != nil {
			a.recordDiagnostic(file.Path, err)
			continue
		}
		if opts.Module == "" {
			opts.Module = a.Config.DefaultModule
		}
		cls, err := compile.Class(tc.Decl, impls[tc.Decl.Name], opts)
		if err != nil {
			a.recordDiagnostic(file.Path, err)
			continue
		}
		a.register(cls, file.Path)
	}

	for _, te := range file.Enums {
		opts, err := attr.Parse(te.Tokens, te.Decl.Location)
		if err != nil {
			a.recordDiagnostic(file.Path, err)
			continue
		}
		if opts.Module == "" {
			opts.Module = a.Config.DefaultModule
		}
		enum, err := compile.Enum(te.Decl, opts)
		if err != nil {
			a.recordDiagnostic(file.Path, err)
			continue
		}
		a.register(enum, file.Path)
	}

	for _, ti := range file.MethodBlocks {
		block, err := compile.Methods(ti.Block)
		if err != nil {
			a.recordDiagnostic(file.Path, err)
			continue
		}
		a.register(block, file.Path)
	}

	for _, tf := range file.Functions {
		opts, err := attr.Parse(tf.Tokens, tf.Decl.Location)
		if err != nil {
			a.recordDiagnostic(file.Path, err)
			continue
		}
		if opts.Module == "" {
			opts.Module = a.Config.DefaultModule
		}
		fn, err := compile.Function(tf.Decl, opts)
		if err != nil {
			a.recordDiagnostic(file.Path, err)
			continue
		}
		a.register(fn, file.Path)
	}
}

func diagKind(err error) string {
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		return string(d.Kind)
	}
	return "internal"
}
