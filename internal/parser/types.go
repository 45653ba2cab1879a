// # internal/parser/types.go
package parser

import (
	"time"

	"pystub/internal/syntax"
)

// File holds every exposure-tagged declaration found in one Rust source
// file, paired with the raw argument tokens of its exposure attribute.
type File struct {
	Path         string
	Classes      []TaggedStruct
	Enums        []TaggedEnum
	MethodBlocks []TaggedImpl
	Functions    []TaggedFn
	ParsedAt     time.Time
}

func (f *File) DeclCount() int {
	return len(f.Classes) + len(f.Enums) + len(f.MethodBlocks) + len(f.Functions)
}

type TaggedStruct struct {
	Decl   syntax.StructDecl
	Tokens []string
}

type TaggedEnum struct {
	Decl   syntax.EnumDecl
	Tokens []string
}

type TaggedImpl struct {
	Block syntax.ImplBlock
}

type TaggedFn struct {
	Decl   syntax.FnDecl
	Tokens []string
}
