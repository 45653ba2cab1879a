// # internal/parser/loader.go
package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

type GrammarLoader struct {
	languages map[string]*sitter.Language
}

func NewGrammarLoader() *GrammarLoader {
	gl := &GrammarLoader{
		languages: make(map[string]*sitter.Language),
	}

	// Rust is the only input language.
	gl.languages["rust"] = sitter.NewLanguage(tree_sitter_rust.Language())

	return gl
}

func (gl *GrammarLoader) Language(id string) *sitter.Language {
	return gl.languages[id]
}
