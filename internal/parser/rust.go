// # internal/parser/rust.go
package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"pystub/internal/shared/util"
	"pystub/internal/syntax"
)

// Exposure attribute paths, by last path segment. gen_stub_* are the
// stub-only aliases; the pyo3 names carry the option tokens.
var exposurePaths = map[string]bool{
	"pyclass":               true,
	"pymethods":             true,
	"pyfunction":            true,
	"gen_stub_pyclass":      true,
	"gen_stub_pyclass_enum": true,
	"gen_stub_pymethods":    true,
	"gen_stub_pyfunction":   true,
}

type RustExtractor struct{}

func (e *RustExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:     filePath,
		ParsedAt: time.Now(),
	}

	e.walkItems(root, source, file)

	return file, nil
}

// walkItems scans a container's children. Outer attributes and doc comments
// are siblings preceding the item they annotate, so they accumulate until an
// item consumes them.
func (e *RustExtractor) walkItems(container *sitter.Node, source []byte, file *File) {
	var pendingAttrs []syntax.Attr
	var pendingDoc []string

	reset := func() {
		pendingAttrs = nil
		pendingDoc = nil
	}

	for i := uint(0); i < container.ChildCount(); i++ {
		child := container.Child(i)

		switch child.Kind() {
		case "attribute_item":
			if a, ok := e.parseAttribute(child, source, file.Path); ok {
				pendingAttrs = append(pendingAttrs, a)
			}
		case "line_comment":
			text := e.getText(child, source)
			if strings.HasPrefix(text, "///") {
				pendingDoc = append(pendingDoc, strings.TrimPrefix(strings.TrimPrefix(strings.TrimSuffix(text, "\n"), "///"), " "))
			} else {
				reset()
			}
		case "struct_item":
			e.extractStruct(child, source, file, pendingAttrs, strings.Join(pendingDoc, "\n"))
			reset()
		case "enum_item":
			e.extractEnum(child, source, file, pendingAttrs, strings.Join(pendingDoc, "\n"))
			reset()
		case "function_item":
			e.extractFunction(child, source, file, pendingAttrs, strings.Join(pendingDoc, "\n"))
			reset()
		case "impl_item":
			e.extractImpl(child, source, file, pendingAttrs, strings.Join(pendingDoc, "\n"))
			reset()
		case "mod_item":
			if body := child.ChildByFieldName("body"); body != nil {
				e.walkItems(body, source, file)
			}
			reset()
		default:
			reset()
		}
	}
}

func (e *RustExtractor) parseAttribute(node *sitter.Node, source []byte, path string) (syntax.Attr, bool) {
	var attrNode *sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "attribute" {
			attrNode = node.Child(i)
			break
		}
	}
	if attrNode == nil {
		return syntax.Attr{}, false
	}

	attr := syntax.Attr{Location: e.locationOf(node, path)}

	var args *sitter.Node
	if n := attrNode.ChildByFieldName("arguments"); n != nil {
		args = n
	} else {
		for i := uint(0); i < attrNode.ChildCount(); i++ {
			if attrNode.Child(i).Kind() == "token_tree" {
				args = attrNode.Child(i)
				break
			}
		}
	}

	full := e.getText(attrNode, source)
	if args != nil {
		argText := e.getText(args, source)
		attr.Path = strings.TrimSpace(strings.TrimSuffix(full, argText))
		inner := strings.TrimSpace(argText)
		inner = strings.TrimPrefix(inner, "(")
		inner = strings.TrimSuffix(inner, ")")
		for _, tok := range util.SplitTopLevel(inner) {
			if tok = strings.TrimSpace(tok); tok != "" {
				attr.Tokens = append(attr.Tokens, tok)
			}
		}
	} else {
		attr.Path = strings.TrimSpace(full)
	}

	// Keep the last path segment; exposure tags may be spelled qualified.
	if idx := strings.LastIndex(attr.Path, "::"); idx >= 0 {
		attr.Path = attr.Path[idx+2:]
	}

	return attr, true
}

func exposureTokens(attrs []syntax.Attr) ([]string, bool) {
	tagged := false
	var tokens []string
	for _, a := range attrs {
		if !exposurePaths[a.Path] {
			continue
		}
		tagged = true
		tokens = append(tokens, a.Tokens...)
	}
	return tokens, tagged
}

func (e *RustExtractor) extractStruct(node *sitter.Node, source []byte, file *File, attrs []syntax.Attr, doc string) {
	tokens, tagged := exposureTokens(attrs)
	if !tagged {
		return
	}

	decl := syntax.StructDecl{
		Doc:      doc,
		Location: e.locationOf(node, file.Path),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		decl.Name = e.getText(name, source)
	}
	if decl.Name == "" {
		return
	}

	if body := node.ChildByFieldName("body"); body != nil && body.Kind() == "field_declaration_list" {
		var fieldAttrs []syntax.Attr
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			switch child.Kind() {
			case "attribute_item":
				if a, ok := e.parseAttribute(child, source, file.Path); ok {
					fieldAttrs = append(fieldAttrs, a)
				}
			case "field_declaration":
				f := syntax.Field{
					Attrs:    fieldAttrs,
					Location: e.locationOf(child, file.Path),
				}
				if n := child.ChildByFieldName("name"); n != nil {
					f.Name = e.getText(n, source)
				}
				if t := child.ChildByFieldName("type"); t != nil {
					f.Type = e.getText(t, source)
				}
				if f.Name != "" {
					decl.Fields = append(decl.Fields, f)
				}
				fieldAttrs = nil
			}
		}
	}

	file.Classes = append(file.Classes, TaggedStruct{Decl: decl, Tokens: tokens})
}

func (e *RustExtractor) extractEnum(node *sitter.Node, source []byte, file *File, attrs []syntax.Attr, doc string) {
	tokens, tagged := exposureTokens(attrs)
	if !tagged {
		return
	}

	decl := syntax.EnumDecl{
		Doc:      doc,
		Location: e.locationOf(node, file.Path),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		decl.Name = e.getText(name, source)
	}
	if decl.Name == "" {
		return
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			if child.Kind() != "enum_variant" {
				continue
			}
			v := syntax.Variant{Location: e.locationOf(child, file.Path)}
			if n := child.ChildByFieldName("name"); n != nil {
				v.Name = e.getText(n, source)
			}
			if val := child.ChildByFieldName("value"); val != nil {
				v.Discriminant = e.getText(val, source)
			}
			for j := uint(0); j < child.ChildCount(); j++ {
				k := child.Child(j).Kind()
				if k == "ordered_field_declaration_list" || k == "field_declaration_list" {
					v.HasPayload = true
				}
			}
			if v.Name != "" {
				decl.Variants = append(decl.Variants, v)
			}
		}
	}

	file.Enums = append(file.Enums, TaggedEnum{Decl: decl, Tokens: tokens})
}

func (e *RustExtractor) extractFunction(node *sitter.Node, source []byte, file *File, attrs []syntax.Attr, doc string) {
	tokens, tagged := exposureTokens(attrs)
	if !tagged {
		return
	}

	decl := e.parseFn(node, source, file.Path, attrs, doc)
	if decl.Name == "" {
		return
	}

	file.Functions = append(file.Functions, TaggedFn{Decl: decl, Tokens: tokens})
}

func (e *RustExtractor) extractImpl(node *sitter.Node, source []byte, file *File, attrs []syntax.Attr, doc string) {
	if _, tagged := exposureTokens(attrs); !tagged {
		return
	}

	block := syntax.ImplBlock{
		Doc:      doc,
		Location: e.locationOf(node, file.Path),
	}
	if t := node.ChildByFieldName("type"); t != nil {
		block.SelfType = e.getText(t, source)
	}
	if block.SelfType == "" {
		return
	}

	if body := node.ChildByFieldName("body"); body != nil {
		var pendingAttrs []syntax.Attr
		var pendingDoc []string
		for i := uint(0); i < body.ChildCount(); i++ {
			child := body.Child(i)
			switch child.Kind() {
			case "attribute_item":
				if a, ok := e.parseAttribute(child, source, file.Path); ok {
					pendingAttrs = append(pendingAttrs, a)
				}
			case "line_comment":
				text := e.getText(child, source)
				if strings.HasPrefix(text, "///") {
					pendingDoc = append(pendingDoc, strings.TrimPrefix(strings.TrimPrefix(strings.TrimSuffix(text, "\n"), "///"), " "))
				}
			case "function_item":
				fn := e.parseFn(child, source, file.Path, pendingAttrs, strings.Join(pendingDoc, "\n"))
				if fn.Name != "" {
					block.Fns = append(block.Fns, fn)
				}
				pendingAttrs = nil
				pendingDoc = nil
			default:
				pendingAttrs = nil
				pendingDoc = nil
			}
		}
	}

	file.MethodBlocks = append(file.MethodBlocks, TaggedImpl{Block: block})
}

func (e *RustExtractor) parseFn(node *sitter.Node, source []byte, path string, attrs []syntax.Attr, doc string) syntax.FnDecl {
	decl := syntax.FnDecl{
		Doc:      doc,
		Attrs:    attrs,
		Location: e.locationOf(node, path),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		decl.Name = e.getText(name, source)
	}

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			child := params.Child(i)
			switch child.Kind() {
			case "self_parameter":
				decl.HasReceiver = true
			case "parameter":
				p := syntax.Param{Location: e.locationOf(child, path)}
				if pat := child.ChildByFieldName("pattern"); pat != nil {
					p.Name = paramName(e.getText(pat, source))
				}
				if t := child.ChildByFieldName("type"); t != nil {
					p.Type = e.getText(t, source)
				}
				if p.Name != "" && p.Name != "_" {
					decl.Params = append(decl.Params, p)
				}
			}
		}
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		decl.Return = e.getText(ret, source)
	}

	return decl
}

// paramName reduces a parameter pattern to its identifier: `mut x` -> x,
// `ref x` -> x. Destructuring patterns keep their full text; they cannot be
// named in a Python signature anyway.
func paramName(pattern string) string {
	pattern = strings.TrimSpace(pattern)
	pattern = strings.TrimPrefix(pattern, "mut ")
	pattern = strings.TrimPrefix(pattern, "ref ")
	return strings.TrimSpace(pattern)
}

func (e *RustExtractor) locationOf(node *sitter.Node, path string) syntax.Location {
	return syntax.Location{
		File:   path,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

func (e *RustExtractor) getText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
