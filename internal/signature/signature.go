// # internal/signature/signature.go
package signature

import (
	"fmt"
	"regexp"
	"strings"

	"pystub/internal/descriptor"
	"pystub/internal/diag"
	"pystub/internal/shared/util"
	"pystub/internal/syntax"
)

// EntryKind classifies one element of a signature spec.
type EntryKind int

const (
	EntryParam EntryKind = iota
	EntrySlash           // `/`  — parameters so far are positional-only
	EntryStar            // `*`  — parameters after are keyword-only
	EntryVarArgs         // `*name`
	EntryKwArgs          // `**name`
)

type Entry struct {
	Kind    EntryKind
	Name    string
	Default string // verbatim default text, empty if none
}

// Spec is the parsed form of a `signature = (...)` override. The spec is the
// Python-facing order of parameters; the declared Rust list only contributes
// type signatures.
type Spec struct {
	Entries []Entry
}

// Convention summarizes a callable's overall calling shape.
type Convention struct {
	PositionalOnlyCount int
	KeywordOnlyCount    int
	HasVarPositional    bool
	HasVarKeyword       bool
}

// ParseSpec parses the text of a signature override, with or without the
// surrounding parentheses.
func ParseSpec(text string) (*Spec, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		text = text[1 : len(text)-1]
	}

	spec := &Spec{}
	for _, piece := range util.SplitTopLevel(text) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		switch {
		case piece == "/":
			spec.Entries = append(spec.Entries, Entry{Kind: EntrySlash})
		case piece == "*":
			spec.Entries = append(spec.Entries, Entry{Kind: EntryStar})
		case strings.HasPrefix(piece, "**"):
			spec.Entries = append(spec.Entries, Entry{Kind: EntryKwArgs, Name: strings.TrimSpace(piece[2:])})
		case strings.HasPrefix(piece, "*"):
			spec.Entries = append(spec.Entries, Entry{Kind: EntryVarArgs, Name: strings.TrimSpace(piece[1:])})
		default:
			name, def := piece, ""
			if eq := strings.Index(piece, "="); eq >= 0 {
				name = strings.TrimSpace(piece[:eq])
				def = strings.TrimSpace(piece[eq+1:])
			}
			if name == "" {
				return nil, fmt.Errorf("signature spec entry %q has no parameter name", piece)
			}
			spec.Entries = append(spec.Entries, Entry{Kind: EntryParam, Name: name, Default: def})
		}
	}
	return spec, nil
}

// Analyze classifies a callable's parameters. The declared list supplies
// names and type signatures; a spec, when present, supplies the Python-facing
// order, passing-kind markers, and default texts. Output order is a stable
// bijection with the input: declaration order, reordered only where the spec
// explicitly says so.
func Analyze(fn syntax.FnDecl, spec *Spec) ([]descriptor.Parameter, Convention, error) {
	declared := make(map[string]string, len(fn.Params))
	for _, p := range fn.Params {
		declared[p.Name] = p.Type
	}

	var params []descriptor.Parameter

	if spec == nil {
		for _, p := range fn.Params {
			params = append(params, descriptor.Parameter{
				Name:          p.Name,
				TypeSignature: p.Type,
				Kind:          descriptor.PositionalOrKeyword,
			})
		}
	} else {
		var err error
		params, err = applySpec(fn, spec, declared)
		if err != nil {
			return nil, Convention{}, err
		}
	}

	conv, err := validate(params, fn.Location)
	if err != nil {
		return nil, Convention{}, err
	}
	return params, conv, nil
}

func applySpec(fn syntax.FnDecl, spec *Spec, declared map[string]string) ([]descriptor.Parameter, error) {
	var params []descriptor.Parameter
	inSpec := make(map[string]bool)
	keywordOnly := false
	seenStar := false

	for _, e := range spec.Entries {
		switch e.Kind {
		case EntrySlash:
			if seenStar {
				// A parameter cannot be positional-only and keyword-only at once.
				ident := "/"
				if n := len(params); n > 0 {
					ident = params[n-1].Name
				}
				return nil, diag.New(diag.KindOrderingViolation, ident,
					"positional-only marker after keyword-only marker").At(fn.Location)
			}
			for i := range params {
				if params[i].Kind == descriptor.PositionalOrKeyword {
					params[i].Kind = descriptor.PositionalOnly
				}
			}
		case EntryStar:
			seenStar = true
			keywordOnly = true
		case EntryVarArgs:
			seenStar = true
			keywordOnly = true
			inSpec[e.Name] = true
			params = append(params, descriptor.Parameter{
				Name:          e.Name,
				TypeSignature: typeFor(declared, e.Name),
				Kind:          descriptor.VarPositional,
			})
		case EntryKwArgs:
			inSpec[e.Name] = true
			params = append(params, descriptor.Parameter{
				Name:          e.Name,
				TypeSignature: typeFor(declared, e.Name),
				Kind:          descriptor.VarKeyword,
			})
		case EntryParam:
			inSpec[e.Name] = true
			kind := descriptor.PositionalOrKeyword
			if keywordOnly {
				kind = descriptor.KeywordOnly
			}
			p := descriptor.Parameter{
				Name:          e.Name,
				TypeSignature: typeFor(declared, e.Name),
				Kind:          kind,
			}
			if e.Default != "" {
				p.HasDefault = true
				p.DefaultRepr = renderDefault(e.Default)
			}
			params = append(params, p)
		}
	}

	// Declared parameters the spec does not name keep declaration order.
	for _, p := range fn.Params {
		if inSpec[p.Name] {
			continue
		}
		kind := descriptor.PositionalOrKeyword
		if keywordOnly {
			kind = descriptor.KeywordOnly
		}
		params = append(params, descriptor.Parameter{
			Name:          p.Name,
			TypeSignature: p.Type,
			Kind:          kind,
		})
	}

	return params, nil
}

func typeFor(declared map[string]string, name string) string {
	if t, ok := declared[name]; ok && t != "" {
		return t
	}
	return "typing.Any"
}

var kindRank = map[descriptor.PassingKind]int{
	descriptor.PositionalOnly:      0,
	descriptor.PositionalOrKeyword: 1,
	descriptor.VarPositional:       2,
	descriptor.KeywordOnly:         3,
	descriptor.VarKeyword:          4,
}

func validate(params []descriptor.Parameter, loc syntax.Location) (Convention, error) {
	var conv Convention
	seen := make(map[string]bool, len(params))
	lastRank := -1
	positionalDefaults := false
	keywordDefaults := false

	for _, p := range params {
		if seen[p.Name] {
			return Convention{}, diag.New(diag.KindDuplicateParam, p.Name,
				fmt.Sprintf("parameter %q declared more than once", p.Name)).At(loc)
		}
		seen[p.Name] = true

		rank := kindRank[p.Kind]
		if rank < lastRank {
			return Convention{}, diag.New(diag.KindOrderingViolation, p.Name,
				fmt.Sprintf("%s parameter %q out of order", p.Kind, p.Name)).At(loc)
		}
		lastRank = rank

		switch p.Kind {
		case descriptor.PositionalOnly:
			conv.PositionalOnlyCount++
		case descriptor.KeywordOnly:
			conv.KeywordOnlyCount++
		case descriptor.VarPositional:
			if conv.HasVarPositional {
				return Convention{}, diag.New(diag.KindOrderingViolation, p.Name,
					"more than one var-positional parameter").At(loc)
			}
			conv.HasVarPositional = true
			if p.HasDefault {
				return Convention{}, diag.New(diag.KindOrderingViolation, p.Name,
					fmt.Sprintf("var-positional parameter %q cannot take a default", p.Name)).At(loc)
			}
		case descriptor.VarKeyword:
			if conv.HasVarKeyword {
				return Convention{}, diag.New(diag.KindOrderingViolation, p.Name,
					"more than one var-keyword parameter").At(loc)
			}
			conv.HasVarKeyword = true
			if p.HasDefault {
				return Convention{}, diag.New(diag.KindOrderingViolation, p.Name,
					fmt.Sprintf("var-keyword parameter %q cannot take a default", p.Name)).At(loc)
			}
		}

		// No required parameter after a defaulted one within the same group.
		switch p.Kind {
		case descriptor.PositionalOnly, descriptor.PositionalOrKeyword:
			if p.HasDefault {
				positionalDefaults = true
			} else if positionalDefaults {
				return Convention{}, diag.New(diag.KindDefaultOrderingViolation, p.Name,
					fmt.Sprintf("required parameter %q follows a defaulted parameter", p.Name)).At(loc)
			}
		case descriptor.KeywordOnly:
			if p.HasDefault {
				keywordDefaults = true
			} else if keywordDefaults {
				return Convention{}, diag.New(diag.KindDefaultOrderingViolation, p.Name,
					fmt.Sprintf("required keyword parameter %q follows a defaulted parameter", p.Name)).At(loc)
			}
		}
	}

	return conv, nil
}

var (
	numberLit = regexp.MustCompile(`^-?[0-9][0-9_]*(\.[0-9_]+)?([eE][+-]?[0-9]+)?$`)
	identLit  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// renderDefault produces the documentation-only default representation.
// Literals survive verbatim (booleans and unit mapped to their Python
// spellings); anything else collapses to `...` since defaults are never
// executed from the stub.
func renderDefault(text string) string {
	text = strings.TrimSpace(text)
	switch text {
	case "true":
		return "True"
	case "false":
		return "False"
	case "None", "()":
		return "None"
	}
	if numberLit.MatchString(text) {
		return strings.ReplaceAll(text, "_", "")
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		return text
	}
	if identLit.MatchString(text) {
		// Bare identifier (e.g. a const); not reproducible without resolution.
		return "..."
	}
	return "..."
}
