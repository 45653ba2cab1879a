package attr

import (
	"fmt"
	"strings"

	"pystub/internal/diag"
	"pystub/internal/syntax"
)

type Flag string

const (
	FlagMapping     Flag = "mapping"
	FlagSequence    Flag = "sequence"
	FlagFrozen      Flag = "frozen"
	FlagGetAll      Flag = "get_all"
	FlagSetAll      Flag = "set_all"
	FlagEq          Flag = "eq"
	FlagOrd         Flag = "ord"
	FlagHash        Flag = "hash"
	FlagStr         Flag = "str"
	FlagConstructor Flag = "constructor"
)

var knownFlags = map[Flag]bool{
	FlagMapping:     true,
	FlagSequence:    true,
	FlagFrozen:      true,
	FlagGetAll:      true,
	FlagSetAll:      true,
	FlagEq:          true,
	FlagOrd:         true,
	FlagHash:        true,
	FlagStr:         true,
	FlagConstructor: true,
}

// Options is the parsed form of an exposure tag's argument list. Immutable
// once built; one Options value feeds exactly one compiler call.
type Options struct {
	Name   string // renamed exposed name, empty if not renamed
	Module string
	Flags  map[Flag]bool
}

func (o Options) Has(f Flag) bool {
	return o.Flags[f]
}

// Parse decodes raw attribute argument tokens. A bare token sets a boolean
// flag, `key = "literal"` sets a string option. The vocabulary is closed:
// unknown keys fail rather than pass through.
func Parse(tokens []string, loc syntax.Location) (Options, error) {
	opts := Options{Flags: make(map[Flag]bool)}
	seen := make(map[string]bool)

	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		if eq := strings.Index(tok, "="); eq >= 0 {
			key := strings.TrimSpace(tok[:eq])
			value := strings.TrimSpace(tok[eq+1:])

			if seen[key] {
				return Options{}, diag.New(diag.KindDuplicateOption, key,
					fmt.Sprintf("option %q given more than once", key)).At(loc)
			}
			seen[key] = true

			lit, ok := unquote(value)
			if !ok {
				return Options{}, diag.New(diag.KindUnrecognizedOption, key,
					fmt.Sprintf("option %q expects a string literal, got %q", key, value)).At(loc)
			}

			switch key {
			case "name":
				opts.Name = lit
			case "module":
				opts.Module = lit
			default:
				return Options{}, diag.New(diag.KindUnrecognizedOption, key,
					fmt.Sprintf("unrecognized option %q", key)).At(loc)
			}
			continue
		}

		flag := Flag(tok)
		if !knownFlags[flag] {
			return Options{}, diag.New(diag.KindUnrecognizedOption, tok,
				fmt.Sprintf("unrecognized option %q", tok)).At(loc)
		}
		if seen[tok] {
			return Options{}, diag.New(diag.KindDuplicateOption, tok,
				fmt.Sprintf("option %q given more than once", tok)).At(loc)
		}
		seen[tok] = true
		opts.Flags[flag] = true
	}

	return opts, nil
}

func unquote(s string) (string, bool) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}
