// # internal/compile/methods.go
package compile

import (
	"fmt"
	"strings"

	"pystub/internal/descriptor"
	"pystub/internal/diag"
	"pystub/internal/signature"
	"pystub/internal/syntax"
)

type propState struct {
	name       string
	getterType string
	setterType string
	readable   bool
	writable   bool
	doc        string
	loc        syntax.Location
}

// Methods compiles an associated-callables block. Classification is
// structural: a receiver means instance method unless a class-level marker
// says otherwise, no receiver means static. Getter/setter markers route into
// property entries paired by name.
func Methods(block syntax.ImplBlock) (descriptor.MethodsBlock, error) {
	out := descriptor.MethodsBlock{TargetIdentity: block.SelfType}

	props := make(map[string]*propState)
	var propOrder []string

	for _, fn := range block.Fns {
		spec, err := sigSpec(fn.Attrs)
		if err != nil {
			return descriptor.MethodsBlock{}, err
		}
		params, _, err := signature.Analyze(fn, spec)
		if err != nil {
			return descriptor.MethodsBlock{}, err
		}

		callable := descriptor.Callable{
			Name:       fn.Name,
			Parameters: params,
			ReturnType: fn.Return,
			Doc:        docOf(fn.Doc),
		}

		kind := classify(fn)
		out.Methods = append(out.Methods, descriptor.Method{Callable: callable, Kind: kind})

		switch kind {
		case descriptor.MethodGetter:
			p := propFor(props, &propOrder, propertyName(fn, "get_"))
			p.readable = true
			p.getterType = strings.TrimSpace(fn.Return)
			if p.doc == "" {
				p.doc = docOf(fn.Doc)
			}
			p.loc = fn.Location
		case descriptor.MethodSetter:
			p := propFor(props, &propOrder, propertyName(fn, "set_"))
			p.writable = true
			if len(fn.Params) > 0 {
				p.setterType = strings.TrimSpace(fn.Params[len(fn.Params)-1].Type)
			}
			if p.loc.File == "" {
				p.loc = fn.Location
			}
		}
	}

	for _, name := range propOrder {
		p := props[name]
		if p.writable && !p.readable {
			return descriptor.MethodsBlock{}, diag.New(diag.KindSetterWithoutGetter, name,
				fmt.Sprintf("property %q has a setter but no getter", name)).At(p.loc)
		}
		typeSig := p.getterType
		if p.readable && p.writable && p.setterType != "" && p.getterType != "" && p.setterType != p.getterType {
			return descriptor.MethodsBlock{}, diag.New(diag.KindPropertyTypeMismatch, name,
				fmt.Sprintf("property %q getter type %q disagrees with setter type %q", name, p.getterType, p.setterType)).At(p.loc)
		}
		if typeSig == "" {
			typeSig = p.setterType
		}
		out.Properties = append(out.Properties, descriptor.Property{
			Name:          name,
			TypeSignature: typeSig,
			Readable:      p.readable,
			Writable:      p.writable,
			Doc:           p.doc,
		})
	}

	return out, nil
}

func classify(fn syntax.FnDecl) descriptor.MethodKind {
	switch {
	case syntax.HasAttr(fn.Attrs, "new"):
		return descriptor.MethodConstructor
	case syntax.HasAttr(fn.Attrs, "getter"):
		return descriptor.MethodGetter
	case syntax.HasAttr(fn.Attrs, "setter"):
		return descriptor.MethodSetter
	case syntax.HasAttr(fn.Attrs, "classmethod"):
		return descriptor.MethodClass
	case syntax.HasAttr(fn.Attrs, "staticmethod"):
		return descriptor.MethodStatic
	case fn.HasReceiver:
		return descriptor.MethodInstance
	default:
		return descriptor.MethodStatic
	}
}

// propertyName resolves the exposed property name: the marker's explicit
// argument wins, else the function name with its get_/set_ prefix stripped.
func propertyName(fn syntax.FnDecl, prefix string) string {
	for _, path := range []string{"getter", "setter"} {
		if a := syntax.FindAttr(fn.Attrs, path); a != nil && len(a.Tokens) > 0 {
			if name := strings.TrimSpace(a.Tokens[0]); name != "" {
				return name
			}
		}
	}
	return strings.TrimPrefix(fn.Name, prefix)
}

func propFor(props map[string]*propState, order *[]string, name string) *propState {
	if p, ok := props[name]; ok {
		return p
	}
	p := &propState{name: name}
	props[name] = p
	*order = append(*order, name)
	return p
}
