// # internal/emit/emit.go
package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pystub/internal/descriptor"
	"pystub/internal/registry"
)

// Fragment renders a descriptor as the textual registration block the stub
// aggregator collects — the scanner-side analog of the source-rewriting
// `submit!` side effect. Compilation failures never reach this point, so a
// fragment always describes a complete descriptor.
func Fragment(d descriptor.Descriptor) string {
	var b strings.Builder

	switch v := d.(type) {
	case descriptor.Class:
		b.WriteString("submit! {\n  ClassInfo {\n")
		writeStr(&b, "name", v.ExposedName)
		writeOpt(&b, "module", v.Module)
		writeStr(&b, "doc", v.Doc)
		b.WriteString("    members: [\n")
		for _, m := range v.Members {
			fmt.Fprintf(&b, "      MemberInfo { name: %q, type: %q, get: %v, set: %v },\n",
				m.Name, m.TypeSignature, m.Readable, m.Writable)
		}
		b.WriteString("    ],\n")
		if v.Constructor != nil {
			fmt.Fprintf(&b, "    new: Some(%s),\n", callableText(*v.Constructor))
		} else {
			b.WriteString("    new: None,\n")
		}
		b.WriteString("  }\n}\n")

	case descriptor.Enum:
		b.WriteString("submit! {\n  EnumInfo {\n")
		writeStr(&b, "name", v.ExposedName)
		writeOpt(&b, "module", v.Module)
		writeStr(&b, "doc", v.Doc)
		b.WriteString("    variants: [\n")
		for _, variant := range v.Variants {
			fmt.Fprintf(&b, "      (%q, %q),\n", variant.Name, variant.Value)
		}
		b.WriteString("    ],\n  }\n}\n")

	case descriptor.MethodsBlock:
		b.WriteString("submit! {\n  MethodsInfo {\n")
		writeStr(&b, "target", v.TargetIdentity)
		b.WriteString("    methods: [\n")
		for _, m := range v.Methods {
			fmt.Fprintf(&b, "      (%s, %s),\n", m.Kind, callableText(m.Callable))
		}
		b.WriteString("    ],\n    properties: [\n")
		for _, p := range v.Properties {
			fmt.Fprintf(&b, "      PropertyInfo { name: %q, type: %q, get: %v, set: %v },\n",
				p.Name, p.TypeSignature, p.Readable, p.Writable)
		}
		b.WriteString("    ],\n  }\n}\n")

	case descriptor.Function:
		b.WriteString("submit! {\n  FunctionInfo {\n")
		writeOpt(&b, "module", v.Module)
		fmt.Fprintf(&b, "    func: %s,\n", callableText(v.Callable))
		b.WriteString("  }\n}\n")
	}

	return b.String()
}

func callableText(c descriptor.Callable) string {
	parts := make([]string, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		s := p.Name
		switch p.Kind {
		case descriptor.VarPositional:
			s = "*" + s
		case descriptor.VarKeyword:
			s = "**" + s
		}
		if p.TypeSignature != "" {
			s += ": " + p.TypeSignature
		}
		if p.HasDefault {
			s += " = " + p.DefaultRepr
		}
		parts = append(parts, s)
	}
	ret := c.ReturnType
	if ret == "" {
		ret = "None"
	}
	return fmt.Sprintf("%s(%s) -> %s", c.Name, strings.Join(parts, ", "), ret)
}

func writeStr(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "    %s: %q,\n", key, value)
}

func writeOpt(b *strings.Builder, key, value string) {
	if value == "" {
		fmt.Fprintf(b, "    %s: None,\n", key)
		return
	}
	fmt.Fprintf(b, "    %s: Some(%q),\n", key, value)
}

// Record is one catalog entry as serialized for the aggregator.
type Record struct {
	Kind       string `json:"kind"`
	Key        string `json:"key"`
	SourceFile string `json:"source_file"`
	Descriptor any    `json:"descriptor"`
}

// Catalog serializes a registry snapshot. Entries arrive identity-sorted
// from the registry, so output is deterministic across runs.
func Catalog(entries []registry.Entry) ([]byte, error) {
	records := make([]Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, Record{
			Kind:       e.Descriptor.DescriptorKind().String(),
			Key:        e.Key,
			SourceFile: e.SourceFile,
			Descriptor: e.Descriptor,
		})
	}
	return json.MarshalIndent(records, "", "  ")
}

// WriteCatalog writes the catalog file, creating parent directories as
// needed.
func WriteCatalog(entries []registry.Entry, path string) error {
	data, err := Catalog(entries)
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog directory %q: %w", dir, err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// WriteFragments writes every registration fragment to one file, in catalog
// order.
func WriteFragments(entries []registry.Entry, path string) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(Fragment(e.Descriptor))
		b.WriteString("\n")
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create fragments directory %q: %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
