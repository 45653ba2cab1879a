package emit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pystub/internal/descriptor"
	"pystub/internal/registry"
)

func TestFragmentClass(t *testing.T) {
	cls := descriptor.Class{
		ExposedName: "Point",
		Module:      "geometry",
		Members: []descriptor.Member{
			{Name: "x", TypeSignature: "f64", Readable: true},
		},
		Constructor: &descriptor.Callable{
			Name: "__init__",
			Parameters: []descriptor.Parameter{
				{Name: "x", TypeSignature: "f64", Kind: descriptor.PositionalOrKeyword},
			},
			ReturnType: "None",
		},
		SourceIdentity: "Point",
	}

	out := Fragment(cls)

	for _, want := range []string{
		"ClassInfo {",
		`name: "Point"`,
		`module: Some("geometry")`,
		`MemberInfo { name: "x", type: "f64", get: true, set: false }`,
		"new: Some(__init__(x: f64) -> None)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Fragment missing %q:\n%s", want, out)
		}
	}
}

func TestFragmentEnum(t *testing.T) {
	enum := descriptor.Enum{
		ExposedName: "Color",
		Variants: []descriptor.VariantPair{
			{Name: "Red", Value: "0"},
			{Name: "Green", Value: "10"},
		},
		SourceIdentity: "Color",
	}

	out := Fragment(enum)

	if !strings.Contains(out, "EnumInfo {") {
		t.Errorf("Expected EnumInfo block:\n%s", out)
	}
	if !strings.Contains(out, `("Red", "0")`) || !strings.Contains(out, `("Green", "10")`) {
		t.Errorf("Expected variant pairs:\n%s", out)
	}
	if !strings.Contains(out, "module: None") {
		t.Errorf("Expected absent module rendered as None:\n%s", out)
	}
}

func TestCallableText(t *testing.T) {
	c := descriptor.Callable{
		Name: "scale",
		Parameters: []descriptor.Parameter{
			{Name: "factor", TypeSignature: "f64", Kind: descriptor.PositionalOrKeyword, HasDefault: true, DefaultRepr: "1.0"},
			{Name: "args", Kind: descriptor.VarPositional},
			{Name: "kwargs", Kind: descriptor.VarKeyword},
		},
	}

	got := callableText(c)
	expected := "scale(factor: f64 = 1.0, *args, **kwargs) -> None"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestWriteCatalog(t *testing.T) {
	r := registry.New()
	r.Register(descriptor.Class{ExposedName: "Point", SourceIdentity: "Point"}, "a.rs")
	r.Register(descriptor.Function{
		Callable:       descriptor.Callable{Name: "distance"},
		SourceIdentity: "distance",
	}, "b.rs")

	path := filepath.Join(t.TempDir(), "out", "catalog.json")
	if err := WriteCatalog(r.Snapshot(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].Kind != "class" || records[0].Key != "class:Point" {
		t.Errorf("Expected class record first, got %+v", records[0])
	}
	if records[1].SourceFile != "b.rs" {
		t.Errorf("Expected source file b.rs, got %q", records[1].SourceFile)
	}
}

func TestWriteFragments(t *testing.T) {
	r := registry.New()
	r.Register(descriptor.Enum{
		ExposedName:    "Color",
		Variants:       []descriptor.VariantPair{{Name: "Red", Value: "0"}},
		SourceIdentity: "Color",
	}, "a.rs")

	path := filepath.Join(t.TempDir(), "fragments.rs.txt")
	if err := WriteFragments(r.Snapshot(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "submit! {") {
		t.Errorf("Expected submit block in fragments file:\n%s", data)
	}
}
