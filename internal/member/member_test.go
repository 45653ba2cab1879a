package member

import (
	"testing"

	"pystub/internal/attr"
	"pystub/internal/diag"
	"pystub/internal/syntax"
)

func pyo3(tokens ...string) []syntax.Attr {
	return []syntax.Attr{{Path: "pyo3", Tokens: tokens}}
}

func TestExtractExplicitVisibilityOnly(t *testing.T) {
	fields := []syntax.Field{
		{Name: "x", Type: "f64", Attrs: pyo3("get")},
		{Name: "hidden", Type: "u32"},
		{Name: "y", Type: "f64", Attrs: pyo3("get", "set")},
	}

	members, err := Extract(fields, attr.Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(members) != 2 {
		t.Fatalf("Expected 2 members, got %d", len(members))
	}
	if members[0].Name != "x" || !members[0].Readable || members[0].Writable {
		t.Errorf("Expected x read-only, got %+v", members[0])
	}
	if members[1].Name != "y" || !members[1].Readable || !members[1].Writable {
		t.Errorf("Expected y read-write, got %+v", members[1])
	}
}

func TestExtractClassLevelFlags(t *testing.T) {
	opts, err := attr.Parse([]string{"get_all"}, syntax.Location{})
	if err != nil {
		t.Fatal(err)
	}

	fields := []syntax.Field{
		{Name: "a", Type: "i64"},
		{Name: "b", Type: "String"},
	}

	members, err := Extract(fields, opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(members) != 2 {
		t.Fatalf("Expected all fields covered by get_all, got %d", len(members))
	}
	for _, m := range members {
		if !m.Readable || m.Writable {
			t.Errorf("Expected %q read-only under get_all, got %+v", m.Name, m)
		}
	}
}

func TestExtractFieldRename(t *testing.T) {
	fields := []syntax.Field{
		{Name: "inner_value", Type: "i64", Attrs: pyo3("get", `name = "value"`)},
	}

	members, err := Extract(fields, attr.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 {
		t.Fatalf("Expected 1 member, got %d", len(members))
	}
	if members[0].Name != "value" {
		t.Errorf("Expected exposed name value, got %q", members[0].Name)
	}
	if members[0].TypeSignature != "i64" {
		t.Errorf("Expected type i64, got %q", members[0].TypeSignature)
	}
}

func TestExtractWriteOnlyMissingType(t *testing.T) {
	fields := []syntax.Field{
		{Name: "w", Type: "", Attrs: pyo3("set")},
	}

	_, err := Extract(fields, attr.Options{})
	if !diag.IsKind(err, diag.KindMemberMissingType) {
		t.Errorf("Expected MEMBER_MISSING_TYPE, got %v", err)
	}
	if diag.IdentOf(err) != "w" {
		t.Errorf("Expected offending field w, got %q", diag.IdentOf(err))
	}
}

func TestExtractOrderPreserved(t *testing.T) {
	fields := []syntax.Field{
		{Name: "c", Type: "i64", Attrs: pyo3("get")},
		{Name: "a", Type: "i64", Attrs: pyo3("get")},
		{Name: "b", Type: "i64", Attrs: pyo3("get")},
	}

	members, err := Extract(fields, attr.Options{})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"c", "a", "b"}
	for i, name := range expected {
		if members[i].Name != name {
			t.Errorf("position %d: expected %q, got %q", i, name, members[i].Name)
		}
	}
}
