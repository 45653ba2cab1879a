package attr

import (
	"testing"

	"pystub/internal/diag"
	"pystub/internal/syntax"
)

func TestParseStringOptionsAndFlags(t *testing.T) {
	opts, err := Parse([]string{`name = "Placeholder"`, `module = "my_module"`, "mapping", "frozen"}, syntax.Location{})
	if err != nil {
		t.Fatal(err)
	}

	if opts.Name != "Placeholder" {
		t.Errorf("Expected name Placeholder, got %q", opts.Name)
	}
	if opts.Module != "my_module" {
		t.Errorf("Expected module my_module, got %q", opts.Module)
	}
	if !opts.Has(FlagMapping) {
		t.Error("mapping flag not set")
	}
	if !opts.Has(FlagFrozen) {
		t.Error("frozen flag not set")
	}
	if opts.Has(FlagSequence) {
		t.Error("sequence flag set without being given")
	}
}

func TestParseEmpty(t *testing.T) {
	opts, err := Parse(nil, syntax.Location{})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Name != "" || opts.Module != "" || len(opts.Flags) != 0 {
		t.Errorf("Expected zero options, got %+v", opts)
	}
}

func TestParseDuplicateKey(t *testing.T) {
	_, err := Parse([]string{`name = "A"`, `name = "B"`}, syntax.Location{})
	if err == nil {
		t.Fatal("expected error for duplicate name option")
	}
	if !diag.IsKind(err, diag.KindDuplicateOption) {
		t.Errorf("Expected DUPLICATE_OPTION, got %v", err)
	}
	if diag.IdentOf(err) != "name" {
		t.Errorf("Expected offending key name, got %q", diag.IdentOf(err))
	}
}

func TestParseDuplicateFlag(t *testing.T) {
	_, err := Parse([]string{"eq", "eq"}, syntax.Location{})
	if !diag.IsKind(err, diag.KindDuplicateOption) {
		t.Errorf("Expected DUPLICATE_OPTION, got %v", err)
	}
}

func TestParseUnrecognizedKey(t *testing.T) {
	_, err := Parse([]string{"subclass"}, syntax.Location{})
	if !diag.IsKind(err, diag.KindUnrecognizedOption) {
		t.Errorf("Expected UNRECOGNIZED_OPTION, got %v", err)
	}
	if diag.IdentOf(err) != "subclass" {
		t.Errorf("Expected offending key subclass, got %q", diag.IdentOf(err))
	}

	_, err = Parse([]string{`extends = "Base"`}, syntax.Location{})
	if !diag.IsKind(err, diag.KindUnrecognizedOption) {
		t.Errorf("Expected UNRECOGNIZED_OPTION for unknown key, got %v", err)
	}
}

func TestParseNonLiteralValue(t *testing.T) {
	_, err := Parse([]string{"name = Placeholder"}, syntax.Location{})
	if !diag.IsKind(err, diag.KindUnrecognizedOption) {
		t.Errorf("Expected UNRECOGNIZED_OPTION for unquoted value, got %v", err)
	}
}
