package util

import (
	"reflect"
	"testing"
)

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{"c": 1, "a": 2, "b": 3}
	if got := SortedStringKeys(m); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Expected sorted keys, got %v", got)
	}
}

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"a, b, c", []string{"a", " b", " c"}},
		{`name = "a,b", get`, []string{`name = "a,b"`, " get"}},
		{"signature = (x, y = 1)", []string{"signature = (x, y = 1)"}},
		{"pair = (1, 2), flag", []string{"pair = (1, 2)", " flag"}},
		{"v: Vec<(i32, i32)>, w: u8", []string{"v: Vec<(i32, i32)>", " w: u8"}},
		{"c = 'x', d = 'y'", []string{"c = 'x'", " d = 'y'"}},
		{"", nil},
	}

	for _, tt := range tests {
		if got := SplitTopLevel(tt.in); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("SplitTopLevel(%q): expected %v, got %v", tt.in, tt.expected, got)
		}
	}
}

func TestSplitTopLevelEscapedQuote(t *testing.T) {
	got := SplitTopLevel(`name = "a\",b", get`)
	if len(got) != 2 {
		t.Fatalf("Expected 2 parts, got %v", got)
	}
	if got[0] != `name = "a\",b"` {
		t.Errorf("Expected escaped quote kept inside literal, got %q", got[0])
	}
}
