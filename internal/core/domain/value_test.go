package domain

import (
	"reflect"
	"testing"
)

func TestKind_String(t *testing.T) {
	if KindStr.String() != "string" {
		t.Errorf("KindStr.String() = %q, want %q", KindStr.String(), "string")
	}
	if KindList.String() != "list" {
		t.Errorf("KindList.String() = %q, want %q", KindList.String(), "list")
	}
	if Kind(42).String() != "unknown" {
		t.Errorf("Kind(42).String() = %q, want %q", Kind(42).String(), "unknown")
	}
}

func TestValue_Kinds(t *testing.T) {
	var v Value = NewStr("hello")
	if v.Kind() != KindStr {
		t.Errorf("Str kind = %v, want %v", v.Kind(), KindStr)
	}
	v = NewList()
	if v.Kind() != KindList {
		t.Errorf("List kind = %v, want %v", v.Kind(), KindList)
	}
}

func TestList_PushFront(t *testing.T) {
	l := NewList()
	if n := l.PushFront("a", "b", "c"); n != 3 {
		t.Fatalf("PushFront length = %d, want 3", n)
	}
	if got := l.Items(); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("Items() = %v, want [c b a]", got)
	}

	if n := l.PushFront("d"); n != 4 {
		t.Fatalf("PushFront length = %d, want 4", n)
	}
	if got := l.Items(); !reflect.DeepEqual(got, []string{"d", "c", "b", "a"}) {
		t.Errorf("Items() = %v, want [d c b a]", got)
	}
}

func TestList_PopFront(t *testing.T) {
	tests := []struct {
		name      string
		items     []string
		n         int
		wantPop   []string
		wantAfter []string
	}{
		{"single", []string{"a", "b"}, 1, []string{"a"}, []string{"b"}},
		{"partial", []string{"a"}, 2, []string{"a"}, []string{}},
		{"all", []string{"a", "b", "c"}, 3, []string{"a", "b", "c"}, []string{}},
		{"zero", []string{"a"}, 0, nil, []string{"a"}},
		{"empty list", nil, 1, nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList(tt.items...)
			if got := l.PopFront(tt.n); !reflect.DeepEqual(got, tt.wantPop) {
				t.Errorf("PopFront(%d) = %v, want %v", tt.n, got, tt.wantPop)
			}
			if got := l.Items(); !reflect.DeepEqual(got, tt.wantAfter) {
				t.Errorf("Items() after pop = %v, want %v", got, tt.wantAfter)
			}
		})
	}
}

func TestList_Range(t *testing.T) {
	l := NewList("a", "b", "c")

	tests := []struct {
		name        string
		start, stop int
		want        []string
	}{
		{"full inclusive", 0, 2, []string{"a", "b", "c"}},
		{"single element", 1, 1, []string{"b"}},
		{"stop beyond end", 1, 10, []string{"b", "c"}},
		{"start beyond end", 5, 10, nil},
		{"start after stop", 2, 1, nil},
		{"negative stop", 0, -1, []string{"a", "b", "c"}},
		{"negative both", -2, -1, []string{"b", "c"}},
		{"negative start clamped", -10, 0, []string{"a"}},
		{"negative stop below head", 0, -10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Range(tt.start, tt.stop); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Range(%d, %d) = %v, want %v", tt.start, tt.stop, got, tt.want)
			}
		})
	}
}

func TestList_ItemsIsCopy(t *testing.T) {
	l := NewList("a", "b")
	items := l.Items()
	items[0] = "mutated"

	if got := l.Items(); got[0] != "a" {
		t.Errorf("Items() leaked internal slice, head = %q", got[0])
	}
}
