package types_test

import (
	"sync"
	"testing"

	"exprnorm/internal/types"
)

func TestBuiltinsResolveByName(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	tests := []struct {
		name string
		want types.TypeID
	}{
		{"void", b.Void},
		{"bool", b.Bool},
		{"int", b.Int},
		{"long", b.Long},
		{"float", b.Float},
		{"string", b.String},
		{"object", b.Object},
	}
	for _, tt := range tests {
		got, ok := in.ByName(tt.name)
		if !ok || got != tt.want {
			t.Errorf("ByName(%q) = %d, %v; want %d", tt.name, got, ok, tt.want)
		}
		if s := in.String(got); s != tt.name {
			t.Errorf("String(%d) = %q, want %q", got, s, tt.name)
		}
	}
}

func TestNamedTypesAreStable(t *testing.T) {
	in := types.NewInterner()
	w1 := in.Named("Widget")
	w2 := in.Named("Widget")
	g := in.Named("Gadget")
	if w1 != w2 {
		t.Fatalf("Named is not stable: %d vs %d", w1, w2)
	}
	if w1 == g {
		t.Fatal("distinct names share a TypeID")
	}
	if got := in.String(g); got != "Gadget" {
		t.Errorf("String = %q", got)
	}
	if _, ok := in.ByName("Missing"); ok {
		t.Error("ByName resolved an undeclared type")
	}
}

func TestArrayTypes(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()
	arr := in.ArrayOf(b.Int)
	if arr != in.ArrayOf(b.Int) {
		t.Fatal("ArrayOf is not stable")
	}
	got, ok := in.ByName("int[][]")
	if !ok {
		t.Fatal("ByName(int[][]) failed")
	}
	if got != in.ArrayOf(arr) {
		t.Errorf("int[][] = %d, want %d", got, in.ArrayOf(arr))
	}
	if s := in.String(got); s != "int[][]" {
		t.Errorf("String = %q", s)
	}
	if in.ArrayOf(types.NoTypeID) != types.NoTypeID {
		t.Error("array of invalid type must be invalid")
	}
}

func TestInternerConcurrentNamed(t *testing.T) {
	in := types.NewInterner()
	var wg sync.WaitGroup
	ids := make([]types.TypeID, 16)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = in.Named("Shared")
		}(i)
	}
	wg.Wait()
	for _, id := range ids {
		if id != ids[0] {
			t.Fatalf("concurrent Named returned different ids: %v", ids)
		}
	}
}
