package expr_test

import (
	"strings"
	"testing"

	"exprnorm/internal/expr"
	"exprnorm/internal/source"
	"exprnorm/internal/testkit"
)

func TestFormat(t *testing.T) {
	w := testkit.NewWidgets(t)
	b := w.Types.Builtins()
	x := w.Param("x")
	sp := source.Span{}
	add := func(l, r *expr.Expr) *expr.Expr { return expr.NewBinary(expr.BinaryAdd, l, r, b.Int, sp) }
	mul := func(l, r *expr.Expr) *expr.Expr { return expr.NewBinary(expr.BinaryMul, l, r, b.Int, sp) }

	tests := []struct {
		name string
		e    *expr.Expr
		want string
	}{
		{"member", expr.NewMemberAccess(x, w.Name, sp), "x.Name"},
		{"chain", expr.NewMemberAccess(expr.NewMemberAccess(x, w.Parent, sp), w.Count, sp), "x.Parent.Count"},
		{"index", expr.NewIndex(x, w.Item2, []*expr.Expr{w.Int(1), w.Int(2)}, sp), "x[1, 2]"},
		{"assign", expr.NewAssign(expr.NewMemberAccess(x, w.Name, sp), w.Str("n"), sp), `x.Name = "n"`},
		{"call", w.Call(x, w.Resize, w.Int(1), w.Int(2)), "x.Resize(1, 2)"},
		{"static call", w.Call(nil, w.Create, w.Int(1)), "Widget.Create(1)"},
		{"accessor call", w.Call(x, w.Item1.GetAccessor(), w.Int(3)), "x.get_Item(3)"},
		{"precedence kept", add(w.Int(1), mul(w.Int(2), w.Int(3))), "1 + 2 * 3"},
		{"precedence parens", mul(add(w.Int(1), w.Int(2)), w.Int(3)), "(1 + 2) * 3"},
		{"left assoc", expr.NewBinary(expr.BinarySub, w.Int(1), expr.NewBinary(expr.BinarySub, w.Int(2), w.Int(3), b.Int, sp), b.Int, sp), "1 - (2 - 3)"},
		{"unary", expr.NewUnary(expr.UnaryNeg, add(w.Int(1), w.Int(2)), b.Int, sp), "-(1 + 2)"},
		{"conditional", expr.NewConditional(expr.NewBool(b.Bool, true, sp), w.Int(1), w.Int(2), sp), "true ? 1 : 2"},
		{"array", expr.NewArray(w.Types.ArrayOf(b.Int), b.Int, []*expr.Expr{w.Int(1), w.Int(2)}, sp), "new int[]{1, 2}"},
		{"lambda", expr.NewLambda([]*expr.Expr{x}, expr.NewMemberAccess(x, w.Name, sp), sp), "(x: Widget) => x.Name"},
		{"float", expr.NewFloat(b.Float, 2, sp), "2.0"},
		{"null", expr.NewNull(w.Widget, sp), "null"},
	}
	p := expr.NewPrinter(w.Types)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Format(tt.e); got != tt.want {
				t.Errorf("Format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	w := testkit.NewWidgets(t)
	sp := source.Span{}

	a := expr.NewIndex(w.Param("x"), w.Item1, []*expr.Expr{w.Int(3)}, sp)
	b := expr.NewIndex(w.Param("x"), w.Item1, []*expr.Expr{w.Int(3)}, source.Span{Start: 4, End: 9})
	if !expr.Equal(a, b) {
		t.Error("trees differing only in spans and node identity must be equal")
	}

	differ := map[string]*expr.Expr{
		"other parameter": expr.NewIndex(w.Param("y"), w.Item1, []*expr.Expr{w.Int(3)}, sp),
		"other argument":  expr.NewIndex(w.Param("x"), w.Item1, []*expr.Expr{w.Int(4)}, sp),
		"other indexer":   expr.NewIndex(w.Param("x"), w.Item2, []*expr.Expr{w.Int(3), w.Int(0)}, sp),
		"other kind":      w.Call(w.Param("x"), w.Item1.GetAccessor(), w.Int(3)),
	}
	for name, e := range differ {
		if expr.Equal(a, e) {
			t.Errorf("%s: expected trees to differ", name)
		}
	}
	if expr.Equal(a, nil) || !expr.Equal(nil, nil) {
		t.Error("nil handling")
	}
}

func TestRebuildKeepsPayload(t *testing.T) {
	w := testkit.NewWidgets(t)
	x, y := w.Param("x"), w.Param("y")
	call := w.Call(x, w.Resize, w.Int(1), w.Int(2))

	kids := expr.Children(call)
	if len(kids) != 3 || kids[0] != x {
		t.Fatalf("Children = %d nodes", len(kids))
	}
	kids[0] = y
	out := expr.Rebuild(call, kids)
	if out == call {
		t.Fatal("Rebuild must return a new node")
	}
	d := out.Data.(expr.CallData)
	if d.Instance != y || d.Method != w.Resize || len(d.Args) != 2 {
		t.Errorf("rebuilt call lost its payload: %+v", d)
	}
	if call.Data.(expr.CallData).Instance != x {
		t.Error("Rebuild mutated its input")
	}

	static := w.Call(nil, w.Create, w.Int(1))
	if got := expr.Rebuild(static, []*expr.Expr{w.Int(2)}).Data.(expr.CallData).Instance; got != nil {
		t.Error("static call gained an instance")
	}
}

func TestRebuildPanicsOnArityMismatch(t *testing.T) {
	w := testkit.NewWidgets(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	expr.Rebuild(w.Call(w.Param("x"), w.Describe), nil)
}

func TestCountAndWalk(t *testing.T) {
	w := testkit.NewWidgets(t)
	x := w.Param("x")
	e := expr.NewAssign(expr.NewMemberAccess(x, w.Name, source.Span{}), w.Call(x, w.Describe), source.Span{})

	if n := expr.Count(e); n != 5 {
		t.Errorf("Count = %d, want 5", n)
	}
	if n := expr.CountKind(e, expr.ExprParameter); n != 2 {
		t.Errorf("CountKind(Parameter) = %d, want 2", n)
	}

	var seen []expr.ExprKind
	expr.Walk(e, func(n *expr.Expr) bool {
		seen = append(seen, n.Kind)
		return n.Kind != expr.ExprMemberAccess
	})
	if len(seen) != 4 {
		t.Errorf("Walk visited %v", seen)
	}
}

func TestDump(t *testing.T) {
	w := testkit.NewWidgets(t)
	e := expr.NewMemberAccess(w.Param("x"), w.Name, source.Span{})

	var sb strings.Builder
	if err := expr.NewPrinter(w.Types).Dump(&sb, e); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	want := "MemberAccess Widget.Name : string\n  Parameter x : Widget\n"
	if sb.String() != want {
		t.Errorf("Dump =\n%s\nwant\n%s", sb.String(), want)
	}
}

func TestLambdaTypedByBody(t *testing.T) {
	w := testkit.NewWidgets(t)
	x := w.Param("x")
	body := expr.NewMemberAccess(x, w.Count, source.Span{})
	if l := expr.NewLambda([]*expr.Expr{x}, body, source.Span{}); l.Type != w.Count.ValueType() {
		t.Errorf("lambda type = %s, want %s", w.Types.String(l.Type), w.Types.String(w.Count.ValueType()))
	}
}
