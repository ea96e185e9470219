package sema

import (
	"testing"

	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/parser"
)

func resolve(t *testing.T, src string) (*Analysis, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink()
	file := parser.New(lexer.Tokenize(src, sink), sink).ParseFile("test.c")
	an := Resolve(file, sink)
	return an, sink
}

func mustResolve(t *testing.T, src string) *Analysis {
	t.Helper()
	an, sink := resolve(t, src)
	if sink.HasErrors() {
		t.Fatalf("unexpected errors: %v", sink.Diagnostics())
	}
	return an
}

func TestResolveSimpleUnit(t *testing.T) {
	an := mustResolve(t, `
int add(int a, int b) { return a + b; }
int main(void) { return add(2, 3); }
`)
	if len(an.Funcs) != 2 {
		t.Fatalf("funcs = %d, want 2", len(an.Funcs))
	}
	if an.Funcs[0].Name != "add" || an.Funcs[1].Name != "main" {
		t.Errorf("func order = %s, %s", an.Funcs[0].Name, an.Funcs[1].Name)
	}
	if an.HasState() {
		t.Error("unit without globals should not need state")
	}
}

func TestUndeclaredIdent(t *testing.T) {
	_, sink := resolve(t, "int f(void) { return missing; }")
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1", sink.ErrorCount())
	}
	d := sink.Diagnostics()[0]
	if d.Category != diag.CategorySemantic {
		t.Errorf("category = %s, want semantic", d.Category)
	}
}

func TestConstArrayElementAssign(t *testing.T) {
	_, sink := resolve(t, `
const int tab[3] = {1, 2, 3};
int f(void) { tab[0] = 9; return 0; }
`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", sink.ErrorCount(), sink.Diagnostics())
	}
}

func TestConstScalarAssign(t *testing.T) {
	_, sink := resolve(t, "int f(void) { const int c = 1; c = 2; return c; }")
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", sink.ErrorCount(), sink.Diagnostics())
	}
}

func TestDiagnosticsOrderedByOffset(t *testing.T) {
	_, sink := resolve(t, `
int f(void) { return first_missing; }
int g(void) { return second_missing; }
`)
	diags := sink.Diagnostics()
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(diags))
	}
	if diags[0].Pos.Offset >= diags[1].Pos.Offset {
		t.Errorf("diagnostics out of order: %d then %d",
			diags[0].Pos.Offset, diags[1].Pos.Offset)
	}
}

func TestNeedsStatePropagation(t *testing.T) {
	an := mustResolve(t, `
int counter = 0;
void bump(void) { counter = counter + 1; }
void twice(void) { bump(); bump(); }
int pure(int x) { return x * 2; }
int main(void) { twice(); return pure(counter); }
`)
	for _, name := range []string{"bump", "twice", "main"} {
		if !an.NeedsState[name] {
			t.Errorf("NeedsState[%s] = false, want true", name)
		}
	}
	if an.NeedsState["pure"] {
		t.Error("NeedsState[pure] = true, want false")
	}
}

func TestStaticLocals(t *testing.T) {
	an := mustResolve(t, `
int next(void) { static int n = 0; n = n + 1; return n; }
int other(void) { static int n = 100; return n; }
`)
	if len(an.StaticLocals) != 2 {
		t.Fatalf("static locals = %d, want 2", len(an.StaticLocals))
	}
	a := an.StaticLocals[0].Decl.UniqueName
	b := an.StaticLocals[1].Decl.UniqueName
	if a == b {
		t.Errorf("unique names collide: %q", a)
	}
	if !an.NeedsState["next"] || !an.NeedsState["other"] {
		t.Error("functions with static locals must need state")
	}
}

func TestPointerArithMarksSlice(t *testing.T) {
	an := mustResolve(t, `
int sum(int *p, int n) {
	int s = 0;
	int i;
	for (i = 0; i < n; i++) s = s + p[i];
	return s;
}
`)
	fn := an.Funcs[0]
	if !fn.Params[0].UsesArith {
		t.Error("subscripted pointer parameter should be marked for slice representation")
	}
}

func TestPointerArithScale(t *testing.T) {
	an := mustResolve(t, "int f(int *p) { return *(p + 2); }")
	fn := an.Funcs[0]
	ret := fn.Body.Statements[0].(*parser.ReturnStmt)
	deref := ret.Value.(*parser.UnaryExpr)
	bin := deref.Expr.(*parser.BinaryExpr)
	if bin.A().Scale != 4 {
		t.Errorf("scale = %d, want 4 (sizeof int)", bin.A().Scale)
	}
}

func TestLabelsNumbered(t *testing.T) {
	an := mustResolve(t, `
int f(void) {
	int r = 0;
	goto done;
	r = 1;
done:
	return r;
}
`)
	fn := an.Funcs[0]
	if len(fn.Labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(fn.Labels))
	}
	if fn.Labels[0].Name != "done" || fn.Labels[0].State != 1 {
		t.Errorf("label = %+v, want done/1", fn.Labels[0])
	}
}

func TestUndefinedLabel(t *testing.T) {
	_, sink := resolve(t, "void f(void) { goto nowhere; }")
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", sink.ErrorCount(), sink.Diagnostics())
	}
}

func TestDuplicateCase(t *testing.T) {
	_, sink := resolve(t, `
void f(int x) {
	switch (x) {
	case 1: break;
	case 1: break;
	}
}
`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", sink.ErrorCount(), sink.Diagnostics())
	}
}

func TestBreakOutsideLoop(t *testing.T) {
	_, sink := resolve(t, "void f(void) { break; }")
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", sink.ErrorCount(), sink.Diagnostics())
	}
}

func TestUnionClassification(t *testing.T) {
	an := mustResolve(t, `
union same { int a; int b; };
union mixed { int i; float f; };
int f(void) { union same s; union mixed m; s.a = 1; m.i = 2; return s.b; }
`)
	if len(an.Unions) != 2 {
		t.Fatalf("unions = %d, want 2", len(an.Unions))
	}
	var same, mixed *ctypes.Union
	for _, u := range an.Unions {
		switch u.Tag {
		case "same":
			same = u
		case "mixed":
			mixed = u
		}
	}
	if same == nil || mixed == nil {
		t.Fatal("union tags not collected")
	}
	if an.UnionBuffer[same] {
		t.Error("union with identical field types should not need a byte buffer")
	}
	if !an.UnionBuffer[mixed] {
		t.Error("union with mixed field types should be buffer-classified")
	}
}

func TestBitFieldWidthChecked(t *testing.T) {
	_, sink := resolve(t, "struct s { int a : 40; }; struct s v;")
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", sink.ErrorCount(), sink.Diagnostics())
	}
}

func TestIdempotentResolve(t *testing.T) {
	src := `
int total = 0;
void add(int n) { total = total + n; }
int main(void) { add(5); return total; }
`
	sink1 := diag.NewSink()
	file := parser.New(lexer.Tokenize(src, sink1), sink1).ParseFile("test.c")
	an1 := Resolve(file, sink1)

	sink2 := diag.NewSink()
	an2 := Resolve(file, sink2)

	if sink1.Count() != sink2.Count() {
		t.Errorf("diagnostic counts differ: %d vs %d", sink1.Count(), sink2.Count())
	}
	if len(an1.Funcs) != len(an2.Funcs) || len(an1.Globals) != len(an2.Globals) {
		t.Error("collected declarations differ between runs")
	}
	for name := range an1.NeedsState {
		if !an2.NeedsState[name] {
			t.Errorf("NeedsState[%s] lost on second resolve", name)
		}
	}
}

func TestVoidValueRejected(t *testing.T) {
	_, sink := resolve(t, `
void nothing(void) {}
int f(void) { return nothing() + 1; }
`)
	if sink.ErrorCount() == 0 {
		t.Fatal("expected an error for using a void value")
	}
}

func TestArgCountChecked(t *testing.T) {
	_, sink := resolve(t, `
int add(int a, int b) { return a + b; }
int f(void) { return add(1); }
`)
	if sink.ErrorCount() != 1 {
		t.Fatalf("error count = %d, want 1: %v", sink.ErrorCount(), sink.Diagnostics())
	}
}
