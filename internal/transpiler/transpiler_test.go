package transpiler

import (
	"strings"
	"testing"

	"github.com/tangzhangming/cango/internal/config"
	"github.com/tangzhangming/cango/internal/diag"
)

func translateOK(t *testing.T, src string) *Result {
	t.Helper()
	res := New().Translate(src, "test.c")
	if res.Metrics.Errors != 0 {
		for _, d := range res.Diagnostics {
			t.Logf("diagnostic: %s", d.Message)
		}
		t.Fatalf("expected no errors, got %d", res.Metrics.Errors)
	}
	if res.GoSource == "" {
		t.Fatal("expected generated source, got empty string")
	}
	return res
}

func wantContains(t *testing.T, src string, parts ...string) {
	t.Helper()
	for _, p := range parts {
		if !strings.Contains(src, p) {
			t.Errorf("output missing %q\n---\n%s", p, src)
		}
	}
}

func TestTranslateFunctionAndEntry(t *testing.T) {
	src := `
int add(int a, int b) {
    return a + b;
}

int main(void) {
    return add(2, 3);
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"// Code generated by cango. DO NOT EDIT.",
		"package main",
		"func add(a int32, b int32) int32 {",
		"return a + b",
		"func cMain() int32 {",
		"return add(2, 3)",
		"func main() {",
		"os.Exit(int(cMain()))",
	)
	if res.Metrics.Functions != 2 {
		t.Errorf("Functions = %d, want 2", res.Metrics.Functions)
	}
}

func TestTranslateCommentedSource(t *testing.T) {
	src := `
/* 入口函数 */
int main(void) {
    // midline note
    int x = 7; /* trailing */
    return x;
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"func cMain() int32 {",
		"var x int32 = 7",
		"return x",
	)
	if res.Metrics.Functions != 1 {
		t.Errorf("Functions = %d, want 1", res.Metrics.Functions)
	}
	if res.Metrics.Warnings != 0 {
		t.Errorf("Warnings = %d, want 0", res.Metrics.Warnings)
	}
}

func TestTranslateForLoop(t *testing.T) {
	src := `
int main(void) {
    int s = 0;
    int i;
    for (i = 1; i <= 10; i++) {
        s = s + i;
    }
    return s;
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"var s int32 = 0",
		"var i int32",
		"for ; i <= 10; i++ {",
		"s = s + i",
		"return s",
	)
}

func TestTranslateBitFields(t *testing.T) {
	src := `
struct flags {
    unsigned int a : 4;
    unsigned int b : 4;
};

int main(void) {
    struct flags f;
    f.a = 10;
    f.b = 11;
    return (int)(f.a + f.b);
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"type flags struct {",
		"_bits0 uint32",
		"func (s *flags) a() uint32 {",
		"func (s *flags) set_a(v uint32) {",
		">> 28",
		"f.set_a(10)",
		"f.set_b(11)",
	)
	// 位域共享一个存储单元，不能出现独立字段
	if strings.Contains(res.GoSource, "a uint32\n") {
		t.Error("bit-field emitted as a plain struct field")
	}
}

func TestTranslateStructLiteralArgument(t *testing.T) {
	src := `
struct Point {
    int x;
    int y;
};

int use(struct Point p) {
    return p.x + p.y;
}

int main(void) {
    return use((struct Point){10, 20});
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"type Point struct {",
		"func use(p Point) int32 {",
		"return p.x + p.y",
		"use(Point{x: 10, y: 20})",
	)
}

func TestTranslateGotoStateMachine(t *testing.T) {
	src := `
int work(int n) {
    int r = 0;
    if (n < 0) goto fail;
    r = n * 2;
    goto done;
fail:
    r = -1;
done:
    return r;
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"var r int32",
		"_state := 0",
		"_dispatch:",
		"case 1:",
		"case 2:",
		"continue _dispatch",
		"r = -1",
		"return r",
	)
	// fail 段必须排在 done 段前面，不然降级改变了执行顺序
	fail := strings.Index(res.GoSource, "r = -1")
	done := strings.Index(res.GoSource, "return r")
	if fail < 0 || done < 0 || fail > done {
		t.Error("state segments emitted out of source order")
	}
}

func TestTranslateConstAssignRejected(t *testing.T) {
	src := `
const int tab[3] = {1, 2, 3};

int main(void) {
    tab[0] = 9;
    return 0;
}
`
	res := New().Translate(src, "test.c")
	if res.Metrics.Errors == 0 {
		t.Fatal("expected an error for assignment to const element")
	}
	if res.GoSource != "" {
		t.Error("GoSource must be empty when errors are present")
	}
	found := false
	for _, d := range res.Diagnostics {
		if d.Severity == diag.SeverityError && d.Category == diag.CategorySemantic {
			found = true
		}
	}
	if !found {
		t.Error("expected a semantic error diagnostic")
	}
}

func TestTranslatePrintf(t *testing.T) {
	src := `
int main(void) {
    printf("n=%d\n", 42);
    return 0;
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		`"fmt"`,
		"fmt.Printf(",
		"42",
	)
}

func TestTranslatePointerArith(t *testing.T) {
	src := `
int third(int *p) {
    return *(p + 2);
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"func third(p []int32) int32 {",
		"p[2:]",
	)
}

func TestTranslateSlicePointerConfig(t *testing.T) {
	src := `
int deref(int *p) {
    return *p;
}
`
	tr := New()
	cfg := config.DefaultConfig()
	cfg.Translate.Pointers = "slice"
	tr.SetConfig(cfg)
	res := tr.Translate(src, "test.c")
	if res.Metrics.Errors != 0 {
		t.Fatalf("expected no errors, got %d", res.Metrics.Errors)
	}
	wantContains(t, res.GoSource,
		"func deref(p []int32) int32 {",
		"return p[0]",
	)
}

func TestTranslateCustomPackageSkipsWrapper(t *testing.T) {
	src := `
int main(void) {
    return 0;
}
`
	tr := New()
	cfg := config.DefaultConfig()
	cfg.Project.Package = "translated"
	tr.SetConfig(cfg)
	res := tr.Translate(src, "test.c")
	if res.Metrics.Errors != 0 {
		t.Fatalf("expected no errors, got %d", res.Metrics.Errors)
	}
	wantContains(t, res.GoSource, "package translated", "func cMain() int32 {")
	if strings.Contains(res.GoSource, "func main() {") {
		t.Error("wrapper must only be emitted for package main")
	}
}

func TestTranslateDeterministic(t *testing.T) {
	src := `
int counter;

int bump(void) {
    counter = counter + 1;
    return counter;
}

int main(void) {
    bump();
    return counter;
}
`
	a := translateOK(t, src).GoSource
	b := translateOK(t, src).GoSource
	if a != b {
		t.Error("same unit translated twice produced different output")
	}
}

func TestTranslateGlobalState(t *testing.T) {
	src := `
int counter = 5;

int bump(void) {
    counter = counter + 1;
    return counter;
}

int main(void) {
    return bump();
}
`
	res := translateOK(t, src)
	wantContains(t, res.GoSource,
		"type progState struct {",
		"func newProgState() *progState {",
		"st.counter = 5",
		"func (st *progState) bump() int32 {",
		"st := newProgState()",
		"os.Exit(int(st.cMain()))",
	)
}
