package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/lexer"
)

type parseCase struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
	Decl string `yaml:"decl"`
	Want string `yaml:"want"`
}

type parseFixture struct {
	Expressions []parseCase `yaml:"expressions"`
	Declarators []parseCase `yaml:"declarators"`
}

func loadFixture(t *testing.T) *parseFixture {
	t.Helper()
	data, err := os.ReadFile("testdata/parse.yaml")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	var fx parseFixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &fx
}

func parseUnit(t *testing.T, src string) *File {
	t.Helper()
	sink := diag.NewSink()
	file := New(lexer.Tokenize(src, sink), sink).ParseFile("test.c")
	if sink.HasErrors() {
		t.Fatalf("parse %q: %v", src, sink.Diagnostics())
	}
	return file
}

func TestExpressionFixtures(t *testing.T) {
	fx := loadFixture(t)
	for _, tc := range fx.Expressions {
		t.Run(tc.Name, func(t *testing.T) {
			src := "int f(void) { return " + tc.Expr + "; }"
			file := parseUnit(t, src)
			fn, ok := file.Decls[0].(*FuncDecl)
			if !ok {
				t.Fatalf("first decl is %T, want *FuncDecl", file.Decls[0])
			}
			ret, ok := fn.Body.Statements[0].(*ReturnStmt)
			if !ok {
				t.Fatalf("first stmt is %T, want *ReturnStmt", fn.Body.Statements[0])
			}
			if got := dumpExpr(ret.Value); got != tc.Want {
				t.Errorf("dump = %s, want %s", got, tc.Want)
			}
		})
	}
}

func TestDeclaratorFixtures(t *testing.T) {
	fx := loadFixture(t)
	for _, tc := range fx.Declarators {
		t.Run(tc.Name, func(t *testing.T) {
			file := parseUnit(t, tc.Decl)
			var last *VarDecl
			for _, d := range file.Decls {
				if v, ok := d.(*VarDecl); ok {
					last = v
				}
			}
			if last == nil {
				t.Fatalf("no variable declaration parsed from %q", tc.Decl)
			}
			if got := ctypes.RenderDeclarator(last.Type, last.Name); got != tc.Want {
				t.Errorf("render = %q, want %q", got, tc.Want)
			}
		})
	}
}

// dumpExpr 语法树的前缀形式转印，夹具用
func dumpExpr(e Expression) string {
	switch x := e.(type) {
	case *IntLit:
		return strconv.FormatInt(x.Value, 10)
	case *FloatLit:
		return strconv.FormatFloat(x.Value, 'g', -1, 64)
	case *CharLit:
		return strconv.FormatInt(x.Value, 10)
	case *StringLit:
		return strconv.Quote(x.Value)
	case *Ident:
		return x.Name
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", x.Op, dumpExpr(x.Expr))
	case *IncDecExpr:
		pos := "post"
		if x.Prefix {
			pos = "pre"
		}
		return fmt.Sprintf("(%s%s %s)", pos, x.Op, dumpExpr(x.Expr))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", x.Op, dumpExpr(x.Left), dumpExpr(x.Right))
	case *AssignExpr:
		return fmt.Sprintf("(%s %s %s)", x.Op, dumpExpr(x.Left), dumpExpr(x.Right))
	case *TernaryExpr:
		return fmt.Sprintf("(? %s %s %s)", dumpExpr(x.Cond), dumpExpr(x.Then), dumpExpr(x.Else))
	case *CommaExpr:
		parts := make([]string, len(x.Exprs))
		for i, sub := range x.Exprs {
			parts[i] = dumpExpr(sub)
		}
		return "(, " + strings.Join(parts, " ") + ")"
	case *CallExpr:
		out := "(call " + dumpExpr(x.Fn)
		for _, a := range x.Args {
			out += " " + dumpExpr(a)
		}
		return out + ")"
	case *MemberExpr:
		op := "."
		if x.Arrow {
			op = "->"
		}
		return fmt.Sprintf("(%s %s %s)", op, dumpExpr(x.Expr), x.Name)
	case *IndexExpr:
		return fmt.Sprintf("([] %s %s)", dumpExpr(x.Expr), dumpExpr(x.Index))
	case *CastExpr:
		return fmt.Sprintf("(cast %s %s)", x.To, dumpExpr(x.Expr))
	case *SizeofExpr:
		if x.Type != nil {
			return fmt.Sprintf("(sizeof %s)", x.Type)
		}
		return fmt.Sprintf("(sizeof %s)", dumpExpr(x.Expr))
	case *CompoundLit:
		return fmt.Sprintf("(lit %s)", x.Type)
	}
	return "<nil>"
}

func TestParserRecovery(t *testing.T) {
	// 坏声明不应拖垮后面的声明
	src := "int $bad; int good(void) { return 1; }"
	sink := diag.NewSink()
	file := New(lexer.Tokenize(src, sink), sink).ParseFile("test.c")
	if !sink.HasErrors() {
		t.Fatal("expected diagnostics for bad declaration")
	}
	found := false
	for _, d := range file.Decls {
		if fn, ok := d.(*FuncDecl); ok && fn.Name == "good" {
			found = true
		}
	}
	if !found {
		t.Error("parser did not recover to the following function")
	}
}

func TestStatementRecovery(t *testing.T) {
	src := "int f(void) { int x = ; x = 1; return x; }"
	sink := diag.NewSink()
	file := New(lexer.Tokenize(src, sink), sink).ParseFile("test.c")
	if !sink.HasErrors() {
		t.Fatal("expected diagnostics for bad initializer")
	}
	fn, ok := file.Decls[0].(*FuncDecl)
	if !ok || fn.Body == nil {
		t.Fatal("function body lost during recovery")
	}
	// 恢复后还能看到 return 语句
	found := false
	for _, s := range fn.Body.Statements {
		if _, ok := s.(*ReturnStmt); ok {
			found = true
		}
	}
	if !found {
		t.Error("recovery lost the statements after the error")
	}
}

func TestEvalConst(t *testing.T) {
	tests := []struct {
		expr string
		want int64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"1 << 4", 16},
		{"015", 13},
		{"0x10 | 1", 17},
		{"10 / 3", 3},
		{"-5 % 3", -2},
		{"1 ? 10 : 20", 10},
		{"'A' + 1", 66},
		{"~0 & 0xff", 255},
	}
	for _, tt := range tests {
		sink := diag.NewSink()
		p := New(lexer.Tokenize(tt.expr, sink), sink)
		expr := p.parseTernary()
		if expr == nil {
			t.Errorf("%q: parse failed", tt.expr)
			continue
		}
		got, ok := p.EvalConst(expr)
		if !ok {
			t.Errorf("%q: not constant", tt.expr)
			continue
		}
		if got != tt.want {
			t.Errorf("%q = %d, want %d", tt.expr, got, tt.want)
		}
	}
}

func TestEnumConstantsInParser(t *testing.T) {
	src := "enum color { RED, GREEN = 5, BLUE }; int a[BLUE];"
	file := parseUnit(t, src)
	var arr *VarDecl
	for _, d := range file.Decls {
		if v, ok := d.(*VarDecl); ok {
			arr = v
		}
	}
	if arr == nil {
		t.Fatal("array declaration not parsed")
	}
	at, ok := ctypes.Unqual(arr.Type).(*ctypes.Array)
	if !ok {
		t.Fatalf("type = %s, want array", arr.Type)
	}
	if at.Len != 6 {
		t.Errorf("array length = %d, want 6 (BLUE)", at.Len)
	}
}
