package transpiler

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/i18n"
	"github.com/tangzhangming/cango/internal/parser"
	"github.com/tangzhangming/cango/internal/sema"
	"github.com/tangzhangming/cango/internal/symbol"
)

// genCall 函数调用。返回生成的表达式和它能否直接当值用
// （fmt.Printf 一类多返回值的调用要先提升）。
func (g *CodeGen) genCall(x *parser.CallExpr) (string, bool) {
	id, isIdent := x.Fn.(*parser.Ident)
	if isIdent && (id.Decl == nil || id.Decl.IsFunc) {
		name := id.Name
		userDefined := g.fns[name] != nil
		if !userDefined {
			switch name {
			case "printf":
				return g.genPrintf(x.Args, ""), false
			case "fprintf":
				return g.genFprintf(x)
			case "sprintf":
				return g.genSprintf(x), true
			case "scanf":
				return g.genScanf(x), true
			case "exit":
				g.goImports["os"] = true
				if len(x.Args) == 1 {
					return "os.Exit(int(" + g.genExpr(x.Args[0]) + "))", true
				}
				return "os.Exit(0)", true
			case "free":
				if len(x.Args) == 1 {
					return "_ = " + g.genExpr(x.Args[0]), true
				}
				return "_ = 0", true
			case "malloc", "calloc":
				// 没有目标类型的裸分配按字节缓冲处理
				return g.genAlloc(ctypes.CChar(), x), true
			case "realloc", "qsort", "sscanf", "gets", "fgets", "fputs":
				return g.genUnknownCall(x, name), true
			}
			if h, ok := helperCalls[name]; ok {
				return g.genHelperCall(x, id, h), true
			}
			if m, ok := mathCalls[name]; ok {
				return g.genMathCall(x, m), true
			}
			if sema.IsBuiltin(name) || id.Decl == nil {
				return g.genUnknownCall(x, name), true
			}
		}
		return g.genUserCall(x, id), true
	}

	// 函数指针调用
	fn := g.genExpr(x.Fn)
	ft := funcTypeOf(x.Fn.A().Type)
	return parenExpr(fn) + "(" + g.genArgs(x.Args, ft, nil) + ")", true
}

func funcTypeOf(t ctypes.Type) *ctypes.Func {
	if t == nil {
		return nil
	}
	u := ctypes.Unqual(ctypes.Decay(t))
	if p, ok := u.(*ctypes.Pointer); ok {
		u = ctypes.Unqual(p.Elem)
	}
	f, _ := u.(*ctypes.Func)
	return f
}

// genUserCall 用户函数调用，参数按形参逐个转换
func (g *CodeGen) genUserCall(x *parser.CallExpr, id *parser.Ident) string {
	target := goName(id.Name)
	if g.an.NeedsState[id.Name] {
		target = "st." + target
	}
	fn := g.fns[id.Name]
	ft := funcTypeOf(id.A().Type)
	if ft == nil && id.Decl != nil {
		ft = funcTypeOf(id.Decl.Type)
	}
	var decls []*symbol.Declaration
	if fn != nil {
		decls = fn.Params
	}
	return target + "(" + g.genArgs(x.Args, ft, decls) + ")"
}

// genArgs 实参列表。形参已知时按形参类型和表示转换。
func (g *CodeGen) genArgs(args []parser.Expression, ft *ctypes.Func, decls []*symbol.Declaration) string {
	var parts []string
	for i, a := range args {
		if ft != nil && i < len(ft.Params) {
			pt := ft.Params[i].Type
			slice := isCharPtr(pt)
			if i < len(decls) && decls[i] != nil {
				slice = g.sliceRepr(pt, decls[i])
			}
			parts = append(parts, g.genExprTyped(a, pt, slice))
			continue
		}
		parts = append(parts, g.genExpr(a))
	}
	return strings.Join(parts, ", ")
}

// genHelperCall 标准库函数落到运行时辅助函数
func (g *CodeGen) genHelperCall(x *parser.CallExpr, id *parser.Ident, helperName string) string {
	g.need(helperName)
	ft := funcTypeOf(id.A().Type)
	if ft == nil && id.Decl != nil {
		ft = funcTypeOf(id.Decl.Type)
	}
	return helperName + "(" + g.genArgs(x.Args, ft, nil) + ")"
}

// genMathCall math 包调用，参数统一成 float64
func (g *CodeGen) genMathCall(x *parser.CallExpr, target string) string {
	g.goImports["math"] = true
	var parts []string
	for _, a := range x.Args {
		parts = append(parts, g.genExprTyped(a, ctypes.CDouble(), false))
	}
	return target + "(" + strings.Join(parts, ", ") + ")"
}

// genUnknownCall 没有落地方案的调用：报警告，留一个零值占位
func (g *CodeGen) genUnknownCall(x *parser.CallExpr, name string) string {
	g.metrics.Unsupported++
	g.sink.Warn(diag.CategoryUnsupported,
		diag.Pos{Offset: x.Token.Offset, Line: x.Token.Line, Column: x.Token.Column},
		i18n.WarnUnknownCall, name)
	for _, a := range x.Args {
		s := g.genExpr(a)
		g.addPre("_ = " + s)
	}
	rt := x.A().Type
	if rt == nil || ctypes.IsVoid(rt) {
		return "_ = 0"
	}
	return "*new(" + g.goType(rt, isCharPtr(rt)) + ")"
}

// genPrintf printf / fprintf 共用的格式化输出。target 为空写标准输出。
func (g *CodeGen) genPrintf(args []parser.Expression, target string) string {
	g.goImports["fmt"] = true
	fname := "fmt.Printf"
	prefix := ""
	if target != "" {
		fname = "fmt.Fprintf"
		prefix = target + ", "
	}
	if len(args) == 0 {
		return fname + "(" + strings.TrimSuffix(prefix, ", ") + ")"
	}

	lit, isLit := args[0].(*parser.StringLit)
	if !isLit {
		// 非字面量格式串原样透传，动词差异不修正
		g.warnUnsupported(tokenOf(args[0]), "non-literal format string")
		f := g.genExprTyped(args[0], ctypes.PointerTo(ctypes.CChar()), true)
		g.need("_gostr")
		parts := []string{"_gostr(" + f + ")"}
		for _, a := range args[1:] {
			parts = append(parts, g.genExpr(a))
		}
		return fname + "(" + prefix + strings.Join(parts, ", ") + ")"
	}

	tf := translateFormat(lit.Value)
	verbs := formatVerbs(lit.Value)
	parts := []string{fmt.Sprintf("%q", tf)}
	for i, a := range args[1:] {
		verb := byte(0)
		if i < len(verbs) {
			verb = verbs[i]
		}
		parts = append(parts, g.genFormatArg(a, verb))
	}
	return fname + "(" + prefix + strings.Join(parts, ", ") + ")"
}

// genFormatArg 格式化参数。%s 的 char* 先转 Go 字符串。
func (g *CodeGen) genFormatArg(a parser.Expression, verb byte) string {
	if verb == 's' {
		t := a.A().Type
		if t != nil && (ctypes.IsPointer(ctypes.Decay(t)) || isArrayType(t)) {
			g.need("_gostr")
			return "_gostr(" + g.genExprTyped(a, ctypes.PointerTo(ctypes.CChar()), true) + ")"
		}
	}
	return g.genExpr(a)
}

func isArrayType(t ctypes.Type) bool {
	if t == nil {
		return false
	}
	_, ok := ctypes.Unqual(t).(*ctypes.Array)
	return ok
}

func (g *CodeGen) genFprintf(x *parser.CallExpr) (string, bool) {
	if len(x.Args) == 0 {
		return "_ = 0", true
	}
	target := g.genExpr(x.Args[0])
	if target != "os.Stdout" && target != "os.Stderr" && target != "os.Stdin" {
		g.warnUnsupported(x.Token, "fprintf to non-standard stream")
		target = "os.Stderr"
		g.goImports["os"] = true
	}
	return g.genPrintf(x.Args[1:], target), false
}

// genSprintf sprintf 先用 fmt.Sprintf 拼出字符串再拷回目标缓冲区
func (g *CodeGen) genSprintf(x *parser.CallExpr) string {
	if len(x.Args) < 2 {
		return "_ = 0"
	}
	dst := g.genExprTyped(x.Args[0], ctypes.PointerTo(ctypes.CChar()), true)
	inner := g.genPrintf(x.Args[1:], "")
	// fmt.Printf(...) 换成 fmt.Sprintf(...)
	inner = "fmt.Sprintf" + strings.TrimPrefix(inner, "fmt.Printf")
	g.need("_sprintf")
	return "_sprintf(" + dst + ", " + inner + ")"
}

// genScanf scanf 透传给运行时辅助函数，参数本来就是指针
func (g *CodeGen) genScanf(x *parser.CallExpr) string {
	if len(x.Args) == 0 {
		return "_ = 0"
	}
	g.need("_scanf")
	parts := []string{}
	if lit, ok := x.Args[0].(*parser.StringLit); ok {
		parts = append(parts, fmt.Sprintf("%q", translateFormat(lit.Value)))
	} else {
		g.need("_gostr")
		parts = append(parts, "_gostr("+g.genExprTyped(x.Args[0], ctypes.PointerTo(ctypes.CChar()), true)+")")
	}
	for _, a := range x.Args[1:] {
		parts = append(parts, g.genExpr(a))
	}
	return "_scanf(" + strings.Join(parts, ", ") + ")"
}
