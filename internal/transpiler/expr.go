package transpiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/i18n"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/parser"
	"github.com/tangzhangming/cango/internal/sema"
)

// stdStreams C 标准流到 os 包变量的映射
var stdStreams = map[string]string{
	"stdin":  "os.Stdin",
	"stdout": "os.Stdout",
	"stderr": "os.Stderr",
}

// genExprStmt 语句位置的表达式
func (g *CodeGen) genExprStmt(e parser.Expression) {
	switch x := e.(type) {
	case *parser.AssignExpr:
		s := g.genAssignStmt(x)
		g.flushPre()
		g.writeLine(s)
	case *parser.IncDecExpr:
		s := g.genIncDecStmt(x)
		g.flushPre()
		g.writeLine(s)
	case *parser.CallExpr:
		s, _ := g.genCall(x)
		g.flushPre()
		g.writeLine(stmtSafe(s))
	case *parser.CommaExpr:
		for _, sub := range x.Exprs {
			g.genExprStmt(sub)
		}
	case *parser.CastExpr:
		if ctypes.IsVoid(x.To) {
			g.genExprStmt(x.Expr)
			return
		}
		s := g.genExpr(e)
		g.flushPre()
		g.writeLine("_ = " + s)
	default:
		s := g.genExpr(e)
		g.flushPre()
		g.writeLine("_ = " + s)
	}
}

// genExpr 值位置的表达式。副作用提升到 g.pre。
func (g *CodeGen) genExpr(e parser.Expression) string {
	switch x := e.(type) {
	case *parser.IntLit:
		return strconv.FormatInt(x.Value, 10)
	case *parser.FloatLit:
		s := strconv.FormatFloat(x.Value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	case *parser.CharLit:
		return charLitText(x.Value)
	case *parser.StringLit:
		g.need("_cstr")
		return fmt.Sprintf("_cstr(%q)", x.Value)
	case *parser.Ident:
		return g.genIdent(x)
	case *parser.UnaryExpr:
		return g.genUnary(x)
	case *parser.IncDecExpr:
		return g.genIncDecValue(x)
	case *parser.BinaryExpr:
		return g.genBinary(x)
	case *parser.AssignExpr:
		s := g.genAssignStmt(x)
		g.addPre(s)
		return g.genLValueRead(x.Left)
	case *parser.TernaryExpr:
		return g.genTernary(x)
	case *parser.CommaExpr:
		for _, sub := range x.Exprs[:len(x.Exprs)-1] {
			g.hoistStmt(sub)
		}
		return g.genExpr(x.Exprs[len(x.Exprs)-1])
	case *parser.CallExpr:
		s, valueOK := g.genCall(x)
		if valueOK {
			return s
		}
		t := g.nextTmp()
		g.addPre(t + ", _ := " + s)
		return "int32(" + t + ")"
	case *parser.MemberExpr:
		return g.genMember(x)
	case *parser.IndexExpr:
		return g.genIndex(x)
	case *parser.CastExpr:
		return g.genCast(x)
	case *parser.SizeofExpr:
		return strconv.FormatInt(g.sizeofValue(x), 10)
	case *parser.CompoundLit:
		return g.genInitLiteral(x.Type, x.Init)
	}
	return "0"
}

func charLitText(v int64) string {
	if v >= 32 && v < 127 && v != '\'' && v != '\\' {
		return "'" + string(rune(v)) + "'"
	}
	return strconv.FormatInt(v, 10)
}

func (g *CodeGen) sizeofValue(x *parser.SizeofExpr) int64 {
	if x.Type != nil {
		return ctypes.Sizeof(x.Type)
	}
	if x.Expr != nil && x.Expr.A().Type != nil {
		return ctypes.Sizeof(x.Expr.A().Type)
	}
	return 1
}

// hoistStmt 把表达式按语句形式提升（逗号表达式的前段）
func (g *CodeGen) hoistStmt(e parser.Expression) {
	switch x := e.(type) {
	case *parser.AssignExpr:
		g.addPre(g.genAssignStmt(x))
	case *parser.IncDecExpr:
		g.addPre(g.genIncDecStmt(x))
	case *parser.CallExpr:
		s, _ := g.genCall(x)
		g.addPre(stmtSafe(s))
	default:
		g.addPre("_ = " + g.genExpr(e))
	}
}

// stmtSafe 调用降级产出的占位表达式在语句位置要包一层弃值
func stmtSafe(s string) string {
	if strings.HasPrefix(s, "*") || strings.HasPrefix(s, "&") {
		return "_ = " + s
	}
	return s
}

func (g *CodeGen) genIdent(x *parser.Ident) string {
	d := x.Decl
	if std, ok := stdStreams[x.Name]; ok && (d == nil || !d.IsGlobal && !d.StaticLocal && !d.IsParam && !d.IsFunc) {
		g.goImports["os"] = true
		return std
	}
	if d == nil {
		return goName(x.Name)
	}
	if d.IsEnumConst {
		return goName(x.Name)
	}
	if d.IsFunc {
		if h, ok := helperCalls[x.Name]; ok && sema.IsBuiltin(x.Name) {
			g.need(h)
			return h
		}
		if g.an.NeedsState[x.Name] {
			return "st." + goName(x.Name)
		}
		return goName(x.Name)
	}
	if d.IsGlobal || d.StaticLocal {
		return "st." + declName(d)
	}
	return declName(d)
}

// genLValueRead 赋值作为值使用时重新读取左值
func (g *CodeGen) genLValueRead(e parser.Expression) string {
	if m, ok := e.(*parser.MemberExpr); ok && g.memberNeedsAccessor(m) {
		return g.genMember(m)
	}
	return g.genExpr(e)
}

// exprIsSlice 指针类型表达式在生成代码里是否为切片
func (g *CodeGen) exprIsSlice(e parser.Expression) bool {
	t := e.A().Type
	if t == nil {
		return false
	}
	if _, isArr := ctypes.Unqual(t).(*ctypes.Array); isArr {
		return true
	}
	if !ctypes.IsPointer(ctypes.Decay(t)) {
		return false
	}
	if isCharPtr(t) || g.forceSlice {
		return true
	}
	switch x := e.(type) {
	case *parser.Ident:
		return x.Decl != nil && x.Decl.UsesArith
	case *parser.UnaryExpr:
		if x.Op == "&" {
			_, idx := x.Expr.(*parser.IndexExpr)
			return idx
		}
	case *parser.CastExpr:
		if isAllocCall(x.Expr) {
			return true
		}
		return g.exprIsSlice(x.Expr)
	case *parser.AssignExpr:
		return g.exprIsSlice(x.Left)
	case *parser.CommaExpr:
		return g.exprIsSlice(x.Exprs[len(x.Exprs)-1])
	case *parser.BinaryExpr:
		// 指针加减法在切片上进行
		return g.exprIsSlice(x.Left) || g.exprIsSlice(x.Right)
	}
	return false
}

func isAllocCall(e parser.Expression) bool {
	c, ok := e.(*parser.CallExpr)
	if !ok {
		return false
	}
	id, ok := c.Fn.(*parser.Ident)
	return ok && (id.Name == "malloc" || id.Name == "calloc")
}

// untypedConst 生成为 Go 无类型常量的表达式，不需要包转换
func untypedConst(e parser.Expression) bool {
	switch x := e.(type) {
	case *parser.IntLit, *parser.CharLit, *parser.FloatLit, *parser.SizeofExpr:
		return true
	case *parser.Ident:
		return x.Decl != nil && x.Decl.IsEnumConst
	case *parser.UnaryExpr:
		if x.Op == "-" || x.Op == "+" || x.Op == "~" {
			return untypedConst(x.Expr)
		}
	}
	return false
}

// genExprTyped 生成表达式并转换到目标 Go 类型
func (g *CodeGen) genExprTyped(e parser.Expression, want ctypes.Type, wantSlice bool) string {
	if want == nil {
		return g.genExpr(e)
	}
	wu := ctypes.Unqual(ctypes.Decay(want))

	if p, ok := wu.(*ctypes.Pointer); ok {
		if v, isConst := constOf(e); isConst && v == 0 {
			return "nil"
		}
		s := g.genExpr(e)
		et := e.A().Type
		if et == nil {
			return s
		}
		if ctypes.IsVoid(p.Elem) {
			// void* 落成 any，什么都能放
			return s
		}
		if _, isFn := ctypes.Unqual(p.Elem).(*ctypes.Func); isFn {
			return s
		}
		if eu, isPtr := ctypes.Unqual(et).(*ctypes.Pointer); isPtr && ctypes.IsVoid(eu.Elem) {
			// void* 取回具体指针类型
			return fmt.Sprintf("%s.(%s)", parenExpr(s), g.goType(want, wantSlice || isCharPtr(want)))
		}
		if _, isArr := ctypes.Unqual(et).(*ctypes.Array); isArr {
			if wantSlice || isCharPtr(want) {
				return s + "[:]"
			}
			return "&" + s + "[0]"
		}
		haveSlice := g.exprIsSlice(e)
		wantS := wantSlice || isCharPtr(want)
		if haveSlice == wantS {
			return s
		}
		if haveSlice {
			return "&" + s + "[0]"
		}
		if u, isUnary := e.(*parser.UnaryExpr); isUnary && u.Op == "&" {
			if id, isIdent := u.Expr.(*parser.Ident); isIdent {
				// 标量地址流进了按切片表示的指针，没有对应的窗口可给
				g.metrics.Unsupported++
				g.sink.Warn(diag.CategoryUnsupported,
					diag.Pos{Offset: u.Token.Offset, Line: u.Token.Line, Column: u.Token.Column},
					i18n.WarnAddressedScalar, id.Name)
				return "nil"
			}
		}
		g.warnUnsupported(tokenOf(e), "pointer used as slice")
		return "nil"
	}

	switch wu.(type) {
	case *ctypes.Struct, *ctypes.Union, *ctypes.Array, *ctypes.Func, *ctypes.Void:
		return g.genExpr(e)
	}

	// 数值转换
	if untypedConst(e) {
		return g.genExpr(e)
	}
	s := g.genExpr(e)
	et := e.A().Type
	if et == nil {
		return s
	}
	haveGo := g.goType(et, false)
	wantGo := g.goType(wu, false)
	if haveGo == wantGo {
		return s
	}
	return wantGo + "(" + s + ")"
}

// parenExpr 需要时加括号
func parenExpr(s string) string {
	for _, c := range s {
		if !(c == '_' || c == '.' || c >= '0' && c <= '9' ||
			c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return "(" + s + ")"
		}
	}
	return s
}

// tokenOf 表达式的起始 token，报诊断用
func tokenOf(e parser.Expression) lexer.Token {
	switch x := e.(type) {
	case *parser.IntLit:
		return x.Token
	case *parser.FloatLit:
		return x.Token
	case *parser.StringLit:
		return x.Token
	case *parser.CharLit:
		return x.Token
	case *parser.Ident:
		return x.Token
	case *parser.UnaryExpr:
		return x.Token
	case *parser.IncDecExpr:
		return x.Token
	case *parser.BinaryExpr:
		return x.Token
	case *parser.AssignExpr:
		return x.Token
	case *parser.TernaryExpr:
		return x.Token
	case *parser.CommaExpr:
		return x.Token
	case *parser.CallExpr:
		return x.Token
	case *parser.MemberExpr:
		return x.Token
	case *parser.IndexExpr:
		return x.Token
	case *parser.CastExpr:
		return x.Token
	case *parser.SizeofExpr:
		return x.Token
	case *parser.CompoundLit:
		return x.Token
	}
	return lexer.Token{}
}

// genCond 条件位置的表达式，产出 Go 布尔表达式
func (g *CodeGen) genCond(e parser.Expression) string {
	switch x := e.(type) {
	case *parser.BinaryExpr:
		switch x.Op {
		case "&&", "||":
			return g.genLogical(x)
		case "==", "!=", "<", "<=", ">", ">=":
			return g.genCompare(x)
		}
	case *parser.UnaryExpr:
		if x.Op == "!" {
			return "!(" + g.genCond(x.Expr) + ")"
		}
	case *parser.IntLit:
		if x.Value != 0 {
			return "true"
		}
		return "false"
	case *parser.CommaExpr:
		for _, sub := range x.Exprs[:len(x.Exprs)-1] {
			g.hoistStmt(sub)
		}
		return g.genCond(x.Exprs[len(x.Exprs)-1])
	}
	s := g.genExpr(e)
	t := e.A().Type
	if t != nil && ctypes.IsPointer(ctypes.Decay(t)) {
		return parenExpr(s) + " != nil"
	}
	return parenExpr(s) + " != 0"
}

// genLogical && 和 ||。右操作数有副作用时降级成显式分支，
// 保住短路求值。
func (g *CodeGen) genLogical(x *parser.BinaryExpr) string {
	lc := g.genCond(x.Left)
	n := len(g.pre)
	rc := g.genCond(x.Right)
	if len(g.pre) == n {
		return "(" + lc + " " + x.Op + " " + rc + ")"
	}
	rpre := append([]string(nil), g.pre[n:]...)
	g.pre = g.pre[:n]
	t := g.nextTmp()
	if x.Op == "&&" {
		g.addPre(t + " := false")
		g.addPre("if " + lc + " {")
	} else {
		g.addPre(t + " := true")
		g.addPre("if !(" + lc + ") {")
	}
	for _, line := range rpre {
		g.addPre("\t" + line)
	}
	g.addPre("\t" + t + " = " + rc)
	g.addPre("}")
	return t
}

// genCompare 比较运算。指针比较落在切片上时换算成长度比较：
// 指针前进对应切片变短，所以交换两侧再比长度。
func (g *CodeGen) genCompare(x *parser.BinaryExpr) string {
	lt := x.Left.A().Type
	rt := x.Right.A().Type
	lp := lt != nil && ctypes.IsPointer(ctypes.Decay(lt))
	rp := rt != nil && ctypes.IsPointer(ctypes.Decay(rt))

	if lp || rp {
		if lp && !rp {
			return g.genNilCompare(x.Left, x.Op)
		}
		if rp && !lp {
			return g.genNilCompare(x.Right, flipOp(x.Op))
		}
		ls := g.exprIsSlice(x.Left)
		rs := g.exprIsSlice(x.Right)
		l := g.genExpr(x.Left)
		r := g.genExpr(x.Right)
		if ls && rs {
			return fmt.Sprintf("len(%s) %s len(%s)", r, x.Op, l)
		}
		if !ls && !rs && (x.Op == "==" || x.Op == "!=") {
			return l + " " + x.Op + " " + r
		}
		g.warnUnsupported(x.Token, "pointer comparison")
		return "false"
	}

	l := g.genExpr(x.Left)
	r := g.genExpr(x.Right)
	switch {
	case untypedConst(x.Right):
		return parenExpr(l) + " " + x.Op + " " + parenExpr(r)
	case untypedConst(x.Left):
		return parenExpr(l) + " " + x.Op + " " + parenExpr(r)
	}
	lg := g.goType(lt, false)
	rg := g.goType(rt, false)
	if lg != rg {
		// 窄的一侧提升到宽的一侧
		if ctypes.Sizeof(lt) < ctypes.Sizeof(rt) {
			l = rg + "(" + l + ")"
		} else {
			r = lg + "(" + r + ")"
		}
	}
	return parenExpr(l) + " " + x.Op + " " + parenExpr(r)
}

// genNilCompare 指针与整数常量 0 的比较
func (g *CodeGen) genNilCompare(ptr parser.Expression, op string) string {
	s := g.genExpr(ptr)
	if op != "==" && op != "!=" {
		op = "!="
	}
	return parenExpr(s) + " " + op + " nil"
}

func flipOp(op string) string {
	switch op {
	case "<":
		return ">"
	case ">":
		return "<"
	case "<=":
		return ">="
	case ">=":
		return "<="
	}
	return op
}

func (g *CodeGen) genBinary(x *parser.BinaryExpr) string {
	switch x.Op {
	case "&&", "||":
		g.need("_b2i")
		return "_b2i(" + g.genLogical(x) + ")"
	case "==", "!=", "<", "<=", ">", ">=":
		g.need("_b2i")
		return "_b2i(" + g.genCompare(x) + ")"
	}

	rt := x.A().Type

	// 指针运算
	if x.A().Scale > 0 {
		lt := x.Left.A().Type
		if lt != nil && ctypes.IsPointer(ctypes.Decay(lt)) {
			return g.genPtrArith(x.Left, x.Op, x.Right)
		}
		// 整数 + 指针
		return g.genPtrArith(x.Right, x.Op, x.Left)
	}
	lt := x.Left.A().Type
	ltp := lt != nil && ctypes.IsPointer(ctypes.Decay(lt))
	if x.Op == "-" && ltp {
		// 同一底层数组的两个指针相减
		l := g.genExpr(x.Left)
		r := g.genExpr(x.Right)
		if g.exprIsSlice(x.Left) && g.exprIsSlice(x.Right) {
			return fmt.Sprintf("int64(len(%s)-len(%s))", r, l)
		}
		g.warnUnsupported(x.Token, "pointer difference")
		return "0"
	}

	l := g.genExprTyped(x.Left, rt, false)
	r := g.genExprTyped(x.Right, rt, false)
	return parenExpr(l) + " " + x.Op + " " + parenExpr(r)
}

// genPtrArith 指针加减整数，落在切片的再切片上
func (g *CodeGen) genPtrArith(ptr parser.Expression, op string, n parser.Expression) string {
	s := g.genExpr(ptr)
	idx := g.genExpr(n)
	if !g.exprIsSlice(ptr) {
		g.warnUnsupported(tokenOf(ptr), "arithmetic on plain pointer")
		return s
	}
	if op == "-" {
		g.warnUnsupported(tokenOf(ptr), "pointer moved backwards")
		return s
	}
	return parenExpr(s) + "[" + idx + ":]"
}

func (g *CodeGen) genUnary(x *parser.UnaryExpr) string {
	switch x.Op {
	case "-", "+":
		s := g.genExprTyped(x.Expr, x.A().Type, false)
		if x.Op == "+" {
			return s
		}
		return "-" + parenExpr(s)
	case "~":
		return "^" + parenExpr(g.genExprTyped(x.Expr, x.A().Type, false))
	case "!":
		g.need("_b2i")
		return "_b2i(!(" + g.genCond(x.Expr) + "))"
	case "*":
		return g.genDeref(x.Expr, x.Token)
	case "&":
		return g.genAddr(x.Expr, x.Token)
	}
	return "0"
}

func (g *CodeGen) genDeref(e parser.Expression, tok lexer.Token) string {
	s := g.genExpr(e)
	t := e.A().Type
	if t != nil {
		if u, ok := ctypes.Unqual(ctypes.Decay(t)).(*ctypes.Pointer); ok && ctypes.IsVoid(u.Elem) {
			g.warnUnsupported(tok, "dereference of void pointer")
			return "0"
		}
	}
	if g.exprIsSlice(e) {
		return parenExpr(s) + "[0]"
	}
	return "*" + parenExpr(s)
}

func (g *CodeGen) genAddr(e parser.Expression, tok lexer.Token) string {
	switch x := e.(type) {
	case *parser.IndexExpr:
		// &a[i] 保留到数组末尾的窗口
		base := g.genExpr(x.Expr)
		idx := g.genExpr(x.Index)
		if bt := x.Expr.A().Type; bt != nil {
			if _, isArr := ctypes.Unqual(bt).(*ctypes.Array); isArr {
				return parenExpr(base) + "[" + idx + ":]"
			}
		}
		if g.exprIsSlice(x.Expr) {
			return parenExpr(base) + "[" + idx + ":]"
		}
		g.warnUnsupported(tok, "address of pointer element")
		return g.genExpr(x.Expr)
	case *parser.Ident:
		if x.A().Type != nil {
			if _, isArr := ctypes.Unqual(x.A().Type).(*ctypes.Array); isArr {
				return g.genExpr(x) + "[:]"
			}
		}
		return "&" + g.genExpr(x)
	case *parser.MemberExpr:
		if g.memberNeedsAccessor(x) {
			g.warnUnsupported(tok, "address of bit-field or union member")
			return "nil"
		}
		return "&" + g.genExpr(x)
	}
	return "&" + parenExpr(g.genExpr(e))
}

func (g *CodeGen) genIncDecValue(x *parser.IncDecExpr) string {
	l := g.genExpr(x.Expr)
	if x.Prefix {
		g.addPre(g.genIncDecStmt(x))
		return l
	}
	t := g.nextTmp()
	g.addPre(t + " := " + l)
	g.addPre(g.genIncDecStmt(x))
	return t
}

func (g *CodeGen) genIncDecStmt(x *parser.IncDecExpr) string {
	if m, ok := x.Expr.(*parser.MemberExpr); ok && g.memberNeedsAccessor(m) {
		recv, name := g.memberAccessorParts(m)
		op := "+"
		if x.Op == "--" {
			op = "-"
		}
		return fmt.Sprintf("%s.set_%s(%s.%s() %s 1)", recv, name, recv, name, op)
	}
	l := g.genExpr(x.Expr)
	if x.A().Scale > 0 && g.exprIsSlice(x.Expr) {
		if x.Op == "--" {
			g.warnUnsupported(x.Token, "pointer moved backwards")
			return "_ = " + l
		}
		return l + " = " + l + "[1:]"
	}
	if x.Op == "++" {
		return l + "++"
	}
	return l + "--"
}

// genTernary 条件表达式提升成 if/else 给临时变量赋值，
// 只求值命中的分支。
func (g *CodeGen) genTernary(x *parser.TernaryExpr) string {
	rt := x.A().Type
	slice := isCharPtr(rt)
	t := g.nextTmp()
	cond := g.genCond(x.Cond)

	n := len(g.pre)
	tv := g.genExprTyped(x.Then, rt, slice)
	thenPre := append([]string(nil), g.pre[n:]...)
	g.pre = g.pre[:n]

	ev := g.genExprTyped(x.Else, rt, slice)
	elsePre := append([]string(nil), g.pre[n:]...)
	g.pre = g.pre[:n]

	g.addPre("var " + t + " " + g.goType(rt, slice))
	g.addPre("if " + cond + " {")
	for _, line := range thenPre {
		g.addPre("\t" + line)
	}
	g.addPre("\t" + t + " = " + tv)
	g.addPre("} else {")
	for _, line := range elsePre {
		g.addPre("\t" + line)
	}
	g.addPre("\t" + t + " = " + ev)
	g.addPre("}")
	return t
}

// memberNeedsAccessor 成员要走访问方法（位域或联合体字段）
func (g *CodeGen) memberNeedsAccessor(m *parser.MemberExpr) bool {
	if m.Field != nil && m.Field.BitWidth >= 0 {
		return true
	}
	t := m.Expr.A().Type
	if t == nil {
		return false
	}
	t = ctypes.Unqual(ctypes.Decay(t))
	if m.Arrow {
		if p, ok := t.(*ctypes.Pointer); ok {
			t = ctypes.Unqual(p.Elem)
		}
	}
	_, isUnion := t.(*ctypes.Union)
	return isUnion
}

// memberAccessorParts 访问方法调用的接收者和方法名
func (g *CodeGen) memberAccessorParts(m *parser.MemberExpr) (recv, name string) {
	base := g.genExpr(m.Expr)
	if m.Arrow && g.exprIsSlice(m.Expr) {
		base = parenExpr(base) + "[0]"
	}
	return parenExpr(base), goName(m.Name)
}

func (g *CodeGen) genMember(m *parser.MemberExpr) string {
	if g.memberNeedsAccessor(m) {
		recv, name := g.memberAccessorParts(m)
		return recv + "." + name + "()"
	}
	base := g.genExpr(m.Expr)
	if m.Arrow && g.exprIsSlice(m.Expr) {
		base = parenExpr(base) + "[0]"
	}
	return parenExpr(base) + "." + goName(m.Name)
}

func (g *CodeGen) genIndex(x *parser.IndexExpr) string {
	base := g.genExpr(x.Expr)
	idx := g.genExpr(x.Index)
	bt := x.Expr.A().Type
	if bt != nil {
		if _, isArr := ctypes.Unqual(bt).(*ctypes.Array); isArr {
			return parenExpr(base) + "[" + idx + "]"
		}
	}
	if g.exprIsSlice(x.Expr) {
		return parenExpr(base) + "[" + idx + "]"
	}
	g.warnUnsupported(x.Token, "subscript on plain pointer")
	return "*" + parenExpr(base)
}

func (g *CodeGen) genCast(x *parser.CastExpr) string {
	if p, ok := ctypes.Unqual(x.To).(*ctypes.Pointer); ok && !ctypes.IsVoid(p.Elem) {
		if c, isAlloc := x.Expr.(*parser.CallExpr); isAlloc && isAllocCall(x.Expr) {
			return g.genAlloc(p.Elem, c)
		}
	}
	return g.genExprTyped(x.Expr, x.To, isCharPtr(x.To))
}

// genAlloc (T*)malloc(n*sizeof(T)) 一类的分配落成 make
func (g *CodeGen) genAlloc(elem ctypes.Type, call *parser.CallExpr) string {
	id := call.Fn.(*parser.Ident)
	elemGo := g.goType(elem, false)
	size := ctypes.Sizeof(elem)

	if id.Name == "calloc" && len(call.Args) == 2 {
		return fmt.Sprintf("make([]%s, int(%s))", elemGo, g.genExpr(call.Args[0]))
	}
	if len(call.Args) != 1 {
		return fmt.Sprintf("make([]%s, 1)", elemGo)
	}
	arg := call.Args[0]
	// n * sizeof(T) 直接取 n
	if b, ok := arg.(*parser.BinaryExpr); ok && b.Op == "*" {
		if _, isSz := b.Right.(*parser.SizeofExpr); isSz {
			return fmt.Sprintf("make([]%s, int(%s))", elemGo, g.genExpr(b.Left))
		}
		if _, isSz := b.Left.(*parser.SizeofExpr); isSz {
			return fmt.Sprintf("make([]%s, int(%s))", elemGo, g.genExpr(b.Right))
		}
	}
	if _, isSz := arg.(*parser.SizeofExpr); isSz {
		return fmt.Sprintf("make([]%s, 1)", elemGo)
	}
	return fmt.Sprintf("make([]%s, int(%s)/%d)", elemGo, g.genExpr(arg), size)
}

func (g *CodeGen) genAssignStmt(a *parser.AssignExpr) string {
	if m, ok := a.Left.(*parser.MemberExpr); ok && g.memberNeedsAccessor(m) {
		recv, name := g.memberAccessorParts(m)
		ft := ctypes.CInt()
		if m.Field != nil {
			ft = m.Field.Type
		} else if m.A().Type != nil {
			ft = m.A().Type
		}
		if a.Op == "=" {
			return fmt.Sprintf("%s.set_%s(%s)", recv, name, g.genExprTyped(a.Right, ft, false))
		}
		op := strings.TrimSuffix(a.Op, "=")
		return fmt.Sprintf("%s.set_%s(%s.%s() %s %s)",
			recv, name, recv, name, op, parenExpr(g.genExprTyped(a.Right, ft, false)))
	}

	lt := a.Left.A().Type
	l := g.genExpr(a.Left)

	if a.Op == "=" {
		r := g.genExprTyped(a.Right, lt, g.exprIsSlice(a.Left))
		return l + " = " + r
	}

	// 复合赋值里的指针步进
	if a.A().Scale > 0 {
		if !g.exprIsSlice(a.Left) {
			g.warnUnsupported(a.Token, "arithmetic on plain pointer")
			return "_ = " + l
		}
		if a.Op == "-=" {
			g.warnUnsupported(a.Token, "pointer moved backwards")
			return "_ = " + l
		}
		return l + " = " + l + "[" + g.genExpr(a.Right) + ":]"
	}

	r := g.genExprTyped(a.Right, lt, false)
	return l + " " + a.Op + " " + parenExpr(r)
}

// genSimpleStmt 能写进 for 后置子句的单语句形式
func (g *CodeGen) genSimpleStmt(e parser.Expression) (string, bool) {
	if !isSimpleEffect(e) {
		return "", false
	}
	switch x := e.(type) {
	case *parser.AssignExpr:
		return g.genAssignStmt(x), true
	case *parser.IncDecExpr:
		return g.genIncDecStmt(x), true
	case *parser.CallExpr:
		s, _ := g.genCall(x)
		return s, true
	}
	return "", false
}

// isSimpleEffect 求值过程不需要提升语句
func isSimpleEffect(e parser.Expression) bool {
	switch x := e.(type) {
	case *parser.AssignExpr:
		return isSimpleValue(x.Right) && isSimpleValue(x.Left)
	case *parser.IncDecExpr:
		return isSimpleValue(x.Expr)
	case *parser.CallExpr:
		for _, a := range x.Args {
			if !isSimpleValue(a) {
				return false
			}
		}
		return true
	}
	return false
}

func isSimpleValue(e parser.Expression) bool {
	switch x := e.(type) {
	case *parser.IntLit, *parser.CharLit, *parser.FloatLit, *parser.StringLit,
		*parser.Ident, *parser.SizeofExpr:
		return true
	case *parser.UnaryExpr:
		return isSimpleValue(x.Expr)
	case *parser.BinaryExpr:
		if x.Op == "&&" || x.Op == "||" {
			return isSimpleValue(x.Left) && isSimpleValue(x.Right)
		}
		return isSimpleValue(x.Left) && isSimpleValue(x.Right)
	case *parser.MemberExpr:
		return isSimpleValue(x.Expr)
	case *parser.IndexExpr:
		return isSimpleValue(x.Expr) && isSimpleValue(x.Index)
	case *parser.CastExpr:
		return isSimpleValue(x.Expr)
	}
	return false
}
