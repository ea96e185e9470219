package transpiler

import (
	"fmt"

	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/parser"
	"github.com/tangzhangming/cango/internal/symbol"
)

// addPre 追加一条提升语句，在当前语句写出前执行
func (g *CodeGen) addPre(line string) {
	g.pre = append(g.pre, line)
}

// flushPre 写出并清空提升语句
func (g *CodeGen) flushPre() {
	for _, line := range g.pre {
		g.writeLine(line)
	}
	g.pre = g.pre[:0]
}

// nextTmp 分配一个临时变量名
func (g *CodeGen) nextTmp() string {
	g.tmpN++
	return fmt.Sprintf("_t%d", g.tmpN)
}

// genStmt 语句生成
func (g *CodeGen) genStmt(s parser.Statement) {
	switch st := s.(type) {
	case *parser.BlockStmt:
		g.writeLine("{")
		g.indent++
		for _, inner := range st.Statements {
			g.genStmt(inner)
		}
		g.indent--
		g.writeLine("}")
	case *parser.DeclStmt:
		for _, d := range st.Decls {
			g.genStmt(d)
		}
	case *parser.VarDecl:
		g.genLocalVar(st)
	case *parser.TypedefDecl, *parser.TagDecl, *parser.EmptyStmt:
		// 类型声明不产出语句，空语句丢弃
	case *parser.ExprStmt:
		g.genExprStmt(st.Expr)
	case *parser.IfStmt:
		g.genIf(st)
	case *parser.WhileStmt:
		g.genWhile(st)
	case *parser.DoWhileStmt:
		g.genDoWhile(st)
	case *parser.ForStmt:
		g.genFor(st)
	case *parser.SwitchStmt:
		g.genSwitch(st)
	case *parser.LabeledStmt:
		// 顶层标号已在状态机切段时消耗，这里只剩嵌套标号
		if st.Body != nil {
			g.genStmt(st.Body)
		}
	case *parser.GotoStmt:
		if st.State > 0 {
			g.writeLine(fmt.Sprintf("_state = %d", st.State))
			g.writeLine("continue _dispatch")
		} else {
			g.warnUnsupported(st.Token, "goto "+st.Label)
		}
	case *parser.BreakStmt:
		g.writeLine("break")
	case *parser.ContinueStmt:
		g.writeLine("continue")
	case *parser.ReturnStmt:
		g.genReturn(st)
	case *parser.FuncDecl:
		// 块内函数声明只引入名字，不产出代码
	}
}

// genLocalVar 局部变量声明。static 变量在 progState 里，这里跳过。
func (g *CodeGen) genLocalVar(v *parser.VarDecl) {
	if v.Storage == ctypes.StorageStatic || v.Storage == ctypes.StorageExtern {
		return
	}
	g.metrics.Declarations++
	name := declName(v.Decl)
	slice := g.sliceRepr(v.Type, v.Decl)

	if v.Decl != nil && v.Decl.Hoisted {
		// 声明已提升到分发循环前，这里只保留初始化
		if v.Init != nil {
			g.genInitAssign(name, v.Type, v.Decl, v.Init)
		}
		return
	}

	if v.Init == nil {
		g.writeLine(fmt.Sprintf("var %s %s", name, g.goType(v.Type, slice)))
	} else if v.Init.IsList() || isStringInit(v.Type, v.Init) {
		g.writeLine(fmt.Sprintf("var %s %s", name, g.goType(v.Type, slice)))
		g.genInitAssign(name, v.Type, v.Decl, v.Init)
	} else {
		val := g.genExprTyped(v.Init.Expr, v.Type, slice)
		g.flushPre()
		g.writeLine(fmt.Sprintf("var %s %s = %s", name, g.goType(v.Type, slice), val))
	}
	if v.Decl != nil && !v.Decl.Referenced {
		g.writeLine("_ = " + name)
	}
}

// isStringInit 字符数组的字符串初始化（char s[] = "..."）
func isStringInit(t ctypes.Type, init *parser.Initializer) bool {
	if init.IsList() {
		return false
	}
	if _, ok := ctypes.Unqual(t).(*ctypes.Array); !ok {
		return false
	}
	_, ok := init.Expr.(*parser.StringLit)
	return ok
}

// genInitAssign 把初始化器生成为对 target 的赋值
func (g *CodeGen) genInitAssign(target string, t ctypes.Type, d *symbol.Declaration, init *parser.Initializer) {
	t = ctypes.Unqual(t)
	if arr, ok := t.(*ctypes.Array); ok {
		if s, isStr := initString(init); isStr {
			g.writeLine(fmt.Sprintf("copy(%s[:], %q)", target, s))
			return
		}
		if init.IsList() {
			val := g.genArrayLit(arr, init)
			g.flushPre()
			g.writeLine(fmt.Sprintf("%s = %s", target, val))
			return
		}
	}
	if init.IsList() {
		val := g.genInitLiteral(t, init)
		g.flushPre()
		g.writeLine(fmt.Sprintf("%s = %s", target, val))
		return
	}
	val := g.genExprTyped(init.Expr, t, g.sliceRepr(t, d))
	g.flushPre()
	g.writeLine(fmt.Sprintf("%s = %s", target, val))
}

func initString(init *parser.Initializer) (string, bool) {
	if init.IsList() {
		return "", false
	}
	if s, ok := init.Expr.(*parser.StringLit); ok {
		return s.Value, true
	}
	return "", false
}

// genInitLiteral 花括号初始化器生成为 Go 复合字面量
func (g *CodeGen) genInitLiteral(t ctypes.Type, init *parser.Initializer) string {
	switch ut := ctypes.Unqual(t).(type) {
	case *ctypes.Array:
		return g.genArrayLit(ut, init)
	case *ctypes.Struct:
		return g.genStructLit(ut, init)
	case *ctypes.Union:
		return g.genUnionLit(ut, init)
	default:
		// 标量的花括号初始化 `int x = {1};`
		if len(init.List) > 0 && init.List[0].Value != nil && !init.List[0].Value.IsList() {
			return g.genExprTyped(init.List[0].Value.Expr, t, false)
		}
		return g.zeroValue(t, false)
	}
}

func (g *CodeGen) genArrayLit(arr *ctypes.Array, init *parser.Initializer) string {
	out := g.goType(arr, false) + "{"
	idx := int64(0)
	for i, item := range init.List {
		if i > 0 {
			out += ", "
		}
		for _, d := range item.Designators {
			if d.Index != nil {
				if v, ok := constOf(d.Index); ok {
					idx = v
				}
			}
		}
		out += fmt.Sprintf("%d: ", idx)
		if item.Value.IsList() {
			out += g.genInitLiteral(arr.Elem, item.Value)
		} else if _, ok := item.Value.Expr.(*parser.StringLit); ok && isCharElem(arr.Elem) {
			g.warnUnsupported(item.Value.Token, "nested string initializer")
			out += g.zeroValue(arr.Elem, false)
		} else {
			out += g.genExprTyped(item.Value.Expr, arr.Elem, isCharPtr(arr.Elem))
		}
		idx++
	}
	return out + "}"
}

func isCharElem(t ctypes.Type) bool {
	it, ok := ctypes.Unqual(t).(*ctypes.Int)
	return ok && it.Width == 8
}

func (g *CodeGen) genStructLit(s *ctypes.Struct, init *parser.Initializer) string {
	out := goName(s.Tag) + "{"
	cursor := 0
	first := true
	for _, item := range init.List {
		for _, d := range item.Designators {
			if d.Field != "" {
				for i, f := range s.Fields {
					if f.Name == d.Field {
						cursor = i
					}
				}
			}
		}
		if cursor >= len(s.Fields) {
			break
		}
		f := s.Fields[cursor]
		cursor++
		if f.BitWidth >= 0 {
			g.warnUnsupported(init.Token, "bit-field initializer")
			continue
		}
		if !first {
			out += ", "
		}
		first = false
		out += goName(f.Name) + ": "
		if item.Value.IsList() {
			out += g.genInitLiteral(f.Type, item.Value)
		} else {
			out += g.genExprTyped(item.Value.Expr, f.Type, isCharPtr(f.Type))
		}
	}
	return out + "}"
}

func (g *CodeGen) genUnionLit(u *ctypes.Union, init *parser.Initializer) string {
	name := goName(u.Tag)
	if len(init.List) == 0 {
		return name + "{}"
	}
	item := init.List[0]
	if g.an.UnionBuffer[u] || item.Value.IsList() {
		if !isZeroInit(item.Value) {
			g.warnUnsupported(init.Token, "union initializer")
		}
		return name + "{}"
	}
	return name + "{v: " + g.genExprTyped(item.Value.Expr, u.Fields[0].Type, false) + "}"
}

func isZeroInit(init *parser.Initializer) bool {
	if init == nil || init.IsList() {
		return false
	}
	v, ok := constOf(init.Expr)
	return ok && v == 0
}

// constOf 常量表达式的生成期求值（语义分析已经验证过的场景）
func constOf(e parser.Expression) (int64, bool) {
	switch x := e.(type) {
	case *parser.IntLit:
		return x.Value, true
	case *parser.CharLit:
		return x.Value, true
	case *parser.Ident:
		if x.Decl != nil && x.Decl.IsEnumConst {
			return x.Decl.EnumValue, true
		}
	case *parser.UnaryExpr:
		if v, ok := constOf(x.Expr); ok && x.Op == "-" {
			return -v, true
		}
	}
	return 0, false
}

func (g *CodeGen) genIf(s *parser.IfStmt) {
	cond := g.genCond(s.Cond)
	g.flushPre()
	g.writeLine("if " + cond + " {")
	g.indent++
	g.genBody(s.Then)
	g.indent--
	if s.Else == nil {
		g.writeLine("}")
		return
	}
	g.writeLine("} else {")
	g.indent++
	g.genBody(s.Else)
	g.indent--
	g.writeLine("}")
}

// genBody 块语句展开进当前层，其他语句直接生成
func (g *CodeGen) genBody(s parser.Statement) {
	if b, ok := s.(*parser.BlockStmt); ok {
		for _, inner := range b.Statements {
			g.genStmt(inner)
		}
		return
	}
	g.genStmt(s)
}

func (g *CodeGen) genWhile(s *parser.WhileStmt) {
	n := len(g.pre)
	cond := g.genCond(s.Cond)
	if len(g.pre) == n {
		g.writeLine("for " + cond + " {")
		g.indent++
		g.genBody(s.Body)
		g.indent--
		g.writeLine("}")
		return
	}
	// 条件有副作用，降级成每轮重新求值的形式
	hoisted := g.pre[n:]
	g.pre = g.pre[:n]
	g.flushPre()
	g.writeLine("for {")
	g.indent++
	for _, line := range hoisted {
		g.writeLine(line)
	}
	g.writeLine("if !(" + cond + ") {")
	g.indent++
	g.writeLine("break")
	g.indent--
	g.writeLine("}")
	g.genBody(s.Body)
	g.indent--
	g.writeLine("}")
}

func (g *CodeGen) genDoWhile(s *parser.DoWhileStmt) {
	if hasDirectContinue(s.Body) {
		g.warnUnsupported(s.Token, "continue in do-while")
	}
	g.writeLine("for {")
	g.indent++
	g.genBody(s.Body)
	cond := g.genCond(s.Cond)
	g.flushPre()
	g.writeLine("if !(" + cond + ") {")
	g.indent++
	g.writeLine("break")
	g.indent--
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

func (g *CodeGen) genFor(s *parser.ForStmt) {
	wrapped := false
	if s.Init != nil {
		if _, isDecl := s.Init.(*parser.DeclStmt); isDecl {
			wrapped = true
			g.writeLine("{")
			g.indent++
		}
		g.genStmt(s.Init)
	}

	post := ""
	postOK := true
	if s.Post != nil {
		post, postOK = g.genSimpleStmt(s.Post)
	}
	if !postOK && hasDirectContinue(s.Body) {
		g.warnUnsupported(s.Token, "continue in for with composite post")
	}

	condSimple := true
	cond := ""
	if s.Cond != nil {
		n := len(g.pre)
		cond = g.genCond(s.Cond)
		if len(g.pre) > n {
			condSimple = false
			hoisted := g.pre[n:]
			g.pre = g.pre[:n]
			g.flushPre()
			g.writeLine(forHeader("", post, postOK))
			g.indent++
			for _, line := range hoisted {
				g.writeLine(line)
			}
			g.writeLine("if !(" + cond + ") {")
			g.indent++
			g.writeLine("break")
			g.indent--
			g.writeLine("}")
		}
	}
	if condSimple {
		g.flushPre()
		g.writeLine(forHeader(cond, post, postOK))
		g.indent++
	}

	g.genBody(s.Body)
	if s.Post != nil && !postOK {
		g.genExprStmt(s.Post)
	}
	g.indent--
	g.writeLine("}")

	if wrapped {
		g.indent--
		g.writeLine("}")
	}
}

// forHeader 组装 for 语句头
func forHeader(cond, post string, postOK bool) string {
	if post != "" && postOK {
		return fmt.Sprintf("for ; %s; %s {", cond, post)
	}
	if cond != "" {
		return "for " + cond + " {"
	}
	return "for {"
}

// hasDirectContinue 语句里是否有绑定到当前循环的 continue
func hasDirectContinue(s parser.Statement) bool {
	switch st := s.(type) {
	case *parser.ContinueStmt:
		return true
	case *parser.BlockStmt:
		for _, inner := range st.Statements {
			if hasDirectContinue(inner) {
				return true
			}
		}
	case *parser.IfStmt:
		return hasDirectContinue(st.Then) || (st.Else != nil && hasDirectContinue(st.Else))
	case *parser.SwitchStmt:
		// switch 不捕获 continue
		return hasDirectContinue(st.Body)
	case *parser.LabeledStmt:
		if st.Body != nil {
			return hasDirectContinue(st.Body)
		}
	case *parser.ExprStmt, *parser.DeclStmt:
		return false
	}
	return false
}

// caseGroup switch 里的一个标号和它的语句序列
type caseGroup struct {
	label *parser.CaseStmt
	stmts []parser.Statement
}

// genSwitch switch 语句。C 的标号默认贯穿，Go 的默认不贯穿；
// 组尾不是跳转语句时补 fallthrough 还原语义。
func (g *CodeGen) genSwitch(s *parser.SwitchStmt) {
	cond := g.genExpr(s.Cond)
	g.flushPre()

	var groups []*caseGroup
	for _, stmt := range s.Body.Statements {
		cur := stmt
		for {
			c, ok := cur.(*parser.CaseStmt)
			if !ok {
				break
			}
			groups = append(groups, &caseGroup{label: c})
			cur = c.Body
		}
		if cur == nil {
			continue
		}
		if _, ok := cur.(*parser.CaseStmt); ok {
			continue
		}
		if len(groups) == 0 {
			// 第一个 case 之前的语句不可达
			continue
		}
		last := groups[len(groups)-1]
		last.stmts = append(last.stmts, cur)
	}

	g.writeLine("switch " + cond + " {")
	for i, grp := range groups {
		if grp.label.Value == nil {
			g.writeLine("default:")
		} else {
			g.writeLine(fmt.Sprintf("case %d:", grp.label.Const))
		}
		g.indent++
		for _, stmt := range grp.stmts {
			g.genStmt(stmt)
		}
		if i+1 < len(groups) && !endsWithJump(grp.stmts) {
			g.writeLine("fallthrough")
		}
		g.indent--
	}
	g.writeLine("}")
}

// endsWithJump 语句序列结尾是否必然转移控制
func endsWithJump(stmts []parser.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	switch st := stmts[len(stmts)-1].(type) {
	case *parser.BreakStmt, *parser.ContinueStmt, *parser.ReturnStmt, *parser.GotoStmt:
		return true
	case *parser.BlockStmt:
		return endsWithJump(st.Statements)
	}
	return false
}

func (g *CodeGen) genReturn(s *parser.ReturnStmt) {
	if s.Value == nil || g.fn == nil || ctypes.IsVoid(g.fn.Type.Return) {
		g.flushPre()
		g.writeLine("return")
		return
	}
	val := g.genExprTyped(s.Value, g.fn.Type.Return, isCharPtr(g.fn.Type.Return))
	g.flushPre()
	g.writeLine("return " + val)
}
