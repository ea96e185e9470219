package sema

import (
	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/i18n"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/parser"
	"github.com/tangzhangming/cango/internal/symbol"
)

// tokOf 表达式的起始 token
func tokOf(e parser.Expression) lexer.Token {
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

// promote 整型提升：窄于 int 的整数和枚举都提升到 int
func promote(t ctypes.Type) ctypes.Type {
	switch u := ctypes.Unqual(t).(type) {
	case *ctypes.Int:
		if u.Width < 32 {
			return ctypes.CInt()
		}
		return u
	case *ctypes.Enum:
		return ctypes.CInt()
	}
	return ctypes.Unqual(t)
}

// usualArith 常用算术转换
func usualArith(l, r ctypes.Type) ctypes.Type {
	l, r = ctypes.Unqual(l), ctypes.Unqual(r)
	if lf, ok := l.(*ctypes.Float); ok {
		if rf, ok := r.(*ctypes.Float); ok && rf.Width > lf.Width {
			return rf
		}
		return lf
	}
	if rf, ok := r.(*ctypes.Float); ok {
		return rf
	}
	li, lok := promote(l).(*ctypes.Int)
	ri, rok := promote(r).(*ctypes.Int)
	if !lok || !rok {
		return ctypes.CInt()
	}
	if li.Width != ri.Width {
		if li.Width > ri.Width {
			return li
		}
		return ri
	}
	// 同宽时无符号胜出
	if li.Unsigned {
		return li
	}
	if ri.Unsigned {
		return ri
	}
	return li
}

// rootDecl 找到表达式底部的标识符声明（指针用法扫描的对象）
func rootDecl(e parser.Expression) *symbol.Declaration {
	switch x := e.(type) {
	case *parser.Ident:
		return x.Decl
	case *parser.IndexExpr:
		return rootDecl(x.Expr)
	case *parser.MemberExpr:
		return nil // 字段指针不做用法扫描
	case *parser.UnaryExpr:
		if x.Op == "*" || x.Op == "&" {
			return rootDecl(x.Expr)
		}
	case *parser.CastExpr:
		return rootDecl(x.Expr)
	case *parser.AssignExpr:
		return rootDecl(x.Left)
	case *parser.CommaExpr:
		if n := len(x.Exprs); n > 0 {
			return rootDecl(x.Exprs[n-1])
		}
	}
	return nil
}

// markArith 指针被用于算术或下标，其底部声明改用切片表示
func markArith(e parser.Expression) {
	if d := rootDecl(e); d != nil {
		d.UsesArith = true
	}
}

// expr 检查表达式并写入类型标注，返回（退化前的）类型
func (c *checker) expr(e parser.Expression) ctypes.Type {
	if e == nil {
		return &ctypes.Unknown{}
	}
	t := c.exprType(e)
	if t == nil {
		t = &ctypes.Unknown{}
	}
	e.A().Type = t
	return t
}

func (c *checker) exprType(e parser.Expression) ctypes.Type {
	switch x := e.(type) {
	case *parser.IntLit:
		return intLitType(x.Token)
	case *parser.FloatLit:
		if x.Token.Float32 {
			return ctypes.CFloat()
		}
		return ctypes.CDouble()
	case *parser.CharLit:
		// 字符常量在 C 里是 int
		return ctypes.CInt()
	case *parser.StringLit:
		return ctypes.ArrayOf(ctypes.CChar(), int64(len(x.Value))+1)
	case *parser.Ident:
		return c.identExpr(x)
	case *parser.UnaryExpr:
		return c.unaryExpr(x)
	case *parser.IncDecExpr:
		return c.incDecExpr(x)
	case *parser.BinaryExpr:
		return c.binaryExpr(x)
	case *parser.AssignExpr:
		return c.assignExpr(x)
	case *parser.TernaryExpr:
		return c.ternaryExpr(x)
	case *parser.CommaExpr:
		var t ctypes.Type
		for _, sub := range x.Exprs {
			t = ctypes.Decay(c.expr(sub))
		}
		return t
	case *parser.CallExpr:
		return c.callExpr(x)
	case *parser.MemberExpr:
		return c.memberExpr(x)
	case *parser.IndexExpr:
		return c.indexExpr(x)
	case *parser.CastExpr:
		c.collectTypes(x.To)
		c.expr(x.Expr)
		return x.To
	case *parser.SizeofExpr:
		if x.Type != nil {
			c.collectTypes(x.Type)
		} else {
			c.expr(x.Expr)
		}
		return ctypes.CULong()
	case *parser.CompoundLit:
		c.collectTypes(x.Type)
		c.checkInit(x.Type, x.Init)
		x.A().LValue = true
		return x.Type
	}
	return &ctypes.Unknown{}
}

// intLitType 整数字面量的类型由词法阶段的后缀和取值决定
func intLitType(tok lexer.Token) ctypes.Type {
	switch {
	case tok.Longs >= 2:
		if tok.Unsigned {
			return ctypes.CULongLong()
		}
		return ctypes.CLongLong()
	case tok.Longs == 1:
		if tok.Unsigned {
			return ctypes.CULong()
		}
		return ctypes.CLong()
	case tok.Unsigned:
		return ctypes.CUInt()
	}
	return ctypes.CInt()
}

func (c *checker) identExpr(x *parser.Ident) ctypes.Type {
	d := c.scope.Lookup(x.Name)
	if d == nil || d.IsTypedef {
		c.errorf(x.Token, i18n.ErrUndeclared, x.Name)
		return &ctypes.Unknown{}
	}
	x.Decl = d
	d.Referenced = true
	if d.IsGlobal || d.StaticLocal {
		c.markTouch()
	}
	x.A().LValue = !d.IsFunc && !d.IsEnumConst
	return d.Type
}

func (c *checker) unaryExpr(x *parser.UnaryExpr) ctypes.Type {
	t := c.expr(x.Expr)
	if isUnknown(t) {
		return t
	}
	switch x.Op {
	case "*":
		dt := ctypes.Decay(t)
		if !ctypes.IsPointer(dt) {
			c.errorf(x.Token, i18n.ErrBadUnaryOperand, x.Op, t.String())
			return &ctypes.Unknown{}
		}
		x.A().LValue = true
		elem := ctypes.Elem(dt)
		if ctypes.IsVoid(elem) {
			c.errorf(x.Token, i18n.ErrVoidValue)
		}
		return elem
	case "&":
		if !x.Expr.A().LValue {
			c.errorf(x.Token, i18n.ErrNotLValue)
			return &ctypes.Unknown{}
		}
		if d := rootDecl(x.Expr); d != nil {
			d.Addressed = true
		}
		return ctypes.PointerTo(ctypes.Unqual(t))
	case "-", "+":
		if !ctypes.IsArithmetic(t) {
			c.errorf(x.Token, i18n.ErrBadUnaryOperand, x.Op, t.String())
			return &ctypes.Unknown{}
		}
		return promote(t)
	case "~":
		if !ctypes.IsInteger(t) {
			c.errorf(x.Token, i18n.ErrBadUnaryOperand, x.Op, t.String())
			return &ctypes.Unknown{}
		}
		return promote(t)
	case "!":
		if !ctypes.IsScalar(ctypes.Decay(t)) {
			c.errorf(x.Token, i18n.ErrBadUnaryOperand, x.Op, t.String())
		}
		return ctypes.CInt()
	}
	return &ctypes.Unknown{}
}

func (c *checker) incDecExpr(x *parser.IncDecExpr) ctypes.Type {
	t := c.expr(x.Expr)
	if isUnknown(t) {
		return t
	}
	if !x.Expr.A().LValue {
		c.errorf(x.Token, i18n.ErrNotLValue)
		return t
	}
	if ctypes.IsConst(t) {
		c.errorf(x.Token, i18n.ErrAssignToConst, exprName(x.Expr))
	}
	if ctypes.IsPointer(ctypes.Decay(t)) {
		x.A().Scale = ctypes.Sizeof(ctypes.Elem(ctypes.Decay(t)))
		markArith(x.Expr)
	} else if !ctypes.IsArithmetic(t) {
		c.errorf(x.Token, i18n.ErrBadUnaryOperand, x.Op, t.String())
	}
	return ctypes.Unqual(t)
}

func (c *checker) binaryExpr(x *parser.BinaryExpr) ctypes.Type {
	lt := ctypes.Decay(c.expr(x.Left))
	rt := ctypes.Decay(c.expr(x.Right))
	if isUnknown(lt) || isUnknown(rt) {
		return &ctypes.Unknown{}
	}

	bad := func() ctypes.Type {
		c.errorf(x.Token, i18n.ErrBadOperands, x.Op, lt.String(), rt.String())
		return &ctypes.Unknown{}
	}

	switch x.Op {
	case "+":
		if ctypes.IsPointer(lt) && ctypes.IsInteger(rt) {
			x.A().Scale = ctypes.Sizeof(ctypes.Elem(lt))
			markArith(x.Left)
			return lt
		}
		if ctypes.IsInteger(lt) && ctypes.IsPointer(rt) {
			x.A().Scale = ctypes.Sizeof(ctypes.Elem(rt))
			markArith(x.Right)
			return rt
		}
		if ctypes.IsArithmetic(lt) && ctypes.IsArithmetic(rt) {
			return usualArith(lt, rt)
		}
		return bad()
	case "-":
		if ctypes.IsPointer(lt) && ctypes.IsPointer(rt) {
			x.A().Scale = ctypes.Sizeof(ctypes.Elem(lt))
			markArith(x.Left)
			markArith(x.Right)
			return ctypes.CLong()
		}
		if ctypes.IsPointer(lt) && ctypes.IsInteger(rt) {
			x.A().Scale = ctypes.Sizeof(ctypes.Elem(lt))
			markArith(x.Left)
			return lt
		}
		if ctypes.IsArithmetic(lt) && ctypes.IsArithmetic(rt) {
			return usualArith(lt, rt)
		}
		return bad()
	case "*", "/":
		if !ctypes.IsArithmetic(lt) || !ctypes.IsArithmetic(rt) {
			return bad()
		}
		return usualArith(lt, rt)
	case "%", "&", "|", "^":
		if !ctypes.IsInteger(lt) || !ctypes.IsInteger(rt) {
			return bad()
		}
		return usualArith(lt, rt)
	case "<<", ">>":
		if !ctypes.IsInteger(lt) || !ctypes.IsInteger(rt) {
			return bad()
		}
		return promote(lt)
	case "<", ">", "<=", ">=", "==", "!=":
		arith := ctypes.IsArithmetic(lt) && ctypes.IsArithmetic(rt)
		ptrs := ctypes.IsPointer(lt) && ctypes.IsPointer(rt)
		mixed := (ctypes.IsPointer(lt) && ctypes.IsInteger(rt)) ||
			(ctypes.IsInteger(lt) && ctypes.IsPointer(rt))
		if !arith && !ptrs && !mixed {
			return bad()
		}
		return ctypes.CInt()
	case "&&", "||":
		if !ctypes.IsScalar(lt) || !ctypes.IsScalar(rt) {
			return bad()
		}
		return ctypes.CInt()
	}
	return bad()
}

func (c *checker) assignExpr(x *parser.AssignExpr) ctypes.Type {
	lt := c.expr(x.Left)
	rt := c.expr(x.Right)
	if isUnknown(lt) {
		return lt
	}

	if !x.Left.A().LValue {
		c.errorf(x.Token, i18n.ErrNotLValue)
		return ctypes.Unqual(lt)
	}
	if ctypes.IsConst(lt) {
		c.errorf(x.Token, i18n.ErrAssignToConst, exprName(x.Left))
	}
	if _, isArr := ctypes.Unqual(lt).(*ctypes.Array); isArr {
		c.errorf(x.Token, i18n.ErrNotLValue)
		return ctypes.Unqual(lt)
	}

	ldt := ctypes.Decay(ctypes.Unqual(lt))
	rdt := ctypes.Decay(rt)
	switch x.Op {
	case "=":
		c.checkAssignable(lt, rt, x.Token)
		// 指针被赋予带算术来历的值时，目标也改用切片表示
		if ctypes.IsPointer(ldt) {
			if x.Right.A().Scale != 0 {
				markArith(x.Left)
			}
			if rd := rootDecl(x.Right); rd != nil && rd.UsesArith {
				markArith(x.Left)
			}
		}
	case "+=", "-=":
		if ctypes.IsPointer(ldt) && ctypes.IsInteger(rdt) {
			x.A().Scale = ctypes.Sizeof(ctypes.Elem(ldt))
			markArith(x.Left)
		} else if !ctypes.IsArithmetic(ldt) || !ctypes.IsArithmetic(rdt) {
			c.errorf(x.Token, i18n.ErrBadOperands, x.Op, lt.String(), rt.String())
		}
	case "*=", "/=":
		if !ctypes.IsArithmetic(ldt) || !ctypes.IsArithmetic(rdt) {
			c.errorf(x.Token, i18n.ErrBadOperands, x.Op, lt.String(), rt.String())
		}
	default: // %= &= |= ^= <<= >>=
		if !ctypes.IsInteger(ldt) || !ctypes.IsInteger(rdt) {
			c.errorf(x.Token, i18n.ErrBadOperands, x.Op, lt.String(), rt.String())
		}
	}
	return ctypes.Unqual(lt)
}

func (c *checker) ternaryExpr(x *parser.TernaryExpr) ctypes.Type {
	ct := ctypes.Decay(c.expr(x.Cond))
	if !ctypes.IsScalar(ct) && !isUnknown(ct) {
		c.errorf(x.Token, i18n.ErrBadOperands, "?:", ct.String(), "")
	}
	lt := ctypes.Decay(c.expr(x.Then))
	rt := ctypes.Decay(c.expr(x.Else))
	if ctypes.IsArithmetic(lt) && ctypes.IsArithmetic(rt) {
		return usualArith(lt, rt)
	}
	if isUnknown(lt) {
		return rt
	}
	return lt
}

func (c *checker) callExpr(x *parser.CallExpr) ctypes.Type {
	name := ""
	if id, ok := x.Fn.(*parser.Ident); ok {
		name = id.Name
	}

	ft := ctypes.Decay(c.expr(x.Fn))
	var fn *ctypes.Func
	switch u := ctypes.Unqual(ft).(type) {
	case *ctypes.Func:
		fn = u
	case *ctypes.Pointer:
		if f, ok := ctypes.Unqual(u.Elem).(*ctypes.Func); ok {
			fn = f
		}
	}
	if fn == nil {
		if !isUnknown(ft) {
			c.errorf(x.Token, i18n.ErrNotCallable, ft.String())
		}
		for _, a := range x.Args {
			c.expr(a)
		}
		return &ctypes.Unknown{}
	}

	if len(x.Args) != len(fn.Params) {
		if len(x.Args) < len(fn.Params) || !fn.Variadic {
			c.errorf(x.Token, i18n.ErrArgCount, exprName(x.Fn), len(x.Args), len(fn.Params))
		}
	}
	for i, a := range x.Args {
		at := c.expr(a)
		if ctypes.IsVoid(at) {
			c.errorf(tokOf(a), i18n.ErrVoidValue)
		}
		if i < len(fn.Params) && fn.Params[i].Type != nil {
			c.checkAssignable(fn.Params[i].Type, at, tokOf(a))
		}
	}

	// 记调用边供状态传播
	if name != "" && !IsBuiltin(name) && c.fnName != "" {
		if c.calls[c.fnName] == nil {
			c.calls[c.fnName] = make(map[string]bool)
		}
		c.calls[c.fnName][name] = true
	}
	return fn.Return
}

func (c *checker) memberExpr(x *parser.MemberExpr) ctypes.Type {
	bt := c.expr(x.Expr)
	if isUnknown(bt) {
		return bt
	}

	rec := ctypes.Unqual(bt)
	if x.Arrow {
		dt := ctypes.Decay(bt)
		p, ok := ctypes.Unqual(dt).(*ctypes.Pointer)
		if !ok {
			c.errorf(x.Token, i18n.ErrArrowNonPointer, bt.String())
			return &ctypes.Unknown{}
		}
		rec = ctypes.Unqual(p.Elem)
	}

	switch rec.(type) {
	case *ctypes.Struct, *ctypes.Union:
	default:
		c.errorf(x.Token, i18n.ErrNotAggregate, bt.String())
		return &ctypes.Unknown{}
	}

	f := ctypes.FindField(rec, x.Name)
	if f == nil {
		c.errorf(x.Token, i18n.ErrNoMember, x.Name, rec.String())
		return &ctypes.Unknown{}
	}
	x.Field = f
	x.A().LValue = x.Arrow || x.Expr.A().LValue
	if ctypes.IsConst(bt) {
		return ctypes.WithConst(f.Type)
	}
	return f.Type
}

func (c *checker) indexExpr(x *parser.IndexExpr) ctypes.Type {
	bt := ctypes.Decay(c.expr(x.Expr))
	it := c.expr(x.Index)
	if !ctypes.IsInteger(it) && !isUnknown(it) {
		c.errorf(tokOf(x.Index), i18n.ErrBadOperands, "[]", bt.String(), it.String())
	}
	if isUnknown(bt) {
		return bt
	}
	if !ctypes.IsPointer(bt) {
		c.errorf(x.Token, i18n.ErrNotSubscriptable, bt.String())
		return &ctypes.Unknown{}
	}
	markArith(x.Expr)
	x.A().LValue = true
	t := ctypes.Elem(bt)
	if ctypes.IsConst(ctypes.Elem(ctypes.Decay(x.Expr.A().Type))) {
		t = ctypes.WithConst(t)
	}
	return t
}

// exprName 表达式在诊断里的名字
func exprName(e parser.Expression) string {
	switch x := e.(type) {
	case *parser.Ident:
		return x.Name
	case *parser.MemberExpr:
		return x.Name
	case *parser.IndexExpr:
		return exprName(x.Expr)
	case *parser.UnaryExpr:
		return exprName(x.Expr)
	}
	return e.TokenLiteral()
}
