package sema

import (
	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/parser"
)

// evalConst 整型常量求值。假定表达式已经过类型检查，
// 枚举常量通过解析到的声明取值。
func (c *checker) evalConst(e parser.Expression) (int64, bool) {
	switch x := e.(type) {
	case *parser.IntLit:
		return x.Value, true
	case *parser.CharLit:
		return x.Value, true
	case *parser.Ident:
		if x.Decl != nil && x.Decl.IsEnumConst {
			return x.Decl.EnumValue, true
		}
		if d := c.scope.Lookup(x.Name); d != nil && d.IsEnumConst {
			return d.EnumValue, true
		}
		return 0, false
	case *parser.SizeofExpr:
		if x.Type != nil {
			return ctypes.Sizeof(x.Type), true
		}
		if x.Expr != nil && x.Expr.A().Type != nil {
			return ctypes.Sizeof(ctypes.Decay(x.Expr.A().Type)), true
		}
		return 0, false
	case *parser.CastExpr:
		v, ok := c.evalConst(x.Expr)
		if !ok {
			return 0, false
		}
		if it, isInt := ctypes.Unqual(x.To).(*ctypes.Int); isInt {
			return truncateTo(v, it), true
		}
		return v, true
	case *parser.UnaryExpr:
		v, ok := c.evalConst(x.Expr)
		if !ok {
			return 0, false
		}
		switch x.Op {
		case "-":
			return -v, true
		case "+":
			return v, true
		case "~":
			return ^v, true
		case "!":
			if v == 0 {
				return 1, true
			}
			return 0, true
		}
		return 0, false
	case *parser.BinaryExpr:
		l, ok := c.evalConst(x.Left)
		if !ok {
			return 0, false
		}
		r, ok := c.evalConst(x.Right)
		if !ok {
			return 0, false
		}
		return constBinop(x.Op, l, r)
	case *parser.TernaryExpr:
		v, ok := c.evalConst(x.Cond)
		if !ok {
			return 0, false
		}
		if v != 0 {
			return c.evalConst(x.Then)
		}
		return c.evalConst(x.Else)
	}
	return 0, false
}

func truncateTo(v int64, t *ctypes.Int) int64 {
	switch t.Width {
	case 8:
		if t.Unsigned {
			return int64(uint8(v))
		}
		return int64(int8(v))
	case 16:
		if t.Unsigned {
			return int64(uint16(v))
		}
		return int64(int16(v))
	case 32:
		if t.Unsigned {
			return int64(uint32(v))
		}
		return int64(int32(v))
	}
	return v
}

func constBinop(op string, l, r int64) (int64, bool) {
	b2i := func(b bool) int64 {
		if b {
			return 1
		}
		return 0
	}
	switch op {
	case "+":
		return l + r, true
	case "-":
		return l - r, true
	case "*":
		return l * r, true
	case "/":
		if r == 0 {
			return 0, false
		}
		return l / r, true
	case "%":
		if r == 0 {
			return 0, false
		}
		return l % r, true
	case "&":
		return l & r, true
	case "|":
		return l | r, true
	case "^":
		return l ^ r, true
	case "<<":
		return l << uint64(r), true
	case ">>":
		return l >> uint64(r), true
	case "==":
		return b2i(l == r), true
	case "!=":
		return b2i(l != r), true
	case "<":
		return b2i(l < r), true
	case ">":
		return b2i(l > r), true
	case "<=":
		return b2i(l <= r), true
	case ">=":
		return b2i(l >= r), true
	case "&&":
		return b2i(l != 0 && r != 0), true
	case "||":
		return b2i(l != 0 || r != 0), true
	}
	return 0, false
}
