package transpiler

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/symbol"
)

// goKeywords 与 C 标识符可能冲突的 Go 保留字和预定义名
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	"len": true, "cap": true, "new": true, "make": true, "copy": true,
	"append": true, "panic": true, "recover": true, "print": true, "println": true,
	"string": true, "int": true, "byte": true, "rune": true, "bool": true,
	"true": true, "false": true, "nil": true, "iota": true, "error": true,
}

// goName C 标识符转 Go 标识符
func goName(name string) string {
	if name == "main" {
		return "cMain"
	}
	if goKeywords[name] {
		return name + "_"
	}
	return name
}

// declName 声明在生成代码里的名字（static 局部变量用去重名）
func declName(d *symbol.Declaration) string {
	if d == nil {
		return "_"
	}
	if d.UniqueName != "" {
		return goName(d.UniqueName)
	}
	return goName(d.Name)
}

// isCharPtr char* 及其限定形式
func isCharPtr(t ctypes.Type) bool {
	p, ok := ctypes.Unqual(ctypes.Decay(t)).(*ctypes.Pointer)
	if !ok {
		return false
	}
	it, ok := ctypes.Unqual(p.Elem).(*ctypes.Int)
	return ok && it.Width == 8
}

// sliceRepr 指针声明是否用切片表示：char* 一律切片，
// 其余指针看语义分析的用法扫描结果；配置可以强制全部用切片
func (g *CodeGen) sliceRepr(t ctypes.Type, d *symbol.Declaration) bool {
	if !ctypes.IsPointer(ctypes.Decay(t)) {
		return false
	}
	if isCharPtr(t) || g.forceSlice {
		return true
	}
	return d != nil && d.UsesArith
}

// goType C 类型渲染成 Go 类型。slice 控制指针用切片还是原生指针。
func (g *CodeGen) goType(t ctypes.Type, slice bool) string {
	switch u := ctypes.Unqual(t).(type) {
	case *ctypes.Void:
		return ""
	case *ctypes.Int:
		switch u.Width {
		case 8:
			return "byte"
		case 16:
			if u.Unsigned {
				return "uint16"
			}
			return "int16"
		case 64:
			if u.Unsigned {
				return "uint64"
			}
			return "int64"
		}
		if u.Unsigned {
			return "uint32"
		}
		return "int32"
	case *ctypes.Float:
		if u.Width == 32 {
			return "float32"
		}
		return "float64"
	case *ctypes.Enum:
		return "int32"
	case *ctypes.Pointer:
		if ctypes.IsVoid(u.Elem) {
			return "any"
		}
		if f, ok := ctypes.Unqual(u.Elem).(*ctypes.Func); ok {
			return g.goFuncType(f)
		}
		if slice || isCharPtr(t) {
			return "[]" + g.goType(u.Elem, false)
		}
		return "*" + g.goType(u.Elem, false)
	case *ctypes.Array:
		if u.Len < 0 {
			return "[]" + g.goType(u.Elem, false)
		}
		return fmt.Sprintf("[%d]%s", u.Len, g.goType(u.Elem, false))
	case *ctypes.Func:
		return g.goFuncType(u)
	case *ctypes.Struct:
		return goName(u.Tag)
	case *ctypes.Union:
		return goName(u.Tag)
	case *ctypes.Unknown:
		return "int32"
	}
	return "int32"
}

// goFuncType 函数指针的 Go 类型
func (g *CodeGen) goFuncType(f *ctypes.Func) string {
	var sb strings.Builder
	sb.WriteString("func(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(g.goType(p.Type, isCharPtr(p.Type)))
	}
	sb.WriteString(")")
	if !ctypes.IsVoid(f.Return) {
		sb.WriteString(" " + g.goType(f.Return, isCharPtr(f.Return)))
	}
	return sb.String()
}

// zeroValue Go 类型的零值字面量
func (g *CodeGen) zeroValue(t ctypes.Type, slice bool) string {
	switch ctypes.Unqual(t).(type) {
	case *ctypes.Int, *ctypes.Float, *ctypes.Enum:
		return "0"
	case *ctypes.Pointer:
		return "nil"
	case *ctypes.Struct, *ctypes.Union, *ctypes.Array:
		return g.goType(t, slice) + "{}"
	}
	return "0"
}
