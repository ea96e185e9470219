// Package ctypes 定义 C 类型系统：所有阶段共享的类型模型。
package ctypes

import (
	"fmt"
	"strings"
)

// Type C 类型接口
type Type interface {
	implType()
	String() string
}

// StorageClass 存储类
type StorageClass int

const (
	StorageNone StorageClass = iota
	StorageAuto
	StorageStatic
	StorageExtern
	StorageRegister
	StorageTypedef
)

// String 返回存储类名称
func (s StorageClass) String() string {
	switch s {
	case StorageAuto:
		return "auto"
	case StorageStatic:
		return "static"
	case StorageExtern:
		return "extern"
	case StorageRegister:
		return "register"
	case StorageTypedef:
		return "typedef"
	}
	return ""
}

// Void void 类型
type Void struct{}

// Int 整数类型族 (char/short/int/long/long long 及其无符号形式)
type Int struct {
	Width    int // 位宽: 8, 16, 32, 64
	Unsigned bool
	// Long 区分同宽度的 long 和 long long 的拼写，只影响打印
	Longs int // 0=按宽度拼写, 1=long, 2=long long
}

// Float 浮点类型族 (float/double)
type Float struct {
	Width int // 32 或 64
}

// Pointer 指针类型
type Pointer struct {
	Elem Type
}

// Array 数组类型
type Array struct {
	Elem Type
	Len  int64 // -1 表示长度未定
}

// Param 函数参数
type Param struct {
	Name string
	Type Type
}

// Func 函数类型
type Func struct {
	Return   Type
	Params   []Param
	Variadic bool
}

// Field 结构体/联合体字段。
// 位域字段带 BitWidth >= 0，布局计算后得到所在存储单元和移位量。
type Field struct {
	Name     string
	Type     Type
	BitWidth int // -1 表示不是位域

	// 布局结果（Layout 计算后填充）
	Offset   int64 // 字节偏移（位域为所在存储单元的偏移）
	Unit     int   // 位域所在存储单元的序号
	BitShift int   // 位域在单元内的右移位数（MSB 优先）
}

// Struct 结构体类型。按 tag 比较；匿名结构体按指针身份比较。
type Struct struct {
	Tag      string
	Fields   []*Field
	Complete bool

	// 布局缓存
	Size    int64
	Align   int64
	LaidOut bool
}

// Union 联合体类型
type Union struct {
	Tag      string
	Fields   []*Field
	Complete bool

	Size    int64
	Align   int64
	LaidOut bool
}

// EnumMember 枚举成员
type EnumMember struct {
	Name  string
	Value int64
}

// Enum 枚举类型
type Enum struct {
	Tag      string
	Members  []EnumMember
	Complete bool
}

// Qual 带限定符的类型
type Qual struct {
	Base     Type
	Const    bool
	Volatile bool
}

func (*Void) implType()    {}
func (*Int) implType()     {}
func (*Float) implType()   {}
func (*Pointer) implType() {}
func (*Array) implType()   {}
func (*Func) implType()    {}
func (*Struct) implType()  {}
func (*Union) implType()   {}
func (*Enum) implType()    {}
func (*Qual) implType()    {}

// Unknown 语义分析失败时的兜底类型，让兄弟表达式继续检查
type Unknown struct{}

func (*Unknown) implType()      {}
func (*Unknown) String() string { return "<unknown>" }

func (*Void) String() string { return "void" }

func (t *Int) String() string {
	sign := ""
	if t.Unsigned {
		sign = "unsigned "
	}
	switch t.Longs {
	case 1:
		return sign + "long"
	case 2:
		return sign + "long long"
	}
	switch t.Width {
	case 8:
		if t.Unsigned {
			return "unsigned char"
		}
		return "char"
	case 16:
		return sign + "short"
	case 64:
		return sign + "long"
	}
	return sign + "int"
}

func (t *Float) String() string {
	if t.Width == 32 {
		return "float"
	}
	return "double"
}

func (t *Pointer) String() string {
	if t.Elem == nil {
		return "void *"
	}
	return t.Elem.String() + " *"
}

func (t *Array) String() string {
	if t.Len < 0 {
		return t.Elem.String() + " []"
	}
	return fmt.Sprintf("%s [%d]", t.Elem, t.Len)
}

func (t *Func) String() string {
	var ps []string
	for _, p := range t.Params {
		ps = append(ps, p.Type.String())
	}
	if t.Variadic {
		ps = append(ps, "...")
	}
	if len(ps) == 0 {
		ps = append(ps, "void")
	}
	return fmt.Sprintf("%s (%s)", t.Return, strings.Join(ps, ", "))
}

func (t *Struct) String() string {
	if t.Tag == "" {
		return "struct <anonymous>"
	}
	return "struct " + t.Tag
}

func (t *Union) String() string {
	if t.Tag == "" {
		return "union <anonymous>"
	}
	return "union " + t.Tag
}

func (t *Enum) String() string {
	if t.Tag == "" {
		return "enum <anonymous>"
	}
	return "enum " + t.Tag
}

func (t *Qual) String() string {
	var sb strings.Builder
	if t.Const {
		sb.WriteString("const ")
	}
	if t.Volatile {
		sb.WriteString("volatile ")
	}
	sb.WriteString(t.Base.String())
	return sb.String()
}

// 常用类型构造函数

// CChar 有符号 char
func CChar() Type { return &Int{Width: 8} }

// CUChar 无符号 char
func CUChar() Type { return &Int{Width: 8, Unsigned: true} }

// CShort short
func CShort() Type { return &Int{Width: 16} }

// CUShort unsigned short
func CUShort() Type { return &Int{Width: 16, Unsigned: true} }

// CInt int
func CInt() Type { return &Int{Width: 32} }

// CUInt unsigned int
func CUInt() Type { return &Int{Width: 32, Unsigned: true} }

// CLong long
func CLong() Type { return &Int{Width: 64, Longs: 1} }

// CULong unsigned long
func CULong() Type { return &Int{Width: 64, Unsigned: true, Longs: 1} }

// CLongLong long long
func CLongLong() Type { return &Int{Width: 64, Longs: 2} }

// CULongLong unsigned long long
func CULongLong() Type { return &Int{Width: 64, Unsigned: true, Longs: 2} }

// CFloat float
func CFloat() Type { return &Float{Width: 32} }

// CDouble double
func CDouble() Type { return &Float{Width: 64} }

// CVoid void
func CVoid() Type { return &Void{} }

// PointerTo 指向 elem 的指针
func PointerTo(elem Type) Type { return &Pointer{Elem: elem} }

// ArrayOf 元素为 elem、长度为 n 的数组
func ArrayOf(elem Type, n int64) Type { return &Array{Elem: elem, Len: n} }

// Unqual 去掉限定符
func Unqual(t Type) Type {
	if q, ok := t.(*Qual); ok {
		return Unqual(q.Base)
	}
	return t
}

// IsConst 是否带 const 限定
func IsConst(t Type) bool {
	q, ok := t.(*Qual)
	return ok && (q.Const || IsConst(q.Base))
}

// WithConst 给类型加上 const 限定
func WithConst(t Type) Type {
	if q, ok := t.(*Qual); ok {
		return &Qual{Base: q.Base, Const: true, Volatile: q.Volatile}
	}
	return &Qual{Base: t, Const: true}
}

// IsInteger 是否为整数类型（含枚举）
func IsInteger(t Type) bool {
	switch Unqual(t).(type) {
	case *Int, *Enum:
		return true
	}
	return false
}

// IsFloat 是否为浮点类型
func IsFloat(t Type) bool {
	_, ok := Unqual(t).(*Float)
	return ok
}

// IsArithmetic 是否为算术类型
func IsArithmetic(t Type) bool {
	return IsInteger(t) || IsFloat(t)
}

// IsPointer 是否为指针类型
func IsPointer(t Type) bool {
	_, ok := Unqual(t).(*Pointer)
	return ok
}

// IsScalar 是否为标量类型（算术或指针）
func IsScalar(t Type) bool {
	return IsArithmetic(t) || IsPointer(t)
}

// IsVoid 是否为 void
func IsVoid(t Type) bool {
	_, ok := Unqual(t).(*Void)
	return ok
}

// Decay 数组退化为指针、函数退化为函数指针，其余原样返回
func Decay(t Type) Type {
	switch u := Unqual(t).(type) {
	case *Array:
		return PointerTo(u.Elem)
	case *Func:
		return PointerTo(u)
	}
	return t
}

// Elem 指针或数组的元素类型
func Elem(t Type) Type {
	switch u := Unqual(t).(type) {
	case *Pointer:
		return u.Elem
	case *Array:
		return u.Elem
	}
	return nil
}

// FindField 按名查找结构体/联合体字段
func FindField(t Type, name string) *Field {
	switch u := Unqual(t).(type) {
	case *Struct:
		for _, f := range u.Fields {
			if f.Name == name {
				return f
			}
		}
	case *Union:
		for _, f := range u.Fields {
			if f.Name == name {
				return f
			}
		}
	}
	return nil
}

// Equal 结构化比较两个类型。
// struct/union/enum 按 tag 比较，匿名的按身份比较。
func Equal(a, b Type) bool {
	a, b = Unqual(a), Unqual(b)
	if a == nil || b == nil {
		return a == b
	}
	switch ta := a.(type) {
	case *Void:
		_, ok := b.(*Void)
		return ok
	case *Unknown:
		_, ok := b.(*Unknown)
		return ok
	case *Int:
		tb, ok := b.(*Int)
		return ok && ta.Width == tb.Width && ta.Unsigned == tb.Unsigned
	case *Float:
		tb, ok := b.(*Float)
		return ok && ta.Width == tb.Width
	case *Pointer:
		tb, ok := b.(*Pointer)
		return ok && Equal(ta.Elem, tb.Elem)
	case *Array:
		tb, ok := b.(*Array)
		if !ok || !Equal(ta.Elem, tb.Elem) {
			return false
		}
		// 未定长度的数组与任何长度兼容
		return ta.Len == tb.Len || ta.Len < 0 || tb.Len < 0
	case *Func:
		tb, ok := b.(*Func)
		if !ok || ta.Variadic != tb.Variadic || len(ta.Params) != len(tb.Params) {
			return false
		}
		if !Equal(ta.Return, tb.Return) {
			return false
		}
		for i := range ta.Params {
			if !Equal(ta.Params[i].Type, tb.Params[i].Type) {
				return false
			}
		}
		return true
	case *Struct:
		tb, ok := b.(*Struct)
		if !ok {
			return false
		}
		if ta.Tag == "" || tb.Tag == "" {
			return ta == tb
		}
		return ta.Tag == tb.Tag
	case *Union:
		tb, ok := b.(*Union)
		if !ok {
			return false
		}
		if ta.Tag == "" || tb.Tag == "" {
			return ta == tb
		}
		return ta.Tag == tb.Tag
	case *Enum:
		tb, ok := b.(*Enum)
		if !ok {
			return false
		}
		if ta.Tag == "" || tb.Tag == "" {
			return ta == tb
		}
		return ta.Tag == tb.Tag
	}
	return false
}

// RenderDeclarator 把类型渲染成以 name 命名的 C 声明符文本。
// 与声明符解析互为逆操作：`int (*pf)(void)` 解析出的类型
// 渲染回来仍是 `int (*pf)(void)`。
func RenderDeclarator(t Type, name string) string {
	return render(Unqual(t), name)
}

func render(t Type, inner string) string {
	switch u := t.(type) {
	case *Qual:
		return render(Unqual(u), inner)
	case *Pointer:
		return render(Unqual(u.Elem), "*"+inner)
	case *Array:
		if strings.HasPrefix(inner, "*") {
			inner = "(" + inner + ")"
		}
		if u.Len < 0 {
			return render(Unqual(u.Elem), inner+"[]")
		}
		return render(Unqual(u.Elem), fmt.Sprintf("%s[%d]", inner, u.Len))
	case *Func:
		if strings.HasPrefix(inner, "*") {
			inner = "(" + inner + ")"
		}
		var ps []string
		for _, p := range u.Params {
			ps = append(ps, strings.TrimSpace(RenderDeclarator(p.Type, p.Name)))
		}
		if u.Variadic {
			ps = append(ps, "...")
		}
		if len(ps) == 0 {
			ps = append(ps, "void")
		}
		return render(Unqual(u.Return), inner+"("+strings.Join(ps, ", ")+")")
	default:
		if inner == "" {
			return t.String()
		}
		return t.String() + " " + inner
	}
}
