// Package symbol 实现分层符号表：普通标识符与 struct/union/enum 标签
// 各占独立名字空间，作用域按词法嵌套查找。
package symbol

import (
	"github.com/tangzhangming/cango/internal/ctypes"
)

// ScopeKind 作用域种类
type ScopeKind int

const (
	ScopeFile      ScopeKind = iota // 文件作用域
	ScopeFunction                   // 函数顶层作用域（参数所在）
	ScopeBlock                      // 块作用域
	ScopePrototype                  // 函数原型参数作用域
)

// Declaration 一个已声明的标识符
type Declaration struct {
	Name    string
	Type    ctypes.Type
	Storage ctypes.StorageClass

	IsTypedef   bool
	IsEnumConst bool
	EnumValue   int64

	IsFunc   bool
	Defined  bool // 函数有函数体 / 变量有初始化或 tentative 定义
	IsGlobal bool // 文件作用域变量
	IsParam  bool

	Referenced bool // 被引用过
	UsesArith  bool // 指针被用于算术或下标（决定切片还是单指针）
	Addressed  bool // 被取过地址

	StaticLocal bool   // 函数内 static 变量
	UniqueName  string // 生成目标代码用的去重名
	Hoisted     bool   // 声明被提升到 goto 分发循环之前
}

// Scope 一层作用域
type Scope struct {
	Kind   ScopeKind
	Parent *Scope

	names map[string]*Declaration
	tags  map[string]ctypes.Type
	order []*Declaration // 按声明顺序
}

// NewScope 创建 parent 的子作用域
func NewScope(kind ScopeKind, parent *Scope) *Scope {
	return &Scope{
		Kind:   kind,
		Parent: parent,
		names:  make(map[string]*Declaration),
		tags:   make(map[string]ctypes.Type),
	}
}

// Declare 在本层登记一个标识符。重名时返回已有条目和 false。
func (s *Scope) Declare(d *Declaration) (*Declaration, bool) {
	if prev, ok := s.names[d.Name]; ok {
		return prev, false
	}
	s.names[d.Name] = d
	s.order = append(s.order, d)
	return d, true
}

// Replace 覆盖本层的已有条目（extern 声明合并时用）
func (s *Scope) Replace(d *Declaration) {
	if _, ok := s.names[d.Name]; !ok {
		s.order = append(s.order, d)
	}
	s.names[d.Name] = d
}

// Lookup 从本层往外逐层查找标识符
func (s *Scope) Lookup(name string) *Declaration {
	for sc := s; sc != nil; sc = sc.Parent {
		if d, ok := sc.names[name]; ok {
			return d
		}
	}
	return nil
}

// LookupLocal 只查本层
func (s *Scope) LookupLocal(name string) *Declaration {
	return s.names[name]
}

// IsTypedefName 判定 name 在当前作用域链中是否为 typedef 名。
// 解析阶段靠它区分 `(T)(x)` 是强制转换还是函数调用。
func (s *Scope) IsTypedefName(name string) bool {
	d := s.Lookup(name)
	return d != nil && d.IsTypedef
}

// DeclareTag 在本层登记一个 struct/union/enum 标签
func (s *Scope) DeclareTag(name string, t ctypes.Type) (ctypes.Type, bool) {
	if prev, ok := s.tags[name]; ok {
		return prev, false
	}
	s.tags[name] = t
	return t, true
}

// ReplaceTag 覆盖本层的标签（前向声明补全定义时用）
func (s *Scope) ReplaceTag(name string, t ctypes.Type) {
	s.tags[name] = t
}

// LookupTag 从本层往外逐层查找标签
func (s *Scope) LookupTag(name string) ctypes.Type {
	for sc := s; sc != nil; sc = sc.Parent {
		if t, ok := sc.tags[name]; ok {
			return t
		}
	}
	return nil
}

// LookupTagLocal 只查本层的标签
func (s *Scope) LookupTagLocal(name string) ctypes.Type {
	return s.tags[name]
}

// Ordered 本层按声明顺序排列的条目
func (s *Scope) Ordered() []*Declaration {
	return s.order
}

// File 所在的文件作用域
func (s *Scope) File() *Scope {
	sc := s
	for sc.Parent != nil {
		sc = sc.Parent
	}
	return sc
}
