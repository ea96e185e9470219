package diag

import (
	"sort"

	"github.com/tangzhangming/cango/internal/i18n"
)

// Severity 诊断级别
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String 返回级别名称
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Category 诊断类别（词法/语法/语义/不支持的构造）
type Category int

const (
	CategoryLexical Category = iota
	CategorySyntax
	CategorySemantic
	CategoryUnsupported
)

// String 返回类别名称
func (c Category) String() string {
	switch c {
	case CategoryLexical:
		return "lexical"
	case CategorySyntax:
		return "syntax"
	case CategorySemantic:
		return "semantic"
	case CategoryUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Pos 源码位置
type Pos struct {
	Offset int // 字节偏移，用于排序
	Line   int // 1 起始行号
	Column int // 列号
}

// Diagnostic 一条诊断信息
type Diagnostic struct {
	Severity Severity
	Category Category
	Message  string
	Pos      Pos
}

// Sink 诊断收集器。只追加，单线程使用，不需要同步。
type Sink struct {
	diags []Diagnostic
}

// NewSink 创建一个新的诊断收集器
func NewSink() *Sink {
	return &Sink{}
}

// Add 追加一条诊断
func (s *Sink) Add(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Error 用 i18n 消息键追加一条错误
func (s *Sink) Error(cat Category, pos Pos, key string, args ...any) {
	s.Add(Diagnostic{
		Severity: SeverityError,
		Category: cat,
		Message:  i18n.T(key, args...),
		Pos:      pos,
	})
}

// Warn 用 i18n 消息键追加一条警告
func (s *Sink) Warn(cat Category, pos Pos, key string, args ...any) {
	s.Add(Diagnostic{
		Severity: SeverityWarning,
		Category: cat,
		Message:  i18n.T(key, args...),
		Pos:      pos,
	})
}

// HasErrors 是否存在 error 级别的诊断
func (s *Sink) HasErrors() bool {
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count 诊断总数
func (s *Sink) Count() int {
	return len(s.diags)
}

// ErrorCount 错误数量
func (s *Sink) ErrorCount() int {
	n := 0
	for _, d := range s.diags {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}

// WarningCount 警告数量
func (s *Sink) WarningCount() int {
	return len(s.diags) - s.ErrorCount()
}

// Diagnostics 按源码位置排序返回所有诊断。
// 排序是稳定的，同一位置的诊断保持追加顺序。
func (s *Sink) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(s.diags))
	copy(out, s.diags)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos.Offset < out[j].Pos.Offset
	})
	return out
}
