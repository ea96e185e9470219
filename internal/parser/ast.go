package parser

import (
	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/symbol"
)

// Node AST 节点接口
type Node interface {
	TokenLiteral() string
}

// Statement 语句接口
type Statement interface {
	Node
	statementNode()
}

// Expression 表达式接口。A 返回语义分析写入的标注。
type Expression interface {
	Node
	expressionNode()
	A() *Attrs
}

// Attrs 语义分析阶段写到表达式上的标注
type Attrs struct {
	Type   ctypes.Type // 表达式类型（数组退化前）
	LValue bool        // 是否为左值
	Scale  int64       // 指针加减法的元素大小（非指针运算为 0）
}

// File 表示一个翻译单元
type File struct {
	Name  string // 文件名（报诊断用）
	Decls []Statement
}

func (f *File) TokenLiteral() string { return "file" }

// FuncDecl 函数定义或函数声明（Body 为 nil 时是声明）
type FuncDecl struct {
	Token   lexer.Token         // 声明起始 token
	Name    string              // 函数名
	Type    *ctypes.Func        // 函数类型
	Storage ctypes.StorageClass // 存储类
	Params  []*symbol.Declaration
	Body    *BlockStmt          // 函数体（声明时为 nil）
	Decl    *symbol.Declaration // 符号表条目
	Labels  []*GotoInfo         // 函数内标号（语义分析填充）
}

func (f *FuncDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDecl) statementNode()       {}

// GotoInfo 函数内一个标号的汇总
type GotoInfo struct {
	Name  string
	State int // 状态机编号
}

// VarDecl 变量声明
type VarDecl struct {
	Token   lexer.Token
	Name    string
	Type    ctypes.Type
	Storage ctypes.StorageClass
	Init    *Initializer        // 初始化器（可选）
	Decl    *symbol.Declaration // 符号表条目
}

func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) statementNode()       {}

// TypedefDecl typedef 声明
type TypedefDecl struct {
	Token lexer.Token
	Name  string
	Type  ctypes.Type
}

func (t *TypedefDecl) TokenLiteral() string { return t.Token.Literal }
func (t *TypedefDecl) statementNode()       {}

// TagDecl 独立的 struct/union/enum 声明（如 `struct Point { ... };`）
type TagDecl struct {
	Token lexer.Token
	Type  ctypes.Type
}

func (t *TagDecl) TokenLiteral() string { return t.Token.Literal }
func (t *TagDecl) statementNode()       {}

// DeclStmt 块内的一组声明（`int a = 1, b = 2;` 展开成多个 VarDecl）
type DeclStmt struct {
	Token lexer.Token
	Decls []Statement
}

func (d *DeclStmt) TokenLiteral() string { return d.Token.Literal }
func (d *DeclStmt) statementNode()       {}

// Designator 初始化器中的指示符
type Designator struct {
	Field string     // .name 形式的字段名
	Index Expression // [expr] 形式的下标（与 Field 互斥）
}

// InitItem 初始化器中的一项
type InitItem struct {
	Designators []*Designator // 前缀指示符（可为空）
	Value       *Initializer
}

// Initializer 初始化器：单表达式或花括号列表
type Initializer struct {
	Token lexer.Token
	Expr  Expression  // 单表达式形式
	List  []*InitItem // 花括号列表形式
}

// IsList 是否为花括号列表
func (i *Initializer) IsList() bool { return i.Expr == nil }

// BlockStmt 复合语句
type BlockStmt struct {
	Token      lexer.Token // { token
	Statements []Statement
	Scope      *symbol.Scope // 块作用域（语义分析填充）
}

func (b *BlockStmt) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStmt) statementNode()       {}

// ExprStmt 表达式语句
type ExprStmt struct {
	Token lexer.Token
	Expr  Expression
}

func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) statementNode()       {}

// EmptyStmt 空语句（单独的分号）
type EmptyStmt struct {
	Token lexer.Token
}

func (e *EmptyStmt) TokenLiteral() string { return e.Token.Literal }
func (e *EmptyStmt) statementNode()       {}

// IfStmt if 语句
type IfStmt struct {
	Token lexer.Token
	Cond  Expression
	Then  Statement
	Else  Statement // 可为 nil
}

func (i *IfStmt) TokenLiteral() string { return i.Token.Literal }
func (i *IfStmt) statementNode()       {}

// WhileStmt while 循环
type WhileStmt struct {
	Token lexer.Token
	Cond  Expression
	Body  Statement
}

func (w *WhileStmt) TokenLiteral() string { return w.Token.Literal }
func (w *WhileStmt) statementNode()       {}

// DoWhileStmt do-while 循环
type DoWhileStmt struct {
	Token lexer.Token
	Body  Statement
	Cond  Expression
}

func (d *DoWhileStmt) TokenLiteral() string { return d.Token.Literal }
func (d *DoWhileStmt) statementNode()       {}

// ForStmt for 循环。Init 可以是 DeclStmt（C99 声明）或 ExprStmt。
type ForStmt struct {
	Token lexer.Token
	Init  Statement  // 可为 nil
	Cond  Expression // 可为 nil
	Post  Expression // 可为 nil
	Body  Statement
	Scope *symbol.Scope // C99 for 声明的作用域
}

func (f *ForStmt) TokenLiteral() string { return f.Token.Literal }
func (f *ForStmt) statementNode()       {}

// SwitchStmt switch 语句
type SwitchStmt struct {
	Token lexer.Token
	Cond  Expression
	Body  *BlockStmt
	Cases []*CaseStmt // 语义分析收集的 case/default 列表
}

func (s *SwitchStmt) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStmt) statementNode()       {}

// CaseStmt case 或 default 标号（Value 为 nil 表示 default）
type CaseStmt struct {
	Token lexer.Token
	Value Expression
	Body  Statement // 标号后紧跟的语句
	Const int64     // 常量求值结果（语义分析填充）
}

func (c *CaseStmt) TokenLiteral() string { return c.Token.Literal }
func (c *CaseStmt) statementNode()       {}

// LabeledStmt 标号语句 `name: stmt`
type LabeledStmt struct {
	Token lexer.Token // 标号名 token
	Name  string
	Body  Statement
	State int // 状态机编号（语义分析填充）
}

func (l *LabeledStmt) TokenLiteral() string { return l.Token.Literal }
func (l *LabeledStmt) statementNode()       {}

// GotoStmt goto 语句
type GotoStmt struct {
	Token lexer.Token
	Label string
	State int // 目标状态机编号（语义分析填充）
}

func (g *GotoStmt) TokenLiteral() string { return g.Token.Literal }
func (g *GotoStmt) statementNode()       {}

// BreakStmt break 语句
type BreakStmt struct {
	Token lexer.Token
}

func (b *BreakStmt) TokenLiteral() string { return b.Token.Literal }
func (b *BreakStmt) statementNode()       {}

// ContinueStmt continue 语句
type ContinueStmt struct {
	Token lexer.Token
}

func (c *ContinueStmt) TokenLiteral() string { return c.Token.Literal }
func (c *ContinueStmt) statementNode()       {}

// ReturnStmt return 语句
type ReturnStmt struct {
	Token lexer.Token
	Value Expression // 可为 nil
}

func (r *ReturnStmt) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStmt) statementNode()       {}

// IntLit 整数字面量
type IntLit struct {
	Token lexer.Token
	Value int64
	attrs Attrs
}

func (i *IntLit) TokenLiteral() string { return i.Token.Literal }
func (i *IntLit) expressionNode()      {}
func (i *IntLit) A() *Attrs            { return &i.attrs }

// FloatLit 浮点字面量
type FloatLit struct {
	Token lexer.Token
	Value float64
	attrs Attrs
}

func (f *FloatLit) TokenLiteral() string { return f.Token.Literal }
func (f *FloatLit) expressionNode()      {}
func (f *FloatLit) A() *Attrs            { return &f.attrs }

// StringLit 字符串字面量（相邻字面量在解析时已拼接）
type StringLit struct {
	Token lexer.Token
	Value string // 转义已解码
	attrs Attrs
}

func (s *StringLit) TokenLiteral() string { return s.Token.Literal }
func (s *StringLit) expressionNode()      {}
func (s *StringLit) A() *Attrs            { return &s.attrs }

// CharLit 字符字面量
type CharLit struct {
	Token lexer.Token
	Value int64
	attrs Attrs
}

func (c *CharLit) TokenLiteral() string { return c.Token.Literal }
func (c *CharLit) expressionNode()      {}
func (c *CharLit) A() *Attrs            { return &c.attrs }

// Ident 标识符引用
type Ident struct {
	Token lexer.Token
	Name  string
	Decl  *symbol.Declaration // 解析到的声明（语义分析填充）
	attrs Attrs
}

func (i *Ident) TokenLiteral() string { return i.Token.Literal }
func (i *Ident) expressionNode()      {}
func (i *Ident) A() *Attrs            { return &i.attrs }

// UnaryExpr 一元表达式 (- ! ~ * & +)
type UnaryExpr struct {
	Token lexer.Token
	Op    string
	Expr  Expression
	attrs Attrs
}

func (u *UnaryExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnaryExpr) expressionNode()      {}
func (u *UnaryExpr) A() *Attrs            { return &u.attrs }

// IncDecExpr 自增自减表达式
type IncDecExpr struct {
	Token  lexer.Token
	Op     string // "++" 或 "--"
	Prefix bool
	Expr   Expression
	attrs  Attrs
}

func (i *IncDecExpr) TokenLiteral() string { return i.Token.Literal }
func (i *IncDecExpr) expressionNode()      {}
func (i *IncDecExpr) A() *Attrs            { return &i.attrs }

// BinaryExpr 二元表达式
type BinaryExpr struct {
	Token lexer.Token
	Op    string
	Left  Expression
	Right Expression
	attrs Attrs
}

func (b *BinaryExpr) TokenLiteral() string { return b.Token.Literal }
func (b *BinaryExpr) expressionNode()      {}
func (b *BinaryExpr) A() *Attrs            { return &b.attrs }

// AssignExpr 赋值表达式（含复合赋值）
type AssignExpr struct {
	Token lexer.Token
	Op    string // "=" "+=" 等
	Left  Expression
	Right Expression
	attrs Attrs
}

func (a *AssignExpr) TokenLiteral() string { return a.Token.Literal }
func (a *AssignExpr) expressionNode()      {}
func (a *AssignExpr) A() *Attrs            { return &a.attrs }

// TernaryExpr 条件表达式 a ? b : c
type TernaryExpr struct {
	Token lexer.Token
	Cond  Expression
	Then  Expression
	Else  Expression
	attrs Attrs
}

func (t *TernaryExpr) TokenLiteral() string { return t.Token.Literal }
func (t *TernaryExpr) expressionNode()      {}
func (t *TernaryExpr) A() *Attrs            { return &t.attrs }

// CommaExpr 逗号表达式
type CommaExpr struct {
	Token lexer.Token
	Exprs []Expression
	attrs Attrs
}

func (c *CommaExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CommaExpr) expressionNode()      {}
func (c *CommaExpr) A() *Attrs            { return &c.attrs }

// CallExpr 函数调用
type CallExpr struct {
	Token lexer.Token
	Fn    Expression
	Args  []Expression
	attrs Attrs
}

func (c *CallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpr) expressionNode()      {}
func (c *CallExpr) A() *Attrs            { return &c.attrs }

// MemberExpr 成员访问 a.b 或 a->b
type MemberExpr struct {
	Token lexer.Token
	Expr  Expression
	Name  string
	Arrow bool          // 是否为 -> 形式
	Field *ctypes.Field // 命中的字段（语义分析填充）
	attrs Attrs
}

func (m *MemberExpr) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpr) expressionNode()      {}
func (m *MemberExpr) A() *Attrs            { return &m.attrs }

// IndexExpr 下标表达式 a[i]
type IndexExpr struct {
	Token lexer.Token
	Expr  Expression
	Index Expression
	attrs Attrs
}

func (i *IndexExpr) TokenLiteral() string { return i.Token.Literal }
func (i *IndexExpr) expressionNode()      {}
func (i *IndexExpr) A() *Attrs            { return &i.attrs }

// CastExpr 强制类型转换
type CastExpr struct {
	Token lexer.Token
	To    ctypes.Type
	Expr  Expression
	attrs Attrs
}

func (c *CastExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CastExpr) expressionNode()      {}
func (c *CastExpr) A() *Attrs            { return &c.attrs }

// SizeofExpr sizeof 表达式。Type 与 Expr 互斥。
type SizeofExpr struct {
	Token lexer.Token
	Type  ctypes.Type
	Expr  Expression
	attrs Attrs
}

func (s *SizeofExpr) TokenLiteral() string { return s.Token.Literal }
func (s *SizeofExpr) expressionNode()      {}
func (s *SizeofExpr) A() *Attrs            { return &s.attrs }

// CompoundLit 复合字面量 (Type){ init-list }
type CompoundLit struct {
	Token lexer.Token
	Type  ctypes.Type
	Init  *Initializer
	attrs Attrs
}

func (c *CompoundLit) TokenLiteral() string { return c.Token.Literal }
func (c *CompoundLit) expressionNode()      {}
func (c *CompoundLit) A() *Attrs            { return &c.attrs }
