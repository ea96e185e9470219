// Package sema 对语法树做语义分析：建立作用域、解析名字、
// 推导并标注表达式类型，检查标号和 switch 结构，并为代码
// 生成准备指针用法、程序状态等分析结果。重复分析同一棵树
// 得到相同结果。
package sema

import (
	"fmt"

	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/i18n"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/parser"
	"github.com/tangzhangming/cango/internal/symbol"
)

// Analysis 语义分析结果
type Analysis struct {
	File      *parser.File
	FileScope *symbol.Scope

	Funcs        []*parser.FuncDecl // 有函数体的函数，按出现顺序
	Globals      []*parser.VarDecl  // 文件作用域变量定义
	StaticLocals []*parser.VarDecl  // 函数内 static 变量

	Structs []*ctypes.Struct // 完整定义过的结构体，按出现顺序
	Unions  []*ctypes.Union
	Enums   []*ctypes.Enum

	// NeedsState 读写全局或 static 状态（直接或经调用链）的函数
	NeedsState map[string]bool

	// UnionBuffer 需要按字节缓冲区降级的联合体；
	// 不在表里的联合体所有字段同型，可以用单字段表示
	UnionBuffer map[*ctypes.Union]bool
}

// HasState 是否存在需要集中管理的程序状态
func (a *Analysis) HasState() bool {
	return len(a.Globals) > 0 || len(a.StaticLocals) > 0
}

type checker struct {
	sink  *diag.Sink
	an    *Analysis
	scope *symbol.Scope

	fn     *parser.FuncDecl
	fnName string

	loopDepth   int
	switchStack []*parser.SwitchStmt

	labels    map[string]*parser.LabeledStmt
	gotos     []*parser.GotoStmt
	nextState int

	calls   map[string]map[string]bool // 调用边：调用者 -> 被调者
	touches map[string]bool            // 直接读写全局/static 状态的函数

	seenTypes map[ctypes.Type]bool
	anonTags  int
}

// Resolve 分析一个翻译单元
func Resolve(file *parser.File, sink *diag.Sink) *Analysis {
	an := &Analysis{
		File:        file,
		NeedsState:  make(map[string]bool),
		UnionBuffer: make(map[*ctypes.Union]bool),
	}
	c := &checker{
		sink:      sink,
		an:        an,
		scope:     symbol.NewScope(symbol.ScopeFile, builtinScope()),
		calls:     make(map[string]map[string]bool),
		touches:   make(map[string]bool),
		seenTypes: make(map[ctypes.Type]bool),
	}
	an.FileScope = c.scope

	for _, decl := range file.Decls {
		c.topDecl(decl)
	}

	c.checkExterns()
	c.propagateState()
	c.classifyUnions()
	return an
}

func (c *checker) errorf(tok lexer.Token, key string, args ...interface{}) {
	c.sink.Error(diag.CategorySemantic, tokPos(tok), key, args...)
}

func (c *checker) warnf(tok lexer.Token, key string, args ...interface{}) {
	c.sink.Warn(diag.CategorySemantic, tokPos(tok), key, args...)
}

func tokPos(t lexer.Token) diag.Pos {
	return diag.Pos{Offset: t.Offset, Line: t.Line, Column: t.Column}
}

// markTouch 当前函数读写了程序状态
func (c *checker) markTouch() {
	if c.fnName != "" {
		c.touches[c.fnName] = true
	}
}

// ---------------------------------------------------------------------------
// 顶层声明

func (c *checker) topDecl(decl parser.Statement) {
	switch d := decl.(type) {
	case *parser.TagDecl:
		c.collectTypes(d.Type)
	case *parser.TypedefDecl:
		c.collectTypes(d.Type)
		sd := &symbol.Declaration{Name: d.Name, Type: d.Type, IsTypedef: true}
		if prev, ok := c.scope.Declare(sd); !ok {
			if !prev.IsTypedef || !ctypes.Equal(prev.Type, d.Type) {
				c.errorf(d.Token, i18n.ErrIncompatibleRedecl, d.Name, prev.Type.String(), d.Type.String())
			}
		}
	case *parser.VarDecl:
		c.globalVar(d)
	case *parser.FuncDecl:
		c.funcDecl(d)
	}
}

// globalVar 文件作用域变量声明与定义合并
func (c *checker) globalVar(d *parser.VarDecl) {
	c.collectTypes(d.Type)
	defined := d.Init != nil || d.Storage != ctypes.StorageExtern

	prev := c.scope.LookupLocal(d.Name)
	if prev != nil {
		if prev.IsTypedef || prev.IsFunc || prev.IsEnumConst {
			c.errorf(d.Token, i18n.ErrRedeclared, d.Name)
			return
		}
		if !ctypes.Equal(prev.Type, d.Type) {
			c.errorf(d.Token, i18n.ErrIncompatibleRedecl, d.Name, prev.Type.String(), d.Type.String())
			return
		}
		if d.Init != nil && prev.Defined && prev.Storage != ctypes.StorageExtern {
			// 两个带初始化的定义
			for _, g := range c.an.Globals {
				if g.Name == d.Name && g.Init != nil {
					c.errorf(d.Token, i18n.ErrRedeclared, d.Name)
					return
				}
			}
		}
		d.Decl = prev
		if defined && !prev.Defined {
			prev.Defined = true
			prev.Storage = d.Storage
			c.an.Globals = append(c.an.Globals, d)
		} else if d.Init != nil {
			// 把带初始化的定义换成代表
			for i, g := range c.an.Globals {
				if g.Name == d.Name {
					c.an.Globals[i] = d
				}
			}
		}
	} else {
		sd := &symbol.Declaration{
			Name:     d.Name,
			Type:     d.Type,
			Storage:  d.Storage,
			IsGlobal: true,
			Defined:  defined,
		}
		c.scope.Declare(sd)
		d.Decl = sd
		if defined {
			c.an.Globals = append(c.an.Globals, d)
		}
	}

	if d.Init != nil {
		c.checkInit(d.Type, d.Init)
	}
}

// funcDecl 函数声明/定义
func (c *checker) funcDecl(d *parser.FuncDecl) {
	c.collectTypes(d.Type)

	prev := c.scope.LookupLocal(d.Name)
	if prev != nil {
		if !prev.IsFunc {
			c.errorf(d.Token, i18n.ErrRedeclared, d.Name)
			return
		}
		if !ctypes.Equal(prev.Type, d.Type) {
			c.errorf(d.Token, i18n.ErrIncompatibleRedecl, d.Name, prev.Type.String(), d.Type.String())
		}
		if d.Body != nil {
			if prev.Defined && !IsBuiltin(d.Name) {
				c.errorf(d.Token, i18n.ErrRedeclared, d.Name)
				return
			}
			prev.Defined = true
		}
		d.Decl = prev
	} else {
		sd := &symbol.Declaration{
			Name:    d.Name,
			Type:    d.Type,
			Storage: d.Storage,
			IsFunc:  true,
			Defined: d.Body != nil,
		}
		c.scope.Declare(sd)
		d.Decl = sd
	}

	if d.Body == nil {
		return
	}
	c.an.Funcs = append(c.an.Funcs, d)

	c.fn = d
	c.fnName = d.Name
	c.labels = make(map[string]*parser.LabeledStmt)
	c.gotos = nil
	c.nextState = 0
	c.loopDepth = 0
	c.switchStack = nil

	fnScope := symbol.NewScope(symbol.ScopeFunction, c.scope)
	for _, p := range d.Params {
		if p.Name == "" {
			continue
		}
		c.collectTypes(p.Type)
		if _, ok := fnScope.Declare(p); !ok {
			c.errorf(d.Token, i18n.ErrRedeclared, p.Name)
		}
	}

	outer := c.scope
	c.scope = fnScope
	c.block(d.Body, true)
	c.scope = outer

	c.finishLabels(d)
	c.fn = nil
	c.fnName = ""
}

// finishLabels 标号与 goto 配对，填状态机编号
func (c *checker) finishLabels(d *parser.FuncDecl) {
	for _, g := range c.gotos {
		l, ok := c.labels[g.Label]
		if !ok {
			c.errorf(g.Token, i18n.ErrUndefinedLabel, g.Label)
			continue
		}
		g.State = l.State
	}
	// 按状态编号顺序汇总
	for i := 1; i <= c.nextState; i++ {
		for name, l := range c.labels {
			if l.State == i {
				d.Labels = append(d.Labels, &parser.GotoInfo{Name: name, State: i})
			}
		}
	}
}

// ---------------------------------------------------------------------------
// 语句

// block 块语句。topLevel 表示函数体直接层，标号只在这一层
// 才能降级为状态机状态。
func (c *checker) block(b *parser.BlockStmt, topLevel bool) {
	outer := c.scope
	c.scope = symbol.NewScope(symbol.ScopeBlock, outer)
	b.Scope = c.scope
	for _, s := range b.Statements {
		c.stmt(s, topLevel)
	}
	c.scope = outer
}

func (c *checker) stmt(s parser.Statement, topLevel bool) {
	switch st := s.(type) {
	case *parser.BlockStmt:
		c.block(st, false)
	case *parser.EmptyStmt:
	case *parser.DeclStmt:
		for _, d := range st.Decls {
			c.stmt(d, false)
		}
	case *parser.VarDecl:
		c.localVar(st)
	case *parser.TypedefDecl:
		c.collectTypes(st.Type)
		sd := &symbol.Declaration{Name: st.Name, Type: st.Type, IsTypedef: true}
		if _, ok := c.scope.Declare(sd); !ok {
			c.errorf(st.Token, i18n.ErrRedeclared, st.Name)
		}
	case *parser.TagDecl:
		c.collectTypes(st.Type)
	case *parser.ExprStmt:
		c.expr(st.Expr)
	case *parser.IfStmt:
		c.condExpr(st.Cond, st.TokenLiteral())
		c.stmt(st.Then, false)
		if st.Else != nil {
			c.stmt(st.Else, false)
		}
	case *parser.WhileStmt:
		c.condExpr(st.Cond, "while")
		c.loopDepth++
		c.stmt(st.Body, false)
		c.loopDepth--
	case *parser.DoWhileStmt:
		c.loopDepth++
		c.stmt(st.Body, false)
		c.loopDepth--
		c.condExpr(st.Cond, "do")
	case *parser.ForStmt:
		outer := c.scope
		c.scope = symbol.NewScope(symbol.ScopeBlock, outer)
		st.Scope = c.scope
		if st.Init != nil {
			c.stmt(st.Init, false)
		}
		if st.Cond != nil {
			c.condExpr(st.Cond, "for")
		}
		if st.Post != nil {
			c.expr(st.Post)
		}
		c.loopDepth++
		c.stmt(st.Body, false)
		c.loopDepth--
		c.scope = outer
	case *parser.SwitchStmt:
		c.switchStmt(st)
	case *parser.CaseStmt:
		c.caseStmt(st)
	case *parser.LabeledStmt:
		c.labeledStmt(st, topLevel)
	case *parser.GotoStmt:
		c.gotos = append(c.gotos, st)
	case *parser.BreakStmt:
		if c.loopDepth == 0 && len(c.switchStack) == 0 {
			c.errorf(st.Token, i18n.ErrBreakOutsideLoop)
		}
	case *parser.ContinueStmt:
		if c.loopDepth == 0 {
			c.errorf(st.Token, i18n.ErrContinueOutside)
		}
	case *parser.ReturnStmt:
		c.returnStmt(st)
	}
}

func (c *checker) condExpr(e parser.Expression, what string) {
	if e == nil {
		return
	}
	t := c.expr(e)
	if t != nil && !ctypes.IsScalar(ctypes.Decay(t)) && !isUnknown(t) {
		c.errorf(tokOf(e), i18n.ErrBadOperands, what, t.String(), "")
	}
}

func (c *checker) localVar(d *parser.VarDecl) {
	c.collectTypes(d.Type)

	sd := &symbol.Declaration{
		Name:    d.Name,
		Type:    d.Type,
		Storage: d.Storage,
	}
	if d.Storage == ctypes.StorageStatic {
		sd.StaticLocal = true
		sd.UniqueName = c.uniqueStaticName(d.Name)
		c.an.StaticLocals = append(c.an.StaticLocals, d)
		c.markTouch()
	}
	if prev, ok := c.scope.Declare(sd); !ok {
		if prev.IsParam && c.scope.Kind == symbol.ScopeFunction {
			c.scope.Replace(sd)
		} else {
			c.errorf(d.Token, i18n.ErrRedeclared, d.Name)
		}
	}
	d.Decl = sd

	if d.Init != nil {
		c.checkInit(d.Type, d.Init)
	}
	if arr, ok := ctypes.Unqual(d.Type).(*ctypes.Array); ok && arr.Len < 0 && d.Init == nil {
		c.errorf(d.Token, i18n.ErrIncompleteType, d.Type.String())
	}
}

// uniqueStaticName static 局部变量的去重名
func (c *checker) uniqueStaticName(name string) string {
	base := c.fnName + "_" + name
	out := base
	n := 1
	for {
		clash := false
		for _, sl := range c.an.StaticLocals {
			if sl.Decl != nil && sl.Decl.UniqueName == out {
				clash = true
				break
			}
		}
		if !clash {
			return out
		}
		n++
		out = fmt.Sprintf("%s%d", base, n)
	}
}

func (c *checker) switchStmt(st *parser.SwitchStmt) {
	t := c.expr(st.Cond)
	if t != nil && !ctypes.IsInteger(t) && !isUnknown(t) {
		c.errorf(st.Token, i18n.ErrBadOperands, "switch", t.String(), "")
	}
	c.switchStack = append(c.switchStack, st)
	c.block(st.Body, false)
	c.switchStack = c.switchStack[:len(c.switchStack)-1]
}

func (c *checker) caseStmt(st *parser.CaseStmt) {
	if len(c.switchStack) == 0 {
		c.errorf(st.Token, i18n.ErrCaseOutsideSwitch)
		if st.Body != nil {
			c.stmt(st.Body, false)
		}
		return
	}
	sw := c.switchStack[len(c.switchStack)-1]

	if st.Value != nil {
		c.expr(st.Value)
		v, ok := c.evalConst(st.Value)
		if !ok {
			c.errorf(st.Token, i18n.ErrNonConstant)
		}
		st.Const = v
		for _, prev := range sw.Cases {
			if prev.Value != nil && prev.Const == v {
				c.errorf(st.Token, i18n.ErrDuplicateCase, v)
				break
			}
		}
	} else {
		for _, prev := range sw.Cases {
			if prev.Value == nil {
				c.errorf(st.Token, i18n.ErrDuplicateCase, "default")
				break
			}
		}
	}
	sw.Cases = append(sw.Cases, st)

	if st.Body != nil {
		c.stmt(st.Body, false)
	}
}

func (c *checker) labeledStmt(st *parser.LabeledStmt, topLevel bool) {
	if _, ok := c.labels[st.Name]; ok {
		c.errorf(st.Token, i18n.ErrDuplicateLabel, st.Name)
	} else {
		if topLevel {
			c.nextState++
			st.State = c.nextState
		} else {
			st.State = -1
			c.warnf(st.Token, i18n.WarnNestedLabel, st.Name)
		}
		c.labels[st.Name] = st
	}
	if st.Body != nil {
		c.stmt(st.Body, topLevel)
	}
}

func (c *checker) returnStmt(st *parser.ReturnStmt) {
	if c.fn == nil {
		return
	}
	retType := c.fn.Type.Return
	if st.Value == nil {
		return
	}
	t := c.expr(st.Value)
	if ctypes.IsVoid(retType) && t != nil && !ctypes.IsVoid(t) {
		c.errorf(st.Token, i18n.ErrReturnValueInVoid, c.fn.Name)
	}
}

// ---------------------------------------------------------------------------
// 初始化器

func (c *checker) checkInit(t ctypes.Type, init *parser.Initializer) {
	if init.Expr != nil {
		et := c.expr(init.Expr)
		// 字符串字面量可以初始化 char 数组并补全长度
		if s, ok := init.Expr.(*parser.StringLit); ok {
			if arr, isArr := ctypes.Unqual(t).(*ctypes.Array); isArr {
				need := int64(len(s.Value)) + 1
				if arr.Len < 0 {
					arr.Len = need
				} else if need > arr.Len+1 {
					c.errorf(s.Token, i18n.ErrExcessInitializers, t.String())
				}
				return
			}
		}
		c.checkAssignable(t, et, init.Token)
		return
	}

	switch u := ctypes.Unqual(t).(type) {
	case *ctypes.Array:
		c.checkArrayInit(u, init)
	case *ctypes.Struct:
		c.checkStructInit(u, init)
	case *ctypes.Union:
		c.checkUnionInit(u, init)
	default:
		// 标量的花括号初始化：只取第一项
		if len(init.List) == 0 {
			return
		}
		if len(init.List) > 1 {
			c.errorf(init.Token, i18n.ErrExcessInitializers, t.String())
		}
		c.checkInit(t, init.List[0].Value)
	}
}

func (c *checker) checkArrayInit(arr *ctypes.Array, init *parser.Initializer) {
	pos := int64(0)
	max := int64(0)
	reported := false
	for _, item := range init.List {
		for _, ds := range item.Designators {
			if ds.Field != "" {
				c.errorf(init.Token, i18n.ErrBadDesignator)
				continue
			}
			c.expr(ds.Index)
			v, ok := c.evalConst(ds.Index)
			if !ok || v < 0 {
				c.errorf(init.Token, i18n.ErrNonConstant)
				continue
			}
			if arr.Len >= 0 && v >= arr.Len {
				c.errorf(init.Token, i18n.ErrDesignatorIndex, v, arr.Len)
			}
			pos = v
		}
		if arr.Len >= 0 && pos >= arr.Len && !reported {
			c.errorf(init.Token, i18n.ErrExcessInitializers, arr.String())
			reported = true
		}
		c.checkInit(arr.Elem, item.Value)
		pos++
		if pos > max {
			max = pos
		}
	}
	if arr.Len < 0 {
		arr.Len = max
	}
}

func (c *checker) checkStructInit(st *ctypes.Struct, init *parser.Initializer) {
	ctypes.LayoutStruct(st)
	idx := 0
	reported := false
	for _, item := range init.List {
		for _, ds := range item.Designators {
			if ds.Field == "" {
				c.errorf(init.Token, i18n.ErrBadDesignator)
				continue
			}
			found := -1
			for i, f := range st.Fields {
				if f.Name == ds.Field {
					found = i
					break
				}
			}
			if found < 0 {
				c.errorf(init.Token, i18n.ErrUnknownDesignator, ds.Field, st.String())
				continue
			}
			idx = found
		}
		if idx >= len(st.Fields) {
			if !reported {
				c.errorf(init.Token, i18n.ErrExcessInitializers, st.String())
				reported = true
			}
			continue
		}
		c.checkInit(st.Fields[idx].Type, item.Value)
		idx++
	}
}

func (c *checker) checkUnionInit(un *ctypes.Union, init *parser.Initializer) {
	ctypes.LayoutUnion(un)
	if len(init.List) == 0 {
		return
	}
	if len(init.List) > 1 {
		c.errorf(init.Token, i18n.ErrExcessInitializers, un.String())
	}
	item := init.List[0]
	target := 0
	for _, ds := range item.Designators {
		if ds.Field == "" {
			c.errorf(init.Token, i18n.ErrBadDesignator)
			continue
		}
		found := -1
		for i, f := range un.Fields {
			if f.Name == ds.Field {
				found = i
				break
			}
		}
		if found < 0 {
			c.errorf(init.Token, i18n.ErrUnknownDesignator, ds.Field, un.String())
			continue
		}
		target = found
	}
	if target < len(un.Fields) {
		c.checkInit(un.Fields[target].Type, item.Value)
	}
}

// checkAssignable 赋值兼容性的宽松检查
func (c *checker) checkAssignable(to, from ctypes.Type, tok lexer.Token) {
	if to == nil || from == nil || isUnknown(to) || isUnknown(from) {
		return
	}
	to = ctypes.Unqual(to)
	from = ctypes.Decay(ctypes.Unqual(from))
	switch {
	case ctypes.IsArithmetic(to) && ctypes.IsArithmetic(from):
	case ctypes.IsPointer(to) && ctypes.IsPointer(from):
		// void* 与任意指针互通，其余元素类型需兼容
		te, fe := ctypes.Elem(to), ctypes.Elem(from)
		if !ctypes.IsVoid(te) && !ctypes.IsVoid(fe) && !ctypes.Equal(te, fe) {
			c.warnf(tok, i18n.ErrBadOperands, "=", to.String(), from.String())
		}
	case ctypes.IsPointer(to) && ctypes.IsInteger(from):
		// 空指针常量；其他整数转指针在翻译里同样按零值处理
	case ctypes.Equal(to, from):
	default:
		c.errorf(tok, i18n.ErrBadOperands, "=", to.String(), from.String())
	}
}

// ---------------------------------------------------------------------------
// 类型收集与收尾分析

// collectTypes 收集类型里出现的记录和枚举定义，匿名的补生成标签
func (c *checker) collectTypes(t ctypes.Type) {
	if t == nil || c.seenTypes[t] {
		return
	}
	switch u := t.(type) {
	case *ctypes.Qual:
		c.collectTypes(u.Base)
	case *ctypes.Pointer:
		c.collectTypes(u.Elem)
	case *ctypes.Array:
		c.collectTypes(u.Elem)
	case *ctypes.Func:
		c.collectTypes(u.Return)
		for _, p := range u.Params {
			c.collectTypes(p.Type)
		}
	case *ctypes.Struct:
		c.seenTypes[t] = true
		if u.Tag == "" {
			c.anonTags++
			u.Tag = fmt.Sprintf("__anon%d", c.anonTags)
		}
		if u.Complete {
			ctypes.LayoutStruct(u)
			c.an.Structs = append(c.an.Structs, u)
			for _, f := range u.Fields {
				c.collectTypes(f.Type)
				if f.BitWidth >= 0 {
					c.checkBitField(f)
				}
			}
		}
	case *ctypes.Union:
		c.seenTypes[t] = true
		if u.Tag == "" {
			c.anonTags++
			u.Tag = fmt.Sprintf("__anon%d", c.anonTags)
		}
		if u.Complete {
			ctypes.LayoutUnion(u)
			c.an.Unions = append(c.an.Unions, u)
			for _, f := range u.Fields {
				c.collectTypes(f.Type)
			}
		}
	case *ctypes.Enum:
		c.seenTypes[t] = true
		if u.Tag == "" {
			c.anonTags++
			u.Tag = fmt.Sprintf("__anon%d", c.anonTags)
		}
		if u.Complete {
			c.an.Enums = append(c.an.Enums, u)
			for _, m := range u.Members {
				if c.scope.Lookup(m.Name) == nil {
					c.scope.Declare(&symbol.Declaration{
						Name:        m.Name,
						Type:        u,
						IsEnumConst: true,
						EnumValue:   m.Value,
					})
				}
			}
		}
	}
}

// checkBitField 位域合法性：宽度不超过基类型位宽，基类型须为整数
func (c *checker) checkBitField(f *ctypes.Field) {
	base := ctypes.Unqual(f.Type)
	it, ok := base.(*ctypes.Int)
	if !ok {
		c.sink.Error(diag.CategorySemantic, diag.Pos{}, i18n.ErrBadBitfieldWidth, f.BitWidth, f.Name)
		return
	}
	if f.BitWidth > it.Width {
		c.sink.Error(diag.CategorySemantic, diag.Pos{}, i18n.ErrBadBitfieldWidth, f.BitWidth, f.Name)
	}
}

// checkExterns extern 声明被引用但始终没有定义时告警
func (c *checker) checkExterns() {
	for _, d := range c.an.FileScope.Ordered() {
		if d.Storage == ctypes.StorageExtern && !d.Defined && d.Referenced {
			c.sink.Warn(diag.CategorySemantic, diag.Pos{}, i18n.ErrUnresolvedExtern, d.Name)
		}
	}
}

// propagateState 沿调用图传播状态需求：调用了带状态函数的
// 函数自己也带状态，直到不动点。
func (c *checker) propagateState() {
	for name := range c.touches {
		c.an.NeedsState[name] = true
	}
	changed := true
	for changed {
		changed = false
		for caller, callees := range c.calls {
			if c.an.NeedsState[caller] {
				continue
			}
			for callee := range callees {
				if c.an.NeedsState[callee] {
					c.an.NeedsState[caller] = true
					changed = true
					break
				}
			}
		}
	}
}

// classifyUnions 字段不同型或含位域的联合体走字节缓冲区降级
func (c *checker) classifyUnions() {
	for _, u := range c.an.Unions {
		buffer := false
		for i, f := range u.Fields {
			if f.BitWidth >= 0 {
				buffer = true
				break
			}
			if i > 0 && !ctypes.Equal(f.Type, u.Fields[0].Type) {
				buffer = true
				break
			}
		}
		if buffer {
			c.an.UnionBuffer[u] = true
		}
	}
}

func isUnknown(t ctypes.Type) bool {
	_, ok := ctypes.Unqual(t).(*ctypes.Unknown)
	return ok
}
