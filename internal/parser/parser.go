// Package parser 把 token 流解析为 C 语法树。
// 声明符按由内向外两遍法解析，强制转换与函数调用靠 typedef
// 名字表区分。出错时报告诊断并跳到下一个同步点继续。
package parser

import (
	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/i18n"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/symbol"
)

// Parser C 语法分析器
type Parser struct {
	tokens []lexer.Token
	pos    int
	sink   *diag.Sink

	// 解析期作用域：只登记 typedef 名和枚举常量，
	// 用于类型名判定和常量表达式求值
	scope *symbol.Scope
}

// New 创建语法分析器。tokens 必须以 EOF 结尾。
func New(tokens []lexer.Token, sink *diag.Sink) *Parser {
	return &Parser{
		tokens: tokens,
		sink:   sink,
		scope:  symbol.NewScope(symbol.ScopeFile, nil),
	}
}

// ParseFile 解析整个翻译单元
func (p *Parser) ParseFile(name string) *File {
	file := &File{Name: name}
	for !p.at(lexer.TOKEN_EOF) {
		start := p.pos
		decls := p.parseExternalDecl()
		file.Decls = append(file.Decls, decls...)
		if p.pos == start {
			// 无法前进，跳过当前 token 防止死循环
			p.errorf(p.cur(), i18n.ErrGeneric, p.cur().Literal)
			p.next()
		}
	}
	return file
}

func (p *Parser) cur() lexer.Token  { return p.tokens[p.pos] }
func (p *Parser) peek() lexer.Token { return p.tokenAt(p.pos + 1) }

func (p *Parser) tokenAt(i int) lexer.Token {
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) next() lexer.Token {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) at(t lexer.TokenType) bool { return p.cur().Type == t }

// accept 如果当前 token 是 t 则消耗并返回 true
func (p *Parser) accept(t lexer.TokenType) bool {
	if p.at(t) {
		p.next()
		return true
	}
	return false
}

// expect 消耗指定 token，缺失时报诊断
func (p *Parser) expect(t lexer.TokenType) bool {
	if p.accept(t) {
		return true
	}
	tok := p.cur()
	if tok.Type == lexer.TOKEN_EOF {
		p.errorf(tok, i18n.ErrUnexpectedEOF, lexer.TokenTypeName(t))
	} else {
		p.errorf(tok, i18n.ErrExpectedToken, lexer.TokenTypeName(t), tok.Literal)
	}
	return false
}

func tokPos(t lexer.Token) diag.Pos {
	return diag.Pos{Offset: t.Offset, Line: t.Line, Column: t.Column}
}

func (p *Parser) errorf(tok lexer.Token, key string, args ...interface{}) {
	p.sink.Error(diag.CategorySyntax, tokPos(tok), key, args...)
}

// syncDecl 跳到下一个声明边界：越过成对花括号，停在 ';' 之后
func (p *Parser) syncDecl() {
	depth := 0
	for !p.at(lexer.TOKEN_EOF) {
		switch p.cur().Type {
		case lexer.TOKEN_LBRACE:
			depth++
		case lexer.TOKEN_RBRACE:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.next()
				p.accept(lexer.TOKEN_SEMICOLON)
				return
			}
		case lexer.TOKEN_SEMICOLON:
			if depth == 0 {
				p.next()
				return
			}
		}
		p.next()
	}
}

// syncStmt 语句级恢复：跳到 ';' 之后或停在 '}' 前
func (p *Parser) syncStmt() {
	depth := 0
	for !p.at(lexer.TOKEN_EOF) {
		switch p.cur().Type {
		case lexer.TOKEN_SEMICOLON:
			if depth == 0 {
				p.next()
				return
			}
		case lexer.TOKEN_LBRACE:
			depth++
		case lexer.TOKEN_RBRACE:
			if depth == 0 {
				return
			}
			depth--
		}
		p.next()
	}
}

// isTypeStart 当前 token 是否开启一个类型说明符
func (p *Parser) isTypeStart(tok lexer.Token) bool {
	if lexer.IsTypeKeyword(tok.Type) || lexer.IsStorageClass(tok.Type) {
		return true
	}
	return tok.Type == lexer.TOKEN_IDENT && p.scope.IsTypedefName(tok.Literal)
}

// ---------------------------------------------------------------------------
// 声明

// parseExternalDecl 解析一个顶层声明或函数定义
func (p *Parser) parseExternalDecl() []Statement {
	if p.accept(lexer.TOKEN_SEMICOLON) {
		return nil
	}

	startTok := p.cur()
	base, storage, ok := p.parseDeclSpecs()
	if !ok {
		p.syncDecl()
		return nil
	}

	// 只有标签说明符的声明：`struct Point { ... };`
	if p.at(lexer.TOKEN_SEMICOLON) {
		p.next()
		switch ctypes.Unqual(base).(type) {
		case *ctypes.Struct, *ctypes.Union, *ctypes.Enum:
			return []Statement{&TagDecl{Token: startTok, Type: base}}
		}
		p.errorf(startTok, i18n.ErrEmptyDeclaration)
		return nil
	}

	var out []Statement
	first := true
	for {
		name, typ := p.parseDeclarator(base)
		if name == "" {
			p.errorf(p.cur(), i18n.ErrBadDeclarator)
			p.syncDecl()
			return out
		}

		if fn, isFn := ctypes.Unqual(typ).(*ctypes.Func); isFn && first && p.at(lexer.TOKEN_LBRACE) {
			// 函数定义
			fd := &FuncDecl{
				Token:   startTok,
				Name:    name,
				Type:    fn,
				Storage: storage,
			}
			// 参数在解析期作用域里遮蔽同名 typedef
			p.scope = symbol.NewScope(symbol.ScopeFunction, p.scope)
			for _, param := range fn.Params {
				d := &symbol.Declaration{
					Name:    param.Name,
					Type:    ctypes.Decay(param.Type),
					IsParam: true,
				}
				fd.Params = append(fd.Params, d)
				if param.Name != "" {
					p.scope.Declare(d)
				}
			}
			fd.Body = p.parseBlock()
			p.scope = p.scope.Parent
			return append(out, fd)
		}

		out = append(out, p.finishDeclarator(startTok, name, typ, storage))
		first = false
		if !p.accept(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_SEMICOLON)
	return out
}

// finishDeclarator 单个声明符收尾：typedef 登记或变量初始化
func (p *Parser) finishDeclarator(tok lexer.Token, name string, typ ctypes.Type, storage ctypes.StorageClass) Statement {
	if storage == ctypes.StorageTypedef {
		d := &symbol.Declaration{Name: name, Type: typ, IsTypedef: true}
		if _, ok := p.scope.Declare(d); !ok {
			p.scope.Replace(d)
		}
		return &TypedefDecl{Token: tok, Name: name, Type: typ}
	}

	// 普通声明也登记到解析期作用域，遮蔽外层同名 typedef
	p.scope.Declare(&symbol.Declaration{Name: name, Type: typ})

	v := &VarDecl{Token: tok, Name: name, Type: typ, Storage: storage}
	if p.accept(lexer.TOKEN_ASSIGN) {
		v.Init = p.parseInitializer()
	}
	return v
}

// parseDeclSpecs 解析声明说明符序列，返回基类型和存储类。
// 采用计数法处理 signed/unsigned/long 的任意组合顺序。
func (p *Parser) parseDeclSpecs() (ctypes.Type, ctypes.StorageClass, bool) {
	storage := ctypes.StorageNone
	var base ctypes.Type
	isConst, isVolatile := false, false
	nVoid, nChar, nShort, nInt, nLong, nFloat, nDouble := 0, 0, 0, 0, 0, 0, 0
	nSigned, nUnsigned := 0, 0
	seen := false

	setStorage := func(s ctypes.StorageClass) {
		if storage != ctypes.StorageNone && storage != s {
			p.errorf(p.cur(), i18n.ErrBadStorageClass, storage.String(), s.String())
		}
		storage = s
	}

loop:
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.TOKEN_TYPEDEF:
			setStorage(ctypes.StorageTypedef)
		case lexer.TOKEN_STATIC:
			setStorage(ctypes.StorageStatic)
		case lexer.TOKEN_EXTERN:
			setStorage(ctypes.StorageExtern)
		case lexer.TOKEN_AUTO:
			setStorage(ctypes.StorageAuto)
		case lexer.TOKEN_REGISTER:
			setStorage(ctypes.StorageRegister)
		case lexer.TOKEN_CONST:
			isConst = true
		case lexer.TOKEN_VOLATILE:
			isVolatile = true
		case lexer.TOKEN_VOID:
			nVoid++
		case lexer.TOKEN_CHAR:
			nChar++
		case lexer.TOKEN_SHORT:
			nShort++
		case lexer.TOKEN_INT:
			nInt++
		case lexer.TOKEN_LONG:
			nLong++
		case lexer.TOKEN_FLOAT:
			nFloat++
		case lexer.TOKEN_DOUBLE:
			nDouble++
		case lexer.TOKEN_SIGNED:
			nSigned++
		case lexer.TOKEN_UNSIGNED:
			nUnsigned++
		case lexer.TOKEN_STRUCT:
			base = p.parseRecordSpec(false)
			seen = true
			continue
		case lexer.TOKEN_UNION:
			base = p.parseRecordSpec(true)
			seen = true
			continue
		case lexer.TOKEN_ENUM:
			base = p.parseEnumSpec()
			seen = true
			continue
		case lexer.TOKEN_IDENT:
			// typedef 名只在还没有其他类型说明符时生效
			if base == nil && !seen && nVoid+nChar+nShort+nInt+nLong+nFloat+nDouble+nSigned+nUnsigned == 0 &&
				p.scope.IsTypedefName(tok.Literal) {
				d := p.scope.Lookup(tok.Literal)
				base = d.Type
				seen = true
				p.next()
				continue
			}
			break loop
		default:
			break loop
		}
		seen = true
		p.next()
	}

	if !seen {
		return nil, storage, false
	}

	if base == nil {
		base = p.basicType(nVoid, nChar, nShort, nInt, nLong, nFloat, nDouble, nSigned, nUnsigned)
		if base == nil {
			p.errorf(p.cur(), i18n.ErrBadTypeSpec, p.cur().Literal)
			return nil, storage, false
		}
	}

	if isConst || isVolatile {
		base = &ctypes.Qual{Base: base, Const: isConst, Volatile: isVolatile}
	}
	return base, storage, true
}

// basicType 把计数器组合成一个基本类型
func (p *Parser) basicType(nVoid, nChar, nShort, nInt, nLong, nFloat, nDouble, nSigned, nUnsigned int) ctypes.Type {
	unsigned := nUnsigned > 0
	switch {
	case nVoid == 1 && nChar+nShort+nInt+nLong+nFloat+nDouble+nSigned+nUnsigned == 0:
		return ctypes.CVoid()
	case nFloat == 1 && nChar+nShort+nInt+nLong+nDouble == 0:
		return ctypes.CFloat()
	case nDouble == 1 && nChar+nShort+nInt+nFloat == 0:
		// long double 按 double 处理
		return ctypes.CDouble()
	case nChar == 1 && nShort+nInt+nLong == 0:
		if unsigned {
			return ctypes.CUChar()
		}
		return ctypes.CChar()
	case nShort == 1 && nChar+nLong == 0:
		if unsigned {
			return ctypes.CUShort()
		}
		return ctypes.CShort()
	case nLong == 1 && nChar+nShort == 0:
		if unsigned {
			return ctypes.CULong()
		}
		return ctypes.CLong()
	case nLong == 2 && nChar+nShort == 0:
		if unsigned {
			return ctypes.CULongLong()
		}
		return ctypes.CLongLong()
	case nInt <= 1 && nChar+nShort+nLong+nFloat+nDouble == 0 && nInt+nSigned+nUnsigned > 0:
		if unsigned {
			return ctypes.CUInt()
		}
		return ctypes.CInt()
	}
	return nil
}

// parseRecordSpec 解析 struct/union 说明符
func (p *Parser) parseRecordSpec(isUnion bool) ctypes.Type {
	p.next() // struct 或 union
	tag := ""
	if p.at(lexer.TOKEN_IDENT) {
		tag = p.next().Literal
	}

	if !p.at(lexer.TOKEN_LBRACE) {
		// 只有引用：查找或登记不完整类型
		if tag == "" {
			p.errorf(p.cur(), i18n.ErrBadTypeSpec, p.cur().Literal)
			return &ctypes.Unknown{}
		}
		if t := p.scope.LookupTag(tag); t != nil {
			return t
		}
		var t ctypes.Type
		if isUnion {
			t = &ctypes.Union{Tag: tag}
		} else {
			t = &ctypes.Struct{Tag: tag}
		}
		p.scope.DeclareTag(tag, t)
		return t
	}

	// 带定义：复用本层的前向声明，否则新建
	var st *ctypes.Struct
	var un *ctypes.Union
	var t ctypes.Type
	if tag != "" {
		if prev := p.scope.LookupTagLocal(tag); prev != nil {
			if s, ok := prev.(*ctypes.Struct); ok && !isUnion && !s.Complete {
				st = s
			} else if u, ok := prev.(*ctypes.Union); ok && isUnion && !u.Complete {
				un = u
			}
		}
	}
	if st == nil && un == nil {
		if isUnion {
			un = &ctypes.Union{Tag: tag}
		} else {
			st = &ctypes.Struct{Tag: tag}
		}
	}
	if isUnion {
		t = un
	} else {
		t = st
	}
	if tag != "" {
		if _, ok := p.scope.DeclareTag(tag, t); !ok {
			p.scope.ReplaceTag(tag, t)
		}
	}

	p.next() // {
	fields := p.parseRecordFields()
	p.expect(lexer.TOKEN_RBRACE)

	if isUnion {
		un.Fields = fields
		un.Complete = true
	} else {
		st.Fields = fields
		st.Complete = true
	}
	return t
}

// parseRecordFields 解析成员声明列表
func (p *Parser) parseRecordFields() []*ctypes.Field {
	var fields []*ctypes.Field
	for !p.at(lexer.TOKEN_RBRACE) && !p.at(lexer.TOKEN_EOF) {
		base, _, ok := p.parseDeclSpecs()
		if !ok {
			p.errorf(p.cur(), i18n.ErrBadTypeSpec, p.cur().Literal)
			p.syncStmt()
			continue
		}
		for {
			f := &ctypes.Field{BitWidth: -1}
			if !p.at(lexer.TOKEN_COLON) {
				name, typ := p.parseDeclarator(base)
				f.Name = name
				f.Type = typ
			} else {
				f.Type = base
			}
			if p.accept(lexer.TOKEN_COLON) {
				widthTok := p.cur()
				w, ok := p.parseConstExpr()
				if !ok || w < 0 {
					p.errorf(widthTok, i18n.ErrBadBitfieldWidth, w, f.Name)
					w = 1
				}
				f.BitWidth = int(w)
			}
			fields = append(fields, f)
			if !p.accept(lexer.TOKEN_COMMA) {
				break
			}
		}
		p.expect(lexer.TOKEN_SEMICOLON)
	}
	return fields
}

// parseEnumSpec 解析枚举说明符，成员登记为解析期常量
func (p *Parser) parseEnumSpec() ctypes.Type {
	p.next() // enum
	tag := ""
	if p.at(lexer.TOKEN_IDENT) {
		tag = p.next().Literal
	}

	if !p.at(lexer.TOKEN_LBRACE) {
		if tag == "" {
			p.errorf(p.cur(), i18n.ErrBadTypeSpec, p.cur().Literal)
			return &ctypes.Unknown{}
		}
		if t := p.scope.LookupTag(tag); t != nil {
			return t
		}
		t := &ctypes.Enum{Tag: tag}
		p.scope.DeclareTag(tag, t)
		return t
	}

	e := &ctypes.Enum{Tag: tag}
	if tag != "" {
		if _, ok := p.scope.DeclareTag(tag, e); !ok {
			p.scope.ReplaceTag(tag, e)
		}
	}

	p.next() // {
	next := int64(0)
	for !p.at(lexer.TOKEN_RBRACE) && !p.at(lexer.TOKEN_EOF) {
		nameTok := p.cur()
		if !p.expect(lexer.TOKEN_IDENT) {
			p.syncStmt()
			break
		}
		val := next
		if p.accept(lexer.TOKEN_ASSIGN) {
			v, ok := p.parseConstExpr()
			if !ok {
				p.errorf(nameTok, i18n.ErrNonConstant)
			}
			val = v
		}
		e.Members = append(e.Members, ctypes.EnumMember{Name: nameTok.Literal, Value: val})
		d := &symbol.Declaration{Name: nameTok.Literal, Type: e, IsEnumConst: true, EnumValue: val}
		if _, ok := p.scope.Declare(d); !ok {
			p.errorf(nameTok, i18n.ErrRedeclared, nameTok.Literal)
		}
		next = val + 1
		if !p.accept(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_RBRACE)
	e.Complete = true
	return e
}

// parseDeclarator 解析声明符：指针前缀 + 直接声明符
func (p *Parser) parseDeclarator(base ctypes.Type) (string, ctypes.Type) {
	for p.accept(lexer.TOKEN_ASTERISK) {
		base = ctypes.PointerTo(base)
		isConst, isVolatile := false, false
		for p.at(lexer.TOKEN_CONST) || p.at(lexer.TOKEN_VOLATILE) {
			switch p.next().Type {
			case lexer.TOKEN_CONST:
				isConst = true
			case lexer.TOKEN_VOLATILE:
				isVolatile = true
			}
		}
		if isConst || isVolatile {
			base = &ctypes.Qual{Base: base, Const: isConst, Volatile: isVolatile}
		}
	}
	return p.parseDirectDeclarator(base)
}

// parseDirectDeclarator 解析直接声明符。
// 遇到括号声明符时先跳过内层、解析外层后缀，再回来用
// 装好后缀的类型解析内层（由内向外两遍法）。
func (p *Parser) parseDirectDeclarator(base ctypes.Type) (string, ctypes.Type) {
	if p.at(lexer.TOKEN_LPAREN) && !p.startsParamList(p.peek()) {
		p.next() // (
		inner := p.pos
		p.skipBalancedParen()
		base = p.parseTypeSuffix(base)
		end := p.pos
		p.pos = inner
		name, typ := p.parseDeclarator(base)
		p.expect(lexer.TOKEN_RPAREN)
		p.pos = end
		return name, typ
	}

	name := ""
	if p.at(lexer.TOKEN_IDENT) {
		name = p.next().Literal
	}
	return name, p.parseTypeSuffix(base)
}

// startsParamList `(` 后面的 token 是否开启参数列表而非嵌套声明符
func (p *Parser) startsParamList(tok lexer.Token) bool {
	if tok.Type == lexer.TOKEN_RPAREN {
		return true
	}
	return p.isTypeStart(tok)
}

// skipBalancedParen 从 '(' 之后跳到匹配的 ')' 之后
func (p *Parser) skipBalancedParen() {
	depth := 1
	for depth > 0 && !p.at(lexer.TOKEN_EOF) {
		switch p.cur().Type {
		case lexer.TOKEN_LPAREN:
			depth++
		case lexer.TOKEN_RPAREN:
			depth--
		}
		p.next()
	}
}

// parseTypeSuffix 解析数组和函数后缀
func (p *Parser) parseTypeSuffix(base ctypes.Type) ctypes.Type {
	if p.at(lexer.TOKEN_LPAREN) {
		return p.parseFuncParams(base)
	}
	if p.accept(lexer.TOKEN_LBRACKET) {
		length := int64(-1)
		if !p.at(lexer.TOKEN_RBRACKET) {
			tok := p.cur()
			v, ok := p.parseConstExpr()
			if !ok {
				p.errorf(tok, i18n.ErrNonConstant)
				v = 1
			}
			length = v
		}
		p.expect(lexer.TOKEN_RBRACKET)
		elem := p.parseTypeSuffix(base)
		return ctypes.ArrayOf(elem, length)
	}
	return base
}

// parseFuncParams 解析参数列表，返回函数类型
func (p *Parser) parseFuncParams(ret ctypes.Type) ctypes.Type {
	p.next() // (
	fn := &ctypes.Func{Return: ret}

	if p.at(lexer.TOKEN_VOID) && p.peek().Type == lexer.TOKEN_RPAREN {
		p.next()
		p.next()
		return fn
	}
	if p.accept(lexer.TOKEN_RPAREN) {
		return fn
	}

	for {
		if p.accept(lexer.TOKEN_ELLIPSIS) {
			fn.Variadic = true
			break
		}
		base, _, ok := p.parseDeclSpecs()
		if !ok {
			p.errorf(p.cur(), i18n.ErrBadTypeSpec, p.cur().Literal)
			p.syncStmt()
			return fn
		}
		name, typ := p.parseDeclarator(base)
		// 参数中的数组和函数类型退化为指针
		typ = ctypes.Decay(typ)
		fn.Params = append(fn.Params, ctypes.Param{Name: name, Type: typ})
		if !p.accept(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_RPAREN)
	return fn
}

// parseTypeName 解析类型名（强制转换、sizeof、复合字面量用）
func (p *Parser) parseTypeName() (ctypes.Type, bool) {
	base, storage, ok := p.parseDeclSpecs()
	if !ok {
		return nil, false
	}
	if storage != ctypes.StorageNone {
		p.errorf(p.cur(), i18n.ErrBadStorageClass, storage.String(), "")
	}
	name, typ := p.parseDeclarator(base)
	if name != "" {
		p.errorf(p.cur(), i18n.ErrBadDeclarator)
	}
	return typ, true
}

// parseInitializer 解析初始化器
func (p *Parser) parseInitializer() *Initializer {
	tok := p.cur()
	if !p.at(lexer.TOKEN_LBRACE) {
		return &Initializer{Token: tok, Expr: p.parseAssign()}
	}

	p.next() // {
	init := &Initializer{Token: tok, List: []*InitItem{}}
	for !p.at(lexer.TOKEN_RBRACE) && !p.at(lexer.TOKEN_EOF) {
		item := &InitItem{}
		for p.at(lexer.TOKEN_DOT) || p.at(lexer.TOKEN_LBRACKET) {
			if p.accept(lexer.TOKEN_DOT) {
				nameTok := p.cur()
				if !p.expect(lexer.TOKEN_IDENT) {
					break
				}
				item.Designators = append(item.Designators, &Designator{Field: nameTok.Literal})
			} else {
				p.next() // [
				idx := p.parseTernary()
				p.expect(lexer.TOKEN_RBRACKET)
				item.Designators = append(item.Designators, &Designator{Index: idx})
			}
		}
		if len(item.Designators) > 0 {
			if !p.expect(lexer.TOKEN_ASSIGN) {
				p.errorf(p.cur(), i18n.ErrBadDesignator)
			}
		}
		item.Value = p.parseInitializer()
		init.List = append(init.List, item)
		if !p.accept(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_RBRACE)
	return init
}

// ---------------------------------------------------------------------------
// 语句

// parseBlock 解析复合语句
func (p *Parser) parseBlock() *BlockStmt {
	tok := p.cur()
	block := &BlockStmt{Token: tok}
	if !p.expect(lexer.TOKEN_LBRACE) {
		return block
	}

	p.scope = symbol.NewScope(symbol.ScopeBlock, p.scope)
	for !p.at(lexer.TOKEN_RBRACE) && !p.at(lexer.TOKEN_EOF) {
		start := p.pos
		stmt := p.parseStmt()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.pos == start {
			p.errorf(p.cur(), i18n.ErrGeneric, p.cur().Literal)
			p.next()
		}
	}
	p.scope = p.scope.Parent
	p.expect(lexer.TOKEN_RBRACE)
	return block
}

// parseStmt 解析一条语句
func (p *Parser) parseStmt() Statement {
	tok := p.cur()
	switch tok.Type {
	case lexer.TOKEN_LBRACE:
		return p.parseBlock()
	case lexer.TOKEN_SEMICOLON:
		p.next()
		return &EmptyStmt{Token: tok}
	case lexer.TOKEN_IF:
		return p.parseIf()
	case lexer.TOKEN_WHILE:
		return p.parseWhile()
	case lexer.TOKEN_DO:
		return p.parseDoWhile()
	case lexer.TOKEN_FOR:
		return p.parseFor()
	case lexer.TOKEN_SWITCH:
		return p.parseSwitch()
	case lexer.TOKEN_CASE, lexer.TOKEN_DEFAULT:
		return p.parseCase()
	case lexer.TOKEN_GOTO:
		p.next()
		nameTok := p.cur()
		if !p.expect(lexer.TOKEN_IDENT) {
			p.syncStmt()
			return nil
		}
		p.expect(lexer.TOKEN_SEMICOLON)
		return &GotoStmt{Token: tok, Label: nameTok.Literal}
	case lexer.TOKEN_BREAK:
		p.next()
		p.expect(lexer.TOKEN_SEMICOLON)
		return &BreakStmt{Token: tok}
	case lexer.TOKEN_CONTINUE:
		p.next()
		p.expect(lexer.TOKEN_SEMICOLON)
		return &ContinueStmt{Token: tok}
	case lexer.TOKEN_RETURN:
		p.next()
		r := &ReturnStmt{Token: tok}
		if !p.at(lexer.TOKEN_SEMICOLON) {
			r.Value = p.parseExpr()
		}
		p.expect(lexer.TOKEN_SEMICOLON)
		return r
	case lexer.TOKEN_IDENT:
		// 标号语句：标识符后紧跟冒号
		if p.peek().Type == lexer.TOKEN_COLON {
			p.next()
			p.next()
			return &LabeledStmt{Token: tok, Name: tok.Literal, Body: p.parseStmt()}
		}
	}

	if p.isTypeStart(tok) {
		return p.parseDeclStmt()
	}

	expr := p.parseExpr()
	if expr == nil {
		p.syncStmt()
		return nil
	}
	p.expect(lexer.TOKEN_SEMICOLON)
	return &ExprStmt{Token: tok, Expr: expr}
}

// parseDeclStmt 解析块内声明
func (p *Parser) parseDeclStmt() Statement {
	tok := p.cur()
	base, storage, ok := p.parseDeclSpecs()
	if !ok {
		p.syncStmt()
		return nil
	}

	if p.at(lexer.TOKEN_SEMICOLON) {
		p.next()
		switch ctypes.Unqual(base).(type) {
		case *ctypes.Struct, *ctypes.Union, *ctypes.Enum:
			return &TagDecl{Token: tok, Type: base}
		}
		p.errorf(tok, i18n.ErrEmptyDeclaration)
		return nil
	}

	ds := &DeclStmt{Token: tok}
	for {
		name, typ := p.parseDeclarator(base)
		if name == "" {
			p.errorf(p.cur(), i18n.ErrBadDeclarator)
			p.syncStmt()
			return ds
		}
		ds.Decls = append(ds.Decls, p.finishDeclarator(tok, name, typ, storage))
		if !p.accept(lexer.TOKEN_COMMA) {
			break
		}
	}
	p.expect(lexer.TOKEN_SEMICOLON)
	return ds
}

func (p *Parser) parseIf() Statement {
	tok := p.next()
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.TOKEN_RPAREN)
	stmt := &IfStmt{Token: tok, Cond: cond, Then: p.parseStmt()}
	if p.accept(lexer.TOKEN_ELSE) {
		stmt.Else = p.parseStmt()
	}
	return stmt
}

func (p *Parser) parseWhile() Statement {
	tok := p.next()
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.TOKEN_RPAREN)
	return &WhileStmt{Token: tok, Cond: cond, Body: p.parseStmt()}
}

func (p *Parser) parseDoWhile() Statement {
	tok := p.next()
	body := p.parseStmt()
	p.expect(lexer.TOKEN_WHILE)
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.TOKEN_RPAREN)
	p.expect(lexer.TOKEN_SEMICOLON)
	return &DoWhileStmt{Token: tok, Body: body, Cond: cond}
}

func (p *Parser) parseFor() Statement {
	tok := p.next()
	p.expect(lexer.TOKEN_LPAREN)
	stmt := &ForStmt{Token: tok}

	p.scope = symbol.NewScope(symbol.ScopeBlock, p.scope)
	if !p.at(lexer.TOKEN_SEMICOLON) {
		if p.isTypeStart(p.cur()) {
			stmt.Init = p.parseDeclStmt()
		} else {
			exprTok := p.cur()
			expr := p.parseExpr()
			p.expect(lexer.TOKEN_SEMICOLON)
			stmt.Init = &ExprStmt{Token: exprTok, Expr: expr}
		}
	} else {
		p.next()
	}
	if !p.at(lexer.TOKEN_SEMICOLON) {
		stmt.Cond = p.parseExpr()
	}
	p.expect(lexer.TOKEN_SEMICOLON)
	if !p.at(lexer.TOKEN_RPAREN) {
		stmt.Post = p.parseExpr()
	}
	p.expect(lexer.TOKEN_RPAREN)
	stmt.Body = p.parseStmt()
	p.scope = p.scope.Parent
	return stmt
}

func (p *Parser) parseSwitch() Statement {
	tok := p.next()
	p.expect(lexer.TOKEN_LPAREN)
	cond := p.parseExpr()
	p.expect(lexer.TOKEN_RPAREN)
	stmt := &SwitchStmt{Token: tok, Cond: cond}
	if p.at(lexer.TOKEN_LBRACE) {
		stmt.Body = p.parseBlock()
	} else {
		// switch 后单条语句的退化形式
		inner := p.parseStmt()
		stmt.Body = &BlockStmt{Token: tok, Statements: []Statement{inner}}
	}
	return stmt
}

func (p *Parser) parseCase() Statement {
	tok := p.next()
	stmt := &CaseStmt{Token: tok}
	if tok.Type == lexer.TOKEN_CASE {
		stmt.Value = p.parseTernary()
	}
	p.expect(lexer.TOKEN_COLON)
	if !p.at(lexer.TOKEN_CASE) && !p.at(lexer.TOKEN_DEFAULT) && !p.at(lexer.TOKEN_RBRACE) {
		stmt.Body = p.parseStmt()
	}
	return stmt
}

// ---------------------------------------------------------------------------
// 表达式（优先级爬升）

// parseExpr 完整表达式（含逗号运算符）
func (p *Parser) parseExpr() Expression {
	tok := p.cur()
	expr := p.parseAssign()
	if expr == nil {
		return nil
	}
	if !p.at(lexer.TOKEN_COMMA) {
		return expr
	}
	comma := &CommaExpr{Token: tok, Exprs: []Expression{expr}}
	for p.accept(lexer.TOKEN_COMMA) {
		comma.Exprs = append(comma.Exprs, p.parseAssign())
	}
	return comma
}

// assignOps 复合赋值运算符到 token 的映射
var assignOps = map[lexer.TokenType]string{
	lexer.TOKEN_ASSIGN:         "=",
	lexer.TOKEN_PLUS_ASSIGN:    "+=",
	lexer.TOKEN_MINUS_ASSIGN:   "-=",
	lexer.TOKEN_ASTERISK_ASSIGN: "*=",
	lexer.TOKEN_SLASH_ASSIGN:   "/=",
	lexer.TOKEN_PERCENT_ASSIGN: "%=",
	lexer.TOKEN_AND_ASSIGN:     "&=",
	lexer.TOKEN_OR_ASSIGN:      "|=",
	lexer.TOKEN_XOR_ASSIGN:     "^=",
	lexer.TOKEN_SHL_ASSIGN:     "<<=",
	lexer.TOKEN_SHR_ASSIGN:     ">>=",
}

// parseAssign 赋值表达式（右结合）
func (p *Parser) parseAssign() Expression {
	left := p.parseTernary()
	if left == nil {
		return nil
	}
	if op, ok := assignOps[p.cur().Type]; ok {
		tok := p.next()
		right := p.parseAssign()
		return &AssignExpr{Token: tok, Op: op, Left: left, Right: right}
	}
	return left
}

// parseTernary 条件表达式
func (p *Parser) parseTernary() Expression {
	cond := p.parseBinary(0)
	if cond == nil || !p.at(lexer.TOKEN_QUESTION) {
		return cond
	}
	tok := p.next()
	then := p.parseExpr()
	p.expect(lexer.TOKEN_COLON)
	// 冒号后是条件表达式，赋值不能直接出现在这里
	els := p.parseTernary()
	return &TernaryExpr{Token: tok, Cond: cond, Then: then, Else: els}
}

// binPrec 二元运算符优先级，0 表示不是二元运算符
func binPrec(t lexer.TokenType) int {
	switch t {
	case lexer.TOKEN_OR:
		return 1
	case lexer.TOKEN_AND:
		return 2
	case lexer.TOKEN_BIT_OR:
		return 3
	case lexer.TOKEN_BIT_XOR:
		return 4
	case lexer.TOKEN_BIT_AND:
		return 5
	case lexer.TOKEN_EQ, lexer.TOKEN_NOT_EQ:
		return 6
	case lexer.TOKEN_LT, lexer.TOKEN_GT, lexer.TOKEN_LT_EQ, lexer.TOKEN_GT_EQ:
		return 7
	case lexer.TOKEN_SHL, lexer.TOKEN_SHR:
		return 8
	case lexer.TOKEN_PLUS, lexer.TOKEN_MINUS:
		return 9
	case lexer.TOKEN_ASTERISK, lexer.TOKEN_SLASH, lexer.TOKEN_PERCENT:
		return 10
	}
	return 0
}

// parseBinary 优先级爬升解析二元表达式
func (p *Parser) parseBinary(minPrec int) Expression {
	left := p.parseCast()
	if left == nil {
		return nil
	}
	for {
		prec := binPrec(p.cur().Type)
		if prec == 0 || prec < minPrec {
			return left
		}
		tok := p.next()
		right := p.parseBinary(prec + 1)
		if right == nil {
			p.errorf(tok, i18n.ErrExpectedExpr, tok.Literal)
			return left
		}
		left = &BinaryExpr{Token: tok, Op: tok.Literal, Left: left, Right: right}
	}
}

// parseCast 强制转换表达式。`(类型名)` 后跟 `{` 是复合字面量。
func (p *Parser) parseCast() Expression {
	if p.at(lexer.TOKEN_LPAREN) && p.isTypeStart(p.peek()) {
		tok := p.next() // (
		typ, ok := p.parseTypeName()
		if !ok {
			p.syncStmt()
			return nil
		}
		p.expect(lexer.TOKEN_RPAREN)
		if p.at(lexer.TOKEN_LBRACE) {
			lit := &CompoundLit{Token: tok, Type: typ, Init: p.parseInitializer()}
			return p.parsePostfixOps(lit)
		}
		return &CastExpr{Token: tok, To: typ, Expr: p.parseCast()}
	}
	return p.parseUnary()
}

// parseUnary 一元表达式
func (p *Parser) parseUnary() Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.TOKEN_INC, lexer.TOKEN_DEC:
		p.next()
		return &IncDecExpr{Token: tok, Op: tok.Literal, Prefix: true, Expr: p.parseUnary()}
	case lexer.TOKEN_PLUS, lexer.TOKEN_MINUS, lexer.TOKEN_NOT, lexer.TOKEN_BIT_NOT:
		p.next()
		return &UnaryExpr{Token: tok, Op: tok.Literal, Expr: p.parseCast()}
	case lexer.TOKEN_ASTERISK, lexer.TOKEN_BIT_AND:
		p.next()
		return &UnaryExpr{Token: tok, Op: tok.Literal, Expr: p.parseCast()}
	case lexer.TOKEN_SIZEOF:
		p.next()
		if p.at(lexer.TOKEN_LPAREN) && p.isTypeStart(p.peek()) {
			p.next() // (
			typ, _ := p.parseTypeName()
			p.expect(lexer.TOKEN_RPAREN)
			return &SizeofExpr{Token: tok, Type: typ}
		}
		return &SizeofExpr{Token: tok, Expr: p.parseUnary()}
	}
	return p.parsePostfix()
}

// parsePostfix 后缀表达式
func (p *Parser) parsePostfix() Expression {
	expr := p.parsePrimary()
	if expr == nil {
		return nil
	}
	return p.parsePostfixOps(expr)
}

func (p *Parser) parsePostfixOps(expr Expression) Expression {
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.TOKEN_LPAREN:
			p.next()
			call := &CallExpr{Token: tok, Fn: expr}
			for !p.at(lexer.TOKEN_RPAREN) && !p.at(lexer.TOKEN_EOF) {
				call.Args = append(call.Args, p.parseAssign())
				if !p.accept(lexer.TOKEN_COMMA) {
					break
				}
			}
			p.expect(lexer.TOKEN_RPAREN)
			expr = call
		case lexer.TOKEN_LBRACKET:
			p.next()
			idx := p.parseExpr()
			p.expect(lexer.TOKEN_RBRACKET)
			expr = &IndexExpr{Token: tok, Expr: expr, Index: idx}
		case lexer.TOKEN_DOT, lexer.TOKEN_ARROW:
			p.next()
			nameTok := p.cur()
			if !p.expect(lexer.TOKEN_IDENT) {
				return expr
			}
			expr = &MemberExpr{
				Token: tok,
				Expr:  expr,
				Name:  nameTok.Literal,
				Arrow: tok.Type == lexer.TOKEN_ARROW,
			}
		case lexer.TOKEN_INC, lexer.TOKEN_DEC:
			p.next()
			expr = &IncDecExpr{Token: tok, Op: tok.Literal, Expr: expr}
		default:
			return expr
		}
	}
}

// parsePrimary 基本表达式
func (p *Parser) parsePrimary() Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.TOKEN_INT_LIT:
		p.next()
		return &IntLit{Token: tok, Value: tok.IntValue}
	case lexer.TOKEN_FLOAT_LIT:
		p.next()
		return &FloatLit{Token: tok, Value: tok.FloatValue}
	case lexer.TOKEN_CHAR_LIT:
		p.next()
		return &CharLit{Token: tok, Value: tok.IntValue}
	case lexer.TOKEN_STRING_LIT:
		p.next()
		value := tok.StrValue
		// 相邻字符串字面量拼接
		for p.at(lexer.TOKEN_STRING_LIT) {
			value += p.next().StrValue
		}
		return &StringLit{Token: tok, Value: value}
	case lexer.TOKEN_IDENT:
		p.next()
		return &Ident{Token: tok, Name: tok.Literal}
	case lexer.TOKEN_LPAREN:
		p.next()
		expr := p.parseExpr()
		p.expect(lexer.TOKEN_RPAREN)
		return expr
	}
	p.errorf(tok, i18n.ErrExpectedExpr, tok.Literal)
	return nil
}

// ---------------------------------------------------------------------------
// 解析期常量求值

// parseConstExpr 解析并求值一个整型常量表达式
func (p *Parser) parseConstExpr() (int64, bool) {
	expr := p.parseTernary()
	if expr == nil {
		return 0, false
	}
	return p.EvalConst(expr)
}

// EvalConst 对表达式做整型常量求值。
// 支持字面量、枚举常量、sizeof、强制转换和全部整型运算符。
func (p *Parser) EvalConst(expr Expression) (int64, bool) {
	switch e := expr.(type) {
	case *IntLit:
		return e.Value, true
	case *CharLit:
		return e.Value, true
	case *Ident:
		if d := p.scope.Lookup(e.Name); d != nil && d.IsEnumConst {
			return d.EnumValue, true
		}
		return 0, false
	case *SizeofExpr:
		if e.Type != nil {
			return ctypes.Sizeof(e.Type), true
		}
		return 0, false
	case *CastExpr:
		v, ok := p.EvalConst(e.Expr)
		if !ok {
			return 0, false
		}
		if it, isInt := ctypes.Unqual(e.To).(*ctypes.Int); isInt {
			return truncate(v, it), true
		}
		return v, true
	case *UnaryExpr:
		v, ok := p.EvalConst(e.Expr)
		if !ok {
			return 0, false
		}
		switch e.Op {
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
	case *BinaryExpr:
		l, ok := p.EvalConst(e.Left)
		if !ok {
			return 0, false
		}
		r, ok := p.EvalConst(e.Right)
		if !ok {
			return 0, false
		}
		return evalBinop(e.Op, l, r)
	case *TernaryExpr:
		c, ok := p.EvalConst(e.Cond)
		if !ok {
			return 0, false
		}
		if c != 0 {
			return p.EvalConst(e.Then)
		}
		return p.EvalConst(e.Else)
	}
	return 0, false
}

func truncate(v int64, t *ctypes.Int) int64 {
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

func evalBinop(op string, l, r int64) (int64, bool) {
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
