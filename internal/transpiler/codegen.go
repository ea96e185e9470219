package transpiler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tangzhangming/cango/internal/config"
	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/i18n"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/parser"
	"github.com/tangzhangming/cango/internal/sema"
)

// CodeGen Go 代码生成器
type CodeGen struct {
	an   *sema.Analysis
	sink *diag.Sink

	pkgName    string // 输出包名
	entry      string // C 侧入口函数名
	forceSlice bool   // 所有指针一律用切片表示

	builder strings.Builder
	indent  int

	goImports   map[string]bool
	usedHelpers map[string]bool
	fns         map[string]*parser.FuncDecl

	fn      *parser.FuncDecl // 当前函数
	inState bool             // 当前函数是 progState 方法
	tmpN    int              // 临时变量编号
	pre     []string         // 当前语句前需要先执行的提升语句

	metrics *Metrics
}

// NewCodeGen 创建代码生成器
func NewCodeGen(an *sema.Analysis, sink *diag.Sink, cfg *config.Config, metrics *Metrics) *CodeGen {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &CodeGen{
		an:          an,
		sink:        sink,
		pkgName:     cfg.Project.Package,
		entry:       cfg.Project.Entry,
		forceSlice:  cfg.Translate.Pointers == "slice",
		goImports:   make(map[string]bool),
		usedHelpers: make(map[string]bool),
		fns:         make(map[string]*parser.FuncDecl),
		metrics:     metrics,
	}
}

func (g *CodeGen) write(s string) {
	g.builder.WriteString(s)
}

func (g *CodeGen) writeLine(s string) {
	if s != "" {
		for i := 0; i < g.indent; i++ {
			g.builder.WriteString("\t")
		}
		g.builder.WriteString(s)
	}
	g.builder.WriteString("\n")
}

func (g *CodeGen) warnUnsupported(tok lexer.Token, what string) {
	g.metrics.Unsupported++
	g.sink.Warn(diag.CategoryUnsupported,
		diag.Pos{Offset: tok.Offset, Line: tok.Line, Column: tok.Column},
		i18n.WarnUnsupported, what)
}

// Generate 把分析结果生成为一个 Go 源文件
func (g *CodeGen) Generate() string {
	g.builder.Reset()

	hasMain := false
	for _, fn := range g.an.Funcs {
		g.fns[fn.Name] = fn
		if fn.Name == g.entry {
			hasMain = true
			// main 的指针参数（argv）用切片表示，便于包装器构造
			for _, p := range fn.Params {
				if ctypes.IsPointer(ctypes.Decay(p.Type)) {
					p.UsesArith = true
				}
			}
		}
	}

	for _, e := range g.an.Enums {
		g.genEnum(e)
	}
	for _, s := range g.an.Structs {
		g.genStruct(s)
	}
	for _, u := range g.an.Unions {
		g.genUnion(u)
	}
	if g.an.HasState() {
		g.genStateType()
	}
	for _, fn := range g.an.Funcs {
		g.genFunc(fn)
		g.metrics.Functions++
	}
	if hasMain && g.pkgName == "main" {
		g.genMainWrapper()
	}

	g.emitHelpers()

	body := g.builder.String()
	g.builder.Reset()
	g.writeLine("// Code generated by cango. DO NOT EDIT.")
	g.writeLine("")
	g.writeLine("package " + g.pkgName)
	g.writeLine("")
	g.emitImports()
	g.write(body)
	return g.builder.String()
}

func (g *CodeGen) emitImports() {
	if len(g.goImports) == 0 {
		return
	}
	var names []string
	for name := range g.goImports {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 1 {
		g.writeLine(fmt.Sprintf("import %q", names[0]))
	} else {
		g.writeLine("import (")
		g.indent++
		for _, name := range names {
			g.writeLine(fmt.Sprintf("%q", name))
		}
		g.indent--
		g.writeLine(")")
	}
	g.writeLine("")
}

// genEnum 枚举降级为无类型常量
func (g *CodeGen) genEnum(e *ctypes.Enum) {
	if len(e.Members) == 0 {
		return
	}
	g.writeLine("const (")
	g.indent++
	for _, m := range e.Members {
		g.writeLine(fmt.Sprintf("%s = %d", goName(m.Name), m.Value))
	}
	g.indent--
	g.writeLine(")")
	g.writeLine("")
}

// genStruct 结构体类型及位域访问方法
func (g *CodeGen) genStruct(s *ctypes.Struct) {
	name := goName(s.Tag)
	g.writeLine(fmt.Sprintf("type %s struct {", name))
	g.indent++
	emittedUnit := make(map[int]bool)
	for _, f := range s.Fields {
		if f.BitWidth >= 0 {
			if f.BitWidth == 0 || emittedUnit[f.Unit] {
				continue
			}
			emittedUnit[f.Unit] = true
			g.writeLine(fmt.Sprintf("_bits%d %s", f.Unit, g.unitType(f)))
			continue
		}
		g.writeLine(fmt.Sprintf("%s %s", goName(f.Name), g.goType(f.Type, isCharPtr(f.Type))))
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	for _, f := range s.Fields {
		if f.BitWidth > 0 && f.Name != "" {
			g.genBitFieldAccessors(name, f)
		}
	}
}

// unitType 位域存储单元的无符号 Go 类型
func (g *CodeGen) unitType(f *ctypes.Field) string {
	it, ok := ctypes.Unqual(f.Type).(*ctypes.Int)
	width := 32
	if ok {
		width = it.Width
	}
	return g.goType(&ctypes.Int{Width: width, Unsigned: true}, false)
}

// genBitFieldAccessors 位域读取和写入方法。
// 位从存储单元的高位往低位排，读写都经移位和掩码。
func (g *CodeGen) genBitFieldAccessors(recv string, f *ctypes.Field) {
	it, _ := ctypes.Unqual(f.Type).(*ctypes.Int)
	width := 32
	signed := false
	if it != nil {
		width = it.Width
		signed = !it.Unsigned
	}
	unit := g.unitType(f)
	valType := g.goType(f.Type, false)
	mask := fmt.Sprintf("%s(1)<<%d - 1", unit, f.BitWidth)
	fname := goName(f.Name)

	g.writeLine(fmt.Sprintf("func (s *%s) %s() %s {", recv, fname, valType))
	g.indent++
	g.writeLine(fmt.Sprintf("v := s._bits%d >> %d & (%s)", f.Unit, f.BitShift, mask))
	if signed && f.BitWidth < width {
		g.writeLine(fmt.Sprintf("if v&(%s(1)<<%d) != 0 {", unit, f.BitWidth-1))
		g.indent++
		g.writeLine(fmt.Sprintf("v |= ^(%s)", mask))
		g.indent--
		g.writeLine("}")
	}
	g.writeLine(fmt.Sprintf("return %s(v)", valType))
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.writeLine(fmt.Sprintf("func (s *%s) set_%s(v %s) {", recv, fname, valType))
	g.indent++
	g.writeLine(fmt.Sprintf("s._bits%d = s._bits%d&^((%s)<<%d) | (%s(v)&(%s))<<%d",
		f.Unit, f.Unit, mask, f.BitShift, unit, mask, f.BitShift))
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}

// genUnion 联合体。字段同型时共用一个存储字段，异型时降级为
// 字节缓冲区，字段经小端序访问方法读写。
func (g *CodeGen) genUnion(u *ctypes.Union) {
	name := goName(u.Tag)
	if !g.an.UnionBuffer[u] {
		if len(u.Fields) == 0 {
			g.writeLine(fmt.Sprintf("type %s struct{}", name))
			g.writeLine("")
			return
		}
		typ := g.goType(u.Fields[0].Type, false)
		g.writeLine(fmt.Sprintf("type %s struct {", name))
		g.indent++
		g.writeLine("v " + typ)
		g.indent--
		g.writeLine("}")
		g.writeLine("")
		for _, f := range u.Fields {
			fname := goName(f.Name)
			g.writeLine(fmt.Sprintf("func (u *%s) %s() %s { return u.v }", name, fname, typ))
			g.writeLine("")
			g.writeLine(fmt.Sprintf("func (u *%s) set_%s(v %s) { u.v = v }", name, fname, typ))
			g.writeLine("")
		}
		return
	}

	g.writeLine(fmt.Sprintf("type %s struct {", name))
	g.indent++
	g.writeLine(fmt.Sprintf("raw [%d]byte", u.Size))
	g.indent--
	g.writeLine("}")
	g.writeLine("")
	for _, f := range u.Fields {
		if f.Name == "" {
			continue
		}
		g.genUnionAccessors(name, u, f)
	}
}

func (g *CodeGen) genUnionAccessors(recv string, u *ctypes.Union, f *ctypes.Field) {
	fname := goName(f.Name)
	size := ctypes.Sizeof(f.Type)
	valType := g.goType(f.Type, false)

	get, set := "", ""
	switch ft := ctypes.Unqual(f.Type).(type) {
	case *ctypes.Int:
		switch ft.Width {
		case 8:
			get = "u.raw[0]"
			set = "u.raw[0] = byte(v)"
		case 16:
			g.goImports["encoding/binary"] = true
			get = "binary.LittleEndian.Uint16(u.raw[0:2])"
			set = "binary.LittleEndian.PutUint16(u.raw[0:2], uint16(v))"
		case 64:
			g.goImports["encoding/binary"] = true
			get = "binary.LittleEndian.Uint64(u.raw[0:8])"
			set = "binary.LittleEndian.PutUint64(u.raw[0:8], uint64(v))"
		default:
			g.goImports["encoding/binary"] = true
			get = "binary.LittleEndian.Uint32(u.raw[0:4])"
			set = "binary.LittleEndian.PutUint32(u.raw[0:4], uint32(v))"
		}
		if get != "u.raw[0]" || valType != "byte" {
			get = fmt.Sprintf("%s(%s)", valType, get)
		}
	case *ctypes.Float:
		g.goImports["encoding/binary"] = true
		g.goImports["math"] = true
		if ft.Width == 32 {
			get = "math.Float32frombits(binary.LittleEndian.Uint32(u.raw[0:4]))"
			set = "binary.LittleEndian.PutUint32(u.raw[0:4], math.Float32bits(v))"
		} else {
			get = "math.Float64frombits(binary.LittleEndian.Uint64(u.raw[0:8]))"
			set = "binary.LittleEndian.PutUint64(u.raw[0:8], math.Float64bits(v))"
		}
	case *ctypes.Array:
		if it, ok := ctypes.Unqual(ft.Elem).(*ctypes.Int); ok && it.Width == 8 {
			g.writeLine(fmt.Sprintf("func (u *%s) %s() []byte { return u.raw[0:%d] }", recv, fname, size))
			g.writeLine("")
			return
		}
		g.warnUnsupported(lexer.Token{}, "union field "+f.Name)
		return
	default:
		g.warnUnsupported(lexer.Token{}, "union field "+f.Name)
		return
	}

	g.writeLine(fmt.Sprintf("func (u *%s) %s() %s { return %s }", recv, fname, valType, get))
	g.writeLine("")
	g.writeLine(fmt.Sprintf("func (u *%s) set_%s(v %s) { %s }", recv, fname, valType, set))
	g.writeLine("")
}

// genStateType 全局变量和 static 局部变量集中放进程序状态结构，
// 用到状态的函数都挂成它的方法。
func (g *CodeGen) genStateType() {
	g.writeLine("// progState 翻译单元的全局可变状态")
	g.writeLine("type progState struct {")
	g.indent++
	for _, v := range g.an.Globals {
		g.metrics.Declarations++
		g.writeLine(fmt.Sprintf("%s %s", declName(v.Decl), g.goType(v.Type, g.sliceRepr(v.Type, v.Decl))))
	}
	for _, v := range g.an.StaticLocals {
		g.writeLine(fmt.Sprintf("%s %s", declName(v.Decl), g.goType(v.Type, g.sliceRepr(v.Type, v.Decl))))
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")

	g.writeLine("func newProgState() *progState {")
	g.indent++
	g.writeLine("st := &progState{}")
	prev := g.inState
	g.inState = true
	for _, v := range g.an.Globals {
		if v.Init == nil {
			continue
		}
		g.genInitAssign("st."+declName(v.Decl), v.Type, v.Decl, v.Init)
	}
	for _, v := range g.an.StaticLocals {
		if v.Init == nil {
			continue
		}
		g.genInitAssign("st."+declName(v.Decl), v.Type, v.Decl, v.Init)
	}
	g.inState = prev
	g.writeLine("return st")
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}

// genFunc 函数定义
func (g *CodeGen) genFunc(fn *parser.FuncDecl) {
	if fn.Body == nil {
		return
	}
	g.fn = fn
	g.inState = g.an.NeedsState[fn.Name]
	g.tmpN = 0
	g.pre = g.pre[:0]

	var sb strings.Builder
	sb.WriteString("func ")
	if g.inState {
		sb.WriteString("(st *progState) ")
	}
	sb.WriteString(goName(fn.Name))
	sb.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		pname := p.Name
		if pname == "" {
			pname = fmt.Sprintf("_arg%d", i)
		}
		sb.WriteString(goName(pname))
		sb.WriteString(" ")
		sb.WriteString(g.goType(p.Type, g.sliceRepr(p.Type, p)))
	}
	sb.WriteString(")")
	if !ctypes.IsVoid(fn.Type.Return) {
		sb.WriteString(" " + g.goType(fn.Type.Return, isCharPtr(fn.Type.Return)))
	}
	sb.WriteString(" {")
	g.writeLine(sb.String())
	g.indent++

	if len(fn.Labels) > 0 {
		g.genStateMachineBody(fn)
	} else {
		for _, s := range fn.Body.Statements {
			g.genStmt(s)
		}
	}

	g.indent--
	g.writeLine("}")
	g.writeLine("")
	g.fn = nil
}

// genMainWrapper Go 的入口：构造状态和参数，退出码来自 C 的 main
func (g *CodeGen) genMainWrapper() {
	mainFn := g.fns[g.entry]
	if mainFn == nil || mainFn.Body == nil {
		return
	}

	needsState := g.an.NeedsState[g.entry]
	retInt := !ctypes.IsVoid(mainFn.Type.Return)
	g.goImports["os"] = true

	g.writeLine("func main() {")
	g.indent++
	call := goName(g.entry) + "("
	if needsState {
		g.writeLine("st := newProgState()")
		call = "st." + goName(g.entry) + "("
	}
	if len(mainFn.Params) >= 2 {
		g.writeLine("argv := make([][]byte, len(os.Args))")
		g.writeLine("for i, a := range os.Args {")
		g.indent++
		g.writeLine("argv[i] = append([]byte(a), 0)")
		g.indent--
		g.writeLine("}")
		call += "int32(len(os.Args)), argv"
	}
	call += ")"
	if retInt {
		g.writeLine(fmt.Sprintf("os.Exit(int(%s))", call))
	} else {
		g.writeLine(call)
		g.writeLine("os.Exit(0)")
	}
	g.indent--
	g.writeLine("}")
	g.writeLine("")
}

// genStateMachineBody goto 降级：函数体按顶层标号切成状态段，
// 外层循环按 _state 分发，goto 变成改状态后重新分发。
func (g *CodeGen) genStateMachineBody(fn *parser.FuncDecl) {
	// 顶层变量声明提升到循环外，初始化留在原位置
	segments := splitSegments(fn.Body.Statements)
	for _, seg := range segments {
		for _, s := range seg.stmts {
			g.hoistDecls(s)
		}
	}

	g.writeLine("_state := 0")
	g.writeLine("_dispatch:")
	g.writeLine("for {")
	g.indent++
	g.writeLine("switch _state {")
	for i, seg := range segments {
		g.writeLine(fmt.Sprintf("case %d:", seg.state))
		g.indent++
		for _, s := range seg.stmts {
			g.genStmt(s)
		}
		if i+1 < len(segments) {
			g.writeLine(fmt.Sprintf("_state = %d", segments[i+1].state))
			g.writeLine("continue _dispatch")
		} else {
			g.writeLine("break _dispatch")
		}
		g.indent--
	}
	g.writeLine("}")
	g.indent--
	g.writeLine("}")
}

// segment 状态机的一个状态段
type segment struct {
	state int
	stmts []parser.Statement
}

// splitSegments 按顶层标号把语句序列切段。段 0 是函数入口。
func splitSegments(stmts []parser.Statement) []segment {
	segs := []segment{{state: 0}}
	for _, s := range stmts {
		if l, ok := s.(*parser.LabeledStmt); ok && l.State > 0 {
			segs = append(segs, segment{state: l.State})
			if l.Body != nil {
				segs[len(segs)-1].stmts = append(segs[len(segs)-1].stmts, l.Body)
			}
			continue
		}
		segs[len(segs)-1].stmts = append(segs[len(segs)-1].stmts, s)
	}
	return segs
}

// hoistDecls 状态段里的顶层声明提升到分发循环前面，
// 否则跨段的变量在 Go 的 case 作用域里不可见。
func (g *CodeGen) hoistDecls(s parser.Statement) {
	switch st := s.(type) {
	case *parser.DeclStmt:
		for _, d := range st.Decls {
			g.hoistDecls(d)
		}
	case *parser.VarDecl:
		if st.Storage == ctypes.StorageStatic {
			return
		}
		name := declName(st.Decl)
		g.writeLine(fmt.Sprintf("var %s %s", name, g.goType(st.Type, g.sliceRepr(st.Type, st.Decl))))
		g.writeLine("_ = " + name)
		if st.Decl != nil {
			st.Decl.Hoisted = true
		}
	}
}
