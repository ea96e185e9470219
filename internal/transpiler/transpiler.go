package transpiler

import (
	"github.com/tangzhangming/cango/internal/config"
	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/lexer"
	"github.com/tangzhangming/cango/internal/parser"
	"github.com/tangzhangming/cango/internal/sema"
)

// Metrics 一次翻译的统计信息
type Metrics struct {
	Functions    int // 生成的函数数
	Declarations int // 生成的变量声明数
	Errors       int // 错误诊断数
	Warnings     int // 警告诊断数
	Unsupported  int // 降级处理的构造数
}

// Result 一次翻译的产物
type Result struct {
	GoSource    string            // 生成的 Go 源码（有错误时为空）
	Diagnostics []diag.Diagnostic // 按源码位置排序的诊断
	Metrics     Metrics
}

// Transpiler 翻译器
type Transpiler struct {
	config *config.Config
}

// New 创建一个新的翻译器
func New() *Transpiler {
	return &Transpiler{}
}

// SetConfig 设置项目配置
func (t *Transpiler) SetConfig(cfg *config.Config) {
	t.config = cfg
}

// GetConfig 获取项目配置
func (t *Transpiler) GetConfig() *config.Config {
	if t.config == nil {
		return config.DefaultConfig()
	}
	return t.config
}

// Translate 把一个预处理过的 C 翻译单元翻译成 Go 源文件。
// 词法、语法、语义三个阶段共用一个诊断收集器；
// 出现错误诊断时不产出代码，只返回诊断。
func (t *Transpiler) Translate(unitText, fileName string) *Result {
	sink := diag.NewSink()
	metrics := Metrics{}

	tokens := lexer.Tokenize(unitText, sink)
	p := parser.New(tokens, sink)
	file := p.ParseFile(fileName)
	an := sema.Resolve(file, sink)

	src := ""
	if !sink.HasErrors() {
		gen := NewCodeGen(an, sink, t.GetConfig(), &metrics)
		src = gen.Generate()
	}

	diags := sink.Diagnostics()
	metrics.Errors = sink.ErrorCount()
	metrics.Warnings = sink.WarningCount()
	if sink.HasErrors() {
		src = ""
	}
	return &Result{
		GoSource:    src,
		Diagnostics: diags,
		Metrics:     metrics,
	}
}
