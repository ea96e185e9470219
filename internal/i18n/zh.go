package i18n

// zhMessages contains Chinese translations
var zhMessages = map[string]string{
	// Lexer errors
	ErrInvalidChar:      "输入中存在无效字符 %q",
	ErrBadEscape:        "未知的转义序列 '\\%s'",
	ErrUntermString:     "字符串字面量未闭合",
	ErrUntermChar:       "字符字面量未闭合",
	ErrUntermComment:    "块注释未闭合",
	ErrBadNumberSuffix:  "无效的数字字面量后缀 '%s'",
	ErrIntOverflow:      "整型常量 '%s' 超出可表示范围",
	ErrEmptyCharLiteral: "空字符字面量",

	// Parser errors
	ErrExpectedToken:    "期望 %s, 实际是 %s",
	ErrGeneric:          "%s",
	ErrUnexpectedEOF:    "文件意外结束, 期望 %s",
	ErrBadDeclarator:    "无效的声明符",
	ErrBadTypeSpec:      "期望类型说明符, 实际是 %s",
	ErrBadDesignator:    "无效的初始化指示符",
	ErrExpectedExpr:     "期望表达式, 实际是 %s",
	ErrBadStorageClass:  "不能同时使用存储类 '%s' 和 '%s'",
	ErrEmptyDeclaration: "声明没有声明任何内容",

	// Semantic errors
	ErrUndeclared:         "使用了未声明的标识符 '%s'",
	ErrRedeclared:         "'%s' 重复声明",
	ErrIncompatibleRedecl: "'%s' 以不兼容的类型重复声明 (原为 %s, 现为 %s)",
	ErrNotLValue:          "表达式不可赋值",
	ErrAssignToConst:      "不能给 const 限定的 '%s' 赋值",
	ErrNoMember:           "%[2]s 中没有名为 '%[1]s' 的成员",
	ErrNotAggregate:       "对非结构体类型 %s 进行成员访问",
	ErrArrowNonPointer:    "'->' 作用于非指针类型 %s",
	ErrNotSubscriptable:   "下标作用于非数组/指针类型 %s",
	ErrNotCallable:        "被调用对象的类型 %s 不是函数",
	ErrArgCount:           "调用 '%s' 传入 %d 个参数, 期望 %d 个",
	ErrBadBitfieldWidth:   "字段 '%[2]s' 的位域宽度 %[1]d 无效",
	ErrUnknownDesignator:  "指示符 '.%s' 不是 %s 的成员",
	ErrDesignatorIndex:    "数组指示符下标 %d 超出数组长度 %d",
	ErrExcessInitializers: "%s 的初始化器有多余元素",
	ErrUnresolvedExtern:   "extern '%s' 在本翻译单元中没有定义",
	ErrUndefinedLabel:     "goto 指向未定义的标签 '%s'",
	ErrDuplicateLabel:     "标签 '%s' 重复",
	ErrDuplicateCase:      "case 值 %v 重复",
	ErrVoidValue:          "在需要值的地方使用了 void 值",
	ErrBadOperands:        "'%s' 的操作数无效 (%s 和 %s)",
	ErrBadUnaryOperand:    "一元 '%s' 的操作数无效 (%s)",
	ErrNonConstant:        "表达式不是整数常量",
	ErrIncompleteType:     "使用了不完整类型 %s",
	ErrBreakOutsideLoop:   "'break' 在循环或 switch 之外",
	ErrContinueOutside:    "'continue' 在循环之外",
	ErrCaseOutsideSwitch:  "'case' 在 switch 之外",
	ErrReturnValueInVoid:  "void 函数 '%s' 返回了值",

	// Codegen warnings
	WarnUnsupported:     "不支持的构造: %s",
	WarnNestedLabel:     "标签 '%s' 嵌套过深, 无法进行 goto 降级",
	WarnUnknownCall:     "库函数 '%s' 没有对应的翻译",
	WarnAddressedScalar: "'%s' 的地址参与了指针运算",

	// CLI - Usage and help
	MsgUsage:          "用法: cango <命令> [参数]",
	MsgCommands:       "命令:",
	MsgCmdBuild:       "  build    将 C 源文件翻译为 Go",
	MsgCmdRun:         "  run      翻译 C 源文件并运行结果",
	MsgCmdVersion:     "  version  打印版本信息",
	MsgCmdHelp:        "  help     打印帮助信息",
	MsgUseHelp:        "使用 \"cango <命令> -h\" 查看命令详情。",
	MsgUnknownCommand: "未知命令: %s",

	// CLI - Build command
	MsgBuildUsage:       "用法: cango build [选项] <input.c>",
	MsgBuildDescription: "将预处理过的 C 源文件翻译为 Go。",
	MsgBuildArgInput:    "  <input.c>  预处理过的 C 翻译单元",
	MsgBuildOptOutput:   "输出文件路径",
	MsgBuildOptVerbose:  "显示详细输出",
	MsgRunUsage:         "用法: cango run [选项] <input.c>",
	MsgRunDescription:   "将 C 源文件翻译为 Go 并运行。\n输出放在临时目录中。",

	// CLI - Messages
	MsgReadError:      "无法读取 %s: %v",
	MsgWriteError:     "无法写入 %s: %v",
	MsgTranslated:     "已翻译 %s -> %s",
	MsgMetricsSummary: "%d 个函数, %d 个声明, %d 个警告",
	MsgErrorCount:     "%d 个错误",
	MsgNoInput:        "没有输入文件",
	MsgGoRunFailed:    "go run 失败: %v",
}
