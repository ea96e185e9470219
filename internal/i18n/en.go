package i18n

// enMessages contains English translations
var enMessages = map[string]string{
	// Lexer errors
	ErrInvalidChar:      "invalid character %q in input",
	ErrBadEscape:        "unknown escape sequence '\\%s'",
	ErrUntermString:     "unterminated string literal",
	ErrUntermChar:       "unterminated character literal",
	ErrUntermComment:    "unterminated block comment",
	ErrBadNumberSuffix:  "invalid numeric literal suffix '%s'",
	ErrIntOverflow:      "integer constant '%s' is too large for any supported type",
	ErrEmptyCharLiteral: "empty character literal",

	// Parser errors
	ErrExpectedToken:    "expected %s, got %s",
	ErrGeneric:          "%s",
	ErrUnexpectedEOF:    "unexpected end of file, expected %s",
	ErrBadDeclarator:    "invalid declarator",
	ErrBadTypeSpec:      "expected type specifier, got %s",
	ErrBadDesignator:    "invalid initializer designator",
	ErrExpectedExpr:     "expected expression, got %s",
	ErrBadStorageClass:  "cannot combine storage classes '%s' and '%s'",
	ErrEmptyDeclaration: "declaration declares nothing",

	// Semantic errors
	ErrUndeclared:         "use of undeclared identifier '%s'",
	ErrRedeclared:         "redeclaration of '%s'",
	ErrIncompatibleRedecl: "redeclaration of '%s' with incompatible type (was %s, now %s)",
	ErrNotLValue:          "expression is not assignable",
	ErrAssignToConst:      "cannot assign to const-qualified '%s'",
	ErrNoMember:           "no member named '%s' in %s",
	ErrNotAggregate:       "member access on non-struct type %s",
	ErrArrowNonPointer:    "'->' applied to non-pointer type %s",
	ErrNotSubscriptable:   "subscripted value of type %s is not an array or pointer",
	ErrNotCallable:        "called object of type %s is not a function",
	ErrArgCount:           "call to '%s' with %d arguments, expected %d",
	ErrBadBitfieldWidth:   "invalid bit-field width %d for field '%s'",
	ErrUnknownDesignator:  "designator '.%s' does not name a member of %s",
	ErrDesignatorIndex:    "array designator index %d exceeds array length %d",
	ErrExcessInitializers: "excess elements in initializer for %s",
	ErrUnresolvedExtern:   "extern '%s' has no definition in this translation unit",
	ErrUndefinedLabel:     "goto targets undefined label '%s'",
	ErrDuplicateLabel:     "duplicate label '%s'",
	ErrDuplicateCase:      "duplicate case value %v",
	ErrVoidValue:          "void value used where a value is required",
	ErrBadOperands:        "invalid operands to '%s' (%s and %s)",
	ErrBadUnaryOperand:    "invalid operand to unary '%s' (%s)",
	ErrNonConstant:        "expression is not an integer constant",
	ErrIncompleteType:     "use of incomplete type %s",
	ErrBreakOutsideLoop:   "'break' outside of loop or switch",
	ErrContinueOutside:    "'continue' outside of loop",
	ErrCaseOutsideSwitch:  "'case' outside of switch",
	ErrReturnValueInVoid:  "void function '%s' returns a value",

	// Codegen warnings
	WarnUnsupported:     "unsupported construct: %s",
	WarnNestedLabel:     "label '%s' is nested too deep for goto lowering",
	WarnUnknownCall:     "no translation for library function '%s'",
	WarnAddressedScalar: "address of '%s' escapes into pointer arithmetic",

	// CLI - Usage and help
	MsgUsage:          "Usage: cango <command> [arguments]",
	MsgCommands:       "Commands:",
	MsgCmdBuild:       "  build    Translate C source files to Go",
	MsgCmdRun:         "  run      Translate a C source file and run the result",
	MsgCmdVersion:     "  version  Print version information",
	MsgCmdHelp:        "  help     Print this help message",
	MsgUseHelp:        "Use \"cango <command> -h\" for more information about a command.",
	MsgUnknownCommand: "Unknown command: %s",

	// CLI - Build command
	MsgBuildUsage:       "Usage: cango build [options] <input.c>",
	MsgBuildDescription: "Translate preprocessed C source files to Go.",
	MsgBuildArgInput:    "  <input.c>  Preprocessed C translation unit",
	MsgBuildOptOutput:   "Output file path",
	MsgBuildOptVerbose:  "Verbose output",
	MsgRunUsage:         "Usage: cango run [options] <input.c>",
	MsgRunDescription:   "Translate a C source file to Go and run it.\nOutput is placed in a temporary directory.",

	// CLI - Messages
	MsgReadError:      "cannot read %s: %v",
	MsgWriteError:     "cannot write %s: %v",
	MsgTranslated:     "translated %s -> %s",
	MsgMetricsSummary: "%d functions, %d declarations, %d warnings",
	MsgErrorCount:     "%d error(s)",
	MsgNoInput:        "no input file",
	MsgGoRunFailed:    "go run failed: %v",
}
