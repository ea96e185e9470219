package i18n

// Message keys for lexer diagnostics
const (
	ErrInvalidChar      = "lexer.invalid_char"      // args: char
	ErrBadEscape        = "lexer.bad_escape"        // args: escape
	ErrUntermString     = "lexer.unterm_string"     // no args
	ErrUntermChar       = "lexer.unterm_char"       // no args
	ErrUntermComment    = "lexer.unterm_comment"    // no args
	ErrBadNumberSuffix  = "lexer.bad_number_suffix" // args: suffix
	ErrIntOverflow      = "lexer.int_overflow"      // args: literal
	ErrEmptyCharLiteral = "lexer.empty_char"        // no args
)

// Message keys for parser diagnostics
const (
	ErrExpectedToken    = "parser.expected_token" // args: expected, got
	ErrGeneric          = "parser.generic"        // args: message
	ErrUnexpectedEOF    = "parser.unexpected_eof" // args: expected
	ErrBadDeclarator    = "parser.bad_declarator" // no args
	ErrBadTypeSpec      = "parser.bad_type_spec"  // args: got
	ErrBadDesignator    = "parser.bad_designator" // no args
	ErrExpectedExpr     = "parser.expected_expr"  // args: got
	ErrBadStorageClass  = "parser.bad_storage"    // args: first, second
	ErrEmptyDeclaration = "parser.empty_decl"     // no args
)

// Message keys for semantic diagnostics
const (
	ErrUndeclared         = "sema.undeclared"           // args: name
	ErrRedeclared         = "sema.redeclared"           // args: name
	ErrIncompatibleRedecl = "sema.incompatible_redecl"  // args: name, old, new
	ErrNotLValue          = "sema.not_lvalue"           // no args
	ErrAssignToConst      = "sema.assign_to_const"      // args: name
	ErrNoMember           = "sema.no_member"            // args: member, type
	ErrNotAggregate       = "sema.not_aggregate"        // args: type
	ErrArrowNonPointer    = "sema.arrow_non_pointer"    // args: type
	ErrNotSubscriptable   = "sema.not_subscriptable"    // args: type
	ErrNotCallable        = "sema.not_callable"         // args: type
	ErrArgCount           = "sema.arg_count"            // args: name, got, want
	ErrBadBitfieldWidth   = "sema.bad_bitfield_width"   // args: width, field
	ErrUnknownDesignator  = "sema.unknown_designator"   // args: field, type
	ErrDesignatorIndex    = "sema.designator_index"     // args: index, length
	ErrExcessInitializers = "sema.excess_initializers"  // args: type
	ErrUnresolvedExtern   = "sema.unresolved_extern"    // args: name
	ErrUndefinedLabel     = "sema.undefined_label"      // args: label
	ErrDuplicateLabel     = "sema.duplicate_label"      // args: label
	ErrDuplicateCase      = "sema.duplicate_case"       // args: value
	ErrVoidValue          = "sema.void_value"           // no args
	ErrBadOperands        = "sema.bad_operands"         // args: op, left, right
	ErrBadUnaryOperand    = "sema.bad_unary_operand"    // args: op, type
	ErrNonConstant        = "sema.non_constant"         // no args
	ErrIncompleteType     = "sema.incomplete_type"      // args: type
	ErrBreakOutsideLoop   = "sema.break_outside_loop"   // no args
	ErrContinueOutside    = "sema.continue_outside"     // no args
	ErrCaseOutsideSwitch  = "sema.case_outside_switch"  // no args
	ErrReturnValueInVoid  = "sema.return_value_in_void" // args: function
)

// Message keys for code generator diagnostics
const (
	WarnUnsupported     = "codegen.unsupported"      // args: construct
	WarnNestedLabel     = "codegen.nested_label"     // args: label
	WarnUnknownCall     = "codegen.unknown_call"     // args: name
	WarnAddressedScalar = "codegen.addressed_scalar" // args: name
)

// Message keys for the CLI
const (
	MsgUsage          = "cli.usage"
	MsgCommands       = "cli.commands"
	MsgCmdBuild       = "cli.cmd_build"
	MsgCmdRun         = "cli.cmd_run"
	MsgCmdVersion     = "cli.cmd_version"
	MsgCmdHelp        = "cli.cmd_help"
	MsgUseHelp        = "cli.use_help"
	MsgUnknownCommand = "cli.unknown_command" // args: command

	MsgBuildUsage       = "cli.build_usage"
	MsgBuildDescription = "cli.build_description"
	MsgBuildArgInput    = "cli.build_arg_input"
	MsgBuildOptOutput   = "cli.build_opt_output"
	MsgBuildOptVerbose  = "cli.build_opt_verbose"
	MsgRunUsage         = "cli.run_usage"
	MsgRunDescription   = "cli.run_description"

	MsgReadError      = "cli.read_error"      // args: path, error
	MsgWriteError     = "cli.write_error"     // args: path, error
	MsgTranslated     = "cli.translated"      // args: input, output
	MsgMetricsSummary = "cli.metrics_summary" // args: functions, declarations, warnings
	MsgErrorCount     = "cli.error_count"     // args: count
	MsgNoInput        = "cli.no_input"
	MsgGoRunFailed    = "cli.go_run_failed" // args: error
)
