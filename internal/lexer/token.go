package lexer

// TokenType 表示 token 的类型
type TokenType int

const (
	// 特殊 token
	TOKEN_ILLEGAL TokenType = iota
	TOKEN_EOF
	TOKEN_COMMENT

	// 标识符和字面量
	TOKEN_IDENT      // 标识符
	TOKEN_INT_LIT    // 整数字面量
	TOKEN_FLOAT_LIT  // 浮点数字面量
	TOKEN_STRING_LIT // 字符串字面量
	TOKEN_CHAR_LIT   // 字符字面量

	// 运算符
	TOKEN_ASSIGN   // =
	TOKEN_PLUS     // +
	TOKEN_MINUS    // -
	TOKEN_ASTERISK // *
	TOKEN_SLASH    // /
	TOKEN_PERCENT  // %

	TOKEN_EQ     // ==
	TOKEN_NOT_EQ // !=
	TOKEN_LT     // <
	TOKEN_GT     // >
	TOKEN_LT_EQ  // <=
	TOKEN_GT_EQ  // >=

	TOKEN_AND // &&
	TOKEN_OR  // ||
	TOKEN_NOT // !

	TOKEN_BIT_AND // &
	TOKEN_BIT_OR  // |
	TOKEN_BIT_XOR // ^
	TOKEN_BIT_NOT // ~
	TOKEN_SHL     // <<
	TOKEN_SHR     // >>

	TOKEN_PLUS_ASSIGN     // +=
	TOKEN_MINUS_ASSIGN    // -=
	TOKEN_ASTERISK_ASSIGN // *=
	TOKEN_SLASH_ASSIGN    // /=
	TOKEN_PERCENT_ASSIGN  // %=
	TOKEN_AND_ASSIGN      // &=
	TOKEN_OR_ASSIGN       // |=
	TOKEN_XOR_ASSIGN      // ^=
	TOKEN_SHL_ASSIGN      // <<=
	TOKEN_SHR_ASSIGN      // >>=

	TOKEN_INC // ++
	TOKEN_DEC // --

	TOKEN_ARROW    // ->
	TOKEN_QUESTION // ?

	// 分隔符
	TOKEN_COMMA     // ,
	TOKEN_SEMICOLON // ;
	TOKEN_COLON     // :
	TOKEN_DOT       // .
	TOKEN_ELLIPSIS  // ...

	TOKEN_LPAREN   // (
	TOKEN_RPAREN   // )
	TOKEN_LBRACKET // [
	TOKEN_RBRACKET // ]
	TOKEN_LBRACE   // {
	TOKEN_RBRACE   // }

	// 关键字
	TOKEN_VOID     // void
	TOKEN_CHAR     // char
	TOKEN_SHORT    // short
	TOKEN_INT      // int
	TOKEN_LONG     // long
	TOKEN_FLOAT    // float
	TOKEN_DOUBLE   // double
	TOKEN_SIGNED   // signed
	TOKEN_UNSIGNED // unsigned
	TOKEN_CONST    // const
	TOKEN_VOLATILE // volatile
	TOKEN_STATIC   // static
	TOKEN_EXTERN   // extern
	TOKEN_REGISTER // register
	TOKEN_AUTO     // auto
	TOKEN_TYPEDEF  // typedef
	TOKEN_STRUCT   // struct
	TOKEN_UNION    // union
	TOKEN_ENUM     // enum
	TOKEN_IF       // if
	TOKEN_ELSE     // else
	TOKEN_WHILE    // while
	TOKEN_DO       // do
	TOKEN_FOR      // for
	TOKEN_SWITCH   // switch
	TOKEN_CASE     // case
	TOKEN_DEFAULT  // default
	TOKEN_GOTO     // goto
	TOKEN_BREAK    // break
	TOKEN_CONTINUE // continue
	TOKEN_RETURN   // return
	TOKEN_SIZEOF   // sizeof
)

// Token 表示一个词法单元
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Offset  int // 在输入中的字节偏移

	// 字面量的解码结果（仅对字面量 token 有效）
	IntValue   int64   // 整数/字符字面量的值
	FloatValue float64 // 浮点字面量的值
	StrValue   string  // 字符串字面量解码后的内容

	// 整数字面量的后缀分类（决定推断类型）
	Unsigned bool // U 后缀
	Longs    int  // L 的个数 (0/1/2)
	Float32  bool // F 后缀
}

var keywords = map[string]TokenType{
	"void":     TOKEN_VOID,
	"char":     TOKEN_CHAR,
	"short":    TOKEN_SHORT,
	"int":      TOKEN_INT,
	"long":     TOKEN_LONG,
	"float":    TOKEN_FLOAT,
	"double":   TOKEN_DOUBLE,
	"signed":   TOKEN_SIGNED,
	"unsigned": TOKEN_UNSIGNED,
	"const":    TOKEN_CONST,
	"volatile": TOKEN_VOLATILE,
	"static":   TOKEN_STATIC,
	"extern":   TOKEN_EXTERN,
	"register": TOKEN_REGISTER,
	"auto":     TOKEN_AUTO,
	"typedef":  TOKEN_TYPEDEF,
	"struct":   TOKEN_STRUCT,
	"union":    TOKEN_UNION,
	"enum":     TOKEN_ENUM,
	"if":       TOKEN_IF,
	"else":     TOKEN_ELSE,
	"while":    TOKEN_WHILE,
	"do":       TOKEN_DO,
	"for":      TOKEN_FOR,
	"switch":   TOKEN_SWITCH,
	"case":     TOKEN_CASE,
	"default":  TOKEN_DEFAULT,
	"goto":     TOKEN_GOTO,
	"break":    TOKEN_BREAK,
	"continue": TOKEN_CONTINUE,
	"return":   TOKEN_RETURN,
	"sizeof":   TOKEN_SIZEOF,
}

// LookupIdent 查找标识符是否为关键字
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TOKEN_IDENT
}

var tokenNames = map[TokenType]string{
	TOKEN_ILLEGAL:    "ILLEGAL",
	TOKEN_EOF:        "EOF",
	TOKEN_COMMENT:    "COMMENT",
	TOKEN_IDENT:      "IDENT",
	TOKEN_INT_LIT:    "INT",
	TOKEN_FLOAT_LIT:  "FLOAT",
	TOKEN_STRING_LIT: "STRING",
	TOKEN_CHAR_LIT:   "CHAR",

	TOKEN_ASSIGN:   "=",
	TOKEN_PLUS:     "+",
	TOKEN_MINUS:    "-",
	TOKEN_ASTERISK: "*",
	TOKEN_SLASH:    "/",
	TOKEN_PERCENT:  "%",
	TOKEN_EQ:       "==",
	TOKEN_NOT_EQ:   "!=",
	TOKEN_LT:       "<",
	TOKEN_GT:       ">",
	TOKEN_LT_EQ:    "<=",
	TOKEN_GT_EQ:    ">=",
	TOKEN_AND:      "&&",
	TOKEN_OR:       "||",
	TOKEN_NOT:      "!",
	TOKEN_BIT_AND:  "&",
	TOKEN_BIT_OR:   "|",
	TOKEN_BIT_XOR:  "^",
	TOKEN_BIT_NOT:  "~",
	TOKEN_SHL:      "<<",
	TOKEN_SHR:      ">>",

	TOKEN_PLUS_ASSIGN:     "+=",
	TOKEN_MINUS_ASSIGN:    "-=",
	TOKEN_ASTERISK_ASSIGN: "*=",
	TOKEN_SLASH_ASSIGN:    "/=",
	TOKEN_PERCENT_ASSIGN:  "%=",
	TOKEN_AND_ASSIGN:      "&=",
	TOKEN_OR_ASSIGN:       "|=",
	TOKEN_XOR_ASSIGN:      "^=",
	TOKEN_SHL_ASSIGN:      "<<=",
	TOKEN_SHR_ASSIGN:      ">>=",

	TOKEN_INC:      "++",
	TOKEN_DEC:      "--",
	TOKEN_ARROW:    "->",
	TOKEN_QUESTION: "?",

	TOKEN_COMMA:     ",",
	TOKEN_SEMICOLON: ";",
	TOKEN_COLON:     ":",
	TOKEN_DOT:       ".",
	TOKEN_ELLIPSIS:  "...",
	TOKEN_LPAREN:    "(",
	TOKEN_RPAREN:    ")",
	TOKEN_LBRACKET:  "[",
	TOKEN_RBRACKET:  "]",
	TOKEN_LBRACE:    "{",
	TOKEN_RBRACE:    "}",

	TOKEN_VOID:     "void",
	TOKEN_CHAR:     "char",
	TOKEN_SHORT:    "short",
	TOKEN_INT:      "int",
	TOKEN_LONG:     "long",
	TOKEN_FLOAT:    "float",
	TOKEN_DOUBLE:   "double",
	TOKEN_SIGNED:   "signed",
	TOKEN_UNSIGNED: "unsigned",
	TOKEN_CONST:    "const",
	TOKEN_VOLATILE: "volatile",
	TOKEN_STATIC:   "static",
	TOKEN_EXTERN:   "extern",
	TOKEN_REGISTER: "register",
	TOKEN_AUTO:     "auto",
	TOKEN_TYPEDEF:  "typedef",
	TOKEN_STRUCT:   "struct",
	TOKEN_UNION:    "union",
	TOKEN_ENUM:     "enum",
	TOKEN_IF:       "if",
	TOKEN_ELSE:     "else",
	TOKEN_WHILE:    "while",
	TOKEN_DO:       "do",
	TOKEN_FOR:      "for",
	TOKEN_SWITCH:   "switch",
	TOKEN_CASE:     "case",
	TOKEN_DEFAULT:  "default",
	TOKEN_GOTO:     "goto",
	TOKEN_BREAK:    "break",
	TOKEN_CONTINUE: "continue",
	TOKEN_RETURN:   "return",
	TOKEN_SIZEOF:   "sizeof",
}

// TokenTypeName 返回 token 类型的名称
func TokenTypeName(t TokenType) string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTypeKeyword 判断 token 是否可以开始一个类型说明符
func IsTypeKeyword(t TokenType) bool {
	switch t {
	case TOKEN_VOID, TOKEN_CHAR, TOKEN_SHORT, TOKEN_INT, TOKEN_LONG,
		TOKEN_FLOAT, TOKEN_DOUBLE, TOKEN_SIGNED, TOKEN_UNSIGNED,
		TOKEN_CONST, TOKEN_VOLATILE, TOKEN_STRUCT, TOKEN_UNION, TOKEN_ENUM:
		return true
	}
	return false
}

// IsStorageClass 判断 token 是否为存储类说明符
func IsStorageClass(t TokenType) bool {
	switch t {
	case TOKEN_STATIC, TOKEN_EXTERN, TOKEN_REGISTER, TOKEN_AUTO, TOKEN_TYPEDEF:
		return true
	}
	return false
}
