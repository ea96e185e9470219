package lexer

import (
	"strconv"
	"strings"

	"github.com/tangzhangming/cango/internal/diag"
	"github.com/tangzhangming/cango/internal/i18n"
)

// Lexer 词法分析器。对任何输入都不会失败：
// 无法识别的字节产生 TOKEN_ILLEGAL 并记录诊断，之后继续。
type Lexer struct {
	input   string
	pos     int  // 当前位置
	readPos int  // 下一个读取位置
	ch      byte // 当前字符
	line    int  // 当前行号
	column  int  // 当前列号
	sink    *diag.Sink
}

// New 创建一个新的词法分析器
func New(input string, sink *diag.Sink) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
		sink:   sink,
	}
	l.readChar()
	return l
}

// readChar 读取下一个字符
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
}

// peekChar 查看下一个字符但不移动位置
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// here 当前位置，用于诊断
func (l *Lexer) here() diag.Pos {
	return diag.Pos{Offset: l.pos, Line: l.line, Column: l.column}
}

// NextToken 获取下一个 token
func (l *Lexer) NextToken() Token {
	var tok Token

	l.skipWhitespace()

	tok.Line = l.line
	tok.Column = l.column
	tok.Offset = l.pos

	switch l.ch {
	case '=':
		tok = l.twoChar(TOKEN_ASSIGN, '=', TOKEN_EQ)
	case '+':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_PLUS_ASSIGN, "+=", tok)
		} else if l.peekChar() == '+' {
			l.readChar()
			tok = l.punct(TOKEN_INC, "++", tok)
		} else {
			tok = l.newToken(TOKEN_PLUS, l.ch)
		}
	case '-':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_MINUS_ASSIGN, "-=", tok)
		} else if l.peekChar() == '-' {
			l.readChar()
			tok = l.punct(TOKEN_DEC, "--", tok)
		} else if l.peekChar() == '>' {
			l.readChar()
			tok = l.punct(TOKEN_ARROW, "->", tok)
		} else {
			tok = l.newToken(TOKEN_MINUS, l.ch)
		}
	case '*':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_ASTERISK_ASSIGN, "*=", tok)
		} else {
			tok = l.newToken(TOKEN_ASTERISK, l.ch)
		}
	case '/':
		if l.peekChar() == '/' {
			tok.Type = TOKEN_COMMENT
			tok.Literal = l.readLineComment()
			return tok
		} else if l.peekChar() == '*' {
			tok.Type = TOKEN_COMMENT
			tok.Literal = l.readBlockComment()
			return tok
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_SLASH_ASSIGN, "/=", tok)
		} else {
			tok = l.newToken(TOKEN_SLASH, l.ch)
		}
	case '%':
		tok = l.twoChar(TOKEN_PERCENT, '=', TOKEN_PERCENT_ASSIGN)
	case '!':
		tok = l.twoChar(TOKEN_NOT, '=', TOKEN_NOT_EQ)
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_LT_EQ, "<=", tok)
		} else if l.peekChar() == '<' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = l.punct(TOKEN_SHL_ASSIGN, "<<=", tok)
			} else {
				tok = l.punct(TOKEN_SHL, "<<", tok)
			}
		} else {
			tok = l.newToken(TOKEN_LT, l.ch)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_GT_EQ, ">=", tok)
		} else if l.peekChar() == '>' {
			l.readChar()
			if l.peekChar() == '=' {
				l.readChar()
				tok = l.punct(TOKEN_SHR_ASSIGN, ">>=", tok)
			} else {
				tok = l.punct(TOKEN_SHR, ">>", tok)
			}
		} else {
			tok = l.newToken(TOKEN_GT, l.ch)
		}
	case '&':
		if l.peekChar() == '&' {
			l.readChar()
			tok = l.punct(TOKEN_AND, "&&", tok)
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_AND_ASSIGN, "&=", tok)
		} else {
			tok = l.newToken(TOKEN_BIT_AND, l.ch)
		}
	case '|':
		if l.peekChar() == '|' {
			l.readChar()
			tok = l.punct(TOKEN_OR, "||", tok)
		} else if l.peekChar() == '=' {
			l.readChar()
			tok = l.punct(TOKEN_OR_ASSIGN, "|=", tok)
		} else {
			tok = l.newToken(TOKEN_BIT_OR, l.ch)
		}
	case '^':
		tok = l.twoChar(TOKEN_BIT_XOR, '=', TOKEN_XOR_ASSIGN)
	case '~':
		tok = l.newToken(TOKEN_BIT_NOT, l.ch)
	case '?':
		tok = l.newToken(TOKEN_QUESTION, l.ch)
	case ',':
		tok = l.newToken(TOKEN_COMMA, l.ch)
	case ';':
		tok = l.newToken(TOKEN_SEMICOLON, l.ch)
	case ':':
		tok = l.newToken(TOKEN_COLON, l.ch)
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				tok = l.punct(TOKEN_ELLIPSIS, "...", tok)
			} else {
				tok = l.punct(TOKEN_ILLEGAL, "..", tok)
			}
		} else if isDigit(l.peekChar()) {
			return l.readNumber()
		} else {
			tok = l.newToken(TOKEN_DOT, l.ch)
		}
	case '(':
		tok = l.newToken(TOKEN_LPAREN, l.ch)
	case ')':
		tok = l.newToken(TOKEN_RPAREN, l.ch)
	case '[':
		tok = l.newToken(TOKEN_LBRACKET, l.ch)
	case ']':
		tok = l.newToken(TOKEN_RBRACKET, l.ch)
	case '{':
		tok = l.newToken(TOKEN_LBRACE, l.ch)
	case '}':
		tok = l.newToken(TOKEN_RBRACE, l.ch)
	case '"':
		return l.readString()
	case '\'':
		return l.readCharLiteral()
	case 0:
		tok.Literal = ""
		tok.Type = TOKEN_EOF
		return tok
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = LookupIdent(tok.Literal)
			return tok
		} else if isDigit(l.ch) {
			return l.readNumber()
		}
		if l.sink != nil {
			l.sink.Error(diag.CategoryLexical, diag.Pos{Offset: tok.Offset, Line: tok.Line, Column: tok.Column},
				i18n.ErrInvalidChar, string(l.ch))
		}
		tok = l.newToken(TOKEN_ILLEGAL, l.ch)
	}

	l.readChar()
	return tok
}

// newToken 创建新的单字符 token
func (l *Lexer) newToken(tokenType TokenType, ch byte) Token {
	return Token{Type: tokenType, Literal: string(ch), Line: l.line, Column: l.column, Offset: l.pos}
}

// punct 创建多字符运算符 token，位置取自起始 token
func (l *Lexer) punct(tokenType TokenType, literal string, start Token) Token {
	start.Type = tokenType
	start.Literal = literal
	return start
}

// twoChar 处理 "X" / "X=" 形式的运算符
func (l *Lexer) twoChar(single TokenType, next byte, double TokenType) Token {
	tok := Token{Line: l.line, Column: l.column, Offset: l.pos}
	if l.peekChar() == next {
		ch := l.ch
		l.readChar()
		tok.Type = double
		tok.Literal = string(ch) + string(next)
		return tok
	}
	tok.Type = single
	tok.Literal = string(l.ch)
	return tok
}

// skipWhitespace 跳过空白字符
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// readIdentifier 读取标识符
func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber 读取数字字面量并完成分类：
// 前缀区分进制 (0x/0b/0)，后缀 (U/L/LL/F) 决定推断类型，
// 无后缀的十进制常量装不下 int 时提升到 long、long long。
func (l *Lexer) readNumber() Token {
	tok := Token{Line: l.line, Column: l.column, Offset: l.pos}
	start := l.pos
	base := 10
	isFloat := false

	if l.ch == '0' {
		switch {
		case l.peekChar() == 'x' || l.peekChar() == 'X':
			base = 16
			l.readChar()
			l.readChar()
			for isHexDigit(l.ch) {
				l.readChar()
			}
		case l.peekChar() == 'b' || l.peekChar() == 'B':
			// 二进制是公认的扩展写法
			base = 2
			l.readChar()
			l.readChar()
			for l.ch == '0' || l.ch == '1' {
				l.readChar()
			}
		default:
			base = 8
			l.readChar()
			for l.ch >= '0' && l.ch <= '7' {
				l.readChar()
			}
			if l.pos == start+1 {
				// 单独的 0
				base = 10
			}
		}
	} else {
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	// 小数部分和科学计数法（仅十进制）
	if base == 10 || base == 8 {
		if l.ch == '.' {
			isFloat = true
			base = 10
			l.readChar()
			for isDigit(l.ch) {
				l.readChar()
			}
		}
		if l.ch == 'e' || l.ch == 'E' {
			isFloat = true
			base = 10
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}

	digits := l.input[start:l.pos]

	// 后缀
	suffixStart := l.pos
	for l.ch == 'u' || l.ch == 'U' || l.ch == 'l' || l.ch == 'L' || l.ch == 'f' || l.ch == 'F' {
		l.readChar()
	}
	suffix := l.input[suffixStart:l.pos]
	tok.Literal = l.input[start:l.pos]

	lower := strings.ToLower(suffix)
	unsigned := strings.Contains(lower, "u")
	longs := strings.Count(lower, "l")
	float32Suffix := strings.Contains(lower, "f")
	if !validSuffix(lower, isFloat) {
		if l.sink != nil {
			l.sink.Error(diag.CategoryLexical, diag.Pos{Offset: suffixStart, Line: tok.Line, Column: tok.Column},
				i18n.ErrBadNumberSuffix, suffix)
		}
	}

	if isFloat || (float32Suffix && !unsigned && base == 10) {
		tok.Type = TOKEN_FLOAT_LIT
		v, err := strconv.ParseFloat(digits, 64)
		if err == nil {
			tok.FloatValue = v
		}
		tok.Float32 = float32Suffix
		return tok
	}

	tok.Type = TOKEN_INT_LIT
	tok.Unsigned = unsigned
	tok.Longs = longs

	body := digits
	switch base {
	case 16:
		body = digits[2:]
	case 2:
		body = digits[2:]
	case 8:
		body = digits[1:]
	}
	v, err := strconv.ParseUint(body, base, 64)
	overflow := err != nil
	if overflow {
		v = 0
	}
	tok.IntValue = int64(v)

	// 无后缀常量的提升：int -> long -> long long
	if !unsigned && longs == 0 {
		if v > 0x7FFFFFFF {
			tok.Longs = 1
		}
		if v > 0x7FFFFFFFFFFFFFFF {
			tok.Longs = 2
			// 十六进制、八进制、二进制常量还能落到 unsigned long long，
			// 十进制装不进 long long 就是溢出
			if base == 10 {
				overflow = true
			} else {
				tok.Unsigned = true
			}
		}
	}
	if overflow && l.sink != nil {
		l.sink.Error(diag.CategoryLexical,
			diag.Pos{Offset: tok.Offset, Line: tok.Line, Column: tok.Column},
			i18n.ErrIntOverflow, digits)
	}
	return tok
}

// validSuffix 判断数字后缀组合是否合法
func validSuffix(lower string, isFloat bool) bool {
	if isFloat {
		switch lower {
		case "", "f", "l":
			return true
		}
		return false
	}
	switch lower {
	case "", "u", "l", "ul", "lu", "ll", "ull", "llu", "f":
		return true
	}
	return false
}

// readString 读取双引号字符串并解码转义
func (l *Lexer) readString() Token {
	tok := Token{Type: TOKEN_STRING_LIT, Line: l.line, Column: l.column, Offset: l.pos}
	start := l.pos
	var sb strings.Builder
	l.readChar() // 跳过开头的 "
	for {
		if l.ch == '"' {
			l.readChar()
			break
		}
		if l.ch == 0 || l.ch == '\n' {
			if l.sink != nil {
				l.sink.Error(diag.CategoryLexical, diag.Pos{Offset: start, Line: tok.Line, Column: tok.Column},
					i18n.ErrUntermString)
			}
			break
		}
		if l.ch == '\\' {
			sb.WriteByte(l.readEscape())
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	tok.Literal = l.input[start:l.pos]
	tok.StrValue = sb.String()
	return tok
}

// readCharLiteral 读取单引号字符字面量
func (l *Lexer) readCharLiteral() Token {
	tok := Token{Type: TOKEN_CHAR_LIT, Line: l.line, Column: l.column, Offset: l.pos}
	start := l.pos
	l.readChar() // 跳过开头的 '
	if l.ch == '\'' {
		if l.sink != nil {
			l.sink.Error(diag.CategoryLexical, diag.Pos{Offset: start, Line: tok.Line, Column: tok.Column},
				i18n.ErrEmptyCharLiteral)
		}
		l.readChar()
		tok.Literal = l.input[start:l.pos]
		return tok
	}
	var value byte
	if l.ch == '\\' {
		value = l.readEscape()
	} else {
		value = l.ch
		l.readChar()
	}
	if l.ch == '\'' {
		l.readChar()
	} else {
		if l.sink != nil {
			l.sink.Error(diag.CategoryLexical, diag.Pos{Offset: start, Line: tok.Line, Column: tok.Column},
				i18n.ErrUntermChar)
		}
		// 恢复：跳到下一个 ' 或行尾
		for l.ch != '\'' && l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
		if l.ch == '\'' {
			l.readChar()
		}
	}
	tok.Literal = l.input[start:l.pos]
	tok.IntValue = int64(int8(value))
	return tok
}

// readEscape 解码一个转义序列，当前字符应为反斜杠
func (l *Lexer) readEscape() byte {
	pos := l.here()
	l.readChar() // 跳过反斜杠
	ch := l.ch
	l.readChar()
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'a':
		return 7
	case 'b':
		return 8
	case 'f':
		return 12
	case 'v':
		return 11
	case '0', '1', '2', '3', '4', '5', '6', '7':
		v := int(ch - '0')
		for i := 0; i < 2 && l.ch >= '0' && l.ch <= '7'; i++ {
			v = v*8 + int(l.ch-'0')
			l.readChar()
		}
		return byte(v)
	case 'x':
		v := 0
		seen := false
		for isHexDigit(l.ch) {
			v = v*16 + hexValue(l.ch)
			seen = true
			l.readChar()
		}
		if !seen && l.sink != nil {
			l.sink.Error(diag.CategoryLexical, pos, i18n.ErrBadEscape, "x")
		}
		return byte(v)
	case '\\':
		return '\\'
	case '\'':
		return '\''
	case '"':
		return '"'
	case '?':
		return '?'
	}
	if l.sink != nil {
		l.sink.Error(diag.CategoryLexical, pos, i18n.ErrBadEscape, string(ch))
	}
	return ch
}

// readLineComment 读取单行注释
func (l *Lexer) readLineComment() string {
	pos := l.pos
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readBlockComment 读取块注释
func (l *Lexer) readBlockComment() string {
	pos := l.pos
	start := l.here()
	l.readChar() // 跳过 /
	l.readChar() // 跳过 *
	for {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		if l.ch == 0 {
			if l.sink != nil {
				l.sink.Error(diag.CategoryLexical, start, i18n.ErrUntermComment)
			}
			break
		}
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// isLetter 判断是否为字母或下划线
func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

// isDigit 判断是否为数字
func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// isHexDigit 判断是否为十六进制数字
func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hexValue 十六进制字符的数值
func hexValue(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	default:
		return int(ch-'A') + 10
	}
}

// Tokenize 将输入字符串转换为 token 列表。
// 注释被跳过；列表总是以 EOF 结尾，任何输入都能完成。
func Tokenize(input string, sink *diag.Sink) []Token {
	l := New(input, sink)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TOKEN_COMMENT {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Type == TOKEN_EOF {
			break
		}
	}
	return tokens
}
