package lexer

import (
	"testing"

	"github.com/tangzhangming/cango/internal/diag"
)

func TestOperators(t *testing.T) {
	input := `= == + += ++ - -= -- -> < <= << <<= > >= >> >>= & && &= | || |= ^ ^= ! != ~ ? : ; , ... .`

	expected := []TokenType{
		TOKEN_ASSIGN, TOKEN_EQ,
		TOKEN_PLUS, TOKEN_PLUS_ASSIGN, TOKEN_INC,
		TOKEN_MINUS, TOKEN_MINUS_ASSIGN, TOKEN_DEC, TOKEN_ARROW,
		TOKEN_LT, TOKEN_LT_EQ, TOKEN_SHL, TOKEN_SHL_ASSIGN,
		TOKEN_GT, TOKEN_GT_EQ, TOKEN_SHR, TOKEN_SHR_ASSIGN,
		TOKEN_BIT_AND, TOKEN_AND, TOKEN_AND_ASSIGN,
		TOKEN_BIT_OR, TOKEN_OR, TOKEN_OR_ASSIGN,
		TOKEN_BIT_XOR, TOKEN_XOR_ASSIGN,
		TOKEN_NOT, TOKEN_NOT_EQ, TOKEN_BIT_NOT,
		TOKEN_QUESTION, TOKEN_COLON, TOKEN_SEMICOLON, TOKEN_COMMA,
		TOKEN_ELLIPSIS, TOKEN_DOT,
		TOKEN_EOF,
	}

	sink := diag.NewSink()
	tokens := Tokenize(input, sink)
	if sink.Count() != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Diagnostics())
	}
	if len(tokens) != len(expected) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Errorf("token %d (%q): type = %s, want %s",
				i, tokens[i].Literal, TokenTypeName(tokens[i].Type), TokenTypeName(want))
		}
	}
}

func TestKeywords(t *testing.T) {
	input := "int x; while (x) return;"
	sink := diag.NewSink()
	tokens := Tokenize(input, sink)

	expected := []TokenType{
		TOKEN_INT, TOKEN_IDENT, TOKEN_SEMICOLON,
		TOKEN_WHILE, TOKEN_LPAREN, TOKEN_IDENT, TOKEN_RPAREN,
		TOKEN_RETURN, TOKEN_SEMICOLON, TOKEN_EOF,
	}
	if len(tokens) != len(expected) {
		t.Fatalf("token count = %d, want %d", len(tokens), len(expected))
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Errorf("token %d: type = %s, want %s",
				i, TokenTypeName(tokens[i].Type), TokenTypeName(want))
		}
	}
}

func TestIntLiterals(t *testing.T) {
	tests := []struct {
		input    string
		value    int64
		unsigned bool
		longs    int
	}{
		{"0", 0, false, 0},
		{"42", 42, false, 0},
		{"0x1F", 31, false, 0},
		{"0xff", 255, false, 0},
		{"052", 42, false, 0},
		{"0b1010", 10, false, 0},
		{"42u", 42, true, 0},
		{"42L", 42, false, 1},
		{"42ULL", 42, true, 2},
		// 装不下 int 的十进制常量提升到 long
		{"2147483648", 2147483648, false, 1},
	}
	for _, tt := range tests {
		sink := diag.NewSink()
		tok := New(tt.input, sink).NextToken()
		if sink.Count() != 0 {
			t.Errorf("%q: unexpected diagnostics", tt.input)
		}
		if tok.Type != TOKEN_INT_LIT {
			t.Errorf("%q: type = %s, want INT", tt.input, TokenTypeName(tok.Type))
			continue
		}
		if tok.IntValue != tt.value {
			t.Errorf("%q: value = %d, want %d", tt.input, tok.IntValue, tt.value)
		}
		if tok.Unsigned != tt.unsigned {
			t.Errorf("%q: unsigned = %v, want %v", tt.input, tok.Unsigned, tt.unsigned)
		}
		if tok.Longs != tt.longs {
			t.Errorf("%q: longs = %d, want %d", tt.input, tok.Longs, tt.longs)
		}
	}
}

func TestIntLiteralOverflow(t *testing.T) {
	// 装不下 long long 的十六进制常量落到 unsigned long long
	sink := diag.NewSink()
	tok := New("0xFFFFFFFFFFFFFFFF", sink).NextToken()
	if sink.Count() != 0 {
		t.Errorf("hex literal: unexpected diagnostics: %v", sink.Diagnostics())
	}
	if !tok.Unsigned || tok.Longs != 2 {
		t.Errorf("hex literal: unsigned = %v, longs = %d, want unsigned long long",
			tok.Unsigned, tok.Longs)
	}

	// 十进制没有这条退路，必须报溢出
	for _, input := range []string{
		"18446744073709551615",
		"99999999999999999999",
	} {
		sink := diag.NewSink()
		tok := New(input, sink).NextToken()
		if tok.Type != TOKEN_INT_LIT {
			t.Errorf("%q: type = %s, want INT", input, TokenTypeName(tok.Type))
		}
		if sink.ErrorCount() != 1 {
			t.Errorf("%q: error count = %d, want 1", input, sink.ErrorCount())
		}
	}

	// long long 的最大值本身不溢出
	sink = diag.NewSink()
	tok = New("9223372036854775807", sink).NextToken()
	if sink.Count() != 0 {
		t.Errorf("max long long: unexpected diagnostics: %v", sink.Diagnostics())
	}
	if tok.IntValue != 9223372036854775807 || tok.Unsigned {
		t.Errorf("max long long: value = %d, unsigned = %v", tok.IntValue, tok.Unsigned)
	}
}

func TestFloatLiterals(t *testing.T) {
	tests := []struct {
		input   string
		value   float64
		float32 bool
	}{
		{"3.14", 3.14, false},
		{"1e3", 1000, false},
		{"2.5e-1", 0.25, false},
		{".5", 0.5, false},
		{"1.5f", 1.5, true},
	}
	for _, tt := range tests {
		sink := diag.NewSink()
		tok := New(tt.input, sink).NextToken()
		if tok.Type != TOKEN_FLOAT_LIT {
			t.Errorf("%q: type = %s, want FLOAT", tt.input, TokenTypeName(tok.Type))
			continue
		}
		if tok.FloatValue != tt.value {
			t.Errorf("%q: value = %g, want %g", tt.input, tok.FloatValue, tt.value)
		}
		if tok.Float32 != tt.float32 {
			t.Errorf("%q: float32 = %v, want %v", tt.input, tok.Float32, tt.float32)
		}
	}
}

func TestBadNumberSuffix(t *testing.T) {
	sink := diag.NewSink()
	tok := New("1.5u", sink).NextToken()
	if tok.Type != TOKEN_FLOAT_LIT {
		t.Fatalf("type = %s, want FLOAT", TokenTypeName(tok.Type))
	}
	if sink.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestStringEscapes(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"\x41\x42"`, "AB"},
		{`"\101"`, "A"},
		{`"\0"`, "\x00"},
		{`"\\"`, `\`},
		{`"\""`, `"`},
	}
	for _, tt := range tests {
		sink := diag.NewSink()
		tok := New(tt.input, sink).NextToken()
		if sink.Count() != 0 {
			t.Errorf("%s: unexpected diagnostics", tt.input)
		}
		if tok.Type != TOKEN_STRING_LIT {
			t.Errorf("%s: type = %s, want STRING", tt.input, TokenTypeName(tok.Type))
			continue
		}
		if tok.StrValue != tt.want {
			t.Errorf("%s: value = %q, want %q", tt.input, tok.StrValue, tt.want)
		}
	}
}

func TestCharLiterals(t *testing.T) {
	tests := []struct {
		input string
		value int64
	}{
		{`'A'`, 65},
		{`'\n'`, 10},
		{`'\0'`, 0},
		{`'\''`, 39},
		// char 有符号，0xff 回绕成 -1
		{`'\xff'`, -1},
	}
	for _, tt := range tests {
		sink := diag.NewSink()
		tok := New(tt.input, sink).NextToken()
		if sink.Count() != 0 {
			t.Errorf("%s: unexpected diagnostics", tt.input)
		}
		if tok.Type != TOKEN_CHAR_LIT {
			t.Errorf("%s: type = %s, want CHAR", tt.input, TokenTypeName(tok.Type))
			continue
		}
		if tok.IntValue != tt.value {
			t.Errorf("%s: value = %d, want %d", tt.input, tok.IntValue, tt.value)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	sink := diag.NewSink()
	tok := New("\"abc\nint", sink).NextToken()
	if tok.Type != TOKEN_STRING_LIT {
		t.Fatalf("type = %s, want STRING", TokenTypeName(tok.Type))
	}
	if sink.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestIllegalByte(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize("a @ b", sink)
	if len(tokens) != 4 {
		t.Fatalf("token count = %d, want 4", len(tokens))
	}
	if tokens[1].Type != TOKEN_ILLEGAL {
		t.Errorf("type = %s, want ILLEGAL", TokenTypeName(tokens[1].Type))
	}
	if sink.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestCommentsSkipped(t *testing.T) {
	input := "a // line\n/* block\nspanning */ b"
	sink := diag.NewSink()
	tokens := Tokenize(input, sink)
	if len(tokens) != 3 {
		t.Fatalf("token count = %d, want 3", len(tokens))
	}
	if tokens[0].Literal != "a" || tokens[1].Literal != "b" {
		t.Errorf("got %q %q, want a b", tokens[0].Literal, tokens[1].Literal)
	}
}

func TestUnterminatedComment(t *testing.T) {
	sink := diag.NewSink()
	Tokenize("a /* never closed", sink)
	if sink.ErrorCount() != 1 {
		t.Errorf("error count = %d, want 1", sink.ErrorCount())
	}
}

func TestPositions(t *testing.T) {
	input := "int x;\nx = 1;"
	sink := diag.NewSink()
	tokens := Tokenize(input, sink)

	// 第二行的 x
	x2 := tokens[3]
	if x2.Literal != "x" {
		t.Fatalf("token 3 = %q, want x", x2.Literal)
	}
	if x2.Line != 2 {
		t.Errorf("line = %d, want 2", x2.Line)
	}
	if x2.Column != 1 {
		t.Errorf("column = %d, want 1", x2.Column)
	}
	if x2.Offset != 7 {
		t.Errorf("offset = %d, want 7", x2.Offset)
	}
}

func TestStringConcatenationTokens(t *testing.T) {
	sink := diag.NewSink()
	tokens := Tokenize(`"ab" "cd"`, sink)
	if len(tokens) != 3 {
		t.Fatalf("token count = %d, want 3", len(tokens))
	}
	if tokens[0].StrValue != "ab" || tokens[1].StrValue != "cd" {
		t.Errorf("got %q %q", tokens[0].StrValue, tokens[1].StrValue)
	}
}
