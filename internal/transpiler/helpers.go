package transpiler

import "sort"

// helper 按需注入输出文件的运行时辅助函数
type helper struct {
	imports []string
	deps    []string
	src     string
}

// helpers C 语义在 Go 里的运行时支撑。只有被引用的才会出现在
// 生成文件里，顺序固定以保证输出稳定。
var helpers = map[string]helper{
	"_b2i": {
		src: `// _b2i 布尔转 C 的 0/1
func _b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}`,
	},
	"_cstr": {
		src: `// _cstr 字符串字面量转带 NUL 结尾的字节切片
func _cstr(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}`,
	},
	"_gostr": {
		src: `// _gostr 取字节切片里 NUL 之前的部分
func _gostr(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}`,
	},
	"_strlen": {
		src: `func _strlen(b []byte) int64 {
	var n int64
	for n < int64(len(b)) && b[n] != 0 {
		n++
	}
	return n
}`,
	},
	"_strcpy": {
		deps: []string{"_strlen"},
		src: `func _strcpy(dst, src []byte) []byte {
	n := copy(dst, src[:_strlen(src)+1])
	_ = n
	return dst
}`,
	},
	"_strncpy": {
		deps: []string{"_strlen"},
		src: `func _strncpy(dst, src []byte, n int64) []byte {
	i := int64(0)
	for ; i < n && i < _strlen(src); i++ {
		dst[i] = src[i]
	}
	for ; i < n; i++ {
		dst[i] = 0
	}
	return dst
}`,
	},
	"_strcat": {
		deps: []string{"_strlen"},
		src: `func _strcat(dst, src []byte) []byte {
	d := _strlen(dst)
	s := _strlen(src)
	copy(dst[d:], src[:s+1])
	return dst
}`,
	},
	"_strcmp": {
		src: `func _strcmp(a, b []byte) int32 {
	i := 0
	for {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if ca != cb {
			return int32(ca) - int32(cb)
		}
		if ca == 0 {
			return 0
		}
		i++
	}
}`,
	},
	"_strncmp": {
		src: `func _strncmp(a, b []byte, n int64) int32 {
	for i := int64(0); i < n; i++ {
		var ca, cb byte
		if i < int64(len(a)) {
			ca = a[i]
		}
		if i < int64(len(b)) {
			cb = b[i]
		}
		if ca != cb {
			return int32(ca) - int32(cb)
		}
		if ca == 0 {
			return 0
		}
	}
	return 0
}`,
	},
	"_strchr": {
		src: `func _strchr(b []byte, c int32) []byte {
	for i := 0; i < len(b); i++ {
		if int32(b[i]) == c {
			return b[i:]
		}
		if b[i] == 0 {
			break
		}
	}
	return nil
}`,
	},
	"_getchar": {
		imports: []string{"bufio", "os"},
		src: `var _stdin = bufio.NewReader(os.Stdin)

// _getchar 读一个字节，文件结束返回 -1
func _getchar() int32 {
	c, err := _stdin.ReadByte()
	if err != nil {
		return -1
	}
	return int32(c)
}`,
	},
	"_putchar": {
		imports: []string{"os"},
		src: `func _putchar(c int32) int32 {
	os.Stdout.Write([]byte{byte(c)})
	return c
}`,
	},
	"_isdigit": {
		src: `func _isdigit(c int32) int32 {
	if c >= '0' && c <= '9' {
		return 1
	}
	return 0
}`,
	},
	"_isalpha": {
		src: `func _isalpha(c int32) int32 {
	if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return 1
	}
	return 0
}`,
	},
	"_isalnum": {
		deps: []string{"_isdigit", "_isalpha"},
		src: `func _isalnum(c int32) int32 {
	if _isdigit(c) != 0 || _isalpha(c) != 0 {
		return 1
	}
	return 0
}`,
	},
	"_isspace": {
		src: `func _isspace(c int32) int32 {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return 1
	}
	return 0
}`,
	},
	"_isupper": {
		src: `func _isupper(c int32) int32 {
	if c >= 'A' && c <= 'Z' {
		return 1
	}
	return 0
}`,
	},
	"_islower": {
		src: `func _islower(c int32) int32 {
	if c >= 'a' && c <= 'z' {
		return 1
	}
	return 0
}`,
	},
	"_toupper": {
		src: `func _toupper(c int32) int32 {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}`,
	},
	"_tolower": {
		src: `func _tolower(c int32) int32 {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}`,
	},
	"_atoi": {
		src: `func _atoi(b []byte) int32 {
	i, n, sign := 0, int32(0), int32(1)
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n') {
		i++
	}
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		if b[i] == '-' {
			sign = -1
		}
		i++
	}
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		n = n*10 + int32(b[i]-'0')
		i++
	}
	return sign * n
}`,
	},
	"_abs": {
		src: `func _abs(n int32) int32 {
	if n < 0 {
		return -n
	}
	return n
}`,
	},
	"_rand": {
		src: `var _randState uint64 = 1

// _rand 和 C 库同款的线性同余序列
func _rand() int32 {
	_randState = _randState*1103515245 + 12345
	return int32(_randState / 65536 % 32768)
}

func _srand(seed uint32) {
	_randState = uint64(seed)
}`,
	},
}

// need 标记一个辅助函数被用到，顺带拉入它的依赖
func (g *CodeGen) need(name string) {
	if g.usedHelpers[name] {
		return
	}
	h, ok := helpers[name]
	if !ok {
		return
	}
	g.usedHelpers[name] = true
	for _, imp := range h.imports {
		g.goImports[imp] = true
	}
	for _, dep := range h.deps {
		g.need(dep)
	}
}

// emitHelpers 输出用到的辅助函数，按名字排序保证稳定
func (g *CodeGen) emitHelpers() {
	var names []string
	for name := range g.usedHelpers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g.writeLine("")
		for _, line := range splitLines(helpers[name].src) {
			g.writeLine(line)
		}
	}
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
