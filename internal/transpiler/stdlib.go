package transpiler

import "strings"

// helperCalls 标准库函数到运行时辅助函数的映射
var helperCalls = map[string]string{
	"strlen":  "_strlen",
	"strcpy":  "_strcpy",
	"strncpy": "_strncpy",
	"strcat":  "_strcat",
	"strcmp":  "_strcmp",
	"strncmp": "_strncmp",
	"strchr":  "_strchr",
	"getchar": "_getchar",
	"putchar": "_putchar",
	"puts":    "_puts",
	"isdigit": "_isdigit",
	"isalpha": "_isalpha",
	"isalnum": "_isalnum",
	"isspace": "_isspace",
	"isupper": "_isupper",
	"islower": "_islower",
	"toupper": "_toupper",
	"tolower": "_tolower",
	"atoi":    "_atoi",
	"atof":    "_atof",
	"abs":     "_abs",
	"rand":    "_rand",
	"srand":   "_srand",
	"memset":  "_memset",
	"memcpy":  "_memcpy",
	"memcmp":  "_memcmp",
}

// mathCalls 直接落到 math 包的函数
var mathCalls = map[string]string{
	"sqrt":  "math.Sqrt",
	"pow":   "math.Pow",
	"fabs":  "math.Abs",
	"floor": "math.Floor",
	"ceil":  "math.Ceil",
	"sin":   "math.Sin",
	"cos":   "math.Cos",
	"exp":   "math.Exp",
	"log":   "math.Log",
	"fmod":  "math.Mod",
}

// 标准库映射额外需要的辅助函数
var stdlibHelpers = map[string]helper{
	"_puts": {
		imports: []string{"fmt"},
		deps:    []string{"_gostr"},
		src: `func _puts(b []byte) int32 {
	fmt.Println(_gostr(b))
	return 0
}`,
	},
	"_sprintf": {
		src: `func _sprintf(dst []byte, s string) int32 {
	n := copy(dst, s)
	if n < len(dst) {
		dst[n] = 0
	}
	return int32(n)
}`,
	},
	"_scanf": {
		imports: []string{"fmt"},
		src: `func _scanf(format string, args ...any) int32 {
	n, _ := fmt.Scanf(format, args...)
	return int32(n)
}`,
	},
	"_atof": {
		imports: []string{"strconv", "strings"},
		deps:    []string{"_gostr"},
		src: `func _atof(b []byte) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(_gostr(b)), 64)
	return f
}`,
	},
	"_memset": {
		src: `func _memset(b []byte, c int32, n int64) []byte {
	for i := int64(0); i < n && i < int64(len(b)); i++ {
		b[i] = byte(c)
	}
	return b
}`,
	},
	"_memcpy": {
		src: `func _memcpy(dst, src []byte, n int64) []byte {
	copy(dst[:n], src[:n])
	return dst
}`,
	},
	"_memcmp": {
		src: `func _memcmp(a, b []byte, n int64) int32 {
	for i := int64(0); i < n; i++ {
		if a[i] != b[i] {
			return int32(a[i]) - int32(b[i])
		}
	}
	return 0
}`,
	},
}

func init() {
	for name, h := range stdlibHelpers {
		helpers[name] = h
	}
}

// translateFormat 把 C 的 printf 格式串改写成 Go 能接受的形式：
// 去掉长度修饰符，%u/%i 统一成 %d。
func translateFormat(f string) string {
	var sb strings.Builder
	i := 0
	for i < len(f) {
		c := f[i]
		if c != '%' {
			sb.WriteByte(c)
			i++
			continue
		}
		sb.WriteByte('%')
		i++
		if i < len(f) && f[i] == '%' {
			sb.WriteByte('%')
			i++
			continue
		}
		// 标志、宽度、精度原样保留
		for i < len(f) && strings.IndexByte("-+ #0123456789.*", f[i]) >= 0 {
			sb.WriteByte(f[i])
			i++
		}
		// 长度修饰符丢弃
		for i < len(f) && strings.IndexByte("hlLqjzt", f[i]) >= 0 {
			i++
		}
		if i < len(f) {
			switch f[i] {
			case 'u', 'i':
				sb.WriteByte('d')
			default:
				sb.WriteByte(f[i])
			}
			i++
		}
	}
	return sb.String()
}

// formatVerbs 格式串里的转换说明符序列（跳过 %%）
func formatVerbs(f string) []byte {
	var verbs []byte
	i := 0
	for i < len(f) {
		if f[i] != '%' {
			i++
			continue
		}
		i++
		if i < len(f) && f[i] == '%' {
			i++
			continue
		}
		for i < len(f) && strings.IndexByte("-+ #0123456789.*hlLqjzt", f[i]) >= 0 {
			i++
		}
		if i < len(f) {
			verbs = append(verbs, f[i])
			i++
		}
	}
	return verbs
}
