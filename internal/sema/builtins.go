package sema

import (
	"github.com/tangzhangming/cango/internal/ctypes"
	"github.com/tangzhangming/cango/internal/symbol"
)

// builtinSig C 标准库函数签名
type builtinSig struct {
	name     string
	ret      ctypes.Type
	params   []ctypes.Type
	variadic bool
}

func charPtr() ctypes.Type { return ctypes.PointerTo(ctypes.CChar()) }
func voidPtr() ctypes.Type { return ctypes.PointerTo(ctypes.CVoid()) }

// builtins 预置的标准库签名。翻译单元没有头文件，
// 这些名字直接可见，调用时按表内签名检查。
var builtins = []builtinSig{
	{"printf", ctypes.CInt(), []ctypes.Type{charPtr()}, true},
	{"fprintf", ctypes.CInt(), []ctypes.Type{voidPtr(), charPtr()}, true},
	{"sprintf", ctypes.CInt(), []ctypes.Type{charPtr(), charPtr()}, true},
	{"scanf", ctypes.CInt(), []ctypes.Type{charPtr()}, true},
	{"sscanf", ctypes.CInt(), []ctypes.Type{charPtr(), charPtr()}, true},
	{"putchar", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"getchar", ctypes.CInt(), nil, false},
	{"puts", ctypes.CInt(), []ctypes.Type{charPtr()}, false},
	{"gets", charPtr(), []ctypes.Type{charPtr()}, false},

	{"strlen", ctypes.CLong(), []ctypes.Type{charPtr()}, false},
	{"strcpy", charPtr(), []ctypes.Type{charPtr(), charPtr()}, false},
	{"strncpy", charPtr(), []ctypes.Type{charPtr(), charPtr(), ctypes.CLong()}, false},
	{"strcat", charPtr(), []ctypes.Type{charPtr(), charPtr()}, false},
	{"strcmp", ctypes.CInt(), []ctypes.Type{charPtr(), charPtr()}, false},
	{"strncmp", ctypes.CInt(), []ctypes.Type{charPtr(), charPtr(), ctypes.CLong()}, false},
	{"strchr", charPtr(), []ctypes.Type{charPtr(), ctypes.CInt()}, false},
	{"strrchr", charPtr(), []ctypes.Type{charPtr(), ctypes.CInt()}, false},

	{"memset", charPtr(), []ctypes.Type{charPtr(), ctypes.CInt(), ctypes.CLong()}, false},
	{"memcpy", charPtr(), []ctypes.Type{charPtr(), charPtr(), ctypes.CLong()}, false},
	{"memcmp", ctypes.CInt(), []ctypes.Type{charPtr(), charPtr(), ctypes.CLong()}, false},

	{"malloc", voidPtr(), []ctypes.Type{ctypes.CLong()}, false},
	{"calloc", voidPtr(), []ctypes.Type{ctypes.CLong(), ctypes.CLong()}, false},
	{"realloc", voidPtr(), []ctypes.Type{voidPtr(), ctypes.CLong()}, false},
	{"free", ctypes.CVoid(), []ctypes.Type{voidPtr()}, false},

	{"abs", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"labs", ctypes.CLong(), []ctypes.Type{ctypes.CLong()}, false},
	{"atoi", ctypes.CInt(), []ctypes.Type{charPtr()}, false},
	{"atol", ctypes.CLong(), []ctypes.Type{charPtr()}, false},
	{"atof", ctypes.CDouble(), []ctypes.Type{charPtr()}, false},
	{"rand", ctypes.CInt(), nil, false},
	{"srand", ctypes.CVoid(), []ctypes.Type{ctypes.CUInt()}, false},
	{"exit", ctypes.CVoid(), []ctypes.Type{ctypes.CInt()}, false},
	{"qsort", ctypes.CVoid(), []ctypes.Type{voidPtr(), ctypes.CULong(), ctypes.CULong(), voidPtr()}, false},

	{"isdigit", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"isalpha", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"isalnum", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"isspace", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"isupper", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"islower", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"toupper", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},
	{"tolower", ctypes.CInt(), []ctypes.Type{ctypes.CInt()}, false},

	{"sqrt", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"pow", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble(), ctypes.CDouble()}, false},
	{"fabs", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"floor", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"ceil", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"sin", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"cos", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"exp", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"log", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble()}, false},
	{"fmod", ctypes.CDouble(), []ctypes.Type{ctypes.CDouble(), ctypes.CDouble()}, false},
}

// builtinScope 构造预置标准库声明所在的最外层作用域
func builtinScope() *symbol.Scope {
	s := symbol.NewScope(symbol.ScopeFile, nil)
	for _, b := range builtins {
		fn := &ctypes.Func{Return: b.ret, Variadic: b.variadic}
		for _, pt := range b.params {
			fn.Params = append(fn.Params, ctypes.Param{Type: pt})
		}
		s.Declare(&symbol.Declaration{
			Name:    b.name,
			Type:    fn,
			IsFunc:  true,
			Defined: true,
		})
	}
	// 标准流对象，fprintf 等函数的第一个参数
	for _, name := range []string{"stdin", "stdout", "stderr"} {
		s.Declare(&symbol.Declaration{
			Name:    name,
			Type:    voidPtr(),
			Defined: true,
		})
	}
	return s
}

// IsBuiltin 名字是否为预置标准库函数
func IsBuiltin(name string) bool {
	for _, b := range builtins {
		if b.name == name {
			return true
		}
	}
	return false
}
