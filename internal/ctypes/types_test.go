package ctypes

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{CChar(), "char"},
		{CUChar(), "unsigned char"},
		{CInt(), "int"},
		{CUInt(), "unsigned int"},
		{CLong(), "long"},
		{CLongLong(), "long long"},
		{CDouble(), "double"},
		{PointerTo(CChar()), "char *"},
		{ArrayOf(CInt(), 4), "int [4]"},
		{WithConst(CInt()), "const int"},
		{&Struct{Tag: "node"}, "struct node"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRenderDeclarator(t *testing.T) {
	cmp := &Func{
		Return: CInt(),
		Params: []Param{{Type: PointerTo(CVoid())}, {Type: PointerTo(CVoid())}},
	}
	tests := []struct {
		typ  Type
		name string
		want string
	}{
		{CInt(), "x", "int x"},
		{PointerTo(CInt()), "p", "int *p"},
		{ArrayOf(PointerTo(CChar()), 3), "argv", "char *argv[3]"},
		{ArrayOf(ArrayOf(CInt(), 3), 2), "m", "int m[2][3]"},
		{PointerTo(&Func{Return: CInt()}), "pf", "int (*pf)(void)"},
		{PointerTo(cmp), "cmp", "int (*cmp)(void *, void *)"},
		{ArrayOf(CInt(), -1), "a", "int a[]"},
	}
	for _, tt := range tests {
		if got := RenderDeclarator(tt.typ, tt.name); got != tt.want {
			t.Errorf("RenderDeclarator(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEqual(t *testing.T) {
	named := &Struct{Tag: "point", Complete: true}
	anon1 := &Struct{Complete: true}
	anon2 := &Struct{Complete: true}

	tests := []struct {
		a, b Type
		want bool
	}{
		{CInt(), CInt(), true},
		{CInt(), CUInt(), false},
		{CLong(), CLongLong(), true}, // 同宽度，拼写不同
		{WithConst(CInt()), CInt(), true},
		{PointerTo(CInt()), PointerTo(CInt()), true},
		{PointerTo(CInt()), PointerTo(CChar()), false},
		{ArrayOf(CInt(), 4), ArrayOf(CInt(), 4), true},
		{ArrayOf(CInt(), 4), ArrayOf(CInt(), 8), false},
		{ArrayOf(CInt(), -1), ArrayOf(CInt(), 8), true}, // 未定长度兼容
		{named, &Struct{Tag: "point"}, true},
		{anon1, anon1, true},
		{anon1, anon2, false},
	}
	for i, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("case %d: Equal(%s, %s) = %v, want %v", i, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestDecay(t *testing.T) {
	arr := ArrayOf(CInt(), 4)
	d := Decay(arr)
	if !Equal(d, PointerTo(CInt())) {
		t.Errorf("Decay(int[4]) = %s, want int *", d)
	}
	fn := &Func{Return: CVoid()}
	if !IsPointer(Decay(fn)) {
		t.Errorf("Decay(func) should be a pointer")
	}
	if !Equal(Decay(CInt()), CInt()) {
		t.Errorf("Decay(int) should be int")
	}
}

func TestQualifiers(t *testing.T) {
	ct := WithConst(CInt())
	if !IsConst(ct) {
		t.Error("IsConst(const int) = false")
	}
	if IsConst(CInt()) {
		t.Error("IsConst(int) = true")
	}
	if !Equal(Unqual(ct), CInt()) {
		t.Errorf("Unqual(const int) = %s", Unqual(ct))
	}
}
