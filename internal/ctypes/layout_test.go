package ctypes

import "testing"

func field(name string, t Type) *Field {
	return &Field{Name: name, Type: t, BitWidth: -1}
}

func bitField(name string, t Type, width int) *Field {
	return &Field{Name: name, Type: t, BitWidth: width}
}

func TestSizeof(t *testing.T) {
	tests := []struct {
		typ  Type
		want int64
	}{
		{CChar(), 1},
		{CShort(), 2},
		{CInt(), 4},
		{CLong(), 8},
		{CFloat(), 4},
		{CDouble(), 8},
		{PointerTo(CInt()), 8},
		{ArrayOf(CInt(), 10), 40},
		{ArrayOf(CChar(), -1), 0},
		{&Enum{Tag: "color", Complete: true}, 4},
	}
	for _, tt := range tests {
		if got := Sizeof(tt.typ); got != tt.want {
			t.Errorf("Sizeof(%s) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestStructLayout(t *testing.T) {
	s := &Struct{
		Tag: "mixed",
		Fields: []*Field{
			field("c", CChar()),
			field("n", CInt()),
			field("d", CDouble()),
		},
		Complete: true,
	}
	LayoutStruct(s)

	if s.Fields[0].Offset != 0 {
		t.Errorf("c offset = %d, want 0", s.Fields[0].Offset)
	}
	if s.Fields[1].Offset != 4 {
		t.Errorf("n offset = %d, want 4", s.Fields[1].Offset)
	}
	if s.Fields[2].Offset != 8 {
		t.Errorf("d offset = %d, want 8", s.Fields[2].Offset)
	}
	if s.Size != 16 {
		t.Errorf("size = %d, want 16", s.Size)
	}
	if s.Align != 8 {
		t.Errorf("align = %d, want 8", s.Align)
	}
}

func TestStructLayoutIdempotent(t *testing.T) {
	s := &Struct{
		Tag:      "p",
		Fields:   []*Field{field("x", CInt()), field("y", CInt())},
		Complete: true,
	}
	LayoutStruct(s)
	size, off := s.Size, s.Fields[1].Offset
	LayoutStruct(s)
	if s.Size != size || s.Fields[1].Offset != off {
		t.Errorf("layout changed on second run: size %d->%d, offset %d->%d",
			size, s.Size, off, s.Fields[1].Offset)
	}
}

func TestBitFieldPacking(t *testing.T) {
	// 位从存储单元高位往低位排
	s := &Struct{
		Tag: "flags",
		Fields: []*Field{
			bitField("a", CUInt(), 4),
			bitField("b", CUInt(), 4),
			field("n", CInt()),
		},
		Complete: true,
	}
	LayoutStruct(s)

	a, b, n := s.Fields[0], s.Fields[1], s.Fields[2]
	if a.Unit != 0 || b.Unit != 0 {
		t.Fatalf("a.Unit = %d, b.Unit = %d, want both 0", a.Unit, b.Unit)
	}
	if a.BitShift != 28 {
		t.Errorf("a.BitShift = %d, want 28", a.BitShift)
	}
	if b.BitShift != 24 {
		t.Errorf("b.BitShift = %d, want 24", b.BitShift)
	}
	if n.Offset != 4 {
		t.Errorf("n offset = %d, want 4", n.Offset)
	}
	if s.Size != 8 {
		t.Errorf("size = %d, want 8", s.Size)
	}
}

func TestBitFieldOverflowOpensNewUnit(t *testing.T) {
	s := &Struct{
		Tag: "wide",
		Fields: []*Field{
			bitField("a", CUInt(), 20),
			bitField("b", CUInt(), 20),
		},
		Complete: true,
	}
	LayoutStruct(s)

	if s.Fields[0].Unit != 0 || s.Fields[1].Unit != 1 {
		t.Errorf("units = %d, %d, want 0, 1", s.Fields[0].Unit, s.Fields[1].Unit)
	}
	if s.Fields[1].Offset != 4 {
		t.Errorf("b offset = %d, want 4", s.Fields[1].Offset)
	}
	if s.Size != 8 {
		t.Errorf("size = %d, want 8", s.Size)
	}
}

func TestZeroWidthBitFieldClosesUnit(t *testing.T) {
	s := &Struct{
		Tag: "split",
		Fields: []*Field{
			bitField("a", CUInt(), 4),
			bitField("", CUInt(), 0),
			bitField("b", CUInt(), 4),
		},
		Complete: true,
	}
	LayoutStruct(s)

	if s.Fields[0].Unit != 0 {
		t.Errorf("a.Unit = %d, want 0", s.Fields[0].Unit)
	}
	if s.Fields[2].Unit != 1 {
		t.Errorf("b.Unit = %d, want 1", s.Fields[2].Unit)
	}
	if s.Fields[2].BitShift != 28 {
		t.Errorf("b.BitShift = %d, want 28", s.Fields[2].BitShift)
	}
}

func TestUnionLayout(t *testing.T) {
	u := &Union{
		Tag: "value",
		Fields: []*Field{
			field("i", CInt()),
			field("d", CDouble()),
			field("buf", ArrayOf(CChar(), 6)),
		},
		Complete: true,
	}
	LayoutUnion(u)

	for i, f := range u.Fields {
		if f.Offset != 0 {
			t.Errorf("field %d offset = %d, want 0", i, f.Offset)
		}
	}
	if u.Size != 8 {
		t.Errorf("size = %d, want 8", u.Size)
	}
	if u.Align != 8 {
		t.Errorf("align = %d, want 8", u.Align)
	}
}

func TestEmptyStructHasSizeOne(t *testing.T) {
	s := &Struct{Tag: "empty", Complete: true}
	LayoutStruct(s)
	if s.Size != 1 {
		t.Errorf("size = %d, want 1", s.Size)
	}
}
