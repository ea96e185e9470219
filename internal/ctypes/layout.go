package ctypes

// Sizeof 类型的字节大小。未定类型返回 0。
func Sizeof(t Type) int64 {
	switch u := Unqual(t).(type) {
	case *Void:
		return 1
	case *Int:
		return int64(u.Width / 8)
	case *Float:
		return int64(u.Width / 8)
	case *Pointer:
		return 8
	case *Array:
		if u.Len < 0 {
			return 0
		}
		return u.Len * Sizeof(u.Elem)
	case *Enum:
		return 4
	case *Struct:
		LayoutStruct(u)
		return u.Size
	case *Union:
		LayoutUnion(u)
		return u.Size
	}
	return 0
}

// Alignof 类型的对齐
func Alignof(t Type) int64 {
	switch u := Unqual(t).(type) {
	case *Array:
		return Alignof(u.Elem)
	case *Struct:
		LayoutStruct(u)
		return u.Align
	case *Union:
		LayoutUnion(u)
		return u.Align
	}
	if s := Sizeof(t); s > 0 {
		return s
	}
	return 1
}

func alignTo(n, align int64) int64 {
	if align <= 0 {
		return n
	}
	return (n + align - 1) / align * align
}

// LayoutStruct 计算结构体布局：字段字节偏移及位域的单元和移位量。
// 位域按声明顺序从存储单元的最高位往最低位填；同一基类型且
// 剩余位数够用时共享存储单元，放不下或类型变化时开新单元。
// 宽度为 0 的无名位域强制结束当前单元。布局结果幂等。
func LayoutStruct(s *Struct) {
	if s.LaidOut || !s.Complete {
		return
	}
	s.LaidOut = true

	var offset, maxAlign int64 = 0, 1
	unit := -1            // 当前位域单元序号
	var unitOffset int64  // 当前单元的字节偏移
	var unitType Type     // 当前单元的基类型
	unitBits, usedBits := 0, 0

	closeUnit := func() {
		unitType = nil
		unitBits, usedBits = 0, 0
	}

	for _, f := range s.Fields {
		if f.BitWidth >= 0 {
			base := Unqual(f.Type)
			width := int(Sizeof(base)) * 8
			if f.BitWidth == 0 {
				closeUnit()
				continue
			}
			if unitType == nil || !Equal(unitType, base) || usedBits+f.BitWidth > unitBits {
				// 开新存储单元
				align := Alignof(base)
				if align > maxAlign {
					maxAlign = align
				}
				offset = alignTo(offset, align)
				unit++
				unitOffset = offset
				unitType = base
				unitBits = width
				usedBits = 0
				offset += Sizeof(base)
			}
			f.Offset = unitOffset
			f.Unit = unit
			f.BitShift = unitBits - usedBits - f.BitWidth
			usedBits += f.BitWidth
			continue
		}

		closeUnit()
		align := Alignof(f.Type)
		if align > maxAlign {
			maxAlign = align
		}
		offset = alignTo(offset, align)
		f.Offset = offset
		f.Unit = -1
		offset += Sizeof(f.Type)
	}

	s.Align = maxAlign
	s.Size = alignTo(offset, maxAlign)
	if s.Size == 0 {
		s.Size = 1
	}
}

// LayoutUnion 计算联合体布局：所有字段偏移为 0，大小取最大字段。
// 位域字段各占一个以自身基类型为单元的槽，移位量按 MSB 优先。
func LayoutUnion(u *Union) {
	if u.LaidOut || !u.Complete {
		return
	}
	u.LaidOut = true

	var maxSize, maxAlign int64 = 0, 1
	for i, f := range u.Fields {
		f.Offset = 0
		f.Unit = i
		size := Sizeof(f.Type)
		align := Alignof(f.Type)
		if f.BitWidth > 0 {
			f.BitShift = int(size)*8 - f.BitWidth
		}
		if size > maxSize {
			maxSize = size
		}
		if align > maxAlign {
			maxAlign = align
		}
	}

	u.Align = maxAlign
	u.Size = alignTo(maxSize, maxAlign)
	if u.Size == 0 {
		u.Size = 1
	}
}
