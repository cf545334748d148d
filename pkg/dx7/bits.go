package dx7

// ExtractBits returns length bits of b starting at bit start (0 is the least
// significant bit).
func ExtractBits(b byte, start, length uint) byte {
	return (b >> start) & mask(length)
}

// SetBits returns b with length bits starting at bit start replaced by the
// low bits of v. Bits of v beyond length are discarded.
func SetBits(b byte, start, length uint, v byte) byte {
	m := mask(length) << start
	return (b &^ m) | ((v << start) & m)
}

func mask(length uint) byte {
	if length >= 8 {
		return 0xFF
	}
	return byte(1)<<length - 1
}

// bitField places one unpacked byte into a bit range of a packed byte.
type bitField struct {
	name     string
	unpacked int
	packed   int
	start    uint
	length   uint
}

// layout is a declarative description of a packed format. Every unpacked byte
// of the entity appears in exactly one field.
type layout []bitField

// shifted returns a copy of l with the offsets moved by the given bases, so a
// sub-layout can be embedded into a larger one.
func (l layout) shifted(unpackedBase, packedBase int) layout {
	out := make(layout, len(l))
	for i, f := range l {
		f.unpacked += unpackedBase
		f.packed += packedBase
		out[i] = f
	}
	return out
}

func (l layout) pack(src, dst []byte) {
	for _, f := range l {
		dst[f.packed] = SetBits(dst[f.packed], f.start, f.length, src[f.unpacked])
	}
}

func (l layout) unpack(src, dst []byte) {
	for _, f := range l {
		dst[f.unpacked] = ExtractBits(src[f.packed], f.start, f.length)
	}
}

// dataBytes describes count consecutive bytes that are copied unchanged.
func dataBytes(name string, unpacked, packed, count int) layout {
	l := make(layout, count)
	for i := range count {
		l[i] = bitField{name: name, unpacked: unpacked + i, packed: packed + i, start: 0, length: 7}
	}
	return l
}

func concat(parts ...layout) layout {
	var out layout
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
