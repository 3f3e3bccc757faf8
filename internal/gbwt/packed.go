package gbwt

// PackedVector is an append-only vector of fixed-width integers packed
// into 64-bit words. Values wider than the configured width are the
// caller's responsibility to reject.
type PackedVector struct {
	// Width is the number of bits per value, 1 to 64.
	Width uint8

	// N is the number of stored values.
	N uint64

	// Words is the bit-packed backing store.
	Words []uint64
}

// NewPackedVector returns an empty vector storing width-bit values.
func NewPackedVector(width uint8) *PackedVector {
	if width == 0 || width > 64 {
		width = 64
	}
	return &PackedVector{Width: width}
}

// Len returns the number of stored values.
func (v *PackedVector) Len() uint64 { return v.N }

// Append adds a value to the end of the vector. Bits above Width are
// discarded.
func (v *PackedVector) Append(value uint64) {
	width := uint64(v.Width)
	if width < 64 {
		value &= (uint64(1) << width) - 1
	}

	bit := v.N * width
	word := bit / 64
	offset := bit % 64
	for uint64(len(v.Words)) <= (bit+width-1)/64 {
		v.Words = append(v.Words, 0)
	}

	v.Words[word] |= value << offset
	if offset+width > 64 {
		v.Words[word+1] |= value >> (64 - offset)
	}
	v.N++
}

// Get returns the value at index i.
func (v *PackedVector) Get(i uint64) uint64 {
	width := uint64(v.Width)
	bit := i * width
	word := bit / 64
	offset := bit % 64

	value := v.Words[word] >> offset
	if offset+width > 64 {
		value |= v.Words[word+1] << (64 - offset)
	}
	if width < 64 {
		value &= (uint64(1) << width) - 1
	}
	return value
}
