package gbwt

import "testing"

func TestPackedVector(t *testing.T) {
	tests := []struct {
		name   string
		width  uint8
		values []uint64
	}{
		{
			"single bit",
			1,
			[]uint64{1, 0, 1, 1, 0, 0, 1},
		},
		{
			"crosses word boundary",
			13,
			[]uint64{0, 1, 4095, 8191, 17, 4242},
		},
		{
			"full width",
			64,
			[]uint64{0, 1, ^uint64(0), 1 << 63, 424242424242},
		},
		{
			"many values",
			7,
			func() []uint64 {
				vs := make([]uint64, 1000)
				for i := range vs {
					vs[i] = uint64(i % 128)
				}
				return vs
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewPackedVector(tt.width)
			for _, value := range tt.values {
				v.Append(value)
			}
			if v.Len() != uint64(len(tt.values)) {
				t.Fatalf("Len() = %d, want %d", v.Len(), len(tt.values))
			}
			for i, want := range tt.values {
				if got := v.Get(uint64(i)); got != want {
					t.Errorf("Get(%d) = %d, want %d", i, got, want)
				}
			}
		})
	}
}

func TestPackedVectorTruncates(t *testing.T) {
	v := NewPackedVector(4)
	v.Append(0x1F) // five bits
	if got := v.Get(0); got != 0xF {
		t.Errorf("Get(0) = %d, want %d", got, 0xF)
	}
}
