package mrp

import "fmt"

// PackingMode is the number of event codes carried by one packed byte.
type PackingMode uint8

const (
	ThreePacked PackingMode = 3
	FourPacked  PackingMode = 4
)

// Radix returns the per-code base for the mode.
func (m PackingMode) Radix() int {
	switch m {
	case ThreePacked:
		return 6
	case FourPacked:
		return 4
	default:
		return 0
	}
}

// Valid reports whether m is a known packing mode.
func (m PackingMode) Valid() bool {
	return m == ThreePacked || m == FourPacked
}

func (m PackingMode) String() string {
	switch m {
	case ThreePacked:
		return "three-packed"
	case FourPacked:
		return "four-packed"
	default:
		return fmt.Sprintf("packing(%d)", uint8(m))
	}
}

// maxByte is the largest byte value that encodes a full set of codes.
func (m PackingMode) maxByte() int {
	r := m.Radix()
	n := 1
	for i := 0; i < int(m); i++ {
		n *= r
	}
	return n - 1
}

// PackedLen returns the number of bytes needed for n codes.
func PackedLen(n int, mode PackingMode) int {
	if n <= 0 || !mode.Valid() {
		return 0
	}
	per := int(mode)
	return (n + per - 1) / per
}

// UnpackByte splits b into its codes, most significant sub-field first.
// Only the first int(mode) entries of the result are meaningful.
func UnpackByte(b byte, mode PackingMode) ([4]uint8, error) {
	var out [4]uint8
	if !mode.Valid() {
		return out, fmt.Errorf("%w: unknown packing mode %d", ErrInvalidPackedEvent, mode)
	}
	v := int(b)
	if v > mode.maxByte() {
		return out, fmt.Errorf("%w: byte 0x%02x exceeds %s range", ErrInvalidPackedEvent, b, mode)
	}
	r := mode.Radix()
	for i := int(mode) - 1; i >= 0; i-- {
		out[i] = uint8(v % r)
		v /= r
	}
	return out, nil
}

// UnpackEvents decodes exactly n codes from buf. Unused sub-fields of the
// final byte are dropped.
func UnpackEvents(buf []byte, n int, mode PackingMode) ([]uint8, error) {
	need := PackedLen(n, mode)
	if len(buf) < need {
		return nil, ErrTruncatedVectorAttribute
	}
	codes := make([]uint8, 0, n)
	for _, b := range buf[:need] {
		sub, err := UnpackByte(b, mode)
		if err != nil {
			return nil, err
		}
		for i := 0; i < int(mode) && len(codes) < n; i++ {
			codes = append(codes, sub[i])
		}
	}
	return codes, nil
}

// PackEvents is the inverse of UnpackEvents. Trailing sub-fields of the last
// byte are zero.
func PackEvents(codes []uint8, mode PackingMode) ([]byte, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown packing mode %d", ErrInvalidPackedEvent, mode)
	}
	r := mode.Radix()
	per := int(mode)
	out := make([]byte, PackedLen(len(codes), mode))
	for i := range out {
		v := 0
		for j := 0; j < per; j++ {
			code := 0
			if idx := i*per + j; idx < len(codes) {
				code = int(codes[idx])
			}
			if code >= r {
				return nil, fmt.Errorf("%w: code %d out of range for %s", ErrInvalidPackedEvent, code, mode)
			}
			v = v*r + code
		}
		out[i] = byte(v)
	}
	return out, nil
}
