package mrp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"iter"
)

const (
	vectorHeaderLen   = 2
	endMarkLen        = 2
	leaveAllShift     = 13
	numberOfValuesMax = 1<<leaveAllShift - 1
)

// VectorHeader is the 16-bit LeaveAllEvent / NumberOfValues word.
type VectorHeader struct {
	LeaveAll       bool
	NumberOfValues uint16
}

// ParseVectorHeader splits a raw header word. LeaveAllEvent occupies the
// top three bits; any non-zero value is a LeaveAll.
func ParseVectorHeader(raw uint16) VectorHeader {
	return VectorHeader{
		LeaveAll:       raw>>leaveAllShift != 0,
		NumberOfValues: raw & numberOfValuesMax,
	}
}

// Uint16 encodes h back to its wire word.
func (h VectorHeader) Uint16() uint16 {
	v := h.NumberOfValues & numberOfValuesMax
	if h.LeaveAll {
		v |= 1 << leaveAllShift
	}
	return v
}

// VectorAttribute is one decoded declaration batch.
type VectorAttribute struct {
	AttributeType uint8
	Header        VectorHeader
	FirstValue    []byte
	// Codes holds NumberOfValues primary packed codes.
	Codes []uint8
	// Declarations holds NumberOfValues four-packed codes, or nil.
	Declarations []uint8

	spec AttributeSpec
}

// Occurrence is one position of a VectorAttribute.
type Occurrence struct {
	Position    int
	Kind        EventKind
	Value       []byte
	Declaration uint8
}

// vectorLen returns the encoded size of a vector with header h.
func vectorLen(h VectorHeader, spec AttributeSpec) int {
	n := int(h.NumberOfValues)
	size := vectorHeaderLen + spec.FirstValueLen + PackedLen(n, spec.Packing)
	if spec.FourPacked {
		size += PackedLen(n, FourPacked)
	}
	return size
}

// DecodeVectorAttribute decodes one VectorAttribute from the front of buf
// and returns it with the number of bytes consumed.
func DecodeVectorAttribute(buf []byte, spec AttributeSpec) (VectorAttribute, int, error) {
	if len(buf) < vectorHeaderLen {
		return VectorAttribute{}, 0, ErrTruncatedVectorAttribute
	}
	h := ParseVectorHeader(binary.BigEndian.Uint16(buf))
	size := vectorLen(h, spec)
	if len(buf) < size {
		return VectorAttribute{}, 0, ErrTruncatedVectorAttribute
	}
	va, err := decodeVector(buf[:size], h, spec)
	if err != nil {
		return VectorAttribute{}, 0, err
	}
	return va, size, nil
}

// decodeVector expects buf to be exactly vectorLen(h, spec) bytes.
func decodeVector(buf []byte, h VectorHeader, spec AttributeSpec) (VectorAttribute, error) {
	n := int(h.NumberOfValues)
	off := vectorHeaderLen
	first := buf[off : off+spec.FirstValueLen]
	off += spec.FirstValueLen

	packedLen := PackedLen(n, spec.Packing)
	codes, err := UnpackEvents(buf[off:off+packedLen], n, spec.Packing)
	if err != nil {
		return VectorAttribute{}, err
	}
	off += packedLen
	for i, code := range codes {
		if _, ok := spec.event(code); !ok {
			return VectorAttribute{}, fmt.Errorf("%w: code %d at position %d", ErrInvalidPackedEvent, code, i)
		}
	}

	var decls []uint8
	if spec.FourPacked {
		decls, err = UnpackEvents(buf[off:], n, FourPacked)
		if err != nil {
			return VectorAttribute{}, err
		}
	}

	return VectorAttribute{
		AttributeType: spec.Type,
		Header:        h,
		FirstValue:    first,
		Codes:         codes,
		Declarations:  decls,
		spec:          spec,
	}, nil
}

// Occurrences yields every position of the vector in order, Ignore
// positions included. Each yielded Value is a fresh slice.
func (va VectorAttribute) Occurrences() iter.Seq[Occurrence] {
	return func(yield func(Occurrence) bool) {
		value := bytes.Clone(va.FirstValue)
		for i, code := range va.Codes {
			if i > 0 {
				value = bytes.Clone(value)
				if va.spec.Increment != nil {
					va.spec.Increment(value)
				}
			}
			kind, _ := va.spec.event(code)
			occ := Occurrence{Position: i, Kind: kind, Value: value}
			if va.Declarations != nil {
				occ.Declaration = va.Declarations[i]
				if occ.Declaration == 0 {
					occ.Kind = EventIgnore
				}
			}
			if !yield(occ) {
				return
			}
		}
	}
}
