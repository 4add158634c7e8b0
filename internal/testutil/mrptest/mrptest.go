// Package mrptest builds MRPDUs and Ethernet frames for decoder tests.
package mrptest

import (
	"encoding/binary"
	"net"

	"github.com/danmuck/mrpd/internal/mrp"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

const ethernetHeaderLen = 14

// SrcAddr is the station address used for built frames.
var SrcAddr = net.HardwareAddr{0x00, 0x1b, 0x21, 0x3a, 0x4c, 0x5e}

// EndMark returns a fresh two-byte EndMark.
func EndMark() []byte {
	return []byte{0x00, 0x00}
}

// Vector encodes a VectorAttribute whose NumberOfValues is len(events).
// decls, when non-nil, is appended as the FourPackedEvents stream.
func Vector(leaveAll bool, first []byte, events []uint8, decls []uint8) []byte {
	out := header(leaveAll, len(events))
	out = append(out, first...)
	out = append(out, must(mrp.PackEvents(events, mrp.ThreePacked))...)
	if decls != nil {
		out = append(out, must(mrp.PackEvents(decls, mrp.FourPacked))...)
	}
	return out
}

// RawVector encodes a header claiming n values followed by body verbatim.
func RawVector(leaveAll bool, n int, body ...[]byte) []byte {
	out := header(leaveAll, n)
	for _, b := range body {
		out = append(out, b...)
	}
	return out
}

// List concatenates vectors and terminates them with an EndMark.
func List(vectors ...[]byte) []byte {
	var out []byte
	for _, v := range vectors {
		out = append(out, v...)
	}
	return append(out, EndMark()...)
}

// Message encodes a Message whose AttributeListLength is len(list).
func Message(attrType, attrLen uint8, list []byte) []byte {
	return MessageWithListLength(attrType, attrLen, len(list), list)
}

// MessageWithListLength encodes a Message declaring listLen list bytes
// regardless of len(list).
func MessageWithListLength(attrType, attrLen uint8, listLen int, list []byte) []byte {
	out := []byte{attrType, attrLen}
	out = binary.BigEndian.AppendUint16(out, uint16(listLen))
	return append(out, list...)
}

// PDU encodes ProtocolVersion, the messages and the top-level EndMark.
func PDU(version uint8, messages ...[]byte) []byte {
	return append(PDUNoEndMark(version, messages...), EndMark()...)
}

// PDUNoEndMark is PDU without the top-level EndMark.
func PDUNoEndMark(version uint8, messages ...[]byte) []byte {
	out := []byte{version}
	for _, m := range messages {
		out = append(out, m...)
	}
	return out
}

// Frame wraps mrpdu in an Ethernet header. Minimum-size padding added by
// serialization is dropped so truncated PDUs stay truncated.
func Frame(dst net.HardwareAddr, etherType layers.EthernetType, mrpdu []byte) []byte {
	buf := gopacket.NewSerializeBuffer()
	eth := &layers.Ethernet{
		SrcMAC:       SrcAddr,
		DstMAC:       dst,
		EthernetType: etherType,
	}
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, eth, gopacket.Payload(mrpdu)); err != nil {
		panic(err)
	}
	return buf.Bytes()[:ethernetHeaderLen+len(mrpdu)]
}

// Repeat returns n copies of code.
func Repeat(code uint8, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = code
	}
	return out
}

func header(leaveAll bool, n int) []byte {
	h := mrp.VectorHeader{LeaveAll: leaveAll, NumberOfValues: uint16(n)}
	return binary.BigEndian.AppendUint16(nil, h.Uint16())
}

func must(b []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return b
}
