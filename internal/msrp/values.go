package msrp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
)

var ErrValueLength = errors.New("msrp: value length mismatch")

// StreamID is the 64-bit stream identifier (talker MAC + unique ID).
type StreamID [8]byte

func (id StreamID) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x:%02x:%02x",
		id[0], id[1], id[2], id[3], id[4], id[5], id[6], id[7])
}

// Uint64 returns the StreamID as a big-endian integer.
func (id StreamID) Uint64() uint64 {
	return binary.BigEndian.Uint64(id[:])
}

// TalkerAdvertiseValue is the TalkerAdvertise FirstValue layout.
type TalkerAdvertiseValue struct {
	StreamID           StreamID
	DestAddr           net.HardwareAddr
	VLANID             uint16
	MaxFrameSize       uint16
	MaxIntervalFrames  uint16
	Priority           uint8
	Rank               uint8
	AccumulatedLatency uint32
}

// TalkerFailedValue is TalkerAdvertise plus FailureInformation.
type TalkerFailedValue struct {
	TalkerAdvertiseValue
	FailureBridgeID uint64
	FailureCode     uint8
}

// DomainValue is the Domain FirstValue layout.
type DomainValue struct {
	ClassID  uint8
	Priority uint8
	VLANID   uint16
}

func ParseTalkerAdvertise(b []byte) (TalkerAdvertiseValue, error) {
	if len(b) != TalkerAdvertiseLen {
		return TalkerAdvertiseValue{}, fmt.Errorf("%w: talker advertise %d", ErrValueLength, len(b))
	}
	return parseTalker(b), nil
}

func ParseTalkerFailed(b []byte) (TalkerFailedValue, error) {
	if len(b) != TalkerFailedLen {
		return TalkerFailedValue{}, fmt.Errorf("%w: talker failed %d", ErrValueLength, len(b))
	}
	return TalkerFailedValue{
		TalkerAdvertiseValue: parseTalker(b[:TalkerAdvertiseLen]),
		FailureBridgeID:      binary.BigEndian.Uint64(b[25:33]),
		FailureCode:          b[33],
	}, nil
}

func ParseListener(b []byte) (StreamID, error) {
	var id StreamID
	if len(b) != ListenerLen {
		return id, fmt.Errorf("%w: listener %d", ErrValueLength, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func ParseDomain(b []byte) (DomainValue, error) {
	if len(b) != DomainLen {
		return DomainValue{}, fmt.Errorf("%w: domain %d", ErrValueLength, len(b))
	}
	return DomainValue{
		ClassID:  b[0],
		Priority: b[1],
		VLANID:   binary.BigEndian.Uint16(b[2:4]),
	}, nil
}

// AppendTalkerAdvertise encodes v as a FirstValue.
func AppendTalkerAdvertise(dst []byte, v TalkerAdvertiseValue) []byte {
	dst = append(dst, v.StreamID[:]...)
	var mac [6]byte
	copy(mac[:], v.DestAddr)
	dst = append(dst, mac[:]...)
	dst = binary.BigEndian.AppendUint16(dst, v.VLANID)
	dst = binary.BigEndian.AppendUint16(dst, v.MaxFrameSize)
	dst = binary.BigEndian.AppendUint16(dst, v.MaxIntervalFrames)
	dst = append(dst, v.Priority<<5|(v.Rank&1)<<4)
	return binary.BigEndian.AppendUint32(dst, v.AccumulatedLatency)
}

// AppendTalkerFailed encodes v as a FirstValue.
func AppendTalkerFailed(dst []byte, v TalkerFailedValue) []byte {
	dst = AppendTalkerAdvertise(dst, v.TalkerAdvertiseValue)
	dst = binary.BigEndian.AppendUint64(dst, v.FailureBridgeID)
	return append(dst, v.FailureCode)
}

// AppendDomain encodes v as a FirstValue.
func AppendDomain(dst []byte, v DomainValue) []byte {
	dst = append(dst, v.ClassID, v.Priority)
	return binary.BigEndian.AppendUint16(dst, v.VLANID)
}

func parseTalker(b []byte) TalkerAdvertiseValue {
	var v TalkerAdvertiseValue
	copy(v.StreamID[:], b[0:8])
	v.DestAddr = net.HardwareAddr(append([]byte(nil), b[8:14]...))
	v.VLANID = binary.BigEndian.Uint16(b[14:16])
	v.MaxFrameSize = binary.BigEndian.Uint16(b[16:18])
	v.MaxIntervalFrames = binary.BigEndian.Uint16(b[18:20])
	v.Priority = b[20] >> 5
	v.Rank = (b[20] >> 4) & 1
	v.AccumulatedLatency = binary.BigEndian.Uint32(b[21:25])
	return v
}

// incrementBytes adds one to the big-endian integer in b, wrapping.
func incrementBytes(b []byte) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i]++
		if b[i] != 0 {
			return
		}
	}
}

// incrementTalker steps StreamID and the stream destination address.
func incrementTalker(v []byte) {
	incrementBytes(v[0:8])
	incrementBytes(v[8:14])
}

func incrementListener(v []byte) {
	incrementBytes(v[0:8])
}

// incrementDomain steps SRclassID and SRclassPriority; SRclassVID is shared.
func incrementDomain(v []byte) {
	v[0]++
	v[1]++
}
