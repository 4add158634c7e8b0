// Package msrp defines the Multiple Stream Reservation Protocol as an MRP
// application: addressing, attribute types and FirstValue layouts.
package msrp

import (
	"net"

	"github.com/danmuck/mrpd/internal/mrp"
	"github.com/google/gopacket/layers"
)

const (
	EtherType       layers.EthernetType = 0x22EA
	ProtocolVersion uint8               = 0
)

// Attribute types.
const (
	TalkerAdvertise uint8 = 1
	TalkerFailed    uint8 = 2
	Listener        uint8 = 3
	Domain          uint8 = 4
)

// FirstValue lengths, which AttributeLength must match exactly.
const (
	TalkerAdvertiseLen = 25
	TalkerFailedLen    = 34
	ListenerLen        = 8
	DomainLen          = 4
)

// Listener declaration types carried in FourPackedEvents.
const (
	DeclarationIgnore       uint8 = 0
	DeclarationAskingFailed uint8 = 1
	DeclarationReady        uint8 = 2
	DeclarationReadyFailed  uint8 = 3
)

// DestAddr is the nearest-bridge group address MSRPDUs are sent to.
func DestAddr() net.HardwareAddr {
	return net.HardwareAddr{0x01, 0x80, 0xc2, 0x00, 0x00, 0x0e}
}

// Registry returns a fresh attribute-type table for MSRP.
func Registry() *mrp.Registry {
	return mrp.NewRegistry().MustRegister(
		mrp.AttributeSpec{
			Type:          TalkerAdvertise,
			Name:          "TalkerAdvertise",
			FirstValueLen: TalkerAdvertiseLen,
			Packing:       mrp.ThreePacked,
			EventCodes:    mrp.ThreePackedEventCodes,
			Increment:     incrementTalker,
		},
		mrp.AttributeSpec{
			Type:          TalkerFailed,
			Name:          "TalkerFailed",
			FirstValueLen: TalkerFailedLen,
			Packing:       mrp.ThreePacked,
			EventCodes:    mrp.ThreePackedEventCodes,
			Increment:     incrementTalker,
		},
		mrp.AttributeSpec{
			Type:          Listener,
			Name:          "Listener",
			FirstValueLen: ListenerLen,
			Packing:       mrp.ThreePacked,
			EventCodes:    mrp.ThreePackedEventCodes,
			FourPacked:    true,
			Increment:     incrementListener,
		},
		mrp.AttributeSpec{
			Type:          Domain,
			Name:          "Domain",
			FirstValueLen: DomainLen,
			Packing:       mrp.ThreePacked,
			EventCodes:    mrp.ThreePackedEventCodes,
			Increment:     incrementDomain,
		},
	)
}

// Application returns the MSRP binding for the mrp decoder.
func Application() mrp.Application {
	return mrp.Application{
		Name:             "msrp",
		DestAddr:         DestAddr(),
		EtherType:        EtherType,
		ProtocolVersions: []uint8{ProtocolVersion},
		Registry:         Registry(),
	}
}

// NewDecoder returns an mrp decoder for MSRP.
func NewDecoder(policy mrp.Policy) *mrp.Decoder {
	dec, err := mrp.NewDecoder(Application(), policy)
	if err != nil {
		// The static table above always validates.
		panic(err)
	}
	return dec
}
