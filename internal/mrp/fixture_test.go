package mrp

import (
	"net"

	"github.com/google/gopacket/layers"
)

// Attribute types of the fixture application.
const (
	FixtureCounter     uint8 = 1
	FixtureDeclaration uint8 = 2
	FixtureCounterLen        = 4
	FixtureDeclLen           = 2
)

var FixtureDestAddr = net.HardwareAddr{0x01, 0x80, 0xc2, 0x00, 0x00, 0x21}

const FixtureEtherType layers.EthernetType = 0x88f5

func incrementLast(v []byte) {
	v[len(v)-1]++
}

// FixtureApplication is a two-type application: a counter keyed by a
// 4-byte value, and a declaration type carrying four-packed events.
func FixtureApplication() Application {
	reg := NewRegistry().MustRegister(
		AttributeSpec{
			Type:          FixtureCounter,
			Name:          "Counter",
			FirstValueLen: FixtureCounterLen,
			Packing:       ThreePacked,
			EventCodes:    ThreePackedEventCodes,
			Increment:     incrementLast,
		},
		AttributeSpec{
			Type:          FixtureDeclaration,
			Name:          "Declaration",
			FirstValueLen: FixtureDeclLen,
			Packing:       ThreePacked,
			EventCodes:    ThreePackedEventCodes,
			FourPacked:    true,
			Increment:     incrementLast,
		},
	)
	return Application{
		Name:             "fixture",
		DestAddr:         FixtureDestAddr,
		EtherType:        FixtureEtherType,
		ProtocolVersions: []uint8{0},
		Registry:         reg,
	}
}
