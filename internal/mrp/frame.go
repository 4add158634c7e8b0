package mrp

import (
	"bytes"
	"errors"
	"fmt"
	"net"
	"slices"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
)

// Application binds an MRP application's addressing to its attribute types.
type Application struct {
	Name             string
	DestAddr         net.HardwareAddr
	EtherType        layers.EthernetType
	ProtocolVersions []uint8
	Registry         *Registry
}

// Validate checks that app is complete enough to decode with.
func (app Application) Validate() error {
	if app.Name == "" {
		return errors.New("mrp: application missing name")
	}
	if len(app.DestAddr) != 6 {
		return fmt.Errorf("mrp: application %s destination address %v is not a MAC-48", app.Name, app.DestAddr)
	}
	if len(app.ProtocolVersions) == 0 {
		return fmt.Errorf("mrp: application %s has no protocol versions", app.Name)
	}
	if app.Registry == nil || len(app.Registry.Types()) == 0 {
		return fmt.Errorf("mrp: application %s has no attribute types", app.Name)
	}
	return nil
}

// ValidateFrame checks the Ethernet header and ProtocolVersion of frame and
// returns the Message sequence that follows the version byte.
func ValidateFrame(app Application, frame []byte) ([]byte, error) {
	var eth layers.Ethernet
	if err := eth.DecodeFromBytes(frame, gopacket.NilDecodeFeedback); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	if !bytes.Equal(eth.DstMAC, app.DestAddr) {
		return nil, fmt.Errorf("%w: destination %v", ErrInvalidFrame, eth.DstMAC)
	}
	if eth.EthernetType != app.EtherType {
		return nil, fmt.Errorf("%w: ethertype 0x%04x", ErrInvalidFrame, uint16(eth.EthernetType))
	}
	if len(eth.Payload) == 0 {
		return nil, fmt.Errorf("%w: missing protocol version", ErrInvalidFrame)
	}
	if version := eth.Payload[0]; !slices.Contains(app.ProtocolVersions, version) {
		return nil, fmt.Errorf("%w: protocol version %d", ErrInvalidFrame, version)
	}
	return eth.Payload[1:], nil
}
