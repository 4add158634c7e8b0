package mrp

import (
	"github.com/rs/zerolog/log"
)

// Decoder runs the receive pipeline for one Application. A Decoder holds no
// per-call state and may be shared; each concurrent caller needs its own
// Session.
type Decoder struct {
	app    Application
	policy Policy
}

// NewDecoder validates app and returns a decoder for it.
func NewDecoder(app Application, policy Policy) (*Decoder, error) {
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return &Decoder{app: app, policy: policy}, nil
}

func (d *Decoder) Application() Application {
	return d.app
}

func (d *Decoder) Policy() Policy {
	return d.policy
}

// Decode validates frame and walks its MRPDU. Events are dispatched to the
// session observer only when the whole PDU is valid; any discard condition
// returns an error wrapping one of the mrp sentinel errors and dispatches
// nothing.
func (d *Decoder) Decode(s *Session, frame []byte) error {
	s.begin()
	payload, err := ValidateFrame(d.app, frame)
	if err != nil {
		return d.discard(s, err)
	}

	// Offsets in DecodeError count the ProtocolVersion byte.
	w := newWalker(d.app.Registry, d.policy, newCursor(payload, 1), s.stage)
	if err := w.run(); err != nil {
		return d.discard(s, err)
	}
	s.commit()
	return nil
}

// Recv is Decode reduced to the daemon result code: 0 on success, -1 when
// the PDU was discarded.
func (d *Decoder) Recv(s *Session, frame []byte) int {
	if err := d.Decode(s, frame); err != nil {
		return -1
	}
	return 0
}

func (d *Decoder) discard(s *Session, err error) error {
	s.discard(err)
	log.Debug().Msgf("mrp.Decoder.Decode discard app=%s reason=%s err=%v", d.app.Name, Reason(err), err)
	return err
}
