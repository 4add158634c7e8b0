package mrp

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFrame             = errors.New("mrp: invalid frame")
	ErrUnknownAttributeType     = errors.New("mrp: unknown attribute type")
	ErrAttributeLengthMismatch  = errors.New("mrp: attribute length mismatch")
	ErrTruncatedMessage         = errors.New("mrp: truncated message")
	ErrTruncatedVectorAttribute = errors.New("mrp: truncated vector attribute")
	ErrInvalidPackedEvent       = errors.New("mrp: invalid packed event")
)

// DecodeError reports where in the MRPDU a discard condition was detected.
// Offset is relative to the first byte after the Ethernet header.
type DecodeError struct {
	Offset        int
	AttributeType uint8
	Err           error
}

func (e *DecodeError) Error() string {
	if e.AttributeType == 0 {
		return fmt.Sprintf("%v (offset=%d)", e.Err, e.Offset)
	}
	return fmt.Sprintf("%v (offset=%d attribute_type=%d)", e.Err, e.Offset, e.AttributeType)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Reason returns a stable label for the discard class of err.
func Reason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidFrame):
		return "invalid_frame"
	case errors.Is(err, ErrUnknownAttributeType):
		return "unknown_attribute_type"
	case errors.Is(err, ErrAttributeLengthMismatch):
		return "attribute_length_mismatch"
	case errors.Is(err, ErrTruncatedMessage):
		return "truncated_message"
	case errors.Is(err, ErrTruncatedVectorAttribute):
		return "truncated_vector_attribute"
	case errors.Is(err, ErrInvalidPackedEvent):
		return "invalid_packed_event"
	default:
		return "other"
	}
}
