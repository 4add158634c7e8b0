package mrp

import "encoding/binary"

const messageHeaderLen = 4

// Policy selects behavior where the MRPDU encoding rules are ambiguous.
type Policy struct {
	// AllowMissingListEndMark accepts a Message whose AttributeListLength
	// overruns the PDU by exactly the size of the absent list EndMark. The
	// list then ends with an implicit EndMark after its last complete
	// VectorAttribute. When false such a Message is ErrTruncatedMessage.
	AllowMissingListEndMark bool
}

func DefaultPolicy() Policy {
	return Policy{}
}

// walkState is the position of the walker within the PDU nesting.
type walkState uint8

const (
	stateMessageOrEnd walkState = iota
	stateVectorOrEnd
	stateInVector
	stateDone
)

func (s walkState) String() string {
	switch s {
	case stateMessageOrEnd:
		return "message-or-end"
	case stateVectorOrEnd:
		return "vector-or-end"
	case stateInVector:
		return "in-vector"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// walker threads a single decode through the Message and AttributeList
// levels. Running out of bytes at a boundary state is an implicit EndMark;
// running out inside stateInVector or a Message header is a discard.
type walker struct {
	reg    *Registry
	policy Policy
	emit   func(VectorAttribute)

	state walkState
	top   *cursor
	list  *cursor
	spec  AttributeSpec
}

func newWalker(reg *Registry, policy Policy, messages *cursor, emit func(VectorAttribute)) *walker {
	return &walker{
		reg:    reg,
		policy: policy,
		emit:   emit,
		state:  stateMessageOrEnd,
		top:    messages,
	}
}

func (w *walker) run() error {
	for w.state != stateDone {
		var err error
		switch w.state {
		case stateMessageOrEnd:
			err = w.messageOrEnd()
		case stateVectorOrEnd:
			err = w.vectorOrEnd()
		case stateInVector:
			err = w.inVector()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) fail(c *cursor, attrType uint8, err error) error {
	return &DecodeError{Offset: c.offset(), AttributeType: attrType, Err: err}
}

func (w *walker) messageOrEnd() error {
	top := w.top
	if top.remaining() == 0 {
		w.state = stateDone
		return nil
	}
	if mark, ok := top.peekUint16(); ok && mark == 0 {
		top.take(endMarkLen)
		w.state = stateDone
		return nil
	}
	if top.remaining() < messageHeaderLen {
		return w.fail(top, 0, ErrTruncatedMessage)
	}

	start := top.offset()
	hdr, _ := top.take(messageHeaderLen)
	attrType := hdr[0]
	attrLen := int(hdr[1])
	listLen := int(binary.BigEndian.Uint16(hdr[2:4]))

	spec, ok := w.reg.Resolve(attrType)
	if !ok {
		return &DecodeError{Offset: start, AttributeType: attrType, Err: ErrUnknownAttributeType}
	}
	if attrLen != spec.FirstValueLen {
		return &DecodeError{Offset: start + 1, AttributeType: attrType, Err: ErrAttributeLengthMismatch}
	}

	rem := top.remaining()
	if listLen > rem {
		if !w.policy.AllowMissingListEndMark || listLen-rem != endMarkLen {
			return &DecodeError{Offset: start + 2, AttributeType: attrType, Err: ErrTruncatedMessage}
		}
		listLen = rem
	}

	w.spec = spec
	w.list = top.sub(listLen)
	w.state = stateVectorOrEnd
	return nil
}

func (w *walker) vectorOrEnd() error {
	list := w.list
	if list.remaining() == 0 {
		w.state = stateMessageOrEnd
		return nil
	}
	if mark, ok := list.peekUint16(); ok && mark == 0 {
		// Bytes after the list EndMark are already excluded from the
		// parent window and are skipped with the list.
		list.take(endMarkLen)
		w.state = stateMessageOrEnd
		return nil
	}
	if list.remaining() < vectorHeaderLen {
		return w.fail(list, w.spec.Type, ErrTruncatedVectorAttribute)
	}
	w.state = stateInVector
	return nil
}

func (w *walker) inVector() error {
	list := w.list
	start := list.offset()
	va, n, err := DecodeVectorAttribute(list.rest(), w.spec)
	if err != nil {
		return &DecodeError{Offset: start, AttributeType: w.spec.Type, Err: err}
	}
	list.take(n)
	w.emit(va)
	w.state = stateVectorOrEnd
	return nil
}
