package mrp

// EventKind is the receive event carried by one attribute occurrence.
type EventKind uint8

const (
	EventNew EventKind = iota
	EventJoinIn
	EventIn
	EventJoinEmpty
	EventEmpty
	EventLeave
	EventLeaveAll
	EventIgnore

	numEventKinds = int(EventIgnore) + 1
)

// ThreePackedEventCodes is the MRP AttributeEvent table (0 New .. 5 Lv).
var ThreePackedEventCodes = []EventKind{
	EventNew,
	EventJoinIn,
	EventIn,
	EventJoinEmpty,
	EventEmpty,
	EventLeave,
}

func (k EventKind) String() string {
	switch k {
	case EventNew:
		return "New"
	case EventJoinIn:
		return "JoinIn"
	case EventIn:
		return "In"
	case EventJoinEmpty:
		return "JoinMt"
	case EventEmpty:
		return "Mt"
	case EventLeave:
		return "Lv"
	case EventLeaveAll:
		return "LeaveAll"
	case EventIgnore:
		return "Ignore"
	default:
		return "Unknown"
	}
}

// Event is one dispatched attribute occurrence.
type Event struct {
	Kind          EventKind
	AttributeType uint8
	// Value is the FirstValue advanced to this occurrence. It is a copy owned
	// by the event.
	Value []byte
	// Declaration is the four-packed code for attribute types that carry one.
	Declaration uint8
	// Position is the index of the occurrence within its VectorAttribute;
	// LeaveAll events report -1.
	Position int
}
