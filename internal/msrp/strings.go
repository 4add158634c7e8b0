package msrp

import (
	"fmt"

	"github.com/danmuck/mrpd/internal/mrp"
)

func AttributeTypeString(t uint8) string {
	switch t {
	case TalkerAdvertise:
		return "TalkerAdvertise"
	case TalkerFailed:
		return "TalkerFailed"
	case Listener:
		return "Listener"
	case Domain:
		return "Domain"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

func DeclarationString(d uint8) string {
	switch d {
	case DeclarationIgnore:
		return "Ignore"
	case DeclarationAskingFailed:
		return "AskingFailed"
	case DeclarationReady:
		return "Ready"
	case DeclarationReadyFailed:
		return "ReadyFailed"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// Describe renders ev for logs: event, attribute type and the value key.
func Describe(ev mrp.Event) string {
	base := fmt.Sprintf("event=%s attr=%s", ev.Kind, AttributeTypeString(ev.AttributeType))
	switch ev.AttributeType {
	case TalkerAdvertise:
		v, err := ParseTalkerAdvertise(ev.Value)
		if err != nil {
			return base
		}
		return fmt.Sprintf("%s stream_id=%s dest=%s vid=%d", base, v.StreamID, v.DestAddr, v.VLANID)
	case TalkerFailed:
		v, err := ParseTalkerFailed(ev.Value)
		if err != nil {
			return base
		}
		return fmt.Sprintf("%s stream_id=%s dest=%s failure_code=%d", base, v.StreamID, v.DestAddr, v.FailureCode)
	case Listener:
		id, err := ParseListener(ev.Value)
		if err != nil {
			return base
		}
		if ev.Kind == mrp.EventLeaveAll {
			return fmt.Sprintf("%s stream_id=%s", base, id)
		}
		return fmt.Sprintf("%s stream_id=%s declaration=%s", base, id, DeclarationString(ev.Declaration))
	case Domain:
		v, err := ParseDomain(ev.Value)
		if err != nil {
			return base
		}
		return fmt.Sprintf("%s class_id=%d priority=%d vid=%d", base, v.ClassID, v.Priority, v.VLANID)
	default:
		return base
	}
}
