package metrics

import (
	"strconv"
	"sync"

	"github.com/danmuck/mrpd/internal/mrp"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	decodePDUs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mrpd",
			Subsystem: "decode",
			Name:      "pdus_total",
			Help:      "Total MRPDUs decoded, by result.",
		},
		[]string{"app", "result"},
	)
	decodeDiscards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mrpd",
			Subsystem: "decode",
			Name:      "discards_total",
			Help:      "MRPDUs discarded, by reason.",
		},
		[]string{"app", "reason"},
	)
	decodeEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mrpd",
			Subsystem: "decode",
			Name:      "events_total",
			Help:      "Attribute events dispatched from accepted MRPDUs.",
		},
		[]string{"app", "attribute", "event"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(decodePDUs, decodeDiscards, decodeEvents)
	})
}

// RecordDecode counts one Decode result.
func RecordDecode(app string, err error) {
	RegisterMetrics()
	if err == nil {
		decodePDUs.WithLabelValues(app, "accepted").Inc()
		return
	}
	decodePDUs.WithLabelValues(app, "discarded").Inc()
	decodeDiscards.WithLabelValues(app, mrp.Reason(err)).Inc()
}

// RecordEvent counts one dispatched event.
func RecordEvent(app string, ev mrp.Event) {
	RegisterMetrics()
	decodeEvents.WithLabelValues(app, strconv.Itoa(int(ev.AttributeType)), ev.Kind.String()).Inc()
}

// Observer wraps next so every dispatched event is counted first. next may
// be nil.
func Observer(app string, next mrp.Observer) mrp.Observer {
	return func(s *mrp.Session, ev mrp.Event) {
		RecordEvent(app, ev)
		if next != nil {
			next(s, ev)
		}
	}
}
