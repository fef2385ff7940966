// Package broadcast implements §4.17's progress-notification sink: a
// one-way OSC channel the system-wrap optimizer can use to tell an
// external live-preview renderer "system N just finished, it reaches x"
// — telemetry, never reflow input. Grounded on the teacher's
// internal/model.go oscClient pattern: a *osc.Client held behind a nil
// check, one osc.NewMessage per notification, parameters Appended
// positionally, Send's error logged rather than propagated (a dropped
// progress message is never fatal to engraving).
package broadcast

import (
	"log"

	"github.com/hypebeast/go-osc/osc"
)

// Sink receives one notification per completed system (§4.15's
// OptimizeWrap output, walked in order). index is 0-based; rightEdge is
// the system's own occupied width in engraving-space units (not the
// available line width it was fit against).
type Sink interface {
	SystemComplete(index int, rightEdge float64)
}

// Emit calls sink.SystemComplete, or does nothing if sink is nil — every
// caller threading an optional Sink through should go through Emit
// rather than nil-checking it themselves, matching the teacher's own
// repeated `if m.oscClient == nil { return }` guard but centralized once.
func Emit(sink Sink, index int, rightEdge float64) {
	if sink == nil {
		return
	}
	sink.SystemComplete(index, rightEdge)
}

// OSCSink is the concrete Sink backing §4.17: one UDP OSC message per
// system, address "/engrave/system", carrying (index int32, rightEdge
// float32) — the same two-positional-argument shape as the teacher's own
// "/stop" and "/instrument" messages.
type OSCSink struct {
	client *osc.Client
}

// NewOSCSink dials an OSC client at host:port, matching
// osc.NewClient(host, port)'s teacher-side construction in
// model.go's NewModel. The client is not connection-checked here — UDP
// has no handshake — so a bad host/port only surfaces as a later Send
// error, logged and swallowed by SystemComplete.
func NewOSCSink(host string, port int) *OSCSink {
	return &OSCSink{client: osc.NewClient(host, port)}
}

// SystemComplete sends the "/engrave/system" notification. A nil
// receiver or nil client is a no-op, matching the teacher's own
// oscClient-unconfigured behavior rather than panicking when broadcast
// hasn't been wired up.
func (s *OSCSink) SystemComplete(index int, rightEdge float64) {
	if s == nil || s.client == nil {
		return
	}
	msg := osc.NewMessage("/engrave/system")
	msg.Append(int32(index))
	msg.Append(float32(rightEdge))
	if err := s.client.Send(msg); err != nil {
		log.Printf("broadcast: error sending /engrave/system for system %d: %v", index, err)
	}
}
