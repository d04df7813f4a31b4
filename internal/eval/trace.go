package eval

// TraceEvent records one operation firing during reduction.
//
// Events carry the run token and a seq number from the evaluator's logical
// clock, so a full trace reconstructs the reduction in exact order.
type TraceEvent struct {
	Token  string `json:"token"`
	Seq    int64  `json:"seq"`
	Op     string `json:"op"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// TraceSink receives trace events as reduction proceeds. Implementations
// must not re-enter the evaluator.
type TraceSink interface {
	Record(ev TraceEvent)
}

// TraceBuffer is a TraceSink that accumulates events in memory.
type TraceBuffer struct {
	events []TraceEvent
}

// Record implements TraceSink.
func (b *TraceBuffer) Record(ev TraceEvent) {
	b.events = append(b.events, ev)
}

// Events returns the recorded events in firing order.
func (b *TraceBuffer) Events() []TraceEvent {
	return b.events
}

// Reset discards all recorded events.
func (b *TraceBuffer) Reset() {
	b.events = b.events[:0]
}
