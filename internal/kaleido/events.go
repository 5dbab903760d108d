package kaleido

// EventKind identifies a renderer lifecycle event.
type EventKind int

const (
	// EventStrokeBegin is emitted on pointer-down.
	EventStrokeBegin EventKind = iota
	// EventReplicate is emitted after each segment-replication draw.
	EventReplicate
	// EventStrokeEnd is emitted when a session ends by pointer-up or leave.
	EventStrokeEnd
	// EventClear is emitted after the surface was refilled by Clear.
	EventClear
	// EventResize is emitted after the surface was reallocated.
	EventResize
	// EventExport is emitted after the raster was encoded.
	EventExport
)

var eventKindNames = [...]string{
	EventStrokeBegin: "stroke_begin",
	EventReplicate:   "replicate",
	EventStrokeEnd:   "stroke_end",
	EventClear:       "clear",
	EventResize:      "resize",
	EventExport:      "export",
}

// String returns the snake_case name of the kind.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return "unknown"
	}
	return eventKindNames[k]
}

// Event describes something the renderer just did. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind EventKind
	// Session is the correlation id of the stroke session, if any.
	Session string
	// From and To are the centered endpoints of a replicated segment.
	From, To Point
	// Segments holds the drawn copies for EventReplicate. The slice is
	// reused by the renderer and must not be retained.
	Segments []Segment
	// Params are the parameters the operation was executed with.
	Params Params
	// Width and Height are the surface size after the operation.
	Width, Height int
	// Bytes is the encoded size for EventExport.
	Bytes int64
}

// EventHandler observes renderer events. It runs synchronously on the
// goroutine that drives the renderer.
type EventHandler func(Event)
