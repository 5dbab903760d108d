package kaleido

// strokeState is the drag state machine. It has exactly two variants,
// idleState and draggingState, so a move without a preceding down has no
// previous point to draw from.
type strokeState interface {
	isStrokeState()
}

type idleState struct{}

// draggingState carries the centered position of the last handled pointer
// event of the active stroke session.
type draggingState struct {
	id   string
	prev Point
}

func (idleState) isStrokeState()     {}
func (draggingState) isStrokeState() {}
