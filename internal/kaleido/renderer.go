package kaleido

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotMounted is returned by operations that need a surface before the
// first valid Resize, or after a resize to a non-positive size.
var ErrNotMounted = errors.New("kaleido: surface not mounted")

// Renderer owns the raster surface and the stroke session. Pointer events
// arrive in viewport coordinates; every movement while dragging is
// replicated Symmetry times around the surface center, plus the mirrored
// family, and composited into the surface immediately.
//
// A Renderer is not safe for concurrent use. All methods must be called
// from the goroutine that delivers input events.
type Renderer struct {
	params  ParamSource
	surface *Surface
	state   strokeState
	handler EventHandler

	originX, originY float64

	segs []Segment
}

// NewRenderer creates an unmounted renderer reading its parameters from
// params. A nil params uses DefaultParams.
func NewRenderer(params ParamSource) *Renderer {
	if params == nil {
		params = StaticParams(DefaultParams())
	}
	return &Renderer{
		params: params,
		state:  idleState{},
	}
}

// SetEventHandler installs h as the observer of renderer events. A nil h
// removes the current observer.
func (r *Renderer) SetEventHandler(h EventHandler) {
	r.handler = h
}

// SetViewportOrigin sets the position of the surface's top-left corner in
// viewport coordinates.
func (r *Renderer) SetViewportOrigin(left, top float64) {
	r.originX, r.originY = left, top
}

// Resize mounts the surface at width×height, or reallocates it, and fills it
// with the current background color. Prior drawing is discarded. An active
// stroke session survives, so the next move continues from a point that now
// refers to the new surface. Non-positive dimensions unmount the surface
// and end the session.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		r.surface = nil
		r.endSession()
		return
	}
	p := r.currentParams()
	if r.surface == nil {
		r.surface = NewSurface(width, height, p.BackgroundColor)
	} else {
		r.surface.Resize(width, height, p.BackgroundColor)
	}
	r.emit(Event{Kind: EventResize, Params: p, Width: width, Height: height, Session: r.sessionID()})
}

// Mounted reports whether a surface is available.
func (r *Renderer) Mounted() bool {
	return r.surface != nil
}

// Surface returns the current surface, or nil when unmounted.
func (r *Renderer) Surface() *Surface {
	return r.surface
}

// ToCentered converts a viewport position into the frame centered on the
// surface middle.
func (r *Renderer) ToCentered(px, py float64) Point {
	var w, h float64
	if r.surface != nil {
		w, h = float64(r.surface.Width()), float64(r.surface.Height())
	}
	return Point{
		X: px - r.originX - w/2,
		Y: py - r.originY - h/2,
	}
}

// Dragging returns the previous point of the active stroke session.
func (r *Renderer) Dragging() (Point, bool) {
	if d, ok := r.state.(draggingState); ok {
		return d.prev, true
	}
	return Point{}, false
}

// PointerDown starts a stroke session at the given viewport position.
// Nothing is drawn. A down during an active session ends it and starts a
// new one at the new position.
func (r *Renderer) PointerDown(px, py float64) {
	if r.surface == nil {
		return
	}
	r.endSession()
	d := draggingState{id: uuid.NewString(), prev: r.ToCentered(px, py)}
	r.state = d
	r.emit(Event{Kind: EventStrokeBegin, Session: d.id, From: d.prev, To: d.prev})
}

// PointerMove draws the replicated segment from the previous point to the
// given viewport position and makes it the new previous point. Outside a
// stroke session the event is ignored.
func (r *Renderer) PointerMove(px, py float64) {
	if r.surface == nil {
		return
	}
	d, ok := r.state.(draggingState)
	if !ok {
		return
	}
	p := r.ToCentered(px, py)
	r.drawReplicated(d.id, d.prev, p)
	d.prev = p
	r.state = d
}

// PointerUp ends the stroke session.
func (r *Renderer) PointerUp() {
	r.endSession()
}

// PointerLeave ends the stroke session when the pointer leaves the surface.
func (r *Renderer) PointerLeave() {
	r.endSession()
}

// Clear fills the whole surface with the current background color. The
// stroke session, if any, is kept.
func (r *Renderer) Clear() {
	if r.surface == nil {
		return
	}
	p := r.currentParams()
	r.surface.Fill(p.BackgroundColor)
	r.emit(Event{
		Kind:    EventClear,
		Params:  p,
		Width:   r.surface.Width(),
		Height:  r.surface.Height(),
		Session: r.sessionID(),
	})
}

// Replicate returns the 2N device-space copies of the centered segment
// p0→p1 under the current parameters without drawing them. It returns nil
// when unmounted.
func (r *Renderer) Replicate(p0, p1 Point) []Segment {
	if r.surface == nil {
		return nil
	}
	return Replicate(p0, p1, r.currentParams().Symmetry, r.surface.Center())
}

func (r *Renderer) drawReplicated(id string, p0, p1 Point) {
	p := r.currentParams()
	r.segs = AppendReplicas(r.segs[:0], p0, p1, p.Symmetry, r.surface.Center())
	width := float64(p.StrokeWeight)
	for _, s := range r.segs {
		r.surface.StrokeLine(s.From, s.To, width, p.StrokeColor)
	}
	r.emit(Event{
		Kind:     EventReplicate,
		Session:  id,
		From:     p0,
		To:       p1,
		Segments: r.segs,
		Params:   p,
	})
}

func (r *Renderer) endSession() {
	d, ok := r.state.(draggingState)
	if !ok {
		return
	}
	r.state = idleState{}
	r.emit(Event{Kind: EventStrokeEnd, Session: d.id, From: d.prev, To: d.prev})
}

func (r *Renderer) sessionID() string {
	if d, ok := r.state.(draggingState); ok {
		return d.id
	}
	return ""
}

func (r *Renderer) currentParams() Params {
	return r.params.Params().Normalize()
}

func (r *Renderer) emit(e Event) {
	if r.handler != nil {
		r.handler(e)
	}
}
