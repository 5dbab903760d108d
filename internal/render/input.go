package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputKind identifies a user action.
type InputKind int

const (
	// InputPointerDown starts a stroke at X, Y.
	InputPointerDown InputKind = iota
	// InputPointerMove continues the stroke to X, Y.
	InputPointerMove
	// InputPointerUp ends the stroke.
	InputPointerUp
	// InputPointerLeave ends the stroke because the pointer left the canvas.
	InputPointerLeave
	InputSymmetryUp
	InputSymmetryDown
	InputWeightUp
	InputWeightDown
	// InputSelectStroke selects stroke swatch Index.
	InputSelectStroke
	InputCycleBackground
	InputClear
	InputSave
	InputToggleHUD
	InputQuit
)

// Input is a single user action. X and Y are window coordinates and are
// only meaningful for pointer actions.
type Input struct {
	Kind  InputKind
	X, Y  float64
	Index int
}

// InputSource delivers the actions that happened since the previous poll.
// width and height are the current canvas size; pointers outside it count
// as having left.
type InputSource interface {
	Poll(width, height int) []Input
}

// Key repeat timing in ticks, for held arrow keys.
const (
	repeatDelay    = 24
	repeatInterval = 4
)

type keyBinding struct {
	key    ebiten.Key
	kind   InputKind
	repeat bool
}

var keyBindings = []keyBinding{
	{ebiten.KeyArrowUp, InputSymmetryUp, true},
	{ebiten.KeyArrowDown, InputSymmetryDown, true},
	{ebiten.KeyArrowRight, InputWeightUp, true},
	{ebiten.KeyArrowLeft, InputWeightDown, true},
	{ebiten.KeyB, InputCycleBackground, false},
	{ebiten.KeyC, InputClear, false},
	{ebiten.KeyS, InputSave, false},
	{ebiten.KeyH, InputToggleHUD, false},
	{ebiten.KeyEscape, InputQuit, false},
}

// swatchKeys maps the number row to stroke swatches 0-9.
var swatchKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4, ebiten.KeyDigit5,
	ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9, ebiten.KeyDigit0,
}

// pointerFrame is one tick's worth of raw pointer state.
type pointerFrame struct {
	focused bool

	// The tracked touch, meaningful while a touch drag is active.
	touchReleased bool
	touchX        int
	touchY        int

	// The first touch that started this tick, if any.
	newTouch   bool
	newTouchID ebiten.TouchID
	newTouchX  int
	newTouchY  int

	mousePressed  bool
	mouseReleased bool
	mouseX        int
	mouseY        int
}

// pointerTracker turns pointer frames into drag actions. Only the first
// touch contact drives a stroke; later contacts are ignored until it lifts.
type pointerTracker struct {
	dragging bool
	touching bool
	touchID  ebiten.TouchID
	lastX    int
	lastY    int
}

// step appends the actions for f to out and returns it.
func (pt *pointerTracker) step(f pointerFrame, width, height int, out []Input) []Input {
	if pt.touching {
		if f.touchReleased {
			return pt.end(InputPointerUp, out)
		}
		return pt.moveTo(f.touchX, f.touchY, f.focused, width, height, out)
	}

	if !pt.dragging && f.newTouch {
		var ok bool
		out, ok = pt.begin(f.newTouchX, f.newTouchY, width, height, out)
		if ok {
			pt.touching = true
			pt.touchID = f.newTouchID
		}
		return out
	}

	switch {
	case f.mousePressed:
		out, _ = pt.begin(f.mouseX, f.mouseY, width, height, out)
	case pt.dragging && f.mouseReleased:
		// The final position is drawn before the stroke ends.
		out = pt.moveTo(f.mouseX, f.mouseY, f.focused, width, height, out)
		if pt.dragging {
			out = pt.end(InputPointerUp, out)
		}
	case pt.dragging:
		out = pt.moveTo(f.mouseX, f.mouseY, f.focused, width, height, out)
	}
	return out
}

func (pt *pointerTracker) begin(x, y, width, height int, out []Input) ([]Input, bool) {
	if !inside(x, y, width, height) {
		return out, false
	}
	if pt.dragging {
		out = pt.end(InputPointerUp, out)
	}
	pt.dragging = true
	pt.lastX, pt.lastY = x, y
	return append(out, Input{Kind: InputPointerDown, X: float64(x), Y: float64(y)}), true
}

func (pt *pointerTracker) moveTo(x, y int, focused bool, width, height int, out []Input) []Input {
	if !focused || !inside(x, y, width, height) {
		return pt.end(InputPointerLeave, out)
	}
	if x == pt.lastX && y == pt.lastY {
		return out
	}
	pt.lastX, pt.lastY = x, y
	return append(out, Input{Kind: InputPointerMove, X: float64(x), Y: float64(y)})
}

func (pt *pointerTracker) end(kind InputKind, out []Input) []Input {
	pt.dragging = false
	pt.touching = false
	return append(out, Input{Kind: kind})
}

// keyInputs appends the keyboard actions for one tick. duration reports
// how many ticks a key has been held, 0 when it is up.
func keyInputs(duration func(ebiten.Key) int, out []Input) []Input {
	for _, b := range keyBindings {
		if fires(duration(b.key), b.repeat) {
			out = append(out, Input{Kind: b.kind})
		}
	}
	for i, k := range swatchKeys {
		if duration(k) == 1 {
			out = append(out, Input{Kind: InputSelectStroke, Index: i})
		}
	}
	return out
}

// fires reports whether a key held for d ticks triggers its action this
// tick. Repeating keys fire on the first tick, then every repeatInterval
// ticks once repeatDelay has passed.
func fires(d int, repeat bool) bool {
	if d == 1 {
		return true
	}
	return repeat && d >= repeatDelay && (d-repeatDelay)%repeatInterval == 0
}

func inside(x, y, width, height int) bool {
	return x >= 0 && y >= 0 && x < width && y < height
}

// EbitenInput reads the left mouse button, the first touch and the
// keyboard from Ebiten. It must be polled from the game's Update.
type EbitenInput struct {
	events   []Input
	touchBuf []ebiten.TouchID
	pointer  pointerTracker
}

// NewEbitenInput creates an input source reading Ebiten's input state.
func NewEbitenInput() *EbitenInput {
	return &EbitenInput{}
}

// Poll implements InputSource.
func (in *EbitenInput) Poll(width, height int) []Input {
	in.events = in.pointer.step(in.readPointer(), width, height, in.events[:0])
	in.events = keyInputs(inpututil.KeyPressDuration, in.events)
	return in.events
}

func (in *EbitenInput) readPointer() pointerFrame {
	f := pointerFrame{focused: ebiten.IsFocused()}
	if in.pointer.touching {
		id := in.pointer.touchID
		f.touchReleased = inpututil.IsTouchJustReleased(id)
		f.touchX, f.touchY = ebiten.TouchPosition(id)
		return f
	}
	in.touchBuf = inpututil.AppendJustPressedTouchIDs(in.touchBuf[:0])
	if len(in.touchBuf) > 0 {
		f.newTouch = true
		f.newTouchID = in.touchBuf[0]
		f.newTouchX, f.newTouchY = ebiten.TouchPosition(f.newTouchID)
	}
	f.mousePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	f.mouseReleased = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	f.mouseX, f.mouseY = ebiten.CursorPosition()
	return f
}
