package replay

import (
	"context"
	"errors"
	"fmt"
	"image/color"
)

// ErrExport wraps every failure of an export step.
var ErrExport = errors.New("export")

// Canvas receives the drawing steps. *kaleido.Renderer implements it.
type Canvas interface {
	Resize(width, height int)
	SetViewportOrigin(left, top float64)
	PointerDown(px, py float64)
	PointerMove(px, py float64)
	PointerUp()
	PointerLeave()
	Clear()
	ExportFile(dir, name string) (string, error)
}

// Params receives the parameter steps. *kaleido.Controls implements it.
type Params interface {
	SetSymmetry(n int) int
	SetWeight(w int) int
	SetStrokeColor(c color.RGBA)
	SetBackgroundColor(c color.RGBA)
}

// Target is what a script runs against.
type Target struct {
	Canvas Canvas
	Params Params
	// ExportDir and ExportName are used by export steps; a step's own
	// name overrides ExportName.
	ExportDir  string
	ExportName string
	// OnExport, if set, is called with the path of every written image.
	OnExport func(path string)
}

// Run applies steps in order. It stops at the first failed export or when
// ctx is done. A background step also clears the canvas, the same way the
// window repaints on a background change.
func Run(ctx context.Context, steps []Step, t Target) error {
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := apply(s, t); err != nil {
			return fmt.Errorf("line %d: %w", s.Line, err)
		}
	}
	return nil
}

func apply(s Step, t Target) error {
	switch s.Op {
	case OpResize:
		t.Canvas.Resize(s.W, s.H)
	case OpOrigin:
		t.Canvas.SetViewportOrigin(s.X, s.Y)
	case OpDown:
		t.Canvas.PointerDown(s.X, s.Y)
	case OpMove:
		t.Canvas.PointerMove(s.X, s.Y)
	case OpUp:
		t.Canvas.PointerUp()
	case OpLeave:
		t.Canvas.PointerLeave()
	case OpClear:
		t.Canvas.Clear()
	case OpSymmetry:
		t.Params.SetSymmetry(s.W)
	case OpWeight:
		t.Params.SetWeight(s.W)
	case OpColor:
		t.Params.SetStrokeColor(s.Color)
	case OpBackground:
		t.Params.SetBackgroundColor(s.Color)
		t.Canvas.Clear()
	case OpExport:
		name := s.Name
		if name == "" {
			name = t.ExportName
		}
		path, err := t.Canvas.ExportFile(t.ExportDir, name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExport, err)
		}
		if t.OnExport != nil {
			t.OnExport(path)
		}
	default:
		return fmt.Errorf("unsupported step %v", s.Op)
	}
	return nil
}
