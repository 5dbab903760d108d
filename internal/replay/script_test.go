package replay

import (
	"errors"
	"image/color"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	script := `
# a four-fold flower
resize 400 300
origin 10.5 -2
SYMMETRY 4
weight 2
color #FF00FF
background black
down 250 150
move 260.25 150
up
leave
clear
export
export petals.png
`
	steps, err := ParseString(script)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Step{
		{Line: 3, Op: OpResize, W: 400, H: 300},
		{Line: 4, Op: OpOrigin, X: 10.5, Y: -2},
		{Line: 5, Op: OpSymmetry, W: 4},
		{Line: 6, Op: OpWeight, W: 2},
		{Line: 7, Op: OpColor, Color: color.RGBA{R: 0xFF, B: 0xFF, A: 0xFF}},
		{Line: 8, Op: OpBackground, Color: color.RGBA{A: 0xFF}},
		{Line: 9, Op: OpDown, X: 250, Y: 150},
		{Line: 10, Op: OpMove, X: 260.25, Y: 150},
		{Line: 11, Op: OpUp},
		{Line: 12, Op: OpLeave},
		{Line: 13, Op: OpClear},
		{Line: 14, Op: OpExport},
		{Line: 15, Op: OpExport, Name: "petals.png"},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d: %+v", len(steps), len(want), steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown command", "paint 1 2", `line 1: unknown command "paint"`},
		{"missing args", "\nresize 10", "line 2: resize takes 2 arguments, got 1"},
		{"extra args", "up now", "line 1: up takes 0 arguments, got 1"},
		{"bad integer", "symmetry six", `line 1: invalid integer "six"`},
		{"bad number", "down 1 y", `line 1: invalid number "y"`},
		{"bad color", "color #GG0000", "line 1:"},
		{"export with two names", "export a.png b.png", "line 1: export takes at most one name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.script)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), tt.want) {
				t.Errorf("error = %q, want prefix %q", err, tt.want)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	steps, err := ParseString("\n# nothing\n   \n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("got %d steps, want 0", len(steps))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseReadError(t *testing.T) {
	if _, err := Parse(failingReader{}); err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("error = %v, want read failure", err)
	}
}

func TestOpString(t *testing.T) {
	if OpBackground.String() != "background" {
		t.Errorf("OpBackground = %q", OpBackground.String())
	}
	if Op(99).String() != "unknown" || Op(-1).String() != "unknown" {
		t.Error("out-of-range op should be unknown")
	}
}
