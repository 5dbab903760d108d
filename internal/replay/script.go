// Package replay drives a kaleidoscope renderer from a gesture script, so
// drawings can be produced and checked without a window.
//
// A script has one command per line. Blank lines and lines starting with #
// are ignored.
//
//	resize 800 600
//	origin 0 0
//	down 400 300
//	move 450 300
//	up
//	leave
//	clear
//	symmetry 8
//	weight 4
//	color #FF00FF
//	background #000000
//	export [name]
package replay

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/opd-ai/go-kaleido/internal/config"
)

// Op is a script command.
type Op int

const (
	OpResize Op = iota
	OpOrigin
	OpDown
	OpMove
	OpUp
	OpLeave
	OpClear
	OpSymmetry
	OpWeight
	OpColor
	OpBackground
	OpExport
)

var opKeywords = [...]string{
	OpResize:     "resize",
	OpOrigin:     "origin",
	OpDown:       "down",
	OpMove:       "move",
	OpUp:         "up",
	OpLeave:      "leave",
	OpClear:      "clear",
	OpSymmetry:   "symmetry",
	OpWeight:     "weight",
	OpColor:      "color",
	OpBackground: "background",
	OpExport:     "export",
}

// String returns the script keyword of op.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opKeywords) {
		return "unknown"
	}
	return opKeywords[op]
}

func lookupOp(keyword string) (Op, bool) {
	for i, k := range opKeywords {
		if strings.EqualFold(k, keyword) {
			return Op(i), true
		}
	}
	return 0, false
}

// Step is one parsed script line.
type Step struct {
	// Line is the 1-based source line.
	Line int
	Op   Op
	// X and Y are the coordinates of down, move and origin.
	X, Y float64
	// W and H are the size of resize; W alone is the value of symmetry
	// and weight.
	W, H int
	// Color is the value of color and background.
	Color color.RGBA
	// Name is the optional file name of export.
	Name string
}

// Parse reads a gesture script.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		step, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		step.Line = lineNum
		steps = append(steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Step, error) {
	return Parse(strings.NewReader(s))
}

func parseLine(line string) (Step, error) {
	fields := strings.Fields(line)
	op, ok := lookupOp(fields[0])
	if !ok {
		return Step{}, fmt.Errorf("unknown command %q", fields[0])
	}
	args := fields[1:]
	step := Step{Op: op}

	var err error
	switch op {
	case OpResize:
		if err = wantArgs(op, args, 2); err != nil {
			return step, err
		}
		if step.W, err = parseInt(args[0]); err != nil {
			return step, err
		}
		step.H, err = parseInt(args[1])
	case OpOrigin, OpDown, OpMove:
		if err = wantArgs(op, args, 2); err != nil {
			return step, err
		}
		if step.X, err = parseFloat(args[0]); err != nil {
			return step, err
		}
		step.Y, err = parseFloat(args[1])
	case OpSymmetry, OpWeight:
		if err = wantArgs(op, args, 1); err != nil {
			return step, err
		}
		step.W, err = parseInt(args[0])
	case OpColor, OpBackground:
		if err = wantArgs(op, args, 1); err != nil {
			return step, err
		}
		step.Color, err = config.ParseColor(args[0])
	case OpExport:
		if len(args) > 1 {
			return step, fmt.Errorf("export takes at most one name, got %d arguments", len(args))
		}
		if len(args) == 1 {
			step.Name = args[0]
		}
	default:
		err = wantArgs(op, args, 0)
	}
	return step, err
}

func wantArgs(op Op, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d arguments, got %d", op, n, len(args))
	}
	return nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}
