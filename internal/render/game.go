package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/opd-ai/go-kaleido/internal/kaleido"
)

// ErrGameTerminated is returned when the game loop is terminated via context cancellation.
var ErrGameTerminated = errors.New("game terminated")

// ErrorHandler is a function type for handling errors during game updates.
type ErrorHandler func(err error)

// ExportHandler is called with the path of every image saved from the
// keyboard.
type ExportHandler func(path string)

// DefaultErrorHandler writes errors to stderr.
func DefaultErrorHandler(err error) {
	fmt.Fprintf(os.Stderr, "update error: %v\n", err)
}

// TextRendererInterface defines the interface for text rendering.
// This allows for mocking in tests.
type TextRendererInterface interface {
	DrawText(screen *ebiten.Image, textStr string, x, y float64, clr color.RGBA)
	MeasureText(textStr string) (width, height float64)
	LineHeight() float64
	SetFontSize(size float64)
	FontSize() float64
}

// Game implements ebiten.Game around a kaleido.Renderer. Input is polled
// and applied in Update, the raster is uploaded in Draw only when it
// changed, and Layout keeps the canvas the size of the window.
type Game struct {
	config        Config
	renderer      *kaleido.Renderer
	controls      *kaleido.Controls
	input         InputSource
	textRenderer  TextRendererInterface
	errorHandler  ErrorHandler
	exportHandler ExportHandler
	ctx           context.Context
	now           func() time.Time
	mu            sync.RWMutex

	width, height int
	bgGen         uint64
	showHUD       bool
	status        string
	statusUntil   time.Time

	canvas       *ebiten.Image
	drawnVersion uint64
	pixBuf       []byte
	running      bool
}

// NewGame creates a Game drawing with renderer and reading its parameters
// from controls. The renderer must use controls as its ParamSource.
func NewGame(config Config, renderer *kaleido.Renderer, controls *kaleido.Controls) *Game {
	return NewGameWithRenderer(config, renderer, controls, NewEbitenInput(), NewTextRenderer())
}

// NewGameWithRenderer creates a Game with a custom input source and text
// renderer. This is useful for testing.
func NewGameWithRenderer(config Config, renderer *kaleido.Renderer, controls *kaleido.Controls,
	input InputSource, textRenderer TextRendererInterface,
) *Game {
	return &Game{
		config:       config,
		renderer:     renderer,
		controls:     controls,
		input:        input,
		textRenderer: textRenderer,
		errorHandler: DefaultErrorHandler,
		now:          time.Now,
		bgGen:        controls.BackgroundGeneration(),
		showHUD:      config.ShowHUD,
	}
}

// SetErrorHandler sets a custom error handler for update errors.
// If nil is passed, errors will be silently ignored.
func (g *Game) SetErrorHandler(handler ErrorHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errorHandler = handler
}

// SetExportHandler sets the callback for saved images.
func (g *Game) SetExportHandler(handler ExportHandler) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.exportHandler = handler
}

// SetContext sets a context for the game loop. When the context is cancelled,
// the game loop will terminate gracefully.
func (g *Game) SetContext(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
}

// Config returns the current configuration.
func (g *Game) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the configuration in place. Export and overlay
// settings apply immediately; a size change applies to a non-resizable
// window on the next layout.
func (g *Game) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if config.ShowHUD != g.config.ShowHUD {
		g.showHUD = config.ShowHUD
	}
	g.config = config
}

// Renderer returns the renderer driven by the game.
func (g *Game) Renderer() *kaleido.Renderer {
	return g.renderer
}

// Update implements ebiten.Game.Update.
// It is called every tick (typically 60 times per second).
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ctx != nil {
		select {
		case <-g.ctx.Done():
			return ErrGameTerminated
		default:
		}
	}

	// A background change from the keyboard or a config reload repaints
	// the canvas.
	if gen := g.controls.BackgroundGeneration(); gen != g.bgGen {
		g.bgGen = gen
		g.renderer.Clear()
	}

	if g.input == nil {
		return nil
	}
	for _, in := range g.input.Poll(g.width, g.height) {
		if err := g.handleInput(in); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) handleInput(in Input) error {
	switch in.Kind {
	case InputPointerDown:
		g.renderer.PointerDown(in.X, in.Y)
	case InputPointerMove:
		g.renderer.PointerMove(in.X, in.Y)
	case InputPointerUp:
		g.renderer.PointerUp()
	case InputPointerLeave:
		g.renderer.PointerLeave()
	case InputSymmetryUp:
		g.setStatus(fmt.Sprintf("symmetry %d", g.controls.AdjustSymmetry(1)))
	case InputSymmetryDown:
		g.setStatus(fmt.Sprintf("symmetry %d", g.controls.AdjustSymmetry(-1)))
	case InputWeightUp:
		g.setStatus(fmt.Sprintf("weight %d", g.controls.AdjustWeight(1)))
	case InputWeightDown:
		g.setStatus(fmt.Sprintf("weight %d", g.controls.AdjustWeight(-1)))
	case InputSelectStroke:
		g.controls.SelectStroke(in.Index)
	case InputCycleBackground:
		g.controls.CycleBackground()
		g.bgGen = g.controls.BackgroundGeneration()
		g.renderer.Clear()
	case InputClear:
		g.renderer.Clear()
	case InputSave:
		g.save()
	case InputToggleHUD:
		g.showHUD = !g.showHUD
	case InputQuit:
		return ebiten.Termination
	}
	return nil
}

func (g *Game) save() {
	path, err := g.renderer.ExportFile(g.config.ExportDir, g.config.ExportName)
	if err != nil {
		g.setStatus("save failed")
		if g.errorHandler != nil {
			g.errorHandler(fmt.Errorf("export: %w", err))
		}
		return
	}
	g.setStatus("saved " + path)
	if g.exportHandler != nil {
		g.exportHandler(path)
	}
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.now().Add(g.config.StatusDuration)
}

// Status returns the current status message, or "" once it expired.
func (g *Game) Status() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.currentStatus()
}

func (g *Game) currentStatus() string {
	if g.status == "" || !g.now().Before(g.statusUntil) {
		return ""
	}
	return g.status
}

// HUDVisible reports whether the overlay is drawn.
func (g *Game) HUDVisible() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.showHUD
}

// Draw implements ebiten.Game.Draw.
// It is called every frame to render the screen.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	defer g.mu.Unlock()

	surf := g.renderer.Surface()
	if surf == nil {
		screen.Fill(g.controls.Params().BackgroundColor)
		return
	}

	w, h := surf.Width(), surf.Height()
	if g.canvas == nil || g.canvas.Bounds().Dx() != w || g.canvas.Bounds().Dy() != h {
		if g.canvas != nil {
			g.canvas.Deallocate()
		}
		g.canvas = ebiten.NewImage(w, h)
		g.drawnVersion = 0
	}
	if v := surf.Version(); v != g.drawnVersion {
		g.pixBuf = surf.AppendPremultiplied(g.pixBuf)
		g.canvas.WritePixels(g.pixBuf)
		g.drawnVersion = v
	}
	screen.DrawImage(g.canvas, nil)

	if !g.showHUD || g.textRenderer == nil {
		return
	}
	lines := HUDLines(g.controls.Params(), g.currentStatus(), g.textRenderer.LineHeight(), g.config.HUDColor)
	for _, line := range lines {
		g.textRenderer.DrawText(screen, line.Text, line.X, line.Y, line.Color)
	}
}

// Layout implements ebiten.Game.Layout.
// A resizable window maps one logical pixel to one window pixel, so the
// canvas follows the window size; a fixed window keeps the configured size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	w, h := outsideWidth, outsideHeight
	if !g.config.Resizable {
		w, h = g.config.Width, g.config.Height
	}
	if w != g.width || h != g.height || !g.renderer.Mounted() {
		g.width, g.height = w, h
		g.renderer.Resize(w, h)
	}
	return max(w, 1), max(h, 1)
}

// Run starts the Ebiten game loop.
// This function blocks until the window is closed.
func (g *Game) Run() error {
	cfg := g.Config()
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}

	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	err := ebiten.RunGame(g)

	g.mu.Lock()
	g.running = false
	g.mu.Unlock()

	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// IsRunning returns whether the game loop is currently running.
func (g *Game) IsRunning() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.running
}
