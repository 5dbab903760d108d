package kaleido

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
)

// DefaultExportName is the file name used when none is configured.
const DefaultExportName = "kaleidoscope-flower.png"

func encodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Export writes the current raster to w as PNG. The surface is not
// modified. It returns ErrNotMounted when there is no surface.
func (r *Renderer) Export(w io.Writer) error {
	if r.surface == nil {
		return ErrNotMounted
	}
	cw := &countingWriter{w: w}
	if err := r.surface.EncodePNG(cw); err != nil {
		return err
	}
	r.emit(Event{
		Kind:    EventExport,
		Width:   r.surface.Width(),
		Height:  r.surface.Height(),
		Bytes:   cw.n,
		Session: r.sessionID(),
	})
	return nil
}

// ExportFile writes the raster as PNG to dir/name and returns the path. The
// file is written to a temporary sibling first and renamed into place, so a
// reader never observes a partial image. An empty name uses
// DefaultExportName; an empty dir uses the working directory.
func (r *Renderer) ExportFile(dir, name string) (string, error) {
	if r.surface == nil {
		return "", ErrNotMounted
	}
	if name == "" {
		name = DefaultExportName
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, name)

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := r.Export(tmp); err != nil {
		tmp.Close()
		cleanup()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("chmod export: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return "", fmt.Errorf("rename export: %w", err)
	}
	return path, nil
}
