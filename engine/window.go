package engine

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gogpu/own"
)

// FrameSink receives every displayed frame. img is reused by the window
// after WriteFrame returns.
type FrameSink interface {
	WriteFrame(index int, img *image.RGBA) error
}

// DiscardSink drops every frame.
type DiscardSink struct{}

// WriteFrame implements FrameSink.
func (DiscardSink) WriteFrame(int, *image.RGBA) error { return nil }

// PNGSink writes frame-00000.png, frame-00001.png, ... into Dir.
type PNGSink struct {
	Dir string
}

// WriteFrame implements FrameSink.
func (s PNGSink) WriteFrame(index int, img *image.RGBA) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("engine: create frame dir: %w", err)
	}
	name := filepath.Join(s.Dir, fmt.Sprintf("frame-%05d.png", index))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("engine: create frame: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("engine: encode %s: %w", name, err)
	}
	return f.Close()
}

// Window is an offscreen render target. It stays open until Close.
type Window struct {
	Title string

	canvas *image.RGBA
	sink   FrameSink
	open   bool
	frames int
}

// NewWindow returns an open window of the given size. A nil sink discards
// frames.
func NewWindow(title string, width, height int, sink FrameSink) (*Window, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("engine: window size %dx%d: %w", width, height, ErrInvalidSize)
	}
	if sink == nil {
		sink = DiscardSink{}
	}
	return &Window{
		Title:  title,
		canvas: image.NewRGBA(image.Rect(0, 0, width, height)),
		sink:   sink,
		open:   true,
	}, nil
}

// IsOpen reports whether the window accepts frames.
func (w *Window) IsOpen() bool { return w.open }

// Close closes the window. Further Display calls fail.
func (w *Window) Close() {
	if !w.open {
		return
	}
	w.open = false
	own.Logger().Debug("engine: window closed", "title", w.Title, "frames", w.frames)
}

// Destroy implements own.Destroyer.
func (w *Window) Destroy() { w.Close() }

// Bounds returns the canvas rectangle.
func (w *Window) Bounds() image.Rectangle { return w.canvas.Bounds() }

// Canvas returns the back buffer.
func (w *Window) Canvas() *image.RGBA { return w.canvas }

// Frames returns the number of frames displayed so far.
func (w *Window) Frames() int { return w.frames }

// Clear fills the back buffer with c.
func (w *Window) Clear(c RGBA) {
	draw.Draw(w.canvas, w.canvas.Bounds(), image.NewUniform(c.NRGBA()), image.Point{}, draw.Src)
}

// Draw composites m filled with fill, centered at pos.
func (w *Window) Draw(m *Mask, pos Vec2, fill RGBA) {
	drawMask(w.canvas, m, pos, fill)
}

// Display hands the back buffer to the sink.
func (w *Window) Display() error {
	if !w.open {
		return ErrWindowClosed
	}
	if err := w.sink.WriteFrame(w.frames, w.canvas); err != nil {
		return err
	}
	w.frames++
	return nil
}
