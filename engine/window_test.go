package engine

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/own"
)

type recordSink struct {
	indices []int
	last    *image.RGBA
}

func (s *recordSink) WriteFrame(index int, img *image.RGBA) error {
	s.indices = append(s.indices, index)
	s.last = img
	return nil
}

func TestNewWindowInvalidSize(t *testing.T) {
	_, err := NewWindow("bad", 0, 10, nil)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestWindowDisplay(t *testing.T) {
	sink := &recordSink{}
	w, err := NewWindow("t", 8, 4, sink)
	require.NoError(t, err)
	assert.True(t, w.IsOpen())
	assert.Equal(t, image.Rect(0, 0, 8, 4), w.Bounds())

	w.Clear(RGB(0, 0, 1))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, w.Canvas().RGBAAt(3, 2))

	require.NoError(t, w.Display())
	require.NoError(t, w.Display())
	assert.Equal(t, []int{0, 1}, sink.indices)
	assert.Equal(t, 2, w.Frames())

	w.Close()
	assert.False(t, w.IsOpen())
	assert.ErrorIs(t, w.Display(), ErrWindowClosed)
}

func TestWindowDraw(t *testing.T) {
	w, err := NewWindow("t", 40, 40, nil)
	require.NoError(t, err)
	w.Clear(RGB(0, 0, 0))
	w.Draw(rasterize(Rectangle, 5), Vec2{20, 20}, RGB(1, 0, 0))

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, w.Canvas().RGBAAt(20, 20))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, w.Canvas().RGBAAt(2, 2))
}

func TestUniqueWindowClosesOnDrop(t *testing.T) {
	w, err := NewWindow("t", 2, 2, nil)
	require.NoError(t, err)
	u := own.NewUnique(w)
	u.Drop()
	assert.False(t, w.IsOpen())
}

func TestPNGSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	w, err := NewWindow("t", 3, 3, PNGSink{Dir: dir})
	require.NoError(t, err)
	w.Clear(RGB(0, 1, 0))
	require.NoError(t, w.Display())

	f, err := os.Open(filepath.Join(dir, "frame-00000.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := img.At(1, 1).RGBA()
	assert.Equal(t, []uint32{0, 0xffff, 0}, []uint32{r, g, b})
}
