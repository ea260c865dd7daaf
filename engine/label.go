package engine

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LabelFace draws short actor captions with the embedded Go Regular font.
type LabelFace struct {
	face  font.Face
	title cases.Caser
}

// NewLabelFace parses the embedded font at the given size in points (72 DPI).
func NewLabelFace(size float64) (*LabelFace, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("engine: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("engine: new face: %w", err)
	}
	return &LabelFace{face: face, title: cases.Title(language.English)}, nil
}

// Caption turns an actor name such as "red_circle" into "Red Circle".
func (l *LabelFace) Caption(name string) string {
	return l.title.String(strings.ReplaceAll(name, "_", " "))
}

// Measure returns the advance width of s in pixels.
func (l *LabelFace) Measure(s string) int {
	return font.MeasureString(l.face, s).Ceil()
}

// Draw renders s horizontally centered on at, with at on the baseline.
func (l *LabelFace) Draw(dst draw.Image, s string, at Vec2, c RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c.NRGBA()),
		Face: l.face,
	}
	x := math.Round(at.X) - float64(l.Measure(s))/2
	d.Dot = fixed.P(int(x), int(math.Round(at.Y)))
	d.DrawString(s)
}

// Destroy releases the face.
func (l *LabelFace) Destroy() {
	_ = l.face.Close()
}
