package engine

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/own"
	"github.com/gogpu/own/internal/cache"
)

// ShapeKind selects the outline of a Shape.
type ShapeKind uint8

const (
	// Circle of radius Size.
	Circle ShapeKind = iota
	// Triangle is an equilateral triangle inscribed in a circle of radius
	// Size, pointing up.
	Triangle
	// Rectangle is a square with half-side Size.
	Rectangle
)

// String returns the config name of k.
func (k ShapeKind) String() string {
	switch k {
	case Circle:
		return "circle"
	case Triangle:
		return "triangle"
	case Rectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// ParseShapeKind is the inverse of ShapeKind.String.
func ParseShapeKind(s string) (ShapeKind, error) {
	switch s {
	case "circle":
		return Circle, nil
	case "triangle":
		return Triangle, nil
	case "rectangle":
		return Rectangle, nil
	}
	return 0, fmt.Errorf("engine: unknown shape %q", s)
}

// Shape is a filled outline centered on its actor's position.
type Shape struct {
	Kind ShapeKind
	Size float64
	Fill RGBA
}

// Mask is an anti-aliased coverage mask of a shape outline.
// Center is the pixel of the mask that lands on the actor position.
type Mask struct {
	Alpha  *image.Alpha
	Center image.Point
}

type maskKey struct {
	kind ShapeKind
	size float64
}

// ShapeFactory creates shapes and caches their rasterized masks.
type ShapeFactory struct {
	masks *cache.Cache[maskKey, Mask]
}

// NewShapeFactory returns a factory keeping at most cacheSize masks alive.
func NewShapeFactory(cacheSize int) *ShapeFactory {
	return &ShapeFactory{masks: cache.New[maskKey, Mask](cacheSize)}
}

// Create returns an exclusively owned shape.
func (f *ShapeFactory) Create(kind ShapeKind, size float64, fill RGBA) own.Unique[Shape] {
	return own.NewUnique(&Shape{Kind: kind, Size: size, Fill: fill})
}

// Mask returns an owner of the mask for s. The caller must drop it.
// A shape whose size cannot be rasterized yields an empty handle.
func (f *ShapeFactory) Mask(s *Shape) own.Shared[Mask] {
	if !drawableSize(s.Size) {
		return own.Shared[Mask]{}
	}
	key := maskKey{kind: s.Kind, size: s.Size}
	return f.masks.Acquire(key, func() own.Shared[Mask] {
		return own.NewShared(rasterize(s.Kind, s.Size))
	})
}

// Stats reports mask cache counters.
func (f *ShapeFactory) Stats() cache.Stats {
	return f.masks.Stats()
}

// Destroy drops every cached mask.
func (f *ShapeFactory) Destroy() {
	f.masks.Clear()
}

// MaxShapeSize bounds the size of a drawable shape.
const MaxShapeSize = 4096

// drawableSize reports whether size is finite, positive and at most
// MaxShapeSize.
func drawableSize(size float64) bool {
	return size > 0 && size <= MaxShapeSize
}

// circleK is the cubic Bézier control distance for a quarter circle.
const circleK = 0.5522847498

// rasterize draws the outline of kind. size must satisfy drawableSize.
func rasterize(kind ShapeKind, size float64) *Mask {
	side := int(math.Ceil(size))*2 + 2
	c := float32(side) / 2
	r := float32(size)

	z := vector.NewRasterizer(side, side)
	switch kind {
	case Circle:
		k := r * circleK
		z.MoveTo(c+r, c)
		z.CubeTo(c+r, c+k, c+k, c+r, c, c+r)
		z.CubeTo(c-k, c+r, c-r, c+k, c-r, c)
		z.CubeTo(c-r, c-k, c-k, c-r, c, c-r)
		z.CubeTo(c+k, c-r, c+r, c-k, c+r, c)
	case Triangle:
		for i := 0; i < 3; i++ {
			a := -math.Pi/2 + float64(i)*2*math.Pi/3
			x := c + r*float32(math.Cos(a))
			y := c + r*float32(math.Sin(a))
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
	case Rectangle:
		z.MoveTo(c-r, c-r)
		z.LineTo(c+r, c-r)
		z.LineTo(c+r, c+r)
		z.LineTo(c-r, c+r)
	}
	z.ClosePath()

	alpha := image.NewAlpha(image.Rect(0, 0, side, side))
	z.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
	return &Mask{Alpha: alpha, Center: image.Pt(side/2, side/2)}
}

// drawMask composites fill through m onto dst with m.Center at pos.
func drawMask(dst draw.Image, m *Mask, pos Vec2, fill RGBA) {
	tl := image.Pt(int(math.Round(pos.X))-m.Center.X, int(math.Round(pos.Y))-m.Center.Y)
	r := image.Rectangle{Min: tl, Max: tl.Add(m.Alpha.Bounds().Size())}
	draw.DrawMask(dst, r, image.NewUniform(fill.NRGBA()), image.Point{}, m.Alpha, m.Alpha.Bounds().Min, draw.Over)
}
