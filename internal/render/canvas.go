package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// maxCanvasSide caps either dimension of the surface.
const maxCanvasSide = 8192

// maxSprites bounds the rendered-text cache; it is cleared when exceeded.
const maxSprites = 2048

type spriteKey struct {
	text  string
	size  int
	color color.NRGBA
}

// Canvas is an offscreen RGBA surface implementing Drawer.
type Canvas struct {
	img     *image.RGBA
	fonts   *FontSet
	sprites map[spriteKey]*image.NRGBA
}

func NewCanvas(width, height int, fonts *FontSet) *Canvas {
	return &Canvas{
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
		fonts:   fonts,
		sprites: make(map[spriteKey]*image.NRGBA),
	}
}

// Resize reallocates the surface when the size changed. Sizes outside
// (0, maxCanvasSide] are ignored.
func (c *Canvas) Resize(width, height int) {
	if width <= 0 || height <= 0 || width > maxCanvasSide || height > maxCanvasSide {
		return
	}
	b := c.img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Image exposes the backing image. It is reused between frames.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Snapshot returns a copy of the current pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	out := image.NewRGBA(c.img.Bounds())
	copy(out.Pix, c.img.Pix)
	return out
}

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) FillBackground(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{C: col}, image.Point{}, draw.Src)
}

func (c *Canvas) MeasureText(text string, style TextStyle) TextMetrics {
	face := c.fonts.Face(style.Size)
	metrics := face.Metrics()
	d := &font.Drawer{Face: face}
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	return TextMetrics{
		Width:   d.MeasureString(text).Ceil(),
		Height:  ascent + descent,
		Ascent:  ascent,
		Descent: descent,
	}
}

func (c *Canvas) DrawRotatedText(text string, cx, cy, deg float64, style TextStyle) {
	sprite := c.sprite(text, style)
	if sprite == nil {
		return
	}
	b := sprite.Bounds()
	hw, hh := float64(b.Dx())/2, float64(b.Dy())/2
	sin, cos := math.Sincos(deg * math.Pi / 180)
	// Maps sprite pixels to canvas pixels: rotate around the sprite
	// center, then move the center onto (cx, cy).
	m := f64.Aff3{
		cos, -sin, cx - cos*hw + sin*hh,
		sin, cos, cy - sin*hw - cos*hh,
	}
	xdraw.BiLinear.Transform(c.img, m, sprite, b, xdraw.Over, nil)
}

// sprite renders text once into a tight, colored, transparent image.
func (c *Canvas) sprite(text string, style TextStyle) *image.NRGBA {
	if text == "" {
		return nil
	}
	fg := color.NRGBA{A: 0xFF}
	if style.Color != nil {
		fg = color.NRGBAModel.Convert(style.Color).(color.NRGBA)
	}
	key := spriteKey{text: text, size: int(math.Round(style.Size)), color: fg}
	if s, ok := c.sprites[key]; ok {
		return s
	}

	m := c.MeasureText(text, style)
	if m.Width <= 0 || m.Height <= 0 {
		return nil
	}
	const pad = 1
	mask := image.NewAlpha(image.Rect(0, 0, m.Width+2*pad, m.Height+2*pad))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: c.fonts.Face(style.Size),
		Dot:  fixed.P(pad, pad+m.Ascent),
	}
	d.DrawString(text)

	sprite := image.NewNRGBA(mask.Bounds())
	for i, a := range mask.Pix {
		if a == 0 {
			continue
		}
		sprite.Pix[4*i] = fg.R
		sprite.Pix[4*i+1] = fg.G
		sprite.Pix[4*i+2] = fg.B
		sprite.Pix[4*i+3] = uint8(uint16(a) * uint16(fg.A) / 0xFF)
	}

	if len(c.sprites) >= maxSprites {
		c.sprites = make(map[spriteKey]*image.NRGBA)
	}
	c.sprites[key] = sprite
	return sprite
}

func (c *Canvas) DrawLine(x0, y0, x1, y1, width float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return
	}
	// Offset perpendicular to the segment by half the stroke width.
	nx, ny := -dy/length*width/2, dx/length*width/2

	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
	z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

func (c *Canvas) DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode) {
	if img == nil || rect.Empty() {
		return
	}
	dst := rect
	if mode == ScaleModeFit {
		dst = fitRect(img.Bounds(), rect)
	}
	xdraw.NearestNeighbor.Scale(c.img, dst, img, img.Bounds(), xdraw.Over, nil)
}

// fitRect scales src into rect keeping its aspect ratio, centered.
func fitRect(src, rect image.Rectangle) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return image.Rectangle{}
	}
	scale := math.Min(float64(rect.Dx())/float64(sw), float64(rect.Dy())/float64(sh))
	w := int(float64(sw) * scale)
	h := int(float64(sh) * scale)
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
