package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/ringclock/internal/assets"
)

var (
	black = color.RGBA{A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

func newTestCanvas(t *testing.T, w, h int) *Canvas {
	t.Helper()
	fonts := NewFontSet(assets.FontTTF, nil)
	require.True(t, fonts.Scalable())
	return NewCanvas(w, h, fonts)
}

func countNot(img *image.RGBA, rect image.Rectangle, bg color.RGBA) int {
	n := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if img.RGBAAt(x, y) != bg {
				n++
			}
		}
	}
	return n
}

func TestFillBackground(t *testing.T) {
	c := newTestCanvas(t, 20, 10)
	c.FillBackground(white)
	assert.Equal(t, 0, countNot(c.Image(), c.Image().Bounds(), white))
}

func TestResize(t *testing.T) {
	c := newTestCanvas(t, 20, 10)
	c.Resize(40, 30)
	w, h := c.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)

	c.Resize(0, 30)
	w, _ = c.Size()
	assert.Equal(t, 40, w)

	c.Resize(1<<62, 1<<62)
	w, h = c.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 30, h)

	c.Resize(maxCanvasSide+1, 30)
	w, _ = c.Size()
	assert.Equal(t, 40, w)
}

func TestMeasureTextScalesWithSize(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	small := c.MeasureText("12", TextStyle{Size: 10})
	large := c.MeasureText("12", TextStyle{Size: 40})
	assert.Greater(t, large.Width, small.Width)
	assert.Greater(t, large.Height, small.Height)
	assert.Equal(t, large.Ascent+large.Descent, large.Height)
}

func TestDrawLineVertical(t *testing.T) {
	c := newTestCanvas(t, 40, 40)
	c.FillBackground(black)
	c.DrawLine(20, 20, 20, 2, 2, white)

	img := c.Image()
	// Pixels 19 and 20 are fully covered by a 2px stroke centered on x=20.
	assert.Equal(t, white, img.RGBAAt(20, 10))
	assert.Equal(t, white, img.RGBAAt(19, 10))
	assert.Equal(t, black, img.RGBAAt(25, 10))
	assert.Equal(t, black, img.RGBAAt(20, 30))
}

func TestDrawLineDegenerate(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	c.FillBackground(black)
	c.DrawLine(5, 5, 5, 5, 2, white)
	c.DrawLine(1, 1, 8, 8, 0, white)
	assert.Equal(t, 0, countNot(c.Image(), c.Image().Bounds(), black))
}

func TestDrawRotatedTextCentered(t *testing.T) {
	c := newTestCanvas(t, 200, 200)
	c.FillBackground(black)
	c.DrawRotatedText("8", 100, 100, 0, TextStyle{Color: white, Size: 40})

	img := c.Image()
	assert.Greater(t, countNot(img, image.Rect(80, 80, 120, 120), black), 20)
	assert.Equal(t, 0, countNot(img, image.Rect(0, 0, 60, 200), black))
	assert.Equal(t, 0, countNot(img, image.Rect(140, 0, 200, 200), black))
}

func TestDrawRotatedTextTurnsGlyph(t *testing.T) {
	c := newTestCanvas(t, 200, 200)
	c.FillBackground(black)
	c.DrawRotatedText("1111111", 100, 100, 0, TextStyle{Color: white, Size: 20})
	img := c.Image()
	// A wide horizontal run stays out of the vertical band above and below the center.
	assert.Equal(t, 0, countNot(img, image.Rect(90, 0, 110, 60), black))

	c.FillBackground(black)
	c.DrawRotatedText("1111111", 100, 100, 90, TextStyle{Color: white, Size: 20})
	assert.Greater(t, countNot(img, image.Rect(85, 50, 115, 80), black), 0)
	assert.Equal(t, 0, countNot(img, image.Rect(0, 90, 60, 110), black))
}

func TestSpriteCache(t *testing.T) {
	c := newTestCanvas(t, 10, 10)
	style := TextStyle{Color: white, Size: 12}
	a := c.sprite("42", style)
	b := c.sprite("42", style)
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.Nil(t, c.sprite("", style))
}

func TestDrawImageInRectFit(t *testing.T) {
	c := newTestCanvas(t, 100, 50)
	c.FillBackground(black)
	square := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := range square.Pix {
		square.Pix[i] = 0xFF
	}
	c.DrawImageInRect(square, image.Rect(0, 0, 100, 50), ScaleModeFit)

	img := c.Image()
	assert.Equal(t, white, img.RGBAAt(50, 25))
	// Fit keeps the square aspect, so the far left stays untouched.
	assert.Equal(t, black, img.RGBAAt(5, 25))
}

func TestFitRect(t *testing.T) {
	assert.Equal(t, image.Rect(25, 0, 75, 50), fitRect(image.Rect(0, 0, 10, 10), image.Rect(0, 0, 100, 50)))
	assert.Equal(t, image.Rectangle{}, fitRect(image.Rect(0, 0, 0, 10), image.Rect(0, 0, 100, 50)))
}

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 64, nil, nil)
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = GenerateQRCodeImage("http://ringclock.local:8080/", 128, white, black)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 128, img.Bounds().Dx())
}
