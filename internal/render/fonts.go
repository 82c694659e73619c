package render

import (
	"math"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const defaultFontSize = 48

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// FontSet hands out faces of one font at arbitrary pixel sizes.
// It prefers the OpenType parser, falls back to freetype's TrueType
// parser, and finally to a fixed bitmap face.
type FontSet struct {
	otFont *opentype.Font
	ttFont *truetype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

func NewFontSet(data []byte, log logger) *FontSet {
	fs := &FontSet{faces: make(map[int]font.Face)}
	fnt, err := opentype.Parse(data)
	if err == nil {
		fs.otFont = fnt
		if log != nil {
			log.Infof("font", "loaded OpenType font")
		}
		return fs
	}
	if log != nil {
		log.Errorf("font", "opentype parse failed, trying truetype: %v", err)
	}
	tt, terr := truetype.Parse(data)
	if terr != nil {
		if log != nil {
			log.Errorf("font", "truetype parse failed, using basicfont: %v", terr)
		}
		return fs
	}
	fs.ttFont = tt
	if log != nil {
		log.Infof("font", "loaded TrueType font via freetype")
	}
	return fs
}

// Scalable reports whether faces honor the requested size.
func (fs *FontSet) Scalable() bool { return fs.otFont != nil || fs.ttFont != nil }

// Face returns a face for size pixels, cached per rounded size.
func (fs *FontSet) Face(size float64) font.Face {
	if size <= 0 {
		size = defaultFontSize
	}
	px := int(math.Max(1, math.Round(size)))

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if face, ok := fs.faces[px]; ok {
		return face
	}
	face := fs.newFace(float64(px))
	fs.faces[px] = face
	return face
}

func (fs *FontSet) newFace(px float64) font.Face {
	if fs.otFont != nil {
		face, err := opentype.NewFace(fs.otFont, &opentype.FaceOptions{Size: px, DPI: FontDPI, Hinting: font.HintingFull})
		if err == nil {
			return face
		}
	}
	if fs.ttFont != nil {
		return truetype.NewFace(fs.ttFont, &truetype.Options{Size: px, DPI: FontDPI, Hinting: font.HintingFull})
	}
	return basicfont.Face7x13
}
