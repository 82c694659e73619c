package screens

import (
	"context"
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"

	"github.com/rook-computer/ringclock/internal/clock"
	"github.com/rook-computer/ringclock/internal/dial"
	"github.com/rook-computer/ringclock/internal/render"
	"github.com/rook-computer/ringclock/internal/render/layout"
	"github.com/rook-computer/ringclock/internal/state"
	"github.com/rook-computer/ringclock/internal/theme"
)

// qrFraction is the QR code edge relative to the shorter viewport side.
const qrFraction = 0.12

// ClockScreen paints the rotating-ring clock face.
type ClockScreen struct {
	Source clock.Source
	Logger Logger

	// QRPayload, when set, is shown as a QR code in the bottom-right corner.
	QRPayload string

	mu      sync.Mutex
	qrKey   qrKey
	qrImage image.Image
}

type qrKey struct {
	palette theme.Palette
	size    int
}

func NewClockScreen(source clock.Source, logger Logger) *ClockScreen {
	return &ClockScreen{Source: source, Logger: logger}
}

func (s *ClockScreen) Start(ctx context.Context) error { return nil }
func (s *ClockScreen) Stop() error                     { return nil }

func (s *ClockScreen) Draw(d render.Drawer, st state.State) {
	width, height := d.Size()
	pal := st.Palette
	d.FillBackground(pal.BG)

	source := s.Source
	if source == nil {
		source = clock.RealSource{}
	}
	ct := clock.Resolve(source.Now(), st.Zone)
	angles := dial.RingAngles(ct)

	cx, cy := float64(width)/2, float64(height)/2
	diameter := dial.Diameter(width, height)

	// Resting hands point at 12; the rings move underneath them.
	stroke := math.Max(2, diameter/250)
	d.DrawLine(cx, cy, cx, cy-diameter*dial.ShortHand, stroke, pal.FG)
	d.DrawLine(cx, cy, cx, cy-diameter*dial.LongHand, stroke, pal.FG)

	drawRing(d, dial.HourRing, angles.Hours, cx, cy, diameter, pal.FG)
	drawRing(d, dial.MinuteRing, angles.Minutes, cx, cy, diameter, pal.FG)
	drawRing(d, dial.SecondRing, angles.Seconds, cx, cy, diameter, pal.FG)

	if s.QRPayload != "" {
		s.drawQR(d, width, height, pal)
	}
}

func drawRing(d render.Drawer, ring dial.Ring, angle, cx, cy, diameter float64, fg color.Color) {
	style := render.TextStyle{Color: fg, Size: diameter * ring.TextSize}
	radius := diameter * ring.Radius
	for i := 1; i <= ring.Count; i++ {
		x, y := dial.DigitPosition(i, ring.Count, radius)
		x, y = dial.Rotate(x, y, angle)
		d.DrawRotatedText(strconv.Itoa(i), cx+x, cy+y, angle, style)
	}
}

func (s *ClockScreen) drawQR(d render.Drawer, width, height int, pal theme.Palette) {
	size := int(float64(min(width, height)) * qrFraction)
	if size <= 0 {
		return
	}
	img := s.qrCode(size, pal)
	if img == nil {
		return
	}
	margin := size / 8
	area := layout.Inset(image.Rect(0, 0, width, height), margin)
	d.DrawImageInRect(img, layout.AnchorBottomRight(area, size, size), render.ScaleModeFit)
}

// qrCode regenerates the code only when the palette or size changed.
func (s *ClockScreen) qrCode(size int, pal theme.Palette) image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := qrKey{palette: pal, size: size}
	if s.qrImage != nil && s.qrKey == key {
		return s.qrImage
	}
	img, err := render.GenerateQRCodeImage(s.QRPayload, size, pal.FG, pal.BG)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Errorf("screen", "qr code generation failed: %v", err)
		}
		return nil
	}
	s.qrKey, s.qrImage = key, img
	return img
}
