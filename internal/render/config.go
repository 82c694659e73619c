package render

// Render defaults.
var (
	// Offscreen canvas size used when no viewport has been reported yet.
	CanvasWidth  = 1280
	CanvasHeight = 800

	// FPS is the render loop cadence.
	FPS = 30

	// FontDPI is fixed at 72 so font sizes are pixel sizes.
	FontDPI = 72.0
)
