package system

// EnterGraphicsConsole hides the text console under the framebuffer and
// returns a function that restores it. Failures are logged, not fatal.
func EnterGraphicsConsole(l logger) (restore func()) {
	if err := SetGraphicsMode(); err != nil {
		logResult(l, "KD_GRAPHICS", err)
	} else {
		logResult(l, "KD_GRAPHICS set", nil)
	}
	logResult(l, "cursor hidden", HideCursor())
	return func() {
		logResult(l, "cursor shown", ShowCursor())
		logResult(l, "KD_TEXT set", RestoreTextMode())
	}
}

func logResult(l logger, what string, err error) {
	if l == nil {
		return
	}
	if err != nil {
		l.Errorf("tty", "%s failed: %v", what, err)
		return
	}
	l.Infof("tty", "%s", what)
}
