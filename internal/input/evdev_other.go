//go:build !linux

package input

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevSource has no devices to read outside Linux.
type EvdevSource struct{ NoopSource }

func NewEvdevSource(logger logger) *EvdevSource {
	if logger != nil {
		logger.Infof("input", "evdev input unsupported on this platform")
	}
	return &EvdevSource{NoopSource: NoopSource{ch: make(chan Key)}}
}
