//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	keyP  = 25
	keyF4 = 62

	keyPressed = 1
)

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// EvdevSource reads key presses from Linux evdev devices under /dev/input/event*.
// It is best-effort: without readable devices it logs and stays silent.
type EvdevSource struct {
	Pattern string
	Logger  logger

	events chan Key
	wg     sync.WaitGroup
	once   sync.Once
}

func NewEvdevSource(logger logger) *EvdevSource {
	return &EvdevSource{Pattern: "/dev/input/event*", Logger: logger, events: make(chan Key, 8)}
}

func (s *EvdevSource) Events() <-chan Key { return s.events }

func (s *EvdevSource) Start(ctx context.Context) error {
	paths, err := filepath.Glob(s.Pattern)
	if err != nil || len(paths) == 0 {
		if s.Logger != nil {
			s.Logger.Infof("input", "no evdev devices found")
		}
		return nil
	}
	for _, path := range paths {
		s.wg.Add(1)
		go func(p string) {
			defer s.wg.Done()
			s.watch(ctx, p)
		}(path)
	}
	return nil
}

// Stop waits for readers to exit; cancel the Start context first.
func (s *EvdevSource) Stop() error {
	s.wg.Wait()
	s.once.Do(func() { close(s.events) })
	return nil
}

func (s *EvdevSource) watch(ctx context.Context, path string) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4
	buf := make([]byte, 4096)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			key, ok := decodeEvent(buf[off:off+eventSize], tvSize)
			if !ok {
				continue
			}
			select {
			case s.events <- key:
			case <-ctx.Done():
				return
			}
		}
	}
}

// decodeEvent maps one input_event record to a key action.
func decodeEvent(rec []byte, tvSize int) (Key, bool) {
	typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
	code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
	value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
	if typ != evKey || value != keyPressed {
		return "", false
	}
	switch code {
	case keyP:
		return Export, true
	case keyF4:
		return Exit, true
	}
	return "", false
}
