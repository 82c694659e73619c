package input

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type Key string

const (
	Export Key = "export"
	Exit   Key = "exit"
)

type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Key
}

// ParseKey maps a key name as reported by a browser or terminal to an action.
func ParseKey(name string) (Key, error) {
	switch strings.TrimSpace(name) {
	case "p", "P":
		return Export, nil
	case "q", "Q", "F4":
		return Exit, nil
	}
	return "", fmt.Errorf("unbound key %q", name)
}

type NoopSource struct {
	ch   chan Key
	once sync.Once
}

func NewNoopSource() *NoopSource { return &NoopSource{ch: make(chan Key)} }

func (n *NoopSource) Start(ctx context.Context) error { return nil }

func (n *NoopSource) Stop() error {
	n.once.Do(func() { close(n.ch) })
	return nil
}

func (n *NoopSource) Events() <-chan Key { return n.ch }
