package state

import (
	"sync"

	"github.com/rook-computer/ringclock/internal/clock"
	"github.com/rook-computer/ringclock/internal/theme"
)

// State is the application state read by screens each frame.
type State struct {
	Zone      clock.Zone
	ThemeName string
	Mode      theme.Mode

	// Palette is derived from ThemeName and Mode.
	Palette theme.Palette

	Width  int
	Height int
}

type Store struct {
	mu    sync.RWMutex
	state State
}

func NewStore() *Store {
	def := theme.Default()
	return &Store{state: State{
		Zone:      clock.Local,
		ThemeName: def.Name,
		Mode:      theme.Dark,
		Palette:   def.Dark,
	}}
}

func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.state
}

func (store *Store) SetZone(zone clock.Zone) {
	store.mu.Lock()
	store.state.Zone = zone
	store.mu.Unlock()
}

// SetTheme stores the catalog name for name; unknown names select the default theme.
func (store *Store) SetTheme(name string) {
	store.mu.Lock()
	store.state.ThemeName = theme.Resolve(name)
	store.applyTheme()
	store.mu.Unlock()
}

func (store *Store) SetMode(mode theme.Mode) {
	store.mu.Lock()
	store.state.Mode = mode
	store.applyTheme()
	store.mu.Unlock()
}

func (store *Store) SetViewport(width, height int) {
	store.mu.Lock()
	store.state.Width = width
	store.state.Height = height
	store.mu.Unlock()
}

// applyTheme recomputes the palette; callers hold the write lock.
func (store *Store) applyTheme() {
	store.state.Palette = theme.Lookup(store.state.ThemeName, store.state.Mode)
}
