// Package settings holds the user preferences behind the settings view: an
// observable store with a pluggable persistence port. Components read the
// current value or subscribe for changes; nothing reaches into a shared
// context object.
package settings

import (
	"context"
	"fmt"
	"sync"
)

// Theme is the colour scheme of the front end.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings is the full preference set. The zero value is not meaningful;
// use Defaults.
type Settings struct {
	Theme                Theme  `json:"theme"`
	Language             string `json:"language"` // BCP 47 tag, display only
	Currency             string `json:"currency"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
}

// Defaults returns the preferences of a first visit. prefersDark is the
// OS-level dark-mode hint, consulted only when nothing was persisted.
func Defaults(prefersDark bool) Settings {
	theme := ThemeLight
	if prefersDark {
		theme = ThemeDark
	}
	return Settings{Theme: theme, Language: "en", Currency: "USD", NotificationsEnabled: true}
}

// Persister loads and saves preferences. Load's second return is false when
// nothing has been persisted yet.
type Persister interface {
	Load(ctx context.Context) (Settings, bool, error)
	Save(ctx context.Context, s Settings) error
}

// Store is the observable settings holder. Get, Update and Subscribe are
// safe for concurrent use; subscribers are invoked synchronously, outside
// the store lock.
type Store struct {
	persister Persister

	mu      sync.Mutex
	current Settings
	nextID  int
	subs    map[int]func(Settings)
}

// NewStore builds a store seeded from the persister, or from Defaults when
// nothing was persisted. A nil persister keeps settings in memory only.
func NewStore(ctx context.Context, persister Persister, prefersDark bool) (*Store, error) {
	s := &Store{
		persister: persister,
		current:   Defaults(prefersDark),
		subs:      make(map[int]func(Settings)),
	}
	if persister != nil {
		saved, ok, err := persister.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		if ok {
			s.current = saved
		}
	}
	return s, nil
}

// Get returns the current settings.
func (s *Store) Get() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update applies fn to a copy of the current settings, persists the result
// and notifies subscribers. An invalid result or a persistence failure
// leaves the store unchanged.
func (s *Store) Update(ctx context.Context, fn func(Settings) Settings) (Settings, error) {
	s.mu.Lock()
	cur := s.current
	next := fn(cur)
	if !next.Theme.Valid() {
		s.mu.Unlock()
		return cur, fmt.Errorf("invalid theme %q", next.Theme)
	}
	if s.persister != nil {
		if err := s.persister.Save(ctx, next); err != nil {
			s.mu.Unlock()
			return cur, fmt.Errorf("save settings: %w", err)
		}
	}
	s.current = next
	subs := make([]func(Settings), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, notify := range subs {
		notify(next)
	}
	return next, nil
}

// SetTheme is the common update, exposed directly for the theme toggle.
func (s *Store) SetTheme(ctx context.Context, theme Theme) (Settings, error) {
	return s.Update(ctx, func(cur Settings) Settings {
		cur.Theme = theme
		return cur
	})
}

// Subscribe registers fn for every future change and returns a function
// that removes the subscription.
func (s *Store) Subscribe(fn func(Settings)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
