package settings

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type memPersister struct {
	saved   *Settings
	saveErr error
}

func (p *memPersister) Load(ctx context.Context) (Settings, bool, error) {
	if p.saved == nil {
		return Settings{}, false, nil
	}
	return *p.saved, true, nil
}

func (p *memPersister) Save(ctx context.Context, s Settings) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	p.saved = &s
	return nil
}

func TestStoreDefaults(t *testing.T) {
	tests := []struct {
		name        string
		persisted   *Settings
		prefersDark bool
		wantTheme   Theme
	}{
		{"first visit, light OS", nil, false, ThemeLight},
		{"first visit, dark OS", nil, true, ThemeDark},
		{"persisted wins over OS hint", &Settings{Theme: ThemeLight, Currency: "USD"}, true, ThemeLight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewStore(context.Background(), &memPersister{saved: tc.persisted}, tc.prefersDark)
			if err != nil {
				t.Fatalf("NewStore: %v", err)
			}
			if got := store.Get().Theme; got != tc.wantTheme {
				t.Fatalf("theme = %q, want %q", got, tc.wantTheme)
			}
		})
	}
}

func TestStoreUpdatePersistsAndNotifies(t *testing.T) {
	p := &memPersister{}
	store, err := NewStore(context.Background(), p, false)
	if err != nil {
		t.Fatal(err)
	}

	var seen []Theme
	unsubscribe := store.Subscribe(func(s Settings) {
		seen = append(seen, s.Theme)
	})

	updated, err := store.SetTheme(context.Background(), ThemeDark)
	if err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if updated.Theme != ThemeDark || store.Get().Theme != ThemeDark {
		t.Fatalf("theme after update = %q", store.Get().Theme)
	}
	if p.saved == nil || p.saved.Theme != ThemeDark {
		t.Fatalf("persisted = %+v", p.saved)
	}
	if len(seen) != 1 || seen[0] != ThemeDark {
		t.Fatalf("subscriber saw %v", seen)
	}

	unsubscribe()
	if _, err := store.SetTheme(context.Background(), ThemeLight); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 {
		t.Fatalf("unsubscribed subscriber still notified: %v", seen)
	}
}

func TestStoreUpdateFailuresLeaveStateUntouched(t *testing.T) {
	saveErr := errors.New("disk full")
	p := &memPersister{saveErr: saveErr}
	store, err := NewStore(context.Background(), p, false)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := store.SetTheme(context.Background(), ThemeDark); !errors.Is(err, saveErr) {
		t.Fatalf("err = %v, want wrapped save error", err)
	}
	if got := store.Get().Theme; got != ThemeLight {
		t.Fatalf("failed save changed theme to %q", got)
	}

	p.saveErr = nil
	if _, err := store.Update(context.Background(), func(s Settings) Settings {
		s.Theme = "sepia"
		return s
	}); err == nil {
		t.Fatal("invalid theme accepted")
	}
	if got := store.Get().Theme; got != ThemeLight {
		t.Fatalf("invalid update changed theme to %q", got)
	}
}

// Failed updates return the pre-change settings; that read must hold the
// lock, or it races with a concurrent successful update. Run with -race.
func TestStoreConcurrentUpdates(t *testing.T) {
	store, err := NewStore(context.Background(), nil, false)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := store.Update(context.Background(), func(s Settings) Settings {
				s.Theme = "sepia"
				return s
			})
			if err == nil {
				t.Error("invalid theme accepted")
			}
			if !got.Theme.Valid() {
				t.Errorf("failed update returned invalid settings %+v", got)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := store.SetTheme(context.Background(), ThemeDark); err != nil {
				t.Errorf("SetTheme: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := store.Get().Theme; got != ThemeDark {
		t.Fatalf("theme = %q, want dark", got)
	}
}
