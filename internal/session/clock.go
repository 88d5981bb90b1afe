package session

import "time"

// Clock abstracts time so every timed flow (security check, goodbye screen,
// biometric scan) can be driven by a fake clock in tests. The machine never
// sets timers; it derives the state due at the observed instant.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }
