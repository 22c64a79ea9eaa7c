package util

import "time"

// Clock provides the current time. Run code takes a Clock rather than
// calling time.Now directly so that tests can pin log and marker timestamps.
type Clock interface {
	Now() time.Time
}

type DefaultClock struct{}

func (c *DefaultClock) Now() time.Time { return time.Now() }

// DummyClock always reports T. Tests mutate T to move time forward.
type DummyClock struct {
	T time.Time
}

func (c *DummyClock) Now() time.Time {
	return c.T
}
