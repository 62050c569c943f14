package scenario

import (
	"fmt"
	"sync"
	"time"
)

// Clock is the simulated wall clock of a run.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// FileTimes is a simulated filesystem keeping only access times. It serves
// as the tracker's StatSource during a run.
type FileTimes struct {
	mu    sync.RWMutex
	times map[string]time.Time
}

// NewFileTimes creates an empty simulated filesystem.
func NewFileTimes() *FileTimes {
	return &FileTimes{times: make(map[string]time.Time)}
}

// Access records that path was read at t.
func (f *FileTimes) Access(path string, t time.Time) {
	if path == "" {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.times[path] = t
}

func (f *FileTimes) AccessTime(path string) (time.Time, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	t, ok := f.times[path]
	if !ok {
		return time.Time{}, fmt.Errorf("%s: no such file", path)
	}
	return t, nil
}
