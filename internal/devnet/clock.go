package devnet

import (
	"fmt"
	"sync"
	"time"
)

// Clock supplies the block time of the next block.
type Clock interface {
	Now() time.Time
}

// WallClock follows the host clock, truncated to whole seconds.
type WallClock struct{}

func (WallClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// ManualClock only moves when told to and never goes backwards.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start.UTC().Truncate(time.Second)}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Advance(d time.Duration) (time.Time, error) {
	if d < 0 {
		return c.Now(), fmt.Errorf("cannot advance clock by negative duration %s", d)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d).Truncate(time.Second)
	return c.now, nil
}

func (c *ManualClock) AdvanceTo(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.Before(c.now) {
		return fmt.Errorf("cannot move clock back from %s to %s", c.now.Format(time.RFC3339), t.Format(time.RFC3339))
	}
	c.now = t.UTC().Truncate(time.Second)
	return nil
}
