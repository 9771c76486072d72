package model

import (
	"sync"
	"time"
)

type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	increment   time.Duration
	lastStarted time.Time // When the clock was last started
	isRunning   bool
	untimed     bool
	now         func() time.Time
}

func NewClock(initialTime, increment time.Duration) *Clock {
	return &Clock{
		timeLeft:  initialTime,
		increment: increment,
		isRunning: false,
		untimed:   initialTime <= 0,
		now:       time.Now,
	}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

// Stop pauses the clock and credits the increment for the move just played.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= c.now().Sub(c.lastStarted)
		c.isRunning = false
		if c.timeLeft > 0 {
			c.timeLeft += c.increment
		}
	}
}

func (c *Clock) GetTimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.timeLeft - c.now().Sub(c.lastStarted)
	}
	return c.timeLeft
}

// Expired is never true for an untimed clock.
func (c *Clock) Expired() bool {
	return !c.untimed && c.GetTimeLeft() <= 0
}

// tenths is the unit the client renders clocks in.
func tenths(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d.Milliseconds() / 100)
}
