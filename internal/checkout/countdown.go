package checkout

import (
	"time"
)

// The countdown is a local 1-second ticker owned by the controller.
// It is advisory: the backend's expiry of the hold is authoritative,
// and the confirm path independently refuses to fire after the
// locally computed deadline.

// startCountdownLocked starts the ticker for the current session.
// Callers must hold c.mu.
func (c *Controller) startCountdownLocked() {
	c.stopCountdownLocked()

	stop := make(chan struct{})
	c.stopTicker = stop
	sess := c.session
	once := c.expireOnce

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if sess.Remaining(c.now()) == 0 {
					once.Do(c.expire)
					return
				}
				c.notify()
			}
		}
	}()
}

// stopCountdownLocked releases the ticker. Callers must hold c.mu.
// Safe to call when no countdown is running.
func (c *Controller) stopCountdownLocked() {
	if c.stopTicker != nil {
		close(c.stopTicker)
		c.stopTicker = nil
	}
}

// expire moves the flow to Expired and clears the persisted session.
// Guarded by expireOnce so a re-rendered countdown cannot fire the
// transition twice.
func (c *Controller) expire() {
	c.mu.Lock()
	if c.state == StateCompleted || c.state == StateCancelled {
		c.mu.Unlock()
		return
	}
	c.stopCountdownLocked()
	c.state = StateExpired
	c.session = nil
	c.message = "your hold has expired"
	c.mu.Unlock()

	_ = c.store.Delete(c.slug, c.tierID, c.quantity)
	c.notify()
}
