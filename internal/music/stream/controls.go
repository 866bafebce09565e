package stream

// Controls lets the player interrupt or pause an in-flight send loop.
// Stop aborts the stream when closed; Paused is polled between frames
// and may be nil.
type Controls struct {
	Stop   <-chan struct{}
	Paused func() bool
}

func (c *Controls) stopped() bool {
	if c == nil || c.Stop == nil {
		return false
	}
	select {
	case <-c.Stop:
		return true
	default:
		return false
	}
}

func (c *Controls) paused() bool {
	if c == nil || c.Paused == nil {
		return false
	}
	return c.Paused()
}
