package playback

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const DefaultInterval = 400 * time.Millisecond

// FrameFunc renders frame round (1 based) out of total.
type FrameFunc func(ctx context.Context, round, total int) error

// Player steps through rounds 1..total, rendering each frame and then
// pausing for the interval. The context is the cancellation token.
type Player struct {
	interval time.Duration
	wait     func(ctx context.Context, d time.Duration) error
}

func NewPlayer(interval time.Duration) *Player {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Player{
		interval: interval,
		wait:     sleep,
	}
}

func (p *Player) Interval() time.Duration {
	return p.interval
}

func (p *Player) Run(ctx context.Context, total int, frame FrameFunc) error {
	for round := 1; round <= total; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := frame(ctx, round, total); err != nil {
			return errors.Wrapf(err, "frame %d/%d", round, total)
		}
		if err := p.wait(ctx, p.interval); err != nil {
			return err
		}
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Controller keeps at most one playback in flight. Any new request cancels
// the running one before it starts.
type Controller struct {
	player *Player
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewController(player *Player) *Controller {
	return &Controller{player: player}
}

// Play starts a playback in its own goroutine. onDone receives the result of
// the run: nil when all frames were shown, context.Canceled when preempted.
func (c *Controller) Play(ctx context.Context, total int, frame FrameFunc, onDone func(error)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	go func() {
		defer close(done)
		defer cancel()
		err := c.player.Run(runCtx, total, frame)
		if onDone != nil {
			onDone(err)
		}
	}()
}

// Scrub cancels any playback and renders a single frame.
func (c *Controller) Scrub(ctx context.Context, round, total int, frame FrameFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
	return frame(ctx, round, total)
}

func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// stopLocked cancels the in-flight playback and waits for it to return so
// its frames never interleave with the next request.
func (c *Controller) stopLocked() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	<-c.done
	c.cancel = nil
	c.done = nil
}
