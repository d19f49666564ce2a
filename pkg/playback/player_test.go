package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	events []string
	rounds []int
	waits  []time.Duration
}

func (r *recorder) frame(ctx context.Context, round, total int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, round)
	r.events = append(r.events, "frame")
	return nil
}

func (r *recorder) wait(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits = append(r.waits, d)
	r.events = append(r.events, "wait")
	return ctx.Err()
}

func TestRunPlaysEveryRoundInOrder(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(0)
	p.wait = rec.wait

	if err := p.Run(context.Background(), 5, rec.frame); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(rec.rounds) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(rec.rounds))
	}
	for i, round := range rec.rounds {
		if round != i+1 {
			t.Fatalf("frame %d rendered round %d", i, round)
		}
	}
	for i, ev := range rec.events {
		want := "frame"
		if i%2 == 1 {
			want = "wait"
		}
		if ev != want {
			t.Fatalf("event %d = %s, want %s (%v)", i, ev, want, rec.events)
		}
	}
	for _, d := range rec.waits {
		if d != DefaultInterval {
			t.Fatalf("unexpected pause %s", d)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}
	p := NewPlayer(time.Millisecond)
	p.wait = rec.wait

	err := p.Run(ctx, 10, func(ctx context.Context, round, total int) error {
		if round == 3 {
			cancel()
		}
		return rec.frame(ctx, round, total)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(rec.rounds) != 3 {
		t.Fatalf("expected 3 frames before cancel, got %v", rec.rounds)
	}
}

func TestRunWrapsFrameError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPlayer(time.Millisecond)
	err := p.Run(context.Background(), 3, func(ctx context.Context, round, total int) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped frame error, got %v", err)
	}
}

func TestSleepHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancel, got %v", err)
	}
}

func TestControllerScrubPreemptsPlayback(t *testing.T) {
	p := NewPlayer(time.Hour)
	c := NewController(p)

	started := make(chan struct{})
	result := make(chan error, 1)
	c.Play(context.Background(), 10, func(ctx context.Context, round, total int) error {
		if round == 1 {
			close(started)
		}
		return nil
	}, func(err error) {
		result <- err
	})
	<-started

	var scrubbed int
	err := c.Scrub(context.Background(), 4, 10, func(ctx context.Context, round, total int) error {
		scrubbed = round
		return nil
	})
	if err != nil {
		t.Fatalf("Scrub returned error: %v", err)
	}
	if scrubbed != 4 {
		t.Fatalf("expected round 4, got %d", scrubbed)
	}
	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected preempted playback, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("playback was not preempted")
	}
}

func TestControllerPlayCompletes(t *testing.T) {
	rec := &recorder{}
	p := NewPlayer(time.Millisecond)
	p.wait = rec.wait
	c := NewController(p)

	result := make(chan error, 1)
	c.Play(context.Background(), 4, rec.frame, func(err error) { result <- err })
	select {
	case err := <-result:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("playback did not finish")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.rounds) != 4 {
		t.Fatalf("expected 4 frames, got %v", rec.rounds)
	}
	c.Stop()
}
