package kli

import (
	"sync"
	"time"
)

// Frame describes one animation tick.
type Frame struct {
	// Delta is the time since the previous tick, zero on the first tick
	// after a start or resume.
	Delta time.Duration
	// Elapsed is the running time excluding pauses.
	Elapsed time.Duration
	// Count is the number of ticks since the last Clear.
	Count int
}

// DeltaFrame drives animations at a fixed rate. Ticks are delivered to
// OnFrame through post, so listeners can mutate the scene when post is a
// Renderer's Post.
type DeltaFrame struct {
	// OnFrame fires on every tick.
	OnFrame Signal[Frame]

	interval  time.Duration
	autoStart bool
	post      func(func())
	now       func() time.Time

	mu          sync.Mutex
	frame       Frame
	paused      bool
	last        time.Time
	started     time.Time
	pausedTotal time.Duration
	pauseStart  time.Time
	stop        chan struct{}
}

// FrameInterval returns the tick period for fps; fps <= 0 means 60.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// NewDeltaFrame creates a clock ticking fps times per second; fps <= 0
// means 60. With autoStart it starts ticking immediately. A nil post
// delivers frames on the ticker goroutine.
func NewDeltaFrame(fps int, autoStart bool, post func(func())) *DeltaFrame {
	d := &DeltaFrame{
		interval:  FrameInterval(fps),
		autoStart: autoStart,
		post:      post,
		now:       time.Now,
		paused:    true,
	}
	if autoStart {
		d.Start()
	}
	return d
}

// Frame returns the most recent tick.
func (d *DeltaFrame) Frame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frame
}

// Paused reports whether the clock is stopped.
func (d *DeltaFrame) Paused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.paused
}

// Start resumes ticking. Time spent paused is excluded from Elapsed.
func (d *DeltaFrame) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		return
	}
	d.paused = false
	if !d.pauseStart.IsZero() {
		d.pausedTotal += d.now().Sub(d.pauseStart)
		d.pauseStart = time.Time{}
	}
	d.last = time.Time{}
	d.startTicker()
}

// Pause stops ticking.
func (d *DeltaFrame) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.paused {
		return
	}
	d.paused = true
	d.pauseStart = d.now()
	d.stopTicker()
}

// Clear resets all counters. The clock restarts if it was created with
// autoStart, and is left paused otherwise.
func (d *DeltaFrame) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTicker()
	d.frame = Frame{}
	d.last, d.started, d.pauseStart = time.Time{}, time.Time{}, time.Time{}
	d.pausedTotal = 0
	d.paused = !d.autoStart
	if d.autoStart {
		d.startTicker()
	}
}

// Close stops the clock for good.
func (d *DeltaFrame) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopTicker()
	d.paused = true
	d.OnFrame.Clear()
}

// Tick advances the clock by one frame at the current time and delivers
// it. The ticker calls it; tests may call it directly.
func (d *DeltaFrame) Tick() {
	d.mu.Lock()
	now := d.now()
	if d.started.IsZero() {
		d.started = now
	}
	if d.last.IsZero() {
		d.frame.Delta = 0
	} else {
		d.frame.Delta = now.Sub(d.last)
	}
	d.last = now
	d.frame.Elapsed = now.Sub(d.started) - d.pausedTotal
	d.frame.Count++
	f := d.frame
	d.mu.Unlock()

	deliver := func() { d.OnFrame.Trigger(f) }
	if d.post != nil {
		d.post(deliver)
		return
	}
	deliver()
}

// startTicker must be called with mu held.
func (d *DeltaFrame) startTicker() {
	if d.stop != nil {
		return
	}
	stop := make(chan struct{})
	d.stop = stop
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				d.Tick()
			}
		}
	}()
}

// stopTicker must be called with mu held.
func (d *DeltaFrame) stopTicker() {
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}
