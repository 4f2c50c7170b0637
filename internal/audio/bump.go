// Package audio plays the short tone heard when the player walks into a wall.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	bumpFrequency = 110
	bumpDuration  = 60 * time.Millisecond
	// Holding a key against a wall blocks every tick; one tone per window.
	bumpCooldown = 250 * time.Millisecond
)

// BumpPlayer plays the wall-bump tone. The zero value and a nil pointer are
// silent, so callers never need to check whether audio is enabled.
type BumpPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastPlayed  time.Time
	now         func() time.Time
}

// NewBumpPlayer creates an uninitialised player.
func NewBumpPlayer() *BumpPlayer {
	return &BumpPlayer{mixer: &beep.Mixer{}, now: time.Now}
}

// Initialize opens the speaker. Failure leaves the player silent.
func (p *BumpPlayer) Initialize() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialise speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// PlayBump queues the tone unless one played within the cooldown. It reports
// whether a tone was queued.
func (p *BumpPlayer) PlayBump() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}
	now := p.now()
	if !p.lastPlayed.IsZero() && now.Sub(p.lastPlayed) < bumpCooldown {
		return false
	}
	tone, err := bumpTone()
	if err != nil {
		return false
	}
	p.lastPlayed = now
	speaker.Lock()
	p.mixer.Add(tone)
	speaker.Unlock()
	return true
}

// Cleanup silences anything still queued.
func (p *BumpPlayer) Cleanup() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// bumpTone builds one finite bump: a low sine cut to bumpDuration.
func bumpTone() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, bumpFrequency)
	if err != nil {
		return nil, fmt.Errorf("failed to create bump tone: %w", err)
	}
	return beep.Take(sampleRate.N(bumpDuration), sine), nil
}
