package audio

import (
	"testing"
	"time"
)

func TestBumpPlayer_SilentWithoutInit(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("bump player panicked without initialisation: %v", r)
		}
	}()

	p := NewBumpPlayer()
	if p.PlayBump() {
		t.Error("uninitialised player should not queue a tone")
	}
	p.Cleanup()

	var nilPlayer *BumpPlayer
	if err := nilPlayer.Initialize(); err != nil {
		t.Errorf("nil player Initialize returned %v", err)
	}
	if nilPlayer.PlayBump() {
		t.Error("nil player should not queue a tone")
	}
	nilPlayer.Cleanup()
}

func TestBumpPlayer_Cooldown(t *testing.T) {
	p := NewBumpPlayer()
	if err := p.Initialize(); err != nil {
		// No audio device in most CI environments.
		t.Skipf("speaker unavailable: %v", err)
	}
	defer p.Cleanup()

	now := time.Unix(100, 0)
	p.now = func() time.Time { return now }

	if !p.PlayBump() {
		t.Fatal("first bump should play")
	}
	now = now.Add(bumpCooldown / 2)
	if p.PlayBump() {
		t.Error("bump inside the cooldown should be suppressed")
	}
	now = now.Add(bumpCooldown)
	if !p.PlayBump() {
		t.Error("bump after the cooldown should play")
	}
}

func TestBumpTone_IsFinite(t *testing.T) {
	tone, err := bumpTone()
	if err != nil {
		t.Fatalf("bumpTone failed: %v", err)
	}

	want := sampleRate.N(bumpDuration)
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := tone.Stream(buf)
		total += n
		if !ok {
			break
		}
		if total > want*2 {
			t.Fatal("tone did not end")
		}
	}
	if total != want {
		t.Errorf("expected %d samples, got %d", want, total)
	}
}
