package osd

import (
	"fmt"
	"testing"

	"github.com/techtimejourney/vosd/pkg/input"
)

// fakeMixer tracks a single volume/mute pair in memory.
type fakeMixer struct {
	volume  int
	muted   bool
	failAll bool
	toggles int
}

func (f *fakeMixer) State() (int, bool) {
	return f.volume, f.muted
}

func (f *fakeMixer) ChangeVolume(delta int) (int, error) {
	if f.failAll {
		return f.volume, fmt.Errorf("pactl unavailable")
	}
	f.volume += delta
	if f.volume < 0 {
		f.volume = 0
	}
	if f.volume > 100 {
		f.volume = 100
	}
	return f.volume, nil
}

func (f *fakeMixer) ToggleMute() error {
	if f.failAll {
		return fmt.Errorf("pactl unavailable")
	}
	f.muted = !f.muted
	f.toggles++
	return nil
}

func TestEngineVolumeUpDown(t *testing.T) {
	fm := &fakeMixer{volume: 50}
	e := NewEngine(fm, 5)

	var gotVolumes []int
	e.OnVolume = func(v int) { gotVolumes = append(gotVolumes, v) }

	e.VolumeUp()
	e.VolumeUp()
	e.VolumeDown()

	want := []int{55, 60, 55}
	if len(gotVolumes) != len(want) {
		t.Fatalf("OnVolume calls = %v, want %v", gotVolumes, want)
	}
	for i := range want {
		if gotVolumes[i] != want[i] {
			t.Errorf("OnVolume[%d] = %d, want %d", i, gotVolumes[i], want[i])
		}
	}
	if e.Volume() != 55 {
		t.Errorf("Volume() = %d, want 55", e.Volume())
	}
}

func TestEngineStepFallback(t *testing.T) {
	tests := []struct {
		name string
		step int
		want int
	}{
		{"zero", 0, DefaultStep},
		{"negative", -3, DefaultStep},
		{"too large", 90, DefaultStep},
		{"valid", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(&fakeMixer{}, tt.step)
			if e.Step() != tt.want {
				t.Errorf("Step() = %d, want %d", e.Step(), tt.want)
			}
		})
	}
}

func TestEngineToggleMuteRefreshes(t *testing.T) {
	fm := &fakeMixer{volume: 40}
	e := NewEngine(fm, 5)

	mutedCalls := 0
	var volumes []int
	e.OnMuted = func() { mutedCalls++ }
	e.OnVolume = func(v int) { volumes = append(volumes, v) }

	e.ToggleMute()
	if mutedCalls != 1 {
		t.Errorf("after first toggle: OnMuted calls = %d, want 1", mutedCalls)
	}
	if !e.Muted() {
		t.Error("engine should report muted")
	}

	e.ToggleMute()
	if len(volumes) != 1 || volumes[0] != 40 {
		t.Errorf("after unmute: OnVolume = %v, want [40]", volumes)
	}
	if e.Muted() {
		t.Error("engine should report unmuted")
	}
}

func TestEngineVolumeChangeClearsMuted(t *testing.T) {
	fm := &fakeMixer{volume: 30, muted: true}
	e := NewEngine(fm, 5)
	e.Refresh()
	if !e.Muted() {
		t.Fatal("engine should start muted")
	}
	e.VolumeUp()
	if e.Muted() {
		t.Error("volume change should clear the muted display state")
	}
}

func TestEngineErrorCallback(t *testing.T) {
	fm := &fakeMixer{failAll: true}
	e := NewEngine(fm, 5)

	var gotErr error
	e.OnError = func(err error) { gotErr = err }
	e.OnVolume = func(int) { t.Error("OnVolume should not fire on failure") }

	e.VolumeUp()
	if gotErr == nil {
		t.Error("expected OnError to fire")
	}

	gotErr = nil
	e.ToggleMute()
	if gotErr == nil {
		t.Error("expected OnError to fire for mute failure")
	}
}

func TestEngineHandleAction(t *testing.T) {
	fm := &fakeMixer{volume: 50}
	e := NewEngine(fm, 5)

	e.HandleAction(input.ActionVolumeUp)
	if e.Volume() != 55 {
		t.Errorf("after ActionVolumeUp: volume = %d, want 55", e.Volume())
	}
	e.HandleAction(input.ActionVolumeDown)
	if e.Volume() != 50 {
		t.Errorf("after ActionVolumeDown: volume = %d, want 50", e.Volume())
	}
	e.HandleAction(input.ActionMuteToggle)
	if fm.toggles != 1 {
		t.Errorf("after ActionMuteToggle: toggles = %d, want 1", fm.toggles)
	}
}

func TestEngineRefreshMuted(t *testing.T) {
	fm := &fakeMixer{volume: 70, muted: true}
	e := NewEngine(fm, 5)

	mutedCalls := 0
	e.OnMuted = func() { mutedCalls++ }
	e.OnVolume = func(int) { t.Error("OnVolume should not fire while muted") }

	e.Refresh()
	if mutedCalls != 1 {
		t.Errorf("OnMuted calls = %d, want 1", mutedCalls)
	}
	if e.Volume() != 70 {
		t.Errorf("Volume() = %d, want 70 (state still tracked while muted)", e.Volume())
	}
}
