// Package mixer adjusts system audio volume through pactl.
//
// All operations act on every playback sink reported by PulseAudio or
// PipeWire, so laptops that route audio through several sinks stay in
// sync. pactl failures are treated as "no sinks" rather than fatal
// errors: the applet keeps running and retries on the next key press.
package mixer

import (
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its combined stdout.
// The production implementation shells out; tests substitute canned output.
type Runner interface {
	Output(name string, args ...string) (string, error)
	Run(name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return string(out), err
}

func (ExecRunner) Run(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Mixer reads and sets volume on all playback sinks via pactl.
type Mixer struct {
	runner Runner
}

// New creates a Mixer using the given Runner. A nil runner defaults to
// ExecRunner.
func New(runner Runner) *Mixer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Mixer{runner: runner}
}

// ListSinks returns the numeric IDs of all playback sinks. The list is
// empty (not an error) when pactl is unavailable or reports no sinks.
func (m *Mixer) ListSinks() []string {
	out, err := m.runner.Output("pactl", "list", "sinks", "short")
	if err != nil {
		slog.Debug("pactl list sinks short failed", "err", err)
		return nil
	}
	return parseSinksShort(out)
}

// State returns the overall volume (rounded mean across sinks, 0..100)
// and whether every sink is muted. With no sinks it returns (0, false).
func (m *Mixer) State() (int, bool) {
	out, err := m.runner.Output("pactl", "list", "sinks")
	if err != nil {
		slog.Debug("pactl list sinks failed", "err", err)
		return 0, false
	}
	volumes, mutes := parseSinks(out)
	if len(volumes) == 0 {
		return 0, false
	}
	sum := 0
	for _, v := range volumes {
		sum += v
	}
	overall := (sum + len(volumes)/2) / len(volumes)
	allMuted := true
	for _, muted := range mutes {
		if !muted {
			allMuted = false
			break
		}
	}
	return overall, allMuted
}

// SetVolume clamps v to 0..100 and applies it to every sink. An empty
// sink list is a no-op, not an error, so the OSD still shows the level
// while audio is down. Per-sink failures are logged and skipped.
func (m *Mixer) SetVolume(v int) error {
	v = clamp(v)
	sinks := m.ListSinks()
	if len(sinks) == 0 {
		slog.Debug("no playback sinks, volume not applied")
		return nil
	}
	for _, sink := range sinks {
		if err := m.runner.Run("pactl", "set-sink-volume", sink, fmt.Sprintf("%d%%", v)); err != nil {
			slog.Debug("set-sink-volume failed", "sink", sink, "err", err)
		}
	}
	return nil
}

// ChangeVolume applies a relative change across all sinks and returns
// the new overall volume.
func (m *Mixer) ChangeVolume(delta int) (int, error) {
	cur, _ := m.State()
	next := clamp(cur + delta)
	if err := m.SetVolume(next); err != nil {
		return cur, err
	}
	return next, nil
}

// ToggleMute toggles mute on every sink. An empty sink list is a
// no-op.
func (m *Mixer) ToggleMute() error {
	sinks := m.ListSinks()
	if len(sinks) == 0 {
		slog.Debug("no playback sinks, mute not toggled")
		return nil
	}
	for _, sink := range sinks {
		if err := m.runner.Run("pactl", "set-sink-mute", sink, "toggle"); err != nil {
			slog.Debug("set-sink-mute failed", "sink", sink, "err", err)
		}
	}
	return nil
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// parseSinksShort extracts sink IDs from "pactl list sinks short"
// output: one sink per line, tab-separated, ID first.
func parseSinksShort(out string) []string {
	var sinks []string
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) == 0 {
			continue
		}
		id := strings.TrimSpace(parts[0])
		if id != "" && isDigits(id) {
			sinks = append(sinks, id)
		}
	}
	return sinks
}

// parseSinks extracts per-sink volume percentages and mute flags from
// "pactl list sinks" output. Sinks whose Volume line carries no percent
// token are skipped.
func parseSinks(out string) (volumes []int, mutes []bool) {
	curVol := -1
	curMute := false
	flush := func() {
		if curVol >= 0 {
			volumes = append(volumes, curVol)
			mutes = append(mutes, curMute)
		}
		curVol = -1
		curMute = false
	}
	for _, line := range strings.Split(out, "\n") {
		ls := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(ls, "Sink #"):
			flush()
		case strings.HasPrefix(ls, "Volume:"):
			if v, ok := firstPercent(ls); ok {
				curVol = clamp(v)
			}
		case strings.HasPrefix(ls, "Mute:"):
			curMute = strings.Contains(strings.ToLower(ls), "yes")
		}
	}
	flush()
	return volumes, mutes
}

// firstPercent returns the value of the first "%"-suffixed token.
func firstPercent(line string) (int, bool) {
	for _, token := range strings.Fields(strings.ReplaceAll(line, ",", " ")) {
		if !strings.HasSuffix(token, "%") {
			continue
		}
		n := 0
		digits := token[:len(token)-1]
		if !isDigits(digits) {
			continue
		}
		for _, c := range digits {
			n = n*10 + int(c-'0')
		}
		return n, true
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
