package mixer

import (
	"fmt"
	"strings"
	"testing"
)

// fakeRunner returns canned output per command line and records calls.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) key(name string, args ...string) string {
	return name + " " + strings.Join(args, " ")
}

func (f *fakeRunner) Output(name string, args ...string) (string, error) {
	k := f.key(name, args...)
	f.calls = append(f.calls, k)
	if err, ok := f.errs[k]; ok {
		return "", err
	}
	return f.outputs[k], nil
}

func (f *fakeRunner) Run(name string, args ...string) error {
	k := f.key(name, args...)
	f.calls = append(f.calls, k)
	return f.errs[k]
}

const sinksShortOutput = "0\talsa_output.pci-0000_00_1f.3.analog-stereo\tmodule-alsa-card.c\ts16le 2ch 48000Hz\tRUNNING\n" +
	"1\talsa_output.usb-dac.analog-stereo\tmodule-alsa-card.c\ts16le 2ch 48000Hz\tIDLE\n"

const sinksFullOutput = `Sink #0
	State: RUNNING
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo
	Volume: front-left: 32768 /  50% / -18.06 dB,   front-right: 32768 /  50% / -18.06 dB
	Mute: no
Sink #1
	State: IDLE
	Name: alsa_output.usb-dac.analog-stereo
	Volume: front-left: 45875 /  70% / -9.29 dB,   front-right: 45875 /  70% / -9.29 dB
	Mute: no
`

const sinksMutedOutput = `Sink #0
	Volume: front-left: 0 /  30% / -31.37 dB
	Mute: yes
Sink #1
	Volume: front-left: 0 /  30% / -31.37 dB
	Mute: yes
`

func TestParseSinksShort(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"two sinks", sinksShortOutput, []string{"0", "1"}},
		{"empty", "", nil},
		{"garbage line", "not-a-sink\tfoo\n2\tbar\n", []string{"2"}},
		{"blank lines", "\n\n3\tcard\n\n", []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSinksShort(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseSinksShort: got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseSinksShort[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseSinks(t *testing.T) {
	volumes, mutes := parseSinks(sinksFullOutput)
	if len(volumes) != 2 || len(mutes) != 2 {
		t.Fatalf("parseSinks: got %d volumes, %d mutes, want 2 each", len(volumes), len(mutes))
	}
	if volumes[0] != 50 || volumes[1] != 70 {
		t.Errorf("volumes = %v, want [50 70]", volumes)
	}
	if mutes[0] || mutes[1] {
		t.Errorf("mutes = %v, want [false false]", mutes)
	}
}

func TestParseSinksClampsOversized(t *testing.T) {
	out := "Sink #0\n\tVolume: front-left: 99999 / 153% / 11.0 dB\n\tMute: no\n"
	volumes, _ := parseSinks(out)
	if len(volumes) != 1 || volumes[0] != 100 {
		t.Errorf("volumes = %v, want [100]", volumes)
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantVolume int
		wantMuted  bool
	}{
		{"mixed volumes", sinksFullOutput, 60, false},
		{"all muted", sinksMutedOutput, 30, true},
		{"no sinks", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{
				"pactl list sinks": tt.output,
			}}
			m := New(runner)
			volume, muted := m.State()
			if volume != tt.wantVolume {
				t.Errorf("State volume = %d, want %d", volume, tt.wantVolume)
			}
			if muted != tt.wantMuted {
				t.Errorf("State muted = %v, want %v", muted, tt.wantMuted)
			}
		})
	}
}

func TestStatePactlMissing(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{
		"pactl list sinks": fmt.Errorf("executable file not found"),
	}}
	m := New(runner)
	volume, muted := m.State()
	if volume != 0 || muted {
		t.Errorf("State with no pactl = (%d, %v), want (0, false)", volume, muted)
	}
}

func TestSetVolumeAppliesToAllSinks(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"pactl list sinks short": sinksShortOutput,
	}}
	m := New(runner)
	if err := m.SetVolume(65); err != nil {
		t.Fatalf("SetVolume: unexpected error: %v", err)
	}

	want := []string{
		"pactl set-sink-volume 0 65%",
		"pactl set-sink-volume 1 65%",
	}
	var sets []string
	for _, c := range runner.calls {
		if strings.HasPrefix(c, "pactl set-sink-volume") {
			sets = append(sets, c)
		}
	}
	if len(sets) != len(want) {
		t.Fatalf("set-sink-volume calls = %v, want %v", sets, want)
	}
	for i := range sets {
		if sets[i] != want[i] {
			t.Errorf("call[%d] = %q, want %q", i, sets[i], want[i])
		}
	}
}

func TestSetVolumeClamps(t *testing.T) {
	tests := []struct {
		name  string
		input int
		want  string
	}{
		{"negative", -10, "0%"},
		{"over max", 150, "100%"},
		{"in range", 42, "42%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{
				"pactl list sinks short": "0\tsink\n",
			}}
			m := New(runner)
			if err := m.SetVolume(tt.input); err != nil {
				t.Fatalf("SetVolume: unexpected error: %v", err)
			}
			found := false
			for _, c := range runner.calls {
				if strings.HasSuffix(c, tt.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("SetVolume(%d): no call ending in %q (calls: %v)", tt.input, tt.want, runner.calls)
			}
		})
	}
}

func TestSetVolumeNoSinksIsNoOp(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{}}
	m := New(runner)
	if err := m.SetVolume(50); err != nil {
		t.Errorf("SetVolume with no sinks: unexpected error: %v", err)
	}
	for _, c := range runner.calls {
		if strings.HasPrefix(c, "pactl set-sink-volume") {
			t.Errorf("unexpected set call with no sinks: %s", c)
		}
	}
}

func TestToggleMuteNoSinksIsNoOp(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{}}
	m := New(runner)
	if err := m.ToggleMute(); err != nil {
		t.Errorf("ToggleMute with no sinks: unexpected error: %v", err)
	}
	for _, c := range runner.calls {
		if strings.HasPrefix(c, "pactl set-sink-mute") {
			t.Errorf("unexpected mute call with no sinks: %s", c)
		}
	}
}

func TestChangeVolumeNoSinksStillReports(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{}}
	m := New(runner)
	got, err := m.ChangeVolume(5)
	if err != nil {
		t.Fatalf("ChangeVolume with no sinks: unexpected error: %v", err)
	}
	if got != 5 {
		t.Errorf("ChangeVolume(5) with no sinks = %d, want 5", got)
	}
}

func TestChangeVolume(t *testing.T) {
	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"up", 5, 65},
		{"down", -5, 55},
		{"clamp high", 50, 100},
		{"clamp low", -80, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{outputs: map[string]string{
				"pactl list sinks":       sinksFullOutput, // overall 60
				"pactl list sinks short": sinksShortOutput,
			}}
			m := New(runner)
			got, err := m.ChangeVolume(tt.delta)
			if err != nil {
				t.Fatalf("ChangeVolume: unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ChangeVolume(%d) = %d, want %d", tt.delta, got, tt.want)
			}
		})
	}
}

func TestToggleMute(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"pactl list sinks short": sinksShortOutput,
	}}
	m := New(runner)
	if err := m.ToggleMute(); err != nil {
		t.Fatalf("ToggleMute: unexpected error: %v", err)
	}
	toggles := 0
	for _, c := range runner.calls {
		if strings.HasPrefix(c, "pactl set-sink-mute") && strings.HasSuffix(c, "toggle") {
			toggles++
		}
	}
	if toggles != 2 {
		t.Errorf("ToggleMute: %d toggle calls, want 2", toggles)
	}
}
