package ui

import "testing"

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name   string
		volume int
		muted  bool
		want   string
	}{
		{"normal", 65, false, "Volume: 65%"},
		{"zero", 0, false, "Volume: 0%"},
		{"full", 100, false, "Volume: 100%"},
		{"muted", 40, true, "Muted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusLabel(tt.volume, tt.muted); got != tt.want {
				t.Errorf("statusLabel(%d, %v) = %q, want %q", tt.volume, tt.muted, got, tt.want)
			}
		})
	}
}
