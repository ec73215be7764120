package styles

import "testing"

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status   string
		expected string // Expected color hex value
	}{
		{"running", "#60A5FA"},
		{"ok", "#10B981"},
		{"failed", "#F87171"},
		{"unknown", "#9CA3AF"}, // Should fall back to MutedColor
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := StatusColor(tt.status)
			if string(got) != tt.expected {
				t.Errorf("StatusColor(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"running", "●"},
		{"ok", "✓"},
		{"failed", "✗"},
		{"unknown", "○"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := StatusIcon(tt.status)
			if got != tt.expected {
				t.Errorf("StatusIcon(%q) = %q, want %q", tt.status, got, tt.expected)
			}
		})
	}
}

func TestSetAccent(t *testing.T) {
	t.Cleanup(func() { SetAccent("") })

	SetAccent("#22C55E")
	if string(PrimaryColor) != "#22C55E" {
		t.Errorf("PrimaryColor = %q, want %q", PrimaryColor, "#22C55E")
	}
	if got := Title.GetForeground(); got != PrimaryColor {
		t.Errorf("Title foreground = %v, want %v", got, PrimaryColor)
	}
	if got := Overlay.GetBackground(); got != PrimaryColor {
		t.Errorf("Overlay background = %v, want %v", got, PrimaryColor)
	}

	SetAccent("")
	if string(PrimaryColor) != DefaultAccent {
		t.Errorf("PrimaryColor = %q after reset, want %q", PrimaryColor, DefaultAccent)
	}
}
