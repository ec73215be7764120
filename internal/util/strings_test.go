package util

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short label unchanged", "fast", 10, "fast"},
		{"exact length unchanged", "straddle", 8, "straddle"},
		{"long label truncated", "burst x128 parallel", 10, "burst x..."},
		{"multibyte runes counted once", "ÿüöäëïéèàç", 6, "ÿüö..."},
		{"tiny limit gives ellipsis", "slow", 3, "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestFitLine(t *testing.T) {
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	tests := []struct {
		name  string
		input string
		width int
		check func(t *testing.T, got string)
	}{
		{
			name:  "no limit",
			input: "operation failed: backend unavailable",
			width: 0,
			check: func(t *testing.T, got string) {
				if got != "operation failed: backend unavailable" {
					t.Errorf("expected line unchanged, got %q", got)
				}
			},
		},
		{
			name:  "plain line truncated",
			input: "slow operation finished",
			width: 10,
			check: func(t *testing.T, got string) {
				if got != "slow op..." {
					t.Errorf("expected %q, got %q", "slow op...", got)
				}
			},
		},
		{
			name:  "styled line fits",
			input: red.Render("boom"),
			width: 10,
			check: func(t *testing.T, got string) {
				if got != red.Render("boom") {
					t.Errorf("expected styled line unchanged, got %q", got)
				}
			},
		},
		{
			name:  "styled line truncated by visual width",
			input: red.Render("simulated failure in burst"),
			width: 12,
			check: func(t *testing.T, got string) {
				if w := lipgloss.Width(got); w > 12 {
					t.Errorf("width %d exceeds 12", w)
				}
				if !strings.Contains(got, "...") {
					t.Errorf("expected ellipsis in %q", got)
				}
			},
		},
		{
			name:  "narrow width",
			input: "fast",
			width: 2,
			check: func(t *testing.T, got string) {
				if got != "..." {
					t.Errorf("expected ellipsis, got %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, FitLine(tt.input, tt.width))
		})
	}
}

func TestFitLines(t *testing.T) {
	block := "short\na considerably longer line\nmid length"
	got := FitLines(block, 10)

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 10 {
			t.Errorf("line %q has width %d, want <= 10", line, w)
		}
	}
	if lines[0] != "short" {
		t.Errorf("expected first line unchanged, got %q", lines[0])
	}
	if FitLines(block, 0) != block {
		t.Error("expected zero width to leave block unchanged")
	}
}
