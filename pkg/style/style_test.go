package style

import (
	"strings"
	"testing"
)

func TestTextHelpers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		style    func(string) string
		contains string
	}{
		{
			name:     "bold text",
			text:     "deploy finished",
			style:    Bold,
			contains: "deploy finished",
		},
		{
			name:     "italic text",
			text:     "selected",
			style:    Italic,
			contains: "selected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.style(tt.text)
			if !strings.Contains(result, tt.contains) {
				t.Errorf("Expected output to contain %q, got %q", tt.contains, result)
			}
		})
	}
}

func TestIndent(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		level    int
		expected string
	}{
		{
			name:     "no indent",
			text:     "copy",
			level:    0,
			expected: "copy",
		},
		{
			name:     "single indent",
			text:     "copy",
			level:    1,
			expected: "  copy",
		},
		{
			name:     "double indent",
			text:     "copy",
			level:    2,
			expected: "    copy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Indent(tt.text, tt.level)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestIndicators(t *testing.T) {
	indicators := map[string]string{
		"success": SuccessIndicator,
		"error":   ErrorIndicator,
		"warning": WarningIndicator,
		"info":    InfoIndicator,
		"pending": PendingIndicator,
	}

	for name, indicator := range indicators {
		if indicator == "" {
			t.Errorf("Indicator %q is empty", name)
		}
	}
}
