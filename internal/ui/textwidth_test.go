package ui

import (
	"testing"
)

func TestWidths(t *testing.T) {
	runes := map[rune]int{
		'A': 1, ' ': 1,
		'😀': 2, '中': 2, 'あ': 2, '한': 2,
		'\u0301': 0, '\u200d': 0, '\t': 0, '\n': 0,
	}
	for r, want := range runes {
		if got := RuneWidth(r); got != want {
			t.Errorf("RuneWidth(%q) = %d, want %d", r, got, want)
		}
	}

	strs := map[string]int{
		"": 0, "Hello": 5, "😀 Hello": 8, "こんにちは": 10,
		"Hello中国": 9, "- [ ] 中文项目": 14,
	}
	for s, want := range strs {
		if got := StringWidth(s); got != want {
			t.Errorf("StringWidth(%q) = %d, want %d", s, got, want)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		expected string
	}{
		{"Hello", 10, "Hello"},
		{"Hello", 3, "Hel"},
		{"Hello", 5, "Hello"},
		{"😀Hello", 2, "😀"},
		{"Hi😀", 3, "Hi"},
		{"😀😀😀", 5, "😀😀"},
		{"中国", 3, "中"},
		{"Hello中国", 6, "Hello"},
		{"", 5, ""},
		{"Hello", 0, ""},
		{"Hello", -1, ""},
	}

	for _, tt := range tests {
		got := TruncateToWidth(tt.input, tt.maxWidth)
		if got != tt.expected {
			t.Errorf("TruncateToWidth(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
		}
	}
}

func TestTruncateToWidthWithEllipsis(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		expected string
	}{
		{"Hello", 10, "Hello"},
		{"HelloWorld", 5, "He..."},
		{"中国人民", 6, "中..."},
		{"HelloWorld", 2, "He"},
		{"", 5, ""},
	}

	for _, tt := range tests {
		got := TruncateToWidthWithEllipsis(tt.input, tt.maxWidth)
		if got != tt.expected {
			t.Errorf("TruncateToWidthWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.expected)
		}
		if w := StringWidth(got); w > tt.maxWidth {
			t.Errorf("%q is %d columns, more than %d", got, w, tt.maxWidth)
		}
	}
}

func TestPadStringToWidth(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"Hi", 5, "Hi   "},
		{"Hello", 3, "Hello"},
		{"😀", 5, "😀   "},
		{"中", 5, "中   "},
		{"", 3, "   "},
	}

	for _, tt := range tests {
		if got := PadStringToWidth(tt.input, tt.width); got != tt.expected {
			t.Errorf("PadStringToWidth(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
		}
	}
}

func TestDisplayColumn(t *testing.T) {
	tests := []struct {
		input    string
		ch       int
		expected int
	}{
		{"- abc", 3, 3},
		{"\t- a", 1, 4},
		{"\t- a", 4, 7},
		{"ab\tc", 3, 4},
		{"- 中x", 5, 4},
		{"- a", 10, 3},
	}

	for _, tt := range tests {
		got := DisplayColumn(tt.input, tt.ch, 4)
		if got != tt.expected {
			t.Errorf("DisplayColumn(%q, %d) = %d, want %d", tt.input, tt.ch, got, tt.expected)
		}
	}
}
