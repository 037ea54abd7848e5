package util

import (
	"strings"
	"testing"
)

func TestIsValidLetterId(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"numeric", "42", true},
		{"uuid", "5f0c2a1e-8f7b-4c1d-9d35-0b6f3c1a2b7e", true},
		{"underscore and dot", "q_12.v2", true},
		{"empty", "", false},
		{"slash", "42/../admin", false},
		{"dot dot", "..", false},
		{"space", "4 2", false},
		{"query", "42?x=1", false},
		{"hangul", "편지", false},
		{"control", "42\x00", false},
		{"too long", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, msg := IsValidLetterId(tt.id)
			if valid != tt.valid {
				t.Errorf("IsValidLetterId(%q) = %v (%s), want %v", tt.id, valid, msg, tt.valid)
			}
			if valid && msg != "" {
				t.Errorf("Expected empty message for valid id, got %q", msg)
			}
			if !valid && msg == "" {
				t.Error("Expected an error message for invalid id")
			}
		})
	}
}

func TestLetterIdFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, ""},
		{"key value", []string{"letterId=17"}, "17"},
		{"query style", []string{"?letterId=17"}, "17"},
		{"bare", []string{"17"}, "17"},
		{"key value wins over bare", []string{"9", "letterId=17"}, "17"},
		{"empty value", []string{"letterId="}, ""},
		{"unrelated key", []string{"page=2"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LetterIdFromArgs(tt.args); got != tt.want {
				t.Errorf("LetterIdFromArgs(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
