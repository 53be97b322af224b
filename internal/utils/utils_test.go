package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0:00"},
		{-5 * time.Second, "0:00"},
		{999 * time.Millisecond, "0:00"},
		{59 * time.Second, "0:59"},
		{60 * time.Second, "1:00"},
		{3*time.Minute + 7*time.Second, "3:07"},
		{61*time.Minute + 1*time.Second, "61:01"},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, FormatTime(test.duration), "FormatTime(%v)", test.duration)
	}
}

func TestFormatProgress(t *testing.T) {
	assert.Equal(t, "1:05 / 4:00", FormatProgress(65*time.Second, 4*time.Minute))
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10", 10, "exactly10"},
		{"this is a very long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"abcde", 4, "a..."},
		{"Выбранные файлы", 8, "Выбра..."},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, TruncateString(test.input, test.maxLen), "TruncateString(%q, %d)", test.input, test.maxLen)
	}
}
