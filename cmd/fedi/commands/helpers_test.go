package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain paragraph",
			input:    "<p>Hello world</p>",
			expected: "Hello world",
		},
		{
			name:     "nested markup",
			input:    `<p>See <a href="https://example.com"><span>this link</span></a></p>`,
			expected: "See this link",
		},
		{
			name:     "entities",
			input:    "<p>Fish &amp; chips &lt;3</p>",
			expected: "Fish & chips <3",
		},
		{
			name:     "no markup",
			input:    "already plain",
			expected: "already plain",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripHTML(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly10!", truncate("exactly10!", 10))
	assert.Equal(t, "this is a…", truncate("this is a long sentence", 10))

	// Multibyte content must not be cut mid-rune.
	assert.Equal(t, "héllo", truncate("héllo", 5))
	assert.Equal(t, "héll…", truncate("héllo there", 5))
}

func TestRenderStructured_UnsupportedFormat(t *testing.T) {
	err := renderStructured("csv", map[string]string{"a": "b"})
	assert.ErrorIs(t, err, ErrUnsupportedOutput)
}
