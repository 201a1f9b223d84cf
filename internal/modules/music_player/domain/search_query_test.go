package domain

import (
	"testing"
)

func TestNewSearchQuery(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedQuery  string
		expectedSource SearchSource
		expectedIsURL  bool
	}{
		{
			name:           "search term",
			input:          "never gonna give you up",
			expectedQuery:  "never gonna give you up",
			expectedSource: SourceYouTube,
			expectedIsURL:  false,
		},
		{
			name:           "search term with whitespace",
			input:          "  hello world  ",
			expectedQuery:  "hello world",
			expectedSource: SourceYouTube,
			expectedIsURL:  false,
		},
		{
			name:           "https URL",
			input:          "https://youtube.com/watch?v=dQw4w9WgXcQ",
			expectedQuery:  "https://youtube.com/watch?v=dQw4w9WgXcQ",
			expectedSource: SourceDirect,
			expectedIsURL:  true,
		},
		{
			name:           "http URL",
			input:          "http://example.com/audio.mp3",
			expectedQuery:  "http://example.com/audio.mp3",
			expectedSource: SourceDirect,
			expectedIsURL:  true,
		},
		{
			name:           "www URL",
			input:          "www.youtube.com/watch?v=abc",
			expectedQuery:  "www.youtube.com/watch?v=abc",
			expectedSource: SourceDirect,
			expectedIsURL:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewSearchQuery(tt.input)

			if q.Query != tt.expectedQuery {
				t.Errorf("Query = %q, expected %q", q.Query, tt.expectedQuery)
			}
			if q.Source != tt.expectedSource {
				t.Errorf("Source = %q, expected %q", q.Source, tt.expectedSource)
			}
			if q.IsURL != tt.expectedIsURL {
				t.Errorf("IsURL = %v, expected %v", q.IsURL, tt.expectedIsURL)
			}
		})
	}
}

func TestSearchQuery_LavalinkQuery(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "youtube search", input: "test song", expected: "ytsearch:test song"},
		{
			name:     "direct URL",
			input:    "https://youtube.com/watch?v=abc",
			expected: "https://youtube.com/watch?v=abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewSearchQuery(tt.input).LavalinkQuery(); got != tt.expected {
				t.Errorf("LavalinkQuery() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestSearchQuery_IsValid(t *testing.T) {
	if !NewSearchQuery("test").IsValid() {
		t.Error("expected non-empty query to be valid")
	}
	if NewSearchQuery("   ").IsValid() {
		t.Error("expected blank query to be invalid")
	}
}
