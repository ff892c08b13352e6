package cache

import (
	"testing"
)

func TestMappingKey_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
	}{
		{"alphanumeric", "aB3xY9"},
		{"digits", "123456"},
		{"contains prefix text", "mapping:x"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			key := mappingKey(tt.code)
			if key != "mapping:"+tt.code {
				t.Errorf("mappingKey(%q) = %q", tt.code, key)
			}
			if got := codeFromKey(key); got != tt.code {
				t.Errorf("codeFromKey(%q) = %q, want %q", key, got, tt.code)
			}
		})
	}
}

func TestCachedFromHash(t *testing.T) {
	t.Parallel()

	cached := cachedFromHash(map[string]string{
		"original_url": "https://x.com",
		"created_at":   "1704164645000000000",
		"clicks":       "7",
	})

	m := cached.ToMapping("abc")
	if m.ShortCode != "abc" || m.OriginalURL != "https://x.com" {
		t.Errorf("unexpected mapping: %+v", m)
	}
	if m.Clicks != 7 {
		t.Errorf("Clicks = %d, want 7", m.Clicks)
	}
	if m.CreatedAt.Unix() != 1704164645 {
		t.Errorf("CreatedAt = %v", m.CreatedAt)
	}
}
