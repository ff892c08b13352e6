package model

import (
	"strconv"
	"time"
)

// URLMapping associates a short code with the URL it redirects to.
type URLMapping struct {
	ShortCode   string    `json:"short_code"`
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
	Clicks      int64     `json:"clicks"`
}

// CachedMapping is the Redis hash representation of a URLMapping.
// Uses string types for Redis hash compatibility.
type CachedMapping struct {
	OriginalURL string `redis:"original_url"`
	CreatedAt   string `redis:"created_at"` // Unix nanoseconds
	Clicks      string `redis:"clicks"`
}

// ToMapping converts CachedMapping to the URLMapping domain model.
func (c *CachedMapping) ToMapping(shortCode string) *URLMapping {
	mapping := &URLMapping{
		ShortCode:   shortCode,
		OriginalURL: c.OriginalURL,
	}

	if ns, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
		mapping.CreatedAt = time.Unix(0, ns).UTC()
	}

	if clicks, err := strconv.ParseInt(c.Clicks, 10, 64); err == nil {
		mapping.Clicks = clicks
	}

	return mapping
}

// ToCachedMapping converts URLMapping to CachedMapping.
func (m *URLMapping) ToCachedMapping() *CachedMapping {
	return &CachedMapping{
		OriginalURL: m.OriginalURL,
		CreatedAt:   strconv.FormatInt(m.CreatedAt.UnixNano(), 10),
		Clicks:      strconv.FormatInt(m.Clicks, 10),
	}
}
