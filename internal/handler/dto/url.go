package dto

import (
	"time"

	"github.com/penshort/userlinks/internal/model"
)

// ShortenRequest is the body of POST /api/shorten.
type ShortenRequest struct {
	URL *string `json:"url"`
}

// ShortenResponse is returned after a URL is shortened.
type ShortenResponse struct {
	ShortCode string `json:"short_code"`
	ShortURL  string `json:"short_url"`
}

// StatsResponse reports usage of a short code.
type StatsResponse struct {
	URL       string `json:"url"`
	Clicks    int64  `json:"clicks"`
	CreatedAt string `json:"created_at"`
}

// StatusResponse is the payload of GET /api/health.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// MappingResponse represents one stored mapping in the debug listing.
type MappingResponse struct {
	OriginalURL string `json:"original_url"`
	ShortCode   string `json:"short_code"`
	CreatedAt   string `json:"created_at"`
	Clicks      int64  `json:"clicks"`
}

// MappingsResponse lists every stored mapping.
type MappingsResponse struct {
	Count    int                        `json:"count"`
	Mappings map[string]MappingResponse `json:"mappings"`
}

// FormatTimestamp renders t as RFC 3339 in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToStatsResponse converts a URLMapping to StatsResponse DTO.
func ToStatsResponse(m *model.URLMapping) StatsResponse {
	return StatsResponse{
		URL:       m.OriginalURL,
		Clicks:    m.Clicks,
		CreatedAt: FormatTimestamp(m.CreatedAt),
	}
}

// ToMappingsResponse converts a snapshot to MappingsResponse DTO.
func ToMappingsResponse(snapshot map[string]model.URLMapping) MappingsResponse {
	out := make(map[string]MappingResponse, len(snapshot))
	for code, m := range snapshot {
		out[code] = MappingResponse{
			OriginalURL: m.OriginalURL,
			ShortCode:   m.ShortCode,
			CreatedAt:   FormatTimestamp(m.CreatedAt),
			Clicks:      m.Clicks,
		}
	}
	return MappingsResponse{Count: len(out), Mappings: out}
}
