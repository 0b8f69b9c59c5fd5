package ai

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotConfigured = errors.New("ai generator is not configured")
	ErrEmptyResponse = errors.New("ai model returned an empty response")
	ErrNonJSON       = errors.New("ai model returned non-json output")
)

// Request: tek seferlik JSON üretim isteği
type Request struct {
	Name   string         // loglarda görünen akış adı
	Prompt string         // doldurulmuş prompt
	Schema map[string]any // beklenen çıktı şeması (OpenAPI alt kümesi), boş olabilir
}

// Generator: ham JSON metni döner; şema doğrulaması çağıranın işi
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Unavailable: AI_PROVIDER=none iken kullanılır
type Unavailable struct{}

func (Unavailable) Generate(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

// extractJSON: model bazen ```json bloğu veya açıklama ekler, ilk { ile son } arası alınır
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return strings.TrimSpace(s)
	}
	return s[start : end+1]
}
