package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/penshort/userlinks/internal/metrics"
	"github.com/penshort/userlinks/internal/model"
	"github.com/penshort/userlinks/internal/store"
	"github.com/penshort/userlinks/internal/validator"
)

// ShortenerService handles URL shortening business logic.
type ShortenerService struct {
	store      store.Store
	baseURL    string
	codeLength int
	retries    int
	generate   func(length int) string
	metrics    metrics.Recorder
}

// ShortenerOption configures a ShortenerService.
type ShortenerOption func(*ShortenerService)

// WithCodeLength sets the generated short code length.
func WithCodeLength(n int) ShortenerOption {
	return func(s *ShortenerService) {
		if n > 0 {
			s.codeLength = n
		}
	}
}

// WithCollisionRetries makes Shorten regenerate a code that is already in
// use, up to n times. Zero keeps overwrite-on-collision.
func WithCollisionRetries(n int) ShortenerOption {
	return func(s *ShortenerService) {
		if n >= 0 {
			s.retries = n
		}
	}
}

// WithCodeGenerator replaces the random short code generator.
func WithCodeGenerator(gen func(length int) string) ShortenerOption {
	return func(s *ShortenerService) {
		if gen != nil {
			s.generate = gen
		}
	}
}

// NewShortenerService creates a new ShortenerService.
func NewShortenerService(st store.Store, baseURL string, recorder metrics.Recorder, opts ...ShortenerOption) *ShortenerService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	s := &ShortenerService{
		store:      st,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		codeLength: validator.DefaultShortCodeLength,
		generate:   validator.GenerateShortCode,
		metrics:    recorder,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Shorten stores rawURL under a new short code.
func (s *ShortenerService) Shorten(ctx context.Context, rawURL string) (*model.URLMapping, error) {
	target := validator.SanitizeURL(strings.TrimSpace(rawURL))
	if !validator.IsValidURL(target) {
		return nil, ErrInvalidURL
	}

	code, err := s.nextCode(ctx)
	if err != nil {
		return nil, err
	}

	mapping, err := s.store.AddMapping(ctx, code, target)
	if err != nil {
		return nil, err
	}

	s.metrics.IncURLShortened()
	return mapping, nil
}

// Resolve returns the mapping for code and counts one click.
func (s *ShortenerService) Resolve(ctx context.Context, code string) (*model.URLMapping, error) {
	start := time.Now()
	defer func() {
		s.metrics.ObserveRedirectDuration(time.Since(start))
	}()

	mapping, err := s.Stats(ctx, code)
	if err != nil {
		if errors.Is(err, ErrShortCodeNotFound) {
			s.metrics.IncRedirectMiss()
		}
		return nil, err
	}

	counted, err := s.store.IncrementClicks(ctx, code)
	if err != nil {
		return nil, err
	}
	if counted {
		mapping.Clicks++
	}

	s.metrics.IncRedirect()
	return mapping, nil
}

// Stats returns the mapping for code without counting a click.
func (s *ShortenerService) Stats(ctx context.Context, code string) (*model.URLMapping, error) {
	if !validator.IsShortCode(code) {
		return nil, ErrShortCodeNotFound
	}

	mapping, err := s.store.GetMapping(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrShortCodeNotFound
		}
		return nil, err
	}
	return mapping, nil
}

// ShortURL returns the public URL for code.
func (s *ShortenerService) ShortURL(code string) string {
	return s.baseURL + "/" + code
}

// Mappings returns a snapshot of every stored mapping.
func (s *ShortenerService) Mappings(ctx context.Context) (map[string]model.URLMapping, error) {
	return s.store.Snapshot(ctx)
}

func (s *ShortenerService) nextCode(ctx context.Context) (string, error) {
	if s.retries == 0 {
		return s.generate(s.codeLength), nil
	}

	for i := 0; i <= s.retries; i++ {
		code := s.generate(s.codeLength)
		_, err := s.store.GetMapping(ctx, code)
		if errors.Is(err, store.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", ErrCodeSpaceExhausted
}
