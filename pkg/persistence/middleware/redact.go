package middleware

import (
	"context"
	"fmt"
	"net/url"
	"regexp"

	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

type redactMiddleware struct {
	next     ports.StatusStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware creates a middleware that masks the values of location
// query parameters whose names match any of the patterns, e.g. "searchQuery".
func NewRedactMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid redact pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.StatusStore) ports.StatusStore {
		return &redactMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, key string, board *domain.Board) error {
	// The live board keeps the real location.
	cloned := board.Clone()
	cloned.Location = m.mask(cloned.Location)
	return m.next.Save(ctx, key, cloned)
}

func (m *redactMiddleware) Load(ctx context.Context, key string) (*domain.Board, error) {
	return m.next.Load(ctx, key)
}

func (m *redactMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *redactMiddleware) mask(location string) string {
	u, err := url.Parse(location)
	if err != nil || u.RawQuery == "" {
		return location
	}
	q := u.Query()
	changed := false
	for name, values := range q {
		for _, p := range m.patterns {
			if p.MatchString(name) {
				for i := range values {
					values[i] = Mask
				}
				changed = true
				break
			}
		}
	}
	if !changed {
		return location
	}
	u.RawQuery = q.Encode()
	return u.String()
}
