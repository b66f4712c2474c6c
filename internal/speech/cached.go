package speech

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	lang string
	text string
}

// Cached memoizes successful renderings by (language, text) in a bounded LRU.
// Repeated words within one list and across requests hit the service once.
type Cached struct {
	next  Synthesizer
	cache *lru.Cache[cacheKey, []byte]
}

// NewCached wraps next with a cache holding up to size renderings
func NewCached(next Synthesizer, size int) (*Cached, error) {
	cache, err := lru.New[cacheKey, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create tts cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Synthesize implements Synthesizer
func (c *Cached) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	key := cacheKey{lang: lang, text: text}
	if data, ok := c.cache.Get(key); ok {
		return data, nil
	}

	data, err := c.next.Synthesize(ctx, text, lang)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, data)
	return data, nil
}

// Len returns the number of cached renderings
func (c *Cached) Len() int {
	return c.cache.Len()
}
