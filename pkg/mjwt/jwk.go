package mjwt

import (
	"context"
	"sync"
	"time"

	"github.com/lestrrat-go/jwx/jwk"
	"github.com/patrickmn/go-cache"
)

const defaultJWKCacheDuration = time.Hour

// JWKProvider fetches and caches a JSON Web Key Set from an OIDC domain's
// JWKS endpoint, so every bearer-token validation doesn't round-trip to the
// identity provider.
type JWKProvider struct {
	URI           string
	CacheDuration time.Duration

	once  sync.Once
	cache *cache.Cache
}

// Fetch returns the cached key set, refreshing it from URI on a cache miss.
func (p *JWKProvider) Fetch(ctx context.Context) (jwk.Set, error) {
	p.once.Do(func() {
		d := p.CacheDuration
		if d == 0 {
			d = defaultJWKCacheDuration
		}

		p.cache = cache.New(d, d)
	})

	if set, found := p.cache.Get(p.URI); found {
		return set.(jwk.Set), nil
	}

	set, err := jwk.Fetch(ctx, p.URI)
	if err != nil {
		return nil, err
	}

	d := p.CacheDuration
	if d == 0 {
		d = defaultJWKCacheDuration
	}

	p.cache.Set(p.URI, set, d)

	return set, nil
}
