package mjwt

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Validator verifies bearer tokens against one or two trusted OIDC domains
// (a primary tenant, and an optional admin overlay domain with broader
// permissions). Two domains exist because the ledger distinguishes
// cluster-agent tokens from an operator's admin tokens without requiring
// both to share an issuer.
type Validator struct {
	Primary *JWKProvider
	Admin   *JWKProvider
}

// Validate parses and verifies tokenString against whichever of the
// configured domains owns the signing key, returning the decoded Claims.
func (v *Validator) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	providers := []*JWKProvider{v.Primary}
	if v.Admin != nil {
		providers = append(providers, v.Admin)
	}

	var lastErr error

	for _, p := range providers {
		claims, err := v.validateAgainst(ctx, p, tokenString)
		if err == nil {
			return claims, nil
		}

		lastErr = err
	}

	return nil, lastErr
}

func (v *Validator) validateAgainst(ctx context.Context, p *JWKProvider, tokenString string) (*Claims, error) {
	keySet, err := p.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching JWKS: %w", err)
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, errors.New("kid header not found")
		}

		key, ok := keySet.LookupKeyID(kid)
		if !ok {
			return nil, errors.New("token not signed by a trusted key")
		}

		var raw any
		if err := key.Raw(&raw); err != nil {
			return nil, err
		}

		return raw, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.Subject == "" {
		return nil, errors.New("missing sub claim")
	}

	if claims.ExpiresAt == nil {
		return nil, errors.New("missing exp claim")
	}

	if claims.AZP == "" {
		return nil, errors.New("missing azp claim")
	}

	if claims.Permissions == nil {
		return nil, errors.New("missing permissions claim")
	}

	if _, err := claims.OrganizationID(); err != nil {
		return nil, err
	}

	return claims, nil
}
