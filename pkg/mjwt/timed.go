package mjwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// timedClaims is the minimal HS256 payload used for internal, self-signed
// trust between a process and itself (or a tightly coupled loopback caller)
// where a full OIDC round-trip is unwarranted.
type timedClaims struct {
	jwt.RegisteredClaims
}

// NewTimedToken mints an HS256 token for sub/iss, expiring after duration
// (or never, if duration is zero).
func NewTimedToken(sub, iss, secret string, duration time.Duration) (string, error) {
	if secret == "" || sub == "" || iss == "" {
		return "", errors.New("secret, sub and iss cannot be empty")
	}

	claims := timedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: sub,
			Issuer:  iss,
		},
	}

	if duration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(duration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}

// ValidateTimedToken verifies a token minted by NewTimedToken and returns its
// subject. leeway tolerates small clock skew around expiry.
func ValidateTimedToken(tokenString, secret string, leeway time.Duration) (string, error) {
	claims := &timedClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}

		return []byte(secret), nil
	}, jwt.WithLeeway(leeway))
	if err != nil {
		return "", err
	}

	if !parsed.Valid {
		return "", errors.New("invalid token")
	}

	return claims.Subject, nil
}
