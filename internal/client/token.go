package client

import (
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// negativeLeeway is how far into the future a cached token's exp claim must
// lie before the token is trusted, so a token about to expire mid-request
// isn't handed out as still good.
const negativeLeeway = 10 * time.Second

func cacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".cache", "license-manager"), nil
}

func tokenPath() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "access_token"), nil
}

// loadCachedToken returns the cached token if it exists and its exp claim
// lies more than negativeLeeway in the future. The token is never signature
// verified here — it's opaque to the client — only its expiry is peeked.
func loadCachedToken() (string, bool) {
	path, err := tokenPath()
	if err != nil {
		return "", false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	token := string(raw)

	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", false
	}

	expiration, err := claims.GetExpirationTime()
	if err != nil || expiration == nil {
		return "", false
	}

	if time.Now().Add(negativeLeeway).After(expiration.Time) {
		return "", false
	}

	return token, true
}

// saveTokenToCache writes token to the cache file atomically: write to a
// temp file in the same directory, then rename over the target, so a
// concurrent reader never observes a partial write.
func saveTokenToCache(token string) error {
	dir, err := cacheDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	path, err := tokenPath()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".access_token-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}
