package mjwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer-token payload shape the ledger and agent both parse:
// sub/exp/azp/permissions are required, email and organization are optional.
type Claims struct {
	jwt.RegisteredClaims

	AZP          string         `json:"azp"`
	Permissions  []string       `json:"permissions"`
	Email        string         `json:"email,omitempty"`
	Organization map[string]any `json:"organization,omitempty"`
}

// HasPermission reports whether any of the wanted scopes is present in the
// token's permissions claim.
func (c Claims) HasPermission(wanted ...string) bool {
	if len(wanted) == 0 {
		return true
	}

	set := make(map[string]struct{}, len(c.Permissions))
	for _, p := range c.Permissions {
		set[p] = struct{}{}
	}

	for _, w := range wanted {
		if _, ok := set[w]; ok {
			return true
		}
	}

	return false
}

// OrganizationID extracts the single key of the organization claim. A
// missing claim yields "", nil (no organization scoping applies). A present
// claim must carry exactly one key; zero or more than one is rejected as
// malformed.
func (c Claims) OrganizationID() (string, error) {
	if c.Organization == nil {
		return "", nil
	}

	if len(c.Organization) != 1 {
		return "", fmt.Errorf("organization claim must have exactly one key, got %d", len(c.Organization))
	}

	for k := range c.Organization {
		return k, nil
	}

	return "", nil
}
