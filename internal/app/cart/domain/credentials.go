package domain

import "strings"

// Credentials identify the tenant and authorize catalog reads.
// AccessToken is never persisted.
type Credentials struct {
	ShopDomain  string
	AccessToken string
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.ShopDomain) == "" || strings.TrimSpace(c.AccessToken) == "" {
		return ErrInvalidCredentials
	}
	return nil
}

// String never includes the token.
func (c Credentials) String() string {
	return "Credentials{ShopDomain: " + c.ShopDomain + "}"
}
