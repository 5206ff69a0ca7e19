// Package common contains shared constants and sentinel errors used across
// contactkeeper components.
package common

const (
	// AuthorizationHeaderName carries the bearer token on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the expected authorization scheme, matched case-insensitively.
	BearerScheme = "Bearer"
)

// BearerValue formats a token for the Authorization header.
func BearerValue(token string) string {
	return BearerScheme + " " + token
}
