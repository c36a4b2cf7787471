package middleware

import (
	"crypto/subtle"
	"net/http"

	apperrors "clouddictionary/pkg/errors"
)

// Tier is the access level an endpoint requires.
type Tier int

const (
	// TierOpen needs no key.
	TierOpen Tier = iota
	// TierRestricted needs the function key or the admin key.
	TierRestricted
	// TierAdmin needs the admin key.
	TierAdmin
)

// FunctionKeyHeader carries the access key when it is not passed as the
// code query parameter.
const FunctionKeyHeader = "x-functions-key"

// AccessKeys holds the configured keys. An empty key disables the check
// for its tier.
type AccessKeys struct {
	FunctionKey string
	AdminKey    string
}

// RequireTier rejects requests that do not present a key for tier.
func RequireTier(keys AccessKeys, tier Tier, errorHandler *apperrors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !keys.allows(tier, presentedKey(r)) {
				errorHandler.Handle(w, r, apperrors.NewUnauthorizedError("A valid access key is required."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (k AccessKeys) allows(tier Tier, presented string) bool {
	switch tier {
	case TierOpen:
		return true
	case TierRestricted:
		if k.FunctionKey == "" {
			return true
		}
		return keyMatches(k.FunctionKey, presented) || keyMatches(k.AdminKey, presented)
	case TierAdmin:
		if k.AdminKey == "" {
			return true
		}
		return keyMatches(k.AdminKey, presented)
	default:
		return false
	}
}

func presentedKey(r *http.Request) string {
	if code := r.URL.Query().Get("code"); code != "" {
		return code
	}
	return r.Header.Get(FunctionKeyHeader)
}

func keyMatches(expected, presented string) bool {
	if expected == "" || presented == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}
