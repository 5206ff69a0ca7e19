package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

// Identity is the authenticated caller of a protected route.
type Identity struct {
	UserID string
	Email  string
}

// IdentityHandler serves a request on behalf of an authenticated caller.
type IdentityHandler func(w http.ResponseWriter, r *http.Request, id Identity)

// TokenVerifier resolves a bearer token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup loads a user by id; common.ErrorNotFound when absent.
type UserLookup interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

// AuthGate protects routes with bearer tokens.
type AuthGate struct {
	tokens TokenVerifier
	users  UserLookup
	logger logging.Logger
}

func NewAuthGate(tokens TokenVerifier, users UserLookup, l logging.Logger) *AuthGate {
	return &AuthGate{tokens: tokens, users: users, logger: l}
}

// Require wraps next. The request reaches next only with a valid token that
// belongs to an existing user.
func (g *AuthGate) Require(next IdentityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get(common.AuthorizationHeaderName))
		if !ok {
			writeFailure(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		userID, err := g.tokens.Verify(token)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		// a valid token for a deleted account is still unauthenticated
		user, err := g.users.GetProfile(r.Context(), userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				writeFailure(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}
			writeError(w, r, g.logger, err, "Error authenticating request")
			return
		}

		next(w, r, Identity{UserID: user.ID, Email: user.Email})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// value. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
