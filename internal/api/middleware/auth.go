package middleware

import (
	"context"
	"net/http"
	"strings"

	"newsdesk/internal/app/policy"
	"newsdesk/internal/common"
	"newsdesk/internal/common/security"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const actorCtxKey contextKey = "actor"

func actorFromClaims(claims map[string]interface{}) (policy.Actor, error) {
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return policy.Actor{}, err
	}
	userRole, err := security.GetUserRoleFromClaims(claims)
	if err != nil {
		return policy.Actor{}, err
	}
	return policy.Actor{ID: userID, Role: userRole, Authenticated: true}, nil
}

// Authenticator rejects requests without a valid bearer token and stores the
// resolved actor in the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token: "+err.Error())
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), actorCtxKey, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly must run after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromContext(r.Context())
		if !actor.IsAdmin() {
			common.RespondWithError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext resolves the acting identity. On routes behind
// Authenticator the stored actor is returned; on public routes a valid token
// still yields its actor (the router-level Verifier has already parsed it),
// and everything else is anonymous.
func ActorFromContext(ctx context.Context) policy.Actor {
	if actor, ok := ctx.Value(actorCtxKey).(policy.Actor); ok {
		return actor
	}
	token, claims, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return policy.Anonymous()
	}
	actor, err := actorFromClaims(claims)
	if err != nil {
		return policy.Anonymous()
	}
	return actor
}
