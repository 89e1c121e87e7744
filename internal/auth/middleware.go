package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gdg-garage/tourism-api/internal/policy"
)

type contextKey string

const ActorKey contextKey = "actor"

// AuthMiddleware resolves the actor of a request from a bearer token or the
// auth_token cookie. Requests without credentials go through anonymously;
// requests with bad credentials are rejected.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r)
		if tokenString == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.parse(tokenString, accessTokenType)
		if err != nil {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		// role and is_active are read from the database, not trusted from the token
		user, err := h.store.Users.Get(r.Context(), claims.UserID)
		if err != nil || !user.IsActive {
			http.Error(w, "Unauthorized: User not found or inactive", http.StatusUnauthorized)
			return
		}

		ctx := WithActor(r.Context(), policy.ActorFor(*user))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value
	}
	return ""
}

func WithActor(ctx context.Context, actor policy.Actor) context.Context {
	return context.WithValue(ctx, ActorKey, actor)
}

// ActorFrom returns the actor stored in ctx, or policy.Anonymous.
func ActorFrom(ctx context.Context) policy.Actor {
	if actor, ok := ctx.Value(ActorKey).(policy.Actor); ok {
		return actor
	}
	return policy.Anonymous
}
