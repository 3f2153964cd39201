package middleware

import (
	"context"
	"net/http"
	"strings"

	platformauth "sirh/internal/auth"
	"sirh/internal/domain/requests"
)

type ctxKeyType string

const ctxKeyActor ctxKeyType = "actor"

// Auth decodes a bearer token into the request context. Requests without a
// valid token pass through anonymously; RequireAuth decides whether that is
// acceptable.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := platformauth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyActor, requests.Actor{
				UserID:     claims.UserID,
				EmpleadoID: claims.EmpleadoID,
				Rol:        claims.Rol,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetActor(ctx context.Context) (requests.Actor, bool) {
	actor, ok := ctx.Value(ctxKeyActor).(requests.Actor)
	return actor, ok
}

func WithActor(ctx context.Context, actor requests.Actor) context.Context {
	return context.WithValue(ctx, ctxKeyActor, actor)
}
