package auth

import (
	"context"
	"net/http"
)

// CookieName is the HttpOnly cookie holding the session JWT.
const CookieName = "token"

// contextKey is package private so no other package can read or shadow
// values stored under it.
type contextKey string

const subjectKey contextKey = "subject"

// RequireEditor rejects requests without a valid session cookie with
// 401 Unauthorized. On success the token subject is stored in the context.
func RequireEditor(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := extractSubject(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"editor login required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext returns the session subject set by RequireEditor.
// ("", false) means the request was not authenticated.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok && s != ""
}

func extractSubject(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}
