package httpx

import (
	"net/http"
	"strings"
)

// RequireAnyClaim the caller must hold at least one of the provided claims.
func RequireAnyClaim(required ...string) Middleware {
	want := make(map[string]struct{}, len(required))
	for _, c := range required {
		want[c] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := claimsFromCtx(r.Context())

			for _, c := range have {
				if _, ok := want[c]; ok {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeBearerClaimError(w, http.StatusForbidden, required...)
		})
	}
}

// RequireRegistered the caller must be a registered user, not a bare
// client_credentials principal.
func RequireRegistered() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !RegisteredFromCtx(r.Context()) {
				writeBearerClaimError(w, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750-compliant error response for bearer insufficient_scope.
func writeBearerClaimError(w http.ResponseWriter, code int, required ...string) {
	w.Header().
		Set("WWW-Authenticate", `Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	w.WriteHeader(code)
	_, _ = w.Write([]byte("insufficient_scope"))
}
