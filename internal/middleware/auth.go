package middleware

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"library-admin/internal/auth"
)

// SessionCookie holds the staff session token
const SessionCookie = "library_session"

type AuthMiddleware struct {
	staff *auth.Staff
}

func NewAuthMiddleware(staff *auth.Staff) *AuthMiddleware {
	return &AuthMiddleware{staff: staff}
}

// Authenticate puts the staff username and client address on the request
// context. When login is enabled, requests without a valid session token get
// 401 (API) or a redirect to the login page.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ClientIP(r)

		if !m.staff.Enabled() {
			next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), "", ip)))
			return
		}

		token := tokenFromRequest(r)
		if token == "" {
			m.reject(w, r, "Authentication required")
			return
		}

		claims, err := m.staff.Tokens.ValidateToken(token)
		if err != nil {
			m.reject(w, r, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithActor(r.Context(), claims.Username, ip)))
	})
}

func (m *AuthMiddleware) reject(w http.ResponseWriter, r *http.Request, msg string) {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/ws" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"` + msg + `"}`))
		return
	}
	http.Redirect(w, r, "/login?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusSeeOther)
}

// tokenFromRequest reads "Authorization: Bearer <token>" or the session cookie.
func tokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// ClientIP returns the first X-Forwarded-For address or the remote host.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
