package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/example/promostock/internal/auth"
)

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// ExtractToken extracts the session token from cookie or Authorization header
func ExtractToken(r *http.Request) string {
	// Try cookie first (for browser)
	if cookie, err := r.Cookie("access_token"); err == nil {
		return cookie.Value
	}
	// Fall back to Authorization header (for API clients)
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

type contextKey string

const employeeContextKey contextKey = "employee"

// AuthMiddleware validates session tokens and adds the acting employee's
// claims to the request context. Every mutating route sits behind it: a
// request with no resolvable identity never reaches the recorder.
func AuthMiddleware(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractToken(r)
			if tokenString == "" {
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateAccessToken(tokenString)
			if err != nil {
				respondError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), employeeContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetEmployeeFromContext retrieves the acting employee's claims.
func GetEmployeeFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(employeeContextKey).(*auth.Claims)
	return claims, ok
}

// GetEmployeeID is a helper to get just the acting employee id from context.
func GetEmployeeID(ctx context.Context) string {
	claims, ok := GetEmployeeFromContext(ctx)
	if !ok {
		return ""
	}
	return claims.EmployeeID
}
