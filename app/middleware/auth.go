package appMiddleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const StaffEmailKey contextKey = "staffEmail"
const StaffRoleKey contextKey = "staffRole"

// StaffClaims are the claims carried by tokens the ops tooling mints for the
// sales team. Token issuance lives outside this service; we only validate.
type StaffClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// RequireStaff validates the Bearer token on admin routes and adds the staff
// identity to the request context.
func RequireStaff(secret []byte) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			headerParts := strings.Split(authHeader, " ")
			if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
				http.Error(w, "Authorization header format must be Bearer {token}", http.StatusUnauthorized)
				return
			}
			tokenString := headerParts[1]

			claims := &StaffClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), StaffEmailKey, claims.Email)
			ctx = context.WithValue(ctx, StaffRoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetStaffEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(StaffEmailKey).(string)
	return email, ok
}

func GetStaffRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(StaffRoleKey).(string)
	return role, ok
}
