package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const adminContextKey = contextKey("admin")

// Admin is the authenticated admin session placed into the request context.
type Admin struct {
	Email string
}

// AdminAuth guards admin-only routes: it requires a valid Bearer token
// signed with the configured secret.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization token required"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": "Invalid token claims"})
			return
		}

		email, _ := claims["email"].(string)
		admin := &Admin{Email: email}

		ctx := context.WithValue(c.Request.Context(), adminContextKey, admin)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetAdminFromContext retrieves the authenticated admin from context
func GetAdminFromContext(ctx context.Context) (*Admin, error) {
	admin, ok := ctx.Value(adminContextKey).(*Admin)
	if !ok {
		return nil, errors.New("admin not found in context")
	}
	return admin, nil
}

func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && bearerToken[:7] == "Bearer " {
		return bearerToken[7:]
	}
	return ""
}
