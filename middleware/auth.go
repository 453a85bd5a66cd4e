package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware protects the JSON API. A Bearer token carries the
// identity; without one the authenticated session cookie is accepted, so
// browser clients can use the API directly after an HTML login.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			tokenString := strings.TrimPrefix(header, "Bearer ")
			userID, username, err := parseToken(tokenString, jwtSecret)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
				c.Abort()
				return
			}
			c.Set("user_id", userID)
			c.Set("username", username)
			c.Next()
			return
		}

		session := GetSession(c)
		if !session.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}
		c.Set("user_id", session.UserID)
		c.Set("username", session.Username)
		c.Next()
	}
}

func parseToken(tokenString, jwtSecret string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}

	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("missing user_id claim")
	}
	username, _ := claims["username"].(string)

	return uint(userIDFloat), username, nil
}
