package middleware

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"staffhub/internal/apperrors"
	"staffhub/internal/common"
)

// JWTMiddleware verifies a bearer token issued by an external identity
// provider sharing the HMAC secret. It only authenticates; it never
// issues or refreshes tokens. The token subject is placed on the
// request context as the caller ID.
func JWTMiddleware(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperrors.NewUnauthorized("Missing token")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return apperrors.NewUnauthorized("Invalid token format")
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return apperrors.NewUnauthorized("Invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return apperrors.NewUnauthorized("Invalid claims")
			}

			sub, ok := claims["sub"].(string)
			if !ok {
				return apperrors.NewUnauthorized("Missing subject in token")
			}

			userID, err := uuid.Parse(sub)
			if err != nil {
				return apperrors.NewUnauthorized("Invalid subject format")
			}

			ctx := context.WithValue(c.Request().Context(), common.UserIDKey, userID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}
