package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

const principalKey = "principal"

// Claims is the token payload issued by the account service: subject holds
// the user id, account_type the customer/vendor discriminator.
type Claims struct {
	AccountType string `json:"account_type"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token and stores the resulting principal on the
// echo context. Token issuance lives in the account service; this service
// only verifies.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			principal, err := parseToken(tokenString, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			SetPrincipal(c, principal)
			return next(c)
		}
	}
}

func parseToken(tokenString, secret string) (models.Principal, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Principal{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return models.Principal{}, fmt.Errorf("invalid token")
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return models.Principal{}, fmt.Errorf("invalid subject: %w", err)
	}

	return models.Principal{
		UserID:      userID,
		AccountType: models.AccountType(claims.AccountType),
	}, nil
}

// SetPrincipal stores the principal on the echo context.
func SetPrincipal(c echo.Context, principal models.Principal) {
	c.Set(principalKey, principal)
}

// GetPrincipal returns the authenticated principal stored by Auth.
func GetPrincipal(c echo.Context) (models.Principal, bool) {
	principal, ok := c.Get(principalKey).(models.Principal)
	return principal, ok
}
