package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, userID, accountType string, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		AccountType: accountType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func runAuth(t *testing.T, authHeader string) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	return c, Auth(testSecret)(handler)(c)
}

func TestAuthStoresPrincipal(t *testing.T) {
	userID := primitive.NewObjectID()
	token := signToken(t, testSecret, userID.Hex(), "vendor", time.Hour)

	c, err := runAuth(t, "Bearer "+token)
	require.NoError(t, err)

	principal, ok := GetPrincipal(c)
	require.True(t, ok)
	assert.Equal(t, userID, principal.UserID)
	assert.Equal(t, models.AccountTypeVendor, principal.AccountType)
	assert.True(t, principal.IsVendor())
}

func TestAuthRejectsBadRequests(t *testing.T) {
	validID := primitive.NewObjectID().Hex()

	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{
			name:   "missing header",
			header: func(*testing.T) string { return "" },
		},
		{
			name:   "not a bearer token",
			header: func(*testing.T) string { return "Basic abc" },
		},
		{
			name:   "garbage token",
			header: func(*testing.T) string { return "Bearer not.a.token" },
		},
		{
			name: "expired token",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, validID, "customer", -time.Hour)
			},
		},
		{
			name: "subject not an object id",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, testSecret, "not-an-id", "customer", time.Hour)
			},
		},
		{
			name: "signed with wrong secret",
			header: func(t *testing.T) string {
				return "Bearer " + signToken(t, "other-secret", validID, "customer", time.Hour)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := runAuth(t, tt.header(t))

			var httpErr *echo.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, http.StatusUnauthorized, httpErr.Code)

			_, ok := GetPrincipal(c)
			assert.False(t, ok)
		})
	}
}
