package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderhub/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-unit-tests"

func requestWith(header, value string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		r.Header.Set(header, value)
	}
	return r
}

func TestAuthenticator_UserHeader(t *testing.T) {
	auth := NewAuthenticator("")
	userID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	t.Run("customer", func(t *testing.T) {
		actor, err := auth.Authenticate(requestWith(HeaderUser, `{"id":"`+userID.String()+`","role":"user"}`))

		require.NoError(t, err)
		assert.Equal(t, userID, actor.ID())
		assert.Equal(t, kernel.RoleCustomer, actor.Role())
		assert.Nil(t, actor.RestaurantID())
	})

	t.Run("restaurant", func(t *testing.T) {
		header := `{"id":"` + userID.String() + `","role":"restaurant","restaurant_id":"` + restaurantID.String() + `"}`
		actor, err := auth.Authenticate(requestWith(HeaderUser, header))

		require.NoError(t, err)
		assert.True(t, actor.OperatesRestaurant(restaurantID))
	})

	rejected := map[string]string{
		"missing header":          "",
		"malformed json":          `{"id":`,
		"malformed id":            `{"id":"42","role":"user"}`,
		"unknown role":            `{"id":"` + userID.String() + `","role":"admin"}`,
		"restaurant without id":   `{"id":"` + userID.String() + `","role":"restaurant"}`,
		"malformed restaurant id": `{"id":"` + userID.String() + `","role":"restaurant","restaurant_id":"x"}`,
	}
	for name, header := range rejected {
		t.Run(name, func(t *testing.T) {
			_, err := auth.Authenticate(requestWith(HeaderUser, header))

			require.Error(t, err)
			assert.ErrorIs(t, err, errUnauthorized)
		})
	}
}

func TestAuthenticator_BearerToken(t *testing.T) {
	auth := NewAuthenticator(testSecret)
	restaurantID := kernel.NewUUID()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleRestaurant, &restaurantID)
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		token, err := GenerateToken(testSecret, actor, time.Hour)
		require.NoError(t, err)

		got, err := auth.Authenticate(requestWith(echo.HeaderAuthorization, "Bearer "+token))

		require.NoError(t, err)
		assert.Equal(t, actor.ID(), got.ID())
		assert.True(t, got.OperatesRestaurant(restaurantID))
	})

	t.Run("x-user header is ignored when a secret is set", func(t *testing.T) {
		_, err := auth.Authenticate(requestWith(HeaderUser, `{"id":"`+actor.ID().String()+`","role":"user"}`))

		assert.ErrorIs(t, err, errUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken("another-secret", actor, time.Hour)
		require.NoError(t, err)

		_, err = auth.Authenticate(requestWith(echo.HeaderAuthorization, "Bearer "+token))

		assert.ErrorIs(t, err, errUnauthorized)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateToken(testSecret, actor, -time.Minute)
		require.NoError(t, err)

		_, err = auth.Authenticate(requestWith(echo.HeaderAuthorization, "Bearer "+token))

		assert.ErrorIs(t, err, errUnauthorized)
	})

	t.Run("unsigned token", func(t *testing.T) {
		claims := Claims{UserID: actor.ID().String(), Role: string(kernel.RoleMarketing)}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = auth.Authenticate(requestWith(echo.HeaderAuthorization, "Bearer "+token))

		assert.ErrorIs(t, err, errUnauthorized)
	})

	t.Run("missing or malformed header", func(t *testing.T) {
		_, err := auth.Authenticate(requestWith(echo.HeaderAuthorization, ""))
		assert.ErrorIs(t, err, errUnauthorized)

		_, err = auth.Authenticate(requestWith(echo.HeaderAuthorization, "Token abc"))
		assert.ErrorIs(t, err, errUnauthorized)
	})
}

func TestGenerateToken_RequiresSecret(t *testing.T) {
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCourier, nil)
	require.NoError(t, err)

	_, err = GenerateToken("", actor, time.Hour)

	assert.Error(t, err)
}
