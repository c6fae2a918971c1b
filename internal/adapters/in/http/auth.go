package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"orderhub/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderUser carries the principal as JSON when the gateway has already authenticated the caller.
	HeaderUser = "X-User"

	actorContextKey = "actor"
	tokenIssuer     = "orderhub"
)

// Claims is the JWT payload accepted on Authorization: Bearer.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"id"`
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}

type userHeader struct {
	ID           string `json:"id"`
	Role         string `json:"role"`
	RestaurantID string `json:"restaurant_id,omitempty"`
}

// Authenticator resolves the acting principal of a request. With a secret it
// requires a signed bearer token; without one it trusts the X-User header.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) *Authenticator {
	a := &Authenticator{}
	if secret != "" {
		a.secret = []byte(secret)
	}
	return a
}

func (a *Authenticator) Authenticate(r *http.Request) (kernel.Actor, error) {
	if a.secret != nil {
		return a.fromBearer(r.Header.Get(echo.HeaderAuthorization))
	}
	return fromUserHeader(r.Header.Get(HeaderUser))
}

// Middleware stores the actor in the echo context or answers 401.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := a.Authenticate(c.Request())
			if err != nil {
				return err
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func (a *Authenticator) fromBearer(header string) (kernel.Actor, error) {
	if header == "" {
		return kernel.Actor{}, fmt.Errorf("%w: missing Authorization header", errUnauthorized)
	}
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return kernel.Actor{}, fmt.Errorf("%w: malformed bearer token", errUnauthorized)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return kernel.Actor{}, fmt.Errorf("%w: invalid token", errUnauthorized)
	}

	return toActor(claims.UserID, claims.Role, claims.RestaurantID)
}

func fromUserHeader(header string) (kernel.Actor, error) {
	if header == "" {
		return kernel.Actor{}, fmt.Errorf("%w: no user data provided", errUnauthorized)
	}

	var user userHeader
	if err := json.Unmarshal([]byte(header), &user); err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: malformed %s header", errUnauthorized, HeaderUser)
	}
	return toActor(user.ID, user.Role, user.RestaurantID)
}

func toActor(id, role, restaurantID string) (kernel.Actor, error) {
	actorID, err := kernel.UUIDFromString(id)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", errUnauthorized, err)
	}

	var rid *kernel.UUID
	if restaurantID != "" {
		parsed, parseErr := kernel.UUIDFromString(restaurantID)
		if parseErr != nil {
			return kernel.Actor{}, fmt.Errorf("%w: %w", errUnauthorized, parseErr)
		}
		rid = &parsed
	}

	actor, err := kernel.NewActor(actorID, kernel.Role(role), rid)
	if err != nil {
		return kernel.Actor{}, fmt.Errorf("%w: %w", errUnauthorized, err)
	}
	return actor, nil
}

// GenerateToken signs a bearer token for actor, valid for ttl.
func GenerateToken(secret string, actor kernel.Actor, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is empty")
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
		UserID: actor.ID().String(),
		Role:   string(actor.Role()),
	}
	if rid := actor.RestaurantID(); rid != nil {
		claims.RestaurantID = rid.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func actorFrom(c echo.Context) (kernel.Actor, error) {
	actor, ok := c.Get(actorContextKey).(kernel.Actor)
	if !ok {
		return kernel.Actor{}, fmt.Errorf("%w: no actor in request context", errUnauthorized)
	}
	return actor, nil
}
