package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/framp/framp-backend/internal/consts"
	"github.com/framp/framp-backend/internal/utils/config"
	"github.com/framp/framp-backend/internal/view"
)

// Claims follows the Supabase access token layout.
type Claims struct {
	jwt.RegisteredClaims
	Email       string      `json:"email,omitempty"`
	AppMetadata AppMetadata `json:"app_metadata"`
}

type AppMetadata struct {
	Role string `json:"role,omitempty"`
}

func parseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, errors.Wrap(consts.ErrUnauthorized, err.Error())
	}
	if claims.Subject == "" {
		return nil, errors.Wrap(consts.ErrUnauthorized, "token has no subject")
	}
	return claims, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if header == "" || token == header || token == "" {
		return "", false
	}
	return token, true
}

// RequireUser rejects requests without a valid bearer token and stores the
// subject and role on the gin context.
func RequireUser(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, view.CreateResponse[any](nil, consts.ErrUnauthorized, nil, "missing bearer token"))
			return
		}

		claims, err := parseToken(token, cfg.Auth.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, view.CreateResponse[any](nil, consts.ErrUnauthorized, nil, "invalid token"))
			return
		}

		c.Set(consts.ContextKeyUserID, claims.Subject)
		c.Set(consts.ContextKeyRole, claims.AppMetadata.Role)
		c.Next()
	}
}

// RequireAdmin must run after RequireUser.
func RequireAdmin(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(consts.ContextKeyRole) != cfg.Auth.AdminRole {
			c.AbortWithStatusJSON(http.StatusForbidden, view.CreateResponse[any](nil, consts.ErrForbidden, nil, "admin role required"))
			return
		}
		c.Next()
	}
}
