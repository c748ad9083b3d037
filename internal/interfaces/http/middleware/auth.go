package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tkforgeworks/cookconnect/backend/internal/infrastructure/config"
	"github.com/tkforgeworks/cookconnect/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	AuthAccountIDKey = "auth_account_id"
	AuthUsernameKey  = "auth_username"
	AuthRolesKey     = "auth_roles"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
	adminRole     = "admin"
)

// tokenClaims are the claims the identity provider puts in its access
// tokens. The subject is the external identity id, the same value that
// keys the local account row.
type tokenClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string   `json:"preferred_username,omitempty"`
	Roles             []string `json:"roles,omitempty"`
}

// Auth validates the bearer token and stores the caller's identity on
// the gin context.
func Auth(cfg config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(header, bearerPrefix)

		claims := &tokenClaims{}
		parserOpts := []jwt.ParserOption{
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		}
		if cfg.Issuer != "" {
			parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
		}
		if cfg.Audience != "" {
			parserOpts = append(parserOpts, jwt.WithAudience(cfg.Audience))
		}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			return []byte(cfg.Secret), nil
		}, parserOpts...)
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		if claims.Subject == "" {
			abortUnauthorized(c, "Token carries no subject")
			return
		}

		c.Set(AuthAccountIDKey, claims.Subject)
		c.Set(AuthUsernameKey, claims.PreferredUsername)
		c.Set(AuthRolesKey, claims.Roles)
		c.Next()
	}
}

// RequireSelf only lets the authenticated account, or an admin, reach
// resources addressed by the named id path parameter.
func RequireSelf(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := GetAuthAccountID(c)
		target := c.Param(param)
		if caller == target || IsAdmin(c) {
			c.Next()
			return
		}
		requestID := GetRequestID(c)
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponse(dto.ErrCodeForbidden, "Not allowed to act on another account", requestID))
	}
}

// GetAuthAccountID returns the authenticated account id
func GetAuthAccountID(c *gin.Context) string {
	return c.GetString(AuthAccountIDKey)
}

// GetAuthUsername returns the authenticated username
func GetAuthUsername(c *gin.Context) string {
	return c.GetString(AuthUsernameKey)
}

// IsAdmin reports whether the caller carries the admin role
func IsAdmin(c *gin.Context) bool {
	roles, ok := c.Get(AuthRolesKey)
	if !ok {
		return false
	}
	list, ok := roles.([]string)
	if !ok {
		return false
	}
	for _, role := range list {
		if role == adminRole {
			return true
		}
	}
	return false
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := GetRequestID(c)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, requestID))
}
