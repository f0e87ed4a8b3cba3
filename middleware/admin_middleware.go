package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/desapego-dos-martins/desapego-backend/models"
	"github.com/desapego-dos-martins/desapego-backend/services"
)

const (
	adminKey = "admin"
	// AdminTokenCookie lets the admin panel authenticate without a header.
	AdminTokenCookie = "admin_token"
)

// UnauthorizedResponder writes the 401 body in the shape the route group uses.
type UnauthorizedResponder func(c *gin.Context, message string)

// EnvelopeUnauthorized answers with the models.ApiResponse envelope.
func EnvelopeUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse(c, message))
}

// FlagUnauthorized answers with {success:false, error}.
func FlagUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.NotificationResponse{Success: false, Error: message})
}

// AdminAuth requires a valid admin bearer token. There is no bypass: a
// missing or rejected token always ends the request with 401.
func AdminAuth(auth services.Authenticator, log zerolog.Logger, respond UnauthorizedResponder) gin.HandlerFunc {
	if respond == nil {
		respond = EnvelopeUnauthorized
	}
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			respond(c, "Unauthorized - no token provided")
			return
		}

		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, services.ErrUnauthorized) {
				log.Error().Err(err).Msg("admin authentication failed")
			} else {
				log.Debug().Err(err).Msg("invalid admin token")
			}
			respond(c, "Unauthorized - invalid token")
			return
		}

		c.Set(adminKey, admin)
		c.Next()
	}
}

// AdminFromContext returns the admin set by AdminAuth.
func AdminFromContext(c *gin.Context) (services.Admin, bool) {
	v, ok := c.Get(adminKey)
	if !ok {
		return services.Admin{}, false
	}
	admin, ok := v.(services.Admin)
	return admin, ok
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(AdminTokenCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}
