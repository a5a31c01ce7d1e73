package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/pkg/apiclient"
	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/benedict-erwin/store-console/pkg/response"
	"github.com/benedict-erwin/store-console/pkg/token"
)

// LoginRedirect is the data attached to every 401 so clients know where to go
var LoginRedirect = map[string]string{"redirect": apiclient.LoginPath}

// BearerAuth requires an unexpired bearer token. The signature is not verified
// here; the store API does that when the token is forwarded.
func BearerAuth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.WithScope("BearerAuth")

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Debug().
					Str("path", c.Request().URL.Path).
					Str("method", c.Request().Method).
					Msg("Missing Authorization header")
				return unauthorized(c, constants.CodeMissingAuth)
			}

			tok, found := strings.CutPrefix(authHeader, "Bearer ")
			tok = strings.TrimSpace(tok)
			if !found || tok == "" {
				log.Warn().
					Str("path", c.Request().URL.Path).
					Msg("Invalid Authorization header format")
				return unauthorized(c, constants.CodeInvalidToken)
			}

			claims, ok := codec.DecodeClaims(tok)
			if !ok {
				log.Warn().Str("path", c.Request().URL.Path).Msg("Undecodable bearer token")
				return unauthorized(c, constants.CodeInvalidToken)
			}
			if codec.IsExpired(tok) {
				log.Info().
					Str("subject", claims.Subject()).
					Str("path", c.Request().URL.Path).
					Msg("Expired bearer token")
				return unauthorized(c, constants.CodeExpiredToken)
			}

			c.Set(constants.BearerTokenKey, tok)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, code int) error {
	return response.FailWithCodeAndData(c, code, constants.GetErrorMessage(code), LoginRedirect)
}
