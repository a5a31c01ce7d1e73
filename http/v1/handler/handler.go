package handler

import (
	"context"
	"errors"
	"net"

	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/http/middleware"
	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/internal/entities/stock"
	"github.com/benedict-erwin/store-console/internal/services/health"
	"github.com/benedict-erwin/store-console/internal/services/store"
	"github.com/benedict-erwin/store-console/pkg/apiclient"
	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/benedict-erwin/store-console/pkg/response"
	"github.com/benedict-erwin/store-console/pkg/tabular"
	"github.com/benedict-erwin/store-console/pkg/token"
)

// Dependencies are shared by every v1 handler
type Dependencies struct {
	Store    *store.Service
	Health   *health.Checker
	Codec    *token.Codec
	PageSize int
}

var deps Dependencies

// Setup installs handler dependencies; call before registry.SetupAllRoutes
func Setup(d Dependencies) {
	if d.PageSize <= 0 {
		d.PageSize = tabular.DefaultPageSize
	}
	if d.Codec == nil {
		d.Codec = token.NewCodec(0, nil)
	}
	deps = d
}

// Codec returns the token codec used by the auth middleware
func Codec() *token.Codec {
	return deps.Codec
}

// ListQuery holds the search and paging parameters of list endpoints
type ListQuery struct {
	Q    string `query:"q"`
	Page int    `query:"page" validate:"omitempty,min=1"`
	Size int    `query:"size" validate:"omitempty,min=1,max=500"`
}

// bindList reads ListQuery; errors are meant for CodeValidationFailed
func bindList(c echo.Context) (ListQuery, error) {
	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return q, err
	}
	if err := c.Validate(&q); err != nil {
		return q, err
	}
	if q.Size == 0 {
		q.Size = deps.PageSize
	}
	return q, nil
}

// scoped returns a service that forwards the caller's bearer token and
// never touches the server's own token store
func scoped(c echo.Context) *store.Service {
	client := deps.Store.Client().With(
		token.NewMemoryStore(constants.GetBearerToken(c)),
		apiclient.NewPathNavigator(c.Request().URL.Path, nil),
	)
	return deps.Store.WithClient(client)
}

// upstreamError maps a store API failure onto the response envelope
func upstreamError(c echo.Context, err error) error {
	log := logger.WithScope("upstreamError")

	var apiErr *apiclient.Error
	var netErr net.Error
	switch {
	case apiclient.IsUnauthorized(err):
		return response.FailWithCodeAndData(c, constants.CodeSessionRejected, apiclient.ErrUnauthorized.Error(), middleware.LoginRedirect)
	case errors.Is(err, store.ErrUnknownScope):
		return response.FailWithCodeAndMessage(c, constants.CodeUnknownScope, err.Error())
	case errors.Is(err, stock.ErrDateRange):
		return response.FailWithCodeAndMessage(c, constants.CodeMissingParameter, err.Error())
	case errors.Is(err, store.ErrNoDashboardData):
		return response.FailWithCodeAndMessage(c, constants.CodeDependencyFailed, "Unable to fetch dashboard data right now.")
	case errors.As(err, &apiErr):
		if apiErr.NotFound() {
			return response.FailWithCodeAndMessage(c, constants.CodeResourceNotFound, apiErr.Message)
		}
		log.Warn().Int("status", apiErr.Status).Str("message", apiErr.Message).Msg("Store API error")
		return response.FailWithCodeAndMessage(c, constants.CodeUpstreamError, apiErr.Message)
	case errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()):
		return response.FailWithCode(c, constants.CodeUpstreamTimeout)
	case errors.As(err, &netErr):
		log.Error().Err(err).Msg("Store API unreachable")
		return response.FailWithCode(c, constants.CodeUpstreamDown)
	default:
		log.Error().Err(err).Msg("Store API call failed")
		return response.FailWithCodeAndMessage(c, constants.CodeInternalError, err.Error())
	}
}
