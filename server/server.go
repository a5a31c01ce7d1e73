package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/benedict-erwin/store-console/http/middleware"
	"github.com/benedict-erwin/store-console/http/registry"
	"github.com/benedict-erwin/store-console/http/v1/handler"
	"github.com/benedict-erwin/store-console/internal/constants"
	"github.com/benedict-erwin/store-console/pkg/logger"
	"github.com/benedict-erwin/store-console/pkg/metrics"
	"github.com/benedict-erwin/store-console/pkg/response"
)

// New builds the echo instance with every registered route, /metrics and the
// envelope error handler. Routes must have been registered by importing http/v1/route.
func New(deps handler.Dependencies, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger)
	e.HTTPErrorHandler = errorHandler

	handler.Setup(deps)
	registry.SetupAllRoutes(e)
	if gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))
	}
	return e
}

func errorHandler(err error, c echo.Context) {
	httpStatus := http.StatusInternalServerError
	code := constants.CodeInternalError
	message := constants.GetErrorMessage(code)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		httpStatus = he.Code
		code = constants.CodeFromHTTPStatus(he.Code)
		if he.Code == http.StatusNotFound {
			code = constants.CodeEndpointNotFound
		}
		message = constants.GetErrorMessage(code)
		if he.Message != nil {
			message = fmt.Sprintf("%v", he.Message)
		}
	} else {
		logger.WithScope("httpError").Error().Err(err).Str("path", c.Request().URL.Path).Msg("Unhandled error")
	}

	if !c.Response().Committed {
		response.Fail(c, httpStatus, code, message)
	}
}

// Start serves e on port until SIGINT or SIGTERM, then shuts down gracefully
// and runs the closers.
func Start(e *echo.Echo, port int, closers ...func() error) error {
	log := logger.WithScope("startServer")

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", port)
		log.Info().Msg("Starting server on " + addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		log.Error().Err(err).Msg("Server failed to start")
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
		return err
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("Failed to release resource")
		}
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}
