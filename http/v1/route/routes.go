package route

import (
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/store-console/http/middleware"
	"github.com/benedict-erwin/store-console/http/registry"
	"github.com/benedict-erwin/store-console/http/v1/handler"
)

// init registers v1 routes with the registry
func init() {
	registry.Register("v1", func(g *echo.Group) {
		// public
		g.GET("/health/live", handler.HealthLive)
		g.GET("/health/ready", handler.HealthReady)

		// bearer protected, the token is forwarded to the store API.
		// Attached per route so unknown paths still answer 404.
		auth := middleware.BearerAuth(handler.Codec())
		g.GET("/me", handler.Me, auth)
		g.GET("/dashboard", handler.Dashboard, auth)
		g.GET("/gate-pass/counts", handler.GatePassCounts, auth)

		g.GET("/indents/:scope", handler.ListIndents, auth)
		g.GET("/indents/:scope/export", handler.ExportIndents, auth)
		g.GET("/indents/:scope/download", handler.DownloadIndents, auth)

		g.GET("/stock", handler.Stock, auth)

		g.GET("/purchase-orders/:scope", handler.ListPurchaseOrders, auth)
		g.GET("/purchase-orders/:scope/download", handler.DownloadPurchaseOrders, auth)
	})
}
