package server

import (
	"github.com/linqs/GAIA-sub004/internal/server/middleware"
	"github.com/linqs/GAIA-sub004/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)
	read := middleware.RequireAnyPermission("graph.read", "graph.write")
	write := middleware.RequirePermission("graph.write")

	// Graph routes
	apiRoutes.POST("/graphs", routes.CreateGraphHandler, write)
	apiRoutes.DELETE("/graphs/:gid", routes.DeleteGraphHandler, write)
	apiRoutes.POST("/graphs/:gid/schemas", routes.CreateSchemaHandler, write)
	apiRoutes.GET("/graphs/:gid/schemas/:sid", routes.GetSchemaHandler, read)
	apiRoutes.POST("/graphs/:gid/nodes", routes.CreateNodeHandler, write)
	apiRoutes.POST("/graphs/:gid/edges", routes.CreateEdgeHandler, write)
	apiRoutes.GET("/graphs/:gid/items", routes.GetItemsHandler, read)
	apiRoutes.POST("/graphs/:gid/merge", routes.MergeHandler, middleware.RequirePermission("graph.merge"))

	// Item routes
	apiRoutes.GET("/items/:iid", routes.GetItemHandler, read)
	apiRoutes.PUT("/items/:iid/features/:fid", routes.SetFeatureHandler, write)
	apiRoutes.DELETE("/items/:iid", routes.DeleteItemHandler, write)
}
