package echo

import (
	"net/http"

	e "github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the handlers that are non-nil.
func RegisterRoutes(server *e.Echo, userHandler *UserHandler, importHandler *ImportHandler, metrics http.Handler) {
	if userHandler != nil {
		server.POST("/users", userHandler.CreateUser)
		server.GET("/users", userHandler.ListUsers)
		server.GET("/users/:id", userHandler.GetUserByID)
		server.PUT("/users/:id", userHandler.UpdateUser)
		server.GET("/users/:id/history", userHandler.GetUserHistory)
		server.GET("/health", userHandler.Health)
	}

	if importHandler != nil {
		server.POST("/imports", importHandler.StartImport)
		server.GET("/imports/:id", importHandler.GetImportRun)
	}

	if metrics != nil {
		server.GET("/metrics", e.WrapHandler(metrics))
	}
}
