package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	datasetapp "github.com/soumyadeepdutta/tamperproof-users/internal/application/dataset"
	userapp "github.com/soumyadeepdutta/tamperproof-users/internal/application/user"
	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/dataset"
	"github.com/soumyadeepdutta/tamperproof-users/internal/domain/user"
	httpecho "github.com/soumyadeepdutta/tamperproof-users/internal/interfaces/http/echo"
)

type ServerDeps struct {
	Users     user.Store
	Imports   datasetapp.StartImport
	Runs      dataset.RunRepository
	Metrics   http.Handler
	BodyLimit string
}

func NewHTTPServer(deps ServerDeps) *echo.Echo {
	server := echo.New()
	server.HideBanner = true

	bodyLimit := deps.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "10M"
	}

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(bodyLimit))

	userHandler := httpecho.NewUserHandler(httpecho.UserUseCases{
		Create:  userapp.NewCreateUser(deps.Users),
		Get:     userapp.NewGetUserByID(deps.Users),
		List:    userapp.NewListUsers(deps.Users),
		Update:  userapp.NewUpdateUser(deps.Users),
		History: userapp.NewGetUserHistory(deps.Users),
		Health:  userapp.NewCheckHealth(deps.Users),
	})

	var importHandler *httpecho.ImportHandler
	if deps.Imports != nil && deps.Runs != nil {
		importHandler = httpecho.NewImportHandler(deps.Imports, datasetapp.NewGetImportRun(deps.Runs))
	}

	httpecho.RegisterRoutes(server, userHandler, importHandler, deps.Metrics)

	return server
}
