package internal

import (
	"net/http"
	"tracespace/internal/controllers"
	"tracespace/internal/providers"
	"tracespace/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/latest", http.HandlerFunc(apiController.GetLatest))
	routers.Get("/api/range", http.HandlerFunc(apiController.GetRange))
	routers.Get("/api/storage", http.HandlerFunc(apiController.GetStorage))
	routers.Post("/api/snapshots", http.HandlerFunc(apiController.ReceiveSnapshot))

	if conf.WebServer.DataDir != "" {
		routers.Get("/data/", http.StripPrefix("/data/", http.FileServer(http.Dir(conf.WebServer.DataDir))))
	}
	if conf.WebServer.StaticDir != "" {
		routers.Get("/", http.FileServer(http.Dir(conf.WebServer.StaticDir)))
	}
	return routers
}
