package internal

import (
	"net/http"
	"showtimer/internal/controllers"
	"showtimer/internal/providers"
	"showtimer/internal/structures"
)

func InitRoutes(timerController *controllers.TimerController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/timer", http.HandlerFunc(timerController.GetView))
	routers.Post("/timer/start", http.HandlerFunc(timerController.Start))
	routers.Post("/timer/pause", http.HandlerFunc(timerController.Pause))
	routers.Post("/timer/reset", http.HandlerFunc(timerController.Reset))
	routers.Post("/timer/add-time", http.HandlerFunc(timerController.AddTime))
	routers.Post("/timer/keypad", http.HandlerFunc(timerController.PressKey))
	return routers
}
