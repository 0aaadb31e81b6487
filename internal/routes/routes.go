package routes

import (
	"net/http"

	"firewatch/internal/handler"
	"firewatch/internal/logger"
	"firewatch/internal/middleware"
	"firewatch/internal/service/websocket"

	"github.com/gorilla/mux"
)

// Services groups what the HTTP surface needs from the running app.
type Services struct {
	Hub     *websocket.HubService
	Stream  http.Handler
	Stopper handler.Stopper
	Status  handler.StatusProvider
}

// SetupRoutes registers the live view, stop and status endpoints behind the auth middleware.
func SetupRoutes(svc Services, password string, logger *logger.Logger) http.Handler {
	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/view", handler.ViewWebsocketHandler(svc.Hub, logger)).Methods(http.MethodGet)
	api.HandleFunc("/stop", handler.StopHandler(svc.Stopper, logger)).Methods(http.MethodPost)
	api.HandleFunc("/status", handler.StatusHandler(svc.Status, logger)).Methods(http.MethodGet)

	if svc.Stream != nil {
		router.Handle("/stream", svc.Stream).Methods(http.MethodGet)
	}

	router.Use(middleware.AuthMiddleware(password))
	return router
}
