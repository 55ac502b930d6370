package http

import (
	"net/http"

	"prescription-ai-service/internal/delivery/http/handler"
	"prescription-ai-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	healthHandler       *handler.HealthHandler
	intakeHandler       *handler.IntakeHandler
	consultHandler      *handler.ConsultHandler
	corsMiddleware      *middleware.CORSMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
	staticDir           string
}

func NewRouter(
	healthHandler *handler.HealthHandler,
	intakeHandler *handler.IntakeHandler,
	consultHandler *handler.ConsultHandler,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
	staticDir string,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		healthHandler:       healthHandler,
		intakeHandler:       intakeHandler,
		consultHandler:      consultHandler,
		corsMiddleware:      corsMiddleware,
		requestIDMiddleware: requestIDMiddleware,
		staticDir:           staticDir,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.HandleFunc("/", r.healthHandler.Home).Methods(http.MethodGet)
	r.router.HandleFunc("/test-db", r.healthHandler.TestDB).Methods(http.MethodGet)
	r.router.HandleFunc("/submit", r.intakeHandler.Submit).Methods(http.MethodPost)
	r.router.HandleFunc("/chatbot", r.consultHandler.Ask).Methods(http.MethodPost)

	// Static assets (e.g. chatbot.html), read-only
	r.router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(r.staticDir))),
	).Methods(http.MethodGet)

	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}
