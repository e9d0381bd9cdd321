package worker

import (
	"context"
	"net/http"
	"time"

	"classtrade/src/config"
	"classtrade/src/scheduler"
	"classtrade/src/utils"
	"classtrade/src/worker/handlers"

	"github.com/go-chi/chi/v5"
)

type Server struct {
	Router    *chi.Mux
	Handler   *handlers.Handler
	refresher *scheduler.ScheduledTask
}

func NewServer(cfg *config.Config) (*Server, error) {
	handler, err := handlers.NewHandler(cfg)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handler,
	}
	server.InitRoutes()

	refresher, err := scheduler.NewScheduledTask(cfg.Classroom.QuoteRefreshCron, func() {
		ctx, cancel := context.WithTimeout(utils.WithLogger(context.Background(), handler.Logger), 30*time.Second)
		defer cancel()
		if _, err := handler.Controller.RefreshQuoteSnapshot(ctx); err != nil {
			handler.Logger.Errorf("scheduled quote refresh failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	server.refresher = refresher

	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Post("/api/quotes/refresh", s.Handler.RefreshQuotes)
}

// Stop cancels the scheduled refresh.
func (s *Server) Stop() {
	if s.refresher != nil {
		s.refresher.Cancel()
	}
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
