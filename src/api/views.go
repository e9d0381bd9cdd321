package api

import (
	"net/http"
	"time"

	"classtrade/src/api/handlers"
	"classtrade/src/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
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
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.Handler.Register)
		r.Post("/login", s.Handler.Login)
	})

	s.Router.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.Handler.TokenAuth))
		r.Use(jwtauth.Authenticator)

		r.Post("/api/trades", s.Handler.ExecuteTrade)

		r.Route("/api/portfolio", func(r chi.Router) {
			r.Get("/", s.Handler.GetPortfolio)
			r.Get("/history", s.Handler.GetTradeHistory)
			r.Get("/{id}", s.Handler.GetStudentPortfolio)
		})

		r.Route("/api/leaderboard", func(r chi.Router) {
			r.Get("/", s.Handler.GetLeaderboard)
			r.Get("/export", s.Handler.ExportLeaderboard)
		})

		r.Route("/api/roster/students", func(r chi.Router) {
			r.Post("/", s.Handler.AddStudent)
			r.Delete("/{id}", s.Handler.RemoveStudent)
			r.Post("/{id}/cash", s.Handler.AdjustStudentCash)
			r.Put("/{id}/credentials", s.Handler.UpdateStudentCredentials)
		})

		r.Post("/api/achievements/evaluate", s.Handler.EvaluateAchievements)
	})
}

func NewHTTPServer(server *Server, cfg *config.Config) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
}
