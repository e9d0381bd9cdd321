package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"classtrade/src/clients/quotes"
	"classtrade/src/config"
	"classtrade/src/database"
	"classtrade/src/repositories"
	"classtrade/src/utils"
	redis_utils "classtrade/src/utils/redis"
	"classtrade/src/worker/controllers"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller *controllers.Controller
	Logger     *logrus.Logger
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}
	cache, err := redis_utils.NewRedisHandler(cfg)
	if err != nil {
		return nil, err
	}

	controller := controllers.NewController(
		repositories.NewAccountRepository(db),
		quotes.NewClient(cfg),
		cache,
		time.Duration(cfg.Classroom.QuoteCacheTTLMinute)*time.Minute,
	)
	return &Handler{
		Controller: controller,
		Logger:     utils.NewLogger(logrus.InfoLevel),
	}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		utils.WriteError(w, utils.InternalServerError(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}
