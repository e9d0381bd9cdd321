package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"classtrade/src/api/controllers"
	"classtrade/src/clients/quotes"
	"classtrade/src/clients/sectors"
	"classtrade/src/config"
	"classtrade/src/database"
	"classtrade/src/models"
	"classtrade/src/repositories"
	"classtrade/src/schemas"
	"classtrade/src/services"
	"classtrade/src/utils"
	aws_handler "classtrade/src/utils/aws"
	redis_utils "classtrade/src/utils/redis"

	"github.com/go-chi/jwtauth"
	"github.com/sirupsen/logrus"
)

const requestTimeout = 10 * time.Second

type Handler struct {
	Controller controllers.IController
	TokenAuth  *jwtauth.JWTAuth
	Logger     *logrus.Logger
}

func NewHandler(cfg *config.Config) (*Handler, error) {
	logger := utils.NewLogger(logrus.InfoLevel)

	db, err := database.SetupDB(cfg)
	if err != nil {
		return nil, err
	}

	// Redis only serves as a quote-snapshot fallback; the API stays up
	// without it.
	var cache controllers.QuoteCache
	if redisHandler, err := redis_utils.NewRedisHandler(cfg); err != nil {
		logger.Warnf("redis unavailable, quote snapshot fallback disabled: %v", err)
	} else {
		cache = redisHandler
	}

	secret, err := resolveJWTSecret(cfg)
	if err != nil {
		return nil, err
	}

	controller := controllers.NewController(
		repositories.NewAccountRepository(db),
		repositories.NewTradeRepository(db),
		quotes.NewClient(cfg),
		sectors.NewClient(cfg),
		cache,
		controllers.BcryptHasher{},
		cfg.Classroom.StartingCash,
	)

	return &Handler{
		Controller: controller,
		TokenAuth:  jwtauth.New("HS256", []byte(secret), nil),
		Logger:     logger,
	}, nil
}

func resolveJWTSecret(cfg *config.Config) (string, error) {
	if cfg.Auth.JWTSecret != "" {
		return cfg.Auth.JWTSecret, nil
	}
	awsHandler, err := aws_handler.NewAWSHandler(cfg.Auth.AWSRegion)
	if err != nil {
		return "", err
	}
	return awsHandler.SecretManager.GetSecretValue(cfg.Auth.SecretID)
}

// requestContext attaches the shared logger and the request deadline.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(utils.WithLogger(r.Context(), h.Logger), requestTimeout)
}

// identity extracts the authenticated (accountID, role) pair from the
// verified token claims.
func (h *Handler) identity(r *http.Request) (schemas.Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return schemas.Identity{}, utils.Unauthorized("invalid session token")
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return schemas.Identity{}, utils.Unauthorized("session token missing identity claims")
	}
	return schemas.Identity{AccountID: sub, Role: models.Role(role)}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

// HandleErrors maps domain errors onto HTTP status codes and writes the
// JSON error body. Ledger and roster errors surface verbatim; anything
// unrecognized becomes a 500.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInsufficientFunds),
		errors.Is(err, services.ErrInsufficientShares):
		err = utils.UnprocessableEntity(err.Error())
	case errors.Is(err, services.ErrInvalidOrderType):
		err = utils.BadRequest(err.Error())
	case errors.Is(err, services.ErrAccountNotFound):
		err = utils.NotFound(err.Error())
	case errors.Is(err, services.ErrUnauthorizedRoster):
		err = utils.Forbidden(err.Error())
	}

	var httpErr *utils.HTTPError
	if !errors.As(err, &httpErr) {
		h.Logger.Errorf("unhandled error: %v", err)
	}
	utils.WriteError(w, err)
}
