package controllers

import (
	"time"

	"classtrade/src/clients/quotes"
	"classtrade/src/repositories"
	redis_utils "classtrade/src/utils/redis"
)

type Controller struct {
	Accounts repositories.AccountRepository
	Quotes   quotes.QuoteServiceClientI
	Cache    *redis_utils.RedisHandler
	CacheTTL time.Duration
}

func NewController(
	accounts repositories.AccountRepository,
	quoteClient quotes.QuoteServiceClientI,
	cache *redis_utils.RedisHandler,
	cacheTTL time.Duration,
) *Controller {
	return &Controller{
		Accounts: accounts,
		Quotes:   quoteClient,
		Cache:    cache,
		CacheTTL: cacheTTL,
	}
}
