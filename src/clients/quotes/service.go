package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"classtrade/src/config"
	"classtrade/src/utils/requests"
)

// QuoteServiceClientI is the quote provider consumed by valuation. The
// returned map may omit symbols the provider could not resolve; callers fall
// back to cost basis for those.
type QuoteServiceClientI interface {
	GetQuotes(ctx context.Context, symbols []string) (map[string]float64, error)
}

type QuoteServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	Token   string
}

// NewClient creates a new instance of QuoteServiceClient
func NewClient(cfg *config.Config) *QuoteServiceClient {
	return &QuoteServiceClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.Quotes.BaseURL,
		Token:   cfg.ExternalClients.Quotes.Token,
	}
}

// GetQuotes fetches last trade prices for the given symbols in one batch.
func (c *QuoteServiceClient) GetQuotes(ctx context.Context, symbols []string) (map[string]float64, error) {
	if len(symbols) == 0 {
		return map[string]float64{}, nil
	}
	endpoint := fmt.Sprintf("%s/v1/quotes", c.BaseURL)

	params := url.Values{}
	params.Add("symbols", strings.Join(symbols, ","))

	resp, err := c.API.Get(ctx, endpoint, c.Token, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("quote provider returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var quotesResponse GetQuotesResponse
	err = json.Unmarshal(responseBody, &quotesResponse)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(quotesResponse.Quotes))
	for _, q := range quotesResponse.Quotes {
		if q.Price > 0 {
			prices[q.Symbol] = q.Price
		}
	}
	return prices, nil
}
