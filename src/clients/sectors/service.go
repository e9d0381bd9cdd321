package sectors

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

// SectorServiceClientI classifies symbols into industries for the
// diversification badge. Symbols missing from the response fall back to the
// generic bucket downstream.
type SectorServiceClientI interface {
	GetIndustries(ctx context.Context, symbols []string) (map[string]string, error)
}

type SectorServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
}

// NewClient creates a new instance of SectorServiceClient
func NewClient(cfg *config.Config) *SectorServiceClient {
	return &SectorServiceClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: cfg.ExternalClients.Sectors.BaseURL,
	}
}

// GetIndustries fetches industry classifications for the given symbols.
func (c *SectorServiceClient) GetIndustries(ctx context.Context, symbols []string) (map[string]string, error) {
	if len(symbols) == 0 {
		return map[string]string{}, nil
	}
	endpoint := fmt.Sprintf("%s/v1/industries", c.BaseURL)

	params := url.Values{}
	params.Add("symbols", strings.Join(symbols, ","))

	resp, err := c.API.Get(ctx, endpoint, "", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("industry classifier returned status %d", resp.StatusCode)
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var industriesResponse GetIndustriesResponse
	err = json.Unmarshal(responseBody, &industriesResponse)
	if err != nil {
		return nil, err
	}

	industries := make(map[string]string, len(industriesResponse.Industries))
	for _, entry := range industriesResponse.Industries {
		industries[entry.Symbol] = entry.Industry
	}
	return industries, nil
}
