package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stocksim/internal/domain"
)

// MarketPriceService fetches quotes from an external quote API. It is the
// production PriceOracle; every request carries a bounded timeout so a slow
// upstream cannot hang a trading operation.
type MarketPriceService struct {
	httpClient *http.Client
	baseURL    string
}

// NewMarketPriceService creates a new MarketPriceService
func NewMarketPriceService(baseURL string, timeout time.Duration) *MarketPriceService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MarketPriceService{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Lookup fetches the current quote for one symbol. A 404 from the upstream
// maps to ErrUnknownSymbol; transport failures and non-OK statuses map to
// ErrOracleUnavailable so callers get a defined outcome instead of a hang.
func (s *MarketPriceService) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, domain.ErrUnknownSymbol
	}

	endpoint := fmt.Sprintf("%s/quote?symbol=%s", s.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrUnknownSymbol
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status=%d, body=%s", domain.ErrOracleUnavailable, resp.StatusCode, string(body))
	}

	var quote struct {
		Name   string  `json:"name"`
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	if quote.Price <= 0 {
		return nil, domain.ErrUnknownSymbol
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}

	return &domain.Quote{
		Name:   quote.Name,
		Symbol: strings.ToUpper(quote.Symbol),
		Price:  quote.Price,
	}, nil
}
