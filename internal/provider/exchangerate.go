package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stock-sentry/internal/domain"

	"github.com/shopspring/decimal"
)

const defaultRateBaseURL = "https://cdn.jsdelivr.net/npm/@fawazahmed0/currency-api@latest"

// RateClient fetches conversion multipliers from the public currency-api
// dataset, keyed by lower-cased currency codes. No caching: every call hits
// the upstream so evaluation always uses a fresh rate.
type RateClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRateClient(baseURL string, timeout time.Duration) *RateClient {
	if baseURL == "" {
		baseURL = defaultRateBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RateClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Rate returns the multiplier r such that amountInTarget = amountInBase * r.
// Equal codes short-circuit to 1 without a network call. Any transport,
// decode, or missing-key problem surfaces as a FetchError; the caller owns
// the fallback policy.
func (c *RateClient) Rate(ctx context.Context, base, target domain.CurrencyCode) (decimal.Decimal, error) {
	if base == target {
		return decimal.NewFromInt(1), nil
	}

	baseKey := strings.ToLower(string(base))
	targetKey := strings.ToLower(string(target))
	endpoint := fmt.Sprintf("%s/v1/currencies/%s.json", c.baseURL, baseKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", err)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", err)
	}

	raw, ok := payload[baseKey]
	if !ok {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", fmt.Errorf("missing %q key in payload", baseKey))
	}

	var rates map[string]float64
	if err := json.Unmarshal(raw, &rates); err != nil {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", err)
	}

	rate, ok := rates[targetKey]
	if !ok {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", fmt.Errorf("missing %q rate in payload", targetKey))
	}
	if rate <= 0 {
		return decimal.Zero, domain.NewFetchError("currency-api", "rate", fmt.Errorf("non-positive rate %v", rate))
	}

	return decimal.NewFromFloat(rate), nil
}
