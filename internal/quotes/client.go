// Package quotes fetches currency exchange rates and stock prices from a
// Twelve Data style HTTP API. Quote retrieval is best effort: a missing API
// key, a failed request, or a malformed response degrades to fixed fallback
// values so that page composition never blocks on market data.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"vypiska/internal/cache"
)

const (
	// BaseCurrency is what every exchange rate is quoted against.
	BaseCurrency = "RUB"

	requestTimeout = 10 * time.Second
	cacheSize      = 64
	cacheTTL       = 5 * time.Minute
)

type (
	// Rate is one currency quoted against BaseCurrency.
	Rate struct {
		Currency string  `json:"currency"`
		Rate     float64 `json:"rate"`
	}

	// StockPrice is one ticker's last price.
	StockPrice struct {
		Stock string  `json:"stock"`
		Price float64 `json:"price"`
	}

	// Client talks to the quote API. Responses are cached with a short TTL
	// so repeated page loads do not burn through the API quota.
	Client struct {
		httpClient *http.Client
		baseURL    string
		apiKey     string
		rateCache  *cache.LRUCache[float64]
		priceCache *cache.LRUCache[float64]
	}
)

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		rateCache:  cache.NewLRUCache[float64](cacheSize, cacheTTL),
		priceCache: cache.NewLRUCache[float64](cacheSize, cacheTTL),
	}
}

// Caches exposes the client's caches for registration with a cache.Manager.
func (c *Client) Caches() []cache.Cleaner {
	return []cache.Cleaner{c.rateCache, c.priceCache}
}

// ExchangeRates returns one Rate per requested currency, fetching them
// concurrently. The base currency is always 1.0 without a request. Failures
// fall back per currency; the result slice never reports an error.
func (c *Client) ExchangeRates(ctx context.Context, currencies []string) []Rate {
	if c.apiKey == "" {
		slog.WarnContext(ctx, "Quote API key not configured, using fallback exchange rates")
		return FallbackRates(currencies)
	}

	results := make([]Rate, len(currencies))
	g, gctx := errgroup.WithContext(ctx)
	for i, currency := range currencies {
		if currency == BaseCurrency {
			results[i] = Rate{Currency: currency, Rate: 1.0}
			continue
		}
		g.Go(func() error {
			results[i] = Rate{Currency: currency, Rate: c.fetchRate(gctx, currency)}
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors, they fall back instead

	return results
}

// StockPrices returns one StockPrice per requested ticker using a single
// batched API call. Any failure falls back for the whole batch.
func (c *Client) StockPrices(ctx context.Context, stocks []string) []StockPrice {
	if c.apiKey == "" {
		slog.WarnContext(ctx, "Quote API key not configured, using fallback stock prices")
		return FallbackStockPrices(stocks)
	}
	if len(stocks) == 0 {
		return nil
	}

	uncached := make([]string, 0, len(stocks))
	for _, s := range stocks {
		if _, ok := c.priceCache.Get("price:" + s); !ok {
			uncached = append(uncached, s)
		}
	}

	if len(uncached) > 0 {
		if err := c.fetchPrices(ctx, uncached); err != nil {
			slog.ErrorContext(ctx, "Stock price request failed", "error", err)
			return FallbackStockPrices(stocks)
		}
	}

	results := make([]StockPrice, 0, len(stocks))
	for _, s := range stocks {
		price, ok := c.priceCache.Get("price:" + s)
		if !ok {
			price = FallbackStockPrice(s)
		}
		results = append(results, StockPrice{Stock: s, Price: price})
	}
	return results
}

func (c *Client) fetchRate(ctx context.Context, currency string) float64 {
	key := "rate:" + currency
	if rate, ok := c.rateCache.Get(key); ok {
		return rate
	}

	endpoint := fmt.Sprintf("%s/exchange_rate?symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(currency+"/"+BaseCurrency), url.QueryEscape(c.apiKey))

	var payload struct {
		Rate json.Number `json:"rate"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		slog.ErrorContext(ctx, "Exchange rate request failed", "currency", currency, "error", err)
		return FallbackRate(currency)
	}

	rate, err := payload.Rate.Float64()
	if err != nil || payload.Rate == "" {
		slog.WarnContext(ctx, "Exchange rate missing from response", "currency", currency)
		return FallbackRate(currency)
	}

	c.rateCache.Set(key, rate)
	return rate
}

func (c *Client) fetchPrices(ctx context.Context, stocks []string) error {
	endpoint := fmt.Sprintf("%s/price?symbol=%s&apikey=%s",
		c.baseURL, url.QueryEscape(strings.Join(stocks, ",")), url.QueryEscape(c.apiKey))

	payload := make(map[string]struct {
		Price json.Number `json:"price"`
	})
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return err
	}

	for _, s := range stocks {
		entry, ok := payload[s]
		if !ok {
			slog.WarnContext(ctx, "Stock price missing from response", "stock", s)
			continue
		}
		if price, err := entry.Price.Float64(); err == nil {
			c.priceCache.Set("price:"+s, price)
		}
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
