package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"stock-sentry/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
)

const quoteCacheTTL = 60 * time.Second

// HistorySource is the market-data provider contract.
type HistorySource interface {
	History(ctx context.Context, symbol, rng string) ([]domain.Candle, error)
}

// QuoteService answers daily and monthly history questions, fronting the
// provider with a short-lived redis cache. A nil redis client disables
// caching; cache failures are logged and treated as misses so the provider
// remains the source of truth.
type QuoteService struct {
	tracer trace.Tracer
	source HistorySource
	cache  *redis.Client
}

func NewQuoteService(tracer trace.Tracer, source HistorySource, cache *redis.Client) *QuoteService {
	return &QuoteService{
		tracer: tracer,
		source: source,
		cache:  cache,
	}
}

// Daily returns the most recent daily bars for symbol.
func (s *QuoteService) Daily(ctx context.Context, symbol string) ([]domain.Candle, error) {
	return s.history(ctx, "QuoteService.Daily", symbol, "1d")
}

// Month returns roughly one month of daily bars for symbol.
func (s *QuoteService) Month(ctx context.Context, symbol string) ([]domain.Candle, error) {
	return s.history(ctx, "QuoteService.Month", symbol, "1mo")
}

// LatestClose returns the close of the newest daily bar.
func (s *QuoteService) LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	candles, err := s.Daily(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return candles[len(candles)-1].Close, nil
}

func (s *QuoteService) history(ctx context.Context, span, symbol, rng string) ([]domain.Candle, error) {
	ctx, sp := s.tracer.Start(ctx, span)
	defer sp.End()

	key := fmt.Sprintf("quotes:%s:%s", rng, symbol)
	if cached, ok := s.cacheGet(ctx, key); ok {
		return cached, nil
	}

	candles, err := s.source.History(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, candles)
	return candles, nil
}

func (s *QuoteService) cacheGet(ctx context.Context, key string) ([]domain.Candle, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("quote cache read error for %s: %v", key, err)
		}
		return nil, false
	}
	var candles []domain.Candle
	if err := json.Unmarshal(raw, &candles); err != nil {
		log.Printf("quote cache decode error for %s: %v", key, err)
		return nil, false
	}
	if len(candles) == 0 {
		return nil, false
	}
	return candles, true
}

func (s *QuoteService) cacheSet(ctx context.Context, key string, candles []domain.Candle) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(candles)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, quoteCacheTTL).Err(); err != nil {
		log.Printf("quote cache write error for %s: %v", key, err)
	}
}
