// Package handler exposes a small read-only ops API next to the bot: health,
// registered alerts, and recent prices.
package handler

import (
	"context"

	"stock-sentry/internal/domain"
	"stock-sentry/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type QuoteReader interface {
	Daily(ctx context.Context, symbol string) ([]domain.Candle, error)
}

type AlertLister interface {
	Snapshot() []store.Entry
}

type Handler struct {
	tracer trace.Tracer
	quotes QuoteReader
	alerts AlertLister
}

func New(tracer trace.Tracer, quotes QuoteReader, alerts AlertLister) *Handler {
	return &Handler{
		tracer: tracer,
		quotes: quotes,
		alerts: alerts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/alerts", h.GetAlerts)
	r.GET("/api/prices/:symbol", h.GetPrice)
}
