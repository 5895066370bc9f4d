package handler

import (
	"errors"
	"net/http"
	"strings"

	"stock-sentry/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetPrice(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.GetPrice")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	if !domain.ValidSymbol(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid symbol"})
		return
	}

	candles, err := h.quotes.Daily(ctx, symbol)
	if err != nil {
		if errors.Is(err, domain.ErrSymbolNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "symbol not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch price"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":  symbol,
		"candles": candles,
	})
}
