package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type alertView struct {
	UserID   int64           `json:"user_id"`
	Symbol   string          `json:"symbol"`
	Target   decimal.Decimal `json:"target"`
	Currency string          `json:"currency"`
}

func (h *Handler) GetAlerts(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.GetAlerts")
	defer span.End()

	entries := h.alerts.Snapshot()
	views := make([]alertView, 0, len(entries))
	for _, e := range entries {
		views = append(views, alertView{
			UserID:   e.UserID,
			Symbol:   e.Alert.Symbol,
			Target:   e.Alert.Target,
			Currency: string(e.Alert.Currency),
		})
	}
	c.JSON(http.StatusOK, gin.H{"alerts": views})
}
