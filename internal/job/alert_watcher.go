package job

import (
	"context"
	"fmt"
	"log"
	"time"

	"stock-sentry/internal/domain"
	"stock-sentry/internal/store"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/trace"
)

// AlertWatcher periodically re-prices every registered alert and notifies the
// owner when the floor is breached. Triggered alerts are one-shot: notify,
// then remove.
type AlertWatcher struct {
	tracer   trace.Tracer
	alerts   *store.AlertStore
	prices   PriceSource
	rates    RateSource
	notifier Notifier

	interval   time.Duration
	firstDelay time.Duration
}

type PriceSource interface {
	LatestClose(ctx context.Context, symbol string) (decimal.Decimal, error)
}

type RateSource interface {
	Rate(ctx context.Context, base, target domain.CurrencyCode) (decimal.Decimal, error)
}

type Notifier interface {
	Notify(ctx context.Context, chatID int64, text string) error
}

func NewAlertWatcher(tracer trace.Tracer, alerts *store.AlertStore, prices PriceSource, rates RateSource, notifier Notifier, interval, firstDelay time.Duration) *AlertWatcher {
	return &AlertWatcher{
		tracer:     tracer,
		alerts:     alerts,
		prices:     prices,
		rates:      rates,
		notifier:   notifier,
		interval:   interval,
		firstDelay: firstDelay,
	}
}

// Start runs evaluation cycles until ctx is cancelled. The first cycle runs
// after a short warm-up delay so startup is not blocked on upstream calls.
func (w *AlertWatcher) Start(ctx context.Context) {
	log.Printf("Alert watcher starting (interval %s, first run in %s)", w.interval, w.firstDelay)

	first := time.NewTimer(w.firstDelay)
	defer first.Stop()
	select {
	case <-ctx.Done():
		log.Println("Alert watcher stopped")
		return
	case <-first.C:
		w.checkAlerts(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("Alert watcher stopped")
			return
		case <-ticker.C:
			w.checkAlerts(ctx)
		}
	}
}

// checkAlerts walks a snapshot of the store so no lock is held across network
// calls. A failing alert is logged and skipped; the rest of the cycle runs.
func (w *AlertWatcher) checkAlerts(ctx context.Context) {
	ctx, span := w.tracer.Start(ctx, "job.checkAlerts")
	defer span.End()

	for _, entry := range w.alerts.Snapshot() {
		if err := w.evaluate(ctx, entry); err != nil {
			log.Printf("alert check error for user %d (%s): %v", entry.UserID, entry.Alert.Symbol, err)
		}
	}
}

// evaluate compares the latest USD close against the alert's floor. The floor
// is stored in the user's currency, so it is divided by the USD→currency rate
// before comparing. The rate is fetched once and reused for display.
func (w *AlertWatcher) evaluate(ctx context.Context, entry store.Entry) error {
	alert := entry.Alert

	closeUSD, err := w.prices.LatestClose(ctx, alert.Symbol)
	if err != nil {
		return fmt.Errorf("latest close: %w", err)
	}

	rate, err := w.rates.Rate(ctx, domain.CurrencyUSD, alert.Currency)
	if err != nil {
		return fmt.Errorf("rate %s: %w", alert.Currency, err)
	}
	if rate.Sign() <= 0 {
		return fmt.Errorf("rate %s: non-positive rate %s", alert.Currency, rate)
	}

	floorUSD := alert.Target.Div(rate)
	if closeUSD.GreaterThan(floorUSD) {
		return nil
	}

	text := notificationText(alert, closeUSD.Mul(rate))
	if err := w.notifier.Notify(ctx, alert.ChatID, text); err != nil {
		return fmt.Errorf("notify chat %d: %w", alert.ChatID, err)
	}

	w.alerts.Delete(entry.UserID)
	return nil
}

func notificationText(alert domain.Alert, current decimal.Decimal) string {
	sym := domain.CurrencyByCode(alert.Currency).Symbol
	return fmt.Sprintf("🚨 %s price reached %s%s!\nCurrent price: %s%s (%s)",
		alert.Symbol,
		sym, alert.Target.StringFixed(2),
		sym, current.StringFixed(2),
		alert.Currency,
	)
}
