package main

import (
	"context"
	"log"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"stock-sentry/internal/bot"
	"stock-sentry/internal/cache"
	"stock-sentry/internal/chart"
	"stock-sentry/internal/config"
	"stock-sentry/internal/handler"
	"stock-sentry/internal/job"
	"stock-sentry/internal/provider"
	"stock-sentry/internal/service"
	"stock-sentry/internal/store"
	"stock-sentry/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initRedisFunc       = cache.InitRedis
	initTracerFunc      = tracing.InitTracer
	newQuoteServiceFunc = func(tracer trace.Tracer, cfg *config.Config, redisClient *redis.Client) *service.QuoteService {
		yahoo := provider.NewYahooClient(cfg.QuoteBaseURL, cfg.UpstreamTimeout())
		return service.NewQuoteService(tracer, yahoo, redisClient)
	}
	newRateClientFunc = func(cfg *config.Config) job.RateSource {
		return provider.NewRateClient(cfg.RateBaseURL, cfg.UpstreamTimeout())
	}
	newBotFunc = func(cfg *config.Config, quotes *service.QuoteService, rates job.RateSource, alerts *store.AlertStore) (*bot.Bot, error) {
		return bot.New(cfg.TelegramBotToken, quotes, rates, chart.NewRenderer(), alerts)
	}
	startBotFunc = func(b *bot.Bot) { go b.Start() }
	stopBotFunc  = func(b *bot.Bot) { b.Stop() }

	newWatcherFunc   = job.NewAlertWatcher
	startWatcherFunc = func(w *job.AlertWatcher, ctx context.Context) { go w.Start(ctx) }

	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func main() {
	loadEnvFunc()

	cfg, err := loadConfigFunc()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := initRedisFunc(ctx, cfg.RedisURL)

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	quotes := newQuoteServiceFunc(tracer, cfg, redisClient)
	rates := newRateClientFunc(cfg)
	alerts := store.NewAlertStore()

	b, err := newBotFunc(cfg, quotes, rates, alerts)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}
	startBotFunc(b)

	watcher := newWatcherFunc(tracer, alerts, quotes, rates, b, cfg.CheckInterval(), cfg.FirstDelay())
	startWatcherFunc(watcher, ctx)

	h := newHandlerFunc(tracer, quotes, alerts)
	r := newRouterFunc()
	r.Use(otelgin.Middleware("stock-sentry"))
	h.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()
	stopBotFunc(b)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
