package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"veroxos/internal/config"
	orderhandler "veroxos/internal/modules/orders/application/handler"
	orderdomain "veroxos/internal/modules/orders/domain"
	orderport "veroxos/internal/modules/orders/application/port"
	orderusecase "veroxos/internal/modules/orders/application/usecase"
	orderinfra "veroxos/internal/modules/orders/infrastructure"
	orderstransport "veroxos/internal/modules/orders/interface"
	realtimehandler "veroxos/internal/modules/realtime/application/handler"
	realtimeinfra "veroxos/internal/modules/realtime/infrastructure"
	realtimetransport "veroxos/internal/modules/realtime/interface"
	restaurantport "veroxos/internal/modules/restaurants/application/port"
	restaurantusecase "veroxos/internal/modules/restaurants/application/usecase"
	restaurantinfra "veroxos/internal/modules/restaurants/infrastructure"
	restauranttransport "veroxos/internal/modules/restaurants/interface"
	"veroxos/internal/platform/broker"
	"veroxos/internal/platform/events"
	"veroxos/internal/platform/storage"
	"veroxos/internal/shared/logging"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	logFile, logger, err := setupLogging(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.Logging.Directory), slog.String("level", cfg.Logging.Level), slog.String("format", cfg.Logging.Format))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		restaurantRepo restaurantport.RestaurantRepository
		orderRepo      orderport.OrderRepository
	)
	if cfg.Database.URL != "" {
		db, err := storage.Open(ctx, cfg.Database.URL)
		if err != nil {
			slog.Error("database connect failed", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()
		if err := storage.EnsureSchema(ctx, db); err != nil {
			slog.Error("schema setup failed", slog.Any("error", err))
			os.Exit(1)
		}
		if err := storage.Seed(ctx, db); err != nil {
			slog.Error("seed failed", slog.Any("error", err))
			os.Exit(1)
		}
		restaurantRepo = restaurantinfra.NewPostgresRepository(db)
		orderRepo = orderinfra.NewPostgresRepository(db)
	} else {
		slog.Warn("DATABASE_URL not set, using seeded in-memory repositories")
		memRestaurants := restaurantinfra.NewMemoryRepository()
		memOrders := orderinfra.NewMemoryRepository(memRestaurants)
		seedMemory(ctx, memRestaurants, memOrders)
		restaurantRepo = memRestaurants
		orderRepo = memOrders
	}

	bus := events.NewBus()
	ordersUC := orderusecase.NewOrdersUseCase(orderRepo, restaurantRepo, bus)
	restaurantsUC := restaurantusecase.NewRestaurantsUseCase(restaurantRepo)

	// Domain subscribers; registration order is preserved by the bus.
	audit := orderhandler.NewAuditTrail()
	notifications := orderhandler.NewNotificationCenter()
	orderLogger := orderhandler.NewOrderLogger()
	audit.Register(bus)
	notifications.Register(bus)
	orderLogger.Register(bus)

	hub := realtimeinfra.NewHub()
	realtimehandler.NewOrderRelayHandler(hub).Register(bus)

	if len(cfg.Kafka.Brokers) > 0 {
		mirror := broker.NewEventMirror(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		mirror.Register(bus)
		go mirror.Run(ctx)
		slog.Info("kafka event mirror enabled", slog.Any("brokers", cfg.Kafka.Brokers), slog.String("topic", cfg.Kafka.Topic))
	}

	e := echo.New()
	e.Logger.SetOutput(log.Writer())

	orderstransport.NewOrdersHandler(ordersUC, audit, notifications).Register(e)
	restauranttransport.NewRestaurantsHandler(restaurantsUC, ordersUC).Register(e)
	e.GET("/ws/orders", realtimetransport.NewOrdersWebsocketHandler(hub, ordersUC, cfg.Websocket.SendBuffer))
	e.GET("/ws/orders/firehose", realtimetransport.NewFirehoseWebsocketHandler(hub, cfg.Websocket.SendBuffer))
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped", slog.Any("error", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown error", slog.Any("error", err))
	}
}

func seedMemory(ctx context.Context, restaurants *restaurantinfra.MemoryRepository, orders *orderinfra.MemoryRepository) {
	idsBySlug := make(map[string]string)
	for _, restaurant := range storage.SeedRestaurants() {
		stored := restaurants.Put(restaurant)
		idsBySlug[stored.Slug] = stored.ID
	}
	for _, seed := range storage.SeedOrders() {
		order := orderdomain.Order{
			RestaurantID: idsBySlug[seed.RestaurantSlug],
			CustomerName: seed.CustomerName,
			Items:        seed.Items,
			Status:       seed.Status,
		}
		if _, err := orders.Create(ctx, &order); err != nil {
			slog.Warn("memory seed order failed", slog.String("slug", seed.RestaurantSlug), slog.Any("error", err))
		}
	}
	slog.Info("in-memory repositories seeded",
		slog.Int("restaurants", len(storage.SeedRestaurants())),
		slog.Int("orders", len(storage.SeedOrders())))
}

func setupLogging(cfg config.LoggingConfig) (*os.File, *slog.Logger, error) {
	dir := cfg.Directory
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.Level,
		Format:    cfg.Format,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
