package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"restaurant-ordering/internal/app"
	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/httpserver"
	"restaurant-ordering/internal/logging"
	"restaurant-ordering/internal/notify"
	cartsvc "restaurant-ordering/internal/service/cart"
	feedbacksvc "restaurant-ordering/internal/service/feedback"
	ordersvc "restaurant-ordering/internal/service/order"
	"restaurant-ordering/internal/service/session"
	"restaurant-ordering/internal/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel, "api")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	primary, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("connect to primary store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	defer primary.Close()
	secondary := app.Mock(logger)

	snapshots, closeCarts, err := app.CartSnapshots(ctx, cfg)
	if err != nil {
		logger.Fatal("open cart store", zap.String("cart_store", cfg.CartStore), zap.Error(err))
	}
	defer closeCarts()

	if cfg.CartSecret == "" {
		logger.Warn("CART_SESSION_SECRET not set, cart sessions will not survive a restart")
	}

	var notifier ordersvc.Notifier = notify.Nop{}
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Warn("telegram notifications disabled", zap.Error(err))
		} else {
			notifier = tg
		}
	}

	orderService := ordersvc.New(
		ordersvc.Stores{Orders: primary.Orders, Lines: primary.OrderLines},
		ordersvc.Stores{Orders: secondary.Orders, Lines: secondary.OrderLines},
		notifier,
		ordersvc.Config{DeliveryFeeCents: cfg.DeliveryFeeCents, NumberDigits: cfg.OrderNumberDigits},
		logger,
	)

	gin.SetMode(gin.ReleaseMode)
	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Menu:       app.MenuService(primary, secondary, logger),
		Promotions: app.PromotionService(primary, secondary, logger),
		Carts:      cartsvc.NewManager(snapshots, logger),
		Sessions:   session.New(cfg.CartTTL, []byte(cfg.CartSecret)),
		Orders:     orderService,
		Feedback:   feedbacksvc.New(primary.Feedback, secondary.Feedback, logger),
		Images:     upload.NewLocal(cfg.UploadDir, cfg.FileURLHost, logger),
		Ping:       primary.Ping,
	}, httpserver.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminUser:          cfg.AdminUser,
		AdminPassword:      cfg.AdminPassword,
		UploadDir:          cfg.UploadDir,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
