// Package app assembles repositories and services from configuration for
// the binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"time"

	"restaurant-ordering/internal/config"
	"restaurant-ordering/internal/db"
	"restaurant-ordering/internal/logging"
	"restaurant-ordering/internal/migrate"
	cartrepo "restaurant-ordering/internal/repository/cart"
	"restaurant-ordering/internal/repository/category"
	"restaurant-ordering/internal/repository/feedback"
	"restaurant-ordering/internal/repository/menuitem"
	"restaurant-ordering/internal/repository/mock"
	"restaurant-ordering/internal/repository/order"
	"restaurant-ordering/internal/repository/promotion"
	"restaurant-ordering/internal/seed"
	menusvc "restaurant-ordering/internal/service/menu"
	promotionsvc "restaurant-ordering/internal/service/promotion"

	"go.uber.org/zap"
)

// Repos is one persistence backend for every entity.
type Repos struct {
	Items      menuitem.Repository
	Categories category.Repository
	Promotions promotion.Repository
	Orders     order.Repository
	OrderLines order.LineRepository
	Feedback   feedback.Repository

	Ping  func(ctx context.Context) error
	Close func()
}

const startupPingTimeout = 3 * time.Second

// Open prepares the primary store selected by STORE_BACKEND. An unreachable
// store is logged, not fatal: every call then goes to the fallback until the
// store answers again.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Repos, error) {
	var repos *Repos
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := db.Open(ctx, cfg.DBConnString)
		if err != nil {
			return nil, err
		}
		repos = &Repos{
			Items:      menuitem.NewPostgres(pool, logger),
			Categories: category.NewPostgres(pool, logger),
			Promotions: promotion.NewPostgres(pool, logger),
			Orders:     order.NewPostgres(pool, logger),
			OrderLines: order.NewPostgresLines(pool, logger),
			Feedback:   feedback.NewPostgres(pool, logger),
			Ping:       pool.Ping,
			Close:      pool.Close,
		}
	case config.BackendMySQL:
		conn, err := db.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		repos = &Repos{
			Items:      menuitem.NewMySQL(conn, logger),
			Categories: category.NewMySQL(conn, logger),
			Promotions: promotion.NewMySQL(conn, logger),
			Orders:     order.NewMySQL(conn, logger),
			OrderLines: order.NewMySQLLines(conn, logger),
			Feedback:   feedback.NewMySQL(conn, logger),
			Ping:       conn.PingContext,
			Close:      func() { _ = conn.Close() },
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	pingCtx, cancel := context.WithTimeout(ctx, startupPingTimeout)
	defer cancel()
	if err := repos.Ping(pingCtx); err != nil {
		logging.OrNop(logger).Warn("primary store unreachable, serving from fallback until it recovers",
			zap.String("backend", cfg.StoreBackend), zap.Error(err))
	}
	return repos, nil
}

// Migrate applies the schema of the selected backend.
func Migrate(ctx context.Context, cfg config.Config) error {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return err
		}
		defer pool.Close()
		return migrate.Apply(ctx, pool)
	case config.BackendMySQL:
		conn, err := db.ConnectMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer conn.Close()
		return migrate.ApplyMySQL(ctx, conn)
	}
	return fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

// Mock is the guaranteed-success fallback backend.
func Mock(logger *zap.Logger) *Repos {
	return &Repos{
		Items:      mock.NewMenuItems(logger),
		Categories: mock.NewCategories(logger),
		Promotions: mock.NewPromotions(logger),
		Orders:     mock.NewOrders(logger),
		OrderLines: mock.NewOrderLines(logger),
		Feedback:   mock.NewFeedback(logger),
		Ping:       func(context.Context) error { return nil },
		Close:      func() {},
	}
}

// CartSnapshots opens the cart snapshot store selected by CART_STORE.
func CartSnapshots(ctx context.Context, cfg config.Config) (cartrepo.SnapshotStore, func(), error) {
	switch cfg.CartStore {
	case config.CartStoreMemory:
		return cartrepo.NewMemory(), func() {}, nil
	case config.CartStoreSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.CartSQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store, err := cartrepo.NewSQLite(ctx, conn, cfg.CartTTL)
		if err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return store, func() { _ = conn.Close() }, nil
	case config.CartStoreRedis:
		client, err := db.ConnectRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return cartrepo.NewRedis(client, cfg.CartTTL), func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown CART_STORE %q", cfg.CartStore)
}

// MenuService reads from primary, falls back to the house menu for reads
// and to the mock tables for writes.
func MenuService(primary, secondary *Repos, logger *zap.Logger) *menusvc.Service {
	static := seed.Static{}
	return menusvc.New(
		menusvc.Stores{Items: primary.Items, Categories: primary.Categories},
		menusvc.Stores{Items: secondary.Items, Categories: secondary.Categories},
		menusvc.Reads{Items: static.MenuItems, Categories: static.Categories},
		logger,
	)
}

func PromotionService(primary, secondary *Repos, logger *zap.Logger) *promotionsvc.Service {
	return promotionsvc.New(primary.Promotions, secondary.Promotions, seed.Static{}.Promotions, logger)
}
