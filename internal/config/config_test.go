package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("DELIVERY_FEE_CENTS", "")
	t.Setenv("CART_STORE", "")
	cfg := FromEnv()
	if cfg.StoreBackend != BackendPostgres {
		t.Fatalf("expected postgres backend, got %q", cfg.StoreBackend)
	}
	if cfg.DeliveryFeeCents != 399 {
		t.Fatalf("expected default delivery fee 399, got %d", cfg.DeliveryFeeCents)
	}
	if cfg.CartStore != CartStoreSQLite {
		t.Fatalf("expected sqlite cart store, got %q", cfg.CartStore)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "MySQL")
	t.Setenv("DELIVERY_FEE_CENTS", "500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")
	t.Setenv("ORDER_NUMBER_DIGITS", "nope")
	t.Setenv("CART_SESSION_SECRET", "s3cret")
	cfg := FromEnv()
	if cfg.StoreBackend != BackendMySQL {
		t.Fatalf("expected mysql backend, got %q", cfg.StoreBackend)
	}
	if cfg.DeliveryFeeCents != 500 {
		t.Fatalf("expected delivery fee 500, got %d", cfg.DeliveryFeeCents)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("unexpected shutdown timeout %s", cfg.ShutdownTimeout)
	}
	if cfg.OrderNumberDigits != 6 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.OrderNumberDigits)
	}
	if cfg.CartSecret != "s3cret" {
		t.Fatalf("unexpected cart secret %q", cfg.CartSecret)
	}
}
