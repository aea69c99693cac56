package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":       "postgres://localhost/shop",
		"ASSET_HOST_ADDRESS": "http://assets.local",
	}
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address: %s", cfg.RunAddress)
	}
	if cfg.ExpressShippingFee != defaultExpressShippingFee {
		t.Fatalf("unexpected express fee: %d", cfg.ExpressShippingFee)
	}
	if cfg.OrderHistoryLimit != defaultOrderHistoryLimit {
		t.Fatalf("unexpected history limit: %d", cfg.OrderHistoryLimit)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("unexpected shutdown timeout: %s", cfg.ShutdownTimeout)
	}
}

func TestLoadMissingDatabaseURI(t *testing.T) {
	env := map[string]string{"ASSET_HOST_ADDRESS": "http://assets.local"}
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for missing database URI")
	}
}

func TestLoadMissingAssetHost(t *testing.T) {
	env := map[string]string{"DATABASE_URI": "postgres://localhost/shop"}
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for missing asset host address")
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":       "postgres://localhost/shop",
		"ASSET_HOST_ADDRESS": "http://assets.local",
		"RUN_ADDRESS":        ":9000",
	}
	args := []string{"-a", ":7070", "-express-fee", "20000", "-admin-email", "admin@shop.local"}
	cfg, err := load(args, lookupFrom(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Fatalf("flag should override env, got %s", cfg.RunAddress)
	}
	if cfg.ExpressShippingFee != 20000 {
		t.Fatalf("unexpected express fee: %d", cfg.ExpressShippingFee)
	}
	if cfg.AdminEmail != "admin@shop.local" {
		t.Fatalf("unexpected admin email: %s", cfg.AdminEmail)
	}
}

func TestLoadInvalidShutdownTimeout(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":       "postgres://localhost/shop",
		"ASSET_HOST_ADDRESS": "http://assets.local",
	}
	if _, err := load([]string{"-shutdown-timeout", "bogus"}, lookupFrom(env)); err == nil {
		t.Fatal("expected error for invalid shutdown timeout")
	}
}

func TestLoadNegativeValuesFallBack(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":         "postgres://localhost/shop",
		"ASSET_HOST_ADDRESS":   "http://assets.local",
		"EXPRESS_SHIPPING_FEE": "-5",
		"ORDER_HISTORY_LIMIT":  "0",
		"SHUTDOWN_TIMEOUT":     "-1s",
	}
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.ExpressShippingFee != defaultExpressShippingFee {
		t.Fatalf("negative fee should fall back, got %d", cfg.ExpressShippingFee)
	}
	if cfg.OrderHistoryLimit != defaultOrderHistoryLimit {
		t.Fatalf("zero history limit should fall back, got %d", cfg.OrderHistoryLimit)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Fatalf("negative timeout should fall back, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoadJWTSecretFile(t *testing.T) {
	dir := t.TempDir()
	secretPath := filepath.Join(dir, "secret")
	if err := os.WriteFile(secretPath, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}
	env := map[string]string{
		"DATABASE_URI":       "postgres://localhost/shop",
		"ASSET_HOST_ADDRESS": "http://assets.local",
		"JWT_SECRET_FILE":    secretPath,
	}
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Fatalf("unexpected secret: %q", cfg.JWTSecret)
	}
}

func TestLoadJWTSecretFileMissing(t *testing.T) {
	env := map[string]string{
		"DATABASE_URI":       "postgres://localhost/shop",
		"ASSET_HOST_ADDRESS": "http://assets.local",
		"JWT_SECRET_FILE":    "/does/not/exist",
	}
	if _, err := load(nil, lookupFrom(env)); err == nil {
		t.Fatal("expected error for missing secret file")
	}
}

func TestGetDuration(t *testing.T) {
	lookup := lookupFrom(map[string]string{"D": "5s", "BAD": "oops"})
	if got := getDuration(lookup, "D", time.Second); got != 5*time.Second {
		t.Fatalf("unexpected duration: %s", got)
	}
	if got := getDuration(lookup, "BAD", time.Second); got != time.Second {
		t.Fatalf("expected default for bad value, got %s", got)
	}
	if got := getDuration(lookup, "MISSING", time.Second); got != time.Second {
		t.Fatalf("expected default for missing value, got %s", got)
	}
}
