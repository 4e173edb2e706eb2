package main

import (
	"context"
	"path/filepath"
	"testing"

	"dairypro/backend/internal/config"
)

func TestValidateSecurityConfigRejectsShortSecret(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "short"})
	if err == nil {
		t.Fatalf("expected weak security config to be rejected")
	}
}

func TestValidateSecurityConfigAcceptsStrongSecret(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "0123456789abcdef0123456789abcdef"})
	if err != nil {
		t.Fatalf("expected strong config to pass, got %v", err)
	}
}

func TestOpenSnapshotStoreFallsBackToFile(t *testing.T) {
	cfg := config.Config{SnapshotPath: filepath.Join(t.TempDir(), "dairypro.json")}

	sink, closers, err := openSnapshotStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open snapshot store: %v", err)
	}
	if sink == nil {
		t.Fatalf("expected a snapshot store")
	}
	if len(closers) != 0 {
		t.Fatalf("file store needs no closers, got %d", len(closers))
	}
}
