package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dairypro/backend/internal/config"
	"dairypro/backend/internal/httpapi"
	"dairypro/backend/internal/ledger"
	"dairypro/backend/internal/snapshot"
)

func main() {
	cfg := config.Load()
	if err := validateSecurityConfig(cfg); err != nil {
		log.Fatalf("invalid security configuration: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sink, closers, err := openSnapshotStore(ctx, cfg)
	if err != nil {
		log.Fatalf("snapshot store unavailable: %v", err)
	}

	svc, err := ledger.New(ctx, sink, cfg.SeedLocation)
	if err != nil {
		log.Fatalf("failed to load ledger: %v", err)
	}
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute)
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("dairy ledger backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

// openSnapshotStore picks the persistence sink: postgres when DATABASE_URL
// is set, redis when REDIS_ADDR is set, otherwise a local JSON file.
func openSnapshotStore(ctx context.Context, cfg config.Config) (snapshot.Store, []func() error, error) {
	closers := make([]func() error, 0, 1)

	if cfg.DatabaseURL != "" {
		pg, err := snapshot.NewPostgres(ctx, cfg.DatabaseURL, cfg.SnapshotKey)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres unavailable (%w) and DATABASE_URL is set; refusing to start with a fallback sink", err)
		}
		closers = append(closers, pg.Close)
		log.Println("snapshot store: postgres")
		return pg, closers, nil
	}

	if cfg.RedisAddr != "" {
		rd := snapshot.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SnapshotKey)
		if err := rd.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("redis unavailable (%w) and REDIS_ADDR is set; refusing to start with a fallback sink", err)
		}
		closers = append(closers, rd.Close)
		log.Println("snapshot store: redis")
		return rd, closers, nil
	}

	file, err := snapshot.NewFile(cfg.SnapshotPath)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("snapshot store: file (%s)", cfg.SnapshotPath)
	return file, closers, nil
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	return nil
}
