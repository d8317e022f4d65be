package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"safyscore/config"
	"safyscore/tab"
	"safyscore/vetting"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var tabs tab.Source
	if cfg.ChromeDebugURL != "" {
		tabs = tab.Browser{DebugURL: cfg.ChromeDebugURL}
	}

	handler := vetting.NewHandler(vetting.NewAssessorFromConfig(cfg), tabs)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Println("Shutdown signal received, stopping...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}()

	log.Printf("✅ safyscore listening on %s\n", cfg.Addr())
	log.Println("📍 Endpoints:")
	if tabs != nil {
		log.Println("   GET  /                - Assess the browser's active tab")
	}
	log.Println("   GET  /popup?url=      - Compact view")
	log.Println("   GET  /details?url=    - Detail view")
	log.Println("   POST /api/v1/assess   - JSON assessment")

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("safyscore stopped")
}
