package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := ReadConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("parsing log level: %v", err)
	}
	log.SetLevel(level)

	log.WithFields(log.Fields{"auth": cfg.Auth, "store": cfg.Store}).Info("starting payment dashboard server")

	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		log.Fatalf("converting port to integer: %v", err)
	}

	deps, cleanup, err := buildDeps(context.Background(), cfg)
	if err != nil {
		log.Fatalf("building dependencies: %v", err)
	}
	defer cleanup()

	server := NewServer(cfg, port, deps)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Errorf("shutting down server: %v", err)
		}
	}()

	if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Info("server stopped")
}
