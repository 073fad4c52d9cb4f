package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	log "github.com/sirupsen/logrus"

	"payment-dashboard/internal/auth"
	"payment-dashboard/internal/cache"
	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/database"
	"payment-dashboard/internal/notifications"
	"payment-dashboard/internal/supabase"
	"payment-dashboard/internal/view"
)

// buildDeps wires the configured identity provider, payment intent source
// and instrumentation. The returned cleanup releases them in reverse order.
func buildDeps(ctx context.Context, cfg *Config) (Deps, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (Deps, func(), error) {
		cleanup()
		return Deps{}, func() {}, err
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return fail(fmt.Errorf("loading time zone %q: %w", cfg.TimeZone, err))
	}

	var db database.Client
	if cfg.usesPostgres() {
		db, err = database.NewClient(cfg.DBCon, cfg.Table)
		if err != nil {
			return fail(fmt.Errorf("creating database client: %w", err))
		}
		closers = append(closers, db.Close)
	}

	var sb *supabase.Client
	if cfg.usesSupabase() {
		sb = supabase.NewClient(supabase.Config{
			URL:        cfg.SupabaseURL,
			AnonKey:    cfg.SupabaseAnonKey,
			ServiceKey: cfg.SupabaseServiceKey,
			Timeout:    cfg.SupabaseTimeout,
		})
	}

	var deps Deps

	switch cfg.Auth {
	case authLocal:
		verifier := auth.NewVerifier(cfg.JWTKey)
		var notifier auth.Notifier
		if cfg.SendGridKey != "" {
			loginURL := strings.TrimRight(cfg.PublicURL, "/") + "/login"
			notifier = notifications.NewSendGridSender(cfg.SendGridKey, cfg.MailName, cfg.MailFrom, loginURL)
		}
		local := auth.NewLocal(db, verifier, notifier, cfg.AccessTTL, cfg.RefreshTTL)
		deps.Auth = auth.NewAuthenticator(local, verifier)
	default:
		var verifier *auth.Verifier
		if cfg.SupabaseJWTSecret != "" {
			verifier = auth.NewVerifier(cfg.SupabaseJWTSecret)
		}
		deps.Auth = auth.NewAuthenticator(supabase.NewAuth(sb), verifier)
	}

	var source dashboard.Source
	switch cfg.Store {
	case storePostgres:
		source = db
		deps.Ping = db.Ping
	default:
		source = supabase.NewRows(sb, cfg.Table)
	}

	if cfg.RedisAddr != "" {
		store, closeStore, err := cache.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("payment intent cache disabled")
		} else {
			closers = append(closers, func() {
				if err := closeStore(); err != nil {
					log.Errorf("closing redis: %v", err)
				}
			})
			source = cache.NewSource(source, store, cfg.CacheTTL, cfg.CachePrefix)
		}
	}

	deps.Dashboard = dashboard.NewService(source, loc)

	deps.Views, err = view.NewRenderer()
	if err != nil {
		return fail(fmt.Errorf("parsing templates: %w", err))
	}

	if cfg.NewRelicLicense != "" {
		app, err := newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelicApp),
			newrelic.ConfigLicense(cfg.NewRelicLicense),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			return fail(fmt.Errorf("creating new relic application: %w", err))
		}
		closers = append(closers, func() { app.Shutdown(5 * time.Second) })
		deps.NewRelic = app
	}

	return deps, cleanup, nil
}
