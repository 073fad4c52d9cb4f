package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"payment-dashboard/internal/dashboard"
	"payment-dashboard/internal/database"
	"payment-dashboard/internal/supabase"
)

type storeOptions struct {
	store       string
	supabaseURL string
	anonKey     string
	serviceKey  string
	timeZone    string
}

type sourceOpener func(opts *options, store storeOptions) (dashboard.Source, func(), error)

func openSource(opts *options, store storeOptions) (dashboard.Source, func(), error) {
	switch store.store {
	case "postgres":
		db, err := database.NewClient(opts.dbConn, opts.table)
		if err != nil {
			return nil, nil, fmt.Errorf("creating database client: %w", err)
		}
		return db, db.Close, nil
	case "supabase":
		if store.supabaseURL == "" || store.serviceKey == "" {
			return nil, nil, errors.New("--supabase-url and --service-key are required for the supabase store")
		}
		client := supabase.NewClient(supabase.Config{
			URL:        store.supabaseURL,
			AnonKey:    store.anonKey,
			ServiceKey: store.serviceKey,
		})
		return supabase.NewRows(client, opts.table), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", store.store)
	}
}

func statsCmd(opts *options, open sourceOpener) *cobra.Command {
	var store storeOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the dashboard summary cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(store.timeZone)
			if err != nil {
				return fmt.Errorf("loading time zone %q: %w", store.timeZone, err)
			}

			source, closeFn, err := open(opts, store)
			if err != nil {
				return err
			}
			defer closeFn()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			stats, err := dashboard.NewService(source, loc).Stats(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, card := range stats.Cards() {
				fmt.Fprintf(w, "%s\t%s\n", card.Title, card.Value)
			}
			return w.Flush()
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&store.store, "store", envOr("APP_STORE", "postgres"), "Where to read payment intents from (postgres or supabase)")
	flags.StringVar(&store.supabaseURL, "supabase-url", envOr("APP_SUPABASE_URL", ""), "Supabase project URL")
	flags.StringVar(&store.anonKey, "anon-key", envOr("APP_SUPABASE_ANON_KEY", ""), "Supabase anon key")
	flags.StringVar(&store.serviceKey, "service-key", envOr("APP_SUPABASE_SERVICE_KEY", ""), "Supabase service role key")
	flags.StringVar(&store.timeZone, "tz", envOr("APP_TIME_ZONE", "UTC"), "Time zone")

	return cmd
}
