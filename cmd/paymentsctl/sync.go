package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"payment-dashboard/internal/database"
	"payment-dashboard/internal/stripesync"
)

type syncRunner interface {
	Run(ctx context.Context, since time.Time) (int, error)
}

type syncOpener func(opts *options, secretKey string) (syncRunner, func(), error)

func openStripeSync(opts *options, secretKey string) (syncRunner, func(), error) {
	db, err := database.NewClient(opts.dbConn, opts.table)
	if err != nil {
		return nil, nil, fmt.Errorf("creating database client: %w", err)
	}
	return stripesync.NewStripeSyncer(secretKey, db), db.Close, nil
}

func syncCmd(opts *options, open syncOpener) *cobra.Command {
	var (
		secretKey string
		since     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Copy Stripe payment intents into the payment_intents table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secretKey == "" {
				return errors.New("a Stripe secret key is required (--stripe-key or STRIPE_SECRET_KEY)")
			}

			runner, closeFn, err := open(opts, secretKey)
			if err != nil {
				return err
			}
			defer closeFn()

			var from time.Time
			if since > 0 {
				from = time.Now().Add(-since)
			}

			log.WithField("since", from).Info("syncing payment intents from stripe")
			written, err := runner.Run(cmd.Context(), from)
			if err != nil {
				return fmt.Errorf("syncing after %d payment intents: %w", written, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "synced %d payment intents\n", written)
			return nil
		},
	}

	cmd.Flags().StringVar(&secretKey, "stripe-key", envOr("STRIPE_SECRET_KEY", ""), "Stripe secret key")
	cmd.Flags().DurationVar(&since, "since", 0, "Only sync intents created within this window (e.g. 720h); 0 syncs all")

	return cmd
}
