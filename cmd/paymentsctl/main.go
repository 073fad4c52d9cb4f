package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Version = "dev"

// options are shared by every subcommand. Defaults come from the same APP_*
// variables the API server reads.
type options struct {
	dbConn   string
	table    string
	logLevel string
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadDotEnv reads the given env files, .env by default. A missing file is
// fine; any other failure is logged and the process env is used as is.
func loadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("loading .env file: %v", err)
		return err
	}
	return nil
}

func main() {
	_ = loadDotEnv()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "paymentsctl",
		Short:         "Maintenance commands for the payment dashboard",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(opts.logLevel)
			if err != nil {
				return fmt.Errorf("parsing log level: %w", err)
			}
			log.SetLevel(level)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.dbConn, "db", envOr("APP_DB_CONN", "user=ps_user password=ps_password dbname=backend sslmode=disable host=localhost"), "Postgres connection string")
	flags.StringVar(&opts.table, "table", envOr("APP_TABLE", "payment_intents"), "Payment intents table")
	flags.StringVar(&opts.logLevel, "log-level", envOr("APP_LOG_LEVEL", "info"), "Log level")

	rootCmd.AddCommand(syncCmd(opts, openStripeSync))
	rootCmd.AddCommand(statsCmd(opts, openSource))

	return rootCmd
}
