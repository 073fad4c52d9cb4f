package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ardanlabs/conf"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

type config struct {
	DBCon      string `conf:"default:user=ps_user password=ps_password dbname=backend sslmode=disable host=0.0.0.0,env:DB_CONN"`
	Migrations string `conf:"default:file://./migrations,env:MIGRATIONS"`
	Direction  string `conf:"default:up,env:DIRECTION"`
	Steps      int    `conf:"default:0,env:STEPS"`
}

func main() {
	log.SetLevel(log.InfoLevel)
	log.Println("starting migrate")

	var cfg config
	help, err := conf.ParseOSArgs("APP", &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return
		}
		log.Fatalf("parsing config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBCon)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			log.Errorf("closing the db: %v", err)
		}
	}(db)

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal(err)
	}

	m, err := migrate.NewWithDatabaseInstance(cfg.Migrations, "postgres", driver)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case cfg.Steps != 0:
		err = m.Steps(cfg.Steps)
	case cfg.Direction == "down":
		err = m.Down()
	case cfg.Direction == "up":
		err = m.Up()
	default:
		log.Fatalf("unknown direction %q", cfg.Direction)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{"version": version, "dirty": dirty}).Info("migrations complete")
}
