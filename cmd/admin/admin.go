// Command admin runs the operational tasks: schema migration and sample data
// seeding.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Karol-96/arts-sell/config"
	"github.com/Karol-96/arts-sell/database"
	"github.com/ardanlabs/conf/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func run(log *logrus.Logger) error {
	const prefix = "ARTSELL"
	var cfg config.Config
	if _, err := conf.Parse(prefix, &cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	if len(os.Args) < 2 {
		return errors.New("usage: admin [migrate|seed]")
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("database is not ready: %w", err)
	}

	switch os.Args[1] {
	case "migrate":
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("migrations applied")

	case "seed":
		if err := database.Seed(ctx, db); err != nil {
			return err
		}
		log.Info("sample data seeded")

	default:
		return fmt.Errorf("unknown command %q", os.Args[1])
	}

	return nil
}
