// Package db opens the document store used for users and applications
package db

import (
	"errors"
	"fmt"
	"os"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/util"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	Driver string // sqlite or postgres
	URL    string // sqlite file path or postgres DSN
	Name   string // database name, used for the default sqlite file
	Debug  bool
}

func New(o Options) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch o.Driver {
	case "", "sqlite":
		path := o.URL
		if path == "" {
			path = o.Name + ".db"

			// If running in a docker container don't let the default sqlite file be
			// created inside the container. The host should mount it using volumes
			if util.IsRunningInDocker() {
				if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
					return nil, fmt.Errorf("SQLite database file %s not mounted, please use docker volumes to mount it", path)
				}
			}
		}

		dialector = sqlite.Open(path)
	case "postgres":
		if o.URL == "" {
			return nil, errors.New("no postgres DSN provided")
		}

		dialector = postgres.Open(o.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", o.Driver)
	}

	level := logger.Warn
	if o.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database, %w", o.Driver, err)
	}

	err = db.AutoMigrate(model.User{}, model.Application{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}

// Close releases the connection pool behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
