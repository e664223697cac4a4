package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/vietanh2810/eventpal-api/internal/api"
	"github.com/vietanh2810/eventpal-api/internal/config"
	"github.com/vietanh2810/eventpal-api/internal/db"
	"github.com/vietanh2810/eventpal-api/internal/logger"
	"github.com/vietanh2810/eventpal-api/internal/repository"
	"github.com/vietanh2810/eventpal-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	records, closeStorage, err := openStorage(conf)
	if err != nil {
		return fmt.Errorf("failed to initialize storage -> %w", err)
	}
	defer closeStorage()

	s := api.NewServer(conf, records)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr), zap.String("storage", conf.Storage.Driver))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}

// openStorage returns the record store selected by storage.driver.
func openStorage(conf *config.AppConfig) (repository.RecordDAO, func(), error) {
	switch conf.Storage.Driver {
	case "postgres":
		dbURL := os.Getenv("DATABASE_URL")
		var postgresDB *gorm.DB
		var err error
		if dbURL != "" {
			postgresDB, err = db.OpenPostgresWithURL(dbURL)
		} else {
			postgresDB, err = db.OpenPostgres(conf.Postgres)
		}
		if err != nil {
			return nil, nil, err
		}

		return dao.NewRecordDAO(postgresDB), func() {
			if sqlDB, err := postgresDB.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	case "sqlite":
		sqliteDB, err := db.OpenSQLite(conf.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}

		records := dao.NewSQLRecordDAO(sqliteDB)
		if err = records.InitTables(context.Background()); err != nil {
			_ = records.Close()
			return nil, nil, fmt.Errorf("records.InitTables -> %w", err)
		}

		return records, func() { _ = records.Close() }, nil
	default:
		zap.L().Warn("using in-memory storage, state is lost on restart")

		return dao.NewMemoryRecordDAO(), func() {}, nil
	}
}
