package main

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/repository/memory"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/budgets"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/investments"
	"github.com/ahmetcoskunkizilkaya/fintrack-backend/internal/resources/transactions"
	"gorm.io/gorm"
)

// stores bundles the repositories for the selected STORE_DRIVER.
type stores struct {
	users        repository.UserRepository
	transactions repository.OwnedRepository[transactions.Transaction]
	budgets      repository.OwnedRepository[budgets.Budget]
	investments  repository.OwnedRepository[investments.Investment]

	db          *gorm.DB
	dbLog       *logging.DBHandler
	cleanupDone chan struct{}
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.StoreDriver == "memory" {
		slog.Warn("using in-memory store, data is lost on restart")
		return &stores{
			users:        memory.NewUsers(),
			transactions: memory.NewOwned[transactions.Transaction](),
			budgets:      memory.NewOwned[budgets.Budget](),
			investments:  memory.NewOwned[investments.Investment](),
		}, nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		users:        repository.NewUserRepository(db),
		transactions: repository.NewOwnedRepository[transactions.Transaction](db),
		budgets:      repository.NewOwnedRepository[budgets.Budget](db),
		investments:  repository.NewOwnedRepository[investments.Investment](db),
		db:           db,
	}, nil
}

// migrate creates the tables and, with a database, starts persisting error
// logs to system_logs with retention cleanup.
func (s *stores) migrate(plugins []resources.Plugin, cfg *config.Config) error {
	if s.db == nil {
		return nil
	}

	if err := database.Migrate(s.db, &models.User{}, &models.SystemLog{}); err != nil {
		return err
	}
	for _, p := range plugins {
		if err := database.Migrate(s.db, p.Models()...); err != nil {
			return err
		}
		slog.Info("resource migrated", "resource", p.ID())
	}

	// PostgreSQL log handler (ERROR+ async batch)
	s.dbLog = logging.NewDBHandler(s.db)
	logging.Setup(cfg.LogLevel, s.dbLog)

	s.cleanupDone = make(chan struct{})
	logging.StartCleanup(s.db, cfg.LogRetention, s.cleanupDone)
	return nil
}

func (s *stores) close() {
	if s.cleanupDone != nil {
		close(s.cleanupDone)
	}
	if s.dbLog != nil {
		s.dbLog.Stop()
	}
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			slog.Error("database close error", "error", err)
		}
	}
}
