package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logging"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migrations")
	flag.Parse()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("Failed to load .env: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.DBDriver == "sqlite" {
		if *rollback {
			logger.Fatal("rollback is not supported for sqlite")
		}
		db, err := database.Open(cfg, logger)
		if err != nil {
			logger.Fatal("failed to open database", zap.Error(err))
		}
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("auto-migration failed", zap.Error(err))
		}
		logger.Info("sqlite schema up to date")
		return
	}

	db, err := database.OpenSQL(cfg.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		logger.Fatal("failed to create migrations table", zap.Error(err))
	}

	if *rollback {
		err = rollbackLast(db, *dir, logger)
	} else {
		err = migrateUp(db, *dir, logger)
	}
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}

func migrateUp(db *sql.DB, dir string, logger *zap.Logger) error {
	files, err := database.MigrationFiles(dir)
	if err != nil {
		return err
	}

	applied := 0
	for _, name := range files {
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name = $1)`, name).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if exists {
			continue
		}
		if err := apply(db, filepath.Join(dir, name), func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO schema_migrations (name) VALUES ($1)`, name)
			return err
		}); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		logger.Info("applied migration", zap.String("name", name))
		applied++
	}
	logger.Info("migrations complete", zap.Int("applied", applied))
	return nil
}

func rollbackLast(db *sql.DB, dir string, logger *zap.Logger) error {
	var name string
	err := db.QueryRow(`SELECT name FROM schema_migrations ORDER BY applied_at DESC, name DESC LIMIT 1`).Scan(&name)
	if err == sql.ErrNoRows {
		logger.Info("no migrations to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to find last migration: %w", err)
	}

	path := filepath.Join(dir, strings.TrimSuffix(name, ".sql")+"_rollback.sql")
	if err := apply(db, path, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM schema_migrations WHERE name = $1`, name)
		return err
	}); err != nil {
		return fmt.Errorf("rollback %s: %w", name, err)
	}
	logger.Info("rolled back migration", zap.String("name", name))
	return nil
}

// apply runs one SQL file and the bookkeeping statement in a transaction.
func apply(db *sql.DB, path string, record func(*sql.Tx) error) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(string(content)); err != nil {
		tx.Rollback()
		return err
	}
	if err := record(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
