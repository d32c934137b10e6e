package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/Daskott/agenda/shared"
	"github.com/Daskott/agenda/utils"
	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const (
	DB_NAME = "agenda.db"

	SQLITE_DRIVER   = "sqlite"
	POSTGRES_DRIVER = "postgres"
)

// Open connects to the configured database and migrates the schema.
func Open(config shared.DatabaseConfig) (*Store, error) {
	dialector, err := dialectorFor(config)
	if err != nil {
		return nil, err
	}

	return OpenWith(dialector, time.Now)
}

// OpenWith connects through dialector and uses clock for timestamps.
func OpenWith(dialector gorm.Dialector, clock func() time.Time) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: clock,
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Error,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	if dialector.Name() == SQLITE_DRIVER {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}

		// sqlite pragmas are per connection
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %v", err)
		}
	}

	store := &Store{db: db}
	if err := store.AutoMigrate(); err != nil {
		return nil, err
	}

	return store, nil
}

// SqliteDSN opens (creating if needed) <rootDir>/db/agenda.db. A non-empty
// passPhrase encrypts the file.
func SqliteDSN(passPhrase string, dbRootDir string) (string, error) {
	dbFilePath, err := SqliteFilePath(dbRootDir)
	if err != nil {
		return "", err
	}

	dsn := fmt.Sprintf("file:%v?_journal_mode=WAL", dbFilePath)
	if passPhrase != "" {
		dsn = fmt.Sprintf("%v&_pragma_key=%s&_pragma_cipher_page_size=4096", dsn, passPhrase)
	}

	return dsn, nil
}

func SqliteFilePath(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

func dialectorFor(config shared.DatabaseConfig) (gorm.Dialector, error) {
	switch config.Driver {
	case "", SQLITE_DRIVER:
		dsn, err := SqliteDSN(config.Sqlite.PassPhrase, config.Sqlite.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to set sqlite DSN: %v", err)
		}
		return sqliteEncrypt.Open(dsn), nil
	case POSTGRES_DRIVER:
		return postgres.Open(config.Postgres.DSN), nil
	}

	return nil, fmt.Errorf("unknown database driver %q", config.Driver)
}
