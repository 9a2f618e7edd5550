package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase connects gorm to the SQL backend named by STORE_URL.
// nowFunc stamps created_at/updated_at so the database and the service
// share one clock.
func OpenDatabase(cfg *Config, nowFunc func() time.Time) (*gorm.DB, error) {
	backend, err := cfg.StoreBackend()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch backend {
	case StoreBackendMySQL:
		dsn, err := MySQLDSN(cfg.StoreURL, cfg.StoreKey)
		if err != nil {
			return nil, err
		}
		dialector = mysql.Open(dsn)
	case StoreBackendSQLite:
		dialector = sqlite.Open(SQLitePath(cfg.StoreURL))
	default:
		return nil, fmt.Errorf("store backend %q is not a SQL database", backend)
	}

	// In production, suppress SQL logs unless explicitly re-enabled via DEBUG_SQL=true.
	logLevel := logger.Info
	if cfg.IsProduction() && !cfg.DebugSQL {
		logLevel = logger.Warn
	}

	gormConfig := &gorm.Config{
		Logger: logger.New(
			log.New(LogWriter, "\r\n", log.LstdFlags),
			logger.Config{LogLevel: logLevel},
		),
		NowFunc:                nowFunc,
		SkipDefaultTransaction: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Database connected successfully (%s)", backend)
	return db, nil
}

// MySQLDSN turns mysql://user@tcp(host:port)/db?opts into a driver DSN with
// the access key as password.
func MySQLDSN(storeURL, key string) (string, error) {
	raw := storeURL[len("mysql://"):]
	parsed, err := mysqldriver.ParseDSN(raw)
	if err != nil {
		return "", fmt.Errorf("invalid mysql STORE_URL: %w", err)
	}
	parsed.Passwd = key
	parsed.ParseTime = true
	parsed.Loc = time.UTC
	if parsed.Params == nil {
		parsed.Params = map[string]string{}
	}
	if _, ok := parsed.Params["charset"]; !ok {
		parsed.Params["charset"] = "utf8mb4"
	}
	return parsed.FormatDSN(), nil
}

// SQLitePath strips the sqlite:// prefix.
func SQLitePath(storeURL string) string {
	path := storeURL[len("sqlite://"):]
	if strings.TrimSpace(path) == "" {
		return "file::memory:?cache=shared"
	}
	return path
}
