package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"library-backend/internal/platform/config"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// DSN は driver ごとの接続文字列を組み立てる。
func DSN(c config.DatabaseConfig) (string, error) {
	switch c.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&tls=false&timeout=3s&readTimeout=5s&writeTimeout=5s&loc=UTC",
			c.Username, c.Password, c.Host, c.Port, c.DBName), nil
	case DriverSQLite:
		// 書き込みTxは BEGIN IMMEDIATE で取り、競合は busy_timeout で待たせる
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_journal_mode=WAL&_txlock=immediate", c.Path), nil
	default:
		return "", fmt.Errorf("unsupported driver: %q", c.Driver)
	}
}

func Connect(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := DSN(c)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(c.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if c.Driver == DriverMySQL {
		// 接続プール（合算がMySQLの max_connections を超えないよう配分する）
		db.SetMaxOpenConns(80)
		db.SetMaxIdleConns(20)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	} else {
		db.SetMaxOpenConns(8)
		db.SetMaxIdleConns(8)
	}

	return db, nil
}
