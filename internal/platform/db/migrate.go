package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
	author_id CHAR(26)     NOT NULL,
	name      VARCHAR(255) NOT NULL,
	bio       TEXT         NULL,
	PRIMARY KEY (author_id),
	UNIQUE KEY uk_authors_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS books (
	book_id          CHAR(26)     NOT NULL,
	title            VARCHAR(255) NOT NULL,
	isbn             VARCHAR(20)  NOT NULL,
	publication_year INT          NOT NULL,
	availability     TINYINT(1)   NOT NULL DEFAULT 1,
	created_at       DATE         NOT NULL,
	PRIMARY KEY (book_id),
	UNIQUE KEY uk_books_title (title),
	UNIQUE KEY uk_books_isbn (isbn)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS book_authors (
	book_id   CHAR(26) NOT NULL,
	author_id CHAR(26) NOT NULL,
	PRIMARY KEY (book_id, author_id),
	CONSTRAINT fk_book_authors_book FOREIGN KEY (book_id) REFERENCES books (book_id) ON DELETE CASCADE,
	CONSTRAINT fk_book_authors_author FOREIGN KEY (author_id) REFERENCES authors (author_id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS customers (
	customer_id    CHAR(26)     NOT NULL,
	name           VARCHAR(255) NOT NULL,
	email          VARCHAR(255) NOT NULL,
	has_privileges TINYINT(1)   NOT NULL DEFAULT 1,
	PRIMARY KEY (customer_id),
	KEY idx_customers_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS transactions (
	transaction_id CHAR(26)    NOT NULL,
	customer_id    CHAR(26)    NOT NULL,
	book_id        CHAR(26)    NOT NULL,
	borrow_date    DATE        NOT NULL,
	due_date       DATE        NOT NULL,
	return_date    DATE        NULL,
	lent_by        VARCHAR(64) NULL,
	received_by    VARCHAR(64) NULL,
	PRIMARY KEY (transaction_id),
	KEY idx_transactions_book_open (book_id, return_date),
	KEY idx_transactions_customer (customer_id, borrow_date),
	CONSTRAINT fk_transactions_customer FOREIGN KEY (customer_id) REFERENCES customers (customer_id) ON DELETE CASCADE,
	CONSTRAINT fk_transactions_book FOREIGN KEY (book_id) REFERENCES books (book_id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS auth_accounts (
	id            VARCHAR(64)  NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	role          VARCHAR(32)  NOT NULL,
	is_disabled   TINYINT(1)   NOT NULL DEFAULT 0,
	created_at    DATETIME(6)  NOT NULL,
	PRIMARY KEY (id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS authors (
	author_id TEXT NOT NULL PRIMARY KEY,
	name      TEXT NOT NULL,
	bio       TEXT NULL,
	CONSTRAINT uk_authors_name UNIQUE (name)
)`,
	`CREATE TABLE IF NOT EXISTS books (
	book_id          TEXT    NOT NULL PRIMARY KEY,
	title            TEXT    NOT NULL,
	isbn             TEXT    NOT NULL,
	publication_year INTEGER NOT NULL,
	availability     INTEGER NOT NULL DEFAULT 1,
	created_at       DATE    NOT NULL,
	CONSTRAINT uk_books_title UNIQUE (title),
	CONSTRAINT uk_books_isbn UNIQUE (isbn)
)`,
	`CREATE TABLE IF NOT EXISTS book_authors (
	book_id   TEXT NOT NULL REFERENCES books (book_id) ON DELETE CASCADE,
	author_id TEXT NOT NULL REFERENCES authors (author_id) ON DELETE CASCADE,
	PRIMARY KEY (book_id, author_id)
)`,
	`CREATE TABLE IF NOT EXISTS customers (
	customer_id    TEXT    NOT NULL PRIMARY KEY,
	name           TEXT    NOT NULL,
	email          TEXT    NOT NULL,
	has_privileges INTEGER NOT NULL DEFAULT 1
)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_name ON customers (name)`,
	`CREATE TABLE IF NOT EXISTS transactions (
	transaction_id TEXT NOT NULL PRIMARY KEY,
	customer_id    TEXT NOT NULL REFERENCES customers (customer_id) ON DELETE CASCADE,
	book_id        TEXT NOT NULL REFERENCES books (book_id) ON DELETE CASCADE,
	borrow_date    DATE NOT NULL,
	due_date       DATE NOT NULL,
	return_date    DATE NULL,
	lent_by        TEXT NULL,
	received_by    TEXT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_book_open ON transactions (book_id, return_date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions (customer_id, borrow_date)`,
	`CREATE TABLE IF NOT EXISTS auth_accounts (
	id            TEXT     NOT NULL PRIMARY KEY,
	password_hash TEXT     NOT NULL,
	role          TEXT     NOT NULL,
	is_disabled   INTEGER  NOT NULL DEFAULT 0,
	created_at    DATETIME NOT NULL
)`,
}

// Migrate は driver に合わせたスキーマを作成する。何度実行してもよい。
func Migrate(ctx context.Context, conn *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverMySQL:
		stmts = mysqlSchema
	case DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unsupported driver: %q", driver)
	}

	for _, q := range stmts {
		if _, err := conn.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	log.Printf("[INFO] schema ready (%s, %d statements)", driver, len(stmts))
	return nil
}
