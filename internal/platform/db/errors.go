package db

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// IsDuplicateKey は UNIQUE / PRIMARY KEY 違反かどうかを判定する。
func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique ||
			se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// DuplicateKeyOn は違反したキーが column を含むかを判定する。
// MySQL は "for key 'books.uk_books_isbn'"、SQLite は "failed: books.isbn" の部分を見る。
func DuplicateKeyOn(err error, column string) bool {
	if !IsDuplicateKey(err) {
		return false
	}
	msg := err.Error()
	for _, marker := range []string{"for key ", "failed: "} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			return strings.Contains(strings.ToLower(msg[i+len(marker):]), column)
		}
	}
	return false
}

// IsForeignKeyViolation は参照先が存在しない INSERT/UPDATE を判定する。
func IsForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1452
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
