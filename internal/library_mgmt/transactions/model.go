package transactions

import (
	"database/sql"
	"time"
)

// DATE は "YYYY-MM-DD"、UTC の日付として扱う
const DateLayout = "2006-01-02"

// Transaction は1回の貸出。ReturnDate が NULL の間は open（本は貸出中）。
type Transaction struct {
	ID         string
	CustomerID string
	BookID     string
	BorrowDate time.Time
	DueDate    time.Time
	ReturnDate sql.NullTime
	LentBy     sql.NullString
	ReceivedBy sql.NullString
}

func (t Transaction) IsOpen() bool { return !t.ReturnDate.Valid }

// IsOverdue: 未返却かつ today が期限日を過ぎている（日単位で比較）
func IsOverdue(t Transaction, today time.Time) bool {
	return t.IsOpen() && DateOf(today).After(DateOf(t.DueDate))
}

// DaysOverdue は期限日からの経過日数。延滞していなければ 0。
func DaysOverdue(t Transaction, today time.Time) int {
	if !IsOverdue(t, today) {
		return 0
	}
	return int(DateOf(today).Sub(DateOf(t.DueDate)).Hours() / 24)
}

// DateOf は UTC の日付部分だけを残す。
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// 貸出処理で参照する本・利用者の最小限のビュー
type Book struct {
	ID        string
	Title     string
	Available bool
}

type Customer struct {
	ID         string
	Name       string
	Privileges bool
}

// OverdueEntry は延滞レポートの1行。
type OverdueEntry struct {
	Transaction
	BookTitle    string
	CustomerName string
	DaysOverdue  int
}
