package transactions

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"library-backend/internal/platform/apierr"
)

var overdueCSVHeader = []string{
	"transaction_id", "customer_id", "customer_name", "book_id", "book_title",
	"borrow_date", "due_date", "days_overdue",
}

// WriteOverdueCSV は延滞レポートを CSV で書き出す。
// charset は utf-8（既定）か shift_jis。
func WriteOverdueCSV(w io.Writer, entries []OverdueEntry, charset string) error {
	out := w
	var closer io.Closer

	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf-8", "utf8":
	case "shift_jis", "sjis", "cp932":
		// Shift_JIS に無い文字は置換文字にする
		enc := encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder())
		tw := transform.NewWriter(w, enc)
		out, closer = tw, tw
	default:
		return apierr.ErrInvalid("unsupported encoding: " + charset)
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(overdueCSVHeader); err != nil {
		return err
	}
	for _, e := range entries {
		rec := []string{
			e.ID,
			e.CustomerID,
			e.CustomerName,
			e.BookID,
			e.BookTitle,
			e.BorrowDate.Format(DateLayout),
			e.DueDate.Format(DateLayout),
			strconv.Itoa(e.DaysOverdue),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if closer != nil {
		return closer.Close()
	}
	return nil
}

func csvContentType(charset string) string {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "shift_jis", "sjis", "cp932":
		return "text/csv; charset=Shift_JIS"
	default:
		return "text/csv; charset=utf-8"
	}
}
