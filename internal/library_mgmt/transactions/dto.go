package transactions

import "time"

// ===== Requests =====

type CreateTransactionRequest struct {
	CustomerID string  `json:"customer_id" binding:"required"`
	BookID     string  `json:"book_id" binding:"required"`
	BorrowDate *string `json:"borrow_date"` // "2006-01-02"
	DueDate    *string `json:"due_date"`
}

// ===== Responses =====

type TransactionResponse struct {
	TransactionID string  `json:"transaction_id"`
	CustomerID    string  `json:"customer_id"`
	BookID        string  `json:"book_id"`
	BorrowDate    string  `json:"borrow_date"`
	DueDate       string  `json:"due_date"`
	ReturnDate    *string `json:"return_date"`
	LentBy        *string `json:"lent_by,omitempty"`
	ReceivedBy    *string `json:"received_by,omitempty"`
	Overdue       bool    `json:"overdue"`
}

type ReturnResponse struct {
	TransactionID string `json:"transaction_id"`
	BookID        string `json:"book_id"`
	ReturnDate    string `json:"return_date"`
}

type OverdueResponse struct {
	TransactionResponse
	BookTitle    string `json:"book_title"`
	CustomerName string `json:"customer_name"`
	DaysOverdue  int    `json:"days_overdue"`
}

type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func toResponse(t Transaction, today time.Time) TransactionResponse {
	res := TransactionResponse{
		TransactionID: t.ID,
		CustomerID:    t.CustomerID,
		BookID:        t.BookID,
		BorrowDate:    t.BorrowDate.Format(DateLayout),
		DueDate:       t.DueDate.Format(DateLayout),
		Overdue:       IsOverdue(t, today),
	}
	if t.ReturnDate.Valid {
		v := t.ReturnDate.Time.Format(DateLayout)
		res.ReturnDate = &v
	}
	if t.LentBy.Valid {
		v := t.LentBy.String
		res.LentBy = &v
	}
	if t.ReceivedBy.Valid {
		v := t.ReceivedBy.String
		res.ReceivedBy = &v
	}
	return res
}

func toOverdueResponse(e OverdueEntry, today time.Time) OverdueResponse {
	return OverdueResponse{
		TransactionResponse: toResponse(e.Transaction, today),
		BookTitle:           e.BookTitle,
		CustomerName:        e.CustomerName,
		DaysOverdue:         e.DaysOverdue,
	}
}
