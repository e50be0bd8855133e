package transactions

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/auth"
	"library-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	// 貸出
	r.POST("/transactions", h.CreateTransaction)
	r.POST("/transactions/borrowBook/:customerId/:bookId", h.BorrowBook)

	// 返却
	r.POST("/transactions/returnBook/:bookId", h.ReturnBook)

	// 参照
	r.GET("/transactions/history/:customerId", h.History)
	r.GET("/transactions/overdue", h.Overdue)
	r.GET("/transactions/:id", h.GetTransaction)
	r.GET("/books/:id/transactions", h.ListForBook)
}

// ---------- handlers ----------

// CreateTransaction godoc
// @Summary  Record a loan with explicit dates
// @Tags     transactions
// @Accept   json
// @Produce  json
// @Param    body body CreateTransactionRequest true "loan"
// @Success  200 {object} TransactionResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}

	in := NewTransaction{
		CustomerID: req.CustomerID,
		BookID:     req.BookID,
		Actor:      auth.PrincipalFrom(c).Subject,
	}
	var err error
	if in.BorrowDate, err = parseDatePtr(req.BorrowDate); err != nil {
		apierr.BadRequest(c, "borrow_date must be YYYY-MM-DD")
		return
	}
	if in.DueDate, err = parseDatePtr(req.DueDate); err != nil {
		apierr.BadRequest(c, "due_date must be YYYY-MM-DD")
		return
	}

	t, err := h.svc.CreateTransaction(c.Request.Context(), in)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/transactions/"+t.ID)
	c.JSON(http.StatusOK, toResponse(t, h.svc.Today()))
}

// BorrowBook godoc
// @Summary  Borrow a book today with the default loan period
// @Tags     transactions
// @Produce  json
// @Param    customerId path string true "customer id"
// @Param    bookId     path string true "book id"
// @Success  200 {object} TransactionResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  403 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /transactions/borrowBook/{customerId}/{bookId} [post]
func (h *Handler) BorrowBook(c *gin.Context) {
	t, err := h.svc.Borrow(c.Request.Context(), c.Param("customerId"), c.Param("bookId"), auth.PrincipalFrom(c).Subject)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/transactions/"+t.ID)
	c.JSON(http.StatusOK, toResponse(t, h.svc.Today()))
}

// ReturnBook godoc
// @Summary  Return the borrowed copy of a book
// @Tags     transactions
// @Produce  json
// @Param    bookId path string true "book id"
// @Success  200 {object} ReturnResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /transactions/returnBook/{bookId} [post]
func (h *Handler) ReturnBook(c *gin.Context) {
	t, err := h.svc.ReturnBook(c.Request.Context(), c.Param("bookId"), auth.PrincipalFrom(c).Subject)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ReturnResponse{
		TransactionID: t.ID,
		BookID:        t.BookID,
		ReturnDate:    t.ReturnDate.Time.Format(DateLayout),
	})
}

// History godoc
// @Summary  Paged borrowing history of a customer
// @Tags     transactions
// @Produce  json
// @Param    customerId path  string true  "customer id"
// @Param    page       query int    false "0-based page"
// @Param    size       query int    false "page size (default 5)"
// @Param    sort       query string false "borrow_date | due_date | return_date"
// @Param    order      query string false "asc | desc"
// @Success  200 {object} paging.Page[TransactionResponse]
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /transactions/history/{customerId} [get]
func (h *Handler) History(c *gin.Context) {
	p := paging.FromQuery(c, HistoryDefaults)
	page, err := h.svc.BorrowingHistory(c.Request.Context(), c.Param("customerId"), p)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	today := h.svc.Today()
	res := paging.Map(page, func(t Transaction) TransactionResponse { return toResponse(t, today) })
	paging.SetLinkHeader(c, res)
	c.JSON(http.StatusOK, res)
}

// GetTransaction godoc
// @Summary  Get a transaction
// @Tags     transactions
// @Produce  json
// @Param    id path string true "transaction id"
// @Success  200 {object} TransactionResponse
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	t, err := h.svc.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(t, h.svc.Today()))
}

func (h *Handler) ListForBook(c *gin.Context) {
	items, err := h.svc.TransactionsForBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	today := h.svc.Today()
	res := ListResult[TransactionResponse]{Items: make([]TransactionResponse, 0, len(items)), Total: len(items)}
	for _, t := range items {
		res.Items = append(res.Items, toResponse(t, today))
	}
	c.JSON(http.StatusOK, res)
}

// Overdue godoc
// @Summary  Overdue loans as of a date (JSON or CSV)
// @Tags     transactions
// @Produce  json
// @Produce  text/csv
// @Param    date     query string false "YYYY-MM-DD, default today"
// @Param    format   query string false "json | csv"
// @Param    encoding query string false "utf-8 | shift_jis (csv only)"
// @Success  200 {object} ListResult[OverdueResponse]
// @Router   /transactions/overdue [get]
func (h *Handler) Overdue(c *gin.Context) {
	today := h.svc.Today()
	if v := c.Query("date"); v != "" {
		d, err := ParseDate(v)
		if err != nil {
			apierr.BadRequest(c, "date must be YYYY-MM-DD")
			return
		}
		today = d
	}

	entries, err := h.svc.OverdueReport(c.Request.Context(), today)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	if strings.EqualFold(c.Query("format"), "csv") {
		charset := c.Query("encoding")
		var buf bytes.Buffer
		if err := WriteOverdueCSV(&buf, entries, charset); err != nil {
			apierr.Respond(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="overdue-`+today.Format(DateLayout)+`.csv"`)
		c.Data(http.StatusOK, csvContentType(charset), buf.Bytes())
		return
	}

	res := ListResult[OverdueResponse]{Items: make([]OverdueResponse, 0, len(entries)), Total: len(entries)}
	for _, e := range entries {
		res.Items = append(res.Items, toOverdueResponse(e, today))
	}
	c.JSON(http.StatusOK, res)
}

// ---------- helpers ----------

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &t, nil
}
