package books

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/books", h.CreateBook)
	r.GET("/books", h.ListBooks)
	r.GET("/books/search", h.SearchBooks)
	r.GET("/books/:id", h.GetBook)
	r.PUT("/books/:id", h.UpdateBook)
	r.DELETE("/books/:id", h.DeleteBook)
}

// CreateBook godoc
// @Summary  Add a book (authors are created when missing)
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    body body CreateBookRequest true "book"
// @Success  201 {object} BookResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /books [post]
func (h *Handler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	b, err := h.svc.CreateBook(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/books/"+b.ID)
	c.JSON(http.StatusCreated, toResponse(b))
}

// GetBook godoc
// @Summary  Get a book
// @Tags     books
// @Produce  json
// @Param    id path string true "book id"
// @Success  200 {object} BookResponse
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /books/{id} [get]
func (h *Handler) GetBook(c *gin.Context) {
	b, err := h.svc.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	h.setCacheControl(c)
	c.JSON(http.StatusOK, toResponse(b))
}

// ListBooks godoc
// @Summary  Paged list of books
// @Tags     books
// @Produce  json
// @Param    page  query int    false "0-based page"
// @Param    size  query int    false "page size (default 10)"
// @Param    sort  query string false "title | isbn | publication_year | created_at"
// @Param    order query string false "asc | desc"
// @Success  200 {object} paging.Page[BookResponse]
// @Router   /books [get]
func (h *Handler) ListBooks(c *gin.Context) {
	page, err := h.svc.ListBooks(c.Request.Context(), paging.FromQuery(c, ListDefaults))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	res := paging.Map(page, toResponse)
	paging.SetLinkHeader(c, res)
	c.JSON(http.StatusOK, res)
}

// SearchBooks godoc
// @Summary  Search books by exactly one of id, title, isbn, author or q
// @Tags     books
// @Produce  json
// @Param    id        query string false "book id"
// @Param    title     query string false "exact title"
// @Param    isbn      query string false "exact isbn"
// @Param    author    query string false "exact author name"
// @Param    available query bool   false "with author only"
// @Param    q         query string false "title or isbn substring"
// @Success  200 {object} paging.Page[BookResponse]
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /books/search [get]
func (h *Handler) SearchBooks(c *gin.Context) {
	f, err := ParseSearch(c.Request.URL.Query())
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	page, err := h.svc.Search(c.Request.Context(), f, paging.FromQuery(c, ListDefaults))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	if IsCachedLookup(f) {
		h.setCacheControl(c)
	}
	res := paging.Map(page, toResponse)
	paging.SetLinkHeader(c, res)
	c.JSON(http.StatusOK, res)
}

// UpdateBook godoc
// @Summary  Update title, isbn, publication year or authors
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    id   path string            true "book id"
// @Param    body body UpdateBookRequest true "fields to change"
// @Success  200 {object} BookResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Failure  404 {object} apierr.ErrorDTO
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /books/{id} [put]
func (h *Handler) UpdateBook(c *gin.Context) {
	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	b, err := h.svc.UpdateBook(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(b))
}

// DeleteBook godoc
// @Summary  Delete a book that is not on loan
// @Tags     books
// @Param    id path string true "book id"
// @Success  204
// @Failure  404 {object} apierr.ErrorDTO
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /books/{id} [delete]
func (h *Handler) DeleteBook(c *gin.Context) {
	if err := h.svc.DeleteBook(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) setCacheControl(c *gin.Context) {
	if ttl := h.svc.CacheTTL(); ttl > 0 {
		c.Header("Cache-Control", fmt.Sprintf("max-age=%d", int(ttl.Seconds())))
	}
}
