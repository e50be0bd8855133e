package authors

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/platform/apierr"
	"library-backend/internal/platform/paging"
)

type Handler struct{ svc *Service }

func RegisterRoutes(r gin.IRoutes, svc *Service) {
	h := &Handler{svc: svc}

	r.POST("/authors", h.CreateAuthor)
	r.GET("/authors", h.ListAuthors)
	r.GET("/authors/by-name/:name", h.GetAuthorByName)
	r.GET("/authors/:id", h.GetAuthor)
	r.PUT("/authors/:id", h.UpdateAuthor)
	r.DELETE("/authors/:id", h.DeleteAuthor)
}

// CreateAuthor godoc
// @Summary  Add an author
// @Tags     authors
// @Accept   json
// @Produce  json
// @Param    body body CreateAuthorRequest true "author"
// @Success  201 {object} AuthorResponse
// @Failure  409 {object} apierr.ErrorDTO
// @Router   /authors [post]
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	a, err := h.svc.CreateAuthor(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/authors/"+a.ID)
	c.JSON(http.StatusCreated, a.toDTO())
}

func (h *Handler) GetAuthor(c *gin.Context) {
	a, err := h.svc.GetAuthor(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a.toDTO())
}

func (h *Handler) GetAuthorByName(c *gin.Context) {
	a, err := h.svc.GetAuthorByName(c.Request.Context(), c.Param("name"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a.toDTO())
}

// ListAuthors godoc
// @Summary  Paged list of authors
// @Tags     authors
// @Produce  json
// @Param    page  query int    false "0-based page"
// @Param    size  query int    false "page size (default 10)"
// @Param    sort  query string false "name | book_count"
// @Param    order query string false "asc | desc"
// @Success  200 {object} paging.Page[AuthorResponse]
// @Router   /authors [get]
func (h *Handler) ListAuthors(c *gin.Context) {
	page, err := h.svc.ListAuthors(c.Request.Context(), paging.FromQuery(c, ListDefaults))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	res := paging.Map(page, Author.toDTO)
	paging.SetLinkHeader(c, res)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateAuthor(c *gin.Context) {
	var req UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	a, err := h.svc.UpdateAuthor(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, a.toDTO())
}

func (h *Handler) DeleteAuthor(c *gin.Context) {
	if err := h.svc.DeleteAuthor(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
