package customers

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

	r.POST("/customers", h.CreateCustomer)
	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.PUT("/customers/:id", h.UpdateCustomer)
	r.PUT("/customers/:id/privileges", h.UpdatePrivileges)
	r.DELETE("/customers/:id", h.DeleteCustomer)
}

// CreateCustomer godoc
// @Summary  Register a customer (borrowing privileges granted)
// @Tags     customers
// @Accept   json
// @Produce  json
// @Param    body body CreateCustomerRequest true "customer"
// @Success  201 {object} CustomerResponse
// @Failure  400 {object} apierr.ErrorDTO
// @Router   /customers [post]
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	cust, err := h.svc.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Header("Location", "/customers/"+cust.ID)
	c.JSON(http.StatusCreated, cust.toDTO())
}

// GetCustomer godoc
// @Summary  Get a customer
// @Tags     customers
// @Produce  json
// @Param    id path string true "customer id"
// @Success  200 {object} CustomerResponse
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /customers/{id} [get]
func (h *Handler) GetCustomer(c *gin.Context) {
	cust, err := h.svc.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	if ttl := h.svc.CacheTTL(); ttl > 0 {
		c.Header("Cache-Control", fmt.Sprintf("max-age=%d", int(ttl.Seconds())))
	}
	c.JSON(http.StatusOK, cust.toDTO())
}

// ListCustomers godoc
// @Summary  Paged list of customers, optionally filtered by exact name
// @Tags     customers
// @Produce  json
// @Param    name  query string false "exact name"
// @Param    page  query int    false "0-based page"
// @Param    size  query int    false "page size (default 10)"
// @Param    sort  query string false "name | email"
// @Param    order query string false "asc | desc"
// @Success  200 {object} paging.Page[CustomerResponse]
// @Router   /customers [get]
func (h *Handler) ListCustomers(c *gin.Context) {
	page, err := h.svc.ListCustomers(c.Request.Context(), c.Query("name"), paging.FromQuery(c, ListDefaults))
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	res := paging.Map(page, Customer.toDTO)
	paging.SetLinkHeader(c, res)
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "invalid json")
		return
	}
	cust, err := h.svc.UpdateCustomer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cust.toDTO())
}

// UpdatePrivileges godoc
// @Summary  Grant or revoke borrowing privileges
// @Tags     customers
// @Accept   json
// @Produce  json
// @Param    id   path string                  true "customer id"
// @Param    body body UpdatePrivilegesRequest true "privileges"
// @Success  200 {object} CustomerResponse
// @Failure  404 {object} apierr.ErrorDTO
// @Router   /customers/{id}/privileges [put]
func (h *Handler) UpdatePrivileges(c *gin.Context) {
	var req UpdatePrivilegesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierr.BadRequest(c, "privileges is required")
		return
	}
	cust, err := h.svc.UpdatePrivileges(c.Request.Context(), c.Param("id"), *req.Privileges)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cust.toDTO())
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.svc.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		apierr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
