package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	crmapp "github.com/namap/backend/internal/application/crm"
	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *crmapp.CustomerService
	activityService *crmapp.ActivityService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *crmapp.CustomerService, activityService *crmapp.ActivityService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		activityService: activityService,
	}
}

// List returns one page of the caller's customers. An optional search term
// matches company name, contact name, email, or tag names; the term is echoed
// back so clients can re-render their filter state.
func (h *CustomerHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.CustomerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	page, err := h.customerService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, page)
}

// GetByID returns a single customer owned by the caller. Customers owned by
// other users report not found.
func (h *CustomerHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, shared.ErrNotFound.Message)
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), ownerID, customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// Create creates a new customer owned by the caller
func (h *CustomerHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, BindingErrorFields(err))
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, customer)
}

// Update replaces the profile of a customer owned by the caller
func (h *CustomerHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, shared.ErrNotFound.Message)
		return
	}

	var req crmapp.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, BindingErrorFields(err))
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), ownerID, customerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, customer)
}

// Delete removes a customer owned by the caller along with its activities
func (h *CustomerHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, shared.ErrNotFound.Message)
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), ownerID, customerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListActivities returns one page of a customer's activities, newest first
func (h *CustomerHandler) ListActivities(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.NotFound(c, shared.ErrNotFound.Message)
		return
	}

	var req struct {
		Page int `form:"page" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}

	filter := shared.Filter{Page: req.Page, PageSize: crm.PageSize}
	activities, total, err := h.activityService.ListForCustomer(c.Request.Context(), ownerID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, activities, total, filter.Page, filter.PageSize)
}
