package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	crmapp "github.com/namap/backend/internal/application/crm"
	"github.com/namap/backend/internal/domain/shared"
)

// ActivityHandler handles the activity submission endpoint
type ActivityHandler struct {
	BaseHandler
	activityService *crmapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *crmapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// Submit records a sales activity against a customer. The response body
// follows the submission contract rather than the standard envelope: 200
// returns {message, activity_date, status, note}, 403 returns
// {message: "forbidden"}, 400 returns {message: "validation error", errors}
// with per-field messages, and 404 means the customer does not exist.
// Field validation runs only after the ownership check, so a forbidden
// submission never learns which fields were invalid.
func (h *ActivityHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.SubmitActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation error",
			"errors":  BindingErrorFields(err),
		})
		return
	}

	result, err := h.activityService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		h.handleSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ActivityHandler) handleSubmitError(c *gin.Context, err error) {
	var validationErr *shared.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "validation error",
			"errors":  validationErr.Fields,
		})
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case shared.ErrForbidden.Code:
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		case shared.ErrNotFound.Code:
			c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
			return
		}
	}

	h.HandleDomainError(c, err)
}
