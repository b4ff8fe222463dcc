package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	crmapp "github.com/namap/backend/internal/application/crm"
	"github.com/namap/backend/internal/domain/crm"
	"github.com/namap/backend/internal/domain/shared"
)

func setupActivityRoute(userID uuid.UUID, customerRepo *MockCustomerRepository, activityRepo *MockActivityRepository) *gin.Engine {
	service := crmapp.NewActivityService(activityRepo, customerRepo, zap.NewNop())
	h := NewActivityHandler(service)

	engine := newAuthedEngine(userID)
	engine.POST("/api/v1/crm/activities", h.Submit)
	return engine
}

func submitBody(t *testing.T, payload map[string]any) []byte {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return body
}

func TestActivitySubmit(t *testing.T) {
	ownerID := uuid.New()

	t.Run("success returns date, display status and note", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)
		customer := newTestCustomer(t, ownerID, "Acme")

		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		activityRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *crm.Activity) bool {
			return a.CustomerID == customer.ID && a.Status == crm.ActivityStatusDone
		})).Return(nil)

		engine := setupActivityRoute(ownerID, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", submitBody(t, map[string]any{
			"customer_id":   customer.ID.String(),
			"activity_date": "2026-03-15",
			"status":        "done",
			"note":          "Follow-up call",
		}))

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "success", body["message"])
		assert.Equal(t, "2026-03-15", body["activity_date"])
		assert.Equal(t, "Completed", body["status"])
		assert.Equal(t, "Follow-up call", body["note"])
		activityRepo.AssertExpectations(t)
	})

	t.Run("another user's customer gets forbidden and nothing is stored", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)
		customer := newTestCustomer(t, uuid.New(), "Rival")

		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		engine := setupActivityRoute(ownerID, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", submitBody(t, map[string]any{
			"customer_id":   customer.ID.String(),
			"activity_date": "2026-03-15",
			"status":        "done",
		}))

		assert.Equal(t, http.StatusForbidden, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]any{"message": "forbidden"}, body)
		activityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("forbidden wins over invalid fields", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)
		customer := newTestCustomer(t, uuid.New(), "Rival")

		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		engine := setupActivityRoute(ownerID, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", submitBody(t, map[string]any{
			"customer_id": customer.ID.String(),
			"status":      "nonsense",
		}))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.NotContains(t, w.Body.String(), "errors")
	})

	t.Run("invalid fields collect into per-field messages", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)
		customer := newTestCustomer(t, ownerID, "Acme")

		customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		engine := setupActivityRoute(ownerID, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", submitBody(t, map[string]any{
			"customer_id":   customer.ID.String(),
			"activity_date": "15/03/2026",
			"status":        "nonsense",
		}))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "validation error", body.Message)
		assert.Equal(t, []string{"Enter a valid date in YYYY-MM-DD format"}, body.Errors["activity_date"])
		assert.Equal(t, []string{"Select a valid choice"}, body.Errors["status"])
		activityRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing customer gets not found", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)
		customerID := uuid.New()

		customerRepo.On("FindByID", mock.Anything, customerID).Return(nil, shared.ErrNotFound)

		engine := setupActivityRoute(ownerID, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", submitBody(t, map[string]any{
			"customer_id":   customerID.String(),
			"activity_date": "2026-03-15",
			"status":        "done",
		}))

		assert.Equal(t, http.StatusNotFound, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "not found", body["message"])
	})

	t.Run("unparseable customer id gets not found", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)

		engine := setupActivityRoute(ownerID, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", submitBody(t, map[string]any{
			"customer_id":   "not-a-uuid",
			"activity_date": "2026-03-15",
			"status":        "done",
		}))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed body reads as validation error", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)

		engine := setupActivityRoute(ownerID, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", []byte("{not json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation error")
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		customerRepo := new(MockCustomerRepository)
		activityRepo := new(MockActivityRepository)

		engine := setupActivityRoute(uuid.Nil, customerRepo, activityRepo)
		w := performRequest(engine, "POST", "/api/v1/crm/activities", submitBody(t, map[string]any{
			"customer_id":   uuid.New().String(),
			"activity_date": "2026-03-15",
			"status":        "done",
		}))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
