package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/orderdesk/backend/internal/application/trade"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/domain/shared/valueobject"
	"github.com/orderdesk/backend/internal/domain/trade"
	"github.com/orderdesk/backend/internal/interfaces/http/dto"
	"github.com/orderdesk/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type orderHandlerFixture struct {
	orderRepo    *MockOrderRepository
	productRepo  *MockProductRepository
	customerRepo *MockCustomerRepository
	router       *gin.Engine
}

func newOrderHandlerFixture() *orderHandlerFixture {
	f := &orderHandlerFixture{
		orderRepo:    new(MockOrderRepository),
		productRepo:  new(MockProductRepository),
		customerRepo: new(MockCustomerRepository),
	}

	service := tradeapp.NewOrderService(f.orderRepo, f.productRepo, f.customerRepo)
	h := NewOrderHandler(service)

	f.router = gin.New()
	f.router.POST("/orders", h.Create)
	f.router.GET("/orders", h.List)
	f.router.GET("/orders/status-summary", h.StatusSummary)
	f.router.GET("/orders/:id", h.GetByID)
	f.router.DELETE("/orders/:id", h.Delete)
	f.router.POST("/orders/:id/approve", h.Approve)
	f.router.POST("/orders/:id/reject", h.Reject)
	f.router.POST("/orders/:id/ship", h.Ship)
	f.router.POST("/orders/:id/complete", h.Complete)
	return f
}

type orderEnvelope struct {
	Success bool                   `json:"success"`
	Data    tradeapp.OrderResponse `json:"data"`
	Error   *dto.ErrorInfo         `json:"error"`
	Meta    *dto.Meta              `json:"meta"`
}

func newPendingOrder(t *testing.T) *trade.Order {
	t.Helper()

	order, err := trade.NewOrder("ORD-2026-00017", uuid.New(), "Acme Corp", "2026-08-31")
	require.NoError(t, err)

	_, err = order.AddItem(uuid.New(), "Road Bike", "Giant", 2, valueobject.NewMoneyUSDFromFloat(1200))
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestOrderHandlerCreate(t *testing.T) {
	t.Run("creates order from catalog rates", func(t *testing.T) {
		f := newOrderHandlerFixture()

		customer := newTestCustomer(t)
		product := newTestProduct(t, 20)

		f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.orderRepo.On("GenerateOrderNumber", mock.Anything).Return("ORD-2026-00001", nil)
		f.orderRepo.On("Save", mock.Anything, mock.AnythingOfType("*trade.Order")).Return(nil)

		body, _ := json.Marshal(gin.H{
			"customer_id": customer.ID,
			"items": []gin.H{
				{"product_id": product.ID, "quantity": 3},
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "ORD-2026-00001", resp.Data.OrderNumber)
		assert.Equal(t, "PENDING", resp.Data.Status)
		assert.Equal(t, 3, resp.Data.ItemCount)
		assert.Equal(t, "297.00", resp.Data.Breakdown.Net.StringFixed(2))

		f.orderRepo.AssertExpectations(t)
	})

	t.Run("rejects payload without items", func(t *testing.T) {
		f := newOrderHandlerFixture()

		body, _ := json.Marshal(gin.H{"customer_id": uuid.New()})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("rejects inactive customer", func(t *testing.T) {
		f := newOrderHandlerFixture()

		customer := newTestCustomer(t)
		require.NoError(t, customer.Deactivate())

		f.customerRepo.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)

		body, _ := json.Marshal(gin.H{
			"customer_id": customer.ID,
			"items":       []gin.H{{"product_id": uuid.New()}},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/orders", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeInvalidState, resp.Error.Code)
	})
}

func TestOrderHandlerGetByID(t *testing.T) {
	t.Run("returns order", func(t *testing.T) {
		f := newOrderHandlerFixture()
		order := newPendingOrder(t)

		f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/orders/"+order.ID.String(), nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, order.OrderNumber, resp.Data.OrderNumber)
		assert.Len(t, resp.Data.Items, 1)
	})

	t.Run("maps missing order to 404", func(t *testing.T) {
		f := newOrderHandlerFixture()
		orderID := uuid.New()

		f.orderRepo.On("FindByID", mock.Anything, orderID).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/orders/"+orderID.String(), nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})

	t.Run("rejects malformed id", func(t *testing.T) {
		f := newOrderHandlerFixture()

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/orders/not-a-uuid", nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestOrderHandlerTransitions(t *testing.T) {
	t.Run("approves pending order", func(t *testing.T) {
		f := newOrderHandlerFixture()
		order := newPendingOrder(t)

		f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/orders/"+order.ID.String()+"/approve", nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "APPROVED", resp.Data.Status)
		assert.NotNil(t, resp.Data.ApprovedAt)
	})

	t.Run("rejects order with reason", func(t *testing.T) {
		f := newOrderHandlerFixture()
		order := newPendingOrder(t)

		f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		f.orderRepo.On("SaveWithLock", mock.Anything, order).Return(nil)

		body, _ := json.Marshal(gin.H{"reason": "Credit limit exceeded"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/orders/"+order.ID.String()+"/reject", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "REJECTED", resp.Data.Status)
		assert.Equal(t, "Credit limit exceeded", resp.Data.RejectReason)
	})

	t.Run("reject without reason fails validation", func(t *testing.T) {
		f := newOrderHandlerFixture()

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/orders/"+uuid.NewString()+"/reject", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("completing a pending order is an invalid transition", func(t *testing.T) {
		f := newOrderHandlerFixture()
		order := newPendingOrder(t)

		f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/orders/"+order.ID.String()+"/complete", nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp orderEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeInvalidTransition, resp.Error.Code)
		f.orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}

func TestOrderHandlerDelete(t *testing.T) {
	t.Run("deletes pending order", func(t *testing.T) {
		f := newOrderHandlerFixture()
		order := newPendingOrder(t)

		f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		f.orderRepo.On("Delete", mock.Anything, order.ID).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/orders/"+order.ID.String(), nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		f.orderRepo.AssertExpectations(t)
	})

	t.Run("refuses to delete approved order", func(t *testing.T) {
		f := newOrderHandlerFixture()
		order := newPendingOrder(t)
		require.NoError(t, order.TransitionTo(trade.OrderStatusApproved, ""))

		f.orderRepo.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("DELETE", "/orders/"+order.ID.String(), nil)
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		f.orderRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestOrderHandlerList(t *testing.T) {
	f := newOrderHandlerFixture()
	orders := []trade.Order{*newPendingOrder(t), *newPendingOrder(t)}

	f.orderRepo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(orders, nil)
	f.orderRepo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders?page=1&page_size=10&status=PENDING", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                             `json:"success"`
		Data    []tradeapp.OrderListItemResponse `json:"data"`
		Meta    *dto.Meta                        `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(2), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.PageSize)
}

func TestOrderHandlerStatusSummary(t *testing.T) {
	f := newOrderHandlerFixture()

	counts := map[trade.OrderStatus]int64{
		trade.OrderStatusPending:   4,
		trade.OrderStatusApproved:  2,
		trade.OrderStatusShipped:   1,
		trade.OrderStatusCompleted: 7,
		trade.OrderStatusRejected:  1,
	}
	for status, count := range counts {
		f.orderRepo.On("CountByStatus", mock.Anything, status).Return(count, nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/orders/status-summary", nil)
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []tradeapp.StatusSummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 5)

	total := int64(0)
	seen := make(map[string]int64)
	for _, entry := range resp.Data {
		total += entry.Count
		seen[entry.Status] = entry.Count
	}
	assert.Equal(t, int64(15), total)
	assert.Equal(t, int64(4), seen["PENDING"])
	assert.Equal(t, int64(7), seen["COMPLETED"])
}
