package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
	"storefront/internal/service"
)

func TestOrderLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodPost, "/orders", token, service.CreateOrderRequest{
		Products: []service.OrderProduct{{ProductID: prod.ID, Quantity: 3}},
		Amount:   29.97,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	decode(t, rec, &order)
	require.Equal(t, models.OrderStatusCreated, order.Status)
	require.Equal(t, 29.97, order.Amount)
	require.Len(t, order.Products, 1)
	require.Equal(t, prod.ID, order.Products[0].ProductID)

	rec = env.do(http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	require.Equal(t, order.ID, orders[0].ID)

	rec = env.do(http.MethodPut, "/orders/"+order.ID.String()+"/cancel", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Order cancelled successfully")

	rec = env.do(http.MethodGet, "/orders", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &orders)
	require.Equal(t, models.OrderStatusCancelled, orders[0].Status)

	// cancelling again conflicts; status code stays in the 400 family
	rec = env.do(http.MethodPut, "/orders/"+order.ID.String()+"/cancel", token, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Order already cancelled", errMessage(t, rec))
}

func TestCancelUnknownOrder(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")

	rec := env.do(http.MethodPut, "/orders/"+uuid.NewString()+"/cancel", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Order not found", errMessage(t, rec))

	rec = env.do(http.MethodPut, "/orders/not-a-uuid/cancel", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOtherUsersOrder(t *testing.T) {
	env := newTestEnv(t)
	alice := login(t, env, "alice@example.com")
	bob := login(t, env, "bob@example.com")

	rec := env.do(http.MethodPost, "/orders", alice, service.CreateOrderRequest{
		Products: []service.OrderProduct{{ProductID: uuid.New(), Quantity: 1}},
		Amount:   9.99,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var order models.Order
	decode(t, rec, &order)

	rec = env.do(http.MethodPut, "/orders/"+order.ID.String()+"/cancel", bob, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodGet, "/orders", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	decode(t, rec, &orders)
	require.Empty(t, orders)
}

func TestCreateOrderValidationStatus(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")

	rec := env.do(http.MethodPost, "/orders", token, service.CreateOrderRequest{
		Products: []service.OrderProduct{{ProductID: uuid.Nil, Quantity: 1}},
		Amount:   9.99,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/orders", token, service.CreateOrderRequest{
		Products: []service.OrderProduct{{ProductID: uuid.New(), Quantity: 0}},
		Amount:   9.99,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
