package httpserver

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"storefront/internal/models"
)

func TestCartLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodPost, "/cart/add", token, map[string]any{
		"productId": prod.ID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 2, resp.Items[0].Quantity)

	// a second add for the same product merges instead of appending
	rec = env.do(http.MethodPost, "/cart/add", token, map[string]any{
		"productId": prod.ID,
		"quantity":  3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 5, resp.Items[0].Quantity)
	require.Equal(t, prod.ID, resp.Items[0].Product.ID)

	rec = env.do(http.MethodGet, "/cart/getCart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 5, resp.Items[0].Quantity)

	// a non-positive target removes the line
	rec = env.do(http.MethodPut, "/cart/update-quantity", token, map[string]any{
		"productId": prod.ID,
		"quantity":  0,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)

	rec = env.do(http.MethodGet, "/cart/getCart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)
}

func TestCartPrunedAfterProductDelete(t *testing.T) {
	env := newTestEnv(t)
	admin := loginAdmin(t, env)
	token := login(t, env, "user@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodPost, "/cart/add", token, map[string]any{
		"productId": prod.ID,
		"quantity":  3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 9.99, resp.Items[0].Product.Price)

	rec = env.do(http.MethodDelete, "/products/"+prod.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// the fetch heals the cart instead of returning a dangling line
	rec = env.do(http.MethodGet, "/cart/getCart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)

	rec = env.do(http.MethodGet, "/cart/getCart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	alice := login(t, env, "alice@example.com")
	bob := login(t, env, "bob@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodPost, "/cart/add", alice, map[string]any{
		"productId": prod.ID,
		"quantity":  1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodGet, "/cart/getCart", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)
}

func TestUpdateCartBulkReplace(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")
	p1 := createProduct(t, env, "widget", 9.99)
	p2 := createProduct(t, env, "gadget", 4.50)

	rec := env.do(http.MethodPost, "/cart/add", token, map[string]any{
		"productId": p1.ID,
		"quantity":  5,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPost, "/cart/update", token, map[string]any{
		"items": []map[string]any{
			{"product": p2.ID, "quantity": 2},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, p2.ID, resp.Items[0].Product.ID)
	require.Equal(t, 2, resp.Items[0].Quantity)
}

// The bulk endpoint stores whatever the caller posts, quantity zero
// included, instead of rejecting or erroring on it.
func TestUpdateCartKeepsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodPost, "/cart/update", token, map[string]any{
		"items": []map[string]any{
			{"product": prod.ID, "quantity": 0},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 0, resp.Items[0].Quantity)
}

func TestUpdateQuantityRequiresQuantityField(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodPost, "/cart/add", token, map[string]any{
		"productId": prod.ID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// an absent quantity is a 400, not a silent removal
	rec = env.do(http.MethodPut, "/cart/update-quantity", token, map[string]any{
		"productId": prod.ID,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Product ID and quantity are required", errMessage(t, rec))

	rec = env.do(http.MethodGet, "/cart/getCart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	require.Equal(t, 2, resp.Items[0].Quantity)
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodPost, "/cart/add", token, map[string]any{
		"productId": prod.ID,
		"quantity":  2,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodDelete, "/cart/remove/"+prod.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)

	rec = env.do(http.MethodDelete, "/cart/remove/"+uuid.NewString(), token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found in cart", errMessage(t, rec))

	rec = env.do(http.MethodDelete, "/cart/remove/not-a-uuid", token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	token := login(t, env, "user@example.com")
	prod := createProduct(t, env, "widget", 9.99)

	rec := env.do(http.MethodDelete, "/cart/clear", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodPost, "/cart/add", token, map[string]any{
		"productId": prod.ID,
		"quantity":  4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodDelete, "/cart/clear", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp cartResp
	decode(t, rec, &resp)
	require.Empty(t, resp.Items)

	var count int64
	require.NoError(t, env.Repo.DB.Model(&models.CartItem{}).Count(&count).Error)
	require.Zero(t, count)
}
