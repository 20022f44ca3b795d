// Package client is the Go consumer of the storefront API: a thin HTTP
// client plus a cart store that mirrors server-side cart state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/service"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SetToken installs the bearer credential sent in the token header on
// every subsequent request.
func (c *Client) SetToken(token string) { c.token = token }

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("token", c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil {
			apiErr.Message = e.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	var res service.LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Product(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var prod models.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil, &prod); err != nil {
		return nil, err
	}
	return &prod, nil
}

type cartResponse struct {
	Items []service.Line `json:"items"`
}

func (c *Client) GetCart(ctx context.Context) ([]service.Line, error) {
	var res cartResponse
	if err := c.do(ctx, http.MethodGet, "/cart/getCart", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) ([]service.Line, error) {
	var res cartResponse
	err := c.do(ctx, http.MethodPost, "/cart/add", map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) ([]service.Line, error) {
	var res cartResponse
	err := c.do(ctx, http.MethodPut, "/cart/update-quantity", map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// UpdateCart replaces the whole server-side line set with the given one.
func (c *Client) UpdateCart(ctx context.Context, lines []service.ReplaceLine) ([]service.Line, error) {
	var res cartResponse
	err := c.do(ctx, http.MethodPost, "/cart/update", map[string]any{"items": lines}, &res)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID uuid.UUID) ([]service.Line, error) {
	var res cartResponse
	if err := c.do(ctx, http.MethodDelete, "/cart/remove/"+productID.String(), nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) ClearCart(ctx context.Context) ([]service.Line, error) {
	var res cartResponse
	if err := c.do(ctx, http.MethodDelete, "/cart/clear", nil, &res); err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (c *Client) CreateOrder(ctx context.Context, req service.CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID uuid.UUID) error {
	return c.do(ctx, http.MethodPut, "/orders/"+orderID.String()+"/cancel", nil, nil)
}
