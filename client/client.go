// Package client is the thin remote data layer the synchronization stores
// sit on: REST queries and mutations against the hosted tables, plus the
// redis-backed realtime feed in feed.go. It owns the snake_case/camelCase
// boundary: responses are decoded as table rows and handed back as domain
// values.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zerontec/rork-nexusdelivery-sub001/domain"
	"github.com/zerontec/rork-nexusdelivery-sub001/models"
	"github.com/zerontec/rork-nexusdelivery-sub001/store"
)

// Client issues authenticated calls against the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	log     zerolog.Logger
}

func New(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// SetToken installs the bearer token used on all subsequent calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (domain.User, error) {
	var resp struct {
		Token string         `json:"token"`
		User  models.Profile `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return domain.User{}, err
	}
	c.token = resp.Token
	return domain.UserFromRow(resp.User), nil
}

// ── Orders ───────────────────────────────────────────────────────────────────

type ordersResponse struct {
	Orders []models.Order `json:"orders"`
}

// FetchOrders runs the role-scoped orders query. Drivers see their own
// deliveries plus the pool of unclaimed ready orders, so their view is the
// union of two backend queries.
func (c *Client) FetchOrders(ctx context.Context, s store.Session) ([]domain.Order, error) {
	switch s.Role {
	case models.RoleBusiness:
		var resp ordersResponse
		if err := c.do(ctx, http.MethodGet, "/api/business/orders", nil, &resp); err != nil {
			return nil, err
		}
		return domain.OrdersFromRows(resp.Orders), nil
	case models.RoleDriver:
		var mine, pool ordersResponse
		if err := c.do(ctx, http.MethodGet, "/api/driver/orders/my-deliveries", nil, &mine); err != nil {
			return nil, err
		}
		if err := c.do(ctx, http.MethodGet, "/api/driver/orders/available", nil, &pool); err != nil {
			return nil, err
		}
		return domain.OrdersFromRows(append(mine.Orders, pool.Orders...)), nil
	default:
		var resp ordersResponse
		if err := c.do(ctx, http.MethodGet, "/api/client/orders", nil, &resp); err != nil {
			return nil, err
		}
		return domain.OrdersFromRows(resp.Orders), nil
	}
}

// UpdateOrderStatus pushes a status transition using the endpoint belonging
// to the session's role.
func (c *Client) UpdateOrderStatus(ctx context.Context, s store.Session, orderID string, status models.OrderStatus) error {
	body := map[string]interface{}{"status": status}
	switch s.Role {
	case models.RoleBusiness:
		return c.do(ctx, http.MethodPut, "/api/business/orders/"+orderID+"/status", body, nil)
	case models.RoleDriver:
		return c.do(ctx, http.MethodPut, "/api/driver/orders/"+orderID+"/status", body, nil)
	default:
		if status != models.StatusCancelled {
			return errors.New("clients can only cancel orders")
		}
		return c.do(ctx, http.MethodPut, "/api/client/orders/"+orderID+"/cancel", nil, nil)
	}
}

// AssignDriver claims the order for the authenticated driver.
func (c *Client) AssignDriver(ctx context.Context, orderID string) error {
	return c.do(ctx, http.MethodPut, "/api/driver/orders/"+orderID+"/claim", nil, nil)
}

// ── Notifications ────────────────────────────────────────────────────────────

func (c *Client) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	var resp struct {
		Notifications []models.Notification `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &resp); err != nil {
		return nil, err
	}
	return domain.NotificationsFromRows(resp.Notifications), nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/"+id+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPut, "/api/notifications/read-all", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/notifications/"+id, nil, nil)
}

// ── Products ─────────────────────────────────────────────────────────────────

func (c *Client) FetchProducts(ctx context.Context, ids []string) ([]domain.Product, error) {
	q := url.Values{}
	for _, id := range ids {
		q.Add("id", id)
	}
	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(resp.Products))
	for _, row := range resp.Products {
		products = append(products, domain.ProductFromRow(row))
	}
	return products, nil
}

// ── Marketplace ──────────────────────────────────────────────────────────────

// FetchBusinesses lists the marketplace. openOnly restricts the result to
// businesses currently accepting orders.
func (c *Client) FetchBusinesses(ctx context.Context, openOnly bool) ([]domain.Business, error) {
	path := "/api/businesses"
	if openOnly {
		path += "?open=true"
	}
	var resp struct {
		Businesses []models.Business `json:"businesses"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	businesses := make([]domain.Business, 0, len(resp.Businesses))
	for _, row := range resp.Businesses {
		businesses = append(businesses, domain.BusinessFromRow(row))
	}
	return businesses, nil
}

func (c *Client) FetchBusiness(ctx context.Context, id string) (domain.Business, error) {
	var resp struct {
		Business models.Business `json:"business"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/businesses/"+id, nil, &resp); err != nil {
		return domain.Business{}, err
	}
	return domain.BusinessFromRow(resp.Business), nil
}

// FetchDriverProfile returns the authenticated driver's own record.
func (c *Client) FetchDriverProfile(ctx context.Context) (domain.Driver, error) {
	var resp struct {
		Driver models.Driver `json:"driver"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/driver/profile", nil, &resp); err != nil {
		return domain.Driver{}, err
	}
	return domain.DriverFromRow(resp.Driver), nil
}

// ── Transport ────────────────────────────────────────────────────────────────

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var payload struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.Unmarshal(data, &payload); err == nil {
			if payload.Error != "" {
				apiErr.Message = payload.Error
			}
			apiErr.Code = payload.Code
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// The client is the concrete remote layer behind every store.
var (
	_ store.OrdersBackend        = (*Client)(nil)
	_ store.NotificationsBackend = (*Client)(nil)
	_ store.ProductsBackend      = (*Client)(nil)
)
