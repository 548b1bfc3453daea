package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/AntonZhuravskiy/web-larek/internal/catalog"
	"github.com/AntonZhuravskiy/web-larek/internal/checkout"
)

// CatalogSource fetches the product list from the remote catalog API.
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]catalog.Product, error)
}

// OrderSink submits an assembled order to the remote order endpoint.
// Exactly one attempt is made per call; retries are the caller's decision.
type OrderSink interface {
	SubmitOrder(ctx context.Context, payload checkout.OrderPayload) (OrderResult, error)
}

// OrderResult is the remote confirmation of an accepted order.
type OrderResult struct {
	ID    string  `json:"id"`
	Total float64 `json:"total"`
}

// listResponse is the catalog API's list envelope.
type listResponse struct {
	Total int               `json:"total"`
	Items []catalog.Product `json:"items"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Client talks JSON over HTTP to the catalog/order API. Order submission
// goes through a circuit breaker so a flapping remote fails fast instead of
// tying up the submit flow; the breaker never retries on the caller's
// behalf.
type Client struct {
	baseURL string
	cdnURL  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[OrderResult]
}

func NewClient(baseURL, cdnURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		cdnURL:  strings.TrimRight(cdnURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[OrderResult](gobreaker.Settings{
			Name:    "order-sink",
			Timeout: 30 * time.Second,
		}),
	}
}

// FetchProducts performs one GET against the product list endpoint. Image
// references come back as bare paths and are resolved against the CDN base.
func (c *Client) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build products request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: %w", remoteError(resp))
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode products response: %w", err)
	}

	for i := range list.Items {
		list.Items[i].Image = c.resolveImage(list.Items[i].Image)
	}
	return list.Items, nil
}

// SubmitOrder POSTs the payload to the order endpoint.
func (c *Client) SubmitOrder(ctx context.Context, payload checkout.OrderPayload) (OrderResult, error) {
	return c.breaker.Execute(func() (OrderResult, error) {
		body, err := json.Marshal(payload)
		if err != nil {
			return OrderResult{}, fmt.Errorf("marshal order: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/order", bytes.NewReader(body))
		if err != nil {
			return OrderResult{}, fmt.Errorf("build order request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return OrderResult{}, fmt.Errorf("submit order: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
			return OrderResult{}, fmt.Errorf("submit order: %w", remoteError(resp))
		}

		var result OrderResult
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return OrderResult{}, fmt.Errorf("decode order response: %w", err)
		}
		return result, nil
	})
}

func (c *Client) resolveImage(path string) string {
	if c.cdnURL == "" || path == "" || strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cdnURL + path
}

// remoteError extracts the API's error message, falling back to the HTTP
// status text.
func remoteError(resp *http.Response) error {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return errors.New(body.Error)
	}
	return fmt.Errorf("unexpected status %d", resp.StatusCode)
}
