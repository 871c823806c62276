// Package agent is the HTTP client for the map-agent backend: the model
// registry endpoint and the natural-language map search endpoint.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/atlaschat/atlaschat/internal/models"
)

// APIError carries the backend's status code and, when present, its detail
// message so the UI can prefer server-supplied text.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("request failed (status %d)", e.StatusCode)
}

// Doer abstracts http.Client for tests.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Shared pooled HTTP client. Both endpoints are short request/response
// calls, one client is enough for the whole process.
var (
	sharedHTTPClient *http.Client
	httpClientOnce   sync.Once
)

func getSharedHTTPClient() *http.Client {
	httpClientOnce.Do(func() {
		sharedHTTPClient = &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   4,
				IdleConnTimeout:       90 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
			},
		}
	})
	return sharedHTTPClient
}

type Client struct {
	baseURL string
	client  Doer
}

// NewClient creates a backend client for the given base service address.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  getSharedHTTPClient(),
	}
}

// NewClientWithDoer is NewClient with an injected transport, for tests.
func NewClientWithDoer(baseURL string, doer Doer) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), client: doer}
}

// ListModels fetches the selectable model registry. The returned order is
// the server's; callers default the selection to the first entry.
func (c *Client) ListModels(ctx context.Context) ([]models.ModelOption, error) {
	endpoint := c.baseURL + "/models/openrouter"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build models request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("models request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp)
	}

	var payload modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode models response: %w", err)
	}
	return payload.Data, nil
}

// SearchMap submits one prompt to the map agent. Lenient on shape: a missing
// response text falls back to a placeholder, missing center/places simply
// produce no corresponding update.
func (c *Client) SearchMap(ctx context.Context, prompt, modelName string) (*MapResult, error) {
	body, err := json.Marshal(mapRequest{Prompt: prompt, ModelName: modelName})
	if err != nil {
		return nil, fmt.Errorf("encode map request: %w", err)
	}

	endpoint := c.baseURL + "/agent/map"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build map request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("map request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp)
	}

	var payload mapResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode map response: %w", err)
	}
	return resultFromWire(payload), nil
}

// BaseURL reports the configured base service address.
func (c *Client) BaseURL() string { return c.baseURL }

// Healthy probes the backend health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	u, err := url.JoinPath(c.baseURL, "health")
	if err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) apiError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var detail errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil {
		apiErr.Detail = detail.Detail
	}
	return apiErr
}

func resultFromWire(payload mapResponse) *MapResult {
	res := &MapResult{Response: "No response."}
	if payload.Response != nil && *payload.Response != "" {
		res.Response = *payload.Response
	}

	if payload.Center != nil && payload.Center.Lat != nil && payload.Center.Lon != nil {
		res.Center = &models.Center{
			Lat:   *payload.Center.Lat,
			Lon:   *payload.Center.Lon,
			Label: payload.Center.Label,
		}
	}

	if payload.Places != nil {
		res.HasPlaces = true
		res.Places = make([]models.Place, 0, len(*payload.Places))
		for _, p := range *payload.Places {
			res.Places = append(res.Places, models.Place{
				Name:    p.Name,
				Lat:     p.Lat,
				Lon:     p.Lon,
				Address: p.Address,
			})
		}
	}
	return res
}
