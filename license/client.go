package license

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codevault/lw-compiler/license/contracts"
	"github.com/codevault/lw-compiler/license/models"
)

const defaultBaseURL = "http://localhost:8721/api"

// ClientConfig configures the license server client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements the ILicenseClient interface over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient initializes a license server client.
func NewClient(config *ClientConfig) contracts.ILicenseClient {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Validate checks a license key against the server.
func (c *Client) Validate(ctx context.Context, req models.ValidateRequest) (*models.ValidateResponse, error) {
	var resp models.ValidateResponse
	if err := c.post(ctx, "/validate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Issue mints new license keys for a build.
func (c *Client) Issue(ctx context.Context, req models.IssueRequest) (*models.IssueResponse, error) {
	var resp models.IssueResponse
	if err := c.post(ctx, "/issue", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error marshalling request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("request canceled: %v", err)
		}
		return fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var apiError models.ServerError
		if err := json.Unmarshal(body, &apiError); err != nil {
			return fmt.Errorf("license server returned status code '%d'", resp.StatusCode)
		}
		return fmt.Errorf("license server request failed with status code '%d' - %s", resp.StatusCode, apiError.Error.Message)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error unmarshalling response: %v", err)
	}
	return nil
}
