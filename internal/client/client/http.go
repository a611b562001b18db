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

	"github.com/dmitrijs2005/screenmock/internal/client/models"
	"github.com/dmitrijs2005/screenmock/internal/logging"
	"github.com/google/uuid"
)

const (
	PathLoadUser     = "/load-user"
	PathUserMockups  = "/sm-user-mockups"
	PathGenerate     = "/generate-mockup-html"
	PathEdit         = "/edit-mockup-html"
	PathGetMockup    = "/get-mockup"
	RequestIDHeader  = "X-Request-Id"
	maxErrorBodySize = 64 << 10
)

type HTTPClient struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient builds a client for baseURL. A nil httpClient means
// http.DefaultClient.
func NewHTTPClient(baseURL string, tokens TokenSource, httpClient *http.Client, logger logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    httpClient,
		logger:  logger.With("module", "remote_client"),
	}
}

// Do performs one authenticated JSON call. body may be nil; out may be nil
// when the response body is not needed.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrAuthTokenMissing
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug(ctx, "request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := decodeRequestError(resp)
		c.logger.Warn(ctx, "request failed", "path", path, "status", resp.StatusCode, "request_id", requestID)
		return reqErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeRequestError(resp *http.Response) *RequestError {
	reqErr := &RequestError{Status: resp.StatusCode, Message: genericRequestMessage(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil || len(raw) == 0 {
		return reqErr
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return reqErr
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		reqErr.Message = msg
	}
	return reqErr
}

func (c *HTTPClient) LoadUser(ctx context.Context) (*models.Credits, error) {
	var credits models.Credits
	if err := c.Do(ctx, http.MethodGet, PathLoadUser, nil, &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

func (c *HTTPClient) ListMockups(ctx context.Context) ([]models.MockupSummary, error) {
	var list []models.MockupSummary
	if err := c.Do(ctx, http.MethodGet, PathUserMockups, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.MockupSummary{}
	}
	return list, nil
}

func (c *HTTPClient) GenerateMockup(ctx context.Context, req models.GenerateRequest) (*models.MockupResponse, error) {
	return c.newMockupCall(ctx, http.MethodPost, PathGenerate, req)
}

func (c *HTTPClient) EditMockup(ctx context.Context, req models.EditRequest) (*models.MockupResponse, error) {
	return c.newMockupCall(ctx, http.MethodPut, PathEdit, req)
}

// GetMockup fetches a stored mockup. The service may echo only the markup,
// so an empty ScreenID is left for the caller to fill in.
func (c *HTTPClient) GetMockup(ctx context.Context, screenID string) (*models.MockupResponse, error) {
	path := PathGetMockup + "?screenId=" + url.QueryEscape(screenID)
	return c.mockupCall(ctx, http.MethodGet, path, nil)
}

func (c *HTTPClient) mockupCall(ctx context.Context, method, path string, body any) (*models.MockupResponse, error) {
	var resp models.MockupResponse
	if err := c.Do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// newMockupCall is mockupCall for endpoints that mint a screen id.
func (c *HTTPClient) newMockupCall(ctx context.Context, method, path string, body any) (*models.MockupResponse, error) {
	resp, err := c.mockupCall(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if resp.ScreenID == "" {
		return nil, errors.New("malformed response: missing screenId")
	}
	return resp, nil
}
