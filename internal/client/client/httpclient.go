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
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/sethvargo/go-retry"
)

const (
	defaultRetries   = 2
	defaultRetryBase = 200 * time.Millisecond
)

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  []common.FieldError `json:"errors"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.RWMutex
	accessToken string

	retries   uint64
	retryBase time.Duration
}

// NewHTTPClient builds a client for the API at baseURL. timeout bounds each
// HTTP round trip.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retries:    defaultRetries,
		retryBase:  defaultRetryBase,
	}, nil
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

func (c *HTTPClient) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResult, error) {
	var res models.AuthResult
	if err := c.do(ctx, http.MethodPost, "/signup", nil, req, false, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, false, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) UserDetails(ctx context.Context) (*models.User, error) {
	var res struct {
		User *models.User `json:"user"`
	}
	if err := c.get(ctx, "/user/details", nil, &res); err != nil {
		return nil, err
	}
	return res.User, nil
}

// CreateContact is not retried: a lost response could otherwise create the
// same contact twice.
func (c *HTTPClient) CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	var res struct {
		Contact *models.Contact `json:"contact"`
	}
	if err := c.do(ctx, http.MethodPost, "/contacts", nil, in, true, &res); err != nil {
		return nil, err
	}
	return res.Contact, nil
}

func (c *HTTPClient) ListContacts(ctx context.Context, page, limit int) (*models.ContactPage, error) {
	var res models.ContactPage
	if err := c.get(ctx, "/contacts", pageQuery(page, limit), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SearchContacts(ctx context.Context, f models.ContactFilter, page, limit int) (*models.ContactPage, error) {
	q := pageQuery(page, limit)
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	if f.Email != "" {
		q.Set("email", f.Email)
	}
	if f.Phone != "" {
		q.Set("phone", f.Phone)
	}

	var res models.ContactPage
	if err := c.get(ctx, "/contacts/search", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Ping reports ErrUnavailable unless /health answers 200.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// get retries a read while the server is unavailable.
func (c *HTTPClient) get(ctx context.Context, path string, q url.Values, out any) error {
	b := retry.WithMaxRetries(c.retries, retry.NewExponential(c.retryBase))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, q, nil, true, out)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *HTTPClient) do(ctx context.Context, method, path string, q url.Values, body any, withToken bool, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		if t := c.token(); t != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerValue(t))
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	return c.decode(resp, out)
}

func (c *HTTPClient) decode(resp *http.Response, out any) error {
	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrUnavailable
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: %s", ErrUnauthorized, env.Message)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message, Fields: env.Errors}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unexpected response data: %w", err)
	}
	return nil
}
