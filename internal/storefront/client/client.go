package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"storefront/internal/domain"
)

// Options locates the remote collaborators.
type Options struct {
	AuthURL     string
	ProductsURL string
	ReviewsURL  string
	Timeout     time.Duration
}

// Client talks to the authenticator, product and review services over JSON.
// Transport failures and undecodable bodies wrap domain.ErrUnreachable.
type Client struct {
	opts   Options
	http   *http.Client
	logger *log.Logger
}

func New(opts Options, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		opts: opts,
		http: &http.Client{
			Timeout:   opts.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
	}
}

// LoginResult is what a successful authentication hands back.
type LoginResult struct {
	Token    string
	Username string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Error    string `json:"error"`
}

// Login exchanges credentials for a session token. A reachable authenticator
// that does not answer success=true yields domain.ErrInvalidCredentials; a 5xx
// means the service itself is failing and is reported as unreachable.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var out loginResponse
	status, err := c.do(ctx, http.MethodPost, c.opts.AuthURL, nil, loginRequest{Username: username, Password: password}, &out)
	if status >= http.StatusInternalServerError {
		return nil, fmt.Errorf("%w: authenticator status %d", domain.ErrUnreachable, status)
	}
	if err != nil && (status == 0 || isSuccess(status)) {
		return nil, err
	}
	if err != nil || !isSuccess(status) || !out.Success || out.Token == "" {
		c.logger.Printf("client: login rejected user=%s status=%d", username, status)
		return nil, domain.ErrInvalidCredentials
	}
	name := out.Username
	if name == "" {
		name = username
	}
	return &LoginResult{Token: out.Token, Username: name}, nil
}

type validateResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
}

// ValidateSession asks the authenticator whether token is still known.
func (c *Client) ValidateSession(ctx context.Context, token string) (string, error) {
	var out validateResponse
	status, err := c.do(ctx, http.MethodGet, c.opts.AuthURL, sessionHeader(token), nil, &out)
	if err != nil && (status == 0 || status >= http.StatusInternalServerError) {
		return "", err
	}
	if !isSuccess(status) || !out.Valid {
		return "", domain.ErrInvalidCredentials
	}
	return out.Username, nil
}

type productsResponse struct {
	Products *[]domain.Product `json:"products"`
	Error    string            `json:"error"`
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out productsResponse
	status, err := c.do(ctx, http.MethodGet, c.opts.ProductsURL, nil, nil, &out)
	if err != nil {
		return nil, remoteOr(status, out.Error, err)
	}
	if !isSuccess(status) {
		return nil, &domain.RemoteError{Status: status, Message: out.Error}
	}
	if out.Products == nil {
		return nil, fmt.Errorf("%w: products field missing", domain.ErrUnreachable)
	}
	c.logger.Printf("client: list products count=%d", len(*out.Products))
	return *out.Products, nil
}

// NewProduct is the intake payload; Price is already parsed.
type NewProduct struct {
	Name        string          `json:"name"`
	Price       int64           `json:"price"`
	Category    domain.Category `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description,omitempty"`
}

type productResponse struct {
	Product *domain.Product `json:"product"`
	Error   string          `json:"error"`
}

// CreateProduct submits in with the session token attached.
func (c *Client) CreateProduct(ctx context.Context, token string, in NewProduct) (*domain.Product, error) {
	var out productResponse
	status, err := c.do(ctx, http.MethodPost, c.opts.ProductsURL, sessionHeader(token), in, &out)
	if err != nil {
		return nil, remoteOr(status, out.Error, err)
	}
	if !isSuccess(status) || out.Product == nil {
		return nil, &domain.RemoteError{Status: status, Message: out.Error}
	}
	c.logger.Printf("client: created product id=%d name=%q", out.Product.ID, out.Product.Name)
	return out.Product, nil
}

type reviewsResponse struct {
	Reviews []domain.Review `json:"reviews"`
	Error   string          `json:"error"`
}

// ListReviews fetches reviews, optionally scoped to one product.
func (c *Client) ListReviews(ctx context.Context, productID int64) ([]domain.Review, error) {
	target := c.opts.ReviewsURL
	if productID > 0 {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("parse reviews url: %w", err)
		}
		q := u.Query()
		q.Set("product_id", strconv.FormatInt(productID, 10))
		u.RawQuery = q.Encode()
		target = u.String()
	}
	var out reviewsResponse
	status, err := c.do(ctx, http.MethodGet, target, nil, nil, &out)
	if err != nil {
		return nil, remoteOr(status, out.Error, err)
	}
	if !isSuccess(status) {
		return nil, &domain.RemoteError{Status: status, Message: out.Error}
	}
	return out.Reviews, nil
}

// do performs one request. The returned status is 0 when no response arrived.
// A body that cannot be decoded is reported as domain.ErrUnreachable together
// with the status that was received.
func (c *Client) do(ctx context.Context, method, target string, header http.Header, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", domain.ErrUnreachable, err)
	}
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("client: %s %s error=%v", method, target, err)
		return 0, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Printf("client: %s %s status=%d decode error=%v", method, target, resp.StatusCode, err)
		return resp.StatusCode, fmt.Errorf("%w: decode response: %v", domain.ErrUnreachable, err)
	}
	return resp.StatusCode, nil
}

// remoteOr turns a decode failure on an error status into a RemoteError;
// anything else stays a transport failure.
func remoteOr(status int, msg string, err error) error {
	if status != 0 && !isSuccess(status) && status < http.StatusInternalServerError {
		return &domain.RemoteError{Status: status, Message: msg}
	}
	return err
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func sessionHeader(token string) http.Header {
	h := http.Header{}
	h.Set(domain.SessionTokenHeader, token)
	return h
}
