package spiritx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kestrel7/stockpile/internal/catalog"
)

// Gateway defines the remote catalog operations. It is implemented by
// *Client and can be substituted in tests.
type Gateway interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	CreateProduct(ctx context.Context, draft catalog.Draft, categoryID int) (catalog.Product, error)
	UpdateProduct(ctx context.Context, id int64, changes catalog.Changes) (catalog.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// Ensure Client implements Gateway at compile time.
var _ Gateway = (*Client)(nil)

// ErrUnauthorized is returned when the API rejects the auth token.
var ErrUnauthorized = errors.New("unauthorized")

// Client talks to the catalog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string

	mu    sync.RWMutex
	token string
}

const (
	defaultUserAgent = "stockpile/0.1"
	requestTimeout   = 15 * time.Second
)

// NewClient builds a Client for the given base URL, e.g.
// "https://app.spiritx.co.nz/api".
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// SetToken installs the auth token attached to subsequent requests. An empty
// value clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Login authenticates and returns the issued token with the account email.
// It never sends the stored token.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	if c == nil {
		return Credentials{}, fmt.Errorf("client is nil")
	}
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return Credentials{}, fmt.Errorf("encode login: %w", err)
	}

	var payload loginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "application/json", bytes.NewReader(body), false, &payload); err != nil {
		return Credentials{}, err
	}
	if strings.TrimSpace(payload.Token.Token) == "" {
		return Credentials{}, fmt.Errorf("login response carried no token")
	}
	return Credentials{Token: payload.Token.Token, Email: payload.User.Email}, nil
}

// ListProducts retrieves the full product list.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []wireProduct
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, true, &payload); err != nil {
		return nil, err
	}
	products := make([]catalog.Product, 0, len(payload))
	for _, w := range payload {
		p, err := w.toDomain()
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", w.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

// CreateProduct submits a validated draft and returns the server's canonical
// record, including the assigned identifier.
func (c *Client) CreateProduct(ctx context.Context, draft catalog.Draft, categoryID int) (catalog.Product, error) {
	if c == nil {
		return catalog.Product{}, fmt.Errorf("client is nil")
	}

	fields := map[string]string{
		"title":       draft.Title,
		"price":       draft.Price,
		"category_id": strconv.Itoa(categoryID),
	}
	if draft.Description != "" {
		fields["description"] = draft.Description
	}

	body, contentType, err := encodeMultipart(fields, draft.ImagePath)
	if err != nil {
		return catalog.Product{}, err
	}

	var payload wireProduct
	if err := c.do(ctx, http.MethodPost, "/products", contentType, body, true, &payload); err != nil {
		return catalog.Product{}, err
	}
	return payload.toDomain()
}

// UpdateProduct sends only the changed fields for the given identifier using
// the API's _method=PUT form convention and returns the updated record.
func (c *Client) UpdateProduct(ctx context.Context, id int64, changes catalog.Changes) (catalog.Product, error) {
	if c == nil {
		return catalog.Product{}, fmt.Errorf("client is nil")
	}
	if changes.Empty() {
		return catalog.Product{}, fmt.Errorf("update for product %d has no changes", id)
	}

	fields := map[string]string{"_method": "PUT"}
	if changes.Title != nil {
		fields["title"] = *changes.Title
	}
	if changes.Description != nil {
		fields["description"] = *changes.Description
	}
	if changes.Price != nil {
		fields["price"] = *changes.Price
	}
	imagePath := ""
	if changes.ImagePath != nil {
		imagePath = *changes.ImagePath
	}

	body, contentType, err := encodeMultipart(fields, imagePath)
	if err != nil {
		return catalog.Product{}, err
	}

	var payload wireProduct
	path := fmt.Sprintf("/products/%d", id)
	if err := c.do(ctx, http.MethodPost, path, contentType, body, true, &payload); err != nil {
		return catalog.Product{}, err
	}
	return payload.toDomain()
}

// DeleteProduct removes the product with the given identifier.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	path := fmt.Sprintf("/products/%d", id)
	return c.do(ctx, http.MethodDelete, path, "", nil, true, nil)
}

// encodeMultipart builds a multipart form body from plain fields plus an
// optional product_image file part read from imagePath.
func encodeMultipart(fields map[string]string, imagePath string) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("encode field %s: %w", name, err)
		}
	}

	if strings.TrimSpace(imagePath) != "" {
		file, err := os.Open(imagePath)
		if err != nil {
			return nil, "", fmt.Errorf("open image: %w", err)
		}
		part, err := writer.CreateFormFile("product_image", filepath.Base(imagePath))
		if err != nil {
			file.Close()
			return nil, "", fmt.Errorf("encode image part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			file.Close()
			return nil, "", fmt.Errorf("read image: %w", err)
		}
		file.Close()
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finish form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, auth bool, dest any) error {
	// The API lives under a base path ("/api"), so the relative path is
	// appended rather than resolved absolute.
	reqURL := *c.baseURL
	reqURL.Path = c.baseURL.Path + path

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		if token := c.currentToken(); token != "" {
			req.Header.Set("token", token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("api %s: %w", path, ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		detail := readErrorDetail(resp.Body)
		if detail != "" {
			return fmt.Errorf("api %s returned status %d: %s", path, resp.StatusCode, detail)
		}
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorDetail extracts a short human-readable message from an error body.
func readErrorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 512))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		return nil, fmt.Errorf("api base url is empty")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", base, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
