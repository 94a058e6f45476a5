// Package apiclient talks to the upstream marketplace REST API. The
// client is constructed with its configuration and passed where
// needed; there is no package-level instance.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/store"
)

var ErrUnauthorized = errors.New("apiclient: unauthorized")

// APIError is a non-2xx upstream response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: upstream returned %d: %s", e.Status, e.Body)
}

type Config struct {
	BaseURL string
	// Timeout bounds every request; zero falls back to 10s.
	Timeout time.Duration
}

type Client struct {
	baseURL string
	httpc   *http.Client
	store   store.Store
	log     *slog.Logger
}

func New(cfg Config, s store.Store, log *slog.Logger) *Client {
	timeout := cfg.Timeout

	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpc:   &http.Client{Timeout: timeout},
		store:   s,
		log:     log,
	}
}

type LoginResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	User         user.User `json:"user"`
}

// Login authenticates upstream and persists the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse

	body := map[string]string{"email": email, "password": password}

	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, false); err != nil {
		return LoginResponse{}, err
	}

	if err := c.store.Set(ctx, store.KeyAuthToken, []byte(out.Token)); err != nil {
		return LoginResponse{}, fmt.Errorf("save token: %w", err)
	}

	if out.RefreshToken != "" {
		if err := c.store.Set(ctx, store.KeyRefreshToken, []byte(out.RefreshToken)); err != nil {
			return LoginResponse{}, fmt.Errorf("save refresh token: %w", err)
		}
	}

	return out, nil
}

func (c *Client) Register(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	var out user.User

	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out, false); err != nil {
		return user.User{}, err
	}

	return out, nil
}

// FetchOpportunities pulls the catalog, narrowed server-side by the
// filter spec's query parameters.
func (c *Client) FetchOpportunities(ctx context.Context, spec opportunity.FilterSpec) ([]opportunity.Opportunity, error) {
	q := url.Values{}

	for _, at := range spec.ArtTypes {
		q.Add("artType", at)
	}

	for _, loc := range spec.Locations {
		q.Add("location", loc)
	}

	if spec.MinPayment > 0 {
		q.Set("minPayment", strconv.FormatFloat(spec.MinPayment, 'f', -1, 64))
	}

	if spec.Query != "" {
		q.Set("q", spec.Query)
	}

	path := "/opportunities"

	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out []opportunity.Opportunity

	if err := c.do(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) FetchProfile(ctx context.Context) (user.User, error) {
	var out user.User

	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out, true); err != nil {
		return user.User{}, err
	}

	return out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.User, error) {
	var out user.User

	if err := c.do(ctx, http.MethodPut, "/profile", req, &out, true); err != nil {
		return user.User{}, err
	}

	return out, nil
}

type UploadResponse struct {
	URL string `json:"url"`
}

// Upload posts a file as multipart form data under the "file" field,
// with the upload kind in "type".
func (c *Client) Upload(ctx context.Context, filename, kind string, data io.Reader) (UploadResponse, error) {
	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)

	if err != nil {
		return UploadResponse{}, err
	}

	if _, err := io.Copy(fw, data); err != nil {
		return UploadResponse{}, err
	}

	if err := mw.WriteField("type", kind); err != nil {
		return UploadResponse{}, err
	}

	if err := mw.Close(); err != nil {
		return UploadResponse{}, err
	}

	var out UploadResponse

	// bytes.Reader so the body is replayable on a refresh retry
	err = c.doRaw(ctx, http.MethodPost, "/upload", bytes.NewReader(buf.Bytes()), mw.FormDataContentType(), &out, true, true)

	if err != nil {
		return UploadResponse{}, err
	}

	return out, nil
}

// do sends a JSON request. Authenticated calls attach the stored
// bearer token; a 401 triggers exactly one refresh-and-retry before
// failing.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, authed bool) error {
	var payload []byte

	if body != nil {
		var err error

		payload, err = json.Marshal(body)

		if err != nil {
			return err
		}
	}

	return c.doRaw(ctx, method, path, bytes.NewReader(payload), "application/json", out, authed, true)
}

func (c *Client) doRaw(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}, authed, allowRefresh bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	if authed {
		token, err := c.store.Get(ctx, store.KeyAuthToken)

		if err == nil && len(token) > 0 {
			req.Header.Set("Authorization", "Bearer "+string(token))
		}
	}

	resp, err := c.httpc.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && authed && allowRefresh {
		// drain before retrying so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)

		if err := c.refresh(ctx); err != nil {
			return ErrUnauthorized
		}

		// bodies are bytes.Readers, rewind before the retry
		if seeker, ok := body.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return err
			}
		}

		c.log.Debug("retrying after token refresh", "method", method, "path", path)

		return c.doRaw(ctx, method, path, body, contentType, out, authed, false)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return &APIError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// refresh exchanges the stored refresh token for a new access token.
func (c *Client) refresh(ctx context.Context) error {
	rt, err := c.store.Get(ctx, store.KeyRefreshToken)

	if err != nil || len(rt) == 0 {
		return ErrUnauthorized
	}

	body, err := json.Marshal(map[string]string{"refreshToken": string(rt)})

	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(body))

	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)

	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ErrUnauthorized
	}

	var out struct {
		Token        string `json:"token"`
		RefreshToken string `json:"refreshToken"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return err
	}

	if err := c.store.Set(ctx, store.KeyAuthToken, []byte(out.Token)); err != nil {
		return err
	}

	if out.RefreshToken != "" {
		if err := c.store.Set(ctx, store.KeyRefreshToken, []byte(out.RefreshToken)); err != nil {
			return err
		}
	}

	return nil
}
