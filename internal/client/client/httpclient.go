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
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/sethvargo/go-retry"
)

// Client is the taskkeeper API as seen by the CLI.
type Client interface {
	Health(ctx context.Context) error
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (*models.User, error)

	CreateTask(ctx context.Context, t *models.NewTask) (*models.Task, error)
	ListTasks(ctx context.Context) ([]*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, p *models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) (*models.Task, error)

	Token() string
	SetToken(token string)
}

const (
	defaultGetRetries = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// HTTPClient talks to the REST API over net/http. It is safe for concurrent
// use; the session token is guarded by a mutex.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	retries    uint64
	retryDelay time.Duration

	mu    sync.RWMutex
	token string
}

// NewHTTPClient returns a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		retries:    defaultGetRetries,
		retryDelay: defaultRetryDelay,
	}
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type taskEnvelope struct {
	Task *models.Task `json:"task"`
}

type taskList struct {
	Tasks []*models.Task `json:"tasks"`
}

type errorBody struct {
	Errors []models.FieldError `json:"errors"`
}

// Health checks that the server is up.
func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Register creates an account and keeps the returned token.
func (c *HTTPClient) Register(ctx context.Context, email, password string) (*models.User, error) {
	var s session
	if err := c.do(ctx, http.MethodPost, "/users", credentials{Email: email, Password: password}, &s); err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return s.User, nil
}

// Login opens a new session. Any 400 answer means the credentials were
// rejected.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	var s session
	err := c.do(ctx, http.MethodPost, "/users/login", credentials{Email: email, Password: password}, &s)
	if errors.Is(err, ErrBadRequest) {
		return nil, common.ErrAuth
	}
	if err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return s.User, nil
}

// Logout revokes the current token on the server and forgets it locally.
func (c *HTTPClient) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/users/me/token", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, t *models.NewTask) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", t, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]*models.Task, error) {
	var l taskList
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &l); err != nil {
		return nil, err
	}
	return l.Tasks, nil
}

func (c *HTTPClient) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var e taskEnvelope
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &e); err != nil {
		return nil, err
	}
	return e.Task, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, p *models.TaskPatch) (*models.Task, error) {
	var e taskEnvelope
	if err := c.do(ctx, http.MethodPatch, taskPath(id), p, &e); err != nil {
		return nil, err
	}
	return e.Task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) (*models.Task, error) {
	var e taskEnvelope
	if err := c.do(ctx, http.MethodDelete, taskPath(id), nil, &e); err != nil {
		return nil, err
	}
	return e.Task, nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

// do sends one API call. GET requests are retried while the server reports
// 503 or cannot be reached; other methods are sent once.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	if method != http.MethodGet || c.retries == 0 {
		return c.send(ctx, method, path, payload, out)
	}

	backoff := retry.WithMaxRetries(c.retries, retry.NewConstant(c.retryDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.send(ctx, method, path, payload, out)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, out any) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthTokenHeaderName, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Join(ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
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

// statusError maps a non-2xx response to an error.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode == http.StatusServiceUnavailable:
		return ErrUnavailable
	case resp.StatusCode == http.StatusBadRequest:
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && len(eb.Errors) > 0 {
			return &ValidationError{Fields: eb.Errors}
		}
		return ErrBadRequest
	default:
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
