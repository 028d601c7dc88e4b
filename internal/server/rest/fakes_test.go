package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	validToken = "good-token"
	ownerID    = "5c1a8e8e-2f7d-4d0e-9a55-0d3e1c1e2f00"
)

var alice = &models.User{ID: ownerID, Email: "alice@example.com", PasswordHash: "$2a$10$secret"}

type fakeUsers struct {
	session *services.Session
	err     error
	authErr error

	email, password string
	loggedOutUser   string
	loggedOutToken  string
}

func (f *fakeUsers) Register(ctx context.Context, email, password string) (*services.Session, error) {
	f.email, f.password = email, password
	return f.session, f.err
}

func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.Session, error) {
	f.email, f.password = email, password
	return f.session, f.err
}

func (f *fakeUsers) Logout(ctx context.Context, userID, token string) error {
	f.loggedOutUser, f.loggedOutToken = userID, token
	return f.err
}

func (f *fakeUsers) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	if token != validToken {
		return nil, common.ErrUnauthenticated
	}
	return alice, nil
}

type fakeTasks struct {
	task *models.Task
	list []*models.Task
	err  error

	ownerID string
	id      string
	newTask *models.NewTask
	patch   *models.TaskPatch
}

func (f *fakeTasks) Create(ctx context.Context, ownerID string, task *models.NewTask) (*models.Task, error) {
	f.ownerID, f.newTask = ownerID, task
	return f.task, f.err
}

func (f *fakeTasks) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	f.ownerID = ownerID
	return f.list, f.err
}

func (f *fakeTasks) Get(ctx context.Context, ownerID, id string) (*models.Task, error) {
	f.ownerID, f.id = ownerID, id
	return f.task, f.err
}

func (f *fakeTasks) Update(ctx context.Context, ownerID, id string, patch *models.TaskPatch) (*models.Task, error) {
	f.ownerID, f.id, f.patch = ownerID, id, patch
	return f.task, f.err
}

func (f *fakeTasks) Delete(ctx context.Context, ownerID, id string) (*models.Task, error) {
	f.ownerID, f.id = ownerID, id
	return f.task, f.err
}

func newTestServer(us *fakeUsers, ts *fakeTasks) *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		EndpointAddrHTTP:   "127.0.0.1:0",
		CORSAllowedOrigins: "*",
		ShutdownTimeout:    time.Second,
	}
	return NewServer(cfg, logging.Nop{}, us, ts)
}

// do sends a request through the router. An empty token sends no x-auth header.
func do(s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthTokenHeaderName, token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func httptestRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}
