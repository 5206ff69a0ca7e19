package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/dmitrijs2005/contactkeeper/internal/server/auth"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeAuth struct {
	signupIn  services.SignupInput
	signupRes *services.AuthResult
	signupErr error

	loginIn  services.LoginInput
	loginRes *services.AuthResult
	loginErr error
}

func (f *fakeAuth) Signup(ctx context.Context, in services.SignupInput) (*services.AuthResult, error) {
	f.signupIn = in
	return f.signupRes, f.signupErr
}

func (f *fakeAuth) Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error) {
	f.loginIn = in
	return f.loginRes, f.loginErr
}

type fakeContacts struct {
	ownerID string
	input   services.ContactInput
	filter  models.ContactFilter
	page    models.PageRequest

	created *models.Contact
	result  *services.ContactPage
	err     error
}

func (f *fakeContacts) Create(ctx context.Context, ownerID string, in services.ContactInput) (*models.Contact, error) {
	f.ownerID, f.input = ownerID, in
	return f.created, f.err
}

func (f *fakeContacts) List(ctx context.Context, ownerID string, page models.PageRequest) (*services.ContactPage, error) {
	f.ownerID, f.page = ownerID, page
	return f.result, f.err
}

func (f *fakeContacts) Search(ctx context.Context, ownerID string, filter models.ContactFilter, page models.PageRequest) (*services.ContactPage, error) {
	f.ownerID, f.filter, f.page = ownerID, filter, page
	if f.err != nil {
		return nil, f.err
	}
	res := *f.result
	if !filter.IsEmpty() {
		res.SearchParams = &filter
	}
	return &res, nil
}

// fakeUsers serves GetProfile from a map; err overrides every lookup.
type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type testEnv struct {
	router   http.Handler
	auth     *fakeAuth
	contacts *fakeContacts
	users    *fakeUsers
	tokens   *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		auth:     &fakeAuth{},
		contacts: &fakeContacts{result: &services.ContactPage{Contacts: []models.Contact{}}},
		users: &fakeUsers{users: map[string]*models.User{
			"u-1": {ID: "u-1", Name: "Alice", Email: "alice@example.com", PasswordHash: "$2a$secret"},
		}},
		tokens: auth.NewTokenService(testSecret, time.Hour),
	}
	handlers := NewHandlers(env.auth, env.contacts, env.users, 100, nopLogger{})
	env.router = NewRouter(RouterConfig{
		Handlers: handlers,
		Gate:     NewAuthGate(env.tokens, env.users, nopLogger{}),
		Health:   NewHealthHandler(okPinger{}, nil),
		Logger:   nopLogger{},
		Secure:   NewSecure(SecureOptions(true)),
		Metrics:  true,
	})
	return env
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := e.tokens.Issue(userID)
	require.NoError(t, err)
	return tok
}

func (e *testEnv) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerValue(token))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type testEnvelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  []common.FieldError `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }
