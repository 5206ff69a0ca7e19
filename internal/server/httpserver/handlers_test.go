package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_Created(t *testing.T) {
	env := newTestEnv(t)
	env.auth.signupRes = &services.AuthResult{
		Token: "tok",
		User:  &models.User{ID: "u-9", Name: "Jo", Email: "jo@example.com", PasswordHash: "$2a$hash"},
	}

	rec := env.do(t, http.MethodPost, "/signup", map[string]string{"name": "Jo", "email": "jo@example.com", "password": "secret"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.True(t, body.Success)
	assert.Equal(t, "User registered successfully", body.Message)
	assert.Equal(t, "Jo", env.auth.signupIn.Name)

	var data struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "tok", data.Token)
	assert.Equal(t, "u-9", data.User["id"])
	assert.NotContains(t, data.User, "password")
	assert.NotContains(t, data.User, "passwordHash")
	assert.NotContains(t, rec.Body.String(), "$2a$hash")
}

func TestSignup_ValidationListsEveryField(t *testing.T) {
	env := newTestEnv(t)
	env.auth.signupErr = &common.ValidationError{Fields: []common.FieldError{
		{Field: "name", Message: "Name must be at least 2 characters"},
		{Field: "password", Message: "Password must be at least 6 characters"},
	}}

	rec := env.do(t, http.MethodPost, "/signup", map[string]string{"name": "J", "email": "j@example.com", "password": "123"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.False(t, body.Success)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Len(t, body.Errors, 2)
	assert.Equal(t, "password", body.Errors[1].Field)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.auth.signupErr = common.ErrDuplicateEmail

	rec := env.do(t, http.MethodPost, "/signup", map[string]string{"name": "Al", "email": "a@b.com", "password": "secret"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User with this email already exists", decodeEnvelope(t, rec).Message)
}

func TestSignup_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/signup", `{"name":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeEnvelope(t, rec).Message)
}

func TestSignup_InternalErrorIsNotLeaked(t *testing.T) {
	env := newTestEnv(t)
	env.auth.signupErr = errors.New("pq: connection refused to 10.0.0.5")

	rec := env.do(t, http.MethodPost, "/signup", map[string]string{"name": "Al", "email": "a@b.com", "password": "secret"}, "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error registering user", decodeEnvelope(t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestLogin_FailuresAreByteIdentical(t *testing.T) {
	env := newTestEnv(t)
	env.auth.loginErr = common.ErrInvalidCredentials

	wrong := env.do(t, http.MethodPost, "/login", map[string]string{"email": "alice@example.com", "password": "wrong"}, "")
	unknown := env.do(t, http.MethodPost, "/login", map[string]string{"email": "ghost@example.com", "password": "secret"}, "")

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.Bytes(), unknown.Body.Bytes())
}

func TestLogin_OK(t *testing.T) {
	env := newTestEnv(t)
	env.auth.loginRes = &services.AuthResult{Token: "tok", User: &models.User{ID: "u-1"}}

	rec := env.do(t, http.MethodPost, "/login", map[string]string{"email": "alice@example.com", "password": "secret"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Login successful", decodeEnvelope(t, rec).Message)
	assert.Equal(t, "alice@example.com", env.auth.loginIn.Email)
}

func TestCreateContact_UsesCallerIdentity(t *testing.T) {
	env := newTestEnv(t)
	env.contacts.created = &models.Contact{ID: "c-1", UserID: "u-1", Name: "Al", Phone: "555-1234", CreatedAt: time.Now()}

	rec := env.do(t, http.MethodPost, "/contacts", map[string]string{"name": "Al", "phone": "555-1234"}, env.token(t, "u-1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Contact created successfully", body.Message)
	assert.Equal(t, "u-1", env.contacts.ownerID)
	assert.Equal(t, "555-1234", env.contacts.input.Phone)

	var data struct {
		Contact map[string]any `json:"contact"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "c-1", data.Contact["id"])
	assert.NotContains(t, data.Contact, "userId")
}

func TestCreateContact_Validation(t *testing.T) {
	env := newTestEnv(t)
	env.contacts.err = &common.ValidationError{Fields: []common.FieldError{{Field: "phone", Message: "Phone is required"}}}

	rec := env.do(t, http.MethodPost, "/contacts", map[string]string{"name": "Al"}, env.token(t, "u-1"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []common.FieldError{{Field: "phone", Message: "Phone is required"}}, decodeEnvelope(t, rec).Errors)
}

func TestListContacts_PageParamsAreParsedAndClamped(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/contacts?page=2&limit=5000", nil, env.token(t, "u-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PageRequest{Page: 2, Limit: 100}, env.contacts.page)

	rec = env.do(t, http.MethodGet, "/contacts?page=abc&limit=-1", nil, env.token(t, "u-1"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PageRequest{Page: 1, Limit: 10}, env.contacts.page)
}

func TestListContacts_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	env.contacts.result = &services.ContactPage{
		Contacts:   []models.Contact{},
		Pagination: models.Pagination{CurrentPage: 1, Limit: 10},
	}

	rec := env.do(t, http.MethodGet, "/contacts", nil, env.token(t, "u-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Contacts retrieved successfully", body.Message)
	assert.JSONEq(t, `{"contacts":[],"pagination":{"currentPage":1,"totalPages":0,"totalCount":0,"limit":10}}`, string(body.Data))
}

func TestSearchContacts_Messages(t *testing.T) {
	env := newTestEnv(t)
	tok := env.token(t, "u-1")

	rec := env.do(t, http.MethodGet, "/contacts/search?name=ali&phone=555", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Search completed successfully", body.Message)
	assert.Contains(t, string(body.Data), `"searchParams":{"name":"ali","phone":"555"}`)
	assert.Equal(t, models.ContactFilter{Name: "ali", Phone: "555"}, env.contacts.filter)

	rec = env.do(t, http.MethodGet, "/contacts/search", nil, tok)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeEnvelope(t, rec)
	assert.Equal(t, "Contacts retrieved successfully", body.Message)
	assert.NotContains(t, string(body.Data), "searchParams")
}

func TestSearchContacts_ServiceError(t *testing.T) {
	env := newTestEnv(t)
	env.contacts.err = errors.New("boom")

	rec := env.do(t, http.MethodGet, "/contacts/search?email=x", nil, env.token(t, "u-1"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error searching contacts", decodeEnvelope(t, rec).Message)
}

func TestUserDetails(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/user/details", nil, env.token(t, "u-1"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "User details retrieved successfully", body.Message)
	assert.Contains(t, string(body.Data), `"email":"alice@example.com"`)
	assert.False(t, strings.Contains(rec.Body.String(), "$2a$secret"))
}

func TestUserDetails_NotFoundAfterGate(t *testing.T) {
	env := newTestEnv(t)
	handlers := NewHandlers(env.auth, env.contacts, &fakeUsers{}, 100, nopLogger{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/details", nil)
	handlers.UserDetails(w, req, Identity{UserID: "gone"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}
