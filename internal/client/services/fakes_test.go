package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, client.RunMigrations(context.Background(), db))
	return db
}

// fakeClient implements client.Client and records what it was asked.
type fakeClient struct {
	token string

	authRes *models.AuthResult
	authErr error

	user    *models.User
	userErr error

	contact    *models.Contact
	contactErr error
	lastInput  models.ContactInput

	page       *models.ContactPage
	pageErr    error
	lastFilter models.ContactFilter
	lastPage   int
	lastLimit  int

	pingErr error

	lastSignup   models.SignupRequest
	lastEmail    string
	lastPassword string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Signup(_ context.Context, req models.SignupRequest) (*models.AuthResult, error) {
	f.lastSignup = req
	return f.authRes, f.authErr
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.AuthResult, error) {
	f.lastEmail = email
	f.lastPassword = password
	return f.authRes, f.authErr
}

func (f *fakeClient) UserDetails(context.Context) (*models.User, error) {
	return f.user, f.userErr
}

func (f *fakeClient) CreateContact(_ context.Context, in models.ContactInput) (*models.Contact, error) {
	f.lastInput = in
	return f.contact, f.contactErr
}

func (f *fakeClient) ListContacts(_ context.Context, page, limit int) (*models.ContactPage, error) {
	f.lastPage, f.lastLimit = page, limit
	return f.page, f.pageErr
}

func (f *fakeClient) SearchContacts(_ context.Context, flt models.ContactFilter, page, limit int) (*models.ContactPage, error) {
	f.lastFilter = flt
	f.lastPage, f.lastLimit = page, limit
	return f.page, f.pageErr
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func aliceResult() *models.AuthResult {
	return &models.AuthResult{
		Token: "tok-1",
		User:  &models.User{ID: "u-1", Name: "Alice", Email: "alice@example.com"},
	}
}
