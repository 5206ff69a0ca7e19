package cli

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeAuth struct {
	mu sync.Mutex

	session *models.Session
	err     error

	lastSignup   models.SignupRequest
	lastEmail    string
	lastPassword string

	user    *models.User
	userErr error

	restoreErr error

	pingErr   error
	pings     int
	logoutErr error
	loggedOut bool
}

func (f *fakeAuth) Signup(_ context.Context, req models.SignupRequest) (*models.Session, error) {
	f.lastSignup = req
	return f.session, f.err
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.Session, error) {
	f.lastEmail, f.lastPassword = email, string(password)
	return f.session, f.err
}

func (f *fakeAuth) Restore(context.Context) (*models.Session, error) {
	return f.session, f.restoreErr
}

func (f *fakeAuth) Me(context.Context) (*models.User, error) { return f.user, f.userErr }

func (f *fakeAuth) Logout(context.Context) error {
	f.loggedOut = true
	return f.logoutErr
}

func (f *fakeAuth) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAuth) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

type fakeContacts struct {
	added   models.ContactInput
	contact *models.Contact

	page       *models.ContactPage
	lastFilter models.ContactFilter
	lastPage   int
	lastLimit  int

	err error
}

func (f *fakeContacts) Add(_ context.Context, in models.ContactInput) (*models.Contact, error) {
	f.added = in
	return f.contact, f.err
}

func (f *fakeContacts) List(_ context.Context, page, limit int) (*models.ContactPage, error) {
	f.lastPage, f.lastLimit = page, limit
	return f.page, f.err
}

func (f *fakeContacts) Search(_ context.Context, flt models.ContactFilter, page, limit int) (*models.ContactPage, error) {
	f.lastFilter = flt
	f.lastPage, f.lastLimit = page, limit
	return f.page, f.err
}

// newTestApp builds an App that reads answers from input and writes to the
// returned buffer.
func newTestApp(auth *fakeAuth, contacts *fakeContacts, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		logger:         nopLogger{},
		authService:    auth,
		contactService: contacts,
		reader:         bufio.NewReader(strings.NewReader(input)),
		out:            &out,
	}, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func alice() *models.Session {
	return &models.Session{Token: "tok", UserID: "u-1", Name: "Alice", Email: "alice@example.com"}
}

func openTestDB(t *testing.T) (*sql.DB, error) {
	t.Helper()
	return sql.Open("sqlite", ":memory:")
}
