package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeUsersRepo keeps users in memory keyed by id.
type fakeUsersRepo struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	err   error
	calls int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	cp := *u
	cp.CreatedAt, cp.UpdatedAt = now, now
	f.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}

type listCall struct {
	ownerID       string
	filter        models.ContactFilter
	limit, offset int
}

// fakeContactsRepo returns canned results and records what it was asked.
type fakeContactsRepo struct {
	created  []*models.Contact
	total    int
	rows     []models.Contact
	countErr error
	listErr  error

	countFilters []models.ContactFilter
	listCalls    []listCall
}

func (f *fakeContactsRepo) Create(ctx context.Context, c *models.Contact) (*models.Contact, error) {
	out := *c
	out.CreatedAt = time.Now().UTC()
	out.UpdatedAt = out.CreatedAt
	f.created = append(f.created, &out)
	return &out, nil
}

func (f *fakeContactsRepo) Count(ctx context.Context, ownerID string, filter models.ContactFilter) (int, error) {
	f.countFilters = append(f.countFilters, filter)
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.total, nil
}

func (f *fakeContactsRepo) List(ctx context.Context, ownerID string, filter models.ContactFilter, limit, offset int) ([]models.Contact, error) {
	f.listCalls = append(f.listCalls, listCall{ownerID: ownerID, filter: filter, limit: limit, offset: offset})
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	c *fakeContactsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Contacts(db dbx.DBTX) contacts.Repository     { return m.c }
