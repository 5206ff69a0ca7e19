// Package services contains the CLI's application services. They sit between
// the interactive commands and the API client, and keep the local session
// file in step with what the server says.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/contactkeeper/internal/common"
)

// ErrNotLoggedIn is returned by Restore when no session is saved.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup / Login: talk to the server, then save the returned token
//     locally and attach it to subsequent API calls.
//   - Restore: reuse a session saved by an earlier run.
//   - Me: fetch the profile of the logged-in user.
//   - Logout: forget the token locally (tokens are stateless server-side).
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*models.Session, error)
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Restore(ctx context.Context) (*models.Session, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and
// session database.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db, now: time.Now}
}

func (a *authService) getSessionRepo() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (*models.Session, error) {
	res, err := a.client.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.start(ctx, res)
}

// Login sends the credentials and wipes the password buffer afterwards.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	defer common.WipeByteArray(password)

	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	return a.start(ctx, res)
}

func (a *authService) start(ctx context.Context, res *models.AuthResult) (*models.Session, error) {
	if res == nil || res.Token == "" || res.User == nil {
		return nil, errors.New("server returned no token")
	}

	s := &models.Session{
		Token:   res.Token,
		UserID:  res.User.ID,
		Name:    res.User.Name,
		Email:   res.User.Email,
		SavedAt: a.now(),
	}
	if err := a.getSessionRepo().Save(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetToken(s.Token)
	return s, nil
}

func (a *authService) Restore(ctx context.Context) (*models.Session, error) {
	s, err := a.getSessionRepo().Load(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	a.client.SetToken(s.Token)
	return s, nil
}

// Me returns the current profile. A rejected token ends the local session.
func (a *authService) Me(ctx context.Context) (*models.User, error) {
	u, err := a.client.UserDetails(ctx)
	if err != nil {
		return nil, dropOnUnauthorized(ctx, a.client, a.getSessionRepo(), err)
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.getSessionRepo().Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// dropOnUnauthorized forgets the saved session when the server no longer
// accepts its token, and returns err unchanged.
func dropOnUnauthorized(ctx context.Context, c client.Client, repo session.Repository, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		c.SetToken("")
		_ = repo.Clear(ctx)
	}
	return err
}
