package client

import (
	"context"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

// Client is the contactkeeper API as seen by the CLI. Calls after SetToken
// carry the bearer token; Signup, Login and Ping never do.
type Client interface {
	SetToken(token string)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResult, error)
	Login(ctx context.Context, email, password string) (*models.AuthResult, error)
	UserDetails(ctx context.Context) (*models.User, error)
	CreateContact(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	ListContacts(ctx context.Context, page, limit int) (*models.ContactPage, error)
	SearchContacts(ctx context.Context, f models.ContactFilter, page, limit int) (*models.ContactPage, error)
	Ping(ctx context.Context) error
}
