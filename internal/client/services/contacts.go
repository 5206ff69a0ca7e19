package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/client/client"
	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
	"github.com/dmitrijs2005/contactkeeper/internal/client/repositories/session"
)

type ContactService interface {
	Add(ctx context.Context, in models.ContactInput) (*models.Contact, error)
	List(ctx context.Context, page, limit int) (*models.ContactPage, error)
	Search(ctx context.Context, f models.ContactFilter, page, limit int) (*models.ContactPage, error)
}

type contactService struct {
	client client.Client
	db     *sql.DB
}

// NewContactService expects the same client and database as the AuthService,
// so a token rejected here also ends the local session.
func NewContactService(client client.Client, db *sql.DB) ContactService {
	return &contactService{client: client, db: db}
}

func (s *contactService) Add(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.Country = strings.TrimSpace(in.Country)

	c, err := s.client.CreateContact(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return c, nil
}

func (s *contactService) List(ctx context.Context, page, limit int) (*models.ContactPage, error) {
	p, err := s.client.ListContacts(ctx, page, limit)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return p, nil
}

func (s *contactService) Search(ctx context.Context, f models.ContactFilter, page, limit int) (*models.ContactPage, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)

	p, err := s.client.SearchContacts(ctx, f, page, limit)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return p, nil
}

func (s *contactService) fail(ctx context.Context, err error) error {
	return dropOnUnauthorized(ctx, s.client, session.NewSQLiteRepository(s.db), err)
}
