package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactkeeper/internal/server/validation"
	"github.com/google/uuid"
)

// ContactInput is the POST /contacts request body. Email is optional but
// must be well formed when present.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=2"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	Country string `json:"country"`
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.Country = strings.TrimSpace(in.Country)
}

// ContactPage is one page of contacts. SearchParams is set only for a
// filtered search.
type ContactPage struct {
	Contacts     []models.Contact      `json:"contacts"`
	SearchParams *models.ContactFilter `json:"searchParams,omitempty"`
	Pagination   models.Pagination     `json:"pagination"`
}

// ContactService creates, lists and searches contacts. Every call is
// scoped to the owner id resolved by the auth gate.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager, v *validation.Validator) *ContactService {
	return &ContactService{db: db, repomanager: m, validator: v}
}

// Create stores a new contact owned by ownerID.
func (s *ContactService) Create(ctx context.Context, ownerID string, in ContactInput) (*models.Contact, error) {
	in.normalize()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	contact := &models.Contact{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Address: in.Address,
		Country: in.Country,
	}

	contact, err := s.repomanager.Contacts(s.db).Create(ctx, contact)
	if err != nil {
		return nil, fmt.Errorf("error creating contact: %w", err)
	}
	return contact, nil
}

// List returns the owner's contacts, newest first.
func (s *ContactService) List(ctx context.Context, ownerID string, page models.PageRequest) (*ContactPage, error) {
	return s.listAll(ctx, ownerID, page)
}

// Search filters the owner's contacts by case-insensitive substrings.
// Without any filter it falls back to listAll and the result carries no
// search parameters.
func (s *ContactService) Search(ctx context.Context, ownerID string, filter models.ContactFilter, page models.PageRequest) (*ContactPage, error) {
	filter = models.ContactFilter{
		Name:  strings.TrimSpace(filter.Name),
		Email: strings.TrimSpace(filter.Email),
		Phone: strings.TrimSpace(filter.Phone),
	}
	if filter.IsEmpty() {
		return s.listAll(ctx, ownerID, page)
	}

	result, err := s.query(ctx, ownerID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("error searching contacts: %w", err)
	}
	result.SearchParams = &filter
	return result, nil
}

func (s *ContactService) listAll(ctx context.Context, ownerID string, page models.PageRequest) (*ContactPage, error) {
	result, err := s.query(ctx, ownerID, models.ContactFilter{}, page)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	return result, nil
}

// query reads the total and the page inside one read-only snapshot so the
// pagination numbers agree with the rows returned.
func (s *ContactService) query(ctx context.Context, ownerID string, filter models.ContactFilter, page models.PageRequest) (*ContactPage, error) {
	var (
		total int
		rows  []models.Contact
	)

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := dbx.WithTx(ctx, s.db, opts, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Contacts(tx)

		var err error
		total, err = repo.Count(ctx, ownerID, filter)
		if err != nil {
			return err
		}
		// Compare page numbers first: Offset overflows for huge pages.
		if total == 0 || page.Page > (total-1)/page.Limit+1 {
			rows = []models.Contact{}
			return nil
		}
		rows, err = repo.List(ctx, ownerID, filter, page.Limit, page.Offset())
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ContactPage{Contacts: rows, Pagination: models.NewPagination(page, total)}, nil
}
