// Package session persists the CLI's login session in the local SQLite file.
// The table holds at most one row; Save replaces it and Clear removes it.
package session

import (
	"context"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

type Repository interface {
	// Load returns common.ErrorNotFound when nobody is logged in.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
