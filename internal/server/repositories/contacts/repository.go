package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

// Repository is the contact store. Every read is scoped to one owner.
type Repository interface {
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Count(ctx context.Context, ownerID string, filter models.ContactFilter) (int, error)
	List(ctx context.Context, ownerID string, filter models.ContactFilter, limit, offset int) ([]models.Contact, error)
}
