// Package contacts stores address-book entries in PostgreSQL.
package contacts

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/dbx"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {

	query :=
		`INSERT INTO contacts (id, user_id, name, email, phone, address, country)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.ID, contact.UserID, contact.Name, contact.Email, contact.Phone, contact.Address, contact.Country).
		Scan(&contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return contact, nil
}

func (r *PostgresRepository) Count(ctx context.Context, ownerID string, filter models.ContactFilter) (int, error) {
	where, args := whereClause(ownerID, filter)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts WHERE "+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return total, nil
}

// List returns one page of the owner's contacts, newest first.
func (r *PostgresRepository) List(ctx context.Context, ownerID string, filter models.ContactFilter, limit, offset int) ([]models.Contact, error) {
	where, args := whereClause(ownerID, filter)

	n := len(args)
	query := "SELECT id, user_id, name, email, phone, address, country, created_at, updated_at FROM contacts WHERE " + where +
		" ORDER BY created_at DESC, id DESC LIMIT $" + strconv.Itoa(n+1) + " OFFSET $" + strconv.Itoa(n+2)
	args = append(args, limit, offset)

	contacts, err := dbx.SelectAll[models.Contact](ctx, r.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return contacts, nil
}

// whereClause always starts with the owner predicate; each non-empty filter
// adds a case-insensitive substring match.
func whereClause(ownerID string, filter models.ContactFilter) (string, []any) {
	conds := []string{"user_id = $1"}
	args := []any{ownerID}

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+escapeLike(value)+"%")
		conds = append(conds, column+" ILIKE $"+strconv.Itoa(len(args))+` ESCAPE '\'`)
	}
	add("name", filter.Name)
	add("email", filter.Email)
	add("phone", filter.Phone)

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
