package models

import "time"

// Contact is an address-book entry owned by exactly one user.
type Contact struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address,omitempty"`
	Country   string    `db:"country" json:"country,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ContactFilter holds optional substring filters. Empty fields do not constrain.
type ContactFilter struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (f ContactFilter) IsEmpty() bool {
	return f.Name == "" && f.Email == "" && f.Phone == ""
}
