package models

import (
	"fmt"
	"time"
)

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	Country   string    `json:"country,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// String renders a contact as one line of CLI output.
func (c Contact) String() string {
	s := fmt.Sprintf("%s | %s | %s", c.Name, c.Phone, c.Email)
	if c.Country != "" {
		s += " | " + c.Country
	}
	return s
}

// ContactInput is the body of POST /contacts.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
}

type ContactFilter struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
	Limit       int `json:"limit"`
}

// ContactPage is the data of GET /contacts and GET /contacts/search.
type ContactPage struct {
	Contacts     []Contact      `json:"contacts"`
	SearchParams *ContactFilter `json:"searchParams,omitempty"`
	Pagination   Pagination     `json:"pagination"`
}
