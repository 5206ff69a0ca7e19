package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/contactkeeper/internal/client/models"
)

// Add prompts for the contact fields and creates the contact.
func (a *App) Add(ctx context.Context) error {
	var in models.ContactInput
	prompts := []struct {
		text string
		dst  *string
	}{
		{"Enter contact name", &in.Name},
		{"Enter phone", &in.Phone},
		{"Enter email (optional)", &in.Email},
		{"Enter address (optional)", &in.Address},
		{"Enter country (optional)", &in.Country},
	}

	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.text, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	c, err := a.contactService.Add(ctx, in)
	if err != nil {
		return a.checkSession(err)
	}

	fmt.Fprintf(a.out, "Contact created: %s\n", c.ID)
	return nil
}

// List prints one page of contacts. Args: [page] [limit], or page=N limit=N.
func (a *App) List(ctx context.Context, args []string) error {
	q, err := parseQuery(args, true)
	if err != nil {
		return err
	}

	p, err := a.contactService.List(ctx, q.page, q.limit)
	if err != nil {
		return a.checkSession(err)
	}

	a.printPage(p)
	return nil
}

// Search prints contacts matching name=, email= and phone= filters. A bare
// word is taken as the name filter.
func (a *App) Search(ctx context.Context, args []string) error {
	q, err := parseQuery(args, false)
	if err != nil {
		return err
	}

	p, err := a.contactService.Search(ctx, q.filter, q.page, q.limit)
	if err != nil {
		return a.checkSession(err)
	}

	a.printPage(p)
	return nil
}

func (a *App) printPage(p *models.ContactPage) {
	if len(p.Contacts) == 0 {
		fmt.Fprintln(a.out, "No contacts found")
	}
	for i, c := range p.Contacts {
		n := (p.Pagination.CurrentPage-1)*p.Pagination.Limit + i + 1
		fmt.Fprintf(a.out, "%3d. %s\n", n, c)
	}
	fmt.Fprintf(a.out, "Page %d of %d (%d total)\n",
		p.Pagination.CurrentPage, p.Pagination.TotalPages, p.Pagination.TotalCount)
}

type query struct {
	filter models.ContactFilter
	page   int
	limit  int
}

// parseQuery reads key=value arguments. Bare arguments are page and limit
// when numericPaging is set, otherwise words of the name filter.
func parseQuery(args []string, numericPaging bool) (query, error) {
	var q query
	var positional []string

	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			positional = append(positional, arg)
			continue
		}

		var err error
		switch strings.ToLower(key) {
		case "name":
			q.filter.Name = value
		case "email":
			q.filter.Email = value
		case "phone":
			q.filter.Phone = value
		case "page":
			q.page, err = parseNumber(key, value)
		case "limit":
			q.limit, err = parseNumber(key, value)
		default:
			return q, fmt.Errorf("unknown parameter %q", key)
		}
		if err != nil {
			return q, err
		}
	}

	if !numericPaging {
		if len(positional) > 0 && q.filter.Name == "" {
			q.filter.Name = strings.Join(positional, " ")
		} else if len(positional) > 0 {
			return q, fmt.Errorf("unexpected argument %q", positional[0])
		}
		return q, nil
	}

	for _, p := range positional {
		n, err := parseNumber("page and limit", p)
		if err != nil {
			return q, err
		}
		switch {
		case q.page == 0:
			q.page = n
		case q.limit == 0:
			q.limit = n
		default:
			return q, fmt.Errorf("unexpected argument %q", p)
		}
	}
	return q, nil
}

func parseNumber(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number", key)
	}
	return n, nil
}
