package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/contactkeeper/internal/common"
	"github.com/dmitrijs2005/contactkeeper/internal/logging"
	"github.com/dmitrijs2005/contactkeeper/internal/server/models"
	"github.com/dmitrijs2005/contactkeeper/internal/server/services"
	chimid "github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

type AuthService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
}

type ContactService interface {
	Create(ctx context.Context, ownerID string, in services.ContactInput) (*models.Contact, error)
	List(ctx context.Context, ownerID string, page models.PageRequest) (*services.ContactPage, error)
	Search(ctx context.Context, ownerID string, filter models.ContactFilter, page models.PageRequest) (*services.ContactPage, error)
}

// Handlers holds the API endpoints. Protected endpoints are IdentityHandlers
// and must be mounted behind AuthGate.Require.
type Handlers struct {
	auth         AuthService
	contacts     ContactService
	users        UserLookup
	maxPageLimit int
	logger       logging.Logger
}

func NewHandlers(a AuthService, c ContactService, u UserLookup, maxPageLimit int, l logging.Logger) *Handlers {
	return &Handlers{auth: a, contacts: c, users: u, maxPageLimit: maxPageLimit, logger: l}
}

// Signup handles POST /signup.
func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var in services.SignupInput
	if !decodeBody(w, r, &in) {
		return
	}

	res, err := h.auth.Signup(r.Context(), in)
	h.auditAuth(r, "signup", in.Email, err)
	if err != nil {
		writeError(w, r, h.logger, err, "Error registering user")
		return
	}

	writeSuccess(w, http.StatusCreated, "User registered successfully", res)
}

// Login handles POST /login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if !decodeBody(w, r, &in) {
		return
	}

	res, err := h.auth.Login(r.Context(), in)
	h.auditAuth(r, "login", in.Email, err)
	if err != nil {
		writeError(w, r, h.logger, err, "Error logging in")
		return
	}

	writeSuccess(w, http.StatusOK, "Login successful", res)
}

// CreateContact handles POST /contacts.
func (h *Handlers) CreateContact(w http.ResponseWriter, r *http.Request, id Identity) {
	var in services.ContactInput
	if !decodeBody(w, r, &in) {
		return
	}

	contact, err := h.contacts.Create(r.Context(), id.UserID, in)
	if err != nil {
		writeError(w, r, h.logger, err, "Error creating contact")
		return
	}

	writeSuccess(w, http.StatusCreated, "Contact created successfully", map[string]any{"contact": contact})
}

// ListContacts handles GET /contacts?page=&limit=.
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request, id Identity) {
	page, err := h.contacts.List(r.Context(), id.UserID, h.pageRequest(r))
	if err != nil {
		writeError(w, r, h.logger, err, "Error retrieving contacts")
		return
	}

	writeSuccess(w, http.StatusOK, "Contacts retrieved successfully", page)
}

// SearchContacts handles GET /contacts/search?name=&email=&phone=&page=&limit=.
// Without filters the answer is the plain list.
func (h *Handlers) SearchContacts(w http.ResponseWriter, r *http.Request, id Identity) {
	q := r.URL.Query()
	filter := models.ContactFilter{Name: q.Get("name"), Email: q.Get("email"), Phone: q.Get("phone")}

	page, err := h.contacts.Search(r.Context(), id.UserID, filter, h.pageRequest(r))
	if err != nil {
		writeError(w, r, h.logger, err, "Error searching contacts")
		return
	}

	message := "Search completed successfully"
	if page.SearchParams == nil {
		message = "Contacts retrieved successfully"
	}
	writeSuccess(w, http.StatusOK, message, page)
}

// UserDetails handles GET /user/details.
func (h *Handlers) UserDetails(w http.ResponseWriter, r *http.Request, id Identity) {
	user, err := h.users.GetProfile(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeFailure(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, r, h.logger, err, "Error retrieving user details")
		return
	}

	writeSuccess(w, http.StatusOK, "User details retrieved successfully", map[string]any{"user": user})
}

func (h *Handlers) pageRequest(r *http.Request) models.PageRequest {
	q := r.URL.Query()
	return models.ParsePageRequest(q.Get("page"), q.Get("limit"), h.maxPageLimit)
}

func (h *Handlers) auditAuth(r *http.Request, event, email string, err error) {
	RecordAuthAttempt(event, err == nil)
	h.logger.Info(r.Context(), "auth attempt",
		"event", event,
		"email", email,
		"success", err == nil,
		"request_id", chimid.GetReqID(r.Context()),
		"remote_addr", r.RemoteAddr,
	)
}

// decodeBody reads a JSON body into dst. On failure it writes the 400
// response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidBody)
		return false
	}
	return true
}
