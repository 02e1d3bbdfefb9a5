// Contact HTTP handlers.
//
// This file exposes REST endpoints for the contact collection:
//   - GET    /contacts                 (filtered + name-sorted view, paginated, ETag)
//   - GET    /contacts/all             (full collection, newest first)
//   - GET    /contacts/favorites       (favorites row; empty while searching)
//   - GET    /contacts/{id}            (one contact)
//   - POST   /contacts                 (add; gated; Idempotency-Key aware)
//   - PUT    /contacts/{id}            (update)
//   - DELETE /contacts/{id}            (delete; gated)
//   - POST   /contacts/{id}/favorite   (toggle favorite)
//
// Handlers are transport-thin: they bind input, consult the access gate for
// destructive actions, call the contact store, and render through the query
// engine in the search package.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/tbourn/neolink-backend/internal/domain"
	"github.com/tbourn/neolink-backend/internal/http/middleware"
	"github.com/tbourn/neolink-backend/internal/repo"
	"github.com/tbourn/neolink-backend/internal/search"
	"github.com/tbourn/neolink-backend/internal/services"
	"github.com/tbourn/neolink-backend/internal/utils"
)

//
// Service contracts
//

// ContactStore is the contact collection consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use. Mutations may return a
// result together with an error wrapping services.ErrPersist.
type ContactStore interface {
	Add(ctx context.Context, in domain.ContactInput) (domain.Contact, error)
	Update(ctx context.Context, id string, in domain.ContactInput, favorite *bool) (domain.Contact, error)
	Delete(ctx context.Context, id string) error
	ToggleFavorite(ctx context.Context, id string) (domain.Contact, error)
	Snapshot() []domain.Contact
	Get(id string) (domain.Contact, bool)
	Revision() uint64
}

// AccessGate guards add and delete.
type AccessGate interface {
	Lock()
	Unlock(pin string) error
	Locked() bool
	Check() error
}

// ThemeSettings stores the client's accent theme.
type ThemeSettings interface {
	Theme() services.Theme
	SetPreset(ctx context.Context, name string) (services.Theme, error)
	SetCustom(ctx context.Context, color string) (services.Theme, error)
}

// BlobStats reports the persisted size and write time of a blob key.
type BlobStats interface {
	Stats(ctx context.Context, key string) (size int64, updatedAt *time.Time, err error)
}

// IdempotencyStore records contact creations for safe retries.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)
	Record(ctx context.Context, scope, key, contactID string, status int, ttl time.Duration) error
}

//
// Handler wiring
//

// Options carries optional collaborators and settings.
type Options struct {
	// Stats backs GET /stats storage fields; nil omits them.
	Stats BlobStats
	// StoreKey is the blob key reported by GET /stats.
	StoreKey string
	// Idempotency enables replay of POST /contacts; nil disables it.
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
	// Locale orders names in list views.
	Locale language.Tag
}

// Handlers groups the HTTP endpoints of the contact manager.
type Handlers struct {
	store ContactStore
	gate  AccessGate
	theme ThemeSettings
	opts  Options
}

// New constructs and returns a Handlers instance bound to the given services.
func New(store ContactStore, gate AccessGate, theme ThemeSettings, opts Options) *Handlers {
	if opts.IdempotencyTTL <= 0 {
		opts.IdempotencyTTL = 24 * time.Hour
	}
	return &Handlers{store: store, gate: gate, theme: theme, opts: opts}
}

//
// DTOs
//

// ContactRequest is the JSON payload for adding a contact.
type ContactRequest struct {
	Name             string `json:"name" example:"TD Hasan"`
	Mobile           string `json:"mobile" example:"01712345678"`
	ContactID        string `json:"contactId" example:"ID-001"`
	Department       string `json:"department" example:"packer opater"`
	CustomDepartment string `json:"customDepartment,omitempty" example:"Drivers"`
	Address          string `json:"address" example:"Dhaka, Bangladesh"`
	Photo            string `json:"photo,omitempty" example:"https://example.com/me.png"`
}

// UpdateContactRequest is the JSON payload for updating a contact. Every
// editable field is replaced; IsFavorite keeps its value when omitted.
type UpdateContactRequest struct {
	ContactRequest
	IsFavorite *bool `json:"isFavorite,omitempty"`
}

func (r ContactRequest) input() domain.ContactInput {
	return domain.ContactInput{
		Name:             r.Name,
		Mobile:           r.Mobile,
		ContactID:        r.ContactID,
		Department:       domain.Department(r.Department),
		CustomDepartment: r.CustomDepartment,
		Address:          r.Address,
		Photo:            r.Photo,
	}
}

// ContactView is a contact as rendered to clients, with the resolved photo.
type ContactView struct {
	domain.Contact
	DisplayPhoto string `json:"displayPhoto" example:"https://picsum.photos/200/200?u=1"`
}

func view(c domain.Contact) ContactView {
	return ContactView{Contact: c, DisplayPhoto: c.DisplayPhoto()}
}

func views(cs []domain.Contact) []ContactView {
	out := make([]ContactView, 0, len(cs))
	for _, c := range cs {
		out = append(out, view(c))
	}
	return out
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// ListContactsResponse wraps a page of the filtered view.
type ListContactsResponse struct {
	Contacts   []ContactView `json:"contacts"`
	Query      string        `json:"query"`
	Department string        `json:"department"`
	Pagination Pagination    `json:"pagination"`
}

// AllContactsResponse wraps the full collection.
type AllContactsResponse struct {
	Contacts []ContactView `json:"contacts"`
}

// FavoritesResponse wraps the favorites row.
type FavoritesResponse struct {
	Visible   bool          `json:"visible"`
	Favorites []ContactView `json:"favorites"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 50
		maxPageSize     = 200
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// etag derives a weak validator from the store revision and size.
func (h *Handlers) etag() string {
	return fmt.Sprintf(`W/"contacts:%d:%d"`, h.store.Revision(), len(h.store.Snapshot()))
}

// checkETag sets ETag and reports whether a 304 was written.
func (h *Handlers) checkETag(c *gin.Context) bool {
	tag := h.etag()
	c.Header("ETag", tag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == tag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

//
// Handlers
//

// ListContacts godoc
// @ID          listContacts
// @Summary     List contacts (filtered, sorted, paginated)
// @Description Applies the department filter and free-text query, sorts by name (locale-aware) and pages the result.
// @Description Supports weak ETag via If-None-Match and may return 304.
// @Tags        Contacts
// @Produce     json
//
// @Param       q              query   string  false "Case-insensitive match on name or contactId, literal on mobile"
// @Param       department     query   string  false "Exact department or All"  default(All)
// @Param       page           query   int     false "Page number"              minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"           minimum(1) maximum(200) default(50)
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"
//
// @Success     200  {object} handlers.ListContactsResponse
// @Header      200  {string} ETag "Weak ETag for the current collection"
// @Success     304  {string} string "Not Modified"
// @Router      /contacts [get]
func (h *Handlers) ListContacts(c *gin.Context) {
	if h.checkETag(c) {
		return
	}
	page, pageSize := clampPagination(c)

	q := c.Query("q")
	dept := strings.TrimSpace(c.DefaultQuery("department", domain.DepartmentAll))
	if dept == "" {
		dept = domain.DepartmentAll
	}

	filtered := search.Filter(h.store.Snapshot(), search.Params{Query: q, Department: dept}, search.WithLocale(h.opts.Locale))
	start, end, pages := utils.Page(len(filtered), page, pageSize)

	ok(c, http.StatusOK, ListContactsResponse{
		Contacts:   views(filtered[start:end]),
		Query:      q,
		Department: dept,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      len(filtered),
			TotalPages: pages,
			HasNext:    page < pages,
		},
	})
}

// ListAllContacts godoc
// @ID          listAllContacts
// @Summary     Full collection
// @Description Returns every contact in insertion order (newest first), unfiltered.
// @Tags        Contacts
// @Produce     json
// @Success     200  {object} handlers.AllContactsResponse
// @Router      /contacts/all [get]
func (h *Handlers) ListAllContacts(c *gin.Context) {
	if h.checkETag(c) {
		return
	}
	ok(c, http.StatusOK, AllContactsResponse{Contacts: views(h.store.Snapshot())})
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     Favorites row
// @Description Favorited contacts in insertion order. The row is hidden (empty, visible=false) while q is non-empty.
// @Tags        Contacts
// @Produce     json
// @Param       q  query  string  false "Active search text"
// @Success     200  {object} handlers.FavoritesResponse
// @Router      /contacts/favorites [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	if !search.FavoritesVisible(c.Query("q")) {
		ok(c, http.StatusOK, FavoritesResponse{Visible: false, Favorites: []ContactView{}})
		return
	}
	ok(c, http.StatusOK, FavoritesResponse{Visible: true, Favorites: views(search.Favorites(h.store.Snapshot()))})
}

// GetContact godoc
// @ID          getContact
// @Summary     Get a contact
// @Tags        Contacts
// @Produce     json
// @Param       id  path  string  true  "Contact ID"
// @Success     200  {object} handlers.ContactView
// @Failure     404  {object} handlers.ErrorResponse "Contact not found"
// @Router      /contacts/{id} [get]
func (h *Handlers) GetContact(c *gin.Context) {
	ct, found := h.store.Get(c.Param("id"))
	if !found {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "contact not found")
		return
	}
	ok(c, http.StatusOK, view(ct))
}

// AddContact godoc
// @ID          addContact
// @Summary     Add a contact
// @Description Validates the candidate, rejects a duplicate mobile, assigns id and createdAt and prepends it.
// @Description Refused with 423 while the access gate is locked. Supports Idempotency-Key (same key → same contact).
// @Tags        Contacts
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.ContactRequest  true  "Contact candidate"
//
// @Success     201  {object}  handlers.ContactView
// @Header      201  {string}  X-Persist-Warning "Set when the new state could not be saved"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request / validation failed"
// @Failure     409  {object}  handlers.ErrorResponse "Mobile already exists"
// @Failure     423  {object}  handlers.ErrorResponse "Locked"
// @Router      /contacts [post]
func (h *Handlers) AddContact(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.gate.Check(); err != nil {
		failFor(c, err)
		return
	}

	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// Idempotency (replay path) – read validated key if present.
	idemKey, _ := middleware.GetIdempotencyKey(c)
	scope := middleware.IdempotencyScope(c)
	if idemKey != "" && h.opts.Idempotency != nil {
		if rec, err := h.opts.Idempotency.Lookup(ctx, scope, idemKey, time.Now().UTC()); err == nil && rec != nil {
			if prev, found := h.store.Get(rec.ContactID); found {
				c.Header("Idempotency-Replayed", "true")
				ok(c, rec.Status, view(prev))
				return
			}
		}
	}

	ct, err := h.store.Add(ctx, req.input())
	if err != nil && !persistWarning(c, err) {
		failFor(c, err)
		return
	}

	// Idempotency (store path) – best effort.
	if idemKey != "" && h.opts.Idempotency != nil {
		if rerr := h.opts.Idempotency.Record(ctx, scope, idemKey, ct.ID, http.StatusCreated, h.opts.IdempotencyTTL); rerr != nil && !errors.Is(rerr, repo.ErrDuplicate) {
			lg := middleware.LoggerFrom(c)
			lg.Warn().Err(rerr).Msg("idempotency record failed")
		}
	}

	c.Header("Location", c.FullPath()+"/"+ct.ID)
	ok(c, http.StatusCreated, view(ct))
}

// UpdateContact godoc
// @ID          updateContact
// @Summary     Update a contact
// @Description Replaces every editable field; id and createdAt are always kept from the stored record.
// @Tags        Contacts
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Contact ID"
// @Param       body  body  handlers.UpdateContactRequest  true  "Replacement fields"
// @Success     200  {object}  handlers.ContactView
// @Failure     400  {object}  handlers.ErrorResponse "Bad request / validation failed"
// @Failure     404  {object}  handlers.ErrorResponse "Contact not found"
// @Failure     409  {object}  handlers.ErrorResponse "Mobile already exists (strict mode)"
// @Router      /contacts/{id} [put]
func (h *Handlers) UpdateContact(c *gin.Context) {
	id := c.Param("id")

	var req UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	// a nil IsFavorite keeps the stored value
	ct, err := h.store.Update(c.Request.Context(), id, req.input(), req.IsFavorite)
	if err != nil && !persistWarning(c, err) {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, view(ct))
}

// DeleteContact godoc
// @ID          deleteContact
// @Summary     Delete a contact
// @Description Permanently removes the contact. Refused with 423 while the access gate is locked.
// @Tags        Contacts
// @Param       id  path  string  true  "Contact ID"
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "Contact not found"
// @Failure     423  {object} handlers.ErrorResponse "Locked"
// @Router      /contacts/{id} [delete]
func (h *Handlers) DeleteContact(c *gin.Context) {
	if err := h.gate.Check(); err != nil {
		failFor(c, err)
		return
	}
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil && !persistWarning(c, err) {
		failFor(c, err)
		return
	}
	noContent(c)
}

// ToggleFavorite godoc
// @ID          toggleFavorite
// @Summary     Toggle favorite
// @Description Flips isFavorite and returns the updated contact.
// @Tags        Contacts
// @Produce     json
// @Param       id  path  string  true  "Contact ID"
// @Success     200  {object} handlers.ContactView
// @Failure     404  {object} handlers.ErrorResponse "Contact not found"
// @Router      /contacts/{id}/favorite [post]
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	ct, err := h.store.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil && !persistWarning(c, err) {
		failFor(c, err)
		return
	}
	ok(c, http.StatusOK, view(ct))
}
