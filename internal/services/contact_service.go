// Package services – ContactService
//
// This file implements ContactService, the sole owner of the contact
// collection. It validates candidates, enforces mobile uniqueness, keeps the
// collection in newest-first insertion order and, after every successful
// mutation, writes the full collection to the blob store under a fixed key.
//
// All mutations and snapshot reads are serialized by a mutex, so concurrent
// HTTP handlers observe the same one-at-a-time model as a single client.
// Persistence is best-effort: a failed write leaves the in-memory mutation in
// place and is reported as an error wrapping ErrPersist.
//
// Observability: mutations are OpenTelemetry-instrumented and counted in
// contacts_mutations_total.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/neolink-backend/internal/domain"
	"github.com/tbourn/neolink-backend/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BlobStore is the key-value persistence boundary. Get returns
// repo.ErrNotFound when the key is absent.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// ContactService holds the canonical contact collection.
type ContactService struct {
	// Blobs persists the serialized collection.
	Blobs BlobStore
	// Key is the blob key holding the collection.
	Key string
	// SeedPath optionally points at a YAML seed used instead of the built-in one.
	SeedPath string
	// StrictMobileOnUpdate rejects updates that reuse another contact's mobile.
	StrictMobileOnUpdate bool

	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() string

	mu       sync.Mutex
	contacts []domain.Contact
	rev      uint64
}

// NewContactService constructs an empty ContactService. Call Load before use.
func NewContactService(blobs BlobStore, key string) *ContactService {
	return &ContactService{
		Blobs: blobs,
		Key:   key,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

func (s *ContactService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *ContactService) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Load initializes the collection from the blob store.
//
// An absent key, an unparsable value, a JSON null or a collection that fails
// checkCollection fall back to the seed collection, which is then written
// back. A failure to read the store (other than not-found) is returned as-is
// and leaves the collection empty, so a transient read error never overwrites
// persisted data with the seed.
func (s *ContactService) Load(ctx context.Context) error {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Load", trace.WithAttributes(attribute.String("blob.key", s.Key)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.Blobs.Get(ctx, s.Key)
	switch {
	case err == nil:
		var decoded *[]domain.Contact
		jerr := json.Unmarshal(raw, &decoded)
		if jerr == nil && decoded != nil {
			if verr := s.checkCollection(*decoded); verr != nil {
				span.RecordError(verr)
				span.SetAttributes(attribute.Bool("invalid", true))
				break
			}
			s.contacts = append([]domain.Contact(nil), (*decoded)...)
			s.rev++
			contactsStored.Set(float64(len(s.contacts)))
			span.SetAttributes(attribute.Bool("seeded", false))
			return nil
		}
	case errors.Is(err, repo.ErrNotFound):
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, "read collection")
		return err
	}

	seed, err := s.seed()
	if err != nil {
		span.RecordError(err)
		return err
	}
	s.contacts = seed
	s.rev++
	contactsStored.Set(float64(len(s.contacts)))
	span.SetAttributes(attribute.Bool("seeded", true))
	return s.persistLocked(ctx)
}

// checkCollection applies the invariants every mutation maintains to a
// persisted collection: ids are present and unique and each record passes
// the Add checks. Mobiles must also be unique in strict mode; relaxed updates
// may legitimately leave two contacts sharing one. Records are checked, not
// rewritten.
func (s *ContactService) checkCollection(cs []domain.Contact) error {
	ids := make(map[string]struct{}, len(cs))
	mobiles := make(map[string]struct{}, len(cs))
	for i, c := range cs {
		if c.ID == "" {
			return fmt.Errorf("%w: record %d has no id", ErrValidation, i)
		}
		if _, dup := ids[c.ID]; dup {
			return fmt.Errorf("%w: record %d repeats id %s", ErrValidation, i, c.ID)
		}
		ids[c.ID] = struct{}{}

		if _, err := normalizeInput(toInput(c)); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if s.StrictMobileOnUpdate {
			if _, dup := mobiles[c.Mobile]; dup {
				return fmt.Errorf("record %d: %w: %s", i, ErrDuplicateMobile, c.Mobile)
			}
			mobiles[c.Mobile] = struct{}{}
		}
	}
	return nil
}

func (s *ContactService) seed() ([]domain.Contact, error) {
	if strings.TrimSpace(s.SeedPath) != "" {
		return LoadSeedFile(s.SeedPath, s.now())
	}
	return domain.SeedContacts(s.now()), nil
}

// Add validates in, assigns id/createdAt, and prepends the new contact.
//
// Errors:
//   - ErrValidation when name, mobile or department is missing
//   - ErrDuplicateMobile when another contact already has in.Mobile
//   - ErrPersist (wrapped) when the mutation succeeded but was not persisted
func (s *ContactService) Add(ctx context.Context, in domain.ContactInput) (c domain.Contact, err error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Add")
	defer func() { endSpan(span, err); observe("add", err) }()

	in, err = normalizeInput(in)
	if err != nil {
		return domain.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByMobileLocked(in.Mobile, "") >= 0 {
		return domain.Contact{}, fmt.Errorf("%w: %s", ErrDuplicateMobile, in.Mobile)
	}

	c = fromInput(in)
	c.ID = s.newID()
	c.CreatedAt = s.now()
	c.IsFavorite = false
	span.SetAttributes(attribute.String("contact.id", c.ID))

	next := make([]domain.Contact, 0, len(s.contacts)+1)
	next = append(next, c)
	next = append(next, s.contacts...)
	s.contacts = next
	s.rev++
	contactsStored.Set(float64(len(s.contacts)))

	return c, s.persistLocked(ctx)
}

// Update replaces the editable fields of the contact with id by in. ID and
// CreatedAt are always kept from the stored record. IsFavorite is set to
// *favorite, or kept from the stored record when favorite is nil; the read and
// the write happen under one lock so a concurrent ToggleFavorite is not lost.
// The mobile is not re-checked for uniqueness unless StrictMobileOnUpdate is set.
//
// Errors:
//   - ErrContactNotFound when id is unknown (nothing changes)
//   - ErrValidation, ErrDuplicateMobile (strict mode only), ErrPersist
func (s *ContactService) Update(ctx context.Context, id string, in domain.ContactInput, favorite *bool) (c domain.Contact, err error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Update", trace.WithAttributes(attribute.String("contact.id", id)))
	defer func() { endSpan(span, err); observe("update", err) }()

	in, err = normalizeInput(in)
	if err != nil {
		return domain.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Contact{}, fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}
	if s.StrictMobileOnUpdate && s.indexByMobileLocked(in.Mobile, id) >= 0 {
		return domain.Contact{}, fmt.Errorf("%w: %s", ErrDuplicateMobile, in.Mobile)
	}

	old := s.contacts[i]
	c = fromInput(in)
	c.ID = old.ID
	c.CreatedAt = old.CreatedAt
	c.IsFavorite = old.IsFavorite
	if favorite != nil {
		c.IsFavorite = *favorite
	}

	s.contacts = s.cloneLocked()
	s.contacts[i] = c
	s.rev++

	return c, s.persistLocked(ctx)
}

// Delete removes the contact with id. An unknown id returns
// ErrContactNotFound and changes nothing.
func (s *ContactService) Delete(ctx context.Context, id string) (err error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "Delete", trace.WithAttributes(attribute.String("contact.id", id)))
	defer func() { endSpan(span, err); observe("delete", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}

	next := make([]domain.Contact, 0, len(s.contacts)-1)
	next = append(next, s.contacts[:i]...)
	next = append(next, s.contacts[i+1:]...)
	s.contacts = next
	s.rev++
	contactsStored.Set(float64(len(s.contacts)))

	return s.persistLocked(ctx)
}

// ToggleFavorite flips IsFavorite on the contact with id and returns the
// updated record. An unknown id returns ErrContactNotFound.
func (s *ContactService) ToggleFavorite(ctx context.Context, id string) (c domain.Contact, err error) {
	tr := otel.Tracer("services/ContactService")
	ctx, span := tr.Start(ctx, "ToggleFavorite", trace.WithAttributes(attribute.String("contact.id", id)))
	defer func() { endSpan(span, err); observe("toggle_favorite", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return domain.Contact{}, fmt.Errorf("%w: %s", ErrContactNotFound, id)
	}

	s.contacts = s.cloneLocked()
	s.contacts[i].IsFavorite = !s.contacts[i].IsFavorite
	s.rev++

	return s.contacts[i], s.persistLocked(ctx)
}

// Snapshot returns a copy of the collection in insertion order (newest first).
func (s *ContactService) Snapshot() []domain.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cloneLocked()
}

// Get returns the contact with id.
func (s *ContactService) Get(id string) (domain.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.contacts[i], true
	}
	return domain.Contact{}, false
}

// Revision returns a counter that increases on every successful mutation.
func (s *ContactService) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rev
}

// persistLocked writes the whole collection under s.Key. Caller holds s.mu,
// which keeps blob writes in mutation order.
func (s *ContactService) persistLocked(ctx context.Context) error {
	b, err := json.Marshal(s.contacts)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := s.Blobs.Put(ctx, s.Key, b); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}

func (s *ContactService) cloneLocked() []domain.Contact {
	out := make([]domain.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

func (s *ContactService) indexLocked(id string) int {
	for i := range s.contacts {
		if s.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

// indexByMobileLocked finds a contact with mobile, skipping exceptID.
func (s *ContactService) indexByMobileLocked(mobile, exceptID string) int {
	for i := range s.contacts {
		if s.contacts[i].Mobile == mobile && s.contacts[i].ID != exceptID {
			return i
		}
	}
	return -1
}

// normalizeInput checks required fields and resolves the "other" department
// to its custom text. Mobile is compared verbatim, so it is not rewritten.
func normalizeInput(in domain.ContactInput) (domain.ContactInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || strings.TrimSpace(in.Mobile) == "" {
		return in, fmt.Errorf("%w: name and mobile are required", ErrValidation)
	}

	dept := domain.Department(strings.TrimSpace(string(in.Department)))
	custom := strings.TrimSpace(in.CustomDepartment)
	switch {
	case dept == domain.DepartmentOther:
		if custom == "" {
			return in, fmt.Errorf("%w: custom department is required", ErrValidation)
		}
		in.Department = domain.Department(custom)
		in.CustomDepartment = custom
	case dept == "":
		return in, fmt.Errorf("%w: department is required", ErrValidation)
	default:
		in.Department = dept
		in.CustomDepartment = ""
	}

	in.ContactID = strings.TrimSpace(in.ContactID)
	in.Address = strings.TrimSpace(in.Address)
	in.Photo = strings.TrimSpace(in.Photo)
	return in, nil
}

func toInput(c domain.Contact) domain.ContactInput {
	return domain.ContactInput{
		Name:             c.Name,
		Mobile:           c.Mobile,
		ContactID:        c.ContactID,
		Department:       c.Department,
		CustomDepartment: c.CustomDepartment,
		Address:          c.Address,
		Photo:            c.Photo,
	}
}

func fromInput(in domain.ContactInput) domain.Contact {
	return domain.Contact{
		Name:             in.Name,
		Mobile:           in.Mobile,
		ContactID:        in.ContactID,
		Department:       in.Department,
		CustomDepartment: in.CustomDepartment,
		Address:          in.Address,
		Photo:            in.Photo,
	}
}

// endSpan records err on span. Persist failures leave the span OK since the
// mutation itself succeeded.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		if !errors.Is(err, ErrPersist) {
			span.SetStatus(codes.Error, err.Error())
		}
	}
	span.End()
}
