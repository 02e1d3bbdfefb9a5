// Package domain defines the core models of the contact manager: the Contact
// record kept by the in-memory store, its department classification, and the
// persistence rows (Blob, Idempotency) mapped with GORM.
package domain

import (
	"strings"
	"time"
)

// Department is the role category of a contact. The closed set below is
// offered to clients; a contact saved with DepartmentOther carries its
// custom text as the effective department instead.
type Department string

const (
	DepartmentBagPeter     Department = "ব্যাগ পিটার"
	DepartmentPacker       Department = "packer opater"
	DepartmentSeniorPacker Department = "ছিনিয়ার opater"

	// DepartmentOther is the free-text escape value. It is never stored as
	// the effective department; CustomDepartment replaces it on save.
	DepartmentOther Department = "অন্য অন্যান্য"
)

// DepartmentAll is the filter sentinel that matches every department.
const DepartmentAll = "All"

// Departments returns the closed department set in display order.
func Departments() []Department {
	return []Department{
		DepartmentBagPeter,
		DepartmentPacker,
		DepartmentSeniorPacker,
		DepartmentOther,
	}
}

// PlaceholderPhotoBase is the image service used when a contact has no photo.
const PlaceholderPhotoBase = "https://picsum.photos/200/200?u="

// Contact is a personnel record.
//
// Fields:
//   - ID: UUID assigned once at creation; never changes.
//   - Name / Mobile: required; Mobile is unique across the collection.
//   - ContactID: free-form label, not guaranteed unique.
//   - Department: effective department (custom text when "other" was chosen).
//   - CustomDepartment: the free text entered alongside DepartmentOther.
//   - Photo: optional image URI; see DisplayPhoto for the placeholder.
//   - IsFavorite: toggled independently of edits.
//   - CreatedAt: creation instant (UTC); never changes.
type Contact struct {
	ID               string     `json:"id"                         yaml:"id"`
	Name             string     `json:"name"                       yaml:"name"`
	Mobile           string     `json:"mobile"                     yaml:"mobile"`
	ContactID        string     `json:"contactId"                  yaml:"contactId"`
	Department       Department `json:"department"                 yaml:"department"`
	CustomDepartment string     `json:"customDepartment,omitempty" yaml:"customDepartment,omitempty"`
	Address          string     `json:"address"                    yaml:"address"`
	Photo            string     `json:"photo,omitempty"            yaml:"photo,omitempty"`
	IsFavorite       bool       `json:"isFavorite"                 yaml:"isFavorite"`
	CreatedAt        time.Time  `json:"createdAt"                  yaml:"createdAt"`
}

// DisplayPhoto returns Photo, or a deterministic placeholder keyed by ID.
func (c Contact) DisplayPhoto() string {
	if p := strings.TrimSpace(c.Photo); p != "" {
		return p
	}
	return PlaceholderPhotoBase + c.ID
}

// ContactInput is a contact candidate as submitted by a client: every
// editable field, without the store-assigned ID, CreatedAt and IsFavorite.
type ContactInput struct {
	Name             string     `json:"name"`
	Mobile           string     `json:"mobile"`
	ContactID        string     `json:"contactId"`
	Department       Department `json:"department"`
	CustomDepartment string     `json:"customDepartment,omitempty"`
	Address          string     `json:"address"`
	Photo            string     `json:"photo,omitempty"`
}

// Blob is a single value of the key-value persistence boundary. Each key
// holds one self-contained document (e.g. the whole contact collection)
// that is overwritten in full on every write.
type Blob struct {
	Key       string    `gorm:"type:varchar(128);primaryKey"`
	Value     []byte    `gorm:"type:blob;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the database table name for Blob.
func (Blob) TableName() string { return "blobs" }
