package services

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/tbourn/neolink-backend/internal/domain"
)

// seedFile is the YAML document accepted by LoadSeedFile.
//
//	contacts:
//	  - name: TD Hasan
//	    mobile: "01712345678"
//	    department: packer opater
type seedFile struct {
	Contacts []domain.Contact `yaml:"contacts"`
}

// LoadSeedFile reads a YAML seed collection from path.
//
// Records without an id get a fresh UUID and records without createdAt are
// stamped with now. Every record must pass the same checks as Add, and
// mobiles must be unique within the file.
func LoadSeedFile(path string, now time.Time) ([]domain.Contact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var doc seedFile
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode seed %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(doc.Contacts))
	out := make([]domain.Contact, 0, len(doc.Contacts))
	for i, c := range doc.Contacts {
		in, err := normalizeInput(toInput(c))
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		if _, dup := seen[in.Mobile]; dup {
			return nil, fmt.Errorf("seed record %d: %w", i, ErrDuplicateMobile)
		}
		seen[in.Mobile] = struct{}{}

		rec := fromInput(in)
		rec.ID = strings.TrimSpace(c.ID)
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		rec.IsFavorite = c.IsFavorite
		rec.CreatedAt = c.CreatedAt.UTC()
		if c.CreatedAt.IsZero() {
			rec.CreatedAt = now.UTC()
		}
		out = append(out, rec)
	}
	return out, nil
}
