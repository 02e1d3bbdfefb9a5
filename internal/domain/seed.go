package domain

import "time"

// SeedContacts returns the collection used when no persisted collection can
// be read. The first record is created at now, the second 100s earlier.
func SeedContacts(now time.Time) []Contact {
	now = now.UTC()
	return []Contact{
		{
			ID:         "1",
			Name:       "TD Hasan",
			Mobile:     "01712345678",
			ContactID:  "ID-001",
			Department: DepartmentSeniorPacker,
			Address:    "Dhaka, Bangladesh",
			Photo:      "https://picsum.photos/200/200?random=1",
			IsFavorite: true,
			CreatedAt:  now,
		},
		{
			ID:         "2",
			Name:       "Alex Neo",
			Mobile:     "01888776655",
			ContactID:  "ID-002",
			Department: DepartmentPacker,
			Address:    "Cyber City",
			Photo:      "https://picsum.photos/200/200?random=2",
			CreatedAt:  now.Add(-100 * time.Second),
		},
	}
}
