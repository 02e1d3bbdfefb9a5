package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/neolink-backend/internal/domain"
	"github.com/tbourn/neolink-backend/internal/repo"
	"github.com/tbourn/neolink-backend/internal/search"
)

// ---------- test helpers ----------

func newSvcDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// memBlobs is an in-memory BlobStore with switchable failures.
type memBlobs struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newMemBlobs() *memBlobs { return &memBlobs{data: map[string][]byte{}} }

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return v, nil
}

func (m *memBlobs) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

// newTestStore returns a store over an empty persisted collection with a
// deterministic clock and sequential ids.
func newTestStore(t *testing.T, blobs BlobStore) *ContactService {
	t.Helper()
	s := NewContactService(blobs, "neolink_contacts")
	clock := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	s.Now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	n := 0
	s.NewID = func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
	return s
}

func loadEmpty(t *testing.T, s *ContactService, blobs *memBlobs) {
	t.Helper()
	blobs.data[s.Key] = []byte("[]")
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func mustAdd(t *testing.T, s *ContactService, name, mobile, dept string) domain.Contact {
	t.Helper()
	c, err := s.Add(context.Background(), domain.ContactInput{Name: name, Mobile: mobile, Department: domain.Department(dept)})
	if err != nil {
		t.Fatalf("Add(%s): %v", name, err)
	}
	return c
}

func persisted(t *testing.T, blobs *memBlobs, key string) []domain.Contact {
	t.Helper()
	var out []domain.Contact
	if err := json.Unmarshal(blobs.data[key], &out); err != nil {
		t.Fatalf("decode persisted: %v", err)
	}
	return out
}

// ---------- Load() ----------

func TestLoad_AbsentKey_SeedsAndPersists(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := s.Snapshot()
	if len(snap) != 2 || snap[0].Name != "TD Hasan" || snap[1].Name != "Alex Neo" {
		t.Fatalf("unexpected seed: %+v", snap)
	}
	if got := persisted(t, blobs, s.Key); len(got) != 2 {
		t.Fatalf("seed not written back: %+v", got)
	}
}

func TestLoad_UnparsableOrNull_Seeds(t *testing.T) {
	for _, raw := range []string{"{not json", "null", `{"id":"x"}`} {
		blobs := newMemBlobs()
		blobs.data["neolink_contacts"] = []byte(raw)
		s := newTestStore(t, blobs)
		if err := s.Load(context.Background()); err != nil {
			t.Fatalf("Load(%q): %v", raw, err)
		}
		if n := len(s.Snapshot()); n != 2 {
			t.Fatalf("Load(%q): expected seed of 2, got %d", raw, n)
		}
	}
}

func TestLoad_ExistingCollection_Preserved(t *testing.T) {
	blobs := newMemBlobs()
	at := time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)
	want := []domain.Contact{
		{ID: "x", Name: "Zed", Mobile: "9", Department: "X", CreatedAt: at},
		{ID: "y", Name: "Amy", Mobile: "8", Department: "Y", IsFavorite: true, CreatedAt: at},
	}
	b, _ := json.Marshal(want)
	blobs.data["neolink_contacts"] = b

	s := newTestStore(t, blobs)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, s.Snapshot()); diff != "" {
		t.Fatalf("loaded collection mismatch (-want +got):\n%s", diff)
	}
	if blobs.puts != 0 {
		t.Fatalf("existing collection must not be rewritten on load")
	}
}

func TestLoad_InvalidCollection_Seeds(t *testing.T) {
	cases := map[string]string{
		"repeated id and blank name": `[{"id":"a","name":"A","mobile":"1","department":"X"},{"id":"a","name":"","mobile":"1","department":"X"}]`,
		"missing id":                 `[{"name":"A","mobile":"1","department":"X"}]`,
		"missing department":         `[{"id":"a","name":"A","mobile":"1"}]`,
		"blank mobile":               `[{"id":"a","name":"A","mobile":"  ","department":"X"}]`,
	}
	for name, raw := range cases {
		blobs := newMemBlobs()
		blobs.data["neolink_contacts"] = []byte(raw)
		s := newTestStore(t, blobs)
		if err := s.Load(context.Background()); err != nil {
			t.Fatalf("%s: Load: %v", name, err)
		}
		snap := s.Snapshot()
		if len(snap) != 2 || snap[0].ID != "1" || snap[1].ID != "2" {
			t.Fatalf("%s: expected the seed, got %+v", name, snap)
		}
		if got := persisted(t, blobs, s.Key); len(got) != 2 {
			t.Fatalf("%s: seed not written back: %+v", name, got)
		}
	}
}

func TestLoad_SharedMobile_StrictOnly(t *testing.T) {
	raw := []byte(`[{"id":"a","name":"A","mobile":"1","department":"X"},{"id":"b","name":"B","mobile":"1","department":"Y"}]`)

	// relaxed updates can leave two contacts on one mobile
	blobs := newMemBlobs()
	blobs.data["neolink_contacts"] = raw
	s := newTestStore(t, blobs)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap := s.Snapshot(); len(snap) != 2 || snap[0].ID != "a" || snap[1].ID != "b" {
		t.Fatalf("relaxed load = %+v", snap)
	}

	blobs = newMemBlobs()
	blobs.data["neolink_contacts"] = raw
	s = newTestStore(t, blobs)
	s.StrictMobileOnUpdate = true
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("strict Load: %v", err)
	}
	if snap := s.Snapshot(); len(snap) != 2 || snap[0].ID != "1" {
		t.Fatalf("strict load should seed, got %+v", snap)
	}
}

func TestLoad_EmptyArray_IsNotSeeded(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	if n := len(s.Snapshot()); n != 0 {
		t.Fatalf("expected empty collection, got %d", n)
	}
}

func TestLoad_ReadError_Returned(t *testing.T) {
	blobs := newMemBlobs()
	blobs.getErr = errors.New("disk gone")
	s := newTestStore(t, blobs)
	if err := s.Load(context.Background()); err == nil || err.Error() != "disk gone" {
		t.Fatalf("expected read error, got %v", err)
	}
	if blobs.puts != 0 || len(s.Snapshot()) != 0 {
		t.Fatalf("read error must not seed or write")
	}
}

func TestLoad_SeedPersistFailure_KeepsSeed(t *testing.T) {
	blobs := newMemBlobs()
	blobs.putErr = errors.New("quota")
	s := newTestStore(t, blobs)
	err := s.Load(context.Background())
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if len(s.Snapshot()) != 2 {
		t.Fatalf("seed must stay in memory")
	}
}

func TestLoad_SeedFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "seed.yaml")
	doc := `contacts:
  - name: Rina
    mobile: "0170"
    department: packer opater
    isFavorite: true
  - id: fixed
    name: Omar
    mobile: "0180"
    department: অন্য অন্যান্য
    customDepartment: Drivers
    createdAt: 2024-05-01T10:00:00Z
`
	if err := os.WriteFile(p, []byte(doc), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	s.SeedPath = p
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	snap := s.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 seed contacts, got %d", len(snap))
	}
	if snap[0].ID == "" || !snap[0].IsFavorite || snap[0].CreatedAt.IsZero() {
		t.Fatalf("defaults not applied: %+v", snap[0])
	}
	if snap[1].ID != "fixed" || snap[1].Department != "Drivers" ||
		!snap[1].CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected second seed: %+v", snap[1])
	}
}

func TestLoadSeedFile_Errors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
		return p
	}
	now := time.Now()

	if _, err := LoadSeedFile(filepath.Join(dir, "missing.yaml"), now); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := LoadSeedFile(write("unknown.yaml", "contacts:\n  - nickname: x\n"), now); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	dup := "contacts:\n  - {name: A, mobile: \"1\", department: X}\n  - {name: B, mobile: \"1\", department: X}\n"
	if _, err := LoadSeedFile(write("dup.yaml", dup), now); !errors.Is(err, ErrDuplicateMobile) {
		t.Fatalf("expected ErrDuplicateMobile, got %v", err)
	}
	bad := "contacts:\n  - {name: \"\", mobile: \"1\", department: X}\n"
	if _, err := LoadSeedFile(write("bad.yaml", bad), now); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------- Add() ----------

func TestAdd_AssignsDefaultsPrependsAndPersists(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)

	a := mustAdd(t, s, "Bob", "111", "X")
	b := mustAdd(t, s, "Ann", "222", "Y")

	if a.ID != "id-1" || b.ID != "id-2" {
		t.Fatalf("unexpected ids: %s %s", a.ID, b.ID)
	}
	if a.IsFavorite || a.CreatedAt.IsZero() || !b.CreatedAt.After(a.CreatedAt) {
		t.Fatalf("defaults not applied: %+v %+v", a, b)
	}

	snap := s.Snapshot()
	if snap[0].ID != b.ID || snap[1].ID != a.ID {
		t.Fatalf("expected newest first, got %+v", snap)
	}
	if diff := cmp.Diff(snap, persisted(t, blobs, s.Key)); diff != "" {
		t.Fatalf("persisted collection differs (-mem +blob):\n%s", diff)
	}
}

func TestAdd_DuplicateMobile_RejectedSizeUnchanged(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	mustAdd(t, s, "Bob", "111", "X")
	mustAdd(t, s, "Ann", "222", "Y")
	rev := s.Revision()
	puts := blobs.puts

	_, err := s.Add(context.Background(), domain.ContactInput{Name: "Carl", Mobile: "111", Department: "X"})
	if !errors.Is(err, ErrDuplicateMobile) {
		t.Fatalf("expected ErrDuplicateMobile, got %v", err)
	}
	if n := len(s.Snapshot()); n != 2 {
		t.Fatalf("collection size changed: %d", n)
	}
	if s.Revision() != rev || blobs.puts != puts {
		t.Fatalf("failed add must not bump revision or persist")
	}
}

func TestAdd_Validation(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)

	cases := []domain.ContactInput{
		{Name: "", Mobile: "1", Department: "X"},
		{Name: "   ", Mobile: "1", Department: "X"},
		{Name: "A", Mobile: "", Department: "X"},
		{Name: "A", Mobile: " ", Department: "X"},
		{Name: "A", Mobile: "1", Department: ""},
		{Name: "A", Mobile: "1", Department: domain.DepartmentOther},
		{Name: "A", Mobile: "1", Department: domain.DepartmentOther, CustomDepartment: "  "},
	}
	for i, in := range cases {
		if _, err := s.Add(context.Background(), in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: expected ErrValidation, got %v", i, err)
		}
	}
	if len(s.Snapshot()) != 0 {
		t.Fatalf("invalid candidates entered the store")
	}
}

func TestAdd_OtherDepartmentUsesCustomText(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)

	c, err := s.Add(context.Background(), domain.ContactInput{
		Name: "Dina", Mobile: "333", Department: domain.DepartmentOther, CustomDepartment: "  Drivers ",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.Department != "Drivers" || c.CustomDepartment != "Drivers" {
		t.Fatalf("unexpected department: %+v", c)
	}

	c2, err := s.Add(context.Background(), domain.ContactInput{
		Name: "Eli", Mobile: "444", Department: domain.DepartmentPacker, CustomDepartment: "ignored",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c2.Department != domain.DepartmentPacker || c2.CustomDepartment != "" {
		t.Fatalf("custom text must be dropped for closed departments: %+v", c2)
	}
}

func TestAdd_PersistFailure_KeepsMutation(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	blobs.putErr = errors.New("quota exceeded")

	c, err := s.Add(context.Background(), domain.ContactInput{Name: "Bob", Mobile: "111", Department: "X"})
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("expected ErrPersist, got %v", err)
	}
	if c.ID == "" {
		t.Fatalf("mutation result must be returned alongside ErrPersist")
	}
	if _, ok := s.Get(c.ID); !ok {
		t.Fatalf("in-memory mutation must not be rolled back")
	}
}

// ---------- Update() ----------

func TestUpdate_PreservesIDAndCreatedAt(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	orig := mustAdd(t, s, "Bob", "111", "X")

	edit := orig
	edit.Name = "Robert"
	edit.Address = "Chittagong"
	edit.CreatedAt = time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	edit.IsFavorite = true

	got, err := s.Update(context.Background(), edit.ID, toInput(edit), &edit.IsFavorite)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID != orig.ID || !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("id/createdAt changed: %+v", got)
	}
	if got.Name != "Robert" || got.Address != "Chittagong" || !got.IsFavorite {
		t.Fatalf("fields not replaced: %+v", got)
	}
	stored, _ := s.Get(orig.ID)
	if diff := cmp.Diff(got, stored); diff != "" {
		t.Fatalf("stored record differs (-returned +stored):\n%s", diff)
	}
	if p := persisted(t, blobs, s.Key); p[0].Name != "Robert" {
		t.Fatalf("update not persisted: %+v", p)
	}
}

func TestUpdate_MissingID_NoChange(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	mustAdd(t, s, "Bob", "111", "X")
	before := s.Snapshot()
	rev := s.Revision()

	_, err := s.Update(context.Background(), "ghost", domain.ContactInput{Name: "G", Mobile: "9", Department: "X"}, nil)
	if !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if diff := cmp.Diff(before, s.Snapshot()); diff != "" || s.Revision() != rev {
		t.Fatalf("collection changed (-before +after):\n%s", diff)
	}
}

func TestUpdate_Validation(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	c := mustAdd(t, s, "Bob", "111", "X")
	c.Mobile = ""
	if _, err := s.Update(context.Background(), c.ID, toInput(c), nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdate_DuplicateMobile_RelaxedByDefault_StrictOptIn(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	mustAdd(t, s, "Bob", "111", "X")
	ann := mustAdd(t, s, "Ann", "222", "Y")

	ann.Mobile = "111"
	if _, err := s.Update(context.Background(), ann.ID, toInput(ann), nil); err != nil {
		t.Fatalf("default update should not re-check mobile, got %v", err)
	}

	s.StrictMobileOnUpdate = true
	ann.Name = "Annie"
	if _, err := s.Update(context.Background(), ann.ID, toInput(ann), nil); !errors.Is(err, ErrDuplicateMobile) {
		t.Fatalf("strict update should reject duplicate, got %v", err)
	}
	// keeping its own mobile is fine in strict mode
	bob := s.Snapshot()[1]
	bob.Mobile = "555"
	if _, err := s.Update(context.Background(), bob.ID, toInput(bob), nil); err != nil {
		t.Fatalf("strict update with unique mobile: %v", err)
	}
	bob.Name = "Bobby"
	if _, err := s.Update(context.Background(), bob.ID, toInput(bob), nil); err != nil {
		t.Fatalf("strict update keeping own mobile: %v", err)
	}
}

func TestUpdate_OmittedFavoriteKeepsStoredValue(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	c := mustAdd(t, s, "Bob", "111", "X")

	// an edit built from a stale read must not undo a toggle made since
	stale := c
	if _, err := s.ToggleFavorite(context.Background(), c.ID); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	stale.Name = "Robert"
	got, err := s.Update(context.Background(), stale.ID, toInput(stale), nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !got.IsFavorite || got.Name != "Robert" {
		t.Fatalf("omitted favorite = %+v", got)
	}

	off := false
	if got, _ = s.Update(context.Background(), c.ID, toInput(stale), &off); got.IsFavorite {
		t.Fatalf("explicit false ignored: %+v", got)
	}
}

func TestUpdate_ConcurrentTogglesAreNotLost(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	c := mustAdd(t, s, "Bob", "111", "X")

	const toggles = 50
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < toggles; i++ {
			_, _ = s.ToggleFavorite(context.Background(), c.ID)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < toggles; i++ {
			_, _ = s.Update(context.Background(), c.ID, toInput(c), nil)
		}
	}()
	wg.Wait()

	// an even number of toggles lands back on the initial value
	if got, _ := s.Get(c.ID); got.IsFavorite {
		t.Fatalf("favorite flipped by updates: %+v", got)
	}
}

// ---------- Delete() ----------

func TestDelete_RemovesAndPersists(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	bob := mustAdd(t, s, "Bob", "111", "X")
	ann := mustAdd(t, s, "Ann", "222", "Y")

	if err := s.Delete(context.Background(), ann.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != bob.ID {
		t.Fatalf("unexpected collection: %+v", snap)
	}
	if p := persisted(t, blobs, s.Key); len(p) != 1 {
		t.Fatalf("delete not persisted: %+v", p)
	}

	if view := search.Filter(snap, search.Params{Query: "ann", Department: domain.DepartmentAll}); len(view) != 0 {
		t.Fatalf("expected empty view, got %+v", view)
	}
}

func TestDelete_MissingID_NoChange(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	mustAdd(t, s, "Bob", "111", "X")
	puts := blobs.puts

	if err := s.Delete(context.Background(), "ghost"); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
	if len(s.Snapshot()) != 1 || blobs.puts != puts {
		t.Fatalf("missing delete must not change or persist")
	}
}

// ---------- ToggleFavorite() ----------

func TestToggleFavorite_Involution(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	orig := mustAdd(t, s, "Bob", "111", "X")

	once, err := s.ToggleFavorite(context.Background(), orig.ID)
	if err != nil || !once.IsFavorite {
		t.Fatalf("first toggle: %+v %v", once, err)
	}
	if fav := search.Favorites(s.Snapshot()); len(fav) != 1 {
		t.Fatalf("expected one favorite, got %d", len(fav))
	}
	twice, err := s.ToggleFavorite(context.Background(), orig.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if diff := cmp.Diff(orig, twice); diff != "" {
		t.Fatalf("double toggle changed record (-orig +after):\n%s", diff)
	}
}

func TestToggleFavorite_MissingID(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	if _, err := s.ToggleFavorite(context.Background(), "ghost"); !errors.Is(err, ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}
}

// ---------- Snapshot / scenarios ----------

func TestSnapshot_IsACopy(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	mustAdd(t, s, "Bob", "111", "X")

	snap := s.Snapshot()
	snap[0].Name = "mutated"
	if got := s.Snapshot()[0].Name; got != "Bob" {
		t.Fatalf("snapshot aliases store: %q", got)
	}
}

func TestScenario_ViewAndFavorites(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)
	mustAdd(t, s, "Bob", "111", "X")
	mustAdd(t, s, "Ann", "222", "Y")

	snap := s.Snapshot()
	view := search.Filter(snap, search.Params{Department: domain.DepartmentAll})
	if len(view) != 2 || view[0].Name != "Ann" || view[1].Name != "Bob" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if fav := search.Favorites(snap); len(fav) != 0 {
		t.Fatalf("expected no favorites, got %+v", fav)
	}
	if y := search.Filter(snap, search.Params{Department: "Y"}); len(y) != 1 || y[0].Name != "Ann" {
		t.Fatalf("unexpected department view: %+v", y)
	}
}

func TestConcurrentAdds_UniqueMobilesHold(t *testing.T) {
	blobs := newMemBlobs()
	s := NewContactService(blobs, "k")
	blobs.data["k"] = []byte("[]")
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Add(context.Background(), domain.ContactInput{
				Name: "N" + strconv.Itoa(i), Mobile: strconv.Itoa(i % 5), Department: "X",
			})
			if err == nil {
				mu.Lock()
				okCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()
	if okCount != 5 || len(s.Snapshot()) != 5 {
		t.Fatalf("expected 5 successful adds, got ok=%d size=%d", okCount, len(s.Snapshot()))
	}
}

// ---------- with the GORM blob store ----------

func TestContactService_WithSQLiteBlobStore_RoundTrip(t *testing.T) {
	db := newSvcDB(t)
	s1 := newTestStore(t, repo.NewBlobStore(db))
	if err := s1.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	mustAdd(t, s1, "Bob", "111", "X")

	s2 := NewContactService(repo.NewBlobStore(db), s1.Key)
	if err := s2.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(s1.Snapshot(), s2.Snapshot()); diff != "" {
		t.Fatalf("reloaded collection differs (-before +after):\n%s", diff)
	}
}

// ---------- metrics ----------

func TestMetrics_MutationCounters(t *testing.T) {
	blobs := newMemBlobs()
	s := newTestStore(t, blobs)
	loadEmpty(t, s, blobs)

	baseOK := testutil.ToFloat64(contactMutations.WithLabelValues("add", "ok"))
	baseDup := testutil.ToFloat64(contactMutations.WithLabelValues("add", "duplicate"))
	baseNF := testutil.ToFloat64(contactMutations.WithLabelValues("delete", "not_found"))

	mustAdd(t, s, "Bob", "111", "X")
	_, _ = s.Add(context.Background(), domain.ContactInput{Name: "Carl", Mobile: "111", Department: "X"})
	_ = s.Delete(context.Background(), "ghost")

	if got := testutil.ToFloat64(contactMutations.WithLabelValues("add", "ok")); got != baseOK+1 {
		t.Fatalf("add ok = %v; want %v", got, baseOK+1)
	}
	if got := testutil.ToFloat64(contactMutations.WithLabelValues("add", "duplicate")); got != baseDup+1 {
		t.Fatalf("add duplicate = %v; want %v", got, baseDup+1)
	}
	if got := testutil.ToFloat64(contactMutations.WithLabelValues("delete", "not_found")); got != baseNF+1 {
		t.Fatalf("delete not_found = %v; want %v", got, baseNF+1)
	}
	if got := testutil.ToFloat64(contactsStored); got != 1 {
		t.Fatalf("contacts_stored = %v; want 1", got)
	}
}

func TestResultLabel(t *testing.T) {
	cases := map[string]error{
		"ok":            nil,
		"duplicate":     fmt.Errorf("%w: x", ErrDuplicateMobile),
		"invalid":       ErrValidation,
		"not_found":     ErrContactNotFound,
		"persist_error": fmt.Errorf("%w: disk", ErrPersist),
		"error":         errors.New("other"),
	}
	for want, err := range cases {
		if got := resultLabel(err); got != want {
			t.Fatalf("resultLabel(%v) = %q; want %q", err, got, want)
		}
	}
}
