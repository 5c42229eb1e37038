package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/icsr/icsr/internal/platform/blobstore"
	"github.com/icsr/icsr/internal/platform/e2b"
	"github.com/icsr/icsr/internal/platform/encryption"
)

type mockRepo struct {
	mu         sync.Mutex
	items      []*Report
	failCreate bool
}

func (m *mockRepo) Create(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate {
		return errors.New("insert failed")
	}
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.items = append(m.items, r)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID, ownerID string) (*Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.items {
		if r.ID == id && r.OwnerID == ownerID {
			return r, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) ListByOwner(_ context.Context, ownerID string, limit, offset int) ([]*Report, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var owned []*Report
	for _, r := range m.items {
		if r.OwnerID == ownerID {
			owned = append(owned, r)
		}
	}
	total := len(owned)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (m *mockRepo) Update(_ context.Context, r *Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.items {
		if existing.ID == r.ID {
			r.UpdatedAt = time.Now()
			m.items[i] = r
			return nil
		}
	}
	return ErrNotFound
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.items {
		if r.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func newTestService(repo Repository, blobs blobstore.Store, enforceMinimum bool) *Service {
	builder := e2b.NewBuilder(e2b.DialectR3, "", "")
	return NewService(repo, blobs, builder, enforceMinimum, zerolog.Nop())
}

func aspirinCase() *e2b.CaseData {
	return &e2b.CaseData{
		PatientInitial:        "JD",
		PatientAge:            "34",
		ReporterFamilyName:    "Doe",
		PrimarySourceReaction: "Headache",
		MedicinalProduct:      "Aspirin",
	}
}

func TestCreateAndGetContent(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemStore()
	svc := newTestService(&mockRepo{}, blobs, false)

	rep, err := svc.Create(ctx, "user-1", "Aspirin case", aspirinCase())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rep.ID == uuid.Nil {
		t.Error("report has no id")
	}
	if rep.OwnerID != "user-1" {
		t.Errorf("owner = %q, want user-1", rep.OwnerID)
	}
	if len(rep.EncryptionKey) != 2*encryption.KeySize {
		t.Errorf("key length = %d, want %d", len(rep.EncryptionKey), 2*encryption.KeySize)
	}
	if !strings.HasPrefix(rep.Filename, "report_") || !strings.HasSuffix(rep.Filename, ".xml") {
		t.Errorf("unexpected filename %q", rep.Filename)
	}

	// Stored blob must be ciphertext, not the document itself.
	raw, err := blobs.Read(ctx, rep.Filename)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if strings.Contains(string(raw), "<medicinalproduct>") {
		t.Error("blob holds plaintext XML")
	}

	got, document, err := svc.GetContent(ctx, rep.ID, "user-1")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if got.ID != rep.ID {
		t.Errorf("content returned report %s, want %s", got.ID, rep.ID)
	}
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<medicinalproduct>Aspirin</medicinalproduct>",
		"<primarysourcereaction>Headache</primarysourcereaction>",
		"<patientinitial>JD</patientinitial>",
	} {
		if !strings.Contains(document, want) {
			t.Errorf("document missing %s", want)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mockRepo{}, blobstore.NewMemStore(), false)

	if _, err := svc.Create(ctx, "", "title", aspirinCase()); err == nil {
		t.Error("expected error for missing owner")
	}
	_, err := svc.Create(ctx, "user-1", "", aspirinCase())
	if !IsValidation(err) {
		t.Errorf("missing title: got %v, want ValidationError", err)
	}
}

func TestCreateEnforcesMinimumCriteria(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mockRepo{}, blobstore.NewMemStore(), true)

	_, err := svc.Create(ctx, "user-1", "empty case", &e2b.CaseData{})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(ve.Problems) != 4 {
		t.Errorf("got %d problems, want 4: %v", len(ve.Problems), ve.Problems)
	}

	if _, err := svc.Create(ctx, "user-1", "complete case", aspirinCase()); err != nil {
		t.Errorf("complete case rejected: %v", err)
	}
}

func TestCreateCleansUpBlobOnInsertFailure(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemStore()
	svc := newTestService(&mockRepo{failCreate: true}, blobs, false)

	if _, err := svc.Create(ctx, "user-1", "doomed", aspirinCase()); err == nil {
		t.Fatal("expected insert failure")
	}
	if blobs.Len() != 0 {
		t.Errorf("orphan blobs left behind: %d", blobs.Len())
	}
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mockRepo{}, blobstore.NewMemStore(), false)

	rep, err := svc.Create(ctx, "alice", "her case", aspirinCase())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(ctx, rep.ID, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get as other user: got %v, want ErrNotFound", err)
	}
	if _, _, err := svc.GetContent(ctx, rep.ID, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("content as other user: got %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, rep.ID, "bob", "stolen", aspirinCase()); !errors.Is(err, ErrNotFound) {
		t.Errorf("update as other user: got %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, rep.ID, "bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete as other user: got %v, want ErrNotFound", err)
	}

	// The owner can still reach it.
	if _, err := svc.Get(ctx, rep.ID, "alice"); err != nil {
		t.Errorf("get as owner: %v", err)
	}
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mockRepo{}, blobstore.NewMemStore(), false)

	for i := 0; i < 5; i++ {
		if _, err := svc.Create(ctx, "alice", fmt.Sprintf("case %d", i), aspirinCase()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(ctx, "bob", "his case", aspirinCase()); err != nil {
		t.Fatalf("create: %v", err)
	}

	items, total, err := svc.List(ctx, "alice", 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(items) != 2 {
		t.Errorf("page size = %d, want 2", len(items))
	}

	items, _, err = svc.List(ctx, "alice", 2, 4)
	if err != nil {
		t.Fatalf("list last page: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("last page size = %d, want 1", len(items))
	}
}

func TestUpdatePreservesKeyAndFilename(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemStore()
	svc := newTestService(&mockRepo{}, blobs, false)

	rep, err := svc.Create(ctx, "alice", "first draft", aspirinCase())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	key, filename := rep.EncryptionKey, rep.Filename

	revised := aspirinCase()
	revised.PrimarySourceReaction = "Severe headache"
	updated, err := svc.Update(ctx, rep.ID, "alice", "second draft", revised)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.EncryptionKey != key {
		t.Error("update rotated the encryption key")
	}
	if updated.Filename != filename {
		t.Error("update changed the blob name")
	}
	if updated.Title != "second draft" {
		t.Errorf("title = %q", updated.Title)
	}
	if blobs.Len() != 1 {
		t.Errorf("store holds %d blobs, want 1", blobs.Len())
	}

	_, document, err := svc.GetContent(ctx, rep.ID, "alice")
	if err != nil {
		t.Fatalf("get content: %v", err)
	}
	if !strings.Contains(document, "<primarysourcereaction>Severe headache</primarysourcereaction>") {
		t.Error("updated content not stored")
	}
}

func TestUpdateKeepsTitleWhenOmitted(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(&mockRepo{}, blobstore.NewMemStore(), false)

	rep, err := svc.Create(ctx, "alice", "original title", aspirinCase())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(ctx, rep.ID, "alice", "", aspirinCase())
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "original title" {
		t.Errorf("title = %q, want original kept", updated.Title)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemStore()
	svc := newTestService(&mockRepo{}, blobs, false)

	rep, err := svc.Create(ctx, "alice", "doomed", aspirinCase())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, rep.ID, "alice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if blobs.Len() != 0 {
		t.Errorf("store holds %d blobs after delete", blobs.Len())
	}
	if _, err := svc.Get(ctx, rep.ID, "alice"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: got %v, want ErrNotFound", err)
	}
}

func TestDeleteToleratesMissingBlob(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemStore()
	svc := newTestService(&mockRepo{}, blobs, false)

	rep, err := svc.Create(ctx, "alice", "half gone", aspirinCase())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := blobs.Delete(ctx, rep.Filename); err != nil {
		t.Fatalf("remove blob: %v", err)
	}
	if err := svc.Delete(ctx, rep.ID, "alice"); err != nil {
		t.Errorf("delete with missing blob: %v", err)
	}
}

func TestNewFilename(t *testing.T) {
	now := time.Now()
	a := NewFilename(now)
	b := NewFilename(now)
	if a == b {
		t.Error("two filenames on the same tick are identical")
	}
	if !strings.HasPrefix(a, fmt.Sprintf("report_%d_", now.UnixMilli())) {
		t.Errorf("filename %q missing timestamp prefix", a)
	}
	if !strings.HasSuffix(a, ".xml") {
		t.Errorf("filename %q missing .xml suffix", a)
	}
}
