package docstore

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"arnio/internal/domain"
	"arnio/internal/metrics"
)

type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) Create(context.Context, *domain.User, string) (*domain.User, error) {
	panic("not used")
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(context.Context, string) (*domain.User, string, error) {
	panic("not used")
}
func (f *fakeUsers) UpdateSettings(context.Context, string, domain.Settings) error { panic("not used") }
func (f *fakeUsers) UpdatePlan(context.Context, string, domain.PlanID) error       { panic("not used") }
func (f *fakeUsers) Delete(context.Context, string) error                          { panic("not used") }

type fakeDocs struct {
	docs    map[string]domain.Document
	fail    error
	creates int
}

func (f *fakeDocs) ListByOwner(_ context.Context, ownerID string) ([]domain.Document, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	var out []domain.Document
	for _, d := range f.docs {
		if d.OwnerID == ownerID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (f *fakeDocs) UsageByOwner(_ context.Context, ownerID string) (domain.StorageUsage, error) {
	if f.fail != nil {
		return domain.StorageUsage{}, f.fail
	}
	var usage domain.StorageUsage
	for _, d := range f.docs {
		if d.OwnerID == ownerID {
			usage.DocumentCount++
			usage.StorageBytes += d.SizeBytes
		}
	}
	return usage, nil
}

func (f *fakeDocs) Create(_ context.Context, doc *domain.Document) error {
	if f.fail != nil {
		return f.fail
	}
	f.creates++
	doc.UploadedAt = time.Now()
	f.docs[doc.ID] = *doc
	return nil
}

func (f *fakeDocs) Delete(_ context.Context, docID, ownerID string) error {
	d, ok := f.docs[docID]
	if !ok || d.OwnerID != ownerID {
		return domain.ErrNotFound
	}
	delete(f.docs, docID)
	return nil
}

func (f *fakeDocs) UpdateProgress(_ context.Context, docID, ownerID string, progress int) (*domain.Document, error) {
	d, ok := f.docs[docID]
	if !ok || d.OwnerID != ownerID {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	d.ProgressPercent = progress
	d.LastReadAt = &now
	f.docs[docID] = d
	return &d, nil
}

func newTestService(planID domain.PlanID, docs *fakeDocs) *Service {
	users := &fakeUsers{users: map[string]*domain.User{
		"u1": {ID: "u1", Email: "u1@arn.io", PlanID: planID},
	}}
	return NewService(docs, users, metrics.Nop{}, time.Second, zerolog.Nop())
}

func seedDocs(owner string, n int, size int64) *fakeDocs {
	f := &fakeDocs{docs: map[string]domain.Document{}}
	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		f.docs[id] = domain.Document{
			ID: id, OwnerID: owner, SizeBytes: size,
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	return f
}

func TestUploadDeniedAtFreeDocumentLimit(t *testing.T) {
	docs := seedDocs("u1", 3, 100)
	svc := newTestService(domain.PlanFree, docs)

	_, err := svc.Upload(context.Background(), "u1", FileMeta{Name: "fourth.pdf", SizeBytes: 100})
	if !errors.Is(err, domain.ErrDocumentLimitExceeded) {
		t.Fatalf("Upload() = %v, want ErrDocumentLimitExceeded", err)
	}
	if docs.creates != 0 {
		t.Fatalf("store mutated on denied upload: %d creates", docs.creates)
	}
}

func TestUploadDeniedOnStorage(t *testing.T) {
	docs := seedDocs("u1", 1, 1<<30) // 1 GiB used on free
	svc := newTestService(domain.PlanFree, docs)

	_, err := svc.Upload(context.Background(), "u1", FileMeta{Name: "big.pdf", SizeBytes: 1})
	if !errors.Is(err, domain.ErrStorageLimitExceeded) {
		t.Fatalf("Upload() = %v, want ErrStorageLimitExceeded", err)
	}
}

func TestUploadSucceedsAndDefaultsPages(t *testing.T) {
	docs := seedDocs("u1", 0, 0)
	svc := newTestService(domain.PlanBasic, docs)

	doc, err := svc.Upload(context.Background(), "u1", FileMeta{Name: "notes.pdf", SizeBytes: 2048, MimeType: "application/pdf"})
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if doc.TotalPages != DefaultTotalPages {
		t.Fatalf("TotalPages = %d, want %d", doc.TotalPages, DefaultTotalPages)
	}
	if doc.CurrentPage != 1 || doc.ProgressPercent != 0 {
		t.Fatalf("new document position = page %d progress %d, want 1/0", doc.CurrentPage, doc.ProgressPercent)
	}
	if doc.ID == "" {
		t.Fatal("document id not assigned")
	}
}

func TestUploadUltraProUnbounded(t *testing.T) {
	docs := seedDocs("u1", 60, 1<<30)
	svc := newTestService(domain.PlanUltraPro, docs)

	if _, err := svc.Upload(context.Background(), "u1", FileMeta{Name: "x.epub", SizeBytes: 1 << 31}); err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
}

func TestDeleteRequiresEntitlement(t *testing.T) {
	docs := seedDocs("u1", 2, 10)
	svc := newTestService(domain.PlanBasic, docs)

	err := svc.Delete(context.Background(), "u1", "a")
	if !errors.Is(err, domain.ErrDeletionNotPermitted) {
		t.Fatalf("Delete() = %v, want ErrDeletionNotPermitted", err)
	}
	if len(docs.docs) != 2 {
		t.Fatal("store mutated on denied delete")
	}
}

func TestDeleteOwnerScoped(t *testing.T) {
	docs := seedDocs("u1", 10, 10)
	docs.docs["z"] = domain.Document{ID: "z", OwnerID: "other"}
	svc := newTestService(domain.PlanPro, docs)

	if err := svc.Delete(context.Background(), "u1", "a"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	listed, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(listed) != 9 {
		t.Fatalf("List() returned %d documents, want 9", len(listed))
	}
	for _, d := range listed {
		if d.ID == "a" {
			t.Fatal("deleted document still listed")
		}
	}

	if err := svc.Delete(context.Background(), "u1", "z"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("cross-user Delete() = %v, want ErrNotFound", err)
	}
}

func TestUpdateProgressValidation(t *testing.T) {
	docs := seedDocs("u1", 1, 10)
	svc := newTestService(domain.PlanFree, docs)

	if _, err := svc.UpdateProgress(context.Background(), "u1", "a", 150); !errors.Is(err, domain.ErrInvalidProgress) {
		t.Fatalf("UpdateProgress(150) = %v, want ErrInvalidProgress", err)
	}
	if _, err := svc.UpdateProgress(context.Background(), "u1", "a", -1); !errors.Is(err, domain.ErrInvalidProgress) {
		t.Fatalf("UpdateProgress(-1) = %v, want ErrInvalidProgress", err)
	}

	doc, err := svc.UpdateProgress(context.Background(), "u1", "a", 73)
	if err != nil {
		t.Fatalf("UpdateProgress(73) error: %v", err)
	}
	if doc.ProgressPercent != 73 {
		t.Fatalf("ProgressPercent = %d, want 73", doc.ProgressPercent)
	}
	if doc.LastReadAt == nil {
		t.Fatal("LastReadAt not stamped")
	}
}

func TestListNewestFirst(t *testing.T) {
	docs := seedDocs("u1", 3, 10)
	svc := newTestService(domain.PlanFree, docs)

	listed, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for i := 1; i < len(listed); i++ {
		if listed[i].UploadedAt.After(listed[i-1].UploadedAt) {
			t.Fatal("List() not ordered newest first")
		}
	}
}

func TestBackendFailureMapsToStoreUnavailable(t *testing.T) {
	docs := seedDocs("u1", 0, 0)
	docs.fail = errors.New("connection refused")
	svc := newTestService(domain.PlanFree, docs)

	if _, err := svc.List(context.Background(), "u1"); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("List() = %v, want ErrStoreUnavailable", err)
	}
	if _, err := svc.Upload(context.Background(), "u1", FileMeta{SizeBytes: 1}); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("Upload() = %v, want ErrStoreUnavailable", err)
	}
}
