package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/resourcehub/internal/app/models"
	"github.com/yigit/resourcehub/internal/app/models/dto"
	"github.com/yigit/resourcehub/internal/app/repositories"
	"github.com/yigit/resourcehub/internal/app/services"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/apperrors"
	"github.com/yigit/resourcehub/internal/testutil"
)

type memoryStore struct {
	mu        sync.Mutex
	rows      map[string]models.Resource
	seq       int
	createErr error
	updateErr error
	lastList  repositories.ResourceListParams
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]models.Resource{}}
}

func (m *memoryStore) Create(_ context.Context, r *models.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	r.ID = fmt.Sprintf("00000000-0000-4000-8000-%012d", m.seq)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.rows[r.ID] = *r
	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id string) (*models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return nil, apperrors.NewResourceNotFoundError("Resource not found")
	}
	return &r, nil
}

func (m *memoryStore) List(_ context.Context, p repositories.ResourceListParams) ([]*models.Resource, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastList = p
	var out []*models.Resource
	for _, r := range m.rows {
		r := r
		if p.University != "" && r.University != p.University {
			continue
		}
		out = append(out, &r)
	}
	return out, int64(len(out)), nil
}

func (m *memoryStore) Update(_ context.Context, r *models.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.updateErr != nil {
		return m.updateErr
	}
	r.UpdatedAt = time.Now()
	m.rows[r.ID] = *r
	return nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.NewResourceNotFoundError("Resource not found")
	}
	delete(m.rows, id)
	return nil
}

type memoryStorage struct {
	mu      sync.Mutex
	files   map[string][]byte
	deleted []string
	seq     int
	failOn  string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (s *memoryStorage) Save(u *domain.Upload, subPath string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if subPath == s.failOn {
		return "", errors.New("disk full")
	}
	s.seq++
	p := fmt.Sprintf("/uploads/%s/%d%s", subPath, s.seq, u.Extension())
	s.files[p] = u.Data
	return p, nil
}

func (s *memoryStorage) Delete(p string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, p)
	s.deleted = append(s.deleted, p)
	return nil
}

func (s *memoryStorage) FullPath(p string) string { return p }

func (s *memoryStorage) has(p string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[p]
	return ok
}

type recordedEvents struct {
	created, updated, deleted []*domain.Existing
}

func (r *recordedEvents) ResourceCreated(e *domain.Existing) { r.created = append(r.created, e) }
func (r *recordedEvents) ResourceUpdated(e *domain.Existing) { r.updated = append(r.updated, e) }
func (r *recordedEvents) ResourceDeleted(e *domain.Existing) { r.deleted = append(r.deleted, e) }

type fixture struct {
	store   *memoryStore
	storage *memoryStorage
	events  *recordedEvents
	svc     services.ResourceService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: newMemoryStore(), storage: newMemoryStorage(), events: &recordedEvents{}}
	f.svc = services.NewResourceService(f.store, f.storage, f.events)
	return f
}

func TestCreateResource_StoresFilesAndRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateResource(ctx, testutil.NotesDraft(t))
	require.NoError(t, err)

	require.NotNil(t, created.Note)
	assert.Equal(t, "Midterm Notes", created.Note.Title)
	assert.Equal(t, "/uploads/notes/1.pdf", created.Note.PDFURL)
	assert.Nil(t, created.PYQ)
	assert.Nil(t, created.Video)
	assert.True(t, f.storage.has(created.Note.PDFURL))

	got, err := f.svc.GetResourceByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Note, got.Note)
	assert.Len(t, f.events.created, 1)
}

func TestCreateResource_InvalidDraftStoresNothing(t *testing.T) {
	f := newFixture(t)
	d := testutil.NotesDraft(t)
	d.Subject = ""

	_, err := f.svc.CreateResource(context.Background(), d)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)
	assert.Empty(t, f.storage.files)
	assert.Empty(t, f.store.rows)
}

func TestCreateResource_DatabaseFailureRemovesSavedFiles(t *testing.T) {
	f := newFixture(t)
	f.store.createErr = errors.New("connection reset")

	d := testutil.NotesDraft(t)
	d.Selected = d.Selected.With(domain.KindPYQ)
	d.PYQ = domain.PYQDraft{Title: "2023", File: testutil.PDF(t, "2023.pdf")}

	_, err := f.svc.CreateResource(context.Background(), d)
	require.Error(t, err)
	assert.Empty(t, f.storage.files)
	assert.Len(t, f.storage.deleted, 2)
	assert.Empty(t, f.events.created)
}

func TestCreateResource_StorageFailureNamesField(t *testing.T) {
	f := newFixture(t)
	f.storage.failOn = "notes"

	d := testutil.NotesDraft(t)
	d.Selected = d.Selected.With(domain.KindPYQ)
	d.PYQ = domain.PYQDraft{Title: "2023", File: testutil.PDF(t, "2023.pdf")}

	_, err := f.svc.CreateResource(context.Background(), d)
	require.ErrorIs(t, err, apperrors.ErrStorageFailed)
	var ce *apperrors.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, domain.FieldNoteFile, ce.Field)
	assert.Empty(t, f.storage.files, "the PYQ file saved first is rolled back")
	assert.Empty(t, f.store.rows)
}

func TestUpdateResource_KeepsFileWhenNotReuploaded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateResource(ctx, testutil.NotesDraft(t))
	require.NoError(t, err)

	d := domain.FromExisting(created)
	d.Note.Title = "Revised Notes"
	updated, err := f.svc.UpdateResource(ctx, created.ID, d)
	require.NoError(t, err)

	assert.Equal(t, "Revised Notes", updated.Note.Title)
	assert.Equal(t, created.Note.PDFURL, updated.Note.PDFURL)
	assert.True(t, f.storage.has(created.Note.PDFURL))
	assert.Empty(t, f.storage.deleted)
	assert.Len(t, f.events.updated, 1)
}

func TestUpdateResource_ReplacesFileAfterCommit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateResource(ctx, testutil.NotesDraft(t))
	require.NoError(t, err)

	d := domain.FromExisting(created)
	d.Note.File = testutil.PDF(t, "v2.pdf")
	updated, err := f.svc.UpdateResource(ctx, created.ID, d)
	require.NoError(t, err)

	assert.NotEqual(t, created.Note.PDFURL, updated.Note.PDFURL)
	assert.True(t, f.storage.has(updated.Note.PDFURL))
	assert.False(t, f.storage.has(created.Note.PDFURL))
}

func TestUpdateResource_DeselectedKindIsDropped(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := testutil.NotesDraft(t)
	d.Selected = d.Selected.With(domain.KindVideo)
	d.Video = testutil.VideoDraft(t).Video
	d.Video.Thumbnail = testutil.PNG(t, "thumb.png")
	created, err := f.svc.CreateResource(ctx, d)
	require.NoError(t, err)
	require.NotNil(t, created.Video)
	thumb := created.Video.ImageURL
	require.NotEmpty(t, thumb)

	edit := domain.FromExisting(created)
	edit.Selected = edit.Selected.Without(domain.KindVideo)
	updated, err := f.svc.UpdateResource(ctx, created.ID, edit)
	require.NoError(t, err)

	assert.Nil(t, updated.Video)
	assert.NotNil(t, updated.Note)
	assert.False(t, f.storage.has(thumb))
	assert.Equal(t, []string{thumb}, f.storage.deleted)
}

func TestUpdateResource_FailureKeepsOldFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateResource(ctx, testutil.NotesDraft(t))
	require.NoError(t, err)
	f.store.updateErr = errors.New("deadlock detected")

	d := domain.FromExisting(created)
	d.Note.File = testutil.PDF(t, "v2.pdf")
	_, err = f.svc.UpdateResource(ctx, created.ID, d)
	require.Error(t, err)

	assert.True(t, f.storage.has(created.Note.PDFURL))
	assert.Len(t, f.storage.files, 1, "the new upload is rolled back")
	assert.Empty(t, f.events.updated)
}

func TestUpdateResource_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.UpdateResource(context.Background(), "missing", testutil.NotesDraft(t))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Empty(t, f.storage.files)
}

func TestDeleteResource_RemovesFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.CreateResource(ctx, testutil.NotesDraft(t))
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteResource(ctx, created.ID))
	assert.Empty(t, f.storage.files)
	assert.Empty(t, f.store.rows)
	require.Len(t, f.events.deleted, 1)
	assert.Equal(t, created.ID, f.events.deleted[0].ID)

	assert.ErrorIs(t, f.svc.DeleteResource(ctx, created.ID), apperrors.ErrResourceNotFound)
}

func TestListResources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.CreateResource(ctx, testutil.NotesDraft(t))
	require.NoError(t, err)
	_, err = f.svc.CreateResource(ctx, testutil.VideoDraft(t))
	require.NoError(t, err)

	res, err := f.svc.ListResources(ctx, &dto.ResourceFilterRequest{University: " RGPV ", Kind: "notes", SortOrder: "asc", Page: 1, Size: 5})
	require.NoError(t, err)
	assert.Len(t, res.Resources, 1)
	assert.Equal(t, int64(1), res.Pagination.TotalItems)
	assert.Equal(t, 5, res.Pagination.PageSize)

	p := f.store.lastList
	assert.Equal(t, "RGPV", p.University)
	assert.Equal(t, domain.KindNotes, p.Kind)
	assert.True(t, p.Ascending)
	assert.Equal(t, uint64(5), p.Limit)
	assert.Equal(t, uint64(0), p.Offset)
}

func TestListResources_UnknownKind(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ListResources(context.Background(), &dto.ResourceFilterRequest{Kind: "slides"})
	require.ErrorIs(t, err, apperrors.ErrBadRequest)
	var ce *apperrors.CustomError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "kind", ce.Field)
}

func TestCatalog(t *testing.T) {
	c := newFixture(t).svc.Catalog()
	assert.Equal(t, domain.Universities, c.Universities)
	assert.Equal(t, domain.Kinds, c.Kinds)
}

func TestNewResourceService_NilPublisher(t *testing.T) {
	svc := services.NewResourceService(newMemoryStore(), newMemoryStorage(), nil)
	_, err := svc.CreateResource(context.Background(), testutil.VideoDraft(t))
	assert.NoError(t, err)
}
