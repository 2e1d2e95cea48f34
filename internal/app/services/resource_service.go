package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/resourcehub/internal/app/models"
	"github.com/yigit/resourcehub/internal/app/models/dto"
	"github.com/yigit/resourcehub/internal/app/repositories"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/apperrors"
	"github.com/yigit/resourcehub/internal/pkg/filestorage"
	"github.com/yigit/resourcehub/internal/pkg/helpers"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

// storageDirs maps each kind to the subdirectory its file is stored under.
var storageDirs = map[domain.Kind]string{
	domain.KindPYQ:   "pyq",
	domain.KindNotes: "notes",
	domain.KindVideo: "thumbnails",
}

// ResourceStore is the persistence the service needs. It is satisfied by
// *repositories.ResourceRepository.
type ResourceStore interface {
	Create(ctx context.Context, r *models.Resource) error
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	List(ctx context.Context, p repositories.ResourceListParams) ([]*models.Resource, int64, error)
	Update(ctx context.Context, r *models.Resource) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher is told about every successful change. It is satisfied by
// *websocket.Hub.
type EventPublisher interface {
	ResourceCreated(r *domain.Existing)
	ResourceUpdated(r *domain.Existing)
	ResourceDeleted(r *domain.Existing)
}

type noopPublisher struct{}

func (noopPublisher) ResourceCreated(*domain.Existing) {}
func (noopPublisher) ResourceUpdated(*domain.Existing) {}
func (noopPublisher) ResourceDeleted(*domain.Existing) {}

// ResourceService defines the interface for resource operations
type ResourceService interface {
	CreateResource(ctx context.Context, d *domain.Draft) (*domain.Existing, error)
	UpdateResource(ctx context.Context, id string, d *domain.Draft) (*domain.Existing, error)
	GetResourceByID(ctx context.Context, id string) (*domain.Existing, error)
	ListResources(ctx context.Context, filter *dto.ResourceFilterRequest) (*dto.ResourceListResponse, error)
	DeleteResource(ctx context.Context, id string) error
	Catalog() *dto.CatalogResponse
}

// resourceServiceImpl implements ResourceService
type resourceServiceImpl struct {
	repo    ResourceStore
	storage filestorage.FileStorage
	events  EventPublisher
}

// NewResourceService creates a new ResourceService. events may be nil.
func NewResourceService(repo ResourceStore, storage filestorage.FileStorage, events EventPublisher) ResourceService {
	if events == nil {
		events = noopPublisher{}
	}
	return &resourceServiceImpl{
		repo:    repo,
		storage: storage,
		events:  events,
	}
}

// saveFiles stores the staged upload of every selected kind and records the
// paths on r. The returned paths are what a caller must remove if a later
// step fails.
func (s *resourceServiceImpl) saveFiles(d *domain.Draft, r *models.Resource) (saved []string, replaced []string, err error) {
	for _, k := range d.Selected.Kinds() {
		upload := d.File(k)
		if upload == nil {
			continue
		}
		path, err := s.storage.Save(upload, storageDirs[k])
		if err != nil {
			s.removeFiles(saved)
			return nil, nil, apperrors.NewCustomError(apperrors.ErrStorageFailed, "Failed to store uploaded file").
				WithField(d.Section(k).FileField())
		}
		if old := r.FilePath(k); old != "" {
			replaced = append(replaced, old)
		}
		r.SetFilePath(k, path)
		saved = append(saved, path)
	}
	return saved, replaced, nil
}

func (s *resourceServiceImpl) removeFiles(paths []string) {
	for _, p := range paths {
		if err := s.storage.Delete(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("Failed to remove stored file")
		}
	}
}

// CreateResource validates the draft, stores its files and persists it
func (s *resourceServiceImpl) CreateResource(ctx context.Context, d *domain.Draft) (*domain.Existing, error) {
	if err := domain.Validate(d, nil); err != nil {
		return nil, err
	}

	r := &models.Resource{}
	r.ApplyDraft(d)

	saved, _, err := s.saveFiles(d, r)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.removeFiles(saved)
		return nil, fmt.Errorf("error creating resource: %w", err)
	}

	logger.Info().
		Str("id", r.ID).
		Str("kinds", d.Selected.String()).
		Str("university", r.University).
		Str("subject", r.Subject).
		Msg("Resource created")
	created := r.ToDomain()
	s.events.ResourceCreated(created)
	return created, nil
}

// UpdateResource applies the draft to an existing resource. Files are only
// replaced when a new one was uploaded; sub-resources that are no longer
// selected are removed along with their files.
func (s *resourceServiceImpl) UpdateResource(ctx context.Context, id string, d *domain.Draft) (*domain.Existing, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Validate(d, current.ToDomain()); err != nil {
		return nil, err
	}

	next := *current
	var obsolete []string
	for _, k := range domain.Kinds {
		if current.Kinds().Has(k) && !d.Selected.Has(k) {
			if p := current.FilePath(k); p != "" {
				obsolete = append(obsolete, p)
			}
			next.ClearKind(k)
		}
	}
	next.ApplyDraft(d)

	saved, replaced, err := s.saveFiles(d, &next)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, &next); err != nil {
		s.removeFiles(saved)
		return nil, fmt.Errorf("error updating resource: %w", err)
	}

	s.removeFiles(append(obsolete, replaced...))

	logger.Info().
		Str("id", next.ID).
		Str("kinds", d.Selected.String()).
		Int("files_replaced", len(replaced)).
		Int("files_dropped", len(obsolete)).
		Msg("Resource updated")
	updated := next.ToDomain()
	s.events.ResourceUpdated(updated)
	return updated, nil
}

// GetResourceByID retrieves a resource by ID
func (s *resourceServiceImpl) GetResourceByID(ctx context.Context, id string) (*domain.Existing, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.ToDomain(), nil
}

// ListResources returns one page of resources matching the filter
func (s *resourceServiceImpl) ListResources(ctx context.Context, filter *dto.ResourceFilterRequest) (*dto.ResourceListResponse, error) {
	params := repositories.ResourceListParams{
		University: strings.TrimSpace(filter.University),
		Branch:     strings.TrimSpace(filter.Branch),
		Semester:   strings.TrimSpace(filter.Semester),
		Subject:    strings.TrimSpace(filter.Subject),
		Ascending:  repositories.ParseSortOrder(filter.SortOrder),
	}
	if filter.Kind != "" {
		kind, err := domain.ParseKind(filter.Kind)
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, err.Error()).WithField("kind")
		}
		params.Kind = kind
	}

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	params.Offset = offset
	params.Limit = uint64(limit)

	rows, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("error listing resources: %w", err)
	}

	resources := make([]*domain.Existing, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, r.ToDomain())
	}

	return &dto.ResourceListResponse{
		Resources:  resources,
		Pagination: helpers.NewPaginationInfo(total, filter.Page, limit),
	}, nil
}

// DeleteResource removes a resource and its stored files
func (s *resourceServiceImpl) DeleteResource(ctx context.Context, id string) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting resource: %w", err)
	}

	s.removeFiles(r.FilePaths())
	logger.Info().Str("id", id).Msg("Resource deleted")
	s.events.ResourceDeleted(r.ToDomain())
	return nil
}

// Catalog lists the values the enumerated fields accept.
func (s *resourceServiceImpl) Catalog() *dto.CatalogResponse {
	return &dto.CatalogResponse{
		Universities: domain.Universities,
		Branches:     domain.Branches,
		Semesters:    domain.Semesters,
		Subjects:     domain.Subjects,
		Kinds:        domain.Kinds,
	}
}
