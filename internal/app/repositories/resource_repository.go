package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/resourcehub/internal/app/models"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/apperrors"
	"github.com/yigit/resourcehub/internal/pkg/dberrors"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

const (
	resourcesTable      = "resources"
	resourcesPrimaryKey = "resources_pkey"
	resourcesHasKind    = "resources_has_kind"
)

var resourceColumns = []string{
	"id::text", "university", "branch", "semester", "subject",
	"pyq_title", "pyq_pdf_path",
	"note_title", "note_pdf_path",
	"video_title", "video_description", "video_url", "video_image_path",
	"created_at", "updated_at",
}

// ResourceListParams narrows and pages a resource listing.
type ResourceListParams struct {
	University string
	Branch     string
	Semester   string
	Subject    string
	Kind       domain.Kind
	Ascending  bool
	Offset     uint64
	Limit      uint64
}

// ResourceRepository handles database operations for resources
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var r models.Resource
	err := row.Scan(
		&r.ID, &r.University, &r.Branch, &r.Semester, &r.Subject,
		&r.PYQTitle, &r.PYQPDFPath,
		&r.NoteTitle, &r.NotePDFPath,
		&r.VideoTitle, &r.VideoDescription, &r.VideoURL, &r.VideoImagePath,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func mapWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, resourcesPrimaryKey):
		return apperrors.NewCustomError(apperrors.ErrConflict, "A resource with this ID already exists")
	case dberrors.IsCheckConstraintError(err, resourcesHasKind):
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Please select at least one resource type!")
	}
	return err
}

// Create inserts a resource. An ID is generated when r.ID is empty.
// CreatedAt and UpdatedAt are filled from the database.
func (repo *ResourceRepository) Create(ctx context.Context, r *models.Resource) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	query := repo.sb.Insert(resourcesTable).
		Columns(
			"id", "university", "branch", "semester", "subject",
			"pyq_title", "pyq_pdf_path",
			"note_title", "note_pdf_path",
			"video_title", "video_description", "video_url", "video_image_path",
		).
		Values(
			r.ID, r.University, r.Branch, r.Semester, r.Subject,
			r.PYQTitle, r.PYQPDFPath,
			r.NoteTitle, r.NotePDFPath,
			r.VideoTitle, r.VideoDescription, r.VideoURL, r.VideoImagePath,
		).
		Suffix("RETURNING created_at, updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := repo.db.QueryRow(ctx, sql, args...).Scan(&r.CreatedAt, &r.UpdatedAt); err != nil {
		logger.Error().Err(err).Str("id", r.ID).Msg("Failed to insert resource")
		return fmt.Errorf("error inserting resource: %w", mapWriteError(err))
	}

	return nil
}

// GetByID retrieves a resource by ID
func (repo *ResourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewResourceNotFoundError("Resource not found")
	}

	query := repo.sb.Select(resourceColumns...).
		From(resourcesTable).
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	r, err := scanResource(repo.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Resource not found")
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return r, nil
}

func (repo *ResourceRepository) applyFilters(q squirrel.SelectBuilder, p ResourceListParams) squirrel.SelectBuilder {
	eq := squirrel.Eq{}
	if p.University != "" {
		eq["university"] = p.University
	}
	if p.Branch != "" {
		eq["branch"] = p.Branch
	}
	if p.Semester != "" {
		eq["semester"] = p.Semester
	}
	if p.Subject != "" {
		eq["subject"] = p.Subject
	}
	if len(eq) > 0 {
		q = q.Where(eq)
	}

	switch p.Kind {
	case domain.KindPYQ:
		q = q.Where(squirrel.NotEq{"pyq_title": nil})
	case domain.KindNotes:
		q = q.Where(squirrel.NotEq{"note_title": nil})
	case domain.KindVideo:
		q = q.Where(squirrel.NotEq{"video_title": nil})
	}
	return q
}

// List returns one page of resources matching p and the total match count.
func (repo *ResourceRepository) List(ctx context.Context, p ResourceListParams) ([]*models.Resource, int64, error) {
	countQuery := repo.applyFilters(repo.sb.Select("COUNT(*)").From(resourcesTable), p)
	sql, args, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building count SQL: %w", err)
	}

	var total int64
	if err := repo.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting resources: %w", err)
	}

	order := "DESC"
	if p.Ascending {
		order = "ASC"
	}
	query := repo.applyFilters(repo.sb.Select(resourceColumns...).From(resourcesTable), p).
		OrderBy("created_at "+order, "id "+order).
		Limit(p.Limit).
		Offset(p.Offset)

	sql, args, err = query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := repo.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	resources := make([]*models.Resource, 0, p.Limit)
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return resources, total, nil
}

// Update overwrites every mutable column of r. UpdatedAt is refreshed from
// the database.
func (repo *ResourceRepository) Update(ctx context.Context, r *models.Resource) error {
	query := repo.sb.Update(resourcesTable).
		SetMap(map[string]interface{}{
			"university":        r.University,
			"branch":            r.Branch,
			"semester":          r.Semester,
			"subject":           r.Subject,
			"pyq_title":         r.PYQTitle,
			"pyq_pdf_path":      r.PYQPDFPath,
			"note_title":        r.NoteTitle,
			"note_pdf_path":     r.NotePDFPath,
			"video_title":       r.VideoTitle,
			"video_description": r.VideoDescription,
			"video_url":         r.VideoURL,
			"video_image_path":  r.VideoImagePath,
		}).
		Where(squirrel.Eq{"id": r.ID}).
		Suffix("RETURNING updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := repo.db.QueryRow(ctx, sql, args...).Scan(&r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewResourceNotFoundError("Resource not found")
		}
		logger.Error().Err(err).Str("id", r.ID).Msg("Failed to update resource")
		return fmt.Errorf("error updating resource: %w", mapWriteError(err))
	}

	return nil
}

// Delete removes a resource by ID
func (repo *ResourceRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewResourceNotFoundError("Resource not found")
	}

	sql, args, err := repo.sb.Delete(resourcesTable).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := repo.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("Resource not found")
	}

	return nil
}

// ParseSortOrder reports whether s requests ascending order.
func ParseSortOrder(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "asc")
}
