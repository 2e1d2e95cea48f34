package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/resourcehub/internal/app/models/dto"
	"github.com/yigit/resourcehub/internal/app/services"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/middleware"
	"github.com/yigit/resourcehub/internal/pkg/apperrors"
	"github.com/yigit/resourcehub/internal/pkg/helpers"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

// ResourceController handles resource related operations
type ResourceController struct {
	resourceService services.ResourceService
	maxUploadBytes  int64
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, maxUploadBytes int64) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		maxUploadBytes:  maxUploadBytes,
	}
}

// selectedKinds reads the submitted kinds from the resourceType values when
// the client sends them, one value per kind or comma separated. Otherwise a
// kind counts as selected when any of its fields was sent.
func selectedKinds(form *multipart.Form) (domain.KindSet, error) {
	var selected domain.KindSet
	if values, ok := form.Value[domain.FieldResourceType]; ok {
		for _, v := range values {
			for _, part := range strings.Split(v, ",") {
				if strings.TrimSpace(part) == "" {
					continue
				}
				k, err := domain.ParseKind(part)
				if err != nil {
					return 0, apperrors.NewCustomError(apperrors.ErrValidationFailed,
						fmt.Sprintf("Unknown resource type %q", strings.TrimSpace(part))).
						WithField(domain.FieldResourceType)
				}
				selected = selected.With(k)
			}
		}
		return selected, nil
	}

	for _, k := range domain.Kinds {
		for _, name := range domain.KindFields[k] {
			if _, ok := form.Value[name]; ok {
				selected = selected.With(k)
			}
			if _, ok := form.File[name]; ok {
				selected = selected.With(k)
			}
		}
	}
	return selected, nil
}

// readUpload loads and sniffs the file sent under field. A missing file
// yields nil without error.
func readUpload(form *multipart.Form, field string) (*domain.Upload, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}
	header := headers[0]

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded %s: %w", field, err)
	}
	defer f.Close()

	upload, err := domain.ReadUpload(header.Filename, f)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckMedia(field, upload); err != nil {
		return nil, err
	}
	return upload, nil
}

// bindDraft builds a draft from a multipart request.
func (c *ResourceController) bindDraft(ctx *gin.Context) (*domain.Draft, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewCustomError(apperrors.ErrUploadTooLarge,
				fmt.Sprintf("Upload exceeds %d bytes", c.maxUploadBytes))
		}
		return nil, apperrors.NewBadRequestError("Request must be multipart/form-data")
	}

	var req dto.ResourceFormRequest
	if err := ctx.ShouldBind(&req); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid form fields")
	}

	selected, err := selectedKinds(form)
	if err != nil {
		return nil, err
	}
	d := req.ToDraft(selected)

	if d.Selected.Has(domain.KindPYQ) {
		if d.PYQ.File, err = readUpload(form, domain.FieldPYQFile); err != nil {
			return nil, err
		}
	}
	if d.Selected.Has(domain.KindNotes) {
		if d.Note.File, err = readUpload(form, domain.FieldNoteFile); err != nil {
			return nil, err
		}
	}
	if d.Selected.Has(domain.KindVideo) {
		if d.Video.Thumbnail, err = readUpload(form, domain.FieldVideoImage); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// CreateResource handles resource creation
// @Summary Create a resource
// @Description Creates a resource with any combination of PYQ, notes and video sub-resources. Only the fields of submitted kinds are sent.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Param university formData string true "University code"
// @Param branch formData string true "Branch code"
// @Param semester formData string true "Semester"
// @Param subject formData string true "Subject"
// @Param pyqTitle formData string false "PYQ title"
// @Param pyqFile formData file false "PYQ PDF"
// @Param noteTitle formData string false "Notes title"
// @Param noteFile formData file false "Notes PDF"
// @Param videoTitle formData string false "Video title"
// @Param videoDescription formData string false "Video description"
// @Param videoUrl formData string false "Video link"
// @Param videoImage formData file false "Video thumbnail image"
// @Success 201 {object} dto.APIResponse{data=domain.Existing} "Resource created"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 413 {object} dto.APIResponse "Upload too large"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /resource [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	draft, err := c.bindDraft(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resource, err := c.resourceService.CreateResource(ctx.Request.Context(), draft)
	if err != nil {
		logger.Warn().Err(err).Msg("Resource creation rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// UpdateResource handles resource updates
// @Summary Update a resource
// @Description Replaces a resource's fields. Stored files are kept unless a new one is uploaded; kinds that are not submitted are removed.
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Resource ID"
// @Param university formData string true "University code"
// @Param branch formData string true "Branch code"
// @Param semester formData string true "Semester"
// @Param subject formData string true "Subject"
// @Param pyqTitle formData string false "PYQ title"
// @Param pyqFile formData file false "PYQ PDF"
// @Param noteTitle formData string false "Notes title"
// @Param noteFile formData file false "Notes PDF"
// @Param videoTitle formData string false "Video title"
// @Param videoDescription formData string false "Video description"
// @Param videoUrl formData string false "Video link"
// @Param videoImage formData file false "Video thumbnail image"
// @Success 200 {object} dto.APIResponse{data=domain.Existing} "Resource updated"
// @Failure 400 {object} dto.APIResponse "Validation failed"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Security BearerAuth
// @Router /resource/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	id := ctx.Param("id")

	draft, err := c.bindDraft(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resource, err := c.resourceService.UpdateResource(ctx.Request.Context(), id, draft)
	if err != nil {
		logger.Warn().Err(err).Str("id", id).Msg("Resource update rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// GetResource handles retrieving a single resource
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=domain.Existing} "Resource retrieved"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Router /resource/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	resource, err := c.resourceService.GetResourceByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// ListResources handles listing resources
// @Summary List resources
// @Description Lists resources, newest first, with optional classification and kind filters
// @Tags resources
// @Produce json
// @Param university query string false "Filter by university"
// @Param branch query string false "Filter by branch"
// @Param semester query string false "Filter by semester"
// @Param subject query string false "Filter by subject"
// @Param kind query string false "Filter by kind (PYQ, Notes, Video)"
// @Param sortOrder query string false "Sort order by creation time (asc, desc)"
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceListResponse} "Resources retrieved"
// @Failure 400 {object} dto.APIResponse "Invalid filter"
// @Router /resource [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	var filter dto.ResourceFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("Invalid query parameters"))
		return
	}
	filter.Page, filter.Size = helpers.ParsePaginationParams(ctx)

	result, err := c.resourceService.ListResources(ctx.Request.Context(), &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// DeleteResource handles resource deletion
// @Summary Delete a resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Resource deleted"
// @Failure 401 {object} dto.APIResponse "Authentication required"
// @Failure 404 {object} dto.APIResponse "Resource not found"
// @Security BearerAuth
// @Router /resource/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	if err := c.resourceService.DeleteResource(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Resource deleted successfully"}))
}

// GetCatalog returns the accepted values of the enumerated fields
// @Summary Form catalog
// @Description Lists universities, branches, semesters, subjects and resource kinds
// @Tags resources
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CatalogResponse}
// @Router /catalog [get]
func (c *ResourceController) GetCatalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.resourceService.Catalog()))
}
