package filestorage

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/resourcehub/internal/domain"
	"github.com/yigit/resourcehub/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // URL prefix the stored files are served under, e.g. /uploads
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is the prefix prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStorage{
		basePath: basePath,
		baseURL:  "/" + strings.Trim(baseURL, "/"),
	}, nil
}

// Save writes the upload to a subdirectory under a generated name.
func (ls *LocalStorage) Save(upload *domain.Upload, subPath string) (string, error) {
	if upload == nil {
		return "", nil
	}

	subPath = strings.Trim(filepath.ToSlash(subPath), "/")
	if strings.Contains(subPath, "..") {
		return "", fmt.Errorf("invalid storage sub path %q", subPath)
	}

	fullDirPath := ls.basePath
	if subPath != "" {
		fullDirPath = filepath.Join(ls.basePath, filepath.FromSlash(subPath))
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Generate a unique filename to prevent collisions
	uniqueFilename := uuid.New().String() + upload.Extension()
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	if err := os.WriteFile(dstPath, upload.Data, 0o644); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to write uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	accessiblePath := path.Join(ls.baseURL, subPath, uniqueFilename)

	logger.Info().
		Str("filename", upload.Filename).
		Str("saved_as", uniqueFilename).
		Int64("size", upload.Size()).
		Str("accessible_path", accessiblePath).
		Msg("File saved successfully")
	return accessiblePath, nil
}

// Delete removes a file previously returned by Save.
func (ls *LocalStorage) Delete(filePath string) error {
	if filePath == "" {
		return nil
	}

	fullPath := ls.FullPath(filePath)
	if fullPath == "" {
		logger.Warn().Str("path", filePath).Msg("Refusing to delete file outside storage root")
		return fmt.Errorf("path %q is outside storage root", filePath)
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn().Str("path", fullPath).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", fullPath).Msg("File deleted successfully")
	return nil
}

// FullPath maps an accessible path back to the filesystem. It returns an
// empty string when the path escapes the storage root.
func (ls *LocalStorage) FullPath(fileURL string) string {
	rel := path.Clean("/" + filepath.ToSlash(fileURL))
	rel = strings.TrimPrefix(rel, ls.baseURL)
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.HasPrefix(rel, "..") {
		return ""
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(rel))
}
