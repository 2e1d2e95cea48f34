package filestorage

import (
	"github.com/yigit/resourcehub/internal/domain"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save stores an upload under subPath and returns the path clients use to
	// fetch it.
	Save(upload *domain.Upload, subPath string) (string, error)

	// Delete removes a previously saved file. Missing files are not an error.
	Delete(filePath string) error

	// FullPath returns the full filesystem path for a given file URL
	FullPath(fileURL string) string
}
