package service

import (
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"go-docs-api/internal/model"
	"go-docs-api/internal/storage"
	"go-docs-api/internal/util"
)

type UploadService struct {
	store *storage.Storage
}

func NewUploadService(store *storage.Storage) *UploadService {
	return &UploadService{store: store}
}

// Upload stores the file under a media-type directory derived from its MIME
// type and returns the public descriptor. The stored name is prefixed with a
// random id so repeated uploads of the same file never collide.
func (s *UploadService) Upload(originalName string, declaredType string, r io.Reader) (model.UploadedFile, error) {
	cleanName, err := util.SanitizeFilename(originalName)
	if err != nil {
		return model.UploadedFile{}, err
	}

	fileType := mediaType(declaredType, cleanName)
	storedName := uuid.NewString() + "-" + cleanName

	size, err := s.store.Save(fileType, storedName, r)
	if err != nil {
		return model.UploadedFile{}, err
	}

	return model.UploadedFile{
		OriginalName: originalName,
		Filename:     storedName,
		FileType:     fileType,
		URL:          "/public/" + fileType + "/" + storedName,
		Size:         size,
	}, nil
}

func (s *UploadService) List() ([]model.FileInfo, error) {
	return s.store.List()
}

func (s *UploadService) Delete(filename string) error {
	cleanName, err := util.SanitizeFilename(filename)
	if err != nil {
		return err
	}
	return s.store.Delete(cleanName)
}

// mediaType returns the first segment of the MIME type ("image/png" →
// "image"), falling back to the extension-derived type, then "application".
func mediaType(declared string, filename string) string {
	candidate := strings.TrimSpace(declared)
	if candidate == "" {
		candidate = mime.TypeByExtension(filepath.Ext(filename))
	}

	if idx := strings.Index(candidate, "/"); idx > 0 {
		candidate = candidate[:idx]
	}

	candidate = strings.ToLower(strings.TrimSpace(candidate))
	if candidate == "" {
		return "application"
	}
	return candidate
}
