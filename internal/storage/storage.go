// Package storage keeps uploaded files on the local filesystem under a
// public root, grouped into one directory per media type.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go-docs-api/internal/model"
)

type Storage struct {
	rootAbs string
}

func New(root string) (*Storage, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("public root cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve public root: %w", err)
	}

	if err := os.MkdirAll(rootAbs, 0o755); err != nil {
		return nil, fmt.Errorf("create public root: %w", err)
	}

	return &Storage{rootAbs: rootAbs}, nil
}

func (s *Storage) RootAbs() string {
	return s.rootAbs
}

// Save writes the file under <root>/<fileType>/<filename> and returns the
// number of bytes written. fileType and filename must already be sanitized.
func (s *Storage) Save(fileType string, filename string, r io.Reader) (int64, error) {
	dir, err := s.resolve(fileType)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create media type dir: %w", err)
	}

	target, err := s.resolve(filepath.Join(fileType, filename))
	if err != nil {
		return 0, err
	}

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(target)
		return 0, fmt.Errorf("write file: %w", err)
	}

	return written, nil
}

// List walks every media-type directory and returns the stored files.
func (s *Storage) List() ([]model.FileInfo, error) {
	typeDirs, err := os.ReadDir(s.rootAbs)
	if err != nil {
		return nil, fmt.Errorf("read public root: %w", err)
	}

	files := make([]model.FileInfo, 0)
	for _, typeDir := range typeDirs {
		if !typeDir.IsDir() {
			continue
		}

		entries, err := os.ReadDir(filepath.Join(s.rootAbs, typeDir.Name()))
		if err != nil {
			return nil, fmt.Errorf("read media type dir %q: %w", typeDir.Name(), err)
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %q: %w", entry.Name(), err)
			}

			files = append(files, model.FileInfo{
				FileName:  entry.Name(),
				FileType:  typeDir.Name(),
				URL:       "/public/" + typeDir.Name() + "/" + entry.Name(),
				Size:      info.Size(),
				CreatedAt: info.ModTime(),
				UpdatedAt: info.ModTime(),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].FileType != files[j].FileType {
			return files[i].FileType < files[j].FileType
		}
		return files[i].FileName < files[j].FileName
	})

	return files, nil
}

// Delete removes the named file from whichever media-type directory holds
// it. Returns model.ErrFileNotFound when no directory does.
func (s *Storage) Delete(filename string) error {
	typeDirs, err := os.ReadDir(s.rootAbs)
	if err != nil {
		return fmt.Errorf("read public root: %w", err)
	}

	for _, typeDir := range typeDirs {
		if !typeDir.IsDir() {
			continue
		}

		target, err := s.resolve(filepath.Join(typeDir.Name(), filename))
		if err != nil {
			return err
		}

		if _, err := os.Stat(target); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat %q: %w", filename, err)
		}

		if err := os.Remove(target); err != nil {
			return fmt.Errorf("remove %q: %w", filename, err)
		}
		return nil
	}

	return model.ErrFileNotFound
}

// resolve joins rel onto the root and rejects any path that escapes it.
func (s *Storage) resolve(rel string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(rel), `\`, "/")
	if strings.Contains(normalized, "\x00") {
		return "", model.ErrInvalidInput
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", model.ErrInvalidInput
		}
	}

	resolved := filepath.Join(s.rootAbs, filepath.Clean(strings.TrimPrefix(normalized, "/")))
	if resolved != s.rootAbs && !strings.HasPrefix(resolved, s.rootAbs+string(filepath.Separator)) {
		return "", model.ErrInvalidInput
	}

	return resolved, nil
}
