package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mailam-cse/achievers-portal/internal/pkg/logger"
)

// LocalStorage saves uploaded files on the local filesystem. Stored paths are
// relative to the base directory (e.g. "avatars/<uuid>.png") and are resolved
// to URLs with the configured base URL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a LocalStorage rooted at basePath. baseURL is the
// public URL prefix under which the directory is served.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// SaveFile saves an uploaded file under the given subdirectory and returns
// the storage-relative path. The stored filename is a fresh UUID so uploads
// never collide.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dir := ls.basePath
	if subPath != "" {
		dir = filepath.Join(ls.basePath, filepath.FromSlash(subPath))
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	filename := uuid.New().String() + ext
	dstPath := filepath.Join(dir, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := filename
	if subPath != "" {
		relPath = path.Join(subPath, filename)
	}
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relPath).Msg("File saved")
	return relPath, nil
}

// Exists reports whether a stored file is still present on disk
func (ls *LocalStorage) Exists(relPath string) bool {
	if relPath == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(ls.basePath, filepath.FromSlash(relPath)))
	return err == nil && !info.IsDir()
}

// URL returns the public URL for a stored file
func (ls *LocalStorage) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return ls.baseURL + "/" + strings.TrimLeft(relPath, "/")
}

// DeleteFile removes a stored file. Deleting a missing file is not an error,
// so the operation stays idempotent.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	if relPath == "" {
		return nil
	}

	physicalPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
