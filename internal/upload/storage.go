package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"catalogadmin/backend/internal/domain"
)

const MaxFileSize = 5 << 20 // 5MB

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrNotAnImage   = errors.New("only image files are allowed")
	ErrFileTooLarge = errors.New("file size must not exceed 5MB")
	ErrInvalidDir   = errors.New("invalid upload directory")
)

// Storage writes uploaded product images under a base directory and hands
// back the URL path the catalog stores against the product.
type Storage struct {
	baseDir   string
	urlPrefix string
	logger    *zap.SugaredLogger
}

func NewStorage(baseDir string, urlPrefix string, logger *zap.SugaredLogger) *Storage {
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &Storage{
		baseDir:   baseDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		logger:    logger,
	}
}

// Save stores one uploaded file under baseDir/subDir with a generated name,
// keeping the original extension.
func (s *Storage) Save(header *multipart.FileHeader, subDir string) (domain.UploadResult, error) {
	subDir, err := cleanSubDir(subDir)
	if err != nil {
		return domain.UploadResult{}, err
	}
	if header.Size == 0 {
		return domain.UploadResult{}, ErrEmptyFile
	}
	if header.Size > MaxFileSize {
		return domain.UploadResult{}, ErrFileTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return domain.UploadResult{}, ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.baseDir, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.UploadResult{}, fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	fileName := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return domain.UploadResult{}, fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return domain.UploadResult{}, fmt.Errorf("write upload file: %w", err)
	}

	result := domain.UploadResult{
		FileName: fileName,
		FileURL:  fmt.Sprintf("%s/%s/%s", s.urlPrefix, subDir, fileName),
	}
	s.logger.Infow("file uploaded", "file", result.FileURL, "size", header.Size)
	return result, nil
}

// SaveAll stores files one at a time, stopping at the first failure. Files
// already written stay on disk; the caller reports the batch as a single
// failure so the product is never created with a partial image set.
func (s *Storage) SaveAll(headers []*multipart.FileHeader, subDir string) ([]domain.UploadResult, error) {
	results := make([]domain.UploadResult, 0, len(headers))
	for _, header := range headers {
		result, err := s.Save(header, subDir)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", header.Filename, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Delete removes a stored file by name. Both the name and the sub-directory
// are sanitized so a crafted path cannot escape the upload directory.
func (s *Storage) Delete(fileName string, subDir string) error {
	subDir, err := cleanSubDir(subDir)
	if err != nil {
		return err
	}
	clean := filepath.Base(fileName)
	if clean == "." || clean == ".." || clean == "" {
		return ErrEmptyFile
	}
	path := filepath.Join(s.baseDir, subDir, clean)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete upload: %w", err)
	}
	s.logger.Infow("file deleted", "file", clean)
	return nil
}

// cleanSubDir accepts only a single plain directory name. Separators and
// dot segments would let a crafted request write or delete outside baseDir.
func cleanSubDir(subDir string) (string, error) {
	if subDir == "" || strings.Contains(subDir, "..") || strings.ContainsAny(subDir, `/\`) {
		return "", ErrInvalidDir
	}
	return subDir, nil
}
