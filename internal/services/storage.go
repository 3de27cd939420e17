package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ResumeFetcher reads stored resume bytes back by reference.
type ResumeFetcher interface {
	Fetch(ctx context.Context, ref string) (*Document, error)
}

type StorageService interface {
	ResumeFetcher
	SaveFile(file *multipart.FileHeader, prefix string) (string, string, error)
	ReadUpload(file *multipart.FileHeader) (*Document, error)
	GetFilePath(filename string) string
	DeleteFile(filename string) error
	EnsureUploadDir() error
}

var uploadExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

type storageService struct {
	uploadPath string
	createFile func(name string) (io.WriteCloser, error)
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		createFile: func(name string) (io.WriteCloser, error) {
			return os.Create(name)
		},
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile stores an uploaded resume under a generated name and returns the
// name (the resume reference) and the full path.
func (s *storageService) SaveFile(file *multipart.FileHeader, prefix string) (string, string, error) {
	// Validate file extensions
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !uploadExtensions[ext] {
		return "", "", fmt.Errorf("%w: invalid file extension: %s", ErrValidation, ext)
	}

	// Generate the unique filename
	uniqueFilename := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	// Open source file
	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := s.writeFile(filePath, src); err != nil {
		return "", "", err
	}

	return uniqueFilename, filePath, nil
}

// writeFile copies src to path. A partial file is removed on any failure,
// including a failed Close.
func (s *storageService) writeFile(path string, src io.Reader) error {
	dst, err := s.createFile(path)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to save file: %w", err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to flush file: %w", err)
	}

	return nil
}

// ReadUpload loads an uploaded pdf, doc or docx into memory without storing it.
func (s *storageService) ReadUpload(file *multipart.FileHeader) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !uploadExtensions[ext] {
		return nil, fmt.Errorf("%w: invalid file extension: %s", ErrValidation, ext)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: uploaded file %s is empty", ErrValidation, file.Filename)
	}

	return &Document{
		Name:     file.Filename,
		Data:     data,
		MimeType: MimeTypeForFilename(file.Filename),
	}, nil
}

// Fetch implements ResumeFetcher. The media type follows the stored extension.
func (s *storageService) Fetch(ctx context.Context, ref string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ref = strings.TrimSpace(ref)
	if ref == "" || filepath.Base(ref) != ref {
		return nil, fmt.Errorf("invalid resume reference %q", ref)
	}

	mimeType := MimeTypeForFilename(ref)
	if mimeType == "" {
		return nil, fmt.Errorf("unsupported resume file type: %s", ref)
	}

	data, err := os.ReadFile(s.GetFilePath(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", ref, err)
	}

	return &Document{
		Name:     ref,
		Data:     data,
		MimeType: mimeType,
	}, nil
}

func (s *storageService) GetFilePath(filename string) string {
	return filepath.Join(s.uploadPath, filename)
}

func (s *storageService) DeleteFile(filename string) error {
	filePath := s.GetFilePath(filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
