package storage

import (
	"context"
	"io"
	"net/http"

	"go-hiring/internal/shared/apperror"
)

// Upload is a single incoming file, already detached from the transport.
type Upload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

type StoredFile struct {
	URL          string
	FileName     string
	OriginalName string
	MimeType     string
	Size         int64
}

//go:generate mockgen -source=storage.go -destination=mock/storage_mock.go -package=mock
type FileStorage interface {
	Save(ctx context.Context, ownerID string, upload Upload) (StoredFile, error)
	Delete(ctx context.Context, url string) error
}

var (
	ErrFileRequired = apperror.New(
		apperror.CodeInvalidInput,
		"File is required.",
		http.StatusBadRequest,
	)
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"Only PDF, PNG or JPEG files are allowed.",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"File exceeds the maximum allowed size.",
		http.StatusRequestEntityTooLarge,
	)
)

var allowedTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// DetectContentType sniffs the first bytes; the client-declared type is
// only trusted when sniffing is inconclusive.
func DetectContentType(head []byte, declared string) string {
	sniffed := http.DetectContentType(head)
	if _, ok := allowedTypes[sniffed]; ok {
		return sniffed
	}
	if sniffed == "application/octet-stream" {
		return declared
	}
	return sniffed
}
