package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type LocalStorage struct {
	basePath string
	baseURL  string
	maxBytes int64
	logger   *zap.Logger
}

// NewLocalStorage writes files under basePath/<ownerID>/ and reports URLs
// rooted at baseURL.
func NewLocalStorage(basePath, baseURL string, maxBytes int64, logger ...*zap.Logger) (*LocalStorage, error) {
	l := zap.L().Named("storage.local")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("storage.local")
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		l.Error("create storage directory failed", zap.String("path", basePath), zap.Error(err))
		return nil, fmt.Errorf("create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		logger:   l,
	}, nil
}

func (s *LocalStorage) Save(ctx context.Context, ownerID string, upload Upload) (StoredFile, error) {
	if upload.Body == nil {
		return StoredFile{}, ErrFileRequired
	}
	if s.maxBytes > 0 && upload.Size > s.maxBytes {
		return StoredFile{}, ErrFileTooLarge
	}
	if _, err := uuid.Parse(ownerID); err != nil {
		return StoredFile{}, fmt.Errorf("invalid owner id %q", ownerID)
	}

	br := bufio.NewReaderSize(upload.Body, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return StoredFile{}, fmt.Errorf("read upload: %w", err)
	}
	if len(head) == 0 {
		return StoredFile{}, ErrFileRequired
	}

	mimeType := DetectContentType(head, upload.ContentType)
	ext, ok := allowedTypes[mimeType]
	if !ok {
		s.logger.Warn("upload rejected by content type",
			zap.String("owner_id", ownerID),
			zap.String("declared", upload.ContentType),
			zap.String("detected", mimeType),
		)
		return StoredFile{}, ErrUnsupportedFileType
	}

	dir := filepath.Join(s.basePath, ownerID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return StoredFile{}, fmt.Errorf("create owner directory: %w", err)
	}

	fileName := uuid.NewString() + ext
	dstPath := filepath.Join(dir, fileName)
	dst, err := os.Create(dstPath)
	if err != nil {
		return StoredFile{}, fmt.Errorf("create destination file: %w", err)
	}

	var src io.Reader = br
	if s.maxBytes > 0 {
		src = io.LimitReader(br, s.maxBytes+1)
	}
	written, err := io.Copy(dst, readerWithContext(ctx, src))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && written > s.maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(dstPath)
		if errors.Is(err, ErrFileTooLarge) {
			return StoredFile{}, err
		}
		s.logger.Error("write upload failed", zap.String("path", dstPath), zap.Error(err))
		return StoredFile{}, fmt.Errorf("save file content: %w", err)
	}

	stored := StoredFile{
		URL:          s.baseURL + "/" + path.Join(ownerID, fileName),
		FileName:     fileName,
		OriginalName: filepath.Base(upload.OriginalName),
		MimeType:     mimeType,
		Size:         written,
	}
	s.logger.Info("file saved",
		zap.String("owner_id", ownerID),
		zap.String("original_name", stored.OriginalName),
		zap.String("url", stored.URL),
	)
	return stored, nil
}

// Delete is idempotent: a missing file is not an error.
func (s *LocalStorage) Delete(_ context.Context, url string) error {
	rel := strings.TrimPrefix(strings.TrimPrefix(url, s.baseURL), "/")
	owner, name := path.Split(rel)
	owner = strings.TrimSuffix(owner, "/")
	if _, err := uuid.Parse(owner); err != nil || name == "" || strings.Contains(name, "..") {
		return fmt.Errorf("invalid file url: %s", url)
	}

	err := os.Remove(filepath.Join(s.basePath, owner, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return ctxReader{ctx: ctx, r: r}
}
