package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/baharkarakas/studygo-backend/internal/metrics"
	"github.com/baharkarakas/studygo-backend/internal/models"
	"github.com/baharkarakas/studygo-backend/internal/storage"
)

type UploadService struct {
	store   storage.Store
	baseURL string
	now     func() time.Time
}

func NewUploadService(store storage.Store, baseURL string) *UploadService {
	return &UploadService{store: store, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// Upload stores r under a generated name and returns its public URL.
func (s *UploadService) Upload(ctx context.Context, originalName string, r io.Reader, size int64, contentType string) (string, error) {
	name, err := storage.NewName(originalName, s.now())
	if err != nil {
		return "", models.NewInternalError(err)
	}
	cr := &countingReader{r: r}
	if err := s.store.Save(ctx, name, cr, size, contentType); err != nil {
		return "", models.NewInternalError(err)
	}
	metrics.Uploads.Inc()
	metrics.UploadBytes.Add(float64(cr.n))
	return s.baseURL + "/files/" + name, nil
}

func (s *UploadService) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.store.Open(ctx, name)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
