package resumesrv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/errx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/fsx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/kernel"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/logx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/pkg/metricsx"
	"github.com/jmorenovfever/AI4Devs-backend-fever/recruitment/resume"
)

// UploadRequest describes one uploaded CV
type UploadRequest struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Service stores CV files for later attachment to candidates
type Service struct {
	fileSystem fsx.FileSystem
	now        func() time.Time
	newID      func() string
}

func NewService(fileSystem fsx.FileSystem) *Service {
	return &Service{
		fileSystem: fileSystem,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Upload validates and stores a CV. The returned path is what clients send
// as the cv of a new candidate.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*resume.StoredFile, error) {
	if req.Body == nil {
		return nil, resume.ErrFileRequired()
	}
	if req.Size > resume.MaxUploadSize {
		return nil, resume.ErrFileTooLarge().
			WithDetail("size", req.Size).
			WithDetail("max_size", resume.MaxUploadSize)
	}

	declared, ok := resume.DetectFileType(req.Filename, req.ContentType)
	if !ok {
		return nil, resume.ErrInvalidFileType().WithDetail("content_type", req.ContentType)
	}

	// Sniff the head, then replay it in front of the rest of the stream
	var head bytes.Buffer
	detected, err := mimetype.DetectReader(io.TeeReader(req.Body, &head))
	if err != nil {
		return nil, errx.Wrap(err, "failed to read upload", errx.TypeInternal)
	}
	if head.Len() == 0 {
		return nil, resume.ErrFileRequired()
	}
	fileType, ok := resume.MatchContent(declared, detected)
	if !ok {
		return nil, resume.ErrInvalidFileType().
			WithDetail("content_type", req.ContentType).
			WithDetail("detected_type", detected.String())
	}

	// Format: resumes/{year}/{month}/{uuid}.{ext}
	now := s.now()
	filePath := path.Join(
		"resumes",
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		s.newID()+resume.Extension(fileType),
	)

	// Cap the stream in case the declared size was wrong
	body := io.LimitReader(io.MultiReader(&head, req.Body), resume.MaxUploadSize+1)
	counter := &countingReader{r: body}
	if err := s.fileSystem.WriteFile(ctx, filePath, counter, string(fileType)); err != nil {
		return nil, resume.ErrStorageFailed(err)
	}
	if counter.n > resume.MaxUploadSize {
		if err := s.fileSystem.DeleteFile(ctx, filePath); err != nil {
			logx.Warnf("failed to remove oversized upload %s: %v", filePath, err)
		}
		return nil, resume.ErrFileTooLarge().WithDetail("max_size", resume.MaxUploadSize)
	}

	metricsx.ResumeUploads.WithLabelValues(string(fileType)).Inc()
	logx.Infof("stored resume %s (%d bytes)", filePath, counter.n)

	return &resume.StoredFile{
		FilePath:   kernel.FilePath(filePath),
		FileType:   fileType,
		Size:       counter.n,
		UploadedAt: now,
	}, nil
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
