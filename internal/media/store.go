package media

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hivedesk/helpdesk/internal/domain"
)

// MetadataStore persists attachment rows in lock-step with files on disk.
type MetadataStore interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	UpdateContent(ctx context.Context, id, path, fileName, mimeType string, sizeBytes int64) error
	Delete(ctx context.Context, id string) error
}

// Store coordinates attachment content on the filesystem with its metadata
// row. There is no two-phase commit between the two; operations are ordered
// so the only reachable inconsistency is an orphan file without a row,
// surfaced as ErrNotPersisted.
//
// Concurrent calls for distinct paths are safe. Serializing concurrent
// writes to the same path is the caller's lock to hold.
type Store struct {
	root     string
	metadata MetadataStore
	logger   *zap.Logger
	now      func() time.Time
}

// NewStore builds a store rooted at the given media directory.
func NewStore(root string, metadata MetadataStore, logger *zap.Logger) *Store {
	return &Store{
		root:     root,
		metadata: metadata,
		now:      time.Now,
		logger:   logger,
	}
}

// CreateInput describes a new attachment upload.
type CreateInput struct {
	TicketID string
	FileName string
	MimeType string
	Content  []byte
}

// Create writes content under a date-derived path and, only once the write
// has succeeded, persists the metadata row. A failed write leaves no row
// behind; a failed row commit leaves an orphan file and returns
// ErrNotPersisted.
func (s *Store) Create(ctx context.Context, in CreateInput) (*domain.Attachment, error) {
	stored := storedPathFor(s.now(), in.FileName)
	if !ValidStoredPath(stored) {
		return nil, storeErr("create", stored, ErrInvalidPath, nil)
	}

	if err := s.writeContent(stored, in.Content); err != nil {
		return nil, storeErr("create", stored, ErrIOFailure, err)
	}

	attachment := &domain.Attachment{
		ID:        uuid.NewString(),
		TicketID:  in.TicketID,
		Path:      stored,
		FileName:  in.FileName,
		MimeType:  in.MimeType,
		SizeBytes: int64(len(in.Content)),
	}
	if err := s.metadata.Create(ctx, attachment); err != nil {
		s.logger.Error("attachment file written but row not persisted",
			zap.String("path", stored), zap.Error(err))
		return nil, storeErr("create", stored, ErrNotPersisted, err)
	}
	return attachment, nil
}

// Replace swaps an attachment's content: validates and deletes the old file
// first, then writes the new content and rewrites the row's path, file name,
// mime type and size in one update. If validation or the old deletion fails,
// nothing changes. If the new write fails after the old file was deleted,
// the row is left pointing at the now-deleted old path; that window is
// inherent to the ordering and the caller learns of it through the returned
// IO failure.
func (s *Store) Replace(ctx context.Context, attachmentID, fileName, mimeType string, content []byte, oldStoredPath string) (string, error) {
	if !ValidStoredPath(oldStoredPath) {
		return "", storeErr("replace", oldStoredPath, ErrInvalidPath, nil)
	}
	if err := s.removeContent(oldStoredPath); err != nil {
		return "", storeErr("replace", oldStoredPath, ErrIOFailure, err)
	}

	stored := storedPathFor(s.now(), fileName)
	if !ValidStoredPath(stored) {
		return "", storeErr("replace", stored, ErrInvalidPath, nil)
	}
	if err := s.writeContent(stored, content); err != nil {
		return "", storeErr("replace", stored, ErrIOFailure, err)
	}

	if err := s.metadata.UpdateContent(ctx, attachmentID, stored, fileName, mimeType, int64(len(content))); err != nil {
		s.logger.Error("attachment file replaced but row not repointed",
			zap.String("path", stored), zap.Error(err))
		return "", storeErr("replace", stored, ErrNotPersisted, err)
	}
	return stored, nil
}

// Delete removes the file behind a stored path and only then the metadata
// row. A path failing validation aborts before anything is touched: the
// store refuses to delete what it cannot prove is safe.
func (s *Store) Delete(ctx context.Context, storedPath, attachmentID string) error {
	if !ValidStoredPath(storedPath) {
		return storeErr("delete", storedPath, ErrInvalidPath, nil)
	}
	if err := s.removeContent(storedPath); err != nil {
		return storeErr("delete", storedPath, ErrIOFailure, err)
	}
	if err := s.metadata.Delete(ctx, attachmentID); err != nil {
		s.logger.Error("attachment file deleted but row not removed",
			zap.String("path", storedPath), zap.Error(err))
		return storeErr("delete", storedPath, ErrNotPersisted, err)
	}
	return nil
}

// Resolve maps a stored path to its absolute filesystem location.
func (s *Store) Resolve(storedPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(storedPath))
}

func (s *Store) writeContent(storedPath string, content []byte) error {
	abs := s.Resolve(storedPath)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return err
	}
	return os.WriteFile(abs, content, 0o644)
}

// removeContent deletes the file if present; a missing file is already gone
// and is not an error.
func (s *Store) removeContent(storedPath string) error {
	err := os.Remove(s.Resolve(storedPath))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
