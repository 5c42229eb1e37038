package reports

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/icsr/icsr/internal/platform/blobstore"
	"github.com/icsr/icsr/internal/platform/e2b"
	"github.com/icsr/icsr/internal/platform/encryption"
)

// Service generates, encrypts, and stores case safety reports. Every
// operation is scoped to the owning user.
type Service struct {
	repo           Repository
	blobs          blobstore.Store
	builder        *e2b.Builder
	enforceMinimum bool
	log            zerolog.Logger
}

func NewService(repo Repository, blobs blobstore.Store, builder *e2b.Builder, enforceMinimum bool, log zerolog.Logger) *Service {
	return &Service{
		repo:           repo,
		blobs:          blobs,
		builder:        builder,
		enforceMinimum: enforceMinimum,
		log:            log,
	}
}

func (s *Service) validate(title string, data *e2b.CaseData) error {
	var problems []string
	if title == "" {
		problems = append(problems, "title is required")
	}
	if s.enforceMinimum {
		problems = append(problems, e2b.MinimumCriteria(data)...)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Create renders the case as XML, encrypts it under a fresh key, stores the
// blob, and persists the metadata row. The blob is removed again if the row
// insert fails so no orphan content is left behind.
func (s *Service) Create(ctx context.Context, ownerID, title string, data *e2b.CaseData) (*Report, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}
	if err := s.validate(title, data); err != nil {
		return nil, err
	}

	now := time.Now()
	document := s.builder.Build(data, now)

	key, err := encryption.GenerateKey()
	if err != nil {
		return nil, err
	}
	enc, err := encryption.NewEncryptor(key)
	if err != nil {
		return nil, err
	}
	sealed, err := enc.Encrypt(document)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Title:         title,
		OwnerID:       ownerID,
		Filename:      NewFilename(now),
		EncryptionKey: key,
		Metadata:      data,
	}
	if err := s.blobs.Write(ctx, rep.Filename, []byte(sealed)); err != nil {
		return nil, fmt.Errorf("store report content: %w", err)
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		if derr := s.blobs.Delete(ctx, rep.Filename); derr != nil && !errors.Is(derr, blobstore.ErrBlobNotFound) {
			s.log.Warn().Err(derr).Str("filename", rep.Filename).Msg("orphan blob left after failed insert")
		}
		return nil, err
	}

	s.log.Info().Str("report_id", rep.ID.String()).Str("owner_id", ownerID).Msg("report created")
	return rep, nil
}

// List returns the owner's reports, newest first, with the total count.
func (s *Service) List(ctx context.Context, ownerID string, limit, offset int) ([]*Report, int, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

// Get returns one report's metadata row.
func (s *Service) Get(ctx context.Context, id uuid.UUID, ownerID string) (*Report, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

// GetContent loads the encrypted blob and returns the decrypted XML document.
func (s *Service) GetContent(ctx context.Context, id uuid.UUID, ownerID string) (*Report, string, error) {
	rep, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, "", err
	}
	sealed, err := s.blobs.Read(ctx, rep.Filename)
	if err != nil {
		if errors.Is(err, blobstore.ErrBlobNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("load report content: %w", err)
	}
	enc, err := encryption.NewEncryptor(rep.EncryptionKey)
	if err != nil {
		return nil, "", err
	}
	document, err := enc.Decrypt(string(sealed))
	if err != nil {
		return nil, "", err
	}
	return rep, document, nil
}

// Update regenerates the document from the new case data and re-encrypts it
// under the report's existing key, overwriting the existing blob in place.
// The key and filename never change across updates.
func (s *Service) Update(ctx context.Context, id uuid.UUID, ownerID, title string, data *e2b.CaseData) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = rep.Title
	}
	if err := s.validate(title, data); err != nil {
		return nil, err
	}

	document := s.builder.Build(data, time.Now())
	enc, err := encryption.NewEncryptor(rep.EncryptionKey)
	if err != nil {
		return nil, err
	}
	sealed, err := enc.Encrypt(document)
	if err != nil {
		return nil, err
	}
	if err := s.blobs.Write(ctx, rep.Filename, []byte(sealed)); err != nil {
		return nil, fmt.Errorf("store report content: %w", err)
	}

	rep.Title = title
	rep.Metadata = data
	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}

	s.log.Info().Str("report_id", rep.ID.String()).Str("owner_id", ownerID).Msg("report updated")
	return rep, nil
}

// Delete removes the blob and the metadata row. A missing blob is tolerated
// so a half-deleted report can still be cleaned up.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	rep, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, rep.Filename); err != nil && !errors.Is(err, blobstore.ErrBlobNotFound) {
		return fmt.Errorf("delete report content: %w", err)
	}
	if err := s.repo.Delete(ctx, rep.ID); err != nil {
		return err
	}

	s.log.Info().Str("report_id", rep.ID.String()).Str("owner_id", ownerID).Msg("report deleted")
	return nil
}
