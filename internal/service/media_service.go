package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"backoffice/internal/dto"
	"backoffice/internal/model"
	"backoffice/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// allowedMediaTypes is the upload whitelist: storefront images plus PDF
// documents (datasheets, size guides).
var allowedMediaTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// MediaStorage persists uploaded bytes. The disk implementation lives in
// internal/infra.
type MediaStorage interface {
	Save(fileName string, r io.Reader) (storagePath string, size int64, err error)
	Remove(storagePath string) error
}

// MediaService covers the media library page.
type MediaService interface {
	Upload(ctx context.Context, fileName, mimeType string, size int64, r io.Reader, uploadedBy uuid.UUID) (*dto.MediaFileResponse, error)
	List(ctx context.Context, page, perPage int) (*dto.MediaListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type mediaService struct {
	repo     repository.MediaRepository
	storage  MediaStorage
	maxBytes int64
}

func NewMediaService(repo repository.MediaRepository, storage MediaStorage, maxSizeMB int) MediaService {
	return &mediaService{repo: repo, storage: storage, maxBytes: int64(maxSizeMB) * 1024 * 1024}
}

func mapMedia(m model.MediaFile) dto.MediaFileResponse {
	return dto.MediaFileResponse{
		ID:         m.ID,
		FileName:   m.FileName,
		URL:        "/media/" + m.StoragePath,
		MimeType:   m.MimeType,
		SizeBytes:  m.SizeBytes,
		UploadedBy: m.UploadedBy,
		CreatedAt:  m.CreatedAt,
	}
}

func (s *mediaService) Upload(ctx context.Context, fileName, mimeType string, size int64, r io.Reader, uploadedBy uuid.UUID) (*dto.MediaFileResponse, error) {
	if !allowedMediaTypes[mimeType] {
		return nil, fmt.Errorf("%w : type de fichier non autorisé (%s)", ErrInvalid, mimeType)
	}
	if size > s.maxBytes {
		return nil, fmt.Errorf("%w : fichier trop volumineux (max %d Mo)", ErrInvalid, s.maxBytes/(1024*1024))
	}

	storagePath, written, err := s.storage.Save(fileName, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if written > s.maxBytes {
		// Declared size lied; remove the partial file and reject.
		if rmErr := s.storage.Remove(storagePath); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", storagePath).Msg("media: cleanup after oversized upload failed")
		}
		return nil, fmt.Errorf("%w : fichier trop volumineux (max %d Mo)", ErrInvalid, s.maxBytes/(1024*1024))
	}

	m := &model.MediaFile{
		FileName:    fileName,
		StoragePath: storagePath,
		MimeType:    mimeType,
		SizeBytes:   written,
		UploadedBy:  uploadedBy,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		if rmErr := s.storage.Remove(storagePath); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", storagePath).Msg("media: cleanup after failed insert failed")
		}
		return nil, err
	}
	resp := mapMedia(*m)
	return &resp, nil
}

func (s *mediaService) List(ctx context.Context, page, perPage int) (*dto.MediaListResponse, error) {
	list, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MediaFileResponse, 0, len(list))
	for _, m := range list {
		items = append(items, mapMedia(m))
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 40
	}
	return &dto.MediaListResponse{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *mediaService) Delete(ctx context.Context, id uuid.UUID) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w : fichier", ErrNotFound)
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	// Best effort: the row is gone, an orphan file only wastes disk.
	if err := s.storage.Remove(m.StoragePath); err != nil {
		log.Warn().Err(err).Str("path", m.StoragePath).Msg("media: file removal failed")
	}
	return nil
}
