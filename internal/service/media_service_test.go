package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMediaRepo struct {
	items     map[uuid.UUID]*model.MediaFile
	createErr error
}

func newFakeMediaRepo() *fakeMediaRepo {
	return &fakeMediaRepo{items: map[uuid.UUID]*model.MediaFile{}}
}

func (r *fakeMediaRepo) Create(_ context.Context, m *model.MediaFile) error {
	if r.createErr != nil {
		return r.createErr
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	r.items[m.ID] = &cp
	return nil
}

func (r *fakeMediaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MediaFile, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMediaRepo) List(_ context.Context, _, _ int) ([]model.MediaFile, int64, error) {
	out := make([]model.MediaFile, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *fakeMediaRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

// fakeStorage keeps uploaded bytes in a map and records removals.
type fakeStorage struct {
	files   map[string][]byte
	removed []string
	seq     int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (s *fakeStorage) Save(fileName string, r io.Reader) (string, int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	s.seq++
	path := fmt.Sprintf("%d-%s", s.seq, fileName)
	s.files[path] = data
	return path, int64(len(data)), nil
}

func (s *fakeStorage) Remove(storagePath string) error {
	delete(s.files, storagePath)
	s.removed = append(s.removed, storagePath)
	return nil
}

func TestMediaUpload_StoresFileAndRow(t *testing.T) {
	repo := newFakeMediaRepo()
	storage := newFakeStorage()
	svc := NewMediaService(repo, storage, 1)
	actor := uuid.New()

	resp, err := svc.Upload(context.Background(), "photo.jpg", "image/jpeg", 4, strings.NewReader("abcd"), actor)
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", resp.FileName)
	assert.Equal(t, int64(4), resp.SizeBytes)
	assert.Equal(t, actor, resp.UploadedBy)
	assert.True(t, strings.HasPrefix(resp.URL, "/media/"))
	assert.Len(t, storage.files, 1)
	assert.Len(t, repo.items, 1)
}

func TestMediaUpload_RejectsDisallowedType(t *testing.T) {
	svc := NewMediaService(newFakeMediaRepo(), newFakeStorage(), 1)

	_, err := svc.Upload(context.Background(), "script.sh", "application/x-sh", 4, strings.NewReader("abcd"), uuid.New())
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestMediaUpload_RejectsDeclaredOversize(t *testing.T) {
	storage := newFakeStorage()
	svc := NewMediaService(newFakeMediaRepo(), storage, 1)

	_, err := svc.Upload(context.Background(), "big.png", "image/png", 2*1024*1024, strings.NewReader("x"), uuid.New())
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, storage.files, "rejected upload must not reach storage")
}

func TestMediaUpload_RejectsActualOversizeAndCleansUp(t *testing.T) {
	storage := newFakeStorage()
	svc := NewMediaService(newFakeMediaRepo(), storage, 1)

	// Declared size fits, actual stream exceeds the 1 MB limit.
	oversized := strings.NewReader(strings.Repeat("x", 1024*1024+10))
	_, err := svc.Upload(context.Background(), "lie.png", "image/png", 100, oversized, uuid.New())
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, storage.files, "partial file must be removed")
	assert.Len(t, storage.removed, 1)
}

func TestMediaUpload_CleansUpWhenInsertFails(t *testing.T) {
	repo := newFakeMediaRepo()
	repo.createErr = fmt.Errorf("insert failed")
	storage := newFakeStorage()
	svc := NewMediaService(repo, storage, 1)

	_, err := svc.Upload(context.Background(), "photo.jpg", "image/jpeg", 4, strings.NewReader("abcd"), uuid.New())
	require.Error(t, err)
	assert.Empty(t, storage.files)
}

func TestMediaDelete_RemovesRowAndFile(t *testing.T) {
	repo := newFakeMediaRepo()
	storage := newFakeStorage()
	svc := NewMediaService(repo, storage, 1)

	resp, err := svc.Upload(context.Background(), "photo.jpg", "image/jpeg", 4, strings.NewReader("abcd"), uuid.New())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resp.ID))
	assert.Empty(t, repo.items)
	assert.Empty(t, storage.files)
}

func TestMediaDelete_UnknownID(t *testing.T) {
	svc := NewMediaService(newFakeMediaRepo(), newFakeStorage(), 1)
	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}
