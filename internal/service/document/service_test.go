package document

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"refugee-portal/internal/config"
	"refugee-portal/internal/domain"
	"refugee-portal/internal/mocks"
	"refugee-portal/internal/pkg/validate"
)

type fakeStore struct {
	objects map[string]string
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string]string)}
}

func (f *fakeStore) PutObject(_ context.Context, _, objectName string, reader io.Reader, _ int64, _ minio.PutObjectOptions) (minio.UploadInfo, error) {
	if f.putErr != nil {
		return minio.UploadInfo{}, f.putErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	f.objects[objectName] = string(data)
	return minio.UploadInfo{Key: objectName, Size: int64(len(data))}, nil
}

func (f *fakeStore) RemoveObject(_ context.Context, _, objectName string, _ minio.RemoveObjectOptions) error {
	delete(f.objects, objectName)
	return nil
}

func (f *fakeStore) PresignedGetObject(_ context.Context, bucket, objectName string, _ time.Duration, _ url.Values) (*url.URL, error) {
	return &url.URL{Scheme: "https", Host: "storage.test", Path: "/" + bucket + "/" + objectName}, nil
}

type fixture struct {
	docs     *mocks.DocumentRepository
	profiles *mocks.ProfileRepository
	store    *fakeStore
	svc      *service
}

func newFixture() *fixture {
	f := &fixture{
		docs:     new(mocks.DocumentRepository),
		profiles: new(mocks.ProfileRepository),
		store:    newFakeStore(),
	}
	cfg := &config.Config{MinIOBucket: "docs", DocumentURLTTL: time.Minute}
	f.svc = NewService(f.docs, f.profiles, f.store, cfg, zap.NewNop()).(*service)
	f.svc.now = func() time.Time { return time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	owner := domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee}

	t.Run("stores object under dated profile path", func(t *testing.T) {
		f := newFixture()
		f.profiles.On("GetByID", ctx, owner.ProfileID).Return(&domain.Profile{ID: owner.ProfileID}, nil).Once()
		f.docs.On("Create", ctx, mock.AnythingOfType("*domain.Document")).Return(nil).Once()

		doc, err := f.svc.Upload(ctx, owner, owner.ProfileID, Upload{
			Kind:     "passport",
			FileName: "passport.pdf",
			FileSize: 4,
			MimeType: "application/pdf",
			Content:  strings.NewReader("%PDF"),
		})
		require.NoError(t, err)

		want := "documents/" + owner.ProfileID.String() + "/2026/03/" + doc.ID.String()
		assert.Equal(t, want, doc.StoragePath)
		assert.Equal(t, "%PDF", f.store.objects[want])
		assert.Contains(t, doc.URL, want)
		f.docs.AssertExpectations(t)
	})

	t.Run("rejects files over 10MB", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Upload(ctx, owner, owner.ProfileID, Upload{FileName: "big.bin", FileSize: domain.MaxDocumentSize + 1})
		var verr *validate.Error
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "file")
	})

	t.Run("refugee cannot upload for someone else", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Upload(ctx, owner, uuid.New(), Upload{FileName: "a.pdf", FileSize: 1})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("removes object when metadata insert fails", func(t *testing.T) {
		f := newFixture()
		f.profiles.On("GetByID", ctx, owner.ProfileID).Return(&domain.Profile{ID: owner.ProfileID}, nil).Once()
		f.docs.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		_, err := f.svc.Upload(ctx, owner, owner.ProfileID, Upload{FileName: "a.pdf", FileSize: 1, Content: strings.NewReader("x")})
		require.Error(t, err)
		assert.Empty(t, f.store.objects)
	})
}

func TestDeleteHidesOtherProfilesDocuments(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	doc := &domain.Document{ID: uuid.New(), ProfileID: uuid.New(), StoragePath: "documents/x"}
	f.store.objects[doc.StoragePath] = "data"
	f.docs.On("GetByID", ctx, doc.ID).Return(doc, nil)

	err := f.svc.Delete(ctx, domain.Actor{ProfileID: uuid.New(), Role: domain.RoleRefugee}, doc.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	f.docs.On("Delete", ctx, doc.ID).Return(nil).Once()
	err = f.svc.Delete(ctx, domain.Actor{ProfileID: uuid.New(), Role: domain.RoleCaseworker}, doc.ID)
	require.NoError(t, err)
	assert.NotContains(t, f.store.objects, doc.StoragePath)
}
