package document

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"refugee-portal/internal/config"
	"refugee-portal/internal/domain"
	"refugee-portal/internal/pkg/validate"
	"refugee-portal/internal/repository"
)

// ObjectStore is the subset of *minio.Client used for documents.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

type Upload struct {
	Kind     string
	FileName string
	FileSize int64
	MimeType string
	Content  io.Reader
}

type Service interface {
	Upload(ctx context.Context, actor domain.Actor, profileID uuid.UUID, upload Upload) (*domain.Document, error)
	List(ctx context.Context, actor domain.Actor, profileID uuid.UUID) ([]domain.Document, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Document, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type service struct {
	documentRepo repository.DocumentRepository
	profileRepo  repository.ProfileRepository
	store        ObjectStore
	bucket       string
	urlTTL       time.Duration
	log          *zap.Logger
	now          func() time.Time
}

func NewService(
	documentRepo repository.DocumentRepository,
	profileRepo repository.ProfileRepository,
	store ObjectStore,
	cfg *config.Config,
	log *zap.Logger,
) Service {
	return &service{
		documentRepo: documentRepo,
		profileRepo:  profileRepo,
		store:        store,
		bucket:       cfg.MinIOBucket,
		urlTTL:       cfg.DocumentURLTTL,
		log:          log,
		now:          time.Now,
	}
}

// Upload stores the file for profileID. Self uploads and staff uploads are
// allowed; the object is removed again if the metadata insert fails.
func (s *service) Upload(ctx context.Context, actor domain.Actor, profileID uuid.UUID, upload Upload) (*domain.Document, error) {
	if !actor.IsStaff() && actor.ProfileID != profileID {
		return nil, domain.ErrForbidden
	}
	if err := validate.Struct(domain.UploadDocumentInput{Kind: upload.Kind}); err != nil {
		return nil, err
	}
	if upload.FileSize <= 0 {
		return nil, &validate.Error{Fields: map[string]string{"file": "file is required"}}
	}
	if upload.FileSize > domain.MaxDocumentSize {
		return nil, &validate.Error{Fields: map[string]string{"file": "file must not exceed 10MB"}}
	}

	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	doc := &domain.Document{
		ID:         uuid.New(),
		ProfileID:  profileID,
		UploadedBy: actor.ProfileID,
		Kind:       upload.Kind,
		FileName:   upload.FileName,
		FileSize:   upload.FileSize,
		MimeType:   upload.MimeType,
	}
	if doc.Kind == "" {
		doc.Kind = "other"
	}
	doc.StoragePath = objectPath(profileID, s.now(), doc.ID)

	_, err = s.store.PutObject(ctx, s.bucket, doc.StoragePath, upload.Content, upload.FileSize, minio.PutObjectOptions{
		ContentType: upload.MimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload to object storage: %w", err)
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		if rmErr := s.store.RemoveObject(ctx, s.bucket, doc.StoragePath, minio.RemoveObjectOptions{}); rmErr != nil {
			s.log.Warn("failed to remove orphaned object", zap.String("path", doc.StoragePath), zap.Error(rmErr))
		}
		return nil, err
	}

	s.log.Info("document uploaded",
		zap.String("document_id", doc.ID.String()),
		zap.String("profile_id", profileID.String()),
		zap.Int64("size", doc.FileSize),
	)

	if err := s.sign(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *service) List(ctx context.Context, actor domain.Actor, profileID uuid.UUID) ([]domain.Document, error) {
	if !actor.IsStaff() && actor.ProfileID != profileID {
		return nil, domain.ErrForbidden
	}

	docs, err := s.documentRepo.ListByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		return []domain.Document{}, nil
	}

	for i := range docs {
		if err := s.sign(ctx, &docs[i]); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (s *service) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.sign(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Delete soft-deletes the row and then drops the stored object.
func (s *service) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	doc, err := s.get(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.store.RemoveObject(ctx, s.bucket, doc.StoragePath, minio.RemoveObjectOptions{}); err != nil {
		s.log.Warn("failed to remove document object", zap.String("path", doc.StoragePath), zap.Error(err))
	}
	return nil
}

func (s *service) get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || (!actor.IsStaff() && doc.ProfileID != actor.ProfileID) {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *service) sign(ctx context.Context, doc *domain.Document) error {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))

	u, err := s.store.PresignedGetObject(ctx, s.bucket, doc.StoragePath, s.urlTTL, params)
	if err != nil {
		return fmt.Errorf("failed to sign document url: %w", err)
	}
	doc.URL = u.String()
	return nil
}

func objectPath(profileID uuid.UUID, at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("documents/%s/%s/%s", profileID, at.UTC().Format("2006/01"), id)
}
