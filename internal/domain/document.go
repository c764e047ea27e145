package domain

import (
	"time"

	"github.com/google/uuid"
)

const MaxDocumentSize = 10 << 20

type Document struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ProfileID   uuid.UUID  `json:"profile_id" db:"profile_id"`
	UploadedBy  uuid.UUID  `json:"uploaded_by" db:"uploaded_by"`
	Kind        string     `json:"kind" db:"kind"`
	FileName    string     `json:"file_name" db:"file_name"`
	FileSize    int64      `json:"file_size" db:"file_size"`
	MimeType    string     `json:"mime_type" db:"mime_type"`
	StoragePath string     `json:"-" db:"storage_path"`
	URL         string     `json:"url" db:"-"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	DeletedAt   *time.Time `json:"-" db:"deleted_at"`
}

type UploadDocumentInput struct {
	Kind string `json:"kind" validate:"omitempty,oneof=passport id_card residence_permit tenancy medical other"`
}
