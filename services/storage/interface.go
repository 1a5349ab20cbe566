package storage

import (
	"context"
	"io"
	"net/http"

	"quickcourt/utils"
)

// ErrStorageDisabled is returned when no media backend is configured.
var ErrStorageDisabled = utils.NewAppError(http.StatusServiceUnavailable, "photo uploads are not configured")

// UploadResult identifies a stored asset.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// PhotoStore keeps facility photos.
type PhotoStore interface {
	Upload(ctx context.Context, file io.Reader, filename, folder string) (*UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// Disabled rejects every upload.
type Disabled struct{}

func (Disabled) Upload(context.Context, io.Reader, string, string) (*UploadResult, error) {
	return nil, ErrStorageDisabled
}

func (Disabled) Delete(context.Context, string) error { return ErrStorageDisabled }

// NewPhotoStore returns a Cloudinary store when cloudinaryURL is set.
func NewPhotoStore(cloudinaryURL string) (PhotoStore, error) {
	if cloudinaryURL == "" {
		return Disabled{}, nil
	}
	return NewCloudinaryStore(cloudinaryURL)
}
