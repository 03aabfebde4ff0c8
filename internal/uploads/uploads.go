// Package uploads stores payment-proof images on local disk or Cloudinary.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/config"
)

// MaxImageSize caps a single payment proof at 5MB.
const MaxImageSize = 5 << 20

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file is larger than 5MB")
	ErrUnsupportedType = errors.New("only jpg, jpeg, png and webp images are accepted")
)

var allowedExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Storage saves an uploaded file and returns its public URL.
type Storage interface {
	Save(ctx context.Context, fh *multipart.FileHeader, prefix string) (string, error)
}

// CheckImage rejects empty, oversized and non-image files.
func CheckImage(fh *multipart.FileHeader) error {
	if fh == nil || fh.Size <= 0 {
		return ErrEmptyFile
	}
	if fh.Size > MaxImageSize {
		return ErrTooLarge
	}
	if !allowedExt[strings.ToLower(filepath.Ext(fh.Filename))] {
		return ErrUnsupportedType
	}
	return nil
}

// New picks the driver named by UPLOAD_DRIVER.
func New(cfg config.Config) (Storage, error) {
	switch cfg.UploadDriver {
	case "", "local":
		return NewLocal(cfg.UploadDir, cfg.AppBaseURL), nil
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.UploadDriver)
	}
}
