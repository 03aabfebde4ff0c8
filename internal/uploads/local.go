package uploads

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Local writes files under Dir, served by app.Static("/uploads", Dir).
type Local struct {
	Dir     string
	BaseURL string
}

func NewLocal(dir, baseURL string) *Local {
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (l *Local) Save(_ context.Context, fh *multipart.FileHeader, prefix string) (string, error) {
	if err := CheckImage(fh); err != nil {
		return "", err
	}

	sub := filepath.Join(l.Dir, "payments")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := fmt.Sprintf("%s_%d_%s%s", prefix, time.Now().Unix(), uuid.NewString()[:8], ext)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(sub, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return l.BaseURL + "/uploads/payments/" + name, nil
}
