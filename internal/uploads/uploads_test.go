package uploads

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Windi-Fikriyansyah/hosting_store_be/internal/config"
)

// fileHeader builds a real multipart.FileHeader by parsing a form body.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("PaymentImage", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["PaymentImage"][0]
}

func TestCheckImage(t *testing.T) {
	assert.ErrorIs(t, CheckImage(nil), ErrEmptyFile)
	assert.ErrorIs(t, CheckImage(&multipart.FileHeader{Filename: "a.png"}), ErrEmptyFile)
	assert.ErrorIs(t, CheckImage(&multipart.FileHeader{Filename: "a.png", Size: MaxImageSize + 1}), ErrTooLarge)
	assert.ErrorIs(t, CheckImage(&multipart.FileHeader{Filename: "a.pdf", Size: 10}), ErrUnsupportedType)
	assert.NoError(t, CheckImage(&multipart.FileHeader{Filename: "receipt.JPG", Size: 10}))
}

func TestLocal_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir, "http://localhost:8080/")

	url, err := store.Save(context.Background(), fileHeader(t, "proof.png", []byte("png-bytes")), "order")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/payments/order_"), url)
	assert.True(t, strings.HasSuffix(url, ".png"))

	name := url[strings.LastIndex(url, "/")+1:]
	raw, err := os.ReadFile(filepath.Join(dir, "payments", name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(raw))
}

func TestLocal_SaveRejectsNonImage(t *testing.T) {
	_, err := NewLocal(t.TempDir(), "").Save(context.Background(), fileHeader(t, "proof.exe", []byte("x")), "order")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestNew_Drivers(t *testing.T) {
	s, err := New(config.Config{UploadDriver: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(config.Config{UploadDriver: "s3"})
	assert.Error(t, err)
}
