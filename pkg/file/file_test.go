package file_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/file"
)

// pngHeader is a minimal valid PNG signature that http.DetectContentType
// recognizes as image/png.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

var pdfHeader = []byte("%PDF-1.4\n%fake pdf content for tests\n")

func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestIsImage(t *testing.T) {
	t.Parallel()

	assert.True(t, file.IsImage(newFileHeader(t, "plan.png", pngHeader)))
	assert.False(t, file.IsImage(newFileHeader(t, "brochure.pdf", pdfHeader)))
	assert.False(t, file.IsImage(nil))

	// Renamed extension does not fool content detection
	assert.False(t, file.IsImage(newFileHeader(t, "fake.png", pdfHeader)))
}

func TestIsPDF(t *testing.T) {
	t.Parallel()

	assert.True(t, file.IsPDF(newFileHeader(t, "brochure.pdf", pdfHeader)))
	assert.False(t, file.IsPDF(newFileHeader(t, "plan.png", pngHeader)))
	assert.False(t, file.IsPDF(nil))
}

func TestGetMIMEType(t *testing.T) {
	t.Parallel()

	mimeType, err := file.GetMIMEType(newFileHeader(t, "plan.png", pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)

	_, err = file.GetMIMEType(nil)
	assert.ErrorIs(t, err, file.ErrNilFileHeader)
}

func TestValidateSize(t *testing.T) {
	t.Parallel()

	fh := newFileHeader(t, "plan.png", pngHeader)

	assert.NoError(t, file.ValidateSize(fh, 1024))
	assert.ErrorIs(t, file.ValidateSize(fh, 4), file.ErrFileTooLarge)
	assert.ErrorIs(t, file.ValidateSize(nil, 1024), file.ErrNilFileHeader)
}

func TestValidateMIMEType(t *testing.T) {
	t.Parallel()

	fh := newFileHeader(t, "plan.png", pngHeader)

	assert.NoError(t, file.ValidateMIMEType(fh, "image/png", "image/jpeg"))
	assert.NoError(t, file.ValidateMIMEType(fh)) // no restriction
	assert.ErrorIs(t, file.ValidateMIMEType(fh, "application/pdf"), file.ErrMIMETypeNotAllowed)
}

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plan.png", "plan.png"},
		{"../../../etc/passwd", "passwd"},
		{"C:\\Windows\\file.txt", "file.txt"},
		{"", "unnamed"},
		{"..", "unnamed"},
		{"/", "unnamed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, file.SanitizeFilename(tt.input), "input: %q", tt.input)
	}
}
