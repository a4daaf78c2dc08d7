package file_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/file"
)

func TestLocalStorage_SaveAndOpen(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), "/files/")
	require.NoError(t, err)

	ctx := context.Background()
	fh := newFileHeader(t, "brochure.pdf", pdfHeader)

	saved, err := storage.Save(ctx, fh, "brochures/brochure.pdf")
	require.NoError(t, err)
	assert.Equal(t, "brochure.pdf", saved.Filename)
	assert.Equal(t, int64(len(pdfHeader)), saved.Size)
	assert.Equal(t, filepath.Join("brochures", "brochure.pdf"), saved.RelativePath)

	r, err := storage.Open(ctx, "brochures/brochure.pdf")
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, pdfHeader, content)
}

func TestLocalStorage_Open_NotFound(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), "/files/")
	require.NoError(t, err)

	_, err = storage.Open(context.Background(), "missing.pdf")
	assert.ErrorIs(t, err, file.ErrFileNotFound)
}

func TestLocalStorage_Delete(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), "/files/")
	require.NoError(t, err)

	ctx := context.Background()
	fh := newFileHeader(t, "plan.png", pngHeader)

	_, err = storage.Save(ctx, fh, "plans/plan.png")
	require.NoError(t, err)
	require.True(t, storage.Exists(ctx, "plans/plan.png"))

	require.NoError(t, storage.Delete(ctx, "plans/plan.png"))
	assert.False(t, storage.Exists(ctx, "plans/plan.png"))

	assert.ErrorIs(t, storage.Delete(ctx, "plans/plan.png"), file.ErrFileNotFound)
}

func TestLocalStorage_PathTraversal(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), "/files/")
	require.NoError(t, err)

	ctx := context.Background()
	fh := newFileHeader(t, "plan.png", pngHeader)

	_, err = storage.Save(ctx, fh, "../outside/plan.png")
	assert.ErrorIs(t, err, file.ErrInvalidPath)

	_, err = storage.Open(ctx, "../../etc/passwd")
	assert.ErrorIs(t, err, file.ErrInvalidPath)
}

func TestLocalStorage_URL(t *testing.T) {
	t.Parallel()

	storage, err := file.NewLocalStorage(t.TempDir(), "/files")
	require.NoError(t, err)

	assert.Equal(t, "/files/plans/plan.png", storage.URL("plans/plan.png"))
	assert.Equal(t, "/already/absolute.png", storage.URL("/already/absolute.png"))
}

func TestLocalStorage_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := file.NewLocalStorage("", "/files/")
	assert.ErrorIs(t, err, file.ErrInvalidConfig)
}
