package brochure_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/modules/brochure"
	"github.com/aasthachits/chitfund/modules/notification"
	"github.com/aasthachits/chitfund/pkg/accesstoken"
	"github.com/aasthachits/chitfund/pkg/file"
)

var pdfContent = []byte("%PDF-1.4\ntest brochure body\n")

func newPDFHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
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

// fakeStorage keeps saved files in memory so Download can read them back.
type fakeStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (f *fakeStorage) Save(_ context.Context, fh *multipart.FileHeader, path string) (*file.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.files[path] = data
	f.mu.Unlock()
	return &file.File{Filename: fh.Filename, RelativePath: path}, nil
}

func (f *fakeStorage) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.files[path]
	if !ok {
		return nil, file.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStorage) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, path)
	return nil
}

func (f *fakeStorage) Exists(_ context.Context, path string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[path]
	return ok
}

func (f *fakeStorage) URL(path string) string { return "/uploads/" + path }

type fakeNotifier struct {
	mu       sync.Mutex
	messages []notification.Message
	outcome  notification.Outcome
}

func (f *fakeNotifier) Dispatch(_ context.Context, msg notification.Message) notification.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	if f.outcome != nil {
		return f.outcome
	}
	return notification.Outcome{"email": {Delivered: true}}
}

func newTestService(t *testing.T, tokenOpts ...accesstoken.Option) (*brochure.Service, *fakeStorage, *fakeNotifier, *accesstoken.Store) {
	t.Helper()

	storage := newFakeStorage()
	notifier := &fakeNotifier{}
	tokens := accesstoken.New(tokenOpts...)
	svc := brochure.NewService(brochure.NewMemoryStore(), storage, tokens, notifier, "https://aasthachits.example.com")
	return svc, storage, notifier, tokens
}

func uploadTestBrochure(t *testing.T, svc *brochure.Service) *brochure.Brochure {
	t.Helper()

	b, err := svc.Upload(context.Background(), newPDFHeader(t, "brochure.pdf", pdfContent))
	require.NoError(t, err)
	return b
}

func TestService_Upload(t *testing.T) {
	t.Parallel()

	t.Run("stores pdf and records latest", func(t *testing.T) {
		t.Parallel()

		svc, storage, _, _ := newTestService(t)
		b := uploadTestBrochure(t, svc)

		assert.Equal(t, "brochure.pdf", b.Title)

		latest, err := svc.Latest(context.Background())
		require.NoError(t, err)
		assert.Equal(t, b.ID, latest.ID)

		assert.True(t, storage.Exists(context.Background(), latest.Path))
	})

	t.Run("rejects non-pdf", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _ := newTestService(t)
		_, err := svc.Upload(context.Background(), newPDFHeader(t, "photo.png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0}))
		require.ErrorIs(t, err, brochure.ErrNotPDF)
	})
}

func TestService_SendLink(t *testing.T) {
	t.Parallel()

	t.Run("emails a valid tokened link", func(t *testing.T) {
		t.Parallel()

		svc, _, notifier, tokens := newTestService(t)
		uploadTestBrochure(t, svc)

		require.NoError(t, svc.SendLink(context.Background(), "Asha", "asha@example.com"))
		require.Len(t, notifier.messages, 1)

		msg := notifier.messages[0]
		assert.Contains(t, msg.HTMLBody, "https://aasthachits.example.com/api/download-brochure?token=")

		// The token embedded in the email must validate.
		body := msg.HTMLBody
		idx := strings.Index(body, "token=")
		require.GreaterOrEqual(t, idx, 0)
		token := body[idx+len("token="):]
		token = token[:strings.IndexAny(token, `"&<`)]
		require.NoError(t, tokens.Validate(token))
	})

	t.Run("no brochure uploaded", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _ := newTestService(t)
		err := svc.SendLink(context.Background(), "Asha", "asha@example.com")
		require.ErrorIs(t, err, brochure.ErrNoBrochure)
	})

	t.Run("delivery failure surfaces", func(t *testing.T) {
		t.Parallel()

		svc, _, notifier, _ := newTestService(t)
		notifier.outcome = notification.Outcome{"email": {Delivered: false}}
		uploadTestBrochure(t, svc)

		err := svc.SendLink(context.Background(), "Asha", "asha@example.com")
		require.ErrorIs(t, err, brochure.ErrLinkNotSent)
	})
}

func TestService_Download(t *testing.T) {
	t.Parallel()

	t.Run("valid token streams the pdf, repeatedly", func(t *testing.T) {
		t.Parallel()

		svc, _, _, tokens := newTestService(t)
		uploadTestBrochure(t, svc)
		token := tokens.Issue()

		for i := 0; i < 2; i++ {
			rc, b, err := svc.Download(context.Background(), token)
			require.NoError(t, err)
			assert.Equal(t, "brochure.pdf", b.Title)

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, pdfContent, data)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		t.Parallel()

		svc, _, _, _ := newTestService(t)
		uploadTestBrochure(t, svc)

		_, _, err := svc.Download(context.Background(), "bogus")
		require.ErrorIs(t, err, accesstoken.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		clock := &now
		svc, _, _, tokens := newTestService(t,
			accesstoken.WithClock(func() time.Time { return *clock }))
		uploadTestBrochure(t, svc)

		token := tokens.Issue()
		*clock = now.Add(2 * time.Hour)

		_, _, err := svc.Download(context.Background(), token)
		require.ErrorIs(t, err, accesstoken.ErrTokenExpired)
	})
}
