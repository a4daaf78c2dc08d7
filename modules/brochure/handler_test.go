package brochure_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/modules/brochure"
)

func TestHandler_Download(t *testing.T) {
	t.Parallel()

	svc, _, _, tokens := newTestService(t)
	b := uploadTestBrochure(t, svc)

	srv := httptest.NewServer(brochure.NewHandler(svc).Router())
	t.Cleanup(srv.Close)

	t.Run("serves the uploaded pdf", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/download-brochure?token=" + tokens.Issue())
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), b.Title)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, pdfContent, body)
	})

	t.Run("rejects an unknown token", func(t *testing.T) {
		t.Parallel()

		resp, err := http.Get(srv.URL + "/download-brochure?token=bogus")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
