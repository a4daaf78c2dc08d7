package core_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/core"
)

func renderToRecorder(t *testing.T, resp core.Response) (*httptest.ResponseRecorder, core.JSONResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	core.Render(w, r, resp)

	var body core.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestJSON(t *testing.T) {
	t.Parallel()

	w, body := renderToRecorder(t, core.JSON("plan", map[string]string{"name": "Gold"}, map[string]any{"total": 1}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "plan", body.Code)
	assert.NotNil(t, body.Data)
	assert.Nil(t, body.Error)
}

func TestJSONStatus(t *testing.T) {
	t.Parallel()

	w, body := renderToRecorder(t, core.JSONStatus(http.StatusCreated, "user_created", map[string]string{"userId": "USR1234"}, nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user_created", body.Code)
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	t.Run("http error", func(t *testing.T) {
		t.Parallel()

		w, body := renderToRecorder(t, core.JSONError(core.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "not_found", body.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, "not_found", body.Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Parallel()

		valErr := core.NewValidationError()
		valErr.Add("phone", "phone number is required")

		w, body := renderToRecorder(t, core.JSONError(valErr))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation_error", body.Code)
		require.NotNil(t, body.Error)
		assert.Equal(t, []string{"phone number is required"}, body.Error.Details["phone"])
	})

	t.Run("generic error", func(t *testing.T) {
		t.Parallel()

		w, body := renderToRecorder(t, core.JSONError(assert.AnError))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal_error", body.Code)
	})
}

func TestBindJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	newRequest := func(body, contentType string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if contentType != "" {
			r.Header.Set("Content-Type", contentType)
		}
		return r
	}

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()

		var p payload
		err := core.BindJSON(newRequest(`{"name":"Gold"}`, "application/json"), &p)
		require.NoError(t, err)
		assert.Equal(t, "Gold", p.Name)
	})

	t.Run("content type with charset", func(t *testing.T) {
		t.Parallel()

		var p payload
		assert.NoError(t, core.BindJSON(newRequest(`{"name":"Gold"}`, "application/json; charset=utf-8"), &p))
	})

	t.Run("missing content type", func(t *testing.T) {
		t.Parallel()

		var p payload
		assert.ErrorIs(t, core.BindJSON(newRequest(`{}`, ""), &p), core.ErrMissingContentType)
	})

	t.Run("wrong content type", func(t *testing.T) {
		t.Parallel()

		var p payload
		assert.ErrorIs(t, core.BindJSON(newRequest(`{}`, "text/plain"), &p), core.ErrWrongContentType)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var p payload
		assert.ErrorIs(t, core.BindJSON(newRequest(`{"name":"x","bogus":1}`, "application/json"), &p), core.ErrInvalidJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		var p payload
		assert.ErrorIs(t, core.BindJSON(newRequest("", "application/json"), &p), core.ErrInvalidJSON)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()

		var p payload
		assert.ErrorIs(t, core.BindJSON(newRequest(`{"name":"x"}{"name":"y"}`, "application/json"), &p), core.ErrInvalidJSON)
	})
}
